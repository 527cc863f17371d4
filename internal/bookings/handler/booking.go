package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"reservio/internal/bookings/service"
	apperrors "reservio/pkg/errors"
	httputil "reservio/pkg/http"
	"reservio/pkg/logger"
	"reservio/pkg/model"
)

type BookingHandler struct {
	service      service.BookingService
	availability service.AvailabilityChecker
	log          *logger.Logger
}

func NewBookingHandler(svc service.BookingService, availability service.AvailabilityChecker, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service:      svc,
		availability: availability,
		log:          log,
	}
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type cancelRequest struct {
	RequesterID string `json:"requester_id"`
}

type cancelResponse struct {
	Cancelled bool `json:"cancelled"`
}

type payRequest struct {
	Method string `json:"method"`
}

type availabilityResponse struct {
	Available bool `json:"available"`
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Create", apperrors.InvalidInput("Invalid request body"))
		return
	}

	booking, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, booking); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	booking, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "error", err)
	}
}

func (h *BookingHandler) GetByUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "GetByUser", err)
		return
	}

	bookings, total, err := h.service.GetByUser(r.Context(), ps.ByName("userID"), limit, offset)
	if err != nil {
		h.writeError(w, "GetByUser", err)
		return
	}

	if err := httputil.WritePaginated(w, bookings, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetByUser", "error", err)
	}
}

func (h *BookingHandler) GetByProvider(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "GetByProvider", err)
		return
	}

	bookings, total, err := h.service.GetByProvider(r.Context(), ps.ByName("providerID"), limit, offset)
	if err != nil {
		h.writeError(w, "GetByProvider", err)
		return
	}

	if err := httputil.WritePaginated(w, bookings, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetByProvider", "error", err)
	}
}

func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "UpdateStatus", apperrors.InvalidInput("Invalid request body"))
		return
	}

	booking, err := h.service.UpdateStatus(r.Context(), ps.ByName("id"), req.Status)
	if err != nil {
		h.writeError(w, "UpdateStatus", err)
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "UpdateStatus", "error", err)
	}
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req cancelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Cancel", apperrors.InvalidInput("Invalid request body"))
		return
	}

	cancelled, err := h.service.Cancel(r.Context(), ps.ByName("id"), req.RequesterID)
	if err != nil {
		h.writeError(w, "Cancel", err)
		return
	}

	if err := httputil.WriteSuccess(w, cancelResponse{Cancelled: cancelled}); err != nil {
		h.log.Error("failed to write success response", "handler", "Cancel", "error", err)
	}
}

func (h *BookingHandler) Pay(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req payRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Pay", apperrors.InvalidInput("Invalid request body"))
		return
	}

	payment, err := h.service.Pay(r.Context(), ps.ByName("id"), req.Method)
	if err != nil {
		h.writeError(w, "Pay", err)
		return
	}

	if err := httputil.WriteCreated(w, payment); err != nil {
		h.log.Error("failed to write created response", "handler", "Pay", "error", err)
	}
}

func (h *BookingHandler) CheckAvailability(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	providerID := query.Get("provider_id")
	date := query.Get("date")

	if providerID == "" || date == "" {
		h.writeError(w, "CheckAvailability", apperrors.InvalidInput("Both 'provider_id' and 'date' query parameters are required"))
		return
	}

	start, err := parseMinuteParam(query.Get("start_minute"))
	if err != nil {
		h.writeError(w, "CheckAvailability", err)
		return
	}
	end, err := parseMinuteParam(query.Get("end_minute"))
	if err != nil {
		h.writeError(w, "CheckAvailability", err)
		return
	}
	if end <= start {
		h.writeError(w, "CheckAvailability", apperrors.InvalidInput("end_minute must be after start_minute"))
		return
	}

	available, err := h.availability.IsAvailable(r.Context(), providerID, date, start, end)
	if err != nil {
		h.writeError(w, "CheckAvailability", err)
		return
	}

	if err := httputil.WriteSuccess(w, availabilityResponse{Available: available}); err != nil {
		h.log.Error("failed to write success response", "handler", "CheckAvailability", "error", err)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/bookings", h.Create)
	router.GET("/api/v1/bookings/id/:id", h.GetByID)
	router.PATCH("/api/v1/bookings/id/:id/status", h.UpdateStatus)
	router.POST("/api/v1/bookings/id/:id/cancel", h.Cancel)
	router.POST("/api/v1/bookings/id/:id/pay", h.Pay)
	router.GET("/api/v1/bookings/user/:userID", h.GetByUser)
	router.GET("/api/v1/bookings/provider/:providerID", h.GetByProvider)
	router.GET("/api/v1/availability", h.CheckAvailability)
}

func (h *BookingHandler) writeError(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "error", writeErr)
	}
}

func parseMinuteParam(s string) (int, error) {
	if s == "" {
		return 0, apperrors.InvalidInput("start_minute and end_minute query parameters are required")
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 || v > model.MinutesPerDay {
		return 0, apperrors.InvalidInput("minute parameters must be integers within a day")
	}
	return v, nil
}
