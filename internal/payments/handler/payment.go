package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"reservio/internal/payments/service"
	apperrors "reservio/pkg/errors"
	httputil "reservio/pkg/http"
	"reservio/pkg/logger"
	"reservio/pkg/model"
)

type PaymentHandler struct {
	service service.PaymentService
	log     *logger.Logger
}

func NewPaymentHandler(svc service.PaymentService, log *logger.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: svc,
		log:     log,
	}
}

type settleRequest struct {
	BookingID string `json:"booking_id"`
	Method    string `json:"method"`
}

type refundRequest struct {
	Reason string `json:"reason"`
}

type validateResponse struct {
	Valid   bool           `json:"valid"`
	Payment *model.Payment `json:"payment,omitempty"`
}

func (h *PaymentHandler) Settle(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req settleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Settle", apperrors.InvalidInput("Invalid request body"))
		return
	}

	payment, err := h.service.Settle(r.Context(), req.BookingID, req.Method)
	if err != nil {
		h.writeError(w, "Settle", err)
		return
	}

	if err := httputil.WriteCreated(w, payment); err != nil {
		h.log.Error("failed to write created response", "handler", "Settle", "error", err)
	}
}

func (h *PaymentHandler) Refund(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req refundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Refund", apperrors.InvalidInput("Invalid request body"))
		return
	}

	payment, err := h.service.Refund(r.Context(), ps.ByName("id"), req.Reason)
	if err != nil {
		h.writeError(w, "Refund", err)
		return
	}

	if err := httputil.WriteSuccess(w, payment); err != nil {
		h.log.Error("failed to write success response", "handler", "Refund", "error", err)
	}
}

func (h *PaymentHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	payment, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, payment); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "error", err)
	}
}

func (h *PaymentHandler) GetByBookingID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	payment, err := h.service.GetByBookingID(r.Context(), ps.ByName("bookingID"))
	if err != nil {
		h.writeError(w, "GetByBookingID", err)
		return
	}

	if err := httputil.WriteSuccess(w, payment); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByBookingID", "error", err)
	}
}

func (h *PaymentHandler) Validate(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	valid, payment, err := h.service.Validate(r.Context(), ps.ByName("transactionID"))
	if err != nil {
		h.writeError(w, "Validate", err)
		return
	}

	if err := httputil.WriteSuccess(w, validateResponse{Valid: valid, Payment: payment}); err != nil {
		h.log.Error("failed to write success response", "handler", "Validate", "error", err)
	}
}

func (h *PaymentHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/payments", h.Settle)
	router.POST("/api/v1/payments/id/:id/refund", h.Refund)
	router.GET("/api/v1/payments/id/:id", h.GetByID)
	router.GET("/api/v1/payments/booking/:bookingID", h.GetByBookingID)
	router.GET("/api/v1/payments/validate/:transactionID", h.Validate)
}

func (h *PaymentHandler) writeError(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "error", writeErr)
	}
}
