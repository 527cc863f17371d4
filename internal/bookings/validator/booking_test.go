package validator

import (
	"errors"
	"strings"
	"testing"

	"reservio/pkg/logger"
	"reservio/pkg/model"
)

func newTestValidator() *BookingValidator {
	return NewBookingValidator(logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	}))
}

func validRequest() *model.BookingRequest {
	return &model.BookingRequest{
		UserID:      "user-1",
		ServiceID:   "svc-1",
		Date:        "2026-09-15",
		StartMinute: 540,
		Address:     "12 Main Street",
	}
}

func TestValidateRequestAcceptsValidRequest(t *testing.T) {
	if err := newTestValidator().ValidateRequest(validRequest()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRequestFailures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*model.BookingRequest)
		field   string
		message string
	}{
		{
			name:    "missing user",
			mutate:  func(r *model.BookingRequest) { r.UserID = "" },
			field:   "UserID",
			message: "UserID is required",
		},
		{
			name:    "missing service",
			mutate:  func(r *model.BookingRequest) { r.ServiceID = "" },
			field:   "ServiceID",
			message: "ServiceID is required",
		},
		{
			name:    "malformed date",
			mutate:  func(r *model.BookingRequest) { r.Date = "15/09/2026" },
			field:   "Date",
			message: "Date must match the 2006-01-02 format",
		},
		{
			// The datetime tag parses with the stdlib layout, which rejects
			// out-of-range days outright.
			name:    "impossible calendar date",
			mutate:  func(r *model.BookingRequest) { r.Date = "2026-02-31" },
			field:   "Date",
			message: "Date must match the 2006-01-02 format",
		},
		{
			name:    "negative start minute",
			mutate:  func(r *model.BookingRequest) { r.StartMinute = -1 },
			field:   "StartMinute",
			message: "StartMinute must be at least 0",
		},
		{
			name:    "start minute past midnight",
			mutate:  func(r *model.BookingRequest) { r.StartMinute = 1440 },
			field:   "StartMinute",
			message: "StartMinute must be at most 1439",
		},
		{
			name:    "address too short",
			mutate:  func(r *model.BookingRequest) { r.Address = "x" },
			field:   "Address",
			message: "Address must be at least 2",
		},
		{
			name:    "instructions too long",
			mutate:  func(r *model.BookingRequest) { r.SpecialInstructions = strings.Repeat("a", 1001) },
			field:   "SpecialInstructions",
			message: "SpecialInstructions must be at most 1000",
		},
	}

	v := newTestValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			err := v.ValidateRequest(req)
			if err == nil {
				t.Fatal("expected a validation error")
			}

			var validationErrs ValidationErrors
			if !errors.As(err, &validationErrs) {
				t.Fatalf("expected ValidationErrors, got %T: %v", err, err)
			}

			found := false
			for _, ve := range validationErrs {
				if ve.Field == tt.field {
					found = true
					if !strings.Contains(ve.Message, tt.message) {
						t.Errorf("expected message containing %q, got %q", tt.message, ve.Message)
					}
				}
			}
			if !found {
				t.Errorf("expected an error on field %s, got %v", tt.field, validationErrs)
			}
		})
	}
}

func TestValidationErrorsMessage(t *testing.T) {
	errs := ValidationErrors{
		{Field: "UserID", Message: "UserID is required"},
		{Field: "Date", Message: "Date must match the 2006-01-02 format"},
	}

	msg := errs.Error()
	if !strings.Contains(msg, "2 error(s)") {
		t.Errorf("expected error count in message, got %q", msg)
	}
	if !strings.Contains(msg, "UserID is required") {
		t.Errorf("expected field message in output, got %q", msg)
	}

	if (ValidationErrors{}).Error() != "" {
		t.Error("empty ValidationErrors must render as an empty string")
	}
}
