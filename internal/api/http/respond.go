package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"librarium-backend/internal/domain"
	"librarium-backend/internal/logger"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

// writeError maps the domain error taxonomy onto HTTP statuses. Anything
// without a domain code is treated as an internal error and not echoed to
// the client.
func writeError(w http.ResponseWriter, err error) {
	code := domain.CodeOf(err)

	var status int
	switch code {
	case domain.CodeValidation:
		status = http.StatusBadRequest
	case domain.CodeNotFound:
		status = http.StatusNotFound
	case domain.CodeRuleNotConfigured:
		status = http.StatusUnprocessableEntity
	case domain.CodeInvalidTransition, domain.CodeLimitExceeded, domain.CodeMaterialUnavailable,
		domain.CodeAlreadyPaid, domain.CodeNotFullyPaid, domain.CodeNothingToPay:
		status = http.StatusConflict
	default:
		logger.Error("Request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: errorDetail{
			Code:    string(domain.CodeStore),
			Message: "internal error",
		}})
		return
	}

	message := err.Error()
	var derr *domain.Error
	if errors.As(err, &derr) {
		message = derr.Message
	}
	writeJSON(w, status, errorBody{Error: errorDetail{Code: string(code), Message: message}})
}

func writeValidationError(w http.ResponseWriter, err error) {
	writeError(w, domain.Validation("%s", err.Error()))
}
