package utils

import (
	"encoding/json"
	"log/slog"
	"net/http"

	apierrors "github.com/ong-espoir/api-server-go/pkg/errors"
)

// APIResponse is the envelope every endpoint answers with
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// RespondWithSuccess sends a success envelope
func RespondWithSuccess(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(APIResponse{Success: true, Message: message, Data: data}); err != nil {
		slog.Error("Failed to encode success response", "error", err)
	}
}

// RespondWithError sends an error envelope
func RespondWithError(w http.ResponseWriter, statusCode int, message string) {
	RespondWithErrorData(w, statusCode, message, nil)
}

// RespondWithErrorData sends an error envelope carrying extra data
// (field-level validation messages, for example)
func RespondWithErrorData(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(APIResponse{Success: false, Message: message, Data: data}); err != nil {
		slog.Error("Failed to encode error response", "error", err)
	}
}

// RespondWithServiceError maps a service error onto the envelope. APIErrors
// keep their status and message; anything else becomes a 500 and the cause is
// logged rather than leaked to the client.
func RespondWithServiceError(w http.ResponseWriter, err error) {
	if apiErr := apierrors.GetAPIError(err); apiErr != nil {
		RespondWithErrorData(w, apiErr.HTTPStatus, apiErr.Message, errorDetails(apiErr))
		return
	}
	slog.Error("Unhandled service error", "error", err)
	RespondWithError(w, http.StatusInternalServerError, "Internal server error")
}

func errorDetails(apiErr *apierrors.APIError) interface{} {
	if apiErr.Details == "" {
		return nil
	}
	return map[string]string{"details": apiErr.Details}
}
