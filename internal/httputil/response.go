package httputil

import (
	"encoding/json"
	"net/http"

	"github.com/redmonkez12/fintrack-api/internal/apperror"
	"github.com/redmonkez12/fintrack-api/internal/logging"
)

// Envelope is the body shape of every API response.
type Envelope struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// RespondJSON sends a JSON response with the given status code.
// Logs encoding errors to avoid silent failures.
func RespondJSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logging.Default().Error("failed to encode JSON response", "error", err.Error())
	}
}

// RespondSuccess sends a success envelope.
func RespondSuccess(w http.ResponseWriter, statusCode int, message string, data any) {
	RespondJSON(w, Envelope{
		Success: true,
		Status:  http.StatusText(statusCode),
		Message: message,
		Data:    data,
	}, statusCode)
}

// RespondFailure sends a failure envelope with an explicit status label.
func RespondFailure(w http.ResponseWriter, statusCode int, status, message string) {
	RespondJSON(w, Envelope{
		Success: false,
		Status:  status,
		Message: message,
	}, statusCode)
}

// RespondError translates err into a failure envelope. Typed errors keep their
// code and message; anything else becomes a generic 500 and is logged.
func RespondError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperror.As(err)
	if !ok {
		appErr = apperror.Internal(err)
	}

	if appErr.Kind == apperror.KindInternal {
		logging.GetLoggerFromContext(r.Context()).Error("request failed", "error", err.Error())
	}

	RespondFailure(w, appErr.Status(), appErr.Name(), appErr.Message)
}
