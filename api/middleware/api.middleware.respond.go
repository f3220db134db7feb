package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/ikigain/ForestOS/internal/errors"
	nuts "github.com/vaudience/go-nuts"
)

// RespondWithJSON writes payload with the given status.
func RespondWithJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		nuts.L.Errorf("[API] Failed to encode response: %v", err)
	}
}

// RespondWithError maps err onto its APIError. Anything that is not an
// APIError is reported as a bare 500.
func RespondWithError(w http.ResponseWriter, r *http.Request, err error) {
	apiErr, ok := errors.AsAPIError(err)
	if !ok {
		apiErr = errors.NewInternalError("unexpected error", err)
	}
	apiErr.WithRequestID(GetRequestID(r))

	if apiErr.Code >= http.StatusInternalServerError {
		nuts.L.Errorf("[API] %s %s failed (%s): %v", r.Method, r.URL.Path, apiErr.RequestID, apiErr)
	}
	if apiErr.Code == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	RespondWithJSON(w, apiErr.Code, apiErr.Public())
}
