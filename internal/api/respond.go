// Package api is the HTTP surface: gorilla/mux routing, header auth, CORS,
// in-memory rate limiting and the read/trigger/CRUD handlers.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/mulgyeol/tidecast/pkg/support/util/exception"
	"github.com/mulgyeol/tidecast/pkg/support/util/logger"
)

const ModuleAPI = "api"

type errorEnvelope struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Errorf("failed to encode response body: %v", err)
	}
}

// writeError maps an error's kind onto an HTTP status and writes the error
// envelope. Internal detail stays in the log; the client sees the message only.
func writeError(w http.ResponseWriter, err error) {
	status := statusForKind(exception.KindOf(err))
	if status >= http.StatusInternalServerError {
		logger.Errorf("request failed: %v", err)
	}
	writeJSON(w, status, errorEnvelope{Error: exception.ExtractErrorMessage(err)})
}

func statusForKind(kind exception.Kind) int {
	switch kind {
	case exception.KindValidation:
		return http.StatusBadRequest
	case exception.KindAuth:
		return http.StatusUnauthorized
	case exception.KindNotFound:
		return http.StatusNotFound
	case exception.KindRateLimit:
		return http.StatusTooManyRequests
	case exception.KindUpstreamTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorEnvelope{Error: message})
}
