package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/umputun/prefhub/pkg/errs"
)

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
	}
	renderJSON(w, r, http.StatusOK, status)
}

// settingsHandler serves the getUserSettings operation. The pipeline around
// it has already handled rate limiting and credential presence, this handler
// validates the credential shape and invokes the aggregator.
func (s *Server) settingsHandler(w http.ResponseWriter, r *http.Request) {
	credential := r.Header.Get("X-Access-Token")

	if err := validateCredential(credential); err != nil {
		s.renderClassified(w, r, err)
		return
	}

	snapshot, err := s.settings.GetSettings(r.Context(), credential)
	if err != nil {
		s.renderClassified(w, r, err)
		return
	}

	renderJSON(w, r, http.StatusOK, snapshot)
}

// validateCredential checks the credential looks like a three-segment token.
// The credential stays opaque, no signature verification happens here.
func validateCredential(credential string) error {
	if strings.TrimSpace(credential) == "" {
		return errs.NewUnauthorized("authentication token is required")
	}
	if len(strings.Split(credential, ".")) != 3 {
		return errs.NewValidation("invalid token format", "token")
	}
	return nil
}

// errorResponse is the wire shape of a classified error
type errorResponse struct {
	Code       errs.Code      `json:"code"`
	HTTPStatus int            `json:"httpStatus"`
	Message    string         `json:"message"`
	Timestamp  time.Time      `json:"timestamp"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

// renderClassified routes the error through the classifier and sends the
// structured error object with its mapped status. Raw internal messages never
// reach callers outside dev mode.
func (s *Server) renderClassified(w http.ResponseWriter, r *http.Request, err error) {
	classified := s.classifier.Classify(err, errs.Context{
		Operation: operationName(r),
		IP:        requestIP(r),
		UserAgent: r.Header.Get("User-Agent"),
	})
	renderJSON(w, r, classified.HTTPStatus(), errorResponse{
		Code:       classified.Code,
		HTTPStatus: classified.HTTPStatus(),
		Message:    classified.Message,
		Timestamp:  classified.Timestamp,
		Extensions: classified.Extensions(),
	})
}

// operationName maps the route to the operation for error logs
func operationName(r *http.Request) string {
	if r.URL.Path == "/api/v1/settings" {
		return "getUserSettings"
	}
	return r.Method + " " + r.URL.Path
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}
