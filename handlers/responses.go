package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"todobackend/core"
	"todobackend/models/api"
)

// Wrapper decorates an endpoint, e.g. with authentication and rate limiting
type Wrapper func(http.HandlerFunc) http.HandlerFunc

// ErrorReporter is notified of unexpected failures that end in a 500
type ErrorReporter interface {
	AlertOnError(err error, source string)
}

type noopReporter struct{}

func (noopReporter) AlertOnError(error, string) {}

func reporterOrNoop(reporter ErrorReporter) ErrorReporter {
	if reporter == nil {
		return noopReporter{}
	}
	return reporter
}

func writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("❌ Failed to encode JSON response: %v", err)
	}
}

func writeMessageResponse(w http.ResponseWriter, statusCode int, message string, success bool) {
	writeJSONResponse(w, statusCode, api.MessageResponse{Message: message, Success: success})
}

// SetupAPIFallbacks answers unknown API routes and unsupported methods with the
// shared JSON error body instead of letting them fall through to page serving.
func SetupAPIFallbacks(router *mux.Router) {
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeMessageResponse(w, http.StatusNotFound, "Not found", false)
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeMessageResponse(w, http.StatusMethodNotAllowed, "Method not allowed", false)
	})
	log.Printf("🚀 Registered JSON fallbacks for unmatched API requests")
}

// errorMessages holds the client-facing text for each expected failure of an endpoint.
// Internal is used for everything that does not match a known sentinel.
type errorMessages struct {
	NotFound  string
	Forbidden string
	Internal  string
}

// writeServiceError maps a service error onto the shared error body. Unexpected
// errors are logged, reported and hidden behind a generic message.
func writeServiceError(w http.ResponseWriter, r *http.Request, reporter ErrorReporter, err error, msgs errorMessages) {
	status, message := http.StatusInternalServerError, msgs.Internal
	switch {
	case errors.Is(err, core.ErrInvalidInput):
		status, message = http.StatusBadRequest, invalidInputMessage(err)
	case errors.Is(err, core.ErrUnauthorized):
		status, message = http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, core.ErrQuotaExceeded):
		status, message = http.StatusForbidden, "Subscribe for more"
	case errors.Is(err, core.ErrForbidden):
		status, message = http.StatusForbidden, msgs.Forbidden
	case errors.Is(err, core.ErrNotFound):
		status, message = http.StatusNotFound, msgs.NotFound
	}

	if status == http.StatusInternalServerError {
		log.Printf("❌ %s %s failed: %v", r.Method, r.URL.Path, err)
		reporter.AlertOnError(err, routeName(r))
	} else {
		log.Printf("⚠️ %s %s rejected with %d: %v", r.Method, r.URL.Path, status, err)
	}
	writeMessageResponse(w, status, message, false)
}

// invalidInputMessage strips the sentinel suffix from validation errors so the
// client sees e.g. "title is required"
func invalidInputMessage(err error) string {
	msg := err.Error()
	trimmed := strings.TrimSuffix(msg, ": "+core.ErrInvalidInput.Error())
	if trimmed == msg || trimmed == "" {
		return "Invalid request"
	}
	return trimmed
}

func routeName(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return "HTTP " + r.Method + " " + tpl
		}
	}
	return "HTTP " + r.Method + " " + r.URL.Path
}
