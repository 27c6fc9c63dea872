package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Dias221467/DevConnect/internal/apperrors"
	"github.com/Dias221467/DevConnect/pkg/middleware"
	log "github.com/sirupsen/logrus"
)

type envelope struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WithError(err).Error("Failed to encode response")
	}
}

func writeMessage(w http.ResponseWriter, message string, data interface{}) {
	writeJSON(w, http.StatusOK, envelope{Message: message, Data: data})
}

// writeError maps an application error onto its status code and the
// {"message": ...} failure body, logging it with any context the error carries.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperrors.KindOf(err)
	status := kind.HTTPStatus()

	message := apperrors.ErrStoreFailure.Message
	fields := log.Fields{
		"kind":      kind.String(),
		"method":    r.Method,
		"path":      r.URL.Path,
		"requestID": middleware.RequestIDFromContext(r.Context()),
	}
	var e *apperrors.Error
	if errors.As(err, &e) {
		message = e.Message
		for k, v := range e.Fields {
			fields[k] = v
		}
	}

	entry := log.WithFields(fields).WithError(err)
	if kind == apperrors.KindStoreFailure {
		entry.Error("Request failed")
	} else {
		entry.Warn("Request rejected")
	}

	writeJSON(w, status, envelope{Message: message})
}

// HealthHandler reports that the server is up.
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, "Server is running", nil)
}
