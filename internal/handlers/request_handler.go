package handlers

import (
	"net/http"

	"github.com/Dias221467/DevConnect/internal/apperrors"
	"github.com/Dias221467/DevConnect/internal/models"
	"github.com/Dias221467/DevConnect/internal/services"
	"github.com/Dias221467/DevConnect/pkg/logger"
	"github.com/Dias221467/DevConnect/pkg/middleware"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RequestHandler handles sending and reviewing connection requests.
type RequestHandler struct {
	Service *services.RequestService
}

// NewRequestHandler creates a new RequestHandler.
func NewRequestHandler(service *services.RequestService) *RequestHandler {
	return &RequestHandler{Service: service}
}

// SendRequestHandler handles POST /request/send/{status}/{toUserId}.
func (h *RequestHandler) SendRequestHandler(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, r, apperrors.ErrUnauthorized)
		return
	}

	vars := mux.Vars(r)
	toUserHex := vars["toUserId"]
	toUserID, err := primitive.ObjectIDFromHex(toUserHex)
	if err != nil {
		writeError(w, r, apperrors.ErrInvalidID.With("toUserId", toUserHex))
		return
	}

	status := models.RequestStatus(vars["status"])
	req, err := h.Service.SendRequest(r.Context(), user.ID, toUserID, status)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.Log.Infof("User %s sent a %s request to %s", user.ID.Hex(), status, toUserHex)
	writeMessage(w, "Request sent successfully", req)
}

// ReviewRequestHandler handles POST /request/review/{status}/{requestId}.
// A malformed request id is reported the same way as an unknown one.
func (h *RequestHandler) ReviewRequestHandler(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, r, apperrors.ErrUnauthorized)
		return
	}

	vars := mux.Vars(r)
	status := models.RequestStatus(vars["status"])
	if !status.CanReview() {
		writeError(w, r, apperrors.ErrInvalidStatus.With("status", string(status)))
		return
	}

	requestID, err := primitive.ObjectIDFromHex(vars["requestId"])
	if err != nil {
		writeError(w, r, apperrors.ErrRequestNotFound.With("requestId", vars["requestId"]))
		return
	}

	req, err := h.Service.ReviewRequest(r.Context(), user.ID, requestID, status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, "Connection Request "+string(status), req)
}
