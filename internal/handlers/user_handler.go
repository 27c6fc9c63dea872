package handlers

import (
	"net/http"
	"strconv"

	"github.com/Dias221467/DevConnect/internal/apperrors"
	"github.com/Dias221467/DevConnect/internal/services"
	"github.com/Dias221467/DevConnect/pkg/middleware"
)

// UserHandler serves the logged-in user's connections, pending requests and feed.
type UserHandler struct {
	Connections *services.ConnectionService
	Feed        *services.FeedService
}

// NewUserHandler creates a new instance of UserHandler.
func NewUserHandler(connections *services.ConnectionService, feed *services.FeedService) *UserHandler {
	return &UserHandler{
		Connections: connections,
		Feed:        feed,
	}
}

// ReceivedRequestsHandler handles GET /user/requests/received.
func (h *UserHandler) ReceivedRequestsHandler(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, r, apperrors.ErrUnauthorized)
		return
	}

	received, err := h.Connections.GetReceivedRequests(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, "Data fetched successfully!!", received)
}

// ConnectionsHandler handles GET /user/connections.
func (h *UserHandler) ConnectionsHandler(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, r, apperrors.ErrUnauthorized)
		return
	}

	connections, err := h.Connections.GetConnections(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, "Your connection list", connections)
}

// FeedHandler handles GET /user/feed?page=&limit=.
func (h *UserHandler) FeedHandler(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, r, apperrors.ErrUnauthorized)
		return
	}

	page, limit := ParsePagination(r)
	users, err := h.Feed.GetFeed(r.Context(), user.ID, page, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": users})
}

// ParsePagination reads page and limit from the query string. Missing or
// non-numeric values fall back to the defaults before clamping.
func ParsePagination(r *http.Request) (int, int) {
	q := r.URL.Query()
	page, err := strconv.Atoi(q.Get("page"))
	if err != nil {
		page = services.DefaultFeedPage
	}
	limit, err := strconv.Atoi(q.Get("limit"))
	if err != nil {
		limit = services.DefaultFeedLimit
	}
	return services.NormalizePage(page, limit)
}
