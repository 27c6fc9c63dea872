package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/Dias221467/DevConnect/internal/apperrors"
	"github.com/Dias221467/DevConnect/internal/models"
	"github.com/Dias221467/DevConnect/internal/services"
	"github.com/Dias221467/DevConnect/pkg/logger"
	"github.com/Dias221467/DevConnect/pkg/middleware"
)

// ProfileHandler serves the logged-in user's own profile.
type ProfileHandler struct {
	Service *services.UserService
}

func NewProfileHandler(service *services.UserService) *ProfileHandler {
	return &ProfileHandler{Service: service}
}

func (h *ProfileHandler) ViewProfileHandler(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, r, apperrors.ErrUnauthorized)
		return
	}
	writeMessage(w, "Profile fetched successfully", user)
}

// EditProfileHandler applies a partial profile edit. Any field outside the
// editable set rejects the whole request.
func (h *ProfileHandler) EditProfileHandler(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, r, apperrors.ErrUnauthorized)
		return
	}

	var update models.ProfileUpdate
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&update); err != nil {
		// encoding/json has no typed error for DisallowUnknownFields; match its message.
		if strings.HasPrefix(err.Error(), "json: unknown field") {
			writeError(w, r, apperrors.ErrInvalidField.With("reason", err.Error()))
			return
		}
		writeError(w, r, apperrors.Wrap(apperrors.KindValidation, "Invalid request payload", err))
		return
	}

	updated, err := h.Service.UpdateProfile(r.Context(), user.ID, &update)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.Log.Infof("User %s updated their profile", user.ID.Hex())
	writeMessage(w, fmt.Sprintf("%s, your profile updated successfully", updated.FirstName), updated)
}

func (h *ProfileHandler) EditPasswordHandler(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, r, apperrors.ErrUnauthorized)
		return
	}

	var change models.PasswordChange
	if err := json.NewDecoder(r.Body).Decode(&change); err != nil {
		writeError(w, r, apperrors.Wrap(apperrors.KindValidation, "Invalid request payload", err))
		return
	}

	if err := h.Service.ChangePassword(r.Context(), user, &change); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, "Password updated successfully", nil)
}
