package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Dias221467/DevConnect/internal/apperrors"
	"github.com/Dias221467/DevConnect/internal/config"
	"github.com/Dias221467/DevConnect/internal/models"
	"github.com/Dias221467/DevConnect/internal/services"
	jwtutil "github.com/Dias221467/DevConnect/pkg/jwt"
	"github.com/Dias221467/DevConnect/pkg/middleware"
	log "github.com/sirupsen/logrus"
)

// AuthHandler handles signup, login and logout.
type AuthHandler struct {
	Service *services.UserService
	Config  *config.Config
}

// NewAuthHandler creates a new instance of AuthHandler.
func NewAuthHandler(service *services.UserService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		Service: service,
		Config:  cfg,
	}
}

// SignupHandler registers a user and logs them in.
func (h *AuthHandler) SignupHandler(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, apperrors.Wrap(apperrors.KindValidation, "Invalid request payload", err))
		return
	}

	user, err := h.Service.RegisterUser(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.setSession(w, user); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, "User Added Successfully!!", user)
}

// LoginHandler checks credentials and sets the session cookie.
func (h *AuthHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var credentials models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		writeError(w, r, apperrors.Wrap(apperrors.KindValidation, "Invalid request payload", err))
		return
	}

	user, err := h.Service.AuthenticateUser(r.Context(), credentials.Email, credentials.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.setSession(w, user); err != nil {
		writeError(w, r, err)
		return
	}
	log.WithField("userID", user.ID.Hex()).Info("User logged in successfully")
	writeMessage(w, "Login successful", user)
}

// LogoutHandler expires the session cookie.
func (h *AuthHandler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.cookie("", time.Unix(0, 0)))
	writeMessage(w, "Logout successful", nil)
}

func (h *AuthHandler) setSession(w http.ResponseWriter, user *models.User) error {
	token, err := jwtutil.GenerateToken(user.ID.Hex(), user.Email, h.Config.JWTSecret, h.Config.TokenExpiry)
	if err != nil {
		log.WithError(err).Error("Failed to generate JWT token")
		return apperrors.Wrap(apperrors.KindStoreFailure, "Failed to generate token", err)
	}
	http.SetCookie(w, h.cookie(token, time.Now().Add(h.Config.TokenExpiry)))
	return nil
}

func (h *AuthHandler) cookie(value string, expires time.Time) *http.Cookie {
	c := &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.Config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
	if h.Config.CookieSecure {
		c.SameSite = http.SameSiteNoneMode
	}
	if value == "" {
		c.MaxAge = -1
	}
	return c
}
