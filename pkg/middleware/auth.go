package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Dias221467/DevConnect/internal/models"
	jwtutil "github.com/Dias221467/DevConnect/pkg/jwt"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TokenCookie is the cookie the session token is stored in.
const TokenCookie = "token"

type contextKey string

const userContextKey contextKey = "user"

// UserLoader looks up the account a token belongs to.
type UserLoader interface {
	GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// AuthMiddleware requires a valid token, read from the token cookie or an
// Authorization: Bearer header, and stores the matching user in the request context.
func AuthMiddleware(secret string, users UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := tokenFromRequest(r)
			if tokenString == "" {
				logrus.WithField("path", r.URL.Path).Warn("Missing auth token")
				unauthorized(w)
				return
			}

			claims, err := jwtutil.ValidateToken(tokenString, secret)
			if err != nil {
				logrus.WithError(err).Warn("Invalid auth token")
				unauthorized(w)
				return
			}

			userID, err := primitive.ObjectIDFromHex(claims.UserID)
			if err != nil {
				logrus.WithField("userID", claims.UserID).Warn("Token carries a malformed user id")
				unauthorized(w)
				return
			}

			user, err := users.GetUser(r.Context(), userID)
			if err != nil {
				logrus.WithError(err).WithField("userID", claims.UserID).Warn("Token user could not be loaded")
				unauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// WithUser returns a copy of ctx carrying user.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// GetUserFromContext returns the authenticated user, or nil outside AuthMiddleware.
func GetUserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userContextKey).(*models.User)
	return user
}

func tokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(TokenCookie); err == nil && c.Value != "" {
		return c.Value
	}
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ""
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": "Please Login"})
}
