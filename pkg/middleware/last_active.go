package middleware

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActivityRecorder stores the time of a user's latest authenticated request.
type ActivityRecorder interface {
	UpdateLastActive(ctx context.Context, id primitive.ObjectID) error
}

// UpdateLastActiveMiddleware records activity for the user AuthMiddleware loaded.
// Failures are logged and never block the request.
func UpdateLastActiveMiddleware(recorder ActivityRecorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if user := GetUserFromContext(r.Context()); user != nil {
				if err := recorder.UpdateLastActive(r.Context(), user.ID); err != nil {
					logrus.WithError(err).WithField("userID", user.ID.Hex()).Warn("Failed to update last active")
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
