package middleware

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActivityRecorder stores when a user was last seen.
type ActivityRecorder interface {
	UpdateLastActive(ctx context.Context, userID primitive.ObjectID) error
}

// UpdateLastActiveMiddleware stamps the authenticated user's last activity.
// It must run after AuthMiddleware. Failures are logged and never block the request.
func UpdateLastActiveMiddleware(users ActivityRecorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID := UserIDFromContext(r.Context()); !userID.IsZero() {
				if err := users.UpdateLastActive(r.Context(), userID); err != nil {
					logrus.WithError(err).WithField("userID", userID.Hex()).Warn("Failed to update last active")
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
