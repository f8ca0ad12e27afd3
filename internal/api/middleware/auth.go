package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/abrans2005/cycling-booking/internal/api/handlers"
)

const adminTokenHeader = "X-Admin-Token"

// Logger is the leveled printf logger.
type Logger interface {
	Warn(format string, v ...interface{})
}

// AdminAuth guards the admin subrouter with a shared token. An empty
// configured token disables the whole admin surface.
func AdminAuth(token string, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				logger.Warn("admin request rejected: admin token not configured")
				handlers.RespondForbidden(w, "admin interface is disabled")
				return
			}

			provided := r.Header.Get(adminTokenHeader)
			if subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
				logger.Warn("admin request rejected: bad token, path=%s", r.URL.Path)
				handlers.RespondUnauthorized(w, "invalid admin token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
