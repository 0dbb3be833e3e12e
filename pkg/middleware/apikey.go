package middleware

import (
	"crypto/sha256"
	"crypto/subtle"
	"net/http"

	"eventhub/pkg/utils"

	"go.uber.org/zap"
)

// APIKey guards admin routes with a static key from config. Both sides are
// hashed before comparing so the compare is constant-time regardless of
// key length.
func APIKey(expectedKey string, logger *zap.Logger) func(http.Handler) http.Handler {
	expectedHash := sha256.Sum256([]byte(expectedKey))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if expectedKey == "" {
				logger.Error("Admin API key is not configured")
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			provided := r.Header.Get("X-API-Key")
			if provided == "" {
				utils.ResponseUnauthorized(w, "Missing API key")
				return
			}

			providedHash := sha256.Sum256([]byte(provided))
			if subtle.ConstantTimeCompare(providedHash[:], expectedHash[:]) != 1 {
				logger.Warn("Invalid admin API key",
					zap.String("path", r.URL.Path),
					zap.String("ip", r.RemoteAddr),
				)
				utils.ResponseForbidden(w, "Invalid API key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
