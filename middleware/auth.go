package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"samiratravel/logger"
	"samiratravel/models"
	"samiratravel/services"
	"samiratravel/utils"
)

// SessionStore is the part of the admin session service the guard needs.
type SessionStore interface {
	Validate(ctx context.Context, uid, email string) (models.AdminSession, error)
	Revoke(ctx context.Context, uid string) error
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(models.ErrorResponse(message, nil))
}

// AuthMiddleware admin session guard. The bearer token must be valid and the
// server-side session record must still match it; a stale record is revoked.
func AuthMiddleware(tokens *utils.TokenManager, sessions SessionStore) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			requestID := RequestIDFromContext(r.Context())

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.WithFields(map[string]interface{}{
					"request_id": requestID,
					"ip":         ClientIP(r),
				}).Warn("Missing authorization header")
				writeUnauthorized(w, "Authorization header required")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				logger.WithFields(map[string]interface{}{
					"request_id": requestID,
					"ip":         ClientIP(r),
				}).Warn("Invalid authorization header format")
				writeUnauthorized(w, "Invalid authorization header format")
				return
			}

			claims, err := tokens.ValidateToken(parts[1])
			if err != nil {
				logger.WithFields(map[string]interface{}{
					"request_id": requestID,
					"ip":         ClientIP(r),
					"error":      err.Error(),
				}).Warn("Invalid or expired token")
				writeUnauthorized(w, "Session expired. Please sign in again.")
				return
			}

			if _, err := sessions.Validate(r.Context(), claims.UID, claims.Email); err != nil {
				switch {
				case errors.Is(err, services.ErrSessionNotFound),
					errors.Is(err, services.ErrSessionMismatch),
					errors.Is(err, services.ErrSessionExpired):
					if revokeErr := sessions.Revoke(r.Context(), claims.UID); revokeErr != nil {
						logger.Error("Failed to revoke stale session %s: %v", claims.UID, revokeErr)
					}
					logger.WithFields(map[string]interface{}{
						"request_id": requestID,
						"admin_uid":  claims.UID,
						"reason":     err.Error(),
					}).Warn("Stale admin session rejected")
					writeUnauthorized(w, "Session expired. Please sign in again.")
				default:
					logger.WithFields(map[string]interface{}{
						"request_id": requestID,
						"admin_uid":  claims.UID,
						"error":      err.Error(),
					}).Error("Failed to validate admin session")
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(models.ErrorResponse("Failed to validate session", err))
				}
				return
			}

			logger.WithFields(map[string]interface{}{
				"request_id": requestID,
				"admin_uid":  claims.UID,
				"email":      claims.Email,
			}).Debug("Admin authenticated")

			ctx := WithAdmin(r.Context(), AdminIdentity{UID: claims.UID, Email: claims.Email})
			next.ServeHTTP(w, r.WithContext(ctx))
		}
	}
}
