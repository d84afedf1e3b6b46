package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"samiratravel/limiter"
	"samiratravel/logger"
	"samiratravel/middleware"
	"samiratravel/models"
	"samiratravel/services"
	"samiratravel/utils"
)

// AttemptLimiter is the login limiter surface the auth handler uses.
type AttemptLimiter interface {
	Status(ctx context.Context, key string) (limiter.Status, error)
	RecordFailure(ctx context.Context, key string) (limiter.Status, error)
	Reset(ctx context.Context, key string) error
	Limit() int
}

// AuthHandler handles admin sign-in, sign-out and the current admin.
type AuthHandler struct {
	verifier services.IdentityVerifier
	sessions services.AdminSessionService
	tokens   *utils.TokenManager
	limiter  AttemptLimiter
	activity services.ActivityService
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(verifier services.IdentityVerifier, sessions services.AdminSessionService, tokens *utils.TokenManager, attempts AttemptLimiter, activity services.ActivityService) *AuthHandler {
	return &AuthHandler{
		verifier: verifier,
		sessions: sessions,
		tokens:   tokens,
		limiter:  attempts,
		activity: activity,
	}
}

func limiterKey(r *http.Request) string {
	return utils.HashClientKey(middleware.ClientScope(r))
}

func (h *AuthHandler) loginStatus(st limiter.Status) models.LoginStatus {
	status := models.LoginStatus{
		Blocked:           st.Blocked,
		RemainingAttempts: st.RemainingAttempts,
		AttemptLimit:      h.limiter.Limit(),
	}
	if st.Blocked {
		status.BlockedUntil = st.BlockedUntil.UTC().Format(time.RFC3339)
	}
	return status
}

func blockedMessage(until time.Time) string {
	return fmt.Sprintf("This device is blocked until %s.", utils.FormatDisplayTime(until))
}

func (h *AuthHandler) writeBlocked(w http.ResponseWriter, st limiter.Status) {
	w.Header().Set("Retry-After", fmt.Sprintf("%d", int(time.Until(st.BlockedUntil).Seconds())))
	writeJSON(w, http.StatusTooManyRequests, models.APIResponse{
		Status:  "error",
		Message: blockedMessage(st.BlockedUntil),
		Data:    h.loginStatus(st),
	})
}

// rejectLogin counts a failed attempt and answers with the remaining attempts
// or the lockout.
func (h *AuthHandler) rejectLogin(w http.ResponseWriter, r *http.Request, key string, cause error) {
	requestID := middleware.RequestIDFromContext(r.Context())

	st, err := h.limiter.RecordFailure(r.Context(), key)
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to record login failure")
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse("Login failed.", nil))
		return
	}

	logger.WithFields(map[string]interface{}{
		"request_id": requestID,
		"ip":         middleware.ClientIP(r),
		"reason":     cause.Error(),
		"remaining":  st.RemainingAttempts,
		"blocked":    st.Blocked,
	}).Warn("Login failed")

	if st.Blocked {
		h.writeBlocked(w, st)
		return
	}
	writeJSON(w, http.StatusUnauthorized, models.APIResponse{
		Status:  "error",
		Message: fmt.Sprintf("Login failed. Remaining attempts: %d.", st.RemainingAttempts),
		Error:   cause.Error(),
		Data:    h.loginStatus(st),
	})
}

// Login 관리자 로그인
// @Summary Admin sign-in
// @Description Exchanges a third-party ID token for an admin session token. Failed attempts are counted per client; after 3 failures the client is blocked for 7 days.
// @Tags Auth
// @Accept json
// @Produce json
// @Param X-Client-ID header string false "Stable client identifier"
// @Param request body models.LoginRequest true "ID token"
// @Success 200 {object} models.APIResponse{data=models.LoginResponse}
// @Failure 400 {object} models.APIResponse
// @Failure 401 {object} models.APIResponse{data=models.LoginStatus}
// @Failure 429 {object} models.APIResponse{data=models.LoginStatus}
// @Failure 500 {object} models.APIResponse
// @Router /api/admin/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.RequestIDFromContext(r.Context())
	key := limiterKey(r)

	st, err := h.limiter.Status(r.Context(), key)
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to read login limiter state")
	} else if st.Blocked {
		h.writeBlocked(w, st)
		return
	}

	var req models.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	identity, err := h.verifier.Verify(r.Context(), req.IDToken)
	if err != nil {
		h.rejectLogin(w, r, key, err)
		return
	}

	admin, err := h.sessions.Authorize(r.Context(), identity)
	if err != nil {
		if errors.Is(err, services.ErrNotAdmin) || errors.Is(err, services.ErrMissingEmail) {
			h.rejectLogin(w, r, key, err)
			return
		}
		writeServiceError(w, r, err, "Failed to check admin account")
		return
	}

	token, expiresAt, err := h.tokens.GenerateToken(identity.UID, admin.Email)
	if err != nil {
		writeServiceError(w, r, err, "Failed to generate token")
		return
	}

	identity.Email = admin.Email
	if identity.Name == "" {
		identity.Name = admin.Name
	}
	if _, err := h.sessions.Record(r.Context(), identity, time.Unix(expiresAt, 0)); err != nil {
		writeServiceError(w, r, err, "Failed to record session")
		return
	}

	if err := h.limiter.Reset(r.Context(), key); err != nil {
		logger.Error("Failed to reset login limiter: %v", err)
	}

	logger.WithFields(map[string]interface{}{
		"request_id": requestID,
		"admin_uid":  identity.UID,
		"email":      identity.Email,
	}).Info("Login successful")

	writeJSON(w, http.StatusOK, models.SuccessResponse("Login successful", models.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Identity:  identity,
	}))

	h.activity.Log(r.Context(), identity.UID, identity.Email, models.AdminActionLogin, "Login successful")
}

// LoginStatus
// @Summary Sign-in limiter state
// @Description Remaining attempts or lockout for the calling client
// @Tags Auth
// @Produce json
// @Param X-Client-ID header string false "Stable client identifier"
// @Success 200 {object} models.APIResponse{data=models.LoginStatus}
// @Router /api/admin/login/status [get]
func (h *AuthHandler) LoginStatus(w http.ResponseWriter, r *http.Request) {
	st, err := h.limiter.Status(r.Context(), limiterKey(r))
	if err != nil {
		writeServiceError(w, r, err, "Failed to read login limiter state")
		return
	}

	message := "Login available"
	if st.Blocked {
		message = blockedMessage(st.BlockedUntil)
	}
	writeJSON(w, http.StatusOK, models.SuccessResponse(message, h.loginStatus(st)))
}

// Logout
// @Summary Admin sign-out
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.APIResponse
// @Router /api/admin/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	admin := currentAdmin(r)
	if err := h.sessions.Revoke(r.Context(), admin.UID); err != nil {
		writeServiceError(w, r, err, "Failed to revoke session")
		return
	}

	writeJSON(w, http.StatusOK, models.SuccessResponse("Logged out", nil))
	h.activity.Log(r.Context(), admin.UID, admin.Email, models.AdminActionLogout, "Logout")
}

// GetMe 현재 로그인된 관리자 정보
// @Summary Current admin
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.APIResponse{data=models.Identity}
// @Failure 401 {object} models.APIResponse
// @Router /api/admin/me [get]
func (h *AuthHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	admin := currentAdmin(r)
	writeJSON(w, http.StatusOK, models.SuccessResponse("Admin retrieved", models.Identity{
		UID:   admin.UID,
		Email: admin.Email,
	}))
}
