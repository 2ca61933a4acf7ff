package handlers

import (
	"encoding/json"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	svcauth "github.com/priceoptimizer/backend/services/auth"
	"github.com/priceoptimizer/backend/utils"
	"go.uber.org/zap"
)

// Cookie names set on login and refresh. HTTP-only so the SPA never
// touches token material directly.
const (
	accessTokenCookie  = "access_token"
	refreshTokenCookie = "refresh_token"
)

// LoginRequest is the JSON login payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SessionResponse is returned on login and refresh. Token material
// travels in cookies only.
type SessionResponse struct {
	UserName  string `json:"user_name"`
	UserID    int64  `json:"user_id"`
	Role      string `json:"role"`
	ExpiresIn int    `json:"expires_in"` // seconds until access token expires
}

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	service      *svcauth.Service
	logger       *zap.Logger
	secureCookie bool
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service *svcauth.Service, secureCookie bool, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service:      service,
		logger:       logger,
		secureCookie: secureCookie,
	}
}

// HandleSignup handles POST /auth/signup
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := chimw.GetReqID(ctx)

	var req svcauth.SignupInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to parse signup body",
			zap.String("request_id", requestID),
			zap.Error(err))
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	if _, err := h.service.Signup(ctx, req); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteCreated(w, map[string]string{
		"message": "Signup complete. Please log in to continue.",
	})
}

// HandleLogin handles POST /auth/login
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := chimw.GetReqID(ctx)

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to parse login body",
			zap.String("request_id", requestID),
			zap.Error(err))
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	session, err := h.service.Login(ctx, req.Email, req.Password)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	h.writeSession(w, session)
}

// HandleRefresh handles POST /auth/refresh. The refresh token comes from
// its cookie.
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cookie, err := r.Cookie(refreshTokenCookie)
	if err != nil || cookie.Value == "" {
		_ = utils.WriteUnauthorized(w, "Refresh token not found in cookies")
		return
	}

	session, err := h.service.Refresh(ctx, cookie.Value)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	h.writeSession(w, session)
}

// writeSession sets both token cookies and returns the session body.
func (h *AuthHandler) writeSession(w http.ResponseWriter, session *svcauth.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessTokenCookie,
		Value:    session.AccessToken,
		MaxAge:   int(session.ExpiresIn.Seconds()),
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     refreshTokenCookie,
		Value:    session.RefreshToken,
		MaxAge:   int(h.service.RefreshTTL().Seconds()),
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	_ = utils.WriteOK(w, SessionResponse{
		UserName:  session.User.Name,
		UserID:    session.User.ID,
		Role:      string(session.User.Role),
		ExpiresIn: int(session.ExpiresIn.Seconds()),
	})
}
