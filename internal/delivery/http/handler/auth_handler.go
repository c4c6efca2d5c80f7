package handler

import (
	"context"
	"net/http"
	"time"

	"lost-and-found/internal/config"
	"lost-and-found/internal/middleware"
	"lost-and-found/internal/usecase/auth"
	"lost-and-found/internal/usecase/user"
	appErrors "lost-and-found/pkg/errors"
	"lost-and-found/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *auth.RegisterRequest) (*user.UserResponse, error)
	Login(ctx context.Context, req *auth.LoginRequest) (*auth.LoginResult, error)
	LoginWithExternalProvider(ctx context.Context, profile *auth.ExternalProfile) (*auth.LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (*auth.IssuedToken, error)
	Logout(ctx context.Context, refreshToken string) error
	RequestReset(ctx context.Context, req *auth.ForgotPasswordRequest) error
	VerifyReset(ctx context.Context, session string) (*auth.ResetSessionResponse, error)
	CompleteReset(ctx context.Context, req *auth.ResetPasswordRequest) error
}

type ProfileReader interface {
	GetProfile(ctx context.Context, userID uint) (*user.UserResponse, error)
}

type AuthHandler struct {
	service     AuthService
	profiles    ProfileReader
	oauth       auth.OAuthProvider
	cookies     cookieJar
	frontendURL string
}

// NewAuthHandler wires the auth endpoints. oauth may be nil, in which case
// the Google endpoints answer 404.
func NewAuthHandler(service AuthService, profiles ProfileReader, oauth auth.OAuthProvider, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		service:     service,
		profiles:    profiles,
		oauth:       oauth,
		cookies:     newCookieJar(cfg.Cookie),
		frontendURL: cfg.Server.FrontendURL,
	}
}

// RegisterRoutes mounts the public endpoints; authMW guards /me.
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/refresh", h.Refresh)
		authGroup.POST("/logout", h.Logout)
		authGroup.POST("/forgot-password", h.ForgotPassword)
		authGroup.GET("/verify-reset", h.VerifyReset)
		authGroup.POST("/reset-password", h.ResetPassword)
		authGroup.GET("/google", h.GoogleLogin)
		authGroup.GET("/google/callback", h.GoogleCallback)
		authGroup.GET("/me", authMW, h.Me)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	created, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "User registered successfully", created)
}

// Login puts the token pair in HttpOnly cookies; the body carries only the user.
func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	req.Email = utils.SanitizeEmail(req.Email)

	result, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.startSession(c, result)
	utils.SuccessResponse(c, http.StatusOK, "Login successful", gin.H{"user": result.User})
}

func (h *AuthHandler) startSession(c *gin.Context, result *auth.LoginResult) {
	h.cookies.setAccess(c, result.Tokens.Access.Token, result.Tokens.Access.ExpiresAt)
	h.cookies.setRefresh(c, result.Tokens.Refresh.Token, result.Tokens.Refresh.ExpiresAt)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken, _ := c.Cookie(middleware.RefreshTokenCookie)

	access, err := h.service.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.cookies.setAccess(c, access.Token, access.ExpiresAt)
	utils.SuccessResponse(c, http.StatusOK, "Token refreshed successfully", nil)
}

// Logout always succeeds and clears both cookies.
func (h *AuthHandler) Logout(c *gin.Context) {
	refreshToken, _ := c.Cookie(middleware.RefreshTokenCookie)

	if err := h.service.Logout(c.Request.Context(), refreshToken); err != nil {
		middleware.RequestLogger(c).Warn("Logout could not revoke refresh token",
			zap.Error(err),
		)
	}

	h.cookies.clear(c, middleware.AccessTokenCookie)
	h.cookies.clear(c, middleware.RefreshTokenCookie)
	utils.SuccessResponse(c, http.StatusOK, "Logged out successfully", nil)
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req auth.ForgotPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.service.RequestReset(c.Request.Context(), &req); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "A reset link has been sent to your email", nil)
}

func (h *AuthHandler) VerifyReset(c *gin.Context) {
	session := c.Query("session")
	if session == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Reset session is required")
		return
	}

	resp, err := h.service.VerifyReset(c.Request.Context(), session)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Reset session is valid", resp)
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req auth.ResetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.service.CompleteReset(c.Request.Context(), &req); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Password reset successfully", nil)
}

func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	if h.oauth == nil {
		utils.ErrorResponse(c, http.StatusNotFound, "Google login is not configured")
		return
	}

	state := uuid.NewString()
	h.cookies.set(c, oauthStateCookie, state, h.cookies.now().Add(10*time.Minute))
	c.Redirect(http.StatusTemporaryRedirect, h.oauth.AuthCodeURL(state))
}

// GoogleCallback finishes the code flow and sends the browser back to the
// frontend with the session cookies set.
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	if h.oauth == nil {
		utils.ErrorResponse(c, http.StatusNotFound, "Google login is not configured")
		return
	}

	expected, _ := c.Cookie(oauthStateCookie)
	h.cookies.clear(c, oauthStateCookie)
	if expected == "" || c.Query("state") != expected {
		respondWithError(c, appErrors.ErrOAuthStateMismatch)
		return
	}

	code := c.Query("code")
	if code == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Authorization code is required")
		return
	}

	profile, err := h.oauth.Exchange(c.Request.Context(), code)
	if err != nil {
		middleware.RequestLogger(c).Warn("Google code exchange failed",
			zap.Error(err),
		)
		utils.ErrorResponse(c, http.StatusUnauthorized, "Google authentication failed")
		return
	}

	result, err := h.service.LoginWithExternalProvider(c.Request.Context(), profile)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.startSession(c, result)
	c.Redirect(http.StatusFound, h.frontendURL)
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	profile, err := h.profiles.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "User retrieved successfully", gin.H{"user": profile})
}
