package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/join-board-api/internal/dto"
	apierrors "github.com/yukikurage/join-board-api/internal/errors"
	"github.com/yukikurage/join-board-api/internal/middleware"
	"github.com/yukikurage/join-board-api/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register creates a user account and returns it with its token.
func (h *AuthHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		Email               string `json:"email" binding:"required,email,max=254"`
		Name                string `json:"name" binding:"max=255"`
		Password            string `json:"password" binding:"required,min=8"`
		ConfirmPassword     string `json:"confirm_password" binding:"required"`
		AcceptPrivacyPolicy *bool  `json:"accept_privacy_policy" binding:"required"`
	}

	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authService.Register(c.Request.Context(), services.RegisterInput{
		Email:               req.Email,
		Name:                strings.TrimSpace(req.Name),
		Password:            req.Password,
		ConfirmPassword:     req.ConfirmPassword,
		AcceptPrivacyPolicy: *req.AcceptPrivacyPolicy,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToAuthResponse(*result.User, result.Token))
}

// Login authenticates with email and password.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" binding:"required,email,max=254"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authService.Login(c.Request.Context(), services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAuthResponse(*result.User, result.Token))
}

// GuestLogin logs in the shared guest account, creating it on first use.
func (h *AuthHandler) GuestLogin(c *gin.Context) {
	result, err := h.authService.GuestLogin(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAuthResponse(*result.User, result.Token))
}

// Logout deletes the caller's token.
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.BadRequest(c, apierrors.MsgLogoutNotAuthenticated)
		return
	}

	if err := h.authService.Logout(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": apierrors.Translate(c, apierrors.MsgLoggedOut)})
}

// GetCurrentUser returns the authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	user, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, apierrors.MsgNotAuthenticated)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}
