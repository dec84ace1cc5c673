package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/boumia-pos/internal/application/service"
	"github.com/sangkips/boumia-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/boumia-pos/internal/presentation/http/dto/response"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles cashier login
// @Summary Login
// @Description Authenticate the cashier against the backend and open a terminal session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Login credentials"
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	output, err := h.authService.Login(c.Request.Context(), &service.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", gin.H{
		"cashier":      output.Cashier,
		"session_id":   output.SessionID,
		"access_token": output.AccessToken,
		"token_type":   "Bearer",
	})
}

// Logout ends the terminal session
// @Summary Logout
// @Tags auth
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context(), GetSessionID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Logged out successfully", nil)
}

// Me returns the cashier bound to the session
func (h *AuthHandler) Me(c *gin.Context) {
	session := GetSession(c)
	if session == nil {
		return
	}

	response.OK(c, "Profile retrieved successfully", gin.H{
		"cashier":    session.Cashier,
		"session_id": session.ID,
		"logged_in":  session.CreatedAt,
	})
}
