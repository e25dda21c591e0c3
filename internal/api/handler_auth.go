package api

import (
	"github.com/labstack/echo/v4"
	"github.com/rh-rosa-lab/rosactl/internal/auth"
)

// AuthHandler handles operator login
type AuthHandler struct {
	config *ServerConfig
	auth   *auth.Auth
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(config *ServerConfig, a *auth.Auth) *AuthHandler {
	return &AuthHandler{
		config: config,
		auth:   a,
	}
}

// LoginRequest is the POST /api/auth/login body
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued access token
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"` // seconds
}

// Login handles POST /api/auth/login against the single operator account
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return ErrorBadRequest(c, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return ErrorBadRequest(c, err.Error())
	}

	if h.config.OperatorPasswordHash == "" {
		return ErrorServiceUnavailable(c, "Operator login is not configured")
	}

	if req.Username != h.config.OperatorUsername {
		return ErrorUnauthorized(c, "Invalid credentials")
	}

	if err := auth.CheckPassword(req.Password, h.config.OperatorPasswordHash); err != nil {
		return ErrorUnauthorized(c, "Invalid credentials")
	}

	token, err := h.auth.GenerateAccessToken(req.Username)
	if err != nil {
		return ErrorInternal(c, "Failed to issue token")
	}

	return SuccessOK(c, &LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(h.auth.GetAccessTTL().Seconds()),
	})
}
