package handler

import (
	"errors"
	"net/http"
	"time"

	"recruit-auth-service/internal/usecase/auth"
	pkgerrors "recruit-auth-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler handles HTTP requests for the authentication endpoints.
type AuthHandler struct {
	uc            auth.Usecase
	tokenTTL      time.Duration
	secureCookies bool
	log           *zap.Logger
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(uc auth.Usecase, tokenTTL time.Duration, secureCookies bool, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		uc:            uc,
		tokenTTL:      tokenTTL,
		secureCookies: secureCookies,
		log:           log,
	}
}

// RegisterRequest represents the HTTP request body for registration
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest represents the HTTP request body for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisteredUser is the public projection returned by Register
type RegisteredUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// SessionUser is the public projection returned by Login
type SessionUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// ProfileUser is the public projection returned by Me
type ProfileUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Bio   string `json:"bio"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error  string            `json:"error"`
	Issues []pkgerrors.Issue `json:"issues,omitempty"`
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("malformed register request", zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:  "Invalid input",
			Issues: []pkgerrors.Issue{{Field: "body", Message: "must be a JSON object"}},
		})
		return
	}

	resp, err := h.uc.Register(c.Request.Context(), auth.RegisterRequest{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user": RegisteredUser{
			ID:        resp.ID,
			Email:     resp.Email,
			Name:      resp.Name,
			CreatedAt: resp.CreatedAt,
		},
	})
}

// Login handles POST /api/auth/login. On success the token travels both ways:
// as an HttpOnly cookie for browsers and in the JSON body for other clients.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("malformed login request", zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:  "Invalid input",
			Issues: []pkgerrors.Issue{{Field: "body", Message: "must be a JSON object"}},
		})
		return
	}

	resp, err := h.uc.Login(c.Request.Context(), auth.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.setSessionCookie(c, resp.Token, int(h.tokenTTL.Seconds()))

	c.JSON(http.StatusOK, gin.H{
		"token": resp.Token,
		"user": SessionUser{
			ID:    resp.User.ID,
			Email: resp.User.Email,
			Name:  resp.User.Name,
		},
	})
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	tokenString, ok := extractToken(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: pkgerrors.ErrUnauthorized.Message})
		return
	}

	resp, err := h.uc.Authenticate(c.Request.Context(), tokenString)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": ProfileUser{
			ID:    resp.ID,
			Email: resp.Email,
			Name:  resp.Name,
			Bio:   resp.Bio,
		},
	})
}

// Logout handles POST /api/auth/logout. It is idempotent: the only effect is
// clearing the client's cookie. An already-issued token stays valid until its
// natural expiry since sessions are stateless.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"message": "Logged out",
	})
}

// handleError converts usecase errors to HTTP responses. Anything without a
// typed status becomes a generic 500; the detail stays in the logs.
func (h *AuthHandler) handleError(c *gin.Context, err error) {
	var validationErr *pkgerrors.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(validationErr.HTTPStatus(), ErrorResponse{
			Error:  validationErr.Message,
			Issues: validationErr.Issues,
		})
		return
	}

	var statusErr pkgerrors.HTTPStatuser
	if errors.As(err, &statusErr) {
		status := statusErr.HTTPStatus()
		if status == http.StatusInternalServerError {
			h.log.Error("internal error", zap.Error(err))
			c.JSON(status, ErrorResponse{Error: "Server error"})
			return
		}
		c.JSON(status, ErrorResponse{Error: err.Error()})
		return
	}

	h.log.Error("unexpected error", zap.Error(err))
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Server error"})
}
