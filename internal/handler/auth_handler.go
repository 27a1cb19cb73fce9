package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Register handles POST /api/auth/register.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failStatus(c, http.StatusBadRequest, "email and password are required")
		return
	}
	user, err := h.Auth.Register(req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		fail(c, err)
		return
	}
	created(c, user)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/auth/login and returns a bearer token.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failStatus(c, http.StatusBadRequest, "email and password are required")
		return
	}
	user, token, err := h.Auth.Login(req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"token": token, "user": user})
}

// Logout handles POST /api/auth/logout.
func (h *Handler) Logout(c *gin.Context) {
	if err := h.Auth.Logout(bearerToken(c.GetHeader("Authorization"))); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}

// Me handles GET /api/auth/me.
func (h *Handler) Me(c *gin.Context) {
	ok(c, currentUser(c))
}

type recaptchaRequest struct {
	Token string `json:"token"`
}

// VerifyRecaptcha handles POST /api/verify-recaptcha.
func (h *Handler) VerifyRecaptcha(c *gin.Context) {
	var req recaptchaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failStatus(c, http.StatusBadRequest, "token is required")
		return
	}
	valid, err := h.Recaptcha.Verify(req.Token, c.ClientIP())
	if err != nil {
		fail(c, err)
		return
	}
	if !valid {
		failStatus(c, http.StatusBadRequest, "recaptcha verification failed")
		return
	}
	ok(c, gin.H{"valid": true})
}
