package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-ops/middleware"
	"hotel-ops/services"
)

type authenticator interface {
	Login(ctx context.Context, email, password string) (services.LoginResult, error)
	OwnerLogin(ctx context.Context, email, password string) (services.LoginResult, error)
	Logout(ctx context.Context, token string) error
}

type AuthController struct {
	Auth         authenticator
	Audit        auditor
	SecureCookie bool
	Log          *zap.Logger
}

func NewAuthController(auth authenticator, audit auditor, secure bool, log *zap.Logger) *AuthController {
	return &AuthController{Auth: auth, Audit: auditOrNop(audit), SecureCookie: secure, Log: log}
}

type loginPayload struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (p loginPayload) login() string {
	if e := strings.TrimSpace(p.Email); e != "" {
		return e
	}
	return strings.TrimSpace(p.Username)
}

// ----------------------------------------------------
// Login (POST /api/auth/login)
// ----------------------------------------------------

func (ctl *AuthController) Login(c *gin.Context) {
	ctl.login(c, ctl.Auth.Login)
}

// ----------------------------------------------------
// Owner Login (POST /api/auth/owner/login)
// ----------------------------------------------------

func (ctl *AuthController) OwnerLogin(c *gin.Context) {
	ctl.login(c, ctl.Auth.OwnerLogin)
}

func (ctl *AuthController) login(c *gin.Context, fn func(context.Context, string, string) (services.LoginResult, error)) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		badPayload(c, err)
		return
	}
	email := payload.login()
	if email == "" || payload.Password == "" {
		respondError(c, ctl.Log, services.ErrValidation)
		return
	}

	res, err := fn(c.Request.Context(), email, payload.Password)
	if err != nil {
		respondError(c, ctl.Log, err)
		return
	}

	maxAge := int(time.Until(res.ExpiresAt).Seconds())
	if maxAge < 0 {
		maxAge = 0
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, res.Token, maxAge, "/", "", ctl.SecureCookie, true)

	ctl.Audit.Record(c.Request.Context(), res.User, "login", res.User.Kind, res.User.SubjectID, nil, nil, c.ClientIP())
	c.JSON(http.StatusOK, res)
}

// ----------------------------------------------------
// Logout (POST /api/auth/logout)
// ----------------------------------------------------

func (ctl *AuthController) Logout(c *gin.Context) {
	if tok := middleware.BearerToken(c); tok != "" {
		if err := ctl.Auth.Logout(c.Request.Context(), tok); err != nil {
			ctl.Log.Warn("logout failed", zap.Error(err))
		}
	}
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", ctl.SecureCookie, true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// ----------------------------------------------------
// Current identity (GET /api/auth/me)
// ----------------------------------------------------

func (ctl *AuthController) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": identity(c)})
}
