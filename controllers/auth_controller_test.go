package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-ops/middleware"
	"hotel-ops/models"
	"hotel-ops/services"
)

type fakeLogin struct {
	loggedOut string
}

func (f *fakeLogin) result(kind string) services.LoginResult {
	return services.LoginResult{
		Token:     "tok-" + kind,
		ExpiresAt: time.Now().Add(time.Hour),
		User:      services.Identity{SubjectID: "u1", Kind: kind, Email: "admin@example.com"},
	}
}

func (f *fakeLogin) Login(_ context.Context, email, password string) (services.LoginResult, error) {
	if email != "admin@example.com" || password != "admin123" {
		return services.LoginResult{}, services.ErrInvalidCredentials
	}
	return f.result(models.SubjectStaff), nil
}

func (f *fakeLogin) OwnerLogin(_ context.Context, email, password string) (services.LoginResult, error) {
	if email != "owner@example.com" || password != "owner123" {
		return services.LoginResult{}, services.ErrInvalidCredentials
	}
	return f.result(models.SubjectOwner), nil
}

func (f *fakeLogin) Logout(_ context.Context, token string) error {
	f.loggedOut = token
	return nil
}

type recordingAuditor struct {
	actions []string
}

func (r *recordingAuditor) Record(_ context.Context, _ services.Identity, action, resourceType, _ string, _, _ any, _ string) {
	r.actions = append(r.actions, action+":"+resourceType)
}

func newAuthRouter(f *fakeLogin, audit auditor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	ctl := NewAuthController(f, audit, false, zap.NewNop())
	r := gin.New()
	r.POST("/api/auth/login", ctl.Login)
	r.POST("/api/auth/owner/login", ctl.OwnerLogin)
	r.POST("/api/auth/logout", ctl.Logout)
	return r
}

func TestLogin(t *testing.T) {
	audit := &recordingAuditor{}
	r := newAuthRouter(&fakeLogin{}, audit)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"admin@example.com","password":"admin123"}`)))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var res services.LoginResult
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Token != "tok-staff" || res.User.SubjectID != "u1" {
		t.Fatalf("unexpected result %+v", res)
	}

	var cookie *http.Cookie
	for _, ck := range w.Result().Cookies() {
		if ck.Name == middleware.SessionCookie {
			cookie = ck
		}
	}
	if cookie == nil || cookie.Value != "tok-staff" || !cookie.HttpOnly {
		t.Fatalf("expected http-only session cookie, got %+v", cookie)
	}
	if len(audit.actions) != 1 || audit.actions[0] != "login:staff" {
		t.Fatalf("expected login to be audited, got %v", audit.actions)
	}
}

func TestLoginFailures(t *testing.T) {
	r := newAuthRouter(&fakeLogin{}, nil)

	tests := []struct {
		path   string
		body   string
		status int
	}{
		{"/api/auth/login", `{"email":"admin@example.com","password":"wrong"}`, http.StatusUnauthorized},
		{"/api/auth/login", `{"email":"","password":""}`, http.StatusBadRequest},
		{"/api/auth/login", `not json`, http.StatusBadRequest},
		{"/api/auth/owner/login", `{"email":"admin@example.com","password":"admin123"}`, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(tt.body)))
		if w.Code != tt.status {
			t.Fatalf("%s %s: expected %d, got %d", tt.path, tt.body, tt.status, w.Code)
		}
	}
}

func TestOwnerLoginAcceptsUsername(t *testing.T) {
	r := newAuthRouter(&fakeLogin{}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/auth/owner/login", strings.NewReader(`{"username":"owner@example.com","password":"owner123"}`)))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestLogoutRevokesBearerToken(t *testing.T) {
	f := &fakeLogin{}
	r := newAuthRouter(f, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer tok-staff")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if f.loggedOut != "tok-staff" {
		t.Fatalf("expected session to be revoked, got %q", f.loggedOut)
	}
}
