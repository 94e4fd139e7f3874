package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hotel-ops/services"
	"hotel-ops/utils"
)

const identityKey = "identity"

// SessionCookie is read when no Authorization header is sent.
const SessionCookie = "session_token"

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (services.Identity, error)
}

// BearerToken extracts the access token from the request.
func BearerToken(c *gin.Context) string {
	h := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	tok, _ := c.Cookie(SessionCookie)
	return tok
}

// Auth resolves the caller's identity and makes it available to handlers
// through IdentityFrom.
func Auth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok := BearerToken(c)
		if tok == "" {
			utils.AbortJSONError(c, http.StatusUnauthorized, "error.unauthenticated", "not logged in")
			return
		}
		ident, err := auth.Authenticate(c.Request.Context(), tok)
		if err != nil {
			if errors.Is(err, services.ErrSessionExpired) {
				utils.AbortJSONError(c, http.StatusUnauthorized, "error.sessionExpired", "session expired, please log in again")
				return
			}
			_ = c.Error(err)
			utils.AbortJSONError(c, http.StatusInternalServerError, "error.internal", "could not verify session")
			return
		}
		c.Set(identityKey, ident)
		c.Next()
	}
}

func IdentityFrom(c *gin.Context) (services.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return services.Identity{}, false
	}
	ident, ok := v.(services.Identity)
	return ident, ok
}

// RequirePermission allows staff holding any of perms.
func RequirePermission(perms ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := IdentityFrom(c)
		if !ok {
			utils.AbortJSONError(c, http.StatusUnauthorized, "error.unauthenticated", "not logged in")
			return
		}
		if ident.IsOwner() {
			utils.AbortJSONError(c, http.StatusForbidden, "error.forbidden", "staff access only")
			return
		}
		for _, p := range perms {
			if ident.Can(p) {
				c.Next()
				return
			}
		}
		utils.AbortJSONError(c, http.StatusForbidden, "error.forbidden", "missing permission: "+strings.Join(perms, " or "))
	}
}

// OwnerOnly admits owner portal identities.
func OwnerOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := IdentityFrom(c)
		if !ok {
			utils.AbortJSONError(c, http.StatusUnauthorized, "error.unauthenticated", "not logged in")
			return
		}
		if !ident.IsOwner() {
			utils.AbortJSONError(c, http.StatusForbidden, "error.forbidden", "owner access only")
			return
		}
		c.Next()
	}
}
