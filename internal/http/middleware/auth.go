package middleware

import (
	"net/http"
	"strings"

	"bikie/internal/domain"

	"github.com/gin-gonic/gin"
)

const (
	userRoleKey    = "userRole"
	userSubjectKey = "userSubject"
)

// TokenVerifier turns a bearer token into the caller's identity.
type TokenVerifier interface {
	Verify(token string) (domain.RequestContext, error)
}

// Authenticate reads "Authorization: Bearer <token>" and stores the caller's
// role and subject on the context. Requests without a valid token are
// rejected with 401.
func Authenticate(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(raw, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			abortJSON(c, http.StatusUnauthorized, "unauthorized", "missing bearer token")
			return
		}
		rc, err := v.Verify(token)
		if err != nil {
			abortJSON(c, http.StatusUnauthorized, "unauthorized", err.Error())
			return
		}
		c.Set(userRoleKey, rc.Role)
		c.Set(userSubjectKey, rc.Subject)
		c.Next()
	}
}

// RequireRoles only lets through requests whose role, as set by
// Authenticate, is one of allowedRoles.
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[strings.ToLower(strings.TrimSpace(r))] = struct{}{}
	}

	return func(c *gin.Context) {
		role := c.GetString(userRoleKey)
		if role == "" {
			abortJSON(c, http.StatusUnauthorized, "unauthorized", "no role on request")
			return
		}
		if _, ok := allowed[strings.ToLower(strings.TrimSpace(role))]; !ok {
			abortJSON(c, http.StatusForbidden, "forbidden", "role not allowed")
			return
		}
		c.Next()
	}
}

// CurrentUser returns what Authenticate stored for this request.
func CurrentUser(c *gin.Context) domain.RequestContext {
	return domain.RequestContext{Subject: c.GetString(userSubjectKey), Role: c.GetString(userRoleKey)}
}

func abortJSON(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error":      message,
		"code":       code,
		"message":    message,
		"request_id": GetRequestID(c),
	})
}
