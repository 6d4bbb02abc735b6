package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/partsearch/partsearch/errors"
)

// PermissionChecker decides whether a role holds a permission. Permissions
// use "resource:action" form.
type PermissionChecker interface {
	HasPermission(role, permission string) bool
}

// RolePermissions is a static role → permission-pattern map. Patterns match
// "resource:action" with "*" wildcards on either side ("parts:*", "*:read",
// "*:*").
type RolePermissions map[string][]string

// HasPermission implements PermissionChecker.
func (r RolePermissions) HasPermission(role, permission string) bool {
	for _, pattern := range r[role] {
		if matchPermission(pattern, permission) {
			return true
		}
	}
	return false
}

func matchPermission(pattern, permission string) bool {
	if pattern == permission || pattern == "*" || pattern == "*:*" {
		return true
	}
	pat := strings.SplitN(pattern, ":", 2)
	req := strings.SplitN(permission, ":", 2)
	if len(pat) != 2 || len(req) != 2 {
		return false
	}
	return (pat[0] == "*" || pat[0] == req[0]) && (pat[1] == "*" || pat[1] == req[1])
}

// PermissionFunc resolves the permission a request needs. An empty return
// means the request is not guarded.
type PermissionFunc func(c *gin.Context) string

// RequirePermission returns a middleware enforcing the resolved permission
// against the "role" claim stored by the auth middleware. Requests with no
// matching permission are rejected with 403.
func RequirePermission(checker PermissionChecker, required PermissionFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		permission := required(c)
		if permission == "" {
			c.Next()
			return
		}

		role := ""
		if v, ok := c.Get("role"); ok {
			role, _ = v.(string)
		}
		if !checker.HasPermission(role, permission) {
			c.AbortWithStatusJSON(http.StatusForbidden,
				apperrors.Forbidden("insufficient permissions").ToResponse())
			return
		}
		c.Next()
	}
}

// PartsPermission maps parts API requests to the permission they need:
// reads need parts:read, creates and updates parts:write, deletes
// parts:delete. Non-parts paths are not guarded.
func PartsPermission(c *gin.Context) string {
	if !strings.HasPrefix(c.Request.URL.Path, "/parts") {
		return ""
	}
	switch c.Request.Method {
	case http.MethodGet, http.MethodHead:
		return "parts:read"
	case http.MethodDelete:
		return "parts:delete"
	default:
		return "parts:write"
	}
}
