package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminMiddleware grants the admin routes to the usernames listed in ADMIN_USERS.
type AdminMiddleware struct {
	adminUsers map[string]struct{}
}

func NewAdminMiddleware(adminUsers []string) *AdminMiddleware {
	set := make(map[string]struct{}, len(adminUsers))
	for _, name := range adminUsers {
		set[name] = struct{}{}
	}
	return &AdminMiddleware{adminUsers: set}
}

func (m *AdminMiddleware) IsAdmin(username string) bool {
	_, ok := m.adminUsers[username]
	return ok
}

func (m *AdminMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		username := GetUsername(c)
		if username == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication credentials were not provided."})
			return
		}

		if !m.IsAdmin(username) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "You do not have permission to perform this action."})
			return
		}

		c.Next()
	}
}
