package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/onside-finance/onside/internal/models"
	"github.com/onside-finance/onside/internal/services"
	"go.uber.org/zap"
)

const (
	userKey     = "user"
	usernameKey = "username"

	// TestUserHeader names the caller directly when test mode is on.
	TestUserHeader = "X-Test-Username"
)

// SessionAuthenticator resolves the caller from a browser session.
type SessionAuthenticator interface {
	SessionUser(c *gin.Context) (*models.User, bool)
}

type AuthMiddleware struct {
	tokenService *services.TokenService
	userService  *services.UserService
	sessions     SessionAuthenticator
	testMode     bool
}

func NewAuthMiddleware(tokenService *services.TokenService, userService *services.UserService, testMode bool) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
		userService:  userService,
		testMode:     testMode,
	}
}

// WithSessions enables session authentication as a fallback when no
// Authorization header is sent.
func (m *AuthMiddleware) WithSessions(sessions SessionAuthenticator) *AuthMiddleware {
	m.sessions = sessions
	return m
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.testMode {
			if username := c.GetHeader(TestUserHeader); username != "" {
				user, err := m.userService.GetByUsername(username)
				if err != nil {
					abortUnauthorized(c, "Invalid test user.")
					return
				}
				setUser(c, user)
				c.Next()
				return
			}
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			if m.sessions != nil {
				if user, ok := m.sessions.SessionUser(c); ok {
					setUser(c, user)
					c.Next()
					return
				}
			}
			abortUnauthorized(c, "Authentication credentials were not provided.")
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || (parts[0] != "Bearer" && parts[0] != "Token") {
			abortUnauthorized(c, "Invalid authorization header format.")
			return
		}

		user, err := m.tokenService.ValidateToken(parts[1])
		if err != nil {
			zap.L().Debug("rejected api token", zap.Error(err))
			abortUnauthorized(c, "Invalid or expired token.")
			return
		}

		setUser(c, user)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.Header("WWW-Authenticate", `Token realm="api"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
}

func setUser(c *gin.Context, user *models.User) {
	c.Set(userKey, user)
	c.Set(usernameKey, user.Username)
}

// GetUser returns the authenticated caller, or nil outside RequireAuth.
func GetUser(c *gin.Context) *models.User {
	value, exists := c.Get(userKey)
	if !exists {
		return nil
	}
	user, _ := value.(*models.User)
	return user
}

func GetUsername(c *gin.Context) string {
	return c.GetString(usernameKey)
}
