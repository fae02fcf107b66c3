package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/onside-finance/onside/internal/database"
	"github.com/onside-finance/onside/internal/models"
	"github.com/onside-finance/onside/internal/repository"
	"github.com/onside-finance/onside/internal/schemas"
	"github.com/onside-finance/onside/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fixture struct {
	users  *services.UserService
	tokens *services.TokenService
	alice  *models.User
}

func setupFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	users := services.NewUserService(db, userRepo,
		repository.NewTransactionRepository(db),
		repository.NewSubscriptionRepository(db),
		repository.NewGoalRepository(db),
		tokenRepo,
	)
	users.SetPasswordCost(bcrypt.MinCost)

	alice, err := users.Register(schemas.UserCreate{Username: "alice", Password: "password123"})
	require.NoError(t, err)

	return &fixture{
		users:  users,
		tokens: services.NewTokenService(tokenRepo, "secret", time.Hour),
		alice:  alice,
	}
}

func whoami(c *gin.Context) {
	c.String(http.StatusOK, GetUsername(c))
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type stubSessions struct{ user *models.User }

func (s stubSessions) SessionUser(*gin.Context) (*models.User, bool) {
	return s.user, s.user != nil
}

func TestRequireAuth(t *testing.T) {
	f := setupFixture(t)
	token, err := f.tokens.GenerateToken(f.alice, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name     string
		testMode bool
		headers  map[string]string
		status   int
		body     string
	}{
		{"no credentials", false, nil, http.StatusUnauthorized, ""},
		{"bearer token", false, map[string]string{"Authorization": "Bearer " + token.Token}, http.StatusOK, "alice"},
		{"token keyword", false, map[string]string{"Authorization": "Token " + token.Token}, http.StatusOK, "alice"},
		{"bad scheme", false, map[string]string{"Authorization": "Basic abc"}, http.StatusUnauthorized, ""},
		{"bad token", false, map[string]string{"Authorization": "Bearer nope"}, http.StatusUnauthorized, ""},
		{"test header ignored outside test mode", false, map[string]string{TestUserHeader: "alice"}, http.StatusUnauthorized, ""},
		{"test header", true, map[string]string{TestUserHeader: "alice"}, http.StatusOK, "alice"},
		{"unknown test user", true, map[string]string{TestUserHeader: "mallory"}, http.StatusUnauthorized, ""},
		{"token still works in test mode", true, map[string]string{"Authorization": "Bearer " + token.Token}, http.StatusOK, "alice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/me", NewAuthMiddleware(f.tokens, f.users, tt.testMode).RequireAuth(), whoami)

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			w := serve(r, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, w.Body.String())
			}
		})
	}
}

func TestRequireAuth_SessionFallback(t *testing.T) {
	f := setupFixture(t)

	r := gin.New()
	auth := NewAuthMiddleware(f.tokens, f.users, false).WithSessions(stubSessions{user: f.alice})
	r.GET("/me", auth.RequireAuth(), whoami)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", w.Body.String())
}

func TestRequireAdmin(t *testing.T) {
	f := setupFixture(t)
	_, err := f.users.Register(schemas.UserCreate{Username: "bob", Password: "password123"})
	require.NoError(t, err)

	r := gin.New()
	auth := NewAuthMiddleware(f.tokens, f.users, true)
	r.GET("/admin", auth.RequireAuth(), NewAdminMiddleware([]string{"alice"}).RequireAdmin(), whoami)

	for username, status := range map[string]int{"alice": http.StatusOK, "bob": http.StatusForbidden} {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set(TestUserHeader, username)
		assert.Equal(t, status, serve(r, req).Code, username)
	}

	r2 := gin.New()
	r2.GET("/admin", NewAdminMiddleware([]string{"alice"}).RequireAdmin(), whoami)
	assert.Equal(t, http.StatusUnauthorized, serve(r2, httptest.NewRequest(http.MethodGet, "/admin", nil)).Code)
}

func TestRequestIDAndLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	r := gin.New()
	r.Use(RequestID(), RequestLogger(zap.New(core), "/health"))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/ping", nil))
	id := w.Header().Get(RequestIDHeader)
	assert.Len(t, id, 36)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, id)
	assert.Equal(t, id, serve(r, req).Header().Get(RequestIDHeader))

	serve(r, httptest.NewRequest(http.MethodGet, "/health", nil))

	entries := logs.FilterMessage("http request").All()
	require.Len(t, entries, 2)
	assert.Equal(t, "/ping", entries[0].ContextMap()["path"])
	assert.Equal(t, id, entries[0].ContextMap()["request_id"])
}

func TestRecovery(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)

	r := gin.New()
	r.Use(Recovery(zap.New(core)))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}
