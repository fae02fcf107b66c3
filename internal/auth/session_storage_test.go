package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestSessionStorage_RoundTrip(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(sessions.Sessions("onside_session", cookie.NewStore([]byte("secret"))))
	r.GET("/set", func(c *gin.Context) {
		NewSessionStorage(sessions.Default(c)).SetItem("idToken", "abc")
		c.Status(http.StatusNoContent)
	})
	r.GET("/get", func(c *gin.Context) {
		storage := NewSessionStorage(sessions.Default(c))
		c.String(http.StatusOK, storage.GetItem("idToken")+"|"+storage.GetItem("missing"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/set", nil))
	cookies := w.Result().Cookies()
	assert.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/get", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc|", w.Body.String())
}
