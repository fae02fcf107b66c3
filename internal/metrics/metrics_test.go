package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware_UsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c := NewCollector()

	r := gin.New()
	r.Use(c.Middleware())
	r.GET("/api/goals/:id/", func(ctx *gin.Context) { ctx.Status(http.StatusNoContent) })

	for _, path := range []string{"/api/goals/1/", "/api/goals/2/", "/missing"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(c.requests.WithLabelValues("/api/goals/:id/", "GET", "204")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.requests.WithLabelValues("unmatched", "GET", "404")))
}

func TestRecordWrite(t *testing.T) {
	c := NewCollector()
	c.RecordWrite("transaction", "create")
	c.RecordWrite("transaction", "create")

	assert.Equal(t, 2.0, testutil.ToFloat64(c.records.WithLabelValues("transaction", "create")))

	var nilCollector *Collector
	assert.NotPanics(t, func() { nilCollector.RecordWrite("goal", "delete") })
}

func TestHandler(t *testing.T) {
	c := NewCollector()
	c.RecordWrite("goal", "update")

	w := httptest.NewRecorder()
	c.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `onside_record_operations_total{operation="update",resource="goal"} 1`))
}
