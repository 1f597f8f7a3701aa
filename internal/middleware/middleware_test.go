package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SscSPs/queue_mood_board/internal/middleware"
	"github.com/SscSPs/queue_mood_board/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestStructuredLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(base))
	r.GET("/ping", func(c *gin.Context) {
		middleware.GetLoggerFromCtx(c.Request.Context()).Info("from request context")
		middleware.GetLoggerFromCtx(c).Info("from gin context")
		c.String(http.StatusOK, "pong")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	requestID := w.Header().Get("X-Request-ID")
	require.NotEmpty(t, requestID)
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 3)
	for _, line := range lines {
		assert.Contains(t, string(line), requestID)
	}
	assert.Contains(t, string(lines[2]), `"status":200`)
}

func TestGetLoggerFromCtx_Default(t *testing.T) {
	assert.Equal(t, slog.Default(), middleware.GetLoggerFromCtx(httptest.NewRequest(http.MethodGet, "/", nil).Context()))
}

func TestRateLimit(t *testing.T) {
	_, err := middleware.NewSubmitLimiter("lots")
	assert.Error(t, err)

	l, err := middleware.NewSubmitLimiter("2-M")
	require.NoError(t, err)

	r := gin.New()
	r.POST("/limited", middleware.RateLimit(l), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.POST("/open", middleware.RateLimit(nil), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/limited", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/limited", nil))
	assert.JSONEq(t, `{"error":"`+middleware.RateLimitMessage+`"}`, w.Body.String())

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/open", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	}
}

func TestRateLimitWithHandler(t *testing.T) {
	l, err := middleware.NewSubmitLimiter("1-M")
	require.NoError(t, err)

	reached := func(c *gin.Context) { c.String(http.StatusTooManyRequests, "slow down") }
	handled := 0
	r := gin.New()
	r.POST("/form", middleware.RateLimitWithHandler(l, reached), func(c *gin.Context) {
		handled++
		c.Status(http.StatusNoContent)
	})

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/form", nil))
	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/form", nil))

	assert.Equal(t, http.StatusNoContent, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "slow down", second.Body.String())
	assert.Equal(t, 1, handled, "handler chain stops at the limit")
}

func TestCORS(t *testing.T) {
	assert.Nil(t, middleware.CORS(nil))

	r := gin.New()
	r.Use(middleware.CORS([]string{"https://support.example"}))
	r.GET("/api", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/api", nil)
	req.Header.Set("Origin", "https://support.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "https://support.example", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api", nil)
	req.Header.Set("Origin", "https://elsewhere.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestPosthogEvent_DisabledClientIsNoop(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/moods", nil)

	assert.NotPanics(t, func() {
		middleware.PosthogEvent(c, nil, "mood_submitted", nil)
		middleware.PosthogEvent(c, &utils.PosthogClientWrapper{}, "mood_submitted", map[string]any{"mood": "😊"})
	})
}
