package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newLimitedEngine(t *testing.T, max int, allow AllowFunc) (*gin.Engine, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	r := gin.New()
	r.Use(RealIP())
	r.POST("/things", RateLimit(rdb, max, time.Minute, KeyByIPAndMethod("things"), allow), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})
	return r, mr
}

func post(r http.Handler, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/things", nil)
	req.Header.Set("X-Forwarded-For", ip)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimit_RejectsAfterLimit(t *testing.T) {
	r, _ := newLimitedEngine(t, 2, nil)

	assert.Equal(t, http.StatusCreated, post(r, "203.0.113.7").Code)
	w := post(r, "203.0.113.7")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	w = post(r, "203.0.113.7")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "rate limit exceeded")

	// Another client has its own window.
	assert.Equal(t, http.StatusCreated, post(r, "198.51.100.1").Code)
}

func TestRateLimit_WindowExpires(t *testing.T) {
	r, mr := newLimitedEngine(t, 1, nil)

	assert.Equal(t, http.StatusCreated, post(r, "203.0.113.7").Code)
	assert.Equal(t, http.StatusTooManyRequests, post(r, "203.0.113.7").Code)

	mr.FastForward(time.Minute + time.Second)
	assert.Equal(t, http.StatusCreated, post(r, "203.0.113.7").Code)
}

func TestRateLimit_FailsOpen(t *testing.T) {
	r, mr := newLimitedEngine(t, 1, nil)
	mr.Close()

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusCreated, post(r, "203.0.113.7").Code)
	}
}

func TestRateLimit_AllowBypass(t *testing.T) {
	r, _ := newLimitedEngine(t, 1, AllowIPs("10.1.2.3"))

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusCreated, post(r, "10.1.2.3").Code)
	}
}

func TestRateLimit_AllowPrivateIP(t *testing.T) {
	r, _ := newLimitedEngine(t, 1, AllowAny(nil, AllowPrivateIP()))

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusCreated, post(r, "10.0.0.8").Code)
		assert.Equal(t, http.StatusCreated, post(r, "127.0.0.1").Code)
	}
	assert.Equal(t, http.StatusCreated, post(r, "203.0.113.7").Code)
	assert.Equal(t, http.StatusTooManyRequests, post(r, "203.0.113.7").Code)
}

func TestAllowAny(t *testing.T) {
	assert.Nil(t, AllowAny())
	assert.Nil(t, AllowAny(nil, nil))

	r, _ := newLimitedEngine(t, 1, AllowAny(AllowIPs("198.51.100.4"), AllowPrivateIP()))
	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusCreated, post(r, "198.51.100.4").Code)
		assert.Equal(t, http.StatusCreated, post(r, "192.168.1.20").Code)
	}
}

func TestKeyByIPAndPath_BucketsPerRoute(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	r := gin.New()
	r.Use(RealIP())
	rl := RateLimit(rdb, 1, time.Minute, KeyByIPAndPath(), nil)
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }
	r.GET("/a/:id", rl, ok)
	r.GET("/b", rl, ok)

	get := func(path string) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.7")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}
	assert.Equal(t, http.StatusOK, get("/a/1"))
	assert.Equal(t, http.StatusTooManyRequests, get("/a/2"))
	assert.Equal(t, http.StatusOK, get("/b"))
	assert.True(t, mr.Exists("rl:path:/a/:id:ip:203.0.113.7"))
}

func TestRateLimit_NilClientIsNoop(t *testing.T) {
	r := gin.New()
	r.POST("/things", RateLimit(nil, 1, time.Minute, KeyByIPAndPath(), nil), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusCreated, post(r, "203.0.113.7").Code)
	}
}

func TestRealIP(t *testing.T) {
	r := gin.New()
	r.Use(RealIP())
	r.GET("/ip", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RealIPKey)) })

	req := httptest.NewRequest(http.MethodGet, "/ip", nil)
	req.Header.Set("CF-Connecting-IP", "198.51.100.9")
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "198.51.100.9", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/ip", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "203.0.113.7", w.Body.String())
}

func TestRequestIDMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/id", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/id", nil))
	_, err := uuid.Parse(w.Body.String())
	require.NoError(t, err)
	assert.Equal(t, w.Body.String(), w.Header().Get(RequestIDHeader))

	keep := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/id", nil)
	req.Header.Set(RequestIDHeader, keep)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, keep, w.Body.String())
}
