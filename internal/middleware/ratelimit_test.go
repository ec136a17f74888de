package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestMemoryRateLimiterBoundary(t *testing.T) {
	limiter := NewMemoryRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		ok, _ := limiter.Allow("1.2.3.4")
		require.True(t, ok, "request %d should be allowed", i+1)
	}

	ok, retryAfter := limiter.Allow("1.2.3.4")
	require.False(t, ok)
	require.Greater(t, retryAfter, time.Duration(0))

	// Other clients are counted independently.
	ok, _ = limiter.Allow("5.6.7.8")
	require.True(t, ok)
}

func TestMemoryRateLimiterWindowReset(t *testing.T) {
	limiter := NewMemoryRateLimiter(2, time.Minute)

	current := time.Now()
	limiter.now = func() time.Time { return current }

	ok, _ := limiter.Allow("1.2.3.4")
	require.True(t, ok)
	ok, _ = limiter.Allow("1.2.3.4")
	require.True(t, ok)
	ok, _ = limiter.Allow("1.2.3.4")
	require.False(t, ok)

	// Once the window has slid past the old hits, the counter is back to zero.
	current = current.Add(time.Minute + time.Second)
	ok, _ = limiter.Allow("1.2.3.4")
	require.True(t, ok)
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	limiter := NewMemoryRateLimiter(1, time.Minute)
	r := gin.New()
	r.GET("/ping", RateLimit(limiter), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.NotEmpty(t, w.Header().Get("Retry-After"))
}
