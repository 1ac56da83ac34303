package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func newLimitedEngine(t *testing.T, rdb *redis.Client, max int) *gin.Engine {
	t.Helper()
	r := gin.New()
	// stands in for Auth: the caller is named by a header
	r.Use(func(c *gin.Context) {
		if uid := c.GetHeader("X-Test-User"); uid != "" {
			c.Set("userID", uid)
		}
		c.Next()
	})
	r.Use(RateLimit(rdb, max, time.Minute, KeyByUserID(), nil))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func asUser(uid string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Test-User", uid)
	return req
}

func TestRateLimitWindow(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	const max = 3
	r := newLimitedEngine(t, rdb, max)

	for i := 1; i <= max; i++ {
		w := serve(t, r, asUser("u-1"))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, w.Code)
		}
		if got := w.Header().Get("X-RateLimit-Limit"); got != strconv.Itoa(max) {
			t.Fatalf("request %d: expected limit header %d, got %q", i, max, got)
		}
		if got := w.Header().Get("X-RateLimit-Remaining"); got != strconv.Itoa(max-i) {
			t.Fatalf("request %d: expected remaining %d, got %q", i, max-i, got)
		}
		if got := w.Header().Get("X-RateLimit-Reset"); got != "60" {
			t.Fatalf("request %d: expected reset 60, got %q", i, got)
		}
	}

	w := serve(t, r, asUser("u-1"))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 past the limit, got %d", w.Code)
	}
	if got := w.Header().Get("X-RateLimit-Remaining"); got != "0" {
		t.Fatalf("remaining must not go negative, got %q", got)
	}
	if got := w.Header().Get("Retry-After"); got != "60" {
		t.Fatalf("expected Retry-After 60, got %q", got)
	}
	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Success || body.Error.Code != CodeRateLimited {
		t.Fatalf("expected %s envelope, got %s", CodeRateLimited, w.Body.String())
	}

	if w := serve(t, r, asUser("u-2")); w.Code != http.StatusOK {
		t.Fatalf("another user has its own bucket, got %d", w.Code)
	}
	if w := serve(t, r, httptest.NewRequest(http.MethodGet, "/", nil)); w.Code != http.StatusOK {
		t.Fatalf("anonymous callers are keyed by ip, got %d", w.Code)
	}

	mr.FastForward(time.Minute + time.Second)
	if w := serve(t, r, asUser("u-1")); w.Code != http.StatusOK {
		t.Fatalf("expected a fresh window after expiry, got %d", w.Code)
	}
}

func TestRateLimitSkipsOptionsAndAllowed(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	r := gin.New()
	r.Use(RateLimit(rdb, 1, time.Minute, KeyByIP("test"), func(c *gin.Context) bool {
		return c.GetHeader("X-Skip") != ""
	}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.OPTIONS("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Skip", "1")
		if w := serve(t, r, req); w.Code != http.StatusOK {
			t.Fatalf("allowed request %d: expected 200, got %d", i, w.Code)
		}
		if w := serve(t, r, httptest.NewRequest(http.MethodOptions, "/", nil)); w.Code != http.StatusNoContent {
			t.Fatalf("preflight %d: expected 204, got %d", i, w.Code)
		}
	}
	if len(mr.Keys()) != 0 {
		t.Fatalf("bypassed requests must not touch redis, keys %v", mr.Keys())
	}
}

func TestRateLimitFailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })

	r := newLimitedEngine(t, rdb, 1)
	if w := serve(t, r, asUser("u-1")); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	mr.Close()

	for i := 0; i < 3; i++ {
		w := serve(t, r, asUser("u-1"))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d with redis down: expected 200, got %d", i, w.Code)
		}
		if w.Header().Get("X-RateLimit-Limit") != "" {
			t.Fatalf("no limit headers without a counter, got %v", w.Header())
		}
	}
}
