package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(t *testing.T, r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"", ""},
		{"Bearer abc", "abc"},
		{"bearer   abc  ", "abc"},
		{"Basic abc", ""},
		{"Bearer", ""},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Request.Header.Set("Authorization", tt.header)
			if got := BearerToken(c); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	w := serve(t, r, httptest.NewRequest(http.MethodGet, "/", nil))
	if _, err := uuid.Parse(w.Header().Get(requestIDHeader)); err != nil {
		t.Fatalf("expected generated uuid, got %q", w.Header().Get(requestIDHeader))
	}

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, id)
	if w := serve(t, r, req); w.Body.String() != id {
		t.Fatalf("expected incoming id kept, got %q", w.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "evil\nvalue")
	if w := serve(t, r, req); w.Body.String() == "evil\nvalue" {
		t.Fatalf("expected malformed id replaced")
	}
}

func TestRealIP(t *testing.T) {
	tests := []struct {
		name  string
		trust bool
		xff   string
		cf    string
		want  string
	}{
		{"untrusted ignores headers", false, "203.0.113.9", "198.51.100.1", "192.0.2.1"},
		{"cloudflare wins", true, "203.0.113.9", "198.51.100.1", "198.51.100.1"},
		{"left-most forwarded", true, "203.0.113.9, 10.0.0.1", "", "203.0.113.9"},
		{"garbage falls back", true, "nope", "", "192.0.2.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(RealIP(tt.trust))
			r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, ipFromCtx(c)) })

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "192.0.2.1:1234"
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.cf != "" {
				req.Header.Set("CF-Connecting-IP", tt.cf)
			}
			if w := serve(t, r, req); w.Body.String() != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, w.Body.String())
			}
		})
	}
}

func TestAllowFuncs(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	c.Set(realIPKey, "10.1.2.3")
	if !AllowPrivateIP()(c) {
		t.Errorf("expected private ip allowed")
	}
	c.Set(realIPKey, "203.0.113.9")
	if AllowPrivateIP()(c) {
		t.Errorf("expected public ip limited")
	}
	if !AnyOf(AllowPrivateIP(), AllowMethods(http.MethodGet))(c) {
		t.Errorf("expected GET bypass through AnyOf")
	}
	if AnyOf()(c) {
		t.Errorf("expected empty AnyOf to limit")
	}
}

func TestRateLimitDisabledWithoutRedis(t *testing.T) {
	r := gin.New()
	r.Use(RateLimit(nil, 1, time.Minute, KeyByIP("auth"), nil))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		if w := serve(t, r, httptest.NewRequest(http.MethodGet, "/", nil)); w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, w.Code)
		}
	}
}

func TestBodyLimit(t *testing.T) {
	r := gin.New()
	r.Use(BodyLimit(4))
	r.POST("/", func(c *gin.Context) {
		buf := make([]byte, 16)
		if _, err := c.Request.Body.Read(buf); err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("0123456789"))
	if w := serve(t, r, req); w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", w.Code)
	}
}

func TestMetricsLabelsRoutePattern(t *testing.T) {
	r := gin.New()
	r.Use(Metrics())
	r.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/items/:id", "418"))
	serve(t, r, httptest.NewRequest(http.MethodGet, "/items/42", nil))
	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/items/:id", "418"))
	if after != before+1 {
		t.Fatalf("expected counter to increase by 1, got %v -> %v", before, after)
	}

	before = testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, unmatchedRoute, "404"))
	serve(t, r, httptest.NewRequest(http.MethodGet, "/nope", nil))
	after = testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, unmatchedRoute, "404"))
	if after != before+1 {
		t.Fatalf("expected unmatched counter to increase by 1, got %v -> %v", before, after)
	}
	if v := testutil.ToFloat64(HTTPRequestsInFlight); v != 0 {
		t.Fatalf("expected no requests in flight, got %v", v)
	}
}
