package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func rateLimitedRouter(limiter *RateLimiter, rules map[string]RateLimitRule) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", "guest:test-guest")
		c.Next()
	})
	r.Use(RateLimit(RateLimitConfig{
		GroupFor: func(c *gin.Context) string {
			if c.Request.Method != http.MethodPost {
				return ""
			}
			if strings.HasSuffix(c.FullPath(), "/generate") {
				return "generate"
			}
			if strings.HasSuffix(c.FullPath(), "/documents") {
				return "upload"
			}
			return ""
		},
		Limiter: limiter,
		Rules:   rules,
	}))
	ok := func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) }
	r.POST("/api/v1/documents", ok)
	r.POST("/api/v1/documents/:id/generate", ok)
	r.GET("/api/v1/documents", ok)
	return r
}

func TestRateLimitGroupsAreIndependent(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return now })
	r := rateLimitedRouter(limiter, map[string]RateLimitRule{
		"upload":   {Rate: 0.5, Burst: 2},
		"generate": {Rate: 0.2, Burst: 3},
	})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("upload %d expected 200, got %d", i+1, resp.Code)
		}
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("upload burst exhausted, expected 429, got %d", resp.Code)
	}

	// The generate bucket is untouched by upload traffic.
	reqGen := httptest.NewRequest(http.MethodPost, "/api/v1/documents/doc-1/generate", nil)
	respGen := httptest.NewRecorder()
	r.ServeHTTP(respGen, reqGen)
	if respGen.Code != http.StatusOK {
		t.Fatalf("generate expected 200, got %d", respGen.Code)
	}

	// Reads carry no group and are never limited.
	reqGet := httptest.NewRequest(http.MethodGet, "/api/v1/documents", nil)
	respGet := httptest.NewRecorder()
	r.ServeHTTP(respGet, reqGet)
	if respGet.Code != http.StatusOK {
		t.Fatalf("list expected 200, got %d", respGet.Code)
	}
}

func TestRateLimit429IncludesRetryAfter(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return now })
	r := rateLimitedRouter(limiter, map[string]RateLimitRule{
		"upload": {Rate: 1, Burst: 1},
	})

	req1 := httptest.NewRequest(http.MethodPost, "/api/v1/documents", nil)
	resp1 := httptest.NewRecorder()
	r.ServeHTTP(resp1, req1)
	if resp1.Code != http.StatusOK {
		t.Fatalf("expected first request 200, got %d", resp1.Code)
	}

	req2 := httptest.NewRequest(http.MethodPost, "/api/v1/documents", nil)
	resp2 := httptest.NewRecorder()
	r.ServeHTTP(resp2, req2)
	if resp2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", resp2.Code)
	}
	if resp2.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header")
	}

	var payload map[string]any
	if err := json.NewDecoder(resp2.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload["error"] != "rate_limited" {
		t.Fatalf("expected error=rate_limited")
	}
	if _, ok := payload["retryAfterMs"]; !ok {
		t.Fatalf("expected retryAfterMs in response")
	}
}

func TestRateLimitKeyedPerIdentity(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return now })
	rule := RateLimitRule{Rate: 1, Burst: 1}

	if allowed, _ := limiter.Allow("guest:a|upload", rule); !allowed {
		t.Fatal("first request for guest:a should pass")
	}
	if allowed, _ := limiter.Allow("guest:a|upload", rule); allowed {
		t.Fatal("second request for guest:a should be limited")
	}
	if allowed, _ := limiter.Allow("guest:b|upload", rule); !allowed {
		t.Fatal("guest:b has its own bucket")
	}
}
