package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestTokenBucketExhaustion(t *testing.T) {
	// 填充速率几乎为零，容量2：前两次放行，第三次拒绝
	bucket := NewTokenBucket(0.0001, 2)

	if !bucket.Allow() || !bucket.Allow() {
		t.Fatal("容量内的请求应被放行")
	}
	if bucket.Allow() {
		t.Fatal("超出容量的请求应被拒绝")
	}
}

func TestRateLimitByIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", RateLimitByIP(0.0001, 1), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("容量内的请求应放行，实际 %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("超限请求应得429，实际 %d", w.Code)
	}
}
