package middleware

import (
	"crypto/tls"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, RequestIDFrom(c))
	})
	r.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})
	return r
}

// ── RequestID ──

func TestRequestID(t *testing.T) {
	tests := []struct {
		name   string
		header string
		keep   bool
	}{
		{"沿用合法ID", "req-2026.04_01", true},
		{"缺失时生成", "", false},
		{"过长时生成", strings.Repeat("a", requestIDMaxLen+1), false},
		{"含空白时生成", "abc def", false},
		{"含换行时生成", "abc\ninjected", false},
	}

	r := newEngine(RequestID())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tt.header != "" {
				req.Header.Set(requestIDHeader, tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			got := w.Header().Get(requestIDHeader)
			if got == "" {
				t.Fatal("响应应携带 X-Request-ID")
			}
			if w.Body.String() != got {
				t.Errorf("上下文中的ID与响应头不一致: %q vs %q", w.Body.String(), got)
			}
			if tt.keep && got != tt.header {
				t.Errorf("期望沿用 %q，实际 %q", tt.header, got)
			}
			if !tt.keep && got == tt.header {
				t.Errorf("不应沿用非法ID %q", tt.header)
			}
		})
	}
}

// ── SecurityHeaders ──

func TestSecurityHeaders(t *testing.T) {
	r := newEngine(SecurityHeaders())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	want := map[string]string{
		"X-Frame-Options":         "DENY",
		"X-Content-Type-Options":  "nosniff",
		"Content-Security-Policy": "default-src 'none'; frame-ancestors 'none'",
		"Cache-Control":           "no-store",
	}
	for k, v := range want {
		if got := w.Header().Get(k); got != v {
			t.Errorf("%s 期望 %q，实际 %q", k, v, got)
		}
	}
	if w.Header().Get("Strict-Transport-Security") != "" {
		t.Error("明文 HTTP 不应附加 HSTS")
	}
}

func TestSecurityHeaders_HSTS(t *testing.T) {
	r := newEngine(SecurityHeaders())

	viaProxy := httptest.NewRequest(http.MethodGet, "/ping", nil)
	viaProxy.Header.Set("X-Forwarded-Proto", "https")
	direct := httptest.NewRequest(http.MethodGet, "/ping", nil)
	direct.TLS = &tls.ConnectionState{}

	for _, req := range []*http.Request{viaProxy, direct} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if got := w.Header().Get("Strict-Transport-Security"); got != hstsValue {
			t.Errorf("HTTPS 请求应附加 HSTS，实际 %q", got)
		}
	}
}

// ── Recovery ──

func TestRecovery_ReturnsRequestID(t *testing.T) {
	r := newEngine(RequestID(), Recovery(zap.NewNop()))

	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	req.Header.Set(requestIDHeader, "trace-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("期望 500，实际 %d", w.Code)
	}
	var body struct {
		Code    int `json:"code"`
		Details struct {
			RequestID string `json:"requestId"`
		} `json:"details"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("响应解析失败: %v", err)
	}
	if body.Code != 50000 || body.Details.RequestID != "trace-1" {
		t.Errorf("响应体错误: %s", w.Body.String())
	}
}
