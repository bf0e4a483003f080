package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hilgaap/inventori-api/internal/config"
)

func TestMemoryLimiterFixedWindow(t *testing.T) {
	l := NewMemoryLimiter(config.RateLimitConfig{Max: 10, Window: time.Minute})
	ctx := context.Background()

	for i := 1; i <= 10; i++ {
		ok, err := l.Allow(ctx, "auth-login", "1.2.3.4")
		if err != nil {
			t.Fatalf("Allow #%d: %v", i, err)
		}
		if !ok {
			t.Fatalf("request %d denied, want allowed", i)
		}
	}
	ok, _ := l.Allow(ctx, "auth-login", "1.2.3.4")
	if ok {
		t.Error("11th request allowed, want denied")
	}
}

func TestMemoryLimiterIndependentKeys(t *testing.T) {
	l := NewMemoryLimiter(config.RateLimitConfig{Max: 1, Window: time.Minute})
	ctx := context.Background()

	if ok, _ := l.Allow(ctx, "auth-login", "1.2.3.4"); !ok {
		t.Fatal("first request denied")
	}
	if ok, _ := l.Allow(ctx, "auth-login", "1.2.3.4"); ok {
		t.Error("second request on same key allowed")
	}
	// A different client and a different label each get their own window.
	if ok, _ := l.Allow(ctx, "auth-login", "5.6.7.8"); !ok {
		t.Error("other client denied")
	}
	if ok, _ := l.Allow(ctx, "auth-register", "1.2.3.4"); !ok {
		t.Error("other label denied")
	}
}

func TestMemoryLimiterWindowReset(t *testing.T) {
	l := NewMemoryLimiter(config.RateLimitConfig{Max: 2, Window: 30 * time.Millisecond})
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		l.Allow(ctx, "auth-login", "1.2.3.4") // exhaust the window
	}
	if ok, _ := l.Allow(ctx, "auth-login", "1.2.3.4"); ok {
		t.Fatal("exhausted window still allowing")
	}

	time.Sleep(40 * time.Millisecond)

	// First request after the window elapsed starts fresh regardless of
	// the prior count.
	if ok, _ := l.Allow(ctx, "auth-login", "1.2.3.4"); !ok {
		t.Error("request after window expiry denied")
	}
}

func TestClientKeyDerivation(t *testing.T) {
	e := echo.New()

	newCtx := func(remote, xff string) echo.Context {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = remote
		if xff != "" {
			req.Header.Set("X-Forwarded-For", xff)
		}
		return e.NewContext(req, httptest.NewRecorder())
	}

	tests := []struct {
		name   string
		remote string
		xff    string
		want   string
	}{
		{"forwarded single", "10.0.0.1:1234", "203.0.113.9", "203.0.113.9"},
		{"forwarded list takes first", "10.0.0.1:1234", "203.0.113.9, 10.0.0.1", "203.0.113.9"},
		{"remote addr fallback", "10.0.0.1:1234", "", "10.0.0.1"},
		{"unknown bucket", "", "", "unknown"},
	}
	for _, tt := range tests {
		if got := ClientKey(newCtx(tt.remote, tt.xff)); got != tt.want {
			t.Errorf("%s: ClientKey = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestRateLimitMiddlewareResponds429(t *testing.T) {
	e := echo.New()
	l := NewMemoryLimiter(config.RateLimitConfig{Max: 1, Window: time.Minute})
	h := RateLimit(l, "auth-login")(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	call := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = "1.2.3.4:5678"
		rec := httptest.NewRecorder()
		if err := h(e.NewContext(req, rec)); err != nil {
			t.Fatalf("handler: %v", err)
		}
		return rec
	}

	if rec := call(); rec.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want 200", rec.Code)
	}
	rec := call()
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want 429", rec.Code)
	}

	var body struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
		Code    int    `json:"code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if body.Success || body.Code != http.StatusTooManyRequests || body.Error == "" {
		t.Errorf("unexpected 429 envelope: %+v", body)
	}
}
