package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tablebooker/pkg/client"
	"tablebooker/pkg/config"
	"tablebooker/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type stubHandler struct{}

func (stubHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/public/booking", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true}`))
	})
}

func testConfig() *config.Config {
	return &config.Config{
		Port:              "8080",
		RateLimitRequests: 2,
		RateLimitWindow:   time.Minute,
		RequestTimeout:    time.Second,
		IdempotencyTTL:    time.Minute,
		MaxRequestSize:    1024,
		ShutdownTimeout:   time.Second,
		Log:               logger.Discard(),
		Client:            client.NewClient(),
	}
}

func newTestApp(t *testing.T) *Application {
	t.Helper()
	a := NewApplication(testConfig())
	a.SetApp(stubHandler{})
	t.Cleanup(func() {
		a.idempotencyStore.Stop()
		a.rateLimiter.Stop()
	})
	return a
}

func TestApplication_Routes(t *testing.T) {
	a := newTestApp(t)

	tests := []struct {
		name        string
		method      string
		path        string
		contentType string
		body        string
		wantStatus  int
	}{
		{name: "health", method: http.MethodGet, path: "/health", wantStatus: http.StatusOK},
		{name: "ready without dependencies", method: http.MethodGet, path: "/ready", wantStatus: http.StatusOK},
		{name: "booking", method: http.MethodPost, path: "/api/public/booking", contentType: "application/json", body: `{}`, wantStatus: http.StatusCreated},
		{name: "wrong content type", method: http.MethodPost, path: "/api/public/booking", contentType: "text/plain", body: `{}`, wantStatus: http.StatusUnsupportedMediaType},
		{name: "unknown route", method: http.MethodGet, path: "/nope", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.RemoteAddr = "192.0.2.1:1234"
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			rec := httptest.NewRecorder()

			a.Handler().ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d; body %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestApplication_RateLimitAppliesToAppRoutesOnly(t *testing.T) {
	a := newTestApp(t)

	send := func(path string) int {
		method := http.MethodPost
		if path == "/health" {
			method = http.MethodGet
		}
		req := httptest.NewRequest(method, path, strings.NewReader(`{}`))
		req.RemoteAddr = "198.51.100.7:4000"
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		a.Handler().ServeHTTP(rec, req)
		return rec.Code
	}

	for i := 0; i < 2; i++ {
		if code := send("/api/public/booking"); code != http.StatusCreated {
			t.Fatalf("request %d status = %d", i, code)
		}
	}
	if code := send("/api/public/booking"); code != http.StatusTooManyRequests {
		t.Errorf("third request status = %d, want 429", code)
	}
	if code := send("/health"); code != http.StatusOK {
		t.Errorf("health status = %d, want 200", code)
	}
}

func TestApplication_ShutdownHooksRunInOrder(t *testing.T) {
	a := NewApplication(testConfig())

	var order []string
	a.OnShutdown(ShutdownHook{Name: "first", Stop: func(ctx context.Context) error {
		order = append(order, "first")
		return errors.New("ignored")
	}})
	a.OnShutdown(ShutdownHook{Name: "second", Stop: func(ctx context.Context) error {
		order = append(order, "second")
		return nil
	}})

	a.runHooks(context.Background())

	if strings.Join(order, ",") != "first,second" {
		t.Errorf("hooks ran as %v", order)
	}
}
