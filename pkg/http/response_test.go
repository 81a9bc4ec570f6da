package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "tablebooker/pkg/errors"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   map[string]any
	}{
		{
			name:       "plain error hides detail",
			err:        errors.New("mongo: connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   map[string]any{"error": "Internal server error"},
		},
		{
			name: "app error with description and details",
			err: apperrors.New("NO_AVAILABILITY", "No availability", http.StatusConflict).
				WithDescription("Please try a different time.").
				WithDetail("available_slots", []string{"18:00"}),
			wantStatus: http.StatusConflict,
			wantBody: map[string]any{
				"error":   "No availability",
				"message": "Please try a different time.",
				"code":    "NO_AVAILABILITY",
			},
		},
		{
			name:       "service unavailable",
			err:        apperrors.Wrap(errors.New("settings not found"), "SERVICE_UNAVAILABLE", "Reservation system is currently unavailable", http.StatusServiceUnavailable),
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   map[string]any{"error": "Reservation system is currently unavailable", "code": "SERVICE_UNAVAILABLE"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			if err := WriteError(rec, tt.err); err != nil {
				t.Fatalf("WriteError() returned %v", err)
			}

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q", ct)
			}

			var body map[string]any
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON body: %v", err)
			}
			for k, want := range tt.wantBody {
				if body[k] != want {
					t.Errorf("body[%q] = %v, want %v", k, body[k], want)
				}
			}
		})
	}
}

func TestQueryInt(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    int
		wantErr bool
	}{
		{"absent uses fallback", "/?x=1", 90, false},
		{"valid", "/?duration=120", 120, false},
		{"invalid", "/?duration=abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, tt.url, nil)
			got, err := QueryInt(r, "duration", 90)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.7:5555"
	if got := ClientIP(r); got != "10.0.0.7" {
		t.Errorf("ClientIP() = %q", got)
	}

	r.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	if got := ClientIP(r); got != "203.0.113.9" {
		t.Errorf("ClientIP() with X-Forwarded-For = %q", got)
	}
}
