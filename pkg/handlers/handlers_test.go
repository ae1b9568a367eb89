package handlers_test

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/promptiverse/pkg/handlers"
)

func TestRespondJSON(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		data       any
		wantStatus int
	}{
		{
			name:       "200 with map",
			status:     http.StatusOK,
			data:       map[string]string{"key": "value"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "201 with struct",
			status:     http.StatusCreated,
			data:       struct{ ID int }{ID: 42},
			wantStatus: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handlers.RespondJSON(rec, tt.status, tt.data)

			res := rec.Result()
			defer res.Body.Close()

			if res.StatusCode != tt.wantStatus {
				t.Errorf("status: got %d, want %d", res.StatusCode, tt.wantStatus)
			}
			if ct := res.Header.Get("Content-Type"); ct != "application/json" {
				t.Errorf("content-type: got %s", ct)
			}

			body, _ := io.ReadAll(res.Body)
			var parsed map[string]any
			if err := json.Unmarshal(body, &parsed); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
		})
	}
}

func TestRespondError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name   string
		status int
	}{
		{"client error", http.StatusBadRequest},
		{"server error", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handlers.RespondError(rec, logger, tt.status, errors.New("invalid input"))

			res := rec.Result()
			defer res.Body.Close()

			if res.StatusCode != tt.status {
				t.Errorf("status: got %d, want %d", res.StatusCode, tt.status)
			}

			var parsed handlers.ErrorResponse
			if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
				t.Fatalf("decode failed: %v", err)
			}
			if parsed.Error != "invalid input" {
				t.Errorf("error: got %s, want invalid input", parsed.Error)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	type payload struct {
		Title string `json:"title"`
	}

	tests := []struct {
		name       string
		body       string
		limit      int64
		wantOK     bool
		wantStatus int
	}{
		{"valid", `{"title":"Lighthouse"}`, 0, true, http.StatusOK},
		{"trailing whitespace", "{\"title\":\"Lighthouse\"}\n", 0, true, http.StatusOK},
		{"malformed", `{`, 0, false, http.StatusBadRequest},
		{"empty", ``, 0, false, http.StatusBadRequest},
		{"trailing value", `{"title":"a"}{"title":"b"}`, 0, false, http.StatusBadRequest},
		{"too large", `{"title":"Lighthouse at dusk"}`, 8, false, http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			if tt.limit > 0 {
				req.Body = http.MaxBytesReader(rec, req.Body, tt.limit)
			}

			got, ok := handlers.Decode[payload](rec, req, logger)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok {
				if got.Title == "" {
					t.Error("title not decoded")
				}
				return
			}
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var parsed handlers.ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&parsed); err != nil {
				t.Fatalf("decode error body: %v", err)
			}
			if !strings.HasPrefix(parsed.Error, handlers.ErrInvalidBody.Error()) {
				t.Errorf("error = %q, want %q prefix", parsed.Error, handlers.ErrInvalidBody)
			}
		})
	}
}

func TestSetAttachment(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"style.neo_noir.v1.json", "attachment; filename=style.neo_noir.v1.json"},
		{"neo noir.json", `attachment; filename="neo noir.json"`},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		handlers.SetAttachment(rec, tt.filename)
		if got := rec.Header().Get("Content-Disposition"); got != tt.want {
			t.Errorf("SetAttachment(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}
