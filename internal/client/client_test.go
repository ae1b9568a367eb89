package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/promptiverse/internal/client"
	"github.com/JaimeStill/promptiverse/internal/editor"
	"github.com/JaimeStill/promptiverse/internal/prompts"
	"github.com/JaimeStill/promptiverse/internal/styles"
	"github.com/JaimeStill/promptiverse/pkg/document"
)

var _ editor.Gateway = (*client.Styles)(nil)

func newClient(t *testing.T, handler http.Handler) *client.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return client.New(srv.URL+"/api", client.WithRetry(3, time.Millisecond))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func TestStylesList(t *testing.T) {
	var gotQuery string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/styles", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		writeJSON(w, http.StatusOK, map[string]any{
			"data":        []map[string]any{{"id": "style.neo_noir.v1", "name": "Neo-Noir", "tags": []string{"noir"}}},
			"total":       1,
			"page":        2,
			"page_size":   5,
			"total_pages": 1,
		})
	})

	c := newClient(t, mux)
	result, err := c.Styles().List(context.Background(), client.ListOptions{
		Page:     2,
		PageSize: 5,
		Tags:     []string{"noir", "film"},
		Filters:  map[string]string{"is_template": "true", "ignored": ""},
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	if want := "is_template=true&page=2&page_size=5&tags=noir%2Cfilm"; gotQuery != want {
		t.Errorf("query = %q, want %q", gotQuery, want)
	}
	if result.Total != 1 || len(result.Data) != 1 || result.Data[0].ID != "style.neo_noir.v1" {
		t.Errorf("result = %+v", result)
	}
}

func TestStylesSaveRoundTrip(t *testing.T) {
	var created styles.CreateCommand
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/styles", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Content-Type = %q", r.Header.Get("Content-Type"))
		}
		if err := json.NewDecoder(r.Body).Decode(&created); err != nil {
			t.Fatalf("decode: %v", err)
		}
		writeJSON(w, http.StatusCreated, map[string]any{
			"id":    created.ID,
			"name":  created.Name,
			"style": created.Style,
		})
	})

	c := newClient(t, mux)
	cmd := styles.CreateCommand{
		ID: "style.test.v1",
		Payload: styles.Payload{
			Name:  "Test",
			Style: document.Mapping{"palette": document.Mapping{"mode": document.String("grayscale")}},
		},
	}

	got, err := c.Styles().Create(context.Background(), cmd)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got.ID != "style.test.v1" || got.Name != "Test" {
		t.Errorf("created = %+v", got)
	}
	if v, ok := document.Get(got.Style, document.ParsePath("palette.mode")); !ok || !document.Equal(v, document.String("grayscale")) {
		t.Errorf("style palette.mode = %v", v)
	}
}

func TestErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantIs  error
		wantMsg string
	}{
		{"not found", http.StatusNotFound, `{"error":"style profile not found"}`, client.ErrNotFound, "style profile not found"},
		{"conflict", http.StatusConflict, `{"error":"style profile already exists"}`, client.ErrConflict, "style profile already exists"},
		{"bad request", http.StatusBadRequest, `{"error":"name is required"}`, client.ErrValidation, "name is required"},
		{"unprocessable", http.StatusUnprocessableEntity, `{"error":"schema"}`, client.ErrValidation, "schema"},
		{"plain text body", http.StatusInternalServerError, "boom\n", nil, "boom"},
		{"empty body", http.StatusBadGateway, "", nil, "Bad Gateway"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}))

			err := c.Styles().Delete(context.Background(), "style.x")

			var srvErr *client.ServerError
			if !errors.As(err, &srvErr) {
				t.Fatalf("err = %v, want *ServerError", err)
			}
			if srvErr.StatusCode != tt.status || srvErr.Message != tt.wantMsg {
				t.Errorf("server error = %+v", srvErr)
			}
			for _, sentinel := range []error{client.ErrNotFound, client.ErrConflict, client.ErrValidation} {
				if got, want := errors.Is(err, sentinel), sentinel == tt.wantIs; got != want {
					t.Errorf("errors.Is(err, %v) = %v, want %v", sentinel, got, want)
				}
			}
		})
	}
}

func TestReadsRetryTransportFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			hj, ok := w.(http.Hijacker)
			if !ok {
				t.Fatal("hijacking unsupported")
			}
			conn, _, _ := hj.Hijack()
			conn.Close()
			return
		}
		writeJSON(w, http.StatusOK, []string{"text", "image"})
	}))
	t.Cleanup(srv.Close)

	c := client.New(srv.URL+"/api", client.WithRetry(3, time.Millisecond))
	got, err := c.Prompts().ModalTypes(context.Background())
	if err != nil {
		t.Fatalf("ModalTypes: %v", err)
	}
	if len(got) != 2 || got[1] != prompts.ModalImage {
		t.Errorf("modal types = %v", got)
	}
	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 3", calls.Load())
	}
}

func TestServerErrorsAreNotRetried(t *testing.T) {
	var calls atomic.Int32
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "down"})
	}))

	if _, err := c.Styles().Find(context.Background(), "style.x"); err == nil {
		t.Fatal("expected error")
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1", calls.Load())
	}
}

func TestWritesAreNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		hj, _ := w.(http.Hijacker)
		conn, _, _ := hj.Hijack()
		conn.Close()
	}))
	t.Cleanup(srv.Close)

	c := client.New(srv.URL+"/api", client.WithRetry(3, time.Millisecond))
	_, err := c.Prompts().Create(context.Background(), prompts.CreateCommand{
		Payload: prompts.Payload{Title: "t"},
	})

	var netErr *client.NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("err = %v, want *NetworkError", err)
	}
	if netErr.Method != http.MethodPost {
		t.Errorf("method = %s, want POST", netErr.Method)
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1", calls.Load())
	}
}

func TestPromptsStatsAndFind(t *testing.T) {
	id := uuid.New()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/prompts/stats", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("recent") != "5" {
			t.Errorf("recent = %q, want 5", r.URL.Query().Get("recent"))
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"total":         4,
			"by_modal_type": map[string]int{"image": 3, "text": 1},
			"recent":        []any{},
		})
	})
	mux.HandleFunc("GET /api/prompts/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"id":         r.PathValue("id"),
			"title":      "Lighthouse",
			"modal_type": "image",
			"content":    map[string]any{"text": "a lighthouse"},
		})
	})

	c := newClient(t, mux)

	stats, err := c.Prompts().Stats(context.Background(), 5)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Total != 4 || stats.ByModalType[prompts.ModalImage] != 3 {
		t.Errorf("stats = %+v", stats)
	}

	p, err := c.Prompts().Find(context.Background(), id)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if p.ID != id || p.ModalType != prompts.ModalImage {
		t.Errorf("prompt = %+v", p)
	}
}

func TestStylesExportAndSnapshot(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/styles/{id}/export", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, map[string]any{
			"style_id": r.PathValue("id"),
			"key":      "styles/" + r.PathValue("id") + ".json",
			"size":     42,
		})
	})
	mux.HandleFunc("GET /api/styles/{id}/export", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":"style.neo_noir.v1"}`)
	})

	c := newClient(t, mux)

	exp, err := c.Styles().Export(context.Background(), "style.neo_noir.v1")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if exp.Key != "styles/style.neo_noir.v1.json" || exp.Size != 42 {
		t.Errorf("export = %+v", exp)
	}

	data, err := c.Styles().Snapshot(context.Background(), "style.neo_noir.v1")
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if string(data) != `{"id":"style.neo_noir.v1"}` {
		t.Errorf("snapshot = %s", data)
	}
}

func TestTimeoutOptionOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
			writeJSON(w, http.StatusOK, []string{"text"})
		}
	}))
	t.Cleanup(srv.Close)

	tests := []struct {
		name string
		opts func(hc *http.Client) []client.Option
	}{
		{
			name: "timeout after client",
			opts: func(hc *http.Client) []client.Option {
				return []client.Option{client.WithHTTPClient(hc), client.WithTimeout(20 * time.Millisecond)}
			},
		},
		{
			name: "timeout before client",
			opts: func(hc *http.Client) []client.Option {
				return []client.Option{client.WithTimeout(20 * time.Millisecond), client.WithHTTPClient(hc)}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hc := &http.Client{Timeout: 5 * time.Second}
			opts := append(tt.opts(hc), client.WithRetry(1, time.Millisecond))
			c := client.New(srv.URL+"/api", opts...)

			_, err := c.Prompts().ModalTypes(context.Background())
			var netErr *client.NetworkError
			if !errors.As(err, &netErr) {
				t.Fatalf("err = %v, want *NetworkError", err)
			}
			if hc.Timeout != 5*time.Second {
				t.Errorf("caller client timeout = %s, want 5s", hc.Timeout)
			}
		})
	}
}
