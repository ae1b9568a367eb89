package web_test

import (
	"embed"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/promptiverse/pkg/web"
)

//go:embed testdata
var testFS embed.FS

var (
	greetView  = web.ViewDef{Route: "/greet", Template: "greet.html", Title: "Greeting"}
	errorView  = web.ViewDef{Template: "error.html", Title: "Error"}
	brokenView = web.ViewDef{Route: "/broken", Template: "broken.html", Title: "Broken"}
)

var errMissing = errors.New("thing is missing")

func newTemplateSet(t *testing.T) *web.TemplateSet {
	t.Helper()
	ts, err := web.NewTemplateSet(
		testFS,
		testFS,
		"testdata/layouts/*.html",
		"testdata/views",
		"/app",
		[]web.ViewDef{greetView, errorView, brokenView},
	)
	if err != nil {
		t.Fatalf("NewTemplateSet: %v", err)
	}
	return ts
}

func TestNewTemplateSetMissingView(t *testing.T) {
	_, err := web.NewTemplateSet(
		testFS, testFS,
		"testdata/layouts/*.html", "testdata/views", "/app",
		[]web.ViewDef{{Template: "absent.html"}},
	)
	if err == nil {
		t.Fatal("expected error for missing view template")
	}
}

func TestPageHandler(t *testing.T) {
	ts := newTemplateSet(t)
	status := func(err error) int {
		if errors.Is(err, errMissing) {
			return http.StatusNotFound
		}
		return http.StatusInternalServerError
	}

	tests := []struct {
		name       string
		load       web.LoadFunc
		wantStatus int
		wantBody   string
	}{
		{
			name:       "static page",
			wantStatus: http.StatusOK,
			wantBody:   "<title>Greeting</title><base href=\"/app/\">",
		},
		{
			name:       "loaded data is escaped",
			load:       func(r *http.Request) (any, error) { return "<world>", nil },
			wantStatus: http.StatusOK,
			wantBody:   "<p>hello &lt;world&gt;</p>",
		},
		{
			name:       "mapped load error",
			load:       func(r *http.Request) (any, error) { return nil, errMissing },
			wantStatus: http.StatusNotFound,
			wantBody:   `<p class="error">404 thing is missing</p>`,
		},
		{
			name:       "server error hides detail",
			load:       func(r *http.Request) (any, error) { return nil, errors.New("dial tcp: refused") },
			wantStatus: http.StatusInternalServerError,
			wantBody:   `<p class="error">500 Internal Server Error</p>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h := ts.PageHandler("base", greetView, errorView, tt.load, status)
			h.ServeHTTP(rec, httptest.NewRequest("GET", "/greet", nil))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("body = %q, want containing %q", rec.Body.String(), tt.wantBody)
			}
			if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
				t.Errorf("Content-Type = %q", ct)
			}
		})
	}
}

func TestPageHandlerExecutionFailure(t *testing.T) {
	ts := newTemplateSet(t)
	load := func(r *http.Request) (any, error) { return "plain string", nil }

	rec := httptest.NewRecorder()
	ts.PageHandler("base", brokenView, errorView, load, nil).ServeHTTP(rec, httptest.NewRequest("GET", "/broken", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `<p class="error">500 Internal Server Error</p>`) {
		t.Errorf("body = %q, want error page", body)
	}
	if strings.Contains(body, "<title>Broken</title>") {
		t.Errorf("partial page leaked: %q", body)
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	ts := newTemplateSet(t)
	err := ts.Render(httptest.NewRecorder(), "base", "absent.html", web.ViewData{})
	if err == nil {
		t.Fatal("expected error for unknown template")
	}
}

func TestRouterFallback(t *testing.T) {
	ts := newTemplateSet(t)

	router := web.NewRouter()
	router.HandleFunc("GET /greet", ts.PageHandler("base", greetView, errorView, nil, nil))
	router.SetFallback(ts.ErrorHandler("base", errorView, http.StatusNotFound))

	tests := []struct {
		target     string
		wantStatus int
		wantBody   string
	}{
		{"/greet", http.StatusOK, "hello"},
		{"/elsewhere", http.StatusNotFound, "404 Not Found"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest("GET", tt.target, nil))
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("body = %q, want containing %q", rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestRouterFallbackSkipsOtherMethods(t *testing.T) {
	router := web.NewRouter()
	router.HandleFunc("GET /greet", func(w http.ResponseWriter, r *http.Request) {})
	router.SetFallback(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/greet", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestStaticHandlers(t *testing.T) {
	static, err := web.Static(testFS, "testdata/views", "/assets/", time.Hour)
	if err != nil {
		t.Fatalf("Static: %v", err)
	}

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantCache  string
	}{
		{"file", "/assets/greet.html", http.StatusOK, "public, max-age=3600"},
		{"directory listing", "/assets/", http.StatusNotFound, ""},
		{"missing file", "/assets/absent.css", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			static.ServeHTTP(rec, httptest.NewRequest("GET", tt.target, nil))
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := rec.Header().Get("Cache-Control"); got != tt.wantCache {
				t.Errorf("Cache-Control = %q, want %q", got, tt.wantCache)
			}
		})
	}

	if _, err := web.Static(testFS, "../outside", "/assets/", 0); err == nil {
		t.Error("expected error for invalid subdir")
	}
}

func TestServeEmbeddedFile(t *testing.T) {
	h := web.ServeEmbeddedFile([]byte("ok"), "text/plain")

	tests := []struct {
		method   string
		wantBody string
	}{
		{"GET", "ok"},
		{"HEAD", ""},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tt.method, "/robots.txt", nil))
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			if rec.Body.String() != tt.wantBody {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.wantBody)
			}
			if rec.Header().Get("Content-Type") != "text/plain" || rec.Header().Get("Content-Length") != "2" {
				t.Errorf("headers = %v", rec.Header())
			}
		})
	}
}
