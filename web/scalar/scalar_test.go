package scalar_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/promptiverse/pkg/module"
	"github.com/JaimeStill/promptiverse/web/scalar"
)

func TestScalarIndex(t *testing.T) {
	router := module.NewRouter()
	router.Mount(scalar.NewModule("/scalar", "/api/openapi.json"))

	tests := []struct {
		target     string
		wantStatus int
	}{
		{"/scalar", http.StatusOK},
		{"/scalar/", http.StatusOK},
		{"/scalar/missing.js", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest("GET", tt.target, nil))
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK && !strings.Contains(rec.Body.String(), `data-url="/api/openapi.json"`) {
				t.Errorf("index should reference the openapi document: %s", rec.Body.String())
			}
		})
	}
}
