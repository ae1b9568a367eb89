package main

import (
	"encoding/json"
	"net/http"

	"github.com/JaimeStill/promptiverse/internal/api"
	"github.com/JaimeStill/promptiverse/internal/config"
	"github.com/JaimeStill/promptiverse/internal/infrastructure"
	"github.com/JaimeStill/promptiverse/pkg/lifecycle"
	"github.com/JaimeStill/promptiverse/pkg/middleware"
	"github.com/JaimeStill/promptiverse/pkg/module"
	"github.com/JaimeStill/promptiverse/web/app"
	"github.com/JaimeStill/promptiverse/web/scalar"
)

type Modules struct {
	API    *module.Module
	App    *module.Module
	Scalar *module.Module
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	domain, err := api.NewDomain(api.NewRuntime(cfg, infra))
	if err != nil {
		return nil, err
	}

	appModule, err := app.NewModule(
		"/app",
		domain.Prompts,
		domain.Styles,
		cfg.API.Pagination,
		infra.Logger,
	)
	if err != nil {
		return nil, err
	}

	scalarModule := scalar.NewModule("/scalar", cfg.API.BasePath+"/openapi.json")
	scalarModule.Use(middleware.Logger(infra.Logger))

	return &Modules{
		API:    apiModule,
		App:    appModule,
		Scalar: scalarModule,
	}, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
	router.Mount(m.App)
	router.Mount(m.Scalar)
}

func buildRouter(ready lifecycle.ReadinessChecker) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, "ok")
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		code, status := http.StatusOK, "ready"
		if !ready.Ready() {
			code, status = http.StatusServiceUnavailable, "not ready"
		}
		writeJSON(w, code, readyResponse{Status: status, Checks: ready.Status()})
	})

	router.HandleNative("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/app/", http.StatusFound)
	})

	return router
}

type readyResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func writeStatus(w http.ResponseWriter, code int, status string) {
	writeJSON(w, code, map[string]string{"status": status})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}
