// Package app serves the read-only HTML views of the prompt catalog: a
// dashboard, prompt and style listings, and a style profile detail page with
// its canonical JSON.
package app

import (
	"context"
	"embed"
	"log/slog"
	"net/http"
	"time"

	"github.com/JaimeStill/promptiverse/internal/prompts"
	"github.com/JaimeStill/promptiverse/internal/styles"
	"github.com/JaimeStill/promptiverse/pkg/middleware"
	"github.com/JaimeStill/promptiverse/pkg/module"
	"github.com/JaimeStill/promptiverse/pkg/pagination"
	"github.com/JaimeStill/promptiverse/pkg/web"
)

//go:embed templates/*.html
var layoutFS embed.FS

//go:embed views/*.html
var viewFS embed.FS

//go:embed static
var staticFS embed.FS

const (
	layout       = "layout"
	staticMaxAge = time.Hour
)

var robots = []byte("User-agent: *\nDisallow: /\n")

// PromptCatalog is the prompt behavior the views read.
type PromptCatalog interface {
	List(ctx context.Context, page pagination.PageRequest, filters prompts.Filters) (*pagination.PageResult[prompts.Prompt], error)
	Stats(ctx context.Context, recent int) (*prompts.Stats, error)
}

// StyleCatalog is the style profile behavior the views read.
type StyleCatalog interface {
	List(ctx context.Context, page pagination.PageRequest, filters styles.Filters) (*pagination.PageResult[styles.StyleProfile], error)
	Find(ctx context.Context, id string) (*styles.StyleProfile, error)
}

var (
	dashboardView = web.ViewDef{Route: "/{$}", Template: "dashboard.html", Title: "Dashboard"}
	promptsView   = web.ViewDef{Route: "/prompts", Template: "prompts.html", Title: "Prompts"}
	stylesView    = web.ViewDef{Route: "/styles", Template: "styles.html", Title: "Style Profiles"}
	styleView     = web.ViewDef{Route: "/styles/{id}", Template: "style.html", Title: "Style Profile"}
	errorView     = web.ViewDef{Template: "error.html", Title: "Error"}
)

type views struct {
	prompts    PromptCatalog
	styles     StyleCatalog
	pagination pagination.Config
	logger     *slog.Logger
	basePath   string
}

// NewModule creates the HTML views module mounted at basePath.
func NewModule(
	basePath string,
	promptCatalog PromptCatalog,
	styleCatalog StyleCatalog,
	pageCfg pagination.Config,
	logger *slog.Logger,
) (*module.Module, error) {
	ts, err := web.NewTemplateSet(
		layoutFS,
		viewFS,
		"templates/*.html",
		"views",
		basePath,
		[]web.ViewDef{dashboardView, promptsView, stylesView, styleView, errorView},
	)
	if err != nil {
		return nil, err
	}

	v := &views{
		prompts:    promptCatalog,
		styles:     styleCatalog,
		pagination: pageCfg,
		logger:     logger.With("module", "app"),
		basePath:   basePath,
	}

	static, err := web.Static(staticFS, "static", "/static/", staticMaxAge)
	if err != nil {
		return nil, err
	}

	router := web.NewRouter()
	router.Handle("GET /static/", static)
	router.HandleFunc("GET /robots.txt", web.ServeEmbeddedFile(robots, "text/plain; charset=utf-8"))

	router.HandleFunc("GET "+dashboardView.Route, ts.PageHandler(layout, dashboardView, errorView, v.dashboard, v.status(prompts.MapHTTPStatus)))
	router.HandleFunc("GET "+promptsView.Route, ts.PageHandler(layout, promptsView, errorView, v.promptList, v.status(prompts.MapHTTPStatus)))
	router.HandleFunc("GET "+stylesView.Route, ts.PageHandler(layout, stylesView, errorView, v.styleList, v.status(styles.MapHTTPStatus)))
	router.HandleFunc("GET "+styleView.Route, ts.PageHandler(layout, styleView, errorView, v.styleDetail, v.status(styles.MapHTTPStatus)))

	router.SetFallback(ts.ErrorHandler(layout, errorView, http.StatusNotFound))

	m := module.New(basePath, router)
	m.Use(middleware.Logger(v.logger))
	m.Use(middleware.Recover(v.logger))

	return m, nil
}

// status wraps a domain status mapper so server errors are logged before the
// error page is rendered.
func (v *views) status(mapStatus func(error) int) web.StatusFunc {
	return func(err error) int {
		code := mapStatus(err)
		if code >= http.StatusInternalServerError {
			v.logger.Error("view load failed", "error", err)
		}
		return code
	}
}
