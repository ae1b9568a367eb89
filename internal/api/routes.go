package api

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/promptiverse/internal/config"
	"github.com/JaimeStill/promptiverse/pkg/openapi"
	"github.com/JaimeStill/promptiverse/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) error {
	groups := []routes.Group{
		domain.Prompts.Handler().Routes(),
		domain.Styles.Handler().Routes(),
		newExportsHandler(runtime.Storage, runtime.Logger, runtime.MaxListSize).routes(),
	}

	routes.Register(mux, groups...)

	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.AddServer(cfg.API.BasePath)
	cfg.API.OpenAPI.Apply(spec)
	routes.Document(spec, "", groups...)

	specBytes, err := openapi.MarshalJSON(spec)
	if err != nil {
		return fmt.Errorf("marshal openapi spec: %w", err)
	}
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(specBytes))

	yamlBytes, err := openapi.MarshalYAML(spec)
	if err != nil {
		return fmt.Errorf("marshal openapi spec: %w", err)
	}
	mux.HandleFunc("GET /openapi.yaml", openapi.ServeSpecYAML(yamlBytes))

	return nil
}
