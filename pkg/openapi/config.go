package openapi

import (
	"os"
	"strings"
)

// Config holds the document metadata the API spec is generated with.
// Version overrides the service version when set; Servers lists extra
// server URLs advertised after the API base path.
type Config struct {
	Title       string   `toml:"title"`
	Description string   `toml:"description"`
	Version     string   `toml:"version"`
	Servers     []string `toml:"servers"`
}

// ConfigEnv maps config fields to environment variable names for override injection.
type ConfigEnv struct {
	Title       string
	Description string
	Version     string
	Servers     string
}

// Finalize applies defaults and environment variable overrides.
func (c *Config) Finalize(env *ConfigEnv) error {
	if c.Title == "" {
		c.Title = "promptiverse API"
	}
	if c.Description == "" {
		c.Description = "Prompt catalog and style profile service."
	}
	if env == nil {
		return nil
	}

	for dst, name := range map[*string]string{
		&c.Title:       env.Title,
		&c.Description: env.Description,
		&c.Version:     env.Version,
	} {
		if v := getenv(name); v != "" {
			*dst = v
		}
	}
	if v := getenv(env.Servers); v != "" {
		c.Servers = c.Servers[:0]
		for s := range strings.SplitSeq(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				c.Servers = append(c.Servers, s)
			}
		}
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	for dst, src := range map[*string]string{
		&c.Title:       overlay.Title,
		&c.Description: overlay.Description,
		&c.Version:     overlay.Version,
	} {
		if src != "" {
			*dst = src
		}
	}
	if overlay.Servers != nil {
		c.Servers = overlay.Servers
	}
}

// Apply writes the configured metadata onto spec.
func (c *Config) Apply(spec *Spec) {
	spec.Info.Title = c.Title
	spec.SetDescription(c.Description)
	if c.Version != "" {
		spec.Info.Version = c.Version
	}
	for _, url := range c.Servers {
		spec.AddServer(url)
	}
}

func getenv(name string) string {
	if name == "" {
		return ""
	}
	return os.Getenv(name)
}
