package storage

import (
	"errors"
	"os"
	"strconv"
)

// Config holds Azure Blob Storage connection parameters for style exports.
// MaxListSize is the default page size of export listings, capped at MaxListCap.
type Config struct {
	ContainerName    string `toml:"container_name"`
	ConnectionString string `toml:"connection_string"`
	MaxListSize      int32  `toml:"max_list_size"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	ContainerName    string
	ConnectionString string
	MaxListSize      string
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	if c.ContainerName == "" {
		c.ContainerName = "exports"
	}
	if c.MaxListSize <= 0 {
		c.MaxListSize = 50
	}

	if env != nil {
		if v := getenv(env.ContainerName); v != "" {
			c.ContainerName = v
		}
		if v := getenv(env.ConnectionString); v != "" {
			c.ConnectionString = v
		}
		if n, err := strconv.ParseInt(getenv(env.MaxListSize), 10, 32); err == nil && n > 0 {
			c.MaxListSize = int32(n)
		}
	}
	c.MaxListSize = min(c.MaxListSize, MaxListCap)

	if c.ConnectionString == "" {
		return errors.New("connection_string required")
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.ContainerName != "" {
		c.ContainerName = overlay.ContainerName
	}
	if overlay.ConnectionString != "" {
		c.ConnectionString = overlay.ConnectionString
	}
	if overlay.MaxListSize != 0 {
		c.MaxListSize = overlay.MaxListSize
	}
}

func getenv(name string) string {
	if name == "" {
		return ""
	}
	return os.Getenv(name)
}
