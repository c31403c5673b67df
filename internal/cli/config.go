package cli

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/hypercouple/pkg/api"
	"github.com/matzehuels/hypercouple/pkg/coupling"
)

const configFile = "config.toml"

// Config is the contents of the TOML configuration file:
//
//	[engine]
//	default_algorithm = "frontier-expiries"
//	parallelism = 4
//
//	[limits]
//	max_nodes = 16
//	max_edges = 20
//	max_results = 100000
//
//	[server]
//	addr = ":8080"
//	request_timeout = 30
//	max_body_bytes = 1048576
//
// Keys that are absent keep their defaults. A limit of 0 disables it.
type Config struct {
	Engine EngineConfig    `toml:"engine"`
	Limits coupling.Limits `toml:"limits"`
	Server ServerConfig    `toml:"server"`
}

// EngineConfig configures the coupling engine.
type EngineConfig struct {
	DefaultAlgorithm coupling.Algorithm `toml:"default_algorithm"`
	Parallelism      int                `toml:"parallelism"`
}

// ServerConfig configures `hypercouple serve`.
type ServerConfig struct {
	Addr string `toml:"addr"`

	// RequestTimeout is in seconds. 0 disables it.
	RequestTimeout int   `toml:"request_timeout"`
	MaxBodyBytes   int64 `toml:"max_body_bytes"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() Config {
	return Config{
		Engine: EngineConfig{
			DefaultAlgorithm: coupling.DefaultAlgorithm,
		},
		Limits: coupling.DefaultLimits(),
		Server: ServerConfig{
			Addr:           ":8080",
			RequestTimeout: 30,
			MaxBodyBytes:   api.DefaultMaxBodyBytes,
		},
	}
}

// Timeout returns the request timeout as a duration.
func (s ServerConfig) Timeout() time.Duration {
	return time.Duration(s.RequestTimeout) * time.Second
}

// LoadConfig reads the config file at path over [DefaultConfig].
//
// An empty path selects the default location, and a missing file there is
// not an error. An explicit path must exist.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		dir, err := configDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, configFile)
		if _, err := os.Stat(path); stderrors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects negative settings.
func (c Config) Validate() error {
	switch {
	case c.Engine.Parallelism < 0:
		return fmt.Errorf("engine.parallelism must not be negative")
	case c.Limits.MaxNodes < 0, c.Limits.MaxEdges < 0, c.Limits.MaxResults < 0:
		return fmt.Errorf("limits must not be negative")
	case c.Server.RequestTimeout < 0:
		return fmt.Errorf("server.request_timeout must not be negative")
	}
	return nil
}
