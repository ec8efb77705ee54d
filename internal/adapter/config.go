package adapter

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"

	m "github.com/mouse-blink/sjv/internal/model"
)

// DefaultConfigFile is looked up in the working directory when no explicit
// configuration path is given.
const DefaultConfigFile = ".sjv.toml"

// DefaultReportsDir is where reports are written unless configured otherwise.
const DefaultReportsDir = ".sjv-reports"

// Config is the project configuration read from a TOML file.
type Config struct {
	Parallel   int           `toml:"parallel"`
	Reports    string        `toml:"reports"`
	Extensions []string      `toml:"extensions"`
	Exclude    []string      `toml:"exclude"`
	Verbose    bool          `toml:"verbose"`
	Checker    CheckerConfig `toml:"checker"`
}

// CheckerConfig tunes the checker itself.
type CheckerConfig struct {
	// MethodShadowing is "reject" or "last-wins".
	MethodShadowing string `toml:"method_shadowing"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Parallel:   1,
		Reports:    DefaultReportsDir,
		Extensions: append([]string(nil), DefaultExtensions...),
		Checker:    CheckerConfig{MethodShadowing: "reject"},
	}
}

// ConfigLoader reads project configuration.
type ConfigLoader interface {
	// Load reads path on top of DefaultConfig. An empty path loads
	// DefaultConfigFile if it exists and the defaults otherwise.
	Load(path m.Path) (Config, error)
}

// LocalConfigLoader reads configuration from disk.
type LocalConfigLoader struct{}

// NewConfigLoader constructs a ConfigLoader implementation.
func NewConfigLoader() *LocalConfigLoader {
	return &LocalConfigLoader{}
}

// Load implements ConfigLoader.
func (l *LocalConfigLoader) Load(path m.Path) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(string(path))
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}

		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if cfg.Parallel < 1 {
		return Config{}, fmt.Errorf("invalid config %s: parallel must be at least 1, got %d", path, cfg.Parallel)
	}

	if len(cfg.Extensions) == 0 {
		cfg.Extensions = append([]string(nil), DefaultExtensions...)
	}

	return cfg, nil
}
