package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/launchgen/internal/foundation/errors"
)

// envFiles are loaded from the workspace root in order. godotenv never
// overrides a variable that is already set, so earlier files win.
var envFiles = []string{".env.local", ".env"}

// Load builds the effective configuration for a workspace rooted at root.
// When path is empty, root/.launchgen.yaml is used if it exists; an explicit
// path must exist.
func Load(root, path string) (*Config, error) {
	if err := loadEnvFiles(root); err != nil {
		return nil, err
	}

	explicit := path != ""
	if !explicit {
		path = filepath.Join(root, DefaultFileName)
	}

	fileCfg, err := parseFile(path, explicit)
	if err != nil {
		return nil, err
	}

	envCfg := &Config{}
	if err := env.ParseWithOptions(envCfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to read environment overrides").Fatal().Build()
	}

	cfg, err := merge(envCfg, fileCfg, Defaults())
	if err != nil {
		return nil, err
	}
	if fileCfg.File != "" {
		cfg.File = fileCfg.File
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// merge layers configs so that earlier ones take precedence: mergo only
// fills fields that are still zero in the destination.
func merge(layers ...*Config) (*Config, error) {
	out := &Config{}
	for _, layer := range layers {
		if err := mergo.Merge(out, layer); err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryInternal, "failed to merge configuration").Build()
		}
	}
	return out, nil
}

// Apply overlays non-zero fields of overrides onto c. It is used for CLI
// flags, which take precedence over every other source.
func (c *Config) Apply(overrides *Config) error {
	if err := mergo.Merge(c, overrides, mergo.WithOverride); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryInternal, "failed to apply overrides").Build()
	}
	return c.Validate()
}

func loadEnvFiles(root string) error {
	for _, name := range envFiles {
		path := filepath.Join(root, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryConfig, "failed to load environment file").
				WithContext("file", path).
				Fatal().
				Build()
		}
	}
	return nil
}

func parseFile(path string, required bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return &Config{}, nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ferrors.NotFoundError("configuration file not found").
				WithContext("file", path).
				Build()
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to read configuration file").
			WithContext("file", path).
			Fatal().
			Build()
	}

	cfg := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, fmt.Sprintf("failed to parse %s", filepath.Base(path))).
			WithContext("file", path).
			Fatal().
			Build()
	}
	cfg.File = path
	return cfg, nil
}
