package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ochairo/localcert/internal/domain/entities"
	"github.com/ochairo/localcert/internal/external-adapters/env"
	"github.com/ochairo/localcert/internal/external-adapters/toml"
	"github.com/ochairo/localcert/internal/external-adapters/yaml"
)

// loadConfig layers defaults, the optional config file, .env plus the
// environment, and finally the --dir flag
func loadConfig(configPath, dir string) (entities.Config, error) {
	cfg := entities.DefaultConfig()

	if configPath != "" {
		fileCfg, err := parseConfigFile(configPath)
		if err != nil {
			return entities.Config{}, err
		}
		cfg.Merge(*fileCfg)
	}

	dotenvDir := cfg.WorkDir
	if dir != "" {
		dotenvDir = dir
	}
	if err := env.LoadDotEnv(filepath.Join(dotenvDir, ".env")); err != nil {
		return entities.Config{}, err
	}

	envCfg, err := env.Load()
	if err != nil {
		return entities.Config{}, err
	}
	cfg.Merge(*envCfg)

	if dir != "" {
		cfg.WorkDir = dir
	}

	if err := cfg.Validate(); err != nil {
		return entities.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func parseConfigFile(path string) (*entities.Config, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.NewConfigParser().ParseFile(path)
	case ".toml":
		return toml.NewConfigParser().ParseFile(path)
	default:
		return nil, fmt.Errorf("unsupported config file type: %s (use .yaml, .yml or .toml)", path)
	}
}
