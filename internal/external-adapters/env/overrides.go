// Package env reads configuration overrides from the process environment and .env files.
package env

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/ochairo/localcert/internal/domain/entities"
)

// envConfig maps LOCALCERT_* variables. Maps use "key:value,key:value".
type envConfig struct {
	WorkDir          string            `env:"LOCALCERT_WORK_DIR"`
	ReleaseURL       string            `env:"LOCALCERT_RELEASE_URL"`
	UserAgent        string            `env:"LOCALCERT_USER_AGENT"`
	GitHubToken      string            `env:"LOCALCERT_GITHUB_TOKEN"`
	FallbackToken    string            `env:"GITHUB_TOKEN"`
	HTTPTimeout      time.Duration     `env:"LOCALCERT_HTTP_TIMEOUT"`
	OSAliases        map[string]string `env:"LOCALCERT_OS_ALIASES"`
	ArchAliases      map[string]string `env:"LOCALCERT_ARCH_ALIASES"`
	ToolSHA256       string            `env:"LOCALCERT_TOOL_SHA256"`
	SignatureKeyring string            `env:"LOCALCERT_SIGNATURE_KEYRING"`
	SignatureSuffix  string            `env:"LOCALCERT_SIGNATURE_SUFFIX"`
	LogLevel         string            `env:"LOCALCERT_LOG_LEVEL"`
	LogFormat        string            `env:"LOCALCERT_LOG_FORMAT"`
}

// LoadDotEnv loads a .env file into the process environment without
// overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Load reads overrides from the process environment
func Load() (*entities.Config, error) {
	return parse(env.Options{})
}

// LoadFrom reads overrides from the given variables instead of the process environment
func LoadFrom(environ map[string]string) (*entities.Config, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (*entities.Config, error) {
	var raw envConfig
	if err := env.ParseWithOptions(&raw, opts); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	token := raw.GitHubToken
	if token == "" {
		token = raw.FallbackToken
	}

	return &entities.Config{
		WorkDir:     raw.WorkDir,
		ReleaseURL:  raw.ReleaseURL,
		UserAgent:   raw.UserAgent,
		GitHubToken: token,
		HTTPTimeout: raw.HTTPTimeout,
		Platform: entities.PlatformAliases{
			OS:   raw.OSAliases,
			Arch: raw.ArchAliases,
		},
		ToolSHA256: raw.ToolSHA256,
		Signature: entities.SignatureConfig{
			Keyring: raw.SignatureKeyring,
			Suffix:  raw.SignatureSuffix,
		},
		Log: entities.LogConfig{
			Level:  raw.LogLevel,
			Format: raw.LogFormat,
		},
	}, nil
}
