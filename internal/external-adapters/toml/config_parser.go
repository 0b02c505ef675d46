// Package toml provides TOML-based configuration parsing.
package toml

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/ochairo/localcert/internal/domain/entities"
)

type tomlConfig struct {
	WorkDir     string        `toml:"work_dir"`
	ReleaseURL  string        `toml:"release_url"`
	UserAgent   string        `toml:"user_agent"`
	GitHubToken string        `toml:"github_token"`
	HTTPTimeout string        `toml:"http_timeout"`
	Platform    tomlPlatform  `toml:"platform"`
	ToolSHA256  string        `toml:"tool_sha256"`
	Signature   tomlSignature `toml:"signature"`
	Log         tomlLog       `toml:"log"`
}

type tomlPlatform struct {
	OSAliases   map[string]string `toml:"os_aliases"`
	ArchAliases map[string]string `toml:"arch_aliases"`
}

type tomlSignature struct {
	Keyring string `toml:"keyring"`
	Suffix  string `toml:"suffix"`
}

type tomlLog struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// ConfigParser parses TOML configuration files
type ConfigParser struct{}

// NewConfigParser creates a new TOML parser
func NewConfigParser() *ConfigParser {
	return &ConfigParser{}
}

// ParseFile parses a TOML config file
func (p *ConfigParser) ParseFile(filePath string) (*entities.Config, error) {
	//nolint:gosec // G304: filePath is the user-selected config file
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("config load failed (%s): %w", filePath, err)
	}

	cfg, err := p.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config parse failed (%s): %w", filePath, err)
	}
	return cfg, nil
}

// Parse parses TOML bytes into a Config entity
func (p *ConfigParser) Parse(data []byte) (*entities.Config, error) {
	var raw tomlConfig
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown keys: %v", undecoded)
	}

	var timeout time.Duration
	if raw.HTTPTimeout != "" {
		timeout, err = time.ParseDuration(raw.HTTPTimeout)
		if err != nil {
			return nil, fmt.Errorf("invalid http_timeout: %w", err)
		}
	}

	return &entities.Config{
		WorkDir:     raw.WorkDir,
		ReleaseURL:  raw.ReleaseURL,
		UserAgent:   raw.UserAgent,
		GitHubToken: raw.GitHubToken,
		HTTPTimeout: timeout,
		Platform: entities.PlatformAliases{
			OS:   raw.Platform.OSAliases,
			Arch: raw.Platform.ArchAliases,
		},
		ToolSHA256: raw.ToolSHA256,
		Signature: entities.SignatureConfig{
			Keyring: raw.Signature.Keyring,
			Suffix:  raw.Signature.Suffix,
		},
		Log: entities.LogConfig{
			Level:  raw.Log.Level,
			Format: raw.Log.Format,
		},
	}, nil
}
