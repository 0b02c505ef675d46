// Package yaml provides YAML-based configuration parsing.
package yaml

import (
	"fmt"
	"os"
	"time"

	"github.com/ochairo/localcert/internal/domain/entities"
	"gopkg.in/yaml.v3"
)

// yamlConfig represents the raw YAML structure
type yamlConfig struct {
	WorkDir     string        `yaml:"work_dir"`
	ReleaseURL  string        `yaml:"release_url"`
	UserAgent   string        `yaml:"user_agent"`
	GitHubToken string        `yaml:"github_token"`
	HTTPTimeout string        `yaml:"http_timeout"`
	Platform    yamlPlatform  `yaml:"platform"`
	ToolSHA256  string        `yaml:"tool_sha256"`
	Signature   yamlSignature `yaml:"signature"`
	Log         yamlLog       `yaml:"log"`
}

type yamlPlatform struct {
	OSAliases   map[string]string `yaml:"os_aliases"`
	ArchAliases map[string]string `yaml:"arch_aliases"`
}

type yamlSignature struct {
	Keyring string `yaml:"keyring"`
	Suffix  string `yaml:"suffix"`
}

type yamlLog struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ConfigParser parses YAML configuration files
type ConfigParser struct{}

// NewConfigParser creates a new YAML parser
func NewConfigParser() *ConfigParser {
	return &ConfigParser{}
}

// ParseFile parses a YAML config file. Fields absent from the file stay zero.
func (p *ConfigParser) ParseFile(filePath string) (*entities.Config, error) {
	//nolint:gosec // G304: filePath is the user-selected config file
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	return p.Parse(data)
}

// Parse parses YAML bytes into a Config entity
func (p *ConfigParser) Parse(data []byte) (*entities.Config, error) {
	var raw yamlConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	var timeout time.Duration
	if raw.HTTPTimeout != "" {
		d, err := time.ParseDuration(raw.HTTPTimeout)
		if err != nil {
			return nil, fmt.Errorf("invalid http_timeout: %w", err)
		}
		timeout = d
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
