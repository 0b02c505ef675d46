package entities

import (
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Defaults for the mkcert release source
const (
	DefaultReleaseURL = "https://api.github.com/repos/FiloSottile/mkcert/releases/latest"
	DefaultUserAgent  = "localcert/1.0"
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "console"
)

// Config represents localcert runtime configuration
type Config struct {
	WorkDir     string
	ReleaseURL  string
	UserAgent   string
	GitHubToken string
	HTTPTimeout time.Duration // 0 keeps the net/http default (no timeout)
	Platform    PlatformAliases
	ToolSHA256  string // optional pin for the downloaded binary
	Signature   SignatureConfig
	Log         LogConfig
}

// PlatformAliases renames GOOS/GOARCH values that differ from mkcert's asset names
type PlatformAliases struct {
	OS   map[string]string
	Arch map[string]string
}

// SignatureConfig enables OpenPGP verification of the downloaded binary
type SignatureConfig struct {
	Keyring string // armored or binary public keyring file
	Suffix  string // signature asset name = binary asset name + Suffix, e.g. ".asc"
}

// Enabled reports whether signature verification is configured
func (s SignatureConfig) Enabled() bool {
	return s.Keyring != ""
}

// LogConfig selects the log level and encoder
type LogConfig struct {
	Level  string
	Format string // "console" or "json"
}

// DefaultConfig returns the configuration used when nothing overrides it
func DefaultConfig() Config {
	return Config{
		WorkDir:    ".",
		ReleaseURL: DefaultReleaseURL,
		UserAgent:  DefaultUserAgent,
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// Merge overlays every non-zero field of o onto c
func (c *Config) Merge(o Config) {
	if o.WorkDir != "" {
		c.WorkDir = o.WorkDir
	}
	if o.ReleaseURL != "" {
		c.ReleaseURL = o.ReleaseURL
	}
	if o.UserAgent != "" {
		c.UserAgent = o.UserAgent
	}
	if o.GitHubToken != "" {
		c.GitHubToken = o.GitHubToken
	}
	if o.HTTPTimeout != 0 {
		c.HTTPTimeout = o.HTTPTimeout
	}
	c.Platform.OS = mergeAliases(c.Platform.OS, o.Platform.OS)
	c.Platform.Arch = mergeAliases(c.Platform.Arch, o.Platform.Arch)
	if o.ToolSHA256 != "" {
		c.ToolSHA256 = o.ToolSHA256
	}
	if o.Signature.Keyring != "" {
		c.Signature.Keyring = o.Signature.Keyring
	}
	if o.Signature.Suffix != "" {
		c.Signature.Suffix = o.Signature.Suffix
	}
	if o.Log.Level != "" {
		c.Log.Level = o.Log.Level
	}
	if o.Log.Format != "" {
		c.Log.Format = o.Log.Format
	}
}

func mergeAliases(base, override map[string]string) map[string]string {
	if len(override) == 0 {
		return base
	}
	merged := make(map[string]string, len(base)+len(override))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range override {
		merged[k] = v
	}
	return merged
}

// Validate checks the configuration for values the pipeline cannot work with
func (c *Config) Validate() error {
	if strings.TrimSpace(c.UserAgent) == "" {
		return fmt.Errorf("user_agent must not be empty")
	}

	u, err := url.Parse(c.ReleaseURL)
	if err != nil {
		return fmt.Errorf("invalid release_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid release_url %q: scheme must be http or https", c.ReleaseURL)
	}

	if c.HTTPTimeout < 0 {
		return fmt.Errorf("http_timeout must not be negative")
	}

	if c.ToolSHA256 != "" {
		sum, err := hex.DecodeString(c.ToolSHA256)
		if err != nil || len(sum) != 32 {
			return fmt.Errorf("tool_sha256 must be 64 hex characters")
		}
	}

	if c.Signature.Enabled() && c.Signature.Suffix == "" {
		return fmt.Errorf("signature.suffix is required when signature.keyring is set")
	}

	switch c.Log.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("unsupported log format: %s", c.Log.Format)
	}

	return nil
}
