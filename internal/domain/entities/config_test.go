package entities

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ".", cfg.WorkDir)
	assert.Equal(t, DefaultReleaseURL, cfg.ReleaseURL)
	assert.Equal(t, DefaultUserAgent, cfg.UserAgent)
	assert.Zero(t, cfg.HTTPTimeout)
	assert.False(t, cfg.Signature.Enabled())
	require.NoError(t, cfg.Validate())
}

func TestConfig_Merge(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Platform.Arch = map[string]string{"386": "x86"}

	cfg.Merge(Config{
		WorkDir:     "/srv/certs",
		HTTPTimeout: 30 * time.Second,
		Platform: PlatformAliases{
			Arch: map[string]string{"riscv64": "riscv"},
		},
		Log: LogConfig{Format: "json"},
	})

	assert.Equal(t, "/srv/certs", cfg.WorkDir)
	assert.Equal(t, DefaultReleaseURL, cfg.ReleaseURL, "zero fields must not override")
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, map[string]string{"386": "x86", "riscv64": "riscv"}, cfg.Platform.Arch)
	assert.Nil(t, cfg.Platform.OS)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"empty user agent", func(c *Config) { c.UserAgent = "  " }, "user_agent"},
		{"relative release url", func(c *Config) { c.ReleaseURL = "/releases/latest" }, "scheme"},
		{"ftp release url", func(c *Config) { c.ReleaseURL = "ftp://example.com" }, "scheme"},
		{"negative timeout", func(c *Config) { c.HTTPTimeout = -time.Second }, "http_timeout"},
		{"short checksum", func(c *Config) { c.ToolSHA256 = "abcd" }, "tool_sha256"},
		{"non-hex checksum", func(c *Config) { c.ToolSHA256 = strings.Repeat("z", 64) }, "tool_sha256"},
		{"keyring without suffix", func(c *Config) { c.Signature.Keyring = "keys.asc" }, "signature.suffix"},
		{"unknown log format", func(c *Config) { c.Log.Format = "xml" }, "log format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_Validate_OptionalChecks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ToolSHA256 = strings.Repeat("aB", 32)
	cfg.Signature = SignatureConfig{Keyring: "keys.asc", Suffix: ".asc"}

	assert.NoError(t, cfg.Validate())
	assert.True(t, cfg.Signature.Enabled())
}
