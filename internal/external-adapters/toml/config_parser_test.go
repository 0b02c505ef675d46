package toml

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigParser_Parse(t *testing.T) {
	cfg, err := NewConfigParser().Parse([]byte(`
work_dir = "./certs"
github_token = "ghp_test"
http_timeout = "2m"

[platform.os_aliases]
darwin = "macos"

[signature]
keyring = "mkcert.gpg"
suffix = ".sig"

[log]
level = "warn"
`))
	require.NoError(t, err)

	assert.Equal(t, "./certs", cfg.WorkDir)
	assert.Equal(t, "ghp_test", cfg.GitHubToken)
	assert.Equal(t, 2*time.Minute, cfg.HTTPTimeout)
	assert.Equal(t, map[string]string{"darwin": "macos"}, cfg.Platform.OS)
	assert.Equal(t, "mkcert.gpg", cfg.Signature.Keyring)
	assert.Equal(t, ".sig", cfg.Signature.Suffix)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Empty(t, cfg.Log.Format)
}

func TestConfigParser_Parse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{"unknown key", `workdir = "."`, "unknown keys"},
		{"bad duration", `http_timeout = "forever"`, "http_timeout"},
		{"syntax", `work_dir = `, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewConfigParser().Parse([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfigParser_ParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "localcert.toml")
	require.NoError(t, os.WriteFile(path, []byte(`user_agent = "x/1"`), 0o600))

	cfg, err := NewConfigParser().ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x/1", cfg.UserAgent)

	_, err = NewConfigParser().ParseFile(filepath.Join(dir, "missing.toml"))
	assert.ErrorContains(t, err, "config load failed")

	require.NoError(t, os.WriteFile(path, []byte(`nope = 1`), 0o600))
	_, err = NewConfigParser().ParseFile(path)
	assert.ErrorContains(t, err, "config parse failed")
}
