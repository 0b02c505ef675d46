package orchestrators

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ochairo/localcert/internal/domain-adapters/gateways"
	"github.com/ochairo/localcert/internal/domain/entities"
	"github.com/ochairo/localcert/internal/external-adapters/filesystem"
)

// fakeMkcert behaves like "mkcert localhost" run in the current directory
const fakeMkcert = `#!/bin/sh
[ "$1" = "localhost" ] || exit 2
printf 'generated-key' > localhost-key.pem
printf 'generated-cert' > localhost.pem
echo 'The certificate is at "./localhost.pem" and the key at "./localhost-key.pem" ✅' >&2
`

// releaseServer serves the latest-release JSON, the asset redirect page and the binary
type releaseServer struct {
	*httptest.Server
	mu       sync.Mutex
	requests []string
}

func newReleaseServer(t *testing.T, platform entities.PlatformIdentity) *releaseServer {
	t.Helper()
	rs := &releaseServer{}
	rs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rs.mu.Lock()
		rs.requests = append(rs.requests, r.URL.Path)
		rs.mu.Unlock()

		switch r.URL.Path {
		case "/releases/latest":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"tag_name": "v1.4.4",
				"assets": []map[string]string{
					{"name": "mkcert-v1.4.4-plan9-386", "browser_download_url": rs.URL + "/wrong"},
					{"name": "mkcert-v1.4.4-" + platform.AssetSuffix(), "browser_download_url": rs.URL + "/asset"},
				},
			})
		case "/asset":
			w.Header().Set("Location", rs.URL+"/wrong")
			w.WriteHeader(http.StatusFound)
			fmt.Fprintf(w, `<html><body>You are being <a href="%s/binary?sig=1&amp;exp=2">redirected</a>.</body></html>`, rs.URL)
		case "/binary":
			if r.URL.Query().Get("exp") != "2" {
				w.WriteHeader(http.StatusForbidden)
				return
			}
			_, _ = w.Write([]byte(fakeMkcert))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(rs.Close)
	return rs
}

func (rs *releaseServer) paths() []string {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return append([]string(nil), rs.requests...)
}

func newEndToEnd(dir, releaseURL string, platform entities.PlatformIdentity) *ProvisionOrchestrator {
	executor := gateways.NewCommandExecutor(nil)
	store := filesystem.NewCertificateStore(dir)

	return NewProvisionOrchestrator(
		store,
		filesystem.NewToolLocator(dir, platform),
		gateways.NewHTTPGitHubGateway(gateways.GitHubGatewayConfig{ReleaseURL: releaseURL}, nil),
		gateways.NewToolInstaller(gateways.ToolInstallerConfig{WorkDir: dir, Platform: platform}, executor, nil),
		gateways.NewToolRunner(dir, platform, executor, store, nil),
		ProvisionOrchestratorConfig{Platform: platform},
	)
}

func TestProvisionOrchestrator_EndToEnd(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake mkcert is a shell script")
	}

	platform := entities.PlatformIdentity{OS: "linux", Arch: "amd64"}
	server := newReleaseServer(t, platform)
	dir := t.TempDir()

	result, err := newEndToEnd(dir, server.URL+"/releases/latest", platform).Run(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t,
		stagesOf("read", "touch", "version", "redirect", "download", "write", "mod", "run", "return"),
		result.Stages)
	assert.Equal(t, "generated-key", string(result.Pair.Key))
	assert.Equal(t, "generated-cert", string(result.Pair.Cert))
	assert.Equal(t, []string{"/releases/latest", "/asset", "/binary"}, server.paths())

	info, err := os.Stat(filepath.Join(dir, "mkcert"))
	require.NoError(t, err)
	assert.NotZero(t, info.Mode().Perm()&0o111, "mkcert should be executable")

	// A second run reuses the files without touching the network
	result, err = newEndToEnd(dir, server.URL+"/releases/latest", platform).Run(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, stagesOf("read", "return"), result.Stages)
	assert.Len(t, server.paths(), 3)
}

func TestProvisionOrchestrator_EndToEnd_ToolAlreadyInstalled(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake mkcert is a shell script")
	}

	platform := entities.PlatformIdentity{OS: "linux", Arch: "amd64"}
	server := newReleaseServer(t, platform)
	dir := t.TempDir()

	//nolint:gosec // G306: test script must be executable
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mkcert"), []byte(fakeMkcert), 0o755))

	result, err := newEndToEnd(dir, server.URL+"/releases/latest", platform).Run(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, stagesOf("read", "touch", "run", "return"), result.Stages)
	assert.Empty(t, server.paths())
}

func TestProvisionOrchestrator_EndToEnd_EmptyPairRegenerated(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake mkcert is a shell script")
	}

	platform := entities.PlatformIdentity{OS: "linux", Arch: "amd64"}
	server := newReleaseServer(t, platform)
	dir := t.TempDir()

	//nolint:gosec // G306: test script must be executable
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mkcert"), []byte(fakeMkcert), 0o755))
	// Left behind by an interrupted run
	require.NoError(t, os.WriteFile(filepath.Join(dir, entities.KeyFileName), nil, 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, entities.CertFileName), nil, 0o600))

	result, err := newEndToEnd(dir, server.URL+"/releases/latest", platform).Run(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, stagesOf("read", "touch", "run", "return"), result.Stages)
	assert.Equal(t, "generated-key", string(result.Pair.Key))
	assert.Equal(t, "generated-cert", string(result.Pair.Cert))
}

func TestProvisionOrchestrator_EndToEnd_NoAsset(t *testing.T) {
	server := newReleaseServer(t, entities.PlatformIdentity{OS: "linux", Arch: "amd64"})
	dir := t.TempDir()
	platform := entities.PlatformIdentity{OS: "freebsd", Arch: "riscv64"}

	result, err := newEndToEnd(dir, server.URL+"/releases/latest", platform).Run(context.Background(), nil)

	require.ErrorIs(t, err, entities.ErrAssetNotFound)
	assert.Equal(t, stagesOf("read", "touch", "version"), result.Stages)
	assert.Equal(t, []string{"/releases/latest"}, server.paths())
	assert.NoFileExists(t, filepath.Join(dir, "mkcert"))
}
