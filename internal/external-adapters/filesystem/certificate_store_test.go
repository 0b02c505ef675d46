package filesystem

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ochairo/localcert/internal/domain/entities"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestCertificateStore_Paths(t *testing.T) {
	store := NewCertificateStore("")

	assert.Equal(t, "localhost-key.pem", store.KeyPath())
	assert.Equal(t, "localhost.pem", store.CertPath())
}

func TestCertificateStore_TryRead(t *testing.T) {
	tests := []struct {
		name      string
		files     map[string]string
		wantFound bool
	}{
		{"both present", map[string]string{entities.KeyFileName: "key", entities.CertFileName: "cert"}, true},
		{"empty files", map[string]string{entities.KeyFileName: "", entities.CertFileName: ""}, false},
		{"empty cert", map[string]string{entities.KeyFileName: "key", entities.CertFileName: ""}, false},
		{"empty key", map[string]string{entities.KeyFileName: "", entities.CertFileName: "cert"}, false},
		{"key only", map[string]string{entities.KeyFileName: "key"}, false},
		{"cert only", map[string]string{entities.CertFileName: "cert"}, false},
		{"neither", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for name, content := range tt.files {
				writeFile(t, dir, name, content)
			}

			pair, found, err := NewCertificateStore(dir).TryRead()
			require.NoError(t, err)
			assert.Equal(t, tt.wantFound, found)

			if !tt.wantFound {
				assert.Nil(t, pair)
				return
			}
			assert.Equal(t, tt.files[entities.KeyFileName], string(pair.Key))
			assert.Equal(t, tt.files[entities.CertFileName], string(pair.Cert))
		})
	}
}

func TestCertificateStore_TryRead_ReadError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, entities.KeyFileName, "key")
	// A directory where a file is expected is not "absent"
	require.NoError(t, os.Mkdir(filepath.Join(dir, entities.CertFileName), 0o750))

	_, found, err := NewCertificateStore(dir).TryRead()

	assert.False(t, found)
	var readErr *entities.StoreReadError
	require.ErrorAs(t, err, &readErr)
	assert.Equal(t, filepath.Join(dir, entities.CertFileName), readErr.Path)
}

func TestToolLocator(t *testing.T) {
	dir := t.TempDir()
	linux := NewToolLocator(dir, entities.PlatformIdentity{OS: "linux", Arch: "amd64"})
	windows := NewToolLocator(dir, entities.PlatformIdentity{OS: "windows", Arch: "amd64"})

	assert.Equal(t, filepath.Join(dir, "mkcert"), linux.Path())
	assert.Equal(t, filepath.Join(dir, "mkcert.exe"), windows.Path())
	assert.False(t, linux.IsPresent())

	writeFile(t, dir, "mkcert", "binary")

	assert.True(t, linux.IsPresent())
	assert.False(t, windows.IsPresent())
}

func TestToolLocator_UnreadableDirCountsAsAbsent(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced")
	}

	dir := t.TempDir()
	sub := filepath.Join(dir, "locked")
	require.NoError(t, os.Mkdir(sub, 0o750))
	writeFile(t, sub, "mkcert", "binary")
	require.NoError(t, os.Chmod(sub, 0o000))
	t.Cleanup(func() { _ = os.Chmod(sub, 0o750) })

	assert.False(t, NewToolLocator(sub, entities.PlatformIdentity{OS: "linux", Arch: "amd64"}).IsPresent())
}
