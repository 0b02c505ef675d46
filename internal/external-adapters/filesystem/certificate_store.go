// Package filesystem provides the on-disk certificate store and tool lookup.
package filesystem

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ochairo/localcert/internal/domain/entities"
)

// CertificateStore reads localhost-key.pem and localhost.pem from a directory
type CertificateStore struct {
	dir string
}

// NewCertificateStore creates a store rooted at dir
func NewCertificateStore(dir string) *CertificateStore {
	if dir == "" {
		dir = "."
	}
	return &CertificateStore{dir: dir}
}

// KeyPath returns the private key file path
func (s *CertificateStore) KeyPath() string {
	return filepath.Join(s.dir, entities.KeyFileName)
}

// CertPath returns the certificate file path
func (s *CertificateStore) CertPath() string {
	return filepath.Join(s.dir, entities.CertFileName)
}

// TryRead reads both files. A missing or empty file reports found=false;
// any other failure is a *entities.StoreReadError.
func (s *CertificateStore) TryRead() (*entities.KeyCertPair, bool, error) {
	key, found, err := readOptional(s.KeyPath())
	if err != nil || !found {
		return nil, false, err
	}

	cert, found, err := readOptional(s.CertPath())
	if err != nil || !found {
		return nil, false, err
	}

	return &entities.KeyCertPair{Key: key, Cert: cert}, true, nil
}

func readOptional(path string) ([]byte, bool, error) {
	//nolint:gosec // G304: path is one of the two fixed PEM names under the store directory
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, &entities.StoreReadError{Path: path, Err: err}
	}
	if len(data) == 0 {
		return nil, false, nil
	}
	return data, true, nil
}
