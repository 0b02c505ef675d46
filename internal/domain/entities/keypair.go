// Package entities defines core domain models and data structures.
package entities

// Well-known file names in the working directory
const (
	KeyFileName  = "localhost-key.pem"
	CertFileName = "localhost.pem"
	ToolBaseName = "mkcert"
	CertHost     = "localhost"
)

// KeyCertPair holds the PEM bytes of the localhost private key and certificate.
// Callers treat both fields as opaque.
type KeyCertPair struct {
	Key  []byte
	Cert []byte
}

