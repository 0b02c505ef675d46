// Package gpg provides GPG signature verification capabilities.
package gpg

import (
	"bytes"
	"fmt"
	"os"

	"github.com/ProtonMail/go-crypto/openpgp"
)

// armoredSignaturePrefix starts every ASCII-armored detached signature
const armoredSignaturePrefix = "-----BEGIN PGP SIGNATURE---"

// Verifier checks detached OpenPGP signatures against an in-memory keyring
type Verifier struct {
	keyring openpgp.EntityList
}

// NewVerifier creates a new GPG verifier
func NewVerifier() *Verifier {
	return &Verifier{
		keyring: make(openpgp.EntityList, 0),
	}
}

// ImportKeyFromFile imports a GPG key from a file
func (v *Verifier) ImportKeyFromFile(keyPath string) error {
	//nolint:gosec // G304: keyPath is user-provided for GPG key import
	data, err := os.ReadFile(keyPath)
	if err != nil {
		return fmt.Errorf("failed to open key file: %w", err)
	}

	return v.ImportKeys(data)
}

// ImportKeys imports an armored or binary keyring
func (v *Verifier) ImportKeys(data []byte) error {
	entities, err := openpgp.ReadArmoredKeyRing(bytes.NewReader(data))
	if err != nil {
		// Try reading as binary
		entities, err = openpgp.ReadKeyRing(bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("failed to read key: %w", err)
		}
	}

	if len(entities) == 0 {
		return fmt.Errorf("no keys found in keyring")
	}

	v.keyring = append(v.keyring, entities...)
	return nil
}

// VerifyDetached verifies a detached signature over data
func (v *Verifier) VerifyDetached(data, sigData []byte) error {
	if len(v.keyring) == 0 {
		return fmt.Errorf("no GPG keys imported, call ImportKeys first")
	}

	// Security: Basic format validation
	if len(sigData) < 10 {
		return fmt.Errorf("signature file too small to be valid GPG signature")
	}

	var verifyErr error
	if bytes.HasPrefix(sigData, []byte(armoredSignaturePrefix)) {
		_, verifyErr = openpgp.CheckArmoredDetachedSignature(v.keyring, bytes.NewReader(data), bytes.NewReader(sigData), nil)
	} else {
		_, verifyErr = openpgp.CheckDetachedSignature(v.keyring, bytes.NewReader(data), bytes.NewReader(sigData), nil)
	}

	if verifyErr != nil {
		return fmt.Errorf("signature verification failed: %w", verifyErr)
	}

	return nil
}

// GetKeyringSize returns the number of keys in the keyring
func (v *Verifier) GetKeyringSize() int {
	return len(v.keyring)
}
