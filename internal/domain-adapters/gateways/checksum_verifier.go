package gateways

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ochairo/localcert/internal/domain/entities"
)

// checksumVerifier implements checksum verification using pure Go
type checksumVerifier struct{}

// NewChecksumVerifier creates a new checksum verifier
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewChecksumVerifier() *checksumVerifier {
	return &checksumVerifier{}
}

// VerifyChecksum compares data's SHA256 against the expected hex digest
func (v *checksumVerifier) VerifyChecksum(data []byte, expectedSum string) error {
	actualSum := v.CalculateChecksum(data)

	if !strings.EqualFold(actualSum, expectedSum) {
		return fmt.Errorf("%w: expected %s, got %s", entities.ErrChecksumMismatch, expectedSum, actualSum)
	}

	return nil
}

// CalculateChecksum returns the hex SHA256 of data
func (v *checksumVerifier) CalculateChecksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
