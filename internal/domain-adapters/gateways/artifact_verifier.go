package gateways

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ochairo/localcert/internal/domain/entities"
	"github.com/ochairo/localcert/internal/domain/interfaces"
)

// maxSignatureSize bounds signature downloads; GPG signatures are typically < 1KB
const maxSignatureSize = 10 * 1024

// SignatureChecker verifies a detached signature over data
type SignatureChecker interface {
	VerifyDetached(data, sig []byte) error
}

// ArtifactVerifierConfig contains configuration for binary verification
type ArtifactVerifierConfig struct {
	SHA256          string
	SignatureSuffix string
	UserAgent       string
	Timeout         time.Duration
}

// ArtifactVerifier checks a downloaded tool binary against a pinned checksum
// and, when a signature checker is set, the release's detached signature
type ArtifactVerifier struct {
	httpClient       *http.Client
	checksumVerifier *checksumVerifier
	signatures       SignatureChecker
	sha256           string
	suffix           string
	userAgent        string
	logger           interfaces.Logger
}

// NewArtifactVerifier creates a verifier. signatures may be nil.
func NewArtifactVerifier(config ArtifactVerifierConfig, signatures SignatureChecker, logger interfaces.Logger) *ArtifactVerifier {
	if config.UserAgent == "" {
		config.UserAgent = entities.DefaultUserAgent
	}
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}

	return &ArtifactVerifier{
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		checksumVerifier: NewChecksumVerifier(),
		signatures:       signatures,
		sha256:           config.SHA256,
		suffix:           config.SignatureSuffix,
		userAgent:        config.UserAgent,
		logger:           logger,
	}
}

// Enabled reports whether any check is configured
func (v *ArtifactVerifier) Enabled() bool {
	return v.sha256 != "" || v.signatures != nil
}

// VerifyArtifact runs the configured checks over data
func (v *ArtifactVerifier) VerifyArtifact(
	ctx context.Context,
	meta *entities.ReleaseMetadata,
	asset *entities.ReleaseAsset,
	data []byte,
) error {
	if v.sha256 != "" {
		if err := v.checksumVerifier.VerifyChecksum(data, v.sha256); err != nil {
			return &entities.InstallError{Op: "verify", Err: err}
		}
		v.logger.Info("checksum verified", interfaces.F("asset", asset.Name))
	}

	if v.signatures == nil {
		return nil
	}

	sigName := asset.Name + v.suffix
	sigAsset, ok := meta.FindAsset(sigName)
	if !ok {
		return &entities.InstallError{Op: "verify", Err: fmt.Errorf("signature asset %s not found in release", sigName)}
	}

	sig, err := v.fetchSignature(ctx, sigAsset.DownloadURL)
	if err != nil {
		return &entities.InstallError{Op: "verify", Err: err}
	}

	if err := v.signatures.VerifyDetached(data, sig); err != nil {
		return &entities.InstallError{Op: "verify", Err: err}
	}

	v.logger.Info("signature verified", interfaces.F("asset", asset.Name))
	return nil
}

func (v *ArtifactVerifier) fetchSignature(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create signature download request: %w", err)
	}
	req.Header.Set("User-Agent", v.userAgent)

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download signature: %w", err)
	}
	//nolint:errcheck // Defer close
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("signature download failed with status %d", resp.StatusCode)
	}

	sig, err := io.ReadAll(io.LimitReader(resp.Body, maxSignatureSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read signature: %w", err)
	}

	return sig, nil
}
