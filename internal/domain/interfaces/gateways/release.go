// Package gateways defines interfaces for external service adapters.
package gateways

import (
	"context"

	"github.com/ochairo/localcert/internal/domain/entities"
)

// ReleaseGateway resolves where the tool binary for a platform can be downloaded
type ReleaseGateway interface {
	// FetchLatestRelease retrieves the metadata of the latest published release
	FetchLatestRelease(ctx context.Context) (*entities.ReleaseMetadata, error)

	// SelectAsset picks the release asset built for the platform
	SelectAsset(meta *entities.ReleaseMetadata, platform entities.PlatformIdentity) (*entities.ReleaseAsset, error)

	// ResolveRedirect extracts the real binary location from an asset's redirect page
	ResolveRedirect(ctx context.Context, assetURL string) (string, error)
}

// ArtifactVerifier checks a downloaded binary before it is written to disk
type ArtifactVerifier interface {
	// VerifyArtifact returns an error when data is not the expected binary for asset
	VerifyArtifact(ctx context.Context, meta *entities.ReleaseMetadata, asset *entities.ReleaseAsset, data []byte) error
}
