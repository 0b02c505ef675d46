package gateways

import (
	"context"

	"github.com/ochairo/localcert/internal/domain/entities"
)

// CertificateStore reads the key/cert pair from the working directory
type CertificateStore interface {
	// TryRead returns found=false when either file is absent
	TryRead() (pair *entities.KeyCertPair, found bool, err error)
}

// ToolLocator reports whether the tool binary is already installed
type ToolLocator interface {
	IsPresent() bool
}

// ToolInstaller downloads and persists the tool binary
type ToolInstaller interface {
	Download(ctx context.Context, url string) ([]byte, error)
	Write(data []byte) error
	MakeExecutable(ctx context.Context) error
}

// ToolRunner runs the installed tool and returns the pair it produced
type ToolRunner interface {
	Run(ctx context.Context) (*entities.KeyCertPair, error)
}
