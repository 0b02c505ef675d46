package gateways

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/ochairo/localcert/internal/domain/entities"
	"github.com/ochairo/localcert/internal/domain/interfaces"
	"github.com/ochairo/localcert/internal/domain/interfaces/gateways"
	"github.com/ochairo/localcert/internal/domain/services"
)

// errPairMissing is returned when mkcert reported success but the files are not there
var errPairMissing = errors.New("key or certificate missing after successful run")

// ToolRunner runs "./mkcert localhost" in the working directory
type ToolRunner struct {
	executor *CommandExecutor
	store    gateways.CertificateStore
	workDir  string
	toolName string
	logger   interfaces.Logger
}

// NewToolRunner creates a new runner for the platform's tool binary
func NewToolRunner(
	workDir string,
	platform entities.PlatformIdentity,
	executor *CommandExecutor,
	store gateways.CertificateStore,
	logger interfaces.Logger,
) *ToolRunner {
	if workDir == "" {
		workDir = "."
	}
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	if executor == nil {
		executor = NewCommandExecutor(logger)
	}

	return &ToolRunner{
		executor: executor,
		store:    store,
		workDir:  workDir,
		toolName: platform.ExecutableName(entities.ToolBaseName),
		logger:   logger,
	}
}

// Run generates the localhost pair and reads it back from disk
func (tr *ToolRunner) Run(ctx context.Context) (*entities.KeyCertPair, error) {
	result := tr.executor.Execute(ctx, CommandConfig{
		// Relative to WorkingDir
		Name:        "." + string(filepath.Separator) + tr.toolName,
		Args:        []string{entities.CertHost},
		WorkingDir:  tr.workDir,
		Description: "run",
	})

	if err := result.Err(); err != nil {
		return nil, &entities.RunError{Op: "invoke", Err: err}
	}

	if err := services.ValidateRunOutput(result.Stdout, result.Stderr); err != nil {
		return nil, &entities.RunError{Op: "validate", Err: err}
	}

	tr.logger.Debug("tool run finished", interfaces.F("duration", result.Duration))

	pair, found, err := tr.store.TryRead()
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, &entities.RunError{Op: "read", Err: errPairMissing}
	}

	return pair, nil
}
