// Package orchestrators coordinates complex workflows across multiple domain services.
package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ochairo/localcert/internal/domain/entities"
	"github.com/ochairo/localcert/internal/domain/interfaces"
	"github.com/ochairo/localcert/internal/domain/interfaces/gateways"
)

// errStopped is returned by the producer when the consumer stops iterating
var errStopped = errors.New("progress consumer stopped")

// ProvisionOrchestrator guarantees a localhost key/cert pair exists, installing
// and running mkcert when needed
type ProvisionOrchestrator struct {
	store     gateways.CertificateStore
	locator   gateways.ToolLocator
	releases  gateways.ReleaseGateway
	installer gateways.ToolInstaller
	runner    gateways.ToolRunner
	verifier  gateways.ArtifactVerifier
	platform  entities.PlatformIdentity
	logger    interfaces.Logger
}

// ProvisionOrchestratorConfig holds configuration for the orchestrator
type ProvisionOrchestratorConfig struct {
	Platform entities.PlatformIdentity
	Verifier gateways.ArtifactVerifier // optional
	Logger   interfaces.Logger
}

// NewProvisionOrchestrator creates a new provisioning orchestrator
func NewProvisionOrchestrator(
	store gateways.CertificateStore,
	locator gateways.ToolLocator,
	releases gateways.ReleaseGateway,
	installer gateways.ToolInstaller,
	runner gateways.ToolRunner,
	config ProvisionOrchestratorConfig,
) *ProvisionOrchestrator {
	logger := config.Logger
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}

	return &ProvisionOrchestrator{
		store:     store,
		locator:   locator,
		releases:  releases,
		installer: installer,
		runner:    runner,
		verifier:  config.Verifier,
		platform:  config.Platform,
		logger:    logger,
	}
}

// ProvisionResult contains the result of a provisioning run
type ProvisionResult struct {
	Pair          *entities.KeyCertPair
	Stages        []entities.Stage
	Installed     bool // mkcert was downloaded during this run
	Generated     bool // mkcert was run during this run
	TotalDuration time.Duration
}

// Summary returns a human-readable summary of the run
func (r *ProvisionResult) Summary() string {
	var how string
	switch {
	case r.Installed:
		how = "installed mkcert and generated a new pair"
	case r.Generated:
		how = "generated a new pair"
	default:
		how = "reused the existing pair"
	}

	names := make([]string, len(r.Stages))
	for i, s := range r.Stages {
		names[i] = string(s)
	}

	return fmt.Sprintf("Certificate ready: %s\nStages: %s\nTotal: %v",
		how, strings.Join(names, " → "), r.TotalDuration)
}

// Run executes the pipeline, calling onStage once per stage as it is reached.
// onStage may be nil.
func (o *ProvisionOrchestrator) Run(ctx context.Context, onStage func(entities.Progress)) (*ProvisionResult, error) {
	startTime := time.Now()
	result := &ProvisionResult{}

	err := o.provision(ctx, func(p entities.Progress) bool {
		result.Stages = append(result.Stages, p.Stage)
		switch {
		case p.Stage == entities.StageDownload:
			result.Installed = true
		case p.Stage == entities.StageRun:
			result.Generated = true
		case p.Stage.IsTerminal():
			result.Pair = p.Pair
		}
		if onStage != nil {
			onStage(p)
		}
		return true
	})
	result.TotalDuration = time.Since(startTime)

	return result, err
}

// Stages returns the pipeline as a pull-style sequence. Each value is yielded
// before its stage's work starts and the pipeline does not advance until the
// consumer asks for the next value. A failure is yielded once, as the last
// element, with a zero Progress. Breaking out of the loop halts the pipeline
// at that stage boundary.
func (o *ProvisionOrchestrator) Stages(ctx context.Context) iter.Seq2[entities.Progress, error] {
	return func(yield func(entities.Progress, error) bool) {
		err := o.provision(ctx, func(p entities.Progress) bool {
			return yield(p, nil)
		})
		if err != nil && !errors.Is(err, errStopped) {
			yield(entities.Progress{}, err)
		}
	}
}

// Pull returns next/stop functions over Stages for consumers that drive the
// pipeline one step at a time. stop must be called when done.
func (o *ProvisionOrchestrator) Pull(ctx context.Context) (next func() (entities.Progress, error, bool), stop func()) {
	return iter.Pull2(o.Stages(ctx))
}

// provision is the single producer behind Run, Stages and Pull.
// emit returning false stops the pipeline with errStopped.
func (o *ProvisionOrchestrator) provision(ctx context.Context, emit func(entities.Progress) bool) error {
	logger := o.logger.With(interfaces.F("run_id", uuid.NewString()))

	enter := func(stage entities.Stage) error {
		logger.Debug("entering stage", interfaces.F("stage", string(stage)))
		if !emit(entities.Progress{Stage: stage}) {
			return errStopped
		}
		return nil
	}

	// Step 1: Serve the existing pair if both files are there
	if err := enter(entities.StageRead); err != nil {
		return err
	}
	pair, found, err := o.store.TryRead()
	if err != nil {
		logger.Error("failed to read certificate files", interfaces.F("error", err))
		return err
	}
	if found {
		logger.Info("using existing certificate files")
		return o.finish(emit, pair)
	}

	// Step 2: Install mkcert unless it is already in the working directory
	if err := enter(entities.StageTouch); err != nil {
		return err
	}
	if !o.locator.IsPresent() {
		logger.Info("mkcert not found, installing", interfaces.F("platform", o.platform.String()))
		if err := o.install(ctx, logger, enter); err != nil {
			return err
		}
	}

	// Step 3: Generate the pair
	if err := enter(entities.StageRun); err != nil {
		return err
	}
	pair, err = o.runner.Run(ctx)
	if err != nil {
		logger.Error("mkcert run failed", interfaces.F("error", err))
		return err
	}

	logger.Info("generated localhost certificate")
	return o.finish(emit, pair)
}

func (o *ProvisionOrchestrator) install(
	ctx context.Context,
	logger interfaces.Logger,
	enter func(entities.Stage) error,
) error {
	if err := enter(entities.StageVersion); err != nil {
		return err
	}
	meta, err := o.releases.FetchLatestRelease(ctx)
	if err != nil {
		logger.Error("failed to fetch latest release", interfaces.F("error", err))
		return err
	}
	asset, err := o.releases.SelectAsset(meta, o.platform)
	if err != nil {
		logger.Error("no release asset for platform", interfaces.F("platform", o.platform.String()), interfaces.F("tag", meta.TagName))
		return err
	}

	if err := enter(entities.StageRedirect); err != nil {
		return err
	}
	url, err := o.releases.ResolveRedirect(ctx, asset.DownloadURL)
	if err != nil {
		logger.Error("failed to resolve download URL", interfaces.F("asset", asset.Name), interfaces.F("error", err))
		return err
	}

	if err := enter(entities.StageDownload); err != nil {
		return err
	}
	data, err := o.installer.Download(ctx, url)
	if err != nil {
		logger.Error("failed to download mkcert", interfaces.F("error", err))
		return err
	}
	if o.verifier != nil {
		if err := o.verifier.VerifyArtifact(ctx, meta, asset, data); err != nil {
			logger.Error("downloaded binary failed verification", interfaces.F("error", err))
			return err
		}
	}

	if err := enter(entities.StageWrite); err != nil {
		return err
	}
	if err := o.installer.Write(data); err != nil {
		logger.Error("failed to write mkcert", interfaces.F("error", err))
		return err
	}

	if !o.platform.IsWindows() {
		if err := enter(entities.StageMod); err != nil {
			return err
		}
		if err := o.installer.MakeExecutable(ctx); err != nil {
			logger.Error("failed to make mkcert executable", interfaces.F("error", err))
			return err
		}
	}

	logger.Info("installed mkcert", interfaces.F("tag", meta.TagName), interfaces.F("asset", asset.Name))
	return nil
}

func (o *ProvisionOrchestrator) finish(emit func(entities.Progress) bool, pair *entities.KeyCertPair) error {
	if !emit(entities.Progress{Stage: entities.StageReturn, Pair: pair}) {
		return errStopped
	}
	return nil
}
