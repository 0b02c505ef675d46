package main

import (
	"fmt"

	"github.com/ochairo/localcert/internal/domain-adapters/gateways"
	orchestrators "github.com/ochairo/localcert/internal/domain-orchestrators"
	"github.com/ochairo/localcert/internal/domain/entities"
	"github.com/ochairo/localcert/internal/domain/interfaces"
	"github.com/ochairo/localcert/internal/domain/services"
	"github.com/ochairo/localcert/internal/external-adapters/filesystem"
	"github.com/ochairo/localcert/internal/external-adapters/gpg"
	zaplog "github.com/ochairo/localcert/internal/external-adapters/zap"
)

// app holds the wired components for one CLI invocation
type app struct {
	config       entities.Config
	platform     entities.PlatformIdentity
	logger       *zaplog.Logger
	store        *filesystem.CertificateStore
	releases     *gateways.HTTPGitHubGateway
	orchestrator *orchestrators.ProvisionOrchestrator
}

func newApp(cfg entities.Config) (*app, error) {
	logger, err := zaplog.NewFromConfig(cfg.Log)
	if err != nil {
		return nil, err
	}

	platform := services.CurrentPlatform(cfg.Platform)
	executor := gateways.NewCommandExecutor(logger)
	store := filesystem.NewCertificateStore(cfg.WorkDir)

	releases := gateways.NewHTTPGitHubGateway(gateways.GitHubGatewayConfig{
		ReleaseURL: cfg.ReleaseURL,
		UserAgent:  cfg.UserAgent,
		Token:      cfg.GitHubToken,
		Timeout:    cfg.HTTPTimeout,
	}, logger)

	installer := gateways.NewToolInstaller(gateways.ToolInstallerConfig{
		WorkDir:   cfg.WorkDir,
		Platform:  platform,
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.HTTPTimeout,
	}, executor, logger)

	runner := gateways.NewToolRunner(cfg.WorkDir, platform, executor, store, logger)

	var signatures gateways.SignatureChecker
	if cfg.Signature.Enabled() {
		verifier := gpg.NewVerifier()
		if err := verifier.ImportKeyFromFile(cfg.Signature.Keyring); err != nil {
			return nil, fmt.Errorf("failed to load signature keyring: %w", err)
		}
		logger.Debug("loaded signature keyring",
			interfaces.F("path", cfg.Signature.Keyring),
			interfaces.F("keys", verifier.GetKeyringSize()))
		signatures = verifier
	}
	artifacts := gateways.NewArtifactVerifier(gateways.ArtifactVerifierConfig{
		SHA256:          cfg.ToolSHA256,
		SignatureSuffix: cfg.Signature.Suffix,
		UserAgent:       cfg.UserAgent,
		Timeout:         cfg.HTTPTimeout,
	}, signatures, logger)

	orchConfig := orchestrators.ProvisionOrchestratorConfig{
		Platform: platform,
		Logger:   logger,
	}
	if artifacts.Enabled() {
		orchConfig.Verifier = artifacts
	}

	orchestrator := orchestrators.NewProvisionOrchestrator(
		store,
		filesystem.NewToolLocator(cfg.WorkDir, platform),
		releases,
		installer,
		runner,
		orchConfig,
	)

	return &app{
		config:       cfg,
		platform:     platform,
		logger:       logger,
		store:        store,
		releases:     releases,
		orchestrator: orchestrator,
	}, nil
}

func (a *app) close() {
	_ = a.logger.Sync()
}
