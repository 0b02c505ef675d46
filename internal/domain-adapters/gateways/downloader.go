package gateways

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/ochairo/localcert/internal/domain/entities"
	"github.com/ochairo/localcert/internal/domain/interfaces"
	"github.com/ochairo/localcert/internal/domain/services"
)

// ToolInstallerConfig contains configuration for the tool installer
type ToolInstallerConfig struct {
	WorkDir   string
	Platform  entities.PlatformIdentity
	UserAgent string
	Timeout   time.Duration
}

// ToolInstaller downloads the tool binary and installs it into the working directory
type ToolInstaller struct {
	httpClient *http.Client
	executor   *CommandExecutor
	workDir    string
	toolName   string
	userAgent  string
	logger     interfaces.Logger
}

// NewToolInstaller creates a new installer
func NewToolInstaller(config ToolInstallerConfig, executor *CommandExecutor, logger interfaces.Logger) *ToolInstaller {
	if config.WorkDir == "" {
		config.WorkDir = "."
	}
	if config.UserAgent == "" {
		config.UserAgent = entities.DefaultUserAgent
	}
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	if executor == nil {
		executor = NewCommandExecutor(logger)
	}

	return &ToolInstaller{
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		executor:  executor,
		workDir:   config.WorkDir,
		toolName:  config.Platform.ExecutableName(entities.ToolBaseName),
		userAgent: config.UserAgent,
		logger:    logger,
	}
}

// ToolPath returns where the binary is written
func (ti *ToolInstaller) ToolPath() string {
	return filepath.Join(ti.workDir, ti.toolName)
}

// Download fetches the whole binary into memory
func (ti *ToolInstaller) Download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &entities.InstallError{Op: "download", Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("User-Agent", ti.userAgent)

	resp, err := ti.httpClient.Do(req)
	if err != nil {
		return nil, &entities.InstallError{Op: "download", Err: fmt.Errorf("HTTP request failed: %w", err)}
	}
	//nolint:errcheck // Defer close on HTTP response body
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &entities.InstallError{Op: "download", Err: fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &entities.InstallError{Op: "download", Err: fmt.Errorf("failed to read body: %w", err)}
	}

	ti.logger.Debug("downloaded tool binary", interfaces.F("bytes", len(data)))

	return data, nil
}

// Write persists the binary in a single write, replacing any existing file
func (ti *ToolInstaller) Write(data []byte) error {
	//nolint:gosec // G306: the file is made executable right after by chmod
	if err := os.WriteFile(ti.ToolPath(), data, 0o644); err != nil {
		return &entities.InstallError{Op: "write", Err: fmt.Errorf("failed to write %s: %w", ti.toolName, err)}
	}
	return nil
}

// MakeExecutable runs "chmod +x" on the binary. Any output on either stream is a failure.
func (ti *ToolInstaller) MakeExecutable(ctx context.Context) error {
	result := ti.executor.Execute(ctx, CommandConfig{
		Name:        "chmod",
		Args:        []string{"+x", ti.toolName},
		WorkingDir:  ti.workDir,
		Description: "mod",
	})

	if err := result.Err(); err != nil {
		return &entities.InstallError{Op: "mod", Err: err}
	}

	if err := services.RequireSilent(result.Stdout, result.Stderr); err != nil {
		return &entities.InstallError{Op: "mod", Err: err}
	}

	return nil
}
