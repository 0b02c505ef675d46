package gateways

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/ochairo/localcert/internal/domain/interfaces"
)

// CommandExecutor runs subprocesses and captures their output streams
type CommandExecutor struct {
	logger interfaces.Logger
}

// NewCommandExecutor creates a new command executor
func NewCommandExecutor(logger interfaces.Logger) *CommandExecutor {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &CommandExecutor{logger: logger}
}

// CommandConfig contains configuration for executing a command.
// The command runs until it exits or ctx is done.
type CommandConfig struct {
	Name        string
	Args        []string
	WorkingDir  string
	Description string
}

// ExecuteResult contains the result of command execution
type ExecuteResult struct {
	Success  bool
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
	Error    error
}

// Execute runs the command to completion
func (ce *CommandExecutor) Execute(ctx context.Context, config CommandConfig) *ExecuteResult {
	startTime := time.Now()
	result := &ExecuteResult{}

	//nolint:gosec // G204: Command and arguments are fixed by the callers in this package
	cmd := exec.CommandContext(ctx, config.Name, config.Args...)
	if config.WorkingDir != "" {
		cmd.Dir = config.WorkingDir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if config.Description != "" {
		ce.logger.Debug("executing command",
			interfaces.F("description", config.Description),
			interfaces.F("command", config.Name),
			interfaces.F("args", config.Args))
	}

	err := cmd.Run()
	result.Duration = time.Since(startTime)
	result.Stdout = stdout.String()
	result.Stderr = stderr.String()

	if err != nil {
		result.Error = err
		result.ExitCode = -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			result.Error = fmt.Errorf("command interrupted: %w", ctxErr)
		}
		return result
	}

	result.Success = true
	result.ExitCode = 0
	return result
}

// Err returns a descriptive error for a failed execution, or nil on success
func (r *ExecuteResult) Err() error {
	if r.Success {
		return nil
	}
	if r.Stderr != "" {
		return fmt.Errorf("exit %d: %w\nStderr: %s", r.ExitCode, r.Error, r.Stderr)
	}
	return fmt.Errorf("exit %d: %w", r.ExitCode, r.Error)
}
