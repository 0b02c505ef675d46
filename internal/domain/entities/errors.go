package entities

import (
	"errors"
	"fmt"
)

// Sentinel causes wrapped by the stage errors below
var (
	ErrAssetNotFound    = errors.New("no release asset matches this platform")
	ErrRedirectNotFound = errors.New("the redirect URL was not found in the response")
	ErrUnexpectedOutput = errors.New("unexpected command output")
	ErrRateLimited      = errors.New("GitHub API rate limit exceeded")
	ErrChecksumMismatch = errors.New("checksum mismatch")
)

// StoreReadError is a filesystem failure other than "file absent" while reading the key or cert
type StoreReadError struct {
	Path string
	Err  error
}

func (e *StoreReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *StoreReadError) Unwrap() error { return e.Err }

// ResolutionError means the tool's download URL could not be resolved
type ResolutionError struct {
	Op  string
	Err error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolve %s: %v", e.Op, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// InstallError means the tool binary could not be downloaded, verified, written or made executable
type InstallError struct {
	Op  string
	Err error
}

func (e *InstallError) Error() string {
	return fmt.Sprintf("install %s: %v", e.Op, e.Err)
}

func (e *InstallError) Unwrap() error { return e.Err }

// RunError means the tool invocation failed or reported something other than success
type RunError struct {
	Op  string
	Err error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("run %s: %v", e.Op, e.Err)
}

func (e *RunError) Unwrap() error { return e.Err }

// UnexpectedOutput wraps text printed by a command that should have been silent on that stream
func UnexpectedOutput(stream, output string) error {
	return fmt.Errorf("%w on %s: %s", ErrUnexpectedOutput, stream, output)
}
