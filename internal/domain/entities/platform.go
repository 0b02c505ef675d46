package entities

import "strings"

// PlatformIdentity is the OS/architecture pair named the way mkcert names its release assets
type PlatformIdentity struct {
	OS   string
	Arch string
}

// String returns the identity as "<os>-<arch>"
func (p PlatformIdentity) String() string {
	return p.OS + "-" + p.Arch
}

// AssetSuffix is the suffix a matching release asset name ends with
func (p PlatformIdentity) AssetSuffix() string {
	return p.String()
}

// IsWindows reports whether the identity is the Windows one
func (p PlatformIdentity) IsWindows() bool {
	return p.OS == "windows"
}

// ExecutableExt returns ".exe" on Windows and "" elsewhere
func (p PlatformIdentity) ExecutableExt() string {
	if p.IsWindows() {
		return ".exe"
	}
	return ""
}

// ExecutableName appends the platform's executable extension to base
func (p PlatformIdentity) ExecutableName(base string) string {
	return base + p.ExecutableExt()
}

// MatchesAsset reports whether a release asset name targets this platform.
// Windows assets carry a trailing ".exe" that is ignored for the comparison.
func (p PlatformIdentity) MatchesAsset(name string) bool {
	name = strings.TrimSuffix(name, p.ExecutableExt())
	return strings.HasSuffix(name, p.AssetSuffix())
}
