package services

import (
	"runtime"

	"github.com/ochairo/localcert/internal/domain/entities"
)

// CurrentPlatform returns the identity of the running process
func CurrentPlatform(aliases entities.PlatformAliases) entities.PlatformIdentity {
	return DetectPlatform(runtime.GOOS, runtime.GOARCH, aliases)
}

// DetectPlatform names goos/goarch the way mkcert names its release assets.
// mkcert publishes its binaries under Go's own GOOS/GOARCH names, so a name
// passes through unchanged unless the configured aliases rename it.
func DetectPlatform(goos, goarch string, aliases entities.PlatformAliases) entities.PlatformIdentity {
	return entities.PlatformIdentity{
		OS:   translate(goos, aliases.OS),
		Arch: translate(goarch, aliases.Arch),
	}
}

func translate(name string, aliases map[string]string) string {
	if mapped := aliases[name]; mapped != "" {
		return mapped
	}
	return name
}
