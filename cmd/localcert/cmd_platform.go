package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/ochairo/localcert/internal/domain/entities"
	"github.com/ochairo/localcert/internal/domain/services"
)

func runPlatform(_ context.Context, args []string) {
	fs := flag.NewFlagSet("platform", flag.ExitOnError)
	configPath := fs.String("config", "", "Config file (.yaml, .yml or .toml)")

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	cfg, err := loadConfig(*configPath, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	platform := services.CurrentPlatform(cfg.Platform)
	fmt.Printf("go:     %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Printf("mkcert: %s\n", platform)
	fmt.Printf("asset:  *%s%s\n", platform.AssetSuffix(), platform.ExecutableExt())
	fmt.Printf("binary: %s\n", platform.ExecutableName(entities.ToolBaseName))
}
