package main

import (
	"context"
	"flag"
	"fmt"
	"os"
)

func runResolve(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("resolve", flag.ExitOnError)
	configPath := fs.String("config", "", "Config file (.yaml, .yml or .toml)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: localcert resolve [options]

Print the direct download URL of the latest mkcert binary for this platform.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	if err := executeResolve(ctx, *configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func executeResolve(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(configPath, "")
	if err != nil {
		return err
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.close()

	url, err := a.releases.ResolveDownloadURL(ctx, a.platform)
	if err != nil {
		return err
	}

	fmt.Println(url)
	return nil
}
