package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/ochairo/localcert/internal/domain/entities"
)

// stageLabels describes each stage for the progress display
var stageLabels = map[entities.Stage]string{
	entities.StageRead:     "Reading existing certificate files",
	entities.StageTouch:    "Looking for mkcert",
	entities.StageVersion:  "Fetching latest mkcert release",
	entities.StageRedirect: "Resolving download location",
	entities.StageDownload: "Downloading mkcert",
	entities.StageWrite:    "Writing mkcert",
	entities.StageMod:      "Making mkcert executable",
	entities.StageRun:      "Running mkcert localhost",
	entities.StageReturn:   "Done",
}

func runEnsure(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("ensure", flag.ExitOnError)
	var (
		dir        = fs.String("dir", "", "Working directory for the PEM files and mkcert (default: work_dir from config, or .)")
		configPath = fs.String("config", "", "Config file (.yaml, .yml or .toml)")
		quiet      = fs.Bool("quiet", false, "Only print the file paths")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: localcert ensure [options]

Make sure localhost-key.pem and localhost.pem exist in the working directory.
Existing files are reused. Otherwise mkcert is downloaded from its latest
GitHub release (if it is not already there) and run for localhost.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  localcert ensure
  localcert ensure --dir ./certs
  localcert ensure --config localcert.yaml --quiet
`)
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	if err := executeEnsure(ctx, *configPath, *dir, *quiet); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func executeEnsure(ctx context.Context, configPath, dir string, quiet bool) error {
	cfg, err := loadConfig(configPath, dir)
	if err != nil {
		return err
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.close()

	var onStage func(entities.Progress)
	if !quiet {
		onStage = func(p entities.Progress) {
			fmt.Printf("→ %-8s %s\n", p.Stage, stageLabels[p.Stage])
		}
	}

	result, err := a.orchestrator.Run(ctx, onStage)
	if err != nil {
		return err
	}

	if !quiet {
		fmt.Printf("\n%s\n\n", result.Summary())
	}
	fmt.Printf("key:  %s\ncert: %s\n", a.store.KeyPath(), a.store.CertPath())

	return nil
}
