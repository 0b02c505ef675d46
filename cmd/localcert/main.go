package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()
	command := os.Args[1]

	// Dispatch to subcommand
	switch command {
	case "ensure":
		runEnsure(ctx, os.Args[2:])
	case "resolve":
		runResolve(ctx, os.Args[2:])
	case "platform":
		runPlatform(ctx, os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`localcert - Local TLS certificates for localhost via mkcert

Usage:
  localcert <command> [options]

Commands:
  ensure    Make sure localhost-key.pem and localhost.pem exist, installing mkcert if needed
  resolve   Print the mkcert download URL for this platform
  platform  Print the detected platform and release asset suffix

Use "localcert <command> --help" for more information about a command.`)
}
