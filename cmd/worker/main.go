// Command plynx-worker is the worker binary's entry point.
//
// Version Injection:
//
//	go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
//
// Usage:
//
//	plynx-worker --help
//	plynx-worker -i worker-1 -H master.internal -P 10000 -v
package main

import (
	"fmt"
	"os"

	"github.com/plynxio/worker/internal/cli"
)

var (
	version = "1.0.0"
	commit  = "dev"
	date    = "unknown"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "fatal error: %v\n", r)
			os.Exit(1)
		}
	}()

	rootCmd := cli.BuildWorkerCLI()
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
