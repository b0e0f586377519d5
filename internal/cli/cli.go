// Package cli builds the cobra command trees for the worker and reference
// master binaries.
//
// Command Structure:
//
//	plynx-worker                  # worker root command
//	├── --worker-id, -i           # worker identity (default: generated)
//	├── --verbose, -v             # repeatable, raises log verbosity
//	├── --host, -H                # master host (default 127.0.0.1)
//	├── --port, -P                # master port (default 10000)
//	├── --metrics-port            # serve /metrics (0 disables)
//	├── --blob-bucket             # GCS bucket for crash logs (empty = local disk)
//	├── --log-dir                 # local blob store directory
//	└── --config, -c              # optional YAML overlay
//
//	plynx-master                   # reference master root command
//	├── --port, -P                # listen port (default 10000)
//	├── --jobs-file               # JSON file of jobs to preload
//	└── --metrics-port            # serve /metrics (0 disables)
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// FileConfig is the optional YAML overlay accepted via --config. Any zero
// field leaves the corresponding flag default untouched.
type FileConfig struct {
	WorkerID    string `yaml:"worker_id"`
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	Verbose     int    `yaml:"verbose"`
	MetricsPort int    `yaml:"metrics_port"`
	BlobBucket  string `yaml:"blob_bucket"`
	LogDir      string `yaml:"log_dir"`
}

// BuildWorkerCLI returns the root command for the worker binary.
func BuildWorkerCLI() *cobra.Command {
	opts := WorkerOptions{
		Host: "127.0.0.1",
		Port: 10000,
	}

	cmd := &cobra.Command{
		Use:     "plynx-worker",
		Short:   "Run a Plynx worker",
		Long:    "Worker polls a master for jobs, runs them one at a time, and reports their outcome.",
		Version: "1.0.0",
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.ConfigFile != "" {
				if err := applyFileConfig(opts.ConfigFile, &opts); err != nil {
					return fmt.Errorf("cli: %w", err)
				}
			}
			return RunWorker(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.WorkerID, "worker-id", "i", "", "worker identifier (generated if empty)")
	flags.CountVarP(&opts.Verbose, "verbose", "v", "increase log verbosity")
	flags.StringVarP(&opts.Host, "host", "H", opts.Host, "master host")
	flags.IntVarP(&opts.Port, "port", "P", opts.Port, "master port")
	flags.IntVar(&opts.MetricsPort, "metrics-port", 0, "prometheus /metrics port (0 disables)")
	flags.StringVar(&opts.BlobBucket, "blob-bucket", "", "GCS bucket for crash logs (empty uses local disk)")
	flags.StringVar(&opts.LogDir, "log-dir", "./worker-logs", "local directory for crash logs")
	flags.StringVarP(&opts.ConfigFile, "config", "c", "", "optional YAML config overlay")

	return cmd
}

// BuildMasterCLI returns the root command for the reference master binary.
func BuildMasterCLI() *cobra.Command {
	opts := MasterOptions{Port: 10000}

	cmd := &cobra.Command{
		Use:     "plynx-master",
		Short:   "Run the reference master",
		Long:    "A minimal FIFO master for exercising the worker protocol; implements no scheduling policy.",
		Version: "1.0.0",
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunMaster(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&opts.Port, "port", "P", opts.Port, "listen port")
	flags.StringVar(&opts.JobsFile, "jobs-file", "", "JSON file of jobs to preload")
	flags.IntVar(&opts.MetricsPort, "metrics-port", 0, "prometheus /metrics port (0 disables)")

	return cmd
}
