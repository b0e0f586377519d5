package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// applyFileConfig loads path as YAML and overlays any non-zero field onto
// opts. Flags already parsed by cobra take precedence for anything the file
// leaves unset: zero values in FileConfig are "not specified", not
// "explicitly empty".
func applyFileConfig(path string, opts *WorkerOptions) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	if fc.WorkerID != "" {
		opts.WorkerID = fc.WorkerID
	}
	if fc.Host != "" {
		opts.Host = fc.Host
	}
	if fc.Port != 0 {
		opts.Port = fc.Port
	}
	if fc.Verbose != 0 {
		opts.Verbose = fc.Verbose
	}
	if fc.MetricsPort != 0 {
		opts.MetricsPort = fc.MetricsPort
	}
	if fc.BlobBucket != "" {
		opts.BlobBucket = fc.BlobBucket
	}
	if fc.LogDir != "" {
		opts.LogDir = fc.LogDir
	}

	return nil
}
