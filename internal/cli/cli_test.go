package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plynxio/worker/internal/job"
	"github.com/plynxio/worker/internal/master"
	"github.com/plynxio/worker/pkg/types"
)

func TestBuildWorkerCLI(t *testing.T) {
	cmd := BuildWorkerCLI()

	assert.NotNil(t, cmd)
	assert.Equal(t, "plynx-worker", cmd.Use)
	assert.Equal(t, "1.0.0", cmd.Version)

	workerIDFlag := cmd.Flags().Lookup("worker-id")
	require.NotNil(t, workerIDFlag)
	assert.Equal(t, "i", workerIDFlag.Shorthand)

	hostFlag := cmd.Flags().Lookup("host")
	require.NotNil(t, hostFlag)
	assert.Equal(t, "127.0.0.1", hostFlag.DefValue)

	portFlag := cmd.Flags().Lookup("port")
	require.NotNil(t, portFlag)
	assert.Equal(t, "10000", portFlag.DefValue)

	verboseFlag := cmd.Flags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
}

func TestBuildMasterCLI(t *testing.T) {
	cmd := BuildMasterCLI()

	assert.NotNil(t, cmd)
	assert.Equal(t, "plynx-master", cmd.Use)

	portFlag := cmd.Flags().Lookup("port")
	require.NotNil(t, portFlag)
	assert.Equal(t, "10000", portFlag.DefValue)
}

func TestApplyFileConfigOverlaysNonZeroFields(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "worker.yaml")

	content := `
worker_id: from-file
port: 20000
verbose: 2
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o644))

	opts := WorkerOptions{Host: "127.0.0.1", Port: 10000}
	require.NoError(t, applyFileConfig(configPath, &opts))

	assert.Equal(t, "from-file", opts.WorkerID)
	assert.Equal(t, 20000, opts.Port)
	assert.Equal(t, 2, opts.Verbose)
	assert.Equal(t, "127.0.0.1", opts.Host, "unset fields keep their flag default")
}

func TestApplyFileConfigMissingFile(t *testing.T) {
	opts := WorkerOptions{}
	err := applyFileConfig("/nonexistent/worker.yaml", &opts)
	assert.Error(t, err)
}

func TestDefaultJobFactoryDemo(t *testing.T) {
	j, err := defaultJobFactory(&types.JobEnvelope{NodeID: "n1", Kind: "demo"})
	require.NoError(t, err)
	assert.Equal(t, "n1", j.NodeID())
}

func TestDefaultJobFactoryShell(t *testing.T) {
	env := &types.JobEnvelope{
		NodeID: "n2",
		Kind:   "shell",
		Payload: map[string]interface{}{
			"command": "echo",
			"args":    []interface{}{"hi"},
		},
	}
	j, err := defaultJobFactory(env)
	require.NoError(t, err)
	assert.Equal(t, "n2", j.NodeID())
	_, ok := j.(*job.Shell)
	assert.True(t, ok)
}

func TestDefaultJobFactoryShellMissingCommand(t *testing.T) {
	_, err := defaultJobFactory(&types.JobEnvelope{NodeID: "n3", Kind: "shell"})
	assert.Error(t, err)
}

func TestDefaultJobFactoryUnknownKind(t *testing.T) {
	_, err := defaultJobFactory(&types.JobEnvelope{NodeID: "n4", Kind: "mystery"})
	assert.Error(t, err)
}

func TestPreloadJobsFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	jobsPath := filepath.Join(tmpDir, "jobs.json")

	jobs := []jobFilePayload{
		{NodeID: "a", Kind: "demo", GraphID: "g1"},
		{NodeID: "b", Kind: "demo", GraphID: "g1"},
	}
	data, err := json.Marshal(jobs)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(jobsPath, data, 0o644))

	q := master.NewQueue()
	require.NoError(t, preloadJobs(q, jobsPath))

	pending, _ := q.Stats()
	assert.Equal(t, 2, pending)
}
