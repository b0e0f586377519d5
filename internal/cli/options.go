package cli

// WorkerOptions collects every flag/config value the worker command needs.
type WorkerOptions struct {
	WorkerID    string
	Host        string
	Port        int
	Verbose     int
	MetricsPort int
	BlobBucket  string
	LogDir      string
	ConfigFile  string
}

// MasterOptions collects every flag/config value the reference master
// command needs.
type MasterOptions struct {
	Port        int
	JobsFile    string
	MetricsPort int
}
