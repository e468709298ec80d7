package config

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultSuitePath is where suite files are looked up
	DefaultSuitePath = "suites"
	// DefaultResourceDir is the root for csv_file resources of suite files
	DefaultResourceDir = "resources"
	// DefaultOutputJSONFile is the default output JSON file name
	DefaultOutputJSONFile = "test-results.json"
	// DefaultOutputJSONDir is the default output directory
	DefaultOutputJSONDir = "storage"
	// DefaultWorkers is the default number of parallel workers
	DefaultWorkers = 4
	// DefaultLogLevel is the default log level
	DefaultLogLevel = "warn"
	// DefaultLogFormat is the default log format
	DefaultLogFormat = "console"
	// DefaultStore is the default run store
	DefaultStore = "json"
	// EnvPrefix prefixes every environment override
	EnvPrefix = "PARAMRUN_"
)

// DefaultPathsToIgnore are the directories skipped when scanning for suite files
var DefaultPathsToIgnore = []string{
	"vendor",
	"node_modules",
	"storage",
	"testdata",
}
