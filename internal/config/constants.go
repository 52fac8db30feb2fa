package config

// ConfigFileNames are searched for, in order, when no -config flag is given.
var ConfigFileNames = []string{"corecalc.yaml", "corecalc.yml"}

// DocumentExtensions are the file extensions of expression documents.
var DocumentExtensions = []string{".yaml", ".yml"}

// Color modes for CLI output.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// DefaultJobs bounds how many documents `corecalc test` checks at once.
const DefaultJobs = 4
