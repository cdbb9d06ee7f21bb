package model

// Flags holds the parsed command-line flags.
type Flags struct {
	Subscriptions  []string
	Tenant         string
	SkipKinds      []string
	Output         string
	OutputFile     string
	ExportCSV      string
	ExportJSON     string
	ExportSQLite   string
	Workers        int
	KindTimeoutSec int
	Version        bool
	Verbose        bool
}
