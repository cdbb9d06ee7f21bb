package flag

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/thirukguru/azure-perimeter/model"
)

// NewService creates a new flag service.
func NewService() Service {
	return &service{}
}

// GetParsedFlags parses and returns the command-line flags.
func (s *service) GetParsedFlags() (model.Flags, error) {
	subscriptions := pflag.StringP("subscriptions", "s", "all", "Comma-separated subscription IDs, or 'all' for every visible subscription")
	tenant := pflag.StringP("tenant", "t", "", "Tenant ID the subscriptions must belong to")
	skip := pflag.String("skip", "", "Comma-separated resource kinds to skip (see 'azure-perimeter kinds')")
	output := pflag.StringP("output", "o", "table", "Output format (table or markdown)")
	outputFile := pflag.StringP("output-file", "f", "", "Write markdown output to file instead of stdout")
	exportCSV := pflag.String("export-csv", "", "Export flat findings as CSV to file path")
	exportJSON := pflag.String("export-json", "", "Export the full run report as JSON to file path")
	exportSQLite := pflag.String("export-sqlite", "", "Export a run snapshot to a SQLite database at file path")
	workers := pflag.Int("workers", 4, "Concurrent collectors per subscription")
	kindTimeout := pflag.Int("kind-timeout", 120, "Per-kind collection timeout in seconds")
	version := pflag.BoolP("version", "v", false, "Show version information")
	verbose := pflag.Bool("verbose", false, "Enable debug logging")

	pflag.Parse()

	flags := model.Flags{
		Subscriptions:  splitCSV(*subscriptions),
		Tenant:         strings.TrimSpace(*tenant),
		SkipKinds:      splitCSV(*skip),
		Output:         *output,
		OutputFile:     *outputFile,
		ExportCSV:      *exportCSV,
		ExportJSON:     *exportJSON,
		ExportSQLite:   *exportSQLite,
		Workers:        *workers,
		KindTimeoutSec: *kindTimeout,
		Version:        *version,
		Verbose:        *verbose,
	}

	return flags, nil
}

func splitCSV(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
