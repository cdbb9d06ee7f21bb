// Package main is the entry point for the azure-perimeter application.
package main

import (
	"fmt"
	"os"

	"github.com/thirukguru/azure-perimeter/model"
	"github.com/thirukguru/azure-perimeter/service/flag"
	"github.com/thirukguru/azure-perimeter/shared/banner"
	"github.com/thirukguru/azure-perimeter/shared/logs"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if len(os.Args) > 1 && os.Args[1] == "kinds" {
		return runKindsCommand(os.Args[2:])
	}

	flagService := flag.NewService()
	flags, err := flagService.GetParsedFlags()
	if err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}

	logs.Setup(flags.Verbose)

	versionInfo := model.VersionInfo{Version: version, Commit: commit, Date: date}

	if flags.Version {
		fmt.Printf("azure-perimeter %s (commit %s, built %s)\n",
			versionInfo.Version, versionInfo.Commit, versionInfo.Date)
		return nil
	}

	// Keep stdout clean when the markdown report itself goes to stdout.
	if !(flags.Output == "markdown" && flags.OutputFile == "") {
		banner.DrawBannerTitle()
	}

	return runScan(flags, versionInfo)
}
