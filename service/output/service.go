// Package output provides a service for rendering discovery reports.
package output

import (
	"fmt"
	"os"

	"github.com/thirukguru/azure-perimeter/service/orchestrator"
	"github.com/thirukguru/azure-perimeter/service/report"
)

// NewService creates a new output service with the specified format.
// Markdown output goes to outputFile when set, otherwise to stdout.
func NewService(format, outputFile string) Service {
	f := FormatTable
	if format == "markdown" {
		f = FormatMarkdown
	}

	return &service{
		format:     f,
		outputFile: outputFile,
		renderer:   &realRenderer{},
	}
}

func (s *service) RenderReport(r *report.Report) error {
	if s.format == FormatMarkdown {
		doc := s.renderer.BuildMarkdown(r)
		if s.outputFile != "" {
			if err := os.WriteFile(s.outputFile, []byte(doc), 0o644); err != nil {
				return fmt.Errorf("failed to write markdown report: %w", err)
			}
			return nil
		}
		fmt.Println(doc)
		return nil
	}
	s.renderer.DrawReport(r)
	return nil
}

func (s *service) RenderFailures(failures []orchestrator.Failure) error {
	if len(failures) == 0 {
		return nil
	}
	if s.format == FormatMarkdown {
		// Failures stay on the console so a piped markdown report remains clean.
		for _, f := range failures {
			if f.ResourceKind == "" {
				fmt.Fprintf(os.Stderr, "failure: subscription %s: %s\n", f.SubscriptionID, f.Message)
				continue
			}
			fmt.Fprintf(os.Stderr, "failure: subscription %s, kind %s: %s\n", f.SubscriptionID, f.ResourceKind, f.Message)
		}
		return nil
	}
	s.renderer.DrawFailures(failures)
	return nil
}

func (s *service) StopSpinner() {
	s.renderer.StopSpinner()
}
