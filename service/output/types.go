package output

import (
	"github.com/thirukguru/azure-perimeter/service/orchestrator"
	"github.com/thirukguru/azure-perimeter/service/report"
	reporttable "github.com/thirukguru/azure-perimeter/shared/report_table"
	"github.com/thirukguru/azure-perimeter/shared/spinner"
)

// Format represents the output format type
type Format string

const (
	FormatTable    Format = "table"
	FormatMarkdown Format = "markdown"
)

// Renderer defines the interface for drawing report output
type Renderer interface {
	DrawReport(r *report.Report)
	DrawFailures(failures []orchestrator.Failure)
	BuildMarkdown(r *report.Report) string
	StopSpinner()
}

type realRenderer struct{}

func (r *realRenderer) DrawReport(report *report.Report) {
	reporttable.DrawReport(report)
}

func (r *realRenderer) DrawFailures(failures []orchestrator.Failure) {
	reporttable.DrawFailures(failures)
}

func (r *realRenderer) BuildMarkdown(report *report.Report) string {
	return reporttable.BuildMarkdown(report)
}

func (r *realRenderer) StopSpinner() {
	spinner.StopSpinner()
}

// service is the internal implementation
type service struct {
	format     Format
	outputFile string
	renderer   Renderer
}

// Service defines the interface for output operations
type Service interface {
	RenderReport(r *report.Report) error
	RenderFailures(failures []orchestrator.Failure) error
	StopSpinner()
}
