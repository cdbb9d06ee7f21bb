// Package csvoutput renders the aggregated report as flat records: one
// row per finding with the subscription, tenant, group, and kind columns
// denormalized onto every row, in the same order as the table renderer.
package csvoutput

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/thirukguru/azure-perimeter/service/report"
)

// Header is the column set of the flat-record view.
var Header = []string{
	"SubscriptionID", "SubscriptionName", "TenantID", "TenantName",
	"ResourceGroup", "ResourceKind", "ResourceName", "Endpoint", "Label",
}

// BuildRows flattens the report into data rows (header excluded).
func BuildRows(r *report.Report) [][]string {
	var rows [][]string

	for _, sub := range r.Subscriptions {
		for _, group := range sub.Groups {
			for _, kind := range group.Kinds {
				for _, f := range kind.Findings {
					rows = append(rows, []string{
						f.SubscriptionID, f.SubscriptionName,
						f.TenantID, f.TenantName,
						f.ResourceGroup, f.ResourceKind,
						f.ResourceName, f.Endpoint, f.Label,
					})
				}
			}
		}
	}

	return rows
}

// Render encodes the report as CSV text, header first.
func Render(r *report.Report) string {
	t := table.NewWriter()

	header := make(table.Row, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	t.AppendHeader(header)

	for _, row := range BuildRows(r) {
		cells := make(table.Row, len(row))
		for i, c := range row {
			cells[i] = c
		}
		t.AppendRow(cells)
	}

	return t.RenderCSV()
}

// WriteFile writes the CSV encoding to path.
func WriteFile(path string, r *report.Report) error {
	if err := os.WriteFile(path, []byte(Render(r)+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write CSV export: %w", err)
	}
	return nil
}
