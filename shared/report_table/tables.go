// Package reporttable renders the aggregated report as console tables or
// as a markdown document. Both renderers walk the identical aggregated
// structure; empty groups and kinds never reach them because the
// aggregator only emits non-empty sections.
package reporttable

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/thirukguru/azure-perimeter/service/orchestrator"
	"github.com/thirukguru/azure-perimeter/service/report"
)

// DrawReport prints the report to stdout using rounded tables.
func DrawReport(r *report.Report) {
	fmt.Printf("\n🌐 External Endpoint Inventory\n")
	fmt.Printf("   Subscriptions: %d   Resources: %d   Endpoints: %d\n",
		len(r.Subscriptions), r.TotalResources, r.TotalEndpoints)

	for _, sub := range r.Subscriptions {
		fmt.Println("\n" + text.FgCyan.Sprintf("📋 %s (%s)", subscriptionTitle(sub), sub.SubscriptionID))
		fmt.Printf("   Tenant: %s   Resources: %d   Endpoints: %d\n",
			tenantTitle(sub), sub.ResourceCount, sub.EndpointCount)

		for _, group := range sub.Groups {
			fmt.Println("\n" + text.FgYellow.Sprintf("  📁 Resource Group: %s", group.Name))

			for _, kind := range group.Kinds {
				fmt.Printf("\n  %s\n", kind.ResourceKind)
				t := table.NewWriter()
				t.SetOutputMirror(os.Stdout)
				t.AppendHeader(table.Row{"Resource", "Endpoint", "Label"})
				for _, f := range kind.Findings {
					t.AppendRow(table.Row{f.ResourceName, f.Endpoint, f.Label})
				}
				t.SetStyle(table.StyleRounded)
				t.Render()
			}
		}
	}
}

// BuildMarkdown renders the report as a standalone markdown document.
func BuildMarkdown(r *report.Report) string {
	var b strings.Builder

	b.WriteString("# External Endpoint Inventory\n\n")
	fmt.Fprintf(&b, "Subscriptions assessed: %d  \n", len(r.Subscriptions))
	fmt.Fprintf(&b, "Resources with endpoints: %d  \n", r.TotalResources)
	fmt.Fprintf(&b, "Endpoints discovered: %d\n", r.TotalEndpoints)

	for _, sub := range r.Subscriptions {
		fmt.Fprintf(&b, "\n## %s (%s)\n\n", subscriptionTitle(sub), sub.SubscriptionID)
		fmt.Fprintf(&b, "Tenant: %s | Resources: %d | Endpoints: %d\n",
			tenantTitle(sub), sub.ResourceCount, sub.EndpointCount)

		for _, group := range sub.Groups {
			fmt.Fprintf(&b, "\n### Resource Group: %s\n", group.Name)

			for _, kind := range group.Kinds {
				fmt.Fprintf(&b, "\n#### %s\n\n", kind.ResourceKind)
				t := table.NewWriter()
				t.AppendHeader(table.Row{"Resource", "Endpoint", "Label"})
				for _, f := range kind.Findings {
					t.AppendRow(table.Row{f.ResourceName, f.Endpoint, f.Label})
				}
				b.WriteString(t.RenderMarkdown())
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

// DrawFailures prints the failure table after the main report. A row with
// an empty kind means subscription context switching failed as a whole.
func DrawFailures(failures []orchestrator.Failure) {
	if len(failures) == 0 {
		return
	}

	fmt.Println("\n" + text.FgRed.Sprintf("⚠️  Failures (%d)", len(failures)))
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Subscription", "Kind", "Error"})
	for _, f := range failures {
		kind := f.ResourceKind
		if kind == "" {
			kind = "(context)"
		}
		t.AppendRow(table.Row{f.SubscriptionID, kind, f.Message})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}

func subscriptionTitle(sub report.SubscriptionSection) string {
	if sub.SubscriptionName != "" {
		return sub.SubscriptionName
	}
	return sub.SubscriptionID
}

func tenantTitle(sub report.SubscriptionSection) string {
	if sub.TenantName != "" {
		return sub.TenantName
	}
	return sub.TenantID
}
