package reporttable

import (
	"strings"
	"testing"

	"github.com/thirukguru/azure-perimeter/service/inventory"
	"github.com/thirukguru/azure-perimeter/service/report"
)

func sampleReport() *report.Report {
	return report.Build([]report.Input{{
		SubscriptionID:   "sub-1",
		SubscriptionName: "Production",
		TenantID:         "tenant-1",
		TenantName:       "Contoso",
		ResourceCount:    2,
		EndpointCount:    2,
		Findings: []inventory.Finding{
			{SubscriptionID: "sub-1", ResourceGroup: "rg-app", ResourceKind: "StorageAccounts", ResourceName: "acct-a", Endpoint: "https://acct-a.blob.core.windows.net/", Label: "Blob Endpoint"},
			{SubscriptionID: "sub-1", ResourceGroup: "rg-net", ResourceKind: "VPNGateways", ResourceName: "gw1", Endpoint: "20.9.8.7", Label: "Gateway Endpoint"},
		},
	}})
}

func TestBuildMarkdownStructure(t *testing.T) {
	doc := BuildMarkdown(sampleReport())

	for _, want := range []string{
		"# External Endpoint Inventory",
		"## Production (sub-1)",
		"### Resource Group: rg-app",
		"#### StorageAccounts",
		"### Resource Group: rg-net",
		"#### VPNGateways",
		"| acct-a |",
		"| gw1 |",
	} {
		if !strings.Contains(doc, want) {
			t.Fatalf("markdown missing %q:\n%s", want, doc)
		}
	}

	// Heading order follows report order.
	if strings.Index(doc, "rg-app") > strings.Index(doc, "rg-net") {
		t.Fatal("resource group headings out of order")
	}
}

func TestBuildMarkdownFallsBackToIDs(t *testing.T) {
	r := report.Build([]report.Input{{
		SubscriptionID: "sub-2",
		TenantID:       "tenant-2",
		Findings: []inventory.Finding{
			{SubscriptionID: "sub-2", ResourceGroup: "rg-x", ResourceKind: "KeyVaults", ResourceName: "kv-1", Endpoint: "https://kv-1.vault.azure.net/", Label: "Vault URI"},
		},
	}})

	doc := BuildMarkdown(r)
	if !strings.Contains(doc, "## sub-2 (sub-2)") {
		t.Fatalf("expected ID fallback in heading:\n%s", doc)
	}
	if !strings.Contains(doc, "Tenant: tenant-2") {
		t.Fatalf("expected tenant ID fallback:\n%s", doc)
	}
}
