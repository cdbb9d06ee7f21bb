package collectors

import (
	"context"
	"strings"
	"testing"

	"github.com/thirukguru/azure-perimeter/service/azure"
	"github.com/thirukguru/azure-perimeter/service/inventory"
)

func TestStorageAccountEndpointsAndEnrichment(t *testing.T) {
	svc := &fakeAzure{resources: map[string][]azure.Resource{
		storageProviderType: {
			{Name: "acctopen", ResourceGroup: "rg-app", Properties: map[string]any{
				"primaryEndpoints": map[string]any{
					"blob": "https://acctopen.blob.core.windows.net/",
					"file": "https://acctopen.file.core.windows.net/",
				},
				"networkAcls":              map[string]any{"defaultAction": "Allow"},
				"supportsHttpsTrafficOnly": false,
			}},
		},
	}}

	store := inventory.NewStore()
	collector := NewStorageAccountsCollector(svc)
	if err := collector.Collect(context.Background(), testSub(), store); err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	findings := store.Findings()
	if len(findings) != 2 {
		t.Fatalf("expected 2 findings, got %d", len(findings))
	}
	if findings[0].Label == findings[1].Label {
		t.Fatalf("blob and file findings should carry distinct base labels: %+v", findings)
	}

	// Both enrichment suffixes apply to every finding of the account,
	// and each appears exactly once per label.
	for _, f := range findings {
		for _, suffix := range []string{"(Network: Allow All)", "(HTTP Allowed)"} {
			if strings.Count(f.Label, suffix) != 1 {
				t.Fatalf("suffix %q should appear exactly once in %q", suffix, f.Label)
			}
		}
	}
}

func TestStorageAccountEnrichmentAppliesOncePerFinding(t *testing.T) {
	// One account exposing several service endpoints: the network rule
	// matches the account once, yet must not stack a suffix per endpoint.
	svc := &fakeAzure{resources: map[string][]azure.Resource{
		storageProviderType: {
			{Name: "acctbig", ResourceGroup: "rg-app", Properties: map[string]any{
				"primaryEndpoints": map[string]any{
					"blob":  "https://acctbig.blob.core.windows.net/",
					"file":  "https://acctbig.file.core.windows.net/",
					"queue": "https://acctbig.queue.core.windows.net/",
					"table": "https://acctbig.table.core.windows.net/",
				},
				"networkAcls": map[string]any{"defaultAction": "Deny"},
			}},
		},
	}}

	store := inventory.NewStore()
	if err := NewStorageAccountsCollector(svc).Collect(context.Background(), testSub(), store); err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	findings := store.Findings()
	if len(findings) != 4 {
		t.Fatalf("expected 4 findings, got %d", len(findings))
	}
	for _, f := range findings {
		if strings.Count(f.Label, "(Network: Restricted)") != 1 {
			t.Fatalf("expected exactly one network suffix in %q", f.Label)
		}
	}
}

func TestStorageAccountWithoutEndpointsGetsSentinel(t *testing.T) {
	svc := &fakeAzure{resources: map[string][]azure.Resource{
		storageProviderType: {
			{Name: "acctdark", ResourceGroup: "rg-app", Properties: map[string]any{
				"publicNetworkAccess": "Disabled",
			}},
		},
	}}

	store := inventory.NewStore()
	if err := NewStorageAccountsCollector(svc).Collect(context.Background(), testSub(), store); err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	findings := store.Findings()
	if len(findings) != 1 {
		t.Fatalf("expected 1 sentinel finding, got %d", len(findings))
	}
	f := findings[0]
	if f.Endpoint != inventory.EndpointNone {
		t.Fatalf("expected sentinel endpoint, got %q", f.Endpoint)
	}
	if f.Label != "Storage Endpoint (Public Access Disabled)" {
		t.Fatalf("unexpected label: %q", f.Label)
	}
}

func TestStorageAccountListFailure(t *testing.T) {
	svc := &fakeAzure{errs: map[string]error{
		storageProviderType: context.DeadlineExceeded,
	}}

	store := inventory.NewStore()
	err := NewStorageAccountsCollector(svc).Collect(context.Background(), testSub(), store)
	if err == nil {
		t.Fatal("expected error when listing fails")
	}
	if store.Len() != 0 {
		t.Fatalf("failed listing must not append findings, got %d", store.Len())
	}
}
