package collectors

import (
	"context"
	"testing"

	"github.com/thirukguru/azure-perimeter/service/azure"
	"github.com/thirukguru/azure-perimeter/service/inventory"
)

func TestGenericPrimaryIPStrategy(t *testing.T) {
	svc := &fakeAzure{resources: map[string][]azure.Resource{
		"microsoft.network/publicipaddresses": {
			{Name: "pip-static", ResourceGroup: "rg-net", Properties: map[string]any{
				"ipAddress":                "20.1.2.3",
				"publicIPAllocationMethod": "Static",
			}},
			{Name: "pip-dynamic", ResourceGroup: "rg-net", Properties: map[string]any{
				"publicIPAllocationMethod": "Dynamic",
			}},
			{Name: "pip-empty", ResourceGroup: "rg-net", Properties: map[string]any{}},
		},
	}}

	collector := NewGeneric(svc, "PublicIPAddresses", GenericSpec{
		ProviderType: "microsoft.network/publicipaddresses",
		Strategy:     StrategyPrimaryIP,
		Label:        "Public IP",
	})

	store := inventory.NewStore()
	if err := collector.Collect(context.Background(), testSub(), store); err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	findings := store.Findings()
	if len(findings) != 3 {
		t.Fatalf("expected 3 findings, got %d", len(findings))
	}
	if findings[0].Endpoint != "20.1.2.3" || findings[0].Label != "Public IP" {
		t.Fatalf("unexpected static finding: %+v", findings[0])
	}
	if findings[1].Endpoint != inventory.EndpointNone || findings[1].Label != "Public IP (Dynamic, Unassigned)" {
		t.Fatalf("unexpected dynamic finding: %+v", findings[1])
	}
	if findings[2].Endpoint != inventory.EndpointNone || findings[2].Label != "Public IP (Unassigned)" {
		t.Fatalf("unexpected empty finding: %+v", findings[2])
	}
}

func TestGenericHostnamePropertyStrategy(t *testing.T) {
	svc := &fakeAzure{resources: map[string][]azure.Resource{
		"microsoft.cache/redis": {
			{Name: "cache-1", ResourceGroup: "rg-data", Properties: map[string]any{
				"hostName": "cache-1.redis.cache.windows.net",
			}},
			{Name: "cache-2", ResourceGroup: "rg-data", Properties: map[string]any{}},
		},
	}}

	collector := NewGeneric(svc, "RedisCaches", GenericSpec{
		ProviderType: "microsoft.cache/redis",
		Strategy:     StrategyHostnameProperty,
		Property:     "hostName",
		Label:        "Redis Endpoint",
	})

	store := inventory.NewStore()
	if err := collector.Collect(context.Background(), testSub(), store); err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	findings := store.Findings()
	if findings[0].Endpoint != "cache-1.redis.cache.windows.net" {
		t.Fatalf("unexpected endpoint: %q", findings[0].Endpoint)
	}
	if findings[1].Endpoint != inventory.EndpointNone {
		t.Fatalf("missing property should yield sentinel, got %q", findings[1].Endpoint)
	}
}

func TestGenericDottedPropertyPath(t *testing.T) {
	svc := &fakeAzure{resources: map[string][]azure.Resource{
		"microsoft.network/trafficmanagerprofiles": {
			{Name: "tm-1", ResourceGroup: "rg-net", Properties: map[string]any{
				"dnsConfig": map[string]any{"fqdn": "tm-1.trafficmanager.net"},
			}},
		},
	}}

	collector := NewGeneric(svc, "TrafficManagerProfiles", GenericSpec{
		ProviderType: "microsoft.network/trafficmanagerprofiles",
		Strategy:     StrategyHostnameProperty,
		Property:     "dnsConfig.fqdn",
		Label:        "Traffic Manager FQDN",
	})

	store := inventory.NewStore()
	if err := collector.Collect(context.Background(), testSub(), store); err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	if got := store.Findings()[0].Endpoint; got != "tm-1.trafficmanager.net" {
		t.Fatalf("unexpected endpoint: %q", got)
	}
}

func TestGenericFQDNFromNameStrategy(t *testing.T) {
	svc := &fakeAzure{resources: map[string][]azure.Resource{
		"microsoft.search/searchservices": {
			{Name: "search-1", ResourceGroup: "rg-app", Properties: map[string]any{}},
		},
	}}

	collector := NewGeneric(svc, "SearchServices", GenericSpec{
		ProviderType: "microsoft.search/searchservices",
		Strategy:     StrategyFQDNFromName,
		FQDNSuffix:   ".search.windows.net",
		Label:        "Search Endpoint",
	})

	store := inventory.NewStore()
	if err := collector.Collect(context.Background(), testSub(), store); err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	if got := store.Findings()[0].Endpoint; got != "search-1.search.windows.net" {
		t.Fatalf("unexpected endpoint: %q", got)
	}
}

func TestGenericNoneStrategyRecordsInventoryOnly(t *testing.T) {
	svc := &fakeAzure{resources: map[string][]azure.Resource{
		"microsoft.network/loadbalancers": {
			{Name: "lb-1", ResourceGroup: "rg-net", Properties: map[string]any{}},
		},
	}}

	collector := NewGeneric(svc, "LoadBalancers", GenericSpec{
		ProviderType: "microsoft.network/loadbalancers",
		Strategy:     StrategyNone,
		Label:        "Load Balancer",
	})

	store := inventory.NewStore()
	if err := collector.Collect(context.Background(), testSub(), store); err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	f := store.Findings()[0]
	if f.Endpoint != inventory.EndpointNone || f.Label != "Load Balancer" {
		t.Fatalf("unexpected finding: %+v", f)
	}
}

func TestDefaultKindTableIsWellFormed(t *testing.T) {
	seen := map[string]struct{}{}
	for _, entry := range DefaultKindTable() {
		if entry.Kind == "" || entry.Spec.ProviderType == "" {
			t.Fatalf("incomplete table entry: %+v", entry)
		}
		if _, dup := seen[entry.Kind]; dup {
			t.Fatalf("duplicate kind in table: %s", entry.Kind)
		}
		seen[entry.Kind] = struct{}{}

		if entry.Spec.Strategy == StrategyHostnameProperty && entry.Spec.Property == "" {
			t.Fatalf("%s uses hostname strategy without a property", entry.Kind)
		}
		if entry.Spec.Strategy == StrategyFQDNFromName && entry.Spec.FQDNSuffix == "" {
			t.Fatalf("%s uses FQDN strategy without a suffix", entry.Kind)
		}
	}
}
