package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/thirukguru/azure-perimeter/service/azure"
	"github.com/thirukguru/azure-perimeter/service/inventory"
	"github.com/thirukguru/azure-perimeter/service/registry"
)

// fakeAzure switches into any subscription except those listed in deny.
type fakeAzure struct {
	deny map[string]error
}

func (f *fakeAzure) ListSubscriptions(context.Context) ([]azure.SubscriptionContext, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeAzure) SwitchSubscription(_ context.Context, subscriptionID, tenantID string) (*azure.SubscriptionContext, error) {
	if err, ok := f.deny[subscriptionID]; ok {
		return nil, err
	}
	return &azure.SubscriptionContext{
		SubscriptionID:   subscriptionID,
		SubscriptionName: "Sub " + subscriptionID,
		TenantID:         tenantID,
	}, nil
}

func (f *fakeAzure) ListResourceDescriptors(context.Context, string, string) ([]azure.Resource, error) {
	return nil, errors.New("not implemented")
}

// funcCollector adapts a function to the Collector interface.
type funcCollector struct {
	kind    string
	collect func(ctx context.Context, sub *azure.SubscriptionContext, store *inventory.Store) error
}

func (c *funcCollector) Kind() string { return c.kind }

func (c *funcCollector) Collect(ctx context.Context, sub *azure.SubscriptionContext, store *inventory.Store) error {
	return c.collect(ctx, sub, store)
}

func appendingCollector(kind string, names ...string) registry.Collector {
	return &funcCollector{kind: kind, collect: func(_ context.Context, sub *azure.SubscriptionContext, store *inventory.Store) error {
		for _, name := range names {
			if err := store.Append(inventory.Finding{
				SubscriptionID: sub.SubscriptionID,
				ResourceGroup:  "rg-app",
				ResourceKind:   kind,
				ResourceName:   name,
				Endpoint:       "https://" + name + ".example.net/",
				Label:          "Endpoint",
			}); err != nil {
				return err
			}
		}
		return nil
	}}
}

func TestContextSwitchFailureIsolation(t *testing.T) {
	reg := registry.New()
	reg.Register(appendingCollector("StorageAccounts", "acct-a"))

	svc := NewService(&fakeAzure{deny: map[string]error{
		"sub-down": errors.New("authorization failed for tenant"),
	}}, reg, Options{})

	result, err := svc.RunDiscovery(context.Background(), []SubscriptionRef{
		{SubscriptionID: "sub-ok", TenantID: "tenant-1"},
		{SubscriptionID: "sub-down", TenantID: "tenant-1"},
	}, nil)
	if err != nil {
		t.Fatalf("RunDiscovery failed: %v", err)
	}

	// The requested count reflects the caller's request, not successes.
	if result.TotalRequested != 2 {
		t.Fatalf("expected TotalRequested 2, got %d", result.TotalRequested)
	}
	if len(result.Report.Subscriptions) != 1 {
		t.Fatalf("expected 1 subscription in report, got %d", len(result.Report.Subscriptions))
	}
	if result.Report.Subscriptions[0].SubscriptionID != "sub-ok" {
		t.Fatalf("wrong subscription survived: %q", result.Report.Subscriptions[0].SubscriptionID)
	}

	if len(result.Failures) != 1 {
		t.Fatalf("expected 1 failure, got %d", len(result.Failures))
	}
	f := result.Failures[0]
	if f.SubscriptionID != "sub-down" || f.ResourceKind != "" {
		t.Fatalf("unexpected failure entry: %+v", f)
	}
}

func TestKindFailureKeepsPartialFindings(t *testing.T) {
	reg := registry.New()
	reg.Register(appendingCollector("StorageAccounts", "acct-a"))
	reg.Register(&funcCollector{kind: "VPNGateways", collect: func(_ context.Context, sub *azure.SubscriptionContext, store *inventory.Store) error {
		// Base finding lands before the enrichment step blows up.
		if err := store.Append(inventory.Finding{
			SubscriptionID: sub.SubscriptionID,
			ResourceGroup:  "rg-net",
			ResourceKind:   "VPNGateways",
			ResourceName:   "gw1",
			Endpoint:       "20.9.8.7",
			Label:          "Gateway Endpoint",
		}); err != nil {
			return err
		}
		return fmt.Errorf("failed to list public IPs: throttled")
	}})

	svc := NewService(&fakeAzure{}, reg, Options{})

	result, err := svc.RunDiscovery(context.Background(), []SubscriptionRef{
		{SubscriptionID: "acct-1", TenantID: "tenant-1"},
	}, nil)
	if err != nil {
		t.Fatalf("RunDiscovery failed: %v", err)
	}

	if len(result.Failures) != 1 {
		t.Fatalf("expected 1 failure, got %+v", result.Failures)
	}
	if result.Failures[0].SubscriptionID != "acct-1" || result.Failures[0].ResourceKind != "VPNGateways" {
		t.Fatalf("unexpected failure scope: %+v", result.Failures[0])
	}

	// gw1's base finding survives in the report despite the kind failure.
	found := false
	for _, sub := range result.Report.Subscriptions {
		for _, group := range sub.Groups {
			for _, kind := range group.Kinds {
				for _, f := range kind.Findings {
					if f.ResourceName == "gw1" {
						found = true
					}
				}
			}
		}
	}
	if !found {
		t.Fatal("base finding for gw1 missing from the report")
	}

	if result.Report.Subscriptions[0].EndpointCount != 2 {
		t.Fatalf("expected both kinds' findings counted, got %d", result.Report.Subscriptions[0].EndpointCount)
	}
}

func TestHangingKindTimesOut(t *testing.T) {
	reg := registry.New()
	reg.Register(appendingCollector("StorageAccounts", "acct-a"))
	reg.Register(&funcCollector{kind: "VPNGateways", collect: func(ctx context.Context, _ *azure.SubscriptionContext, _ *inventory.Store) error {
		// Simulates a lookup that never returns within the deadline.
		<-ctx.Done()
		return ctx.Err()
	}})

	timeout := 20 * time.Millisecond
	svc := NewService(&fakeAzure{}, reg, Options{KindTimeout: timeout})

	result, err := svc.RunDiscovery(context.Background(), []SubscriptionRef{
		{SubscriptionID: "sub-1", TenantID: "tenant-1"},
	}, nil)
	if err != nil {
		t.Fatalf("RunDiscovery failed: %v", err)
	}

	if len(result.Failures) != 1 {
		t.Fatalf("expected 1 failure, got %+v", result.Failures)
	}
	f := result.Failures[0]
	if f.SubscriptionID != "sub-1" || f.ResourceKind != "VPNGateways" {
		t.Fatalf("unexpected failure scope: %+v", f)
	}
	want := fmt.Sprintf("collection timed out after %s", timeout)
	if f.Message != want {
		t.Fatalf("expected timeout message %q, got %q", want, f.Message)
	}

	// The timed-out kind must not take the other kind's findings with it.
	sub := result.Report.Subscriptions[0]
	if sub.EndpointCount != 1 {
		t.Fatalf("expected the fast kind's finding to survive, got %d endpoints", sub.EndpointCount)
	}
}

func TestSkipKinds(t *testing.T) {
	reg := registry.New()
	reg.Register(appendingCollector("StorageAccounts", "acct-a"))
	reg.Register(appendingCollector("KeyVaults", "kv-1"))

	svc := NewService(&fakeAzure{}, reg, Options{})

	result, err := svc.RunDiscovery(context.Background(), []SubscriptionRef{
		{SubscriptionID: "sub-1", TenantID: "tenant-1"},
	}, map[string]struct{}{"KeyVaults": {}})
	if err != nil {
		t.Fatalf("RunDiscovery failed: %v", err)
	}

	sub := result.Report.Subscriptions[0]
	if sub.EndpointCount != 1 {
		t.Fatalf("expected only StorageAccounts findings, got %d endpoints", sub.EndpointCount)
	}
	for _, group := range sub.Groups {
		for _, kind := range group.Kinds {
			if kind.ResourceKind == "KeyVaults" {
				t.Fatal("skipped kind still produced findings")
			}
		}
	}
	if len(result.Failures) != 0 {
		t.Fatalf("skipping must not record failures: %+v", result.Failures)
	}
}

func TestCounters(t *testing.T) {
	reg := registry.New()
	// Two findings for the same resource, one for another.
	reg.Register(appendingCollector("StorageAccounts", "acct-a", "acct-a", "acct-b"))

	svc := NewService(&fakeAzure{}, reg, Options{Workers: 1})

	result, err := svc.RunDiscovery(context.Background(), []SubscriptionRef{
		{SubscriptionID: "sub-1", TenantID: "tenant-1"},
	}, nil)
	if err != nil {
		t.Fatalf("RunDiscovery failed: %v", err)
	}

	sub := result.Subscriptions[0]
	if sub.EndpointCount != 3 {
		t.Fatalf("expected endpoint count 3, got %d", sub.EndpointCount)
	}
	if sub.ResourceCount != 2 {
		t.Fatalf("expected resource count 2, got %d", sub.ResourceCount)
	}
}

func TestStoreIsFrozenAfterScan(t *testing.T) {
	reg := registry.New()
	reg.Register(appendingCollector("StorageAccounts", "acct-a"))

	svc := NewService(&fakeAzure{}, reg, Options{})

	result, err := svc.RunDiscovery(context.Background(), []SubscriptionRef{
		{SubscriptionID: "sub-1", TenantID: "tenant-1"},
	}, nil)
	if err != nil {
		t.Fatalf("RunDiscovery failed: %v", err)
	}

	store := result.Subscriptions[0].Store
	if appendErr := store.Append(inventory.Finding{ResourceName: "late"}); !errors.Is(appendErr, inventory.ErrFrozen) {
		t.Fatalf("expected frozen store, got %v", appendErr)
	}
}

func TestCancelledContextStopsRun(t *testing.T) {
	reg := registry.New()
	reg.Register(appendingCollector("StorageAccounts", "acct-a"))

	svc := NewService(&fakeAzure{}, reg, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.RunDiscovery(ctx, []SubscriptionRef{
		{SubscriptionID: "sub-1", TenantID: "tenant-1"},
	}, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
