package collectors

import (
	"context"
	"fmt"
	"strings"

	"github.com/thirukguru/azure-perimeter/service/azure"
	"github.com/thirukguru/azure-perimeter/service/inventory"
	"github.com/thirukguru/azure-perimeter/service/registry"
)

// Strategy is the extraction rule a generic collector applies to each
// descriptor of its kind. The set is closed; kinds needing anything
// richer get a specialized collector.
type Strategy int

const (
	// StrategyNone records the resource with no extractable endpoint.
	StrategyNone Strategy = iota
	// StrategyPrimaryIP reads the resource's primary IP when it is
	// assigned; dynamic allocations without an address yield the
	// endpoint sentinel.
	StrategyPrimaryIP
	// StrategyHostnameProperty reads a named hostname/URL property from
	// the descriptor's property bag.
	StrategyHostnameProperty
	// StrategyFQDNFromName constructs an FQDN from the resource name and
	// a fixed suffix.
	StrategyFQDNFromName
)

// GenericSpec parameterizes the generic fallback collector for one kind.
type GenericSpec struct {
	ProviderType string
	Strategy     Strategy
	// Property is the dotted property path read by
	// StrategyHostnameProperty.
	Property string
	// FQDNSuffix is appended to the resource name by
	// StrategyFQDNFromName.
	FQDNSuffix string
	Label      string
}

type genericCollector struct {
	azureSvc azure.Service
	kind     string
	spec     GenericSpec
}

// NewGeneric builds the kind-agnostic fallback collector for one kind.
func NewGeneric(azureSvc azure.Service, kind string, spec GenericSpec) registry.Collector {
	return &genericCollector{azureSvc: azureSvc, kind: kind, spec: spec}
}

func (c *genericCollector) Kind() string { return c.kind }

func (c *genericCollector) Collect(ctx context.Context, sub *azure.SubscriptionContext, store *inventory.Store) error {
	resources, err := c.azureSvc.ListResourceDescriptors(ctx, sub.SubscriptionID, c.spec.ProviderType)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", c.kind, err)
	}

	for _, res := range resources {
		endpoint, label := c.extract(res)
		if err := store.Append(newFinding(sub, c.kind, res.ResourceGroup, res.Name, endpoint, label)); err != nil {
			return err
		}
	}

	return nil
}

func (c *genericCollector) extract(res azure.Resource) (endpoint, label string) {
	label = c.spec.Label

	switch c.spec.Strategy {
	case StrategyPrimaryIP:
		ip := propString(res.Properties, "ipAddress")
		if ip != "" {
			return ip, label
		}
		if strings.EqualFold(propString(res.Properties, "publicIPAllocationMethod"), "Dynamic") {
			return inventory.EndpointNone, label + " (Dynamic, Unassigned)"
		}
		return inventory.EndpointNone, label + " (Unassigned)"

	case StrategyHostnameProperty:
		if host := propString(res.Properties, c.spec.Property); host != "" {
			return host, label
		}
		return inventory.EndpointNone, label

	case StrategyFQDNFromName:
		return res.Name + c.spec.FQDNSuffix, label

	default:
		return inventory.EndpointNone, label
	}
}

// newFinding stamps the subscription context onto a finding.
func newFinding(sub *azure.SubscriptionContext, kind, group, name, endpoint, label string) inventory.Finding {
	return inventory.Finding{
		SubscriptionID:   sub.SubscriptionID,
		SubscriptionName: sub.SubscriptionName,
		TenantID:         sub.TenantID,
		TenantName:       sub.TenantName,
		ResourceGroup:    group,
		ResourceKind:     kind,
		ResourceName:     name,
		Endpoint:         endpoint,
		Label:            label,
	}
}
