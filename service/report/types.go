package report

import "github.com/thirukguru/azure-perimeter/service/inventory"

// Input is one subscription's contribution to the aggregated report: its
// identity, its frozen findings in append order, and its counters.
type Input struct {
	SubscriptionID   string
	SubscriptionName string
	TenantID         string
	TenantName       string
	ResourceCount    int
	EndpointCount    int
	Findings         []inventory.Finding
}

// Report is the three-level render-ready view. It is rebuilt from the
// stores on every render request and never outlives one render.
type Report struct {
	Subscriptions  []SubscriptionSection
	TotalResources int
	TotalEndpoints int
}

// SubscriptionSection groups one subscription's findings by resource
// group, in first-seen order.
type SubscriptionSection struct {
	SubscriptionID   string
	SubscriptionName string
	TenantID         string
	TenantName       string
	ResourceCount    int
	EndpointCount    int
	Groups           []GroupSection
}

// GroupSection groups a resource group's findings by resource kind, in
// first-seen order.
type GroupSection struct {
	Name  string
	Kinds []KindSection
}

// KindSection carries one kind's findings in their original append order.
type KindSection struct {
	ResourceKind string
	Findings     []inventory.Finding
}
