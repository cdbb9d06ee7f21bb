package azure

import "context"

// Resource is a raw resource descriptor as returned by Resource Graph.
// Properties carries the resource's provider-specific property bag; its
// shape varies by resource type and may be empty when the descriptor came
// from the plain ARM fallback lister.
type Resource struct {
	ID            string
	Name          string
	Type          string
	Location      string
	ResourceGroup string
	Tags          map[string]string
	Properties    map[string]any
}

// SubscriptionContext identifies an authenticated scanning context for one
// subscription.
type SubscriptionContext struct {
	SubscriptionID   string
	SubscriptionName string
	TenantID         string
	TenantName       string
}

// Service is the cloud-provider boundary the scan engine consumes.
type Service interface {
	// ListSubscriptions enumerates every subscription visible to the
	// current credential.
	ListSubscriptions(ctx context.Context) ([]SubscriptionContext, error)

	// SwitchSubscription establishes a scanning context for one
	// subscription. When tenantID is non-empty the subscription must
	// belong to that tenant.
	SwitchSubscription(ctx context.Context, subscriptionID, tenantID string) (*SubscriptionContext, error)

	// ListResourceDescriptors returns every resource of the given ARM
	// provider type (e.g. "microsoft.storage/storageaccounts") in the
	// subscription.
	ListResourceDescriptors(ctx context.Context, subscriptionID, providerType string) ([]Resource, error)
}
