// Package inventory holds the finding data model and the per-subscription
// finding store used by collectors during a scan.
package inventory

// EndpointNone is the endpoint value for resources where no network
// endpoint could be extracted.
const EndpointNone = "N/A"

// Finding records one discovered fact about one resource's reachability.
// All fields except Label are immutable once the finding is appended to a
// store; Label may gain enrichment suffixes via Store.Annotate.
type Finding struct {
	SubscriptionID   string
	SubscriptionName string
	TenantID         string
	TenantName       string
	ResourceGroup    string
	ResourceKind     string
	// ResourceName may encode a parent/child path such as "vm1/nic0".
	// It is a display path; parent and parent/child count as distinct
	// resources.
	ResourceName string
	Endpoint     string
	Label        string
}
