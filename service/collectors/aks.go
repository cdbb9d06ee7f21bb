package collectors

import (
	"context"
	"fmt"

	"github.com/thirukguru/azure-perimeter/service/azure"
	"github.com/thirukguru/azure-perimeter/service/inventory"
	"github.com/thirukguru/azure-perimeter/service/registry"
)

const aksProviderType = "microsoft.containerservice/managedclusters"

type aksCollector struct {
	azureSvc azure.Service
}

// NewAKSClustersCollector reports managed cluster API server FQDNs and
// classifies private versus public API servers.
func NewAKSClustersCollector(azureSvc azure.Service) registry.Collector {
	return &aksCollector{azureSvc: azureSvc}
}

func (c *aksCollector) Kind() string { return "AKSClusters" }

func (c *aksCollector) Collect(ctx context.Context, sub *azure.SubscriptionContext, store *inventory.Store) error {
	clusters, err := c.azureSvc.ListResourceDescriptors(ctx, sub.SubscriptionID, aksProviderType)
	if err != nil {
		return fmt.Errorf("failed to list AKS clusters: %w", err)
	}

	for _, cluster := range clusters {
		fqdn := propString(cluster.Properties, "fqdn")
		if fqdn == "" {
			fqdn = propString(cluster.Properties, "privateFQDN")
		}
		if fqdn == "" {
			fqdn = inventory.EndpointNone
		}
		if err := store.Append(newFinding(sub, c.Kind(), cluster.ResourceGroup, cluster.Name, fqdn, "API Server FQDN")); err != nil {
			return err
		}

		if private, ok := propBool(cluster.Properties, "apiServerAccessProfile.enablePrivateCluster"); ok && private {
			if _, err := store.Annotate(cluster.Name, "(Private Cluster)"); err != nil {
				return err
			}
		} else {
			if _, err := store.Annotate(cluster.Name, "(Public API Server)"); err != nil {
				return err
			}
		}
	}

	return nil
}
