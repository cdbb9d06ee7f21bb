package collectors

import (
	"context"
	"fmt"
	"strings"

	"github.com/thirukguru/azure-perimeter/service/azure"
	"github.com/thirukguru/azure-perimeter/service/inventory"
	"github.com/thirukguru/azure-perimeter/service/registry"
)

const (
	siteProviderType = "microsoft.web/sites"
	slotProviderType = "microsoft.web/sites/slots"
)

type appServiceCollector struct {
	azureSvc azure.Service
}

// NewAppServicesCollector reports web app default hostnames plus their
// deployment slots (slot descriptors already carry "site/slot" names).
func NewAppServicesCollector(azureSvc azure.Service) registry.Collector {
	return &appServiceCollector{azureSvc: azureSvc}
}

func (c *appServiceCollector) Kind() string { return "AppServices" }

func (c *appServiceCollector) Collect(ctx context.Context, sub *azure.SubscriptionContext, store *inventory.Store) error {
	sites, err := c.azureSvc.ListResourceDescriptors(ctx, sub.SubscriptionID, siteProviderType)
	if err != nil {
		return fmt.Errorf("failed to list app services: %w", err)
	}

	for _, site := range sites {
		endpoint := propString(site.Properties, "defaultHostName")
		if endpoint == "" {
			endpoint = inventory.EndpointNone
		}
		if err := store.Append(newFinding(sub, c.Kind(), site.ResourceGroup, site.Name, endpoint, "Default Hostname")); err != nil {
			return err
		}

		if strings.EqualFold(propString(site.Properties, "publicNetworkAccess"), "Disabled") {
			if _, err := store.Annotate(site.Name, "(Public Access Disabled)"); err != nil {
				return err
			}
		}
		if httpsOnly, ok := propBool(site.Properties, "httpsOnly"); ok && !httpsOnly {
			if _, err := store.Annotate(site.Name, "(HTTP Allowed)"); err != nil {
				return err
			}
		}
	}

	if len(sites) == 0 {
		return nil
	}

	slots, err := c.azureSvc.ListResourceDescriptors(ctx, sub.SubscriptionID, slotProviderType)
	if err != nil {
		return fmt.Errorf("failed to list deployment slots: %w", err)
	}
	for _, slot := range slots {
		endpoint := propString(slot.Properties, "defaultHostName")
		if endpoint == "" {
			endpoint = inventory.EndpointNone
		}
		if err := store.Append(newFinding(sub, c.Kind(), slot.ResourceGroup, slot.Name, endpoint, "Slot Hostname")); err != nil {
			return err
		}
	}

	return nil
}
