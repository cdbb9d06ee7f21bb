package collectors

import (
	"context"
	"fmt"
	"strings"

	"github.com/thirukguru/azure-perimeter/service/azure"
	"github.com/thirukguru/azure-perimeter/service/inventory"
	"github.com/thirukguru/azure-perimeter/service/registry"
)

const gatewayProviderType = "microsoft.network/virtualnetworkgateways"

type vpnGatewayCollector struct {
	azureSvc azure.Service
}

// NewVPNGatewaysCollector reports virtual network gateway public
// endpoints and flags point-to-site configurations.
func NewVPNGatewaysCollector(azureSvc azure.Service) registry.Collector {
	return &vpnGatewayCollector{azureSvc: azureSvc}
}

func (c *vpnGatewayCollector) Kind() string { return "VPNGateways" }

func (c *vpnGatewayCollector) Collect(ctx context.Context, sub *azure.SubscriptionContext, store *inventory.Store) error {
	gateways, err := c.azureSvc.ListResourceDescriptors(ctx, sub.SubscriptionID, gatewayProviderType)
	if err != nil {
		return fmt.Errorf("failed to list VPN gateways: %w", err)
	}
	if len(gateways) == 0 {
		return nil
	}

	pips, err := c.azureSvc.ListResourceDescriptors(ctx, sub.SubscriptionID, pipProviderType)
	if err != nil {
		return fmt.Errorf("failed to list public IPs: %w", err)
	}
	pipByID := indexByID(pips)

	for _, gw := range gateways {
		appended := false
		for _, conf := range propSlice(gw.Properties, "ipConfigurations") {
			confMap, ok := conf.(map[string]any)
			if !ok {
				continue
			}
			pipID := propString(confMap, "properties.publicIPAddress.id")
			if pipID == "" {
				continue
			}

			endpoint := inventory.EndpointNone
			if pip, ok := pipByID[strings.ToLower(pipID)]; ok {
				if ip := propString(pip.Properties, "ipAddress"); ip != "" {
					endpoint = ip
				}
			}
			if err := store.Append(newFinding(sub, c.Kind(), gw.ResourceGroup, gw.Name, endpoint, "Gateway Endpoint")); err != nil {
				return err
			}
			appended = true
		}
		if !appended {
			if err := store.Append(newFinding(sub, c.Kind(), gw.ResourceGroup, gw.Name, inventory.EndpointNone, "Gateway Endpoint")); err != nil {
				return err
			}
		}

		if propMap(gw.Properties, "vpnClientConfiguration") != nil {
			if _, err := store.Annotate(gw.Name, "(P2S VPN Enabled)"); err != nil {
				return err
			}
		}
	}

	return nil
}
