package collectors

import (
	"context"
	"fmt"
	"strings"

	"github.com/thirukguru/azure-perimeter/service/azure"
	"github.com/thirukguru/azure-perimeter/service/inventory"
	"github.com/thirukguru/azure-perimeter/service/registry"
)

const vaultProviderType = "microsoft.keyvault/vaults"

type keyVaultCollector struct {
	azureSvc azure.Service
}

// NewKeyVaultsCollector reports vault URIs with their network
// classification.
func NewKeyVaultsCollector(azureSvc azure.Service) registry.Collector {
	return &keyVaultCollector{azureSvc: azureSvc}
}

func (c *keyVaultCollector) Kind() string { return "KeyVaults" }

func (c *keyVaultCollector) Collect(ctx context.Context, sub *azure.SubscriptionContext, store *inventory.Store) error {
	vaults, err := c.azureSvc.ListResourceDescriptors(ctx, sub.SubscriptionID, vaultProviderType)
	if err != nil {
		return fmt.Errorf("failed to list key vaults: %w", err)
	}

	for _, vault := range vaults {
		uri := propString(vault.Properties, "vaultUri")
		if uri == "" {
			uri = "https://" + vault.Name + ".vault.azure.net/"
		}
		if err := store.Append(newFinding(sub, c.Kind(), vault.ResourceGroup, vault.Name, uri, "Vault URI")); err != nil {
			return err
		}

		switch strings.ToLower(propString(vault.Properties, "networkAcls.defaultAction")) {
		case "allow":
			if _, err := store.Annotate(vault.Name, "(Network: Allow All)"); err != nil {
				return err
			}
		case "deny":
			if _, err := store.Annotate(vault.Name, "(Network: Restricted)"); err != nil {
				return err
			}
		}

		if strings.EqualFold(propString(vault.Properties, "publicNetworkAccess"), "Disabled") {
			if _, err := store.Annotate(vault.Name, "(Public Access Disabled)"); err != nil {
				return err
			}
		}
	}

	return nil
}
