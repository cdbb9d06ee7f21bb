package collectors

import (
	"context"
	"fmt"
	"strings"

	"github.com/thirukguru/azure-perimeter/service/azure"
	"github.com/thirukguru/azure-perimeter/service/inventory"
	"github.com/thirukguru/azure-perimeter/service/registry"
)

const storageProviderType = "microsoft.storage/storageaccounts"

// storageServices enumerates the per-service endpoints in a fixed order
// so findings for one account always appear blob-first.
var storageServices = []struct {
	key   string
	label string
}{
	{"blob", "Blob Endpoint"},
	{"file", "File Endpoint"},
	{"queue", "Queue Endpoint"},
	{"table", "Table Endpoint"},
	{"web", "Web Endpoint"},
	{"dfs", "DFS Endpoint"},
}

type storageCollector struct {
	azureSvc azure.Service
}

// NewStorageAccountsCollector reports every exposed storage service
// endpoint per account and then layers network-access classifications
// onto the base labels.
func NewStorageAccountsCollector(azureSvc azure.Service) registry.Collector {
	return &storageCollector{azureSvc: azureSvc}
}

func (c *storageCollector) Kind() string { return "StorageAccounts" }

func (c *storageCollector) Collect(ctx context.Context, sub *azure.SubscriptionContext, store *inventory.Store) error {
	accounts, err := c.azureSvc.ListResourceDescriptors(ctx, sub.SubscriptionID, storageProviderType)
	if err != nil {
		return fmt.Errorf("failed to list storage accounts: %w", err)
	}

	for _, account := range accounts {
		if err := c.collectAccount(sub, store, account); err != nil {
			return err
		}
	}

	return nil
}

func (c *storageCollector) collectAccount(sub *azure.SubscriptionContext, store *inventory.Store, account azure.Resource) error {
	endpoints := propMap(account.Properties, "primaryEndpoints")

	appended := false
	for _, svc := range storageServices {
		url, ok := endpoints[svc.key].(string)
		if !ok || url == "" {
			continue
		}
		if err := store.Append(newFinding(sub, c.Kind(), account.ResourceGroup, account.Name, url, svc.label)); err != nil {
			return err
		}
		appended = true
	}
	if !appended {
		if err := store.Append(newFinding(sub, c.Kind(), account.ResourceGroup, account.Name, inventory.EndpointNone, "Storage Endpoint")); err != nil {
			return err
		}
	}

	// Network classification is discovered after the base endpoints and
	// layered onto every finding of the account.
	switch strings.ToLower(propString(account.Properties, "networkAcls.defaultAction")) {
	case "allow":
		if _, err := store.Annotate(account.Name, "(Network: Allow All)"); err != nil {
			return err
		}
	case "deny":
		if _, err := store.Annotate(account.Name, "(Network: Restricted)"); err != nil {
			return err
		}
	}

	if strings.EqualFold(propString(account.Properties, "publicNetworkAccess"), "Disabled") {
		if _, err := store.Annotate(account.Name, "(Public Access Disabled)"); err != nil {
			return err
		}
	}

	if https, ok := propBool(account.Properties, "supportsHttpsTrafficOnly"); ok && !https {
		if _, err := store.Annotate(account.Name, "(HTTP Allowed)"); err != nil {
			return err
		}
	}

	return nil
}
