package collectors

import (
	"context"
	"fmt"
	"strings"

	"github.com/thirukguru/azure-perimeter/service/azure"
	"github.com/thirukguru/azure-perimeter/service/inventory"
	"github.com/thirukguru/azure-perimeter/service/registry"
)

const sqlProviderType = "microsoft.sql/servers"

type sqlServerCollector struct {
	azureSvc azure.Service
}

// NewSQLServersCollector reports logical SQL server FQDNs with their
// public-network classification.
func NewSQLServersCollector(azureSvc azure.Service) registry.Collector {
	return &sqlServerCollector{azureSvc: azureSvc}
}

func (c *sqlServerCollector) Kind() string { return "SQLServers" }

func (c *sqlServerCollector) Collect(ctx context.Context, sub *azure.SubscriptionContext, store *inventory.Store) error {
	servers, err := c.azureSvc.ListResourceDescriptors(ctx, sub.SubscriptionID, sqlProviderType)
	if err != nil {
		return fmt.Errorf("failed to list SQL servers: %w", err)
	}

	for _, server := range servers {
		fqdn := propString(server.Properties, "fullyQualifiedDomainName")
		if fqdn == "" {
			fqdn = server.Name + ".database.windows.net"
		}
		if err := store.Append(newFinding(sub, c.Kind(), server.ResourceGroup, server.Name, fqdn, "SQL Endpoint")); err != nil {
			return err
		}

		switch strings.ToLower(propString(server.Properties, "publicNetworkAccess")) {
		case "enabled":
			if _, err := store.Annotate(server.Name, "(Public Network: Enabled)"); err != nil {
				return err
			}
		case "disabled":
			if _, err := store.Annotate(server.Name, "(Public Network: Disabled)"); err != nil {
				return err
			}
		}
	}

	return nil
}
