package main

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/pflag"
	"github.com/thirukguru/azure-perimeter/service/collectors"
)

// specializedKindDocs describes the collectors with dedicated logic, for
// the kinds listing. The long tail comes from the default kind table.
var specializedKindDocs = []struct {
	Kind         string
	ProviderType string
	Notes        string
}{
	{"StorageAccounts", "microsoft.storage/storageaccounts", "All service endpoints plus network access annotations"},
	{"VirtualMachines", "microsoft.compute/virtualmachines", "Public IPs resolved through NIC IP configurations"},
	{"AppServices", "microsoft.web/sites", "Default hostnames for sites and deployment slots"},
	{"SQLServers", "microsoft.sql/servers", "Server FQDNs plus public network access annotations"},
	{"KeyVaults", "microsoft.keyvault/vaults", "Vault URIs plus network ACL annotations"},
	{"VPNGateways", "microsoft.network/virtualnetworkgateways", "Gateway public IPs plus point-to-site annotations"},
	{"AKSClusters", "microsoft.containerservice/managedclusters", "API server FQDNs with private cluster detection"},
}

func runKindsCommand(args []string) error {
	fs := pflag.NewFlagSet("kinds", pflag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	fmt.Println("Resource kinds scanned by azure-perimeter. Pass any of these to --skip.")

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Kind", "Collector", "Provider Type", "Endpoint Source"})
	for _, d := range specializedKindDocs {
		t.AppendRow(table.Row{d.Kind, "specialized", d.ProviderType, d.Notes})
	}
	for _, entry := range collectors.DefaultKindTable() {
		t.AppendRow(table.Row{entry.Kind, "generic", entry.Spec.ProviderType, genericSource(entry.Spec)})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()

	return nil
}

func genericSource(spec collectors.GenericSpec) string {
	switch spec.Strategy {
	case collectors.StrategyPrimaryIP:
		return "ipAddress property"
	case collectors.StrategyHostnameProperty:
		return spec.Property + " property"
	case collectors.StrategyFQDNFromName:
		return "resource name + " + spec.FQDNSuffix
	default:
		return "resource inventory only"
	}
}
