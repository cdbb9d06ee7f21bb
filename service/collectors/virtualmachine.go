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
	vmProviderType  = "microsoft.compute/virtualmachines"
	nicProviderType = "microsoft.network/networkinterfaces"
	pipProviderType = "microsoft.network/publicipaddresses"
)

type vmCollector struct {
	azureSvc azure.Service
}

// NewVirtualMachinesCollector walks VM network profiles to their public
// IPs. Findings use the "vm/nic" display path so multi-NIC machines stay
// distinguishable.
func NewVirtualMachinesCollector(azureSvc azure.Service) registry.Collector {
	return &vmCollector{azureSvc: azureSvc}
}

func (c *vmCollector) Kind() string { return "VirtualMachines" }

func (c *vmCollector) Collect(ctx context.Context, sub *azure.SubscriptionContext, store *inventory.Store) error {
	vms, err := c.azureSvc.ListResourceDescriptors(ctx, sub.SubscriptionID, vmProviderType)
	if err != nil {
		return fmt.Errorf("failed to list virtual machines: %w", err)
	}
	if len(vms) == 0 {
		return nil
	}

	nics, err := c.azureSvc.ListResourceDescriptors(ctx, sub.SubscriptionID, nicProviderType)
	if err != nil {
		return fmt.Errorf("failed to list network interfaces: %w", err)
	}
	pips, err := c.azureSvc.ListResourceDescriptors(ctx, sub.SubscriptionID, pipProviderType)
	if err != nil {
		return fmt.Errorf("failed to list public IPs: %w", err)
	}

	nicByID := indexByID(nics)
	pipByID := indexByID(pips)

	for _, vm := range vms {
		for _, ref := range propSlice(vm.Properties, "networkProfile.networkInterfaces") {
			refMap, ok := ref.(map[string]any)
			if !ok {
				continue
			}
			nic, ok := nicByID[strings.ToLower(propString(refMap, "id"))]
			if !ok {
				continue
			}
			if err := c.collectNIC(sub, store, vm, nic, pipByID); err != nil {
				return err
			}
		}
	}

	return nil
}

func (c *vmCollector) collectNIC(sub *azure.SubscriptionContext, store *inventory.Store, vm, nic azure.Resource, pipByID map[string]azure.Resource) error {
	name := vm.Name + "/" + nic.Name

	for _, conf := range propSlice(nic.Properties, "ipConfigurations") {
		confMap, ok := conf.(map[string]any)
		if !ok {
			continue
		}
		pipID := propString(confMap, "properties.publicIPAddress.id")
		if pipID == "" {
			continue
		}
		pip, ok := pipByID[strings.ToLower(pipID)]
		if !ok {
			continue
		}

		endpoint := propString(pip.Properties, "ipAddress")
		label := "VM Public IP"
		if endpoint == "" {
			endpoint = inventory.EndpointNone
			label = "VM Public IP (Dynamic, Unassigned)"
		}
		if err := store.Append(newFinding(sub, c.Kind(), vm.ResourceGroup, name, endpoint, label)); err != nil {
			return err
		}
	}

	return nil
}

func indexByID(resources []azure.Resource) map[string]azure.Resource {
	byID := make(map[string]azure.Resource, len(resources))
	for _, r := range resources {
		byID[strings.ToLower(r.ID)] = r
	}
	return byID
}
