package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/thirukguru/azure-perimeter/model"
	"github.com/thirukguru/azure-perimeter/service/azure"
	"github.com/thirukguru/azure-perimeter/service/collectors"
	"github.com/thirukguru/azure-perimeter/service/orchestrator"
	"github.com/thirukguru/azure-perimeter/service/output"
	"github.com/thirukguru/azure-perimeter/service/registry"
	"github.com/thirukguru/azure-perimeter/service/storage"
	csvoutput "github.com/thirukguru/azure-perimeter/shared/csv_output"
	jsonoutput "github.com/thirukguru/azure-perimeter/shared/json_output"
	"github.com/thirukguru/azure-perimeter/shared/spinner"
)

func runScan(flags model.Flags, versionInfo model.VersionInfo) error {
	azureSvc, err := azure.NewService()
	if err != nil {
		return fmt.Errorf("failed to initialize Azure clients: %w", err)
	}

	reg := buildRegistry(azureSvc)

	ctx := context.Background()
	refs, err := resolveSubscriptions(ctx, azureSvc, flags)
	if err != nil {
		return err
	}
	if len(refs) == 0 {
		return fmt.Errorf("no subscriptions to scan")
	}

	orchestratorService := orchestrator.NewService(azureSvc, reg, orchestrator.Options{
		Workers:     flags.Workers,
		KindTimeout: time.Duration(flags.KindTimeoutSec) * time.Second,
	})
	outputService := output.NewService(flags.Output, flags.OutputFile)

	if flags.Output == "table" {
		spinner.StartSpinner()
	}
	result, err := orchestratorService.RunDiscovery(ctx, refs, buildSkipSet(flags.SkipKinds))
	outputService.StopSpinner()
	if err != nil {
		return fmt.Errorf("discovery run failed: %w", err)
	}

	if err := outputService.RenderReport(result.Report); err != nil {
		return err
	}
	if err := outputService.RenderFailures(result.Failures); err != nil {
		return err
	}

	if flags.Output == "table" {
		fmt.Printf("\nScanned %d of %d requested subscriptions in %s\n",
			len(result.Report.Subscriptions), result.TotalRequested, result.Duration.Round(time.Millisecond))
	}

	return writeExports(flags, result, versionInfo)
}

// buildRegistry wires every collector. Specialized collectors take
// precedence; the kind table covers the long tail of provider types
// whose endpoints live in a single well-known property.
func buildRegistry(azureSvc azure.Service) *registry.Registry {
	reg := registry.New()

	reg.Register(collectors.NewStorageAccountsCollector(azureSvc))
	reg.Register(collectors.NewVirtualMachinesCollector(azureSvc))
	reg.Register(collectors.NewAppServicesCollector(azureSvc))
	reg.Register(collectors.NewSQLServersCollector(azureSvc))
	reg.Register(collectors.NewKeyVaultsCollector(azureSvc))
	reg.Register(collectors.NewVPNGatewaysCollector(azureSvc))
	reg.Register(collectors.NewAKSClustersCollector(azureSvc))

	for _, entry := range collectors.DefaultKindTable() {
		reg.RegisterFallback(collectors.NewGeneric(azureSvc, entry.Kind, entry.Spec))
	}

	return reg
}

func resolveSubscriptions(ctx context.Context, azureSvc azure.Service, flags model.Flags) ([]orchestrator.SubscriptionRef, error) {
	if len(flags.Subscriptions) == 1 && strings.EqualFold(flags.Subscriptions[0], "all") {
		subs, err := azureSvc.ListSubscriptions(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list subscriptions: %w", err)
		}
		var refs []orchestrator.SubscriptionRef
		for _, sub := range subs {
			if flags.Tenant != "" && !strings.EqualFold(sub.TenantID, flags.Tenant) {
				continue
			}
			refs = append(refs, orchestrator.SubscriptionRef{
				SubscriptionID: sub.SubscriptionID,
				TenantID:       sub.TenantID,
			})
		}
		return refs, nil
	}

	var refs []orchestrator.SubscriptionRef
	seen := make(map[string]struct{})
	for _, id := range flags.Subscriptions {
		key := strings.ToLower(id)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		refs = append(refs, orchestrator.SubscriptionRef{
			SubscriptionID: id,
			TenantID:       flags.Tenant,
		})
	}
	return refs, nil
}

func buildSkipSet(kinds []string) map[string]struct{} {
	if len(kinds) == 0 {
		return nil
	}
	skip := make(map[string]struct{}, len(kinds))
	for _, k := range kinds {
		skip[k] = struct{}{}
	}
	return skip
}

func writeExports(flags model.Flags, result *orchestrator.RunResult, versionInfo model.VersionInfo) error {
	if flags.ExportCSV != "" {
		if err := csvoutput.WriteFile(flags.ExportCSV, result.Report); err != nil {
			return err
		}
	}
	if flags.ExportJSON != "" {
		if err := jsonoutput.WriteFile(flags.ExportJSON, result, versionInfo.Version); err != nil {
			return err
		}
	}
	if flags.ExportSQLite != "" {
		if err := exportSnapshot(flags.ExportSQLite, result, versionInfo); err != nil {
			return err
		}
	}
	return nil
}

func exportSnapshot(path string, result *orchestrator.RunResult, versionInfo model.VersionInfo) error {
	store, err := storage.NewService(path)
	if err != nil {
		return fmt.Errorf("failed to initialize snapshot storage: %w", err)
	}
	defer store.Close()

	input := storage.SaveRunInput{
		Version:        versionInfo.Version,
		DurationSec:    int64(result.Duration.Seconds()),
		TotalRequested: result.TotalRequested,
		TotalAssessed:  len(result.Report.Subscriptions),
		TotalResources: result.Report.TotalResources,
		TotalEndpoints: result.Report.TotalEndpoints,
	}
	for _, sub := range result.Report.Subscriptions {
		for _, group := range sub.Groups {
			for _, kind := range group.Kinds {
				for _, f := range kind.Findings {
					input.Findings = append(input.Findings, storage.FindingRow{
						SubscriptionID:   f.SubscriptionID,
						SubscriptionName: f.SubscriptionName,
						TenantID:         f.TenantID,
						TenantName:       f.TenantName,
						ResourceGroup:    f.ResourceGroup,
						ResourceKind:     f.ResourceKind,
						ResourceName:     f.ResourceName,
						Endpoint:         f.Endpoint,
						Label:            f.Label,
					})
				}
			}
		}
	}
	for _, f := range result.Failures {
		input.Failures = append(input.Failures, storage.FailureRow{
			SubscriptionID: f.SubscriptionID,
			ResourceKind:   f.ResourceKind,
			Message:        f.Message,
		})
	}

	if _, err := store.SaveRun(context.Background(), input); err != nil {
		return fmt.Errorf("failed to save run snapshot: %w", err)
	}
	return nil
}
