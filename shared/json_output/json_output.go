// Package jsonoutput builds the JSON export payload for a discovery run.
package jsonoutput

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/thirukguru/azure-perimeter/service/orchestrator"
	"github.com/thirukguru/azure-perimeter/service/report"
)

// RunReportJSON is the export shape of a completed discovery run.
type RunReportJSON struct {
	Tool           string             `json:"tool"`
	Version        string             `json:"version"`
	GeneratedAt    string             `json:"generated_at"`
	TotalRequested int                `json:"subscriptions_requested"`
	TotalAssessed  int                `json:"subscriptions_assessed"`
	TotalResources int                `json:"total_resources"`
	TotalEndpoints int                `json:"total_endpoints"`
	Subscriptions  []SubscriptionJSON `json:"subscriptions"`
	Failures       []FailureJSON      `json:"failures,omitempty"`
}

// SubscriptionJSON is one subscription's section of the export.
type SubscriptionJSON struct {
	SubscriptionID   string      `json:"subscription_id"`
	SubscriptionName string      `json:"subscription_name,omitempty"`
	TenantID         string      `json:"tenant_id,omitempty"`
	TenantName       string      `json:"tenant_name,omitempty"`
	ResourceCount    int         `json:"resource_count"`
	EndpointCount    int         `json:"endpoint_count"`
	Groups           []GroupJSON `json:"resource_groups"`
}

// GroupJSON is one resource group's section.
type GroupJSON struct {
	Name  string     `json:"name"`
	Kinds []KindJSON `json:"kinds"`
}

// KindJSON is one resource kind's findings.
type KindJSON struct {
	ResourceKind string        `json:"resource_kind"`
	Findings     []FindingJSON `json:"findings"`
}

// FindingJSON is one finding row.
type FindingJSON struct {
	ResourceName string `json:"resource_name"`
	Endpoint     string `json:"endpoint"`
	Label        string `json:"label"`
}

// FailureJSON is one recorded failure.
type FailureJSON struct {
	SubscriptionID string `json:"subscription_id"`
	ResourceKind   string `json:"resource_kind,omitempty"`
	Message        string `json:"message"`
}

// BuildRunReport converts a run result into the export payload.
func BuildRunReport(result *orchestrator.RunResult, version string) RunReportJSON {
	out := RunReportJSON{
		Tool:           "azure-perimeter",
		Version:        version,
		GeneratedAt:    time.Now().UTC().Format(time.RFC3339),
		TotalRequested: result.TotalRequested,
		TotalAssessed:  len(result.Report.Subscriptions),
		TotalResources: result.Report.TotalResources,
		TotalEndpoints: result.Report.TotalEndpoints,
	}

	for _, sub := range result.Report.Subscriptions {
		out.Subscriptions = append(out.Subscriptions, subscriptionJSON(sub))
	}
	for _, f := range result.Failures {
		out.Failures = append(out.Failures, FailureJSON{
			SubscriptionID: f.SubscriptionID,
			ResourceKind:   f.ResourceKind,
			Message:        f.Message,
		})
	}

	return out
}

func subscriptionJSON(sub report.SubscriptionSection) SubscriptionJSON {
	out := SubscriptionJSON{
		SubscriptionID:   sub.SubscriptionID,
		SubscriptionName: sub.SubscriptionName,
		TenantID:         sub.TenantID,
		TenantName:       sub.TenantName,
		ResourceCount:    sub.ResourceCount,
		EndpointCount:    sub.EndpointCount,
	}

	for _, group := range sub.Groups {
		g := GroupJSON{Name: group.Name}
		for _, kind := range group.Kinds {
			k := KindJSON{ResourceKind: kind.ResourceKind}
			for _, f := range kind.Findings {
				k.Findings = append(k.Findings, FindingJSON{
					ResourceName: f.ResourceName,
					Endpoint:     f.Endpoint,
					Label:        f.Label,
				})
			}
			g.Kinds = append(g.Kinds, k)
		}
		out.Groups = append(out.Groups, g)
	}

	return out
}

// WriteFile writes the indented JSON export to path.
func WriteFile(path string, result *orchestrator.RunResult, version string) error {
	payload := BuildRunReport(result, version)
	b, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON export: %w", err)
	}
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write JSON export: %w", err)
	}
	return nil
}
