// Package azure implements the cloud-provider boundary on the Azure SDK.
// Resource enumeration goes through Azure Resource Graph so descriptors
// arrive with their full property bag; a plain ARM lister is kept as a
// fallback for tenants where Resource Graph is not available.
package azure

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resourcegraph/armresourcegraph"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
)

type service struct {
	cred       azcore.TokenCredential
	argClient  *armresourcegraph.Client
	subsClient *armsubscriptions.Client
	tenants    *armsubscriptions.TenantsClient

	mu        sync.Mutex
	resBySub  map[string]*armresources.Client
	tenantMap map[string]string
}

// NewService builds the boundary on the default Azure credential chain
// (environment, workload identity, managed identity, CLI).
func NewService() (Service, error) {
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get Azure credentials: %w", err)
	}

	argClient, err := armresourcegraph.NewClient(cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource graph client: %w", err)
	}

	subsClient, err := armsubscriptions.NewClient(cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create subscriptions client: %w", err)
	}

	tenants, err := armsubscriptions.NewTenantsClient(cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create tenants client: %w", err)
	}

	return &service{
		cred:       cred,
		argClient:  argClient,
		subsClient: subsClient,
		tenants:    tenants,
		resBySub:   map[string]*armresources.Client{},
	}, nil
}

func (s *service) ListSubscriptions(ctx context.Context) ([]SubscriptionContext, error) {
	var subs []SubscriptionContext

	pager := s.subsClient.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list subscriptions: %w", err)
		}
		for _, sub := range page.Value {
			if sub.SubscriptionID == nil {
				continue
			}
			sc := SubscriptionContext{SubscriptionID: *sub.SubscriptionID}
			if sub.DisplayName != nil {
				sc.SubscriptionName = *sub.DisplayName
			}
			if sub.TenantID != nil {
				sc.TenantID = *sub.TenantID
				sc.TenantName = s.tenantName(ctx, *sub.TenantID)
			}
			subs = append(subs, sc)
		}
	}

	return subs, nil
}

func (s *service) SwitchSubscription(ctx context.Context, subscriptionID, tenantID string) (*SubscriptionContext, error) {
	resp, err := s.subsClient.Get(ctx, subscriptionID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription %s: %w", subscriptionID, err)
	}

	sc := &SubscriptionContext{SubscriptionID: subscriptionID}
	if resp.DisplayName != nil {
		sc.SubscriptionName = *resp.DisplayName
	}
	if resp.TenantID != nil {
		sc.TenantID = *resp.TenantID
	}

	if tenantID != "" && sc.TenantID != "" && !strings.EqualFold(tenantID, sc.TenantID) {
		return nil, fmt.Errorf("subscription %s belongs to tenant %s, not %s", subscriptionID, sc.TenantID, tenantID)
	}

	if sc.TenantID != "" {
		sc.TenantName = s.tenantName(ctx, sc.TenantID)
	}

	return sc, nil
}

// tenantName resolves a tenant's display name, caching the tenant list.
// Resolution failures fall back to the tenant ID.
func (s *service) tenantName(ctx context.Context, tenantID string) string {
	s.mu.Lock()
	cached := s.tenantMap
	s.mu.Unlock()

	if cached == nil {
		cached = map[string]string{}
		pager := s.tenants.NewListPager(nil)
		for pager.More() {
			page, err := pager.NextPage(ctx)
			if err != nil {
				slog.Debug("could not list tenants", "error", err)
				break
			}
			for _, t := range page.Value {
				if t.TenantID == nil {
					continue
				}
				name := *t.TenantID
				if t.DisplayName != nil {
					name = *t.DisplayName
				}
				cached[strings.ToLower(*t.TenantID)] = name
			}
		}
		s.mu.Lock()
		s.tenantMap = cached
		s.mu.Unlock()
	}

	if name, ok := cached[strings.ToLower(tenantID)]; ok {
		return name
	}
	return tenantID
}

func (s *service) ListResourceDescriptors(ctx context.Context, subscriptionID, providerType string) ([]Resource, error) {
	resources, err := s.listViaResourceGraph(ctx, subscriptionID, providerType)
	if err == nil {
		return resources, nil
	}

	slog.Warn("resource graph query failed, falling back to ARM list",
		"subscription", subscriptionID, "type", providerType, "error", err)
	return s.listViaARM(ctx, subscriptionID, providerType)
}

func (s *service) listViaResourceGraph(ctx context.Context, subscriptionID, providerType string) ([]Resource, error) {
	query := fmt.Sprintf(
		"Resources | where type =~ '%s' | project id, name, type, location, resourceGroup, tags, properties",
		providerType)

	var (
		resources []Resource
		skipToken *string
	)

	for {
		request := armresourcegraph.QueryRequest{
			Query:         &query,
			Subscriptions: []*string{&subscriptionID},
			Options: &armresourcegraph.QueryRequestOptions{
				ResultFormat: to.Ptr(armresourcegraph.ResultFormatObjectArray),
				SkipToken:    skipToken,
			},
		}

		resp, err := s.argClient.Resources(ctx, request, nil)
		if err != nil {
			return nil, fmt.Errorf("resource graph query for %s: %w", providerType, err)
		}

		rows, ok := resp.Data.([]any)
		if !ok {
			return nil, fmt.Errorf("unexpected resource graph response type %T", resp.Data)
		}

		for _, row := range rows {
			item, ok := row.(map[string]any)
			if !ok {
				continue
			}
			resources = append(resources, resourceFromRow(item))
		}

		if resp.SkipToken == nil || *resp.SkipToken == "" {
			return resources, nil
		}
		skipToken = resp.SkipToken
	}
}

func resourceFromRow(item map[string]any) Resource {
	str := func(key string) string {
		if v, ok := item[key]; ok && v != nil {
			if s, ok := v.(string); ok {
				return s
			}
		}
		return ""
	}

	res := Resource{
		ID:            str("id"),
		Name:          str("name"),
		Type:          str("type"),
		Location:      str("location"),
		ResourceGroup: str("resourceGroup"),
	}

	if tags, ok := item["tags"].(map[string]any); ok {
		res.Tags = make(map[string]string, len(tags))
		for k, v := range tags {
			res.Tags[k] = fmt.Sprintf("%v", v)
		}
	}
	if props, ok := item["properties"].(map[string]any); ok {
		res.Properties = props
	}

	return res
}

func (s *service) listViaARM(ctx context.Context, subscriptionID, providerType string) ([]Resource, error) {
	client, err := s.resourceClient(subscriptionID)
	if err != nil {
		return nil, err
	}

	filter := fmt.Sprintf("resourceType eq '%s'", providerType)
	pager := client.NewListPager(&armresources.ClientListOptions{Filter: &filter})

	var resources []Resource
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s resources: %w", providerType, err)
		}
		for _, r := range page.Value {
			if r.ID == nil || r.Name == nil {
				continue
			}
			res := Resource{
				ID:            *r.ID,
				Name:          *r.Name,
				Type:          providerType,
				ResourceGroup: resourceGroupFromID(*r.ID),
			}
			if r.Location != nil {
				res.Location = *r.Location
			}
			if len(r.Tags) > 0 {
				res.Tags = make(map[string]string, len(r.Tags))
				for k, v := range r.Tags {
					if v != nil {
						res.Tags[k] = *v
					}
				}
			}
			resources = append(resources, res)
		}
	}

	return resources, nil
}

func (s *service) resourceClient(subscriptionID string) (*armresources.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if client, ok := s.resBySub[subscriptionID]; ok {
		return client, nil
	}

	client, err := armresources.NewClient(subscriptionID, s.cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create resources client: %w", err)
	}
	s.resBySub[subscriptionID] = client
	return client, nil
}

// resourceGroupFromID extracts the resource group segment of an ARM ID.
func resourceGroupFromID(id string) string {
	parts := strings.Split(id, "/")
	for i := 0; i < len(parts)-1; i++ {
		if strings.EqualFold(parts[i], "resourceGroups") {
			return parts[i+1]
		}
	}
	return ""
}
