package collectors

import (
	"context"
	"errors"

	"github.com/thirukguru/azure-perimeter/service/azure"
)

// fakeAzure serves canned descriptors per provider type.
type fakeAzure struct {
	resources map[string][]azure.Resource
	errs      map[string]error
}

func (f *fakeAzure) ListSubscriptions(context.Context) ([]azure.SubscriptionContext, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeAzure) SwitchSubscription(context.Context, string, string) (*azure.SubscriptionContext, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeAzure) ListResourceDescriptors(_ context.Context, _ string, providerType string) ([]azure.Resource, error) {
	if err := f.errs[providerType]; err != nil {
		return nil, err
	}
	return f.resources[providerType], nil
}

func testSub() *azure.SubscriptionContext {
	return &azure.SubscriptionContext{
		SubscriptionID:   "sub-1",
		SubscriptionName: "Production",
		TenantID:         "tenant-1",
		TenantName:       "Contoso",
	}
}
