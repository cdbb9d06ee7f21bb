package orchestrator

import (
	"context"
	"time"

	"github.com/thirukguru/azure-perimeter/service/azure"
	"github.com/thirukguru/azure-perimeter/service/inventory"
	"github.com/thirukguru/azure-perimeter/service/registry"
	"github.com/thirukguru/azure-perimeter/service/report"
)

// SubscriptionRef names one subscription the caller wants scanned.
type SubscriptionRef struct {
	SubscriptionID string
	TenantID       string
}

// Failure records one isolated failure. ResourceKind is empty for a
// subscription whose scanning context could not be established.
type Failure struct {
	SubscriptionID string
	ResourceKind   string
	Message        string
}

// SubscriptionResult is one successfully scanned subscription: its frozen
// store and counters. EndpointCount is the total finding count;
// ResourceCount is the count of distinct resource names, so
// ResourceCount <= EndpointCount always holds.
type SubscriptionResult struct {
	Context       *azure.SubscriptionContext
	Store         *inventory.Store
	ResourceCount int
	EndpointCount int
}

// RunResult is everything a caller needs to render the report and to
// distinguish "no findings exist" from "collection failed".
type RunResult struct {
	Report         *report.Report
	Subscriptions  []SubscriptionResult
	Failures       []Failure
	TotalRequested int
	Duration       time.Duration
}

// Options tune the per-subscription kind fan-out.
type Options struct {
	// Workers caps concurrent kind collectors within one subscription.
	Workers int
	// KindTimeout bounds a single kind's collection so one hanging
	// lookup cannot block the subscription's completion.
	KindTimeout time.Duration
}

type service struct {
	azureSvc    azure.Service
	reg         *registry.Registry
	workers     int
	kindTimeout time.Duration
}

// Service is the interface for the scan orchestrator.
type Service interface {
	RunDiscovery(ctx context.Context, refs []SubscriptionRef, skipKinds map[string]struct{}) (*RunResult, error)
}
