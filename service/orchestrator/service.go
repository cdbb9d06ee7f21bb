// Package orchestrator coordinates the per-subscription scan loop: it
// dispatches every registered resource kind through the collector
// registry, isolates failures to their (subscription, kind) scope, and
// assembles the aggregated report.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/thirukguru/azure-perimeter/service/azure"
	"github.com/thirukguru/azure-perimeter/service/inventory"
	"github.com/thirukguru/azure-perimeter/service/registry"
	"github.com/thirukguru/azure-perimeter/service/report"
	"golang.org/x/sync/errgroup"
)

const (
	defaultWorkers     = 4
	defaultKindTimeout = 2 * time.Minute
)

// NewService creates a new orchestrator service.
func NewService(azureSvc azure.Service, reg *registry.Registry, opts Options) Service {
	workers := opts.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	kindTimeout := opts.KindTimeout
	if kindTimeout <= 0 {
		kindTimeout = defaultKindTimeout
	}

	return &service{
		azureSvc:    azureSvc,
		reg:         reg,
		workers:     workers,
		kindTimeout: kindTimeout,
	}
}

// RunDiscovery scans every requested subscription. A subscription whose
// context cannot be established is recorded as failed and omitted from
// the report; TotalRequested always reflects the caller's request, not
// what succeeded.
func (s *service) RunDiscovery(ctx context.Context, refs []SubscriptionRef, skipKinds map[string]struct{}) (*RunResult, error) {
	startedAt := time.Now()
	result := &RunResult{TotalRequested: len(refs)}

	s.warnUnknownSkips(skipKinds)

	for _, ref := range refs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		subCtx, err := s.azureSvc.SwitchSubscription(ctx, ref.SubscriptionID, ref.TenantID)
		if err != nil {
			slog.Warn("skipping subscription, context could not be established",
				"subscription", ref.SubscriptionID, "error", err)
			result.Failures = append(result.Failures, Failure{
				SubscriptionID: ref.SubscriptionID,
				Message:        err.Error(),
			})
			continue
		}

		subResult, failures := s.scanSubscription(ctx, subCtx, skipKinds)
		result.Subscriptions = append(result.Subscriptions, subResult)
		result.Failures = append(result.Failures, failures...)
	}

	inputs := make([]report.Input, 0, len(result.Subscriptions))
	for _, sub := range result.Subscriptions {
		inputs = append(inputs, report.Input{
			SubscriptionID:   sub.Context.SubscriptionID,
			SubscriptionName: sub.Context.SubscriptionName,
			TenantID:         sub.Context.TenantID,
			TenantName:       sub.Context.TenantName,
			ResourceCount:    sub.ResourceCount,
			EndpointCount:    sub.EndpointCount,
			Findings:         sub.Store.Findings(),
		})
	}
	result.Report = report.Build(inputs)
	result.Duration = time.Since(startedAt)

	return result, nil
}

// scanSubscription runs every registered kind against one subscription's
// store. Kind collectors run concurrently under a worker limit; each gets
// its own timeout so a hanging lookup cannot stall the others. A kind's
// failure is recorded and scanning continues; whatever the kind appended
// before failing stays in the store.
func (s *service) scanSubscription(ctx context.Context, sub *azure.SubscriptionContext, skipKinds map[string]struct{}) (SubscriptionResult, []Failure) {
	store := inventory.NewStore()

	var (
		mu       sync.Mutex
		failures []Failure
	)

	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for _, kind := range s.reg.Kinds() {
		kind := kind
		if _, skip := skipKinds[kind]; skip {
			slog.Debug("skipping kind", "subscription", sub.SubscriptionID, "kind", kind)
			continue
		}

		collector, ok := s.reg.Resolve(kind)
		if !ok {
			// Registered kinds always resolve; an unknown kind is a
			// configuration gap, not a failure.
			slog.Warn("no collector available for kind", "kind", kind)
			continue
		}

		g.Go(func() error {
			kindCtx, cancel := context.WithTimeout(groupCtx, s.kindTimeout)
			defer cancel()

			if err := collector.Collect(kindCtx, sub, store); err != nil {
				msg := err.Error()
				if errors.Is(err, context.DeadlineExceeded) {
					msg = fmt.Sprintf("collection timed out after %s", s.kindTimeout)
				}
				mu.Lock()
				failures = append(failures, Failure{
					SubscriptionID: sub.SubscriptionID,
					ResourceKind:   kind,
					Message:        msg,
				})
				mu.Unlock()
				slog.Warn("kind collection failed",
					"subscription", sub.SubscriptionID, "kind", kind, "error", err)
			}
			return nil
		})
	}

	// Collectors never propagate errors through the group; Wait only
	// returns early on parent-context cancellation.
	_ = g.Wait()

	store.Freeze()

	return SubscriptionResult{
		Context:       sub,
		Store:         store,
		ResourceCount: store.DistinctResources(),
		EndpointCount: store.Len(),
	}, failures
}

func (s *service) warnUnknownSkips(skipKinds map[string]struct{}) {
	registered := map[string]struct{}{}
	for _, kind := range s.reg.Kinds() {
		registered[kind] = struct{}{}
	}
	for kind := range skipKinds {
		if _, ok := registered[kind]; !ok {
			slog.Warn("skip requested for unsupported kind", "kind", kind)
		}
	}
}
