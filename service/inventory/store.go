package inventory

import (
	"errors"
	"strings"
	"sync"
)

// ErrFrozen is returned when a store is modified after its subscription's
// scan has completed.
var ErrFrozen = errors.New("finding store is frozen")

// Store accumulates findings for exactly one subscription. Append and
// Annotate are safe for concurrent use by the kind collectors of that
// subscription; a store is never shared across subscriptions.
type Store struct {
	mu       sync.Mutex
	findings []Finding
	frozen   bool
}

// NewStore creates an empty store for one subscription's scan.
func NewStore() *Store {
	return &Store{}
}

// Append adds a finding. Findings are never removed once appended.
func (s *Store) Append(f Finding) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.frozen {
		return ErrFrozen
	}

	s.findings = append(s.findings, f)
	return nil
}

// Annotate appends suffix to the label of every finding whose ResourceName
// equals resourceName. A suffix already applied to a finding's label is not
// applied again, so repeated enrichment steps are idempotent per distinct
// suffix. No matching finding is a no-op, not an error. Returns the number
// of findings whose label changed.
func (s *Store) Annotate(resourceName, suffix string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.frozen {
		return 0, ErrFrozen
	}

	annotated := 0
	for i := range s.findings {
		if s.findings[i].ResourceName != resourceName {
			continue
		}
		if hasSuffixToken(s.findings[i].Label, suffix) {
			continue
		}
		s.findings[i].Label = s.findings[i].Label + " " + suffix
		annotated++
	}

	return annotated, nil
}

// hasSuffixToken reports whether suffix already appears in label as a
// complete space-delimited token. Suffixes are always appended with a
// leading space, so matching on token boundaries keeps a suffix that is
// a prefix of another (e.g. "(Network: Allow)" vs "(Network: Allow All)")
// from being mistaken for already applied.
func hasSuffixToken(label, suffix string) bool {
	return strings.Contains(" "+label+" ", " "+suffix+" ")
}

// Findings returns a copy of the accumulated findings in append order.
func (s *Store) Findings() []Finding {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Finding, len(s.findings))
	copy(out, s.findings)
	return out
}

// Len returns the total finding count (the endpoint counter).
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.findings)
}

// DistinctResources returns the count of distinct ResourceName values
// (the resource counter). Each ResourceName has at least one finding, so
// this is always <= Len.
func (s *Store) DistinctResources() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{}, len(s.findings))
	for i := range s.findings {
		seen[s.findings[i].ResourceName] = struct{}{}
	}
	return len(seen)
}

// Freeze marks the store read-only. Called by the orchestrator once the
// subscription's scan completes, before the store is handed to the
// aggregator.
func (s *Store) Freeze() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.frozen = true
}
