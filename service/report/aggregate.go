// Package report derives the hierarchical, render-ready view from the
// per-subscription finding stores.
package report

// Build groups each subscription's findings by resource group, then by
// resource kind, preserving first-seen order at both levels and append
// order within each (group, kind) pair. No resorting happens anywhere:
// insertion order reflects discovery order, which is meaningful (base
// classifications precede their enrichment suffixes).
//
// Build is pure; the same inputs always produce the identical structure.
func Build(inputs []Input) *Report {
	r := &Report{}

	for _, in := range inputs {
		section := SubscriptionSection{
			SubscriptionID:   in.SubscriptionID,
			SubscriptionName: in.SubscriptionName,
			TenantID:         in.TenantID,
			TenantName:       in.TenantName,
			ResourceCount:    in.ResourceCount,
			EndpointCount:    in.EndpointCount,
		}

		groupIndex := map[string]int{}
		kindIndex := map[string]map[string]int{}

		for _, f := range in.Findings {
			gi, ok := groupIndex[f.ResourceGroup]
			if !ok {
				gi = len(section.Groups)
				groupIndex[f.ResourceGroup] = gi
				kindIndex[f.ResourceGroup] = map[string]int{}
				section.Groups = append(section.Groups, GroupSection{Name: f.ResourceGroup})
			}

			ki, ok := kindIndex[f.ResourceGroup][f.ResourceKind]
			if !ok {
				ki = len(section.Groups[gi].Kinds)
				kindIndex[f.ResourceGroup][f.ResourceKind] = ki
				section.Groups[gi].Kinds = append(section.Groups[gi].Kinds, KindSection{ResourceKind: f.ResourceKind})
			}

			section.Groups[gi].Kinds[ki].Findings = append(section.Groups[gi].Kinds[ki].Findings, f)
		}

		r.Subscriptions = append(r.Subscriptions, section)
		r.TotalResources += in.ResourceCount
		r.TotalEndpoints += in.EndpointCount
	}

	return r
}
