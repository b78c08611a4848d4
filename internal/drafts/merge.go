package drafts

import "sort"

// MergeResult reports what a merge changed.
type MergeResult struct {
	Added   int
	Skipped int
	Evicted int
	Total   int
}

// Merge appends incoming drafts whose id is not already present, orders the
// result newest first, and keeps at most limit entries. A non-positive limit
// keeps everything. Neither input slice is modified.
func Merge(existing, incoming []Draft, limit int) ([]Draft, MergeResult) {
	var result MergeResult
	seen := make(map[string]struct{}, len(existing)+len(incoming))
	merged := make([]Draft, 0, len(existing)+len(incoming))
	for _, d := range existing {
		if _, dup := seen[d.ID]; dup {
			continue
		}
		seen[d.ID] = struct{}{}
		merged = append(merged, d)
	}
	for _, d := range incoming {
		if _, dup := seen[d.ID]; dup {
			result.Skipped++
			continue
		}
		seen[d.ID] = struct{}{}
		merged = append(merged, d)
		result.Added++
	}

	SortNewestFirst(merged)
	if limit > 0 && len(merged) > limit {
		result.Evicted = len(merged) - limit
		merged = merged[:limit]
	}
	result.Total = len(merged)
	return merged, result
}

// SortNewestFirst orders drafts by created_at descending. Equal timestamps
// keep their relative order.
func SortNewestFirst(list []Draft) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
}
