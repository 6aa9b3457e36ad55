// Package classify turns inspected branch records into a scan summary.
package classify

import (
	"github.com/reapkit/git-reap/internal/types"
)

// Stale filters records strictly older than the threshold. A branch
// whose age equals the threshold exactly is kept one more cycle.
// Pure; input order is preserved.
func Stale(records []types.BranchRecord, thresholdDays int) []types.BranchRecord {
	stale := make([]types.BranchRecord, 0, len(records))
	for _, record := range records {
		if record.AgeDays > thresholdDays {
			stale = append(stale, record)
		}
	}
	return stale
}

// Partition applies the decision table to the stale set, first match
// wins per branch:
//
//	protected name  -> Protected (never deletable)
//	merged          -> Deletable
//	otherwise       -> Unmerged, keeping ahead count and tip time
//
// Protected names are normally excluded before inspection, so the
// Protected bucket only fills if a caller feeds them through anyway;
// the guard stays because this is the last gate before deletion.
// The returned summary is a fresh value; nothing here is shared or
// mutated afterwards.
func Partition(stale []types.BranchRecord, protected map[string]bool) types.ClassificationSummary {
	summary := types.ClassificationSummary{
		TotalStale: len(stale),
		Deletable:  []string{},
		Unmerged:   []types.UnmergedBranch{},
		Protected:  []string{},
	}

	for _, record := range stale {
		switch {
		case protected[record.Name]:
			summary.Protected = append(summary.Protected, record.Name)
		case record.IsMerged:
			summary.Deletable = append(summary.Deletable, record.Name)
		default:
			summary.Unmerged = append(summary.Unmerged, types.UnmergedBranch{
				Name:           record.Name,
				CommitsAhead:   record.CommitsAhead,
				LastCommitTime: record.LastCommitTime,
			})
		}
	}

	return summary
}
