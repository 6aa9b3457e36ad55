// Package sweep runs the cleanup pass over a scan's stale branches.
package sweep

import (
	"context"
	"fmt"
	"io"

	"github.com/reapkit/git-reap/internal/classify"
	"github.com/reapkit/git-reap/internal/gitcmd"
	"github.com/reapkit/git-reap/internal/types"
)

// Options configure one cleanup pass.
type Options struct {
	DryRun    bool
	Protected map[string]bool
	Diag      io.Writer // per-branch delete failures, streamed; nil silences them
}

// Run partitions the stale set and deletes the deletable branches
// (or simulates deletion in dry-run mode). Branches are processed
// sequentially; a failed delete is reported and skipped, never fatal.
// The returned result is a fresh value holding the immutable summary,
// the names actually removed, and the ordered per-branch outcomes.
func Run(ctx context.Context, stale []types.BranchRecord, opts Options) types.SweepResult {
	summary := classify.Partition(stale, opts.Protected)

	outcomes := gitcmd.DeleteBranches(ctx, summary.Deletable, opts.DryRun)

	deleted := make([]string, 0, len(outcomes))
	for _, outcome := range outcomes {
		if opts.DryRun {
			continue // nothing was removed
		}
		if outcome.Success {
			deleted = append(deleted, outcome.BranchName)
			continue
		}
		if opts.Diag != nil {
			fmt.Fprintf(opts.Diag, "warning: could not delete branch %q: %s\n",
				outcome.BranchName, outcome.Message)
		}
	}

	return types.SweepResult{
		Summary:  summary,
		Deleted:  deleted,
		Outcomes: outcomes,
	}
}
