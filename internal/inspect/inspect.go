// Package inspect resolves per-branch facts from git, degrading every
// query failure to a safe default instead of propagating it.
package inspect

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/reapkit/git-reap/internal/gitcmd"
	"github.com/reapkit/git-reap/internal/types"
)

// Options configure a branch inspection pass.
type Options struct {
	Trunk             string
	LegacySuffixMatch bool // merged-set membership by suffix instead of exact name
	Now               time.Time
	Diag              io.Writer // per-branch warnings, streamed as they occur; nil silences them
}

func (o Options) warnf(format string, a ...any) {
	if o.Diag != nil {
		fmt.Fprintf(o.Diag, format, a...)
	}
}

// Branch builds the record for a single branch via independent
// read-only queries. It never returns an error: every failure
// degrades toward "do not delete".
//
//   - unresolvable tip      -> sentinel "unknown" identity
//   - unparsable timestamp  -> "now" (the branch looks freshest, so it
//     cannot cross the age threshold by accident)
//   - failed merge check    -> not merged
//   - failed ahead count    -> zero
func Branch(ctx context.Context, name string, opts Options) types.BranchRecord {
	record := types.BranchRecord{Name: name}

	commitID, err := gitcmd.TipCommit(ctx, name)
	if err != nil {
		opts.warnf("warning: branch %q: %v\n", name, err)
		commitID = types.UnknownCommit
	}
	record.CommitID = commitID

	commitTime, err := gitcmd.TipCommitTime(ctx, name)
	if err != nil {
		opts.warnf("warning: branch %q: %v (treating as current)\n", name, err)
		commitTime = opts.Now
	}
	record.LastCommitTime = commitTime
	record.AgeDays = ageDays(opts.Now, commitTime)

	// Merge status and ahead count are separate queries on purpose;
	// they can disagree (branch reset or amended after merge) and the
	// classifier must tolerate that, so neither is derived from the
	// other here.
	merged, err := gitcmd.MergedBranchNames(ctx, opts.Trunk)
	if err != nil {
		opts.warnf("warning: branch %q: %v (treating as not merged)\n", name, err)
		record.IsMerged = false
	} else {
		record.IsMerged = gitcmd.BranchMerged(merged, name, opts.LegacySuffixMatch)
	}

	ahead, err := gitcmd.CommitsAhead(ctx, opts.Trunk, name)
	if err != nil {
		opts.warnf("warning: branch %q: %v (treating as zero ahead)\n", name, err)
		ahead = 0
	}
	record.CommitsAhead = ahead

	return record
}

// Branches inspects every candidate in order, one branch at a time.
func Branches(ctx context.Context, names []string, opts Options) []types.BranchRecord {
	records := make([]types.BranchRecord, 0, len(names))
	for _, name := range names {
		records = append(records, Branch(ctx, name, opts))
	}
	return records
}

// ageDays is the whole-day age of a commit. A future timestamp (clock
// skew) clamps to zero rather than going negative.
func ageDays(now, commitTime time.Time) int {
	days := int(now.Sub(commitTime).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
