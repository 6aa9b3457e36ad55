// Package gitcmd provides functions for interacting with the git
// command-line tool.
package gitcmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/reapkit/git-reap/internal/types"
)

// DeleteBranches force-deletes the named local branches in order.
// Force delete ('git branch -D') is deliberate: merge status was
// established by the scan, but no lock covers the read-then-act
// window, so git's own merged-check ('-d') could spuriously refuse.
// A merged branch's commits stay reachable from trunk either way.
//
// One failed deletion never stops the loop; each branch gets its own
// DeleteOutcome. In dry-run mode no command is issued and every
// outcome records what would have run.
func DeleteBranches(ctx context.Context, names []string, dryRun bool) []types.DeleteOutcome {
	outcomes := make([]types.DeleteOutcome, 0, len(names))

	for _, name := range names {
		outcome := types.DeleteOutcome{
			BranchName: name,
			Cmd:        fmt.Sprintf("git branch -D %s", name),
		}

		if dryRun {
			outcome.Success = true
			outcome.Message = fmt.Sprintf("dry-run: would execute: %s", outcome.Cmd)
			outcomes = append(outcomes, outcome)
			continue
		}

		_, err := RunGitCommand(ctx, "branch", "-D", name)
		if err != nil {
			outcome.Success = false
			// Surface just the stderr portion when present; the full
			// wrapped error is noisy in a per-branch diagnostic.
			errMsg := err.Error()
			if strings.Contains(errMsg, "stderr:") {
				parts := strings.SplitN(errMsg, "stderr:", 2)
				if len(parts) > 1 && strings.TrimSpace(parts[1]) != "" {
					errMsg = strings.TrimSpace(parts[1])
				}
			}
			outcome.Message = fmt.Sprintf("failed: %s", errMsg)
		} else {
			outcome.Success = true
			outcome.Message = "deleted"
		}
		outcomes = append(outcomes, outcome)
	}

	return outcomes
}
