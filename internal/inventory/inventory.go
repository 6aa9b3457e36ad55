// Package inventory enumerates the local branches a scan will consider.
package inventory

import (
	"context"
	"fmt"

	"github.com/reapkit/git-reap/internal/gitcmd"
)

// Candidates returns local branch names eligible for inspection.
// Names in the protected set are dropped here, before inspection:
// protected branches are never queried further and can never enter
// the stale set. Remote-tracking refs are already excluded by the
// underlying query. Read-only.
func Candidates(ctx context.Context, protected map[string]bool) ([]string, error) {
	names, err := gitcmd.ListLocalBranches(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate candidate branches: %w", err)
	}

	candidates := make([]string, 0, len(names))
	for _, name := range names {
		if protected[name] {
			continue
		}
		candidates = append(candidates, name)
	}
	return candidates, nil
}
