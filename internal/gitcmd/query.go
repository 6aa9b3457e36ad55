package gitcmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// CommitTimeLayout is the fixed textual format git emits for %ci
// (committer date, ISO-8601-like): "2006-01-02 15:04:05 -0700".
const CommitTimeLayout = "2006-01-02 15:04:05 -0700"

// IsInGitRepo checks whether the current directory is inside a git
// working tree. A failing command is the expected "not a repo" case
// and is reported as false, not as an error.
func IsInGitRepo(ctx context.Context) (bool, error) {
	output, err := RunGitCommand(ctx, "rev-parse", "--is-inside-work-tree")
	if err != nil {
		return false, nil
	}
	return output == "true", nil
}

// ListLocalBranches returns the short names of all local branches.
// Remote-tracking refs are excluded by construction (refs/heads only).
func ListLocalBranches(ctx context.Context) ([]string, error) {
	args := []string{"for-each-ref", "refs/heads/", "--format=%(refname:short)"}
	output, err := RunGitCommand(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list local branches: %w", err)
	}

	output = strings.TrimSpace(output)
	if output == "" {
		return []string{}, nil
	}

	var names []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			names = append(names, line)
		}
	}
	return names, nil
}

// TipCommit resolves the short hash of the branch tip.
func TipCommit(ctx context.Context, branch string) (string, error) {
	if branch == "" {
		return "", fmt.Errorf("branch name cannot be empty")
	}
	hash, err := RunGitCommand(ctx, "rev-parse", "--short", branch)
	if err != nil {
		return "", fmt.Errorf("failed to resolve tip of branch %q: %w", branch, err)
	}
	if hash == "" {
		return "", fmt.Errorf("no hash returned for branch %q (does it exist?)", branch)
	}
	return hash, nil
}

// TipCommitTime resolves the committer timestamp of the branch tip,
// parsed from the fixed %ci format.
func TipCommitTime(ctx context.Context, branch string) (time.Time, error) {
	if branch == "" {
		return time.Time{}, fmt.Errorf("branch name cannot be empty")
	}
	output, err := RunGitCommand(ctx, "show", "-s", "--format=%ci", branch)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get tip timestamp for branch %q: %w", branch, err)
	}
	// git show may prepend blank lines for some objects; take the last
	// non-empty line, which carries the date.
	var dateStr string
	for _, line := range strings.Split(output, "\n") {
		if s := strings.TrimSpace(line); s != "" {
			dateStr = s
		}
	}
	t, err := time.Parse(CommitTimeLayout, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse tip timestamp %q for branch %q: %w", dateStr, branch, err)
	}
	return t, nil
}

// MergedBranchNames returns the names listed by 'git branch --merged
// <trunk>'. The current-branch marker ('* ') and worktree marker
// ('+ ') are stripped.
func MergedBranchNames(ctx context.Context, trunk string) ([]string, error) {
	if trunk == "" {
		return nil, fmt.Errorf("trunk branch name cannot be empty")
	}
	output, err := RunGitCommand(ctx, "branch", "--merged", trunk)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches merged into %q: %w", trunk, err)
	}

	var names []string
	for _, line := range strings.Split(output, "\n") {
		name := strings.TrimSpace(line)
		name = strings.TrimPrefix(name, "* ")
		name = strings.TrimPrefix(name, "+ ")
		if name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

// BranchMerged reports whether branch appears in the merged-name list.
// The default is an exact, whole-name match. Legacy mode instead
// accepts any listed name that ends with the branch name; that is how
// an earlier incarnation of this check behaved, and it can yield false
// positives when one branch name is a suffix of another (fix vs
// hotfix), so it must be asked for explicitly.
func BranchMerged(mergedNames []string, branch string, legacySuffixMatch bool) bool {
	for _, name := range mergedNames {
		if legacySuffixMatch {
			if strings.HasSuffix(name, branch) {
				return true
			}
			continue
		}
		if name == branch {
			return true
		}
	}
	return false
}

// CommitsAhead counts commits reachable from branch but not from
// trunk, via 'git rev-list --count trunk..branch'.
func CommitsAhead(ctx context.Context, trunk, branch string) (int, error) {
	if trunk == "" || branch == "" {
		return 0, fmt.Errorf("trunk and branch names cannot be empty for ahead count")
	}
	output, err := RunGitCommand(ctx, "rev-list", "--count", trunk+".."+branch)
	if err != nil {
		return 0, fmt.Errorf("failed to count commits ahead for branch %q: %w", branch, err)
	}
	n, err := strconv.Atoi(strings.TrimSpace(output))
	if err != nil {
		return 0, fmt.Errorf("non-numeric ahead count %q for branch %q: %w", output, branch, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative ahead count %d for branch %q", n, branch)
	}
	return n, nil
}
