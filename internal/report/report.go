// Package report renders a scan's classification into the audit
// document. Rendering is pure: identical inputs produce byte-identical
// output, and nothing here touches git or mutates the summary.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/reapkit/git-reap/internal/gitcmd"
	"github.com/reapkit/git-reap/internal/types"
)

const (
	headerRule    = "======================================================"
	closingMarker = "=== end of report ==="
)

// Render produces the audit report text. deleted is the list of names
// actually removed this run; in dry-run mode it is ignored and the
// deletable set is shown as "would delete" instead.
//
// Section order is fixed: header, summary counts, then one itemized
// section per non-empty bucket, then the closing marker.
func Render(
	summary types.ClassificationSummary,
	deleted []string,
	dryRun bool,
	thresholdDays int,
	generatedAt time.Time,
) string {
	var b strings.Builder

	mode := "live"
	if dryRun {
		mode = "dry-run"
	}

	b.WriteString(headerRule + "\n")
	b.WriteString("git-reap branch cleanup report\n")
	b.WriteString(headerRule + "\n")
	fmt.Fprintf(&b, "Mode:      %s\n", mode)
	fmt.Fprintf(&b, "Threshold: %d days\n", thresholdDays)
	fmt.Fprintf(&b, "Generated: %s\n", generatedAt.UTC().Format(time.RFC3339))
	b.WriteString("\n")

	deletedNames := deleted
	deletedLabel := "Deleted"
	deletedSection := "Deleted branches"
	if dryRun {
		deletedNames = summary.Deletable
		deletedLabel = "Would delete"
		deletedSection = "Branches that would be deleted"
	}

	b.WriteString("Summary\n")
	fmt.Fprintf(&b, "  %-20s%d\n", "Stale branches:", summary.TotalStale)
	fmt.Fprintf(&b, "  %-20s%d\n", deletedLabel+":", len(deletedNames))
	fmt.Fprintf(&b, "  %-20s%d\n", "Unmerged, kept:", len(summary.Unmerged))
	fmt.Fprintf(&b, "  %-20s%d\n", "Protected, kept:", len(summary.Protected))

	if len(deletedNames) > 0 {
		fmt.Fprintf(&b, "\n%s\n", deletedSection)
		for _, name := range deletedNames {
			fmt.Fprintf(&b, "  - %s\n", name)
		}
	}

	if len(summary.Unmerged) > 0 {
		b.WriteString("\nUnmerged branches (kept)\n")
		for _, branch := range summary.Unmerged {
			fmt.Fprintf(&b, "  - %s: %d commit(s) ahead, last commit %s\n",
				branch.Name, branch.CommitsAhead,
				branch.LastCommitTime.Format(gitcmd.CommitTimeLayout))
		}
	}

	if len(summary.Protected) > 0 {
		b.WriteString("\nProtected branches (kept)\n")
		for _, name := range summary.Protected {
			fmt.Fprintf(&b, "  - %s\n", name)
		}
	}

	b.WriteString("\n" + closingMarker + "\n")
	return b.String()
}
