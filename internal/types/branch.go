package types

import "time"

// UnknownCommit is the sentinel tip identity recorded when a branch's
// commit cannot be resolved (e.g. it vanished mid-scan).
const UnknownCommit = "unknown"

// BranchRecord holds everything the scan learned about one local branch.
// Records are rebuilt from live git state on every run; nothing persists.
type BranchRecord struct {
	Name           string
	CommitID       string // short hash of the branch tip
	LastCommitTime time.Time
	IsMerged       bool
	CommitsAhead   int // commits reachable from the branch but not from trunk
	AgeDays        int // whole days since the tip commit, computed once per scan
}

// UnmergedBranch is the detail kept for a stale branch that was skipped
// because it still carries commits the trunk lacks.
type UnmergedBranch struct {
	Name           string
	CommitsAhead   int
	LastCommitTime time.Time
}

// ClassificationSummary is the materialized result of one scan. It is
// built in a single pass and never mutated afterwards; report rendering
// takes it as its sole input.
type ClassificationSummary struct {
	TotalStale int
	Deletable  []string
	Unmerged   []UnmergedBranch
	Protected  []string
}

// DeleteOutcome holds the result of one delete attempt.
type DeleteOutcome struct {
	BranchName string
	Success    bool
	Message    string // success message or error details
	Cmd        string // the command attempted (or simulated in dry-run)
}

// SweepResult pairs a scan's classification with what actually happened
// to the deletable branches.
type SweepResult struct {
	Summary  ClassificationSummary
	Deleted  []string // names actually removed this run, in attempt order
	Outcomes []DeleteOutcome
}
