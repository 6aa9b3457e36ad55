package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/reapkit/git-reap/internal/classify"
	"github.com/reapkit/git-reap/internal/config"
	"github.com/reapkit/git-reap/internal/gitcmd"
	"github.com/reapkit/git-reap/internal/inspect"
	"github.com/reapkit/git-reap/internal/inventory"
	"github.com/reapkit/git-reap/internal/report"
	"github.com/reapkit/git-reap/internal/sweep"
	"github.com/reapkit/git-reap/internal/tui"
	"github.com/reapkit/git-reap/internal/types"
	"github.com/reapkit/git-reap/internal/version"
)

// Exit codes. Callers rely on 1 to assert "nothing was actually
// changed" after a dry run; setup failures use a distinct code.
const (
	exitOK           = 0
	exitDryRun       = 1
	exitSetupFailure = 2
)

const appVersion = "0.1.0"

var appConfig config.Config
var isDebug bool

func logDebugf(format string, a ...any) {
	if isDebug {
		fmt.Printf(format, a...)
	}
}

func logDebugln(a ...any) {
	if isDebug {
		fmt.Println(a...)
	}
}

var rootCmd = &cobra.Command{
	Use:     "git-reap",
	Version: appVersion,
	Short:   "git-reap removes stale merged branches and reports what it did",
	Long: `git-reap scans the local branches of the current Git repository,
classifies every branch older than the age threshold as deletable,
unmerged, or protected, force-deletes the deletable ones (unless
running with --dry-run), and prints an audit report.

Protected branches are never inspected or deleted. Unmerged stale
branches are reported but preserved. Exit code 0 means a live run
completed; 1 means a dry run completed without touching anything.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		isDebug, _ = cmd.Flags().GetBool("debug")

		customConfigPath, _ := cmd.Flags().GetString("config")
		logDebugf("Custom config path flag: %q\n", customConfigPath)

		var err error
		appConfig, err = config.LoadConfig(customConfigPath)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				// No config file is a normal first run; built-in
				// defaults apply. 'git-reap setup' creates one.
				logDebugln("No configuration file found, using defaults.")
			} else {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
		}

		// Flag overrides win over the loaded file.
		if ageOverride, _ := cmd.Flags().GetInt("age"); ageOverride > 0 {
			appConfig.AgeDays = ageOverride
		}
		if trunkOverride, _ := cmd.Flags().GetString("trunk"); trunkOverride != "" {
			appConfig.TrunkBranch = trunkOverride
		}
		if protectedOverride, _ := cmd.Flags().GetStringSlice("protected"); len(protectedOverride) > 0 {
			appConfig.ProtectedBranches = protectedOverride
		}
		if legacyMatch, _ := cmd.Flags().GetBool("legacy-merge-match"); legacyMatch {
			appConfig.LegacyMergeMatch = true
		}
		appConfig.RebuildProtectedMap()

		return nil
	},
	Run: runScan,
}

func runScan(cmd *cobra.Command, args []string) {
	logDebugf("Configuration: AgeDays=%d Trunk=%s Protected=%v LegacyMergeMatch=%v\n",
		appConfig.AgeDays, appConfig.TrunkBranch, appConfig.ProtectedBranches, appConfig.LegacyMergeMatch)

	ctx := context.Background()
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	interactive, _ := cmd.Flags().GetBool("interactive")
	outputPath, _ := cmd.Flags().GetString("output")

	// Setup phase: everything here is fatal, nothing has been
	// classified yet and no report is produced.
	inGitRepo, err := gitcmd.IsInGitRepo(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error checking Git repository status: %v\n", err)
		os.Exit(exitSetupFailure)
	}
	if !inGitRepo {
		fmt.Fprintln(os.Stderr, "Error: not inside a Git repository.")
		os.Exit(exitSetupFailure)
	}

	if noCheck, _ := cmd.Flags().GetBool("no-version-check"); !noCheck {
		if hasUpdate, latest, url := version.Check(ctx, appVersion, &appConfig); hasUpdate {
			version.ShowUpdateNotification(appVersion, latest, url)
		}
	}

	logDebugln("Enumerating candidate branches...")
	candidates, err := inventory.Candidates(ctx, appConfig.ProtectedBranchMap)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error enumerating branches: %v\n", err)
		os.Exit(exitSetupFailure)
	}
	logDebugf("-> %d candidate branch(es) after protected-set exclusion.\n", len(candidates))

	now := time.Now()
	records := inspect.Branches(ctx, candidates, inspect.Options{
		Trunk:             appConfig.TrunkBranch,
		LegacySuffixMatch: appConfig.LegacyMergeMatch,
		Now:               now,
		Diag:              os.Stderr,
	})

	stale := classify.Stale(records, appConfig.AgeDays)
	logDebugf("-> %d stale branch(es) past the %d-day threshold.\n", len(stale), appConfig.AgeDays)

	var result types.SweepResult
	if interactive && !dryRun {
		result = runInteractive(ctx, stale)
	} else {
		result = sweep.Run(ctx, stale, sweep.Options{
			DryRun:    dryRun,
			Protected: appConfig.ProtectedBranchMap,
			Diag:      os.Stderr,
		})
	}

	text := report.Render(result.Summary, result.Deleted, dryRun, appConfig.AgeDays, now)
	fmt.Print(text)

	if outputPath != "" {
		if err := os.WriteFile(outputPath, []byte(text), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to write report to %q: %v\n", outputPath, err)
		} else {
			logDebugf("Report written to %q\n", outputPath)
		}
	}

	if dryRun {
		os.Exit(exitDryRun)
	}
}

// runInteractive narrows the deletable set through the confirmation
// TUI before deleting. The classification itself is unchanged; only
// which deletable branches actually get removed is up to the user.
func runInteractive(ctx context.Context, stale []types.BranchRecord) types.SweepResult {
	summary := classify.Partition(stale, appConfig.ProtectedBranchMap)

	byName := make(map[string]types.BranchRecord, len(stale))
	for _, record := range stale {
		byName[record.Name] = record
	}
	deletable := make([]types.BranchRecord, 0, len(summary.Deletable))
	for _, name := range summary.Deletable {
		deletable = append(deletable, byName[name])
	}

	result := types.SweepResult{Summary: summary, Deleted: []string{}}
	if len(deletable) == 0 {
		return result
	}

	final, err := tea.NewProgram(tui.InitialModel(ctx, deletable)).Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running interactive mode: %v\n", err)
		return result
	}

	model, ok := final.(tui.Model)
	if !ok || model.Quit {
		return result
	}
	result.Outcomes = model.Outcomes
	for _, outcome := range model.Outcomes {
		if outcome.Success {
			result.Deleted = append(result.Deleted, outcome.BranchName)
		} else {
			fmt.Fprintf(os.Stderr, "warning: could not delete branch %q: %s\n",
				outcome.BranchName, outcome.Message)
		}
	}
	return result
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactively create the git-reap configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		reader := bufio.NewReader(os.Stdin)
		cfg, err := config.FirstRunSetup(reader, os.Stdout)
		if err != nil {
			return fmt.Errorf("setup failed: %w", err)
		}

		customConfigPath, _ := cmd.Flags().GetString("config")
		savedPath, err := config.SaveConfig(cfg, customConfigPath)
		if err != nil {
			return fmt.Errorf("failed to save configuration: %w", err)
		}
		fmt.Printf("Configuration saved to %q\n", savedPath)
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitSetupFailure)
	}
	os.Exit(exitOK)
}

func init() {
	rootCmd.AddCommand(setupCmd)

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging.")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to custom configuration file (default: ~/.config/git-reap/config.toml).")
	rootCmd.Flags().Bool("dry-run", false, "Classify and report, but delete nothing; exits with code 1.")
	rootCmd.Flags().Int("age", 0, "Override config: age threshold in days before a branch counts as stale (0 uses config default).")
	rootCmd.Flags().StringP("output", "o", "", "Also write the report to this path.")
	rootCmd.Flags().String("trunk", "", "Override config: trunk branch to check merge status against (empty uses config default).")
	rootCmd.Flags().StringSlice("protected", []string{}, "Override config: comma-separated list of protected branch names.")
	rootCmd.Flags().Bool("legacy-merge-match", false, "Match merged branches by name suffix instead of exact name (legacy behavior, may over-match).")
	rootCmd.Flags().BoolP("interactive", "i", false, "Pick which deletable branches to remove in a terminal UI (live runs only).")
	rootCmd.Flags().Bool("no-version-check", false, "Skip the daily check for a newer release.")
}
