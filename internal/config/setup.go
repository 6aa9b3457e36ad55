package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// FirstRunSetup interactively builds an initial configuration. It
// reads from the given reader and writes prompts to the writer so
// tests can drive it without a terminal. Empty or invalid answers
// keep the defaults. The caller is responsible for persisting the
// returned Config.
func FirstRunSetup(reader *bufio.Reader, writer io.Writer) (Config, error) {
	cfg := DefaultConfig()

	_, _ = fmt.Fprintln(writer, "Let's set up git-reap.")

	_, _ = fmt.Fprintf(writer,
		"Age threshold in days before a branch counts as stale [%d]: ", defaultAgeDays)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input != "" {
		age, err := strconv.Atoi(input)
		if err != nil || age <= 0 {
			_, _ = fmt.Fprintf(writer, "Invalid input. Using default threshold: %d days.\n", defaultAgeDays)
		} else {
			cfg.AgeDays = age
		}
	}

	_, _ = fmt.Fprintf(writer,
		"Trunk branch to check merge status against (e.g., main, master) [%s]: ",
		defaultTrunkBranch)
	input, _ = reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input != "" {
		cfg.TrunkBranch = input
	}

	_, _ = fmt.Fprintf(writer,
		"Branches to protect from deletion, comma-separated [%s]: ",
		strings.Join(defaultProtected, ","))
	input, _ = reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input != "" {
		protected := strings.Split(input, ",")
		cfg.ProtectedBranches = make([]string, 0, len(protected))
		for _, p := range protected {
			trimmed := strings.TrimSpace(p)
			if trimmed != "" {
				cfg.ProtectedBranches = append(cfg.ProtectedBranches, trimmed)
			}
		}
	}

	cfg.RebuildProtectedMap()

	_, _ = fmt.Fprintln(writer, "\nConfiguration setup complete.")
	return cfg, nil
}
