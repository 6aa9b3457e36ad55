// Package version handles version checks and update notifications.
package version

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/reapkit/git-reap/internal/config"
)

const (
	// ReleaseURL is the endpoint queried for the latest release.
	ReleaseURL = "https://api.github.com/repos/reapkit/git-reap/releases/latest"
	// checkInterval is how long a check result is trusted before
	// querying again.
	checkInterval = 24 * time.Hour
)

// githubRelease is the subset of the GitHub release response we use.
type githubRelease struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// Check reports whether a newer release exists. Results are cached in
// the config file for a day; network and API errors are swallowed so
// a check can never break a run. When a fresh query happens, the
// updated check time and latest version are saved back to the config.
func Check(ctx context.Context, currentVersion string, cfg *config.Config) (hasUpdate bool, latest string, url string) {
	now := time.Now()

	if now.Unix()-cfg.LastVersionCheck < int64(checkInterval.Seconds()) {
		if newer(currentVersion, cfg.LatestKnownVersion) {
			return true, cfg.LatestKnownVersion, ReleaseURL
		}
		return false, "", ""
	}

	client := &http.Client{Timeout: 5 * time.Second}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ReleaseURL, nil)
	if err != nil {
		return false, "", ""
	}
	req.Header.Set("User-Agent", "git-reap/"+currentVersion)

	resp, err := client.Do(req)
	if err != nil {
		return false, "", ""
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return false, "", ""
	}

	var release githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return false, "", ""
	}

	cfg.LastVersionCheck = now.Unix()
	cfg.LatestKnownVersion = release.TagName
	if _, err := config.SaveConfig(*cfg, ""); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to save version check info: %v\n", err)
	}

	if newer(currentVersion, release.TagName) {
		return true, release.TagName, release.HTMLURL
	}
	return false, "", ""
}

// newer compares versions as plain strings after stripping a leading
// 'v'. Good enough for tags of the form vX.Y.Z.
func newer(current, candidate string) bool {
	if candidate == "" {
		return false
	}
	return strings.TrimPrefix(candidate, "v") > strings.TrimPrefix(current, "v")
}

// ShowUpdateNotification prints a short notice about an available
// release.
func ShowUpdateNotification(currentVersion, latestVersion, releaseURL string) {
	fmt.Fprintf(os.Stderr, "\nA newer git-reap release is available: %s (you have %s)\n", latestVersion, currentVersion)
	fmt.Fprintf(os.Stderr, "Update: go install github.com/reapkit/git-reap/cmd/git-reap@%s\n", latestVersion)
	if releaseURL != "" {
		fmt.Fprintf(os.Stderr, "Release details: %s\n\n", releaseURL)
	}
}
