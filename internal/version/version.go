// Package version provides version checking and self-update functionality
// for pubsweep.
package version

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// GitHubRepo is the GitHub repository for pubsweep.
const GitHubRepo = "fluttertools/pubsweep"

// ReleaseAPIURL is the GitHub API URL for latest release.
const ReleaseAPIURL = "https://api.github.com/repos/%s/releases/latest"

// Info contains version information about pubsweep.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	GoVer   string `json:"go_version"`
	OS      string `json:"os"`
	Arch    string `json:"arch"`
}

// NewInfo creates a new Info from the build variables.
func NewInfo(version, commit, date string) *Info {
	return &Info{
		Version: version,
		Commit:  commit,
		Date:    date,
		GoVer:   runtime.Version(),
		OS:      runtime.GOOS,
		Arch:    runtime.GOARCH,
	}
}

// String returns a formatted version string.
func (i *Info) String() string {
	return fmt.Sprintf("pubsweep %s (commit: %s, built: %s)", i.Version, i.Commit, i.Date)
}

// FullString returns a detailed version string.
func (i *Info) FullString() string {
	return fmt.Sprintf(`pubsweep %s
  Commit:   %s
  Built:    %s
  Go:       %s
  OS/Arch:  %s/%s`, i.Version, i.Commit, i.Date, i.GoVer, i.OS, i.Arch)
}

// Release represents a GitHub release.
type Release struct {
	TagName     string `json:"tag_name"`
	Name        string `json:"name"`
	Body        string `json:"body"`
	PublishedAt string `json:"published_at"`
	HTMLURL     string `json:"html_url"`
}

// Checker checks for new versions.
type Checker struct {
	HTTPClient *http.Client
	Repo       string
}

// NewChecker creates a new version checker.
func NewChecker() *Checker {
	return &Checker{
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		Repo:       GitHubRepo,
	}
}

// GetLatestRelease fetches the latest release from GitHub.
func (c *Checker) GetLatestRelease(ctx context.Context) (*Release, error) {
	url := fmt.Sprintf(ReleaseAPIURL, c.Repo)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "pubsweep-version-checker")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("GitHub API returned %d: %s", resp.StatusCode, string(body))
	}

	var release Release
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("failed to decode release: %w", err)
	}

	return &release, nil
}

// CheckForUpdate compares current version with latest release.
// Returns the release if an update is available, nil if current.
func (c *Checker) CheckForUpdate(ctx context.Context, currentVersion string) (*Release, error) {
	release, err := c.GetLatestRelease(ctx)
	if err != nil {
		return nil, err
	}

	latestVersion := strings.TrimPrefix(release.TagName, "v")
	currentVersion = strings.TrimPrefix(currentVersion, "v")

	if CompareVersions(latestVersion, currentVersion) > 0 {
		return release, nil
	}

	return nil, nil
}

// CompareVersions compares two semantic version strings.
// Returns: 1 if a > b, -1 if a < b, 0 if equal.
func CompareVersions(a, b string) int {
	aParts := parseVersion(a)
	bParts := parseVersion(b)

	for i := 0; i < 3; i++ {
		if aParts[i] > bParts[i] {
			return 1
		}
		if aParts[i] < bParts[i] {
			return -1
		}
	}
	return 0
}

// parseVersion parses a version string into major, minor, patch integers.
func parseVersion(v string) [3]int {
	v = strings.TrimPrefix(v, "v")
	parts := strings.Split(v, ".")
	var result [3]int
	for i := 0; i < 3 && i < len(parts); i++ {
		// Remove any pre-release suffix (e.g., "-rc1")
		part := strings.Split(parts[i], "-")[0]
		fmt.Sscanf(part, "%d", &result[i])
	}
	return result
}

// CheckState records when the last background update check ran, so the CLI
// pings the release API at most once per CheckInterval instead of on every
// invocation.
type CheckState struct {
	LastCheck     time.Time `json:"last_check"`
	LatestKnown   string    `json:"latest_known,omitempty"`
	NotifiedAbout string    `json:"notified_about,omitempty"`
}

// CheckStatePath is the path to the state file within .pubsweep.
const CheckStatePath = ".pubsweep/update-check.json"

// CheckInterval is the minimum time between background release checks.
const CheckInterval = 24 * time.Hour

// LoadCheckState loads the update-check state from the project directory.
func LoadCheckState(projectDir string) (*CheckState, error) {
	path := filepath.Join(projectDir, CheckStatePath)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var st CheckState
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("failed to parse update-check.json: %w", err)
	}

	return &st, nil
}

// SaveCheckState saves the update-check state to the project directory.
func SaveCheckState(projectDir string, st *CheckState) error {
	path := filepath.Join(projectDir, CheckStatePath)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal update-check.json: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}

// ShouldCheck reports whether enough time has passed since the last
// background check. A missing or unreadable state file means check now.
func ShouldCheck(projectDir string) bool {
	st, err := LoadCheckState(projectDir)
	if err != nil {
		return true
	}
	return time.Since(st.LastCheck) >= CheckInterval
}

// RecordCheck updates the state file after a background check.
func RecordCheck(projectDir, latest string) error {
	st, err := LoadCheckState(projectDir)
	if err != nil {
		st = &CheckState{}
	}
	st.LastCheck = time.Now()
	if latest != "" {
		st.LatestKnown = latest
	}
	return SaveCheckState(projectDir, st)
}
