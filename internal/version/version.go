// Package version reports build metadata for the dashboard binary.
package version

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"sync"
	"time"
)

// Set via -ldflags "-X" at build time. Empty values are filled from git on first use.
var (
	Version = ""
	Commit  = ""
	Date    = ""
)

const gitTimeout = 2 * time.Second

var (
	once sync.Once

	// execCommand is swapped out in tests.
	execCommand = exec.CommandContext

	buildVersion = Version
	buildCommit  = Commit
	buildDate    = Date
)

func ensureInitialized() {
	once.Do(func() {
		if Date == "" {
			Date = time.Now().Format("2006-01-02")
		}
		if Commit == "" {
			Commit = gitOutput("unknown", "describe", "--always", "--dirty")
		}
		if Version == "" {
			Version = strings.TrimPrefix(gitOutput("dev", "describe", "--tags", "--abbrev=0"), "v")
		}
	})
}

// gitOutput runs git with args and returns its trimmed stdout, or fallback on failure.
func gitOutput(fallback string, args ...string) string {
	ctx, cancel := context.WithTimeout(context.Background(), gitTimeout)
	defer cancel()

	cmd := execCommand(ctx, "git", args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return fallback
	}
	if s := strings.TrimSpace(out.String()); s != "" {
		return s
	}
	return fallback
}

// Reset restores the link-time values so the next accessor call resolves them again.
func Reset() {
	Version, Commit, Date = buildVersion, buildCommit, buildDate
	once = sync.Once{}
}

// GetVersion returns the release version, without a leading "v".
func GetVersion() string {
	ensureInitialized()
	return Version
}

// GetCommit returns the git revision the binary was built from.
func GetCommit() string {
	ensureInitialized()
	return Commit
}

// GetDate returns the build date.
func GetDate() string {
	ensureInitialized()
	return Date
}

// Info returns a one-line description for -v output and the Info tab.
func Info() string {
	ensureInitialized()
	return fmt.Sprintf("shaker-dashboard-tui %s (commit: %s, built: %s, %s/%s)",
		Version, Commit, Date, runtime.GOOS, runtime.GOARCH)
}
