package bandit

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	semver "github.com/blang/semver/v4"
)

// minVersion is the oldest bandit release whose JSON report shape we accept.
var minVersion = semver.MustParse("1.5.0")

// FindBinary locates the bandit executable. A non-empty customPath wins and
// must exist; otherwise $PATH is searched.
func FindBinary(customPath string) (string, error) {
	if customPath != "" {
		if _, err := os.Stat(customPath); err == nil {
			return customPath, nil
		}
		return "", fmt.Errorf("custom bandit path not found: %s", customPath)
	}
	if path, err := exec.LookPath("bandit"); err == nil {
		return path, nil
	}
	return "", fmt.Errorf("bandit binary not found in PATH\n\n" +
		"To fix this:\n" +
		"  1. Install bandit: pip install bandit\n" +
		"  2. Or set bandit.binary in .blendscan.yml\n" +
		"  3. Or run without the bandit scanner (malware and privacy still apply)")
}

// IsAvailable reports whether bandit can be invoked.
func IsAvailable(customPath string) bool {
	_, err := FindBinary(customPath)
	return err == nil
}

// Version runs `bandit --version` and returns the parsed version string.
// Output looks like "bandit 1.7.5\n  python version = ...".
func Version(binaryPath string) (string, error) {
	out, err := exec.Command(binaryPath, "--version").Output()
	if err != nil {
		return "", fmt.Errorf("failed to get bandit version: %w", err)
	}
	first := strings.TrimSpace(string(out))
	if lines := strings.Split(first, "\n"); len(lines) > 0 {
		first = strings.TrimSpace(lines[0])
	}
	return strings.TrimSpace(strings.TrimPrefix(first, "bandit")), nil
}

// checkVersion rejects bandit releases older than minVersion. An
// unparseable version string is accepted: refusing to run on a cosmetic
// format change would be worse than a best-effort scan.
func checkVersion(version string) error {
	v, err := semver.ParseTolerant(version)
	if err != nil {
		return nil
	}
	if v.LT(minVersion) {
		return fmt.Errorf("bandit %s is too old (need >= %s); upgrade with: pip install -U bandit", version, minVersion)
	}
	return nil
}
