package extract

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

//go:embed extract_all.py
var extractScript []byte

// DefaultVersion is the Blender install used when none is configured.
const DefaultVersion = "blender-5"

// ErrBlenderNotFound indicates the configured Blender executable does not
// exist. It is a configuration error and is raised before any scan attempt.
var ErrBlenderNotFound = fmt.Errorf("blender executable not found")

// BaseDir returns the directory holding versioned Blender installs,
// overridable via BLENDER_BASE_DIR.
func BaseDir() string {
	if dir := os.Getenv("BLENDER_BASE_DIR"); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, "Application", "blender")
}

// ListVersions returns the installed Blender versions (directory entries
// named "blender-*") sorted by name. A missing base dir yields nil.
func ListVersions() []string {
	entries, err := os.ReadDir(BaseDir())
	if err != nil {
		return nil
	}
	var versions []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "blender-") {
			versions = append(versions, e.Name())
		}
	}
	sort.Strings(versions)
	return versions
}

// Runner invokes Blender headlessly to export the contents of a .blend file
// as a line-oriented text report.
type Runner struct {
	BlenderPath   string
	DisableAddons bool

	// Timeout bounds the Blender subprocess; zero means no limit.
	Timeout time.Duration
}

// NewRunner resolves the Blender executable for the given version name and
// fails fast when it is missing, listing any installed alternatives.
// An explicit non-empty path overrides version resolution.
func NewRunner(version, path string, disableAddons bool) (*Runner, error) {
	if path == "" {
		if version == "" {
			version = DefaultVersion
		}
		path = filepath.Join(BaseDir(), version)
	}
	if _, err := os.Stat(path); err != nil {
		msg := fmt.Sprintf("%s (looked at %s)", ErrBlenderNotFound, path)
		if versions := ListVersions(); len(versions) > 0 {
			msg += "\navailable versions: " + strings.Join(versions, ", ")
		} else {
			msg += "\nno Blender installs found under " + BaseDir() +
				" (set BLENDER_BASE_DIR or pass an explicit path)"
		}
		return nil, fmt.Errorf("%s: %w", msg, ErrBlenderNotFound)
	}
	return &Runner{BlenderPath: path, DisableAddons: disableAddons}, nil
}

// Extract runs Blender on the target file and returns the combined
// stdout/stderr text for parsing. A non-zero Blender exit is not an error
// here: whatever output was produced is still parsed, and an unparseable
// report simply degrades to empty extracted data.
func (r *Runner) Extract(blendFile string) (string, error) {
	script, err := r.writeScript()
	if err != nil {
		return "", err
	}
	defer os.Remove(script)

	args := []string{"--background"}
	if r.DisableAddons {
		args = append(args, "--factory-startup")
	}
	args = append(args, blendFile, "--python", script)

	ctx := context.Background()
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, r.BlenderPath, args...)
	var combined bytes.Buffer
	cmd.Stdout = &combined
	cmd.Stderr = &combined
	runErr := cmd.Run()

	if ctx.Err() == context.DeadlineExceeded {
		return combined.String(), fmt.Errorf("blender extraction timed out after %s", r.Timeout)
	}
	_ = runErr // abnormal exit degrades to whatever was printed

	return combined.String(), nil
}

// writeScript materializes the embedded bpy extraction script so Blender can
// execute it regardless of where the scanner binary lives.
func (r *Runner) writeScript() (string, error) {
	f, err := os.CreateTemp("", "blendscan-extract-*.py")
	if err != nil {
		return "", fmt.Errorf("failed to write extraction script: %w", err)
	}
	if _, err := f.Write(extractScript); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write extraction script: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write extraction script: %w", err)
	}
	return f.Name(), nil
}
