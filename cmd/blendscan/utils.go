package blendscan

import (
	"os"

	"golang.org/x/term"
)

// pickString returns the flag value when set, otherwise the first non-nil
// config value. Precedence: CLI flag, local config, global config.
func pickString(flag string, local, global *string) string {
	if flag != "" {
		return flag
	}
	if local != nil && *local != "" {
		return *local
	}
	if global != nil && *global != "" {
		return *global
	}
	return ""
}

func pickBool(flag bool, local, global *bool) bool {
	if flag {
		return true
	}
	if local != nil {
		return *local
	}
	if global != nil {
		return *global
	}
	return false
}

// stdoutIsTerminal reports whether stdout is an interactive terminal.
// Piped output drops color so reports stay grep-friendly.
func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
