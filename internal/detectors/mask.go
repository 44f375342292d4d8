package detectors

import "regexp"

// maskToken replaces the variable suffix of recognized secret shapes.
const maskToken = "****"

// Each prefix family is masked independently so that the prefix stays
// visible (reviewers can tell which vendor leaked) while no part of the
// secret value survives.
var maskPatterns = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`(sk-)[a-zA-Z0-9]+`), "${1}" + maskToken},
	{regexp.MustCompile(`(g(?:hp|ho|hu|hs|hr)_)[a-zA-Z0-9]+`), "${1}" + maskToken},
	{regexp.MustCompile(`(AKIA)[0-9A-Z]+`), "${1}" + maskToken},
	{regexp.MustCompile(`(xox[baprs]-)[0-9a-zA-Z-]+`), "${1}" + maskToken},
}

// Password assignments keep the key name but collapse the whole quoted value.
var maskPassword = regexp.MustCompile(`(?i)(password|passwd|pwd)\s*=\s*["'][^"']+["']`)

// maskSecrets redacts secret values in a matched line for safe display.
// Applied to error-tier privacy matches before they are stored on findings.
func maskSecrets(text string) string {
	for _, m := range maskPatterns {
		text = m.re.ReplaceAllString(text, m.repl)
	}
	return maskPassword.ReplaceAllString(text, "${1}="+maskToken)
}
