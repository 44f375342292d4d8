package detectors

import (
	"net"
	"regexp"
	"strings"

	"github.com/demitas1/blender-files/internal/types"
)

// Error tier: secrets and credentials. Evaluated before warning and info
// tiers; matches are masked before being stored on the finding.
var privacyErrorRules = []Rule{
	{regexp.MustCompile(`sk-[a-zA-Z0-9]{20,}`), types.SevError, "OpenAI API key detected"},
	{regexp.MustCompile(`ghp_[a-zA-Z0-9]{36}`), types.SevError, "GitHub Personal Access Token detected"},
	{regexp.MustCompile(`gho_[a-zA-Z0-9]{36}`), types.SevError, "GitHub OAuth Token detected"},
	{regexp.MustCompile(`ghu_[a-zA-Z0-9]{36}`), types.SevError, "GitHub User-to-Server Token detected"},
	{regexp.MustCompile(`ghs_[a-zA-Z0-9]{36}`), types.SevError, "GitHub Server-to-Server Token detected"},
	{regexp.MustCompile(`ghr_[a-zA-Z0-9]{36}`), types.SevError, "GitHub Refresh Token detected"},
	{regexp.MustCompile(`AKIA[0-9A-Z]{16}`), types.SevError, "AWS Access Key ID detected"},
	{regexp.MustCompile(`xox[baprs]-[0-9a-zA-Z-]{10,}`), types.SevError, "Slack Token detected"},
	{regexp.MustCompile(`(?i)(password|passwd|pwd)\s*=\s*["'][^"']+["']`), types.SevError, "Hardcoded password detected"},
	{regexp.MustCompile(`(mysql|postgres|postgresql|mongodb|redis)://[^\s"']+`), types.SevError, "Database connection string detected"},
	{regexp.MustCompile(`-----BEGIN\s+(RSA\s+|EC\s+|DSA\s+|OPENSSH\s+)?PRIVATE\s+KEY-----`), types.SevError, "Private key detected"},
}

// Warning tier: personal or operational data worth a review. Deliberately
// fuzzier than the error tier so custom secret names are still caught,
// at lower confidence.
var privacyWarningRules = []Rule{
	{regexp.MustCompile(`/home/[a-zA-Z][a-zA-Z0-9_-]+/`), types.SevWarning, "Linux user home path detected"},
	{regexp.MustCompile(`C:\\\\Users\\\\[^\\]+\\\\`), types.SevWarning, "Windows user path detected"},
	{regexp.MustCompile(`C:\\Users\\[^\\]+\\`), types.SevWarning, "Windows user path detected"},
	{regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`), types.SevWarning, "Email address detected"},
	{regexp.MustCompile(`(?i)(api_key|apikey|api-key)\s*=\s*["'][^"']+["']`), types.SevWarning, "API key variable detected"},
	{regexp.MustCompile(`(?i)(secret|token)\s*=\s*["'][^"']+["']`), types.SevWarning, "Secret/token variable detected"},
	{regexp.MustCompile(`(?i)(auth|authorization)\s*=\s*["'][^"']+["']`), types.SevWarning, "Authorization header detected"},
}

// Info tier: dotted-quad IP literals outside private ranges. Range
// exclusion happens in code since RE2 has no lookahead.
var reIPv4 = regexp.MustCompile(`\b\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}\b`)

// Privacy flags leaked secrets, personal data, and public network addresses.
type Privacy struct{}

func NewPrivacy() *Privacy { return &Privacy{} }

func (p *Privacy) Name() string { return "privacy" }

func (p *Privacy) Description() string {
	return "Detects personal information and leaked secrets"
}

// ScanReferences marks this detector as a consumer of external reference
// paths and metadata values in addition to script content.
func (p *Privacy) ScanReferences() bool { return true }

// Scan evaluates the three tiers in declared order for every line; a single
// line can produce findings from each tier simultaneously.
func (p *Privacy) Scan(content, source string) []types.Finding {
	var out []types.Finding
	for i, line := range strings.Split(content, "\n") {
		loc := location(source, i+1)
		trimmed := strings.TrimSpace(line)

		for _, r := range privacyErrorRules {
			if r.Pattern.MatchString(line) {
				out = append(out, types.Finding{
					Detector:    p.Name(),
					Severity:    types.SevError,
					Message:     r.Message,
					Location:    loc,
					MatchedText: maskSecrets(trimmed),
				})
			}
		}
		for _, r := range privacyWarningRules {
			if r.Pattern.MatchString(line) {
				out = append(out, types.Finding{
					Detector:    p.Name(),
					Severity:    types.SevWarning,
					Message:     r.Message,
					Location:    loc,
					MatchedText: trimmed,
				})
			}
		}
		for _, ip := range reIPv4.FindAllString(line, -1) {
			if !isPublicIPv4(ip) {
				continue
			}
			out = append(out, types.Finding{
				Detector:    p.Name(),
				Severity:    types.SevInfo,
				Message:     "Public IP address detected",
				Location:    loc,
				MatchedText: trimmed,
			})
			break // one info finding per line, as with the other tiers
		}
	}
	return out
}

// isPublicIPv4 excludes 10/8, 172.16/12, 192.168/16, 127/8, and anything
// starting with "0.".
func isPublicIPv4(s string) bool {
	if strings.HasPrefix(s, "0.") {
		return false
	}
	ip := net.ParseIP(s)
	if ip == nil || ip.To4() == nil {
		return false
	}
	return !ip.IsPrivate() && !ip.IsLoopback() && !ip.IsUnspecified()
}
