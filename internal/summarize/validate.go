package summarize

import (
	"regexp"
	"strings"

	"github.com/dgallion1/papersum/internal/normalize"
)

const (
	minSummaryChars = 20
	maxSummaryChars = 6000
)

// leakPattern matches a reply that echoes the prompt or refuses instead of
// summarizing. Only the prompt's own delimiter, and a refusal at the start,
// count; ordinary phrases inside a summary do not.
var leakPattern = regexp.MustCompile(
	`(?i)(paper\s+content:|^\s*as\s+an\s+ai(\s+language)?\s+model\b)`,
)

var labelPattern = regexp.MustCompile(`(?i)^\s*(simplified\s+)?summary\s*:\s*`)

// Clean flattens the model's Markdown, drops a leading "Summary:" label and
// returns the empty string when the result is not a usable summary.
func Clean(raw string) string {
	s := PlainText(raw)
	s = labelPattern.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	if !Usable(s) {
		return ""
	}
	return s
}

// Usable reports whether s looks like a summary rather than an empty,
// truncated or prompt-echoing reply.
func Usable(s string) bool {
	s = strings.TrimSpace(s)
	if n := normalize.Len(s); n < minSummaryChars || n > maxSummaryChars {
		return false
	}
	return !leakPattern.MatchString(s)
}
