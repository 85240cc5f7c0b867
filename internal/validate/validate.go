// Package validate checks and mechanically repairs generated content before
// it is persisted. Checks are regex-level on purpose: they preserve the exact
// pass/fail boundary the product behavior depends on, where a structural
// parser would accept or reject different inputs.
package validate

import (
	"regexp"
	"strings"
)

// Error is a validation failure carrying the original, unrepaired content so
// callers can show the user exactly what the vendor produced.
type Error struct {
	Reason  string
	Content string
}

func (e *Error) Error() string {
	return e.Reason
}

var fencedBlockRe = regexp.MustCompile("(?s)```[a-zA-Z]*[ \t]*\n(.*?)```")

// ExtractFenced returns the content of the innermost fenced code block in
// text, or false when no fenced block is present. Vendors routinely wrap
// generated files in markdown fences and prose.
func ExtractFenced(text string) (string, bool) {
	matches := fencedBlockRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return "", false
	}
	// The last (innermost when nested, final when repeated) block wins.
	inner := matches[len(matches)-1][1]
	return strings.TrimSpace(inner), true
}
