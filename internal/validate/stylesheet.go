package validate

import (
	"log/slog"
	"strings"

	"github.com/gorilla/css/scanner"
)

// Stylesheet extracts the CSS payload from a vendor reply and validates it.
// Validation is deliberately lenient: vendor models occasionally emit
// near-valid CSS that browsers still render acceptably, so syntax errors are
// logged and accepted. Empty content is the only hard failure.
func Stylesheet(text string) (string, error) {
	content := ExtractCSS(text)

	if strings.TrimSpace(content) == "" {
		return "", &Error{Reason: "stylesheet content is empty", Content: text}
	}

	s := scanner.New(content)
	for {
		token := s.Next()
		if token.Type == scanner.TokenEOF {
			break
		}
		if token.Type == scanner.TokenError {
			slog.Warn("Stylesheet contains a CSS syntax error, accepting as best effort",
				"value", token.Value, "line", token.Line, "column", token.Column)
			break
		}
	}

	return content, nil
}

// ExtractCSS strips the markdown wrapping vendors put around stylesheets:
// the innermost fenced code block when one exists, otherwise leading and
// trailing prose lines trimmed off by brace/semicolon boundary detection.
func ExtractCSS(text string) string {
	if inner, ok := ExtractFenced(text); ok {
		return inner
	}

	lines := strings.Split(text, "\n")

	first := -1
	last := -1
	for i, line := range lines {
		if looksLikeCSS(line) {
			if first == -1 {
				first = i
			}
			last = i
		}
	}
	if first == -1 {
		return strings.TrimSpace(text)
	}
	return strings.TrimSpace(strings.Join(lines[first:last+1], "\n"))
}

// looksLikeCSS reports whether a line sits inside a plausible stylesheet:
// rule braces, declarations, at-rules, or comments.
func looksLikeCSS(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	return strings.ContainsAny(trimmed, "{};") ||
		strings.HasPrefix(trimmed, "@") ||
		strings.HasPrefix(trimmed, "/*") ||
		strings.HasPrefix(trimmed, "*")
}
