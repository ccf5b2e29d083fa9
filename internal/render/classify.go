package render

import "strings"

// LineKind distinguishes bullet lines from plain paragraphs
type LineKind int

const (
	// Paragraph is any non-bullet line, rendered as flowing text
	Paragraph LineKind = iota
	// Bullet is a line prefixed with "-" or "•", rendered with a bullet glyph
	Bullet
)

// ClassifiedLine is the result of classifying a single content line
type ClassifiedLine struct {
	Kind LineKind
	Text string
}

// ClassifyLine classifies a content line as a bullet or a paragraph. The
// bullet test runs against the whitespace-trimmed form of the line; for a
// bullet the marker and the single run of whitespace following it are
// stripped from the displayed text. A paragraph keeps the original line
// unchanged. Classification is a pure function of the line's leading
// characters; no state is carried between lines.
func ClassifyLine(line string) ClassifiedLine {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "•") {
		text := strings.TrimPrefix(trimmed, "-")
		text = strings.TrimPrefix(text, "•")
		return ClassifiedLine{Kind: Bullet, Text: trimLeadingWhitespaceRun(text)}
	}
	return ClassifiedLine{Kind: Paragraph, Text: line}
}

// trimLeadingWhitespaceRun removes the single run of spaces or tabs that
// follows a bullet marker
func trimLeadingWhitespaceRun(s string) string {
	return strings.TrimLeft(s, " \t")
}
