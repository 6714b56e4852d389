package dumb

import "strings"

const formatIndent = "  "

// Format normalizes line endings and trailing whitespace, indents region
// bodies by nesting depth and terminates the source with a newline.
//
// The final newline changes behavior for a source whose last token has no
// separator after it: Tokenize drops that token, but after Format it runs.
// TrailingTokenDropped reports whether a source is in that state.
func Format(source string) string {
	normalized := strings.ReplaceAll(source, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")

	lines := strings.Split(normalized, "\n")
	depth := 0
	for i, line := range lines {
		trimmed := strings.Trim(line, " \t")
		if trimmed == "" {
			lines[i] = ""
			continue
		}

		tokens := Tokenize(trimmed + "\n")
		indent := depth
		if len(tokens) > 0 && tokens[0] == keywordEnd && indent > 0 {
			indent--
		}
		lines[i] = strings.Repeat(formatIndent, indent) + trimmed

		for _, tok := range tokens {
			switch {
			case isRegionOpener(tok):
				depth++
			case tok == keywordEnd && depth > 0:
				depth--
			}
		}
	}

	joined := strings.Join(lines, "\n")
	joined = strings.TrimRight(joined, "\n")
	return joined + "\n"
}

// TrailingTokenDropped reports whether source ends in a token that Tokenize
// discards because no separator follows it.
func TrailingTokenDropped(source string) bool {
	return trailingText(source) != ""
}
