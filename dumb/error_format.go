package dumb

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const tokenFrameContext = 4

// formatTokenFrame renders the tokens around pos with a caret under the
// token at pos.
func formatTokenFrame(tokens []string, pos int) string {
	if len(tokens) == 0 || pos < 0 || pos >= len(tokens) {
		return ""
	}

	from := max(pos-tokenFrameContext, 0)
	to := min(pos+tokenFrameContext+1, len(tokens))

	var line strings.Builder
	caretPad := 0
	if from > 0 {
		line.WriteString("... ")
	}
	for i := from; i < to; i++ {
		if i > from {
			line.WriteString(" ")
		}
		if i == pos {
			caretPad = utf8.RuneCountInString(line.String())
		}
		line.WriteString(tokens[i])
	}
	if to < len(tokens) {
		line.WriteString(" ...")
	}

	return fmt.Sprintf(
		"  --> token %d\n   | %s\n   | %s%s",
		pos,
		line.String(),
		strings.Repeat(" ", caretPad),
		strings.Repeat("^", max(utf8.RuneCountInString(tokens[pos]), 1)),
	)
}
