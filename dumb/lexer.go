package dumb

func isSeparator(ch byte) bool {
	switch ch {
	case ' ', ';', '\n', '\t', '\\', '\r', 0x00, 0x7f:
		return true
	default:
		return false
	}
}

// Tokenize splits source into separator-delimited tokens. A token is only
// emitted when a separator follows it, so trailing text after the last
// separator is discarded.
func Tokenize(source string) []string {
	tokens := make([]string, 0, len(source)/2)
	start := 0
	for start < len(source) && isSeparator(source[start]) {
		start++
	}
	for i := start + 1; i < len(source); i++ {
		if !isSeparator(source[i]) {
			continue
		}
		if !isSeparator(source[i-1]) {
			tokens = append(tokens, source[start:i])
		}
		start = i + 1
	}
	return tokens
}
