package dumb

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Warning is a static finding about a program. Token is the index of the
// offending token in the tokenized source.
type Warning struct {
	Token   int
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("token %d: %s", w.Token, w.Message)
}

type openRegion struct {
	opener int
	kind   string
}

// Analyze reports constructs in source that are silently ignored or that
// fail at runtime regardless of the stack contents.
func Analyze(source string) []Warning {
	tokens := Tokenize(source)
	warnings := make([]Warning, 0)
	warn := func(idx int, format string, args ...any) {
		warnings = append(warnings, Warning{Token: idx, Message: fmt.Sprintf(format, args...)})
	}

	declared := make(map[string]struct{})
	var open []openRegion

	for i, tok := range tokens {
		switch {
		case isRegionOpener(tok):
			open = append(open, openRegion{opener: i, kind: tok})
			continue
		case tok == keywordEnd:
			if len(open) == 0 {
				warn(i, "stray %q outside of any region is ignored", keywordEnd)
				continue
			}
			region := open[len(open)-1]
			open = open[:len(open)-1]
			if region.kind == keywordAssign {
				lintAssignment(tokens, region.opener, i, declared, warn)
			}
			continue
		}

		if insideAssignment(open) {
			continue
		}

		switch {
		case isIntegerLiteral(tok):
			if _, err := strconv.ParseInt(tok, 10, 64); err != nil {
				warn(i, "integer literal %q exceeds the limits of i64", tok)
			}
		case isKeyword(tok), isOperator(tok):
		default:
			if _, ok := declared[tok]; !ok {
				warn(i, "token %q is not declared before use", tok)
			}
		}
	}

	for _, region := range open {
		warn(region.opener, "unterminated %q region is never executed", region.kind)
	}

	if trailing := trailingText(source); trailing != "" {
		warn(len(tokens), "trailing token %q is not followed by a separator and is ignored", trailing)
	}

	sort.SliceStable(warnings, func(i, j int) bool {
		return warnings[i].Token < warnings[j].Token
	})
	return warnings
}

func insideAssignment(open []openRegion) bool {
	for _, region := range open {
		if region.kind == keywordAssign {
			return true
		}
	}
	return false
}

func lintAssignment(tokens []string, opener, end int, declared map[string]struct{}, warn func(int, string, ...any)) {
	body := tokens[opener+1 : end]
	switch {
	case len(body) < 2:
		warn(opener, "too few arguments to variable assignment")
		return
	case len(body) > 2:
		warn(opener, "too many arguments to variable assignment")
		return
	}

	name, typeName := body[0], body[1]
	if !isTypeName(typeName) {
		warn(opener+2, "invalid type %q, expected one of %s", typeName, strings.Join(Types, ", "))
	}
	if !isValidIdentifier(name) {
		warn(opener+1, "identifier %q is not a valid one", name)
		return
	}
	if isIntegerLiteral(name) || isKeyword(name) {
		warn(opener+1, "variable %q can never be read back", name)
	}
	declared[name] = struct{}{}
}

func trailingText(source string) string {
	end := len(source)
	start := end
	for start > 0 && !isSeparator(source[start-1]) {
		start--
	}
	return source[start:end]
}
