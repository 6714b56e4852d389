package dumb

import (
	"slices"
	"unicode"
)

const (
	keywordPrint  = "print"
	keywordDup    = "dup"
	keywordSwap   = "swap"
	keywordOver   = "over"
	keywordDrop   = "drop"
	keywordAssign = "->"
	keywordLoop   = "loop"
	keywordEnd    = "end"

	typeInt = "int"
)

// Keywords lists the reserved words of the language in dispatch order.
var Keywords = []string{
	keywordPrint,
	keywordDup,
	keywordSwap,
	keywordOver,
	keywordDrop,
	keywordAssign,
	keywordLoop,
	keywordEnd,
}

// Operators lists the binary arithmetic operators.
var Operators = []string{"+", "-", "*", "/", "%"}

// Types lists the type names accepted by an assignment region.
var Types = []string{typeInt}

func isKeyword(tok string) bool {
	return slices.Contains(Keywords, tok)
}

func isOperator(tok string) bool {
	return slices.Contains(Operators, tok)
}

func isTypeName(tok string) bool {
	return slices.Contains(Types, tok)
}

func isRegionOpener(tok string) bool {
	return tok == keywordLoop || tok == keywordAssign
}

// isIntegerLiteral reports whether every byte of tok is an ASCII decimal digit.
func isIntegerLiteral(tok string) bool {
	if tok == "" {
		return false
	}
	for i := 0; i < len(tok); i++ {
		if tok[i] < '0' || tok[i] > '9' {
			return false
		}
	}
	return true
}

// isValidIdentifier accepts alphabetic and numeric runes, including the
// combining marks Unicode classes as Other_Alphabetic.
func isValidIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsNumber(r) && !unicode.Is(unicode.Other_Alphabetic, r) {
			return false
		}
	}
	return true
}
