package utils

import (
	"strings"
	"unicode"

	"github.com/huandu/xstrings"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// RemoveAccents removes accents from a string, converting accented characters to their base forms
func RemoveAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}

// IsIdentifier reports whether s can be used as a bare TypeScript identifier
// or property key.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if !isIdentRune(r, i == 0) {
			return false
		}
	}
	return true
}

func isIdentRune(r rune, first bool) bool {
	switch {
	case r == '_' || r == '$':
		return true
	case r < unicode.MaxASCII && unicode.IsLetter(r):
		return true
	case r < unicode.MaxASCII && unicode.IsDigit(r):
		return !first
	}
	return false
}

// Identifier turns s into a valid identifier: accents are stripped and any
// other rune that cannot appear in an identifier becomes an underscore.
func Identifier(s string) string {
	s = RemoveAccents(s)
	var b strings.Builder
	for i, r := range s {
		if i == 0 && unicode.IsDigit(r) {
			b.WriteRune('_')
		}
		if isIdentRune(r, false) {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

// ParamIdentifier converts a parameter name to the name of its field in the
// generated params record. Dash separated chunks are joined with the first
// rune of every chunk after the first upper-cased:
//
//	account-id -> accountId
//	X-Request-Id -> XRequestId
func ParamIdentifier(name string) string {
	chunks := strings.Split(name, "-")
	for i := 1; i < len(chunks); i++ {
		chunks[i] = xstrings.FirstRuneToUpper(chunks[i])
	}
	return Identifier(strings.Join(chunks, ""))
}

// ToBigCamelCase upper-cases the first rune of every underscore separated
// word and drops the underscores: openapi_wallet_getBalance -> OpenapiWalletGetBalance.
func ToBigCamelCase(s string) string {
	words := strings.Split(s, "_")
	for i, w := range words {
		words[i] = xstrings.FirstRuneToUpper(w)
	}
	return strings.Join(words, "")
}

// ToSmallCamelCase is ToBigCamelCase with the first rune lower-cased.
func ToSmallCamelCase(s string) string {
	return xstrings.FirstRuneToLower(ToBigCamelCase(s))
}
