package design

import (
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TitleWords turns a slug such as "my-report_v2" into "My Report V2".
//
// Fragments are separated by runs of '-', '_' or whitespace. All-digit
// fragments are kept verbatim; other fragments get their first rune
// title-cased and the remainder left untouched. Blank input, or input with no
// fragments at all, is returned unchanged.
func TitleWords(value string) string {
	if strings.TrimSpace(value) == "" {
		return value
	}
	parts := strings.FieldsFunc(value, isWordSeparator)
	if len(parts) == 0 {
		return value
	}
	for i, part := range parts {
		if !isDigits(part) {
			parts[i] = capitalize(part)
		}
	}
	return strings.Join(parts, " ")
}

// FileTitle strips the final extension of name and formats the stem.
func FileTitle(name string) string {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	if stem == "" {
		stem = name
	}
	return TitleWords(stem)
}

// GroupLabel formats a POSIX relative directory, e.g. "a/b-c" becomes "A / B C".
func GroupLabel(relativeDir string) string {
	if relativeDir == "." {
		return "Root"
	}
	var labels []string
	for _, seg := range strings.Split(relativeDir, "/") {
		if seg == "" {
			continue
		}
		labels = append(labels, TitleWords(seg))
	}
	return strings.Join(labels, " / ")
}

func isWordSeparator(r rune) bool {
	return r == '-' || r == '_' || unicode.IsSpace(r)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// capitalize title-cases the first rune only. A Caser is stateful, so one is
// built per call.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	caser := cases.Title(language.Und, cases.NoLower)
	return caser.String(string(r)) + s[size:]
}
