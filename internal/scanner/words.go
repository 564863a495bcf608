package scanner

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// FindWord returns the offset of the first whole-word occurrence of word in
// text at or after from, or -1. A match must not touch identifier characters
// on either side, so "if" never matches inside "elif" or "iffy".
func FindWord(text, word string, from int) int {
	if word == "" {
		return -1
	}
	for from <= len(text) {
		rel := strings.Index(text[from:], word)
		if rel < 0 {
			return -1
		}
		start := from + rel
		end := start + len(word)
		if isWordBoundaryBefore(text, start) && isWordBoundaryAfter(text, end) {
			return start
		}
		from = start + 1
	}
	return -1
}

// CountWord counts whole-word occurrences of word in text
func CountWord(text, word string) int {
	count := 0
	for pos := FindWord(text, word, 0); pos >= 0; pos = FindWord(text, word, pos+len(word)) {
		count++
	}
	return count
}

func isWordBoundaryBefore(text string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return !isIdentPart(r)
}

func isWordBoundaryAfter(text string, i int) bool {
	if i >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[i:])
	return !isIdentPart(r)
}

// readIdent returns the identifier starting at i, or "" if none starts there
func readIdent(text string, i int) string {
	if i >= len(text) {
		return ""
	}
	r, size := utf8.DecodeRuneInString(text[i:])
	if !isIdentStart(r) {
		return ""
	}
	end := i + size
	for end < len(text) {
		r, size = utf8.DecodeRuneInString(text[end:])
		if !isIdentPart(r) {
			break
		}
		end += size
	}
	return text[i:end]
}

// IsIdentifier reports whether s is a single identifier
func IsIdentifier(s string) bool {
	return s != "" && readIdent(s, 0) == s
}

func skipSpace(text string, i int) int {
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !unicode.IsSpace(r) {
			break
		}
		i += size
	}
	return i
}

// lineAt returns the 1-based line number of offset i
func lineAt(text string, i int) int {
	if i > len(text) {
		i = len(text)
	}
	return strings.Count(text[:i], "\n") + 1
}

// LineCount returns the number of newline-delimited lines; empty text has one line
func LineCount(text string) int {
	return strings.Count(text, "\n") + 1
}
