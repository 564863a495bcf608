package scanner

import (
	"fmt"
	"strings"

	"github.com/ludo-technologies/protoscan/domain"
)

// Default keywords of the host definition language
const (
	DefaultDeclarationKeyword = "protocol"
	DefaultMethodKeyword      = "func"
)

// Issue is a unit that could not be delimited cleanly
type Issue struct {
	Line    int
	Message string
}

// Scanner extracts interface declarations and their operations from raw text.
// It is a depth-counting delimiter scanner, not a grammar: it only knows the
// declaration keyword, the method keyword, identifiers and bracket pairs.
type Scanner struct {
	declarationKeyword string
	methodKeyword      string
}

// NewScanner creates a scanner for the given keywords
func NewScanner(declarationKeyword, methodKeyword string) *Scanner {
	if declarationKeyword == "" {
		declarationKeyword = DefaultDeclarationKeyword
	}
	if methodKeyword == "" {
		methodKeyword = DefaultMethodKeyword
	}
	return &Scanner{
		declarationKeyword: declarationKeyword,
		methodKeyword:      methodKeyword,
	}
}

// ExtractInterfaces finds every declaration in text, in source order.
// Each body is delimited by the brace that brings nesting depth back to zero.
// Declarations without a name, without a body or with an unbalanced body are
// skipped and reported as issues; scanning resumes after the keyword.
func (s *Scanner) ExtractInterfaces(source, text string) ([]domain.InterfaceDefinition, []Issue) {
	masked := Mask(text)
	kw := s.declarationKeyword

	var defs []domain.InterfaceDefinition
	var issues []Issue

	for pos := FindWord(masked, kw, 0); pos >= 0; {
		line := lineAt(masked, pos)
		after := pos + len(kw)

		nameStart := skipSpace(masked, after)
		name := readIdent(masked, nameStart)
		if name == "" {
			issues = append(issues, Issue{Line: line, Message: fmt.Sprintf("'%s' is not followed by a name", kw)})
			pos = FindWord(masked, kw, after)
			continue
		}

		open := findBodyOpen(masked, nameStart+len(name))
		if open < 0 {
			issues = append(issues, Issue{Line: line, Message: fmt.Sprintf("%s %s has no body", kw, name)})
			pos = FindWord(masked, kw, after)
			continue
		}

		closeAt, ok := matchDelimiter(masked, open, '{', '}')
		if !ok {
			issues = append(issues, Issue{Line: line, Message: fmt.Sprintf("%s %s has an unbalanced body: missing '}'", kw, name)})
			pos = FindWord(masked, kw, after)
			continue
		}

		defs = append(defs, domain.InterfaceDefinition{
			Name:     name,
			Body:     text[open+1 : closeAt],
			Line:     line,
			BodyLine: lineAt(masked, open),
			Source:   source,
		})
		pos = FindWord(masked, kw, closeAt+1)
	}

	return defs, issues
}

// ExtractOperations enumerates the operations declared in def's body.
// The parameter list is captured verbatim up to its matching ')'.
func (s *Scanner) ExtractOperations(def domain.InterfaceDefinition) ([]domain.OperationSignature, []Issue) {
	body := def.Body
	masked := Mask(body)
	kw := s.methodKeyword
	lineOf := func(i int) int { return def.BodyLine + lineAt(masked, i) - 1 }

	var ops []domain.OperationSignature
	var issues []Issue

	for pos := FindWord(masked, kw, 0); pos >= 0; {
		after := pos + len(kw)

		nameStart, ok := skipGenericClause(masked, after)
		if !ok {
			issues = append(issues, Issue{Line: lineOf(pos), Message: fmt.Sprintf("'%s' in %s has an unbalanced generic clause", kw, def.Name)})
			pos = FindWord(masked, kw, after)
			continue
		}
		name, p, ok := readOperationName(masked, nameStart)
		if name == "" {
			issues = append(issues, Issue{Line: lineOf(pos), Message: fmt.Sprintf("'%s' in %s is not followed by a name", kw, def.Name)})
			pos = FindWord(masked, kw, after)
			continue
		}
		if !ok {
			issues = append(issues, Issue{Line: lineOf(pos), Message: fmt.Sprintf("%s.%s has an unbalanced generic clause", def.Name, name)})
			pos = FindWord(masked, kw, after)
			continue
		}

		if p >= len(masked) || masked[p] != '(' {
			issues = append(issues, Issue{Line: lineOf(pos), Message: fmt.Sprintf("%s.%s has no parameter list", def.Name, name)})
			pos = FindWord(masked, kw, after)
			continue
		}

		closeAt, ok := matchDelimiter(masked, p, '(', ')')
		if !ok {
			issues = append(issues, Issue{Line: lineOf(pos), Message: fmt.Sprintf("%s.%s has an unbalanced parameter list: missing ')'", def.Name, name)})
			pos = FindWord(masked, kw, after)
			continue
		}

		ops = append(ops, domain.OperationSignature{
			Name:          name,
			RawParameters: body[p+1 : closeAt],
			Line:          lineOf(pos),
		})
		pos = FindWord(masked, kw, closeAt+1)
	}

	return ops, issues
}

// CountMethods counts method keyword occurrences followed by a name
func (s *Scanner) CountMethods(text string) int {
	masked := Mask(text)
	count := 0
	for pos := FindWord(masked, s.methodKeyword, 0); pos >= 0; pos = FindWord(masked, s.methodKeyword, pos+1) {
		nameStart, ok := skipGenericClause(masked, pos+len(s.methodKeyword))
		if ok && readIdent(masked, nameStart) != "" {
			count++
		}
	}
	return count
}

// SplitParameters splits a raw parameter list on top-level commas and returns
// the non-empty, trimmed segments. Commas nested in (), [], {} or <> do not split.
func SplitParameters(raw string) []string {
	masked := Mask(raw)
	var segments []string
	depth, angle, start := 0, 0, 0

	flush := func(end int) {
		if strings.TrimSpace(masked[start:end]) != "" {
			segments = append(segments, strings.TrimSpace(raw[start:end]))
		}
	}

	for i := 0; i < len(masked); i++ {
		switch masked[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			if depth > 0 {
				depth--
			}
		case '<':
			if opensGeneric(masked, i) {
				angle++
			}
		case '>':
			if i > 0 && masked[i-1] == '-' {
				continue
			}
			if angle > 0 {
				angle--
			}
		case ',':
			if depth == 0 && angle == 0 {
				flush(i)
				start = i + 1
			}
		}
	}
	flush(len(masked))

	return segments
}

// CountParameters returns the number of parameters in a raw parameter list
func CountParameters(raw string) int {
	return len(SplitParameters(raw))
}

// skipGenericClause skips whitespace and an optional generic clause written
// before an operation name, as in "fun <T> find". It returns the offset of the
// first character after them.
func skipGenericClause(text string, i int) (int, bool) {
	i = skipSpace(text, i)
	if i >= len(text) || text[i] != '<' {
		return i, true
	}
	end, ok := matchAngles(text, i)
	if !ok {
		return i, false
	}
	return skipSpace(text, end+1), true
}

// readOperationName reads the operation name at i together with any generic
// clause after it, and returns the offset of the next token. A receiver type
// ("fun List<T>.second()") is skipped so the name after the last '.' is used.
func readOperationName(text string, i int) (string, int, bool) {
	for {
		name := readIdent(text, i)
		if name == "" {
			return "", i, true
		}
		p := skipSpace(text, i+len(name))
		if p < len(text) && text[p] == '<' {
			end, ok := matchAngles(text, p)
			if !ok {
				return name, p, false
			}
			p = skipSpace(text, end+1)
		}
		if p < len(text) && text[p] == '.' {
			i = skipSpace(text, p+1)
			continue
		}
		return name, p, true
	}
}

// findBodyOpen returns the offset of the '{' opening a declaration body, or -1
// if a ';' or '}' ends the header first
func findBodyOpen(text string, from int) int {
	for i := from; i < len(text); i++ {
		switch text[i] {
		case '{':
			return i
		case ';', '}':
			return -1
		}
	}
	return -1
}

// matchDelimiter returns the offset of the closer matching the opener at open
func matchDelimiter(text string, open int, opener, closer byte) (int, bool) {
	depth := 0
	for i := open; i < len(text); i++ {
		switch text[i] {
		case opener:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return -1, false
}

// matchAngles matches a generic clause; the '>' of "->" is not a closer
func matchAngles(text string, open int) (int, bool) {
	depth := 0
	for i := open; i < len(text); i++ {
		switch text[i] {
		case '<':
			depth++
		case '>':
			if i > 0 && text[i-1] == '-' {
				continue
			}
			depth--
			if depth == 0 {
				return i, true
			}
		case '{', '}', ';':
			return -1, false
		}
	}
	return -1, false
}

// opensGeneric reports whether the '<' at i starts a generic argument list.
// It must directly follow a type name and be closed later, so a comparison
// such as "a < b" in a default value is not taken for one.
func opensGeneric(text string, i int) bool {
	if i == 0 {
		return false
	}
	c := text[i-1]
	if !(c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9') {
		return false
	}
	_, ok := matchAngles(text, i)
	return ok
}
