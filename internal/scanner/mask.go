package scanner

// Mask blanks comments, string literals and character literals in src with spaces.
// Newlines are kept, so the result has the same length and line layout as src
// and every offset in it refers to the same position in src.
// Block comments may nest. An unterminated comment or literal masks to the end.
func Mask(src string) string {
	b := []byte(src)
	n := len(b)
	for i := 0; i < n; {
		switch {
		case hasPrefixAt(b, i, "//"):
			i = maskLineComment(b, i)
		case hasPrefixAt(b, i, "/*"):
			i = maskBlockComment(b, i)
		case hasPrefixAt(b, i, `"""`):
			i = maskMultilineString(b, i)
		case b[i] == '"' || b[i] == '\'':
			i = maskString(b, i, b[i])
		default:
			i++
		}
	}
	return string(b)
}

func hasPrefixAt(b []byte, i int, prefix string) bool {
	if i+len(prefix) > len(b) {
		return false
	}
	return string(b[i:i+len(prefix)]) == prefix
}

func blank(b []byte, i int) {
	if i < len(b) && b[i] != '\n' {
		b[i] = ' '
	}
}

func maskLineComment(b []byte, i int) int {
	for i < len(b) && b[i] != '\n' {
		blank(b, i)
		i++
	}
	return i
}

func maskBlockComment(b []byte, i int) int {
	depth := 0
	for i < len(b) {
		switch {
		case hasPrefixAt(b, i, "/*"):
			depth++
			blank(b, i)
			blank(b, i+1)
			i += 2
		case hasPrefixAt(b, i, "*/"):
			depth--
			blank(b, i)
			blank(b, i+1)
			i += 2
			if depth == 0 {
				return i
			}
		default:
			blank(b, i)
			i++
		}
	}
	return i
}

func maskMultilineString(b []byte, i int) int {
	for k := 0; k < 3; k++ {
		blank(b, i+k)
	}
	i += 3
	for i < len(b) {
		switch {
		case b[i] == '\\':
			blank(b, i)
			blank(b, i+1)
			i += 2
		case hasPrefixAt(b, i, `"""`):
			for k := 0; k < 3; k++ {
				blank(b, i+k)
			}
			return i + 3
		default:
			blank(b, i)
			i++
		}
	}
	return i
}

// maskString masks a single-line literal closed by quote; a newline terminates it
func maskString(b []byte, i int, quote byte) int {
	blank(b, i)
	i++
	for i < len(b) && b[i] != '\n' {
		switch b[i] {
		case '\\':
			blank(b, i)
			blank(b, i+1)
			i += 2
		case quote:
			blank(b, i)
			return i + 1
		default:
			blank(b, i)
			i++
		}
	}
	return i
}
