package pattern

import "strings"

// stripWhitespace removes unescaped whitespace and #-comments from src,
// leaving character classes and \Q...\E literals untouched.
func stripWhitespace(src string) string {
	var b strings.Builder
	b.Grow(len(src))

	inClass := false
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case c == '\\' && i+1 < len(src):
			if !inClass && src[i+1] == 'Q' {
				end := strings.Index(src[i+2:], `\E`)
				if end < 0 {
					b.WriteString(src[i:])
					return b.String()
				}
				b.WriteString(src[i : i+2+end+2])
				i += 2 + end + 1
				continue
			}
			b.WriteByte(c)
			b.WriteByte(src[i+1])
			i++

		case inClass:
			if c == '[' && strings.HasPrefix(src[i:], "[:") {
				if end := strings.Index(src[i+2:], ":]"); end >= 0 {
					b.WriteString(src[i : i+2+end+2])
					i += 2 + end + 1
					continue
				}
			}
			if c == ']' {
				inClass = false
			}
			b.WriteByte(c)

		case c == '[':
			inClass = true
			b.WriteByte(c)
			if i+1 < len(src) && src[i+1] == '^' {
				b.WriteByte('^')
				i++
			}
			// ']' directly after the opening bracket is a literal
			if i+1 < len(src) && src[i+1] == ']' {
				b.WriteByte(']')
				i++
			}

		case c == '#':
			for i+1 < len(src) && src[i+1] != '\n' {
				i++
			}
			i++ // the newline, if any

		case isSpace(c):

		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}
