package placeholder

import "strings"

// ColorChar is the section sign color codes are rendered with.
const ColorChar = '§'

const colorCodes = "0123456789AaBbCcDdEeFfKkLlMmNnOoRrXx"

// TranslateColors rewrites "&c" style color codes into their "§c" form and
// lower-cases the code. An '&' not followed by a code is kept.
func TranslateColors(s string) string {
	if !strings.ContainsRune(s, '&') {
		return s
	}
	b := &strings.Builder{}
	b.Grow(len(s) + 4)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '&' && i+1 < len(s) && strings.IndexByte(colorCodes, s[i+1]) >= 0 {
			b.WriteRune(ColorChar)
			b.WriteByte(toLower(s[i+1]))
			i++
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// StripColors removes "§c" sequences.
func StripColors(s string) string {
	b := &strings.Builder{}
	rs := []rune(s)
	for i := 0; i < len(rs); i++ {
		if rs[i] == ColorChar && i+1 < len(rs) {
			i++
			continue
		}
		b.WriteRune(rs[i])
	}
	return b.String()
}

func toLower(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}
