package ansi

import (
	"unicode"

	"golang.org/x/text/width"
)

// textWidth returns the number of terminal cells occupied by s.
func textWidth(s string) int {
	ascii := true
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			ascii = false
			break
		}
	}
	if ascii {
		return len(s)
	}
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			if unicode.Is(unicode.Mn, r) || unicode.IsControl(r) {
				continue
			}
			n++
		}
	}
	return n
}
