package ansi

import (
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// Style is a sequence of SGR attributes applied together.
type Style []color.Attribute

// Sty builds a Style from attributes.
func Sty(attrs ...color.Attribute) Style {
	return Style(attrs)
}

// Fg8 selects a foreground color from the 256-color palette.
func Fg8(n uint8) Style {
	return Style{38, 5, color.Attribute(n)}
}

// Bg8 selects a background color from the 256-color palette.
func Bg8(n uint8) Style {
	return Style{48, 5, color.Attribute(n)}
}

// FgRGB selects a true-color foreground.
func FgRGB(r, g, b uint8) Style {
	return Style{38, 2, color.Attribute(r), color.Attribute(g), color.Attribute(b)}
}

// BgRGB selects a true-color background.
func BgRGB(r, g, b uint8) Style {
	return Style{48, 2, color.Attribute(r), color.Attribute(g), color.Attribute(b)}
}

// attribute classes; each class is cancelled by one code
const (
	classIntensity = iota
	classItalic
	classUnderline
	classBlink
	classInverse
	classConceal
	classStrike
	classForeground
	classBackground
	numClasses
)

var cancelCodes = [numClasses]string{"22", "23", "24", "25", "27", "28", "29", "39", "49"}

// record holds the active code of each attribute class, or "" when inactive.
type record [numClasses]string

func classOf(code int) (int, bool) {
	switch {
	case code == 1 || code == 2:
		return classIntensity, true
	case code == 3:
		return classItalic, true
	case code == 4 || code == 21:
		return classUnderline, true
	case code == 5 || code == 6:
		return classBlink, true
	case code == 7:
		return classInverse, true
	case code == 8:
		return classConceal, true
	case code == 9:
		return classStrike, true
	case code >= 30 && code <= 37, code >= 90 && code <= 97:
		return classForeground, true
	case code >= 40 && code <= 47, code >= 100 && code <= 107:
		return classBackground, true
	}
	return 0, false
}

func cancelClassOf(code int) (int, bool) {
	for c, cancel := range cancelCodes {
		if cancel == strconv.Itoa(code) {
			return c, true
		}
	}
	return 0, false
}

// apply returns the record obtained by applying st on top of r.
func (r record) apply(st Style) record {
	for i := 0; i < len(st); i++ {
		code := int(st[i])
		switch {
		case code == 0:
			r = record{}
		case code == 38 || code == 48:
			n := 0
			if i+1 < len(st) {
				switch st[i+1] {
				case 5:
					n = 3
				case 2:
					n = 5
				}
			}
			if n == 0 || i+n > len(st) {
				return r
			}
			parts := make([]string, n)
			for j := range parts {
				parts[j] = strconv.Itoa(int(st[i+j]))
			}
			class := classForeground
			if code == 48 {
				class = classBackground
			}
			r[class] = strings.Join(parts, ";")
			i += n - 1
		default:
			if c, ok := cancelClassOf(code); ok {
				r[c] = ""
			} else if c, ok := classOf(code); ok {
				r[c] = strconv.Itoa(code)
			}
		}
	}
	return r
}

// diff returns the control sequence that turns r into to. Cancelled classes
// use their own cancelling code and every class still active is re-emitted,
// so a bare reset is never needed.
func (r record) diff(to record) string {
	var codes []string
	cancelled := false
	for c := range numClasses {
		if r[c] != "" && r[c] != to[c] && (to[c] == "" || c == classIntensity) {
			codes = append(codes, cancelCodes[c])
			cancelled = true
		}
	}
	for c := range numClasses {
		if to[c] != "" && (cancelled || to[c] != r[c]) {
			codes = append(codes, to[c])
		}
	}
	if len(codes) == 0 {
		return ""
	}
	return "\x1b[" + strings.Join(codes, ";") + "m"
}
