package ansi

import (
	"fmt"
	"net/url"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// Symbol is formatted as an option name.
type Symbol string

// FormatStyles selects the style of each kind of formatted value.
type FormatStyles struct {
	Boolean Style
	String  Style
	Number  Style
	Regex   Style
	Symbol  Style
	Value   Style
	URL     Style
}

// DefaultStyles are used when Format receives nil styles.
var DefaultStyles = FormatStyles{
	Boolean: Sty(color.FgYellow),
	String:  Sty(color.FgGreen),
	Number:  Sty(color.FgYellow),
	Regex:   Sty(color.FgRed),
	Symbol:  Sty(color.FgMagenta),
	Value:   Sty(color.FgHiBlack),
	URL:     Sty(color.FgCyan),
}

// FormatFlags control phrase formatting.
type FormatFlags struct {
	// Alt selects the alternative of each (a|b) group.
	Alt int
	// Sep separates list elements. Defaults to ",".
	Sep string
	// Open and Close surround list values.
	Open  string
	Close string
}

var (
	altRegex         = regexp.MustCompile(`\(([^()]*\|[^()]*)\)`)
	placeholderRegex = regexp.MustCompile(`#(\d+)`)
	paragraphRegex   = regexp.MustCompile(`\n[ \t]*\n\s*`)
	listItemRegex    = regexp.MustCompile(`^\s*(?:[-*]|\d+\.)\s`)
)

// Format appends a phrase whose #N placeholders are replaced by the
// formatted args. Groups of the form (a|b) are reduced to the alternative
// selected by flags.Alt.
func (b *Buffer) Format(styles *FormatStyles, phrase string, flags FormatFlags, args ...any) *Buffer {
	phrase = selectAlt(phrase, flags.Alt)
	return b.Split(phrase, func(n int) {
		if n < len(args) {
			b.Value(styles, args[n], flags)
		}
	})
}

func selectAlt(phrase string, alt int) string {
	return altRegex.ReplaceAllStringFunc(phrase, func(group string) string {
		alts := strings.Split(group[1:len(group)-1], "|")
		if alt >= 0 && alt < len(alts) {
			return alts[alt]
		}
		return alts[0]
	})
}

// Split appends free text. Blank lines separate paragraphs, lines starting
// with a list marker begin on a new line, and #N placeholders are handed
// to format, glued to any surrounding punctuation.
func (b *Buffer) Split(text string, format func(n int)) *Buffer {
	text = strings.TrimSpace(text)
	if text == "" {
		return b
	}
	for i, para := range paragraphRegex.Split(text, -1) {
		if i > 0 {
			b.Break(2)
		}
		for j, line := range strings.Split(para, "\n") {
			if j > 0 && listItemRegex.MatchString(line) {
				b.Break(1)
			}
			for _, tok := range strings.Fields(line) {
				b.splitWord(tok, format)
			}
		}
	}
	return b
}

func (b *Buffer) splitWord(tok string, format func(n int)) {
	locs := placeholderRegex.FindAllStringSubmatchIndex(tok, -1)
	if format == nil || len(locs) == 0 {
		b.Word(tok)
		return
	}
	pos, glued := 0, false
	for _, loc := range locs {
		if loc[0] > pos {
			if glued {
				b.Close(tok[pos:loc[0]])
			} else {
				b.Word(tok[pos:loc[0]])
			}
			glued = true
		}
		n, _ := strconv.Atoi(tok[loc[2]:loc[3]])
		before := b.frags
		b.glue = glued
		format(n)
		b.glue = false
		glued = glued || b.frags != before
		pos = loc[1]
	}
	if pos < len(tok) {
		if glued {
			b.Close(tok[pos:])
		} else {
			b.Word(tok[pos:])
		}
	}
}

// Value appends a value styled according to its type.
func (b *Buffer) Value(styles *FormatStyles, v any, flags FormatFlags) *Buffer {
	if styles == nil {
		styles = &DefaultStyles
	}
	switch v := v.(type) {
	case nil:
		return b.styled(styles.Value, "null")
	case Symbol:
		return b.styled(styles.Symbol, string(v))
	case string:
		return b.styled(styles.String, "'"+v+"'")
	case bool:
		return b.styled(styles.Boolean, strconv.FormatBool(v))
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return b.styled(styles.Number, fmt.Sprint(v))
	case *regexp.Regexp:
		return b.styled(styles.Regex, "/"+v.String()+"/")
	case *url.URL:
		return b.styled(styles.URL, v.String())
	case *Buffer:
		return b.Append(v)
	case []string:
		return b.list(len(v), func(i int) { b.Value(styles, v[i], flags) }, flags)
	case []Symbol:
		return b.list(len(v), func(i int) { b.Value(styles, v[i], flags) }, flags)
	case []any:
		return b.list(len(v), func(i int) { b.Value(styles, v[i], flags) }, flags)
	case fmt.Stringer:
		return b.styled(styles.Value, v.String())
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		return b.list(rv.Len(), func(i int) { b.Value(styles, rv.Index(i).Interface(), flags) }, flags)
	}
	return b.styled(styles.Value, fmt.Sprint(v))
}

func (b *Buffer) styled(st Style, text string) *Buffer {
	return b.Style(st).Word(text).Unstyle()
}

func (b *Buffer) list(n int, item func(i int), flags FormatFlags) *Buffer {
	sep := flags.Sep
	if sep == "" {
		sep = ","
	}
	if n == 0 {
		return b.Word(flags.Open + flags.Close)
	}
	b.Open(flags.Open)
	for i := range n {
		item(i)
		if i < n-1 {
			b.Close(sep)
		}
	}
	return b.Close(flags.Close)
}
