package ansi

import (
	"net/url"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuffer_Format(t *testing.T) {
	link, _ := url.Parse("https://example.com/docs")
	tests := []struct {
		name   string
		phrase string
		flags  FormatFlags
		args   []any
		want   string
	}{
		{
			name:   "symbols",
			phrase: "Option #0 requires #1.",
			args:   []any{Symbol("-a"), Symbol("-b")},
			want:   "Option -a requires -b.",
		},
		{
			name:   "alternative selected",
			phrase: "(Option|Positional marker) #0 does not accept inline parameters.",
			flags:  FormatFlags{Alt: 1},
			args:   []any{Symbol("--")},
			want:   "Positional marker -- does not accept inline parameters.",
		},
		{
			name:   "empty alternative",
			phrase: "Unknown option #0.(| Similar names are: #1.)",
			args:   []any{Symbol("-x")},
			want:   "Unknown option -x.",
		},
		{
			name:   "list alternative",
			phrase: "Unknown option #0.(| Similar names are: #1.)",
			flags:  FormatFlags{Alt: 1},
			args:   []any{Symbol("-x"), []Symbol{"-y", "-z"}},
			want:   "Unknown option -x. Similar names are: -y, -z.",
		},
		{
			name:   "list with delimiters",
			phrase: "Values must be one of #0.",
			flags:  FormatFlags{Open: "{", Close: "}"},
			args:   []any{[]string{"a", "b"}},
			want:   "Values must be one of {'a', 'b'}.",
		},
		{
			name:   "placeholder inside punctuation",
			phrase: "(#0)",
			args:   []any{Symbol("x")},
			want:   "(x)",
		},
		{
			name:   "adjacent placeholders",
			phrase: "#0=#1",
			args:   []any{Symbol("-a"), 1},
			want:   "-a=1",
		},
		{
			name:   "empty list vanishes",
			phrase: "a #0 b",
			args:   []any{[]string{}},
			want:   "a b",
		},
		{
			name:   "typed values",
			phrase: "#0 #1 #2 #3 #4 #5",
			args:   []any{true, 42, 1.5, regexp.MustCompile(`^a$`), link, nil},
			want:   "true 42 1.5 /^a$/ https://example.com/docs null",
		},
		{
			name:   "generic slice",
			phrase: "#0",
			flags:  FormatFlags{Open: "[", Close: "]"},
			args:   []any{[]int{1, 2}},
			want:   "[1, 2]",
		},
		{
			name:   "nested buffer",
			phrase: "requires #0.",
			args:   []any{New(0).Words("-a", "or", "-b")},
			want:   "requires -a or -b.",
		},
		{
			name:   "missing argument",
			phrase: "x #3 y",
			args:   []any{},
			want:   "x y",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New(0).Format(nil, tt.phrase, tt.flags, tt.args...)
			assert.Equal(t, tt.want, b.String())
		})
	}
}

func TestBuffer_FormatStyles(t *testing.T) {
	b := New(0).Format(&DefaultStyles, "see #0", FormatFlags{}, Symbol("-f"))
	var out []string
	b.Wrap(&out, 0, 0, true, true)
	assert.Equal(t, []string{"see", " ", "\x1b[35m-f\x1b[39m"}, out)
}

func TestBuffer_Split(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "whitespace collapses", text: "  a \t b\nc  ", want: "a b c"},
		{name: "paragraphs", text: "para one\n\n  \npara two", want: "para one\n\npara two"},
		{name: "lists", text: "items:\n- one\n* two\n3. three", want: "items:\n- one\n* two\n3. three"},
		{name: "empty", text: " \n ", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, New(0).Split(tt.text, nil).String())
		})
	}
}
