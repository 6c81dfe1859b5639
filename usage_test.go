package optparse

import (
	"fmt"
	"testing"

	"github.com/napalu/optparse/ansi"
	"github.com/stretchr/testify/assert"
)

func flagOptions(n int) Options {
	options := make(Options, n)
	for i := range options {
		options[i] = &Option{Key: fmt.Sprintf("flag%d", i), Kind: KindFlag, Names: []string{fmt.Sprintf("-f%d", i)}}
	}
	return options
}

func TestUsageRenderer_Requirements(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		required []string
		requires map[string]string
		expected string
	}{
		{
			name:     "independent",
			count:    3,
			expected: "[-f0] [-f1] [-f2]",
		},
		{
			name:     "single requirement",
			count:    3,
			requires: map[string]string{"flag1": "flag2"},
			expected: "[-f0] [-f2 [-f1]]",
		},
		{
			name:     "chain",
			count:    3,
			requires: map[string]string{"flag0": "flag1", "flag1": "flag2"},
			expected: "[-f2 [-f1 [-f0]]]",
		},
		{
			name:     "cycle",
			count:    4,
			requires: map[string]string{"flag1": "flag2", "flag2": "flag3", "flag3": "flag1"},
			expected: "[-f0] [-f1 -f2 -f3]",
		},
		{
			name:     "cycle with dependent",
			count:    3,
			requires: map[string]string{"flag0": "flag1", "flag1": "flag2", "flag2": "flag1"},
			expected: "[-f1 -f2 [-f0]]",
		},
		{
			name:     "two options requiring one",
			count:    3,
			requires: map[string]string{"flag0": "flag2", "flag1": "flag2"},
			expected: "[-f2 [-f0] [-f1]]",
		},
		{
			name:     "required",
			count:    2,
			required: []string{"flag0"},
			expected: "-f0 [-f1]",
		},
		{
			name:     "required propagates to requirement",
			count:    3,
			required: []string{"flag1"},
			requires: map[string]string{"flag1": "flag2"},
			expected: "[-f0] -f2 -f1",
		},
		{
			name:     "requirement outside selection",
			count:    2,
			requires: map[string]string{"flag1": "flag9"},
			expected: "[-f0] [-f1]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			options := flagOptions(tt.count)
			p := newTestParser(t, options)
			b := ansi.New(0)
			p.newUsageRenderer(p.reg, options, tt.required, tt.requires).render(b)
			assert.Equal(t, tt.expected, b.String())
		})
	}
}

func TestUsageRenderer_Fragments(t *testing.T) {
	tests := []struct {
		name     string
		option   *Option
		expected string
	}{
		{
			name:     "single",
			option:   &Option{Key: "o", Kind: KindSingle, Names: []string{"-o"}, ParamName: "<file>"},
			expected: "[-o <file>]",
		},
		{
			name:     "default param name",
			option:   &Option{Key: "o", Kind: KindSingle, Names: []string{"-o"}},
			expected: "[-o <param>]",
		},
		{
			name:     "inline",
			option:   &Option{Key: "o", Kind: KindSingle, Names: []string{"-o"}, ParamName: "<file>", Inline: InlineRequired},
			expected: "[-o=<file>]",
		},
		{
			name:     "array",
			option:   &Option{Key: "l", Kind: KindArray, Names: []string{"-l"}, ParamName: "<item>"},
			expected: "[-l [<item>...]]",
		},
		{
			name:     "array with minimum",
			option:   &Option{Key: "l", Kind: KindArray, Names: []string{"-l"}, ParamName: "<item>", MinParams: 1},
			expected: "[-l <item>...]",
		},
		{
			name:     "optional parameter",
			option:   &Option{Key: "f", Kind: KindFunction, Names: []string{"-f"}, ParamName: "<n>", MaxParams: 1},
			expected: "[-f [<n>]]",
		},
		{
			name:     "example",
			option:   &Option{Key: "d", Kind: KindSingle, Names: []string{"-d"}, Example: "2024-01-01"},
			expected: "[-d 2024-01-01]",
		},
		{
			name:     "positional",
			option:   &Option{Key: "files", Kind: KindArray, Positional: true, ParamName: "<file>", MinParams: 1, Required: true},
			expected: "<file>...",
		},
		{
			name:     "stdin",
			option:   &Option{Key: "i", Kind: KindSingle, Names: []string{"-i"}, ParamName: "<file>", Stdin: true},
			expected: "[-i <file>|-]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			options := Options{tt.option}
			p := newTestParser(t, options)
			b := ansi.New(0)
			p.newUsageRenderer(p.reg, options, usageRequired(options), usageRequires(options)).render(b)
			assert.Equal(t, tt.expected, b.String())
		})
	}
}

func TestUsageRequires(t *testing.T) {
	options := Options{
		{Key: "a", Requires: Key("b")},
		{Key: "b", Requires: KeyValue("c", Present)},
		{Key: "c", Requires: KeyValue("a", "x")},
		{Key: "d", Requires: AllOf(Key("a"))},
	}
	assert.Equal(t, map[string]string{"a": "b", "b": "c"}, usageRequires(options))
}
