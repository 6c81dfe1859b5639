package optparse

import (
	"net/url"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestParser_Help(t *testing.T) {
	p := newTestParser(t, basicOptions(), WithProgramName("tool"))
	expected := strings.Join([]string{
		"Usage: tool [-v] [-o <file>] [-h]",
		"",
		"Options:",
		"  -v, --verbose          Verbose output.",
		"  -o, --output   <file>  Output file. Defaults to 'out.txt'.",
		"  -h, --help             Print help.",
	}, "\n")
	assert.Equal(t, expected, p.Help().String())
}

func TestParser_Usage(t *testing.T) {
	p := newTestParser(t, basicOptions(), WithProgramName("tool"))
	assert.Equal(t, "Usage: tool [-v] [-o <file>] [-h]", p.Usage().String())
}

func TestParser_HelpWraps(t *testing.T) {
	options := Options{
		{Key: "name", Kind: KindSingle, Names: []string{"-n"}, ParamName: "<name>",
			Synopsis: "The name of the thing which is being processed by the tool."},
	}
	p := newTestParser(t, options, WithHelpSections(HelpSection{Kind: SectionGroups}))
	expected := strings.Join([]string{
		"Options:",
		"  -n  <name>  The name of the thing",
		"              which is being processed",
		"              by the tool.",
	}, "\n")
	assert.Equal(t, expected, p.Help().Wrap(40, false, true))
}

func TestParser_HelpSections(t *testing.T) {
	options := Options{
		{Key: "a", Kind: KindFlag, Names: []string{"-a"}, Synopsis: "A.", Group: "Basic"},
		{Key: "b", Kind: KindFlag, Names: []string{"-b"}, Synopsis: "B.", Group: "Advanced"},
		{Key: "c", Kind: KindFlag, Names: []string{"-c"}, Synopsis: "C.", Group: "Basic"},
		{Key: "d", Kind: KindFlag, Names: []string{"-d"}, Synopsis: "D.", Hide: true},
	}
	p := newTestParser(t, options, WithProgramName("tool"), WithHelpSections(
		HelpSection{Kind: SectionText, Title: "About", Text: "Does things."},
		HelpSection{Kind: SectionUsage, Title: "Synopsis:", Exclude: []string{"b"}, Comment: "..."},
		HelpSection{Kind: SectionGroups, Exclude: []string{"Advanced"}},
	))
	expected := strings.Join([]string{
		"About",
		"Does things.",
		"",
		"Synopsis: tool [-a] [-c] ...",
		"",
		"Basic",
		"  -a  A.",
		"  -c  C.",
	}, "\n")
	assert.Equal(t, expected, p.Help().String())
}

func TestParser_HelpNameColumns(t *testing.T) {
	options := Options{
		{Key: "a", Kind: KindFlag, Names: []string{"-a", "--all"}},
		{Key: "b", Kind: KindFlag, Names: []string{"", "--brief"}},
		{Key: "c", Kind: KindFlag, Names: []string{"-c"}},
	}
	p := newTestParser(t, options, WithHelpSections(HelpSection{Kind: SectionGroups}))
	expected := strings.Join([]string{
		"Options:",
		"  -a, --all",
		"      --brief",
		"  -c",
	}, "\n")
	assert.Equal(t, expected, p.Help().String())
}

func TestParser_HelpItems(t *testing.T) {
	link, _ := url.Parse("https://example.com/docs")
	tests := []struct {
		name     string
		option   *Option
		expected string
	}{
		{
			name:     "cluster",
			option:   &Option{Key: "x", Kind: KindFlag, Names: []string{"-x"}, Cluster: "xy"},
			expected: "Can be clustered with x, y.",
		},
		{
			name:     "param count",
			option:   &Option{Key: "x", Kind: KindFunction, Names: []string{"-x"}, MinParams: 1, MaxParams: 3},
			expected: "Accepts between 1 and 3 parameters.",
		},
		{
			name:     "unbounded array",
			option:   &Option{Key: "x", Kind: KindArray, Names: []string{"-x"}},
			expected: "Accepts multiple parameters.",
		},
		{
			name:     "separator",
			option:   &Option{Key: "x", Kind: KindArray, Names: []string{"-x"}, MinParams: 1, MaxParams: 1, Separator: ","},
			expected: "Values are delimited by ','.",
		},
		{
			name:     "positional with marker",
			option:   &Option{Key: "x", Kind: KindArray, Positional: true, Marker: "--", MinParams: 1, MaxParams: 1},
			expected: "Accepts positional arguments that may be preceded by --.",
		},
		{
			name:     "inline",
			option:   &Option{Key: "x", Kind: KindSingle, Names: []string{"-x"}, Inline: InlineDisallowed},
			expected: "Disallows inline parameters.",
		},
		{
			name:     "choices",
			option:   &Option{Key: "x", Kind: KindSingle, Names: []string{"-x"}, Choices: []string{"a", "b"}},
			expected: "Values must be one of {'a', 'b'}.",
		},
		{
			name:     "regex",
			option:   &Option{Key: "x", Kind: KindSingle, Names: []string{"-x"}, Regex: regexp.MustCompile(`\d+`)},
			expected: `Values must match the regex /\d+/.`,
		},
		{
			name:     "requires",
			option:   &Option{Key: "x", Kind: KindFlag, Names: []string{"-x"}, Requires: Not(Key("x"))},
			expected: "Requires no -x.",
		},
		{
			name:     "required",
			option:   &Option{Key: "x", Kind: KindFlag, Names: []string{"-x"}, Required: true},
			expected: "Always required.",
		},
		{
			name:     "default list",
			option:   &Option{Key: "x", Kind: KindArray, Names: []string{"-x"}, MinParams: 1, MaxParams: 1, Default: []string{"a", "b"}},
			expected: "Defaults to ['a', 'b'].",
		},
		{
			name:     "default callback",
			option:   &Option{Key: "x", Kind: KindSingle, Names: []string{"-x"}, Default: DefaultFunc(nil)},
			expected: "Defaults to <custom>.",
		},
		{
			name:     "sources",
			option:   &Option{Key: "x", Kind: KindSingle, Names: []string{"-x"}, Sources: []string{"X", "/etc/x"}},
			expected: "If not specified, it will be read from X, /etc/x.",
		},
		{
			name:     "deprecated",
			option:   &Option{Key: "x", Kind: KindFlag, Names: []string{"-x"}, Deprecated: "-y"},
			expected: "Deprecated for -y.",
		},
		{
			name:     "link",
			option:   &Option{Key: "x", Kind: KindFlag, Names: []string{"-x"}, Link: link},
			expected: "Refer to https://example.com/docs for details.",
		},
		{
			name:     "break",
			option:   &Option{Key: "x", Kind: KindFlag, Names: []string{"-x"}, Break: true},
			expected: "Stops parsing remaining arguments.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestParser(t, Options{tt.option})
			assert.Equal(t, tt.expected, p.description(p.reg, tt.option).String())
		})
	}
}

func TestParser_HelpLanguage(t *testing.T) {
	p := newTestParser(t, basicOptions(), WithLanguage(language.German), WithProgramName("tool"))
	help := p.Help().String()
	assert.True(t, strings.HasPrefix(help, "Verwendung: tool"))
}

func TestParser_HelpStyles(t *testing.T) {
	p := newTestParser(t, basicOptions(), WithProgramName("tool"))
	styled := p.Help().Wrap(0, true, true)
	assert.Contains(t, styled, "\x1b[1m")
	assert.Equal(t, p.Help().String(), ansiEscape.ReplaceAllString(styled, ""))
}

var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func TestParser_Visible(t *testing.T) {
	p := newTestParser(t, basicOptions())
	keys := func(options []*Option) []string {
		var out []string
		for _, opt := range options {
			out = append(out, opt.Key)
		}
		return out
	}
	assert.Equal(t, []string{"verbose", "output", "help"}, keys(p.visible(p.reg, nil)))
	assert.Equal(t, []string{"output"}, keys(p.visible(p.reg, []string{"FILE"})))
	assert.Equal(t, []string{"verbose", "help"}, keys(p.visible(p.reg, []string{"verb", "help"})))
	assert.Empty(t, keys(p.visible(p.reg, []string{"("})))
}
