package optparse

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/napalu/optparse/ansi"
	"github.com/napalu/optparse/env"
	"github.com/napalu/optparse/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestNewParser_Configuration(t *testing.T) {
	p, err := NewParser(nil,
		WithProgramName("tool"),
		WithClusterPrefix("-"),
		WithOptionPrefix("--"),
		WithStdinSymbol("@"),
		WithCompletionIndex(3),
		WithCompletionJSON(true),
		WithSimilarity(0.8),
	)
	require.NoError(t, err)
	assert.Equal(t, Flags{
		ProgramName:    "tool",
		CompIndex:      3,
		ClusterPrefix:  "-",
		OptionPrefix:   "--",
		StdinSymbol:    "@",
		Similarity:     0.8,
		CompletionJSON: true,
	}, p.flags)
}

func TestNewParser_Errors(t *testing.T) {
	tests := []struct {
		name   string
		config ConfigureParserFunc
		target error
	}{
		{name: "negative completion index", config: WithCompletionIndex(-1)},
		{name: "nil resolver", config: WithResolver(nil)},
		{name: "unknown language", config: WithLanguage(language.Japanese), target: i18n.ErrLanguageNotFound},
		{name: "nil bundle", config: WithBundle(nil), target: i18n.ErrEmptyTranslations},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewParser(nil, tt.config)
			assert.Nil(t, p)
			require.Error(t, err)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
		})
	}
}

func TestWithSimilarity(t *testing.T) {
	tests := []struct {
		threshold float64
		expected  float64
	}{
		{threshold: -1, expected: 0},
		{threshold: 0.5, expected: 0.5},
		{threshold: 2, expected: 1},
	}
	for _, tt := range tests {
		p, err := NewParser(nil, WithSimilarity(tt.threshold))
		require.NoError(t, err)
		assert.Equal(t, tt.expected, p.flags.Similarity)
	}

	p, err := NewParser(nil, WithFlags(Flags{Similarity: 3}))
	require.NoError(t, err)
	assert.Equal(t, 1.0, p.flags.Similarity)
}

func TestWithOptionPrefix(t *testing.T) {
	options := Options{
		{Key: "list", Kind: KindArray, Names: []string{"--list"}},
	}
	p := newTestParser(t, options, WithOptionPrefix("--"))
	_, err := p.Parse(context.Background(), []string{"--list", "a", "--unknown"})
	assert.ErrorIs(t, err, ErrUnknownOption)

	p = newTestParser(t, options)
	values, err := p.Parse(context.Background(), []string{"--list", "a", "--unknown"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "--unknown"}, values["list"])
}

func TestWithStdinSymbol(t *testing.T) {
	options := Options{
		{Key: "in", Kind: KindSingle, Names: []string{"-i"}, Stdin: true},
	}
	resolver := &env.MapResolver{Stdin: "data"}
	p := newTestParser(t, options, WithResolver(resolver), WithStdinSymbol("@"))
	ctx := context.Background()

	values, err := p.Parse(ctx, []string{"-i", "@"})
	require.NoError(t, err)
	assert.Equal(t, "data", values["in"])

	values, err = p.Parse(ctx, []string{"-i", "-"})
	require.NoError(t, err)
	assert.Equal(t, "-", values["in"])
}

func TestWithBundle(t *testing.T) {
	bundle, err := i18n.NewBundle()
	require.NoError(t, err)
	// a partial language is rejected
	assert.Error(t, bundle.AddLanguage(language.Spanish, map[string]string{
		"optparse.error.missing_required_option": "Opción #0 es obligatoria.",
	}))

	p := newTestParser(t, Options{{Key: "r", Kind: KindFlag, Names: []string{"-r"}, Required: true}},
		WithBundle(bundle), WithLanguage(language.German))
	_, err = p.Parse(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, "Option -r ist erforderlich.", err.Error())
}

func TestWithStyles(t *testing.T) {
	styles := ansi.DefaultStyles
	styles.Symbol = ansi.Sty()
	p := newTestParser(t, Options{{Key: "r", Kind: KindFlag, Names: []string{"-r"}, Required: true}}, WithStyles(styles))
	_, err := p.Parse(context.Background(), nil)
	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "Option -r is required.", perr.Wrap(0, true, true))
}

func TestWithDebugOutput(t *testing.T) {
	var buf bytes.Buffer
	options := Options{
		{Key: "a", Kind: KindFlag, Names: []string{"-a"}, Cluster: "a"},
		{Key: "b", Kind: KindFlag, Names: []string{"-b"}, Cluster: "b"},
	}
	p := newTestParser(t, options, WithClusterPrefix("-"), WithDebugOutput(&buf))
	_, err := p.Parse(context.Background(), []string{"-ab"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `optparse: cluster "-ab" expanded to [-a -b]`)
}

func TestFlagsFromEnv(t *testing.T) {
	program := filepath.Base(os.Args[0])
	tests := []struct {
		name     string
		env      map[string]string
		expected Flags
	}{
		{
			name:     "no completion",
			env:      map[string]string{},
			expected: Flags{ProgramName: program, StdinSymbol: "-", Similarity: 0.6},
		},
		{
			name:     "completion point",
			env:      map[string]string{"COMP_LINE": "tool --verbose", "COMP_POINT": "6"},
			expected: Flags{ProgramName: program, StdinSymbol: "-", Similarity: 0.6, CompIndex: 6},
		},
		{
			name:     "completion at end of line",
			env:      map[string]string{"COMP_LINE": "tool --v", "COMP_POINT": "bad"},
			expected: Flags{ProgramName: program, StdinSymbol: "-", Similarity: 0.6, CompIndex: 8},
		},
		{
			name:     "empty line",
			env:      map[string]string{"COMP_LINE": ""},
			expected: Flags{ProgramName: program, StdinSymbol: "-", Similarity: 0.6, CompIndex: 1},
		},
		{
			name:     "json",
			env:      map[string]string{"COMP_LINE": "tool ", "OPTPARSE_COMPLETION_JSON": "1"},
			expected: Flags{ProgramName: program, StdinSymbol: "-", Similarity: 0.6, CompIndex: 5, CompletionJSON: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FlagsFromEnv(&env.MapResolver{Env: tt.env}))
		})
	}
}

func TestParser_ParseOSArgsCompletion(t *testing.T) {
	options := Options{
		{Key: "verbose", Kind: KindFlag, Names: []string{"--verbose"}},
	}
	resolver := &env.MapResolver{Env: map[string]string{"COMP_LINE": "tool --ve"}}
	p := newTestParser(t, options, WithResolver(resolver), WithFlags(FlagsFromEnv(resolver)))
	_, err := p.ParseOSArgs(context.Background())
	assert.Equal(t, ansi.TextMessage{"--verbose"}, err)
}

func TestEnvName(t *testing.T) {
	assert.Equal(t, "APP_DRY_RUN", EnvName("app", "dryRun"))
	assert.Equal(t, "OUTPUT_FILE", EnvName("", "output-file"))
}
