package optparse

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/napalu/optparse/ansi"
	"github.com/napalu/optparse/env"
	"github.com/napalu/optparse/i18n"
	"github.com/napalu/optparse/util"
	"golang.org/x/text/language"
)

// ConfigureParserFunc configures a Parser. It reports failures through err.
type ConfigureParserFunc func(p *Parser, err *error)

// Completion environment variables
const (
	EnvCompLine       = "COMP_LINE"
	EnvCompPoint      = "COMP_POINT"
	EnvCompletionJSON = "OPTPARSE_COMPLETION_JSON"
)

// WithFlags replaces all parsing flags
func WithFlags(flags Flags) ConfigureParserFunc {
	return func(p *Parser, err *error) {
		flags.Similarity = util.Clamp(flags.Similarity, 0, 1)
		p.flags = flags
	}
}

// WithProgramName sets the program name printed in the usage
func WithProgramName(name string) ConfigureParserFunc {
	return func(p *Parser, err *error) {
		p.flags.ProgramName = name
	}
}

// WithClusterPrefix enables clusters of option letters, e.g. "-" for "-abc"
func WithClusterPrefix(prefix string) ConfigureParserFunc {
	return func(p *Parser, err *error) {
		p.flags.ClusterPrefix = prefix
	}
}

// WithOptionPrefix sets the prefix of arguments which are never parameters
func WithOptionPrefix(prefix string) ConfigureParserFunc {
	return func(p *Parser, err *error) {
		p.flags.OptionPrefix = prefix
	}
}

// WithStdinSymbol sets the parameter which stands for standard input. An
// empty symbol disables it.
func WithStdinSymbol(symbol string) ConfigureParserFunc {
	return func(p *Parser, err *error) {
		p.flags.StdinSymbol = symbol
	}
}

// WithCompletionIndex enables completion at the given cursor position of
// the completion line
func WithCompletionIndex(index int) ConfigureParserFunc {
	return func(p *Parser, err *error) {
		if index < 0 {
			*err = fmt.Errorf("invalid completion index: %d", index)
			return
		}
		p.flags.CompIndex = index
	}
}

// WithCompletionJSON makes completion return JSON words with descriptions
func WithCompletionJSON(value bool) ConfigureParserFunc {
	return func(p *Parser, err *error) {
		p.flags.CompletionJSON = value
	}
}

// WithSimilarity sets the threshold for suggesting similar option names.
// Values are clamped to [0, 1]; 1 disables suggestions for all but
// case variants.
func WithSimilarity(threshold float64) ConfigureParserFunc {
	return func(p *Parser, err *error) {
		p.flags.Similarity = util.Clamp(threshold, 0, 1)
	}
}

// WithResolver sets the source of environment variables, files and
// standard input
func WithResolver(resolver env.Resolver) ConfigureParserFunc {
	return func(p *Parser, err *error) {
		if resolver == nil {
			*err = fmt.Errorf("nil resolver")
			return
		}
		p.resolver = resolver
	}
}

// WithStyles sets the styles of formatted values
func WithStyles(styles ansi.FormatStyles) ConfigureParserFunc {
	return func(p *Parser, err *error) {
		p.styles = styles
	}
}

// WithBundle replaces the translation bundle
func WithBundle(bundle *i18n.Bundle) ConfigureParserFunc {
	return func(p *Parser, err *error) {
		if bundle == nil {
			*err = i18n.ErrEmptyTranslations
			return
		}
		p.bundle = bundle
		if !bundle.HasLanguage(p.lang) {
			p.lang = bundle.DefaultLanguage()
		}
	}
}

// WithLanguage selects the language of messages. The bundle must hold it,
// so WithBundle must come first when both are used.
func WithLanguage(lang language.Tag) ConfigureParserFunc {
	return func(p *Parser, err *error) {
		if !p.bundle.HasLanguage(lang) {
			*err = fmt.Errorf(FmtErrorWithString, i18n.ErrLanguageNotFound, lang)
			return
		}
		p.lang = lang
	}
}

// WithStdout sets the writer of messages printed by Exit
func WithStdout(w io.Writer) ConfigureParserFunc {
	return func(p *Parser, err *error) {
		p.stdout = w
	}
}

// WithStderr sets the writer of errors and warnings
func WithStderr(w io.Writer) ConfigureParserFunc {
	return func(p *Parser, err *error) {
		p.stderr = w
	}
}

// WithDebugOutput traces parsing decisions to w
func WithDebugOutput(w io.Writer) ConfigureParserFunc {
	return func(p *Parser, err *error) {
		p.debug = log.New(w, "optparse: ", log.Lmsgprefix)
	}
}

// WithHelpSections sets the sections of help messages
func WithHelpSections(sections ...HelpSection) ConfigureParserFunc {
	return func(p *Parser, err *error) {
		p.sections = sections
	}
}

// FlagsFromEnv returns the default flags with the program name taken from
// the process arguments. A COMP_LINE variable enables completion at
// COMP_POINT, or at the end of the line when COMP_POINT is unset.
func FlagsFromEnv(resolver env.Resolver) Flags {
	flags := DefaultFlags
	if len(os.Args) > 0 {
		flags.ProgramName = filepath.Base(os.Args[0])
	}

	if line, ok := resolver.Lookup(EnvCompLine); ok {
		flags.CompIndex = len(line)
		if point, ok := resolver.Lookup(EnvCompPoint); ok {
			if n, err := strconv.Atoi(point); err == nil && n > 0 {
				flags.CompIndex = n
			}
		}
		if flags.CompIndex == 0 {
			// an empty line still completes the first word
			flags.CompIndex = 1
		}
	}
	if v, ok := resolver.Lookup(EnvCompletionJSON); ok {
		flags.CompletionJSON, _ = strconv.ParseBool(v)
	}
	return flags
}

// EnvName derives an environment variable name from an option key, e.g.
// EnvName("app", "dryRun") returns "APP_DRY_RUN"
func EnvName(prefix, key string) string {
	return env.Name(prefix, key)
}
