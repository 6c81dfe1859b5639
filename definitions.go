package optparse

import (
	"context"
	"net/url"
	"regexp"

	"github.com/napalu/optparse/ansi"
)

// Kind discriminates the option variants
type Kind int

const (
	// KindFlag denotes a niladic option whose value is true or the result of Parse
	KindFlag Kind = iota
	// KindSingle denotes an option accepting exactly one parameter
	KindSingle
	// KindArray denotes an option accepting a list of parameters
	KindArray
	// KindFunction denotes an option whose parameters are handed to Parse as a whole
	KindFunction
	// KindCommand denotes an option which parses the remaining arguments with a nested schema
	KindCommand
	// KindHelp denotes an option which prints the help message
	KindHelp
	// KindVersion denotes an option which prints the version
	KindVersion
)

func (k Kind) String() string {
	switch k {
	case KindFlag:
		return "flag"
	case KindSingle:
		return "single"
	case KindArray:
		return "array"
	case KindFunction:
		return "function"
	case KindCommand:
		return "command"
	case KindHelp:
		return "help"
	case KindVersion:
		return "version"
	}
	return "unknown"
}

// InlineMode controls whether a parameter may be given as name=value
type InlineMode int

const (
	InlineAllowed InlineMode = iota
	InlineDisallowed
	InlineRequired
)

// Values holds parsed option values by option key
type Values map[string]any

// ParamInfo is passed to parameter callbacks
type ParamInfo struct {
	// Values parsed so far
	Values Values
	// Key of the option
	Key string
	// Name is the option name as it appeared on the command line
	Name string
	// Index of the option name in the argument list
	Index int
	// Params are the parameters being applied
	Params []string
	// Comp is true when parsing for word completion
	Comp bool
}

// ParseFunc converts the parameters of an option to its value
type ParseFunc func(ctx context.Context, info *ParamInfo) (any, error)

// DefaultFunc computes the default value of an option which was not supplied
type DefaultFunc func(ctx context.Context, values Values) (any, error)

// CompleteFunc returns completion words for the last parameter in info.Params
type CompleteFunc func(ctx context.Context, info *ParamInfo) ([]string, error)

// CommandFunc computes the value of a command from the values of its nested options
type CommandFunc func(ctx context.Context, info *ParamInfo, values Values) (any, error)

// VersionFunc resolves the version string
type VersionFunc func(ctx context.Context) (string, error)

// NormalizeFunc transforms a parameter before it is validated
type NormalizeFunc func(string) string

// OptionStyles override the help styles of an option
type OptionStyles struct {
	Names       ansi.Style
	Param       ansi.Style
	Description ansi.Style
}

// Option describes a command-line option. Which fields are meaningful
// depends on Kind.
type Option struct {
	Key  string
	Kind Kind

	// Names are the option names. An empty name leaves a gap in the help
	// name column so that names of sibling options line up.
	Names []string
	// Positional options receive arguments which are not option names
	Positional bool
	// Marker is a literal name after which every argument is positional
	Marker string

	// MinParams and MaxParams bound the parameter count. A negative
	// MaxParams means unbounded, as does zero for arrays.
	MinParams int
	MaxParams int
	// Cluster holds letters by which the option can be clustered
	Cluster string
	Required bool
	// Default is a value or a DefaultFunc
	Default any
	// Sources are environment variable names or file references (file://
	// URLs or paths) read when the option is not supplied
	Sources []string
	// Stdin reads standard input when the option is not supplied, or when
	// its parameter is the stdin symbol
	Stdin bool
	// Break stops parsing once the option has been processed
	Break bool
	Inline InlineMode

	Choices   []string
	Regex     *regexp.Regexp
	Limit     int
	Unique    bool
	Separator string
	Append    bool
	Normalize NormalizeFunc

	Parse    ParseFunc
	Complete CompleteFunc
	Exec     CommandFunc
	Resolve  VersionFunc

	// Requires must hold when the option is supplied
	Requires Requires
	// RequiredIf makes the option required when it holds
	RequiredIf Requires

	// Options is the nested schema of a command. LazyOptions is called
	// only when the command is parsed or its help is requested.
	Options       Options
	LazyOptions   func() Options
	ClusterPrefix string
	OptionPrefix  string

	// SaveMessage stores the help or version message as the option value
	// instead of returning it
	SaveMessage bool
	// UseCommand selects the help of the command named by the next argument
	UseCommand bool
	// UseFilter restricts help to options matching the remaining arguments
	UseFilter bool
	Sections  []HelpSection
	Version   string

	Synopsis   string
	Deprecated string
	Link       *url.URL
	ParamName  string
	Example    string
	Group      string
	Hide       bool
	Styles     OptionStyles
}

// Options is an ordered option schema
type Options []*Option

// PreferredName is the first name, falling back to the marker and then to the key
func (o *Option) PreferredName() string {
	for _, name := range o.Names {
		if name != "" {
			return name
		}
	}
	if o.Marker != "" {
		return o.Marker
	}
	return o.Key
}

// Params returns the parameter count bounds of the option
func (o *Option) Params() (min, max int) {
	switch o.Kind {
	case KindSingle:
		return 1, 1
	case KindArray:
		if o.MaxParams == 0 {
			return o.MinParams, -1
		}
		return o.MinParams, o.MaxParams
	case KindFunction:
		return o.MinParams, o.MaxParams
	}
	return 0, 0
}

// niladic options take no parameters
func (o *Option) niladic() bool {
	_, max := o.Params()
	return max == 0
}

func (o *Option) nested() Options {
	if o.Options == nil && o.LazyOptions != nil {
		return o.LazyOptions()
	}
	return o.Options
}

// SectionKind discriminates help sections
type SectionKind int

const (
	// SectionText is free text
	SectionText SectionKind = iota
	// SectionUsage is the usage line
	SectionUsage
	// SectionGroups is the option table, one table per group
	SectionGroups
)

// HelpSection is a part of the help message
type HelpSection struct {
	Kind SectionKind
	// Title is the section heading. Usage and group sections fall back to
	// translated headings.
	Title  string
	Text   string
	Indent int
	// Filter and Exclude select option keys for the usage section, or
	// group names for the groups section
	Filter  []string
	Exclude []string
	// Required lists keys which are always required. Defaults to the keys
	// of required options.
	Required []string
	// Requires maps option keys to the key they require. Defaults to the
	// options whose requirement is a single key.
	Requires map[string]string
	// Comment follows the usage
	Comment string
}

// Flags control parsing
type Flags struct {
	// ProgramName is printed in the usage
	ProgramName string
	// CompIndex is the cursor position in the completion line. A positive
	// value enables completion.
	CompIndex int
	// ClusterPrefix enables clusters of option letters after it
	ClusterPrefix string
	// OptionPrefix marks arguments which are always option names
	OptionPrefix string
	// StdinSymbol is the parameter replaced by standard input
	StdinSymbol string
	// Similarity is the threshold for suggesting similar names, in [0, 1]
	Similarity float64
	// CompletionJSON returns completion words as JSON objects
	CompletionJSON bool
}

// DefaultFlags are used when no flags are configured
var DefaultFlags = Flags{
	StdinSymbol: "-",
	Similarity:  0.6,
}
