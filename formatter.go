package optparse

import (
	"context"
	"regexp"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/napalu/optparse/ansi"
	"github.com/napalu/optparse/types"
	"github.com/napalu/optparse/types/orderedmap"
	"github.com/napalu/optparse/util"
)

const (
	nameIndent = 2
	columnGap  = 2
)

var headingStyle = ansi.Sty(color.Bold)

// DefaultSections are rendered when no help sections are configured
var DefaultSections = []HelpSection{
	{Kind: SectionUsage},
	{Kind: SectionGroups},
}

// render builds the help message of the options in reg
func (p *Parser) render(reg *registry, sections []HelpSection, filters []string, program string) ansi.Message {
	if len(sections) == 0 {
		sections = DefaultSections
	}
	visible := p.visible(reg, filters)

	var msg ansi.Message
	for _, sec := range sections {
		var bufs ansi.Message
		switch sec.Kind {
		case SectionText:
			bufs = p.textSection(sec)
		case SectionUsage:
			bufs = p.usageSection(reg, visible, sec, program)
		case SectionGroups:
			bufs = p.groupsSection(reg, visible, sec)
		}
		if len(bufs) == 0 {
			continue
		}
		if len(msg) > 0 {
			msg = append(msg, ansi.New(0).Break(2))
		}
		msg = append(msg, bufs...)
	}
	return msg
}

// visible returns the options which are not hidden and match the filters.
// Filters are joined into a case-insensitive regular expression over names
// and synopsis.
func (p *Parser) visible(reg *registry, filters []string) []*Option {
	var re *regexp.Regexp
	if len(filters) > 0 {
		var err error
		re, err = regexp.Compile("(?i)" + strings.Join(filters, "|"))
		if err != nil {
			quoted := make([]string, len(filters))
			for i, f := range filters {
				quoted[i] = regexp.QuoteMeta(f)
			}
			re = regexp.MustCompile("(?i)" + strings.Join(quoted, "|"))
		}
	}

	var options []*Option
	for _, opt := range reg.options {
		if opt.Hide {
			continue
		}
		if re != nil && !matches(re, opt) {
			continue
		}
		options = append(options, opt)
	}
	return options
}

func matches(re *regexp.Regexp, opt *Option) bool {
	if re.MatchString(opt.Synopsis) {
		return true
	}
	return slices.ContainsFunc(opt.Names, func(name string) bool {
		return name != "" && re.MatchString(name)
	})
}

func (p *Parser) heading(title string) *ansi.Buffer {
	return ansi.New(0).Style(headingStyle).Word(title).Unstyle()
}

func (p *Parser) textSection(sec HelpSection) ansi.Message {
	var msg ansi.Message
	if sec.Title != "" {
		msg = append(msg, p.heading(sec.Title), ansi.New(0).Break(1))
	}
	if strings.TrimSpace(sec.Text) != "" {
		msg = append(msg, ansi.New(sec.Indent).Split(sec.Text, nil))
	}
	return msg
}

// usageSection renders the title, the program name and the usage as hooked
// buffers, so that wrapped usage lines start after the program name
func (p *Parser) usageSection(reg *registry, visible []*Option, sec HelpSection, program string) ansi.Message {
	options := selectKeys(visible, sec.Filter, sec.Exclude)
	required := sec.Required
	if required == nil {
		required = usageRequired(options)
	}
	requires := sec.Requires
	if requires == nil {
		requires = usageRequires(options)
	}

	title := sec.Title
	if title == "" {
		title = p.bundle.TL(p.lang, types.HelpUsageKey)
	}
	head := p.heading(title)
	head.Indent = sec.Indent
	column := sec.Indent + head.MaxLineLen() + 1

	tail := head
	if program != "" {
		prog := ansi.New(column).Word(program)
		tail.Hook = prog
		tail = prog
		column += prog.MaxLineLen() + 1
	}

	usage := ansi.New(column)
	p.newUsageRenderer(reg, options, required, requires).render(usage)
	usage.Split(sec.Comment, nil)
	tail.Hook = usage

	return ansi.Message{head}
}

func selectKeys(options []*Option, filter, exclude []string) []*Option {
	var out []*Option
	for _, opt := range options {
		if len(filter) > 0 && !slices.Contains(filter, opt.Key) {
			continue
		}
		if slices.Contains(exclude, opt.Key) {
			continue
		}
		out = append(out, opt)
	}
	return out
}

// groupsSection renders a table of options for each group, in order of
// first appearance
func (p *Parser) groupsSection(reg *registry, visible []*Option, sec HelpSection) ansi.Message {
	groups := orderedmap.New[string, []*Option]()
	for _, opt := range visible {
		if len(sec.Filter) > 0 && !slices.Contains(sec.Filter, opt.Group) {
			continue
		}
		if slices.Contains(sec.Exclude, opt.Group) {
			continue
		}
		list, _ := groups.Get(opt.Group)
		groups.Set(opt.Group, append(list, opt))
	}

	var msg ansi.Message
	for group, options := range groups.All() {
		title := group
		if title == "" {
			title = sec.Title
		}
		if title == "" {
			title = p.bundle.TL(p.lang, types.HelpOptionsKey)
		}
		if len(msg) > 0 {
			msg = append(msg, ansi.New(0).Break(2))
		}
		msg = append(msg, p.heading(title))
		msg = append(msg, p.table(reg, options, sec.Indent)...)
	}
	return msg
}

// table renders one row per option. Each row is a chain of three hooked
// buffers: names, parameter and description.
func (p *Parser) table(reg *registry, options []*Option, indent int) ansi.Message {
	slots := nameSlots(options)
	namesWidth := 0
	for i, w := range slots {
		if i > 0 {
			namesWidth++
		}
		namesWidth += w
	}

	paramIndent := indent + nameIndent + namesWidth + columnGap
	params := make([]*ansi.Buffer, len(options))
	paramWidth := 0
	for i, opt := range options {
		params[i] = ansi.New(paramIndent)
		p.param(params[i], opt, false)
		paramWidth = max(paramWidth, params[i].MaxLineLen())
	}
	descrIndent := paramIndent
	if paramWidth > 0 {
		descrIndent += paramWidth + columnGap
	}

	var msg ansi.Message
	for i, opt := range options {
		names := ansi.New(indent + nameIndent)
		p.names(names, opt, slots)
		descr := p.description(reg, opt)
		descr.Indent = descrIndent
		names.Hook = params[i]
		params[i].Hook = descr
		msg = append(msg, ansi.New(0).Break(1), names)
	}
	return msg
}

// nameSlots returns the width of each name slot, a separating comma
// included
func nameSlots(options []*Option) []int {
	var slots []int
	for _, opt := range options {
		for i, name := range opt.Names {
			if i >= len(slots) {
				slots = append(slots, 0)
			}
			w := len(name)
			if name != "" && hasNameAfter(opt.Names, i) {
				w++
			}
			slots[i] = max(slots[i], w)
		}
	}
	return slots
}

func hasNameAfter(names []string, i int) bool {
	return slices.ContainsFunc(names[i+1:], func(name string) bool { return name != "" })
}

// names renders the names of opt, each padded to its slot width so that
// names line up across rows
func (p *Parser) names(b *ansi.Buffer, opt *Option, slots []int) {
	lastName := -1
	for i, name := range opt.Names {
		if name != "" {
			lastName = i
		}
	}
	for i, name := range opt.Names {
		if i > lastName {
			break
		}
		if name == "" {
			b.Word(strings.Repeat(" ", slots[i]))
			continue
		}
		p.styledWord(b, opt.Styles.Names, p.styles.Symbol, name)
		if i == lastName {
			continue
		}
		b.Close("," + strings.Repeat(" ", slots[i]-len(name)-1))
	}
}

// description renders the help items of an option in a fixed order
func (p *Parser) description(reg *registry, opt *Option) *ansi.Buffer {
	b := ansi.New(0)
	if len(opt.Styles.Description) > 0 {
		b.Style(opt.Styles.Description)
	}
	item := func(key string, flags ansi.FormatFlags, args ...any) {
		b.Format(&p.styles, p.bundle.TL(p.lang, key), flags, args...)
	}

	b.Split(opt.Synopsis, nil)
	if opt.Cluster != "" {
		item(types.HelpClusterKey, ansi.FormatFlags{}, symbols(strings.Split(opt.Cluster, "")))
	}
	if min, max := opt.Params(); max != 0 && (min != 1 || max != 1) {
		switch {
		case min == 0 && util.Unbounded(max):
			item(types.HelpParamCountKey, ansi.FormatFlags{Alt: 0})
		case min == max:
			item(types.HelpParamCountKey, ansi.FormatFlags{Alt: 1}, min)
		case min == 0:
			item(types.HelpParamCountKey, ansi.FormatFlags{Alt: 2}, max)
		case util.Unbounded(max):
			item(types.HelpParamCountKey, ansi.FormatFlags{Alt: 3}, min)
		default:
			item(types.HelpParamCountKey, ansi.FormatFlags{Alt: 4}, min, max)
		}
	}
	if opt.Separator != "" {
		item(types.HelpSeparatorKey, ansi.FormatFlags{}, opt.Separator)
	}
	if opt.Positional {
		if opt.Marker != "" {
			item(types.HelpPositionalKey, ansi.FormatFlags{Alt: 1}, ansi.Symbol(opt.Marker))
		} else {
			item(types.HelpPositionalKey, ansi.FormatFlags{Alt: 0})
		}
	}
	switch opt.Inline {
	case InlineDisallowed:
		item(types.HelpInlineKey, ansi.FormatFlags{Alt: 0})
	case InlineRequired:
		item(types.HelpInlineKey, ansi.FormatFlags{Alt: 1})
	}
	if opt.Append {
		item(types.HelpAppendKey, ansi.FormatFlags{})
	}
	if len(opt.Choices) > 0 {
		item(types.HelpChoicesKey, ansi.FormatFlags{Open: "{", Close: "}"}, opt.Choices)
	}
	if opt.Regex != nil {
		item(types.HelpRegexKey, ansi.FormatFlags{}, opt.Regex)
	}
	if opt.Unique {
		item(types.HelpUniqueKey, ansi.FormatFlags{})
	}
	if opt.Limit > 0 {
		item(types.HelpLimitKey, ansi.FormatFlags{}, opt.Limit)
	}
	if opt.Requires != nil {
		item(types.HelpRequiresKey, ansi.FormatFlags{}, p.requirement(reg, opt.Requires, false))
	}
	if opt.Required {
		item(types.HelpRequiredKey, ansi.FormatFlags{})
	}
	switch d := opt.Default.(type) {
	case nil:
	case DefaultFunc, func(context.Context, Values) (any, error):
		item(types.HelpDefaultKey, ansi.FormatFlags{}, ansi.Symbol(p.bundle.TL(p.lang, types.RequiresCustomKey)))
	default:
		item(types.HelpDefaultKey, ansi.FormatFlags{Open: "[", Close: "]"}, d)
	}
	if len(opt.Sources) > 0 {
		item(types.HelpSourcesKey, ansi.FormatFlags{}, symbols(opt.Sources))
	}
	if opt.Stdin {
		item(types.HelpStdinKey, ansi.FormatFlags{})
	}
	if opt.RequiredIf != nil {
		item(types.HelpRequiredIfKey, ansi.FormatFlags{}, p.requirement(reg, opt.RequiredIf, false))
	}
	if opt.Deprecated != "" {
		item(types.HelpDeprecatedKey, ansi.FormatFlags{}, ansi.New(0).Split(opt.Deprecated, nil))
	}
	if opt.Link != nil {
		item(types.HelpLinkKey, ansi.FormatFlags{}, opt.Link)
	}
	if opt.Kind == KindHelp {
		if opt.UseCommand {
			item(types.HelpUseCommandKey, ansi.FormatFlags{})
		}
		if opt.UseFilter {
			item(types.HelpUseFilterKey, ansi.FormatFlags{})
		}
	}
	if opt.Break {
		item(types.HelpBreakKey, ansi.FormatFlags{})
	}
	return b
}
