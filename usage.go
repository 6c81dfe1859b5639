package optparse

import (
	"github.com/napalu/optparse/ansi"
	"github.com/napalu/optparse/types/queue"
)

// usageRenderer groups options into bracketed usage expressions. Options
// which require another option are nested in the group of the required one.
type usageRenderer struct {
	p          *Parser
	reg        *registry
	keys       []string
	selected   map[string]bool
	required   map[string]bool
	requires   map[string]string
	requiredBy map[string][]string
	visited    map[string]bool
}

func (p *Parser) newUsageRenderer(reg *registry, options []*Option, required []string, requires map[string]string) *usageRenderer {
	u := &usageRenderer{
		p:          p,
		reg:        reg,
		selected:   make(map[string]bool, len(options)),
		required:   make(map[string]bool),
		requires:   requires,
		requiredBy: make(map[string][]string),
		visited:    make(map[string]bool),
	}
	for _, opt := range options {
		u.keys = append(u.keys, opt.Key)
		u.selected[opt.Key] = true
	}
	for _, key := range u.keys {
		if r, ok := requires[key]; ok && u.selected[r] {
			u.requiredBy[r] = append(u.requiredBy[r], key)
		}
	}

	// required status propagates along requirements
	pending := queue.New(required...)
	for _, key := range pending.All() {
		u.required[key] = true
	}
	for pending.Len() > 0 {
		key, _ := pending.Dequeue()
		if r, ok := requires[key]; ok && !u.required[r] {
			u.required[r] = true
			pending.Push(r)
		}
	}
	return u
}

// render appends the usage of every selected option
func (u *usageRenderer) render(b *ansi.Buffer) {
	for _, key := range u.keys {
		if !u.visited[key] {
			u.group(b, u.root(key))
		}
	}
}

// root follows the requirements of key to the option heading its group. A
// cycle is broken at the first option met twice.
func (u *usageRenderer) root(key string) string {
	path := map[string]bool{}
	for {
		path[key] = true
		r, ok := u.requires[key]
		if !ok || !u.selected[r] || u.visited[r] {
			return key
		}
		if path[r] {
			return r
		}
		key = r
	}
}

func (u *usageRenderer) group(b *ansi.Buffer, key string) {
	optional := !u.required[key]
	if optional {
		b.Open("[")
	}
	u.chain(b, key)
	if optional {
		b.Close("]")
	}
}

// chain renders key followed by the options it requires, then nests the
// groups of the options requiring it
func (u *usageRenderer) chain(b *ansi.Buffer, key string) {
	u.visited[key] = true
	u.p.fragment(b, u.reg.keys[key])
	if r, ok := u.requires[key]; ok && u.selected[r] && !u.visited[r] {
		u.chain(b, r)
	}
	for _, dep := range u.requiredBy[key] {
		if !u.visited[dep] {
			u.group(b, dep)
		}
	}
}

// fragment renders the usage of a single option
func (p *Parser) fragment(b *ansi.Buffer, opt *Option) {
	if !opt.Positional {
		p.styledWord(b, opt.Styles.Names, p.styles.Symbol, opt.PreferredName())
	}
	p.param(b, opt, !opt.Positional && opt.Inline == InlineRequired)
	if opt.Stdin && p.flags.StdinSymbol != "" {
		b.Close("|" + p.flags.StdinSymbol)
	}
}

// param renders the parameter of an option, glued to its name when the
// parameter must be inline
func (p *Parser) param(b *ansi.Buffer, opt *Option, glued bool) {
	text := paramText(opt)
	if text == "" {
		return
	}
	b.Style(styleOr(opt.Styles.Param, p.styles.String))
	if glued {
		b.Close("=" + text)
	} else {
		b.Word(text)
	}
	b.Unstyle()
}

func paramText(opt *Option) string {
	min, max := opt.Params()
	if max == 0 {
		return ""
	}
	if opt.Example != "" {
		return opt.Example
	}
	name := opt.ParamName
	if name == "" {
		name = "<param>"
	}
	switch {
	case min == 1 && max == 1:
		return name
	case min == 0 && max == 1:
		return "[" + name + "]"
	case min == 0:
		return "[" + name + "...]"
	}
	return name + "..."
}

func (p *Parser) styledWord(b *ansi.Buffer, st, fallback ansi.Style, text string) {
	b.Style(styleOr(st, fallback)).Word(text).Unstyle()
}

func styleOr(st, fallback ansi.Style) ansi.Style {
	if len(st) > 0 {
		return st
	}
	return fallback
}

// usageRequires derives the requirement adjacency of options whose
// requirement is a single option
func usageRequires(options []*Option) map[string]string {
	requires := make(map[string]string)
	for _, opt := range options {
		switch r := opt.Requires.(type) {
		case keyRequires:
			requires[opt.Key] = string(r)
		case keyValueRequires:
			if _, ok := r.expected.(presence); ok {
				requires[opt.Key] = r.key
			}
		}
	}
	return requires
}

func usageRequired(options []*Option) []string {
	var required []string
	for _, opt := range options {
		if opt.Required {
			required = append(required, opt.Key)
		}
	}
	return required
}
