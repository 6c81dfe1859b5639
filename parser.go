package optparse

import (
	"context"
	"errors"
	"strings"

	"github.com/napalu/optparse/ansi"
	"github.com/napalu/optparse/parse"
	"github.com/napalu/optparse/util"
)

// parsingContext holds the state of one parse call, or of one command level
type parsingContext struct {
	p          *Parser
	reg        *registry
	values     Values
	state      parse.State
	supplied   map[string]bool
	warned     map[string]bool
	completing bool
	warning    *ansi.WarnMessage
	flags      Flags
}

// collection is an option collecting parameters
type collection struct {
	key    string
	opt    *Option
	name   string
	index  int
	min    int
	max    int
	marker bool
	params []string
}

func (c *collection) full() bool {
	return !util.Unbounded(c.max) && len(c.params) >= c.max
}

type tokenKind int

const (
	tokenOptionName tokenKind = iota
	tokenUnknownOption
	tokenPositional
	tokenAfterMarker
	tokenCluster
)

// token is a classified argument
type token struct {
	kind     tokenKind
	key      string
	opt      *Option
	name     string
	value    string
	hasValue bool
}

func (p *Parser) newContext(reg *registry, values Values, args []string, flags Flags, warning *ansi.WarnMessage) *parsingContext {
	return &parsingContext{
		p:          p,
		reg:        reg,
		values:     values,
		state:      parse.NewState(args),
		supplied:   make(map[string]bool),
		warned:     make(map[string]bool),
		completing: flags.CompIndex > 0,
		warning:    warning,
		flags:      flags,
	}
}

// parse runs the token loop, then resolves defaults and checks requirements
func (c *parsingContext) parse(ctx context.Context) error {
	if c.completing && c.state.Len() == 0 {
		return c.completeName(ctx, "")
	}
	stop, err := c.scan(ctx)
	if err != nil {
		return err
	}
	if stop && c.completing {
		return nil
	}
	if err := c.resolveDefaults(ctx); err != nil {
		return c.fail(err)
	}
	return c.fail(c.checkRequirements(ctx))
}

// scan consumes the tokens. It reports whether the loop ended early.
func (c *parsingContext) scan(ctx context.Context) (bool, error) {
	var cur *collection
	for c.state.Advance() {
		tok := c.state.Current()
		last := c.state.Last()

		if cur != nil {
			if c.isParam(cur, tok) {
				if c.completing && last {
					return true, c.completeParam(ctx, cur, tok, "")
				}
				cur.params = append(cur.params, tok)
				if !cur.full() {
					continue
				}
				stop, err := c.settle(c.commit(ctx, cur))
				if err != nil || stop {
					return stop, err
				}
				if cur.marker {
					cur = c.restart(cur)
				} else {
					cur = nil
				}
				continue
			}
			stop, err := c.settle(c.commit(ctx, cur))
			if err != nil || stop {
				return stop, err
			}
			cur = nil
		}

		t := c.classify(tok)
		c.p.debug.Printf("token %q classified as %d", tok, t.kind)
		switch t.kind {
		case tokenUnknownOption:
			if c.completing {
				if last {
					return true, c.completeName(ctx, tok)
				}
				continue
			}
			return true, c.p.errUnknownOption(tok, util.SimilarNames(tok, c.reg.allNames(), c.flags.Similarity))
		case tokenCluster:
			if c.completing && last {
				return true, c.completeName(ctx, tok)
			}
			if err := c.fail(c.expandCluster(tok, t)); err != nil {
				return true, err
			}
		case tokenPositional:
			if c.completing && last {
				return true, c.completeName(ctx, tok)
			}
			cur = c.begin(t.key, t.opt, c.reg.name(t.key), c.state.Pos())
			cur.params = append(cur.params, tok)
			if cur.full() {
				stop, err := c.settle(c.commit(ctx, cur))
				if err != nil || stop {
					return stop, err
				}
				cur = nil
			}
		case tokenAfterMarker:
			if c.completing && last {
				return true, c.completeName(ctx, tok)
			}
			if t.hasValue {
				if err := c.fail(c.p.newError(ItemDisallowedInlineParameter, ansi.FormatFlags{Alt: 1}, ansi.Symbol(t.name))); err != nil {
					return true, err
				}
				continue
			}
			cur = c.begin(t.key, t.opt, t.name, c.state.Pos())
			cur.marker = true
		case tokenOptionName:
			if c.completing && last {
				if t.hasValue {
					info := c.begin(t.key, t.opt, t.name, c.state.Pos())
					return true, c.completeParam(ctx, info, t.value, t.name+"=")
				}
				return true, c.completeName(ctx, tok)
			}
			next, stop, err := c.handleOption(ctx, t)
			if stop, err = c.settle(stop, err); err != nil || stop {
				return stop, err
			}
			cur = next
		}
	}

	if cur != nil {
		return c.settle(c.commit(ctx, cur))
	}
	return false, nil
}

// fail swallows user-input and callback errors in completion mode
func (c *parsingContext) fail(err error) error {
	if err == nil || !c.completing {
		return err
	}
	var msg ansi.Wrapper
	var perr *Error
	if errors.As(err, &msg) && !errors.As(err, &perr) {
		return err
	}
	c.p.debug.Printf("completion: ignoring %v", err)
	return nil
}

// settle passes the outcome of an option through fail. A swallowed error
// does not end the scan.
func (c *parsingContext) settle(stop bool, err error) (bool, error) {
	if err == nil {
		return stop, nil
	}
	if err = c.fail(err); err != nil {
		return true, err
	}
	return false, nil
}

// isParam decides whether tok is a parameter of the collecting option
func (c *parsingContext) isParam(cur *collection, tok string) bool {
	if cur.marker {
		return true
	}
	if c.flags.OptionPrefix != "" && strings.HasPrefix(tok, c.flags.OptionPrefix) {
		return false
	}
	if len(cur.params) < cur.min {
		return true
	}
	switch c.classify(tok).kind {
	case tokenOptionName, tokenAfterMarker, tokenCluster:
		return false
	}
	return true
}

// classify resolves tok: exact names first, then the positional marker,
// then clusters and finally the positional option.
func (c *parsingContext) classify(tok string) token {
	name, value, hasValue := strings.Cut(tok, "=")
	if key, opt, ok := c.reg.lookup(name); ok {
		return token{kind: tokenOptionName, key: key, opt: opt, name: name, value: value, hasValue: hasValue}
	}
	if c.reg.marker != "" && name == c.reg.marker {
		key := c.reg.positional
		return token{kind: tokenAfterMarker, key: key, opt: c.reg.keys[key], name: name, value: value, hasValue: hasValue}
	}
	if prefix := c.flags.ClusterPrefix; prefix != "" && len(tok) > len(prefix) && strings.HasPrefix(tok, prefix) {
		letters := []rune(tok[len(prefix):])
		if key, opt, ok := c.reg.letter(letters[0]); ok {
			return token{kind: tokenCluster, key: key, opt: opt, name: string(letters[0])}
		}
	}
	if c.reg.positional != "" {
		key := c.reg.positional
		return token{kind: tokenPositional, key: key, opt: c.reg.keys[key]}
	}
	return token{kind: tokenUnknownOption, name: tok}
}

// expandCluster replaces a cluster by the names of its letters' options.
// When a letter does not resolve, the rest of the cluster is the inline
// parameter of the first letter.
func (c *parsingContext) expandCluster(tok string, t token) error {
	letters := []rune(tok[len(c.flags.ClusterPrefix):])
	rest := string(letters[1:])

	if len(letters) == 1 {
		c.state.Push(t.opt.PreferredName())
		return nil
	}
	for _, letter := range letters[1:] {
		if _, _, ok := c.reg.letter(letter); !ok {
			param := strings.TrimPrefix(rest, "=")
			c.p.debug.Printf("cluster %q: inline parameter %q", tok, param)
			c.state.Push(t.opt.PreferredName() + "=" + param)
			return nil
		}
	}

	names := make([]string, len(letters))
	for i, letter := range letters {
		_, opt, _ := c.reg.letter(letter)
		if _, max := opt.Params(); max != 0 && i < len(letters)-1 {
			return c.p.newError(ItemInvalidClusterOption, ansi.FormatFlags{}, ansi.Symbol(string(letter)))
		}
		names[i] = opt.PreferredName()
	}
	c.p.debug.Printf("cluster %q expanded to %v", tok, names)
	c.state.Push(names...)
	return nil
}

func (c *parsingContext) begin(key string, opt *Option, name string, index int) *collection {
	min, max := opt.Params()
	return &collection{key: key, opt: opt, name: name, index: index, min: min, max: max}
}

// restart continues collecting for the positional option after a marker
func (c *parsingContext) restart(cur *collection) *collection {
	next := c.begin(cur.key, cur.opt, cur.name, c.state.Pos())
	next.marker = true
	return next
}

// handleOption processes an option name. It returns the collection of a
// parameter-taking option, or fires a niladic one.
func (c *parsingContext) handleOption(ctx context.Context, t token) (*collection, bool, error) {
	opt := t.opt
	index := c.state.Pos()
	niladic := opt.niladic()

	if t.hasValue && (niladic || opt.Inline == InlineDisallowed) {
		return nil, true, c.p.newError(ItemDisallowedInlineParameter, ansi.FormatFlags{}, ansi.Symbol(t.name))
	}
	if !t.hasValue && opt.Inline == InlineRequired {
		return nil, true, c.p.newError(ItemMissingInlineParameter, ansi.FormatFlags{}, ansi.Symbol(t.name))
	}

	if niladic {
		stop, err := c.fire(ctx, t.key, opt, t.name, index)
		return nil, stop, err
	}

	cur := c.begin(t.key, opt, t.name, index)
	if t.hasValue {
		cur.params = append(cur.params, t.value)
		stop, err := c.commit(ctx, cur)
		return nil, stop, err
	}
	return cur, false, nil
}
