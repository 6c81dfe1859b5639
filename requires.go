package optparse

import (
	"github.com/google/go-cmp/cmp"
	"github.com/napalu/optparse/ansi"
	"github.com/napalu/optparse/types"
)

// Requires is a requirement expression over option values. It is built with
// Key, KeyValue, Not, AllOf, OneOf and Callback.
type Requires interface {
	requires()
}

// RequiresFunc is a custom requirement
type RequiresFunc func(values Values) bool

type presence struct{}

// Present is the expected value of KeyValue requiring the option to be
// present with any value
var Present any = presence{}

type (
	keyRequires      string
	keyValueRequires struct {
		key      string
		expected any
	}
	notRequires      struct{ item Requires }
	allOfRequires    []Requires
	oneOfRequires    []Requires
	callbackRequires RequiresFunc
)

func (keyRequires) requires()      {}
func (keyValueRequires) requires() {}
func (notRequires) requires()      {}
func (allOfRequires) requires()    {}
func (oneOfRequires) requires()    {}
func (callbackRequires) requires() {}

// Key requires the option to be present
func Key(key string) Requires {
	return keyRequires(key)
}

// KeyValue requires the option to have the expected value. A nil value
// requires the option to be absent and Present requires it to be present.
func KeyValue(key string, expected any) Requires {
	return keyValueRequires{key: key, expected: expected}
}

// Not negates a requirement
func Not(item Requires) Requires {
	return notRequires{item: item}
}

// AllOf requires every item to hold
func AllOf(items ...Requires) Requires {
	return allOfRequires(items)
}

// OneOf requires at least one item to hold
func OneOf(items ...Requires) Requires {
	return oneOfRequires(items)
}

// Callback is a custom requirement
func Callback(fn RequiresFunc) Requires {
	return callbackRequires(fn)
}

// evaluator checks requirements against parsed values
type evaluator struct {
	values   Values
	supplied map[string]bool
}

func (e *evaluator) present(key string) bool {
	return e.supplied[key] || e.values[key] != nil
}

// satisfies evaluates r. negate flips the meaning of leaves; invert computes
// the complement of the whole expression, swapping the list connectives.
func (e *evaluator) satisfies(r Requires, negate, invert bool) bool {
	switch r := r.(type) {
	case keyRequires:
		return (e.present(string(r)) != negate) != invert
	case keyValueRequires:
		var cond bool
		switch r.expected.(type) {
		case nil:
			cond = !e.present(r.key)
		case presence:
			cond = e.present(r.key)
		default:
			cond = e.present(r.key) && cmp.Equal(e.values[r.key], r.expected)
		}
		return (cond != negate) != invert
	case notRequires:
		return e.satisfies(r.item, !negate, invert)
	case allOfRequires:
		return e.list(r, negate == invert, negate, invert)
	case oneOfRequires:
		return e.list(r, negate != invert, negate, invert)
	case callbackRequires:
		return (r(e.values) != negate) != invert
	}
	return true
}

func (e *evaluator) list(items []Requires, and, negate, invert bool) bool {
	for _, item := range items {
		if e.satisfies(item, negate, invert) != and {
			return !and
		}
	}
	return and
}

// requiredIf reports whether a conditional requirement holds. It fails
// fast on the first item which does not.
func (e *evaluator) requiredIf(r Requires) bool {
	return !e.satisfies(r, false, true)
}

// describe renders r in prose. Lists are parenthesized except at the top.
func (p *Parser) describe(b *ansi.Buffer, reg *registry, r Requires, negate, top bool) {
	switch r := r.(type) {
	case keyRequires:
		p.describePresence(b, reg, string(r), !negate)
	case keyValueRequires:
		switch r.expected.(type) {
		case nil:
			p.describePresence(b, reg, r.key, negate)
		case presence:
			p.describePresence(b, reg, r.key, !negate)
		default:
			b.Value(&p.styles, ansi.Symbol(reg.name(r.key)), ansi.FormatFlags{})
			if negate {
				b.Word("!=")
			} else {
				b.Word("=")
			}
			b.Value(&p.styles, r.expected, ansi.FormatFlags{Open: "[", Close: "]"})
		}
	case notRequires:
		p.describe(b, reg, r.item, !negate, top)
	case allOfRequires:
		p.describeList(b, reg, r, true, negate, top)
	case oneOfRequires:
		p.describeList(b, reg, r, false, negate, top)
	case callbackRequires:
		if negate {
			b.Word(p.bundle.TL(p.lang, types.RequiresNotKey))
		}
		b.Word(p.bundle.TL(p.lang, types.RequiresCustomKey))
	}
}

func (p *Parser) describePresence(b *ansi.Buffer, reg *registry, key string, present bool) {
	if !present {
		b.Word(p.bundle.TL(p.lang, types.RequiresNoKey))
	}
	b.Value(&p.styles, ansi.Symbol(reg.name(key)), ansi.FormatFlags{})
}

func (p *Parser) describeList(b *ansi.Buffer, reg *registry, items []Requires, isAll, negate, top bool) {
	if len(items) == 1 {
		p.describe(b, reg, items[0], negate, top)
		return
	}
	connective := types.RequiresAndKey
	if isAll == negate {
		connective = types.RequiresOrKey
	}
	if !top {
		b.Open("(")
	}
	for i, item := range items {
		if i > 0 {
			b.Word(p.bundle.TL(p.lang, connective))
		}
		p.describe(b, reg, item, negate, false)
	}
	if !top {
		b.Close(")")
	}
}

// requirement renders r as a standalone buffer
func (p *Parser) requirement(reg *registry, r Requires, negate bool) *ansi.Buffer {
	b := ansi.New(0)
	p.describe(b, reg, r, negate, true)
	return b
}
