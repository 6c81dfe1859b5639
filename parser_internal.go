package optparse

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"reflect"
	"runtime/debug"
	"slices"
	"strconv"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/napalu/optparse/ansi"
	"github.com/napalu/optparse/env"
	"github.com/napalu/optparse/util"
	"golang.org/x/sync/errgroup"
)

// fire processes a niladic option
func (c *parsingContext) fire(ctx context.Context, key string, opt *Option, name string, index int) (bool, error) {
	info := &ParamInfo{Values: c.values, Key: key, Name: name, Index: index, Comp: c.completing}

	switch opt.Kind {
	case KindFlag, KindFunction:
		var value any = true
		if opt.Parse != nil {
			v, err := opt.Parse(ctx, info)
			if err != nil {
				return true, c.p.callbackError(err, name)
			}
			value = v
		}
		c.values[key] = value
	case KindCommand:
		return true, c.command(ctx, key, opt, info)
	case KindHelp:
		if c.completing {
			return false, nil
		}
		msg := c.helpMessage(opt)
		if !opt.SaveMessage {
			return true, msg
		}
		c.values[key] = msg
	case KindVersion:
		if c.completing {
			return false, nil
		}
		msg, err := c.version(ctx, opt)
		if err != nil {
			return true, c.p.callbackError(err, name)
		}
		if !opt.SaveMessage {
			return true, msg
		}
		c.values[key] = msg
	}

	return c.supply(key, opt, name), nil
}

// supply records a supplied option. It reports whether parsing must stop.
func (c *parsingContext) supply(key string, opt *Option, name string) bool {
	c.supplied[key] = true
	if opt.Deprecated != "" && !c.warned[key] {
		c.warned[key] = true
		c.warning.Add(c.p.phrase(ItemDeprecatedOption, ansi.FormatFlags{}, ansi.Symbol(name)))
	}
	return opt.Break
}

// command parses the remaining arguments with the nested schema of opt
func (c *parsingContext) command(ctx context.Context, key string, opt *Option, info *ParamInfo) error {
	rest := c.state.Rest()
	flags := c.flags
	if opt.ClusterPrefix != "" {
		flags.ClusterPrefix = opt.ClusterPrefix
	}
	if opt.OptionPrefix != "" {
		flags.OptionPrefix = opt.OptionPrefix
	}
	flags.ProgramName = strings.TrimSpace(flags.ProgramName + " " + info.Name)

	c.p.debug.Printf("command %s: parsing %d arguments", info.Name, len(rest))
	child := c.p.newContext(newRegistry(opt.nested()), Values{}, rest, flags, c.warning)
	child.completing = c.completing
	if err := child.parse(ctx); err != nil {
		return err
	}
	if c.completing {
		return nil
	}

	var value any = child.values
	if opt.Exec != nil {
		v, err := opt.Exec(ctx, info, child.values)
		if err != nil {
			return c.p.callbackError(err, info.Name)
		}
		value = v
	}
	c.values[key] = value
	c.supply(key, opt, info.Name)
	return nil
}

// helpMessage renders the help of the current schema, or of the nested
// command named by the next arguments
func (c *parsingContext) helpMessage(opt *Option) ansi.Message {
	reg := c.reg
	sections := opt.Sections
	if sections == nil {
		sections = c.p.sections
	}
	program := c.flags.ProgramName

	if opt.UseCommand {
		for {
			next, ok := c.state.Peek()
			if !ok {
				break
			}
			_, cmd, found := reg.lookup(next)
			if !found || cmd.Kind != KindCommand {
				break
			}
			c.state.Advance()
			reg = newRegistry(cmd.nested())
			program = strings.TrimSpace(program + " " + next)
			for _, o := range reg.options {
				if o.Kind == KindHelp && o.Sections != nil {
					sections = o.Sections
					break
				}
			}
		}
	}

	var filters []string
	if opt.UseFilter {
		filters = c.state.Rest()
	}
	return c.p.render(reg, sections, filters, program)
}

func (c *parsingContext) version(ctx context.Context, opt *Option) (ansi.TextMessage, error) {
	v := opt.Version
	if v == "" && opt.Resolve != nil {
		resolved, err := opt.Resolve(ctx)
		if err != nil {
			return nil, err
		}
		v = resolved
	}
	if v == "" {
		if info, ok := debug.ReadBuildInfo(); ok {
			v = info.Main.Version
		}
	}
	return ansi.TextMessage{v}, nil
}

// commit applies the collected parameters
func (c *parsingContext) commit(ctx context.Context, cur *collection) (bool, error) {
	if n := len(cur.params); n < cur.min {
		if n == 0 {
			return true, c.p.newError(ItemMissingParameter, ansi.FormatFlags{}, ansi.Symbol(cur.name))
		}
		return true, c.p.errParamCount(cur.name, cur.min, cur.max)
	}

	info := &ParamInfo{
		Values: c.values,
		Key:    cur.key,
		Name:   cur.name,
		Index:  cur.index,
		Params: cur.params,
		Comp:   c.completing,
	}
	value, err := c.apply(ctx, c.values, cur.opt, info)
	if err != nil {
		return true, err
	}
	c.values[cur.key] = value
	return c.supply(cur.key, cur.opt, cur.name), nil
}

// apply converts parameters to the option value. It reads values but never
// writes them, so that it can run concurrently.
func (c *parsingContext) apply(ctx context.Context, values Values, opt *Option, info *ParamInfo) (any, error) {
	params, err := c.prepare(opt, info)
	if err != nil {
		return nil, err
	}

	switch opt.Kind {
	case KindArray:
		return c.applyArray(ctx, values, opt, info, params)
	case KindFunction:
		info.Params = params
		if opt.Parse == nil {
			return params, nil
		}
		v, err := opt.Parse(ctx, info)
		if err != nil {
			return nil, c.p.callbackError(err, info.Name)
		}
		return v, nil
	}

	if len(params) == 0 {
		return nil, nil
	}
	info.Params = params[:1]
	if opt.Parse == nil {
		return params[0], nil
	}
	v, err := opt.Parse(ctx, info)
	if err != nil {
		return nil, c.p.callbackError(err, info.Name)
	}
	return v, nil
}

// prepare reads standard input, splits, normalizes and validates parameters
func (c *parsingContext) prepare(opt *Option, info *ParamInfo) ([]string, error) {
	out := make([]string, 0, len(info.Params))
	for _, param := range info.Params {
		if opt.Stdin && c.flags.StdinSymbol != "" && param == c.flags.StdinSymbol {
			data, err := c.p.resolver.ReadStdin()
			if err != nil {
				return nil, fmt.Errorf(FmtErrorWithString, err, info.Name)
			}
			param = string(data)
		}
		parts := []string{param}
		if opt.Kind == KindArray && opt.Separator != "" {
			parts = strings.Split(param, opt.Separator)
		}
		for _, part := range parts {
			if opt.Normalize != nil {
				part = opt.Normalize(part)
			}
			if opt.Regex != nil && !opt.Regex.MatchString(part) {
				return nil, c.p.newError(ItemRegexConstraint, ansi.FormatFlags{},
					ansi.Symbol(info.Name), part, opt.Regex)
			}
			if len(opt.Choices) > 0 && !slices.Contains(opt.Choices, part) {
				return nil, c.p.newError(ItemChoiceConstraint, ansi.FormatFlags{Open: "{", Close: "}"},
					ansi.Symbol(info.Name), part, opt.Choices)
			}
			out = append(out, part)
		}
	}
	return out, nil
}

func (c *parsingContext) applyArray(ctx context.Context, values Values, opt *Option, info *ParamInfo, params []string) (any, error) {
	elems := make([]any, len(params))
	for i, param := range params {
		if opt.Parse == nil {
			elems[i] = param
			continue
		}
		elemInfo := *info
		elemInfo.Params = []string{param}
		v, err := opt.Parse(ctx, &elemInfo)
		if err != nil {
			return nil, c.p.callbackError(err, info.Name)
		}
		elems[i] = v
	}

	var all []any
	if opt.Append {
		all = toSlice(values[info.Key])
	}
	all = append(all, elems...)
	if opt.Unique {
		all = util.DedupFunc(all, func(a, b any) bool { return cmp.Equal(a, b) })
	}
	if opt.Limit > 0 && len(all) > opt.Limit {
		return nil, c.p.newError(ItemLimitConstraint, ansi.FormatFlags{},
			ansi.Symbol(info.Name), len(all), opt.Limit)
	}

	if opt.Parse != nil {
		return all, nil
	}
	strs := make([]string, len(all))
	for i, v := range all {
		strs[i] = fmt.Sprint(v)
	}
	return strs, nil
}

func toSlice(v any) []any {
	switch v := v.(type) {
	case nil:
		return nil
	case []any:
		return slices.Clone(v)
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Slice {
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out
	}
	return []any{v}
}

type defaultResult struct {
	value    any
	set      bool
	supplied bool
	err      error
}

// resolveDefaults resolves the options which were not supplied, one
// goroutine per option. Results are written once every resolution is done.
func (c *parsingContext) resolveDefaults(ctx context.Context) error {
	options := c.reg.options
	results := make([]defaultResult, len(options))
	snapshot := maps.Clone(c.values)

	var g errgroup.Group
	for i, opt := range options {
		if c.supplied[opt.Key] {
			continue
		}
		switch opt.Kind {
		case KindCommand, KindHelp, KindVersion:
			continue
		}
		g.Go(func() error {
			results[i] = c.resolveDefault(ctx, snapshot, opt)
			return results[i].err
		})
	}
	if err := g.Wait(); err != nil {
		for _, r := range results {
			if r.err != nil {
				return r.err
			}
		}
	}

	for i, r := range results {
		key := options[i].Key
		if r.set {
			c.values[key] = r.value
		}
		if r.supplied {
			c.supplied[key] = true
		}
	}
	return nil
}

// resolveDefault reads the sources of opt, then standard input, then
// falls back to the default value
func (c *parsingContext) resolveDefault(ctx context.Context, values Values, opt *Option) defaultResult {
	name := opt.PreferredName()
	for _, source := range opt.Sources {
		s, found, err := env.Read(c.p.resolver, source)
		if err != nil {
			return defaultResult{err: fmt.Errorf(FmtErrorWithString, err, name)}
		}
		if found {
			c.p.debug.Printf("%s: read from %s", name, source)
			v, err := c.applySource(ctx, values, opt, name, s)
			return defaultResult{value: v, set: err == nil, supplied: err == nil, err: err}
		}
	}

	if opt.Stdin {
		data, err := c.p.resolver.ReadStdin()
		switch {
		case errors.Is(err, env.ErrStdinTerminal):
		case err != nil:
			return defaultResult{err: fmt.Errorf(FmtErrorWithString, err, name)}
		default:
			v, err := c.applySource(ctx, values, opt, name, string(data))
			return defaultResult{value: v, set: err == nil, supplied: err == nil, err: err}
		}
	}

	switch d := opt.Default.(type) {
	case nil:
		return defaultResult{}
	case DefaultFunc:
		return c.callDefault(ctx, values, name, d)
	case func(context.Context, Values) (any, error):
		return c.callDefault(ctx, values, name, d)
	default:
		return defaultResult{value: d, set: true}
	}
}

func (c *parsingContext) callDefault(ctx context.Context, values Values, name string, fn DefaultFunc) defaultResult {
	v, err := fn(ctx, values)
	if err != nil {
		return defaultResult{err: c.p.callbackError(err, name)}
	}
	return defaultResult{value: v, set: true}
}

// applySource converts a value read from a source as if it were the
// parameter of opt
func (c *parsingContext) applySource(ctx context.Context, values Values, opt *Option, name, s string) (any, error) {
	info := &ParamInfo{Values: values, Key: opt.Key, Name: name, Index: -1, Params: []string{s}, Comp: c.completing}
	if !opt.niladic() {
		return c.apply(ctx, values, opt, info)
	}
	if opt.Parse != nil {
		v, err := opt.Parse(ctx, info)
		if err != nil {
			return nil, c.p.callbackError(err, name)
		}
		return v, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf(FmtErrorWithString, err, name)
	}
	return b, nil
}

// checkRequirements checks every option concurrently and returns the error
// of the first failing option in declaration order
func (c *parsingContext) checkRequirements(ctx context.Context) error {
	options := c.reg.options
	errs := make([]error, len(options))
	e := &evaluator{values: c.values, supplied: c.supplied}

	var g errgroup.Group
	for i, opt := range options {
		g.Go(func() error {
			errs[i] = c.check(e, opt)
			return errs[i]
		})
	}
	if err := g.Wait(); err == nil {
		return nil
	}
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func (c *parsingContext) check(e *evaluator, opt *Option) error {
	name := ansi.Symbol(opt.PreferredName())
	if opt.Required && !e.present(opt.Key) {
		return c.p.newError(ItemMissingRequiredOption, ansi.FormatFlags{}, name)
	}
	if c.supplied[opt.Key] && opt.Requires != nil && !e.satisfies(opt.Requires, false, false) {
		return c.p.newError(ItemUnsatisfiedRequirement, ansi.FormatFlags{}, name,
			c.p.requirement(c.reg, opt.Requires, false))
	}
	if !c.supplied[opt.Key] && opt.RequiredIf != nil && e.requiredIf(opt.RequiredIf) {
		return c.p.newError(ItemUnsatisfiedCondRequirement, ansi.FormatFlags{}, name,
			c.p.requirement(c.reg, opt.RequiredIf, false))
	}
	return nil
}

// completionWord is a completion suggestion
type completionWord struct {
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
}

// completeParam suggests parameters of the collecting option, and option
// names once its minimum is met
func (c *parsingContext) completeParam(ctx context.Context, cur *collection, word, prefix string) error {
	words := c.paramWords(ctx, cur, word)
	if prefix != "" {
		for i := range words {
			words[i].Value = prefix + words[i].Value
		}
	} else if !cur.marker && len(cur.params) >= cur.min {
		words = append(words, c.nameWords(word)...)
	}
	return c.completion(words)
}

// completeName suggests option names and parameters of the positional option
func (c *parsingContext) completeName(ctx context.Context, word string) error {
	words := c.nameWords(word)
	if key := c.reg.positional; key != "" {
		opt := c.reg.keys[key]
		words = append(words, c.paramWords(ctx, c.begin(key, opt, c.reg.name(key), c.state.Pos()), word)...)
	}
	return c.completion(words)
}

func (c *parsingContext) paramWords(ctx context.Context, cur *collection, word string) []completionWord {
	var values []string
	switch {
	case cur.opt.Complete != nil:
		info := &ParamInfo{
			Values: c.values,
			Key:    cur.key,
			Name:   cur.name,
			Index:  cur.index,
			Params: append(slices.Clone(cur.params), word),
			Comp:   true,
		}
		v, err := cur.opt.Complete(ctx, info)
		if err != nil {
			c.p.debug.Printf("completion of %s failed: %v", cur.name, err)
		} else {
			values = v
		}
	case len(cur.opt.Choices) > 0:
		for _, choice := range cur.opt.Choices {
			if strings.HasPrefix(choice, word) {
				values = append(values, choice)
			}
		}
	}

	words := make([]completionWord, len(values))
	for i, v := range values {
		words[i] = completionWord{Value: v}
	}
	return words
}

func (c *parsingContext) nameWords(prefix string) []completionWord {
	names := c.reg.completeNames(prefix)
	words := make([]completionWord, len(names))
	for i, name := range names {
		words[i].Value = name
		if _, opt, ok := c.reg.lookup(name); ok {
			words[i].Description = opt.Synopsis
		}
	}
	return words
}

func (c *parsingContext) completion(words []completionWord) error {
	if c.flags.CompletionJSON {
		msg := make(ansi.JSONMessage, len(words))
		for i, w := range words {
			msg[i] = w
		}
		return msg
	}
	msg := make(ansi.TextMessage, len(words))
	for i, w := range words {
		msg[i] = w.Value
	}
	return msg
}
