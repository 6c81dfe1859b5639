// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT licensee
// which can be found in the LICENSE file.

// Package optparse provides support for command-line processing.
//
// A schema is an ordered list of options. Each option has a Kind:
//
//	KindFlag - a niladic option whose value is true
//	KindSingle - an option which expects exactly one parameter
//	KindArray - an option which expects a list of parameters
//	KindFunction - an option whose parameters are converted by a callback
//	KindCommand - an option which parses the remaining arguments with a nested schema
//	KindHelp, KindVersion - options which stop parsing with a message
//
// Options may be clustered, read from the environment, files or standard
// input, and depend on each other through requirement expressions. The
// parser also answers shell completion requests, and renders help, usage
// and error messages which wrap to the terminal width.
package optparse

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/napalu/optparse/ansi"
	"github.com/napalu/optparse/completion"
	"github.com/napalu/optparse/env"
	"github.com/napalu/optparse/i18n"
	"github.com/napalu/optparse/parse"
	"github.com/napalu/optparse/util"
	"golang.org/x/text/language"
)

// Parser parses arguments according to a schema
type Parser struct {
	options  Options
	reg      *registry
	flags    Flags
	resolver env.Resolver
	styles   ansi.FormatStyles
	bundle   *i18n.Bundle
	lang     language.Tag
	sections []HelpSection
	stdout   io.Writer
	stderr   io.Writer
	debug    *log.Logger
}

// NewParser creates a parser for options. The caller should always test for
// error on return because Parser will be nil when an error occurs during
// initialization.
//
// Configuration example:
//
//	parser, err := NewParser(Options{
//		{Key: "verbose", Kind: KindFlag, Names: []string{"-v", "--verbose"}, Cluster: "v"},
//		{Key: "output", Kind: KindSingle, Names: []string{"-o", "--output"}, Default: "out.txt"},
//		{Key: "help", Kind: KindHelp, Names: []string{"-h", "--help"}},
//	}, WithClusterPrefix("-"), WithProgramName("tool"))
func NewParser(options Options, configs ...ConfigureParserFunc) (*Parser, error) {
	p := &Parser{
		options:  options,
		reg:      newRegistry(options),
		flags:    DefaultFlags,
		resolver: &env.OSResolver{},
		styles:   ansi.DefaultStyles,
		bundle:   i18n.Default(),
		lang:     language.English,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		debug:    log.New(io.Discard, "optparse: ", 0),
	}

	var err error
	for _, config := range configs {
		config(p, &err)
		if err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Parse parses args into a new Values map. Warnings are written to the
// configured error writer. The error is a message when parsing stopped to
// print help, a version or completion words.
func (p *Parser) Parse(ctx context.Context, args []string) (Values, error) {
	values := Values{}
	warning, err := p.ParseInto(ctx, values, args)
	if warning != nil && warning.Len() > 0 {
		fmt.Fprintln(p.stderr, warning.Wrap(util.TerminalWidth(p.stderr), util.EmitStyles(p.stderr), true))
	}
	return values, err
}

// ParseInto parses args into values, returning the accumulated warnings
func (p *Parser) ParseInto(ctx context.Context, values Values, args []string) (*ansi.WarnMessage, error) {
	warning := &ansi.WarnMessage{}
	c := p.newContext(p.reg, values, args, p.flags, warning)
	if err := c.parse(ctx); err != nil {
		return warning, err
	}
	return warning, nil
}

// ParseString splits a command line with shell quoting rules and parses it.
// In completion mode the line is the whole completion line: it is cut at
// the completion index and the program name is dropped.
func (p *Parser) ParseString(ctx context.Context, line string) (Values, error) {
	if p.flags.CompIndex > 0 {
		words := parse.SplitLine(line, p.flags.CompIndex)
		if len(words) > 0 {
			words = words[1:]
		}
		return p.Parse(ctx, words)
	}

	args, err := parse.Split(line)
	if err != nil {
		return nil, err
	}
	return p.Parse(ctx, args)
}

// ParseOSArgs parses the process arguments, or the completion line when
// completing
func (p *Parser) ParseOSArgs(ctx context.Context) (Values, error) {
	if p.flags.CompIndex > 0 {
		if line, ok := p.resolver.Lookup("COMP_LINE"); ok {
			return p.ParseString(ctx, line)
		}
	}
	return p.Parse(ctx, os.Args[1:])
}

// Help renders the help message of the schema
func (p *Parser) Help() ansi.Message {
	return p.render(p.reg, p.sections, nil, p.flags.ProgramName)
}

// Usage renders the usage of the schema, headed by the program name
func (p *Parser) Usage() ansi.Message {
	return p.render(p.reg, []HelpSection{{Kind: SectionUsage}}, nil, p.flags.ProgramName)
}

// Exit prints the outcome of a parse and returns the process exit code.
// Messages go to the output writer with exit code 0, errors go to the error
// writer with exit code 1.
func (p *Parser) Exit(err error) int {
	if err == nil {
		return 0
	}

	var perr *Error
	if errors.As(err, &perr) {
		fmt.Fprintln(p.stderr, perr.Wrap(util.TerminalWidth(p.stderr), util.EmitStyles(p.stderr), true))
		return 1
	}
	var msg ansi.Wrapper
	if errors.As(err, &msg) {
		fmt.Fprintln(p.stdout, msg.Wrap(util.TerminalWidth(p.stdout), util.EmitStyles(p.stdout), true))
		return 0
	}

	fmt.Fprintln(p.stderr, err)
	return 1
}

// GenerateCompletion returns the completion script of shell for programName
func (p *Parser) GenerateCompletion(shell, programName string) (string, error) {
	generator, err := completion.GetGenerator(shell)
	if err != nil {
		return "", err
	}
	return generator.Generate(programName), nil
}
