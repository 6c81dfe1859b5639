// Command optdemo shows the parser at work: clusters, choices, arrays,
// requirements, environment sources, a nested command and shell completion.
//
// Try:
//
//	optdemo -h
//	optdemo -v --level 2 --tag a b c -- input.txt
//	optdemo completion bash --install
package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/napalu/optparse"
	"github.com/napalu/optparse/completion"
	"github.com/napalu/optparse/env"
)

const version = "1.0.0"

func completionOptions() optparse.Options {
	return optparse.Options{
		{
			Key:        "shell",
			Kind:       optparse.KindSingle,
			Positional: true,
			Required:   true,
			ParamName:  "<shell>",
			Choices:    completion.Shells(),
			Synopsis:   "The shell to generate the script for.",
		},
		{
			Key:      "install",
			Kind:     optparse.KindFlag,
			Names:    []string{"-i", "--install"},
			Synopsis: "Save the script into the user completion directory.",
		},
		{
			Key:      "help",
			Kind:     optparse.KindHelp,
			Names:    []string{"-h", "--help"},
			Synopsis: "Print help.",
		},
	}
}

func options() optparse.Options {
	return optparse.Options{
		{
			Key:      "verbose",
			Kind:     optparse.KindFlag,
			Names:    []string{"-v", "--verbose"},
			Cluster:  "v",
			Synopsis: "Verbose output.",
			Group:    "Output options:",
			Requires: optparse.Not(optparse.Key("quiet")),
		},
		{
			Key:      "quiet",
			Kind:     optparse.KindFlag,
			Names:    []string{"-q", "--quiet"},
			Cluster:  "q",
			Synopsis: "Suppress output.",
			Group:    "Output options:",
		},
		{
			Key:       "format",
			Kind:      optparse.KindSingle,
			Names:     []string{"-f", "--format"},
			ParamName: "<format>",
			Choices:   []string{"text", "json"},
			Default:   "text",
			Synopsis:  "Output format.",
			Group:     "Output options:",
		},
		{
			Key:       "level",
			Kind:      optparse.KindSingle,
			Names:     []string{"-l", "--level"},
			ParamName: "<n>",
			Parse:     optparse.ParseIntRange(0, 3),
			Default:   1,
			Sources:   []string{optparse.EnvName("optdemo", "level")},
			Synopsis:  "Log level.",
		},
		{
			Key:       "timeout",
			Kind:      optparse.KindSingle,
			Names:     []string{"--timeout"},
			ParamName: "<duration>",
			Parse:     optparse.ParseDuration,
			Synopsis:  "Request timeout.",
		},
		{
			Key:       "tag",
			Kind:      optparse.KindArray,
			Names:     []string{"-t", "--tag"},
			ParamName: "<tag>",
			MinParams: 1,
			Unique:    true,
			Synopsis:  "Tags to attach.",
			Complete: func(ctx context.Context, info *optparse.ParamInfo) ([]string, error) {
				return []string{"alpha", "beta", "gamma"}, nil
			},
		},
		{
			Key:        "dry",
			Kind:       optparse.KindFlag,
			Names:      []string{"-n", "--dry-run"},
			Synopsis:   "Show what would be done.",
			RequiredIf: optparse.KeyValue("format", "json"),
			Deprecated: "Use --format text.",
		},
		{
			Key:        "inputs",
			Kind:       optparse.KindArray,
			Positional: true,
			Marker:     "--",
			ParamName:  "<file>",
			Synopsis:   "Input files.",
		},
		{
			Key:         "completion",
			Kind:        optparse.KindCommand,
			Names:       []string{"completion"},
			Synopsis:    "Generate a shell completion script.",
			LazyOptions: completionOptions,
			Exec: func(ctx context.Context, info *optparse.ParamInfo, values optparse.Values) (any, error) {
				return runCompletion(values)
			},
		},
		{
			Key:        "help",
			Kind:       optparse.KindHelp,
			Names:      []string{"-h", "--help"},
			Synopsis:   "Print help. Options after it filter the help.",
			UseCommand: true,
			UseFilter:  true,
			Break:      true,
		},
		{
			Key:      "version",
			Kind:     optparse.KindVersion,
			Names:    []string{"-V", "--version"},
			Version:  version,
			Synopsis: "Print the version.",
		},
	}
}

// runCompletion prints the script, or saves it when asked to
func runCompletion(values optparse.Values) (any, error) {
	shell, _ := values["shell"].(string)
	cm, err := completion.NewCompletionManager(shell, "optdemo")
	if err != nil {
		return nil, err
	}
	if install, _ := values["install"].(bool); !install {
		return cm.Script(), nil
	}
	path, err := cm.SaveCompletion()
	if err != nil {
		return nil, err
	}
	return fmt.Sprintf("Completion script saved to %s\n", path), nil
}

func main() {
	resolver := &env.OSResolver{}
	flags := optparse.FlagsFromEnv(resolver)
	flags.ClusterPrefix = "-"

	p, err := optparse.NewParser(options(),
		optparse.WithFlags(flags),
		optparse.WithResolver(resolver),
		optparse.WithHelpSections(
			optparse.HelpSection{Kind: optparse.SectionText, Text: "Demonstrates the optparse package."},
			optparse.HelpSection{Kind: optparse.SectionUsage},
			optparse.HelpSection{Kind: optparse.SectionGroups},
		),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	values, err := p.ParseOSArgs(context.Background())
	if err != nil {
		os.Exit(p.Exit(err))
	}

	if script, ok := values["completion"].(string); ok {
		fmt.Print(script)
		return
	}
	if quiet, _ := values["quiet"].(bool); quiet {
		return
	}

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("%s = %v\n", key, values[key])
	}
}
