// Package completion generates shell completion scripts and installs them
// into the per-user completion directories of each shell.
//
// The scripts hold no option data. They call the program back with the
// COMP_LINE and COMP_POINT environment variables set, and the program prints
// the completion words for that line.
package completion

import (
	"fmt"
	"slices"
	"strings"
)

// Generator generates the completion script of a program
type Generator interface {
	Generate(programName string) string
}

var generators = map[string]Generator{
	"bash":       &BashGenerator{},
	"zsh":        &ZshGenerator{},
	"fish":       &FishGenerator{},
	"powershell": &PowerShellGenerator{},
}

// Shells returns the supported shell names, sorted
func Shells() []string {
	shells := make([]string, 0, len(generators))
	for shell := range generators {
		shells = append(shells, shell)
	}
	slices.Sort(shells)
	return shells
}

// GetGenerator returns the generator of shell
func GetGenerator(shell string) (Generator, error) {
	g, ok := generators[strings.ToLower(shell)]
	if !ok {
		return nil, fmt.Errorf("unsupported shell: %s", shell)
	}
	return g, nil
}

// BashGenerator registers the program as its own completion command
type BashGenerator struct{}

func (g *BashGenerator) Generate(programName string) string {
	name := quotePosix(programName)
	return fmt.Sprintf(`# bash completion for %[1]s
complete -o default -C %[2]s %[2]s
`, programName, name)
}

// ZshGenerator emits a compdef function
type ZshGenerator struct{}

func (g *ZshGenerator) Generate(programName string) string {
	fn := "_" + functionName(programName)
	return fmt.Sprintf(`#compdef %[1]s

%[2]s() {
    local line="${(j: :)words[1,CURRENT]}"
    local -a candidates
    candidates=("${(@f)$(COMP_LINE="$line" COMP_POINT="${#line}" %[3]s 2>/dev/null)}")
    compadd -Q -- "${candidates[@]}"
}

compdef %[2]s %[1]s
`, programName, fn, quotePosix(programName))
}

// FishGenerator emits a complete command backed by a function
type FishGenerator struct{}

func (g *FishGenerator) Generate(programName string) string {
	fn := "__" + functionName(programName) + "_complete"
	return fmt.Sprintf(`# fish completion for %[1]s
function %[2]s
    set -lx COMP_LINE (commandline -cp)
    set -lx COMP_POINT (string length -- "$COMP_LINE")
    %[3]s 2>/dev/null
end

complete -c %[3]s -f -a '(%[2]s)'
`, programName, fn, quoteFish(programName))
}

// PowerShellGenerator registers a native argument completer. It requests
// JSON completions to show descriptions as tooltips.
type PowerShellGenerator struct{}

func (g *PowerShellGenerator) Generate(programName string) string {
	return fmt.Sprintf(`# powershell completion for %[1]s
Register-ArgumentCompleter -Native -CommandName %[2]s -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)
    $line = $commandAst.Extent.Text
    $point = $cursorPosition - $commandAst.Extent.StartOffset
    if ($point -gt $line.Length) {
        $line = $line + ' '
        $point = $line.Length
    }
    $env:COMP_LINE = $line
    $env:COMP_POINT = $point
    $env:OPTPARSE_COMPLETION_JSON = '1'
    try {
        $items = & %[2]s 2>$null | ConvertFrom-Json
    } finally {
        Remove-Item Env:COMP_LINE, Env:COMP_POINT, Env:OPTPARSE_COMPLETION_JSON -ErrorAction SilentlyContinue
    }
    foreach ($item in $items) {
        $tooltip = if ($item.description) { $item.description } else { $item.value }
        [System.Management.Automation.CompletionResult]::new($item.value, $item.value, 'ParameterValue', $tooltip)
    }
}
`, programName, quotePowerShell(programName))
}
