package completion

import (
	"slices"
	"strings"
	"testing"
)

func TestGetGenerator(t *testing.T) {
	tests := []struct {
		shell   string
		wantErr bool
	}{
		{shell: "bash"},
		{shell: "zsh"},
		{shell: "fish"},
		{shell: "PowerShell"},
		{shell: "tcsh", wantErr: true},
		{shell: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			gen, err := GetGenerator(tt.shell)
			if tt.wantErr {
				if err == nil {
					t.Errorf("GetGenerator(%q) expected error", tt.shell)
				}
				return
			}
			if err != nil {
				t.Fatalf("GetGenerator(%q) unexpected error: %v", tt.shell, err)
			}
			if gen == nil {
				t.Errorf("GetGenerator(%q) returned nil generator", tt.shell)
			}
		})
	}
}

func TestShells(t *testing.T) {
	want := []string{"bash", "fish", "powershell", "zsh"}
	if got := Shells(); !slices.Equal(got, want) {
		t.Errorf("Shells() = %v, want %v", got, want)
	}
}

func TestGenerators(t *testing.T) {
	tests := []struct {
		name     string
		gen      Generator
		program  string
		contains []string
	}{
		{
			name:     "bash",
			gen:      &BashGenerator{},
			program:  "mytool",
			contains: []string{"complete -o default -C mytool mytool"},
		},
		{
			name:     "bash quoted",
			gen:      &BashGenerator{},
			program:  "my tool",
			contains: []string{"complete -o default -C 'my tool' 'my tool'"},
		},
		{
			name:    "zsh",
			gen:     &ZshGenerator{},
			program: "my-tool",
			contains: []string{
				"#compdef my-tool",
				"_my_tool() {",
				`COMP_LINE="$line"`,
				`COMP_POINT="${#line}"`,
				"compadd",
				"compdef _my_tool my-tool",
			},
		},
		{
			name:    "fish",
			gen:     &FishGenerator{},
			program: "mytool",
			contains: []string{
				"function __mytool_complete",
				"set -lx COMP_LINE (commandline -cp)",
				"complete -c mytool -f -a '(__mytool_complete)'",
			},
		},
		{
			name:    "powershell",
			gen:     &PowerShellGenerator{},
			program: "mytool",
			contains: []string{
				"Register-ArgumentCompleter -Native -CommandName mytool",
				"$env:OPTPARSE_COMPLETION_JSON = '1'",
				"ConvertFrom-Json",
				"CompletionResult",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script := tt.gen.Generate(tt.program)
			for _, want := range tt.contains {
				if !strings.Contains(script, want) {
					t.Errorf("script missing %q:\n%s", want, script)
				}
			}
		})
	}
}

func TestQuoting(t *testing.T) {
	tests := []struct {
		name  string
		quote func(string) string
		in    string
		want  string
	}{
		{"posix plain", quotePosix, "tool", "tool"},
		{"posix quote", quotePosix, "it's", `'it'\''s'`},
		{"posix empty", quotePosix, "", "''"},
		{"fish quote", quoteFish, `a'b\c`, `'a\'b\\c'`},
		{"powershell quote", quotePowerShell, "it's", "'it''s'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.quote(tt.in); got != tt.want {
				t.Errorf("quote(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFunctionName(t *testing.T) {
	if got := functionName("my-tool.v2"); got != "my_tool_v2" {
		t.Errorf("functionName() = %q, want %q", got, "my_tool_v2")
	}
}
