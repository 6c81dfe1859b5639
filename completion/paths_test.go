package completion

import (
	"path/filepath"
	"testing"
)

func TestCompletionPathsFor(t *testing.T) {
	tests := []struct {
		name    string
		goos    string
		shell   string
		core    bool
		primary string
		wantErr bool
	}{
		{name: "linux bash", goos: "linux", shell: "bash", primary: filepath.Join(".local", "share", "bash-completion", "completions")},
		{name: "darwin zsh", goos: "darwin", shell: "zsh", primary: filepath.Join(".zsh", "completion")},
		{name: "linux fish", goos: "linux", shell: "fish", primary: filepath.Join(".config", "fish", "completions")},
		{name: "linux powershell", goos: "linux", shell: "powershell", primary: filepath.Join(".config", "powershell", "Completions")},
		{name: "darwin powershell", goos: "darwin", shell: "powershell", primary: filepath.Join("Library", "PowerShell", "Completions")},
		{name: "windows powershell core", goos: "windows", shell: "powershell", core: true, primary: filepath.Join("Documents", "PowerShell", "Completions")},
		{name: "windows powershell", goos: "windows", shell: "powershell", primary: filepath.Join("Documents", "WindowsPowerShell", "Completions")},
		{name: "unsupported", goos: "linux", shell: "tcsh", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paths, err := completionPathsFor(tt.goos, tt.shell, tt.core)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if paths.Primary != tt.primary {
				t.Errorf("Primary = %q, want %q", paths.Primary, tt.primary)
			}
			if paths.Fallback == "" {
				t.Error("Fallback is empty")
			}
		})
	}
}

func TestCompletionPaths_Resolve(t *testing.T) {
	home := filepath.Join("home", "user")
	got := zshPaths.resolve(home)
	if want := filepath.Join(home, ".zsh", "completion"); got.Primary != want {
		t.Errorf("Primary = %q, want %q", got.Primary, want)
	}
	if want := filepath.Join(home, ".zfunc"); got.Fallback != want {
		t.Errorf("Fallback = %q, want %q", got.Fallback, want)
	}
	if got := (CompletionPaths{Primary: "x"}).resolve(home); got.Fallback != "" {
		t.Errorf("empty Fallback resolved to %q", got.Fallback)
	}
}
