package completion

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// CompletionPaths holds the directories a shell loads user completions from.
// Paths are relative to the home directory until resolved.
type CompletionPaths struct {
	Primary  string
	Fallback string
	Comment  string
}

var (
	bashPaths = CompletionPaths{
		Primary:  filepath.Join(".local", "share", "bash-completion", "completions"),
		Fallback: ".bash_completion.d",
		Comment:  "user-local bash-completion directory",
	}
	zshPaths = CompletionPaths{
		Primary:  filepath.Join(".zsh", "completion"),
		Fallback: ".zfunc",
		Comment:  "user-local zsh fpath directory",
	}
	fishPaths = CompletionPaths{
		Primary:  filepath.Join(".config", "fish", "completions"),
		Fallback: filepath.Join(".local", "share", "fish", "completions"),
		Comment:  "fish user completions directory",
	}
)

// powerShellPaths depends on the OS and, on windows, on the installed edition
func powerShellPaths(goos string, core bool) CompletionPaths {
	switch {
	case goos == "windows" && core:
		return CompletionPaths{
			Primary:  filepath.Join("Documents", "PowerShell", "Completions"),
			Fallback: filepath.Join(".config", "powershell", "Completions"),
			Comment:  "PowerShell Core user completions directory",
		}
	case goos == "windows":
		return CompletionPaths{
			Primary:  filepath.Join("Documents", "WindowsPowerShell", "Completions"),
			Fallback: filepath.Join(".config", "WindowsPowerShell", "Completions"),
			Comment:  "Windows PowerShell user completions directory",
		}
	case goos == "darwin":
		return CompletionPaths{
			Primary:  filepath.Join("Library", "PowerShell", "Completions"),
			Fallback: filepath.Join(".config", "powershell", "Completions"),
			Comment:  "PowerShell Core user completions directory",
		}
	default:
		return CompletionPaths{
			Primary:  filepath.Join(".config", "powershell", "Completions"),
			Fallback: filepath.Join(".local", "share", "powershell", "Completions"),
			Comment:  "PowerShell Core user completions directory",
		}
	}
}

func completionPathsFor(goos, shell string, core bool) (CompletionPaths, error) {
	switch shell {
	case "bash":
		return bashPaths, nil
	case "zsh":
		return zshPaths, nil
	case "fish":
		return fishPaths, nil
	case "powershell":
		return powerShellPaths(goos, core), nil
	default:
		return CompletionPaths{}, fmt.Errorf("unsupported shell: %s", shell)
	}
}

// resolve makes the paths absolute below home
func (p CompletionPaths) resolve(home string) CompletionPaths {
	p.Primary = filepath.Join(home, p.Primary)
	if p.Fallback != "" {
		p.Fallback = filepath.Join(home, p.Fallback)
	}
	return p
}

func getCompletionPaths(shell string) (CompletionPaths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return CompletionPaths{}, fmt.Errorf("couldn't get user home directory: %w", err)
	}

	paths, err := completionPathsFor(runtime.GOOS, shell, isPowerShellCore())
	if err != nil {
		return CompletionPaths{}, err
	}
	return paths.resolve(home), nil
}

func isPowerShellCore() bool {
	_, err := exec.LookPath("pwsh")
	return err == nil
}

func ensurePermission(path string, perm os.FileMode) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}
	if runtime.GOOS == "windows" {
		return nil
	}

	if actual := info.Mode().Perm(); actual != perm {
		if err := os.Chmod(path, perm); err != nil {
			return fmt.Errorf("failed to set permissions on %s from %o to %o: %w", path, actual, perm, err)
		}
	}
	return nil
}
