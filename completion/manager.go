package completion

import (
	"fmt"
	"os"
	"path/filepath"
)

// CompletionFileInfo holds shell-specific naming conventions
type CompletionFileInfo struct {
	Prefix    string // Some shells require specific prefixes
	Extension string // File extension if required
}

var fileConventions = map[string]CompletionFileInfo{
	"bash":       {},
	"zsh":        {Prefix: "_"},
	"fish":       {Extension: ".fish"},
	"powershell": {Extension: ".ps1"},
}

// CompletionManager generates the completion script of a program and saves
// it into the user's completion directory
type CompletionManager struct {
	Shell       string
	ProgramName string
	Paths       CompletionPaths
	script      string
}

// NewCompletionManager creates a completion manager which can be used to manage and save completion scripts for a given shell
func NewCompletionManager(shell, programName string) (*CompletionManager, error) {
	generator, err := GetGenerator(shell)
	if err != nil {
		return nil, err
	}
	paths, err := getCompletionPaths(shell)
	if err != nil {
		return nil, fmt.Errorf("failed to get completion paths: %w", err)
	}

	name := filepath.Base(programName)
	return &CompletionManager{
		Shell:       shell,
		ProgramName: name,
		Paths:       paths,
		script:      generator.Generate(name),
	}, nil
}

// Script returns the generated completion script
func (cm *CompletionManager) Script() string {
	return cm.script
}

// FilePath returns the path the script is saved to
func (cm *CompletionManager) FilePath() string {
	conventions := fileConventions[cm.Shell]
	filename := conventions.Prefix + cm.ProgramName + conventions.Extension
	return filepath.Join(cm.Paths.Primary, filename)
}

// SaveCompletion saves the completion script and returns its path
func (cm *CompletionManager) SaveCompletion() (string, error) {
	if cm.script == "" {
		return "", fmt.Errorf("no completion script generated")
	}

	dir, err := cm.ensureCompletionPath()
	if err != nil {
		return "", err
	}

	path := cm.FilePath()
	if dir != cm.Paths.Primary {
		path = filepath.Join(dir, filepath.Base(path))
	}
	if err := os.WriteFile(path, []byte(cm.script), 0644); err != nil {
		return "", fmt.Errorf("failed to write completion file: %w", err)
	}

	return path, ensurePermission(path, 0644)
}

// ensureCompletionPath creates the primary completion directory, or the
// fallback one when the primary cannot be used
func (cm *CompletionManager) ensureCompletionPath() (string, error) {
	perm := os.FileMode(0755)
	err := os.MkdirAll(cm.Paths.Primary, perm)
	if err == nil {
		err = ensurePermission(cm.Paths.Primary, perm)
	}
	if err == nil {
		return cm.Paths.Primary, nil
	}

	if cm.Paths.Fallback != "" {
		if err := os.MkdirAll(cm.Paths.Fallback, perm); err != nil {
			return "", fmt.Errorf("failed to create fallback completion directory: %w", err)
		}
		return cm.Paths.Fallback, ensurePermission(cm.Paths.Fallback, perm)
	}

	return "", fmt.Errorf("failed to create completion directories: %w", err)
}
