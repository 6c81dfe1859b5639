// Package env resolves option values from the process environment, files
// and standard input.
package env

import (
	"errors"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/iancoleman/strcase"
	"golang.org/x/term"
)

// ErrStdinTerminal is returned when standard input is attached to a terminal
var ErrStdinTerminal = errors.New("standard input is a terminal")

// Resolver defines an interface for resolving external option sources.
type Resolver interface {
	// Lookup returns the value of the environment variable named by the key
	// and whether it was present.
	Lookup(key string) (string, bool)

	// ReadFile returns the contents of the named file.
	ReadFile(name string) ([]byte, error)

	// ReadStdin returns the contents of standard input.
	ReadStdin() ([]byte, error)
}

// OSResolver is the default implementation of the Resolver interface
// that encapsulates resolution using the os package.
type OSResolver struct {
	// Stdin is read by ReadStdin, os.Stdin when nil
	Stdin io.Reader
}

// Lookup returns the value of the environment variable associated with the given key.
func (r *OSResolver) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

// ReadFile reads the named file.
func (r *OSResolver) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// ReadStdin reads standard input to the end. A terminal is never read,
// since that would block waiting for the user.
func (r *OSResolver) ReadStdin() ([]byte, error) {
	in := r.Stdin
	if in == nil {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, ErrStdinTerminal
		}
		in = os.Stdin
	}
	return io.ReadAll(in)
}

// MapResolver resolves sources from memory.
type MapResolver struct {
	Env   map[string]string
	Files map[string]string
	Stdin string
}

func (r *MapResolver) Lookup(key string) (string, bool) {
	v, ok := r.Env[key]
	return v, ok
}

func (r *MapResolver) ReadFile(name string) ([]byte, error) {
	if v, ok := r.Files[name]; ok {
		return []byte(v), nil
	}
	return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrNotExist}
}

func (r *MapResolver) ReadStdin() ([]byte, error) {
	return []byte(r.Stdin), nil
}

// IsFile reports whether a source refers to a file: a file:// URL or a
// path containing a separator.
func IsFile(source string) bool {
	return strings.HasPrefix(source, "file://") || strings.ContainsAny(source, `/\`)
}

// FilePath returns the path of a file source
func FilePath(source string) string {
	if !strings.HasPrefix(source, "file://") {
		return source
	}
	if u, err := url.Parse(source); err == nil && u.Path != "" {
		return u.Path
	}
	return strings.TrimPrefix(source, "file://")
}

// Read resolves a source. A missing environment variable or file reports
// false without error. File contents lose one trailing line feed.
func Read(r Resolver, source string) (string, bool, error) {
	if !IsFile(source) {
		v, ok := r.Lookup(source)
		return v, ok, nil
	}

	data, err := r.ReadFile(FilePath(source))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	return TrimNewline(string(data)), true, nil
}

// TrimNewline removes one trailing line feed
func TrimNewline(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}

// Name derives an environment variable name from an option key, as in
// Name("app", "dry-run") == "APP_DRY_RUN".
func Name(prefix, key string) string {
	if prefix == "" {
		return strcase.ToScreamingSnake(key)
	}
	return strcase.ToScreamingSnake(prefix + "_" + key)
}
