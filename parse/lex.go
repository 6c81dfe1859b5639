package parse

import (
	"strings"
	"unicode"

	"github.com/google/shlex"
)

// Split splits a command line into words using shell quoting rules.
func Split(s string) ([]string, error) {
	args, err := shlex.Split(s)
	if err != nil {
		return nil, err
	}

	return args, nil
}

// SplitLine splits the part of a command line before point, as received
// from a shell completion request. Quoting errors from an unfinished word
// fall back to whitespace splitting. When the line ends in whitespace an
// empty word is appended, since that is the word being completed.
func SplitLine(line string, point int) []string {
	if point >= 0 && point < len(line) {
		line = line[:point]
	}
	words, err := Split(line)
	if err != nil {
		words = strings.Fields(line)
	}
	if line == "" || unicode.IsSpace(rune(line[len(line)-1])) {
		words = append(words, "")
	}
	return words
}
