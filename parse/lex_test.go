package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{
			name:  "simple command",
			input: "ls -l",
			want:  []string{"ls", "-l"},
		},
		{
			name:  "quoted arguments",
			input: `echo "hello world"`,
			want:  []string{"echo", "hello world"},
		},
		{
			name:  "multiple quotes",
			input: `echo "first quote" 'second quote'`,
			want:  []string{"echo", "first quote", "second quote"},
		},
		{
			name:  "escaped quotes",
			input: `echo \"hello\"`,
			want:  []string{"echo", `"hello"`},
		},
		{
			name:  "multiple spaces",
			input: "cmd   arg1    arg2",
			want:  []string{"cmd", "arg1", "arg2"},
		},
		{
			name:    "unterminated quote",
			input:   `echo "abc`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Split(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplit_Empty(t *testing.T) {
	got, err := Split("   ")
	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestSplitLine(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		point int
		want  []string
	}{
		{name: "partial word", line: "prog --fl", point: 9, want: []string{"prog", "--fl"}},
		{name: "trailing space", line: "prog -a ", point: 8, want: []string{"prog", "-a", ""}},
		{name: "point inside line", line: "prog -a -b", point: 7, want: []string{"prog", "-a"}},
		{name: "point past end", line: "prog", point: 99, want: []string{"prog"}},
		{name: "unfinished quote", line: `prog "a b`, point: 9, want: []string{"prog", `"a`, "b"}},
		{name: "empty line", line: "", point: 0, want: []string{""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitLine(tt.line, tt.point))
		})
	}
}
