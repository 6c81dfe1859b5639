package ansi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuffer_Aggregates(t *testing.T) {
	b := New(0).Word("ab").Word("cde").Break(1).Word("f")

	assert.Equal(t, 4, b.Count())
	assert.Equal(t, 3, b.MaxWordLen())
	assert.Equal(t, 1, b.LastWordLen())
	assert.Equal(t, 6, b.FirstLineLen())
	assert.Equal(t, 1, b.LastLineLen())
	assert.Equal(t, 6, b.MaxLineLen())

	b.Word("ghijklm")
	assert.Equal(t, 7, b.MaxWordLen())
	assert.Equal(t, 9, b.LastLineLen())
	assert.Equal(t, 9, b.MaxLineLen())
	assert.Equal(t, 6, b.FirstLineLen())
}

func TestBuffer_OpenClose(t *testing.T) {
	tests := []struct {
		name  string
		build func(b *Buffer)
		want  string
		words int
	}{
		{
			name:  "open and close glue to the word",
			build: func(b *Buffer) { b.Open("[").Word("x").Close("]") },
			want:  "[x]",
			words: 1,
		},
		{
			name:  "nested open",
			build: func(b *Buffer) { b.Open("[").Open("[").Word("x").Close("]").Close("]") },
			want:  "[[x]]",
			words: 1,
		},
		{
			name:  "close without words starts a word",
			build: func(b *Buffer) { b.Close(".").Word("a") },
			want:  ". a",
			words: 2,
		},
		{
			name:  "close after break starts a word",
			build: func(b *Buffer) { b.Word("a").Break(1).Close(",") },
			want:  "a\n,",
			words: 3,
		},
		{
			name:  "empty text is ignored",
			build: func(b *Buffer) { b.Word("").Open("").Close("").Word("a") },
			want:  "a",
			words: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New(0)
			tt.build(b)
			assert.Equal(t, tt.want, b.String())
			assert.Equal(t, tt.words, b.Count())
		})
	}
}

func TestBuffer_GlueUpdatesAggregates(t *testing.T) {
	b := New(0).Word("a").Open("(").Word("bcd").Close(")")
	assert.Equal(t, 2, b.Count())
	assert.Equal(t, 5, b.MaxWordLen())
	assert.Equal(t, 7, b.MaxLineLen())
}

func TestBuffer_Append(t *testing.T) {
	other := New(0).Words("b", "c")
	b := New(0).Word("a").Append(other)
	assert.Equal(t, "a b c", b.String())
	assert.Equal(t, 5, b.MaxLineLen())

	glued := New(0).Open("(").Append(other).Close(")")
	assert.Equal(t, "(b c)", glued.String())

	// the source buffer is not aliased
	other.Word("d")
	assert.Equal(t, "a b c", b.String())
}

func TestBuffer_WideRunes(t *testing.T) {
	b := New(0).Word("日本").Word("é")
	assert.Equal(t, 4, b.MaxWordLen())
	assert.Equal(t, 6, b.MaxLineLen())
}
