// Package ansi implements a rich-text buffer that measures itself as it is
// built and wraps to a terminal width, emitting SGR styles on demand.
//
// A Buffer is a list of words. Each word is a list of fragments that carry
// their own style record, so styles never leak into neighbouring words. An
// empty word stands for a forced line break. Buffers can be chained through
// Hook so that several columns wrap line by line as a single table row.
package ansi

// Align is the horizontal alignment of wrapped lines.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

type fragment struct {
	text string
	rec  record
}

type word struct {
	frags []fragment
	width int
}

func (w *word) isBreak() bool {
	return len(w.frags) == 0
}

// Buffer is a mutable rich-text value. It is not safe for concurrent use.
type Buffer struct {
	// Indent is the column where wrapped lines start.
	Indent int
	// Width caps the wrap width when positive.
	Width int
	Align Align
	// MergeLeft glues the first word to the text preceding the buffer.
	MergeLeft bool
	// MergeRight glues the next buffer of a Message to this one.
	MergeRight bool
	// Hook continues each line with another buffer.
	Hook *Buffer

	words []word
	rec   record
	stack []record
	glue  bool
	frags int

	maxWord   int
	firstLine int
	lastLine  int
	maxLine   int
	lineWords int
	lines     int

	resume int
	done   bool
	start  int
}

// New returns an empty buffer that wraps at the given indentation.
func New(indent int) *Buffer {
	return &Buffer{Indent: indent}
}

// Style pushes a style on top of the current one. Subsequent text uses the
// combined record until Unstyle is called.
func (b *Buffer) Style(st Style) *Buffer {
	b.stack = append(b.stack, b.rec)
	b.rec = b.rec.apply(st)
	return b
}

// Unstyle restores the style that was active before the last Style call.
func (b *Buffer) Unstyle() *Buffer {
	if n := len(b.stack); n > 0 {
		b.rec = b.stack[n-1]
		b.stack = b.stack[:n-1]
	}
	return b
}

// Word appends a word. Empty text is ignored.
func (b *Buffer) Word(text string) *Buffer {
	if text == "" {
		return b
	}
	f := fragment{text: text, rec: b.rec}
	if b.glue && b.canGlue() {
		b.glue = false
		b.glueFragments([]fragment{f}, textWidth(text))
		return b
	}
	b.glue = false
	b.push(word{frags: []fragment{f}, width: textWidth(text)})
	return b
}

// Words appends each text as a separate word.
func (b *Buffer) Words(texts ...string) *Buffer {
	for _, text := range texts {
		b.Word(text)
	}
	return b
}

// Open appends text that is glued to the next word.
func (b *Buffer) Open(text string) *Buffer {
	if text == "" {
		return b
	}
	b.Word(text)
	b.glue = true
	return b
}

// Close appends text glued to the last word.
func (b *Buffer) Close(text string) *Buffer {
	if text == "" {
		return b
	}
	if !b.canGlue() {
		return b.Word(text)
	}
	b.glue = false
	b.glueFragments([]fragment{{text: text, rec: b.rec}}, textWidth(text))
	return b
}

// Break appends n forced line breaks.
func (b *Buffer) Break(n int) *Buffer {
	b.glue = false
	for range n {
		b.push(word{})
	}
	return b
}

// Append copies the words of other to the end of b, keeping their styles.
func (b *Buffer) Append(other *Buffer) *Buffer {
	if other == nil {
		return b
	}
	for i, w := range other.words {
		frags := append([]fragment(nil), w.frags...)
		if i == 0 && b.glue && !w.isBreak() && b.canGlue() {
			b.glueFragments(frags, w.width)
			continue
		}
		b.push(word{frags: frags, width: w.width})
	}
	b.glue = false
	return b
}

// Count returns the number of words, line breaks included.
func (b *Buffer) Count() int {
	return len(b.words)
}

// MaxWordLen returns the width of the longest word.
func (b *Buffer) MaxWordLen() int {
	return b.maxWord
}

// LastWordLen returns the width of the last word.
func (b *Buffer) LastWordLen() int {
	if n := len(b.words); n > 0 {
		return b.words[n-1].width
	}
	return 0
}

// FirstLineLen returns the unwrapped width of the text before the first break.
func (b *Buffer) FirstLineLen() int {
	return b.firstLine
}

// LastLineLen returns the unwrapped width of the text after the last break.
func (b *Buffer) LastLineLen() int {
	return b.lastLine
}

// MaxLineLen returns the unwrapped width of the longest line.
func (b *Buffer) MaxLineLen() int {
	return b.maxLine
}

func (b *Buffer) canGlue() bool {
	n := len(b.words)
	return n > 0 && !b.words[n-1].isBreak()
}

func (b *Buffer) push(w word) {
	b.words = append(b.words, w)
	if w.isBreak() {
		b.lines++
		b.lineWords = 0
		b.lastLine = 0
		return
	}
	b.frags += len(w.frags)
	if b.lineWords > 0 {
		b.lastLine++
	}
	b.lineWords++
	b.grow(w.width)
}

func (b *Buffer) glueFragments(frags []fragment, width int) {
	last := &b.words[len(b.words)-1]
	last.frags = append(last.frags, frags...)
	last.width += width
	b.frags += len(frags)
	b.grow(width)
}

// grow accounts for n more cells at the end of the last line.
func (b *Buffer) grow(n int) {
	b.lastLine += n
	if w := b.words[len(b.words)-1].width; w > b.maxWord {
		b.maxWord = w
	}
	if b.lastLine > b.maxLine {
		b.maxLine = b.lastLine
	}
	if b.lines == 0 {
		b.firstLine = b.lastLine
	}
}
