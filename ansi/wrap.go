package ansi

import (
	"strconv"
	"strings"
)

// Wrap appends the wrapped text of b, and of its hook chain, to out. Text
// starts at column and the final column is returned. A non-positive width
// disables wrapping. When emitStyles is false no SGR sequence is produced;
// when emitSpaces is false cursor movements replace padding spaces.
func (b *Buffer) Wrap(out *[]string, column, width int, emitStyles, emitSpaces bool) int {
	return b.wrap(out, column, width, emitStyles, emitSpaces, b.MergeLeft)
}

// String returns the unwrapped text without styles.
func (b *Buffer) String() string {
	var out []string
	b.Wrap(&out, 0, 0, false, true)
	return strings.Join(out, "")
}

func (b *Buffer) wrap(out *[]string, column, width int, emitStyles, emitSpaces, merge bool) int {
	for h := b; h != nil; h = h.Hook {
		h.resume = 0
		h.done = false
		h.start = -1
	}
	for {
		var done bool
		column, done = b.wrapLine(out, column, width, emitStyles, emitSpaces, merge)
		if done {
			return column
		}
		*out = append(*out, "\n")
		column = 0
		merge = false
	}
}

// wrapLine emits one line of b and then lets the hook continue the same
// line. It reports whether every buffer of the chain is exhausted.
func (b *Buffer) wrapLine(out *[]string, column, width int, emitStyles, emitSpaces, merge bool) (int, bool) {
	column, done := b.wrapOwn(out, column, width, emitStyles, emitSpaces, merge)
	if b.Hook != nil {
		var hookDone bool
		column, hookDone = b.Hook.wrapLine(out, column, width, emitStyles, emitSpaces, false)
		done = done && hookDone
	}
	return column, done
}

func (b *Buffer) effectiveWidth(width int) int {
	if b.Width > 0 && (width <= 0 || b.Width < width) {
		return b.Width
	}
	return width
}

func (b *Buffer) wrapOwn(out *[]string, column, width int, emitStyles, emitSpaces, merge bool) (int, bool) {
	if b.done {
		return column, true
	}
	if b.resume >= len(b.words) {
		b.done = true
		return column, true
	}
	w := b.effectiveWidth(width)
	if b.start < 0 {
		b.start = max(b.Indent, 0)
		if w > 0 {
			b.start = min(b.start, w)
			if b.maxWord > w-b.start {
				b.start = 0
				if column > 0 && !merge {
					*out = append(*out, "\n")
					column = 0
				}
			}
		}
	} else {
		merge = false
	}

	placed := 0
	padAt := -1
	for b.resume < len(b.words) {
		wd := &b.words[b.resume]
		if wd.isBreak() {
			b.resume++
			return b.align(out, column, w, placed, padAt, emitSpaces), false
		}
		sep := 1
		if merge || column <= b.start {
			sep = 0
		}
		next := max(column, b.start) + sep + wd.width
		if w > 0 && next > w && (placed > 0 || column > b.start) {
			break
		}
		if column < b.start && !merge {
			*out = append(*out, move(column, b.start, emitSpaces))
			column = b.start
		}
		if placed == 0 {
			padAt = len(*out)
		}
		if sep > 0 {
			*out = append(*out, " ")
		}
		wd.emit(out, emitStyles)
		column += sep + wd.width
		placed++
		merge = false
		b.resume++
	}
	column = b.align(out, column, w, placed, padAt, emitSpaces)
	b.done = b.resume >= len(b.words)
	return column, b.done
}

// align splices the right-alignment padding at the line's starting boundary.
func (b *Buffer) align(out *[]string, column, width, placed, padAt int, emitSpaces bool) int {
	if b.Align != AlignRight || width <= 0 || placed == 0 || column >= width {
		return column
	}
	pad := width - column
	var fill string
	if emitSpaces {
		fill = strings.Repeat(" ", pad)
	} else {
		fill = "\x1b[" + strconv.Itoa(pad) + "C"
	}
	*out = append(*out, "")
	copy((*out)[padAt+1:], (*out)[padAt:])
	(*out)[padAt] = fill
	return width
}

func move(from, to int, emitSpaces bool) string {
	if emitSpaces {
		return strings.Repeat(" ", to-from)
	}
	return "\x1b[" + strconv.Itoa(to+1) + "G"
}

func (w *word) emit(out *[]string, emitStyles bool) {
	if !emitStyles && len(w.frags) == 1 {
		*out = append(*out, w.frags[0].text)
		return
	}
	var sb strings.Builder
	var cur record
	for _, f := range w.frags {
		if emitStyles {
			sb.WriteString(cur.diff(f.rec))
			cur = f.rec
		}
		sb.WriteString(f.text)
	}
	if emitStyles {
		sb.WriteString(cur.diff(record{}))
	}
	*out = append(*out, sb.String())
}
