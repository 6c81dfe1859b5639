package ansi

import (
	"encoding/json"
	"strings"
)

// Wrapper is implemented by every message type.
type Wrapper interface {
	error
	Wrap(width int, emitStyles, emitSpaces bool) string
}

// Message is a sequence of buffers wrapped one after the other. It is
// returned as an error when parsing stops to print help.
type Message []*Buffer

func (m Message) Wrap(width int, emitStyles, emitSpaces bool) string {
	var out []string
	column := 0
	var prev *Buffer
	for _, b := range m {
		merge := b.MergeLeft || (prev != nil && prev.MergeRight)
		column = b.wrap(&out, column, width, emitStyles, emitSpaces, merge)
		prev = b
	}
	return strings.Join(out, "")
}

func (m Message) String() string {
	return m.Wrap(0, false, true)
}

func (m Message) Error() string {
	return m.String()
}

// ErrorMessage describes a user-input error.
type ErrorMessage struct {
	Message
}

// WarnMessage accumulates warnings, one line each.
type WarnMessage struct {
	Message
}

// Add appends a warning.
func (m *WarnMessage) Add(b *Buffer) {
	m.Message = append(m.Message, b)
}

// Len returns the number of warnings.
func (m *WarnMessage) Len() int {
	return len(m.Message)
}

func (m WarnMessage) Wrap(width int, emitStyles, emitSpaces bool) string {
	lines := make([]string, len(m.Message))
	for i, b := range m.Message {
		lines[i] = Message{b}.Wrap(width, emitStyles, emitSpaces)
	}
	return strings.Join(lines, "\n")
}

func (m WarnMessage) String() string {
	return m.Wrap(0, false, true)
}

func (m WarnMessage) Error() string {
	return m.String()
}

// TextMessage is a list of plain lines.
type TextMessage []string

func (m TextMessage) Wrap(int, bool, bool) string {
	return strings.Join(m, "\n")
}

func (m TextMessage) String() string {
	return strings.Join(m, "\n")
}

func (m TextMessage) Error() string {
	return m.String()
}

// JSONMessage is a list of objects printed as a JSON array.
type JSONMessage []any

func (m JSONMessage) Wrap(int, bool, bool) string {
	return m.String()
}

func (m JSONMessage) String() string {
	if m == nil {
		m = JSONMessage{}
	}
	data, err := json.Marshal([]any(m))
	if err != nil {
		return "[]"
	}
	return string(data)
}

func (m JSONMessage) Error() string {
	return m.String()
}
