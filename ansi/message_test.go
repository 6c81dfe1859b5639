package ansi

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessage_Wrap(t *testing.T) {
	m := Message{New(0).Word("Error:"), New(0).Words("foo", "bar")}
	assert.Equal(t, "Error: foo bar", m.String())
	assert.Equal(t, "Error: foo\nbar", m.Wrap(10, false, true))

	m[0].MergeRight = true
	assert.Equal(t, "Error:foo bar", m.String())
}

func TestMessage_Errors(t *testing.T) {
	var err error = ErrorMessage{Message{New(0).Word("boom")}}
	assert.EqualError(t, err, "boom")

	var target ErrorMessage
	assert.True(t, errors.As(err, &target))

	var text error = TextMessage{"a", "b"}
	assert.EqualError(t, text, "a\nb")
	var asText TextMessage
	assert.True(t, errors.As(text, &asText))
	assert.False(t, errors.As(err, &asText))
}

func TestWarnMessage(t *testing.T) {
	var m WarnMessage
	assert.Equal(t, 0, m.Len())
	m.Add(New(0).Words("first", "warning"))
	m.Add(New(0).Word("second"))
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, "first warning\nsecond", m.String())
}

func TestJSONMessage(t *testing.T) {
	m := JSONMessage{map[string]any{"value": "a"}, map[string]any{"value": "b", "description": "x"}}
	assert.Equal(t, `[{"value":"a"},{"description":"x","value":"b"}]`, m.String())

	var empty JSONMessage
	assert.Equal(t, "[]", empty.Wrap(0, false, false))
}
