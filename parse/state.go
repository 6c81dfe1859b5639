package parse

import (
	"errors"

	"github.com/ef-ds/deque"
)

// State is the token stream consumed by the parser
type State interface {
	Advance() bool              // Move to the next token, returning false at the end
	Current() string            // Get the current token
	Pos() int                   // Get the index of the current token
	Last() bool                 // Report whether the current token is the last one
	Peek() (string, bool)       // Peek at the next token
	Push(tokens ...string)      // Insert tokens to be read next, in order
	Rest() []string             // Drain the remaining tokens
	Len() int                   // Gets the number of remaining tokens
	At(pos int) (string, error) // Get a token consumed so far
}

// ErrInvalidPosition is an error that occurs when an invalid position is accessed
var ErrInvalidPosition = errors.New("invalid position")

// DefaultState is the default implementation of the State interface
type DefaultState struct {
	pos      int
	current  string
	consumed []string
	pending  *deque.Deque
}

// NewState creates a new State instance over the given tokens
func NewState(args []string) State {
	s := &DefaultState{
		pos:     -1,
		pending: deque.New(),
	}
	for _, arg := range args {
		s.pending.PushBack(arg)
	}
	return s
}

// Advance moves to the next token
func (s *DefaultState) Advance() bool {
	v, ok := s.pending.PopFront()
	if !ok {
		return false
	}
	s.pos++
	s.current = v.(string)
	s.consumed = append(s.consumed, s.current)
	return true
}

// Current returns the current token
func (s *DefaultState) Current() string {
	return s.current
}

// Pos returns the index of the current token, counting inserted tokens
func (s *DefaultState) Pos() int {
	return s.pos
}

// Last reports whether no token follows the current one
func (s *DefaultState) Last() bool {
	return s.pos >= 0 && s.pending.Len() == 0
}

// Peek returns the next token without advancing
func (s *DefaultState) Peek() (string, bool) {
	v, ok := s.pending.Front()
	if !ok {
		return "", false
	}
	return v.(string), true
}

// Push inserts tokens so that they are read next, in the given order
func (s *DefaultState) Push(tokens ...string) {
	for i := len(tokens) - 1; i >= 0; i-- {
		s.pending.PushFront(tokens[i])
	}
}

// Rest drains and returns the remaining tokens
func (s *DefaultState) Rest() []string {
	rest := make([]string, 0, s.pending.Len())
	for s.Advance() {
		rest = append(rest, s.current)
	}
	return rest
}

// Len returns the number of remaining tokens
func (s *DefaultState) Len() int {
	return s.pending.Len()
}

// At returns a token that was already consumed
func (s *DefaultState) At(pos int) (string, error) {
	if pos < 0 || pos >= len(s.consumed) {
		return "", ErrInvalidPosition
	}
	return s.consumed[pos], nil
}
