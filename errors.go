package optparse

import (
	"errors"
	"fmt"

	"github.com/napalu/optparse/ansi"
	"github.com/napalu/optparse/i18n"
	"github.com/napalu/optparse/types"
	"github.com/napalu/optparse/util"
)

// FmtErrorWithString wraps a callback error with the name of its option
const FmtErrorWithString = "%w: %s"

// ErrorItem identifies a parse error or warning
type ErrorItem int

const (
	ItemUnknownOption ErrorItem = iota
	ItemMissingParameter
	ItemMismatchedParamCount
	ItemDisallowedInlineParameter
	ItemMissingInlineParameter
	ItemInvalidClusterOption
	ItemChoiceConstraint
	ItemRegexConstraint
	ItemLimitConstraint
	ItemMissingRequiredOption
	ItemUnsatisfiedRequirement
	ItemUnsatisfiedCondRequirement
	ItemDeprecatedOption
	ItemRangeConstraint
	ItemURLConstraint
)

var itemKeys = [...]string{
	ItemUnknownOption:              types.ErrUnknownOptionKey,
	ItemMissingParameter:           types.ErrMissingParameterKey,
	ItemMismatchedParamCount:       types.ErrMismatchedParamCountKey,
	ItemDisallowedInlineParameter:  types.ErrDisallowedInlineParameterKey,
	ItemMissingInlineParameter:     types.ErrMissingInlineParameterKey,
	ItemInvalidClusterOption:       types.ErrInvalidClusterOptionKey,
	ItemChoiceConstraint:           types.ErrChoiceConstraintKey,
	ItemRegexConstraint:            types.ErrRegexConstraintKey,
	ItemLimitConstraint:            types.ErrLimitConstraintKey,
	ItemMissingRequiredOption:      types.ErrMissingRequiredOptionKey,
	ItemUnsatisfiedRequirement:     types.ErrUnsatisfiedRequirementKey,
	ItemUnsatisfiedCondRequirement: types.ErrUnsatisfiedCondRequirementKey,
	ItemDeprecatedOption:           types.WarnDeprecatedOptionKey,
	ItemRangeConstraint:            types.ErrRangeConstraintKey,
	ItemURLConstraint:              types.ErrURLConstraintKey,
}

// Key returns the translation key of the item's phrase
func (i ErrorItem) Key() string {
	if i >= 0 && int(i) < len(itemKeys) {
		return itemKeys[i]
	}
	return ""
}

func (i ErrorItem) String() string {
	return i.Key()
}

// Error is a user-input error. Its message is rendered text which can be
// wrapped to the terminal width.
type Error struct {
	Item    ErrorItem
	Message ansi.ErrorMessage
}

func (e *Error) Error() string {
	if len(e.Message.Message) == 0 {
		return e.Item.String()
	}
	return e.Message.String()
}

// Wrap renders the message to width
func (e *Error) Wrap(width int, emitStyles, emitSpaces bool) string {
	return e.Message.Wrap(width, emitStyles, emitSpaces)
}

// Is matches errors of the same item
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Item == e.Item
}

var (
	ErrUnknownOption              = &Error{Item: ItemUnknownOption}
	ErrMissingParameter           = &Error{Item: ItemMissingParameter}
	ErrMismatchedParamCount       = &Error{Item: ItemMismatchedParamCount}
	ErrDisallowedInlineParameter  = &Error{Item: ItemDisallowedInlineParameter}
	ErrMissingInlineParameter     = &Error{Item: ItemMissingInlineParameter}
	ErrInvalidClusterOption       = &Error{Item: ItemInvalidClusterOption}
	ErrChoiceConstraint           = &Error{Item: ItemChoiceConstraint}
	ErrRegexConstraint            = &Error{Item: ItemRegexConstraint}
	ErrLimitConstraint            = &Error{Item: ItemLimitConstraint}
	ErrMissingRequiredOption      = &Error{Item: ItemMissingRequiredOption}
	ErrUnsatisfiedRequirement     = &Error{Item: ItemUnsatisfiedRequirement}
	ErrUnsatisfiedCondRequirement = &Error{Item: ItemUnsatisfiedCondRequirement}
	ErrRangeConstraint            = &Error{Item: ItemRangeConstraint}
	ErrURLConstraint              = &Error{Item: ItemURLConstraint}
)

// constraintError is a parameter error of a stock parse callback. The
// parser renders it in its own language and styles.
type constraintError struct {
	item ErrorItem
	name string
	args []any
}

func (e *constraintError) Error() string {
	args := append([]any{ansi.Symbol(e.name)}, e.args...)
	return ansi.New(0).Format(&ansi.DefaultStyles, i18n.Default().T(e.item.Key()), ansi.FormatFlags{}, args...).String()
}

func (e *constraintError) Unwrap() error {
	return &Error{Item: e.item}
}

// phrase formats the translated phrase of an item
func (p *Parser) phrase(item ErrorItem, flags ansi.FormatFlags, args ...any) *ansi.Buffer {
	return ansi.New(0).Format(&p.styles, p.bundle.TL(p.lang, item.Key()), flags, args...)
}

func (p *Parser) newError(item ErrorItem, flags ansi.FormatFlags, args ...any) *Error {
	return &Error{
		Item:    item,
		Message: ansi.ErrorMessage{Message: ansi.Message{p.phrase(item, flags, args...)}},
	}
}

func (p *Parser) errUnknownOption(name string, similar []string) error {
	flags := ansi.FormatFlags{}
	if len(similar) > 0 {
		flags.Alt = 1
	}
	return p.newError(ItemUnknownOption, flags, ansi.Symbol(name), symbols(similar))
}

func (p *Parser) errParamCount(name string, min, max int) error {
	switch {
	case min == max:
		return p.newError(ItemMismatchedParamCount, ansi.FormatFlags{Alt: 0}, ansi.Symbol(name), min)
	case util.Unbounded(max):
		return p.newError(ItemMismatchedParamCount, ansi.FormatFlags{Alt: 1}, ansi.Symbol(name), min)
	case min == 0:
		return p.newError(ItemMismatchedParamCount, ansi.FormatFlags{Alt: 2}, ansi.Symbol(name), max)
	}
	return p.newError(ItemMismatchedParamCount, ansi.FormatFlags{Alt: 3}, ansi.Symbol(name), min, max)
}

// callbackError names the option in the error of a callback
func (p *Parser) callbackError(err error, name string) error {
	var cerr *constraintError
	if errors.As(err, &cerr) {
		return p.newError(cerr.item, ansi.FormatFlags{}, append([]any{ansi.Symbol(name)}, cerr.args...)...)
	}
	return wrapCallbackError(err, name)
}

func wrapCallbackError(err error, name string) error {
	var msg ansi.Wrapper
	if errors.As(err, &msg) {
		return err
	}
	return fmt.Errorf(FmtErrorWithString, err, name)
}

func symbols(names []string) []ansi.Symbol {
	syms := make([]ansi.Symbol, len(names))
	for i, name := range names {
		syms[i] = ansi.Symbol(name)
	}
	return syms
}
