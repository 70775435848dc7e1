package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a resource is not found.
	ErrNotFound = errors.New("not found")
	// ErrNotValid is returned when a resource is not valid.
	ErrNotValid = errors.New("not valid")
	// ErrInternal marks unexpected faults that are not caused by user input.
	ErrInternal = errors.New("internal error")

	ErrEmptyDescription  = errors.New("empty description")
	ErrMissingArgument   = errors.New("missing argument")
	ErrInvalidIndex      = errors.New("invalid index")
	ErrUnknownCommand    = errors.New("unknown command")
	ErrDateFormat        = errors.New("invalid date format")
	ErrReservedCharacter = errors.New("reserved character")
)

// UserError is implemented by the errors caused by the user input. These are
// recoverable by retrying with a corrected input and their message is safe to
// show as is.
type UserError interface {
	error
	UserError()
}

// IsUserError returns true if err or any error it wraps is a UserError.
func IsUserError(err error) bool {
	var uerr UserError
	return errors.As(err, &uerr)
}

// EmptyDescriptionError is returned when a required text is blank.
// It satisfies errors.Is(err, ErrEmptyDescription).
type EmptyDescriptionError struct {
	What string
}

func (e *EmptyDescriptionError) Error() string {
	return fmt.Sprintf("The %s description cannot be empty.", e.What)
}

func (e *EmptyDescriptionError) Is(target error) bool { return target == ErrEmptyDescription }
func (e *EmptyDescriptionError) UserError()           {}

// MissingArgumentError is returned when a required separator or token is absent.
// It satisfies errors.Is(err, ErrMissingArgument).
type MissingArgumentError struct {
	Need string
}

func (e *MissingArgumentError) Error() string {
	return "Missing required part: " + e.Need
}

func (e *MissingArgumentError) Is(target error) bool { return target == ErrMissingArgument }
func (e *MissingArgumentError) UserError()           {}

// InvalidIndexError is returned when an index is not numeric or out of the list range.
// It satisfies errors.Is(err, ErrInvalidIndex).
type InvalidIndexError struct {
	Action string
}

func (e *InvalidIndexError) Error() string {
	if e.Action == "" {
		return "That index is not valid. Use a 1-based index within the list range."
	}
	return fmt.Sprintf("That index is not valid for %q. Use a 1-based index within the list range.", e.Action)
}

func (e *InvalidIndexError) Is(target error) bool { return target == ErrInvalidIndex }
func (e *InvalidIndexError) UserError()           {}

// UnknownCommandError is returned when the command word is not recognized.
// It satisfies errors.Is(err, ErrUnknownCommand).
type UnknownCommandError struct {
	Input string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("I don't recognise the command: %q", e.Input)
}

func (e *UnknownCommandError) Is(target error) bool { return target == ErrUnknownCommand }
func (e *UnknownCommandError) UserError()           {}

// DateFormatError is returned when a date expression can't be resolved.
// It satisfies errors.Is(err, ErrDateFormat).
type DateFormatError struct {
	Text string
}

func (e *DateFormatError) Error() string {
	return fmt.Sprintf("I can't understand the date %q. Try yyyy-mm-dd, d/m/yyyy, \"tomorrow\", \"next mon\" or \"in 3 days\".", e.Text)
}

func (e *DateFormatError) Is(target error) bool { return target == ErrDateFormat }
func (e *DateFormatError) UserError()           {}

// ReservedCharacterError is returned when a task text contains the record separator
// or a control character like a line break.
// It satisfies errors.Is(err, ErrReservedCharacter).
type ReservedCharacterError struct {
	Field string
	// Control is set when the offending character is a control character.
	Control bool
}

func (e *ReservedCharacterError) Error() string {
	if e.Control {
		return fmt.Sprintf("The %s cannot contain line breaks or control characters.", e.Field)
	}
	return fmt.Sprintf("The %s cannot contain the %q character.", e.Field, RecordSeparator)
}

func (e *ReservedCharacterError) Is(target error) bool { return target == ErrReservedCharacter }
func (e *ReservedCharacterError) UserError()           {}
