package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidCombination = errors.New("invalid combination")
	ErrMissingSample      = errors.New("missing sample")
	ErrInvalidDestination = errors.New("invalid destination")
	ErrMalformedInput     = errors.New("malformed input")
)

// InvalidCombinationError is returned once the generator gives up. LastNotes
// is the last note set that was rejected.
type InvalidCombinationError struct {
	Attempts  int
	LastNotes []string
}

func (e *InvalidCombinationError) Error() string {
	return fmt.Sprintf("no recognized chord after %d attempt(s), last notes: [%v]",
		e.Attempts, strings.Join(e.LastNotes, " "))
}

func (e *InvalidCombinationError) Unwrap() error {
	return ErrInvalidCombination
}

type MissingSampleError struct {
	Note string
	Path string
}

func (e *MissingSampleError) Error() string {
	return fmt.Sprintf("the file path for the specified note '%v' doesn't exist (%v)", e.Note, e.Path)
}

func (e *MissingSampleError) Unwrap() error {
	return ErrMissingSample
}

type InvalidDestinationError struct {
	Dest   string
	Reason string
}

func (e *InvalidDestinationError) Error() string {
	return fmt.Sprintf("invalid destination %q: %v", e.Dest, e.Reason)
}

func (e *InvalidDestinationError) Unwrap() error {
	return ErrInvalidDestination
}

type MalformedInputError struct {
	Input  string
	Reason string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed input %q: %v", e.Input, e.Reason)
}

func (e *MalformedInputError) Unwrap() error {
	return ErrMalformedInput
}
