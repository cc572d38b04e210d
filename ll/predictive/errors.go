package predictive

import (
	"errors"
	"fmt"

	"github.com/npillmayer/lltab"
	"github.com/npillmayer/lltab/ll"
)

// Error classes for parse errors.
var (
	ErrTerminalMismatch = errors.New("terminal mismatch")
	ErrNoProduction     = errors.New("no production")
	ErrInvalidSymbol    = errors.New("invalid input symbol")
	ErrStackOverflow    = errors.New("parse stack overflow")
)

// ErrorKind classifies a parse error.
type ErrorKind int

// Kinds of parse errors.
const (
	TerminalMismatch ErrorKind = iota + 1 // terminal on top of stack does not match input
	NoProduction                          // empty table cell
	InvalidSymbol                         // input token not in terminal alphabet
)

func (k ErrorKind) String() string {
	switch k {
	case TerminalMismatch:
		return "TerminalMismatch"
	case NoProduction:
		return "NoProduction"
	case InvalidSymbol:
		return "InvalidSymbol"
	}
	return "<unknown>"
}

// ParseError is returned by a parser for input it rejects.
// Pos is the index of the offending token within the input (which is
// terminated by an end-of-input token), Top is the symbol on top of the stack.
type ParseError struct {
	Kind  ErrorKind
	Pos   int
	Top   *ll.Symbol
	Token lltab.Token
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at position %d: stack top %s, input %s",
		e.Kind, e.Pos, e.Top, tokenString(e.Token))
}

// Unwrap returns the error class of e.
func (e *ParseError) Unwrap() error {
	switch e.Kind {
	case TerminalMismatch:
		return ErrTerminalMismatch
	case NoProduction:
		return ErrNoProduction
	case InvalidSymbol:
		return ErrInvalidSymbol
	}
	return nil
}
