/*
Package scanner defines the tokenizer interface for the predictive parser of
package ll/predictive, together with a simple token type.

Two tokenizers are provided: (1) a Go-syntax tokenizer over 'text/scanner',
used for reading textual grammars, and (2) an adapter for lexmachine, living in
sub-package `lexmach`, which creates a tokenizer for the terminals of a grammar.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"fmt"
	"io"
	"strconv"
	"text/scanner"

	"github.com/npillmayer/lltab"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lltab.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("lltab.scanner")
}

// Token types of the Go tokenizer which grammar readers and tokenizers refer to.
const (
	EOF    = scanner.EOF
	Ident  = scanner.Ident
	Int    = scanner.Int
	String = scanner.String
)

// Illegal is the token type for input which no tokenizer rule matches.
// It is never a member of a grammar's terminal alphabet.
const Illegal = scanner.Comment - 1

// Tokenizer is the interface the parser reads tokens from. After the end of
// input, NextToken returns tokens of type EOF.
type Tokenizer interface {
	NextToken() lltab.Token
	SetErrorHandler(func(error))
}

// ReadAll drains a tokenizer. The returned slice ends with the EOF token.
func ReadAll(t Tokenizer) []lltab.Token {
	var tokens []lltab.Token
	for {
		tok := t.NextToken()
		tokens = append(tokens, tok)
		if tok.TokType() == EOF {
			return tokens
		}
	}
}

// --- Go tokenizer ----------------------------------------------------------

// GoScanner tokenizes input following the lexical rules of Go.
// Create one with GoTokenizer.
type GoScanner struct {
	sc           scanner.Scanner
	onError      func(error)
	unifyStrings bool // report raw strings and chars as strings
}

var _ Tokenizer = (*GoScanner)(nil)

func logError(e error) {
	tracer().Errorf("scanner error: %v", e)
}

// GoTokenizer creates a tokenizer for Go-like input. sourceID names the input
// in error messages.
func GoTokenizer(sourceID string, input io.Reader, opts ...Option) *GoScanner {
	t := &GoScanner{onError: logError}
	t.sc.Init(input)
	t.sc.Filename = sourceID
	t.sc.Error = func(s *scanner.Scanner, msg string) {
		t.onError(fmt.Errorf("%s: %s", s.Position, msg))
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SetErrorHandler sets an error handler for the tokenizer. A nil handler
// restores tracing of errors.
func (t *GoScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		h = logError
	}
	t.onError = h
}

// Position returns the position of the last token read.
func (t *GoScanner) Position() scanner.Position {
	return t.sc.Position
}

// NextToken is part of the Tokenizer interface. String and character literals
// carry their unquoted text as token value.
func (t *GoScanner) NextToken() lltab.Token {
	r := t.sc.Scan()
	tok := DefaultToken{
		kind:   lltab.TokType(r),
		lexeme: t.sc.TokenText(),
		span:   lltab.Span{uint64(t.sc.Position.Offset), uint64(t.sc.Pos().Offset)},
	}
	switch r {
	case scanner.EOF:
		tracer().Debugf("Go tokenizer reached end of input")
	case scanner.String, scanner.RawString, scanner.Char:
		if s, err := strconv.Unquote(tok.lexeme); err == nil {
			tok.value = s
		}
		if t.unifyStrings {
			tok.kind = scanner.String
		}
	}
	return tok
}

// Option configures a Go tokenizer.
type Option func(t *GoScanner)

// SkipComments sets or clears mode-flag SkipComments.
func SkipComments(b bool) Option {
	return func(t *GoScanner) {
		if b {
			t.sc.Mode |= scanner.SkipComments
		} else {
			t.sc.Mode &^= scanner.SkipComments
		}
	}
}

// UnifyStrings lets the tokenizer report raw strings and single chars as strings.
func UnifyStrings(b bool) Option {
	return func(t *GoScanner) {
		t.unifyStrings = b
	}
}

// --- Tokens ----------------------------------------------------------------

// DefaultToken is the token type of both tokenizers of this module.
type DefaultToken struct {
	kind   lltab.TokType
	lexeme string
	value  interface{}
	span   lltab.Span
}

// MakeDefaultToken creates a token without a value.
func MakeDefaultToken(typ lltab.TokType, lexeme string, span lltab.Span) DefaultToken {
	return DefaultToken{kind: typ, lexeme: lexeme, span: span}
}

func (t DefaultToken) TokType() lltab.TokType { return t.kind }
func (t DefaultToken) Value() interface{}     { return t.value }
func (t DefaultToken) Lexeme() string         { return t.lexeme }
func (t DefaultToken) Span() lltab.Span       { return t.span }

func (t DefaultToken) String() string {
	return fmt.Sprintf("%q/%d", t.lexeme, t.kind)
}
