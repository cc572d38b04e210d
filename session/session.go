/*
Package session bundles the steps of LL(1) processing for a grammar.

A session is created from a grammar. It performs grammar analysis and table
construction once, and is then able to parse any number of inputs, sequentially
or concurrently.

	s, err := session.New(g, session.WithParseTree(true))
	if err != nil {
		// grammar is not LL(1), see ll.ErrGrammarNotLL1
	}
	result, err := s.ParseString("i + i * i")
	fmt.Println(result.Accepted)

Sessions are immutable after creation. A Cache holds sessions for grammars
which are used over and over again.

Configuration

If configuration flag 'trace-parser-steps' is set, every parser step is
traced at level Info with tracing key 'lltab.session'.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package session

import (
	"errors"

	"github.com/npillmayer/lltab"
	"github.com/npillmayer/lltab/ll"
	"github.com/npillmayer/lltab/ll/predictive"
	"github.com/npillmayer/lltab/ll/scanner"
	"github.com/npillmayer/lltab/ll/scanner/lexmach"
	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lltab.session'.
func tracer() tracing.Trace {
	return tracing.Select("lltab.session")
}

// Session is an analysis session for a grammar.
type Session struct {
	g     *ll.Grammar
	ga    *ll.LLAnalysis
	table *ll.Table
	gen   *ll.TableGenerator
	lexer *lexmach.LMAdapter
	limit int
	sink  predictive.TraceSink
	tree  bool
	steps bool // log parser steps
}

// Option configures a session.
type Option func(s *Session)

// WithStackLimit restricts the parse stack to n symbols.
func WithStackLimit(n int) Option {
	return func(s *Session) {
		s.limit = n
	}
}

// WithTraceSink sets a sink to receive the steps of every parse.
// The sink has to be safe for concurrent use if the session is.
func WithTraceSink(sink predictive.TraceSink) Option {
	return func(s *Session) {
		s.sink = sink
	}
}

// WithParseTree lets the session build parse trees for accepted input.
func WithParseTree(b bool) Option {
	return func(s *Session) {
		s.tree = b
	}
}

// New creates a session for a grammar. If the grammar is not LL(1), an error
// is returned which matches ll.ErrGrammarNotLL1.
func New(g *ll.Grammar, opts ...Option) (*Session, error) {
	if g == nil {
		return nil, errors.New("cannot create session without grammar")
	}
	s := &Session{g: g, steps: gconf.GetBool("trace-parser-steps")}
	for _, opt := range opts {
		opt(s)
	}
	s.ga = ll.Analysis(g)
	s.gen = ll.NewTableGenerator(s.ga)
	if err := s.gen.CreateTable(); err != nil {
		return nil, err
	}
	s.table = s.gen.Table()
	var err error
	if s.lexer, err = lexmach.ForGrammar(g); err != nil {
		return nil, err
	}
	tracer().Infof("new session for grammar %s", g.Name)
	return s, nil
}

// Grammar returns the session's grammar.
func (s *Session) Grammar() *ll.Grammar {
	return s.g
}

// Analysis returns the FIRST and FOLLOW sets of the grammar.
func (s *Session) Analysis() *ll.LLAnalysis {
	return s.ga
}

// Table returns the parsing table.
func (s *Session) Table() *ll.Table {
	return s.table
}

// TableGenerator returns the generator which created the parsing table.
func (s *Session) TableGenerator() *ll.TableGenerator {
	return s.gen
}

// First returns FIRST(A).
func (s *Session) First(A *ll.Symbol) []*ll.Symbol {
	return s.ga.FirstSymbols(A)
}

// Follow returns FOLLOW(A).
func (s *Session) Follow(A *ll.Symbol) []*ll.Symbol {
	return s.ga.FollowSymbols(A)
}

// --- Parsing ---------------------------------------------------------------

// Result is the outcome of a parse. Pos is the input position where the
// input has been rejected or, if accepted, the position after the end-marker.
type Result struct {
	Accepted bool
	Pos      int
	Trace    []predictive.Step
	Tree     *predictive.Node
}

// Parse parses a sequence of tokens. A parse error is returned together
// with the result, which contains the trace up to the error.
func (s *Session) Parse(input []lltab.Token) (Result, error) {
	rec := predictive.NewRecorder()
	sink := predictive.TraceFunc(func(step predictive.Step) {
		rec.Step(step)
		if s.steps {
			tracer().Infof("%s", step)
		}
		if s.sink != nil {
			s.sink.Step(step)
		}
	})
	p := predictive.NewParser(s.g, s.table,
		predictive.TraceTo(sink),
		predictive.StackLimit(s.limit),
		predictive.GenerateTree(s.tree),
	)
	accepted, err := p.Parse(input)
	return Result{
		Accepted: accepted,
		Pos:      p.Position(),
		Trace:    rec.Steps(),
		Tree:     p.ParseTree(),
	}, err
}

// ParseNames parses a sequence of symbol names. Names which are not terminals
// of the grammar are passed as invalid tokens.
func (s *Session) ParseNames(names ...string) (Result, error) {
	return s.Parse(s.Tokens(names...))
}

// ParseString tokenizes a string, using the terminals of the grammar, and
// parses the result.
func (s *Session) ParseString(input string) (Result, error) {
	scan, err := s.lexer.Scanner(input)
	if err != nil {
		return Result{}, err
	}
	return s.Parse(scanner.ReadAll(scan))
}

// Tokens creates input tokens for a sequence of symbol names.
func (s *Session) Tokens(names ...string) []lltab.Token {
	tokens := make([]lltab.Token, len(names))
	for i, name := range names {
		typ := lltab.TokType(scanner.Illegal)
		if sym := s.g.SymbolByName(name); sym.IsLookahead() {
			typ = sym.TokenType()
		}
		span := lltab.Span{uint64(i), uint64(i + 1)}
		tokens[i] = scanner.MakeDefaultToken(typ, name, span)
	}
	return tokens
}
