/*
Package predictive provides a table-driven LL(1)-parser. Clients have to use the
tools of package ll to prepare the parsing table. The predictive parser utilizes
this table to create a leftmost derivation for a given input, provided as a
sequence of tokens or through a scanner interface.

This parser is intended for small grammars, e.g. for configuration input or
teaching purposes. The parser does not backtrack and does not recover from
errors: a parse halts on the first error encountered.

Usage

Clients construct a grammar, usually by using a grammar builder:

	b := ll.NewGrammarBuilder("Sums")
	b.LHS("E").T("i", 'i').N("X").End()           // E ➞ i X
	b.LHS("X").T("+", '+').T("i", 'i').N("X").End() // X ➞ + i X
	b.LHS("X").Epsilon()                          // X ➞ ε
	g, err := b.Grammar()

This grammar is subjected to grammar analysis and table generation.

	gen := ll.NewTableGenerator(ll.Analysis(g))
	if err := gen.CreateTable(); err != nil { ... }  // not LL(1)

Finally parse some input:

	p := predictive.NewParser(g, gen.Table())
	accepted, err := p.Parse(tokens)

The parser reports every step (stack contents, remaining input, action) to a
TraceSink, if one is configured, and optionally builds a parse tree.

Parse errors are of type *ParseError and may be checked with errors.Is against
ErrTerminalMismatch, ErrNoProduction and ErrInvalidSymbol.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package predictive

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lltab.ll'.
func tracer() tracing.Trace {
	return tracing.Select("lltab.ll")
}
