/*
Package ll implements prerequisites for LL(1) parsing: grammars, grammar
analysis and the construction of predictive parsing tables.

Building a Grammar

Grammars are specified using a grammar builder object. Clients add
rules, consisting of non-terminal symbols and terminals. Terminals
carry a token type of type lltab.TokType. Grammars may contain epsilon-productions.

Example:

    b := ll.NewGrammarBuilder("G")
    b.LHS("E").N("T").N("X").End()                 // E ➞ T X
    b.LHS("X").T("+", '+').N("T").N("X").End()     // X ➞ + T X
    b.LHS("X").Epsilon()                           // X ➞ ε
    b.LHS("T").T("i", 'i').End()                   // T ➞ i
    g, err := b.Grammar()

This results in the following trivial grammar:

   g.Dump()

   0: [E] ::= [T X]
   1: [X] ::= [+ T X]
   2: [X] ::= [ε]
   3: [T] ::= [i]

Symbols are one of four disjoint kinds: terminals, non-terminals, the epsilon
marker and the end-of-input marker. Every grammar owns its own epsilon and
end-marker symbols, so they never collide with real grammar symbols.

Static Grammar Analysis

After the grammar is complete, it has to be analysed. For this end, the
grammar is subjected to an LLAnalysis object, which computes FIRST and
FOLLOW sets for all non-terminals. Both are computed by repeated passes
over all rules until a fixpoint is reached.

    ga := ll.Analysis(g)
    g.EachNonTerminal(func(A *ll.Symbol) interface{} {
        fmt.Printf("FIRST(%s) = %v\n", A, ga.FirstSymbols(A))
        return nil
    })

    // Output:
    FIRST(E) = [i]
    FIRST(X) = [ε +]
    FIRST(T) = [i]

Table Construction

Using grammar analysis as input, a predictive parsing table is constructed:

    gen := ll.NewTableGenerator(ga)
    if err := gen.CreateTable(); err != nil {
        // errors.Is(err, ll.ErrGrammarNotLL1)
    }
    table := gen.Table()

A grammar for which two productions compete for the same table cell is not
LL(1). The generator reports all such conflicts and marks the table as invalid.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ll

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lltab.ll'.
func tracer() tracing.Trace {
	return tracing.Select("lltab.ll")
}
