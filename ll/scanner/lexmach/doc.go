/*
Package lexmach provides an adapter to use the lexmachine scanner generator with
the predictive parser of package ll/predictive.

For more information on lexmachine, see e.g.
https://hackthology.com/how-to-tokenize-complex-strings-with-lexmachine.html

The most common usage is to derive a scanner from the terminal alphabet of a
grammar. Every terminal name is taken literally, the longest match wins, and
whitespace is skipped. Characters which do not start any terminal are delivered
as tokens of type scanner.Illegal, which a parser will report as invalid input.

	LM, err := lexmach.ForGrammar(g)
	if err != nil {
		// do error handling
	}
	scan, err := LM.Scanner("i + i * i")

Clients who need more liberty in how to create the scanner may use NewLMAdapter
with a list of literals and a callback adding further regular expressions.

	init := func(lexer *lexmachine.Lexer) {
		// add further regular expressions
		//
		// lexmach.Skip      is a pre-defined action which ignores the scanned match
		// lexmach.MakeToken is a pre-defined action which wraps a scanned match into a
		//                   lltab.Token
	}
	LM, err := NewLMAdapter(literals, tokenIds, init)

A scanner is instantiated for each concrete input sequence.
The scanner implements the scanner.Tokenizer interface.
On the parser side tokens are read until EOF, e.g. with scanner.ReadAll.

________________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexmach
