/*
Command lltab is an interactive front end for LL(1) grammar analysis.

It reads a grammar, prints FIRST and FOLLOW sets for every non-terminal and
the predictive parsing table, and then parses input lines, printing every
step of the parser (stack, remaining input, action).

	lltab [-trace Info] [-grammar file.bnf | -ebnf file.ebnf -start S] [-html table.html] [input]

Without a grammar file, the classic expression grammar is used:

	E ➞ T X
	X ➞ + T X  |  ε
	T ➞ F Y
	Y ➞ * F Y  |  ε
	F ➞ ( E )  |  i

If input is given on the command line, it is parsed and lltab exits with
status 0 for accepted input and 1 otherwise. Without input, lltab reads lines
interactively. Lines starting with ':' are commands:

	:rules    print the rules of the grammar
	:sets     print FIRST and FOLLOW sets
	:table    print the parsing table
	:tree     toggle display of parse trees
	:quit     leave

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lltab.cli'
func tracer() tracing.Trace {
	return tracing.Select("lltab.cli")
}
