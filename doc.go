/*
Package lltab is a toolbox for table-driven LL(1) parsing.

LLtab analyses context-free grammars, computes FIRST and FOLLOW sets,
builds LL(1) parsing tables and drives a predictive parser over them.
Package structure is as follows:

■ ll: Package ll implements grammars, grammar analysis (FIRST and FOLLOW sets)
and the construction of LL(1) parsing tables.

■ ll/predictive: Package predictive implements a stack-driven predictive parser
operating on an LL(1) table, producing a step-by-step trace.

■ ll/scanner: Package scanner defines the tokenizer interface used by the parser,
with implementations backed by text/scanner and lexmachine.

■ ll/bnf, ll/ebnf: Readers for textual grammar descriptions.

■ session: Package session bundles a grammar with its derived data for
repeated parsing.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lltab
