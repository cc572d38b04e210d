package ll

import (
	"bytes"
	"fmt"
	"text/scanner"

	"github.com/cnf/structhash"
	"github.com/npillmayer/lltab"
)

// --- Symbols ---------------------------------------------------------------

// SymKind is the kind of a grammar symbol. The kinds are disjoint.
type SymKind int8

// Symbol kinds.
const (
	NoSymbol SymKind = iota // not a member of the grammar's alphabets
	TerminalKind
	NonTermKind
	EpsilonKind
	EOFKind
)

func (k SymKind) String() string {
	switch k {
	case TerminalKind:
		return "terminal"
	case NonTermKind:
		return "non-terminal"
	case EpsilonKind:
		return "epsilon"
	case EOFKind:
		return "end-marker"
	}
	return "<none>"
}

// Names of the symbols every grammar owns.
const (
	EpsilonName = "ε"
	EOFName     = "$"
)

// EOFToken is the token type of the end-of-input marker.
const EOFToken = lltab.TokType(scanner.EOF)

// Set elements for the two special symbols. Terminals use their alphabet index.
const (
	epsID = -2
	eofID = -1
)

// Symbol is a grammar symbol. Symbols are created by a grammar builder and
// compared by identity.
type Symbol struct {
	Name  string
	Value int // index within the terminal or non-terminal alphabet
	kind  SymKind
	token lltab.TokType
}

// Kind returns the kind of symbol.
func (sym *Symbol) Kind() SymKind {
	if sym == nil {
		return NoSymbol
	}
	return sym.kind
}

// IsTerminal is true for terminals. The end-marker is not counted as a terminal.
func (sym *Symbol) IsTerminal() bool {
	return sym.Kind() == TerminalKind
}

// IsNonTerminal is true for non-terminals.
func (sym *Symbol) IsNonTerminal() bool {
	return sym.Kind() == NonTermKind
}

// IsEpsilon is true for the epsilon marker.
func (sym *Symbol) IsEpsilon() bool {
	return sym.Kind() == EpsilonKind
}

// IsEOF is true for the end-of-input marker.
func (sym *Symbol) IsEOF() bool {
	return sym.Kind() == EOFKind
}

// IsLookahead is true for symbols which may appear as a lookahead, i.e. terminals
// and the end-marker. These are the columns of a parsing table.
func (sym *Symbol) IsLookahead() bool {
	return sym.IsTerminal() || sym.IsEOF()
}

// TokenType returns the token type for terminals and the end-marker, and -2 otherwise.
func (sym *Symbol) TokenType() lltab.TokType {
	if sym.IsLookahead() {
		return sym.token
	}
	return -2
}

// id is the set element of a symbol within FIRST and FOLLOW sets.
func (sym *Symbol) id() int {
	switch sym.Kind() {
	case EpsilonKind:
		return epsID
	case EOFKind:
		return eofID
	}
	return sym.Value
}

func (sym *Symbol) String() string {
	if sym == nil {
		return "<nil>"
	}
	return sym.Name
}

// --- Rules -----------------------------------------------------------------

// Rule is a production of a grammar. Alternatives for the same left hand side
// are separate rules. Serial is the position of the rule within the grammar.
type Rule struct {
	Serial int
	LHS    *Symbol
	rhs    []*Symbol
}

// RHS returns a copy of the right hand side of a rule. For epsilon rules it
// consists of the epsilon symbol only.
func (r *Rule) RHS() []*Symbol {
	return append([]*Symbol(nil), r.rhs...)
}

// Len returns the number of symbols on the right hand side of a rule.
func (r *Rule) Len() int {
	return len(r.rhs)
}

// IsEpsilon is true if r is an epsilon rule.
func (r *Rule) IsEpsilon() bool {
	return len(r.rhs) == 1 && r.rhs[0].IsEpsilon()
}

func (r *Rule) String() string {
	var b bytes.Buffer
	b.WriteString(r.LHS.Name)
	b.WriteString(" ➞")
	for _, sym := range r.rhs {
		b.WriteString(" ")
		b.WriteString(sym.Name)
	}
	return b.String()
}

// RHSString returns the right hand side as a string.
func (r *Rule) RHSString() string {
	var b bytes.Buffer
	for i, sym := range r.rhs {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(sym.Name)
	}
	return b.String()
}

// --- Grammar ---------------------------------------------------------------

// Grammar is a context-free grammar: an ordered list of rules together with
// the terminal and non-terminal alphabets and a start symbol.
// Grammars are created by a GrammarBuilder and are immutable thereafter.
type Grammar struct {
	Name         string
	rules        []*Rule
	start        *Symbol
	terminals    []*Symbol
	nonterminals []*Symbol
	epsilon      *Symbol
	eof          *Symbol
	symtab       *symbolTable
	hash         string
}

// Rule returns rule no. n or nil.
func (g *Grammar) Rule(n int) *Rule {
	if n < 0 || n >= len(g.rules) {
		return nil
	}
	return g.rules[n]
}

// Rules returns all rules in order of registration.
func (g *Grammar) Rules() []*Rule {
	return append([]*Rule(nil), g.rules...)
}

// Size returns the number of rules.
func (g *Grammar) Size() int {
	return len(g.rules)
}

// RulesFor returns all rules with left hand side A, in order of registration.
func (g *Grammar) RulesFor(A *Symbol) []*Rule {
	var rules []*Rule
	for _, r := range g.rules {
		if r.LHS == A {
			rules = append(rules, r)
		}
	}
	return rules
}

// Start returns the start symbol.
func (g *Grammar) Start() *Symbol {
	return g.start
}

// Epsilon returns the epsilon marker of this grammar.
func (g *Grammar) Epsilon() *Symbol {
	return g.epsilon
}

// EOF returns the end-of-input marker of this grammar.
func (g *Grammar) EOF() *Symbol {
	return g.eof
}

// Terminals returns the terminal alphabet, ordered by alphabet index.
// The end-marker is not included.
func (g *Grammar) Terminals() []*Symbol {
	return append([]*Symbol(nil), g.terminals...)
}

// NonTerminals returns the non-terminal alphabet, ordered by alphabet index.
func (g *Grammar) NonTerminals() []*Symbol {
	return append([]*Symbol(nil), g.nonterminals...)
}

// Lookaheads returns all terminals followed by the end-marker.
func (g *Grammar) Lookaheads() []*Symbol {
	return append(g.Terminals(), g.eof)
}

// SymbolByName finds a symbol by its name, including ε and $.
func (g *Grammar) SymbolByName(name string) *Symbol {
	return g.symtab.resolve(name)
}

// TerminalByToken finds a terminal (or the end-marker) for a token type.
func (g *Grammar) TerminalByToken(tt lltab.TokType) *Symbol {
	return g.symtab.resolveToken(tt)
}

// Classify returns the kind of a symbol name, or NoSymbol if the name is not a
// member of any of the grammar's alphabets.
func (g *Grammar) Classify(name string) SymKind {
	return g.SymbolByName(name).Kind()
}

// Index resolves a symbol name to its alphabet index. The end-marker is
// indexed as the column following the last terminal. Epsilon has no index.
func (g *Grammar) Index(name string) (int, bool) {
	sym := g.SymbolByName(name)
	switch sym.Kind() {
	case TerminalKind, NonTermKind:
		return sym.Value, true
	case EOFKind:
		return len(g.terminals), true
	}
	return -1, false
}

// EachNonTerminal iterates over all non-terminals of the grammar, in order of
// alphabet index. The mapper's return values are collected.
func (g *Grammar) EachNonTerminal(mapper func(A *Symbol) interface{}) []interface{} {
	var r []interface{}
	for _, A := range g.nonterminals {
		r = append(r, mapper(A))
	}
	return r
}

// symbolForID maps a set element back to its symbol.
func (g *Grammar) symbolForID(id int) *Symbol {
	switch id {
	case epsID:
		return g.epsilon
	case eofID:
		return g.eof
	}
	if id < 0 || id >= len(g.terminals) {
		return nil
	}
	return g.terminals[id]
}

// Dump is a debugging helper, writing the rules to the tracer.
func (g *Grammar) Dump() {
	tracer().Debugf("--- %s --------------------------------------------", g.Name)
	tracer().Debugf("start symbol = %s", g.start)
	for _, r := range g.rules {
		tracer().Debugf("%3d: [%s] ::= [%s]", r.Serial, r.LHS.Name, r.RHSString())
	}
	tracer().Debugf("-------------------------------------------------------")
}

// Hash returns a fingerprint of the grammar. Grammars with identical rules,
// alphabets (including the order of symbols) and start symbol have identical
// fingerprints, regardless of their name.
func (g *Grammar) Hash() string {
	return g.hash
}

type grammarPrint struct {
	Start        string
	Terminals    []string
	Tokens       []int
	NonTerminals []string
	Rules        [][]string
}

func fingerprint(g *Grammar) (string, error) {
	p := grammarPrint{Start: g.start.Name}
	for _, t := range g.terminals {
		p.Terminals = append(p.Terminals, t.Name)
		p.Tokens = append(p.Tokens, int(t.token))
	}
	for _, A := range g.nonterminals {
		p.NonTerminals = append(p.NonTerminals, A.Name)
	}
	for _, r := range g.rules {
		rule := []string{r.LHS.Name}
		for _, sym := range r.rhs {
			rule = append(rule, fmt.Sprintf("%s:%d", sym.Name, sym.kind))
		}
		p.Rules = append(p.Rules, rule)
	}
	return structhash.Hash(p, 1)
}
