package ll

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/npillmayer/lltab"
)

// GrammarBuilder is used to construct a grammar. Clients start rules with
// LHS(…), add symbols to the right hand side and finish with End() or Epsilon().
//
//    b := NewGrammarBuilder("G")
//    b.LHS("Y").T("*", '*').N("F").N("Y").End()   // Y ➞ * F Y
//    b.LHS("Y").Epsilon()                         // Y ➞ ε
//    g, err := b.Grammar()
//
// Errors (e.g., using a name both as terminal and non-terminal) are collected
// and reported by Grammar().
type GrammarBuilder struct {
	name    string
	symtab  *symbolTable
	rules   []*Rule
	start   string
	epsilon *Symbol
	eof     *Symbol
	err     error
	nexttok lltab.TokType // next token type for TokenTypeFor
}

// NewGrammarBuilder creates a builder for a grammar named gname.
func NewGrammarBuilder(gname string) *GrammarBuilder {
	gb := &GrammarBuilder{
		name:    gname,
		symtab:  newSymbolTable(),
		nexttok: utf8.MaxRune + 1,
	}
	gb.epsilon = gb.symtab.defineSpecial(EpsilonName, EpsilonKind, -2)
	gb.eof = gb.symtab.defineSpecial(EOFName, EOFKind, EOFToken)
	return gb
}

func (gb *GrammarBuilder) fail(err error) {
	if err != nil && gb.err == nil {
		tracer().Errorf("grammar %s: %v", gb.name, err)
		gb.err = err
	}
}

// Terminal declares a terminal of the alphabet, which need not be used by any rule.
// Terminals receive their alphabet index in order of declaration.
func (gb *GrammarBuilder) Terminal(name string, tokval int) *GrammarBuilder {
	_, err := gb.symtab.resolveOrDefineTerm(name, lltab.TokType(tokval))
	gb.fail(err)
	return gb
}

// TokenTypeFor returns a token type for a terminal name. Known terminals keep
// their token type. Otherwise single-character names are typed by their rune,
// longer names receive a token type beyond the range of Unicode code points.
func (gb *GrammarBuilder) TokenTypeFor(name string) int {
	if sym := gb.symtab.resolve(name); sym.IsTerminal() {
		return int(sym.token)
	}
	if r, size := utf8.DecodeRuneInString(name); r != utf8.RuneError && size == len(name) {
		return int(r)
	}
	tt := gb.nexttok
	gb.nexttok++
	return int(tt)
}

// NonTerminal declares a non-terminal. Each non-terminal must have at least one rule.
func (gb *GrammarBuilder) NonTerminal(name string) *GrammarBuilder {
	_, err := gb.symtab.resolveOrDefineNonTerm(name)
	gb.fail(err)
	return gb
}

// Start sets the start symbol. If not set, the left hand side of the first rule
// is the start symbol.
func (gb *GrammarBuilder) Start(name string) *GrammarBuilder {
	gb.start = name
	return gb
}

// LHS starts a new rule.
func (gb *GrammarBuilder) LHS(name string) *RuleBuilder {
	A, err := gb.symtab.resolveOrDefineNonTerm(name)
	gb.fail(err)
	return &RuleBuilder{gb: gb, rule: &Rule{LHS: A}}
}

// RuleBuilder builds the right hand side of a rule.
type RuleBuilder struct {
	gb   *GrammarBuilder
	rule *Rule
}

// N appends a non-terminal to the right hand side.
func (rb *RuleBuilder) N(name string) *RuleBuilder {
	sym, err := rb.gb.symtab.resolveOrDefineNonTerm(name)
	rb.gb.fail(err)
	rb.rule.rhs = append(rb.rule.rhs, sym)
	return rb
}

// T appends a terminal with token value tokval to the right hand side.
func (rb *RuleBuilder) T(name string, tokval int) *RuleBuilder {
	sym, err := rb.gb.symtab.resolveOrDefineTerm(name, lltab.TokType(tokval))
	rb.gb.fail(err)
	rb.rule.rhs = append(rb.rule.rhs, sym)
	return rb
}

// End finishes a rule. A rule without any right hand side symbols is an
// epsilon rule.
func (rb *RuleBuilder) End() *Rule {
	if len(rb.rule.rhs) == 0 {
		return rb.Epsilon()
	}
	return rb.gb.appendRule(rb.rule)
}

// Epsilon finishes an epsilon rule. It is an error to call Epsilon() after
// symbols have been added to the right hand side.
func (rb *RuleBuilder) Epsilon() *Rule {
	if len(rb.rule.rhs) > 0 {
		rb.gb.fail(fmt.Errorf("rule %s: epsilon must be the only symbol of a right hand side",
			rb.rule))
	}
	rb.rule.rhs = []*Symbol{rb.gb.epsilon}
	return rb.gb.appendRule(rb.rule)
}

func (gb *GrammarBuilder) appendRule(r *Rule) *Rule {
	r.Serial = len(gb.rules)
	gb.rules = append(gb.rules, r)
	return r
}

// Grammar returns the grammar built so far, or an error if the grammar is
// not well-formed.
func (gb *GrammarBuilder) Grammar() (*Grammar, error) {
	if gb.err != nil {
		return nil, gb.err
	}
	if len(gb.rules) == 0 {
		return nil, errors.New("grammar has no rules")
	}
	g := &Grammar{
		Name:         gb.name,
		rules:        append([]*Rule(nil), gb.rules...),
		terminals:    append([]*Symbol(nil), gb.symtab.terminals...),
		nonterminals: append([]*Symbol(nil), gb.symtab.nonterminals...),
		epsilon:      gb.epsilon,
		eof:          gb.eof,
		symtab:       gb.symtab.clone(),
	}
	if gb.start == "" {
		g.start = g.rules[0].LHS
	} else if g.start = gb.symtab.resolve(gb.start); !g.start.IsNonTerminal() {
		return nil, fmt.Errorf("start symbol %q is not a non-terminal", gb.start)
	}
	for _, A := range g.nonterminals {
		if len(g.RulesFor(A)) == 0 {
			return nil, fmt.Errorf("non-terminal %s has no rules", A)
		}
	}
	var err error
	if g.hash, err = fingerprint(g); err != nil {
		return nil, fmt.Errorf("cannot compute grammar fingerprint: %w", err)
	}
	return g, nil
}
