package bnf

import (
	"testing"

	"github.com/npillmayer/lltab/ll"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exprText = `
// expression grammar
%start E ;
%terminals i ( ) * + ;
E -> T X ;
X -> + T X | ε ;
T -> F Y ;
Y -> * F Y | ε ;
F -> "(" E ")" | i ;
`

func TestReadExpressionGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lltab.ll")
	defer teardown()
	//
	g, err := Parse("Expr", exprText)
	require.NoError(t, err)
	g.Dump()
	assert.Equal(t, 8, g.Size())
	assert.Equal(t, "E", g.Start().Name)
	var terms, nonterms []string
	for _, sym := range g.Terminals() {
		terms = append(terms, sym.Name)
	}
	for _, sym := range g.NonTerminals() {
		nonterms = append(nonterms, sym.Name)
	}
	assert.Equal(t, []string{"i", "(", ")", "*", "+"}, terms)
	assert.Equal(t, []string{"E", "X", "T", "Y", "F"}, nonterms)
	assert.True(t, g.Rule(2).IsEpsilon())
	assert.Equal(t, "F ➞ ( E )", g.Rule(6).String())
	assert.Equal(t, "+", g.TerminalByToken('+').Name)
	//
	b := ll.NewGrammarBuilder("Expr")
	b.NonTerminal("E").NonTerminal("X").NonTerminal("T").NonTerminal("Y").NonTerminal("F")
	b.Terminal("i", 'i').Terminal("(", '(').Terminal(")", ')').Terminal("*", '*').Terminal("+", '+')
	b.LHS("E").N("T").N("X").End()
	b.LHS("X").T("+", '+').N("T").N("X").End()
	b.LHS("X").Epsilon()
	b.LHS("T").N("F").N("Y").End()
	b.LHS("Y").T("*", '*').N("F").N("Y").End()
	b.LHS("Y").Epsilon()
	b.LHS("F").T("(", '(').N("E").T(")", ')').End()
	b.LHS("F").T("i", 'i').End()
	built, err := b.Grammar()
	require.NoError(t, err)
	assert.Equal(t, built.Hash(), g.Hash())
}

func TestInferredTerminals(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lltab.ll")
	defer teardown()
	//
	g, err := Parse("Stmts", `
		S ➞ "if" C "then" S | id ":=" id ;
		C ➞ id | ;   /* empty alternative */
	`)
	require.NoError(t, err)
	assert.Equal(t, "S", g.Start().Name)
	assert.Equal(t, ll.TerminalKind, g.Classify("if"))
	assert.Equal(t, ll.TerminalKind, g.Classify(":="))
	assert.Equal(t, ll.TerminalKind, g.Classify("id"))
	assert.Equal(t, ll.NonTermKind, g.Classify("C"))
	assert.True(t, g.Rule(3).IsEpsilon())
	tt := g.SymbolByName("then").TokenType()
	assert.True(t, tt > 0x10ffff, "multi-character terminals are typed beyond Unicode")
	assert.NotEqual(t, g.SymbolByName("if").TokenType(), tt)
}

func TestReadErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lltab.ll")
	defer teardown()
	//
	for _, text := range []string{
		``,
		`E -> T X`,
		`E = T ;`,
		`%start ;  E -> a ;`,
		`%foo x ; E -> a ;`,
		`%terminals a ; E -> a b ;`,
		`E -> a eps ;`,
		`E -> "" ;`,
		`%start a ; E -> a ;`,
		`-> a ;`,
	} {
		_, err := Parse("Bad", text)
		assert.Error(t, err, "expected error for %q", text)
	}
}
