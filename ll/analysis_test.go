package ll

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/container/intsets"
)

func TestFirstSets(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lltab.ll")
	defer teardown()
	//
	g := exprGrammar(t)
	ga := Analysis(g)
	expected := map[string][]string{
		"E": {"(", "i"},
		"T": {"(", "i"},
		"F": {"(", "i"},
		"X": {"+", EpsilonName},
		"Y": {"*", EpsilonName},
	}
	for A, first := range expected {
		assert.ElementsMatch(t, first, names(ga.FirstSymbols(g.SymbolByName(A))), "FIRST(%s)", A)
	}
	assert.True(t, ga.DerivesEpsilon(g.SymbolByName("X")))
	assert.False(t, ga.DerivesEpsilon(g.SymbolByName("E")))
	assert.True(t, Contains(ga.First(g.SymbolByName("+")), g.SymbolByName("+")))
}

func TestFollowSets(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lltab.ll")
	defer teardown()
	//
	g := exprGrammar(t)
	ga := Analysis(g)
	expected := map[string][]string{
		"E": {")", EOFName},
		"X": {")", EOFName},
		"T": {"+", ")", EOFName},
		"Y": {"+", ")", EOFName},
		"F": {"*", "+", ")", EOFName},
	}
	for A, follow := range expected {
		assert.ElementsMatch(t, follow, names(ga.FollowSymbols(g.SymbolByName(A))), "FOLLOW(%s)", A)
	}
	for _, A := range g.NonTerminals() {
		assert.False(t, Contains(ga.Follow(A), g.Epsilon()), "FOLLOW(%s) must not contain ε", A)
	}
	assert.Equal(t, 0, ga.Follow(g.SymbolByName("i")).Len())
}

func TestSymbolsOfOrdering(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lltab.ll")
	defer teardown()
	//
	g := exprGrammar(t)
	ga := Analysis(g)
	assert.Equal(t, []string{EOFName, ")", "*", "+"}, names(ga.FollowSymbols(g.SymbolByName("F"))))
	assert.Equal(t, []string{EpsilonName, "+"}, names(ga.FirstSymbols(g.SymbolByName("X"))))
}

func TestAnalysisIsDeterministic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lltab.ll")
	defer teardown()
	//
	g := exprGrammar(t)
	ga1, ga2 := Analysis(g), Analysis(g)
	for _, A := range g.NonTerminals() {
		assert.True(t, ga1.First(A).Equals(ga2.First(A)), "FIRST(%s) differs", A)
		assert.True(t, ga1.Follow(A).Equals(ga2.Follow(A)), "FOLLOW(%s) differs", A)
	}
	f1, _ := ga1.Passes()
	f2, _ := ga2.Passes()
	assert.Equal(t, f1, f2)
}

func TestFixpointTerminates(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lltab.ll")
	defer teardown()
	//
	g := exprGrammar(t)
	ga := Analysis(g)
	first, follow := ga.Passes()
	// every pass propagates at least one level of the dependency chain
	bound := len(g.NonTerminals()) + 1
	assert.GreaterOrEqual(t, first, 2)
	assert.LessOrEqual(t, first, bound)
	assert.GreaterOrEqual(t, follow, 2)
	assert.LessOrEqual(t, follow, bound)
}

func TestGrowsOnlyForNewElements(t *testing.T) {
	var dst, src intsets.Sparse
	dst.Insert(0)
	dst.Insert(1)
	src.Insert(1)
	assert.False(t, grows(&dst, &src), "subset must not count as growth")
	src.Insert(epsID)
	assert.True(t, grows(&dst, &src))
	assert.Equal(t, 3, dst.Len())
	assert.False(t, grows(&dst, &dst))
}

// A ➞ B C d,  B ➞ b | ε,  C ➞ c | ε
// FIRST(A) has to look through both nullable prefixes.
func TestNullablePrefixChaining(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lltab.ll")
	defer teardown()
	//
	b := NewGrammarBuilder("Chain")
	b.LHS("A").N("B").N("C").T("d", 'd').End()
	b.LHS("B").T("b", 'b').End()
	b.LHS("B").Epsilon()
	b.LHS("C").T("c", 'c').End()
	b.LHS("C").Epsilon()
	g, err := b.Grammar()
	require.NoError(t, err)
	ga := Analysis(g)
	assert.ElementsMatch(t, []string{"b", "c", "d"}, names(ga.FirstSymbols(g.SymbolByName("A"))))
	assert.ElementsMatch(t, []string{"c", "d"}, names(ga.FollowSymbols(g.SymbolByName("B"))))
	assert.ElementsMatch(t, []string{"d"}, names(ga.FollowSymbols(g.SymbolByName("C"))))
	seq := []*Symbol{g.SymbolByName("B"), g.SymbolByName("C")}
	assert.ElementsMatch(t, []string{EpsilonName, "b", "c"}, names(ga.SymbolsOf(ga.FirstOfSequence(seq))))
}

// S ➞ A,  A ➞ a A | ε
// FOLLOW propagates from the left hand side to a trailing non-terminal.
func TestFollowOfTrailingNonTerminal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lltab.ll")
	defer teardown()
	//
	b := NewGrammarBuilder("Trailing")
	b.LHS("S").N("A").End()
	b.LHS("A").T("a", 'a').N("A").End()
	b.LHS("A").Epsilon()
	g, err := b.Grammar()
	require.NoError(t, err)
	ga := Analysis(g)
	assert.Equal(t, []string{EOFName}, names(ga.FollowSymbols(g.SymbolByName("A"))))
	assert.Equal(t, []string{EpsilonName, "a"}, names(ga.FirstSymbols(g.SymbolByName("S"))))
}
