package session

import (
	"errors"
	"sync"
	"testing"

	"github.com/npillmayer/lltab/ll"
	"github.com/npillmayer/lltab/ll/bnf"
	"github.com/npillmayer/lltab/ll/predictive"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exprText = `
%terminals i ( ) * + ;
E -> T X ;
X -> + T X | ε ;
T -> F Y ;
Y -> * F Y | ε ;
F -> "(" E ")" | i ;
`

func exprSession(t *testing.T, opts ...Option) *Session {
	g, err := bnf.Parse("Expr", exprText)
	require.NoError(t, err)
	s, err := New(g, opts...)
	require.NoError(t, err)
	return s
}

func TestSessionParseNames(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lltab.session")
	defer teardown()
	//
	s := exprSession(t)
	result, err := s.ParseNames("i", "+", "i", "*", "i")
	require.NoError(t, err)
	assert.True(t, result.Accepted)
	assert.Equal(t, 6, result.Pos)
	assert.Equal(t, predictive.Accept, result.Trace[len(result.Trace)-1].Action.Kind)
	assert.Equal(t, "$ E", result.Trace[0].StackString())
	//
	result, err = s.ParseNames("i", "+")
	assert.True(t, errors.Is(err, predictive.ErrNoProduction))
	assert.False(t, result.Accepted)
	assert.Equal(t, 2, result.Pos)
	assert.Equal(t, predictive.Reject, result.Trace[len(result.Trace)-1].Action.Kind)
	//
	_, err = s.ParseNames("i", "-", "i")
	assert.True(t, errors.Is(err, predictive.ErrInvalidSymbol))
}

func TestSessionParseString(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lltab.session")
	defer teardown()
	//
	s := exprSession(t, WithParseTree(true))
	result, err := s.ParseString("(i + i) * i")
	require.NoError(t, err)
	assert.True(t, result.Accepted)
	require.NotNil(t, result.Tree)
	assert.Equal(t, "E", result.Tree.Symbol.Name)
	assert.Len(t, result.Tree.Leafs(), 7)
	//
	result, err = s.ParseString("i i")
	assert.True(t, errors.Is(err, predictive.ErrNoProduction))
	assert.Nil(t, result.Tree)
	//
	_, err = s.ParseString("i ? i")
	assert.True(t, errors.Is(err, predictive.ErrInvalidSymbol))
}

func TestSessionQueries(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lltab.session")
	defer teardown()
	//
	s := exprSession(t)
	g := s.Grammar()
	var first []string
	for _, sym := range s.First(g.SymbolByName("Y")) {
		first = append(first, sym.Name)
	}
	assert.ElementsMatch(t, []string{"*", ll.EpsilonName}, first)
	var follow []string
	for _, sym := range s.Follow(g.SymbolByName("T")) {
		follow = append(follow, sym.Name)
	}
	assert.ElementsMatch(t, []string{"+", ")", ll.EOFName}, follow)
	assert.True(t, s.Table().Valid())
	assert.Len(t, s.Table().Entries(), 5*6)
	assert.False(t, s.TableGenerator().HasConflicts)
	assert.NotNil(t, s.Analysis())
}

func TestSessionOptions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lltab.session")
	defer teardown()
	//
	rec := predictive.NewRecorder()
	s := exprSession(t, WithTraceSink(rec), WithStackLimit(6))
	result, err := s.ParseNames("i")
	require.NoError(t, err)
	assert.Equal(t, len(result.Trace), rec.Len())
	_, err = s.ParseNames("(", "(", "i", ")", ")")
	assert.True(t, errors.Is(err, predictive.ErrStackOverflow))
}

func TestSessionNotLL1(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lltab.session")
	defer teardown()
	//
	g, err := bnf.Parse("LeftRecursive", `E -> E "+" i | i ;`)
	require.NoError(t, err)
	_, err = New(g)
	assert.True(t, errors.Is(err, ll.ErrGrammarNotLL1))
	_, err = New(nil)
	assert.Error(t, err)
}

func TestCache(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lltab.session")
	defer teardown()
	//
	cache := NewCache(WithParseTree(true))
	g1, err := bnf.Parse("Expr", exprText)
	require.NoError(t, err)
	g2, err := bnf.Parse("Expr again", exprText)
	require.NoError(t, err)
	s1, err := cache.Session(g1)
	require.NoError(t, err)
	s2, err := cache.Session(g2)
	require.NoError(t, err)
	assert.True(t, s1 == s2, "grammars with same rules should share a session")
	assert.Equal(t, 1, cache.Len())
	//
	bad, err := bnf.Parse("Bad", `S -> a | a b ;`)
	require.NoError(t, err)
	_, err = cache.Session(bad)
	assert.Error(t, err)
	assert.Equal(t, 1, cache.Len())
}

// exprGrammarDeclaring builds the expression grammar with non-terminals
// declared in a given order, which determines their alphabet index.
func exprGrammarDeclaring(t *testing.T, nonterms ...string) *ll.Grammar {
	b := ll.NewGrammarBuilder("Expr")
	for _, A := range nonterms {
		b.NonTerminal(A)
	}
	b.LHS("E").N("T").N("X").End()
	b.LHS("X").T("+", '+').N("T").N("X").End()
	b.LHS("X").Epsilon()
	b.LHS("T").N("F").N("Y").End()
	b.LHS("Y").T("*", '*').N("F").N("Y").End()
	b.LHS("Y").Epsilon()
	b.LHS("F").T("(", '(').N("E").T(")", ')').End()
	b.LHS("F").T("i", 'i').End()
	g, err := b.Grammar()
	require.NoError(t, err)
	return g
}

func TestCacheDistinguishesSymbolOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lltab.session")
	defer teardown()
	//
	g1 := exprGrammarDeclaring(t, "E", "T", "X", "F", "Y")
	g2 := exprGrammarDeclaring(t, "E", "X", "T", "Y", "F")
	assert.NotEqual(t, g1.Hash(), g2.Hash())
	cache := NewCache()
	s1, err := cache.Session(g1)
	require.NoError(t, err)
	s2, err := cache.Session(g2)
	require.NoError(t, err)
	assert.False(t, s1 == s2, "grammars with different alphabet order must not share a session")
	assert.Equal(t, 2, cache.Len())
	first := func(s *Session, g *ll.Grammar, A string) []string {
		var names []string
		for _, sym := range s.First(g.SymbolByName(A)) {
			names = append(names, sym.Name)
		}
		return names
	}
	assert.Equal(t, []string{ll.EpsilonName, "+"}, first(s2, g2, "X"))
	assert.Equal(t, []string{ll.EpsilonName, "+"}, first(s1, g1, "X"))
}

func TestConcurrentParses(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lltab.session")
	defer teardown()
	//
	cache := NewCache()
	g, err := bnf.Parse("Expr", exprText)
	require.NoError(t, err)
	inputs := []string{"i", "i+i", "(i)*i", "i*(i+i)", "((i))"}
	var wg sync.WaitGroup
	failures := make(chan string, 10*len(inputs))
	for n := 0; n < 10; n++ {
		for _, input := range inputs {
			wg.Add(1)
			go func(input string) {
				defer wg.Done()
				s, err := cache.Session(g)
				if err != nil {
					failures <- err.Error()
					return
				}
				if result, err := s.ParseString(input); err != nil || !result.Accepted {
					failures <- input
				}
			}(input)
		}
	}
	wg.Wait()
	close(failures)
	for f := range failures {
		t.Errorf("concurrent parse failed: %s", f)
	}
	assert.Equal(t, 1, cache.Len())
}
