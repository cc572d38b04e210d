package ll

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exprTable(t *testing.T) (*Grammar, *TableGenerator) {
	g := exprGrammar(t)
	gen := NewTableGenerator(Analysis(g))
	require.NoError(t, gen.CreateTable())
	return g, gen
}

func TestExpressionTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lltab.ll")
	defer teardown()
	//
	g, gen := exprTable(t)
	table := gen.Table()
	assert.True(t, table.Valid())
	assert.False(t, gen.HasConflicts)
	cell := func(A, a string) string {
		r := table.Rule(g.SymbolByName(A), g.SymbolByName(a))
		if r == nil {
			return ""
		}
		return r.String()
	}
	assert.Equal(t, "E ➞ T X", cell("E", "i"))
	assert.Equal(t, "E ➞ T X", cell("E", "("))
	assert.Equal(t, "X ➞ + T X", cell("X", "+"))
	assert.Equal(t, "X ➞ ε", cell("X", "$"))
	assert.Equal(t, "X ➞ ε", cell("X", ")"))
	assert.Equal(t, "Y ➞ ε", cell("Y", "+"))
	assert.Equal(t, "Y ➞ * F Y", cell("Y", "*"))
	assert.Equal(t, "F ➞ ( E )", cell("F", "("))
	assert.Equal(t, "F ➞ i", cell("F", "i"))
	assert.Equal(t, "", cell("E", "+"))
	assert.Equal(t, "", cell("Y", "i"))
	assert.Equal(t, "", cell("E", "E"), "non-terminal as lookahead")
	assert.Equal(t, 13, table.Size())
}

func TestTableEntries(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lltab.ll")
	defer teardown()
	//
	g, gen := exprTable(t)
	entries := gen.Table().Entries()
	assert.Len(t, entries, len(g.NonTerminals())*len(g.Lookaheads()))
	filled := 0
	for _, e := range entries {
		if e.Rule != nil {
			filled++
			assert.Equal(t, e.NonTerminal, e.Rule.LHS)
		}
	}
	assert.Equal(t, 13, filled)
	assert.Equal(t, "E", entries[0].NonTerminal.Name)
	assert.Equal(t, "i", entries[0].Lookahead.Name)
}

// Every non-empty cell M[A,a] must hold a rule A ➞ α with a ∈ FIRST(α), or
// with α nullable and a ∈ FOLLOW(A).
func TestTableCellsAreJustified(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lltab.ll")
	defer teardown()
	//
	g, gen := exprTable(t)
	ga := Analysis(g)
	for _, e := range gen.Table().Entries() {
		if e.Rule == nil {
			continue
		}
		first := ga.FirstOfSequence(e.Rule.RHS())
		if Contains(first, e.Lookahead) {
			continue
		}
		assert.True(t, Contains(first, g.Epsilon()) && Contains(ga.Follow(e.NonTerminal), e.Lookahead),
			"cell M[%s,%s] = %s is not justified", e.NonTerminal, e.Lookahead, e.Rule)
	}
}

func TestNotLL1(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lltab.ll")
	defer teardown()
	//
	b := NewGrammarBuilder("Ambiguous")
	b.LHS("S").T("a", 'a').T("b", 'b').End()
	b.LHS("S").T("a", 'a').T("c", 'c').End()
	g, err := b.Grammar()
	require.NoError(t, err)
	gen := NewTableGenerator(Analysis(g))
	err = gen.CreateTable()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrGrammarNotLL1))
	var notLL1 *NotLL1Error
	require.True(t, errors.As(err, &notLL1))
	require.Len(t, notLL1.Conflicts, 1)
	c := notLL1.Conflicts[0]
	assert.Equal(t, "S", c.NonTerminal.Name)
	assert.Equal(t, "a", c.Lookahead.Name)
	assert.Equal(t, 0, c.Earlier.Serial)
	assert.Equal(t, 1, c.Later.Serial)
	assert.True(t, gen.HasConflicts)
	assert.False(t, gen.Table().Valid())
	// the later rule wins the cell
	assert.Equal(t, 1, gen.Table().Rule(g.SymbolByName("S"), g.SymbolByName("a")).Serial)
}

// S ➞ A a,  A ➞ a | ε:  M[S,a] is fine, but M[A,a] is claimed by both A-rules.
func TestConflictThroughFollow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lltab.ll")
	defer teardown()
	//
	b := NewGrammarBuilder("Follow")
	b.LHS("S").N("A").T("a", 'a').End()
	b.LHS("A").T("a", 'a').End()
	b.LHS("A").Epsilon()
	g, err := b.Grammar()
	require.NoError(t, err)
	gen := NewTableGenerator(Analysis(g))
	err = gen.CreateTable()
	assert.True(t, errors.Is(err, ErrGrammarNotLL1))
	cs := gen.Conflicts()
	require.Len(t, cs, 1)
	assert.Equal(t, "A", cs[0].NonTerminal.Name)
	assert.True(t, cs[0].Later.IsEpsilon())
}

func TestTableAsHTML(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lltab.ll")
	defer teardown()
	//
	_, gen := exprTable(t)
	var buf bytes.Buffer
	TableAsHTML(gen, &buf)
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<html>"))
	assert.Contains(t, out, "<td>F ➞ ( E )</td>")
	assert.Contains(t, out, "<td>$</td>")
}
