package ll

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"io"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/lltab/ll/sparse"
	"github.com/npillmayer/schuko/gconf"
)

// ErrGrammarNotLL1 is the error class for grammars with conflicting table entries.
var ErrGrammarNotLL1 = errors.New("grammar is not LL(1)")

// Conflict describes two rules competing for the same table cell.
// Later is the rule which has been written last, i.e. the one in the table.
type Conflict struct {
	NonTerminal *Symbol
	Lookahead   *Symbol
	Earlier     *Rule
	Later       *Rule
}

func (c Conflict) String() string {
	return fmt.Sprintf("M[%s,%s]: {%s} vs {%s}", c.NonTerminal, c.Lookahead, c.Earlier, c.Later)
}

// NotLL1Error is returned by table construction if a grammar is not LL(1).
// It matches ErrGrammarNotLL1 with errors.Is.
type NotLL1Error struct {
	Grammar   string
	Conflicts []Conflict
}

func (e *NotLL1Error) Error() string {
	var b bytes.Buffer
	b.WriteString(fmt.Sprintf("grammar %s is not LL(1): %d conflict(s)", e.Grammar, len(e.Conflicts)))
	for _, c := range e.Conflicts {
		b.WriteString("; ")
		b.WriteString(c.String())
	}
	return b.String()
}

// Unwrap makes NotLL1Error an ErrGrammarNotLL1.
func (e *NotLL1Error) Unwrap() error {
	return ErrGrammarNotLL1
}

// --- Table -----------------------------------------------------------------

// Table is a predictive parsing table. Rows are non-terminals, columns are
// terminals plus the end-marker (as last column). Cells hold the serial number
// of a rule, or are empty.
type Table struct {
	g      *Grammar
	matrix *sparse.IntMatrix
	valid  bool
}

// Entry is a triple (non-terminal, lookahead, rule). Rule is nil for empty cells.
type Entry struct {
	NonTerminal *Symbol
	Lookahead   *Symbol
	Rule        *Rule
}

func newTable(g *Grammar) *Table {
	rows, cols := len(g.nonterminals), len(g.terminals)+1
	tracer().Infof("LL(1) table of size %d x %d", rows, cols)
	return &Table{
		g:      g,
		matrix: sparse.NewIntMatrix(rows, cols, sparse.DefaultNullValue),
	}
}

// Grammar returns the grammar this table has been built for.
func (t *Table) Grammar() *Grammar {
	return t.g
}

// Valid is false if the table has been built for a grammar which is not LL(1).
func (t *Table) Valid() bool {
	return t.valid
}

// column returns the table column for a lookahead symbol, or -1.
func (t *Table) column(a *Symbol) int {
	switch a.Kind() {
	case TerminalKind:
		return a.Value
	case EOFKind:
		return len(t.g.terminals)
	}
	return -1
}

// Rule returns the rule to apply for non-terminal A and lookahead a,
// or nil if the cell is empty (or A or a are not members of the alphabets).
func (t *Table) Rule(A *Symbol, a *Symbol) *Rule {
	col := t.column(a)
	if col < 0 || !A.IsNonTerminal() {
		return nil
	}
	v := t.matrix.Value(A.Value, col)
	if v == t.matrix.NullValue() {
		return nil
	}
	return t.g.Rule(int(v))
}

// Entries returns the complete table as triples, row by row. Empty cells
// are included with a nil rule.
func (t *Table) Entries() []Entry {
	entries := make([]Entry, 0, t.matrix.M()*t.matrix.N())
	for _, A := range t.g.nonterminals {
		for _, a := range t.g.Lookaheads() {
			entries = append(entries, Entry{A, a, t.Rule(A, a)})
		}
	}
	return entries
}

// Size returns the number of non-empty cells.
func (t *Table) Size() int {
	return t.matrix.ValueCount()
}

// Dump is a debugging helper, writing the non-empty cells to the tracer.
func (t *Table) Dump() {
	tracer().Debugf("--- LL(1) table for %s ----------------------------", t.g.Name)
	t.matrix.Each(func(i, j int, a, b int32) {
		A, la := t.g.nonterminals[i], t.g.Lookaheads()[j]
		tracer().Debugf("M[%s,%s] = %s", A, la, cellString(t.g, a, b, t.matrix.NullValue()))
	})
	tracer().Debugf("-------------------------------------------------------")
}

// --- Table Generator -------------------------------------------------------

// TableGenerator is a generator object to construct LL(1) parsing tables.
// Clients usually create a Grammar G, then an LLAnalysis-object for G,
// and then a table generator. TableGenerator.CreateTable() constructs
// the parsing table for a predictive parser recognizing grammar G.
type TableGenerator struct {
	g            *Grammar
	ga           *LLAnalysis
	table        *Table
	conflicts    *treeset.Set
	HasConflicts bool
}

// NewTableGenerator creates a new TableGenerator for a (previously analysed) grammar.
func NewTableGenerator(ga *LLAnalysis) *TableGenerator {
	return &TableGenerator{
		g:         ga.Grammar(),
		ga:        ga,
		conflicts: treeset.NewWith(conflictComparator),
	}
}

// Table returns the parsing table. It has to be built by calling CreateTable()
// previously.
func (gen *TableGenerator) Table() *Table {
	if gen.table == nil {
		tracer().Errorf("table not yet initialized")
	}
	return gen.table
}

// Conflicts returns all conflicts found during table construction, ordered by
// non-terminal, lookahead and rule.
func (gen *TableGenerator) Conflicts() []Conflict {
	cs := make([]Conflict, 0, gen.conflicts.Size())
	for _, x := range gen.conflicts.Values() {
		cs = append(cs, x.(Conflict))
	}
	return cs
}

// CreateTable builds the parsing table. Rules are processed in order of
// registration. For a rule A ➞ α
//
// - for every terminal t in FIRST(α): M[A,t] = A ➞ α
//
// - if α is nullable, for every t in FOLLOW(A) (including $): M[A,t] = A ➞ α
//
// A cell already occupied by a different rule is overwritten and the clash
// is recorded as a conflict. If any conflicts exist, the table is marked
// invalid and a *NotLL1Error is returned.
func (gen *TableGenerator) CreateTable() error {
	tracer().Debugf("=== build LL(1) table ===========================================")
	gen.table = newTable(gen.g)
	gen.conflicts.Clear()
	for _, r := range gen.g.rules {
		A := r.LHS
		first := gen.ga.FirstOfSequence(r.rhs)
		for _, a := range gen.ga.SymbolsOf(first) {
			if a.IsLookahead() {
				gen.enter(A, a, r)
			}
		}
		if first.Has(epsID) {
			for _, a := range gen.ga.FollowSymbols(A) {
				gen.enter(A, a, r)
			}
		}
	}
	gen.HasConflicts = !gen.conflicts.Empty()
	gen.table.valid = !gen.HasConflicts
	if gen.HasConflicts {
		err := &NotLL1Error{Grammar: gen.g.Name, Conflicts: gen.Conflicts()}
		tracer().Errorf("%s", err)
		if gconf.GetBool("panic-on-table-conflict") {
			panic(err.Error())
		}
		return err
	}
	gen.table.Dump()
	return nil
}

func (gen *TableGenerator) enter(A *Symbol, a *Symbol, r *Rule) {
	t := gen.table
	col := t.column(a)
	old := t.matrix.Value(A.Value, col)
	if old != t.matrix.NullValue() && int(old) != r.Serial {
		c := Conflict{NonTerminal: A, Lookahead: a, Earlier: gen.g.Rule(int(old)), Later: r}
		tracer().Debugf("    conflict %s", c)
		gen.conflicts.Add(c)
	} else if int(old) == r.Serial {
		return
	}
	tracer().Debugf("    M[%s,%s] = %s", A, a, r)
	t.matrix.Push(A.Value, col, int32(r.Serial))
}

func conflictComparator(c1, c2 interface{}) int {
	a, b := c1.(Conflict), c2.(Conflict)
	if d := utils.IntComparator(a.NonTerminal.Value, b.NonTerminal.Value); d != 0 {
		return d
	}
	if d := utils.IntComparator(a.Lookahead.id(), b.Lookahead.id()); d != 0 {
		return d
	}
	if d := utils.IntComparator(a.Later.Serial, b.Later.Serial); d != 0 {
		return d
	}
	return utils.IntComparator(a.Earlier.Serial, b.Earlier.Serial)
}

// --- Export ----------------------------------------------------------------

// TableAsHTML exports an LL(1) table in HTML-format. Cells with a conflict
// show both the current and the displaced rule.
func TableAsHTML(gen *TableGenerator, w io.Writer) {
	if gen.table == nil {
		tracer().Errorf("LL(1) table not yet created, cannot export to HTML")
		return
	}
	t := gen.table
	io.WriteString(w, "<html><body>\n")
	io.WriteString(w, fmt.Sprintf("LL(1) table for %s, entries = %d<p>", html.EscapeString(gen.g.Name), t.Size()))
	io.WriteString(w, "<table border=1 cellspacing=0 cellpadding=5>\n")
	io.WriteString(w, "<tr bgcolor=#cccccc><td></td>\n")
	for _, a := range gen.g.Lookaheads() {
		io.WriteString(w, fmt.Sprintf("<td>%s</td>", html.EscapeString(a.Name)))
	}
	io.WriteString(w, "</tr>\n")
	for _, A := range gen.g.nonterminals {
		io.WriteString(w, fmt.Sprintf("<tr><td>%s</td>\n", html.EscapeString(A.Name)))
		for _, a := range gen.g.Lookaheads() {
			v1, v2 := t.matrix.Values(A.Value, t.column(a))
			td := "&nbsp;"
			if v1 != t.matrix.NullValue() {
				td = html.EscapeString(cellString(gen.g, v1, v2, t.matrix.NullValue()))
			}
			io.WriteString(w, "<td>")
			io.WriteString(w, td)
			io.WriteString(w, "</td>\n")
		}
		io.WriteString(w, "</tr>\n")
	}
	io.WriteString(w, "</table></body></html>\n")
}

// cellString is a short helper to stringify a table cell.
func cellString(g *Grammar, a, b, null int32) string {
	if a == null {
		return "<none>"
	}
	s := g.Rule(int(a)).String()
	if b != null {
		s = fmt.Sprintf("%s / %s", s, g.Rule(int(b)))
	}
	return s
}
