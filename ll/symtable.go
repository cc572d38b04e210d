package ll

import (
	"fmt"

	"github.com/npillmayer/lltab"
)

// symbolTable stores the symbols of a grammar (map-like semantics), indexed
// by name and, for terminals, by token type.
type symbolTable struct {
	byName       map[string]*Symbol
	byToken      map[lltab.TokType]*Symbol
	terminals    []*Symbol
	nonterminals []*Symbol
}

func newSymbolTable() *symbolTable {
	return &symbolTable{
		byName:  make(map[string]*Symbol),
		byToken: make(map[lltab.TokType]*Symbol),
	}
}

// resolve checks for a symbol in the table.
// Returns a symbol or nil.
func (t *symbolTable) resolve(name string) *Symbol {
	if t == nil {
		return nil
	}
	return t.byName[name]
}

func (t *symbolTable) resolveToken(tt lltab.TokType) *Symbol {
	if t == nil {
		return nil
	}
	return t.byToken[tt]
}

// defineSpecial enters ε or $ into the table.
func (t *symbolTable) defineSpecial(name string, kind SymKind, tt lltab.TokType) *Symbol {
	sym := &Symbol{Name: name, Value: -1, kind: kind, token: tt}
	t.byName[name] = sym
	if kind == EOFKind {
		t.byToken[tt] = sym
	}
	return sym
}

// resolveOrDefineNonTerm finds a non-terminal in the table, inserting a new one
// if not found. It is an error if the name is already used for a different kind
// of symbol.
func (t *symbolTable) resolveOrDefineNonTerm(name string) (*Symbol, error) {
	if sym := t.byName[name]; sym != nil {
		if sym.kind != NonTermKind {
			return sym, fmt.Errorf("symbol %q used as non-terminal, but is a %s", name, sym.kind)
		}
		return sym, nil
	}
	sym := &Symbol{Name: name, Value: len(t.nonterminals), kind: NonTermKind}
	t.byName[name] = sym
	t.nonterminals = append(t.nonterminals, sym)
	return sym, nil
}

// resolveOrDefineTerm finds a terminal in the table, inserting a new one if
// not found. Token types must identify terminals uniquely.
func (t *symbolTable) resolveOrDefineTerm(name string, tt lltab.TokType) (*Symbol, error) {
	if sym := t.byName[name]; sym != nil {
		if sym.kind != TerminalKind {
			return sym, fmt.Errorf("symbol %q used as terminal, but is a %s", name, sym.kind)
		}
		if sym.token != tt {
			return sym, fmt.Errorf("terminal %q redeclared with token type %d (was %d)",
				name, tt, sym.token)
		}
		return sym, nil
	}
	if other := t.byToken[tt]; other != nil {
		return other, fmt.Errorf("token type %d of terminal %q already taken by %q",
			tt, name, other.Name)
	}
	sym := &Symbol{Name: name, Value: len(t.terminals), kind: TerminalKind, token: tt}
	t.byName[name] = sym
	t.byToken[tt] = sym
	t.terminals = append(t.terminals, sym)
	return sym, nil
}

// clone copies the table, so that grammars are not affected by further
// use of their builder.
func (t *symbolTable) clone() *symbolTable {
	c := newSymbolTable()
	for k, v := range t.byName {
		c.byName[k] = v
	}
	for k, v := range t.byToken {
		c.byToken[k] = v
	}
	c.terminals = append(c.terminals, t.terminals...)
	c.nonterminals = append(c.nonterminals, t.nonterminals...)
	return c
}
