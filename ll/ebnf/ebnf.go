/*
Package ebnf imports grammars written in Go-style EBNF
(see package golang.org/x/exp/ebnf).

	Expr   = Term { "+" Term } .
	Term   = Factor { "*" Factor } .
	Factor = "(" Expr ")" | ident .
	ident  = "i" .

Productions with an upper-case name become non-terminals. Tokens as well as
lexical (lower-case) productions become terminals; the definitions of lexical
productions are not imported, as scanning is not the business of the parser.

Groups, options and repetitions are desugared into helper non-terminals, named
after the production they occur in:

	( x | y )  ➞  H ➞ x | y
	[ x ]      ➞  H ➞ x | ε
	{ x }      ➞  H ➞ x H | ε

Repetitions are right-recursive, which keeps the resulting grammar suitable for
predictive parsing. Ranges ("a" … "z") are lexical constructs and are rejected.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ebnf

import (
	"fmt"
	"io"
	"sort"
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/lltab/ll"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/exp/ebnf"
)

// tracer traces with key 'lltab.ll'.
func tracer() tracing.Trace {
	return tracing.Select("lltab.ll")
}

// Import reads an EBNF grammar from r, verifies it for start symbol start and
// converts it into a grammar.
func Import(gname string, r io.Reader, start string) (*ll.Grammar, error) {
	grammar, err := ebnf.Parse(gname, r)
	if err != nil {
		return nil, err
	}
	return Convert(gname, grammar, start)
}

// Convert converts a parsed EBNF grammar into a grammar with start symbol start.
func Convert(gname string, grammar ebnf.Grammar, start string) (*ll.Grammar, error) {
	if err := ebnf.Verify(grammar, start); err != nil {
		return nil, err
	}
	if isLexical(start) {
		return nil, fmt.Errorf("start symbol %s is a lexical production", start)
	}
	imp := &importer{grammar: grammar, helpers: make(map[string]int)}
	for _, p := range imp.productions() {
		if err := imp.production(p); err != nil {
			return nil, err
		}
	}
	b := ll.NewGrammarBuilder(gname)
	b.Start(start)
	for _, r := range imp.rules {
		rb := b.LHS(r.lhs)
		for _, sym := range r.rhs {
			if sym.terminal {
				rb.T(sym.name, b.TokenTypeFor(sym.name))
			} else {
				rb.N(sym.name)
			}
		}
		rb.End()
	}
	g, err := b.Grammar()
	if err != nil {
		return nil, fmt.Errorf("grammar %s: %w", gname, err)
	}
	tracer().Infof("imported EBNF grammar %s: %d productions, %d rules", gname, len(grammar), g.Size())
	return g, nil
}

func isLexical(name string) bool {
	ch, _ := utf8.DecodeRuneInString(name)
	return !unicode.IsUpper(ch)
}

type ref struct {
	name     string
	terminal bool
}

type rule struct {
	lhs string
	rhs []ref // empty for epsilon
}

type importer struct {
	grammar ebnf.Grammar
	rules   []rule
	pending []rule         // rules of helper non-terminals of current production
	helpers map[string]int // helper count per production
}

// productions returns the non-lexical productions in order of appearance.
func (imp *importer) productions() []*ebnf.Production {
	var prods []*ebnf.Production
	for name, p := range imp.grammar {
		if !isLexical(name) {
			prods = append(prods, p)
		}
	}
	sort.Slice(prods, func(i, j int) bool {
		return prods[i].Name.Pos().Offset < prods[j].Name.Pos().Offset
	})
	return prods
}

func (imp *importer) production(p *ebnf.Production) error {
	lhs := p.Name.String
	alts, err := imp.alternatives(lhs, p.Expr)
	if err != nil {
		return err
	}
	for _, alt := range alts {
		imp.rules = append(imp.rules, rule{lhs: lhs, rhs: alt})
	}
	imp.rules = append(imp.rules, imp.pending...)
	imp.pending = imp.pending[:0]
	return nil
}

// alternatives converts an expression into a list of right hand sides.
func (imp *importer) alternatives(lhs string, x ebnf.Expression) ([][]ref, error) {
	if alt, ok := x.(ebnf.Alternative); ok {
		var alts [][]ref
		for _, a := range alt {
			seq, err := imp.sequence(lhs, a)
			if err != nil {
				return nil, err
			}
			alts = append(alts, seq)
		}
		return alts, nil
	}
	seq, err := imp.sequence(lhs, x)
	if err != nil {
		return nil, err
	}
	return [][]ref{seq}, nil
}

// sequence converts an expression into a sequence of symbols.
func (imp *importer) sequence(lhs string, x ebnf.Expression) ([]ref, error) {
	switch x := x.(type) {
	case nil:
		return nil, nil
	case ebnf.Sequence:
		var seq []ref
		for _, e := range x {
			s, err := imp.sequence(lhs, e)
			if err != nil {
				return nil, err
			}
			seq = append(seq, s...)
		}
		return seq, nil
	case *ebnf.Name:
		return []ref{{name: x.String, terminal: isLexical(x.String)}}, nil
	case *ebnf.Token:
		if x.String == "" {
			return nil, nil
		}
		return []ref{{name: x.String, terminal: true}}, nil
	case *ebnf.Group:
		h := imp.helper(lhs)
		if err := imp.define(lhs, h, x.Body, false, false); err != nil {
			return nil, err
		}
		return []ref{{name: h}}, nil
	case *ebnf.Option:
		h := imp.helper(lhs)
		if err := imp.define(lhs, h, x.Body, false, true); err != nil {
			return nil, err
		}
		return []ref{{name: h}}, nil
	case *ebnf.Repetition:
		h := imp.helper(lhs)
		if err := imp.define(lhs, h, x.Body, true, true); err != nil {
			return nil, err
		}
		return []ref{{name: h}}, nil
	case *ebnf.Range:
		return nil, fmt.Errorf("%s: ranges are not supported in non-lexical production %s",
			x.Pos(), lhs)
	}
	return nil, fmt.Errorf("%s: unsupported EBNF expression %T in production %s", x.Pos(), x, lhs)
}

// define creates rules for a helper non-terminal h.
func (imp *importer) define(lhs, h string, body ebnf.Expression, recursive, optional bool) error {
	alts, err := imp.alternatives(lhs, body)
	if err != nil {
		return err
	}
	for _, alt := range alts {
		if recursive {
			alt = append(alt, ref{name: h})
		}
		imp.pending = append(imp.pending, rule{lhs: h, rhs: alt})
	}
	if optional {
		imp.pending = append(imp.pending, rule{lhs: h})
	}
	return nil
}

// helper creates a fresh non-terminal name for production lhs.
func (imp *importer) helper(lhs string) string {
	for {
		imp.helpers[lhs]++
		name := fmt.Sprintf("%s_%d", lhs, imp.helpers[lhs])
		if _, exists := imp.grammar[name]; !exists {
			return name
		}
	}
}
