/*
Package bnf reads grammars from a simple textual notation.

	// expression grammar
	%start E ;
	%terminals i ( ) * + ;
	E -> T X ;
	X -> + T X | ε ;
	T -> F Y ;
	Y -> * F Y | ε ;
	F -> "(" E ")" | i ;

Every rule starts with a non-terminal, followed by '->' (or '➞') and a list of
alternatives separated by '|'. A rule is terminated by ';'. An empty alternative,
as well as one of 'ε', 'eps' or 'epsilon', denotes an epsilon production.
Symbols are identifiers, single punctuation characters or quoted strings.
Quoted strings are always terminals.

Directive '%start' sets the start symbol, default is the left hand side of the
first rule. Directive '%terminals' declares the terminal alphabet, in order.
Without it, every symbol never appearing on the left hand side of a rule is a
terminal. Comments are Go-style.

Terminals are typed with ll.GrammarBuilder.TokenTypeFor, i.e. single-character
terminals use their rune as token type.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package bnf

import (
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/lltab"
	"github.com/npillmayer/lltab/ll"
	"github.com/npillmayer/lltab/ll/scanner"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lltab.ll'.
func tracer() tracing.Trace {
	return tracing.Select("lltab.ll")
}

// Parse reads a grammar from a string.
func Parse(gname string, text string) (*ll.Grammar, error) {
	return Read(gname, strings.NewReader(text))
}

// Read reads a grammar from r. gname is used as the name of the grammar and
// in error messages.
func Read(gname string, r io.Reader) (*ll.Grammar, error) {
	rd := &reader{}
	rd.scan = scanner.GoTokenizer(gname, r, scanner.SkipComments(true), scanner.UnifyStrings(true))
	rd.scan.SetErrorHandler(func(e error) {
		if rd.err == nil {
			rd.err = e
		}
	})
	gt, err := rd.parse()
	if err != nil {
		return nil, err
	}
	return gt.build(gname)
}

// --- Grammar text ----------------------------------------------------------

type symbol struct {
	name   string
	quoted bool
}

type alternative []symbol // empty for epsilon

type production struct {
	lhs  string
	alts []alternative
}

type grammarText struct {
	start     string
	terminals []symbol // nil if not declared
	rules     []production
}

func isEpsilon(sym symbol) bool {
	if sym.quoted {
		return false
	}
	switch sym.name {
	case ll.EpsilonName, "eps", "epsilon":
		return true
	}
	return false
}

// build transforms the grammar text into a grammar, using a grammar builder.
func (gt *grammarText) build(gname string) (*ll.Grammar, error) {
	b := ll.NewGrammarBuilder(gname)
	lhs := make(map[string]bool)
	for _, p := range gt.rules {
		lhs[p.lhs] = true
		b.NonTerminal(p.lhs)
	}
	declared := make(map[string]bool)
	for _, t := range gt.terminals {
		declared[t.name] = true
		b.Terminal(t.name, b.TokenTypeFor(t.name))
	}
	for _, p := range gt.rules {
		for _, alt := range p.alts {
			rb := b.LHS(p.lhs)
			if len(alt) == 1 && isEpsilon(alt[0]) {
				rb.Epsilon()
				continue
			}
			for _, sym := range alt {
				switch {
				case isEpsilon(sym):
					return nil, fmt.Errorf("rule for %s: epsilon must be the only symbol of an alternative", p.lhs)
				case !sym.quoted && lhs[sym.name]:
					rb.N(sym.name)
				case gt.terminals != nil && !declared[sym.name]:
					return nil, fmt.Errorf("rule for %s: symbol %q is neither a declared terminal nor a non-terminal",
						p.lhs, sym.name)
				default:
					rb.T(sym.name, b.TokenTypeFor(sym.name))
				}
			}
			rb.End()
		}
	}
	if gt.start != "" {
		b.Start(gt.start)
	}
	g, err := b.Grammar()
	if err != nil {
		return nil, fmt.Errorf("grammar %s: %w", gname, err)
	}
	tracer().Infof("read grammar %s with %d rules", gname, g.Size())
	return g, nil
}

// --- Reader ----------------------------------------------------------------

type reader struct {
	scan *scanner.GoScanner
	tok  lltab.Token
	err  error // first scanner error
}

func (rd *reader) next() {
	rd.tok = rd.scan.NextToken()
}

func (rd *reader) is(lexeme string) bool {
	return rd.tok.TokType() != scanner.String && rd.tok.Lexeme() == lexeme
}

func (rd *reader) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %s", rd.scan.Position(), fmt.Sprintf(format, args...))
}

func (rd *reader) expect(lexeme string) error {
	if !rd.is(lexeme) {
		return rd.errorf("expected %q, found %q", lexeme, rd.tok.Lexeme())
	}
	rd.next()
	return nil
}

// parse reads the complete grammar text.
//
//    text       ::= { directive | production }
//    directive  ::= '%' ident { symbol } ';'
//    production ::= ident arrow alternative { '|' alternative } ';'
//    arrow      ::= '->' | '➞'
//
func (rd *reader) parse() (*grammarText, error) {
	gt := &grammarText{}
	rd.next()
	for rd.tok.TokType() != scanner.EOF {
		var err error
		if rd.is("%") {
			err = rd.directive(gt)
		} else {
			err = rd.production(gt)
		}
		if rd.err != nil {
			return nil, rd.err
		}
		if err != nil {
			return nil, err
		}
	}
	if len(gt.rules) == 0 {
		return nil, rd.errorf("grammar has no rules")
	}
	return gt, nil
}

func (rd *reader) directive(gt *grammarText) error {
	rd.next()
	if rd.tok.TokType() != scanner.Ident {
		return rd.errorf("expected directive name, found %q", rd.tok.Lexeme())
	}
	name := rd.tok.Lexeme()
	rd.next()
	syms, err := rd.symbols()
	if err != nil {
		return err
	}
	switch name {
	case "start":
		if len(syms) != 1 || syms[0].quoted {
			return rd.errorf("%%start needs exactly one non-terminal")
		}
		gt.start = syms[0].name
	case "terminals":
		gt.terminals = append(gt.terminals, syms...)
		if gt.terminals == nil {
			gt.terminals = []symbol{}
		}
	default:
		return rd.errorf("unknown directive %%%s", name)
	}
	return rd.expect(";")
}

func (rd *reader) production(gt *grammarText) error {
	if rd.tok.TokType() != scanner.Ident {
		return rd.errorf("expected non-terminal, found %q", rd.tok.Lexeme())
	}
	p := production{lhs: rd.tok.Lexeme()}
	rd.next()
	if rd.is("-") {
		rd.next()
		if err := rd.expect(">"); err != nil {
			return err
		}
	} else if err := rd.expect("➞"); err != nil {
		return rd.errorf("expected '->' after %s, found %q", p.lhs, rd.tok.Lexeme())
	}
	for {
		alt, err := rd.symbols()
		if err != nil {
			return err
		}
		p.alts = append(p.alts, alternative(alt))
		if !rd.is("|") {
			break
		}
		rd.next()
	}
	gt.rules = append(gt.rules, p)
	return rd.expect(";")
}

// symbols reads symbols up to '|', ';' or EOF.
func (rd *reader) symbols() ([]symbol, error) {
	var syms []symbol
	for !rd.is("|") && !rd.is(";") {
		switch rd.tok.TokType() {
		case scanner.EOF:
			return nil, rd.errorf("unexpected end of grammar, missing ';'")
		case scanner.String:
			s, ok := rd.tok.Value().(string)
			if !ok || s == "" {
				return nil, rd.errorf("illegal terminal %s", rd.tok.Lexeme())
			}
			syms = append(syms, symbol{name: s, quoted: true})
		default:
			syms = append(syms, symbol{name: rd.tok.Lexeme()})
		}
		rd.next()
	}
	return syms, nil
}
