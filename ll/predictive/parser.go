package predictive

import (
	"errors"
	"fmt"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/lltab"
	"github.com/npillmayer/lltab/ll"
	"github.com/npillmayer/lltab/ll/scanner"
)

// Parser is an LL(1)-parser type. Create and initialize one with predictive.NewParser(...)
//
// A parser owns the stack and input cursor of the parse in progress. It may be
// re-used for subsequent parses, but is not safe for concurrent use. Grammar and
// table are only read, so any number of parsers may share them.
type Parser struct {
	G     *ll.Grammar
	table *ll.Table
	stack *arraystack.Stack // parse stack of stackitems
	input []lltab.Token     // input tokens, terminated by EOF
	pos   int               // input cursor
	sink  TraceSink
	limit int   // maximum stack size, 0 = unlimited
	tree  bool  // build a parse tree
	root  *Node // root of the parse tree
}

// We store grammar symbols on the parse stack, together with the parse tree node
// which will be filled in as soon as the symbol is matched or expanded.
type stackitem struct {
	sym  *ll.Symbol
	node *Node
}

// Option configures a parser.
type Option func(p *Parser)

// GenerateTree instructs the parser to build a parse tree.
func GenerateTree(b bool) Option {
	return func(p *Parser) {
		p.tree = b
	}
}

// StackLimit restricts the size of the parse stack. n = 0 means no limit.
func StackLimit(n int) Option {
	return func(p *Parser) {
		if n >= 0 {
			p.limit = n
		}
	}
}

// TraceTo sets a sink for trace records.
func TraceTo(sink TraceSink) Option {
	return func(p *Parser) {
		p.sink = sink
	}
}

// NewParser creates an LL(1) parser.
func NewParser(g *ll.Grammar, table *ll.Table, opts ...Option) *Parser {
	parser := &Parser{
		G:     g,
		table: table,
		stack: arraystack.New(),
	}
	for _, opt := range opts {
		opt(parser)
	}
	return parser
}

// ParseFrom reads all tokens from a scanner and parses them.
func (p *Parser) ParseFrom(scan scanner.Tokenizer) (bool, error) {
	return p.Parse(scanner.ReadAll(scan))
}

// Parse starts a new parse for a sequence of input tokens. An end-of-input
// token is appended if not present; tokens following an end-of-input token
// are ignored.
//
// The parser returns true if the input string has been accepted. Otherwise the
// error describes the reason for rejecting the input, usually a *ParseError.
func (p *Parser) Parse(input []lltab.Token) (bool, error) {
	tracer().Debugf("~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~")
	if p.G == nil || p.table == nil {
		return false, errors.New("LL(1)-parser not initialized")
	}
	if !p.table.Valid() {
		return false, fmt.Errorf("cannot parse %s: %w", p.G.Name, ll.ErrGrammarNotLL1)
	}
	p.reset(input)
	for {
		top := p.top()
		token := p.input[p.pos]
		a := p.G.TerminalByToken(token.TokType())
		tracer().Debugf("stack top = %s, token %q/%d", top.sym, token.Lexeme(), token.TokType())
		switch {
		case top.sym.IsEOF() && a.IsEOF():
			p.trace(Action{Kind: Accept})
			p.stack.Pop()
			p.pos++
			if p.root != nil {
				p.root.spans()
			}
			tracer().Infof("input accepted")
			return true, nil
		case top.sym.IsLookahead():
			if top.sym != a {
				return false, p.reject(TerminalMismatch, top.sym, token)
			}
			p.trace(Action{Kind: Match, Symbol: a})
			p.stack.Pop()
			if top.node != nil {
				top.node.Token = token
				top.node.Span = token.Span()
			}
			p.pos++
		case top.sym.IsNonTerminal():
			if a == nil || !a.IsLookahead() {
				return false, p.reject(InvalidSymbol, top.sym, token)
			}
			rule := p.table.Rule(top.sym, a)
			if rule == nil {
				return false, p.reject(NoProduction, top.sym, token)
			}
			p.trace(Action{Kind: Apply, Rule: rule})
			p.stack.Pop()
			if err := p.expand(top, rule); err != nil {
				return false, err
			}
		default:
			return false, fmt.Errorf("illegal symbol %s on parse stack", top.sym)
		}
	}
}

// reset prepares the input and initializes the stack to [$ S].
func (p *Parser) reset(input []lltab.Token) {
	p.input = make([]lltab.Token, 0, len(input)+1)
	for _, tok := range input {
		p.input = append(p.input, tok)
		if tok.TokType() == ll.EOFToken {
			break
		}
	}
	if n := len(p.input); n == 0 || p.input[n-1].TokType() != ll.EOFToken {
		var pos uint64
		if n > 0 {
			pos = p.input[n-1].Span().To()
		}
		p.input = append(p.input, scanner.MakeDefaultToken(ll.EOFToken, ll.EOFName, lltab.Span{pos, pos}))
	}
	p.pos = 0
	p.stack.Clear()
	p.root = nil
	p.stack.Push(stackitem{sym: p.G.EOF()})
	start := stackitem{sym: p.G.Start()}
	if p.tree {
		p.root = &Node{Symbol: p.G.Start()}
		start.node = p.root
	}
	p.stack.Push(start)
}

func (p *Parser) top() stackitem {
	x, _ := p.stack.Peek()
	return x.(stackitem)
}

// expand pushes the right hand side of rule onto the stack, in reverse
// order. Epsilon rules push nothing.
func (p *Parser) expand(item stackitem, rule *ll.Rule) error {
	var children []*Node
	if item.node != nil {
		children = item.node.expand(rule)
	}
	if rule.IsEpsilon() {
		return nil
	}
	rhs := rule.RHS()
	for i := len(rhs) - 1; i >= 0; i-- {
		next := stackitem{sym: rhs[i]}
		if children != nil {
			next.node = children[i]
		}
		p.stack.Push(next)
	}
	if p.limit > 0 && p.stack.Size() > p.limit {
		return fmt.Errorf("%w: %d symbols at position %d exceed limit of %d",
			ErrStackOverflow, p.stack.Size(), p.pos, p.limit)
	}
	return nil
}

func (p *Parser) reject(kind ErrorKind, top *ll.Symbol, token lltab.Token) error {
	err := &ParseError{Kind: kind, Pos: p.pos, Top: top, Token: token}
	p.trace(Action{Kind: Reject, Err: err})
	tracer().Infof("input rejected: %v", err)
	return err
}

// trace reports a step to the trace sink, using the state before the transition.
func (p *Parser) trace(action Action) {
	if p.sink == nil {
		tracer().Debugf("%s", action)
		return
	}
	step := Step{
		Stack:  p.StackSymbols(),
		Input:  append([]lltab.Token(nil), p.input[p.pos:]...),
		Action: action,
	}
	tracer().Debugf("%s", step)
	p.sink.Step(step)
}

// --- Accessors -------------------------------------------------------------

// Position returns the current input position. After a parse it is the
// position where the input was rejected or, for accepted input, the position
// after the end-of-input token.
func (p *Parser) Position() int {
	return p.pos
}

// StackSize returns the number of symbols on the parse stack.
func (p *Parser) StackSize() int {
	return p.stack.Size()
}

// StackSymbols returns the contents of the parse stack, bottom to top.
func (p *Parser) StackSymbols() []*ll.Symbol {
	values := p.stack.Values() // top first
	syms := make([]*ll.Symbol, len(values))
	for i, x := range values {
		syms[len(values)-1-i] = x.(stackitem).sym
	}
	return syms
}

// ParseTree returns the parse tree of the last accepted input, if the parser
// has been configured to build one. Otherwise nil is returned.
func (p *Parser) ParseTree() *Node {
	if p.stack.Size() > 0 {
		return nil
	}
	return p.root
}

// TokenAt returns the input token at position pos, or nil.
func (p *Parser) TokenAt(pos uint64) lltab.Token {
	if pos >= uint64(len(p.input)) {
		return nil
	}
	return p.input[pos]
}

// TokenRetriever returns a function for retrieving tokens of the last parse.
func (p *Parser) TokenRetriever() lltab.TokenRetriever {
	return p.TokenAt
}
