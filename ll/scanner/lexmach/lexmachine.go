package lexmach

import (
	"bytes"
	"fmt"

	"github.com/npillmayer/lltab"
	"github.com/npillmayer/lltab/ll"
	"github.com/npillmayer/lltab/ll/scanner"
	"github.com/npillmayer/schuko/tracing"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// tracer traces with key 'lltab.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("lltab.scanner")
}

// LMAdapter is a lexmachine adapter to use lexmachine as a scanner.
type LMAdapter struct {
	Lexer *lexmachine.Lexer
}

// NewLMAdapter creates a new lexmachine adapter. It receives a list of
// literals ('[', ';', "if", …) and a map for translating literals to their
// token types. Literals are matched as-is. After the literals have been added,
// init is called to add further patterns (may be nil). Patterns added earlier
// take precedence for matches of equal length.
//
// NewLMAdapter will return an error if compiling the DFA failed.
func NewLMAdapter(literals []string, tokenIds map[string]int, init func(*lexmachine.Lexer)) (*LMAdapter, error) {
	adapter := &LMAdapter{}
	adapter.Lexer = lexmachine.NewLexer()
	for _, lit := range literals {
		id, ok := tokenIds[lit]
		if !ok {
			return nil, fmt.Errorf("no token type for literal %q", lit)
		}
		adapter.Lexer.Add(quote(lit), MakeToken(lit, id))
	}
	if init != nil {
		init(adapter.Lexer)
	}
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

// ForGrammar creates a lexmachine adapter which recognizes the terminals of g.
func ForGrammar(g *ll.Grammar) (*LMAdapter, error) {
	var literals []string
	tokenIds := make(map[string]int)
	for _, t := range g.Terminals() {
		literals = append(literals, t.Name)
		tokenIds[t.Name] = int(t.TokenType())
	}
	return NewLMAdapter(literals, tokenIds, func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`( |\t|\n|\r)+`), Skip)
		lexer.Add([]byte(`.`), MakeToken("<illegal>", scanner.Illegal))
	})
}

// quote turns a literal into a regular expression matching just the literal.
func quote(lit string) []byte {
	var b bytes.Buffer
	for i := 0; i < len(lit); i++ {
		c := lit[i]
		if c < 0x80 && !isWordChar(c) {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	return b.Bytes()
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}

// Scanner creates a scanner for a given input. The scanner will implement the
// Tokenizer interface.
func (lm *LMAdapter) Scanner(input string) (*LMScanner, error) {
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return &LMScanner{}, err
	}
	return &LMScanner{scanner: s, Error: logError}, nil
}

// LMScanner is a scanner type for lexmachine scanners, implementing the
// Tokenizer interface.
type LMScanner struct {
	scanner *lexmachine.Scanner
	Error   func(error)
}

var _ scanner.Tokenizer = (*LMScanner)(nil)

// SetErrorHandler sets an error handler for the scanner.
func (lms *LMScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		lms.Error = logError
		return
	}
	lms.Error = h
}

// Default error reporting function for lexmachine-based scanners
func logError(e error) {
	tracer().Errorf("scanner error: %v", e)
}

// NextToken is part of the Tokenizer interface.
func (lms *LMScanner) NextToken() lltab.Token {
	tok, err, eof := lms.scanner.Next()
	for err != nil {
		lms.Error(err)
		if ui, is := err.(*machines.UnconsumedInput); is {
			lms.scanner.TC = ui.FailTC
		}
		tok, err, eof = lms.scanner.Next()
	}
	if eof {
		pos := uint64(lms.scanner.TC)
		return scanner.MakeDefaultToken(scanner.EOF, "", lltab.Span{pos, pos})
	}
	token := tok.(*lexmachine.Token)
	tracer().Debugf("token %q/%d @%d", token.Lexeme, token.Type, token.TC)
	from := uint64(token.TC)
	return scanner.MakeDefaultToken(
		lltab.TokType(token.Type),
		string(token.Lexeme),
		lltab.Span{from, from + uint64(len(token.Lexeme))},
	)
}

// ---------------------------------------------------------------------------

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is a pre-defined action which wraps a scanned match into a token.
func MakeToken(name string, id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}
