package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/npillmayer/lltab/ll"
	"github.com/npillmayer/lltab/ll/bnf"
	"github.com/npillmayer/lltab/ll/ebnf"
	"github.com/npillmayer/lltab/session"
)

// makeExprGrammar creates the classic expression grammar, with left recursion
// removed.
func makeExprGrammar() (*ll.Grammar, error) {
	b := ll.NewGrammarBuilder("Expressions")
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
	return b.Grammar()
}

// loadGrammar reads a grammar from a BNF or EBNF file, or creates the default
// expression grammar.
func loadGrammar(bnfFile, ebnfFile, start string) (*ll.Grammar, error) {
	switch {
	case bnfFile != "" && ebnfFile != "":
		return nil, errors.New("flags -grammar and -ebnf are mutually exclusive")
	case bnfFile != "":
		f, err := os.Open(bnfFile)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return bnf.Read(bnfFile, f)
	case ebnfFile != "":
		if start == "" {
			return nil, errors.New("EBNF grammars need a start symbol, use flag -start")
		}
		f, err := os.Open(ebnfFile)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return ebnf.Import(ebnfFile, f, start)
	}
	return makeExprGrammar()
}

// main() starts an interactive CLI, where users may enter input for a grammar.
// Every input line will be parsed and the steps of the predictive parser
// will be displayed.
func main() {
	// set up logging
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	gfile := flag.String("grammar", "", "Grammar file (BNF notation)")
	efile := flag.String("ebnf", "", "Grammar file (EBNF notation)")
	start := flag.String("start", "", "Start symbol for EBNF grammars")
	htmlf := flag.String("html", "", "Export parsing table to HTML file")
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelInfo) // will set the correct level later
	pterm.Info.Println("Welcome to LLTAB")     // colored welcome message
	tracer().Infof("Trace level is %s", *tlevel)
	//
	// set up grammar and analysis session
	g, err := loadGrammar(*gfile, *efile, *start)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(3)
	}
	setTraceLevel(traceLevel(*tlevel)) // now set the user supplied level
	g.Dump()                           // only visible in debug mode
	s, err := session.New(g, session.WithParseTree(true))
	if err != nil {
		printConflicts(err)
		os.Exit(3)
	}
	intp := &Intp{session: s}
	intp.printRules()
	intp.printSets()
	intp.printTable()
	if *htmlf != "" {
		if err := exportTable(s, *htmlf); err != nil {
			pterm.Error.Println(err.Error())
		}
	}
	input := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if input != "" {
		tracer().Infof("Input argument is \"%s\"", input)
		if !intp.Parse(input) {
			os.Exit(1)
		}
		return
	}
	//
	// set up REPL
	repl, err := readline.New("lltab> ")
	if err != nil {
		tracer().Errorf("%v", err)
		os.Exit(3)
	}
	defer repl.Close()
	intp.repl = repl
	tracer().Infof("Quit with <ctrl>D") // inform user how to stop the CLI
	intp.REPL()                         // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	session  *session.Session
	repl     *readline.Instance
	hideTree bool
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			if quit := intp.Execute(line[1:]); quit {
				break
			}
			continue
		}
		intp.Parse(line)
	}
	println("Good bye!")
}

// Execute executes a command. It returns true if the user wants to quit.
func (intp *Intp) Execute(cmd string) bool {
	switch strings.TrimSpace(cmd) {
	case "sets":
		intp.printSets()
	case "table":
		intp.printTable()
	case "rules":
		intp.printRules()
	case "tree":
		intp.hideTree = !intp.hideTree
		pterm.Info.Printf("display of parse trees is %v\n", !intp.hideTree)
	case "quit", "q":
		return true
	default:
		pterm.Error.Printf("unknown command :%s\n", cmd)
	}
	return false
}

// Parse parses a line of input and displays the steps of the parser.
func (intp *Intp) Parse(line string) bool {
	result, err := intp.session.ParseString(line)
	intp.printSteps(result)
	if err != nil {
		pterm.Error.Println(err.Error())
		return false
	}
	if !result.Accepted {
		pterm.Error.Println("input rejected")
		return false
	}
	pterm.Info.Println("input accepted")
	if !intp.hideTree && result.Tree != nil {
		printTree(result.Tree)
	}
	return true
}

func printConflicts(err error) {
	var notLL1 *ll.NotLL1Error
	if !errors.As(err, &notLL1) {
		pterm.Error.Println(err.Error())
		return
	}
	pterm.Error.Printf("grammar %s is not LL(1)\n", notLL1.Grammar)
	for _, c := range notLL1.Conflicts {
		pterm.Error.Println(c.String())
	}
}

func exportTable(s *session.Session, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	ll.TableAsHTML(s.TableGenerator(), f)
	if err = f.Close(); err != nil {
		return fmt.Errorf("cannot write table to %s: %w", filename, err)
	}
	pterm.Info.Printf("table exported to %s\n", filename)
	return nil
}

func traceLevel(l string) tracing.TraceLevel {
	return tracing.TraceLevelFromString(l)
}

// traceKeys are the tracers of all packages taking part in a session.
var traceKeys = []string{"lltab.cli", "lltab.ll", "lltab.scanner", "lltab.session"}

func setTraceLevel(level tracing.TraceLevel) {
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(level)
	}
}
