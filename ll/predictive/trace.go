package predictive

import (
	"bytes"
	"fmt"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/npillmayer/lltab"
	"github.com/npillmayer/lltab/ll"
)

// ActionKind is the kind of transition a parser performs in a step.
type ActionKind int

// Parser actions.
const (
	Match  ActionKind = iota // pop a terminal and advance the input
	Apply                    // expand a non-terminal by a rule
	Accept                   // stack and input are exhausted
	Reject                   // parse error
)

func (k ActionKind) String() string {
	switch k {
	case Match:
		return "Match"
	case Apply:
		return "Apply"
	case Accept:
		return "Accept"
	case Reject:
		return "Error"
	}
	return "<unknown>"
}

// Action is the transition chosen in a parse step.
// Symbol is set for Match, Rule for Apply and Err for Reject.
type Action struct {
	Kind   ActionKind
	Symbol *ll.Symbol
	Rule   *ll.Rule
	Err    error
}

func (a Action) String() string {
	switch a.Kind {
	case Match:
		return fmt.Sprintf("Match %s", a.Symbol)
	case Apply:
		return fmt.Sprintf("Apply %s", a.Rule)
	case Reject:
		return fmt.Sprintf("Error: %v", a.Err)
	}
	return a.Kind.String()
}

// Step is a trace record of a single parser transition. Stack and Input
// reflect the state before the transition. Stack is ordered bottom to top.
type Step struct {
	Stack  []*ll.Symbol
	Input  []lltab.Token
	Action Action
}

// StackString returns the stack contents, bottom to top.
func (s Step) StackString() string {
	var b bytes.Buffer
	for i, sym := range s.Stack {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(sym.Name)
	}
	return b.String()
}

// InputString returns the remaining input.
func (s Step) InputString() string {
	var b bytes.Buffer
	for i, tok := range s.Input {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(tokenString(tok))
	}
	return b.String()
}

func (s Step) String() string {
	return fmt.Sprintf("%-20s %-20s %s", s.StackString(), s.InputString(), s.Action)
}

// TraceSink receives trace records from a parser, one per step.
type TraceSink interface {
	Step(Step)
}

// TraceFunc adapts a function to the TraceSink interface.
type TraceFunc func(Step)

// Step calls f(s).
func (f TraceFunc) Step(s Step) {
	f(s)
}

// Recorder is a TraceSink which collects all steps of a parse.
type Recorder struct {
	steps *arraylist.List
}

var _ TraceSink = (*Recorder)(nil)

// NewRecorder creates an empty trace recorder.
func NewRecorder() *Recorder {
	return &Recorder{steps: arraylist.New()}
}

// Step is part of interface TraceSink.
func (r *Recorder) Step(s Step) {
	r.steps.Add(s)
}

// Steps returns the recorded steps in order.
func (r *Recorder) Steps() []Step {
	steps := make([]Step, 0, r.steps.Size())
	for _, x := range r.steps.Values() {
		steps = append(steps, x.(Step))
	}
	return steps
}

// Len returns the number of recorded steps.
func (r *Recorder) Len() int {
	return r.steps.Size()
}

// Last returns the last step recorded.
func (r *Recorder) Last() (Step, bool) {
	x, ok := r.steps.Get(r.steps.Size() - 1)
	if !ok {
		return Step{}, false
	}
	return x.(Step), true
}

// Clear drops all recorded steps.
func (r *Recorder) Clear() {
	r.steps.Clear()
}

func tokenString(tok lltab.Token) string {
	if tok == nil {
		return "<nil>"
	}
	if tok.TokType() == ll.EOFToken {
		return ll.EOFName
	}
	return tok.Lexeme()
}
