package ll

import (
	"golang.org/x/tools/container/intsets"
)

// LLAnalysis is an object for grammar analysis (compute FIRST and FOLLOW sets).
// Both kinds of sets are computed once, when the analysis is created, and are
// read-only thereafter.
type LLAnalysis struct {
	g            *Grammar
	firstSets    []*intsets.Sparse // indexed by non-terminal alphabet index
	followSets   []*intsets.Sparse
	firstPasses  int
	followPasses int
}

// Analysis creates an analyser for a grammar and computes FIRST and FOLLOW
// sets for all non-terminals.
func Analysis(g *Grammar) *LLAnalysis {
	ga := &LLAnalysis{g: g}
	ga.computeFirstSets()
	ga.computeFollowSets()
	return ga
}

// Grammar returns the grammar this analyser operates on.
func (ga *LLAnalysis) Grammar() *Grammar {
	return ga.g
}

// Passes returns the number of full passes over all rules it took to reach the
// fixpoint for FIRST and FOLLOW sets, including the final pass without changes.
func (ga *LLAnalysis) Passes() (first int, follow int) {
	return ga.firstPasses, ga.followPasses
}

// --- FIRST -----------------------------------------------------------------

// Refer to "Crafting A Compiler" by Charles N. Fisher & Richard J. LeBlanc, Jr.
// Section 4.5.2 FIRST Sets

func (ga *LLAnalysis) computeFirstSets() {
	tracer().Debugf("=== FIRST =======================================================")
	ga.firstSets = make([]*intsets.Sparse, len(ga.g.nonterminals))
	for i := range ga.firstSets {
		ga.firstSets[i] = &intsets.Sparse{}
	}
	changed := true
	for changed {
		changed = false
		ga.firstPasses++
		for _, r := range ga.g.rules {
			F := ga.firstSets[r.LHS.Value]
			if grows(F, ga.firstOfSequence(r.rhs)) {
				tracer().Debugf("pass %d: FIRST(%s) grew by %s", ga.firstPasses, r.LHS, r)
				changed = true
			}
		}
	}
	for _, A := range ga.g.nonterminals {
		tracer().Infof("FIRST(%s) = %v", A, ga.FirstSymbols(A))
	}
}

// firstOfSequence computes FIRST(X1…Xk) from the current state of the FIRST sets.
// As long as a prefix of the sequence is nullable, scanning continues with the
// next symbol. If every symbol is nullable, epsilon is included.
func (ga *LLAnalysis) firstOfSequence(seq []*Symbol) *intsets.Sparse {
	F := &intsets.Sparse{}
	for _, X := range seq {
		switch X.Kind() {
		case EpsilonKind:
			F.Insert(epsID)
			return F
		case TerminalKind, EOFKind:
			F.Insert(X.id())
			return F
		case NonTermKind:
			fx := ga.firstSets[X.Value]
			nullable := fx.Has(epsID)
			F.UnionWith(fx)
			F.Remove(epsID)
			if !nullable {
				return F
			}
		}
	}
	F.Insert(epsID) // every symbol derives ε, including the empty sequence
	return F
}

// First returns FIRST(sym). For terminals, epsilon and the end-marker this is
// the set containing the symbol itself. The set is a copy.
func (ga *LLAnalysis) First(sym *Symbol) *intsets.Sparse {
	F := &intsets.Sparse{}
	switch sym.Kind() {
	case NonTermKind:
		F.Copy(ga.firstSets[sym.Value])
	case TerminalKind, EpsilonKind, EOFKind:
		F.Insert(sym.id())
	}
	return F
}

// FirstOfSequence returns FIRST(X1…Xk) for a sequence of symbols.
func (ga *LLAnalysis) FirstOfSequence(seq []*Symbol) *intsets.Sparse {
	return ga.firstOfSequence(seq)
}

// FirstSymbols returns FIRST(A) as a slice of symbols.
func (ga *LLAnalysis) FirstSymbols(A *Symbol) []*Symbol {
	return ga.SymbolsOf(ga.First(A))
}

// DerivesEpsilon is true if sym is nullable, i.e. ε ∈ FIRST(sym).
func (ga *LLAnalysis) DerivesEpsilon(sym *Symbol) bool {
	if sym.IsNonTerminal() {
		return ga.firstSets[sym.Value].Has(epsID)
	}
	return sym.IsEpsilon()
}

// --- FOLLOW ----------------------------------------------------------------

func (ga *LLAnalysis) computeFollowSets() {
	tracer().Debugf("=== FOLLOW ======================================================")
	ga.followSets = make([]*intsets.Sparse, len(ga.g.nonterminals))
	for i := range ga.followSets {
		ga.followSets[i] = &intsets.Sparse{}
	}
	ga.followSets[ga.g.start.Value].Insert(eofID)
	changed := true
	for changed {
		changed = false
		ga.followPasses++
		for _, r := range ga.g.rules {
			A := r.LHS
			for j, B := range r.rhs {
				if !B.IsNonTerminal() {
					continue
				}
				// A ➞ α B β
				beta := ga.firstOfSequence(r.rhs[j+1:])
				nullable := beta.Has(epsID)
				beta.Remove(epsID)
				if grows(ga.followSets[B.Value], beta) {
					changed = true
				}
				if nullable && B != A && grows(ga.followSets[B.Value], ga.followSets[A.Value]) {
					changed = true
				}
			}
		}
		tracer().Debugf("FOLLOW pass %d, changed = %v", ga.followPasses, changed)
	}
	for _, A := range ga.g.nonterminals {
		tracer().Infof("FOLLOW(%s) = %v", A, ga.FollowSymbols(A))
	}
}

// Follow returns FOLLOW(A) for a non-terminal A. The set is a copy and never
// contains epsilon. For all other symbols the empty set is returned.
func (ga *LLAnalysis) Follow(A *Symbol) *intsets.Sparse {
	F := &intsets.Sparse{}
	if A.IsNonTerminal() {
		F.Copy(ga.followSets[A.Value])
	}
	return F
}

// FollowSymbols returns FOLLOW(A) as a slice of symbols.
func (ga *LLAnalysis) FollowSymbols(A *Symbol) []*Symbol {
	return ga.SymbolsOf(ga.Follow(A))
}

// --- Helpers ---------------------------------------------------------------

// grows adds src to dst and reports whether dst gained elements.
// UnionWith's result is not usable for this, as it may report a change
// for subsets.
func grows(dst, src *intsets.Sparse) bool {
	n := dst.Len()
	dst.UnionWith(src)
	return dst.Len() != n
}

// SymbolsOf maps the elements of a FIRST or FOLLOW set back to symbols.
// Epsilon comes first, then the end-marker, then terminals by alphabet index.
func (ga *LLAnalysis) SymbolsOf(set *intsets.Sparse) []*Symbol {
	ids := set.AppendTo(nil)
	syms := make([]*Symbol, 0, len(ids))
	for _, id := range ids {
		if sym := ga.g.symbolForID(id); sym != nil {
			syms = append(syms, sym)
		}
	}
	return syms
}

// Contains is a convenience predicate for FIRST and FOLLOW sets.
func Contains(set *intsets.Sparse, sym *Symbol) bool {
	if set == nil || sym == nil || sym.IsNonTerminal() {
		return false
	}
	return set.Has(sym.id())
}
