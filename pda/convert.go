package pda

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/npillmayer/chomsky"
	"github.com/npillmayer/chomsky/cfg"
)

// AcceptanceMode selects the acceptance convention of an automaton for the
// purpose of conversion. It is a mandatory configuration input: the
// converter never guesses.
type AcceptanceMode int

// Acceptance conventions. With Unspecified, Convert resolves the mode from
// the accepting-state declarations where this is unambiguous: no accepting
// state means EmptyStack, exactly one means FinalState. More than one
// accepting state cannot be resolved and yields ErrAmbiguousAcceptance.
const (
	Unspecified AcceptanceMode = iota
	FinalState
	EmptyStack
)

func (mode AcceptanceMode) String() string {
	switch mode {
	case FinalState:
		return "final-state"
	case EmptyStack:
		return "empty-stack"
	}
	return "unspecified"
}

// tripleName renders the composite variable [p,X,q] as a non-terminal name.
// The triple is a proper composite key; string concatenation happens in
// this one place only.
func tripleName(p, x, q string) string {
	return "[" + p + "," + x + "," + q + "]"
}

// freshStartName is the name of the fresh start symbol introduced when the
// start variable is not a single triple. Triple names are bracketed, so the
// name cannot collide.
const freshStartName = "S"

// production is one emitted grammar production, collected before feeding
// the grammar builder.
type production struct {
	lhs string
	rhs []chomsky.Symbol
}

func (p production) key() string {
	var b strings.Builder
	b.WriteString(p.lhs)
	b.WriteString(" ->")
	for _, sym := range p.rhs {
		b.WriteRune(' ')
		b.WriteString(sym.String())
	}
	return b.String()
}

// Convert constructs a context-free grammar for the language accepted by
// the automaton, using the classical triple construction. Each variable
// [p,X,q] of the resulting grammar derives exactly the strings which drive
// the automaton from state p with X on top of the stack to state q, with X
// popped net.
//
// For a transition (p,a,X) -> (r, Y1…Yk) the converter emits
//
//    k = 0:   [p,X,r] -> a
//    k ≥ 1:   [p,X,q] -> a [r,Y1,s1] [s1,Y2,s2] … [s(k-1),Yk,q]
//
// for every choice of intermediate states s1 … s(k-1) and every landing
// state q. This enumeration must not be skipped even for k = 1: each
// landing state yields a distinct valid production.
//
// The start symbol depends on the acceptance mode. For FinalState it is
// [start, Z0, f]; with several accepting states f, a fresh start symbol
// with one unit alternative per triple is introduced. For EmptyStack the
// landing state is unconstrained and every state contributes a start
// triple. In FinalState mode the construction presumes that the automaton
// drains its stack upon acceptance, since [p,X,q] variables derive
// stack-popping runs only.
//
// The resulting grammar usually contains many useless triples; feed it to
// cfg.Normalize to obtain a reduced grammar.
func Convert(a *Automaton, mode AcceptanceMode) (*cfg.Grammar, error) {
	mode, err := resolveMode(a, mode)
	if err != nil {
		return nil, err
	}
	tracer().Infof("converting automaton %s, %s acceptance", a.Name, mode)
	var landing []string
	switch mode {
	case EmptyStack:
		landing = a.states
	case FinalState:
		landing = a.accepting
	}
	if len(landing) == 0 {
		return nil, fmt.Errorf("automaton %s has no accepting state: %w", a.Name, ErrAmbiguousAcceptance)
	}
	b := cfg.NewGrammarBuilder(a.Name)
	if len(landing) == 1 {
		b.SetStart(tripleName(a.start, a.startStack, landing[0]))
	} else {
		b.SetStart(freshStartName)
		for _, q := range landing {
			b.LHS(freshStartName).N(tripleName(a.start, a.startStack, q)).End()
		}
	}
	// Declare every triple up front, so that invariant checking holds for
	// triples which gather no production.
	for _, p := range a.states {
		for _, x := range a.stack {
			for _, q := range a.states {
				b.Declare(tripleName(p, x, q))
			}
		}
	}
	prods := arraylist.New()
	seen := map[string]bool{}
	for _, t := range a.transitions {
		for _, p := range transitionProductions(a, t) {
			if key := p.key(); !seen[key] {
				seen[key] = true
				prods.Add(p)
			}
		}
	}
	prods.Each(func(_ int, v interface{}) {
		p := v.(production)
		rb := b.LHS(p.lhs)
		for _, sym := range p.rhs {
			rb.AppendSymbol(sym)
		}
		rb.End()
	})
	g, err := b.Grammar()
	if err != nil {
		return nil, err
	}
	tracer().Infof("emitted %d productions over %d transitions", g.Size(), len(a.transitions))
	return g, nil
}

func resolveMode(a *Automaton, mode AcceptanceMode) (AcceptanceMode, error) {
	if mode != Unspecified {
		return mode, nil
	}
	switch len(a.accepting) {
	case 0:
		return EmptyStack, nil
	case 1:
		return FinalState, nil
	}
	return Unspecified, fmt.Errorf("automaton %s has %d accepting states: %w",
		a.Name, len(a.accepting), ErrAmbiguousAcceptance)
}

// transitionProductions emits the productions for one transition, in a
// deterministic order: intermediate-state tuples are enumerated like a
// base-|states| counter over the declaration order of states.
func transitionProductions(a *Automaton, t Transition) []production {
	k := len(t.Push)
	if k == 0 {
		// X is popped with nothing pushed; the automaton lands on t.To.
		return []production{{
			lhs: tripleName(t.From, t.Pop, t.To),
			rhs: inputSymbol(t),
		}}
	}
	var prods []production
	tuple := make([]int, k) // tuple[i] indexes the state after Push[i]
	for {
		rhs := inputSymbol(t)
		prev := t.To
		for i, y := range t.Push {
			next := a.states[tuple[i]]
			rhs = append(rhs, chomsky.N(tripleName(prev, y, next)))
			prev = next
		}
		prods = append(prods, production{
			lhs: tripleName(t.From, t.Pop, prev),
			rhs: rhs,
		})
		if !advance(tuple, len(a.states)) {
			break
		}
	}
	return prods
}

func inputSymbol(t Transition) []chomsky.Symbol {
	if t.IsEpsilonMove() {
		return nil
	}
	return []chomsky.Symbol{chomsky.T(t.Input)}
}

// advance increments a base-n odometer, returning false on wrap-around.
func advance(tuple []int, n int) bool {
	for i := len(tuple) - 1; i >= 0; i-- {
		tuple[i]++
		if tuple[i] < n {
			return true
		}
		tuple[i] = 0
	}
	return false
}
