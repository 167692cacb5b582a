package pda

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/chomsky"
)

// Validation errors. Errors returned from AutomatonBuilder.Automaton() and
// from Convert wrap one of these and may be tested with errors.Is.
var (
	// ErrNoStartState flags an automaton without start state or without
	// start stack symbol.
	ErrNoStartState = errors.New("no start state")

	// ErrUndefinedSymbol flags a transition referencing an undeclared
	// state, input symbol or stack symbol.
	ErrUndefinedSymbol = errors.New("undefined symbol")

	// ErrAmbiguousAcceptance flags a conversion call which left the
	// acceptance mode unspecified although the automaton has more than one
	// accepting state.
	ErrAmbiguousAcceptance = errors.New("ambiguous acceptance mode")
)

// --- Transitions ------------------------------------------------------------

// Transition is one move of a pushdown automaton: in state From, reading
// Input (or nothing for an ε-move), with Pop on top of the stack, the
// automaton changes to state To and replaces the stack top by Push. The
// leftmost Push symbol becomes the new stack top; an empty Push is a net
// pop.
type Transition struct {
	From  string
	Input string // "" denotes an ε-move
	Pop   string
	To    string
	Push  []string
}

// IsEpsilonMove is true for transitions which consume no input.
func (t Transition) IsEpsilonMove() bool {
	return t.Input == ""
}

func (t Transition) String() string {
	input := t.Input
	if input == "" {
		input = chomsky.EpsilonLiteral
	}
	push := strings.Join(t.Push, " ")
	if push == "" {
		push = chomsky.EpsilonLiteral
	}
	return fmt.Sprintf("(%s,%s,%s) -> (%s,%s)", t.From, input, t.Pop, t.To, push)
}

// --- Automata ---------------------------------------------------------------

// Automaton is a pushdown automaton. Automata are constructed by an
// AutomatonBuilder and are read-only afterwards. All declaration order is
// preserved, so every enumeration over states or transitions is
// deterministic.
type Automaton struct {
	Name        string
	states      []string
	inputs      []string
	stack       []string
	transitions []Transition
	start       string
	startStack  string
	accepting   []string
}

// States returns the states in declaration order.
func (a *Automaton) States() []string {
	return a.states
}

// Inputs returns the input alphabet in declaration order.
func (a *Automaton) Inputs() []string {
	return a.inputs
}

// StackSymbols returns the stack alphabet in declaration order.
func (a *Automaton) StackSymbols() []string {
	return a.stack
}

// Transitions returns the transition relation in declaration order.
func (a *Automaton) Transitions() []Transition {
	return a.transitions
}

// Start returns the start state.
func (a *Automaton) Start() string {
	return a.start
}

// StartStack returns the initial stack symbol.
func (a *Automaton) StartStack() string {
	return a.startStack
}

// Accepting returns the accepting states in declaration order.
func (a *Automaton) Accepting() []string {
	return a.accepting
}

// Dump is a debugging helper, tracing the automaton at debug level.
func (a *Automaton) Dump() {
	tracer().Debugf("--- automaton %s ---", a.Name)
	tracer().Debugf("states = %v, start = %s", a.states, a.start)
	tracer().Debugf("stack alphabet = %v, bottom = %s", a.stack, a.startStack)
	tracer().Debugf("accepting = %v", a.accepting)
	for i, t := range a.transitions {
		tracer().Debugf("%3d: %s", i, t)
	}
	tracer().Debugf("--------------------")
}

// --- Automaton builder ------------------------------------------------------

// AutomatonBuilder is a builder object for pushdown automata. Clients
// declare the alphabets, add transitions via Edge(…), and finally call
// Automaton(), which validates and freezes the result.
type AutomatonBuilder struct {
	a Automaton
}

// NewAutomatonBuilder gets a new automaton builder, given the name of the
// automaton to build.
func NewAutomatonBuilder(name string) *AutomatonBuilder {
	return &AutomatonBuilder{a: Automaton{Name: name}}
}

// States declares states.
func (ab *AutomatonBuilder) States(names ...string) *AutomatonBuilder {
	ab.a.states = append(ab.a.states, names...)
	return ab
}

// Inputs declares input symbols. The ε-move marker is not an input symbol
// and must not be declared.
func (ab *AutomatonBuilder) Inputs(names ...string) *AutomatonBuilder {
	ab.a.inputs = append(ab.a.inputs, names...)
	return ab
}

// StackSymbols declares stack symbols.
func (ab *AutomatonBuilder) StackSymbols(names ...string) *AutomatonBuilder {
	ab.a.stack = append(ab.a.stack, names...)
	return ab
}

// SetStart designates the start state and the initial stack symbol.
func (ab *AutomatonBuilder) SetStart(state, stackSymbol string) *AutomatonBuilder {
	ab.a.start = state
	ab.a.startStack = stackSymbol
	return ab
}

// Final declares accepting states.
func (ab *AutomatonBuilder) Final(states ...string) *AutomatonBuilder {
	ab.a.accepting = append(ab.a.accepting, states...)
	return ab
}

// Edge starts a transition (from, input, pop). An empty input (or the ε
// literal) denotes an ε-move. Finish the transition with To.
func (ab *AutomatonBuilder) Edge(from, input, pop string) *EdgeBuilder {
	if input == chomsky.EpsilonLiteral {
		input = ""
	}
	return &EdgeBuilder{ab: ab, t: Transition{From: from, Input: input, Pop: pop}}
}

// EdgeBuilder is a builder type for transitions.
type EdgeBuilder struct {
	ab *AutomatonBuilder
	t  Transition
}

// To finishes the transition: the automaton moves to the given state and
// replaces the stack top by push (leftmost symbol topmost). No push symbols
// make the transition a net pop.
func (eb *EdgeBuilder) To(state string, push ...string) *AutomatonBuilder {
	eb.t.To = state
	eb.t.Push = push
	eb.ab.a.transitions = append(eb.ab.a.transitions, eb.t)
	return eb.ab
}

// Automaton validates the declarations added so far and returns the
// finished automaton. It reports ErrNoStartState for a missing start state
// or start stack symbol, and ErrUndefinedSymbol for any transition or
// acceptance declaration referencing an undeclared state or symbol. All
// violations are collected before failing.
func (ab *AutomatonBuilder) Automaton() (*Automaton, error) {
	a := ab.a
	if a.start == "" || a.startStack == "" {
		return nil, fmt.Errorf("automaton %s: %w", a.Name, ErrNoStartState)
	}
	states := stringSet(a.states)
	inputs := stringSet(a.inputs)
	stack := stringSet(a.stack)
	var bad []string
	complain := func(format string, args ...interface{}) {
		bad = append(bad, fmt.Sprintf(format, args...))
	}
	if !states[a.start] {
		complain("start state %q", a.start)
	}
	if !stack[a.startStack] {
		complain("start stack symbol %q", a.startStack)
	}
	for _, f := range a.accepting {
		if !states[f] {
			complain("accepting state %q", f)
		}
	}
	for i, t := range a.transitions {
		if !states[t.From] {
			complain("state %q in transition %d", t.From, i)
		}
		if !states[t.To] {
			complain("state %q in transition %d", t.To, i)
		}
		if !t.IsEpsilonMove() && !inputs[t.Input] {
			complain("input %q in transition %d", t.Input, i)
		}
		if !stack[t.Pop] {
			complain("stack symbol %q in transition %d", t.Pop, i)
		}
		for _, y := range t.Push {
			if !stack[y] {
				complain("stack symbol %q in transition %d", y, i)
			}
		}
	}
	if len(bad) > 0 {
		return nil, fmt.Errorf("%s: %w", strings.Join(bad, ", "), ErrUndefinedSymbol)
	}
	tracer().Debugf("automaton %s has %d states, %d transitions", a.Name,
		len(a.states), len(a.transitions))
	return &a, nil
}

func stringSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}
