package pda

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestAutomatonBuilder1(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomsky.pda")
	defer teardown()
	//
	b := NewAutomatonBuilder("P")
	b.States("q0", "q1")
	b.Inputs("a")
	b.StackSymbols("Z", "A")
	b.SetStart("q0", "Z")
	b.Final("q1")
	b.Edge("q0", "a", "Z").To("q0", "A", "Z") // (q0,a,Z) -> (q0,AZ)
	b.Edge("q0", "ε", "A").To("q1")           // ε-move, net pop
	a, err := b.Automaton()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a.Transitions()) != 2 {
		t.Fatalf("expected 2 transitions, got %d", len(a.Transitions()))
	}
	if !a.Transitions()[1].IsEpsilonMove() {
		t.Errorf("expected transition 1 to be an ε-move")
	}
	if len(a.Transitions()[1].Push) != 0 {
		t.Errorf("expected transition 1 to be a net pop")
	}
	a.Dump()
}

func TestAutomatonBuilderUndefined(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomsky.pda")
	defer teardown()
	//
	b := NewAutomatonBuilder("P")
	b.States("q0")
	b.Inputs("a")
	b.StackSymbols("Z")
	b.SetStart("q0", "Z")
	b.Edge("q0", "a", "Z").To("q7", "B") // q7 and B undeclared
	_, err := b.Automaton()
	if !errors.Is(err, ErrUndefinedSymbol) {
		t.Errorf("expected ErrUndefinedSymbol, got %v", err)
	}
}

func TestAutomatonBuilderNoStart(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomsky.pda")
	defer teardown()
	//
	b := NewAutomatonBuilder("P")
	b.States("q0")
	b.StackSymbols("Z")
	if _, err := b.Automaton(); !errors.Is(err, ErrNoStartState) {
		t.Errorf("expected ErrNoStartState, got %v", err)
	}
}
