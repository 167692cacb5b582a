package pda

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/chomsky"
	"github.com/npillmayer/chomsky/cfg"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// derive returns every terminal string of length ≤ maxLen derivable from
// the start symbol, by breadth-first expansion of the leftmost
// non-terminal of sentential forms. Forms which can no longer stay within
// maxLen are pruned: every terminal and every non-nullable non-terminal
// contributes at least one symbol to any derived string.
func derive(t *testing.T, g *cfg.Grammar, maxLen int) map[string]bool {
	nullable := cfg.Nullable(g)
	minLen := func(form []chomsky.Symbol) int {
		n := 0
		for _, sym := range form {
			if sym.IsTerminal() || !nullable.Contains(sym) {
				n++
			}
		}
		return n
	}
	formKey := func(form []chomsky.Symbol) string {
		var b strings.Builder
		for _, sym := range form {
			b.WriteString(sym.String())
			b.WriteRune(' ')
		}
		return b.String()
	}
	results := map[string]bool{}
	visited := map[string]bool{}
	queue := [][]chomsky.Symbol{{g.Start()}}
	for len(queue) > 0 {
		form := queue[0]
		queue = queue[1:]
		leftmost := -1
		for i, sym := range form {
			if !sym.IsTerminal() {
				leftmost = i
				break
			}
		}
		if leftmost < 0 { // terminal-only form
			var b strings.Builder
			for _, sym := range form {
				b.WriteString(sym.Name)
			}
			if len(b.String()) <= maxLen {
				results[b.String()] = true
			}
			continue
		}
		r := g.Rule(form[leftmost].Name)
		if r == nil {
			t.Fatalf("no rule for non-terminal %s", form[leftmost].Name)
		}
		for _, alt := range r.Alternatives() {
			next := make([]chomsky.Symbol, 0, len(form)+len(alt)-1)
			next = append(next, form[:leftmost]...)
			next = append(next, alt...)
			next = append(next, form[leftmost+1:]...)
			if minLen(next) > maxLen || len(next) > 4*maxLen+8 {
				continue
			}
			if key := formKey(next); !visited[key] {
				visited[key] = true
				queue = append(queue, next)
			}
		}
	}
	return results
}

func TestConvertPop(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomsky.pda")
	defer teardown()
	//
	b := NewAutomatonBuilder("P")
	b.States("q0", "q1")
	b.Inputs("a")
	b.StackSymbols("Z")
	b.SetStart("q0", "Z")
	b.Final("q1")
	b.Edge("q0", "a", "Z").To("q1") // (q0,a,Z) -> (q1,ε)
	a, _ := b.Automaton()
	g, err := Convert(a, FinalState)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Start().Name != "[q0,Z,q1]" {
		t.Errorf("expected start symbol [q0,Z,q1], got %s", g.Start().Name)
	}
	r := g.Rule("[q0,Z,q1]")
	if r == nil || len(r.Alternatives()) != 1 || r.Alternatives()[0].String() != "'a'" {
		t.Errorf("expected single production [q0,Z,q1] -> a")
	}
}

func TestConvertPushEnumeratesLandingStates(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomsky.pda")
	defer teardown()
	//
	b := NewAutomatonBuilder("P")
	b.States("q0", "q1")
	b.Inputs("a")
	b.StackSymbols("Z")
	b.SetStart("q0", "Z")
	b.Final("q1")
	b.Edge("q0", "a", "Z").To("q1", "Z") // single push, k = 1
	a, _ := b.Automaton()
	g, err := Convert(a, FinalState)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Even for k = 1 every landing state q yields its own production
	// [q0,Z,q] -> a [q1,Z,q].
	for _, q := range []string{"q0", "q1"} {
		lhs := "[q0,Z," + q + "]"
		want := "'a' [q1,Z," + q + "]"
		r := g.Rule(lhs)
		if r == nil {
			t.Fatalf("expected a rule for %s", lhs)
		}
		found := false
		for _, alt := range r.Alternatives() {
			if alt.String() == want {
				found = true
			}
		}
		if !found {
			t.Errorf("expected production %s -> %s", lhs, want)
		}
	}
}

func TestConvertAmbiguousAcceptance(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomsky.pda")
	defer teardown()
	//
	b := NewAutomatonBuilder("P")
	b.States("q0", "q1", "q2")
	b.Inputs("a")
	b.StackSymbols("Z")
	b.SetStart("q0", "Z")
	b.Final("q1", "q2")
	b.Edge("q0", "a", "Z").To("q1")
	a, _ := b.Automaton()
	if _, err := Convert(a, Unspecified); !errors.Is(err, ErrAmbiguousAcceptance) {
		t.Errorf("expected ErrAmbiguousAcceptance, got %v", err)
	}
	// With an explicit mode the same automaton converts fine, via a fresh
	// start symbol holding one alternative per accepting state.
	g, err := Convert(a, FinalState)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := g.Rule(g.Start().Name)
	if r == nil || len(r.Alternatives()) != 2 {
		t.Errorf("expected fresh start symbol with 2 alternatives")
	}
}

// A PDA for balanced parentheses, accepting by empty stack:
//
//    (q,'(',Z) -> (q,PZ)
//    (q,'(',P) -> (q,PP)
//    (q,')',P) -> (q,ε)
//    (q,ε,Z)   -> (q,ε)
//
func balancedParens(t *testing.T) *Automaton {
	b := NewAutomatonBuilder("parens")
	b.States("q")
	b.Inputs("(", ")")
	b.StackSymbols("Z", "P")
	b.SetStart("q", "Z")
	b.Edge("q", "(", "Z").To("q", "P", "Z")
	b.Edge("q", "(", "P").To("q", "P", "P")
	b.Edge("q", ")", "P").To("q")
	b.Edge("q", "ε", "Z").To("q")
	a, err := b.Automaton()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return a
}

func isBalanced(s string) bool {
	depth := 0
	for _, ch := range s {
		if ch == '(' {
			depth++
		} else if depth == 0 {
			return false
		} else {
			depth--
		}
	}
	return depth == 0
}

func TestConvertBalancedParens(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomsky.pda")
	defer teardown()
	//
	g, err := Convert(balancedParens(t), EmptyStack)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	g.Dump()
	derived := derive(t, g, 4)
	for _, want := range []string{"", "()", "(())", "()()"} {
		if !derived[want] {
			t.Errorf("expected %q to be derivable", want)
		}
	}
	for s := range derived {
		if !isBalanced(s) {
			t.Errorf("derived unbalanced string %q", s)
		}
	}
}

func TestConvertThenNormalize(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomsky.pda")
	defer teardown()
	//
	g, err := Convert(balancedParens(t), EmptyStack)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h := cfg.Normalize(g)
	h.EachRule(func(r *cfg.Rule) interface{} {
		for _, alt := range r.Alternatives() {
			if alt.IsEpsilon() && r.LHS != h.Start() {
				t.Errorf("ε-alternative outside the start symbol: %s", r)
			}
			if alt.IsUnit() {
				t.Errorf("unit production survived: %s", r)
			}
		}
		return nil
	})
	before := derive(t, g, 4)
	after := derive(t, h, 4)
	for s := range before {
		if !after[s] {
			t.Errorf("normalization lost %q", s)
		}
	}
	for s := range after {
		if !before[s] {
			t.Errorf("normalization gained %q", s)
		}
	}
}
