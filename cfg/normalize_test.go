package cfg

import (
	"testing"

	"github.com/npillmayer/chomsky"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// hasAlt checks for an alternative of a rule, given as a string in the
// notation of RHS.String().
func hasAlt(g *Grammar, lhs string, want string) bool {
	r := g.Rule(lhs)
	if r == nil {
		return false
	}
	for _, alt := range r.Alternatives() {
		if alt.String() == want {
			return true
		}
	}
	return false
}

func TestNullable1(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomsky.cfg")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.LHS("A").N("B").N("C").End() // A  ->  B C
	b.LHS("B").Epsilon()           // B  ->  ε
	b.LHS("C").Epsilon()           // C  ->  ε
	g, err := b.Grammar()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	nullable := Nullable(g)
	// A has no ε-alternative of its own; nullability must propagate
	// through B and C via fixpoint iteration.
	for _, name := range []string{"A", "B", "C"} {
		if !nullable.Contains(chomsky.N(name)) {
			t.Errorf("expected %s to be nullable", name)
		}
	}
}

func TestEpsilon1(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomsky.cfg")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.LHS("S").N("A").T("b").N("A").End() // S  ->  A b A
	b.LHS("A").T("a").End()               // A  ->  a
	b.LHS("A").Epsilon()                  // A  ->  ε
	g, _ := b.Grammar()
	h := EliminateEpsilon(g)
	for _, want := range []string{"A 'b' A", "'b' A", "A 'b'", "'b'"} {
		if !hasAlt(h, "S", want) {
			t.Errorf("expected S to own alternative %s", want)
		}
	}
	if len(h.Rule("S").Alternatives()) != 4 {
		t.Errorf("expected 4 alternatives for S, got %d", len(h.Rule("S").Alternatives()))
	}
	h.EachRule(func(r *Rule) interface{} {
		for _, alt := range r.Alternatives() {
			if alt.IsEpsilon() {
				t.Errorf("expected no ε-alternative, %s owns one", r.LHS.Name)
			}
		}
		return nil
	})
}

func TestEpsilonStartException(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomsky.cfg")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.LHS("S").N("A").N("B").End() // S  ->  A B
	b.LHS("A").T("a").End()        // A  ->  a
	b.LHS("A").Epsilon()           // A  ->  ε
	b.LHS("B").Epsilon()           // B  ->  ε
	g, _ := b.Grammar()
	h := EliminateEpsilon(g)
	// S is nullable (A B both nullable), so the empty string was derivable
	// and the start symbol keeps a single ε-alternative.
	if !hasAlt(h, "S", chomsky.EpsilonLiteral) {
		t.Errorf("expected start symbol to keep its ε-alternative")
	}
	if hasAlt(h, "B", chomsky.EpsilonLiteral) {
		t.Errorf("expected B to lose its ε-alternative")
	}
	if !hasAlt(h, "S", "A") {
		t.Errorf("expected S to own alternative A (B deleted)")
	}
}

func TestUnitClosure1(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomsky.cfg")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.LHS("A").N("B").End() // A  ->  B
	b.LHS("B").N("C").End() // B  ->  C
	b.LHS("C").T("d").End() // C  ->  d
	g, _ := b.Grammar()
	closure := UnitClosure(g, chomsky.N("A"))
	if len(closure) != 3 {
		t.Fatalf("expected closure of size 3, got %d", len(closure))
	}
	for i, name := range []string{"A", "B", "C"} { // discovery order
		if closure[i].Name != name {
			t.Errorf("expected closure[%d] = %s, got %s", i, name, closure[i].Name)
		}
	}
}

func TestUnit1(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomsky.cfg")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.LHS("A").N("B").End() // A  ->  B
	b.LHS("B").N("C").End() // B  ->  C
	b.LHS("C").T("d").End() // C  ->  d
	g, _ := b.Grammar()
	h := EliminateUnits(g)
	// Transitive resolution in one call: A -> d, not merely A -> C.
	if !hasAlt(h, "A", "'d'") {
		t.Errorf("expected A -> d after unit elimination")
	}
	h.EachRule(func(r *Rule) interface{} {
		for _, alt := range r.Alternatives() {
			if alt.IsUnit() {
				t.Errorf("expected no unit production, %s owns %s", r.LHS.Name, alt)
			}
		}
		return nil
	})
}

func TestPruneOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomsky.cfg")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.LHS("S").T("a").End()        // S  ->  a
	b.LHS("S").N("X").End()        // S  ->  X
	b.LHS("X").T("b").N("X").End() // X  ->  b X   (reachable, not generating)
	b.LHS("Y").T("y").End()        // Y  ->  y     (generating, not reachable)
	g, _ := b.Grammar()
	h := PruneUseless(g)
	// X is reachable but non-generating, Y is generating but unreachable.
	// Both must go, which requires the generating pass to run strictly
	// before the reachable pass.
	if h.Rule("X") != nil {
		t.Errorf("expected X to be pruned")
	}
	if h.Rule("Y") != nil {
		t.Errorf("expected Y to be pruned")
	}
	if hasAlt(h, "S", "X") {
		t.Errorf("expected alternative S -> X to be pruned")
	}
	if !hasAlt(h, "S", "'a'") {
		t.Errorf("expected S -> a to survive")
	}
}

func TestNormalizeInvariants(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomsky.cfg")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.LHS("S").N("A").N("B").End() // S  ->  A B
	b.LHS("S").N("C").End()        // S  ->  C
	b.LHS("A").T("a").End()        // A  ->  a
	b.LHS("A").Epsilon()           // A  ->  ε
	b.LHS("B").N("A").End()        // B  ->  A
	b.LHS("C").N("C").T("c").End() // C  ->  C c  (not generating)
	b.LHS("D").T("d").End()        // D  ->  d    (not reachable)
	g, _ := b.Grammar()
	h := Normalize(g)
	generating := Generating(h)
	reachable := Reachable(h)
	h.EachRule(func(r *Rule) interface{} {
		if !generating.Contains(r.LHS) || !reachable.Contains(r.LHS) {
			t.Errorf("%s is useless but survived", r.LHS.Name)
		}
		for _, alt := range r.Alternatives() {
			if alt.IsEpsilon() && r.LHS != h.Start() {
				t.Errorf("ε-alternative outside the start symbol: %s", r)
			}
			if alt.IsUnit() {
				t.Errorf("unit production survived: %s -> %s", r.LHS.Name, alt)
			}
			for _, sym := range alt {
				if !generating.Contains(sym) || !reachable.Contains(sym) {
					t.Errorf("useless symbol %s mentioned in %s", sym, r)
				}
			}
		}
		return nil
	})
	if h.Rule("C") != nil || h.Rule("D") != nil {
		t.Errorf("expected C and D to be pruned")
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomsky.cfg")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.LHS("S").N("A").T("b").N("A").End()
	b.LHS("S").N("B").End()
	b.LHS("A").T("a").End()
	b.LHS("A").Epsilon()
	b.LHS("B").N("A").End()
	b.LHS("X").N("X").End() // useless
	g, _ := b.Grammar()
	h1 := Normalize(g)
	h2 := Normalize(h1)
	if h1.Fingerprint() != h2.Fingerprint() {
		t.Errorf("expected Normalize to be idempotent:\n%s\nvs\n%s", h1, h2)
	}
}
