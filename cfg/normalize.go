package cfg

import (
	"github.com/npillmayer/chomsky"
)

// This file implements the normalization pipeline: elimination of
// ε-productions, elimination of unit productions, and removal of useless
// symbols. Every stage takes a grammar and produces a new one; input
// grammars are never mutated.
//
// All closure sets (nullable, unit closure, generating, reachable) are
// computed by fixpoint iteration. A single scan is not enough: membership
// propagates through chains of non-terminals (A -> B C, B -> ε, C -> ε
// makes A nullable without A owning an ε-alternative). Each loop is bounded
// by the number of non-terminals and thus terminates.

// --- Symbol sets ------------------------------------------------------------

// SymbolSet is a set of symbols. The zero value is an empty set.
type SymbolSet map[chomsky.Symbol]struct{}

var exists = struct{}{}

func (set SymbolSet) add(sym chomsky.Symbol) SymbolSet {
	if set == nil {
		set = SymbolSet{}
	}
	set[sym] = exists
	return set
}

// Contains tests set membership.
func (set SymbolSet) Contains(sym chomsky.Symbol) bool {
	if set == nil {
		return false
	}
	_, ok := set[sym]
	return ok
}

// Size returns the number of symbols in the set.
func (set SymbolSet) Size() int {
	return len(set)
}

// --- ε-elimination ----------------------------------------------------------

// Nullable computes the set of nullable non-terminals of a grammar: the
// smallest set closed under "A is nullable if some alternative of A is ε or
// consists entirely of nullable non-terminals".
func Nullable(g *Grammar) SymbolSet {
	nullable := SymbolSet{}
	for changed := true; changed; {
		changed = false
		for _, A := range g.NonTerminals() {
			if nullable.Contains(A) {
				continue
			}
			for _, alt := range g.Rule(A.Name).Alternatives() {
				if allNullable(alt, nullable) {
					nullable.add(A)
					changed = true
					break
				}
			}
		}
	}
	tracer().Debugf("%d of %d non-terminals are nullable", nullable.Size(), len(g.rules))
	return nullable
}

// allNullable is true for ε and for sequences of nullable non-terminals.
func allNullable(alt RHS, nullable SymbolSet) bool {
	for _, sym := range alt {
		if sym.IsTerminal() || !nullable.Contains(sym) {
			return false
		}
	}
	return true
}

// EliminateEpsilon returns a grammar deriving exactly the same non-empty
// strings as g, but without ε-alternatives. If the start symbol of g is
// nullable, the resulting start symbol keeps a single ε-alternative, so the
// empty string stays in the language if it was derivable before.
//
// For every alternative, every subset of positions holding a nullable
// non-terminal is deleted in turn, and each resulting non-empty sequence
// becomes an alternative (deduplicated per rule).
func EliminateEpsilon(g *Grammar) *Grammar {
	nullable := Nullable(g)
	b := NewGrammarBuilder(g.Name)
	b.SetStart(g.start.Name)
	for _, r := range g.rules {
		b.Declare(r.LHS.Name)
		seen := map[string]bool{}
		for _, alt := range r.alts {
			if alt.IsEpsilon() {
				continue
			}
			for _, variant := range nullableVariants(alt, nullable) {
				if variant.IsEpsilon() {
					continue // a fully deleted RHS is not kept
				}
				key := variant.fingerprint()
				if seen[key] {
					continue
				}
				seen[key] = true
				rb := b.LHS(r.LHS.Name)
				for _, sym := range variant {
					rb.AppendSymbol(sym)
				}
				rb.End()
			}
		}
	}
	if nullable.Contains(g.start) {
		b.LHS(g.start.Name).Epsilon()
	}
	h, err := b.Grammar()
	if err != nil {
		panic("ε-elimination produced an invalid grammar: " + err.Error())
	}
	tracer().Infof("ε-elimination: %d -> %d productions", g.Size(), h.Size())
	return h
}

// nullableVariants enumerates the variants of an alternative obtained by
// deleting any subset of its nullable positions. The unchanged alternative
// comes first; variants follow in bitmask order, so output is
// deterministic.
func nullableVariants(alt RHS, nullable SymbolSet) []RHS {
	var positions []int
	for i, sym := range alt {
		if !sym.IsTerminal() && nullable.Contains(sym) {
			positions = append(positions, i)
		}
	}
	if len(positions) == 0 {
		return []RHS{alt}
	}
	variants := make([]RHS, 0, 1<<uint(len(positions)))
	for mask := 0; mask < 1<<uint(len(positions)); mask++ {
		deleted := map[int]bool{}
		for j, pos := range positions {
			if mask&(1<<uint(j)) != 0 {
				deleted[pos] = true
			}
		}
		var variant RHS
		for i, sym := range alt {
			if !deleted[i] {
				variant = append(variant, sym)
			}
		}
		variants = append(variants, variant)
	}
	return variants
}

// --- Unit elimination -------------------------------------------------------

// UnitClosure computes the non-terminals reachable from A by following zero
// or more unit productions, in breadth-first discovery order starting with
// A itself.
func UnitClosure(g *Grammar, A chomsky.Symbol) []chomsky.Symbol {
	closure := []chomsky.Symbol{A}
	inClosure := SymbolSet{}.add(A)
	for i := 0; i < len(closure); i++ { // closure grows while we scan it
		r := g.Rule(closure[i].Name)
		if r == nil {
			continue
		}
		for _, alt := range r.alts {
			if alt.IsUnit() && !inClosure.Contains(alt[0]) {
				inClosure.add(alt[0])
				closure = append(closure, alt[0])
			}
		}
	}
	return closure
}

// EliminateUnits returns a grammar without unit productions. For every
// non-terminal A, the unit closure of A is resolved: A receives the union
// of the non-unit alternatives of every member, deduplicated in discovery
// order. EliminateUnits expects an ε-eliminated grammar; an ε-alternative
// of the start symbol stays with the start symbol and is not propagated
// into other rules.
func EliminateUnits(g *Grammar) *Grammar {
	b := NewGrammarBuilder(g.Name)
	b.SetStart(g.start.Name)
	for _, r := range g.rules {
		b.Declare(r.LHS.Name)
		seen := map[string]bool{}
		for _, B := range UnitClosure(g, r.LHS) {
			for _, alt := range g.Rule(B.Name).Alternatives() {
				if alt.IsUnit() {
					continue
				}
				if alt.IsEpsilon() && r.LHS != g.start {
					continue
				}
				key := alt.fingerprint()
				if seen[key] {
					continue
				}
				seen[key] = true
				rb := b.LHS(r.LHS.Name)
				for _, sym := range alt {
					rb.AppendSymbol(sym)
				}
				rb.End()
			}
		}
	}
	h, err := b.Grammar()
	if err != nil {
		panic("unit elimination produced an invalid grammar: " + err.Error())
	}
	tracer().Infof("unit elimination: %d -> %d productions", g.Size(), h.Size())
	return h
}

// --- Useless symbols --------------------------------------------------------

// Generating computes the set of generating symbols of a grammar: every
// terminal, and every non-terminal with at least one alternative composed
// entirely of generating symbols.
func Generating(g *Grammar) SymbolSet {
	generating := SymbolSet{}
	for _, t := range g.Terminals() {
		generating.add(t)
	}
	for changed := true; changed; {
		changed = false
		for _, A := range g.NonTerminals() {
			if generating.Contains(A) {
				continue
			}
			for _, alt := range g.Rule(A.Name).Alternatives() {
				if allGenerating(alt, generating) {
					generating.add(A)
					changed = true
					break
				}
			}
		}
	}
	return generating
}

func allGenerating(alt RHS, generating SymbolSet) bool {
	for _, sym := range alt {
		if !generating.Contains(sym) {
			return false
		}
	}
	return true // ε counts as generating
}

// Reachable computes the set of symbols reachable from the start symbol:
// the start symbol is reachable, and every symbol mentioned in an
// alternative of a reachable non-terminal is reachable.
func Reachable(g *Grammar) SymbolSet {
	reachable := SymbolSet{}.add(g.start)
	for changed := true; changed; {
		changed = false
		for _, A := range g.NonTerminals() {
			if !reachable.Contains(A) {
				continue
			}
			for _, alt := range g.Rule(A.Name).Alternatives() {
				for _, sym := range alt {
					if !reachable.Contains(sym) {
						reachable.add(sym)
						changed = true
					}
				}
			}
		}
	}
	return reachable
}

// PruneUseless removes all symbols which are not both generating and
// reachable. Two passes run in a fixed order: first every non-generating
// non-terminal is removed together with every alternative mentioning one,
// then reachability is computed on the pruned grammar and unreachable
// non-terminals are removed. Running reachability first would retain
// non-terminals which only become unreachable once the generating pass has
// cut the alternatives leading to them.
//
// The start symbol always survives, even if it turns out non-generating
// (the grammar then derives the empty language).
func PruneUseless(g *Grammar) *Grammar {
	generating := Generating(g)
	b := NewGrammarBuilder(g.Name)
	b.SetStart(g.start.Name)
	for _, r := range g.rules {
		if !generating.Contains(r.LHS) && r.LHS != g.start {
			tracer().Debugf("pruning non-generating %s", r.LHS.Name)
			continue
		}
		b.Declare(r.LHS.Name)
		for _, alt := range r.alts {
			if !allGenerating(alt, generating) {
				continue
			}
			rb := b.LHS(r.LHS.Name)
			for _, sym := range alt {
				rb.AppendSymbol(sym)
			}
			rb.End()
		}
	}
	gen, err := b.Grammar()
	if err != nil {
		panic("generating pass produced an invalid grammar: " + err.Error())
	}
	reachable := Reachable(gen)
	b = NewGrammarBuilder(g.Name)
	b.SetStart(gen.start.Name)
	for _, r := range gen.rules {
		if !reachable.Contains(r.LHS) {
			tracer().Debugf("pruning unreachable %s", r.LHS.Name)
			continue
		}
		b.Declare(r.LHS.Name)
		for _, alt := range r.alts {
			rb := b.LHS(r.LHS.Name)
			for _, sym := range alt {
				rb.AppendSymbol(sym)
			}
			rb.End()
		}
	}
	h, err := b.Grammar()
	if err != nil {
		panic("reachability pass produced an invalid grammar: " + err.Error())
	}
	tracer().Infof("useless-symbol removal: %d -> %d productions", g.Size(), h.Size())
	return h
}

// --- Pipeline ---------------------------------------------------------------

// Normalize runs the three elimination stages in their mandated order:
//
//    PruneUseless(EliminateUnits(EliminateEpsilon(g)))
//
// The result contains no ε-alternative (except possibly for the start
// symbol), no unit production, and no useless symbol. Normalize is
// idempotent: a grammar already in this shape is a fixed point of every
// stage.
func Normalize(g *Grammar) *Grammar {
	tracer().Infof("normalizing grammar %s with %d productions", g.Name, g.Size())
	return PruneUseless(EliminateUnits(EliminateEpsilon(g)))
}
