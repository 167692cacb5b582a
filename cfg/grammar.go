package cfg

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/npillmayer/chomsky"
)

// Validation errors. Errors returned from GrammarBuilder.Grammar() wrap one
// of these and may be tested with errors.Is.
var (
	// ErrNoStartSymbol flags a grammar without productions or without a
	// designated start symbol.
	ErrNoStartSymbol = errors.New("no start symbol")

	// ErrUndefinedSymbol flags a right-hand side referencing a non-terminal
	// which owns no rule.
	ErrUndefinedSymbol = errors.New("undefined symbol")
)

// --- Right-hand sides -------------------------------------------------------

// RHS is one alternative of a production: a finite sequence of symbols.
// The empty sequence stands for ε.
type RHS []chomsky.Symbol

// IsEpsilon is true for the empty right-hand side.
func (rhs RHS) IsEpsilon() bool {
	return len(rhs) == 0
}

// IsUnit is true for a right-hand side consisting of exactly one
// non-terminal.
func (rhs RHS) IsUnit() bool {
	return len(rhs) == 1 && !rhs[0].IsTerminal()
}

// Eq compares two right-hand sides symbol by symbol.
func (rhs RHS) Eq(other RHS) bool {
	if len(rhs) != len(other) {
		return false
	}
	for i, sym := range rhs {
		if sym != other[i] {
			return false
		}
	}
	return true
}

func (rhs RHS) String() string {
	if rhs.IsEpsilon() {
		return chomsky.EpsilonLiteral
	}
	var b strings.Builder
	for i, sym := range rhs {
		if i > 0 {
			b.WriteRune(' ')
		}
		b.WriteString(sym.String())
	}
	return b.String()
}

// rhsImage is the canonical shape we feed to structhash.
type rhsImage struct {
	Syms []chomsky.Symbol
}

// fingerprint returns a hash key for an RHS, used for deduplication of
// alternatives during normalization.
func (rhs RHS) fingerprint() string {
	return fmt.Sprintf("%x", structhash.Md5(rhsImage{Syms: rhs}, 1))
}

// --- Rules ------------------------------------------------------------------

// Rule collects all alternatives for one non-terminal. Alternatives keep
// their insertion order; output depending on it is therefore reproducible.
type Rule struct {
	LHS  chomsky.Symbol
	alts []RHS
}

// Alternatives returns the ordered alternatives of this rule. Callers must
// treat the returned slice as read-only.
func (r *Rule) Alternatives() []RHS {
	return r.alts
}

// IsEmpty is true for a rule without alternatives. Such rules may occur as
// intermediate results of normalization stages; the useless-symbol pruner
// removes them.
func (r *Rule) IsEmpty() bool {
	return len(r.alts) == 0
}

func (r *Rule) String() string {
	var b strings.Builder
	b.WriteString(r.LHS.Name)
	b.WriteString(" -> ")
	for i, alt := range r.alts {
		if i > 0 {
			b.WriteString(" | ")
		}
		b.WriteString(alt.String())
	}
	return b.String()
}

// --- Grammars ---------------------------------------------------------------

// Grammar is a context-free grammar: non-terminals with their production
// rules, an implicit terminal alphabet, and a start symbol. Grammars are
// constructed by a GrammarBuilder (or by a normalization stage) and are
// read-only afterwards: every transformation produces a new Grammar value.
type Grammar struct {
	Name  string // a grammar has a name, useful for debugging output
	rules []*Rule
	index map[string]int // rule index by non-terminal name
	start chomsky.Symbol
}

// Start returns the start symbol.
func (g *Grammar) Start() chomsky.Symbol {
	return g.start
}

// Rule returns the rule for a non-terminal, or nil if the grammar owns no
// rule for it.
func (g *Grammar) Rule(name string) *Rule {
	if inx, ok := g.index[name]; ok {
		return g.rules[inx]
	}
	return nil
}

// NonTerminals returns all non-terminals in rule (insertion) order.
func (g *Grammar) NonTerminals() []chomsky.Symbol {
	nts := make([]chomsky.Symbol, len(g.rules))
	for i, r := range g.rules {
		nts[i] = r.LHS
	}
	return nts
}

// Terminals returns the terminal alphabet of the grammar, i.e. every
// terminal mentioned in some right-hand side, in lexicographic order.
func (g *Grammar) Terminals() []chomsky.Symbol {
	set := treeset.NewWithStringComparator()
	for _, r := range g.rules {
		for _, alt := range r.alts {
			for _, sym := range alt {
				if sym.IsTerminal() {
					set.Add(sym.Name)
				}
			}
		}
	}
	terms := make([]chomsky.Symbol, 0, set.Size())
	for _, name := range set.Values() {
		terms = append(terms, chomsky.T(name.(string)))
	}
	return terms
}

// EachRule iterates over all rules in insertion order, calling a mapper
// function for each one. Iteration stops early if the mapper returns a
// non-nil value, which is then returned to the caller.
func (g *Grammar) EachRule(mapper func(r *Rule) interface{}) interface{} {
	for _, r := range g.rules {
		if v := mapper(r); v != nil {
			return v
		}
	}
	return nil
}

// Size returns the overall number of productions, i.e. the sum of
// alternative counts over all rules.
func (g *Grammar) Size() int {
	n := 0
	for _, r := range g.rules {
		n += len(r.alts)
	}
	return n
}

func (g *Grammar) String() string {
	var b strings.Builder
	for _, r := range g.rules {
		b.WriteString(r.String())
		b.WriteRune('\n')
	}
	return b.String()
}

// Dump is a debugging helper, tracing the grammar's rules at debug level.
func (g *Grammar) Dump() {
	tracer().Debugf("--- grammar %s, start = %s ---", g.Name, g.start.Name)
	for i, r := range g.rules {
		tracer().Debugf("%3d: %s", i, r)
	}
	tracer().Debugf("------------------------------")
}

// grammarImage is the canonical shape we feed to structhash for
// fingerprinting. Alternatives are sorted, making the fingerprint
// insensitive to alternative order.
type grammarImage struct {
	Start string
	Rules []ruleImage
}

type ruleImage struct {
	LHS  string
	Alts []string
}

// Fingerprint returns a hash over the production set of the grammar,
// insensitive to the order of alternatives within a rule. Two normalization
// runs over the same input produce equal fingerprints.
func (g *Grammar) Fingerprint() string {
	img := grammarImage{Start: g.start.Name}
	for _, r := range g.rules {
		ri := ruleImage{LHS: r.LHS.Name}
		for _, alt := range r.alts {
			ri.Alts = append(ri.Alts, alt.String())
		}
		sortStrings(ri.Alts)
		img.Rules = append(img.Rules, ri)
	}
	return fmt.Sprintf("%x", structhash.Md5(img, 1))
}

func sortStrings(x []string) {
	for i := 1; i < len(x); i++ { // insertion sort, slices are tiny
		for j := i; j > 0 && x[j] < x[j-1]; j-- {
			x[j], x[j-1] = x[j-1], x[j]
		}
	}
}

// --- Grammar builder --------------------------------------------------------

// GrammarBuilder is a builder object for grammars. Clients add rules via
// LHS(…) and finally call Grammar(), which validates and freezes the result.
type GrammarBuilder struct {
	name  string
	rules []*Rule
	index map[string]int
	start string
}

// NewGrammarBuilder gets a new grammar builder, given the name of the
// grammar to build.
func NewGrammarBuilder(name string) *GrammarBuilder {
	return &GrammarBuilder{
		name:  name,
		index: make(map[string]int),
	}
}

func (gb *GrammarBuilder) ruleFor(name string) *Rule {
	if inx, ok := gb.index[name]; ok {
		return gb.rules[inx]
	}
	r := &Rule{LHS: chomsky.N(name)}
	gb.index[name] = len(gb.rules)
	gb.rules = append(gb.rules, r)
	return r
}

// Declare registers a non-terminal without adding an alternative for it.
// Normalization stages and the PDA converter use this for non-terminals
// which (transiently) own no productions.
func (gb *GrammarBuilder) Declare(name string) *GrammarBuilder {
	gb.ruleFor(name)
	return gb
}

// SetStart designates the start symbol. If never called, the first
// left-hand side becomes the start symbol.
func (gb *GrammarBuilder) SetStart(name string) *GrammarBuilder {
	gb.start = name
	return gb
}

// LHS starts a rule for a non-terminal, returning a builder for one
// right-hand side alternative. Finish the alternative with End() or
// Epsilon().
func (gb *GrammarBuilder) LHS(name string) *RuleBuilder {
	return &RuleBuilder{gb: gb, lhs: name}
}

// Grammar validates the rules added so far and returns the finished
// grammar. It reports ErrNoStartSymbol for an empty grammar or a start
// symbol without rule, and ErrUndefinedSymbol if some right-hand side
// references a non-terminal which owns no rule. All violations are
// collected before failing.
func (gb *GrammarBuilder) Grammar() (*Grammar, error) {
	if len(gb.rules) == 0 {
		return nil, fmt.Errorf("grammar %s has no productions: %w", gb.name, ErrNoStartSymbol)
	}
	start := gb.start
	if start == "" {
		start = gb.rules[0].LHS.Name
	}
	if _, ok := gb.index[start]; !ok {
		return nil, fmt.Errorf("start symbol %q owns no rule: %w", start, ErrNoStartSymbol)
	}
	var missing []string
	seen := map[string]bool{}
	for _, r := range gb.rules {
		for _, alt := range r.alts {
			for _, sym := range alt {
				if sym.IsTerminal() {
					continue
				}
				if _, ok := gb.index[sym.Name]; !ok && !seen[sym.Name] {
					seen[sym.Name] = true
					missing = append(missing, fmt.Sprintf("%q in rule for %q", sym.Name, r.LHS.Name))
				}
			}
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%s: %w", strings.Join(missing, ", "), ErrUndefinedSymbol)
	}
	g := &Grammar{
		Name:  gb.name,
		rules: gb.rules,
		index: gb.index,
		start: chomsky.N(start),
	}
	tracer().Debugf("grammar %s has %d rules", g.Name, len(g.rules))
	return g, nil
}

// RuleBuilder is a builder type for right-hand sides of grammar rules.
type RuleBuilder struct {
	gb   *GrammarBuilder
	lhs  string
	syms []chomsky.Symbol
}

// N appends a non-terminal to the right-hand side under construction.
func (rb *RuleBuilder) N(name string) *RuleBuilder {
	rb.syms = append(rb.syms, chomsky.N(name))
	return rb
}

// T appends a terminal to the right-hand side under construction.
func (rb *RuleBuilder) T(name string) *RuleBuilder {
	rb.syms = append(rb.syms, chomsky.T(name))
	return rb
}

// AppendSymbol appends a ready-made symbol to the right-hand side under
// construction.
func (rb *RuleBuilder) AppendSymbol(sym chomsky.Symbol) *RuleBuilder {
	rb.syms = append(rb.syms, sym)
	return rb
}

// End finishes the right-hand side and adds it as an alternative for the
// rule's non-terminal.
func (rb *RuleBuilder) End() *GrammarBuilder {
	r := rb.gb.ruleFor(rb.lhs)
	r.alts = append(r.alts, RHS(rb.syms))
	return rb.gb
}

// Epsilon finishes the right-hand side as an ε-alternative. Symbols
// appended beforehand are discarded.
func (rb *RuleBuilder) Epsilon() *GrammarBuilder {
	r := rb.gb.ruleFor(rb.lhs)
	r.alts = append(r.alts, RHS{})
	return rb.gb
}
