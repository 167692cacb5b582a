package syntax

import (
	"errors"
	"fmt"

	"github.com/npillmayer/chomsky/cfg"
	"github.com/npillmayer/chomsky/pda"
)

// ErrMalformedEpsilonUsage flags an ε marker mixed with other symbols in
// one alternative. ε stands for the empty right-hand side and can only
// appear on its own.
var ErrMalformedEpsilonUsage = errors.New("ε mixed with other symbols")

// ParseGrammar reads a grammar in rule-per-line notation. The left-hand
// side of the first rule becomes the start symbol. Quoted symbols are
// terminals, bare identifiers are non-terminals, ε (or "eps") is the empty
// alternative.
func ParseGrammar(name, input string) (*cfg.Grammar, error) {
	tokens, err := scan(input)
	if err != nil {
		return nil, err
	}
	b := cfg.NewGrammarBuilder(name)
	for _, line := range lines(tokens) {
		if len(line) < 2 || line[0].typ != tokIdent || line[1].typ != tokArrow {
			return nil, fmt.Errorf("line %d: expected \"A -> …\"", line[0].line)
		}
		lhs := line[0].lexeme
		for _, alt := range splitAlternatives(line[2:]) {
			if len(alt) == 0 {
				return nil, fmt.Errorf("line %d: empty alternative, use %s",
					line[0].line, "ε")
			}
			if err := addAlternative(b, lhs, alt); err != nil {
				return nil, err
			}
		}
	}
	g, err := b.Grammar()
	if err != nil {
		return nil, err
	}
	tracer().Debugf("parsed grammar %s with %d productions", name, g.Size())
	return g, nil
}

func splitAlternatives(tokens []token) [][]token {
	var alts [][]token
	var cur []token
	for _, t := range tokens {
		if t.typ == tokPipe {
			alts = append(alts, cur)
			cur = nil
			continue
		}
		cur = append(cur, t)
	}
	alts = append(alts, cur)
	return alts
}

func addAlternative(b *cfg.GrammarBuilder, lhs string, alt []token) error {
	for _, t := range alt {
		if t.typ == tokEpsilon && len(alt) > 1 {
			return fmt.Errorf("line %d, column %d: %w", t.line, t.col, ErrMalformedEpsilonUsage)
		}
	}
	if alt[0].typ == tokEpsilon {
		b.LHS(lhs).Epsilon()
		return nil
	}
	rb := b.LHS(lhs)
	for _, t := range alt {
		switch t.typ {
		case tokIdent:
			rb.N(t.lexeme)
		case tokLiteral:
			rb.T(unquote(t.lexeme))
		default:
			return fmt.Errorf("line %d, column %d: unexpected %s in right-hand side",
				t.line, t.col, t)
		}
	}
	rb.End()
	return nil
}

func unquote(lexeme string) string {
	return lexeme[1 : len(lexeme)-1]
}

// ParseAutomaton reads a pushdown automaton. Directive lines (states,
// inputs, stack, start, final) declare the components; all other lines are
// transitions of the form
//
//    from input pop -> to push…
//
// with ε for an ε-move or a net pop. Input symbols may be quoted or bare.
func ParseAutomaton(name, input string) (*pda.Automaton, error) {
	tokens, err := scan(input)
	if err != nil {
		return nil, err
	}
	b := pda.NewAutomatonBuilder(name)
	for _, line := range lines(tokens) {
		if line[0].typ == tokIdent {
			done, err := directive(b, line)
			if err != nil {
				return nil, err
			}
			if done {
				continue
			}
		}
		if err := transition(b, line); err != nil {
			return nil, err
		}
	}
	a, err := b.Automaton()
	if err != nil {
		return nil, err
	}
	tracer().Debugf("parsed automaton %s with %d transitions", name, len(a.Transitions()))
	return a, nil
}

// directive handles declaration lines, returning false for lines which are
// no directive (and thus transitions).
func directive(b *pda.AutomatonBuilder, line []token) (bool, error) {
	args := line[1:]
	switch line[0].lexeme {
	case "states":
		names, err := symbolNames(args)
		if err != nil {
			return true, err
		}
		b.States(names...)
	case "inputs":
		names, err := symbolNames(args)
		if err != nil {
			return true, err
		}
		b.Inputs(names...)
	case "stack":
		names, err := symbolNames(args)
		if err != nil {
			return true, err
		}
		b.StackSymbols(names...)
	case "start":
		if len(args) != 2 || args[0].typ != tokIdent || args[1].typ != tokIdent {
			return true, fmt.Errorf("line %d: expected \"start state stacksymbol\"", line[0].line)
		}
		b.SetStart(args[0].lexeme, args[1].lexeme)
	case "final":
		names, err := symbolNames(args)
		if err != nil {
			return true, err
		}
		b.Final(names...)
	default:
		return false, nil
	}
	return true, nil
}

func symbolNames(args []token) ([]string, error) {
	names := make([]string, 0, len(args))
	for _, t := range args {
		switch t.typ {
		case tokIdent:
			names = append(names, t.lexeme)
		case tokLiteral:
			names = append(names, unquote(t.lexeme))
		default:
			return nil, fmt.Errorf("line %d, column %d: unexpected %s in declaration",
				t.line, t.col, t)
		}
	}
	return names, nil
}

func transition(b *pda.AutomatonBuilder, line []token) error {
	if len(line) < 5 || line[3].typ != tokArrow {
		return fmt.Errorf("line %d: expected \"from input pop -> to push…\"", line[0].line)
	}
	from, input, pop, to := line[0], line[1], line[2], line[4]
	if from.typ != tokIdent || pop.typ != tokIdent || to.typ != tokIdent {
		return fmt.Errorf("line %d: states and stack symbols must be bare identifiers", line[0].line)
	}
	var inputName string
	switch input.typ {
	case tokEpsilon:
		inputName = ""
	case tokIdent:
		inputName = input.lexeme
	case tokLiteral:
		inputName = unquote(input.lexeme)
	default:
		return fmt.Errorf("line %d, column %d: unexpected %s as input symbol",
			input.line, input.col, input)
	}
	var push []string
	for _, t := range line[5:] {
		if t.typ == tokEpsilon && len(line) == 6 {
			break // explicit ε for a net pop
		}
		if t.typ != tokIdent {
			return fmt.Errorf("line %d, column %d: unexpected %s in push string",
				t.line, t.col, t)
		}
		push = append(push, t.lexeme)
	}
	b.Edge(from.lexeme, inputName, pop.lexeme).To(to.lexeme, push...)
	return nil
}
