/*
Package pda implements pushdown automata and their conversion to
context-free grammars.

Automata are specified using a builder object:

    b := pda.NewAutomatonBuilder("P")
    b.States("q0", "q1")
    b.Inputs("a", "b")
    b.StackSymbols("Z", "A")
    b.SetStart("q0", "Z")
    b.Final("q1")
    b.Edge("q0", "a", "Z").To("q0", "A", "Z")  // (q0,a,Z) -> (q0, AZ)
    b.Edge("q0", "", "A").To("q1")             // ε-move, net pop
    a, err := b.Automaton()

The builder validates the automaton: every state, input symbol and stack
symbol referenced by a transition must be declared.

Conversion uses the classical triple construction: variables of the
resulting grammar are triples [p,X,q] deriving exactly the strings which
drive the automaton from state p to state q while popping X net. The
acceptance convention (by final state or by empty stack) is an explicit
parameter of Convert, never inferred.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package pda

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'chomsky.pda'.
func tracer() tracing.Trace {
	return tracing.Select("chomsky.pda")
}
