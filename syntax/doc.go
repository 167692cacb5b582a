/*
Package syntax reads a small textual notation for grammars and automata.

Grammars are given as one rule per line, terminals quoted, alternatives
separated by '|':

    S -> 'a' B | ε
    B -> 'b' | S

Automata are given as directive lines followed by transition lines:

    states q0 q1
    inputs 'a' 'b'
    stack  Z A
    start  q0 Z
    final  q1
    q0 'a' Z -> q0 A Z
    q0 ε A -> q1

The kind of a symbol is determined by the notation (quoted = terminal),
never by casing. Lines starting with '#' are comments.

Package syntax is a front-end adapter: it validates raw text and hands
finished cfg.Grammar / pda.Automaton values to the transformation
packages. Grammar values print themselves in this notation, so output can
be fed back in.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package syntax

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'chomsky.syntax'.
func tracer() tracing.Trace {
	return tracing.Select("chomsky.syntax")
}
