/*
Package cfg implements context-free grammars and their normalization.

Building a Grammar

Grammars are specified using a grammar builder object. Clients add
rules, consisting of non-terminal symbols and terminals. Grammars may
contain epsilon-productions.

Example:

    b := cfg.NewGrammarBuilder("G")
    b.LHS("S").N("A").T("a").End()   // S  ->  A a
    b.LHS("A").N("B").N("D").End()   // A  ->  B D
    b.LHS("B").T("b").End()          // B  ->  b
    b.LHS("B").Epsilon()             // B  ->  ε
    b.LHS("D").T("d").End()          // D  ->  d
    g, err := b.Grammar()

The builder validates the grammar: every non-terminal occurring in a
right-hand side must own a rule, and a start symbol must exist (by default
the first left-hand side).

Normalization

Grammars are normalized by successively eliminating ε-productions, unit
productions and useless symbols:

    h := cfg.Normalize(g)

Each stage is a pure function from grammar to grammar; intermediate results
remain inspectable and the pipeline is idempotent. The underlying closure
sets (nullable, unit closure, generating, reachable) are computed by
fixpoint iteration and are exported for clients which want to look at them.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package cfg

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'chomsky.cfg'.
func tracer() tracing.Trace {
	return tracing.Select("chomsky.cfg")
}
