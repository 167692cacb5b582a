/*
Package chomsky is a toolbox for transformations of context-free grammars
and pushdown automata.

It focusses on the classical normalization steps for CFGs (elimination of
ε-productions, unit productions and useless symbols) and on the construction
of a CFG equivalent to the language accepted by a PDA. Package structure is
as follows:

■ cfg: Package cfg implements the grammar model, a grammar builder, and the
normalization pipeline.

■ pda: Package pda implements the pushdown automaton model and the
PDA-to-CFG conversion (triple construction).

■ syntax: Package syntax reads and writes a small textual notation for
grammars and automata.

The base package contains data types which are used throughout all the other
packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package chomsky
