package chomsky

import "fmt"

// --- Symbols ----------------------------------------------------------------

// SymbolKind is the category of a grammar symbol. A symbol is either a
// terminal or a non-terminal, and the distinction is carried as explicit data
// on the symbol. We deliberately do not infer the kind from any textual
// convention (casing, quoting, …); that is left to notation front-ends.
type SymbolKind int8

// Symbol categories. The zero value is reserved to catch uninitialized
// symbols during validation.
const (
	Undefined SymbolKind = iota
	Terminal
	NonTerminal
)

func (k SymbolKind) String() string {
	switch k {
	case Terminal:
		return "terminal"
	case NonTerminal:
		return "non-terminal"
	}
	return "undefined"
}

// Symbol is a tagged grammar symbol. Symbols are small immutable values and
// may be used as map keys. Two symbols are equal iff name and kind match.
type Symbol struct {
	Name string
	Kind SymbolKind
}

// T creates a terminal symbol.
func T(name string) Symbol {
	return Symbol{Name: name, Kind: Terminal}
}

// N creates a non-terminal symbol.
func N(name string) Symbol {
	return Symbol{Name: name, Kind: NonTerminal}
}

// IsTerminal is true for symbols of kind Terminal.
func (s Symbol) IsTerminal() bool {
	return s.Kind == Terminal
}

func (s Symbol) String() string {
	if s.Kind == Undefined {
		return fmt.Sprintf("?%s?", s.Name)
	}
	if s.IsTerminal() {
		return fmt.Sprintf("'%s'", s.Name)
	}
	return s.Name
}

// EpsilonLiteral is the lexeme which notation front-ends use for the empty
// right-hand side. It is not a Symbol: within the model an empty RHS stands
// for ε (see package cfg).
const EpsilonLiteral = "ε"
