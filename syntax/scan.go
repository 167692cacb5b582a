package syntax

import (
	"fmt"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// Token types of the notation.
const (
	tokIdent = iota + 1
	tokLiteral
	tokArrow
	tokPipe
	tokEpsilon
	tokNewline
)

// token is a scanned input token. Newlines are significant: both notations
// are line-based.
type token struct {
	typ    int
	lexeme string
	line   int
	col    int
}

func (t token) String() string {
	return fmt.Sprintf("%q@%d:%d", t.lexeme, t.line, t.col)
}

var lexer *lexmachine.Lexer

func init() {
	lexer = lexmachine.NewLexer()
	lexer.Add([]byte(`( |\t|\r)+`), skip)
	lexer.Add([]byte(`#[^\n]*`), skip)
	lexer.Add([]byte(`\n`), mkToken(tokNewline))
	lexer.Add([]byte(`->`), mkToken(tokArrow))
	lexer.Add([]byte(`\|`), mkToken(tokPipe))
	lexer.Add([]byte(`ε`), mkToken(tokEpsilon))
	lexer.Add([]byte(`eps`), mkToken(tokEpsilon)) // ASCII spelling
	lexer.Add([]byte(`[a-zA-Z_][a-zA-Z0-9_]*`), mkToken(tokIdent))
	lexer.Add([]byte(`'[^'\n]*'`), mkToken(tokLiteral))
	if err := lexer.Compile(); err != nil {
		panic(fmt.Sprintf("cannot compile notation lexer: %v", err))
	}
}

func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

func mkToken(typ int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(typ, string(m.Bytes), m), nil
	}
}

// scan tokenizes the complete input.
func scan(input string) ([]token, error) {
	s, err := lexer.Scanner([]byte(input))
	if err != nil {
		return nil, err
	}
	var tokens []token
	for {
		tok, err, eof := s.Next()
		if eof {
			break
		}
		if err != nil {
			if ui, is := err.(*machines.UnconsumedInput); is {
				return nil, fmt.Errorf("unrecognized input at line %d, column %d",
					ui.StartLine, ui.StartColumn)
			}
			return nil, err
		}
		t := tok.(*lexmachine.Token)
		tokens = append(tokens, token{
			typ:    t.Type,
			lexeme: string(t.Lexeme),
			line:   t.StartLine,
			col:    t.StartColumn,
		})
	}
	return tokens, nil
}

// lines splits a token stream at newline tokens, dropping empty lines.
func lines(tokens []token) [][]token {
	var ls [][]token
	var cur []token
	for _, t := range tokens {
		if t.typ == tokNewline {
			if len(cur) > 0 {
				ls = append(ls, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, t)
	}
	if len(cur) > 0 {
		ls = append(ls, cur)
	}
	return ls
}
