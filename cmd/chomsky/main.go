package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/npillmayer/chomsky/cfg"
	"github.com/npillmayer/chomsky/pda"
	"github.com/npillmayer/chomsky/syntax"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

// main() starts an interactive CLI where users may enter context-free
// grammars and pushdown automata in the notation of package syntax, and
// apply transformations to them:
//
//    grammar      enter a grammar (finish with a blank line)
//    pda          enter a pushdown automaton (finish with a blank line)
//    normalize    eliminate ε-productions, unit productions, useless symbols
//    convert      construct a grammar for the current automaton's language
//    show         print the current grammar and automaton
//
func main() {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	initf := flag.String("init", "", "Initial load")
	flag.Parse()
	tracing.Select("chomsky.cfg").SetTraceLevel(traceLevel(*tlevel))
	tracing.Select("chomsky.pda").SetTraceLevel(traceLevel(*tlevel))
	tracing.Select("chomsky.syntax").SetTraceLevel(traceLevel(*tlevel))
	pterm.Info.Println("Welcome to the chomsky toolbox") // colored welcome message
	//
	repl, err := readline.New("chomsky> ")
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(3)
	}
	intp := &Intp{repl: repl}
	pterm.Info.Println("Type 'help' for commands, quit with <ctrl>D")
	intp.loadInitFile(*initf)
	intp.REPL()
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	repl      *readline.Instance
	grammar   *cfg.Grammar
	automaton *pda.Automaton
}

func (intp *Intp) loadInitFile(filename string) {
	if filename == "" {
		return
	}
	f, err := os.Open(filename)
	if err != nil {
		pterm.Error.Println("Unable to open init file: " + filename)
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		pterm.Error.Println("Error while reading init file: " + err.Error())
		return
	}
	for len(lines) > 0 {
		line := strings.TrimSpace(lines[0])
		lines = lines[1:]
		if line == "" {
			continue
		}
		quit, err := intp.Execute(line, func() (string, bool) {
			if len(lines) == 0 {
				return "", false
			}
			next := lines[0]
			lines = lines[1:]
			return next, true
		})
		if err != nil {
			pterm.Error.Println(err.Error())
		}
		if quit {
			return
		}
	}
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		quit, err := intp.Execute(line, func() (string, bool) {
			more, err := intp.repl.Readline()
			if err != nil {
				return "", false
			}
			return more, true
		})
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	println("Good bye!")
}

// Execute runs one command. Multi-line input (grammar and automaton text)
// is pulled from the readMore callback until a blank line.
func (intp *Intp) Execute(line string, readMore func() (string, bool)) (bool, error) {
	args := strings.Fields(line)
	cmd := args[0]
	switch cmd {
	case "help":
		printHelp()
	case "quit":
		return true, nil
	case "grammar":
		g, err := syntax.ParseGrammar(nameArg(args, "G"), collect(readMore))
		if err != nil {
			return false, err
		}
		intp.grammar = g
		intp.printGrammar()
	case "pda":
		a, err := syntax.ParseAutomaton(nameArg(args, "P"), collect(readMore))
		if err != nil {
			return false, err
		}
		intp.automaton = a
		intp.printAutomaton()
	case "normalize":
		if intp.grammar == nil {
			return false, fmt.Errorf("no grammar entered yet")
		}
		intp.grammar = cfg.Normalize(intp.grammar)
		intp.printGrammar()
	case "convert":
		if intp.automaton == nil {
			return false, fmt.Errorf("no automaton entered yet")
		}
		g, err := pda.Convert(intp.automaton, modeArg(args))
		if err != nil {
			return false, err
		}
		intp.grammar = g
		pterm.Info.Println("converted; 'normalize' will remove useless triples")
		intp.printGrammar()
	case "show":
		intp.printGrammar()
		intp.printAutomaton()
	default:
		return false, fmt.Errorf("unknown command %q, try 'help'", cmd)
	}
	return false, nil
}

// collect reads lines up to a blank line (or end of input).
func collect(readMore func() (string, bool)) string {
	var b strings.Builder
	for {
		line, ok := readMore()
		if !ok || strings.TrimSpace(line) == "" {
			break
		}
		b.WriteString(line)
		b.WriteRune('\n')
	}
	return b.String()
}

func nameArg(args []string, fallback string) string {
	if len(args) > 1 {
		return args[1]
	}
	return fallback
}

func modeArg(args []string) pda.AcceptanceMode {
	if len(args) > 1 {
		switch args[1] {
		case "final":
			return pda.FinalState
		case "empty":
			return pda.EmptyStack
		}
	}
	return pda.Unspecified
}

func (intp *Intp) printGrammar() {
	if intp.grammar == nil {
		return
	}
	g := intp.grammar
	pterm.Info.Println(fmt.Sprintf("grammar %s, start symbol %s, %d productions",
		g.Name, g.Start().Name, g.Size()))
	g.EachRule(func(r *cfg.Rule) interface{} {
		pterm.Println("  " + r.String())
		return nil
	})
}

func (intp *Intp) printAutomaton() {
	if intp.automaton == nil {
		return
	}
	a := intp.automaton
	pterm.Info.Println(fmt.Sprintf("automaton %s, start (%s,%s), accepting %v",
		a.Name, a.Start(), a.StartStack(), a.Accepting()))
	for _, t := range a.Transitions() {
		pterm.Println("  " + t.String())
	}
}

func printHelp() {
	pterm.Println("grammar [name]     enter a grammar, finish with a blank line")
	pterm.Println("pda [name]         enter a pushdown automaton, finish with a blank line")
	pterm.Println("normalize          remove ε-productions, unit productions, useless symbols")
	pterm.Println("convert [final|empty]")
	pterm.Println("                   construct a grammar for the automaton's language")
	pterm.Println("show               print the current grammar and automaton")
	pterm.Println("quit               leave")
}

func traceLevel(l string) tracing.TraceLevel {
	return tracing.TraceLevelFromString(l)
}
