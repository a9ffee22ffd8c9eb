package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"vela/interpreter"
	"vela/lexer"
	"vela/parser"
	"vela/source"
)

// evaluateCmd reads stdin, parses a single expression, evaluates it with
// the tree-walk interpreter and prints its normalized value. Grounded
// directly on original_source/bin/Evaluator.cc's read-stdin/parse/evaluate/
// print-normalizedValue shape, including its "parse error @ <location>:
// <message>" failure line.
type evaluateCmd struct{}

func (*evaluateCmd) Name() string     { return "evaluate" }
func (*evaluateCmd) Synopsis() string { return "Evaluate a single expression from stdin" }
func (*evaluateCmd) Usage() string {
	return `evaluate:
  Read one expression from stdin and print its normalized value.
`
}
func (*evaluateCmd) SetFlags(f *flag.FlagSet) {}

func (*evaluateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	lex := lexer.New(source.NewStream(os.Stdin))
	p := parser.New(lex)

	root, err := p.Parse()
	if err != nil {
		if syn, ok := err.(*parser.SyntaxError); ok {
			fmt.Fprintf(os.Stderr, "parse error @ %s: %s\n", syn.Span, syn.Message)
		} else {
			fmt.Fprintf(os.Stderr, "parse error: %s\n", err)
		}
		return subcommands.ExitFailure
	}

	v, err := interpreter.Evaluate(root)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Println(v.Normalized())
	return subcommands.ExitSuccess
}
