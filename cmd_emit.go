package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/subcommands"

	"vela/compiler"
	"vela/lexer"
	"vela/parser"
	"vela/source"
)

// emitCmd compiles a file to bytecode and can disassemble or dump it,
// carried over from informatter-nilan/cmd_emit_bytecode.go and adapted from
// its byte-stream Bytecode to this language's Cell stream.
type emitCmd struct {
	disassemble bool
	dump        bool
}

func (*emitCmd) Name() string     { return "emit" }
func (*emitCmd) Synopsis() string { return "Emit the bytecode for a source file" }
func (*emitCmd) Usage() string {
	return `emit <file>:
  Compile a source file to bytecode, optionally disassembling or dumping it.
`
}

func (cmd *emitCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&cmd.disassemble, "disassemble", true, "print a disassembly of the bytecode")
	f.BoolVar(&cmd.dump, "dump", true, "write the bytecode's textual dump to a .vbc file")
}

func (cmd *emitCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "💥 File not provided\n")
		return subcommands.ExitUsageError
	}
	sourcePath := args[0]

	data, err := os.ReadFile(sourcePath) // #nosec G304 -- CLI positional file argument
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 Failed to read file: %v\n", err)
		return subcommands.ExitFailure
	}

	lex := lexer.New(source.NewString(string(data)))
	p := parser.New(lex)
	root, err := p.Parse()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	cells, _, err := compiler.Generate(root)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	base := strings.TrimSuffix(sourcePath, filepath.Ext(sourcePath))

	if cmd.disassemble {
		fmt.Print(compiler.Disassemble(cells))
	}
	if cmd.dump {
		if err := compiler.Dump(cells, base+".vbc"); err != nil {
			fmt.Fprintf(os.Stderr, "💥 Bytecode dump error: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}
