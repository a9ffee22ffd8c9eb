package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/google/subcommands"

	"vela/compiler"
	"vela/config"
	"vela/lexer"
	"vela/parser"
	"vela/source"
	"vela/token"
	"vela/vm"
)

// Color definitions for REPL output, grounded on
// akashmaji946-go-mix/repl/repl.go's color.New(...) palette.
var (
	replPrompt  = color.New(color.FgBlue)
	replResult  = color.New(color.FgGreen)
	replError   = color.New(color.FgRed)
	replWelcome = color.New(color.FgCyan)
)

type replCmd struct {
	disassemble bool
	configPath  string
}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "Start an interactive compiled-VM session" }
func (*replCmd) Usage() string {
	return `repl:
  Start an interactive REPL backed by the bytecode generator and VM.
`
}
func (cmd *replCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&cmd.disassemble, "disassemble", false, "print each compiled statement's disassembly")
	f.StringVar(&cmd.configPath, "config", "", "path to a vela config.toml (defaults to the platform config path)")
}

func (cmd *replCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig(cmd.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 Failed to load config: %v\n", err)
		return subcommands.ExitFailure
	}
	color.NoColor = !cfg.REPL.ColorOutput

	replWelcome.Println("Welcome to vela. Type an expression and press enter; Ctrl+D to exit.")

	rl, err := readline.NewEx(&readline.Config{
		Prompt:       cfg.REPL.Prompt,
		HistoryFile:  cfg.REPL.HistoryFile,
		HistoryLimit: cfg.REPL.HistorySize,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer rl.Close()

	var buffer strings.Builder
	for {
		if buffer.Len() == 0 {
			rl.SetPrompt(replPrompt.Sprint(cfg.REPL.Prompt))
		} else {
			rl.SetPrompt(replPrompt.Sprint("... "))
		}

		line, err := rl.Readline()
		if err != nil {
			replWelcome.Println("Good bye!")
			return subcommands.ExitSuccess
		}

		if buffer.Len() > 0 {
			buffer.WriteString("\n")
		}
		buffer.WriteString(line)
		src := buffer.String()

		tokens, lexErr := tokenizeAll(src)
		if lexErr != nil {
			replError.Fprintln(os.Stderr, lexErr)
			buffer.Reset()
			continue
		}

		if !replInputReady(tokens) {
			continue
		}

		rl.SaveHistory(src)

		lex := lexer.New(source.NewString(src))
		p := parser.New(lex)
		root, err := p.Parse()
		if err != nil {
			if syn, ok := err.(*parser.SyntaxError); ok && replAtEOF(syn, tokens) {
				// Input is not yet complete; keep buffering more lines.
				continue
			}
			replError.Fprintln(os.Stderr, err)
			buffer.Reset()
			continue
		}

		cells, _, err := compiler.Generate(root)
		if err != nil {
			replError.Fprintln(os.Stderr, err)
			buffer.Reset()
			continue
		}
		if cmd.disassemble {
			fmt.Print(compiler.Disassemble(cells))
		}

		machine, err := vm.RunWithConfig(cells, cfg.VM.MaxStackDepth, cfg.VM.TraceCalls)
		if err != nil {
			replError.Fprintln(os.Stderr, err)
			buffer.Reset()
			continue
		}

		if top, ok := machine.StackTop(); ok {
			replResult.Println(top)
		}
		buffer.Reset()
	}
}

// tokenizeAll drains a Lexer over src to completion, for REPL readiness
// checks — it never touches the parser's own one-token pushback.
func tokenizeAll(src string) ([]token.Token, error) {
	lex := lexer.New(source.NewString(src))
	var tokens []token.Token
	for {
		tok, err := lex.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == token.Eof {
			return tokens, nil
		}
	}
}

// replInputReady reports whether the buffered input looks complete enough
// to parse, grounded on informatter-nilan/cmd_repl_compiled.go's
// isInputReady: unbalanced braces mean keep buffering, and a trailing
// operator/keyword/opening-punctuation token means more input is expected.
func replInputReady(tokens []token.Token) bool {
	braceBalance := 0
	for _, t := range tokens {
		switch t.Type {
		case token.LeftBrace:
			braceBalance++
		case token.RightBrace:
			braceBalance--
		}
	}
	if braceBalance > 0 {
		return false
	}

	last := lastNonEOF(tokens)
	if last == nil {
		return true
	}

	switch last.Type {
	case token.Operator, token.Comma, token.LeftParen, token.LeftBrace, token.Keyword:
		return false
	}
	return true
}

func lastNonEOF(tokens []token.Token) *token.Token {
	for i := len(tokens) - 1; i >= 0; i-- {
		if tokens[i].Type != token.Eof {
			return &tokens[i]
		}
	}
	return nil
}

// replAtEOF reports whether a SyntaxError was raised exactly at the Eof
// token's span, meaning the user simply hasn't finished typing yet rather
// than made a genuine mistake.
func replAtEOF(syn *parser.SyntaxError, tokens []token.Token) bool {
	if len(tokens) == 0 {
		return false
	}
	eof := tokens[len(tokens)-1]
	return eof.Type == token.Eof && syn.Span == eof.Span
}
