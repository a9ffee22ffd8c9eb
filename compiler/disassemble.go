package compiler

import (
	"fmt"
	"os"
	"strings"
)

// Disassemble renders cells as one instruction per line, annotated with its
// cell index and operands, for the emit CLI's -disassemble flag. Grounded
// on informatter-nilan/compiler/code.go's DiassembleBytecode, adapted from a
// byte-stream walk to an index walk over Cell.
func Disassemble(cells []Cell) string {
	var b strings.Builder
	i := 0
	for i < len(cells) {
		cell := cells[i]
		if cell.Kind != KindInstruction {
			fmt.Fprintf(&b, "%4d  <stray %s>\n", i, cell)
			i++
			continue
		}

		switch cell.Instr {
		case Load:
			fmt.Fprintf(&b, "%4d  Load %s\n", i, cells[i+1].Val)
			i += 2
		case StoreVar:
			fmt.Fprintf(&b, "%4d  StoreVar %d\n", i, cells[i+1].Label)
			i += 2
		case LoadVar:
			fmt.Fprintf(&b, "%4d  LoadVar %d\n", i, cells[i+1].Label)
			i += 2
		case ClearVar:
			fmt.Fprintf(&b, "%4d  ClearVar %d\n", i, cells[i+1].Label)
			i += 2
		case Jump:
			fmt.Fprintf(&b, "%4d  Jump %+d\n", i, cells[i+1].Offset)
			i += 2
		case JumpIfZero:
			fmt.Fprintf(&b, "%4d  JumpIfZero %+d\n", i, cells[i+1].Offset)
			i += 2
		case CallFunction:
			fmt.Fprintf(&b, "%4d  CallFunction %s/%d\n", i, cells[i+1].Builtin, cells[i+2].ArgCount)
			i += 3
		default:
			fmt.Fprintf(&b, "%4d  %s\n", i, cell.Instr)
			i++
		}
	}
	return b.String()
}

// Dump writes the stable per-cell "Bytecode(<Kind>, <payload>)" textual
// encoding to path, one cell per line. Grounded on
// informatter-nilan/compiler/ast_compiler.go's DumpBytecode, which
// hex-encodes a raw instruction byte stream to a ".nic" file; this
// expansion has no raw byte stream to hex-dump, so it dumps the Cell
// stream's own stable String() form instead, newly defined by this
// expansion (SPEC_FULL.md §6).
func Dump(cells []Cell, path string) error {
	if path == "" {
		path = "bytecode.vbc"
	}
	f, err := os.Create(path) // #nosec G304 -- user-supplied output path
	if err != nil {
		return fmt.Errorf("error creating bytecode dump file: %w", err)
	}
	defer f.Close()

	for _, c := range cells {
		if _, err := fmt.Fprintln(f, c); err != nil {
			return fmt.Errorf("error writing bytecode dump file: %w", err)
		}
	}
	return nil
}
