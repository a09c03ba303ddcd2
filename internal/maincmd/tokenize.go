package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"
	"github.com/mna/nenuphar-lox/lang/scanner"
	"github.com/mna/nenuphar-lox/lang/token"
)

// Tokenize prints every token the scanner produces for the source file
// named in args, one per line, until and including EOF.
func (c *Cmd) Tokenize(_ context.Context, stdio mainer.Stdio, args []string) error {
	src, err := os.ReadFile(args[0])
	if err != nil {
		return printError(stdio, err)
	}

	var sc scanner.Scanner
	sc.Init(src)
	for {
		tok := sc.ScanToken()
		fmt.Fprintf(stdio.Stdout, "%4d %-14s '%s'\n", tok.Line, tok.Type, tok.Lexeme)
		if tok.Type == token.EOF {
			return nil
		}
	}
}
