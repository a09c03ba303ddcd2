package maincmd

import (
	"context"
	"os"

	"github.com/mna/mainer"
	"github.com/mna/nenuphar-lox/lang/compiler"
	"github.com/mna/nenuphar-lox/lang/machine"
)

// Run compiles and executes the single source file named in args.
func (c *Cmd) Run(ctx context.Context, stdio mainer.Stdio, args []string) error {
	src, err := os.ReadFile(args[0])
	if err != nil {
		return printError(stdio, err)
	}
	return printError(stdio, c.runSource(ctx, stdio, src))
}

func (c *Cmd) runSource(ctx context.Context, stdio mainer.Stdio, src []byte) error {
	proto, err := compiler.Compile(src)
	if err != nil {
		return err
	}

	vm := machine.New(machine.Config{
		Stdout:         stdio.Stdout,
		Stderr:         stdio.Stderr,
		MaxSteps:       c.MaxSteps,
		TraceExecution: c.Trace,
	})
	_, err = vm.Interpret(ctx, proto)
	return err
}
