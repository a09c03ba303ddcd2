package maincmd

import (
	"bufio"
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/mna/mainer"
	"github.com/mna/nenuphar-lox/lang/compiler"
	"github.com/mna/nenuphar-lox/lang/machine"
)

var promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

// Repl starts an interactive read-eval-print loop. Each line is compiled
// and executed against the same VM, so globals declared on one line are
// visible on the next, the way original_source's repl() function in main.c
// keeps a single running interpreter.
func (c *Cmd) Repl(ctx context.Context, stdio mainer.Stdio, _ []string) error {
	vm := machine.New(machine.Config{
		Stdout:         stdio.Stdout,
		Stderr:         stdio.Stderr,
		MaxSteps:       c.MaxSteps,
		TraceExecution: c.Trace,
	})

	scanner := bufio.NewScanner(stdio.Stdin)
	for {
		fmt.Fprint(stdio.Stdout, promptStyle.Render("> "))
		if !scanner.Scan() {
			fmt.Fprintln(stdio.Stdout)
			return nil
		}
		line := scanner.Text()
		if line == "" {
			continue
		}

		proto, err := compiler.Compile([]byte(line))
		if err != nil {
			printError(stdio, err)
			continue
		}
		if _, err := vm.Interpret(ctx, proto); err != nil {
			printError(stdio, err)
		}
	}
}
