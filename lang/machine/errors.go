package machine

import (
	"fmt"
	"strings"
)

// RuntimeError is a Lox runtime error paired with a stack trace captured at
// the point of failure. Frames are listed most-recent-first, matching
// original_source's runtimeError, which prints the failing frame before
// walking outward to its callers.
type RuntimeError struct {
	Message string
	Trace   []string
}

func (e *RuntimeError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message)
	for _, line := range e.Trace {
		sb.WriteByte('\n')
		sb.WriteString(line)
	}
	return sb.String()
}

// newRuntimeError formats a runtime error and captures the current call
// stack as a trace, most-recent-frame first.
func (vm *VM) newRuntimeError(format string, args ...any) *RuntimeError {
	err := &RuntimeError{Message: fmt.Sprintf(format, args...)}
	for i := len(vm.frames) - 1; i >= 0; i-- {
		fr := &vm.frames[i]
		name := fr.closure.Function.Proto.Name
		if name == "" {
			err.Trace = append(err.Trace, fmt.Sprintf("[line %d] in script", fr.currentLine()))
		} else {
			err.Trace = append(err.Trace, fmt.Sprintf("[line %d] in %s()", fr.currentLine(), name))
		}
	}
	return err
}
