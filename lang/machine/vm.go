package machine

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dolthub/swiss"
	"github.com/google/uuid"
	"github.com/mna/nenuphar-lox/lang/compiler"
)

const (
	maxFrames = 64
	stackMax  = maxFrames * 256
)

// Config controls the optional, non-default behaviors of a VM: where its
// output goes, how many instructions it may execute before being cancelled,
// and whether it emits an execution trace.
type Config struct {
	// Stdout receives the output of print statements. Defaults to os.Stdout.
	Stdout io.Writer
	// Stderr receives diagnostic output such as the execution trace.
	// Defaults to os.Stderr.
	Stderr io.Writer
	// MaxSteps bounds the number of instructions a single Interpret call may
	// execute before the VM reports a runtime error. A value <= 0 means no
	// limit.
	MaxSteps int
	// TraceExecution, when true, writes the offset and opcode name of each
	// instruction to Stderr before executing it. Operands and stack contents
	// are not printed.
	TraceExecution bool
}

// VM executes compiled Lox bytecode. The zero value is not usable; use New.
type VM struct {
	ID uuid.UUID

	cfg Config

	stack []Value
	sp    int

	frames     []callFrame
	openUpvals *ObjUpvalue

	globals *swiss.Map[*ObjString, Value]
	strings *swiss.Map[string, *ObjString]

	steps uint64
}

// New returns a VM ready to Interpret compiled programs. cfg's zero value is
// a usable default (unbounded steps, os.Stdout/os.Stderr, no trace).
func New(cfg Config) *VM {
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	if cfg.Stderr == nil {
		cfg.Stderr = os.Stderr
	}
	vm := &VM{
		ID:      uuid.New(),
		cfg:     cfg,
		stack:   make([]Value, 0, stackMax),
		frames:  make([]callFrame, 0, maxFrames),
		globals: swiss.NewMap[*ObjString, Value](64),
		strings: swiss.NewMap[string, *ObjString](64),
	}
	vm.defineNatives()
	return vm
}

// intern returns the canonical *ObjString for s, creating and registering
// one the first time s is seen. Every later request for the same content
// returns the same pointer, so string equality reduces to pointer equality
// (grounded on original_source's table.c intern table).
func (vm *VM) intern(s string) *ObjString {
	if existing, ok := vm.strings.Get(s); ok {
		return existing
	}
	obj := &ObjString{Value: s}
	vm.strings.Put(s, obj)
	return obj
}

func (vm *VM) constantValue(c compiler.Constant) Value {
	switch c.Kind {
	case compiler.ConstNumber:
		return NumberValue(c.Number)
	case compiler.ConstString:
		return ObjValue(vm.intern(c.String))
	default:
		panic(fmt.Sprintf("constantValue: unexpected constant kind %d", c.Kind))
	}
}

func (vm *VM) push(v Value) {
	if len(vm.stack) >= stackMax {
		panic(vm.newRuntimeError("stack overflow"))
	}
	vm.stack = append(vm.stack, v)
}

func (vm *VM) pop() Value {
	v := vm.stack[len(vm.stack)-1]
	vm.stack = vm.stack[:len(vm.stack)-1]
	return v
}

func (vm *VM) peek(distance int) Value {
	return vm.stack[len(vm.stack)-1-distance]
}

// Interpret runs proto (typically the top-level script returned by
// compiler.Compile) to completion and returns the value its outermost frame
// returns. For a top-level script that value is always Nil, since expression
// statements discard their results and the script ends with an implicit
// "return nil".
func (vm *VM) Interpret(ctx context.Context, proto *compiler.FunctionProto) (v Value, err error) {
	vm.steps = 0
	fn := &ObjFunction{Proto: proto}
	closure := &ObjClosure{Function: fn}
	vm.push(ObjValue(closure))
	if err := vm.call(closure, 0); err != nil {
		return NilValue(), err
	}

	defer func() {
		if r := recover(); r != nil {
			if rerr, ok := r.(*RuntimeError); ok {
				err = rerr
				return
			}
			panic(r)
		}
	}()
	return vm.run(ctx)
}

// call pushes a new call frame for closure, checking that argCount matches
// its arity and that the frame stack has room.
func (vm *VM) call(closure *ObjClosure, argCount int) error {
	if argCount != closure.Function.Proto.Arity {
		return vm.newRuntimeError("Expected %d arguments but got %d.", closure.Function.Proto.Arity, argCount)
	}
	if len(vm.frames) == maxFrames {
		return vm.newRuntimeError("Stack overflow.")
	}
	vm.frames = append(vm.frames, callFrame{
		closure: closure,
		ip:      0,
		base:    len(vm.stack) - argCount - 1,
	})
	return nil
}

// callValue dispatches a call instruction's callee, which may be a Lox
// closure or a native function.
func (vm *VM) callValue(callee Value, argCount int) error {
	if callee.IsObj() {
		switch obj := callee.AsObj().(type) {
		case *ObjClosure:
			return vm.call(obj, argCount)
		case *ObjNative:
			args := vm.stack[len(vm.stack)-argCount:]
			result, err := obj.Fn(vm, args)
			if err != nil {
				return vm.newRuntimeError("%s", err.Error())
			}
			vm.stack = vm.stack[:len(vm.stack)-argCount-1]
			vm.push(result)
			return nil
		}
	}
	return vm.newRuntimeError("Can only call functions and closures.")
}

// captureUpvalue finds or creates an open upvalue for the stack slot at
// local, keeping the VM's open-upvalue list sorted by decreasing slot index
// so that a given slot is captured at most once.
func (vm *VM) captureUpvalue(local *Value) *ObjUpvalue {
	var prev *ObjUpvalue
	cur := vm.openUpvals
	localIdx := vm.slotIndex(local)
	for cur != nil && vm.slotIndex(cur.Location) > localIdx {
		prev = cur
		cur = cur.next
	}
	if cur != nil && vm.slotIndex(cur.Location) == localIdx {
		return cur
	}

	created := &ObjUpvalue{Location: local, next: cur}
	if prev == nil {
		vm.openUpvals = created
	} else {
		prev.next = created
	}
	return created
}

func (vm *VM) slotIndex(p *Value) int {
	for i := range vm.stack {
		if &vm.stack[i] == p {
			return i
		}
	}
	return -1
}

// closeUpvalues closes every open upvalue referring to a stack slot at or
// above floor, which happens when a scope exits or a function returns.
func (vm *VM) closeUpvalues(floor *Value) {
	floorIdx := vm.slotIndex(floor)
	for vm.openUpvals != nil && vm.slotIndex(vm.openUpvals.Location) >= floorIdx {
		uv := vm.openUpvals
		uv.Close()
		vm.openUpvals = uv.next
	}
}

func (vm *VM) defineNatives() {
	vm.DefineNative("clock", func(_ *VM, _ []Value) (Value, error) {
		return NumberValue(float64(time.Now().UnixNano()) / 1e9), nil
	})
}

// DefineNative registers a Go function as a global callable under name.
func (vm *VM) DefineNative(name string, fn NativeFn) {
	vm.globals.Put(vm.intern(name), ObjValue(&ObjNative{Name: name, Fn: fn}))
}
