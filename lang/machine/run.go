package machine

import (
	"context"
	"fmt"

	"github.com/mna/nenuphar-lox/lang/compiler"
)

// run is the bytecode dispatch loop. It executes the instruction stream of
// the topmost call frame until the outermost frame returns, cancellation is
// observed, or a runtime error occurs.
func (vm *VM) run(ctx context.Context) (Value, error) {
	for {
		vm.steps++
		if vm.cfg.MaxSteps > 0 && vm.steps > uint64(vm.cfg.MaxSteps) {
			return NilValue(), vm.newRuntimeError("execution step limit exceeded")
		}
		if vm.steps%256 == 0 {
			select {
			case <-ctx.Done():
				return NilValue(), vm.newRuntimeError("execution cancelled: %v", ctx.Err())
			default:
			}
		}

		frame := &vm.frames[len(vm.frames)-1]
		code := frame.chunk()
		op := compiler.OpCode(code[frame.ip])
		frame.ip++

		if vm.cfg.TraceExecution {
			fmt.Fprintf(vm.cfg.Stderr, "%04d %s\n", frame.ip-1, op)
		}

		switch op {
		case compiler.OP_CONSTANT:
			idx := int(code[frame.ip])
			frame.ip++
			vm.push(vm.constantValue(frame.closure.Function.Proto.Chunk.Constants[idx]))

		case compiler.OP_CONSTANT_LONG:
			idx := int(code[frame.ip])<<8 | int(code[frame.ip+1])
			frame.ip += 2
			vm.push(vm.constantValue(frame.closure.Function.Proto.Chunk.Constants[idx]))

		case compiler.OP_NIL:
			vm.push(NilValue())
		case compiler.OP_TRUE:
			vm.push(BoolValue(true))
		case compiler.OP_FALSE:
			vm.push(BoolValue(false))
		case compiler.OP_POP:
			vm.pop()

		case compiler.OP_GET_LOCAL:
			slot := int(code[frame.ip])
			frame.ip++
			vm.push(vm.stack[frame.base+slot])

		case compiler.OP_SET_LOCAL:
			slot := int(code[frame.ip])
			frame.ip++
			vm.stack[frame.base+slot] = vm.peek(0)

		case compiler.OP_GET_UPVALUE:
			slot := int(code[frame.ip])
			frame.ip++
			vm.push(*frame.closure.Upvalues[slot].Location)

		case compiler.OP_SET_UPVALUE:
			slot := int(code[frame.ip])
			frame.ip++
			*frame.closure.Upvalues[slot].Location = vm.peek(0)

		case compiler.OP_DEFINE_GLOBAL:
			name := vm.globalName(frame, int(code[frame.ip]))
			frame.ip++
			vm.globals.Put(name, vm.peek(0))
			vm.pop()

		case compiler.OP_DEFINE_GLOBAL_LONG:
			idx := int(code[frame.ip])<<8 | int(code[frame.ip+1])
			frame.ip += 2
			name := vm.globalName(frame, idx)
			vm.globals.Put(name, vm.peek(0))
			vm.pop()

		case compiler.OP_GET_GLOBAL:
			name := vm.globalName(frame, int(code[frame.ip]))
			frame.ip++
			val, ok := vm.globals.Get(name)
			if !ok {
				return NilValue(), vm.newRuntimeError("Undefined variable '%s'.", name.Value)
			}
			vm.push(val)

		case compiler.OP_GET_GLOBAL_LONG:
			idx := int(code[frame.ip])<<8 | int(code[frame.ip+1])
			frame.ip += 2
			name := vm.globalName(frame, idx)
			val, ok := vm.globals.Get(name)
			if !ok {
				return NilValue(), vm.newRuntimeError("Undefined variable '%s'.", name.Value)
			}
			vm.push(val)

		case compiler.OP_SET_GLOBAL:
			name := vm.globalName(frame, int(code[frame.ip]))
			frame.ip++
			if _, ok := vm.globals.Get(name); !ok {
				return NilValue(), vm.newRuntimeError("Undefined variable '%s'.", name.Value)
			}
			vm.globals.Put(name, vm.peek(0))

		case compiler.OP_SET_GLOBAL_LONG:
			idx := int(code[frame.ip])<<8 | int(code[frame.ip+1])
			frame.ip += 2
			name := vm.globalName(frame, idx)
			if _, ok := vm.globals.Get(name); !ok {
				return NilValue(), vm.newRuntimeError("Undefined variable '%s'.", name.Value)
			}
			vm.globals.Put(name, vm.peek(0))

		case compiler.OP_EQUAL:
			b := vm.pop()
			a := vm.pop()
			vm.push(BoolValue(valuesEqual(a, b)))

		case compiler.OP_GREATER:
			if err := vm.binaryNumberOp(func(a, b float64) Value { return BoolValue(a > b) }); err != nil {
				return NilValue(), err
			}
		case compiler.OP_LESS:
			if err := vm.binaryNumberOp(func(a, b float64) Value { return BoolValue(a < b) }); err != nil {
				return NilValue(), err
			}

		case compiler.OP_ADD:
			if err := vm.add(); err != nil {
				return NilValue(), err
			}
		case compiler.OP_SUBTRACT:
			if err := vm.binaryNumberOp(func(a, b float64) Value { return NumberValue(a - b) }); err != nil {
				return NilValue(), err
			}
		case compiler.OP_MULTIPLY:
			if err := vm.binaryNumberOp(func(a, b float64) Value { return NumberValue(a * b) }); err != nil {
				return NilValue(), err
			}
		case compiler.OP_DIVIDE:
			if err := vm.binaryNumberOp(func(a, b float64) Value { return NumberValue(a / b) }); err != nil {
				return NilValue(), err
			}

		case compiler.OP_NOT:
			vm.push(BoolValue(vm.pop().Falsey()))

		case compiler.OP_NEGATE:
			if !vm.peek(0).IsNumber() {
				return NilValue(), vm.newRuntimeError("Operand must be a number.")
			}
			v := vm.pop()
			vm.push(NumberValue(-v.AsNumber()))

		case compiler.OP_PRINT:
			fmt.Fprintln(vm.cfg.Stdout, vm.pop().String())

		case compiler.OP_JUMP:
			offset := int(code[frame.ip])<<8 | int(code[frame.ip+1])
			frame.ip += 2 + offset

		case compiler.OP_JUMP_IF_FALSE:
			offset := int(code[frame.ip])<<8 | int(code[frame.ip+1])
			frame.ip += 2
			if vm.peek(0).Falsey() {
				frame.ip += offset
			}

		case compiler.OP_LOOP:
			offset := int(code[frame.ip])<<8 | int(code[frame.ip+1])
			frame.ip += 2 - offset

		case compiler.OP_CALL:
			argCount := int(code[frame.ip])
			frame.ip++
			callee := vm.peek(argCount)
			if err := vm.callValue(callee, argCount); err != nil {
				return NilValue(), err
			}

		case compiler.OP_CLOSURE:
			idx := int(code[frame.ip])
			frame.ip++
			constant := frame.closure.Function.Proto.Chunk.Constants[idx]
			proto := constant.Function
			closure := &ObjClosure{
				Function: &ObjFunction{Proto: proto},
				Upvalues: make([]*ObjUpvalue, proto.UpvalueCount),
			}
			for i := 0; i < proto.UpvalueCount; i++ {
				isLocal := code[frame.ip]
				frame.ip++
				index := int(code[frame.ip])
				frame.ip++
				if isLocal == 1 {
					closure.Upvalues[i] = vm.captureUpvalue(&vm.stack[frame.base+index])
				} else {
					closure.Upvalues[i] = frame.closure.Upvalues[index]
				}
			}
			vm.push(ObjValue(closure))

		case compiler.OP_CLOSE_UPVALUE:
			vm.closeUpvalues(&vm.stack[len(vm.stack)-1])
			vm.pop()

		case compiler.OP_RETURN:
			result := vm.pop()
			base := frame.base
			vm.closeUpvalues(&vm.stack[base])
			vm.frames = vm.frames[:len(vm.frames)-1]
			vm.stack = vm.stack[:base]
			if len(vm.frames) == 0 {
				return result, nil
			}
			vm.push(result)

		default:
			return NilValue(), vm.newRuntimeError("unknown opcode %s", op)
		}
	}
}

func (vm *VM) globalName(frame *callFrame, idx int) *ObjString {
	c := frame.closure.Function.Proto.Chunk.Constants[idx]
	return vm.intern(c.String)
}

func (vm *VM) binaryNumberOp(op func(a, b float64) Value) error {
	if !vm.peek(0).IsNumber() || !vm.peek(1).IsNumber() {
		return vm.newRuntimeError("Operands must be numbers.")
	}
	b := vm.pop()
	a := vm.pop()
	vm.push(op(a.AsNumber(), b.AsNumber()))
	return nil
}

func (vm *VM) add() error {
	bVal := vm.peek(0)
	aVal := vm.peek(1)
	switch {
	case aVal.IsNumber() && bVal.IsNumber():
		b := vm.pop()
		a := vm.pop()
		vm.push(NumberValue(a.AsNumber() + b.AsNumber()))
		return nil
	default:
		as, aIsStr := aVal.IsString()
		bs, bIsStr := bVal.IsString()
		if aIsStr && bIsStr {
			vm.pop()
			vm.pop()
			vm.push(ObjValue(vm.intern(as.Value + bs.Value)))
			return nil
		}
		return vm.newRuntimeError("Operands must be two numbers or two strings.")
	}
}
