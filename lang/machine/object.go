package machine

import (
	"fmt"

	"github.com/mna/nenuphar-lox/lang/compiler"
)

// ObjectType identifies the concrete kind of a heap Object.
type ObjectType uint8

//nolint:revive
const (
	ObjTypeString ObjectType = iota
	ObjTypeFunction
	ObjTypeNative
	ObjTypeClosure
	ObjTypeUpvalue
)

// Object is implemented by every heap-allocated runtime value. objType and
// String give every Object a uniform header the way original_source's Obj
// struct gives every heap value a common Type tag.
type Object interface {
	objType() string
	String() string
}

// ObjString is an interned string. Two ObjStrings with equal content are
// always the same pointer (see VM.intern), so string equality is pointer
// equality.
type ObjString struct {
	Value string
}

func (s *ObjString) objType() string { return "string" }
func (s *ObjString) String() string  { return s.Value }

// ObjFunction is the runtime wrapper around a compiled function prototype.
// It is never called directly; OP_CLOSURE wraps one in an ObjClosure that
// carries the function's captured upvalues.
type ObjFunction struct {
	Proto *compiler.FunctionProto
}

func (f *ObjFunction) objType() string { return "function" }
func (f *ObjFunction) String() string {
	if f.Proto.Name == "" {
		return "<script>"
	}
	return fmt.Sprintf("<fn %s>", f.Proto.Name)
}

// NativeFn is the signature of a function implemented in Go and exposed to
// Lox code as a callable global, such as clock.
type NativeFn func(vm *VM, args []Value) (Value, error)

// ObjNative wraps a NativeFn so it can be stored in a Value and called by
// OP_CALL like any other callable.
type ObjNative struct {
	Name string
	Fn   NativeFn
}

func (n *ObjNative) objType() string { return "native function" }
func (n *ObjNative) String() string  { return fmt.Sprintf("<native fn %s>", n.Name) }

// ObjUpvalue references a variable captured by a closure. While Location
// points into a live call frame's stack slot the upvalue is "open"; Close
// copies the current value into the upvalue itself and repoints Location
// at that copy, after which further reads/writes no longer touch the
// stack.
type ObjUpvalue struct {
	Location *Value
	closed   Value
	// next links open upvalues in the VM's open-upvalue list, kept sorted by
	// decreasing stack index so a fresh capture can find or insert in order.
	next *ObjUpvalue
}

func (u *ObjUpvalue) objType() string { return "upvalue" }
func (u *ObjUpvalue) String() string  { return "upvalue" }

func (u *ObjUpvalue) Close() {
	u.closed = *u.Location
	u.Location = &u.closed
}

// ObjClosure pairs a compiled function with the upvalues it captured at the
// point its OP_CLOSURE instruction executed.
type ObjClosure struct {
	Function *ObjFunction
	Upvalues []*ObjUpvalue
}

func (c *ObjClosure) objType() string { return "function" }
func (c *ObjClosure) String() string  { return c.Function.String() }
