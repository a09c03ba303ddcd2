// Package machine implements the virtual machine that executes the
// bytecode compiled by package compiler. It owns the runtime representation
// of values (Value, Object) and the execution loop that interprets a
// compiler.Chunk's instruction stream.
package machine

import (
	"fmt"
	"strconv"
)

// Kind identifies which field of a Value is meaningful. Value is a tagged
// union rather than an interface so that nil, booleans and numbers never
// allocate, the way original_source's value.h represents them.
type Kind uint8

//nolint:revive
const (
	KindNil Kind = iota
	KindBool
	KindNumber
	KindObj
)

// Value is a Lox runtime value: nil, a boolean, a number, or a reference to
// a heap Object (string, function, closure, native, or upvalue).
type Value struct {
	kind   Kind
	b      bool
	number float64
	obj    Object
}

func NilValue() Value             { return Value{kind: KindNil} }
func BoolValue(b bool) Value      { return Value{kind: KindBool, b: b} }
func NumberValue(n float64) Value { return Value{kind: KindNumber, number: n} }
func ObjValue(o Object) Value     { return Value{kind: KindObj, obj: o} }

func (v Value) IsNil() bool    { return v.kind == KindNil }
func (v Value) IsBool() bool   { return v.kind == KindBool }
func (v Value) IsNumber() bool { return v.kind == KindNumber }
func (v Value) IsObj() bool    { return v.kind == KindObj }

func (v Value) AsBool() bool      { return v.b }
func (v Value) AsNumber() float64 { return v.number }
func (v Value) AsObj() Object     { return v.obj }

// IsString reports whether v holds a string object, returning it for
// convenience.
func (v Value) IsString() (*ObjString, bool) {
	if v.kind != KindObj {
		return nil, false
	}
	s, ok := v.obj.(*ObjString)
	return s, ok
}

// Falsey implements Lox's truthiness rule: nil and false are falsey,
// everything else (including 0 and the empty string) is truthy.
func (v Value) Falsey() bool {
	switch v.kind {
	case KindNil:
		return true
	case KindBool:
		return !v.b
	default:
		return false
	}
}

func (v Value) Truthy() bool { return !v.Falsey() }

// TypeName returns the short name of v's runtime type, used in error
// messages.
func (v Value) TypeName() string {
	switch v.kind {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindObj:
		return v.obj.objType()
	default:
		return "invalid"
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindNil:
		return "nil"
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindNumber:
		return formatNumber(v.number)
	case KindObj:
		return v.obj.String()
	default:
		return "<invalid value>"
	}
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'g', -1, 64)
}

// valuesEqual implements Lox's "==": numbers and booleans compare by value,
// nil equals only nil, strings compare by content (guaranteed cheap since
// strings are interned), and every other object compares by identity.
func valuesEqual(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNil:
		return true
	case KindBool:
		return a.b == b.b
	case KindNumber:
		return a.number == b.number
	case KindObj:
		if as, ok := a.obj.(*ObjString); ok {
			if bs, ok := b.obj.(*ObjString); ok {
				return as == bs // interned: pointer equality implies content equality
			}
			return false
		}
		return a.obj == b.obj
	default:
		panic(fmt.Sprintf("valuesEqual: unexpected kind %d", a.kind))
	}
}
