package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/go-faster/jx"
	"github.com/mna/mainer"
	"github.com/mna/nenuphar-lox/lang/compiler"
)

// Disassemble compiles the source file named in args without running it and
// prints its bytecode, followed by the bytecode of every nested function
// constant found in its constant pool. With --json it emits the same
// information as a JSON document instead of the textual listing, for tools
// that want to consume compiled output programmatically.
func (c *Cmd) Disassemble(_ context.Context, stdio mainer.Stdio, args []string) error {
	src, err := os.ReadFile(args[0])
	if err != nil {
		return printError(stdio, err)
	}

	proto, err := compiler.Compile(src)
	if err != nil {
		return printError(stdio, err)
	}

	if c.JSON {
		e := jx.GetEncoder()
		defer jx.PutEncoder(e)
		encodeProtoJSON(e, proto, "<script>")
		fmt.Fprintln(stdio.Stdout, e.String())
		return nil
	}

	printProto(stdio, proto, "<script>")
	return nil
}

func printProto(stdio mainer.Stdio, proto *compiler.FunctionProto, name string) {
	fmt.Fprint(stdio.Stdout, proto.Chunk.Disassemble(name))
	for _, constant := range proto.Chunk.Constants {
		if constant.Kind == compiler.ConstFunction {
			printProto(stdio, constant.Function, constant.Function.Name)
		}
	}
}

// encodeProtoJSON writes proto and its nested function constants as a JSON
// object: {"name":..., "arity":..., "upvalueCount":..., "code":[...], "constants":[...], "functions":[...]}.
func encodeProtoJSON(e *jx.Encoder, proto *compiler.FunctionProto, name string) {
	e.ObjStart()

	e.FieldStart("name")
	e.Str(name)

	e.FieldStart("arity")
	e.Int(proto.Arity)

	e.FieldStart("upvalueCount")
	e.Int(proto.UpvalueCount)

	e.FieldStart("code")
	e.ArrStart()
	for _, b := range proto.Chunk.Code {
		e.UInt8(b)
	}
	e.ArrEnd()

	e.FieldStart("constants")
	e.ArrStart()
	for _, c := range proto.Chunk.Constants {
		encodeConstantJSON(e, c)
	}
	e.ArrEnd()

	var nested []compiler.Constant
	for _, c := range proto.Chunk.Constants {
		if c.Kind == compiler.ConstFunction {
			nested = append(nested, c)
		}
	}
	e.FieldStart("functions")
	e.ArrStart()
	for _, c := range nested {
		encodeProtoJSON(e, c.Function, c.Function.Name)
	}
	e.ArrEnd()

	e.ObjEnd()
}

func encodeConstantJSON(e *jx.Encoder, c compiler.Constant) {
	switch c.Kind {
	case compiler.ConstNumber:
		e.Float64(c.Number)
	case compiler.ConstString:
		e.Str(c.String)
	case compiler.ConstFunction:
		if c.Function.Name == "" {
			e.Str("<script>")
		} else {
			e.Str(fmt.Sprintf("<fn %s>", c.Function.Name))
		}
	default:
		e.Null()
	}
}
