package compiler

import (
	"fmt"
	"strings"
)

// Disassemble renders a chunk's instruction stream as human-readable text,
// one instruction per line, in the offset/line/opcode/operand layout used by
// original_source's debug.c.
func (c *Chunk) Disassemble(name string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "== %s ==\n", name)
	for offset := 0; offset < len(c.Code); {
		offset = c.disassembleInstruction(&sb, offset)
	}
	return sb.String()
}

func (c *Chunk) disassembleInstruction(sb *strings.Builder, offset int) int {
	fmt.Fprintf(sb, "%04d ", offset)
	if offset > 0 && c.LineAt(offset) == c.LineAt(offset-1) {
		fmt.Fprint(sb, "   | ")
	} else {
		fmt.Fprintf(sb, "%4d ", c.LineAt(offset))
	}

	op := OpCode(c.Code[offset])
	switch op {
	case OP_CONSTANT, OP_DEFINE_GLOBAL, OP_GET_GLOBAL, OP_SET_GLOBAL:
		return c.constantInstruction(sb, op, offset, 1)
	case OP_CONSTANT_LONG, OP_DEFINE_GLOBAL_LONG, OP_GET_GLOBAL_LONG, OP_SET_GLOBAL_LONG:
		return c.constantInstruction(sb, op, offset, 2)
	case OP_GET_LOCAL, OP_SET_LOCAL, OP_GET_UPVALUE, OP_SET_UPVALUE, OP_CALL:
		return c.byteInstruction(sb, op, offset)
	case OP_JUMP, OP_JUMP_IF_FALSE:
		return c.jumpInstruction(sb, op, offset, 1)
	case OP_LOOP:
		return c.jumpInstruction(sb, op, offset, -1)
	case OP_CLOSURE:
		return c.closureInstruction(sb, offset)
	default:
		fmt.Fprintf(sb, "%s\n", op)
		return offset + 1
	}
}

func (c *Chunk) constantInstruction(sb *strings.Builder, op OpCode, offset, operandWidth int) int {
	var idx int
	if operandWidth == 1 {
		idx = int(c.Code[offset+1])
	} else {
		idx = int(c.Code[offset+1])<<8 | int(c.Code[offset+2])
	}
	fmt.Fprintf(sb, "%-20s %4d '%s'\n", op, idx, constantText(c.Constants[idx]))
	return offset + 1 + operandWidth
}

func (c *Chunk) byteInstruction(sb *strings.Builder, op OpCode, offset int) int {
	slot := c.Code[offset+1]
	fmt.Fprintf(sb, "%-20s %4d\n", op, slot)
	return offset + 2
}

func (c *Chunk) jumpInstruction(sb *strings.Builder, op OpCode, offset, sign int) int {
	jump := int(c.Code[offset+1])<<8 | int(c.Code[offset+2])
	target := offset + 3 + sign*jump
	fmt.Fprintf(sb, "%-20s %4d -> %d\n", op, offset, target)
	return offset + 3
}

func (c *Chunk) closureInstruction(sb *strings.Builder, offset int) int {
	idx := int(c.Code[offset+1])
	constant := c.Constants[idx]
	fmt.Fprintf(sb, "%-20s %4d '%s'\n", OP_CLOSURE, idx, constantText(constant))
	offset += 2

	if constant.Kind == ConstFunction {
		for i := 0; i < constant.Function.UpvalueCount; i++ {
			isLocal := c.Code[offset]
			index := c.Code[offset+1]
			kind := "upvalue"
			if isLocal == 1 {
				kind = "local"
			}
			fmt.Fprintf(sb, "%04d      |                     %s %d\n", offset, kind, index)
			offset += 2
		}
	}
	return offset
}

func constantText(c Constant) string {
	switch c.Kind {
	case ConstNumber:
		return formatConstantNumber(c.Number)
	case ConstString:
		return c.String
	case ConstFunction:
		if c.Function.Name == "" {
			return "<script>"
		}
		return fmt.Sprintf("<fn %s>", c.Function.Name)
	default:
		return "?"
	}
}

func formatConstantNumber(n float64) string {
	return fmt.Sprintf("%g", n)
}
