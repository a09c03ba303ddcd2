package compiler

import "fmt"

// OpCode identifies a bytecode instruction. Each opcode occupies one byte;
// operands, when present, follow it in the instruction stream as documented
// per opcode below. Multi-byte operands are big-endian, per spec.md §4.3.
type OpCode uint8

//nolint:revive
const (
	OP_CONSTANT      OpCode = iota // 1-byte constant index,        +1
	OP_CONSTANT_LONG               // 2-byte constant index,        +1
	OP_NIL                         // -                             +1
	OP_TRUE                        // -                             +1
	OP_FALSE                       // -                             +1
	OP_POP                         // -                             -1
	OP_GET_LOCAL                   // 1-byte slot,                  +1
	OP_SET_LOCAL                   // 1-byte slot,                   0
	OP_GET_UPVALUE                 // 1-byte slot,                  +1
	OP_SET_UPVALUE                 // 1-byte slot,                   0
	OP_DEFINE_GLOBAL                // 1-byte constant index,        -1
	OP_DEFINE_GLOBAL_LONG           // 2-byte constant index,        -1
	OP_GET_GLOBAL                   // 1-byte constant index,        +1
	OP_GET_GLOBAL_LONG               // 2-byte constant index,        +1
	OP_SET_GLOBAL                    // 1-byte constant index,         0
	OP_SET_GLOBAL_LONG                // 2-byte constant index,         0
	OP_EQUAL
	OP_GREATER
	OP_LESS
	OP_ADD
	OP_SUBTRACT
	OP_MULTIPLY
	OP_DIVIDE
	OP_NOT
	OP_NEGATE
	OP_PRINT
	OP_JUMP          // 2-byte unsigned offset
	OP_JUMP_IF_FALSE // 2-byte unsigned offset
	OP_LOOP          // 2-byte unsigned offset
	OP_CALL          // 1-byte argc
	OP_CLOSURE       // 1-byte const idx, then 2 bytes per upvalue (is_local, index)
	OP_CLOSE_UPVALUE
	OP_RETURN

	opCodeCount
)

var opCodeNames = [...]string{
	OP_CONSTANT:            "OP_CONSTANT",
	OP_CONSTANT_LONG:       "OP_CONSTANT_LONG",
	OP_NIL:                 "OP_NIL",
	OP_TRUE:                "OP_TRUE",
	OP_FALSE:               "OP_FALSE",
	OP_POP:                 "OP_POP",
	OP_GET_LOCAL:           "OP_GET_LOCAL",
	OP_SET_LOCAL:           "OP_SET_LOCAL",
	OP_GET_UPVALUE:         "OP_GET_UPVALUE",
	OP_SET_UPVALUE:         "OP_SET_UPVALUE",
	OP_DEFINE_GLOBAL:       "OP_DEFINE_GLOBAL",
	OP_DEFINE_GLOBAL_LONG:  "OP_DEFINE_GLOBAL_LONG",
	OP_GET_GLOBAL:          "OP_GET_GLOBAL",
	OP_GET_GLOBAL_LONG:     "OP_GET_GLOBAL_LONG",
	OP_SET_GLOBAL:          "OP_SET_GLOBAL",
	OP_SET_GLOBAL_LONG:     "OP_SET_GLOBAL_LONG",
	OP_EQUAL:               "OP_EQUAL",
	OP_GREATER:             "OP_GREATER",
	OP_LESS:                "OP_LESS",
	OP_ADD:                 "OP_ADD",
	OP_SUBTRACT:            "OP_SUBTRACT",
	OP_MULTIPLY:            "OP_MULTIPLY",
	OP_DIVIDE:              "OP_DIVIDE",
	OP_NOT:                 "OP_NOT",
	OP_NEGATE:              "OP_NEGATE",
	OP_PRINT:               "OP_PRINT",
	OP_JUMP:                "OP_JUMP",
	OP_JUMP_IF_FALSE:       "OP_JUMP_IF_FALSE",
	OP_LOOP:                "OP_LOOP",
	OP_CALL:                "OP_CALL",
	OP_CLOSURE:             "OP_CLOSURE",
	OP_CLOSE_UPVALUE:       "OP_CLOSE_UPVALUE",
	OP_RETURN:              "OP_RETURN",
}

func (op OpCode) String() string {
	if op < opCodeCount {
		return opCodeNames[op]
	}
	return fmt.Sprintf("OP_<illegal %d>", uint8(op))
}
