package compiler

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// maxConstants is the cap on a chunk's constant pool, per spec.md §4.2.
const maxConstants = 65536

// ConstantKind identifies the kind of value held by a Constant.
type ConstantKind uint8

//nolint:revive
const (
	ConstNumber ConstantKind = iota
	ConstString
	ConstFunction
)

// Constant is one entry of a Chunk's constant pool. The compiler never
// depends on the runtime value model (package machine would have to import
// compiler for the bytecode/Chunk types, so compiler cannot import machine
// back); instead numbers and strings are carried as plain Go values, and the
// machine converts them to runtime Values on demand when an instruction
// reads the pool (interning strings as it goes). A FunctionProto is the
// compiled form of a nested function; the machine wraps it in a runtime
// Closure only when an OP_CLOSURE instruction executes.
type Constant struct {
	Kind     ConstantKind
	Number   float64
	String   string
	Function *FunctionProto
}

// FunctionProto is the compiled representation of a function: its arity,
// how many upvalues its closures must capture, its name (empty for the
// top-level script), and the chunk of bytecode implementing its body.
type FunctionProto struct {
	Name         string
	Arity        int
	UpvalueCount int
	Chunk        *Chunk
}

// lineRun is one run of the line table: Count consecutive bytecode offsets
// that all originated from source Line.
type lineRun struct {
	count int
	line  int
}

// lineTable is a run-length-encoded sequence mapping bytecode offsets to
// source line numbers, grounded on original_source/src/rle_array.c.
type lineTable struct {
	runs []lineRun
}

func (lt *lineTable) push(line int) {
	if n := len(lt.runs); n > 0 && lt.runs[n-1].line == line {
		lt.runs[n-1].count++
		return
	}
	lt.runs = append(lt.runs, lineRun{count: 1, line: line})
}

// lineAt returns the source line that produced the instruction byte at the
// given offset. The original implementation's accessor compared "n <=
// count" while decrementing n by count on each run, which off-by-one
// under-counts by one run boundary; the correct, zero-indexed policy used
// here is "n < count" (see spec.md §9 and DESIGN.md).
func (lt *lineTable) lineAt(offset int) int {
	n := offset
	for _, run := range lt.runs {
		if n < run.count {
			return run.line
		}
		n -= run.count
	}
	panic(fmt.Sprintf("line table: offset %d out of range", offset))
}

// Chunk owns a contiguous byte array of opcodes+operands, a constant pool,
// and a run-length-encoded line table. Each chunk belongs to exactly one
// function.
type Chunk struct {
	Code      []byte
	Constants []Constant
	lines     lineTable
}

// NewChunk returns an empty chunk, growing geometrically as code is
// appended (Go slices already do this; no manual capacity dance is needed
// the way original_source's GROW_ARRAY macro required one).
func NewChunk() *Chunk { return &Chunk{} }

// WriteByte appends a single instruction or operand byte, recording line as
// its source line in the RLE line table.
func (c *Chunk) WriteByte(b byte, line int) {
	c.Code = append(c.Code, b)
	c.lines.push(line)
}

// WriteOp appends an opcode byte.
func (c *Chunk) WriteOp(op OpCode, line int) {
	c.WriteByte(byte(op), line)
}

// LineAt returns the source line that produced the instruction byte at
// offset.
func (c *Chunk) LineAt(offset int) int { return c.lines.lineAt(offset) }

// AddConstant appends val to the constant pool, deduplicating Number and
// String constants by value so repeated literals and identifier names share
// one slot (spec.md §4.4: "constant-pool string deduplication"). Function
// constants are never deduplicated; each compiled function is unique.
// It reports an error if the pool is already at capacity.
func (c *Chunk) AddConstant(val Constant) (int, error) {
	if val.Kind != ConstFunction {
		if i := slices.IndexFunc(c.Constants, func(existing Constant) bool {
			if existing.Kind != val.Kind {
				return false
			}
			switch val.Kind {
			case ConstNumber:
				return existing.Number == val.Number
			case ConstString:
				return existing.String == val.String
			default:
				return false
			}
		}); i != -1 {
			return i, nil
		}
	}
	if len(c.Constants) >= maxConstants {
		return 0, fmt.Errorf("too many constants in one chunk")
	}
	c.Constants = append(c.Constants, val)
	return len(c.Constants) - 1, nil
}
