// Package compiler implements the single-pass Pratt-parser compiler: it
// drives the scanner directly and emits bytecode into a Chunk as it parses,
// with no intermediate AST. It is adapted from original_source's
// compiler.c (a clox derivative) and cast into the parser/frame/diagnostic
// shape used throughout the teacher corpus (explicit session state rather
// than file-scope globals, in the spirit of
// github.com/mna/nenuphar/lang/parser's explicit *parser receiver).
package compiler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mna/nenuphar-lox/lang/scanner"
	"github.com/mna/nenuphar-lox/lang/token"
)

const (
	maxLocals    = 256
	maxUpvalues  = 256
	maxArity     = 255
	maxJumpRange = 0xFFFF
)

// FunctionType distinguishes the top-level script, which is compiled as a
// zero-argument function, from a user-declared function, since the two
// differ in a handful of compile-time checks (e.g. "return" at the top
// level is an error).
type FunctionType uint8

//nolint:revive
const (
	FuncScript FunctionType = iota
	FuncFunction
)

// Diagnostic is a single reported compile error.
type Diagnostic struct {
	Line    int
	Where   string // the offending lexeme, or "" for "at end"
	Message string
}

func (d Diagnostic) Error() string {
	if d.Where == "" {
		return fmt.Sprintf("[line %d] Error at end: %s", d.Line, d.Message)
	}
	return fmt.Sprintf("[line %d] Error at '%s': %s", d.Line, d.Where, d.Message)
}

// CompileError aggregates every Diagnostic reported while compiling one
// source. Error recovery means a single source can report more than one.
type CompileError struct {
	Diagnostics []Diagnostic
}

func (e *CompileError) Error() string {
	var sb strings.Builder
	for i, d := range e.Diagnostics {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(d.Error())
	}
	return sb.String()
}

// Unwrap exposes the individual diagnostics to errors.Is/As and to
// errors.Join-style consumers.
func (e *CompileError) Unwrap() []error {
	errs := make([]error, len(e.Diagnostics))
	for i, d := range e.Diagnostics {
		errs[i] = d
	}
	return errs
}

// local is a compile-time record of a block-scoped local variable.
type local struct {
	name       string
	depth      int // -1 = declared but not yet initialized
	isCaptured bool
}

// upvalueSlot identifies, for the function currently being compiled, either
// a local slot in the immediately enclosing function (isLocal=true) or an
// upvalue slot of the enclosing function (isLocal=false).
type upvalueSlot struct {
	index   int
	isLocal bool
}

// frame holds the compile-time state for one function being compiled:
// its chunk, its local-variable table, its upvalue table, and a link to
// the enclosing frame for nested function compilation.
type frame struct {
	enclosing *frame
	function  *FunctionProto
	funcType  FunctionType

	locals     [maxLocals]local
	localCount int
	scopeDepth int

	upvalues [maxUpvalues]upvalueSlot
}

func newFrame(enclosing *frame, name string, funcType FunctionType) *frame {
	fr := &frame{
		enclosing: enclosing,
		function:  &FunctionProto{Name: name, Chunk: NewChunk()},
		funcType:  funcType,
	}
	// Slot 0 is reserved for the function/closure value itself.
	fr.locals[0] = local{name: "", depth: 0}
	fr.localCount = 1
	return fr
}

func (f *frame) chunk() *Chunk { return f.function.Chunk }

// parser drives the scanner and the compile-time frame stack, emitting
// bytecode as a single forward pass over the token stream.
type parser struct {
	sc *scanner.Scanner

	current  token.Token
	previous token.Token

	hadError  bool
	panicking bool
	diags     []Diagnostic

	top *frame // the innermost (currently compiling) frame
}

// Compile compiles source into a top-level function. On failure it returns
// a non-nil *CompileError aggregating every diagnostic reported; the
// compiler attempts to keep compiling past each error (via synchronize) to
// surface as many diagnostics as possible in one pass.
func Compile(source []byte) (*FunctionProto, error) {
	var sc scanner.Scanner
	sc.Init(source)

	p := &parser{sc: &sc}
	p.top = newFrame(nil, "", FuncScript)
	p.advance()
	for !p.match(token.EOF) {
		p.declaration()
	}
	proto := p.endFrame()

	if p.hadError {
		return nil, &CompileError{Diagnostics: p.diags}
	}
	return proto, nil
}

// --- token stream plumbing ---

func (p *parser) advance() {
	p.previous = p.current
	for {
		p.current = p.sc.ScanToken()
		if p.current.Type != token.ERROR {
			break
		}
		p.errorAtCurrent(p.current.Lexeme)
	}
}

func (p *parser) check(t token.Type) bool { return p.current.Type == t }

func (p *parser) match(t token.Type) bool {
	if !p.check(t) {
		return false
	}
	p.advance()
	return true
}

func (p *parser) consume(t token.Type, message string) {
	if p.current.Type == t {
		p.advance()
		return
	}
	p.errorAtCurrent(message)
}

func (p *parser) errorAtCurrent(message string) { p.errorAt(p.current, message) }
func (p *parser) errorAtPrevious(message string) { p.errorAt(p.previous, message) }

func (p *parser) errorAt(tok token.Token, message string) {
	if p.panicking {
		return
	}
	p.panicking = true
	p.hadError = true

	where := tok.Lexeme
	if tok.Type == token.EOF {
		where = ""
	} else if tok.Type == token.ERROR {
		where = ""
	}
	p.diags = append(p.diags, Diagnostic{Line: tok.Line, Where: where, Message: message})
}

// synchronize skips tokens until a likely statement boundary, so that
// compilation can resume reporting further, independent errors.
func (p *parser) synchronize() {
	p.panicking = false
	for p.current.Type != token.EOF {
		if p.previous.Type == token.SEMICOLON {
			return
		}
		switch p.current.Type {
		case token.FUN, token.VAR, token.FOR, token.IF, token.WHILE, token.PRINT, token.RETURN:
			return
		}
		p.advance()
	}
}

// --- emission helpers ---

func (p *parser) emitByte(b byte)            { p.top.chunk().WriteByte(b, p.previous.Line) }
func (p *parser) emitOp(op OpCode)           { p.top.chunk().WriteOp(op, p.previous.Line) }
func (p *parser) emitBytes(a, b byte)        { p.emitByte(a); p.emitByte(b) }
func (p *parser) emitOpByte(op OpCode, b byte) { p.emitOp(op); p.emitByte(b) }

func (p *parser) emitReturn() {
	p.emitOp(OP_NIL)
	p.emitOp(OP_RETURN)
}

// emitIndexed emits shortOp with a 1-byte operand if idx fits in a byte, or
// longOp with a 2-byte big-endian operand otherwise. At the 255/256 boundary
// both encodings decode to the same index.
func (p *parser) emitIndexed(shortOp, longOp OpCode, idx int) {
	if idx <= 0xFF {
		p.emitOp(shortOp)
		p.emitByte(byte(idx))
		return
	}
	p.emitOp(longOp)
	p.emitByte(byte(idx >> 8))
	p.emitByte(byte(idx))
}

func (p *parser) emitConstant(c Constant) {
	idx, err := p.top.chunk().AddConstant(c)
	if err != nil {
		p.errorAtPrevious(err.Error())
		return
	}
	p.emitIndexed(OP_CONSTANT, OP_CONSTANT_LONG, idx)
}

func (p *parser) emitJump(op OpCode) int {
	p.emitOp(op)
	p.emitByte(0xff)
	p.emitByte(0xff)
	return len(p.top.chunk().Code) - 2
}

func (p *parser) patchJump(offset int) {
	jump := len(p.top.chunk().Code) - offset - 2
	if jump > maxJumpRange {
		p.errorAtPrevious("Too much code to jump over.")
	}
	p.top.chunk().Code[offset] = byte(jump >> 8)
	p.top.chunk().Code[offset+1] = byte(jump)
}

func (p *parser) emitLoop(loopStart int) {
	p.emitOp(OP_LOOP)
	offset := len(p.top.chunk().Code) - loopStart + 2
	if offset > maxJumpRange {
		p.errorAtPrevious("Loop body too large.")
	}
	p.emitByte(byte(offset >> 8))
	p.emitByte(byte(offset))
}

// endFrame emits the implicit "return nil" and pops the frame stack,
// returning the function just compiled.
func (p *parser) endFrame() *FunctionProto {
	p.emitReturn()
	proto := p.top.function
	p.top = p.top.enclosing
	return proto
}

// --- scope management ---

func (p *parser) beginScope() { p.top.scopeDepth++ }

func (p *parser) endScope() {
	p.top.scopeDepth--
	for p.top.localCount > 0 && p.top.locals[p.top.localCount-1].depth > p.top.scopeDepth {
		if p.top.locals[p.top.localCount-1].isCaptured {
			p.emitOp(OP_CLOSE_UPVALUE)
		} else {
			p.emitOp(OP_POP)
		}
		p.top.localCount--
	}
}

// --- variable declaration & resolution ---

func (p *parser) identifierConstant(name string) int {
	idx, err := p.top.chunk().AddConstant(Constant{Kind: ConstString, String: name})
	if err != nil {
		p.errorAtPrevious(err.Error())
	}
	return idx
}

func (p *parser) addLocal(name string) {
	if p.top.localCount == maxLocals {
		p.errorAtPrevious("Too many local variables in function.")
		return
	}
	p.top.locals[p.top.localCount] = local{name: name, depth: -1}
	p.top.localCount++
}

func (p *parser) declareVariable() {
	if p.top.scopeDepth == 0 {
		return // globals are resolved dynamically, not declared
	}
	name := p.previous.Lexeme
	for i := p.top.localCount - 1; i >= 0; i-- {
		l := &p.top.locals[i]
		if l.depth != -1 && l.depth < p.top.scopeDepth {
			break
		}
		if l.name == name {
			p.errorAtPrevious("Already a variable with this name in this scope.")
		}
	}
	p.addLocal(name)
}

// parseVariable consumes an identifier token, declares it, and - for a
// global - returns its constant-pool index (the return value is unused for
// locals, since locals are referenced by stack slot, not by name constant).
func (p *parser) parseVariable(errMessage string) int {
	p.consume(token.IDENTIFIER, errMessage)
	p.declareVariable()
	if p.top.scopeDepth > 0 {
		return -1
	}
	return p.identifierConstant(p.previous.Lexeme)
}

func (p *parser) markInitialized() {
	if p.top.scopeDepth == 0 {
		return
	}
	p.top.locals[p.top.localCount-1].depth = p.top.scopeDepth
}

func (p *parser) defineVariable(global int) {
	if p.top.scopeDepth > 0 {
		p.markInitialized()
		return
	}
	p.emitIndexed(OP_DEFINE_GLOBAL, OP_DEFINE_GLOBAL_LONG, global)
}

func (p *parser) resolveLocal(f *frame, name string) int {
	for i := f.localCount - 1; i >= 0; i-- {
		if f.locals[i].name == name {
			if f.locals[i].depth == -1 {
				p.errorAtPrevious("Can't read local variable in its own initializer.")
			}
			return i
		}
	}
	return -1
}

func (p *parser) addUpvalue(f *frame, index int, isLocal bool) int {
	count := f.function.UpvalueCount
	for i := 0; i < count; i++ {
		uv := f.upvalues[i]
		if uv.index == index && uv.isLocal == isLocal {
			return i
		}
	}
	if count == maxUpvalues {
		p.errorAtPrevious("Too many closure variables in function.")
		return 0
	}
	f.upvalues[count] = upvalueSlot{index: index, isLocal: isLocal}
	f.function.UpvalueCount++
	return count
}

func (p *parser) resolveUpvalue(f *frame, name string) int {
	if f.enclosing == nil {
		return -1
	}
	if local := p.resolveLocal(f.enclosing, name); local != -1 {
		f.enclosing.locals[local].isCaptured = true
		return p.addUpvalue(f, local, true)
	}
	if up := p.resolveUpvalue(f.enclosing, name); up != -1 {
		return p.addUpvalue(f, up, false)
	}
	return -1
}

func (p *parser) namedVariable(name string, canAssign bool) {
	if slot := p.resolveLocal(p.top, name); slot != -1 {
		if canAssign && p.match(token.EQUAL) {
			p.expression()
			p.emitOpByte(OP_SET_LOCAL, byte(slot))
		} else {
			p.emitOpByte(OP_GET_LOCAL, byte(slot))
		}
		return
	}
	if slot := p.resolveUpvalue(p.top, name); slot != -1 {
		if canAssign && p.match(token.EQUAL) {
			p.expression()
			p.emitOpByte(OP_SET_UPVALUE, byte(slot))
		} else {
			p.emitOpByte(OP_GET_UPVALUE, byte(slot))
		}
		return
	}
	idx := p.identifierConstant(name)
	if canAssign && p.match(token.EQUAL) {
		p.expression()
		p.emitIndexed(OP_SET_GLOBAL, OP_SET_GLOBAL_LONG, idx)
	} else {
		p.emitIndexed(OP_GET_GLOBAL, OP_GET_GLOBAL_LONG, idx)
	}
}

// --- declarations & statements ---

func (p *parser) declaration() {
	switch {
	case p.match(token.VAR):
		p.varDeclaration()
	case p.match(token.FUN):
		p.funDeclaration()
	default:
		p.statement()
	}
	if p.panicking {
		p.synchronize()
	}
}

func (p *parser) varDeclaration() {
	global := p.parseVariable("Expect variable name.")
	if p.match(token.EQUAL) {
		p.expression()
	} else {
		p.emitOp(OP_NIL)
	}
	p.consume(token.SEMICOLON, "Expect ';' after variable declaration.")
	p.defineVariable(global)
}

func (p *parser) funDeclaration() {
	global := p.parseVariable("Expect function name.")
	p.markInitialized()
	p.function(FuncFunction)
	p.defineVariable(global)
}

func (p *parser) function(funcType FunctionType) {
	name := p.previous.Lexeme
	enclosing := p.top
	p.top = newFrame(enclosing, name, funcType)

	p.beginScope()
	p.consume(token.LEFT_PAREN, "Expect '(' after function name.")
	if !p.check(token.RIGHT_PAREN) {
		for {
			p.top.function.Arity++
			if p.top.function.Arity > maxArity {
				p.errorAtCurrent("Can't have more than 255 parameters.")
			}
			constIdx := p.parseVariable("Expect parameter name.")
			p.defineVariable(constIdx)
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RIGHT_PAREN, "Expect ')' after parameters.")
	p.consume(token.LEFT_BRACE, "Expect '{' before function body.")

	fr := p.top
	p.block()
	proto := p.endFrame()

	idx, err := enclosing.chunk().AddConstant(Constant{Kind: ConstFunction, Function: proto})
	if err != nil {
		p.errorAtPrevious(err.Error())
	}
	p.emitOpByte(OP_CLOSURE, byte(idx))
	for i := 0; i < proto.UpvalueCount; i++ {
		uv := fr.upvalues[i]
		isLocal := byte(0)
		if uv.isLocal {
			isLocal = 1
		}
		p.emitBytes(isLocal, byte(uv.index))
	}
}

func (p *parser) block() {
	for !p.check(token.RIGHT_BRACE) && !p.check(token.EOF) {
		p.declaration()
	}
	p.consume(token.RIGHT_BRACE, "Expect '}' after block.")
}

func (p *parser) statement() {
	switch {
	case p.match(token.PRINT):
		p.printStatement()
	case p.match(token.IF):
		p.ifStatement()
	case p.match(token.WHILE):
		p.whileStatement()
	case p.match(token.FOR):
		p.forStatement()
	case p.match(token.RETURN):
		p.returnStatement()
	case p.match(token.LEFT_BRACE):
		p.beginScope()
		p.block()
		p.endScope()
	default:
		p.expressionStatement()
	}
}

func (p *parser) printStatement() {
	p.expression()
	p.consume(token.SEMICOLON, "Expect ';' after value.")
	p.emitOp(OP_PRINT)
}

func (p *parser) returnStatement() {
	if p.top.funcType == FuncScript {
		p.errorAtPrevious("Can't return from top-level code.")
	}
	if p.match(token.SEMICOLON) {
		p.emitReturn()
		return
	}
	p.expression()
	p.consume(token.SEMICOLON, "Expect ';' after return value.")
	p.emitOp(OP_RETURN)
}

func (p *parser) expressionStatement() {
	p.expression()
	p.consume(token.SEMICOLON, "Expect ';' after expression.")
	p.emitOp(OP_POP)
}

func (p *parser) ifStatement() {
	p.consume(token.LEFT_PAREN, "Expect '(' after 'if'.")
	p.expression()
	p.consume(token.RIGHT_PAREN, "Expect ')' after condition.")

	thenJump := p.emitJump(OP_JUMP_IF_FALSE)
	p.emitOp(OP_POP)
	p.statement()

	elseJump := p.emitJump(OP_JUMP)
	p.patchJump(thenJump)
	p.emitOp(OP_POP)

	if p.match(token.ELSE) {
		p.statement()
	}
	p.patchJump(elseJump)
}

func (p *parser) whileStatement() {
	loopStart := len(p.top.chunk().Code)
	p.consume(token.LEFT_PAREN, "Expect '(' after 'while'.")
	p.expression()
	p.consume(token.RIGHT_PAREN, "Expect ')' after condition.")

	exitJump := p.emitJump(OP_JUMP_IF_FALSE)
	p.emitOp(OP_POP)
	p.statement()
	p.emitLoop(loopStart)

	p.patchJump(exitJump)
	p.emitOp(OP_POP)
}

func (p *parser) forStatement() {
	p.beginScope()
	p.consume(token.LEFT_PAREN, "Expect '(' after 'for'.")

	switch {
	case p.match(token.SEMICOLON):
		// no initializer
	case p.match(token.VAR):
		p.varDeclaration()
	default:
		p.expressionStatement()
	}

	loopStart := len(p.top.chunk().Code)
	exitJump := -1
	if !p.match(token.SEMICOLON) {
		p.expression()
		p.consume(token.SEMICOLON, "Expect ';' after loop condition.")
		exitJump = p.emitJump(OP_JUMP_IF_FALSE)
		p.emitOp(OP_POP)
	}

	if !p.check(token.RIGHT_PAREN) {
		bodyJump := p.emitJump(OP_JUMP)
		incrementStart := len(p.top.chunk().Code)
		p.expression()
		p.emitOp(OP_POP)
		p.consume(token.RIGHT_PAREN, "Expect ')' after for clauses.")

		p.emitLoop(loopStart)
		loopStart = incrementStart
		p.patchJump(bodyJump)
	} else {
		p.consume(token.RIGHT_PAREN, "Expect ')' after for clauses.")
	}

	p.statement()
	p.emitLoop(loopStart)

	if exitJump != -1 {
		p.patchJump(exitJump)
		p.emitOp(OP_POP)
	}
	p.endScope()
}

// --- expressions (Pratt parser) ---

type precedence int

//nolint:revive
const (
	precNone       precedence = iota
	precAssignment            // =
	precOr                    // or
	precAnd                   // and
	precEquality              // == !=
	precComparison            // < > <= >=
	precTerm                  // + -
	precFactor                // * /
	precUnary                 // ! -
	precCall                  // . ()
	precPrimary
)

type parseFn func(p *parser, canAssign bool)

type parseRule struct {
	prefix     parseFn
	infix      parseFn
	precedence precedence
}

var rules map[token.Type]parseRule

func init() {
	rules = map[token.Type]parseRule{
		token.LEFT_PAREN:    {prefix: (*parser).grouping, infix: (*parser).call, precedence: precCall},
		token.MINUS:         {prefix: (*parser).unary, infix: (*parser).binary, precedence: precTerm},
		token.PLUS:          {infix: (*parser).binary, precedence: precTerm},
		token.SLASH:         {infix: (*parser).binary, precedence: precFactor},
		token.STAR:          {infix: (*parser).binary, precedence: precFactor},
		token.BANG:          {prefix: (*parser).unary},
		token.BANG_EQUAL:    {infix: (*parser).binary, precedence: precEquality},
		token.EQUAL_EQUAL:   {infix: (*parser).binary, precedence: precEquality},
		token.GREATER:       {infix: (*parser).binary, precedence: precComparison},
		token.GREATER_EQUAL: {infix: (*parser).binary, precedence: precComparison},
		token.LESS:          {infix: (*parser).binary, precedence: precComparison},
		token.LESS_EQUAL:    {infix: (*parser).binary, precedence: precComparison},
		token.IDENTIFIER:    {prefix: (*parser).variable},
		token.STRING:        {prefix: (*parser).string},
		token.NUMBER:        {prefix: (*parser).number},
		token.AND:           {infix: (*parser).and_, precedence: precAnd},
		token.OR:             {infix: (*parser).or_, precedence: precOr},
		token.FALSE:          {prefix: (*parser).literal},
		token.NIL:            {prefix: (*parser).literal},
		token.TRUE:           {prefix: (*parser).literal},
	}
}

func (p *parser) getRule(t token.Type) parseRule { return rules[t] }

func (p *parser) parsePrecedence(prec precedence) {
	p.advance()
	prefixRule := p.getRule(p.previous.Type).prefix
	if prefixRule == nil {
		p.errorAtPrevious("Expect expression.")
		return
	}
	canAssign := prec <= precAssignment
	prefixRule(p, canAssign)

	for prec <= p.getRule(p.current.Type).precedence {
		p.advance()
		infixRule := p.getRule(p.previous.Type).infix
		infixRule(p, canAssign)
	}

	if canAssign && p.match(token.EQUAL) {
		p.errorAtPrevious("Invalid assignment target.")
	}
}

func (p *parser) expression() { p.parsePrecedence(precAssignment) }

func (p *parser) grouping(_ bool) {
	p.expression()
	p.consume(token.RIGHT_PAREN, "Expect ')' after expression.")
}

func (p *parser) number(_ bool) {
	v, err := strconv.ParseFloat(p.previous.Lexeme, 64)
	if err != nil {
		p.errorAtPrevious("Invalid number literal.")
		return
	}
	p.emitConstant(Constant{Kind: ConstNumber, Number: v})
}

func (p *parser) string(_ bool) {
	// strip the surrounding quotes
	lexeme := p.previous.Lexeme
	p.emitConstant(Constant{Kind: ConstString, String: lexeme[1 : len(lexeme)-1]})
}

func (p *parser) variable(canAssign bool) {
	p.namedVariable(p.previous.Lexeme, canAssign)
}

func (p *parser) literal(_ bool) {
	switch p.previous.Type {
	case token.FALSE:
		p.emitOp(OP_FALSE)
	case token.NIL:
		p.emitOp(OP_NIL)
	case token.TRUE:
		p.emitOp(OP_TRUE)
	}
}

func (p *parser) unary(_ bool) {
	opType := p.previous.Type
	p.parsePrecedence(precUnary)
	switch opType {
	case token.BANG:
		p.emitOp(OP_NOT)
	case token.MINUS:
		p.emitOp(OP_NEGATE)
	}
}

func (p *parser) binary(_ bool) {
	opType := p.previous.Type
	rule := p.getRule(opType)
	p.parsePrecedence(rule.precedence + 1)

	switch opType {
	case token.BANG_EQUAL:
		p.emitOp(OP_EQUAL)
		p.emitOp(OP_NOT)
	case token.EQUAL_EQUAL:
		p.emitOp(OP_EQUAL)
	case token.GREATER:
		p.emitOp(OP_GREATER)
	case token.GREATER_EQUAL:
		p.emitOp(OP_LESS)
		p.emitOp(OP_NOT)
	case token.LESS:
		p.emitOp(OP_LESS)
	case token.LESS_EQUAL:
		p.emitOp(OP_GREATER)
		p.emitOp(OP_NOT)
	case token.PLUS:
		p.emitOp(OP_ADD)
	case token.MINUS:
		p.emitOp(OP_SUBTRACT)
	case token.STAR:
		p.emitOp(OP_MULTIPLY)
	case token.SLASH:
		p.emitOp(OP_DIVIDE)
	}
}

// call compiles the argument list following a callee expression and emits
// OP_CALL, mirroring original_source's call()/argumentList().
func (p *parser) call(_ bool) {
	argCount := p.argumentList()
	p.emitOpByte(OP_CALL, byte(argCount))
}

func (p *parser) argumentList() int {
	argCount := 0
	if !p.check(token.RIGHT_PAREN) {
		for {
			p.expression()
			if argCount == 255 {
				p.errorAtPrevious("Can't have more than 255 arguments.")
			}
			argCount++
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RIGHT_PAREN, "Expect ')' after arguments.")
	return argCount
}

func (p *parser) and_(_ bool) {
	endJump := p.emitJump(OP_JUMP_IF_FALSE)
	p.emitOp(OP_POP)
	p.parsePrecedence(precAnd)
	p.patchJump(endJump)
}

func (p *parser) or_(_ bool) {
	elseJump := p.emitJump(OP_JUMP_IF_FALSE)
	endJump := p.emitJump(OP_JUMP)

	p.patchJump(elseJump)
	p.emitOp(OP_POP)

	p.parsePrecedence(precOr)
	p.patchJump(endJump)
}
