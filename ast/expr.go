// Copyright 2024 The LSTF Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ast

import "github.com/Prince781/lstf-sub001/token"

// Expression is the abstract node kind for every value-producing node.
// Every expression carries a mutable, weak symbol_reference and a
// lazily assigned value_type (set by the semantic analyzer).
type Expression interface {
	Node
	expressionNode()

	ValueType() DataType
	SymbolReference() Symbol
	SetSymbolReference(Symbol)

	exprState() *exprBase
}

type exprBase struct {
	Header
	symbolRef Symbol
	valueType DataType
}

func newExprBase(ref token.SourceRef) exprBase {
	return exprBase{Header: NewHeader(KindExpression, ref)}
}

func (b *exprBase) expressionNode()             {}
func (b *exprBase) ValueType() DataType         { return b.valueType }
func (b *exprBase) SymbolReference() Symbol     { return b.symbolRef }
func (b *exprBase) SetSymbolReference(s Symbol) { b.symbolRef = s }
func (b *exprBase) exprState() *exprBase        { return b }

// SetValueType assigns e's value_type, applying the data-type aliasing
// rule (D): if t already has a parent, a copy is stored instead. The
// previous value_type, if any, is released.
func SetValueType(e Expression, t DataType) {
	st := e.exprState()
	if st.valueType != nil {
		Release(st.valueType)
	}
	t = AssignDataType(t)
	if t != nil {
		Acquire(t)
		SetParent(t, e)
	}
	st.valueType = t
}

// LiteralKind distinguishes the five literal forms.
type LiteralKind int

const (
	LitNull LiteralKind = iota
	LitInteger
	LitDouble
	LitBoolean
	LitString
)

// Literal is a null/integer/double/boolean/string constant.
type Literal struct {
	exprBase
	Kind        LiteralKind
	IntValue    int64
	DoubleValue float64
	BoolValue   bool
	StringValue string
}

func NewLiteral(ref token.SourceRef, kind LiteralKind) *Literal {
	return &Literal{exprBase: newExprBase(ref), Kind: kind}
}

func (l *Literal) Children() []Node { return nil }
func (l *Literal) Destroy()         {}

// MemberAccess is `inner? . name`. When Inner is nil the expression is
// a simple name.
type MemberAccess struct {
	exprBase
	Inner      Expression
	MemberName string
}

func NewMemberAccess(ref token.SourceRef, inner Expression, name string) *MemberAccess {
	m := &MemberAccess{exprBase: newExprBase(ref), MemberName: name}
	if inner != nil {
		m.Inner = Acquire(inner).(Expression)
		SetParent(inner, m)
	}
	return m
}

func (m *MemberAccess) Children() []Node {
	if m.Inner == nil {
		return nil
	}
	return []Node{m.Inner}
}

func (m *MemberAccess) Destroy() { ReleaseChildren(m) }

// ElementAccess is `base[index]`.
type ElementAccess struct {
	exprBase
	Base  Expression
	Index Expression
}

func NewElementAccess(ref token.SourceRef, base, index Expression) *ElementAccess {
	e := &ElementAccess{exprBase: newExprBase(ref)}
	e.Base = Acquire(base).(Expression)
	SetParent(base, e)
	e.Index = Acquire(index).(Expression)
	SetParent(index, e)
	return e
}

func (e *ElementAccess) Children() []Node { return []Node{e.Base, e.Index} }
func (e *ElementAccess) Destroy()         { ReleaseChildren(e) }

// MethodCall is a call expression, optionally awaited.
type MethodCall struct {
	exprBase
	Target    Expression
	Arguments []Expression
	IsAwaited bool
}

func NewMethodCall(ref token.SourceRef, target Expression, isAwaited bool) *MethodCall {
	c := &MethodCall{exprBase: newExprBase(ref), IsAwaited: isAwaited}
	c.Target = Acquire(target).(Expression)
	SetParent(target, c)
	return c
}

func (c *MethodCall) AddArgument(arg Expression) {
	arg = Acquire(arg).(Expression)
	SetParent(arg, c)
	c.Arguments = append(c.Arguments, arg)
}

func (c *MethodCall) Children() []Node {
	out := make([]Node, 0, 1+len(c.Arguments))
	out = append(out, c.Target)
	for _, a := range c.Arguments {
		out = append(out, a)
	}
	return out
}

func (c *MethodCall) Destroy() { ReleaseChildren(c) }

// ObjectMember is one `(name, is_nullable, value)` entry of an object
// literal.
type ObjectMember struct {
	Name       string
	IsNullable bool
	Value      Expression
}

// ObjectExpr is an object literal (`{ ... }`), optionally a pattern.
type ObjectExpr struct {
	exprBase
	Members   []ObjectMember
	IsPattern bool
}

func NewObjectExpr(ref token.SourceRef, isPattern bool) *ObjectExpr {
	return &ObjectExpr{exprBase: newExprBase(ref), IsPattern: isPattern}
}

func (o *ObjectExpr) AddMember(name string, isNullable bool, value Expression) {
	value = Acquire(value).(Expression)
	SetParent(value, o)
	o.Members = append(o.Members, ObjectMember{Name: name, IsNullable: isNullable, Value: value})
}

func (o *ObjectExpr) Children() []Node {
	out := make([]Node, 0, len(o.Members))
	for _, m := range o.Members {
		out = append(out, m.Value)
	}
	return out
}

func (o *ObjectExpr) Destroy() { ReleaseChildren(o) }

// ArrayExpr is an array literal (`[ ... ]`), optionally a pattern.
type ArrayExpr struct {
	exprBase
	Elements  []Expression
	IsPattern bool
}

func NewArrayExpr(ref token.SourceRef, isPattern bool) *ArrayExpr {
	return &ArrayExpr{exprBase: newExprBase(ref), IsPattern: isPattern}
}

func (a *ArrayExpr) AddElement(e Expression) {
	e = Acquire(e).(Expression)
	SetParent(e, a)
	a.Elements = append(a.Elements, e)
}

func (a *ArrayExpr) Children() []Node {
	out := make([]Node, len(a.Elements))
	for i, e := range a.Elements {
		out[i] = e
	}
	return out
}

func (a *ArrayExpr) Destroy() { ReleaseChildren(a) }

// Ellipsis is `...`, only valid inside a pattern array/object.
type Ellipsis struct {
	exprBase
}

func NewEllipsis(ref token.SourceRef) *Ellipsis {
	return &Ellipsis{exprBase: newExprBase(ref)}
}

func (e *Ellipsis) Children() []Node { return nil }
func (e *Ellipsis) Destroy()         {}

// UnaryOp enumerates the unary operators.
type UnaryOp int

const (
	UnaryNot UnaryOp = iota
	UnaryNegate
	UnaryTypeOf
)

// UnaryExpr is a prefix unary expression.
type UnaryExpr struct {
	exprBase
	Op      UnaryOp
	Operand Expression
}

func NewUnaryExpr(ref token.SourceRef, op UnaryOp, operand Expression) *UnaryExpr {
	u := &UnaryExpr{exprBase: newExprBase(ref), Op: op}
	u.Operand = Acquire(operand).(Expression)
	SetParent(operand, u)
	return u
}

func (u *UnaryExpr) Children() []Node { return []Node{u.Operand} }
func (u *UnaryExpr) Destroy()         { ReleaseChildren(u) }

// BinaryOp enumerates the binary operators.
type BinaryOp int

const (
	BinAdd BinaryOp = iota
	BinSub
	BinMul
	BinDiv
	BinMod
	BinAnd
	BinOr
	BinEqual
	BinNotEqual
	BinLessThan
	BinGreaterThan
	BinLessThanEqual
	BinGreaterThanEqual
	BinIn
	BinCoalesce
)

// BinaryExpr is `left op right`.
type BinaryExpr struct {
	exprBase
	Op    BinaryOp
	Left  Expression
	Right Expression
}

func NewBinaryExpr(ref token.SourceRef, op BinaryOp, left, right Expression) *BinaryExpr {
	e := &BinaryExpr{exprBase: newExprBase(ref), Op: op}
	e.Left = Acquire(left).(Expression)
	SetParent(left, e)
	e.Right = Acquire(right).(Expression)
	SetParent(right, e)
	return e
}

func (e *BinaryExpr) Children() []Node { return []Node{e.Left, e.Right} }
func (e *BinaryExpr) Destroy()         { ReleaseChildren(e) }

// ConditionalExpr is `cond ? then : else`.
type ConditionalExpr struct {
	exprBase
	Condition Expression
	Then      Expression
	Else      Expression
}

func NewConditionalExpr(ref token.SourceRef, cond, then, els Expression) *ConditionalExpr {
	e := &ConditionalExpr{exprBase: newExprBase(ref)}
	e.Condition = Acquire(cond).(Expression)
	SetParent(cond, e)
	e.Then = Acquire(then).(Expression)
	SetParent(then, e)
	e.Else = Acquire(els).(Expression)
	SetParent(els, e)
	return e
}

func (e *ConditionalExpr) Children() []Node { return []Node{e.Condition, e.Then, e.Else} }
func (e *ConditionalExpr) Destroy()         { ReleaseChildren(e) }

// LambdaExpr is an anonymous function: `(params) => expr` or
// `(params) => { stmts }`. It owns its own scope (containing its
// parameters) and accumulates captured_locals during resolution.
type LambdaExpr struct {
	exprBase
	scope          *Scope
	Parameters     []Symbol
	ExpressionBody Expression
	StatementsBody *Block
	IsAsync        bool
	capturedLocals map[Symbol]bool
	capturedOrder  []Symbol
}

func NewLambdaExpr(ref token.SourceRef, isAsync bool) *LambdaExpr {
	l := &LambdaExpr{exprBase: newExprBase(ref), IsAsync: isAsync, capturedLocals: map[Symbol]bool{}}
	l.scope = NewScope(l)
	return l
}

func (l *LambdaExpr) OwnScope() *Scope { return l.scope }

// AddParameter appends a parameter. The parameter is inserted into the
// lambda's scope by the symbol resolver, not here, so that redefinition
// diagnostics fire for duplicate parameter names.
func (l *LambdaExpr) AddParameter(param Symbol) {
	param = Acquire(param).(Symbol)
	SetParent(param, l)
	l.Parameters = append(l.Parameters, param)
}

func (l *LambdaExpr) SetExpressionBody(e Expression) {
	l.ExpressionBody = Acquire(e).(Expression)
	SetParent(e, l)
}

func (l *LambdaExpr) SetStatementsBody(b *Block) {
	l.StatementsBody = Acquire(b).(*Block)
	SetParent(b, l)
}

// AddCapturedLocal records that this lambda closes over sym, per the
// closure-capture rule in the resolver (§4.5 point 4).
func (l *LambdaExpr) AddCapturedLocal(sym Symbol) {
	if !l.capturedLocals[sym] {
		l.capturedLocals[sym] = true
		l.capturedOrder = append(l.capturedOrder, sym)
	}
}

// CapturedLocals returns every symbol captured so far, in the order
// first captured.
func (l *LambdaExpr) CapturedLocals() []Symbol {
	out := make([]Symbol, len(l.capturedOrder))
	copy(out, l.capturedOrder)
	return out
}

func (l *LambdaExpr) Children() []Node {
	out := make([]Node, 0, len(l.Parameters)+1)
	for _, p := range l.Parameters {
		out = append(out, p)
	}
	if l.ExpressionBody != nil {
		out = append(out, l.ExpressionBody)
	} else if l.StatementsBody != nil {
		out = append(out, l.StatementsBody)
	}
	return out
}

func (l *LambdaExpr) Destroy() {
	ReleaseChildren(l)
	Release(l.scope)
}
