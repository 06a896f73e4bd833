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

// Package analyze implements the semantic analyzer, the second compiler
// pass: a depth-first walk that infers every expression's value type
// from the leaves up, checks each against the expected type pushed by
// its context, synthesizes anonymous interfaces for object literals,
// and verifies the two mandatory top-level assignments.
//
// The analyzer assumes a resolved tree: it must only run when the
// symbol resolver finished with zero errors.
package analyze

import (
	"fmt"

	"github.com/Prince781/lstf-sub001/ast"
	"github.com/Prince781/lstf-sub001/errors"
	"github.com/Prince781/lstf-sub001/scope"
	"github.com/Prince781/lstf-sub001/token"
	"github.com/Prince781/lstf-sub001/types"
)

// Analyzer is the type-inference pass. Besides the scope stack it
// carries a stack of optional expected expression types: the top entry
// is consulted whenever an expression finishes computing its value
// type, to decide widening casts and to report mismatches.
type Analyzer struct {
	ast.BaseVisitor

	file   *ast.File
	sink   *errors.Sink
	scopes []*ast.Scope

	// expected holds one optional entry per active expression context;
	// nil entries mean "no constraint".
	expected []ast.DataType

	// ellipsisAllowed is true only for the direct children of a
	// pattern array or object.
	ellipsisAllowed bool

	numErrors         int
	numInterfaces     int
	nextPatternTestID int
}

// NewAnalyzer creates an analyzer for file reporting to sink.
func NewAnalyzer(file *ast.File, sink *errors.Sink) *Analyzer {
	a := &Analyzer{file: file, sink: sink, nextPatternTestID: 1}
	a.BaseVisitor.V = a
	return a
}

// Analyze runs the pass over the file's top-level block, then checks
// the mandatory assignments against the file's zero location.
func (a *Analyzer) Analyze() {
	ast.Accept(a.file.MainBlock(), a)

	if !a.file.ServerPathAssigned {
		a.errorf(token.DefaultFor(a.file.Path), "assignment to `server_path' required")
	}
	if !a.file.ProjectFilesAssigned {
		a.errorf(token.DefaultFor(a.file.Path), "assignment to `project_files' required")
	}
}

// NumErrors reports how many errors this pass emitted.
func (a *Analyzer) NumErrors() int { return a.numErrors }

func (a *Analyzer) errorf(ref token.SourceRef, format string, args ...interface{}) {
	a.sink.Errorf(ref, format, args...)
	a.numErrors++
}

func (a *Analyzer) pushScope(s *ast.Scope) { a.scopes = append(a.scopes, s) }
func (a *Analyzer) popScope()              { a.scopes = a.scopes[:len(a.scopes)-1] }

func (a *Analyzer) currentScope() *ast.Scope {
	return a.scopes[len(a.scopes)-1]
}

func (a *Analyzer) pushExpected(t ast.DataType) { a.expected = append(a.expected, t) }
func (a *Analyzer) popExpected()                { a.expected = a.expected[:len(a.expected)-1] }

func (a *Analyzer) currentExpected() ast.DataType {
	if len(a.expected) == 0 {
		return nil
	}
	return a.expected[len(a.expected)-1]
}

// VisitBlock pushes the block's scope and a fresh empty expression
// context, so statements inside never observe an enclosing
// expression's expected type.
func (a *Analyzer) VisitBlock(b *ast.Block) {
	a.pushScope(b.OwnScope())
	a.pushExpected(nil)
	ast.AcceptChildren(b, a)
	a.popExpected()
	a.popScope()
}

func (a *Analyzer) VisitSymbol(sym ast.Symbol) {
	if owner, ok := sym.(ast.HasOwnScope); ok {
		a.pushScope(owner.OwnScope())
		ast.AcceptChildren(sym, a)
		a.popScope()
		return
	}
	ast.AcceptChildren(sym, a)
}

func (a *Analyzer) VisitLambdaExpr(l *ast.LambdaExpr) {
	a.pushScope(l.OwnScope())
	a.pushExpected(nil)
	ast.AcceptChildren(l, a)
	a.popExpected()
	a.popScope()
}

// VisitExpression is the uniform post-hook: once an expression's value
// type is known, test it against the expected type on top of the
// stack. A successful test re-labels the expression with the expected
// type, preserving named and widened types through subtyping; a failed
// test is a conversion error. Pattern expectations skip the re-label
// so the matched expression keeps its precise type.
func (a *Analyzer) VisitExpression(e ast.Expression) {
	expected := a.currentExpected()
	if expected == nil || e.ValueType() == nil {
		return
	}
	if expected.IsSupertypeOf(e.ValueType()) {
		if _, ok := expected.(*types.PatternType); !ok {
			ast.SetValueType(e, expected)
		}
		return
	}
	a.errorf(e.SourceRef(), "cannot convert expression of type `%s' to `%s'",
		e.ValueType(), expected)
}

func (a *Analyzer) VisitLiteral(lit *ast.Literal) {
	var t ast.DataType
	switch lit.Kind {
	case ast.LitNull:
		t = types.NewNullType(lit.SourceRef())
	case ast.LitInteger:
		t = types.NewIntegerType(lit.SourceRef())
	case ast.LitDouble:
		t = types.NewDoubleType(lit.SourceRef())
	case ast.LitBoolean:
		t = types.NewBooleanType(lit.SourceRef())
	case ast.LitString:
		t = types.NewStringType(lit.SourceRef())
	}
	ast.SetValueType(lit, t)
}

func (a *Analyzer) VisitEllipsis(e *ast.Ellipsis) {
	if !a.ellipsisAllowed {
		a.errorf(e.SourceRef(), "ellipsis not allowed in this context")
		return
	}
	ast.SetValueType(e, types.NewPatternType(e.SourceRef()))
}

// VisitArrayExpr computes element value types under the expected
// element type (when the context expects an array), then folds them
// left to right into a single element type, growing a union when two
// elements disagree. A pattern array instead permits ellipsis children
// and has the pattern type.
func (a *Analyzer) VisitArrayExpr(arr *ast.ArrayExpr) {
	var elemExpected ast.DataType
	if at, ok := a.currentExpected().(*types.ArrayType); ok {
		elemExpected = at.ElementType()
	}

	oldEllipsis := a.ellipsisAllowed
	a.ellipsisAllowed = arr.IsPattern
	a.pushExpected(elemExpected)
	ast.AcceptChildren(arr, a)
	a.popExpected()
	a.ellipsisAllowed = oldEllipsis

	if arr.IsPattern {
		ast.SetValueType(arr, types.NewPatternType(arr.SourceRef()))
		return
	}

	var elemType ast.DataType
	var union *types.UnionType
	for _, el := range arr.Elements {
		vt := el.ValueType()
		if vt == nil {
			// invalid element; inference for the array is abandoned
			return
		}
		switch {
		case elemType == nil:
			elemType = vt
		case ast.Equals(elemType, vt):
			// fold unchanged
		case union == nil:
			union = types.NewUnionType(elemType.SourceRef(), elemType, vt)
			elemType = union
		default:
			union.AddOption(vt)
		}
	}
	if elemType == nil {
		elemType = types.NewAnyType(arr.SourceRef())
	}
	ast.SetValueType(arr, types.NewArrayType(arr.SourceRef(), elemType))
}

// VisitObjectExpr rejects duplicate members, then either types the
// object as a pattern or synthesizes a fresh anonymous interface from
// the analyzed property types.
func (a *Analyzer) VisitObjectExpr(o *ast.ObjectExpr) {
	seen := map[string]ast.Expression{}
	for _, m := range o.Members {
		if first, ok := seen[m.Name]; ok {
			a.errorf(m.Value.SourceRef(),
				"initializer conflicts with previous initializer of this property")
			a.sink.Notef(first.SourceRef(), "previous initialization is here")
			return
		}
		seen[m.Name] = m.Value
	}

	expected := a.currentExpected()
	_, expectsPattern := expected.(*types.PatternType)

	if o.IsPattern && (expected == nil || expectsPattern) {
		oldEllipsis := a.ellipsisAllowed
		a.ellipsisAllowed = true
		ast.AcceptChildren(o, a)
		a.ellipsisAllowed = oldEllipsis

		ast.SetValueType(o, types.NewPatternType(o.SourceRef()))
		return
	}

	a.numInterfaces++
	iface := scope.NewInterface(o.SourceRef(),
		fmt.Sprintf("<anonymous interface #%d>", a.numInterfaces), true, false)

	var expectedIface *scope.Interface
	if it, ok := expected.(*types.InterfaceType); ok {
		expectedIface = it.InterfaceSymbol()
	}

	for _, m := range o.Members {
		var propExpected ast.DataType
		if expectedIface != nil {
			if prop, ok := expectedIface.LookupMember(m.Name).(*scope.InterfaceProperty); ok {
				propExpected = prop.PropertyType
			}
		}
		a.pushExpected(propExpected)
		ast.Accept(m.Value, a)
		a.popExpected()

		if m.Value.ValueType() == nil {
			return
		}

		prop := scope.NewInterfaceProperty(m.Value.SourceRef(), m.Name, m.IsNullable, false)
		prop.SetPropertyType(m.Value.ValueType())
		_ = iface.AddMember(prop)
	}

	_ = a.currentScope().AddSymbol(iface)
	ast.SetValueType(o, types.NewInterfaceType(o.SourceRef(), iface))
}

// VisitMemberAccess resolves non-trivial accesses from the inner
// expression's value type, then derives the access's own value type
// from the resolved symbol.
func (a *Analyzer) VisitMemberAccess(m *ast.MemberAccess) {
	a.pushExpected(nil)
	ast.AcceptChildren(m, a)
	a.popExpected()

	if m.SymbolReference() == nil {
		if m.Inner == nil {
			// simple names were resolved (or diagnosed) by the resolver
			return
		}
		if !a.resolveMember(m) {
			return
		}
	}

	sym := m.SymbolReference()
	if sym == nil || m.ValueType() != nil {
		return
	}
	switch s := sym.(type) {
	case *scope.Variable:
		if s.VariableType != nil {
			ast.SetValueType(m, s.VariableType)
		}
	case *scope.Function:
		ast.SetValueType(m, types.NewFunctionTypeFromFunction(m.SourceRef(), s))
	case *scope.InterfaceProperty:
		if s.PropertyType != nil {
			ast.SetValueType(m, s.PropertyType)
		}
	case *scope.ObjectProperty:
		if s.PropertyType != nil {
			ast.SetValueType(m, s.PropertyType)
		}
	case *scope.Constant:
		if vt := s.ValueType(); vt != nil {
			ast.SetValueType(m, vt)
		}
	default:
		// an explicit reference to a type symbol has no value type
	}
}

// resolveMember resolves `inner.name`. It reports false when the access
// is invalid or unresolvable. An unchecked access on an `any` or
// `object` value returns false after typing the access `any`; every
// other false return leaves the access untyped, suppressing inference
// for the enclosing expression.
func (a *Analyzer) resolveMember(m *ast.MemberAccess) bool {
	inner := m.Inner

	// a member of a type symbol: an enum constant or interface property
	// accessed through the type's name
	if ts := inner.SymbolReference(); ts != nil && ts.SymbolKind() == ast.SymTypeSymbol {
		var member ast.Symbol
		switch ts := ts.(type) {
		case *scope.Enum:
			member = ts.GetMember(m.MemberName)
		case *scope.Interface:
			member = ts.LookupMember(m.MemberName)
		}
		if member == nil {
			a.errorf(m.SourceRef(), "`%s' is not a member of `%s'", m.MemberName, ts.Name())
			return false
		}
		m.SetSymbolReference(member)
		return true
	}

	if inner.ValueType() == nil {
		a.errorf(inner.SourceRef(),
			"cannot access member `%s' of invalid expression", m.MemberName)
		return false
	}

	switch vt := inner.ValueType().(type) {
	case *types.AnyType, *types.ObjectType:
		// the member is unknowable statically; the access itself is any
		a.sink.Warningf(m.SourceRef(), "unchecked member access")
		ast.SetValueType(m, types.NewAnyType(m.SourceRef()))
		return false
	case *types.InterfaceType:
		member := vt.InterfaceSymbol().LookupMember(m.MemberName)
		if member == nil {
			a.errorf(m.SourceRef(), "`%s' is not a member of `%s'", m.MemberName, vt)
			return false
		}
		m.SetSymbolReference(member)
		return true
	default:
		a.errorf(m.SourceRef(),
			"request for member `%s' in something not an object", m.MemberName)
		return false
	}
}

func (a *Analyzer) VisitElementAccess(e *ast.ElementAccess) {
	a.pushExpected(nil)
	ast.Accept(e.Base, a)
	a.popExpected()

	baseType := e.Base.ValueType()

	var indexExpected ast.DataType
	switch baseType.(type) {
	case *types.ArrayType, *types.StringType:
		indexExpected = types.NewIntegerType(e.Index.SourceRef())
	}
	a.pushExpected(indexExpected)
	ast.Accept(e.Index, a)
	a.popExpected()

	switch bt := baseType.(type) {
	case nil:
		// invalid base; inference suppressed
	case *types.ArrayType:
		ast.SetValueType(e, bt.ElementType())
	case *types.StringType:
		ast.SetValueType(e, types.NewStringType(e.SourceRef()))
	case *types.AnyType, *types.ObjectType:
		ast.SetValueType(e, types.NewAnyType(e.SourceRef()))
	default:
		a.errorf(e.SourceRef(), "cannot index into expression of type `%s'", bt)
	}
}

// VisitMethodCall checks the callee and argument arity, analyzes each
// argument under the matching parameter type, and takes the callee's
// return type as the call's value type. An awaited call unwraps one
// future.
func (a *Analyzer) VisitMethodCall(c *ast.MethodCall) {
	a.pushExpected(nil)
	ast.Accept(c.Target, a)
	a.popExpected()

	targetType := c.Target.ValueType()
	if targetType == nil {
		// still analyze arguments so their own errors surface
		a.pushExpected(nil)
		for _, arg := range c.Arguments {
			ast.Accept(arg, a)
		}
		a.popExpected()
		return
	}

	fnType, ok := targetType.(*types.FunctionType)
	if !ok {
		a.errorf(c.SourceRef(), "expression of type `%s' is not callable", targetType)
		return
	}

	params := fnType.ParameterTypes()
	if len(c.Arguments) != len(params) {
		a.errorf(c.SourceRef(), "call expects %d argument(s), got %d",
			len(params), len(c.Arguments))
	}
	for i, arg := range c.Arguments {
		var expected ast.DataType
		if i < len(params) {
			expected = params[i]
		}
		a.pushExpected(expected)
		ast.Accept(arg, a)
		a.popExpected()
	}

	ret := fnType.ReturnType()
	if c.IsAwaited {
		fut, ok := ret.(*types.FutureType)
		if !ok {
			a.errorf(c.SourceRef(), "cannot await expression of type `%s'", ret)
			return
		}
		ast.SetValueType(c, fut.WrappedType())
		return
	}
	ast.SetValueType(c, ret)
}

func (a *Analyzer) VisitUnaryExpr(e *ast.UnaryExpr) {
	a.pushExpected(nil)
	ast.AcceptChildren(e, a)
	a.popExpected()

	operandType := e.Operand.ValueType()
	if operandType == nil {
		return
	}
	switch e.Op {
	case ast.UnaryNot:
		boolean := types.NewBooleanType(e.SourceRef())
		if !boolean.IsSupertypeOf(operandType) {
			a.errorf(e.Operand.SourceRef(),
				"cannot convert expression of type `%s' to `%s'", operandType, boolean)
			return
		}
		ast.SetValueType(e, boolean)
	case ast.UnaryNegate:
		number := types.NewNumberType(e.SourceRef())
		if !number.IsSupertypeOf(operandType) {
			a.errorf(e.Operand.SourceRef(),
				"cannot negate expression of type `%s'", operandType)
			return
		}
		ast.SetValueType(e, operandType)
	case ast.UnaryTypeOf:
		ast.SetValueType(e, types.NewStringType(e.SourceRef()))
	}
}

func (a *Analyzer) VisitBinaryExpr(e *ast.BinaryExpr) {
	a.pushExpected(nil)
	ast.AcceptChildren(e, a)
	a.popExpected()

	left, right := e.Left.ValueType(), e.Right.ValueType()
	if left == nil || right == nil {
		return
	}

	number := types.NewNumberType(e.SourceRef())
	boolean := types.NewBooleanType(e.SourceRef())
	isString := func(t ast.DataType) bool { _, ok := t.(*types.StringType); return ok }

	switch e.Op {
	case ast.BinAdd, ast.BinSub, ast.BinMul, ast.BinDiv, ast.BinMod:
		if e.Op == ast.BinAdd && isString(left) && isString(right) {
			ast.SetValueType(e, types.NewStringType(e.SourceRef()))
			return
		}
		if !number.IsSupertypeOf(left) || !number.IsSupertypeOf(right) {
			a.errorf(e.SourceRef(),
				"invalid operands of types `%s' and `%s' to arithmetic operation", left, right)
			return
		}
		ast.SetValueType(e, promoteNumeric(e, left, right))
	case ast.BinLessThan, ast.BinGreaterThan, ast.BinLessThanEqual, ast.BinGreaterThanEqual:
		comparable := (number.IsSupertypeOf(left) && number.IsSupertypeOf(right)) ||
			(isString(left) && isString(right))
		if !comparable {
			a.errorf(e.SourceRef(),
				"invalid operands of types `%s' and `%s' to comparison", left, right)
			return
		}
		ast.SetValueType(e, boolean)
	case ast.BinAnd, ast.BinOr:
		if !boolean.IsSupertypeOf(left) || !boolean.IsSupertypeOf(right) {
			a.errorf(e.SourceRef(),
				"invalid operands of types `%s' and `%s' to logical operation", left, right)
			return
		}
		ast.SetValueType(e, boolean)
	case ast.BinEqual, ast.BinNotEqual, ast.BinIn:
		ast.SetValueType(e, boolean)
	case ast.BinCoalesce:
		if ast.Equals(left, right) {
			ast.SetValueType(e, left)
			return
		}
		ast.SetValueType(e, types.NewUnionType(e.SourceRef(), left, right))
	}
}

// promoteNumeric implements the numeric tower for arithmetic results:
// double absorbs integer, number absorbs everything below it.
func promoteNumeric(e ast.Expression, left, right ast.DataType) ast.DataType {
	if _, ok := left.(*types.NumberType); ok {
		return types.NewNumberType(e.SourceRef())
	}
	if _, ok := right.(*types.NumberType); ok {
		return types.NewNumberType(e.SourceRef())
	}
	if _, ok := left.(*types.DoubleType); ok {
		return types.NewDoubleType(e.SourceRef())
	}
	if _, ok := right.(*types.DoubleType); ok {
		return types.NewDoubleType(e.SourceRef())
	}
	return types.NewIntegerType(e.SourceRef())
}

func (a *Analyzer) VisitConditionalExpr(e *ast.ConditionalExpr) {
	a.pushExpected(types.NewBooleanType(e.Condition.SourceRef()))
	ast.Accept(e.Condition, a)
	a.popExpected()

	a.pushExpected(nil)
	ast.Accept(e.Then, a)
	ast.Accept(e.Else, a)
	a.popExpected()

	thenType, elseType := e.Then.ValueType(), e.Else.ValueType()
	if thenType == nil || elseType == nil {
		return
	}
	if ast.Equals(thenType, elseType) {
		ast.SetValueType(e, thenType)
		return
	}
	ast.SetValueType(e, types.NewUnionType(e.SourceRef(), thenType, elseType))
}

// VisitAssignmentStmt drives inference in the direction the statement
// dictates: a declaration without an explicit type flows right to
// left, everything else flows the left-hand type into the right-hand
// side as its expected type. Assignments to the two mandatory builtins
// are recorded on the file.
func (a *Analyzer) VisitAssignmentStmt(s *ast.AssignmentStmt) {
	if s.IsDeclaration {
		v, ok := s.LHS.SymbolReference().(*scope.Variable)
		if !ok {
			a.errorf(s.SourceRef(), "left hand of assignment must be a variable")
			return
		}
		if v.VariableType == nil {
			// infer the variable's type from the right-hand side
			oldEllipsis := a.ellipsisAllowed
			a.ellipsisAllowed = false
			ast.Accept(s.RHS, a)
			a.ellipsisAllowed = oldEllipsis

			if rt := s.RHS.ValueType(); rt != nil {
				v.SetVariableType(rt)
				ast.SetValueType(s.LHS, rt)
			}
		} else {
			if s.LHS.ValueType() == nil {
				ast.SetValueType(s.LHS, v.VariableType)
			}
			oldEllipsis := a.ellipsisAllowed
			a.ellipsisAllowed = false
			a.pushExpected(v.VariableType)
			ast.Accept(s.RHS, a)
			a.popExpected()
			a.ellipsisAllowed = oldEllipsis
		}
	} else {
		oldEllipsis := a.ellipsisAllowed
		a.ellipsisAllowed = false
		ast.Accept(s.LHS, a)
		a.pushExpected(s.LHS.ValueType())
		ast.Accept(s.RHS, a)
		a.popExpected()
		a.ellipsisAllowed = oldEllipsis
	}

	if sym := s.LHS.SymbolReference(); sym != nil {
		cur := a.currentScope()
		if sym == cur.Lookup("server_path") {
			a.file.ServerPathAssigned = true
		}
		if sym == cur.Lookup("project_files") {
			a.file.ProjectFilesAssigned = true
		}
	}
}

// VisitPatternTestStmt analyzes the pattern side first, then the
// matched expression under the pattern type, so the pattern subtype
// rule decides which value types are structurally matchable.
func (a *Analyzer) VisitPatternTestStmt(p *ast.PatternTestStmt) {
	p.TestID = a.nextPatternTestID
	a.nextPatternTestID++

	oldEllipsis := a.ellipsisAllowed
	a.ellipsisAllowed = false
	ast.Accept(p.Pattern, a)

	a.pushExpected(p.Pattern.ValueType())
	ast.Accept(p.Expression, a)
	a.popExpected()
	a.ellipsisAllowed = oldEllipsis
}

// VisitReturnStmt analyzes the returned expression under the enclosing
// function's return type.
func (a *Analyzer) VisitReturnStmt(s *ast.ReturnStmt) {
	if s.Expression == nil {
		return
	}
	var expected ast.DataType
	if fn := a.enclosingFunction(); fn != nil {
		expected = fn.ReturnType
	}
	a.pushExpected(expected)
	ast.Accept(s.Expression, a)
	a.popExpected()
}

func (a *Analyzer) VisitIfStmt(s *ast.IfStmt) {
	a.pushExpected(types.NewBooleanType(s.Condition.SourceRef()))
	ast.Accept(s.Condition, a)
	a.popExpected()

	ast.Accept(s.TrueBranch, a)
	if s.FalseBranch != nil {
		ast.Accept(s.FalseBranch, a)
	}
}

func (a *Analyzer) VisitAssertStmt(s *ast.AssertStmt) {
	a.pushExpected(types.NewBooleanType(s.Expression.SourceRef()))
	ast.AcceptChildren(s, a)
	a.popExpected()
}

// enclosingFunction climbs from the current scope's owner to the
// nearest function symbol, skipping lambda expressions (a lambda's
// return type is inferred, never declared).
func (a *Analyzer) enclosingFunction() *scope.Function {
	var n ast.Node = a.currentScope().Owner()
	for n != nil {
		if fn, ok := n.(*scope.Function); ok {
			return fn
		}
		n = n.Parent()
	}
	return nil
}
