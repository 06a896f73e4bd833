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

// Visitor is the double-dispatch surface both compiler passes implement.
//
// Each concrete hook is responsible for recursing into its node's
// children (ordinarily by calling AcceptChildren), which lets a pass
// orchestrate child visits itself: the analyzer visits an assignment's
// right-hand side under a pushed expected type, for instance. Symbols
// and data types are dispatched through a single hook each; passes
// type-switch on the concrete kind inside.
//
// VisitStatement and VisitExpression are abstract post-hooks: Accept
// fires them after the concrete hook for every statement or expression,
// so pass-wide behavior (the analyzer's expected-type cast) applies
// uniformly without being restated per node kind.
type Visitor interface {
	VisitDeclarationStmt(*DeclarationStmt)
	VisitAssignmentStmt(*AssignmentStmt)
	VisitExpressionStmt(*ExpressionStmt)
	VisitPatternTestStmt(*PatternTestStmt)
	VisitIfStmt(*IfStmt)
	VisitReturnStmt(*ReturnStmt)
	VisitAssertStmt(*AssertStmt)

	VisitLiteral(*Literal)
	VisitMemberAccess(*MemberAccess)
	VisitElementAccess(*ElementAccess)
	VisitMethodCall(*MethodCall)
	VisitObjectExpr(*ObjectExpr)
	VisitArrayExpr(*ArrayExpr)
	VisitEllipsis(*Ellipsis)
	VisitUnaryExpr(*UnaryExpr)
	VisitBinaryExpr(*BinaryExpr)
	VisitConditionalExpr(*ConditionalExpr)
	VisitLambdaExpr(*LambdaExpr)

	VisitBlock(*Block)
	VisitSymbol(Symbol)
	VisitDataType(DataType)

	VisitStatement(Statement)
	VisitExpression(Expression)
}

// Accept dispatches n to v's hook for n's concrete kind, then to the
// abstract statement/expression post-hook where applicable. Scopes are
// inert: they are never visited and never descended into.
func Accept(n Node, v Visitor) {
	switch n := n.(type) {
	case nil:
		return
	case *DeclarationStmt:
		v.VisitDeclarationStmt(n)
		v.VisitStatement(n)
	case *AssignmentStmt:
		v.VisitAssignmentStmt(n)
		v.VisitStatement(n)
	case *ExpressionStmt:
		v.VisitExpressionStmt(n)
		v.VisitStatement(n)
	case *PatternTestStmt:
		v.VisitPatternTestStmt(n)
		v.VisitStatement(n)
	case *IfStmt:
		v.VisitIfStmt(n)
		v.VisitStatement(n)
	case *ReturnStmt:
		v.VisitReturnStmt(n)
		v.VisitStatement(n)
	case *AssertStmt:
		v.VisitAssertStmt(n)
		v.VisitStatement(n)
	case *Literal:
		v.VisitLiteral(n)
		v.VisitExpression(n)
	case *MemberAccess:
		v.VisitMemberAccess(n)
		v.VisitExpression(n)
	case *ElementAccess:
		v.VisitElementAccess(n)
		v.VisitExpression(n)
	case *MethodCall:
		v.VisitMethodCall(n)
		v.VisitExpression(n)
	case *ObjectExpr:
		v.VisitObjectExpr(n)
		v.VisitExpression(n)
	case *ArrayExpr:
		v.VisitArrayExpr(n)
		v.VisitExpression(n)
	case *Ellipsis:
		v.VisitEllipsis(n)
		v.VisitExpression(n)
	case *UnaryExpr:
		v.VisitUnaryExpr(n)
		v.VisitExpression(n)
	case *BinaryExpr:
		v.VisitBinaryExpr(n)
		v.VisitExpression(n)
	case *ConditionalExpr:
		v.VisitConditionalExpr(n)
		v.VisitExpression(n)
	case *LambdaExpr:
		v.VisitLambdaExpr(n)
		v.VisitExpression(n)
	case *Block:
		v.VisitBlock(n)
	case *Scope:
		// inert
	default:
		switch n := n.(type) {
		case DataType:
			v.VisitDataType(n)
		case Symbol:
			v.VisitSymbol(n)
		}
	}
}

// AcceptChildren runs Accept on each of n's children in order.
func AcceptChildren(n Node, v Visitor) {
	for _, c := range n.Children() {
		Accept(c, v)
	}
}

// BaseVisitor supplies default behavior for every hook: concrete hooks
// descend into children, abstract post-hooks do nothing. V must be set
// to the outermost visitor so that defaults re-dispatch through the
// embedding pass rather than through BaseVisitor itself.
type BaseVisitor struct {
	V Visitor
}

func (b *BaseVisitor) VisitDeclarationStmt(s *DeclarationStmt) { AcceptChildren(s, b.V) }
func (b *BaseVisitor) VisitAssignmentStmt(s *AssignmentStmt)   { AcceptChildren(s, b.V) }
func (b *BaseVisitor) VisitExpressionStmt(s *ExpressionStmt)   { AcceptChildren(s, b.V) }
func (b *BaseVisitor) VisitPatternTestStmt(s *PatternTestStmt) { AcceptChildren(s, b.V) }
func (b *BaseVisitor) VisitIfStmt(s *IfStmt)                   { AcceptChildren(s, b.V) }
func (b *BaseVisitor) VisitReturnStmt(s *ReturnStmt)           { AcceptChildren(s, b.V) }
func (b *BaseVisitor) VisitAssertStmt(s *AssertStmt)           { AcceptChildren(s, b.V) }

func (b *BaseVisitor) VisitLiteral(e *Literal)                 { AcceptChildren(e, b.V) }
func (b *BaseVisitor) VisitMemberAccess(e *MemberAccess)       { AcceptChildren(e, b.V) }
func (b *BaseVisitor) VisitElementAccess(e *ElementAccess)     { AcceptChildren(e, b.V) }
func (b *BaseVisitor) VisitMethodCall(e *MethodCall)           { AcceptChildren(e, b.V) }
func (b *BaseVisitor) VisitObjectExpr(e *ObjectExpr)           { AcceptChildren(e, b.V) }
func (b *BaseVisitor) VisitArrayExpr(e *ArrayExpr)             { AcceptChildren(e, b.V) }
func (b *BaseVisitor) VisitEllipsis(e *Ellipsis)               { AcceptChildren(e, b.V) }
func (b *BaseVisitor) VisitUnaryExpr(e *UnaryExpr)             { AcceptChildren(e, b.V) }
func (b *BaseVisitor) VisitBinaryExpr(e *BinaryExpr)           { AcceptChildren(e, b.V) }
func (b *BaseVisitor) VisitConditionalExpr(e *ConditionalExpr) { AcceptChildren(e, b.V) }
func (b *BaseVisitor) VisitLambdaExpr(e *LambdaExpr)           { AcceptChildren(e, b.V) }

func (b *BaseVisitor) VisitBlock(blk *Block)     { AcceptChildren(blk, b.V) }
func (b *BaseVisitor) VisitSymbol(s Symbol)      { AcceptChildren(s, b.V) }
func (b *BaseVisitor) VisitDataType(d DataType)  { AcceptChildren(d, b.V) }
func (b *BaseVisitor) VisitStatement(Statement)  {}
func (b *BaseVisitor) VisitExpression(Expression) {}

// Inspect traverses the tree rooted at n in depth-first order, calling
// f for every node. If f returns false, the node's children are
// skipped. Used for lightweight sub-walks such as the resolver's
// circular-alias detector.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	for _, c := range n.Children() {
		Inspect(c, f)
	}
}
