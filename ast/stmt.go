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

// Statement is the abstract node kind for declaration, assignment,
// expression, pattern-test, if, return, and assert statements.
type Statement interface {
	Node
	statementNode()
}

type stmtBase struct {
	Header
}

func newStmtBase(ref token.SourceRef) stmtBase {
	return stmtBase{Header: NewHeader(KindStatement, ref)}
}

func (b *stmtBase) statementNode() {}

// DeclarationStmt wraps a symbol being declared (functions, type
// aliases, enums, interfaces, or variables). A `let` with an
// initializer is a DeclarationStmt for the variable followed by a
// declaring AssignmentStmt.
type DeclarationStmt struct {
	stmtBase
	Symbol Symbol
}

func NewDeclarationStmt(ref token.SourceRef, sym Symbol) *DeclarationStmt {
	d := &DeclarationStmt{stmtBase: newStmtBase(ref)}
	d.Symbol = Acquire(sym).(Symbol)
	SetParent(sym, d)
	return d
}

func (d *DeclarationStmt) Children() []Node { return []Node{d.Symbol} }
func (d *DeclarationStmt) Destroy()         { ReleaseChildren(d) }

// AssignmentStmt is `lhs = rhs` or, when IsDeclaration is set, `let lhs
// = rhs` / `let lhs: T = rhs`. A declaring assignment does not itself
// add lhs to any scope: the variable is introduced by the preceding
// DeclarationStmt, and lhs refers to it.
type AssignmentStmt struct {
	stmtBase
	IsDeclaration bool
	LHS           Expression
	RHS           Expression
}

func NewAssignmentStmt(ref token.SourceRef, isDeclaration bool, lhs, rhs Expression) *AssignmentStmt {
	a := &AssignmentStmt{stmtBase: newStmtBase(ref), IsDeclaration: isDeclaration}
	a.LHS = Acquire(lhs).(Expression)
	SetParent(lhs, a)
	a.RHS = Acquire(rhs).(Expression)
	SetParent(rhs, a)
	return a
}

func (a *AssignmentStmt) Children() []Node { return []Node{a.LHS, a.RHS} }
func (a *AssignmentStmt) Destroy()         { ReleaseChildren(a) }

// ExpressionStmt evaluates an expression for its side effects.
type ExpressionStmt struct {
	stmtBase
	Expression Expression
}

func NewExpressionStmt(ref token.SourceRef, expr Expression) *ExpressionStmt {
	e := &ExpressionStmt{stmtBase: newStmtBase(ref)}
	e.Expression = Acquire(expr).(Expression)
	SetParent(expr, e)
	return e
}

func (e *ExpressionStmt) Children() []Node { return []Node{e.Expression} }
func (e *ExpressionStmt) Destroy()         { ReleaseChildren(e) }

// PatternTestStmt is `lhs == rhs`, where lhs is a pattern (possibly
// containing Ellipsis leaves) matched structurally against rhs.
// TestID is the monotone identifier the analyzer assigns for the
// downstream emitter.
type PatternTestStmt struct {
	stmtBase
	Pattern    Expression
	Expression Expression
	TestID     int
}

func NewPatternTestStmt(ref token.SourceRef, pattern, expr Expression) *PatternTestStmt {
	p := &PatternTestStmt{stmtBase: newStmtBase(ref)}
	p.Pattern = Acquire(pattern).(Expression)
	SetParent(pattern, p)
	p.Expression = Acquire(expr).(Expression)
	SetParent(expr, p)
	return p
}

func (p *PatternTestStmt) Children() []Node { return []Node{p.Pattern, p.Expression} }
func (p *PatternTestStmt) Destroy()         { ReleaseChildren(p) }

// IfStmt is `if (cond) { ... } else { ... }`; FalseBranch may be nil.
type IfStmt struct {
	stmtBase
	Condition   Expression
	TrueBranch  *Block
	FalseBranch *Block
}

func NewIfStmt(ref token.SourceRef, cond Expression, trueBranch, falseBranch *Block) *IfStmt {
	s := &IfStmt{stmtBase: newStmtBase(ref)}
	s.Condition = Acquire(cond).(Expression)
	SetParent(cond, s)
	s.TrueBranch = Acquire(trueBranch).(*Block)
	SetParent(trueBranch, s)
	if falseBranch != nil {
		s.FalseBranch = Acquire(falseBranch).(*Block)
		SetParent(falseBranch, s)
	}
	return s
}

func (s *IfStmt) Children() []Node {
	out := []Node{s.Condition, s.TrueBranch}
	if s.FalseBranch != nil {
		out = append(out, s.FalseBranch)
	}
	return out
}

func (s *IfStmt) Destroy() { ReleaseChildren(s) }

// ReturnStmt returns from the enclosing function; Expression may be nil.
type ReturnStmt struct {
	stmtBase
	Expression Expression
}

func NewReturnStmt(ref token.SourceRef, expr Expression) *ReturnStmt {
	s := &ReturnStmt{stmtBase: newStmtBase(ref)}
	if expr != nil {
		s.Expression = Acquire(expr).(Expression)
		SetParent(expr, s)
	}
	return s
}

func (s *ReturnStmt) Children() []Node {
	if s.Expression == nil {
		return nil
	}
	return []Node{s.Expression}
}

func (s *ReturnStmt) Destroy() { ReleaseChildren(s) }

// AssertStmt asserts that Expression is truthy at runtime.
type AssertStmt struct {
	stmtBase
	Expression Expression
}

func NewAssertStmt(ref token.SourceRef, expr Expression) *AssertStmt {
	s := &AssertStmt{stmtBase: newStmtBase(ref)}
	s.Expression = Acquire(expr).(Expression)
	SetParent(expr, s)
	return s
}

func (s *AssertStmt) Children() []Node { return []Node{s.Expression} }
func (s *AssertStmt) Destroy()         { ReleaseChildren(s) }

// Block is an ordered sequence of statements with its own scope.
type Block struct {
	Header
	Statements []Statement
	scope      *Scope
}

func NewBlock(ref token.SourceRef) *Block {
	b := &Block{Header: NewHeader(KindBlock, ref)}
	b.scope = NewScope(b)
	return b
}

func (b *Block) OwnScope() *Scope { return b.scope }

func (b *Block) AddStatement(s Statement) {
	s = Acquire(s).(Statement)
	SetParent(s, b)
	b.Statements = append(b.Statements, s)
}

func (b *Block) Children() []Node {
	out := make([]Node, len(b.Statements))
	for i, s := range b.Statements {
		out[i] = s
	}
	return out
}

func (b *Block) Destroy() {
	ReleaseChildren(b)
	Release(b.scope)
}
