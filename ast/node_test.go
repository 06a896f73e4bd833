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

package ast_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/Prince781/lstf-sub001/ast"
	"github.com/Prince781/lstf-sub001/token"
)

func testRef(line, col int) token.SourceRef {
	pos := token.Position{Filename: "test.lstf", Line: line, Column: col}
	return token.SourceRef{Begin: pos, End: pos}
}

func TestFloatingBitSemantics(t *testing.T) {
	lit := ast.NewLiteral(testRef(1, 1), ast.LitInteger)

	qt.Assert(t, qt.IsTrue(ast.IsFloating(lit)))
	qt.Assert(t, qt.Equals(ast.RefCount(lit), uint32(0)))

	// first acquisition un-floats and sets the count to one
	ast.Acquire(lit)
	qt.Assert(t, qt.IsFalse(ast.IsFloating(lit)))
	qt.Assert(t, qt.Equals(ast.RefCount(lit), uint32(1)))

	ast.Acquire(lit)
	qt.Assert(t, qt.Equals(ast.RefCount(lit), uint32(2)))

	ast.Release(lit)
	qt.Assert(t, qt.Equals(ast.RefCount(lit), uint32(1)))
	ast.Release(lit)
	qt.Assert(t, qt.Equals(ast.RefCount(lit), uint32(0)))
}

func TestReleaseNilIsNoOp(t *testing.T) {
	ast.Release(nil) // must not panic
}

func TestOverReleaseTraps(t *testing.T) {
	lit := ast.NewLiteral(testRef(1, 1), ast.LitInteger)
	ast.Acquire(lit)
	ast.Release(lit)
	qt.Assert(t, qt.PanicMatches(func() { ast.Release(lit) },
		"ast: release of a non-floating node with refcount 0"))
}

func TestParentPointerIsWeak(t *testing.T) {
	inner := ast.NewLiteral(testRef(1, 1), ast.LitInteger)
	outer := ast.NewUnaryExpr(testRef(1, 1), ast.UnaryNegate, inner)

	// adoption acquired exactly one reference; the parent pointer adds none
	qt.Assert(t, qt.Equals(ast.RefCount(inner), uint32(1)))
	qt.Assert(t, qt.Equals(inner.Parent(), ast.Node(outer)))
}

func TestChildrenHaveOwningEdges(t *testing.T) {
	left := ast.NewLiteral(testRef(1, 1), ast.LitInteger)
	right := ast.NewLiteral(testRef(1, 5), ast.LitInteger)
	bin := ast.NewBinaryExpr(testRef(1, 3), ast.BinAdd, left, right)

	for _, child := range bin.Children() {
		qt.Assert(t, qt.Equals(child.Parent(), ast.Node(bin)))
		qt.Assert(t, qt.IsFalse(ast.IsFloating(child)))
	}
}

func TestScopeAddAndGet(t *testing.T) {
	block := ast.NewBlock(testRef(1, 1))
	sym := newFakeSymbol("x")

	qt.Assert(t, qt.IsNil(block.OwnScope().AddSymbol(sym)))
	qt.Assert(t, qt.Equals(block.OwnScope().GetSymbol("x"), ast.Symbol(sym)))
	qt.Assert(t, qt.IsNil(block.OwnScope().GetSymbol("y")))

	// idempotent for the same pair
	qt.Assert(t, qt.IsNil(block.OwnScope().AddSymbol(sym)))

	// a different symbol under the same name is a collision
	other := newFakeSymbol("x")
	qt.Assert(t, qt.ErrorMatches(block.OwnScope().AddSymbol(other),
		`ast: symbol "x" already declared in this scope`))
}

func TestScopeLookupWalksOutward(t *testing.T) {
	// an outer block holding x, with an if statement whose branch block
	// holds y; lookups from the branch must see both, skipping over the
	// intermediate statement node
	outer := ast.NewBlock(testRef(1, 1))
	x := newFakeSymbol("x")
	qt.Assert(t, qt.IsNil(outer.OwnScope().AddSymbol(x)))

	branch := ast.NewBlock(testRef(2, 1))
	cond := ast.NewLiteral(testRef(2, 4), ast.LitBoolean)
	ifStmt := ast.NewIfStmt(testRef(2, 1), cond, branch, nil)
	outer.AddStatement(ifStmt)

	y := newFakeSymbol("y")
	qt.Assert(t, qt.IsNil(branch.OwnScope().AddSymbol(y)))

	qt.Assert(t, qt.Equals(branch.OwnScope().Lookup("y"), ast.Symbol(y)))
	qt.Assert(t, qt.Equals(branch.OwnScope().Lookup("x"), ast.Symbol(x)))
	qt.Assert(t, qt.IsNil(branch.OwnScope().Lookup("z")))

	// GetSymbol never leaves its own scope
	qt.Assert(t, qt.IsNil(branch.OwnScope().GetSymbol("x")))
}

func TestInspectVisitsDepthFirst(t *testing.T) {
	left := ast.NewLiteral(testRef(1, 1), ast.LitInteger)
	right := ast.NewLiteral(testRef(1, 5), ast.LitInteger)
	bin := ast.NewBinaryExpr(testRef(1, 3), ast.BinAdd, left, right)

	var visited []ast.Node
	ast.Inspect(bin, func(n ast.Node) bool {
		visited = append(visited, n)
		return true
	})
	qt.Assert(t, qt.HasLen(visited, 3))
	qt.Assert(t, qt.Equals(visited[0], ast.Node(bin)))
	qt.Assert(t, qt.Equals(visited[1], ast.Node(left)))
	qt.Assert(t, qt.Equals(visited[2], ast.Node(right)))
}

// fakeSymbol is a minimal Symbol for scope tests, standing in for the
// concrete declarations of package scope (which ast cannot import).
type fakeSymbol struct {
	ast.Header
	name string
}

func newFakeSymbol(name string) *fakeSymbol {
	return &fakeSymbol{Header: ast.NewHeader(ast.KindSymbol, testRef(1, 1)), name: name}
}

func (f *fakeSymbol) Name() string               { return f.name }
func (f *fakeSymbol) IsBuiltin() bool            { return false }
func (f *fakeSymbol) SymbolKind() ast.SymbolKind { return ast.SymVariable }
func (f *fakeSymbol) Children() []ast.Node       { return nil }
func (f *fakeSymbol) Destroy()                   {}
