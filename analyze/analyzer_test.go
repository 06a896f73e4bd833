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

package analyze_test

import (
	"testing"

	"github.com/go-quicktest/qt"
	"github.com/google/go-cmp/cmp"

	"github.com/Prince781/lstf-sub001/analyze"
	"github.com/Prince781/lstf-sub001/ast"
	"github.com/Prince781/lstf-sub001/errors"
	"github.com/Prince781/lstf-sub001/resolve"
	"github.com/Prince781/lstf-sub001/scope"
	"github.com/Prince781/lstf-sub001/token"
	"github.com/Prince781/lstf-sub001/types"
)

func testRef(line, col int) token.SourceRef {
	pos := token.Position{Filename: "test.lstf", Line: line, Column: col}
	return token.SourceRef{Begin: pos, End: pos}
}

func newTestFile() *ast.File {
	file := resolve.NewMainFile("test.lstf", "")
	resolve.InstallBuiltins(file)
	return file
}

// check runs both passes the way the driver does: the analyzer only
// runs when resolution finished clean.
func check(t *testing.T, file *ast.File) (*analyze.Analyzer, *errors.Sink) {
	t.Helper()
	sink := errors.NewSink()
	r := resolve.NewResolver(file, sink)
	r.Resolve()
	qt.Assert(t, qt.Equals(r.NumErrors(), 0),
		qt.Commentf("resolver diagnostics: %v", diagStrings(sink)))

	a := analyze.NewAnalyzer(file, sink)
	a.Analyze()
	return a, sink
}

func diagStrings(sink *errors.Sink) []string {
	var out []string
	for _, d := range sink.Diagnostics() {
		out = append(out, d.String())
	}
	return out
}

func intLit(ref token.SourceRef, v int64) *ast.Literal {
	l := ast.NewLiteral(ref, ast.LitInteger)
	l.IntValue = v
	return l
}

func doubleLit(ref token.SourceRef, v float64) *ast.Literal {
	l := ast.NewLiteral(ref, ast.LitDouble)
	l.DoubleValue = v
	return l
}

func stringLit(ref token.SourceRef, v string) *ast.Literal {
	l := ast.NewLiteral(ref, ast.LitString)
	l.StringValue = v
	return l
}

// letDecl builds `let <name>[: typeName] = rhs;`: a declaration
// statement for the variable followed by a declaring assignment whose
// left-hand side references it, the same shape the parser produces.
func letDecl(block *ast.Block, ref token.SourceRef, name, typeName string, rhs ast.Expression) (*scope.Variable, *ast.AssignmentStmt) {
	v := scope.NewVariable(ref, name, false)
	if typeName != "" {
		v.SetVariableType(types.NewUnresolvedType(ref, typeName))
	}
	block.AddStatement(ast.NewDeclarationStmt(ref, v))

	lhs := ast.NewMemberAccess(ref, nil, name)
	lhs.SetSymbolReference(v)
	assign := ast.NewAssignmentStmt(ref, true, lhs, rhs)
	block.AddStatement(assign)
	return v, assign
}

// assignBuiltins adds the two mandatory top-level assignments so tests
// exercising other behavior stay free of the missing-assignment errors.
func assignBuiltins(block *ast.Block) {
	ref := testRef(90, 1)
	lhs := ast.NewMemberAccess(ref, nil, "server_path")
	block.AddStatement(ast.NewAssignmentStmt(ref, false, lhs, stringLit(ref, "/usr/bin/server")))

	ref = testRef(91, 1)
	lhs = ast.NewMemberAccess(ref, nil, "project_files")
	files := ast.NewArrayExpr(ref, false)
	files.AddElement(stringLit(ref, "main.c"))
	block.AddStatement(ast.NewAssignmentStmt(ref, false, lhs, files))
}

func TestEmptyFileRequiresMandatoryAssignments(t *testing.T) {
	file := newTestFile()
	a, sink := check(t, file)

	qt.Assert(t, qt.Equals(a.NumErrors(), 2))
	want := []string{
		"test.lstf:1:1: error: assignment to `server_path' required",
		"test.lstf:1:1: error: assignment to `project_files' required",
	}
	if diff := cmp.Diff(want, diagStrings(sink)); diff != "" {
		t.Errorf("diagnostics mismatch (-want +got):\n%s", diff)
	}
}

func TestMandatoryAssignmentsSatisfied(t *testing.T) {
	file := newTestFile()
	assignBuiltins(file.MainBlock())
	a, _ := check(t, file)

	qt.Assert(t, qt.Equals(a.NumErrors(), 0))
	qt.Assert(t, qt.IsTrue(file.ServerPathAssigned))
	qt.Assert(t, qt.IsTrue(file.ProjectFilesAssigned))
}

func TestNumericPromotionWidensLiteral(t *testing.T) {
	// let x: number = 3;
	file := newTestFile()
	block := file.MainBlock()
	assignBuiltins(block)
	_, assign := letDecl(block, testRef(2, 1), "x", "number", intLit(testRef(2, 17), 3))

	a, _ := check(t, file)
	qt.Assert(t, qt.Equals(a.NumErrors(), 0))

	_, ok := assign.LHS.ValueType().(*types.NumberType)
	qt.Assert(t, qt.IsTrue(ok), qt.Commentf("got %T", assign.LHS.ValueType()))
	// the integer literal was widened in place
	_, ok = assign.RHS.ValueType().(*types.NumberType)
	qt.Assert(t, qt.IsTrue(ok), qt.Commentf("got %T", assign.RHS.ValueType()))
}

func TestDoubleDoesNotNarrowToInteger(t *testing.T) {
	// let x: int = 3.0;
	file := newTestFile()
	block := file.MainBlock()
	assignBuiltins(block)
	letDecl(block, testRef(2, 1), "x", "int", doubleLit(testRef(2, 14), 3.0))

	a, sink := check(t, file)
	qt.Assert(t, qt.Equals(a.NumErrors(), 1))
	qt.Assert(t, qt.StringContains(diagStrings(sink)[0],
		"cannot convert expression of type `double' to `integer'"))
}

func TestInferredDeclarationTakesRHSType(t *testing.T) {
	// let s = "hello";
	file := newTestFile()
	block := file.MainBlock()
	assignBuiltins(block)
	v, assign := letDecl(block, testRef(2, 1), "s", "", stringLit(testRef(2, 9), "hello"))

	a, _ := check(t, file)
	qt.Assert(t, qt.Equals(a.NumErrors(), 0))

	_, ok := v.VariableType.(*types.StringType)
	qt.Assert(t, qt.IsTrue(ok), qt.Commentf("got %T", v.VariableType))
	_, ok = assign.LHS.ValueType().(*types.StringType)
	qt.Assert(t, qt.IsTrue(ok))
}

func TestStructuralInterfaceMatch(t *testing.T) {
	// interface A { n: int }  let a: A = { n: 7 };
	file := newTestFile()
	block := file.MainBlock()
	assignBuiltins(block)

	iface := scope.NewInterface(testRef(2, 1), "A", false, false)
	prop := scope.NewInterfaceProperty(testRef(2, 15), "n", false, false)
	prop.SetPropertyType(types.NewUnresolvedType(testRef(2, 18), "int"))
	qt.Assert(t, qt.IsNil(iface.AddMember(prop)))
	block.AddStatement(ast.NewDeclarationStmt(testRef(2, 1), iface))

	obj := ast.NewObjectExpr(testRef(3, 12), false)
	obj.AddMember("n", false, intLit(testRef(3, 17), 7))
	_, assign := letDecl(block, testRef(3, 1), "a", "A", obj)

	a, _ := check(t, file)
	qt.Assert(t, qt.Equals(a.NumErrors(), 0))

	// the object passed the structural check and was re-labelled A
	it, ok := assign.RHS.ValueType().(*types.InterfaceType)
	qt.Assert(t, qt.IsTrue(ok), qt.Commentf("got %T", assign.RHS.ValueType()))
	qt.Assert(t, qt.Equals(it.String(), "A"))
}

func TestStructuralInterfaceMismatch(t *testing.T) {
	// interface A { n: int }  let a: A = { n: "hi" };
	file := newTestFile()
	block := file.MainBlock()
	assignBuiltins(block)

	iface := scope.NewInterface(testRef(2, 1), "A", false, false)
	prop := scope.NewInterfaceProperty(testRef(2, 15), "n", false, false)
	prop.SetPropertyType(types.NewUnresolvedType(testRef(2, 18), "int"))
	qt.Assert(t, qt.IsNil(iface.AddMember(prop)))
	block.AddStatement(ast.NewDeclarationStmt(testRef(2, 1), iface))

	obj := ast.NewObjectExpr(testRef(3, 12), false)
	obj.AddMember("n", false, stringLit(testRef(3, 17), "hi"))
	letDecl(block, testRef(3, 1), "a", "A", obj)

	a, sink := check(t, file)
	qt.Assert(t, qt.IsTrue(a.NumErrors() >= 1))
	qt.Assert(t, qt.StringContains(diagStrings(sink)[0],
		"cannot convert expression of type `string' to `integer'"))
}

func TestArrayElementUnionFolding(t *testing.T) {
	// let xs = [1, "two", 3];
	file := newTestFile()
	block := file.MainBlock()
	assignBuiltins(block)

	arr := ast.NewArrayExpr(testRef(2, 10), false)
	arr.AddElement(intLit(testRef(2, 11), 1))
	arr.AddElement(stringLit(testRef(2, 14), "two"))
	arr.AddElement(intLit(testRef(2, 21), 3))
	_, assign := letDecl(block, testRef(2, 1), "xs", "", arr)

	a, _ := check(t, file)
	qt.Assert(t, qt.Equals(a.NumErrors(), 0))

	at, ok := assign.RHS.ValueType().(*types.ArrayType)
	qt.Assert(t, qt.IsTrue(ok), qt.Commentf("got %T", assign.RHS.ValueType()))
	qt.Assert(t, qt.Equals(at.String(), "(integer | string)[]"))

	union, ok := at.ElementType().(*types.UnionType)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.HasLen(union.Options(), 2))
}

func TestEmptyArrayHasAnyElementType(t *testing.T) {
	file := newTestFile()
	block := file.MainBlock()
	assignBuiltins(block)

	arr := ast.NewArrayExpr(testRef(2, 10), false)
	_, assign := letDecl(block, testRef(2, 1), "xs", "", arr)

	a, _ := check(t, file)
	qt.Assert(t, qt.Equals(a.NumErrors(), 0))

	at := assign.RHS.ValueType().(*types.ArrayType)
	_, ok := at.ElementType().(*types.AnyType)
	qt.Assert(t, qt.IsTrue(ok), qt.Commentf("got %T", at.ElementType()))
}

func TestUniformArrayKeepsElementType(t *testing.T) {
	file := newTestFile()
	block := file.MainBlock()
	assignBuiltins(block)

	arr := ast.NewArrayExpr(testRef(2, 10), false)
	arr.AddElement(intLit(testRef(2, 11), 1))
	arr.AddElement(intLit(testRef(2, 14), 2))
	_, assign := letDecl(block, testRef(2, 1), "xs", "", arr)

	a, _ := check(t, file)
	qt.Assert(t, qt.Equals(a.NumErrors(), 0))
	qt.Assert(t, qt.Equals(assign.RHS.ValueType().String(), "integer[]"))
}

func TestPatternTestAcceptsMatchableExpression(t *testing.T) {
	// let xs = [1, 2];  [1, ..., 3] == xs;
	file := newTestFile()
	block := file.MainBlock()
	assignBuiltins(block)

	xs := ast.NewArrayExpr(testRef(2, 10), false)
	xs.AddElement(intLit(testRef(2, 11), 1))
	xs.AddElement(intLit(testRef(2, 14), 2))
	letDecl(block, testRef(2, 1), "xs", "", xs)

	pattern := ast.NewArrayExpr(testRef(3, 1), true)
	pattern.AddElement(intLit(testRef(3, 2), 1))
	pattern.AddElement(ast.NewEllipsis(testRef(3, 5)))
	pattern.AddElement(intLit(testRef(3, 10), 3))

	use := ast.NewMemberAccess(testRef(3, 16), nil, "xs")
	stmt := ast.NewPatternTestStmt(testRef(3, 1), pattern, use)
	block.AddStatement(stmt)

	a, _ := check(t, file)
	qt.Assert(t, qt.Equals(a.NumErrors(), 0))

	_, ok := pattern.ValueType().(*types.PatternType)
	qt.Assert(t, qt.IsTrue(ok))
	// the matched expression keeps its precise type
	qt.Assert(t, qt.Equals(use.ValueType().String(), "integer[]"))
	qt.Assert(t, qt.Equals(stmt.TestID, 1))
}

func TestPatternTestRejectsUnmatchableExpression(t *testing.T) {
	// [1] == print;  (function values cannot be matched structurally)
	file := newTestFile()
	block := file.MainBlock()
	assignBuiltins(block)

	pattern := ast.NewArrayExpr(testRef(2, 1), true)
	pattern.AddElement(intLit(testRef(2, 2), 1))

	use := ast.NewMemberAccess(testRef(2, 9), nil, "print")
	block.AddStatement(ast.NewPatternTestStmt(testRef(2, 1), pattern, use))

	a, sink := check(t, file)
	qt.Assert(t, qt.Equals(a.NumErrors(), 1))
	qt.Assert(t, qt.StringContains(diagStrings(sink)[0], "to `pattern'"))
}

func TestEllipsisOutsidePattern(t *testing.T) {
	file := newTestFile()
	block := file.MainBlock()
	assignBuiltins(block)

	arr := ast.NewArrayExpr(testRef(2, 10), false)
	arr.AddElement(ast.NewEllipsis(testRef(2, 11)))
	letDecl(block, testRef(2, 1), "xs", "", arr)

	a, sink := check(t, file)
	qt.Assert(t, qt.Equals(a.NumErrors(), 1))
	qt.Assert(t, qt.StringContains(diagStrings(sink)[0],
		"ellipsis not allowed in this context"))
}

func TestDuplicateObjectMember(t *testing.T) {
	file := newTestFile()
	block := file.MainBlock()
	assignBuiltins(block)

	obj := ast.NewObjectExpr(testRef(2, 10), false)
	obj.AddMember("n", false, intLit(testRef(2, 12), 1))
	obj.AddMember("n", false, intLit(testRef(2, 18), 2))
	letDecl(block, testRef(2, 1), "o", "", obj)

	a, sink := check(t, file)
	qt.Assert(t, qt.Equals(a.NumErrors(), 1))

	diags := diagStrings(sink)
	qt.Assert(t, qt.StringContains(diags[0],
		"initializer conflicts with previous initializer of this property"))
	qt.Assert(t, qt.StringContains(diags[1], "previous initialization is here"))
}

func TestObjectLiteralSynthesizesAnonymousInterface(t *testing.T) {
	file := newTestFile()
	block := file.MainBlock()
	assignBuiltins(block)

	obj := ast.NewObjectExpr(testRef(2, 10), false)
	obj.AddMember("n", false, intLit(testRef(2, 12), 1))
	obj.AddMember("s", false, stringLit(testRef(2, 18), "x"))
	_, assign := letDecl(block, testRef(2, 1), "o", "", obj)

	a, _ := check(t, file)
	qt.Assert(t, qt.Equals(a.NumErrors(), 0))

	it, ok := assign.RHS.ValueType().(*types.InterfaceType)
	qt.Assert(t, qt.IsTrue(ok), qt.Commentf("got %T", assign.RHS.ValueType()))
	qt.Assert(t, qt.IsTrue(it.InterfaceSymbol().IsAnonymous))
	qt.Assert(t, qt.Equals(it.String(), "{ n: integer; s: string }"))
}

func TestUncheckedMemberAccessWarns(t *testing.T) {
	// let d = diagnostics("main.c");  let x = d.messages;
	file := newTestFile()
	block := file.MainBlock()
	assignBuiltins(block)

	callee := ast.NewMemberAccess(testRef(2, 9), nil, "diagnostics")
	call := ast.NewMethodCall(testRef(2, 9), callee, false)
	call.AddArgument(stringLit(testRef(2, 21), "main.c"))
	letDecl(block, testRef(2, 1), "d", "", call)

	inner := ast.NewMemberAccess(testRef(3, 9), nil, "d")
	access := ast.NewMemberAccess(testRef(3, 9), inner, "messages")
	letDecl(block, testRef(3, 1), "x", "", access)

	a, sink := check(t, file)
	qt.Assert(t, qt.Equals(a.NumErrors(), 0))
	qt.Assert(t, qt.Equals(sink.NumWarnings(), 1))
	qt.Assert(t, qt.StringContains(diagStrings(sink)[0], "warning: unchecked member access"))

	// the unchecked access is typed any so inference continues
	_, ok := access.ValueType().(*types.AnyType)
	qt.Assert(t, qt.IsTrue(ok))
}

func TestMemberAccessOnNonObject(t *testing.T) {
	// let n = 5;  let x = n.field;
	file := newTestFile()
	block := file.MainBlock()
	assignBuiltins(block)

	letDecl(block, testRef(2, 1), "n", "", intLit(testRef(2, 9), 5))

	inner := ast.NewMemberAccess(testRef(3, 9), nil, "n")
	access := ast.NewMemberAccess(testRef(3, 9), inner, "field")
	letDecl(block, testRef(3, 1), "x", "", access)

	a, sink := check(t, file)
	qt.Assert(t, qt.Equals(a.NumErrors(), 1))
	qt.Assert(t, qt.StringContains(diagStrings(sink)[0],
		"request for member `field' in something not an object"))
}

func TestInterfaceMemberAccessResolves(t *testing.T) {
	// interface A { n: int }  let a: A = { n: 7 };  let x: int = a.n;
	file := newTestFile()
	block := file.MainBlock()
	assignBuiltins(block)

	iface := scope.NewInterface(testRef(2, 1), "A", false, false)
	prop := scope.NewInterfaceProperty(testRef(2, 15), "n", false, false)
	prop.SetPropertyType(types.NewUnresolvedType(testRef(2, 18), "int"))
	qt.Assert(t, qt.IsNil(iface.AddMember(prop)))
	block.AddStatement(ast.NewDeclarationStmt(testRef(2, 1), iface))

	obj := ast.NewObjectExpr(testRef(3, 12), false)
	obj.AddMember("n", false, intLit(testRef(3, 17), 7))
	letDecl(block, testRef(3, 1), "a", "A", obj)

	inner := ast.NewMemberAccess(testRef(4, 14), nil, "a")
	access := ast.NewMemberAccess(testRef(4, 14), inner, "n")
	_, assign := letDecl(block, testRef(4, 1), "x", "int", access)

	a, _ := check(t, file)
	qt.Assert(t, qt.Equals(a.NumErrors(), 0))
	qt.Assert(t, qt.Equals(access.SymbolReference(), ast.Symbol(prop)))

	_, ok := assign.RHS.ValueType().(*types.IntegerType)
	qt.Assert(t, qt.IsTrue(ok))
}

func TestMissingInterfaceMember(t *testing.T) {
	file := newTestFile()
	block := file.MainBlock()
	assignBuiltins(block)

	iface := scope.NewInterface(testRef(2, 1), "A", false, false)
	prop := scope.NewInterfaceProperty(testRef(2, 15), "n", false, false)
	prop.SetPropertyType(types.NewUnresolvedType(testRef(2, 18), "int"))
	qt.Assert(t, qt.IsNil(iface.AddMember(prop)))
	block.AddStatement(ast.NewDeclarationStmt(testRef(2, 1), iface))

	obj := ast.NewObjectExpr(testRef(3, 12), false)
	obj.AddMember("n", false, intLit(testRef(3, 17), 7))
	letDecl(block, testRef(3, 1), "a", "A", obj)

	inner := ast.NewMemberAccess(testRef(4, 9), nil, "a")
	access := ast.NewMemberAccess(testRef(4, 9), inner, "missing")
	letDecl(block, testRef(4, 1), "x", "", access)

	a, sink := check(t, file)
	qt.Assert(t, qt.Equals(a.NumErrors(), 1))
	qt.Assert(t, qt.StringContains(diagStrings(sink)[0],
		"`missing' is not a member of `A'"))
}

func TestCallTypesArgumentsAndResult(t *testing.T) {
	// diagnostics(5) — argument type mismatch
	file := newTestFile()
	block := file.MainBlock()
	assignBuiltins(block)

	callee := ast.NewMemberAccess(testRef(2, 1), nil, "diagnostics")
	call := ast.NewMethodCall(testRef(2, 1), callee, false)
	call.AddArgument(intLit(testRef(2, 13), 5))
	block.AddStatement(ast.NewExpressionStmt(testRef(2, 1), call))

	a, sink := check(t, file)
	qt.Assert(t, qt.Equals(a.NumErrors(), 1))
	qt.Assert(t, qt.StringContains(diagStrings(sink)[0],
		"cannot convert expression of type `integer' to `string'"))

	// the call takes the callee's return type, `any`
	_, ok := call.ValueType().(*types.AnyType)
	qt.Assert(t, qt.IsTrue(ok), qt.Commentf("got %T", call.ValueType()))
}

func TestCallArityMismatch(t *testing.T) {
	file := newTestFile()
	block := file.MainBlock()
	assignBuiltins(block)

	callee := ast.NewMemberAccess(testRef(2, 1), nil, "diagnostics")
	call := ast.NewMethodCall(testRef(2, 1), callee, false)
	block.AddStatement(ast.NewExpressionStmt(testRef(2, 1), call))

	a, sink := check(t, file)
	qt.Assert(t, qt.Equals(a.NumErrors(), 1))
	qt.Assert(t, qt.StringContains(diagStrings(sink)[0], "call expects 1 argument(s), got 0"))
}

func TestEveryExpressionTypedAfterCleanAnalysis(t *testing.T) {
	file := newTestFile()
	block := file.MainBlock()
	assignBuiltins(block)
	letDecl(block, testRef(2, 1), "x", "number", intLit(testRef(2, 17), 3))

	arr := ast.NewArrayExpr(testRef(3, 10), false)
	arr.AddElement(intLit(testRef(3, 11), 1))
	arr.AddElement(stringLit(testRef(3, 14), "two"))
	letDecl(block, testRef(3, 1), "xs", "", arr)

	a, _ := check(t, file)
	qt.Assert(t, qt.Equals(a.NumErrors(), 0))

	ast.Inspect(file.MainFunction, func(n ast.Node) bool {
		if e, ok := n.(ast.Expression); ok {
			qt.Assert(t, qt.IsNotNil(e.ValueType()),
				qt.Commentf("untyped expression at %s", e.SourceRef()))
		}
		return true
	})
}
