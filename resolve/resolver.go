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

// Package resolve implements the symbol resolver, the first of the two
// compiler passes: one depth-first walk that populates scopes, replaces
// every unresolved type reference with a concrete type from the
// lattice, detects redeclarations and circular aliases, and records
// closure captures on enclosing functions and lambdas.
package resolve

import (
	"fmt"

	"github.com/Prince781/lstf-sub001/ast"
	"github.com/Prince781/lstf-sub001/errors"
	"github.com/Prince781/lstf-sub001/scope"
	"github.com/Prince781/lstf-sub001/types"
)

// DefaultMaxCaptures matches the virtual machine's per-closure
// up-value limit. Callers targeting a different VM build can override
// Resolver.MaxCaptures before resolving.
const DefaultMaxCaptures = 8

// Resolver is the symbol-resolution pass. It emits diagnostics to its
// sink and counts its own errors; it never stops early, so every
// resolvable name in the file is diagnosed in one run.
type Resolver struct {
	ast.BaseVisitor

	// MaxCaptures bounds the captured-locals set of any one closure.
	MaxCaptures int

	file      *ast.File
	sink      *errors.Sink
	scopes    []*ast.Scope
	numErrors int
}

// NewResolver creates a resolver for file reporting to sink.
func NewResolver(file *ast.File, sink *errors.Sink) *Resolver {
	r := &Resolver{MaxCaptures: DefaultMaxCaptures, file: file, sink: sink}
	r.BaseVisitor.V = r
	return r
}

// Resolve runs the pass over the file's implicit main function.
func (r *Resolver) Resolve() {
	ast.Accept(r.file.MainFunction, r)
}

// NumErrors reports how many errors this pass emitted. The driver must
// not run the semantic analyzer when it is non-zero.
func (r *Resolver) NumErrors() int { return r.numErrors }

func (r *Resolver) pushScope(s *ast.Scope) { r.scopes = append(r.scopes, s) }
func (r *Resolver) popScope()              { r.scopes = r.scopes[:len(r.scopes)-1] }

func (r *Resolver) currentScope() *ast.Scope {
	return r.scopes[len(r.scopes)-1]
}

// VisitBlock pushes the block's scope for the duration of its children.
func (r *Resolver) VisitBlock(b *ast.Block) {
	r.pushScope(b.OwnScope())
	ast.AcceptChildren(b, r)
	r.popScope()
}

// VisitLambdaExpr pushes the lambda's scope; parameters and body
// declarations land there.
func (r *Resolver) VisitLambdaExpr(l *ast.LambdaExpr) {
	r.pushScope(l.OwnScope())
	ast.AcceptChildren(l, r)
	r.popScope()
}

// VisitSymbol handles declarations: insertion into the current scope
// with collision diagnostics, scope pushes for scope-owning symbols,
// and the circular-alias check for type aliases.
func (r *Resolver) VisitSymbol(sym ast.Symbol) {
	switch s := sym.(type) {
	case *scope.Function:
		// the implicit main function exists in no scope
		if len(r.scopes) > 0 {
			if clash := r.currentScope().Lookup(s.Name()); clash != nil {
				r.reportClash(s, clash, "function declaration conflicts with previous declaration")
				return
			}
			_ = r.currentScope().AddSymbol(s)
		}
		r.pushScope(s.OwnScope())
		ast.AcceptChildren(s, r)
		r.popScope()

	case *scope.Variable:
		ast.AcceptChildren(s, r)
		if clash := r.currentScope().GetSymbol(s.Name()); clash != nil {
			if clash == ast.Symbol(s) {
				return
			}
			r.sink.Errorf(s.SourceRef(), "redefinition of `%s'", s.Name())
			r.sink.Notef(clash.SourceRef(), "previous definition of `%s' was here", clash.Name())
			r.numErrors++
			return
		}
		_ = r.currentScope().AddSymbol(s)

	case *scope.Enum:
		if clash := r.currentScope().Lookup(s.Name()); clash != nil {
			r.reportClash(s, clash, "enum declaration conflicts with previous declaration")
			return
		}
		_ = r.currentScope().AddSymbol(s)
		r.pushScope(s.OwnScope())
		ast.AcceptChildren(s, r)
		r.popScope()

	case *scope.Interface:
		if !s.IsAnonymous {
			if clash := r.currentScope().Lookup(s.Name()); clash != nil {
				r.reportClash(s, clash, "interface declaration conflicts with previous declaration")
				return
			}
			_ = r.currentScope().AddSymbol(s)
		}
		r.pushScope(s.OwnScope())
		ast.AcceptChildren(s, r)
		r.popScope()

	case *scope.Alias:
		if clash := r.currentScope().Lookup(s.Name()); clash != nil {
			r.reportClash(s, clash, "type alias declaration conflicts with previous declaration")
			return
		}
		_ = r.currentScope().AddSymbol(s)
		r.pushScope(s.OwnScope())
		ast.AcceptChildren(s, r)
		r.popScope()
		r.checkCircularAlias(s)

	default:
		ast.AcceptChildren(sym, r)
	}
}

func (r *Resolver) reportClash(sym ast.Symbol, clash ast.Symbol, msg string) {
	r.sink.Errorf(sym.SourceRef(), "%s", msg)
	r.sink.Notef(clash.SourceRef(), "previous declaration was here")
	r.numErrors++
}

// checkCircularAlias detects an alias whose resolved form still
// transitively contains an unresolved reference to the alias's own
// name, i.e. `type X = … X …`.
func (r *Resolver) checkCircularAlias(alias *scope.Alias) {
	if alias.AliasedType == nil {
		return
	}
	var offending ast.Node
	ast.Inspect(alias.AliasedType, func(n ast.Node) bool {
		if offending != nil {
			return false
		}
		if ut, ok := n.(*types.UnresolvedType); ok && ut.Name == alias.Name() {
			offending = ut
			return false
		}
		return true
	})
	if offending != nil {
		r.sink.Errorf(alias.SourceRef(), "type `%s' circularly references itself", alias.Name())
		r.sink.Notef(offending.SourceRef(), "circular reference made here")
		r.numErrors++
	}
}

// VisitDataType resolves unresolved references bottom-up: children
// (e.g. type arguments, union options, array elements) first, then the
// node itself.
func (r *Resolver) VisitDataType(dt ast.DataType) {
	ast.AcceptChildren(dt, r)
	r.resolveDataType(dt)
}

// VisitExpression resolves a value type the parser pre-installed on an
// expression (an explicit cast annotation), if any.
func (r *Resolver) VisitExpression(e ast.Expression) {
	if vt := e.ValueType(); vt != nil {
		r.resolveDataType(vt)
	}
}

// VisitMemberAccess resolves trivial member accesses (simple names)
// against the current scope and records closure captures. Non-trivial
// accesses need the inner expression's value type and are left for the
// analyzer.
func (r *Resolver) VisitMemberAccess(m *ast.MemberAccess) {
	ast.AcceptChildren(m, r)

	if m.Inner != nil {
		return
	}
	if m.SymbolReference() == nil {
		m.SetSymbolReference(r.currentScope().Lookup(m.MemberName))
	}
	if m.SymbolReference() == nil {
		r.sink.Errorf(m.SourceRef(), "`%s' undeclared", m.MemberName)
		r.numErrors++
		return
	}
	r.recordCaptures(m)
}

// recordCaptures implements up-value detection: when a simple name
// resolves to a variable (or to a function that itself closes over
// locals), every function or lambda strictly between the reference and
// the symbol's defining closure captures the symbol.
func (r *Resolver) recordCaptures(m *ast.MemberAccess) {
	sym := m.SymbolReference()

	capturable := sym.SymbolKind() == ast.SymVariable
	if fn, ok := sym.(*scope.Function); ok && len(fn.CapturedLocals()) > 0 {
		// functions that close over the environment live in a hidden
		// local holding the closure, so referencing one is itself an
		// up-value access
		capturable = true
	}
	if !capturable {
		return
	}

	definer := enclosingClosure(sym.Parent())
	if definer == nil {
		return
	}

	encl := enclosingClosure(r.currentScope().Owner())
	for encl != nil && encl != definer {
		encl.AddCapturedLocal(sym)
		if len(encl.CapturedLocals()) > r.MaxCaptures {
			if fn, ok := encl.(*scope.Function); ok {
				r.sink.Errorf(fn.SourceRef(),
					"function `%s' captures too many variables (max is %d)",
					fn.Name(), r.MaxCaptures)
			} else {
				r.sink.Errorf(encl.SourceRef(),
					"this anonymous function captures too many variables (max is %d)",
					r.MaxCaptures)
			}
			r.numErrors++
			return
		}
		encl = enclosingClosure(encl.Parent())
	}
}

// enclosingClosure climbs parent back-pointers from n to the nearest
// function or lambda, inclusive of n itself.
func enclosingClosure(n ast.Node) ast.Closure {
	for n != nil {
		if c, ok := n.(ast.Closure); ok {
			return c
		}
		n = n.Parent()
	}
	return nil
}

// resolveDataType translates an unresolved type reference into its
// concrete form and installs the replacement into the parent slot.
func (r *Resolver) resolveDataType(dt ast.DataType) {
	ut, ok := dt.(*types.UnresolvedType)
	if !ok {
		return
	}

	ref := ut.SourceRef()
	var replacement ast.DataType

	switch ut.Name {
	case "int":
		replacement = types.NewIntegerType(ref)
	case "double":
		replacement = types.NewDoubleType(ref)
	case "number":
		replacement = types.NewNumberType(ref)
	case "bool":
		replacement = types.NewBooleanType(ref)
	case "string":
		replacement = types.NewStringType(ref)
	case "object":
		replacement = types.NewObjectType(ref)
	case "array":
		replacement = types.NewArrayType(ref, types.NewAnyType(ref))
	case "any":
		replacement = types.NewAnyType(ref)
	case "pattern":
		replacement = types.NewPatternType(ref)
	case "void":
		replacement = types.NewVoidType(ref)
	case "future":
		params := ut.TypeParameters()
		if len(params) == 0 {
			r.sink.Errorf(ref, "`%s' requires one type parameter", ut)
			r.numErrors++
			return
		}
		if len(params) > 1 {
			r.sink.Errorf(ref, "`%s' has too many type arguments (requires exactly 1)", ut)
			r.numErrors++
			return
		}
		replacement = types.NewFutureType(ref, params[0])
	default:
		found := r.currentScope().Lookup(ut.Name)
		if found == nil || found.SymbolKind() != ast.SymTypeSymbol {
			r.sink.Errorf(ref, "`%s' does not refer to a type", ut.Name)
			r.numErrors++
			return
		}
		switch ts := found.(type) {
		case *scope.Enum:
			replacement = types.NewEnumType(ref, ts)
		case *scope.Interface:
			replacement = types.NewInterfaceType(ref, ts)
		case *scope.Alias:
			if ts.AliasedType == nil {
				r.sink.Errorf(ref, "`%s' does not refer to a type", ut.Name)
				r.numErrors++
				return
			}
			replacement = ts.AliasedType.Copy()
			ast.SetSourceRef(replacement, ref)
		}
	}

	r.installReplacement(ut, replacement)
}

// installReplacement swaps ut for replacement in whatever slot of the
// parent holds it: a symbol's type field, an expression's value type,
// or a slot of a containing data type.
func (r *Resolver) installReplacement(ut *types.UnresolvedType, replacement ast.DataType) {
	parent := ut.Parent()

	switch p := parent.(type) {
	case *scope.Variable:
		p.SetVariableType(replacement)
	case *scope.Function:
		p.SetReturnType(replacement)
	case *scope.InterfaceProperty:
		p.SetPropertyType(replacement)
	case *scope.Alias:
		p.SetAliasedType(replacement)
	case *scope.Enum:
		p.SetMembersType(replacement)
	case *scope.Interface:
		p.ReplaceBaseType(ut, replacement)
	case ast.Expression:
		ast.SetValueType(p, replacement)
	case ast.DataType:
		r.installIntoDataType(ut, p, replacement)
	default:
		panic(fmt.Sprintf("resolve: bad tree: unresolved type owned by %T", parent))
	}
}

func (r *Resolver) installIntoDataType(ut *types.UnresolvedType, parent ast.DataType, replacement ast.DataType) {
	if ast.IsTypeParameter(ut) {
		host := parent.(ast.TypeParameterHost)
		if !host.ReplaceTypeParameter(ut, replacement) {
			if len(host.TypeParameters()) == 0 {
				r.sink.Errorf(parent.SourceRef(), "type `%s' does not take any parameters", parent)
			} else {
				r.sink.Errorf(parent.SourceRef(), "type `%s' is already fully parameterized", parent)
			}
			r.numErrors++
		}
		return
	}

	switch p := parent.(type) {
	case *types.UnionType:
		p.ReplaceOption(ut, replacement)
	case *types.FunctionType:
		if p.ReturnType() == ast.DataType(ut) {
			p.SetReturnType(replacement)
		} else {
			p.ReplaceParameterType(ut, replacement)
		}
	case *types.ArrayType:
		p.SetElementType(replacement)
	default:
		panic(fmt.Sprintf("resolve: bad tree: unresolved type nested in %T", parent))
	}
}
