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

// Package types declares the closed data-type lattice of the LSTF
// language: the scalar types, the structural composites (array, union,
// future, function), the nominal types bound to enum and interface
// declarations, and the unresolved placeholder the parser installs
// wherever a name appears in a type position.
//
// Every type implements ast.DataType: a subtype predicate
// (IsSupertypeOf, read "self can receive a value of other"), a
// deep Copy, and a String form matching how the source language
// prints types back in diagnostics.
package types

import (
	"errors"

	"github.com/Prince781/lstf-sub001/ast"
	"github.com/Prince781/lstf-sub001/scope"
	"github.com/Prince781/lstf-sub001/token"
)

// ErrTooManyTypeArguments is returned by AddTypeParameter when a
// parameterized type's slots are already filled.
var ErrTooManyTypeArguments = errors.New("types: too many type arguments")

// typeBase carries the state shared by every member of the lattice: the
// code-node header and the weak binding to the named symbol this type
// was derived from, if any.
type typeBase struct {
	ast.Header
	symbol ast.Symbol
}

func newTypeBase(ref token.SourceRef) typeBase {
	return typeBase{Header: ast.NewHeader(ast.KindDataType, ref)}
}

func (b *typeBase) BindSymbol(sym ast.Symbol) { b.symbol = sym }
func (b *typeBase) BoundSymbol() ast.Symbol   { return b.symbol }

// render prints the bound symbol's name when one is attached, falling
// back to the structural form. Anonymous interfaces never print their
// generated symbol name; they always render structurally.
func (b *typeBase) render(structural func() string) string {
	if sym := b.symbol; sym != nil && !isAnonymousInterfaceSymbol(sym) {
		return sym.Name()
	}
	return structural()
}

func isAnonymousInterfaceSymbol(sym ast.Symbol) bool {
	iface, ok := sym.(*scope.Interface)
	return ok && iface.IsAnonymous
}

// rebind carries the symbol binding of src over to the copy dst,
// preserving named-type stringification across Copy.
func rebind(dst ast.DataType, src *typeBase) ast.DataType {
	dst.BindSymbol(src.symbol)
	return dst
}

// adopt applies the data-type aliasing rule to t and installs owner as
// its parent, returning the node actually stored.
func adopt(t ast.DataType, owner ast.Node) ast.DataType {
	t = ast.AssignDataType(t)
	ast.Acquire(t)
	ast.SetParent(t, owner)
	return t
}

// isUnionOf reports whether other is a union type whose every option
// satisfies pred. Scalar types that accept unions (boolean, pattern)
// use this to test option-wise.
func isUnionOf(other ast.DataType, pred func(ast.DataType) bool) bool {
	u, ok := other.(*UnionType)
	if !ok {
		return false
	}
	for _, opt := range u.Options() {
		if !pred(opt) {
			return false
		}
	}
	return true
}
