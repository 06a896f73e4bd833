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

// DataType is the abstract node kind satisfied by every member of the
// closed data-type lattice (package types). It lives here, rather than
// in package types, so that Expression.ValueType and Symbol field types
// can refer to it without an import cycle between the AST skeleton and
// the concrete lattice.
type DataType interface {
	Node

	// IsSupertypeOf reports whether self can receive a value of type
	// other ("self :> other"), per the subtype table in the design.
	IsSupertypeOf(other DataType) bool

	// Copy returns a structurally new DataType with the same source
	// reference and the same bound symbol. Used to enforce the
	// data-type aliasing rule (D): when a DataType already has a
	// parent, it must be copied before being assigned into a new slot.
	Copy() DataType

	// String renders the type the way the source language would print
	// it back (e.g. "A | B", "E[]", the bound symbol's name).
	String() string

	// BindSymbol attaches the named symbol this type was derived from
	// (a type alias, enum, or interface), so String can print the name
	// instead of the structural form. The binding is weak.
	BindSymbol(Symbol)
	BoundSymbol() Symbol
}

// TypeParameterHost is implemented by the data types with true
// type-parameter slots: the future type, and the unresolved
// placeholder, which collects type arguments written in source
// (`future<string>`) until the resolver translates them. Function
// types manage their parameter and return slots through their own
// accessors, since those slots are not type parameters in the sense of
// invariant (E).
type TypeParameterHost interface {
	DataType
	TypeParameters() []DataType
	AddTypeParameter(DataType) error
	ReplaceTypeParameter(old, replacement DataType) bool
}

// Equals implements the type-equality law: equal iff each is a
// supertype of the other.
func Equals(a, b DataType) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.IsSupertypeOf(b) && b.IsSupertypeOf(a)
}

// IsTypeParameter implements invariant (E): t is a type parameter iff
// its parent is itself a DataType and t appears in that parent's
// TypeParameters() list.
func IsTypeParameter(t DataType) bool {
	parent, ok := t.Parent().(DataType)
	if !ok {
		return false
	}
	host, ok := parent.(TypeParameterHost)
	if !ok {
		return false
	}
	for _, p := range host.TypeParameters() {
		if p == t {
			return true
		}
	}
	return false
}

// AssignDataType implements the data-type aliasing rule (D): if t
// already has a parent, it returns a copy of t instead of t itself,
// preventing the single-parent invariant from being silently violated.
// The caller stores the returned DataType in its slot.
func AssignDataType(t DataType) DataType {
	if t == nil {
		return nil
	}
	if t.Parent() != nil {
		return t.Copy()
	}
	return t
}
