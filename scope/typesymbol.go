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

package scope

import (
	"github.com/Prince781/lstf-sub001/ast"
	"github.com/Prince781/lstf-sub001/token"
)

// TypeSymbol is the abstract base for the three statically-defined
// type declarations: type alias, enum, and interface. Each owns a
// scope so its own members (interface properties, enum constants) can
// be looked up by name from within the declaration, and a member list
// that keeps the members in insertion order.
type TypeSymbol struct {
	symBase
	scope      *ast.Scope
	memberList []ast.Symbol
}

// newTypeSymbol builds the embeddable TypeSymbol state. owner must be
// the concrete type (Alias/Enum/Interface) currently under
// construction; its scope is attached only after the caller assigns
// the returned value into owner's TypeSymbol field, so the scope
// itself is built first and parented by a direct SetParent call rather
// than through owner's (not yet valid) Node methods.
func newTypeSymbol(ref token.SourceRef, name string, isBuiltin bool, owner ast.ScopeOwner) TypeSymbol {
	s := ast.NewScopeWithRef(ref)
	ast.SetParent(s, owner)
	return TypeSymbol{symBase: newSymBase(ref, name, isBuiltin), scope: s}
}

func (t *TypeSymbol) SymbolKind() ast.SymbolKind { return ast.SymTypeSymbol }

func (t *TypeSymbol) OwnScope() *ast.Scope { return t.scope }

// addMember inserts member into the type symbol's own scope. Duplicate
// names are rejected by the scope exactly as any other scope would.
func (t *TypeSymbol) addMember(owner ast.Node, member ast.Symbol) error {
	ast.Acquire(member)
	ast.SetParent(member, owner)
	t.memberList = append(t.memberList, member)
	return t.scope.AddSymbol(member)
}

// GetMember looks up a member declared directly on this type symbol
// (not inherited from a base interface — see Interface.LookupMember).
func (t *TypeSymbol) GetMember(name string) ast.Symbol {
	return t.scope.GetSymbol(name)
}

func (t *TypeSymbol) Members() []ast.Symbol {
	out := make([]ast.Symbol, len(t.memberList))
	copy(out, t.memberList)
	return out
}

func (t *TypeSymbol) releaseScope() { ast.Release(t.scope) }

// Alias is `type Name = <data type>;`.
type Alias struct {
	TypeSymbol
	AliasedType ast.DataType
}

func NewAlias(ref token.SourceRef, name string, isBuiltin bool) *Alias {
	a := &Alias{}
	a.TypeSymbol = newTypeSymbol(ref, name, isBuiltin, a)
	return a
}

func (a *Alias) SetAliasedType(t ast.DataType) {
	if a.AliasedType != nil {
		ast.Release(a.AliasedType)
	}
	t = ast.AssignDataType(t)
	if t != nil {
		ast.Acquire(t)
		ast.SetParent(t, a)
		// copies of the aliased type print the alias's name
		t.BindSymbol(a)
	}
	a.AliasedType = t
}

func (a *Alias) Children() []ast.Node {
	if a.AliasedType == nil {
		return nil
	}
	return []ast.Node{a.AliasedType}
}

func (a *Alias) Destroy() {
	ast.ReleaseChildren(a)
	a.releaseScope()
}

// Enum is `enum Name { Member, ... }`; every member shares MembersType,
// the data type each constant's value is checked against (conventionally
// `integer` unless the surface grammar grows typed enums).
type Enum struct {
	TypeSymbol
	MembersType ast.DataType
}

func NewEnum(ref token.SourceRef, name string, isBuiltin bool) *Enum {
	e := &Enum{}
	e.TypeSymbol = newTypeSymbol(ref, name, isBuiltin, e)
	return e
}

func (e *Enum) AddMember(member *Constant) error {
	return e.addMember(e, member)
}

func (e *Enum) SetMembersType(t ast.DataType) {
	if e.MembersType != nil {
		ast.Release(e.MembersType)
	}
	t = ast.AssignDataType(t)
	if t != nil {
		ast.Acquire(t)
		ast.SetParent(t, e)
	}
	e.MembersType = t
}

func (e *Enum) Children() []ast.Node {
	out := make([]ast.Node, 0, len(e.memberList)+1)
	for _, m := range e.memberList {
		out = append(out, m)
	}
	if e.MembersType != nil {
		out = append(out, e.MembersType)
	}
	return out
}

func (e *Enum) Destroy() {
	ast.ReleaseChildren(e)
	e.releaseScope()
}

// Interface is `interface Name extends Base, ... { member: T; ... }`.
// IsAnonymous marks an interface synthesized by the analyzer for an
// object literal's structural type rather than declared in source.
type Interface struct {
	TypeSymbol
	ExtendsTypes []ast.DataType
	IsAnonymous  bool
}

func NewInterface(ref token.SourceRef, name string, isAnonymous, isBuiltin bool) *Interface {
	i := &Interface{IsAnonymous: isAnonymous}
	i.TypeSymbol = newTypeSymbol(ref, name, isBuiltin, i)
	return i
}

func (i *Interface) AddMember(member *InterfaceProperty) error {
	return i.addMember(i, member)
}

func (i *Interface) AddBaseType(t ast.DataType) {
	t = ast.Acquire(t).(ast.DataType)
	ast.SetParent(t, i)
	i.ExtendsTypes = append(i.ExtendsTypes, t)
}

// LookupMember searches for a property declared on this interface or,
// failing that, on any of its base interfaces, recursively. Base types
// that are not interface types (e.g. still-unresolved references) are
// skipped.
func (i *Interface) LookupMember(name string) ast.Symbol {
	if m := i.GetMember(name); m != nil {
		return m
	}
	for _, base := range i.ExtendsTypes {
		ref, ok := base.(interface{ InterfaceSymbol() *Interface })
		if !ok {
			continue
		}
		if m := ref.InterfaceSymbol().LookupMember(name); m != nil {
			return m
		}
	}
	return nil
}

// ReplaceBaseType swaps an unresolved base-type placeholder for its
// resolved form, matching the in-place substitution the resolver
// performs once a named base interface is looked up.
func (i *Interface) ReplaceBaseType(old, replacement ast.DataType) bool {
	for idx, t := range i.ExtendsTypes {
		if t == old {
			ast.Release(old)
			replacement = ast.Acquire(replacement).(ast.DataType)
			ast.SetParent(replacement, i)
			i.ExtendsTypes[idx] = replacement
			return true
		}
	}
	return false
}

func (i *Interface) Children() []ast.Node {
	out := make([]ast.Node, 0, len(i.memberList)+len(i.ExtendsTypes))
	for _, m := range i.memberList {
		out = append(out, m)
	}
	for _, t := range i.ExtendsTypes {
		out = append(out, t)
	}
	return out
}

func (i *Interface) Destroy() {
	ast.ReleaseChildren(i)
	i.releaseScope()
}
