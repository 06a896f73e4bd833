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

package types

import (
	"strings"

	"github.com/Prince781/lstf-sub001/ast"
	"github.com/Prince781/lstf-sub001/scope"
	"github.com/Prince781/lstf-sub001/token"
)

// UnresolvedType is the placeholder the parser installs wherever a name
// appears in a type position. It carries any type arguments written in
// source (`future<string>`) until the resolver translates the whole
// reference into a concrete type. It is a supertype of nothing: every
// unresolved reference must be eliminated before analysis.
type UnresolvedType struct {
	typeBase
	Name   string
	params []ast.DataType
}

func NewUnresolvedType(ref token.SourceRef, name string) *UnresolvedType {
	return &UnresolvedType{typeBase: newTypeBase(ref), Name: name}
}

func (t *UnresolvedType) TypeParameters() []ast.DataType {
	out := make([]ast.DataType, len(t.params))
	copy(out, t.params)
	return out
}

// AddTypeParameter collects a type argument. Arity is not checked here;
// the resolver reports it against the reference as a whole once the
// target type is known.
func (t *UnresolvedType) AddTypeParameter(param ast.DataType) error {
	t.params = append(t.params, adopt(param, t))
	return nil
}

func (t *UnresolvedType) ReplaceTypeParameter(old, replacement ast.DataType) bool {
	for i, p := range t.params {
		if p == old {
			ast.Release(old)
			t.params[i] = adopt(replacement, t)
			return true
		}
	}
	return false
}

func (t *UnresolvedType) Children() []ast.Node {
	out := make([]ast.Node, len(t.params))
	for i, p := range t.params {
		out[i] = p
	}
	return out
}

func (t *UnresolvedType) Destroy() { ast.ReleaseChildren(t) }

func (t *UnresolvedType) IsSupertypeOf(ast.DataType) bool { return false }

func (t *UnresolvedType) Copy() ast.DataType {
	return rebind(NewUnresolvedType(t.SourceRef(), t.Name), &t.typeBase)
}

func (t *UnresolvedType) String() string {
	if len(t.params) == 0 {
		return t.Name
	}
	parts := make([]string, len(t.params))
	for i, p := range t.params {
		parts[i] = p.String()
	}
	return t.Name + "<" + strings.Join(parts, ", ") + ">"
}

// EnumType is a reference to an enum declaration. Enums are nominal:
// one enum type receives another iff both refer to the same
// declaration.
type EnumType struct {
	typeBase
	enum *scope.Enum // weak: the enum may be an ancestor of this type
}

func NewEnumType(ref token.SourceRef, enum *scope.Enum) *EnumType {
	t := &EnumType{typeBase: newTypeBase(ref), enum: enum}
	t.BindSymbol(enum)
	return t
}

func (t *EnumType) EnumSymbol() *scope.Enum { return t.enum }

func (t *EnumType) Children() []ast.Node { return nil }
func (t *EnumType) Destroy()             {}

func (t *EnumType) IsSupertypeOf(other ast.DataType) bool {
	o, ok := other.(*EnumType)
	return ok && o.enum == t.enum
}

func (t *EnumType) Copy() ast.DataType {
	return rebind(NewEnumType(t.SourceRef(), t.enum), &t.typeBase)
}

func (t *EnumType) String() string {
	return t.render(func() string { return t.enum.Name() })
}

// InterfaceType is a reference to an interface declaration, named or
// anonymous. Interfaces are structural: I receives I' iff every base
// type of I also receives I', and every member of I has a matching
// member in I' (searched through I''s own members and base interfaces)
// whose property type it receives.
type InterfaceType struct {
	typeBase
	iface *scope.Interface // weak: the interface may own this type via a member
}

func NewInterfaceType(ref token.SourceRef, iface *scope.Interface) *InterfaceType {
	t := &InterfaceType{typeBase: newTypeBase(ref), iface: iface}
	t.BindSymbol(iface)
	return t
}

func (t *InterfaceType) InterfaceSymbol() *scope.Interface { return t.iface }

func (t *InterfaceType) Children() []ast.Node { return nil }
func (t *InterfaceType) Destroy()             {}

func (t *InterfaceType) IsSupertypeOf(other ast.DataType) bool {
	for _, base := range t.iface.ExtendsTypes {
		if !base.IsSupertypeOf(other) {
			return false
		}
	}

	o, ok := other.(*InterfaceType)
	if !ok {
		return false
	}

	for _, member := range t.iface.Members() {
		prop, ok := member.(*scope.InterfaceProperty)
		if !ok {
			continue
		}
		otherMember := o.iface.LookupMember(prop.Name())
		if otherMember == nil {
			return false
		}
		otherProp, ok := otherMember.(*scope.InterfaceProperty)
		if !ok {
			return false
		}
		if !prop.PropertyType.IsSupertypeOf(otherProp.PropertyType) {
			return false
		}
	}
	return true
}

func (t *InterfaceType) Copy() ast.DataType {
	return rebind(NewInterfaceType(t.SourceRef(), t.iface), &t.typeBase)
}

func (t *InterfaceType) String() string {
	return t.render(func() string {
		members := t.iface.Members()
		if len(members) == 0 {
			return "{}"
		}
		var sb strings.Builder
		sb.WriteString("{ ")
		for i, member := range members {
			if i > 0 {
				sb.WriteString("; ")
			}
			sb.WriteString(member.Name())
			if prop, ok := member.(*scope.InterfaceProperty); ok {
				if prop.IsOptional {
					sb.WriteByte('?')
				}
				sb.WriteString(": ")
				sb.WriteString(prop.PropertyType.String())
			}
		}
		sb.WriteString(" }")
		return sb.String()
	})
}
