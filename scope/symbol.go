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

// Package scope declares the concrete named-declaration kinds: the six
// symbol variants (variable, function, type symbol, constant, interface
// property, object property) and the scope-owning composite types
// (function and type symbol) built on top of package ast's abstract
// Symbol, Scope and DataType.
package scope

import (
	"github.com/Prince781/lstf-sub001/ast"
	"github.com/Prince781/lstf-sub001/token"
)

// symBase is embedded by every concrete symbol, carrying the fields
// common to all of them (name, builtin flag, header).
type symBase struct {
	ast.Header
	name      string
	isBuiltin bool
}

func newSymBase(ref token.SourceRef, name string, isBuiltin bool) symBase {
	return symBase{Header: ast.NewHeader(ast.KindSymbol, ref), name: name, isBuiltin: isBuiltin}
}

func (b *symBase) Name() string    { return b.name }
func (b *symBase) IsBuiltin() bool { return b.isBuiltin }

// Variable is a `let`-bound local, a function parameter, or an object
// literal destructuring target. VariableType may be nil: the resolver
// resolves a declared annotation in place, and for an unannotated
// declaring assignment the analyzer sets it from the right-hand side.
type Variable struct {
	symBase
	VariableType ast.DataType
	Initializer  ast.Expression
}

func NewVariable(ref token.SourceRef, name string, isBuiltin bool) *Variable {
	return &Variable{symBase: newSymBase(ref, name, isBuiltin)}
}

func (v *Variable) SymbolKind() ast.SymbolKind { return ast.SymVariable }

// SetVariableType installs t as v's declared/inferred type, applying
// the data-type aliasing rule.
func (v *Variable) SetVariableType(t ast.DataType) {
	if v.VariableType != nil {
		ast.Release(v.VariableType)
	}
	t = ast.AssignDataType(t)
	if t != nil {
		ast.Acquire(t)
		ast.SetParent(t, v)
	}
	v.VariableType = t
}

func (v *Variable) SetInitializer(e ast.Expression) {
	if e == nil {
		return
	}
	v.Initializer = ast.Acquire(e).(ast.Expression)
	ast.SetParent(e, v)
}

func (v *Variable) Children() []ast.Node {
	var out []ast.Node
	if v.VariableType != nil {
		out = append(out, v.VariableType)
	}
	if v.Initializer != nil {
		out = append(out, v.Initializer)
	}
	return out
}

func (v *Variable) Destroy() { ast.ReleaseChildren(v) }

// ObjectProperty is one member of an object-pattern's left-hand side:
// `{ name: ... }` in a destructuring assignment.
type ObjectProperty struct {
	symBase
	PropertyType ast.DataType
}

func NewObjectProperty(ref token.SourceRef, name string) *ObjectProperty {
	return &ObjectProperty{symBase: newSymBase(ref, name, false)}
}

func (p *ObjectProperty) SymbolKind() ast.SymbolKind { return ast.SymObjectProperty }

func (p *ObjectProperty) Children() []ast.Node {
	if p.PropertyType == nil {
		return nil
	}
	return []ast.Node{p.PropertyType}
}

func (p *ObjectProperty) Destroy() { ast.ReleaseChildren(p) }

// InterfaceProperty is one member of an interface declaration:
// `name: T;` or, when IsOptional, `name?: T;`.
type InterfaceProperty struct {
	symBase
	IsOptional   bool
	PropertyType ast.DataType
}

func NewInterfaceProperty(ref token.SourceRef, name string, isOptional bool, isBuiltin bool) *InterfaceProperty {
	return &InterfaceProperty{symBase: newSymBase(ref, name, isBuiltin), IsOptional: isOptional}
}

func (p *InterfaceProperty) SymbolKind() ast.SymbolKind { return ast.SymInterfaceProperty }

func (p *InterfaceProperty) SetPropertyType(t ast.DataType) {
	if p.PropertyType != nil {
		ast.Release(p.PropertyType)
	}
	t = ast.AssignDataType(t)
	if t != nil {
		ast.Acquire(t)
		ast.SetParent(t, p)
	}
	p.PropertyType = t
}

func (p *InterfaceProperty) Children() []ast.Node {
	if p.PropertyType == nil {
		return nil
	}
	return []ast.Node{p.PropertyType}
}

func (p *InterfaceProperty) Destroy() { ast.ReleaseChildren(p) }

// Constant is a named literal bound by an enum member (`Red,` inside
// `enum Color { Red, Green, Blue }`) or a top-level `const` (if the
// surface grammar grows one); its value type is simply its
// expression's inferred value type.
type Constant struct {
	symBase
	Expression ast.Expression
}

func NewConstant(ref token.SourceRef, name string, expr ast.Expression) *Constant {
	c := &Constant{symBase: newSymBase(ref, name, false)}
	if expr != nil {
		c.Expression = ast.Acquire(expr).(ast.Expression)
		ast.SetParent(expr, c)
	}
	return c
}

func (c *Constant) SymbolKind() ast.SymbolKind { return ast.SymConstant }

// ValueType returns the constant's value type, i.e. its expression's
// value type once the analyzer has run.
func (c *Constant) ValueType() ast.DataType {
	if c.Expression == nil {
		return nil
	}
	return c.Expression.ValueType()
}

func (c *Constant) Children() []ast.Node {
	if c.Expression == nil {
		return nil
	}
	return []ast.Node{c.Expression}
}

func (c *Constant) Destroy() { ast.ReleaseChildren(c) }
