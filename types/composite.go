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

// ArrayType is `E[]`. Arrays are invariant in their element type: they
// have both producer and consumer operations, so `E[]` receives only
// `E'[]` with E == E'.
type ArrayType struct {
	typeBase
	elementType ast.DataType
}

func NewArrayType(ref token.SourceRef, elementType ast.DataType) *ArrayType {
	t := &ArrayType{typeBase: newTypeBase(ref)}
	t.elementType = adopt(elementType, t)
	return t
}

func (t *ArrayType) ElementType() ast.DataType { return t.elementType }

// SetElementType replaces the element type, applying the aliasing rule.
func (t *ArrayType) SetElementType(e ast.DataType) {
	if t.elementType != nil {
		ast.Release(t.elementType)
	}
	t.elementType = adopt(e, t)
}

func (t *ArrayType) Children() []ast.Node { return []ast.Node{t.elementType} }
func (t *ArrayType) Destroy()             { ast.ReleaseChildren(t) }

func (t *ArrayType) IsSupertypeOf(other ast.DataType) bool {
	o, ok := other.(*ArrayType)
	if !ok {
		return false
	}
	return ast.Equals(t.elementType, o.elementType)
}

func (t *ArrayType) Copy() ast.DataType {
	return rebind(NewArrayType(t.SourceRef(), t.elementType.Copy()), &t.typeBase)
}

func (t *ArrayType) String() string {
	return t.render(func() string {
		if _, ok := t.elementType.(*UnionType); ok {
			return "(" + t.elementType.String() + ")[]"
		}
		return t.elementType.String() + "[]"
	})
}

// UnionType is `A | B | …`. It receives a value iff some option
// receives it; it receives another union iff it receives every option
// of that union. Options are kept canonical: adding an option equal to
// an existing one is a no-op, so the analyzer's element-type folding
// never grows a union with duplicates.
type UnionType struct {
	typeBase
	options []ast.DataType
}

// NewUnionType builds a union from at least two initial options.
func NewUnionType(ref token.SourceRef, first, second ast.DataType, rest ...ast.DataType) *UnionType {
	t := &UnionType{typeBase: newTypeBase(ref)}
	t.AddOption(first)
	t.AddOption(second)
	for _, opt := range rest {
		t.AddOption(opt)
	}
	return t
}

func (t *UnionType) Options() []ast.DataType {
	out := make([]ast.DataType, len(t.options))
	copy(out, t.options)
	return out
}

// AddOption appends an option unless an equal option is present.
func (t *UnionType) AddOption(opt ast.DataType) {
	for _, existing := range t.options {
		if ast.Equals(existing, opt) {
			return
		}
	}
	t.options = append(t.options, adopt(opt, t))
}

// ReplaceOption swaps old for replacement in place, returning whether
// old was found. The resolver uses it to substitute a resolved type
// for an unresolved union option.
func (t *UnionType) ReplaceOption(old, replacement ast.DataType) bool {
	for i, opt := range t.options {
		if opt == old {
			ast.Release(old)
			t.options[i] = adopt(replacement, t)
			return true
		}
	}
	return false
}

func (t *UnionType) Children() []ast.Node {
	out := make([]ast.Node, len(t.options))
	for i, opt := range t.options {
		out[i] = opt
	}
	return out
}

func (t *UnionType) Destroy() { ast.ReleaseChildren(t) }

func (t *UnionType) IsSupertypeOf(other ast.DataType) bool {
	if o, ok := other.(*UnionType); ok {
		for _, opt := range o.options {
			if !t.IsSupertypeOf(opt) {
				return false
			}
		}
		return true
	}
	for _, opt := range t.options {
		if opt.IsSupertypeOf(other) {
			return true
		}
	}
	return false
}

func (t *UnionType) Copy() ast.DataType {
	c := &UnionType{typeBase: newTypeBase(t.SourceRef())}
	for _, opt := range t.options {
		c.options = append(c.options, adopt(opt.Copy(), c))
	}
	return rebind(c, &t.typeBase)
}

func (t *UnionType) String() string {
	return t.render(func() string {
		parts := make([]string, len(t.options))
		for i, opt := range t.options {
			parts[i] = opt.String()
		}
		return strings.Join(parts, " | ")
	})
}

// FutureType is `future<T>`, the result of an asynchronous call. It is
// the lone built-in parametric type: exactly one wrapped type slot,
// covariant under the subtype predicate.
type FutureType struct {
	typeBase
	wrappedType ast.DataType
}

func NewFutureType(ref token.SourceRef, wrapped ast.DataType) *FutureType {
	t := &FutureType{typeBase: newTypeBase(ref)}
	t.wrappedType = adopt(wrapped, t)
	return t
}

func (t *FutureType) WrappedType() ast.DataType { return t.wrappedType }

func (t *FutureType) TypeParameters() []ast.DataType {
	if t.wrappedType == nil {
		return nil
	}
	return []ast.DataType{t.wrappedType}
}

func (t *FutureType) AddTypeParameter(param ast.DataType) error {
	if t.wrappedType != nil {
		return ErrTooManyTypeArguments
	}
	t.wrappedType = adopt(param, t)
	return nil
}

func (t *FutureType) ReplaceTypeParameter(old, replacement ast.DataType) bool {
	if t.wrappedType != old {
		return false
	}
	ast.Release(old)
	t.wrappedType = adopt(replacement, t)
	return true
}

func (t *FutureType) Children() []ast.Node {
	if t.wrappedType == nil {
		return nil
	}
	return []ast.Node{t.wrappedType}
}

func (t *FutureType) Destroy() { ast.ReleaseChildren(t) }

func (t *FutureType) IsSupertypeOf(other ast.DataType) bool {
	o, ok := other.(*FutureType)
	if !ok {
		return false
	}
	return t.wrappedType.IsSupertypeOf(o.wrappedType)
}

func (t *FutureType) Copy() ast.DataType {
	return rebind(NewFutureType(t.SourceRef(), t.wrappedType.Copy()), &t.typeBase)
}

func (t *FutureType) String() string {
	return t.render(func() string {
		return "future<" + t.wrappedType.String() + ">"
	})
}

// FunctionType is the type of a function value: ordered, named
// parameter types plus a return type. Parameter types are invariant
// and the return type is covariant; asyncness is part of the type.
type FunctionType struct {
	typeBase
	paramNames []string
	paramTypes []ast.DataType
	returnType ast.DataType
	IsAsync    bool
}

func NewFunctionType(ref token.SourceRef, isAsync bool) *FunctionType {
	return &FunctionType{typeBase: newTypeBase(ref), IsAsync: isAsync}
}

// NewFunctionTypeFromFunction derives the type of a function symbol,
// copying its parameter and return types per the aliasing rule. A
// parameter with no resolved type contributes `any`.
func NewFunctionTypeFromFunction(ref token.SourceRef, fn *scope.Function) *FunctionType {
	t := NewFunctionType(ref, fn.IsAsync)
	for _, p := range fn.Parameters {
		pt := p.VariableType
		if pt == nil {
			pt = NewAnyType(p.SourceRef())
		}
		t.AddParameter(p.Name(), pt)
	}
	if fn.ReturnType != nil {
		t.SetReturnType(fn.ReturnType)
	} else {
		t.SetReturnType(NewVoidType(ref))
	}
	return t
}

func (t *FunctionType) AddParameter(name string, paramType ast.DataType) {
	t.paramNames = append(t.paramNames, name)
	t.paramTypes = append(t.paramTypes, adopt(paramType, t))
}

func (t *FunctionType) ParameterNames() []string {
	out := make([]string, len(t.paramNames))
	copy(out, t.paramNames)
	return out
}

func (t *FunctionType) ParameterTypes() []ast.DataType {
	out := make([]ast.DataType, len(t.paramTypes))
	copy(out, t.paramTypes)
	return out
}

func (t *FunctionType) ReturnType() ast.DataType { return t.returnType }

func (t *FunctionType) SetReturnType(r ast.DataType) {
	if t.returnType != nil {
		ast.Release(t.returnType)
	}
	t.returnType = adopt(r, t)
}

// ReplaceParameterType swaps old for replacement among the parameter
// types, returning whether old was found.
func (t *FunctionType) ReplaceParameterType(old, replacement ast.DataType) bool {
	for i, pt := range t.paramTypes {
		if pt == old {
			ast.Release(old)
			t.paramTypes[i] = adopt(replacement, t)
			return true
		}
	}
	return false
}

func (t *FunctionType) Children() []ast.Node {
	out := make([]ast.Node, 0, len(t.paramTypes)+1)
	for _, pt := range t.paramTypes {
		out = append(out, pt)
	}
	if t.returnType != nil {
		out = append(out, t.returnType)
	}
	return out
}

func (t *FunctionType) Destroy() { ast.ReleaseChildren(t) }

func (t *FunctionType) IsSupertypeOf(other ast.DataType) bool {
	o, ok := other.(*FunctionType)
	if !ok {
		return false
	}
	if t.IsAsync != o.IsAsync || len(t.paramTypes) != len(o.paramTypes) {
		return false
	}
	for i, pt := range t.paramTypes {
		if !ast.Equals(pt, o.paramTypes[i]) {
			return false
		}
	}
	return t.returnType.IsSupertypeOf(o.returnType)
}

func (t *FunctionType) Copy() ast.DataType {
	c := NewFunctionType(t.SourceRef(), t.IsAsync)
	for i, pt := range t.paramTypes {
		c.AddParameter(t.paramNames[i], pt.Copy())
	}
	if t.returnType != nil {
		c.SetReturnType(t.returnType.Copy())
	}
	return rebind(c, &t.typeBase)
}

func (t *FunctionType) String() string {
	return t.render(func() string {
		var sb strings.Builder
		if t.IsAsync {
			sb.WriteString("async ")
		}
		sb.WriteByte('(')
		for i, pt := range t.paramTypes {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(t.paramNames[i])
			sb.WriteString(": ")
			sb.WriteString(pt.String())
		}
		sb.WriteString(") => ")
		if t.returnType != nil {
			sb.WriteString(t.returnType.String())
		} else {
			sb.WriteString("void")
		}
		return sb.String()
	})
}
