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
	"github.com/Prince781/lstf-sub001/ast"
	"github.com/Prince781/lstf-sub001/token"
)

// AnyType receives every value except void.
type AnyType struct {
	typeBase
}

func NewAnyType(ref token.SourceRef) *AnyType {
	return &AnyType{typeBase: newTypeBase(ref)}
}

func (t *AnyType) Children() []ast.Node { return nil }
func (t *AnyType) Destroy()             {}

func (t *AnyType) IsSupertypeOf(other ast.DataType) bool {
	_, isVoid := other.(*VoidType)
	return !isVoid
}

func (t *AnyType) Copy() ast.DataType {
	return rebind(NewAnyType(t.SourceRef()), &t.typeBase)
}

func (t *AnyType) String() string {
	return t.render(func() string { return "any" })
}

// VoidType is the absence of a value; only void receives void.
type VoidType struct {
	typeBase
}

func NewVoidType(ref token.SourceRef) *VoidType {
	return &VoidType{typeBase: newTypeBase(ref)}
}

func (t *VoidType) Children() []ast.Node { return nil }
func (t *VoidType) Destroy()             {}

func (t *VoidType) IsSupertypeOf(other ast.DataType) bool {
	_, ok := other.(*VoidType)
	return ok
}

func (t *VoidType) Copy() ast.DataType {
	return rebind(NewVoidType(t.SourceRef()), &t.typeBase)
}

func (t *VoidType) String() string {
	return t.render(func() string { return "void" })
}

// NullType is the type of the null literal.
type NullType struct {
	typeBase
}

func NewNullType(ref token.SourceRef) *NullType {
	return &NullType{typeBase: newTypeBase(ref)}
}

func (t *NullType) Children() []ast.Node { return nil }
func (t *NullType) Destroy()             {}

func (t *NullType) IsSupertypeOf(other ast.DataType) bool {
	_, ok := other.(*NullType)
	return ok
}

func (t *NullType) Copy() ast.DataType {
	return rebind(NewNullType(t.SourceRef()), &t.typeBase)
}

func (t *NullType) String() string {
	return t.render(func() string { return "null" })
}

// BooleanType receives booleans, and a union whose every option it
// receives.
type BooleanType struct {
	typeBase
}

func NewBooleanType(ref token.SourceRef) *BooleanType {
	return &BooleanType{typeBase: newTypeBase(ref)}
}

func (t *BooleanType) Children() []ast.Node { return nil }
func (t *BooleanType) Destroy()             {}

func (t *BooleanType) IsSupertypeOf(other ast.DataType) bool {
	if _, ok := other.(*BooleanType); ok {
		return true
	}
	return isUnionOf(other, t.IsSupertypeOf)
}

func (t *BooleanType) Copy() ast.DataType {
	return rebind(NewBooleanType(t.SourceRef()), &t.typeBase)
}

func (t *BooleanType) String() string {
	return t.render(func() string { return "boolean" })
}

// IntegerType receives integers and booleans.
type IntegerType struct {
	typeBase
}

func NewIntegerType(ref token.SourceRef) *IntegerType {
	return &IntegerType{typeBase: newTypeBase(ref)}
}

func (t *IntegerType) Children() []ast.Node { return nil }
func (t *IntegerType) Destroy()             {}

func (t *IntegerType) IsSupertypeOf(other ast.DataType) bool {
	switch other.(type) {
	case *IntegerType, *BooleanType:
		return true
	}
	return false
}

func (t *IntegerType) Copy() ast.DataType {
	return rebind(NewIntegerType(t.SourceRef()), &t.typeBase)
}

func (t *IntegerType) String() string {
	return t.render(func() string { return "integer" })
}

// DoubleType receives doubles and integers.
type DoubleType struct {
	typeBase
}

func NewDoubleType(ref token.SourceRef) *DoubleType {
	return &DoubleType{typeBase: newTypeBase(ref)}
}

func (t *DoubleType) Children() []ast.Node { return nil }
func (t *DoubleType) Destroy()             {}

func (t *DoubleType) IsSupertypeOf(other ast.DataType) bool {
	switch other.(type) {
	case *DoubleType, *IntegerType:
		return true
	}
	return false
}

func (t *DoubleType) Copy() ast.DataType {
	return rebind(NewDoubleType(t.SourceRef()), &t.typeBase)
}

func (t *DoubleType) String() string {
	return t.render(func() string { return "double" })
}

// NumberType is the top of the numeric tower: it receives numbers,
// integers, doubles, and booleans.
type NumberType struct {
	typeBase
}

func NewNumberType(ref token.SourceRef) *NumberType {
	return &NumberType{typeBase: newTypeBase(ref)}
}

func (t *NumberType) Children() []ast.Node { return nil }
func (t *NumberType) Destroy()             {}

func (t *NumberType) IsSupertypeOf(other ast.DataType) bool {
	switch other.(type) {
	case *NumberType, *IntegerType, *DoubleType, *BooleanType:
		return true
	}
	return false
}

func (t *NumberType) Copy() ast.DataType {
	return rebind(NewNumberType(t.SourceRef()), &t.typeBase)
}

func (t *NumberType) String() string {
	return t.render(func() string { return "number" })
}

// StringType receives strings only.
type StringType struct {
	typeBase
}

func NewStringType(ref token.SourceRef) *StringType {
	return &StringType{typeBase: newTypeBase(ref)}
}

func (t *StringType) Children() []ast.Node { return nil }
func (t *StringType) Destroy()             {}

func (t *StringType) IsSupertypeOf(other ast.DataType) bool {
	_, ok := other.(*StringType)
	return ok
}

func (t *StringType) Copy() ast.DataType {
	return rebind(NewStringType(t.SourceRef()), &t.typeBase)
}

func (t *StringType) String() string {
	return t.render(func() string { return "string" })
}

// ObjectType is the unstructured object type; it also receives any
// interface, checked or not.
type ObjectType struct {
	typeBase
}

func NewObjectType(ref token.SourceRef) *ObjectType {
	return &ObjectType{typeBase: newTypeBase(ref)}
}

func (t *ObjectType) Children() []ast.Node { return nil }
func (t *ObjectType) Destroy()             {}

func (t *ObjectType) IsSupertypeOf(other ast.DataType) bool {
	switch other.(type) {
	case *ObjectType, *InterfaceType:
		return true
	}
	return false
}

func (t *ObjectType) Copy() ast.DataType {
	return rebind(NewObjectType(t.SourceRef()), &t.typeBase)
}

func (t *ObjectType) String() string {
	return t.render(func() string { return "object" })
}

// PatternType is the type of the left-hand side of a structural match.
// It receives every matchable type; functions, futures, void, the any
// type, and unresolved placeholders cannot be matched structurally.
// A union is matchable iff every option is.
type PatternType struct {
	typeBase
}

func NewPatternType(ref token.SourceRef) *PatternType {
	return &PatternType{typeBase: newTypeBase(ref)}
}

func (t *PatternType) Children() []ast.Node { return nil }
func (t *PatternType) Destroy()             {}

func (t *PatternType) IsSupertypeOf(other ast.DataType) bool {
	switch other.(type) {
	case *BooleanType, *DoubleType, *ArrayType, *IntegerType, *EnumType,
		*NullType, *NumberType, *ObjectType, *InterfaceType, *StringType,
		*PatternType:
		return true
	case *AnyType, *FunctionType, *UnresolvedType, *VoidType, *FutureType:
		return false
	}
	return isUnionOf(other, t.IsSupertypeOf)
}

func (t *PatternType) Copy() ast.DataType {
	return rebind(NewPatternType(t.SourceRef()), &t.typeBase)
}

func (t *PatternType) String() string {
	return t.render(func() string { return "pattern" })
}
