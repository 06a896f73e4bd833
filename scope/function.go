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

// Function is a named or anonymous-but-declared function: it owns a
// scope holding its parameters, an optional body block (nil for a
// native/builtin function), a return type, and the set of outer-scope
// locals it closes over once the resolver has walked its body.
//
// Function implements ast.FunctionLike and ast.HasOwnScope so a File's
// MainFunction, and any nested function declaration, share the same
// surface the resolver and analyzer operate on.
type Function struct {
	symBase
	scope          *ast.Scope
	Parameters     []*Variable
	ReturnType     ast.DataType
	block          *ast.Block
	IsAsync        bool
	IsInstance     bool
	capturedLocals map[ast.Symbol]bool
	capturedOrder  []ast.Symbol
}

func NewFunction(ref token.SourceRef, name string, isBuiltin, isAsync bool) *Function {
	f := &Function{
		symBase:        newSymBase(ref, name, isBuiltin),
		IsAsync:        isAsync,
		capturedLocals: map[ast.Symbol]bool{},
	}
	f.scope = ast.NewScope(f)
	return f
}

func (f *Function) SymbolKind() ast.SymbolKind { return ast.SymFunction }

func (f *Function) OwnScope() *ast.Scope { return f.scope }

// Body returns the function's statement block, or nil if it is a
// native/builtin function with no LSTF-level body.
func (f *Function) Body() *ast.Block { return f.block }

func (f *Function) SetBody(b *ast.Block) {
	if f.block != nil {
		ast.Release(f.block)
	}
	if b == nil {
		f.block = nil
		return
	}
	f.block = ast.Acquire(b).(*ast.Block)
	ast.SetParent(b, f)
}

// AddParameter appends a parameter. Parameters enter the function's
// scope during symbol resolution, alongside any other variable
// declaration, so duplicate parameter names are diagnosed there.
func (f *Function) AddParameter(param *Variable) {
	ast.Acquire(param)
	ast.SetParent(param, f)
	f.Parameters = append(f.Parameters, param)
}

func (f *Function) SetReturnType(t ast.DataType) {
	if f.ReturnType != nil {
		ast.Release(f.ReturnType)
	}
	t = ast.AssignDataType(t)
	if t != nil {
		ast.Acquire(t)
		ast.SetParent(t, f)
	}
	f.ReturnType = t
}

// AddCapturedLocal records that this function (when used as a nested,
// non-top-level declaration) closes over sym.
func (f *Function) AddCapturedLocal(sym ast.Symbol) {
	if !f.capturedLocals[sym] {
		f.capturedLocals[sym] = true
		f.capturedOrder = append(f.capturedOrder, sym)
	}
}

func (f *Function) CapturedLocals() []ast.Symbol {
	out := make([]ast.Symbol, len(f.capturedOrder))
	copy(out, f.capturedOrder)
	return out
}

func (f *Function) Children() []ast.Node {
	out := make([]ast.Node, 0, len(f.Parameters)+2)
	for _, p := range f.Parameters {
		out = append(out, p)
	}
	if f.ReturnType != nil {
		out = append(out, f.ReturnType)
	}
	if f.block != nil {
		out = append(out, f.block)
	}
	return out
}

func (f *Function) Destroy() {
	ast.ReleaseChildren(f)
	ast.Release(f.scope)
}
