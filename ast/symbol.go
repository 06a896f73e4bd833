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

// SymbolKind discriminates the named-declaration kinds described in §3.
type SymbolKind int

const (
	SymVariable SymbolKind = iota
	SymFunction
	SymTypeSymbol
	SymConstant
	SymInterfaceProperty
	SymObjectProperty
)

func (k SymbolKind) String() string {
	switch k {
	case SymVariable:
		return "variable"
	case SymFunction:
		return "function"
	case SymTypeSymbol:
		return "type symbol"
	case SymConstant:
		return "constant"
	case SymInterfaceProperty:
		return "interface property"
	case SymObjectProperty:
		return "object property"
	default:
		return "symbol"
	}
}

// Symbol is the abstract node kind for every named declaration: a
// variable, function, type alias/enum/interface, constant, or
// interface/object property. Concrete implementations live in package
// scope; the interface is declared here so Expression.SymbolReference
// and Scope's symbol table can refer to it without importing scope.
type Symbol interface {
	Node

	Name() string
	IsBuiltin() bool
	SymbolKind() SymbolKind
}

// Closure is the surface shared by the two node kinds that can close
// over outer locals: function symbols and lambda expressions. The
// resolver records captures through it without distinguishing the two.
type Closure interface {
	Node
	AddCapturedLocal(Symbol)
	CapturedLocals() []Symbol
}

// HasOwnScope is implemented by the symbol kinds that introduce a new
// lexical scope of their own: functions and type symbols (Scope
// ownership also includes blocks and lambda expressions, which are not
// symbols — see Block and LambdaExpr).
type HasOwnScope interface {
	Symbol
	OwnScope() *Scope
}
