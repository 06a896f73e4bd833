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

import (
	"fmt"

	"github.com/Prince781/lstf-sub001/token"
)

// ScopeOwner is implemented by every node kind that introduces its own
// lexical scope: blocks, functions, type symbols, and lambda
// expressions. Scope.Lookup climbs the parent chain looking for the
// next ancestor that satisfies this interface.
type ScopeOwner interface {
	Node
	OwnScope() *Scope
}

// Scope holds a map of name to symbol, scoped to exactly one owner
// (invariant C). Symbols are held weakly: a scope never keeps a symbol
// alive by itself, matching "map name -> weak(symbol)" in the design.
type Scope struct {
	Header
	symbols map[string]Symbol
	order   []string // insertion order, for deterministic iteration/printing
}

// NewScope creates a scope owned by owner. owner must be a block,
// function, type symbol, or lambda expression.
func NewScope(owner ScopeOwner) *Scope {
	s := NewScopeWithRef(owner.SourceRef())
	SetParent(s, owner)
	return s
}

// NewScopeWithRef creates a scope with no owner yet attached. Used by
// constructors of self-referential scope owners (a type symbol's
// scope must be built before the type symbol itself is fully
// assembled); callers must follow up with SetParent once the owner is
// ready to be read from.
func NewScopeWithRef(ref token.SourceRef) *Scope {
	return &Scope{Header: NewHeader(KindScope, ref), symbols: map[string]Symbol{}}
}

func (s *Scope) Children() []Node { return nil }
func (s *Scope) Destroy()         {}

// Owner returns the node that introduced this scope.
func (s *Scope) Owner() Node { return s.Parent() }

// GetSymbol searches only this scope for name.
func (s *Scope) GetSymbol(name string) Symbol {
	return s.symbols[name]
}

// AddSymbol inserts symbol under its own name. Per invariant (F), this
// is idempotent when the same (name, symbol) pair is added twice, and
// it is the caller's responsibility (via a prior GetSymbol/Lookup) to
// detect a genuine collision before calling AddSymbol — AddSymbol
// itself only guards against silently clobbering a *different* symbol.
func (s *Scope) AddSymbol(symbol Symbol) error {
	name := symbol.Name()
	if existing, ok := s.symbols[name]; ok {
		if existing == symbol {
			return nil
		}
		return fmt.Errorf("ast: symbol %q already declared in this scope", name)
	}
	s.symbols[name] = symbol
	s.order = append(s.order, name)
	return nil
}

// Symbols returns every symbol in this scope, in insertion order.
func (s *Scope) Symbols() []Symbol {
	out := make([]Symbol, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.symbols[name])
	}
	return out
}

// Lookup searches this scope, then walks outward: from this scope's
// owner, climb parent back-pointers until an ancestor that is itself a
// ScopeOwner is found, and recurse into its scope. Returns the first
// hit, or nil.
func (s *Scope) Lookup(name string) Symbol {
	if sym := s.GetSymbol(name); sym != nil {
		return sym
	}
	owner := s.Owner()
	if owner == nil {
		return nil
	}
	node := owner.Parent()
	for node != nil {
		if so, ok := node.(ScopeOwner); ok {
			return so.OwnScope().Lookup(name)
		}
		node = node.Parent()
	}
	return nil
}
