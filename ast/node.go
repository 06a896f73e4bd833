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

// Package ast declares the typed abstract syntax tree that the symbol
// resolver and the semantic analyzer mutate in place: the polymorphic
// code-node core (C2), and the expression/statement/block skeleton (C5).
//
// Every node embeds Header, which carries the reference-counted,
// floating-bit ownership model described by the design: a node is born
// floating with refcount 0, and the first Acquire clears the floating bit
// and sets refcount to 1. This is not required for memory safety in Go
// (the garbage collector would reclaim an orphaned node regardless), but
// the resolver and analyzer are specified in terms of it, and several
// testable properties (single parent, data-type aliasing) are stated in
// terms of acquire/release, so the bookkeeping is kept bit-exact.
package ast

import "github.com/Prince781/lstf-sub001/token"

// Kind is the discriminant every code node carries: one of the six
// families the core distinguishes.
type Kind int

const (
	KindStatement Kind = iota
	KindExpression
	KindSymbol
	KindBlock
	KindScope
	KindDataType
)

func (k Kind) String() string {
	switch k {
	case KindStatement:
		return "statement"
	case KindExpression:
		return "expression"
	case KindSymbol:
		return "symbol"
	case KindBlock:
		return "block"
	case KindScope:
		return "scope"
	case KindDataType:
		return "data-type"
	default:
		return "unknown"
	}
}

// Node is the common substrate for every node in the tree: a source
// reference, a discriminant, reference counting with a floating bit, a
// parent back-pointer, and the children used for generic tree walks and
// for releasing owned references on destruction.
type Node interface {
	NodeKind() Kind
	SourceRef() token.SourceRef
	Parent() Node

	// Children returns this node's owned children, in traversal order. It
	// is the basis for both Inspect and the default Destroy behavior.
	Children() []Node

	// Destroy runs this node's per-kind cleanup. Most implementations
	// just call ReleaseChildren(self); nodes with extra owned state
	// (e.g. a Scope besides Children) release that too.
	Destroy()

	// header exposes the embedded Header. Only types in this package, or
	// types that embed Header, can implement Node — this enforces that
	// Header really is the universal substrate described by the design.
	header() *Header
}

// Header is embedded by every concrete node type.
type Header struct {
	kind     Kind
	ref      token.SourceRef
	refcount uint32
	floating bool
	parent   Node
}

// NewHeader constructs a fresh, floating header for a node of the given
// kind and source span.
func NewHeader(kind Kind, ref token.SourceRef) Header {
	return Header{kind: kind, ref: ref, floating: true}
}

func (h *Header) NodeKind() Kind             { return h.kind }
func (h *Header) SourceRef() token.SourceRef { return h.ref }
func (h *Header) Parent() Node               { return h.parent }
func (h *Header) header() *Header            { return h }

// Acquire makes n owned: the first acquisition of a floating node clears
// the floating bit and sets refcount to 1; subsequent acquisitions just
// increment. Acquiring a nil Node is a no-op and returns nil, matching a
// release of a NULL handle being a no-op in the source model.
func Acquire(n Node) Node {
	if n == nil {
		return nil
	}
	h := n.header()
	if h.floating {
		h.floating = false
		h.refcount = 1
	} else {
		h.refcount++
	}
	return n
}

// Release decrements n's reference count, destroying n when either the
// floating bit is still set or the count reaches zero. Releasing a nil
// Node is a no-op. Releasing a node that is neither floating nor holds a
// positive refcount is a programmer error and panics, mirroring the
// source's assertion that this path must never be reached.
func Release(n Node) {
	if n == nil {
		return
	}
	h := n.header()
	if !h.floating && h.refcount == 0 {
		panic("ast: release of a non-floating node with refcount 0")
	}
	if h.floating {
		n.Destroy()
		return
	}
	h.refcount--
	if h.refcount == 0 {
		n.Destroy()
	}
}

// ReleaseChildren releases every child reported by n.Children(). Concrete
// Destroy implementations call this first, then release any additional
// owned state (such as a Block's Scope) that isn't itself a Child.
func ReleaseChildren(n Node) {
	for _, c := range n.Children() {
		Release(c)
	}
}

// SetParent installs parent as child's weak back-pointer. It never
// changes a refcount: the parent pointer is non-owning. Re-parenting an
// already-parented node violates invariant (A) and is the caller's
// responsibility to avoid (see the data-type aliasing rule for how
// copy-on-reuse keeps this true for data types specifically).
func SetParent(child, parent Node) {
	if child == nil {
		return
	}
	child.header().parent = parent
}

// IsFloating reports whether n has not yet been adopted by any owner.
func IsFloating(n Node) bool {
	return n != nil && n.header().floating
}

// RefCount reports n's current reference count (0 while floating).
func RefCount(n Node) uint32 {
	if n == nil {
		return 0
	}
	return n.header().refcount
}

// SetSourceRef rewrites n's source span. The resolver uses it when a
// copy of an aliased type replaces an unresolved reference, so that
// diagnostics against the copy point at the use site rather than at
// the alias declaration.
func SetSourceRef(n Node, ref token.SourceRef) {
	n.header().ref = ref
}

// CastToKind performs a checked downcast of n to a concrete or
// intermediate node type T, returning ok=false rather than panicking on
// mismatch.
func CastToKind[T Node](n Node) (t T, ok bool) {
	t, ok = n.(T)
	return t, ok
}
