// Package model holds the in-memory BCF object graph with per-field change
// tracking.
//
// Every entity and every leaf value wrapper is a Node: it carries an internal
// id assigned once at construction, a state tag, its XML tag name, and a
// back-reference to its containing object. Internal ids survive deep copies,
// so an edited copy of a subtree can be matched back to the live tree by id
// rather than by value.
package model

import (
	"errors"
	"sync/atomic"
)

// ErrInvalidArgument reports a setter given a value outside its accepted
// types. This is the only defect class the model detects synchronously.
var ErrInvalidArgument = errors.New("invalid argument type")

// Node is implemented by every member of the object graph.
type Node interface {
	// InternalID is the process-unique identity used for structural search.
	// It is never serialized.
	InternalID() uint64
	State() State
	SetState(State)
	// XMLTag is the element or attribute name used when serializing.
	XMLTag() string
	// Parent is the containing object; nil for the root Project. The parent
	// is never owned by the child.
	Parent() Node
	SetParent(Node)
	// Search returns the node in this subtree whose internal id matches id,
	// or nil. Comparison is by id only, never by value.
	Search(id uint64) Node
	// StateList collects the (state, node) pairs of this subtree that have
	// diverged from Original.
	StateList() []StateEntry
}

var internalIDs atomic.Uint64

func nextInternalID() uint64 {
	return internalIDs.Add(1)
}

// base carries the node identity shared by every graph member. It is
// embedded, never used on its own.
type base struct {
	id     uint64
	state  State
	tag    string
	parent Node
}

func newBase(tag string, parent Node, state State) base {
	return base{id: nextInternalID(), state: state, tag: tag, parent: parent}
}

func (b *base) InternalID() uint64 { return b.id }
func (b *base) State() State       { return b.state }
func (b *base) SetState(s State)   { b.state = s }
func (b *base) XMLTag() string     { return b.tag }
func (b *base) Parent() Node       { return b.parent }
func (b *base) SetParent(n Node)   { b.parent = n }

// IsOriginal reports whether the node is untouched since load.
func (b *base) IsOriginal() bool { return b.state == Original }

// touch records a field mutation: Original becomes Modified, Added stays
// Added.
func (b *base) touch() {
	if b.state == Original {
		b.state = Modified
	}
}

// cloneBase duplicates the identity of a node for a deep copy. The internal
// id and state are preserved; the parent reference is dropped and must be
// re-stamped by the copying container.
func (b base) cloneBase() base {
	b.parent = nil
	return b
}

// searchNodes scans members in order and returns the first internal-id
// match. Callers must not pass nil members.
func searchNodes(id uint64, members ...Node) Node {
	for _, m := range members {
		if found := m.Search(id); found != nil {
			return found
		}
	}
	return nil
}

// Ancestors returns the chain of containing objects from the immediate
// parent up to the root.
func Ancestors(n Node) []Node {
	var chain []Node
	for p := n.Parent(); p != nil; p = p.Parent() {
		chain = append(chain, p)
	}
	return chain
}

// ContainingMarkup returns the nearest Markup above (or at) n, or nil.
func ContainingMarkup(n Node) *Markup {
	for cur := n; cur != nil; cur = cur.Parent() {
		if m, ok := cur.(*Markup); ok {
			return m
		}
	}
	return nil
}

// ContainingTopic returns the topic n belongs to: the nearest Topic
// ancestor, or the topic of the nearest Markup. Returns nil when n is not
// associated with any topic.
func ContainingTopic(n Node) *Topic {
	for cur := n; cur != nil; cur = cur.Parent() {
		switch t := cur.(type) {
		case *Topic:
			return t
		case *Markup:
			return t.Topic()
		}
	}
	return nil
}
