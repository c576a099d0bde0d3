// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package toposort maintains a total order over the vertices of a directed
// acyclic graph that grows by incremental edge insertion.
//
// An [Ordering] assigns every tracked vertex a dense integer rank such that
// for every edge u -> v, the rank of u is strictly less than the rank of v.
// Edges that would close a directed cycle are rejected with
// [ErrCycleDetected] and leave the order and the underlying store unchanged,
// except that endpoints named for the first time keep the tail ranks they
// were given.
// When an accepted edge points backwards in the current order, only the
// vertices inside the affected rank interval are permuted, following the
// online algorithm of Pearce and Kelly.
//
// Graph storage is a thin collaborator behind the [Store] interface. The
// simple package provides the default in-memory implementation:
//
//	store := simple.New[string, any]()
//	ord, err := toposort.New(store)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	a := ord.AddVertex("a")
//	b := ord.AddVertex("b")
//
//	if err := ord.AddEdge(a, b, nil); err != nil {
//		log.Fatal(err)
//	}
package toposort

import (
	"fmt"

	"github.com/google/uuid"
)

// Handle is an opaque, stable identifier for a vertex. Handles are issued by
// a [Store] at vertex creation and are never reissued or reordered. A Handle
// is comparable and can be used as a map key.
//
// A Handle carries the identity of the store that minted it, so handles from
// different stores are never equal and operations receiving a foreign handle
// fail with [ErrUnknownHandle] instead of silently addressing the wrong
// vertex.
type Handle struct {
	origin uuid.UUID
	index  int
}

// NewHandle mints the handle for the vertex at the given index in the store
// identified by origin. It is intended for [Store] implementations; callers
// should treat handles as opaque values obtained from AddVertex.
func NewHandle(origin uuid.UUID, index int) Handle {
	return Handle{
		origin: origin,
		index:  index,
	}
}

// Origin returns the identity of the store that issued the handle.
func (h Handle) Origin() uuid.UUID {
	return h.origin
}

// Index returns the position of the vertex in its store's vertex sequence.
func (h Handle) Index() int {
	return h.index
}

func (h Handle) String() string {
	return fmt.Sprintf("v%d@%.8s", h.index, h.origin.String())
}

// Edge joins two vertices. Source and Target are handles issued by the store
// holding the edge. Payload is opaque to this package; it is neither
// inspected nor compared.
type Edge[E any] struct {
	Source  Handle
	Target  Handle
	Payload E
}

// Store is the graph storage consumed by an [Ordering]. It holds vertices
// with payloads of type N and directed edges with payloads of type E, and
// answers adjacency queries in both directions.
//
// The ordering engine owns its store exclusively; sharing one store between
// engines is not supported.
type Store[N, E any] interface {
	// AddVertex allocates a vertex holding the given payload and returns its
	// handle.
	AddVertex(payload N) Handle

	// AddEdge appends a directed edge from u to v. Parallel edges between
	// the same pair of vertices are permitted. Returns ErrUnknownHandle if
	// either endpoint was not issued by this store.
	AddEdge(u, v Handle, payload E) error

	// NeighborsOut returns the outgoing neighbors of n at the time of the
	// call. No iteration order is guaranteed.
	NeighborsOut(n Handle) ([]Handle, error)

	// NeighborsIn returns the incoming neighbors of n at the time of the
	// call. No iteration order is guaranteed.
	NeighborsIn(n Handle) ([]Handle, error)

	// Payload returns the payload stored for n, or ErrUnknownHandle if n was
	// not issued by this store.
	Payload(n Handle) (N, error)

	// Edges returns all edges currently held by the store.
	Edges() []Edge[E]

	// Has reports whether n was issued by this store.
	Has(n Handle) bool
}
