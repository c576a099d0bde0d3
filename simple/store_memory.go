// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package simple

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"slices"

	"github.com/sixafter/toposort"
)

// memoryStore is an in-memory implementation of the toposort.Store
// interface, keeping adjacency as per-vertex slices so that parallel edges
// between the same pair of vertices are representable.
//
// Type Parameters:
//   - N: The type of payloads stored in vertices.
//   - E: The type of payloads stored on edges.
type memoryStore[N, E any] struct {
	// id is the store identity embedded in every handle it issues.
	id uuid.UUID

	// payloads holds vertex payloads; the slice index is the handle index.
	payloads []N

	// out and in hold the outgoing and incoming neighbors per vertex,
	// indexed like payloads. A neighbor appears once per parallel edge.
	out [][]toposort.Handle
	in  [][]toposort.Handle

	// edges holds every edge in insertion order.
	edges []toposort.Edge[E]

	// lock guards direct store access. The ordering engine on top requires
	// external synchronization regardless.
	lock sync.RWMutex
}

func newMemoryStore[N, E any]() *memoryStore[N, E] {
	return &memoryStore[N, E]{
		id: uuid.New(),
	}
}

// AddVertex allocates a vertex holding the given payload and returns its
// handle.
func (ms *memoryStore[N, E]) AddVertex(payload N) toposort.Handle {
	ms.lock.Lock()
	defer ms.lock.Unlock()

	ms.payloads = append(ms.payloads, payload)
	ms.out = append(ms.out, nil)
	ms.in = append(ms.in, nil)

	return toposort.NewHandle(ms.id, len(ms.payloads)-1)
}

// AddEdge appends a directed edge from u to v. Parallel edges are permitted.
// If either endpoint was not issued by this store, ErrUnknownHandle is
// returned.
func (ms *memoryStore[N, E]) AddEdge(u, v toposort.Handle, payload E) error {
	ms.lock.Lock()
	defer ms.lock.Unlock()

	if !ms.has(u) {
		return fmt.Errorf("%w: %v", toposort.ErrUnknownHandle, u)
	}
	if !ms.has(v) {
		return fmt.Errorf("%w: %v", toposort.ErrUnknownHandle, v)
	}

	ms.out[u.Index()] = append(ms.out[u.Index()], v)
	ms.in[v.Index()] = append(ms.in[v.Index()], u)
	ms.edges = append(ms.edges, toposort.Edge[E]{
		Source:  u,
		Target:  v,
		Payload: payload,
	})

	return nil
}

// NeighborsOut returns the outgoing neighbors of n at the time of the call.
func (ms *memoryStore[N, E]) NeighborsOut(n toposort.Handle) ([]toposort.Handle, error) {
	ms.lock.RLock()
	defer ms.lock.RUnlock()

	if !ms.has(n) {
		return nil, fmt.Errorf("%w: %v", toposort.ErrUnknownHandle, n)
	}

	return slices.Clone(ms.out[n.Index()]), nil
}

// NeighborsIn returns the incoming neighbors of n at the time of the call.
func (ms *memoryStore[N, E]) NeighborsIn(n toposort.Handle) ([]toposort.Handle, error) {
	ms.lock.RLock()
	defer ms.lock.RUnlock()

	if !ms.has(n) {
		return nil, fmt.Errorf("%w: %v", toposort.ErrUnknownHandle, n)
	}

	return slices.Clone(ms.in[n.Index()]), nil
}

// Payload returns the payload stored for n.
func (ms *memoryStore[N, E]) Payload(n toposort.Handle) (N, error) {
	ms.lock.RLock()
	defer ms.lock.RUnlock()

	if !ms.has(n) {
		var zero N
		return zero, fmt.Errorf("%w: %v", toposort.ErrUnknownHandle, n)
	}

	return ms.payloads[n.Index()], nil
}

// Edges returns a copy of all edges currently held by the store, in
// insertion order.
func (ms *memoryStore[N, E]) Edges() []toposort.Edge[E] {
	ms.lock.RLock()
	defer ms.lock.RUnlock()

	return slices.Clone(ms.edges)
}

// Has reports whether n was issued by this store.
func (ms *memoryStore[N, E]) Has(n toposort.Handle) bool {
	ms.lock.RLock()
	defer ms.lock.RUnlock()

	return ms.has(n)
}

func (ms *memoryStore[N, E]) has(n toposort.Handle) bool {
	return n.Origin() == ms.id && n.Index() >= 0 && n.Index() < len(ms.payloads)
}
