// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package toposort

import (
	"errors"
	"fmt"

	"slices"

	"github.com/sixafter/toposort/internal/queue"
)

// Ordering maintains a dense integer rank for every vertex that has appeared
// as an endpoint of an attempted edge, such that rank(u) < rank(v) for every
// edge u -> v accepted so far.
//
// Type Parameters:
//   - N: The type of payloads stored in vertices.
//   - E: The type of payloads stored on edges.
//
// An Ordering is not safe for concurrent use. AddEdge requires exclusive
// access to both the rank table and the store; readers such as Order and
// Rank must not overlap with a mutating call. Callers layering a lock on top
// observe the same total-order semantics.
type Ordering[N, E any] struct {
	store Store[N, E]

	// items is the rank table: the index of a handle is its rank. Ranks are
	// dense and each tracked handle appears exactly once.
	items []Handle

	// ranks mirrors items for O(1) rank lookups.
	ranks map[Handle]int

	inst *instruments
}

// insertState carries the scratch state of a single AddEdge call whose
// affected region is non-empty. It is scoped to the call and released on
// return.
type insertState struct {
	// lb and ub bound the affected region: the rank interval [lb, ub] of the
	// pending edge's target and source at entry.
	lb, ub int

	// visited is shared between the forward and the backward search. In an
	// acyclic graph the two sets are disjoint once the forward pass has
	// ruled out a cycle.
	visited map[Handle]struct{}

	// deltaF holds the vertices reachable from the pending edge's target
	// within the affected region.
	deltaF []Handle

	// deltaB holds the vertices reaching the pending edge's source from
	// within the affected region.
	deltaB []Handle
}

// New creates an ordering engine over the given store. The store must not be
// shared with another engine.
//
// Functional options configure ambient behavior, such as the OpenTelemetry
// meter provider used for the engine's metric instruments:
//
//	ord, err := toposort.New(store, toposort.WithMeterProvider(provider))
func New[N, E any](store Store[N, E], options ...Option) (*Ordering[N, E], error) {
	if store == nil {
		return nil, ErrNilStore
	}

	var cfg config
	for _, option := range options {
		option(&cfg)
	}

	inst, err := newInstruments(cfg.meterProvider())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateInstruments, err)
	}

	return &Ordering[N, E]{
		store: store,
		ranks: make(map[Handle]int),
		inst:  inst,
	}, nil
}

// AddVertex allocates a vertex in the underlying store and returns its
// handle. The vertex acquires a rank the first time it is named by AddEdge.
func (o *Ordering[N, E]) AddVertex(payload N) Handle {
	return o.store.AddVertex(payload)
}

// AddEdge inserts the directed edge u -> v, permuting the order as needed to
// keep it consistent with every edge present.
//
// Returns ErrCycleDetected if the edge would close a directed cycle; the
// rank table and the store are left unchanged by a rejected insertion,
// except that endpoints named for the first time keep their newly assigned
// tail ranks. Returns ErrUnknownHandle if either handle was not issued by
// the engine's store.
//
// The cost of a call is proportional to the vertices and edges of the
// affected region, plus the sort of the displaced vertices.
func (o *Ordering[N, E]) AddEdge(u, v Handle, payload E) error {
	if !o.store.Has(u) {
		return fmt.Errorf("%w: %v", ErrUnknownHandle, u)
	}
	if !o.store.Has(v) {
		return fmt.Errorf("%w: %v", ErrUnknownHandle, v)
	}

	ub := o.ensureRank(u)
	lb := o.ensureRank(v)

	// Ranks are unique, so equal bounds mean u == v.
	if ub == lb {
		o.inst.recordRejected(reasonSelfLoop)
		return fmt.Errorf("%w: self-edge on %v", ErrCycleDetected, u)
	}

	if lb < ub {
		state := &insertState{
			lb:      lb,
			ub:      ub,
			visited: make(map[Handle]struct{}),
		}

		if err := o.searchForward(state, v); err != nil {
			if errors.Is(err, ErrCycleDetected) {
				o.inst.recordRejected(reasonCycle)
			}
			return err
		}
		if err := o.searchBackward(state, u); err != nil {
			return err
		}

		o.reorder(state)
		o.inst.recordReorder(ub-lb+1, len(state.deltaF)+len(state.deltaB))
	}

	if err := o.store.AddEdge(u, v, payload); err != nil {
		return err
	}
	o.inst.recordAccepted()

	return nil
}

// Order returns the tracked vertices in rank order, rank 0 first. The result
// is a copy; mutating it does not affect the engine.
func (o *Ordering[N, E]) Order() []Handle {
	return slices.Clone(o.items)
}

// Rank returns the current rank of h. Returns ErrNotRanked if h has never
// appeared as an endpoint of an attempted edge.
func (o *Ordering[N, E]) Rank(h Handle) (int, error) {
	rank, ok := o.ranks[h]
	if !ok {
		return 0, fmt.Errorf("%w: %v", ErrNotRanked, h)
	}

	return rank, nil
}

// Len returns the number of ranked vertices.
func (o *Ordering[N, E]) Len() int {
	return len(o.items)
}

// Payload returns the payload of the vertex identified by h.
func (o *Ordering[N, E]) Payload(h Handle) (N, error) {
	return o.store.Payload(h)
}

// Edges returns all edges accepted so far.
func (o *Ordering[N, E]) Edges() []Edge[E] {
	return o.store.Edges()
}

// ensureRank returns the rank of h, appending h at the tail of the order if
// it has none yet. Ranks assigned here are retained even when the enclosing
// insertion is rejected; a ranked but edgeless vertex violates no invariant.
func (o *Ordering[N, E]) ensureRank(h Handle) int {
	if rank, ok := o.ranks[h]; ok {
		return rank
	}

	rank := len(o.items)
	o.items = append(o.items, h)
	o.ranks[h] = rank
	o.inst.recordRanked()

	return rank
}

// searchForward collects into deltaF every vertex reachable from start whose
// rank lies below the region's upper bound. Encountering a successor ranked
// exactly at the upper bound means the pending edge would close a cycle back
// to its source, and the search aborts with ErrCycleDetected.
//
// The search is non-recursive and maintains an explicit work stack to bound
// call-stack depth on deep graphs.
func (o *Ordering[N, E]) searchForward(state *insertState, start Handle) error {
	stack := queue.NewStack[Handle]()
	stack.Push(start)

	for !stack.IsEmpty() {
		n, _ := stack.Pop()

		if _, seen := state.visited[n]; seen {
			continue
		}
		state.visited[n] = struct{}{}
		state.deltaF = append(state.deltaF, n)

		out, err := o.store.NeighborsOut(n)
		if err != nil {
			return err
		}

		for _, w := range out {
			rank, err := o.Rank(w)
			if err != nil {
				return err
			}
			if rank == state.ub {
				return fmt.Errorf("%w: %v is reachable from %v", ErrCycleDetected, w, start)
			}
			if _, seen := state.visited[w]; !seen && rank < state.ub {
				stack.Push(w)
			}
		}
	}

	return nil
}

// searchBackward collects into deltaB every vertex that reaches start over
// incoming edges without descending to or below the region's lower bound.
// The forward pass alone decides acyclicity; this pass only gathers the
// displaced predecessors.
func (o *Ordering[N, E]) searchBackward(state *insertState, start Handle) error {
	stack := queue.NewStack[Handle]()
	stack.Push(start)

	for !stack.IsEmpty() {
		n, _ := stack.Pop()

		if _, seen := state.visited[n]; seen {
			continue
		}
		state.visited[n] = struct{}{}
		state.deltaB = append(state.deltaB, n)

		in, err := o.store.NeighborsIn(n)
		if err != nil {
			return err
		}

		for _, w := range in {
			rank, err := o.Rank(w)
			if err != nil {
				return err
			}
			if _, seen := state.visited[w]; !seen && rank > state.lb {
				stack.Push(w)
			}
		}
	}

	return nil
}

// reorder permutes the affected region so that every vertex reaching the
// edge's source precedes every vertex reachable from its target. Vertices
// move only into ranks already occupied by the union of the two sets, so
// ranks stay dense and vertices outside the region keep their positions.
func (o *Ordering[N, E]) reorder(state *insertState) {
	byRank := func(a, b Handle) int {
		return o.ranks[a] - o.ranks[b]
	}
	slices.SortFunc(state.deltaB, byRank)
	slices.SortFunc(state.deltaF, byRank)

	relocated := make([]Handle, 0, len(state.deltaB)+len(state.deltaF))
	relocated = append(relocated, state.deltaB...)
	relocated = append(relocated, state.deltaF...)

	ranksB := make([]int, len(state.deltaB))
	for i, h := range state.deltaB {
		ranksB[i] = o.ranks[h]
	}
	ranksF := make([]int, len(state.deltaF))
	for i, h := range state.deltaF {
		ranksF[i] = o.ranks[h]
	}

	pool := mergeAscending(ranksB, ranksF)

	for i, h := range relocated {
		o.items[pool[i]] = h
		o.ranks[h] = pool[i]
	}
}

// mergeAscending merges two already-sorted rank lists into one ascending
// sequence. The lists are disjoint, so there is no tie to break.
func mergeAscending(a, b []int) []int {
	merged := make([]int, 0, len(a)+len(b))

	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if a[i] < b[j] {
			merged = append(merged, a[i])
			i++
		} else {
			merged = append(merged, b[j])
			j++
		}
	}
	merged = append(merged, a[i:]...)
	merged = append(merged, b[j:]...)

	return merged
}
