// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package traverse provides traversals over a toposort.Store.
package traverse

import (
	"fmt"

	"github.com/sixafter/toposort"
	"github.com/sixafter/toposort/internal/queue"
)

// DFS performs a depth-first search over the store's outgoing edges,
// starting from the given vertex. The visit function is invoked with the
// handle of the vertex currently visited. If it returns false, DFS continues
// traversing, and if it returns true, the traversal is stopped. Only
// vertices reachable from the start vertex are visited.
//
// This example prints the payloads reachable from a:
//
//	_ = traverse.DFS(store, a, func(h toposort.Handle) bool {
//		payload, _ := store.Payload(h)
//		fmt.Println(payload)
//		return false
//	})
//
// DFS is non-recursive and maintains a Stack instead.
func DFS[N, E any](store toposort.Store[N, E], start toposort.Handle, visit func(toposort.Handle) bool) error {
	if !store.Has(start) {
		return fmt.Errorf("%w: %v", toposort.ErrUnknownHandle, start)
	}

	stack := queue.NewStack[toposort.Handle]()
	visited := make(map[toposort.Handle]struct{})

	stack.Push(start)

	for !stack.IsEmpty() {
		current, _ := stack.Pop()

		if _, ok := visited[current]; ok {
			continue
		}

		// Stop traversing the graph if the visit function returns true.
		if stop := visit(current); stop {
			break
		}
		visited[current] = struct{}{}

		out, err := store.NeighborsOut(current)
		if err != nil {
			return err
		}
		for _, adjacency := range out {
			stack.Push(adjacency)
		}
	}

	return nil
}
