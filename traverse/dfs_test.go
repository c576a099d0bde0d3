// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package traverse

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/sixafter/toposort"
	"github.com/sixafter/toposort/simple"
)

func TestDFS(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	t.Run("visits reachable vertices once", func(t *testing.T) {
		t.Parallel()

		store := simple.New[string, any]()
		a := store.AddVertex("a")
		b := store.AddVertex("b")
		c := store.AddVertex("c")
		d := store.AddVertex("d")

		is.NoError(store.AddEdge(a, b, nil))
		is.NoError(store.AddEdge(a, c, nil))
		is.NoError(store.AddEdge(b, c, nil))

		visited := make(map[toposort.Handle]int)
		err := DFS(store, a, func(h toposort.Handle) bool {
			visited[h]++
			return false
		})
		is.NoError(err)

		is.Len(visited, 3)
		is.Equal(1, visited[a])
		is.Equal(1, visited[b])
		is.Equal(1, visited[c])
		is.NotContains(visited, d)
	})

	t.Run("stops when visit returns true", func(t *testing.T) {
		t.Parallel()

		store := simple.New[string, any]()
		a := store.AddVertex("a")
		b := store.AddVertex("b")

		is.NoError(store.AddEdge(a, b, nil))

		var count int
		err := DFS(store, a, func(toposort.Handle) bool {
			count++
			return true
		})
		is.NoError(err)
		is.Equal(1, count)
	})

	t.Run("unknown start vertex", func(t *testing.T) {
		t.Parallel()

		store := simple.New[string, any]()
		foreign := toposort.NewHandle(uuid.New(), 0)

		err := DFS(store, foreign, func(toposort.Handle) bool { return false })
		is.ErrorIs(err, toposort.ErrUnknownHandle)
	})
}
