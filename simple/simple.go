// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package simple provides the default in-memory store for the ordering
// engine.
package simple

import (
	"github.com/sixafter/toposort"
)

// New creates an empty in-memory store holding vertex payloads of type N and
// edge payloads of type E.
//
// Each store carries a fresh identity; handles issued by the store embed
// that identity and are not interchangeable with handles from any other
// store.
//
// Example:
//
//	store := simple.New[string, any]()
//	ord, err := toposort.New(store)
func New[N, E any]() toposort.Store[N, E] {
	return newMemoryStore[N, E]()
}
