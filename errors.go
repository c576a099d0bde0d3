// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package toposort

import (
	"errors"
)

var (
	// ErrCycleDetected is returned when an attempted edge would create a
	// directed cycle, including the self-edge case. A rejected insertion
	// leaves the order and the store unchanged, save for ranks assigned to
	// endpoints that had never been named before.
	ErrCycleDetected = errors.New("edge would create a cycle")

	// ErrUnknownHandle is returned when a handle was not issued by the store
	// the engine operates on.
	ErrUnknownHandle = errors.New("handle not issued by this store")

	// ErrNotRanked is returned when querying the rank of a vertex that has
	// never appeared as an endpoint of an attempted edge.
	ErrNotRanked = errors.New("vertex has no rank")

	// ErrNilStore is returned by New when no store is supplied.
	ErrNilStore = errors.New("store cannot be nil")

	// ErrFailedToCreateInstruments is returned by New when the configured
	// meter provider cannot create the engine's metric instruments.
	ErrFailedToCreateInstruments = errors.New("failed to create metric instruments")
)
