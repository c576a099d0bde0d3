// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package toposort

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// scopeName identifies the instrumentation scope of the engine's meters.
const scopeName = "github.com/sixafter/toposort"

// Metric names.
const (
	metricEdgesAccepted  = "toposort.edges.accepted"
	metricEdgesRejected  = "toposort.edges.rejected"
	metricVerticesRanked = "toposort.vertices.ranked"
	metricReorderRegion  = "toposort.reorder.region"
	metricReorderMoved   = "toposort.reorder.moved"
)

// Rejection reasons recorded as the "reason" attribute on the rejected
// counter.
const (
	reasonCycle    = "cycle"
	reasonSelfLoop = "self-loop"
)

// instruments holds the engine's metric instruments. Recording never affects
// engine semantics; with the default no-op provider every call is free.
type instruments struct {
	accepted metric.Int64Counter
	rejected metric.Int64Counter
	ranked   metric.Int64Counter
	region   metric.Int64Histogram
	moved    metric.Int64Histogram
}

// newInstruments creates the engine's instruments from the given provider.
func newInstruments(provider metric.MeterProvider) (*instruments, error) {
	meter := provider.Meter(scopeName)

	var (
		inst instruments
		err  error
	)

	inst.accepted, err = meter.Int64Counter(
		metricEdgesAccepted,
		metric.WithDescription("Total number of edges accepted into the order"),
	)
	if err != nil {
		return nil, err
	}

	inst.rejected, err = meter.Int64Counter(
		metricEdgesRejected,
		metric.WithDescription("Total number of edge insertions rejected as cycles"),
	)
	if err != nil {
		return nil, err
	}

	inst.ranked, err = meter.Int64Counter(
		metricVerticesRanked,
		metric.WithDescription("Total number of vertices that acquired a rank"),
	)
	if err != nil {
		return nil, err
	}

	inst.region, err = meter.Int64Histogram(
		metricReorderRegion,
		metric.WithDescription("Width of the affected rank interval per reorder"),
	)
	if err != nil {
		return nil, err
	}

	inst.moved, err = meter.Int64Histogram(
		metricReorderMoved,
		metric.WithDescription("Number of vertices displaced per reorder"),
	)
	if err != nil {
		return nil, err
	}

	return &inst, nil
}

func (i *instruments) recordAccepted() {
	i.accepted.Add(context.Background(), 1)
}

func (i *instruments) recordRejected(reason string) {
	i.rejected.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("reason", reason)))
}

func (i *instruments) recordRanked() {
	i.ranked.Add(context.Background(), 1)
}

func (i *instruments) recordReorder(region, moved int) {
	i.region.Record(context.Background(), int64(region))
	i.moved.Record(context.Background(), int64(moved))
}
