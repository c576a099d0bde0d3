// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package toposort

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// config holds construction-time settings for an Ordering. Settings are
// applied through functional options passed to New.
type config struct {
	provider metric.MeterProvider
}

func (c *config) meterProvider() metric.MeterProvider {
	if c.provider == nil {
		return otel.GetMeterProvider()
	}

	return c.provider
}

// Option configures an Ordering during construction.
type Option func(*config)

// WithMeterProvider sets the OpenTelemetry meter provider used to create the
// engine's metric instruments.
//
// When unset, the global provider is used, which records nothing unless an
// SDK has been installed.
//
// Example:
//
//	reader := sdkmetric.NewManualReader()
//	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
//	ord, err := toposort.New(store, toposort.WithMeterProvider(provider))
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(c *config) {
		c.provider = provider
	}
}
