// Package otel publishes [store.Store] counters through an OpenTelemetry
// Meter.
//
// [NewExporter] registers one Int64ObservableCounter per store counter and
// one Int64ObservableGauge per histogram bucket. A single callback reads
// [store.Store.MetricsSnapshot] on each collection cycle.
//
// # What this package must NOT do
//
//   - Own the MeterProvider. Callers supply the Meter.
//   - Mutate store state.
package otel
