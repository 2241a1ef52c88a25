// Package prometheus renders [store.Store] counters in Prometheus text
// exposition format.
//
// Counter names are prefixed banditry_store_ and suffixed _total; the single
// histogram is banditry_store_enable_latency_seconds.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry. Callers mount the Handler.
//   - Mutate store state.
package prometheus
