package internaldefs

import (
	"github.com/MrEthical07/banditry/store"
)

// CounterDef names one store counter.
type CounterDef struct {
	ID   store.MetricID
	Name string
	Help string
}

// HistogramDef names one store histogram.
type HistogramDef struct {
	ID   store.MetricID
	Name string
	Help string
}

// CounterDefs lists every exported counter in render order.
var CounterDefs = []CounterDef{
	{ID: store.MetricSave, Name: "banditry_store_save_total", Help: "Masks written by Save."},
	{ID: store.MetricLoad, Name: "banditry_store_load_total", Help: "Masks read by Load."},
	{ID: store.MetricLoadMiss, Name: "banditry_store_load_miss_total", Help: "Load calls that found no record."},
	{ID: store.MetricCorrupt, Name: "banditry_store_corrupt_total", Help: "Records that failed to decode."},
	{ID: store.MetricEnable, Name: "banditry_store_enable_total", Help: "Successful Enable transactions."},
	{ID: store.MetricEnableRetry, Name: "banditry_store_enable_retry_total", Help: "Enable transactions retried after a concurrent write."},
	{ID: store.MetricEnableConflict, Name: "banditry_store_enable_conflict_total", Help: "Enable calls that exhausted their retries."},
	{ID: store.MetricDelete, Name: "banditry_store_delete_total", Help: "Delete calls."},
	{ID: store.MetricRedisError, Name: "banditry_store_redis_error_total", Help: "Operations failed by Redis errors."},
}

// HistogramDefs lists every exported histogram.
var HistogramDefs = []HistogramDef{
	{ID: store.MetricEnableLatency, Name: "banditry_store_enable_latency_seconds", Help: "Enable latency histogram."},
}

// HistogramBounds are the upper bounds of the eight histogram buckets.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix renders HistogramBounds as metric name suffixes.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets pads or truncates raw to eight buckets.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	copy(out[:], raw)
	return out
}

// CumulativeBuckets turns per-bucket counts into running totals.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i, n := range raw {
		running += n
		out[i] = running
	}
	return out
}
