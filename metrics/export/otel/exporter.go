package otel

import (
	"context"
	"errors"
	"fmt"

	"github.com/MrEthical07/banditry/metrics/export/internaldefs"
	"github.com/MrEthical07/banditry/store"
	"go.opentelemetry.io/otel/metric"
)

var (
	ErrNilMeter  = errors.New("nil meter")
	ErrNilSource = errors.New("nil metrics source")
)

// Source is satisfied by *store.Store.
type Source interface {
	MetricsSnapshot() store.MetricsSnapshot
}

type counterInstrument struct {
	id         store.MetricID
	instrument metric.Int64ObservableCounter
}

type histogramInstruments struct {
	id      store.MetricID
	buckets []metric.Int64ObservableGauge
	count   metric.Int64ObservableGauge
}

// Exporter keeps the callback registration alive until [Exporter.Close].
type Exporter struct {
	registration metric.Registration
}

// NewExporter registers store instruments on meter.
func NewExporter(meter metric.Meter, source Source) (*Exporter, error) {
	if meter == nil {
		return nil, ErrNilMeter
	}
	if source == nil {
		return nil, ErrNilSource
	}

	var observables []metric.Observable

	counters := make([]counterInstrument, 0, len(internaldefs.CounterDefs))
	for _, def := range internaldefs.CounterDefs {
		ins, err := meter.Int64ObservableCounter(def.Name, metric.WithDescription(def.Help))
		if err != nil {
			return nil, fmt.Errorf("create observable counter %s: %w", def.Name, err)
		}
		counters = append(counters, counterInstrument{id: def.ID, instrument: ins})
		observables = append(observables, ins)
	}

	histograms := make([]histogramInstruments, 0, len(internaldefs.HistogramDefs))
	for _, def := range internaldefs.HistogramDefs {
		h, err := newHistogramInstruments(meter, def)
		if err != nil {
			return nil, err
		}
		histograms = append(histograms, h)
		for _, g := range h.buckets {
			observables = append(observables, g)
		}
		observables = append(observables, h.count)
	}

	collect := func(_ context.Context, o metric.Observer) error {
		snap := source.MetricsSnapshot()
		for _, c := range counters {
			o.ObserveInt64(c.instrument, int64(snap.Counters[c.id]))
		}
		for _, h := range histograms {
			cumulative := internaldefs.CumulativeBuckets(internaldefs.NormalizeBuckets(snap.Histograms[h.id]))
			for i, g := range h.buckets {
				o.ObserveInt64(g, int64(cumulative[i]))
			}
			o.ObserveInt64(h.count, int64(cumulative[len(cumulative)-1]))
		}
		return nil
	}

	registration, err := meter.RegisterCallback(collect, observables...)
	if err != nil {
		return nil, fmt.Errorf("register callback: %w", err)
	}
	return &Exporter{registration: registration}, nil
}

// One gauge per bucket bound plus a count gauge.
func newHistogramInstruments(meter metric.Meter, def internaldefs.HistogramDef) (histogramInstruments, error) {
	h := histogramInstruments{id: def.ID}
	for _, suffix := range internaldefs.HistogramBoundSuffix {
		name := def.Name + "_bucket_le_" + suffix
		g, err := meter.Int64ObservableGauge(name, metric.WithDescription("Cumulative histogram bucket count."))
		if err != nil {
			return h, fmt.Errorf("create histogram bucket gauge %s: %w", name, err)
		}
		h.buckets = append(h.buckets, g)
	}

	count, err := meter.Int64ObservableGauge(def.Name+"_count", metric.WithDescription("Histogram total sample count."))
	if err != nil {
		return h, fmt.Errorf("create histogram count gauge %s_count: %w", def.Name, err)
	}
	h.count = count
	return h, nil
}

// Close unregisters the collection callback.
func (e *Exporter) Close() error {
	if e == nil || e.registration == nil {
		return nil
	}
	return e.registration.Unregister()
}
