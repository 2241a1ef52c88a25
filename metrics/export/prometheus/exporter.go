package prometheus

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/MrEthical07/banditry/metrics/export/internaldefs"
	"github.com/MrEthical07/banditry/store"
)

const contentType = "text/plain; version=0.0.4; charset=utf-8"

// Source is satisfied by *store.Store.
type Source interface {
	MetricsSnapshot() store.MetricsSnapshot
}

// Exporter renders store metrics in Prometheus text exposition format.
type Exporter struct {
	source Source
}

// NewExporter returns an Exporter reading from source.
func NewExporter(source Source) *Exporter {
	return &Exporter{source: source}
}

// Handler serves [Exporter.Render].
func (e *Exporter) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write([]byte(e.Render()))
	})
}

// Render returns the current metrics, or "" when metrics are disabled.
func (e *Exporter) Render() string {
	if e == nil || e.source == nil {
		return ""
	}

	snap := e.source.MetricsSnapshot()
	if len(snap.Counters) == 0 && len(snap.Histograms) == 0 {
		return ""
	}

	w := textWriter{}
	for _, def := range internaldefs.CounterDefs {
		w.family(def.Name, def.Help, "counter")
		w.sample(def.Name, "", snap.Counters[def.ID])
	}
	for _, def := range internaldefs.HistogramDefs {
		raw, ok := snap.Histograms[def.ID]
		if !ok {
			continue
		}
		buckets := internaldefs.CumulativeBuckets(internaldefs.NormalizeBuckets(raw))

		w.family(def.Name, def.Help, "histogram")
		for i, le := range internaldefs.HistogramBounds {
			w.sample(def.Name+"_bucket", `le="`+le+`"`, buckets[i])
		}
		w.sample(def.Name+"_count", "", buckets[len(buckets)-1])
		// Snapshots carry no sum.
		w.sample(def.Name+"_sum", "", 0)
	}

	return w.String()
}

type textWriter struct {
	strings.Builder
}

func (w *textWriter) family(name, help, typ string) {
	w.WriteString("# HELP " + name + " " + escapeHelp(help) + "\n")
	w.WriteString("# TYPE " + name + " " + typ + "\n")
}

func (w *textWriter) sample(name, labels string, value uint64) {
	w.WriteString(name)
	if labels != "" {
		w.WriteString("{" + labels + "}")
	}
	w.WriteByte(' ')
	w.WriteString(strconv.FormatUint(value, 10))
	w.WriteByte('\n')
}

var helpEscaper = strings.NewReplacer(`\`, `\\`, "\n", `\n`)

func escapeHelp(help string) string {
	return helpEscaper.Replace(help)
}
