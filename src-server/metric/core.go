package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	dispatchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cogbot_dispatch_total",
			Help: "Dispatched interactions by kind and outcome",
		},
		[]string{"kind", "outcome"}, // "done", "recovered", "dropped"
	)

	dispatchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cogbot_dispatch_duration_seconds",
			Help:    "Time spent inside interaction handlers",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)

	unitsLoaded = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cogbot_units_loaded",
			Help: "Entries in each interaction registry",
		},
		[]string{"kind"},
	)

	reloadTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cogbot_reload_total",
			Help: "Reload attempts by kind and result",
		},
		[]string{"kind", "result"},
	)

	commandSyncTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cogbot_command_sync_total",
			Help: "Command catalog publish attempts by scope and result",
		},
		[]string{"scope", "result"},
	)
)

func result(ok bool) string {
	if ok {
		return "ok"
	}
	return "failed"
}

// RecordDispatch counts one dispatch and, when a handler ran, its duration.
func RecordDispatch(kind, outcome string, took time.Duration) {
	dispatchTotal.WithLabelValues(kind, outcome).Inc()
	if took > 0 {
		dispatchDuration.WithLabelValues(kind).Observe(took.Seconds())
	}
}

func SetUnitsLoaded(kind string, n int) {
	unitsLoaded.WithLabelValues(kind).Set(float64(n))
}

func RecordReload(kind string, ok bool) {
	reloadTotal.WithLabelValues(kind, result(ok)).Inc()
}

func RecordCommandSync(scope string, ok bool) {
	commandSyncTotal.WithLabelValues(scope, result(ok)).Inc()
}
