package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the application's Prometheus collectors.
type Metrics struct {
	CheckInVerdicts  *prometheus.CounterVec
	AbsencesRecorded prometheus.Counter
	SSESubscribers   prometheus.Gauge
}

// New registers the collectors on the given registry. Pass nil to use the
// default registry.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		CheckInVerdicts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hadir",
			Name:      "checkin_verdicts_total",
			Help:      "Check-in attempts by verdict and rejection reason.",
		}, []string{"verdict", "reason"}),
		AbsencesRecorded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "hadir",
			Name:      "absences_recorded_total",
			Help:      "Absence records written by the nightly sweep.",
		}),
		SSESubscribers: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "hadir",
			Name:      "sse_subscribers",
			Help:      "Currently connected live-feed subscribers.",
		}),
	}
}

// Handler exposes the default registry for scraping.
func Handler() http.Handler {
	return promhttp.Handler()
}
