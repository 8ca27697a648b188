package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the person registry module.
type Metrics struct {
	PersonsCreated    prometheus.Counter
	TributeIncrements prometheus.Counter
	SearchDuration    prometheus.Histogram
	MatchesFound      prometheus.Histogram
}

// New registers and returns the person module metrics. Call once per
// process; tests run services without metrics.
func New() *Metrics {
	return &Metrics{
		PersonsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pomen_persons_created_total",
			Help: "Total number of deceased person records created",
		}),
		TributeIncrements: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pomen_tribute_increments_total",
			Help: "Total number of tribute counter increments applied",
		}),
		SearchDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "pomen_match_search_duration_seconds",
			Help:    "Duration of identity match searches over the registry",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		MatchesFound: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "pomen_matches_found",
			Help:    "Number of candidates returned per match search",
			Buckets: []float64{0, 1, 2, 3, 5, 10, 20},
		}),
	}
}

// ObserveSearch records one match search with its duration and result size.
func (m *Metrics) ObserveSearch(start time.Time, matches int) {
	m.SearchDuration.Observe(time.Since(start).Seconds())
	m.MatchesFound.Observe(float64(matches))
}
