package scape

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	scapeInsertions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scape_points_inserted",
		Help: "The number of refinement points inserted into the mesh.",
	})

	scapeCandidates = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scape_candidates_queued",
		Help: "The number of candidate points pushed onto the refinement queue.",
	})

	scapeCandidatesPending = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "scape_candidates_pending",
		Help: "The current size of the refinement queue.",
	})

	scapeLastError = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "scape_last_error",
		Help: "The interpolation error of the last inserted candidate.",
	})
)

func instrumentCandidate() {
	scapeCandidates.Inc()
}

func instrumentInsertion(err float64, pending int) {
	scapeInsertions.Inc()
	scapeLastError.Set(err)
	scapeCandidatesPending.Set(float64(pending))
}
