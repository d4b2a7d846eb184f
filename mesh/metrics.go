package mesh

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const reasonLabel = "reason"

var (
	meshInsertions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mesh_insertions",
		Help: "The number of points inserted into a Delaunay mesh.",
	})

	meshInsertionRejects = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mesh_insertion_rejects",
		Help: "The insertions rejected at the mesh boundary.",
	}, []string{
		reasonLabel,
	})

	meshTrianglesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mesh_triangles_created",
		Help: "The number of triangles created by cavity retriangulation.",
	})

	meshTrianglesRemoved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mesh_triangles_removed",
		Help: "The number of triangles removed as part of an insertion cavity.",
	})

	meshCavitySize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "mesh_cavity_size",
		Help:    "The number of triangles invalidated by a single insertion.",
		Buckets: prometheus.ExponentialBuckets(1, 2, 8),
	})
)

func instrumentInsertion(removed, created int) {
	meshInsertions.Inc()
	meshTrianglesRemoved.Add(float64(removed))
	meshTrianglesCreated.Add(float64(created))
	meshCavitySize.Observe(float64(removed))
}

func instrumentInsertionReject(reason string) {
	meshInsertionRejects.With(prometheus.Labels{
		reasonLabel: reason,
	}).Inc()
}
