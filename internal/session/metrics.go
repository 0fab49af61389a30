package session

import "github.com/prometheus/client_golang/prometheus"

var (
	generatedEntities = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mxm_generated_entities_total",
			Help: "Entities produced by the mock generators, by kind.",
		},
		[]string{"kind"},
	)

	threadCache = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mxm_thread_cache_total",
			Help: "Comment thread lookups, by result (hit, miss, error).",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(generatedEntities, threadCache)
}
