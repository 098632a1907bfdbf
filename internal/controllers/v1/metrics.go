package v1

import "github.com/prometheus/client_golang/prometheus"

// Collectors are the Prometheus metrics of the v1 API.
var Collectors = []prometheus.Collector{
	paymentsRecorded,
}

var paymentsRecorded = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "payments_recorded_total",
		Help: "How many payments were recorded or removed, partitioned by action.",
	},
	[]string{"action"},
)
