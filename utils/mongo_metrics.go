package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var DBOperationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "db_operation_duration_seconds",
		Help:    "Duration of database operations",
		Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
	},
	[]string{"operation", "collection"},
)

// TrackDBOperation starts a timer; call ObserveDuration when the driver call
// returns.
func TrackDBOperation(operation, collection string) *prometheus.Timer {
	return prometheus.NewTimer(DBOperationDuration.WithLabelValues(operation, collection))
}
