package publish

import "github.com/prometheus/client_golang/prometheus"

var (
	published = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "currentsim_signals_published_total",
		Help: "Total number of current signals published",
	})
	publishErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "currentsim_publish_errors_total",
		Help: "Total number of failed signal publishes",
	})
	lastSpeed = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "currentsim_current_speed_mps",
		Help: "Horizontal magnitude of the last published current velocity",
	})
)

func init() {
	prometheus.MustRegister(published, publishErrors, lastSpeed)
}
