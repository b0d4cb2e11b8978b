package obs

import "github.com/prometheus/client_golang/prometheus"

var (
	GenerationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ga_generations_total",
		Help: "Generations evolved across all runs.",
	})
	BestDistanceKm = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "ga_best_distance_km",
		Help: "Best tour distance of a run in kilometers.",
	}, []string{"run_id"})
	ActiveRuns = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "ga_active_runs",
		Help: "Runs currently ticking.",
	})
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})
	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
)

func init() {
	prometheus.MustRegister(GenerationsTotal, BestDistanceKm, ActiveRuns, HTTPRequestsTotal, HTTPRequestDuration)
}
