package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelrank_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reelrank_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	// TMDBRequests counts outbound TMDB calls; outcome is "ok" or "error"
	TMDBRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelrank_tmdb_requests_total",
			Help: "Total number of requests made to the TMDB API",
		},
		[]string{"endpoint", "outcome"},
	)

	MoviesListed = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "reelrank_movies",
			Help: "Number of movies on the list at the last list read",
		},
	)
)
