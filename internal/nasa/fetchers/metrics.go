package fetchers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	fetchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "astrodash_sector_fetches_total",
		Help: "The total number of upstream fetch attempts per sector",
	}, []string{"sector"})

	fetchFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "astrodash_sector_fetch_failures_total",
		Help: "The total number of failed upstream fetches per sector",
	}, []string{"sector"})
)
