package usecase

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var submissionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "orders_submitted_total",
		Help: "Order submission attempts by terminal outcome",
	},
	[]string{"outcome"},
)
