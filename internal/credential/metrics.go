package credential

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	loginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nassnews",
			Subsystem: "credential",
			Name:      "logins_total",
			Help:      "Login attempts by credential path and result",
		},
		[]string{"path", "result"},
	)

	migrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nassnews",
			Subsystem: "credential",
			Name:      "migrations_total",
			Help:      "Legacy credential migrations by result",
		},
		[]string{"result"},
	)
)
