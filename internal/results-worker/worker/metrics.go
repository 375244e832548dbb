package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var processed = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "results_worker",
	Name:      "messages_processed_total",
	Help:      "Mensagens de match_results por desfecho",
}, []string{"status"}) // recorded | duplicate | dlq | failed
