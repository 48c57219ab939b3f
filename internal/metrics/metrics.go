// Package metrics provides Prometheus metrics for the interception pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "turboget_bridge"
)

// Pipeline metrics track the interception flow end to end.
var (
	// TransfersObserved counts download-creation notifications by lifecycle state.
	TransfersObserved = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transfers_observed_total",
		Help:      "Download-creation notifications received, by lifecycle state.",
	}, []string{"state"})

	// MenuClicks counts context-menu activations on the bridge's entry.
	MenuClicks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "menu_clicks_total",
		Help:      "Context-menu activations relayed to the engine.",
	})

	// RelaysSent counts relay frames written to the native messaging host.
	RelaysSent = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "relays_sent_total",
		Help:      "Relay hand-offs written to the native messaging host.",
	})

	// RelaysFailed counts relay attempts that could not reach the host.
	RelaysFailed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "relays_failed_total",
		Help:      "Relay attempts that failed to connect or write.",
	})
)
