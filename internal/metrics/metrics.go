// Package metrics exposes the operational counters of the bridge:
//
//	mtbot_poll_cycles_total{resource}  – completed poll iterations per resource
//	mtbot_events_total{type}           – events dispatched to the handler
//	mtbot_commands_total{type}         – command files written
//	mtbot_read_retries_total           – transient snapshot-read failures
//	mtbot_open_orders                  – size of the current order registry
//	mtbot_balance                      – last reported account balance
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	PollCycles = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mtbot_poll_cycles_total",
			Help: "Completed poll iterations per resource",
		},
		[]string{"resource"},
	)

	Events = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mtbot_events_total",
			Help: "Events dispatched to the handler",
		},
		[]string{"type"},
	)

	Commands = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mtbot_commands_total",
			Help: "Command files written",
		},
		[]string{"type"},
	)

	ReadRetries = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "mtbot_read_retries_total",
			Help: "Transient snapshot-read failures",
		},
	)

	OpenOrders = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "mtbot_open_orders",
			Help: "Size of the current order registry",
		},
	)

	Balance = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "mtbot_balance",
			Help: "Last reported account balance",
		},
	)
)

func init() {
	prometheus.MustRegister(
		PollCycles,
		Events,
		Commands,
		ReadRetries,
		OpenOrders,
		Balance,
	)
}

func Handler() http.Handler {
	return promhttp.Handler()
}
