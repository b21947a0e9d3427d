package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	TransfersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transfers_total",
			Help: "Total settled money movements",
		},
		[]string{"kind"}, // transfer|deposit|withdrawal
	)
	TransfersFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "transfers_failed_total",
			Help: "Total failed money movements",
		},
	)

	ProvisioningFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "customer_provisioning_failed_total",
			Help: "Total failed processor customer provisioning attempts",
		},
	)

	ReconcileRepairs = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "reconcile_repairs_total",
			Help: "Transfers whose local balances were repaired by the reconciler",
		},
	)
)

// Handler serves the /metrics endpoint.
var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(TransfersTotal)
	prometheus.MustRegister(TransfersFailed)
	prometheus.MustRegister(ProvisioningFailed)
	prometheus.MustRegister(ReconcileRepairs)
}
