package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DsMetrics holds the Prometheus collectors for the driver-station loop.
// All counters carry a 'peer' label (fms, radio, robot).
type DsMetrics struct {
	PacketsSent         *prometheus.CounterVec // outbound datagrams per peer
	PacketsReceived     *prometheus.CounterVec // inbound datagrams accepted by the parser
	ParseFailures       *prometheus.CounterVec // inbound datagrams the parser rejected
	WatchdogExpirations *prometheus.CounterVec // peer silences past the grace window
}

// New registers the collectors with reg, or with the default registerer
// when reg is nil.
func New(reg prometheus.Registerer) *DsMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &DsMetrics{
		PacketsSent: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "libds_packets_sent_total",
			Help: "Outbound datagrams emitted, by peer",
		}, []string{"peer"}),
		PacketsReceived: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "libds_packets_received_total",
			Help: "Inbound datagrams accepted by the parser, by peer",
		}, []string{"peer"}),
		ParseFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "libds_parse_failures_total",
			Help: "Inbound datagrams rejected by the parser, by peer",
		}, []string{"peer"}),
		WatchdogExpirations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "libds_watchdog_expirations_total",
			Help: "Watchdog expirations after peer silence, by peer",
		}, []string{"peer"}),
	}
}
