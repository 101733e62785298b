package registry

import (
	"github.com/prometheus/client_golang/prometheus"
)

var openChannels = prometheus.NewGauge(
	prometheus.GaugeOpts{
		Name: "chanq_open_channels",
		Help: "number of currently registered channels",
	},
)

var channelsCreated = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "chanq_channels_created_total",
		Help: "total channels registered",
	},
)

var channelsClosed = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "chanq_channels_closed_total",
		Help: "total channels closed through the registry",
	},
)

func init() {
	prometheus.MustRegister(openChannels, channelsCreated, channelsClosed)
}
