// Package metrics provides Prometheus instrumentation for eventflow components.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for eventflow components.
type Registry struct {
	// Channel Metrics
	EventsEmitted        *prometheus.CounterVec
	CompletionsDelivered *prometheus.CounterVec
	SubscriptionsTotal   *prometheus.CounterVec
	SubscribersActive    *prometheus.GaugeVec

	// Operator Metrics
	TransformsExecuted *prometheus.CounterVec
	TransformErrors    *prometheus.CounterVec
	EventsSkipped      *prometheus.CounterVec

	// Buffering Metrics
	QueueDepth         *prometheus.GaugeVec
	BackpressureBlocks *prometheus.CounterVec

	// Source & Bridge Metrics
	EmitterTicks     *prometheus.CounterVec
	BridgePublished  *prometheus.CounterVec
	BridgeReceived   *prometheus.CounterVec
	BridgeErrors     *prometheus.CounterVec
}

// DefaultRegistry is the default metrics registry used by eventflow components.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	factory := promauto.With(reg)

	return &Registry{
		// Channel Metrics
		EventsEmitted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "eventflow",
				Subsystem: "channel",
				Name:      "events_emitted_total",
				Help:      "Total number of update events emitted by producers",
			},
			[]string{"channel_name"},
		),

		CompletionsDelivered: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "eventflow",
				Subsystem: "channel",
				Name:      "completions_total",
				Help:      "Total number of completion events, by outcome",
			},
			[]string{"channel_name", "outcome"},
		),

		SubscriptionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "eventflow",
				Subsystem: "channel",
				Name:      "subscriptions_total",
				Help:      "Total number of subscriptions registered",
			},
			[]string{"channel_name"},
		),

		SubscribersActive: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "eventflow",
				Subsystem: "channel",
				Name:      "subscribers_active",
				Help:      "Number of live subscriber registrations",
			},
			[]string{"channel_name"},
		),

		// Operator Metrics
		TransformsExecuted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "eventflow",
				Subsystem: "operator",
				Name:      "transforms_total",
				Help:      "Total number of transform bodies executed",
			},
			[]string{"operator", "channel_name"},
		),

		TransformErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "eventflow",
				Subsystem: "operator",
				Name:      "transform_errors_total",
				Help:      "Total number of transform or predicate errors",
			},
			[]string{"operator", "channel_name"},
		),

		EventsSkipped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "eventflow",
				Subsystem: "operator",
				Name:      "events_skipped_total",
				Help:      "Total number of events skipped, by reason",
			},
			[]string{"channel_name", "reason"},
		),

		// Buffering Metrics
		QueueDepth: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "eventflow",
				Subsystem: "queue",
				Name:      "depth",
				Help:      "Current number of undelivered events in a derivation queue",
			},
			[]string{"channel_name"},
		),

		BackpressureBlocks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "eventflow",
				Subsystem: "queue",
				Name:      "backpressure_blocks_total",
				Help:      "Total number of producer blocks on a full derivation queue",
			},
			[]string{"channel_name"},
		),

		// Source & Bridge Metrics
		EmitterTicks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "eventflow",
				Subsystem: "emitter",
				Name:      "ticks_total",
				Help:      "Total number of scheduled emissions",
			},
			[]string{"emitter_name", "kind"},
		),

		BridgePublished: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "eventflow",
				Subsystem: "bridge",
				Name:      "published_total",
				Help:      "Total number of events published to the remote transport",
			},
			[]string{"channel_name"},
		),

		BridgeReceived: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "eventflow",
				Subsystem: "bridge",
				Name:      "received_total",
				Help:      "Total number of events received from the remote transport",
			},
			[]string{"channel_name"},
		),

		BridgeErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "eventflow",
				Subsystem: "bridge",
				Name:      "errors_total",
				Help:      "Total number of bridge transport errors",
			},
			[]string{"channel_name"},
		),
	}
}
