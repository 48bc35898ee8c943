// Package metrics provides Prometheus instrumentation for eventflow components.
//
// This package enables monitoring and observability for eventflow's channels,
// operators, derivation queues, emitters, and bridges through Prometheus metrics.
//
// # Overview
//
// The metrics package provides instrumentation for:
//   - Channels (events emitted, completions by outcome, subscriber counts)
//   - Operators (transforms executed, transform errors, skipped events)
//   - Derivation queues (depth, backpressure blocks)
//   - Emitters (scheduled ticks) and bridges (published, received, errors)
//
// # Quick Start
//
// Name a producer to instrument it against the default registry:
//
//	src := events.NewProducerWithConfig[int, string](events.Config{
//		Name:    "sensor_readings",
//		Metrics: metrics.DefaultRegistry,
//	})
//
// Then expose metrics via HTTP:
//
//	http.Handle("/metrics", promhttp.Handler())
//	log.Fatal(http.ListenAndServe(":8080", nil))
//
// # Custom Registry
//
// Use a custom Prometheus registry for isolation:
//
//	registry := metrics.NewRegistry(prometheus.NewRegistry())
//	src := events.NewProducerWithConfig[int, string](events.Config{
//		Name:    "sensor_readings",
//		Metrics: registry,
//	})
//
// # Available Metrics
//
// ## Channel Metrics
//
//   - eventflow_channel_events_emitted_total: Update events emitted by producers
//   - eventflow_channel_completions_total: Completion events, by outcome
//   - eventflow_channel_subscriptions_total: Subscriptions registered
//   - eventflow_channel_subscribers_active: Live subscriber registrations
//
// ## Operator Metrics
//
//   - eventflow_operator_transforms_total: Transform bodies executed
//   - eventflow_operator_transform_errors_total: Transform or predicate errors
//   - eventflow_operator_events_skipped_total: Events skipped, by reason
//
// ## Queue Metrics
//
//   - eventflow_queue_depth: Undelivered events in a derivation queue
//   - eventflow_queue_backpressure_blocks_total: Producer blocks on a full queue
//
// ## Source & Bridge Metrics
//
//   - eventflow_emitter_ticks_total: Scheduled emissions
//   - eventflow_bridge_published_total: Events published to the remote transport
//   - eventflow_bridge_received_total: Events received from the remote transport
//   - eventflow_bridge_errors_total: Bridge transport errors
//
// # Labels
//
//   - channel_name: User-provided name for the producer or derived channel
//   - operator: Operator kind ("map", "compact_map", "flat_map", "filter", "unwrap")
//   - outcome: Completion outcome ("success", "failure", "canceled")
//   - reason: Skip reason ("context_dead", "token_canceled")
//   - emitter_name: User-provided name for the emitter instance
//
// # Performance
//
// Metrics collection is designed for minimal overhead:
//   - Metrics are updated only when events flow
//   - No background goroutines or timers
//   - Unnamed components skip instrumentation entirely
package metrics
