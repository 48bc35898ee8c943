package redisbridge

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vnykmshr/eventflow/pkg/events"
	"github.com/vnykmshr/eventflow/pkg/metrics"
)

// Config holds configuration for a Redis event bridge.
type Config struct {
	// Redis client used for publish and subscribe.
	Redis redis.UniversalClient

	// Channel is the Redis Pub/Sub channel events travel over.
	Channel string

	// InstanceID uniquely identifies this application instance. Messages
	// published by an instance are not re-delivered to its own inbound
	// channel. Empty generates a random ID.
	InstanceID string

	// RedisTimeout bounds each publish operation (defaults to 500ms).
	RedisTimeout time.Duration

	// Name identifies the bridge in metrics. Empty disables instrumentation.
	Name string

	// Metrics is the registry to instrument against. Nil with a non-empty
	// Name uses metrics.DefaultRegistry.
	Metrics *metrics.Registry
}

// DefaultConfig returns a default bridge configuration.
func DefaultConfig() Config {
	return Config{
		InstanceID:   generateInstanceID(),
		RedisTimeout: 500 * time.Millisecond,
	}
}

// ConfigError represents an invalid bridge configuration.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return "redis bridge config error: " + e.Message
}

// RedisError represents a Redis operation error.
type RedisError struct {
	Operation string
	Err       error
}

func (e *RedisError) Error() string {
	return "redis error in " + e.Operation + ": " + e.Err.Error()
}

func (e *RedisError) Unwrap() error {
	return e.Err
}

func validateConfig(config Config) error {
	if config.Redis == nil {
		return &ConfigError{"redis client is required"}
	}
	if config.Channel == "" {
		return &ConfigError{"channel is required"}
	}
	return nil
}

func applyConfigDefaults(config Config) Config {
	if config.InstanceID == "" {
		config.InstanceID = generateInstanceID()
	}
	if config.RedisTimeout == 0 {
		config.RedisTimeout = 500 * time.Millisecond
	}
	return config
}

func generateInstanceID() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "bridge-unknown"
	}
	return "bridge-" + hex.EncodeToString(buf)
}

// Event kinds carried in the wire envelope.
const (
	kindUpdate  = "update"
	kindSuccess = "success"
	kindFailure = "failure"
	kindCancel  = "cancel"
)

// envelope is the wire format events travel in.
type envelope struct {
	Instance string          `json:"instance"`
	Kind     string          `json:"kind"`
	Value    json.RawMessage `json:"value,omitempty"`
	Error    string          `json:"error,omitempty"`
}

// Bridge connects local event channels to a Redis Pub/Sub channel, so
// updates and completions published by one application instance are
// observed as a regular channel by every other instance.
//
// The completion payload travels as a string message; updates travel as
// JSON-encoded values of U.
type Bridge[U any] struct {
	config Config
	reg    *metrics.Registry

	out    *events.Producer[U, string]
	pubsub *redis.PubSub
	cancel context.CancelFunc

	mu            sync.Mutex
	registrations []*events.Registration
	closed        bool
}

// New creates a bridge over the given Redis Pub/Sub channel and starts
// receiving remote events immediately.
func New[U any](client redis.UniversalClient, channel string) (*Bridge[U], error) {
	config := DefaultConfig()
	config.Redis = client
	config.Channel = channel
	return NewWithConfig[U](config)
}

// NewWithConfig creates a bridge with custom configuration.
func NewWithConfig[U any](config Config) (*Bridge[U], error) {
	if err := validateConfig(config); err != nil {
		return nil, err
	}
	config = applyConfigDefaults(config)

	b := &Bridge[U]{
		config: config,
		out: events.NewProducerWithConfig[U, string](events.Config{
			Name:    config.Name,
			Metrics: config.Metrics,
		}),
	}
	if config.Name != "" {
		b.reg = config.Metrics
		if b.reg == nil {
			b.reg = metrics.DefaultRegistry
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	b.cancel = cancel
	b.pubsub = config.Redis.Subscribe(ctx, config.Channel)

	// Force the subscription before returning so events published right
	// after construction are not lost.
	if _, err := b.pubsub.Receive(ctx); err != nil {
		cancel()
		_ = b.pubsub.Close()
		return nil, &RedisError{"subscribe", err}
	}

	go b.receive(ctx)
	return b, nil
}

// Events returns the local channel carrying events received from remote
// instances. Closing the bridge completes it with a cancellation.
func (b *Bridge[U]) Events() events.Channel[U, string] {
	return b.out
}

// Publish forwards src's events to the Redis channel until src reaches a
// terminal state or the bridge is closed. Publish failures are counted and
// dropped; the local channel is the source of truth.
func (b *Bridge[U]) Publish(src events.Channel[U, string]) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return &ConfigError{"bridge is closed"}
	}

	registration := src.Subscribe(func(ev events.Event[U, string]) {
		env, err := b.encode(ev)
		if err != nil {
			b.countError()
			return
		}
		b.send(env)
	})
	b.registrations = append(b.registrations, registration)
	return nil
}

// Close detaches all publishers, stops receiving, and completes the inbound
// channel with a cancellation. Safe to call more than once.
func (b *Bridge[U]) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	registrations := b.registrations
	b.registrations = nil
	b.mu.Unlock()

	for _, registration := range registrations {
		registration.Cancel()
	}
	b.cancel()
	err := b.pubsub.Close()
	b.out.Complete(events.Canceled[string]())
	return err
}

func (b *Bridge[U]) encode(ev events.Event[U, string]) ([]byte, error) {
	env := envelope{Instance: b.config.InstanceID}

	if v, ok := ev.Update(); ok {
		payload, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		env.Kind = kindUpdate
		env.Value = payload
		return json.Marshal(env)
	}

	c, _ := ev.Completion()
	switch {
	case c.Canceled():
		env.Kind = kindCancel
	case c.Failed():
		env.Kind = kindFailure
		env.Error = c.Err().Error()
	default:
		msg, _ := c.Value()
		payload, err := json.Marshal(msg)
		if err != nil {
			return nil, err
		}
		env.Kind = kindSuccess
		env.Value = payload
	}
	return json.Marshal(env)
}

func (b *Bridge[U]) send(payload []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), b.config.RedisTimeout)
	defer cancel()

	if err := b.config.Redis.Publish(ctx, b.config.Channel, payload).Err(); err != nil {
		b.countError()
		return
	}
	if b.reg != nil {
		b.reg.BridgePublished.WithLabelValues(b.config.Name).Inc()
	}
}

func (b *Bridge[U]) receive(ctx context.Context) {
	ch := b.pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			b.deliver([]byte(msg.Payload))
		}
	}
}

func (b *Bridge[U]) deliver(payload []byte) {
	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		b.countError()
		return
	}
	// Suppress our own messages echoed back by Redis.
	if env.Instance == b.config.InstanceID {
		return
	}

	switch env.Kind {
	case kindUpdate:
		var v U
		if err := json.Unmarshal(env.Value, &v); err != nil {
			b.countError()
			return
		}
		b.out.Update(v)
	case kindSuccess:
		var msg string
		if err := json.Unmarshal(env.Value, &msg); err != nil {
			b.countError()
			return
		}
		b.out.Complete(events.Succeed(msg))
	case kindFailure:
		b.out.Fail(errors.New(env.Error))
	case kindCancel:
		b.out.Complete(events.Canceled[string]())
	default:
		b.countError()
		return
	}
	if b.reg != nil {
		b.reg.BridgeReceived.WithLabelValues(b.config.Name).Inc()
	}
}

func (b *Bridge[U]) countError() {
	if b.reg != nil {
		b.reg.BridgeErrors.WithLabelValues(b.config.Name).Inc()
	}
}
