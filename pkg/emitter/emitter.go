package emitter

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/vnykmshr/eventflow/pkg/events"
	"github.com/vnykmshr/eventflow/pkg/metrics"
)

// Config provides configuration for time-driven emitters.
type Config struct {
	// Name identifies the emitter in metrics. Empty disables instrumentation.
	Name string

	// Metrics is the registry to instrument against. Nil with a non-empty
	// Name uses metrics.DefaultRegistry.
	Metrics *metrics.Registry

	// Location is the timezone cron expressions are evaluated in.
	// Nil means time.Local.
	Location *time.Location
}

// DefaultConfig returns the default emitter configuration.
func DefaultConfig() Config {
	return Config{
		Location: time.Local,
	}
}

func (c Config) registry() *metrics.Registry {
	if c.Name == "" {
		return nil
	}
	if c.Metrics != nil {
		return c.Metrics
	}
	return metrics.DefaultRegistry
}

// cronParser accepts the optional seconds field plus descriptors
// such as @hourly and @every.
var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// ValidateExpression reports whether expr is a valid cron expression
// without creating an emitter for it.
func ValidateExpression(expr string) error {
	_, err := cronParser.Parse(expr)
	return err
}

// Ticker emits the current time on a channel at a fixed interval until
// stopped. Stopping completes the channel with the number of ticks emitted.
type Ticker struct {
	out      *events.Producer[time.Time, int]
	stop     chan struct{}
	stopOnce sync.Once
}

// NewTicker creates a ticker emitting every interval.
func NewTicker(interval time.Duration) (*Ticker, error) {
	return NewTickerWithConfig(interval, DefaultConfig())
}

// NewTickerWithConfig creates a ticker with custom configuration.
func NewTickerWithConfig(interval time.Duration, config Config) (*Ticker, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("interval must be positive, got %v", interval)
	}

	t := &Ticker{
		out: events.NewProducerWithConfig[time.Time, int](events.Config{
			Name:    config.Name,
			Metrics: config.Metrics,
		}),
		stop: make(chan struct{}),
	}
	go t.run(interval, config)
	return t, nil
}

// Events returns the channel the ticker emits on.
func (t *Ticker) Events() events.Channel[time.Time, int] {
	return t.out
}

// Stop halts emission and completes the channel with the tick count.
// Safe to call more than once.
func (t *Ticker) Stop() {
	t.stopOnce.Do(func() { close(t.stop) })
}

func (t *Ticker) run(interval time.Duration, config Config) {
	reg := config.registry()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	count := 0
	for {
		select {
		case <-t.stop:
			t.out.Complete(events.Succeed(count))
			return
		case now := <-ticker.C:
			t.out.Update(now)
			count++
			if reg != nil {
				reg.EmitterTicks.WithLabelValues(config.Name, "ticker").Inc()
			}
		}
	}
}

// Cron emits the current time on a channel according to a cron expression
// until stopped. Stopping completes the channel with the number of firings.
type Cron struct {
	out      *events.Producer[time.Time, int]
	schedule cron.Schedule
	location *time.Location
	stop     chan struct{}
	stopOnce sync.Once
}

// NewCron creates an emitter firing per the cron expression. The expression
// may include an optional leading seconds field and descriptors such as
// "@hourly" and "@every 10s".
func NewCron(expr string) (*Cron, error) {
	return NewCronWithConfig(expr, DefaultConfig())
}

// NewCronWithConfig creates a cron emitter with custom configuration.
func NewCronWithConfig(expr string, config Config) (*Cron, error) {
	schedule, err := cronParser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid cron expression '%s': %w", expr, err)
	}

	location := config.Location
	if location == nil {
		location = time.Local
	}

	c := &Cron{
		out: events.NewProducerWithConfig[time.Time, int](events.Config{
			Name:    config.Name,
			Metrics: config.Metrics,
		}),
		schedule: schedule,
		location: location,
		stop:     make(chan struct{}),
	}
	go c.run(config)
	return c, nil
}

// Events returns the channel the emitter fires on.
func (c *Cron) Events() events.Channel[time.Time, int] {
	return c.out
}

// Next returns the next firing time after now.
func (c *Cron) Next() time.Time {
	return c.schedule.Next(time.Now().In(c.location))
}

// Stop halts emission and completes the channel with the firing count.
// Safe to call more than once.
func (c *Cron) Stop() {
	c.stopOnce.Do(func() { close(c.stop) })
}

func (c *Cron) run(config Config) {
	reg := config.registry()

	count := 0
	for {
		now := time.Now().In(c.location)
		next := c.schedule.Next(now)
		timer := time.NewTimer(next.Sub(now))

		select {
		case <-c.stop:
			timer.Stop()
			c.out.Complete(events.Succeed(count))
			return
		case fired := <-timer.C:
			c.out.Update(fired)
			count++
			if reg != nil {
				reg.EmitterTicks.WithLabelValues(config.Name, "cron").Inc()
			}
		}
	}
}
