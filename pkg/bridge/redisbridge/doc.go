/*
Package redisbridge connects local event channels to Redis Pub/Sub, letting
multiple application instances share one logical event stream.

Key Components:

  - Bridge: publishes local channel events to a Redis channel and exposes
    remote events as a regular local channel
  - Config: Redis client, channel name, instance identity, and timeouts

Updates travel as JSON-encoded values; completions travel with their kind
(success, failure, or cancellation) so a terminal state on one instance is
observed as a terminal state everywhere. Messages carry the publishing
instance's ID and are suppressed on their way back, so an instance never
re-observes its own events.

Basic Usage:

	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	bridge, err := redisbridge.New[Reading](client, "sensors")
	if err != nil {
		log.Fatal(err)
	}
	defer bridge.Close()

	// Outbound: forward a local channel to every other instance.
	bridge.Publish(readings)

	// Inbound: remote events arrive as an ordinary channel.
	bridge.Events().Subscribe(func(ev events.Event[Reading, string]) {
		if r, ok := ev.Update(); ok {
			process(r)
		}
	})

Publish failures are counted in the bridge error metric and dropped; the
local channel remains the source of truth.
*/
package redisbridge
