// Package emitter provides time-driven event sources: producers whose updates
// are generated by the clock rather than by application code.
//
// Key Components:
//
//   - Ticker: emits the current time at a fixed interval
//   - Cron: emits according to a cron expression, with optional seconds field
//     and descriptors such as "@hourly" and "@every 10s"
//   - ValidateExpression: checks a cron expression without creating an emitter
//
// Both emitters expose their events as a regular channel, so the full operator
// set applies: a cron firing can be mapped, filtered, and derived from like any
// other update. Stopping an emitter completes its channel with the number of
// emissions delivered, so downstream derivations tear down cleanly.
//
// Basic Usage:
//
//	ticker, err := emitter.NewTicker(time.Second)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer ticker.Stop()
//
//	ticker.Events().Subscribe(func(ev events.Event[time.Time, int]) {
//		if now, ok := ev.Update(); ok {
//			fmt.Println("tick at", now)
//		}
//	})
//
// Cron expressions are evaluated in Config.Location (time.Local by default):
//
//	cr, err := emitter.NewCronWithConfig("0 */5 * * * *", emitter.Config{
//		Name:     "reconcile",
//		Location: time.UTC,
//	})
package emitter
