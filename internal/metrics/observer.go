package metrics

import (
	"github.com/dariusconca170-prog/turboget-bridge/internal/browser"
	"github.com/dariusconca170-prog/turboget-bridge/internal/events"
)

// Attach subscribes the pipeline counters to the event bus. Returns an
// unsubscribe function covering all registrations.
func Attach(bus events.Bus) func() {
	unsubs := []func(){
		bus.Subscribe(events.TransferCreated, func(e events.Event) {
			if transfer, ok := e.Payload.(browser.TransferEvent); ok {
				TransfersObserved.WithLabelValues(string(transfer.State)).Inc()
			}
		}),
		bus.Subscribe(events.MenuClicked, func(events.Event) {
			MenuClicks.Inc()
		}),
		bus.Subscribe(events.RelaySent, func(events.Event) {
			RelaysSent.Inc()
		}),
		bus.Subscribe(events.RelayFailed, func(events.Event) {
			RelaysFailed.Inc()
		}),
	}

	return func() {
		for _, unsub := range unsubs {
			unsub()
		}
	}
}
