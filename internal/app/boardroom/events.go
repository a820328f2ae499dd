package boardroom

import "github.com/PabloGalante/quorum-agent/internal/domain"

// Event is a progress notification emitted while a run advances.
// Observers fold events into their own snapshot; the orchestrator
// never hands out its mutable working state.
type Event interface {
	event()
}

// TurnStarted marks a persona's turn as in flight.
type TurnStarted struct {
	PersonaID domain.PersonaID
	Round     int
}

// MinuteAdded carries a freshly appended minute (error minutes included).
type MinuteAdded struct {
	Minute domain.Minute
}

// RunFailed terminates a run after a failed turn. No further events
// follow; in-flight markers are implicitly cleared.
type RunFailed struct {
	Round int
	Err   error
}

// RunFinalized terminates a successful run with the chair's decision.
type RunFinalized struct {
	Decision string
}

func (TurnStarted) event()  {}
func (MinuteAdded) event()  {}
func (RunFailed) event()    {}
func (RunFinalized) event() {}

// Observer receives run events. A nil observer is valid.
type Observer func(Event)

func emit(obs Observer, ev Event) {
	if obs != nil {
		obs(ev)
	}
}
