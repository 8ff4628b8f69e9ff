package systems

import (
	"ebiten-backrooms/ecs"
	"ebiten-backrooms/generation"
)

// failureReporter routes generation and bake errors to the message log and
// the event bus. Invariant violations panic in debug builds.
type failureReporter struct {
	log    *MessageLog
	events *ecs.EventManager
	debug  bool
}

func (f failureReporter) report(id generation.RoomID, err error) {
	if generation.IsInvariant(err) {
		if f.debug {
			panic(err)
		}
		f.log.Addf("ERROR: skipping room %d: %v", id, err)
	} else {
		f.log.Addf("WARNING: room %d: %v", id, err)
	}
	if f.events != nil {
		f.events.Emit(GenerationFailedEvent{Room: id, Err: err})
	}
}
