package ecs

import (
	"github.com/phanxgames/popover"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// TransitionEventType is the Donburi event type for popover transition events.
// Subscribe to this in your ECS systems to react to the card opening and
// closing.
var TransitionEventType = events.NewEventType[popover.TransitionEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Transition events are published to TransitionEventType and can be
// consumed with Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) popover.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) Emit(event popover.TransitionEvent) {
	TransitionEventType.Publish(s.world, event)
}
