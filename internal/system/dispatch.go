package system

import (
	"time"

	"github.com/l1jgo/ecsreg/internal/core/event"
	coresys "github.com/l1jgo/ecsreg/internal/core/system"
)

// EventDispatchSystem rotates the event bus and delivers last frame's events.
// Priority band PreUpdate.
type EventDispatchSystem struct {
	bus *event.Bus
}

func NewEventDispatchSystem(bus *event.Bus) *EventDispatchSystem {
	return &EventDispatchSystem{bus: bus}
}

func (s *EventDispatchSystem) Name() string  { return "event_dispatch" }
func (s *EventDispatchSystem) Priority() int { return coresys.PriorityPreUpdate }

func (s *EventDispatchSystem) Update(_ time.Duration) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}
