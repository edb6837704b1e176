package system

import "time"

// Priority bands for built-in systems. Lower runs first; any int is accepted.
const (
	PriorityInput      = 0   // drain external input
	PriorityPreUpdate  = 100 // process last frame's events
	PriorityUpdate     = 200 // game logic
	PriorityPostUpdate = 300 // derived state
	PriorityCleanup    = 600 // destroy queued entities
)

// Named is the part every system exposes to the Runner.
type Named interface {
	Name() string
	Priority() int
}

// UpdateSystem runs once per frame in the update pass.
type UpdateSystem interface {
	Named
	Update(dt time.Duration)
}

// RenderSystem runs once per frame in the render pass, after all updates.
type RenderSystem interface {
	Named
	Render()
}

type updateFunc struct {
	name     string
	priority int
	fn       func(time.Duration)
}

func (s *updateFunc) Name() string            { return s.name }
func (s *updateFunc) Priority() int           { return s.priority }
func (s *updateFunc) Update(dt time.Duration) { s.fn(dt) }

// UpdateFunc adapts a plain callback to UpdateSystem.
func UpdateFunc(name string, priority int, fn func(dt time.Duration)) UpdateSystem {
	return &updateFunc{name: name, priority: priority, fn: fn}
}

type renderFunc struct {
	name     string
	priority int
	fn       func()
}

func (s *renderFunc) Name() string  { return s.name }
func (s *renderFunc) Priority() int { return s.priority }
func (s *renderFunc) Render()       { s.fn() }

// RenderFunc adapts a plain callback to RenderSystem.
func RenderFunc(name string, priority int, fn func()) RenderSystem {
	return &renderFunc{name: name, priority: priority, fn: fn}
}
