package system

import (
	"time"

	coresys "github.com/l1jgo/ecsreg/internal/core/system"
)

// Pruner drops references to entities that are no longer alive.
type Pruner interface {
	Prune() int
}

// HandlePruneSystem runs a Pruner after cleanup so script-side handle caches
// do not outlive the entities they name.
type HandlePruneSystem struct {
	p Pruner
}

func NewHandlePruneSystem(p Pruner) *HandlePruneSystem {
	return &HandlePruneSystem{p: p}
}

func (s *HandlePruneSystem) Name() string  { return "handle_prune" }
func (s *HandlePruneSystem) Priority() int { return coresys.PriorityCleanup + 1 }

func (s *HandlePruneSystem) Update(_ time.Duration) {
	s.p.Prune()
}
