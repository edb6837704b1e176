package system

import (
	"github.com/l1jgo/ecsreg/internal/core/event"
	"go.uber.org/zap"
)

// DebugLog writes registry change events to the logger at debug level and
// keeps running totals. It has no per-frame work of its own; events reach it
// through the bus when EventDispatchSystem runs.
type DebugLog struct {
	log *zap.Logger

	Created int
	Deleted int
	Joined  int
	Left    int
}

// NewDebugLog subscribes a DebugLog to bus.
func NewDebugLog(bus *event.Bus, log *zap.Logger) *DebugLog {
	d := &DebugLog{log: log}
	event.Subscribe(bus, func(ev event.EntityCreated) {
		d.Created++
		d.log.Debug("entity created", zap.Stringer("entity", ev.EntityID))
	})
	event.Subscribe(bus, func(ev event.EntityDeleted) {
		d.Deleted++
		d.log.Debug("entity deleted", zap.Stringer("entity", ev.EntityID))
	})
	event.Subscribe(bus, func(ev event.MemberJoined) {
		d.Joined++
		d.log.Debug("group joined", zap.String("group", ev.Group), zap.Stringer("entity", ev.EntityID))
	})
	event.Subscribe(bus, func(ev event.MemberLeft) {
		d.Left++
		d.log.Debug("group left", zap.String("group", ev.Group), zap.Stringer("entity", ev.EntityID))
	})
	return d
}
