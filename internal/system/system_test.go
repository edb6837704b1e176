package system

import (
	"testing"
	"time"

	"github.com/l1jgo/ecsreg/internal/core/ecs"
	"github.com/l1jgo/ecsreg/internal/core/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestCleanupSystemFlushesQueueAfterUpdates(t *testing.T) {
	w := ecs.NewWorld(nil)
	require.NoError(t, w.DefineComponent("tag", nil))
	id, err := w.CreateEntity(ecs.ComponentSpec{Name: "tag"})
	require.NoError(t, err)

	require.NoError(t, w.AddUpdateSystem(NewCleanupSystem(w, zap.NewNop())))
	var seenAlive bool
	require.NoError(t, w.RegisterUpdateSystem("killer", 200, func(time.Duration) {
		w.MarkForDestruction(id)
		seenAlive = w.Alive(id)
	}))

	w.RunUpdate(time.Millisecond)
	assert.True(t, seenAlive, "queued entity is alive for the rest of the pass")
	assert.False(t, w.Alive(id))
	assert.Equal(t, []string{"killer", "cleanup"}, w.UpdateSystems())
}

func TestDebugLogCountsDispatchedEvents(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	w := ecs.NewWorld(nil)
	bus := event.NewBus()
	w.SetObserver(event.NewRecorder(bus))
	d := NewDebugLog(bus, zap.New(core))
	require.NoError(t, w.AddUpdateSystem(NewEventDispatchSystem(bus)))

	id, err := w.CreateEntity()
	require.NoError(t, err)
	require.NoError(t, w.Delete(id))
	assert.Equal(t, 0, d.Created, "events wait for the dispatch system")

	w.RunUpdate(0)
	assert.Equal(t, 1, d.Created)
	assert.Equal(t, 1, d.Deleted)
	assert.Equal(t, 1, d.Joined)
	assert.Equal(t, 1, d.Left)
	assert.Equal(t, 1, logs.FilterMessage("entity created").Len())
	assert.Equal(t, 1, logs.FilterMessage("group left").Len())
}

type countingPruner struct{ calls int }

func (p *countingPruner) Prune() int { p.calls++; return 0 }

func TestHandlePruneRunsAfterCleanup(t *testing.T) {
	w := ecs.NewWorld(nil)
	p := &countingPruner{}
	require.NoError(t, w.AddUpdateSystem(NewHandlePruneSystem(p)))
	require.NoError(t, w.AddUpdateSystem(NewCleanupSystem(w, zap.NewNop())))
	w.RunUpdate(0)
	assert.Equal(t, 1, p.calls)
	assert.Equal(t, []string{"cleanup", "handle_prune"}, w.UpdateSystems())
}
