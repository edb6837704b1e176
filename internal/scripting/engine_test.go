package scripting

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/l1jgo/ecsreg/internal/core/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newTestEngine(t *testing.T) (*Engine, *ecs.World) {
	t.Helper()
	w := ecs.NewWorld(nil)
	e, err := NewEngine("", w, nil)
	require.NoError(t, err)
	t.Cleanup(e.Close)
	require.NoError(t, e.DoString(`
		ecs.component("position", {x = 0, y = 0})
		ecs.component("velocity", {dx = 0, dy = 0})
		ecs.component("tag")
	`))
	return e, w
}

func TestScriptDrivesMovementSystem(t *testing.T) {
	e, w := newTestEngine(t)
	require.NoError(t, e.DoString(`
		e = ecs.entity({{"position", {x = 1}}})
		ecs.attach(e, {velocity = {dx = 2}, tag = true})
		ecs.system("move", 200, function(dt)
			ecs.each("position velocity", function(m)
				local p = ecs.get(m, "position")
				local v = ecs.get(m, "velocity")
				ecs.set(m, "position", "x", p.x + v.dx * dt)
			end)
		end)
	`))

	w.RunUpdate(time.Second)

	id, ok := e.Global("e").(ecs.EntityID)
	require.True(t, ok)
	pos, err := w.Get(id, "position")
	require.NoError(t, err)
	assert.Equal(t, 3.0, pos.Get("x"))
	assert.True(t, w.Has(id, "tag"))
	assert.Equal(t, []string{"move"}, w.UpdateSystems())
}

func TestEntityHandlesAreStable(t *testing.T) {
	e, _ := newTestEngine(t)
	require.NoError(t, e.DoString(`
		local a = ecs.entity({{"position"}})
		local seen = {}
		seen[a] = true
		same = seen[ecs.first("position")] == true
		equal = ecs.query("position")[1] == a
		label = tostring(a)
		n = ecs.count("position")
	`))
	assert.Equal(t, true, e.Global("same"))
	assert.Equal(t, true, e.Global("equal"))
	assert.Equal(t, "entity(0#1)", e.Global("label"))
	assert.Equal(t, 1.0, e.Global("n"))
}

func TestScriptErrorsAreCatchable(t *testing.T) {
	e, _ := newTestEngine(t)
	require.NoError(t, e.DoString(`
		local a = ecs.entity()
		bad_component = not pcall(ecs.attach, a, {nope = true})
		bad_field = not pcall(ecs.attach, a, {position = {z = 1}})
		bad_query = not pcall(ecs.query, "position nope")
		has_position = ecs.has(a, "position")
		ecs.delete(a)
		stale = not pcall(ecs.get, a, "position")
		alive = ecs.alive(a)
	`))
	assert.Equal(t, true, e.Global("bad_component"))
	assert.Equal(t, true, e.Global("bad_field"))
	assert.Equal(t, true, e.Global("bad_query"))
	assert.Equal(t, false, e.Global("has_position"), "failed attach leaves nothing behind")
	assert.Equal(t, true, e.Global("stale"))
	assert.Equal(t, false, e.Global("alive"))
}

func TestDetachReturnsRemovedAttributes(t *testing.T) {
	e, _ := newTestEngine(t)
	require.NoError(t, e.DoString(`
		local a = ecs.entity({{"velocity", {dx = 2}}})
		local v, missing = ecs.detach(a, "velocity", "position")
		dx = v.dx
		was_missing = missing == nil
		left = ecs.has(a, "velocity")
	`))
	assert.Equal(t, 2.0, e.Global("dx"))
	assert.Equal(t, true, e.Global("was_missing"))
	assert.Equal(t, false, e.Global("left"))
}

func TestTypeDeclaration(t *testing.T) {
	e, w := newTestEngine(t)
	require.NoError(t, e.DoString(`
		ecs.type("moving", {"position", "velocity"})
		ecs.entity({{"position"}, {"velocity"}})
		ecs.entity({{"position"}})
	`))
	g, err := w.Query("moving")
	require.NoError(t, err)
	assert.Equal(t, 1, g.Len())
}

func TestFailingSystemIsLoggedNotFatal(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	w := ecs.NewWorld(nil)
	e, err := NewEngine("", w, zap.New(core))
	require.NoError(t, err)
	defer e.Close()
	require.NoError(t, e.DoString(`
		ran = 0
		ecs.system("broken", 100, function() error("boom") end)
		ecs.system("fine", 200, function() ran = ran + 1 end)
		drawn = 0
		ecs.render("draw", 0, function() drawn = drawn + 1 end)
	`))

	w.RunUpdate(time.Millisecond)
	w.RunRender()
	assert.Equal(t, 1.0, e.Global("ran"))
	assert.Equal(t, 1.0, e.Global("drawn"))
	assert.Equal(t, 1, logs.FilterMessage("lua system error").Len())
}

func TestPruneDropsDeadHandles(t *testing.T) {
	e, w := newTestEngine(t)
	require.NoError(t, e.DoString(`a = ecs.entity({{"tag"}}); b = ecs.entity({{"tag"}})`))
	assert.Equal(t, 2, e.Handles())

	id := e.Global("a").(ecs.EntityID)
	require.NoError(t, w.Delete(id))
	assert.Equal(t, 1, e.Prune())
	assert.Equal(t, 1, e.Handles())
}

func TestLoadDirRunsFilesInNameOrder(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "20_b.lua"), []byte(`order = order .. "b"`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "10_a.lua"), []byte(`order = "a"`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte(`not lua`), 0o644))

	e, err := NewEngine(dir, ecs.NewWorld(nil), nil)
	require.NoError(t, err)
	defer e.Close()
	assert.Equal(t, "ab", e.Global("order"))

	assert.NoError(t, e.LoadDir(filepath.Join(dir, "missing")))
}
