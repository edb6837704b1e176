package scripting

import (
	"strings"
	"time"

	"github.com/l1jgo/ecsreg/internal/core/ecs"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// registerAPI installs the global "ecs" table.
func (e *Engine) registerAPI() {
	mod := e.vm.NewTable()
	e.vm.SetFuncs(mod, map[string]lua.LGFunction{
		"component":     e.luaComponent,
		"entity":        e.luaEntity,
		"attach":        e.luaAttach,
		"detach":        e.luaDetach,
		"delete":        e.luaDelete,
		"destroy_later": e.luaDestroyLater,
		"type":          e.luaType,
		"query":         e.luaQuery,
		"each":          e.luaEach,
		"first":         e.luaFirst,
		"get":           e.luaGet,
		"set":           e.luaSet,
		"has":           e.luaHas,
		"alive":         e.luaAlive,
		"count":         e.luaCount,
		"system":        e.luaSystem,
		"render":        e.luaRender,
		"log":           e.luaLog,
	})
	e.vm.SetGlobal("ecs", mod)
}

// ecs.component(name, defaults)
func (e *Engine) luaComponent(L *lua.LState) int {
	name := L.CheckString(1)
	defaults, err := e.toAttrs(L.Get(2))
	if err != nil {
		L.ArgError(2, err.Error())
	}
	if err := e.world.DefineComponent(name, defaults); err != nil {
		L.RaiseError("%s", err.Error())
	}
	return 0
}

// ecs.entity({{"position", {x = 1}}, {"tag"}}) -> entity
func (e *Engine) luaEntity(L *lua.LState) int {
	var specs []ecs.ComponentSpec
	if list, ok := L.Get(1).(*lua.LTable); ok {
		for i := 1; i <= list.MaxN(); i++ {
			pair, ok := list.RawGetInt(i).(*lua.LTable)
			if !ok {
				L.ArgError(1, "component pairs must be tables")
			}
			name, ok := pair.RawGetInt(1).(lua.LString)
			if !ok {
				L.ArgError(1, "component pair needs a name")
			}
			overrides, err := e.toAttrs(pair.RawGetInt(2))
			if err != nil {
				L.ArgError(1, err.Error())
			}
			specs = append(specs, ecs.ComponentSpec{Name: string(name), Overrides: overrides})
		}
	}
	id, err := e.world.CreateEntity(specs...)
	if err != nil {
		L.RaiseError("%s", err.Error())
	}
	L.Push(e.entityValue(id))
	return 1
}

// ecs.attach(e, {velocity = {dx = 1}, tag = true})
func (e *Engine) luaAttach(L *lua.LState) int {
	id := checkEntity(L, 1)
	tbl := L.CheckTable(2)
	comps := make(map[string]ecs.Attrs)
	var convErr error
	tbl.ForEach(func(k, v lua.LValue) {
		if convErr != nil {
			return
		}
		name, ok := k.(lua.LString)
		if !ok {
			convErr = errNonStringName
			return
		}
		comps[string(name)], convErr = e.toAttrs(v)
	})
	if convErr != nil {
		L.ArgError(2, convErr.Error())
	}
	if err := e.world.Attach(id, comps); err != nil {
		L.RaiseError("%s", err.Error())
	}
	return 0
}

// ecs.detach(e, name, ...) -> one attribute table or nil per name
func (e *Engine) luaDetach(L *lua.LState) int {
	id := checkEntity(L, 1)
	names := make([]string, 0, L.GetTop()-1)
	for i := 2; i <= L.GetTop(); i++ {
		names = append(names, L.CheckString(i))
	}
	removed, err := e.world.Detach(id, names...)
	if err != nil {
		L.RaiseError("%s", err.Error())
	}
	for _, inst := range removed {
		if inst == nil {
			L.Push(lua.LNil)
			continue
		}
		L.Push(e.toLua(inst.Attrs()))
	}
	return len(removed)
}

// ecs.delete(e)
func (e *Engine) luaDelete(L *lua.LState) int {
	id := checkEntity(L, 1)
	if err := e.world.Delete(id); err != nil {
		L.RaiseError("%s", err.Error())
	}
	delete(e.handles, id)
	return 0
}

// ecs.destroy_later(e)
func (e *Engine) luaDestroyLater(L *lua.LState) int {
	e.world.MarkForDestruction(checkEntity(L, 1))
	return 0
}

// ecs.type(name, {"position", "velocity"})
func (e *Engine) luaType(L *lua.LState) int {
	name := L.CheckString(1)
	var comps []string
	if list, ok := L.Get(2).(*lua.LTable); ok {
		for i := 1; i <= list.MaxN(); i++ {
			comps = append(comps, lua.LVAsString(list.RawGetInt(i)))
		}
	}
	if err := e.world.DeclareType(name, comps...); err != nil {
		L.RaiseError("%s", err.Error())
	}
	return 0
}

// ecs.query(spec) -> array of entities (a snapshot)
func (e *Engine) luaQuery(L *lua.LState) int {
	g := e.checkGroup(L, 1)
	ids := g.Entities()
	tbl := L.CreateTable(len(ids), 0)
	for _, id := range ids {
		tbl.Append(e.entityValue(id))
	}
	L.Push(tbl)
	return 1
}

// ecs.each(spec, fn) calls fn(e) for every member; fn may mutate freely.
func (e *Engine) luaEach(L *lua.LState) int {
	g := e.checkGroup(L, 1)
	fn := L.CheckFunction(2)
	g.Each(func(id ecs.EntityID) {
		L.Push(fn)
		L.Push(e.entityValue(id))
		L.Call(1, 0)
	})
	return 0
}

// ecs.first(spec) -> entity or nil
func (e *Engine) luaFirst(L *lua.LState) int {
	g := e.checkGroup(L, 1)
	L.Push(e.entityValue(g.First()))
	return 1
}

// ecs.get(e, name) -> attribute table copy or nil
func (e *Engine) luaGet(L *lua.LState) int {
	id := checkEntity(L, 1)
	name := L.CheckString(2)
	if !e.world.Alive(id) {
		L.RaiseError("get %s: %s", id, ecs.ErrStaleHandle)
	}
	if !e.world.Has(id, name) {
		L.Push(lua.LNil)
		return 1
	}
	inst, err := e.world.Get(id, name)
	if err != nil {
		L.RaiseError("%s", err.Error())
	}
	L.Push(e.toLua(inst.Attrs()))
	return 1
}

// ecs.set(e, name, field, value)
func (e *Engine) luaSet(L *lua.LState) int {
	id := checkEntity(L, 1)
	name := L.CheckString(2)
	field := L.CheckString(3)
	inst, err := e.world.Get(id, name)
	if err != nil {
		L.RaiseError("%s", err.Error())
	}
	if err := inst.Set(field, e.toGo(L.Get(4))); err != nil {
		L.RaiseError("%s", err.Error())
	}
	return 0
}

// ecs.has(e, name) -> bool
func (e *Engine) luaHas(L *lua.LState) int {
	L.Push(lua.LBool(e.world.Has(checkEntity(L, 1), L.CheckString(2))))
	return 1
}

// ecs.alive(e) -> bool
func (e *Engine) luaAlive(L *lua.LState) int {
	L.Push(lua.LBool(e.world.Alive(checkEntity(L, 1))))
	return 1
}

// ecs.count(spec) -> number of members
func (e *Engine) luaCount(L *lua.LState) int {
	L.Push(lua.LNumber(e.checkGroup(L, 1).Len()))
	return 1
}

// ecs.system(name, priority, fn(dt_seconds))
func (e *Engine) luaSystem(L *lua.LState) int {
	name := L.CheckString(1)
	priority := L.CheckInt(2)
	fn := L.CheckFunction(3)
	err := e.world.RegisterUpdateSystem(name, priority, func(dt time.Duration) {
		e.callSystem(name, fn, seconds(dt))
	})
	if err != nil {
		L.RaiseError("%s", err.Error())
	}
	return 0
}

// ecs.render(name, priority, fn)
func (e *Engine) luaRender(L *lua.LState) int {
	name := L.CheckString(1)
	priority := L.CheckInt(2)
	fn := L.CheckFunction(3)
	err := e.world.RegisterRenderSystem(name, priority, func() {
		e.callSystem(name, fn)
	})
	if err != nil {
		L.RaiseError("%s", err.Error())
	}
	return 0
}

// ecs.log(...) writes its arguments, space-joined, to the debug log.
func (e *Engine) luaLog(L *lua.LState) int {
	parts := make([]string, 0, L.GetTop())
	for i := 1; i <= L.GetTop(); i++ {
		parts = append(parts, L.ToStringMeta(L.Get(i)).String())
	}
	e.log.Debug("lua", zap.String("msg", strings.Join(parts, " ")))
	return 0
}

func (e *Engine) checkGroup(L *lua.LState, n int) *ecs.Group {
	g, err := e.world.Query(L.OptString(n, ""))
	if err != nil {
		L.RaiseError("%s", err.Error())
	}
	return g
}
