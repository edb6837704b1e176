package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/l1jgo/ecsreg/internal/core/ecs"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

const entityTypeName = "ecs.entity"

// Engine wraps a single gopher-lua VM bound to one World. Scripts drive the
// World through the global "ecs" table. Single-goroutine access only.
type Engine struct {
	vm      *lua.LState
	world   *ecs.World
	log     *zap.Logger
	handles map[ecs.EntityID]*lua.LUserData
}

// NewEngine creates a Lua engine bound to w and loads every .lua file in
// scriptsDir in name order. An empty scriptsDir loads nothing.
func NewEngine(scriptsDir string, w *ecs.World, log *zap.Logger) (*Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	// Set API version global
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{
		vm:      vm,
		world:   w,
		log:     log,
		handles: make(map[ecs.EntityID]*lua.LUserData, 256),
	}
	e.registerEntityType()
	e.registerAPI()

	if scriptsDir != "" {
		if err := e.LoadDir(scriptsDir); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load scripts: %w", err)
		}
	}
	return e, nil
}

// Close releases the VM. Lua systems already registered on the World must
// not run afterwards.
func (e *Engine) Close() {
	e.vm.Close()
}

// LoadDir loads all .lua files in a directory. A missing directory is skipped.
func (e *Engine) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// DoString runs a chunk of Lua source.
func (e *Engine) DoString(src string) error {
	return e.vm.DoString(src)
}

// Global returns a global Lua value converted to Go.
func (e *Engine) Global(name string) any {
	return e.toGo(e.vm.GetGlobal(name))
}

// Prune drops cached handles of entities that are no longer alive and
// returns how many were dropped.
func (e *Engine) Prune() int {
	n := 0
	for id := range e.handles {
		if !e.world.Alive(id) {
			delete(e.handles, id)
			n++
		}
	}
	return n
}

// Handles returns the number of cached entity handles.
func (e *Engine) Handles() int { return len(e.handles) }

func (e *Engine) registerEntityType() {
	mt := e.vm.NewTypeMetatable(entityTypeName)
	e.vm.SetField(mt, "__tostring", e.vm.NewFunction(func(L *lua.LState) int {
		id := checkEntity(L, 1)
		L.Push(lua.LString("entity(" + id.String() + ")"))
		return 1
	}))
	e.vm.SetField(mt, "__eq", e.vm.NewFunction(func(L *lua.LState) int {
		a, aok := L.CheckUserData(1).Value.(ecs.EntityID)
		b, bok := L.CheckUserData(2).Value.(ecs.EntityID)
		L.Push(lua.LBool(aok && bok && a == b))
		return 1
	}))
}

// entityValue returns the cached userdata for id, so one entity is always
// the same Lua value and can key tables.
func (e *Engine) entityValue(id ecs.EntityID) lua.LValue {
	if id.IsZero() {
		return lua.LNil
	}
	if ud, ok := e.handles[id]; ok {
		return ud
	}
	ud := e.vm.NewUserData()
	ud.Value = id
	e.vm.SetMetatable(ud, e.vm.GetTypeMetatable(entityTypeName))
	e.handles[id] = ud
	return ud
}

func checkEntity(L *lua.LState, n int) ecs.EntityID {
	ud := L.CheckUserData(n)
	id, ok := ud.Value.(ecs.EntityID)
	if !ok {
		L.ArgError(n, "entity expected")
	}
	return id
}

// callSystem runs a Lua system callback. Errors are logged, not propagated,
// so one failing script does not stop the frame.
func (e *Engine) callSystem(name string, fn *lua.LFunction, args ...lua.LValue) {
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, args...); err != nil {
		e.log.Error("lua system error", zap.String("system", name), zap.Error(err))
	}
}

func seconds(dt time.Duration) lua.LNumber {
	return lua.LNumber(dt.Seconds())
}
