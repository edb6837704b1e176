package scripting

import (
	"errors"
	"fmt"

	"github.com/l1jgo/ecsreg/internal/core/ecs"
	lua "github.com/yuin/gopher-lua"
)

var errNonStringName = errors.New("component names must be strings")

// toGo converts a Lua value to its Go form. Tables with only keys 1..n become
// []any, other tables map[string]any. Entity handles become ecs.EntityID.
func (e *Engine) toGo(v lua.LValue) any {
	switch t := v.(type) {
	case *lua.LNilType:
		return nil
	case lua.LBool:
		return bool(t)
	case lua.LNumber:
		return float64(t)
	case lua.LString:
		return string(t)
	case *lua.LUserData:
		if id, ok := t.Value.(ecs.EntityID); ok {
			return id
		}
		return t.Value
	case *lua.LTable:
		if isArray(t) {
			out := make([]any, 0, t.MaxN())
			for i := 1; i <= t.MaxN(); i++ {
				out = append(out, e.toGo(t.RawGetInt(i)))
			}
			return out
		}
		out := make(map[string]any)
		t.ForEach(func(k, val lua.LValue) {
			out[lua.LVAsString(k)] = e.toGo(val)
		})
		return out
	default:
		return v.String()
	}
}

func isArray(t *lua.LTable) bool {
	n := t.MaxN()
	if n == 0 {
		return false
	}
	keys := 0
	t.ForEach(func(_, _ lua.LValue) { keys++ })
	return keys == n
}

// toAttrs converts an overrides table. nil or an empty table yields nil.
func (e *Engine) toAttrs(v lua.LValue) (ecs.Attrs, error) {
	switch t := v.(type) {
	case *lua.LNilType:
		return nil, nil
	case lua.LBool:
		// attach(e, {tag = true}) attaches with no overrides
		return nil, nil
	case *lua.LTable:
		var out ecs.Attrs
		var err error
		t.ForEach(func(k, val lua.LValue) {
			ks, ok := k.(lua.LString)
			if !ok {
				err = fmt.Errorf("attribute key %s is not a string", k.String())
				return
			}
			if out == nil {
				out = make(ecs.Attrs)
			}
			out[string(ks)] = e.toGo(val)
		})
		return out, err
	default:
		return nil, fmt.Errorf("attributes must be a table, got %s", v.Type().String())
	}
}

// toLua converts a Go value to Lua.
func (e *Engine) toLua(v any) lua.LValue {
	switch t := v.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(t)
	case string:
		return lua.LString(t)
	case int:
		return lua.LNumber(t)
	case int32:
		return lua.LNumber(t)
	case int64:
		return lua.LNumber(t)
	case uint32:
		return lua.LNumber(t)
	case uint64:
		return lua.LNumber(t)
	case float32:
		return lua.LNumber(t)
	case float64:
		return lua.LNumber(t)
	case ecs.EntityID:
		return e.entityValue(t)
	case ecs.Attrs:
		return e.mapToTable(t)
	case map[string]any:
		return e.mapToTable(t)
	case []any:
		tbl := e.vm.NewTable()
		for _, item := range t {
			tbl.Append(e.toLua(item))
		}
		return tbl
	default:
		return lua.LString(fmt.Sprint(v))
	}
}

func (e *Engine) mapToTable(m map[string]any) *lua.LTable {
	tbl := e.vm.CreateTable(0, len(m))
	for k, v := range m {
		tbl.RawSetString(k, e.toLua(v))
	}
	return tbl
}
