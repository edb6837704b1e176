package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstantiateOverlaysOverrides(t *testing.T) {
	d := newDefinition("position", Attrs{"x": 0, "y": 0})
	inst, err := d.Instantiate(Attrs{"x": 5})
	require.NoError(t, err)
	assert.Equal(t, "position", inst.Name())
	assert.Equal(t, Attrs{"x": 5, "y": 0}, inst.Attrs())
}

func TestInstantiateRejectsUnknownField(t *testing.T) {
	d := newDefinition("position", Attrs{"x": 0, "y": 0})
	_, err := d.Instantiate(Attrs{"z": 1})
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestInstancesDoNotShareNestedState(t *testing.T) {
	d := newDefinition("inventory", Attrs{
		"items": []any{"sword"},
		"meta":  map[string]any{"owner": "nobody"},
	})
	a := d.instantiate(nil)
	b := d.instantiate(nil)

	a.attrs["items"].([]any)[0] = "axe"
	a.attrs["meta"].(map[string]any)["owner"] = "alice"

	assert.Equal(t, "sword", b.Get("items").([]any)[0])
	assert.Equal(t, "nobody", b.Get("meta").(map[string]any)["owner"])
	assert.Equal(t, "sword", d.Defaults()["items"].([]any)[0])
}

func TestDefineCopiesCallerMap(t *testing.T) {
	defaults := Attrs{"x": 0}
	tbl := NewDefinitionTable()
	_, err := tbl.Define("position", defaults)
	require.NoError(t, err)
	defaults["x"] = 99

	d, ok := tbl.Lookup("position")
	require.True(t, ok)
	assert.Equal(t, 0, d.Defaults()["x"])
}

func TestDefineLastWriteWins(t *testing.T) {
	tbl := NewDefinitionTable()
	replaced, err := tbl.Define("hp", Attrs{"value": 10})
	require.NoError(t, err)
	assert.False(t, replaced)

	replaced, err = tbl.Define("hp", Attrs{"value": 20, "max": 20})
	require.NoError(t, err)
	assert.True(t, replaced)

	d, _ := tbl.Lookup("hp")
	assert.Equal(t, []string{"max", "value"}, d.Fields())
	assert.Equal(t, 1, tbl.Count())
}

func TestDefineRejectsUnqueryableNames(t *testing.T) {
	tbl := NewDefinitionTable()
	for _, name := range []string{"", "two words", "tab\there"} {
		_, err := tbl.Define(name, nil)
		assert.ErrorIs(t, err, ErrConfiguration, "name %q", name)
	}
	assert.Equal(t, 0, tbl.Count())
}

func TestInstanceSetChecksFields(t *testing.T) {
	d := newDefinition("position", Attrs{"x": 0, "y": 0})
	inst := d.instantiate(nil)
	require.NoError(t, inst.Set("x", 3))
	assert.Equal(t, 3, inst.Get("x"))
	assert.ErrorIs(t, inst.Set("z", 1), ErrUnknownField)
}
