package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunnerOrdersByPriorityThenRegistration(t *testing.T) {
	r := NewRunner[UpdateSystem]()
	var order []string
	add := func(name string, priority int) {
		require.NoError(t, r.Register(UpdateFunc(name, priority, func(time.Duration) {
			order = append(order, name)
		})))
	}
	add("c", PriorityCleanup)
	add("a1", PriorityUpdate)
	add("input", PriorityInput)
	add("a2", PriorityUpdate)
	add("a3", PriorityUpdate)

	r.Run(func(s UpdateSystem) { s.Update(0) })
	assert.Equal(t, []string{"input", "a1", "a2", "a3", "c"}, order)

	// late registration keeps ties in registration order
	add("a0", PriorityUpdate)
	assert.Equal(t, []string{"input", "a1", "a2", "a3", "a0", "c"}, r.Names())
}

func TestRunnerRejectsDuplicateNames(t *testing.T) {
	r := NewRunner[RenderSystem]()
	require.NoError(t, r.Register(RenderFunc("draw", 0, func() {})))
	err := r.Register(RenderFunc("draw", 1, func() {}))
	assert.ErrorIs(t, err, ErrDuplicateSystem)
	assert.Equal(t, 1, r.Len())
}

func TestRunnerSetActive(t *testing.T) {
	r := NewRunner[RenderSystem]()
	calls := 0
	require.NoError(t, r.Register(RenderFunc("draw", 0, func() { calls++ })))

	require.NoError(t, r.SetActive("draw", false))
	r.Run(func(s RenderSystem) { s.Render() })
	assert.Equal(t, 0, calls)

	require.NoError(t, r.SetActive("draw", true))
	r.Run(func(s RenderSystem) { s.Render() })
	assert.Equal(t, 1, calls)

	assert.ErrorIs(t, r.SetActive("nope", true), ErrUnknownSystem)
}

func TestRunnerRegistrationDuringRunIsDeferred(t *testing.T) {
	r := NewRunner[UpdateSystem]()
	var order []string
	require.NoError(t, r.Register(UpdateFunc("spawner", 0, func(time.Duration) {
		order = append(order, "spawner")
		_ = r.Register(UpdateFunc("spawned", -1, func(time.Duration) {
			order = append(order, "spawned")
		}))
	})))

	r.Run(func(s UpdateSystem) { s.Update(0) })
	assert.Equal(t, []string{"spawner"}, order)

	order = nil
	r.Run(func(s UpdateSystem) { s.Update(0) })
	assert.Equal(t, []string{"spawned", "spawner"}, order)
}

func TestRunnerOrderHoldsWhenNamesReadMidPass(t *testing.T) {
	r := NewRunner[UpdateSystem]()
	var order []string
	require.NoError(t, r.Register(UpdateFunc("a", 10, func(time.Duration) {
		order = append(order, "a")
		_ = r.Register(UpdateFunc("early", 0, func(time.Duration) {
			order = append(order, "early")
		}))
		assert.Equal(t, []string{"early", "a", "b"}, r.Names())
	})))
	require.NoError(t, r.Register(UpdateFunc("b", 20, func(time.Duration) {
		order = append(order, "b")
	})))

	r.Run(func(s UpdateSystem) { s.Update(0) })
	assert.Equal(t, []string{"a", "b"}, order)

	order = nil
	r.Run(func(s UpdateSystem) { s.Update(0) })
	assert.Equal(t, []string{"early", "a", "b"}, order)
}

func TestUpdateFuncPassesDelta(t *testing.T) {
	var got time.Duration
	s := UpdateFunc("tick", 5, func(dt time.Duration) { got = dt })
	assert.Equal(t, "tick", s.Name())
	assert.Equal(t, 5, s.Priority())
	s.Update(20 * time.Millisecond)
	assert.Equal(t, 20*time.Millisecond, got)
}
