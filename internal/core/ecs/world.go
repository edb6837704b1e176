package ecs

import (
	"fmt"
	"time"

	"github.com/l1jgo/ecsreg/internal/core/system"
	"go.uber.org/zap"
)

// ComponentSpec names one component and its overrides for CreateEntity.
type ComponentSpec struct {
	Name      string
	Overrides Attrs
}

// World is the top-level ECS container. It owns the component definitions,
// the entity pool, the component stores, every group, the update and render
// system lists, and a deferred destruction queue.
//
// World is not safe for concurrent use; one goroutine drives it.
type World struct {
	defs     *DefinitionTable
	pool     *EntityPool
	registry *Registry

	all    *Group
	groups map[string]*Group
	order  []*Group // creation order, all first

	updates *system.Runner[system.UpdateSystem]
	renders *system.Runner[system.RenderSystem]

	destroyQueue []EntityID
	observer     Observer
	log          *zap.Logger
}

// NewWorld creates an empty World. A nil logger disables logging.
func NewWorld(log *zap.Logger) *World {
	if log == nil {
		log = zap.NewNop()
	}
	w := &World{
		defs:         NewDefinitionTable(),
		pool:         NewEntityPool(),
		registry:     NewRegistry(),
		groups:       make(map[string]*Group, 16),
		updates:      system.NewRunner[system.UpdateSystem](),
		renders:      system.NewRunner[system.RenderSystem](),
		destroyQueue: make([]EntityID, 0, 64),
		log:          log,
	}
	w.all = newGroup(AllKey, nil)
	w.groups[AllKey] = w.all
	w.order = append(w.order, w.all)
	return w
}

// Definitions returns the component definition table.
func (w *World) Definitions() *DefinitionTable { return w.defs }

// SetObserver installs o as the change observer. Pass nil to remove it.
func (w *World) SetObserver(o Observer) { w.observer = o }

// DefineComponent installs or replaces the default template for name.
// Existing instances keep the attributes they were built with.
func (w *World) DefineComponent(name string, defaults Attrs) error {
	replaced, err := w.defs.Define(name, defaults)
	if err != nil {
		return err
	}
	if replaced {
		w.log.Debug("component redefined", zap.String("component", name))
	}
	return nil
}

// CreateEntity allocates an entity and attaches initial in order. A repeated
// name replaces the earlier one. If any spec is invalid nothing is created.
func (w *World) CreateEntity(initial ...ComponentSpec) (EntityID, error) {
	defs := make([]*Definition, len(initial))
	for i, spec := range initial {
		d, err := w.resolve(spec.Name, spec.Overrides)
		if err != nil {
			return None, fmt.Errorf("create entity: %w", err)
		}
		defs[i] = d
	}

	id := w.pool.Create()
	for i, spec := range initial {
		w.registry.Store(spec.Name).Set(id, defs[i].instantiate(spec.Overrides))
	}
	if w.observer != nil {
		w.observer.EntityCreated(id)
	}
	w.refresh(id)
	return id, nil
}

// Attach installs every named component on id, replacing existing instances.
// The batch is validated up front: on error no component and no group changes.
func (w *World) Attach(id EntityID, comps map[string]Attrs) error {
	if !w.pool.Alive(id) {
		return fmt.Errorf("attach %s: %w", id, ErrStaleHandle)
	}
	defs := make(map[string]*Definition, len(comps))
	for name, overrides := range comps {
		d, err := w.resolve(name, overrides)
		if err != nil {
			return fmt.Errorf("attach %s: %w", id, err)
		}
		defs[name] = d
	}
	for name, overrides := range comps {
		w.registry.Store(name).Set(id, defs[name].instantiate(overrides))
	}
	w.refresh(id)
	return nil
}

// AttachOne is Attach for a single component.
func (w *World) AttachOne(id EntityID, name string, overrides Attrs) error {
	return w.Attach(id, map[string]Attrs{name: overrides})
}

// Detach removes the named components from id and returns the removed
// instances, position-aligned with names; absent components yield nil.
func (w *World) Detach(id EntityID, names ...string) ([]*Instance, error) {
	if !w.pool.Alive(id) {
		return nil, fmt.Errorf("detach %s: %w", id, ErrStaleHandle)
	}
	out := make([]*Instance, len(names))
	changed := false
	for i, name := range names {
		s, ok := w.registry.Lookup(name)
		if !ok {
			continue
		}
		if inst, ok := s.Remove(id); ok {
			out[i] = inst
			changed = true
		}
	}
	if changed {
		w.refresh(id)
	}
	return out, nil
}

// Delete strips every component from id and invalidates the handle. The
// entity leaves every group, including all.
func (w *World) Delete(id EntityID) error {
	if !w.pool.Alive(id) {
		return fmt.Errorf("delete %s: %w", id, ErrStaleHandle)
	}
	w.registry.RemoveAll(id)
	w.pool.Destroy(id)
	w.refresh(id)
	if w.observer != nil {
		w.observer.EntityDeleted(id)
	}
	return nil
}

// MarkForDestruction queues an entity for deletion on the next flush.
func (w *World) MarkForDestruction(id EntityID) {
	w.destroyQueue = append(w.destroyQueue, id)
}

// FlushDestroyQueue deletes all queued entities still alive and clears the
// queue. It returns the number deleted.
func (w *World) FlushDestroyQueue() int {
	n := 0
	for _, id := range w.destroyQueue {
		if w.pool.Alive(id) {
			_ = w.Delete(id)
			n++
		}
	}
	w.destroyQueue = w.destroyQueue[:0]
	return n
}

// Alive reports whether id is a live handle.
func (w *World) Alive(id EntityID) bool {
	return w.pool.Alive(id)
}

// Len returns the number of live entities.
func (w *World) Len() int { return w.pool.Len() }

// Has reports whether id carries the named component.
func (w *World) Has(id EntityID, name string) bool {
	return w.pool.Alive(id) && w.registry.Has(id, name)
}

// Get returns id's instance of the named component. The instance is live:
// Set on it is visible to later readers.
func (w *World) Get(id EntityID, name string) (*Instance, error) {
	if !w.pool.Alive(id) {
		return nil, fmt.Errorf("get %s: %w", id, ErrStaleHandle)
	}
	s, ok := w.registry.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("get %s.%s: %w", id, name, ErrComponentNotFound)
	}
	inst, ok := s.Get(id)
	if !ok {
		return nil, fmt.Errorf("get %s.%s: %w", id, name, ErrComponentNotFound)
	}
	return inst, nil
}

// Components returns the sorted names of the components id carries.
func (w *World) Components(id EntityID) ([]string, error) {
	if !w.pool.Alive(id) {
		return nil, fmt.Errorf("components %s: %w", id, ErrStaleHandle)
	}
	return w.registry.Attached(id), nil
}

func (w *World) resolve(name string, overrides Attrs) (*Definition, error) {
	d, ok := w.defs.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrComponentNotFound)
	}
	if err := d.validate(overrides); err != nil {
		return nil, err
	}
	return d, nil
}

// RegisterUpdateSystem adds a callback to the update pass.
func (w *World) RegisterUpdateSystem(name string, priority int, fn func(dt time.Duration)) error {
	return w.AddUpdateSystem(system.UpdateFunc(name, priority, fn))
}

// RegisterRenderSystem adds a callback to the render pass.
func (w *World) RegisterRenderSystem(name string, priority int, fn func()) error {
	return w.AddRenderSystem(system.RenderFunc(name, priority, fn))
}

func (w *World) AddUpdateSystem(s system.UpdateSystem) error {
	return w.updates.Register(s)
}

func (w *World) AddRenderSystem(s system.RenderSystem) error {
	return w.renders.Register(s)
}

func (w *World) SetUpdateSystemActive(name string, active bool) error {
	return w.updates.SetActive(name, active)
}

func (w *World) SetRenderSystemActive(name string, active bool) error {
	return w.renders.SetActive(name, active)
}

// UpdateSystems returns update system names in execution order.
func (w *World) UpdateSystems() []string { return w.updates.Names() }

// RenderSystems returns render system names in execution order.
func (w *World) RenderSystems() []string { return w.renders.Names() }

// RunUpdate invokes every active update system in order.
func (w *World) RunUpdate(dt time.Duration) {
	w.updates.Run(func(s system.UpdateSystem) { s.Update(dt) })
}

// RunRender invokes every active render system in order.
func (w *World) RunRender() {
	w.renders.Run(func(s system.RenderSystem) { s.Render() })
}
