package ecs

// Observer receives registry change notifications. Calls happen synchronously
// inside the mutating operation; implementations must not mutate the World.
type Observer interface {
	EntityCreated(id EntityID)
	EntityDeleted(id EntityID)
	MemberJoined(group string, id EntityID)
	MemberLeft(group string, id EntityID)
}

// refresh recomputes membership of id in every group and applies the delta.
// It runs once per mutating call, after the component set has settled.
func (w *World) refresh(id EntityID) {
	alive := w.pool.Alive(id)
	for _, g := range w.order {
		w.apply(g, id, alive && w.registry.HasAll(id, g.required))
	}
}

// seed fills a new group with one scan of the live population.
func (w *World) seed(g *Group) {
	for _, id := range w.all.members.IDs() {
		if w.registry.HasAll(id, g.required) {
			w.apply(g, id, true)
		}
	}
}

func (w *World) apply(g *Group, id EntityID, match bool) {
	in := g.members.Has(id)
	switch {
	case match && !in:
		g.members.Set(id, struct{}{})
		if w.observer != nil {
			w.observer.MemberJoined(g.key, id)
		}
	case !match && in:
		g.members.Remove(id)
		if w.observer != nil {
			w.observer.MemberLeft(g.key, id)
		}
	}
}
