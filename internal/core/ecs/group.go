package ecs

// AllKey is the key of the implicit group every live entity belongs to.
const AllKey = "all"

// Group is a cached view: a set of required component names plus the live
// set of entities carrying all of them. The handle stays valid for the
// World's lifetime and always reflects the current membership.
type Group struct {
	key      string
	required []string
	members  *SparseSet[struct{}]
}

func newGroup(key string, required []string) *Group {
	return &Group{
		key:      key,
		required: required,
		members:  NewSparseSet[struct{}](64),
	}
}

func (g *Group) Key() string { return g.key }

// Required returns a copy of the required component names in declaration order.
func (g *Group) Required() []string {
	return append([]string(nil), g.required...)
}

func (g *Group) Len() int { return g.members.Len() }

func (g *Group) Contains(id EntityID) bool { return g.members.Has(id) }

// Each calls fn for every member. It iterates over a copy of the member list
// taken on entry, so fn may attach, detach or delete freely. Members that
// leave the group before their turn are skipped; entities that join during
// the pass are not visited.
func (g *Group) Each(fn func(EntityID)) {
	ids := g.Entities()
	for _, id := range ids {
		if g.members.Has(id) {
			fn(id)
		}
	}
}

// Entities returns a snapshot of the current members.
func (g *Group) Entities() []EntityID {
	return append([]EntityID(nil), g.members.IDs()...)
}

// First returns an arbitrary member, or None when the group is empty.
func (g *Group) First() EntityID {
	ids := g.members.IDs()
	if len(ids) == 0 {
		return None
	}
	return ids[0]
}

func (g *Group) sameRequirements(required []string) bool {
	if len(required) != len(g.required) {
		return false
	}
	for i := range required {
		if required[i] != g.required[i] {
			return false
		}
	}
	return true
}
