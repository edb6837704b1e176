package event

import "github.com/l1jgo/ecsreg/internal/core/ecs"

// Registry change events, emitted by Recorder.

type EntityCreated struct {
	EntityID ecs.EntityID
}

type EntityDeleted struct {
	EntityID ecs.EntityID
}

type MemberJoined struct {
	Group    string
	EntityID ecs.EntityID
}

type MemberLeft struct {
	Group    string
	EntityID ecs.EntityID
}

// Recorder is an ecs.Observer that emits every change onto a Bus.
type Recorder struct {
	bus *Bus
}

var _ ecs.Observer = (*Recorder)(nil)

func NewRecorder(b *Bus) *Recorder {
	return &Recorder{bus: b}
}

func (r *Recorder) EntityCreated(id ecs.EntityID) {
	Emit(r.bus, EntityCreated{EntityID: id})
}

func (r *Recorder) EntityDeleted(id ecs.EntityID) {
	Emit(r.bus, EntityDeleted{EntityID: id})
}

func (r *Recorder) MemberJoined(group string, id ecs.EntityID) {
	Emit(r.bus, MemberJoined{Group: group, EntityID: id})
}

func (r *Recorder) MemberLeft(group string, id ecs.EntityID) {
	Emit(r.bus, MemberLeft{Group: group, EntityID: id})
}
