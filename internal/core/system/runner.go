package system

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrDuplicateSystem = errors.New("duplicate system name")
	ErrUnknownSystem   = errors.New("unknown system")
)

type entry[S Named] struct {
	sys    S
	seq    int
	active bool
}

// Runner keeps an ordered system list. Order is ascending priority; ties keep
// registration order.
type Runner[S Named] struct {
	entries []entry[S]
	seq     int
	sorted  bool
}

func NewRunner[S Named]() *Runner[S] {
	return &Runner[S]{
		entries: make([]entry[S], 0, 16),
	}
}

// Register appends s as an active system. Names must be unique per Runner.
func (r *Runner[S]) Register(s S) error {
	name := s.Name()
	if r.index(name) >= 0 {
		return fmt.Errorf("register %q: %w", name, ErrDuplicateSystem)
	}
	r.entries = append(r.entries, entry[S]{sys: s, seq: r.seq, active: true})
	r.seq++
	r.sorted = false
	return nil
}

// SetActive enables or disables a system. Disabled systems keep their slot.
func (r *Runner[S]) SetActive(name string, active bool) error {
	i := r.index(name)
	if i < 0 {
		return fmt.Errorf("set active %q: %w", name, ErrUnknownSystem)
	}
	r.entries[i].active = active
	return nil
}

// Run calls fn for every active system in order. The pass works on a copy
// of the list: registrations and SetActive calls made while it runs take
// effect from the next pass.
func (r *Runner[S]) Run(fn func(S)) {
	r.ensureSorted()
	entries := append([]entry[S](nil), r.entries...)
	for _, e := range entries {
		if e.active {
			fn(e.sys)
		}
	}
}

// Names returns every system name in execution order, active or not.
func (r *Runner[S]) Names() []string {
	r.ensureSorted()
	out := make([]string, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.sys.Name()
	}
	return out
}

func (r *Runner[S]) Len() int { return len(r.entries) }

func (r *Runner[S]) index(name string) int {
	for i, e := range r.entries {
		if e.sys.Name() == name {
			return i
		}
	}
	return -1
}

func (r *Runner[S]) ensureSorted() {
	if !r.sorted {
		sort.SliceStable(r.entries, func(i, j int) bool {
			a, b := r.entries[i], r.entries[j]
			if a.sys.Priority() != b.sys.Priority() {
				return a.sys.Priority() < b.sys.Priority()
			}
			return a.seq < b.seq
		})
		r.sorted = true
	}
}
