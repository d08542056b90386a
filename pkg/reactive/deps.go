package reactive

import (
	"sort"
)

// TriggerKind classifies a write reported to Trigger.
type TriggerKind uint8

const (
	// TriggerSet replaces the value of an existing key.
	TriggerSet TriggerKind = iota

	// TriggerAdd creates a key that did not exist.
	TriggerAdd

	// TriggerDelete removes an existing key.
	TriggerDelete

	// TriggerClear empties a Set or Map. Every subscriber of the target
	// is notified.
	TriggerClear
)

// String returns the lowercase name of the kind.
func (k TriggerKind) String() string {
	switch k {
	case TriggerSet:
		return "set"
	case TriggerAdd:
		return "add"
	case TriggerDelete:
		return "delete"
	case TriggerClear:
		return "clear"
	default:
		return "unknown"
	}
}

// sentinel is a dep-store key that can never collide with a user key.
type sentinel struct {
	name string
}

func (s *sentinel) String() string { return s.name }

var (
	// iterateKey is the pseudo-key subscribed to by whole-container
	// enumeration (keys, size, for-each).
	iterateKey = &sentinel{name: "iterate"}

	// mapKeyIterateKey is subscribed to by Map key enumeration, which does
	// not care about value replacement.
	mapKeyIterateKey = &sentinel{name: "map-key-iterate"}

	// valueKey is the single key tracked on refs and computed values.
	valueKey = &sentinel{name: "value"}
)

// lengthKey is the key sequences use for their length.
const lengthKey = "length"

// dep is the set of effects subscribed to one (target, key) pair.
// Each member carries the sequence number of its subscription so
// notification order follows subscription order.
type dep struct {
	subs map[*Effect]uint64
}

func (d *dep) has(e *Effect) bool {
	_, ok := d.subs[e]
	return ok
}

func (d *dep) remove(e *Effect) {
	delete(d.subs, e)
}

// ordered returns the subscribers in subscription order.
func (d *dep) ordered() []*Effect {
	if d == nil || len(d.subs) == 0 {
		return nil
	}
	out := make([]*Effect, 0, len(d.subs))
	for e := range d.subs {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return d.subs[out[i]] < d.subs[out[j]]
	})
	return out
}

// depStore maps target -> key -> dep. Targets are raw containers, refs and
// computed values; all are pointers so identity is stable.
type depStore struct {
	targets map[any]map[any]*dep
	seq     uint64
}

func newDepStore() *depStore {
	return &depStore{targets: make(map[any]map[any]*dep)}
}

// subscribe adds e to the dep of (target, key) and returns the dep if e
// was not already a member.
func (s *depStore) subscribe(target, key any, e *Effect) *dep {
	keys, ok := s.targets[target]
	if !ok {
		keys = make(map[any]*dep)
		s.targets[target] = keys
	}
	d, ok := keys[key]
	if !ok {
		d = &dep{subs: make(map[*Effect]uint64)}
		keys[key] = d
	}
	if d.has(e) {
		return nil
	}
	s.seq++
	d.subs[e] = s.seq
	return d
}

// keys returns the key map of target, or nil when nothing was tracked.
func (s *depStore) keys(target any) map[any]*dep {
	return s.targets[target]
}

// count returns the number of subscriptions on (target, key).
func (s *depStore) count(target, key any) int {
	d := s.targets[target][key]
	if d == nil {
		return 0
	}
	return len(d.subs)
}

// effectSet is an insertion-ordered set of effects.
type effectSet struct {
	list []*Effect
	seen map[*Effect]struct{}
}

func (s *effectSet) add(e *Effect) {
	if s.seen == nil {
		s.seen = make(map[*Effect]struct{})
	}
	if _, ok := s.seen[e]; ok {
		return
	}
	s.seen[e] = struct{}{}
	s.list = append(s.list, e)
}
