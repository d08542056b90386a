package dom

import (
	"strings"
)

// Event is dispatched to a node and bubbles to the root.
type Event struct {
	Type string

	// Value carries the input value for input and change events.
	Value string

	// Key carries the key for keyboard events.
	Key string

	Target        *Node
	CurrentTarget *Node

	// Timestamp is taken from the document clock when the event is created.
	Timestamp int64

	stopped bool
}

// StopPropagation prevents the event from reaching further ancestors.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// NewEvent creates an event stamped with the current document time.
func (d *Document) NewEvent(typ string) *Event {
	return &Event{Type: strings.ToLower(typ), Timestamp: d.Now()}
}

// Invoker is the listener attached for an "on" prop. Updating the prop
// swaps Value without detaching the listener.
type Invoker struct {
	// Value is the handler: func(), func(*Event), func(any) or a slice of
	// those.
	Value any

	// Attached is the document time the listener was attached. Events
	// created before it are ignored.
	Attached int64
}

func (d *Document) patchEvent(n *Node, key string, next any) {
	inv := n.invokers[key]
	if next != nil {
		if inv != nil {
			inv.Value = next
			return
		}
		if n.invokers == nil {
			n.invokers = make(map[string]*Invoker)
		}
		n.invokers[key] = &Invoker{Value: next, Attached: d.Now()}
		d.emit(Mutation{Op: OpListen, ID: n.ID, Name: key[2:]})
		return
	}
	if inv != nil {
		delete(n.invokers, key)
		d.emit(Mutation{Op: OpUnlisten, ID: n.ID, Name: key[2:]})
	}
}

// Dispatch delivers ev to target and then to each ancestor, until a
// handler stops propagation. It returns the number of handlers called.
func (d *Document) Dispatch(target *Node, ev *Event) int {
	ev.Target = target
	called := 0
	for n := target; n != nil && !ev.stopped; n = n.Parent {
		inv := n.invokers["on"+ev.Type]
		if inv == nil || ev.Timestamp < inv.Attached {
			continue
		}
		ev.CurrentTarget = n
		called += d.invoke(inv.Value, ev)
	}
	return called
}

func (d *Document) invoke(h any, ev *Event) int {
	switch fn := h.(type) {
	case func():
		fn()
	case func(*Event):
		fn(ev)
	case func(any):
		fn(ev)
	case []any:
		total := 0
		for _, each := range fn {
			total += d.invoke(each, ev)
		}
		return total
	default:
		d.logger.Warn("unsupported event handler",
			"event", ev.Type,
			"node", ev.CurrentTarget.ID)
		return 0
	}
	return 1
}
