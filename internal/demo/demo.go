// Package demo holds the components served by `rendr serve`.
package demo

import (
	"context"
	"strings"
	"time"

	"github.com/vango-dev/rendr/pkg/dom"
	"github.com/vango-dev/rendr/pkg/reactive"
	"github.com/vango-dev/rendr/pkg/renderer"
	. "github.com/vango-dev/rendr/pkg/vdom"
)

// Options configures the demo app.
type Options struct {
	// StatsDelay simulates a slow load of the stats panel.
	StatsDelay time.Duration
}

// View returns the root view for a live session.
func View(o Options) func() *VNode {
	stats := renderer.DefineAsync(renderer.AsyncOptions{
		Name:    "StatsLoader",
		Loader:  loadStats(o.StatsDelay),
		Delay:   50 * time.Millisecond,
		Timeout: 5 * time.Second,
		Loading: Functional("StatsLoading", nil, func(Props) *VNode {
			return P(Class("stats", "loading"), Content("Loading stats…"))
		}),
	})

	app := &Component{
		Name: "App",
		Render: func(RenderContext) *VNode {
			return Main(
				H1(Content("rendr")),
				Comp(Counter, Props{"start": 0}),
				Comp(TodoList, Props{"stats": stats}),
			)
		},
	}
	return func() *VNode { return Comp(app) }
}

func loadStats(delay time.Duration) func(ctx context.Context) (*Component, error) {
	return func(ctx context.Context) (*Component, error) {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		return Stats, nil
	}
}

// =============================================================================
// Counter
// =============================================================================

// Counter is a button pair around a count, starting at prop "start".
var Counter = &Component{
	Name:  "Counter",
	Props: []string{"start"},
	Setup: func(ctx SetupContext) func() *VNode {
		start, _ := ctx.Props().Get("start").(int)
		count := reactive.NewRef(ctx.Runtime(), start)

		return func() *VNode {
			return Section(Class("counter"),
				Button(Class("dec"), OnClick(func() { count.Update(func(n int) int { return n - 1 }) }), Content("-")),
				Span(Class("count"), Textf("%d", count.Value())),
				Button(Class("inc"), OnClick(func() { count.Update(func(n int) int { return n + 1 }) }), Content("+")),
			)
		}
	},
}

// =============================================================================
// Todo list
// =============================================================================

// TodoList is a keyed list with add, toggle and remove. Prop "stats" is
// an optional component rendered below the list with props total and done.
var TodoList = &Component{
	Name:  "TodoList",
	Props: []string{"stats"},
	Setup: func(ctx SetupContext) func() *VNode {
		rt := ctx.Runtime()
		items := rt.ReactiveArray(reactive.NewArray())
		draft := reactive.NewRef(rt, "")
		nextID := 0

		done := reactive.Computed(rt, func() int {
			n := 0
			items.ForEach(func(_ int, v any) {
				if v.(*reactive.ObjectProxy).Get("done") == true {
					n++
				}
			})
			return n
		})

		add := func() {
			text := strings.TrimSpace(draft.Peek())
			if text == "" {
				return
			}
			nextID++
			items.Push(reactive.ObjectOf("id", nextID, "text", text, "done", false))
			draft.Set("")
		}
		remove := func(id int) {
			for i, v := range items.Values() {
				if v.(*reactive.ObjectProxy).Get("id") == id {
					items.Splice(i, 1)
					return
				}
			}
		}

		return func() *VNode {
			rows := make([]*reactive.ObjectProxy, 0, items.Len())
			items.ForEach(func(_ int, v any) { rows = append(rows, v.(*reactive.ObjectProxy)) })

			var stats *VNode
			if c, ok := ctx.Props().Get("stats").(*Component); ok && c != nil {
				stats = Comp(c, Props{"total": len(rows), "done": done.Value()})
			}

			return Section(Class("todos"),
				Input(
					Type("text"), Placeholder("What needs doing?"), Value(draft.Value()),
					OnInput(func(e *dom.Event) { draft.Set(e.Value) }),
				),
				Button(Class("add"), Disabled(strings.TrimSpace(draft.Value()) == ""), OnClick(add), Content("Add")),
				Ul(Range(rows, func(_ int, item *reactive.ObjectProxy) (any, *VNode) {
					id := item.Get("id").(int)
					return id, Li(
						Class(map[string]bool{"done": item.Get("done") == true}),
						Span(Class("text"), OnClick(func() { item.Set("done", item.Get("done") != true) }), Content(item.Get("text").(string))),
						Button(Class("remove"), OnClick(func() { remove(id) }), Content("×")),
					)
				})),
				stats,
			)
		}
	},
}

// Stats summarizes the todo list.
var Stats = Functional("Stats", []string{"total", "done"}, func(p Props) *VNode {
	total, _ := p["total"].(int)
	done, _ := p["done"].(int)
	return P(Class("stats"), Textf("%d of %d done", done, total))
})
