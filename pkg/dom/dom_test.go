package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertAndMove(t *testing.T) {
	d := NewDocument()
	body := d.Body()

	a := d.CreateText("a")
	b := d.CreateText("b")
	c := d.CreateText("c")
	d.Insert(a, body, nil)
	d.Insert(c, body, nil)
	d.Insert(b, body, c)
	assert.Equal(t, "abc", body.TextContent())

	// Moving an attached node detaches it first.
	d.Insert(c, body, a)
	assert.Equal(t, "cab", body.TextContent())
	assert.Same(t, a, d.NextSibling(c))
	assert.Nil(t, d.NextSibling(b))

	d.Remove(a)
	assert.Equal(t, "cb", body.TextContent())
	assert.Nil(t, a.Parent)
	_, ok := d.NodeByID(a.ID)
	assert.False(t, ok)
}

func TestInsertForeignAnchorPanics(t *testing.T) {
	d := NewDocument()
	div := d.CreateElement("div")
	stray := d.CreateText("x")
	assert.Panics(t, func() { d.Insert(d.CreateText("y"), div, stray) })
}

func TestSetElementText(t *testing.T) {
	d := NewDocument()
	ul := d.CreateElement("ul")
	li := d.CreateElement("li")
	d.Insert(li, ul, nil)

	d.SetElementText(ul, "empty")
	require.Len(t, ul.Children, 1)
	assert.Equal(t, "empty", ul.TextContent())
	assert.Nil(t, li.Parent)

	d.SetElementText(ul, "")
	assert.Empty(t, ul.Children)
}

func TestHostNextSiblingIsUntypedNil(t *testing.T) {
	d := NewDocument()
	h := d.Host()
	n := h.CreateText("only")
	h.Insert(n, d.Body(), nil)
	assert.True(t, h.NextSibling(n) == nil)
}

func TestPatchPropClassification(t *testing.T) {
	d := NewDocument()

	input := d.CreateElement("input")
	d.PatchProp(input, "value", nil, "hi")
	d.PatchProp(input, "disabled", nil, "")
	d.PatchProp(input, "form", nil, "signup")
	d.PatchProp(input, "class", nil, []any{"a", map[string]bool{"b": true, "c": false}})
	d.PatchProp(input, "data-id", nil, 7)

	assert.Equal(t, "hi", input.Prop("value"))
	assert.Equal(t, true, input.Prop("disabled"))
	assert.Nil(t, input.Prop("form"))
	form, ok := input.Attr("form")
	assert.True(t, ok)
	assert.Equal(t, "signup", form)
	assert.Equal(t, "a b", input.ClassName)
	id, _ := input.Attr("data-id")
	assert.Equal(t, "7", id)

	d.PatchProp(input, "disabled", "", false)
	assert.Equal(t, false, input.Prop("disabled"))

	d.PatchProp(input, "data-id", 7, nil)
	_, ok = input.Attr("data-id")
	assert.False(t, ok)

	// form is a plain attribute on elements other than input.
	button := d.CreateElement("button")
	d.PatchProp(button, "form", nil, "signup")
	_, ok = button.Attr("form")
	assert.True(t, ok)
}

func TestInvokerSwapKeepsListener(t *testing.T) {
	d := NewDocument()
	btn := d.CreateElement("button")
	d.Insert(btn, d.Body(), nil)

	var got []string
	d.PatchProp(btn, "onClick", nil, func() { got = append(got, "first") })
	inv := btn.Invoker("onclick")
	require.NotNil(t, inv)

	d.PatchProp(btn, "onClick", nil, func() { got = append(got, "second") })
	assert.Same(t, inv, btn.Invoker("onclick"))

	d.Dispatch(btn, d.NewEvent("click"))
	assert.Equal(t, []string{"second"}, got)

	d.PatchProp(btn, "onClick", nil, nil)
	assert.Equal(t, 0, d.Dispatch(btn, d.NewEvent("click")))
	assert.Empty(t, btn.Listeners())
}

func TestDispatchBubbles(t *testing.T) {
	d := NewDocument()
	outer := d.CreateElement("div")
	inner := d.CreateElement("span")
	d.Insert(outer, d.Body(), nil)
	d.Insert(inner, outer, nil)

	var order []int
	d.PatchProp(outer, "onclick", nil, func(e *Event) {
		order = append(order, e.CurrentTarget.ID)
		assert.Same(t, inner, e.Target)
	})
	d.PatchProp(inner, "onclick", nil, []any{
		func() { order = append(order, -1) },
		func(e *Event) { order = append(order, e.CurrentTarget.ID) },
	})

	n := d.Dispatch(inner, d.NewEvent("click"))
	assert.Equal(t, 3, n)
	assert.Equal(t, []int{-1, inner.ID, outer.ID}, order)
}

func TestStopPropagation(t *testing.T) {
	d := NewDocument()
	outer := d.CreateElement("div")
	inner := d.CreateElement("span")
	d.Insert(inner, outer, nil)

	outerCalled := false
	d.PatchProp(outer, "onclick", nil, func() { outerCalled = true })
	d.PatchProp(inner, "onclick", nil, func(e *Event) { e.StopPropagation() })

	d.Dispatch(inner, d.NewEvent("click"))
	assert.False(t, outerCalled)
}

func TestHandlerAttachedDuringDispatchIsSkipped(t *testing.T) {
	d := NewDocument()
	outer := d.CreateElement("div")
	inner := d.CreateElement("span")
	d.Insert(inner, outer, nil)

	outerCalled := false
	d.PatchProp(inner, "onclick", nil, func() {
		d.PatchProp(outer, "onclick", nil, func() { outerCalled = true })
	})

	d.Dispatch(inner, d.NewEvent("click"))
	assert.False(t, outerCalled, "listener bound after the event was created must not run")

	d.Dispatch(inner, d.NewEvent("click"))
	assert.True(t, outerCalled)
}

func TestObserver(t *testing.T) {
	var ops []MutationOp
	d := NewDocument(WithObserver(func(m Mutation) { ops = append(ops, m.Op) }))

	p := d.CreateElement("p")
	d.PatchProp(p, "title", nil, "t")
	d.PatchProp(p, "onclick", nil, func() {})
	d.Insert(p, d.Body(), nil)
	d.Remove(p)

	assert.Equal(t, []MutationOp{OpCreateElement, OpSetProp, OpListen, OpInsert, OpRemove}, ops)

	d.Observe(nil)
	d.CreateText("quiet")
	assert.Len(t, ops, 5)
}

func TestHTML(t *testing.T) {
	d := NewDocument()
	div := d.CreateElement("div")
	d.PatchProp(div, "class", nil, "box")
	d.PatchProp(div, "data-x", nil, `a"b`)
	d.PatchProp(div, "onclick", nil, func() {})

	input := d.CreateElement("input")
	d.PatchProp(input, "checked", nil, true)
	d.PatchProp(input, "value", nil, "v")
	d.PatchProp(input, "disabled", nil, false)

	d.Insert(d.CreateText("1 < 2 & 3"), div, nil)
	d.Insert(input, div, nil)
	d.Insert(div, d.Body(), nil)

	want := `<div class="box" data-x="a&quot;b">1 &lt; 2 &amp; 3<input checked value="v"></div>`
	assert.Equal(t, want, InnerHTML(d.Body()))
	assert.Equal(t, "<body>"+want+"</body>", HTML(d.Body()))
}

func TestFind(t *testing.T) {
	d := NewDocument()
	ul := d.CreateElement("ul")
	d.Insert(ul, d.Body(), nil)
	for _, s := range []string{"a", "b"} {
		li := d.CreateElement("li")
		d.SetElementText(li, s)
		d.Insert(li, ul, nil)
	}

	assert.Same(t, ul, d.Body().Find("ul"))
	assert.Len(t, d.Body().FindAll("li"), 2)
	assert.Nil(t, d.Body().Find("table"))
}
