package dom

import (
	"github.com/vango-dev/rendr/pkg/reactive"
	"github.com/vango-dev/rendr/pkg/renderer"
	"github.com/vango-dev/rendr/pkg/vdom"
)

// RenderString mounts v into a fresh document on its own runtime, runs
// pending hooks and jobs, and returns the HTML of the mounted tree.
func RenderString(v *vdom.VNode, opts ...renderer.Option) string {
	rt := reactive.New()
	d := NewDocument()
	r := renderer.New(rt, d.Host(), opts...)
	r.Render(v, d.Body())
	rt.Tick()
	return InnerHTML(d.Body())
}
