// Package live serves a rendr view to browsers over a WebSocket.
//
// Each connection gets its own session: a reactive runtime, an in-memory
// document and a renderer. The session mounts the view into the document
// and streams every document mutation to the browser as JSON frames. The
// embedded client replays the frames onto the real DOM and sends DOM
// events back, which the session dispatches to the in-memory nodes.
//
//	srv := live.NewServer(func() *vdom.VNode {
//	    return vdom.Comp(Counter)
//	}, live.DefaultConfig())
//	srv.Run(ctx)
//
// # Routes
//
//   - GET /         the host page with the embedded client
//   - GET /ws       the session WebSocket
//   - GET /healthz  liveness probe
//   - GET /metrics  Prometheus metrics (path configurable)
//
// # Protocol
//
// Server frames:
//
//	{"type":"frame","session":"…","seq":1,"ops":[{"op":"create_element","id":2,"tag":"p"}, …]}
//	{"type":"error","error":{"code":"E011","message":"Unknown node", …}}
//
// Client messages:
//
//	{"type":"event","id":5,"event":"click"}
//	{"type":"event","id":7,"event":"input","value":"hello"}
package live
