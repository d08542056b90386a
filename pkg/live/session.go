package live

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vango-dev/rendr/internal/errors"
	"github.com/vango-dev/rendr/pkg/dom"
	"github.com/vango-dev/rendr/pkg/reactive"
	"github.com/vango-dev/rendr/pkg/renderer"
	"github.com/vango-dev/rendr/pkg/vdom"
)

// Session is one connected client. All of its state is owned by the
// goroutine running Serve; the read loop only posts to the runtime.
type Session struct {
	ID string

	conn   *websocket.Conn
	config Config
	logger *slog.Logger

	rt       *reactive.Runtime
	doc      *dom.Document
	renderer *renderer.Renderer

	pending []dom.Mutation
	seq     int
}

func newSession(conn *websocket.Conn, config Config) *Session {
	id := uuid.NewString()
	logger := config.Logger.With("session_id", id)

	opts := []reactive.Option{
		reactive.WithLogger(logger),
		reactive.WithMetrics(config.Metrics),
		reactive.WithTracer(config.Tracer),
	}
	if config.OwnerCheck {
		opts = append(opts, reactive.WithOwnerCheck())
	}

	s := &Session{
		ID:     id,
		conn:   conn,
		config: config,
		logger: logger,
		rt:     reactive.New(opts...),
	}
	s.doc = dom.NewDocument(
		dom.WithLogger(logger),
		dom.WithObserver(func(m dom.Mutation) { s.pending = append(s.pending, m) }),
	)
	s.renderer = renderer.New(s.rt, s.doc.Host(),
		renderer.WithLogger(logger),
		renderer.WithMetrics(config.Metrics),
		renderer.WithTracer(config.Tracer),
		renderer.WithErrorHandler(s.reportError),
	)
	return s
}

// Serve mounts view and runs the session until ctx is done or the client
// disconnects.
func (s *Session) Serve(ctx context.Context, view func() *vdom.VNode) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.conn.SetReadLimit(s.config.ReadLimit)
	go s.readLoop(ctx, cancel)

	s.renderer.Render(view(), s.doc.Body())
	s.rt.Tick()
	if err := s.flush(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			s.renderer.Render(nil, s.doc.Body())
			return nil
		case <-s.rt.Wake():
			s.rt.Tick()
			if err := s.flush(); err != nil {
				return err
			}
		}
	}
}

// readLoop decodes client messages and posts them to the runtime.
func (s *Session) readLoop(ctx context.Context, cancel context.CancelFunc) {
	defer cancel()
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("websocket read failed", "error", err)
			}
			return
		}
		if ctx.Err() != nil {
			return
		}

		msg, err := decodeClientMessage(data)
		if err != nil {
			s.rt.Post(func() { s.reportError(err) })
			continue
		}
		s.rt.Post(func() { s.handleEvent(msg) })
	}
}

func (s *Session) handleEvent(msg ClientMessage) {
	node, ok := s.doc.NodeByID(msg.ID)
	if !ok {
		s.reportError(errors.New("E011").WithDetailf("node %d", msg.ID))
		return
	}

	ev := s.doc.NewEvent(msg.Event)
	ev.Key = msg.Key
	if msg.Value != nil {
		// The browser already shows the value; keep the document in sync
		// without echoing a mutation.
		node.Props["value"] = *msg.Value
		ev.Value = *msg.Value
	}
	n := s.doc.Dispatch(node, ev)
	s.logger.Debug("event dispatched",
		"event", msg.Event,
		"node", msg.ID,
		"handlers", n)
}

// reportError logs err and sends it to the client.
func (s *Session) reportError(err error) {
	coded := errors.FromError(err, "E001")
	s.logger.Warn("session error", "error", coded.FormatCompact())
	s.write(ErrorFrame{Type: TypeError, Error: coded})
}

// flush sends the mutations collected since the last flush as one frame.
func (s *Session) flush() error {
	if len(s.pending) == 0 {
		return nil
	}
	s.seq++
	frame := Frame{Type: TypeFrame, Session: s.ID, Seq: s.seq, Ops: s.pending}
	s.pending = nil
	if err := s.write(frame); err != nil {
		return err
	}
	s.config.Metrics.FrameSent()
	return nil
}

func (s *Session) write(v any) error {
	s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	if err := s.conn.WriteJSON(v); err != nil {
		s.logger.Warn("websocket write failed", "error", err)
		return err
	}
	return nil
}
