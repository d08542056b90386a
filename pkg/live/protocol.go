package live

import (
	"encoding/json"

	"github.com/vango-dev/rendr/internal/errors"
	"github.com/vango-dev/rendr/pkg/dom"
)

// Message types.
const (
	TypeFrame = "frame"
	TypeError = "error"
	TypeEvent = "event"
)

// Frame carries the document mutations of one tick.
type Frame struct {
	Type    string         `json:"type"`
	Session string         `json:"session"`
	Seq     int            `json:"seq"`
	Ops     []dom.Mutation `json:"ops"`
}

// ErrorFrame reports a protocol error to the client.
type ErrorFrame struct {
	Type  string        `json:"type"`
	Error *errors.Error `json:"error"`
}

// ClientMessage is a message from the browser.
type ClientMessage struct {
	Type  string  `json:"type"`
	ID    int     `json:"id"`
	Event string  `json:"event"`
	Value *string `json:"value,omitempty"`
	Key   string  `json:"key,omitempty"`
}

// decodeClientMessage parses a client message, rejecting unknown types.
func decodeClientMessage(data []byte) (ClientMessage, error) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return msg, errors.New("E010").Wrap(err)
	}
	if msg.Type != TypeEvent || msg.Event == "" {
		return msg, errors.New("E010").WithDetailf("unsupported message type %q", msg.Type)
	}
	return msg, nil
}
