package realtime

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
)

const userSubjectPrefix = "user."

// userSubject is the per-user event subject, e.g. "user.<id>.events".
func userSubject(userID string) string {
	return userSubjectPrefix + userID + ".events"
}

type envelope struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// NATSNotifier publishes user events to NATS so every server instance can
// fan them out, and bridges the incoming subjects back into the local hub.
type NATSNotifier struct {
	conn  *nats.Conn
	local *Hub
	sub   *nats.Subscription
}

// NewNATSNotifier connects to the NATS server at url and starts the bridge
// subscription into local.
func NewNATSNotifier(url string, local *Hub) (*NATSNotifier, error) {
	conn, err := nats.Connect(url,
		nats.Name("taskhive"),
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(-1),
		nats.Timeout(5*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	n := &NATSNotifier{conn: conn, local: local}
	sub, err := conn.Subscribe(userSubjectPrefix+"*.events", n.bridge)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("nats subscribe: %w", err)
	}
	n.sub = sub
	return n, nil
}

// Emit publishes the event to the user's subject. Local delivery happens via
// the bridge like any other instance's.
func (n *NATSNotifier) Emit(userID, event string, payload interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	data, err := json.Marshal(envelope{Event: event, Payload: raw})
	if err != nil {
		return err
	}
	if n.conn.IsClosed() {
		return ErrClosed
	}
	return n.conn.Publish(userSubject(userID), data)
}

func (n *NATSNotifier) bridge(msg *nats.Msg) {
	userID := strings.TrimSuffix(strings.TrimPrefix(msg.Subject, userSubjectPrefix), ".events")
	var env envelope
	if err := json.Unmarshal(msg.Data, &env); err != nil {
		return
	}
	_ = n.local.Emit(userID, env.Event, env.Payload)
}

func (n *NATSNotifier) Close() {
	if n.sub != nil {
		_ = n.sub.Unsubscribe()
	}
	n.conn.Close()
}
