package recorder

import (
	natsgo "github.com/nats-io/nats.go"
	"github.com/pkg/errors"
)

// DefaultNatsSubject is used when no subject is configured.
const DefaultNatsSubject = "pokerbot.rounds"

// NatsRecorder publishes every round record to a subject. It keeps nothing.
type NatsRecorder struct {
	nc      *natsgo.Conn
	subject string
}

func NewNatsRecorder(natsURL string, subject string) (*NatsRecorder, error) {
	nc, err := natsgo.Connect(natsURL)
	if err != nil {
		return nil, errors.Wrapf(err, "Error connecting to NATS server [%s]", natsURL)
	}
	return NewNatsRecorderWithConn(nc, subject), nil
}

// NewNatsRecorderWithConn uses an existing connection. Close drains it.
func NewNatsRecorderWithConn(nc *natsgo.Conn, subject string) *NatsRecorder {
	if subject == "" {
		subject = DefaultNatsSubject
	}
	return &NatsRecorder{
		nc:      nc,
		subject: subject,
	}
}

// Subject returns the subject for records of a session.
func (n *NatsRecorder) Subject(sessionID string) string {
	return n.subject + "." + sessionID
}

func (n *NatsRecorder) Save(record *RoundRecord) error {
	data, err := encodeRecord(record)
	if err != nil {
		return err
	}
	err = n.nc.Publish(n.Subject(record.SessionID), data)
	return errors.Wrap(err, "could not publish round record")
}

func (n *NatsRecorder) Close() error {
	if n.nc == nil {
		return nil
	}
	return n.nc.Drain()
}
