package models

import "time"

type MessageKind string

const (
	MessageKindInfo  MessageKind = "INFO"
	MessageKindError MessageKind = "ERROR"
)

// Message is one entry of the terminal message log. ID is the
// terminal-side monotonically increasing identifier, Time is already
// normalized to UTC.
type Message struct {
	ID        int64
	Kind      MessageKind
	Time      time.Time
	Text      string
	ErrorType string
}

func (m Message) IsError() bool {
	return m.Kind == MessageKindError
}
