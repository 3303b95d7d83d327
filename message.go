package mxit

import "strings"

// Message is the outbound message payload accepted by the send endpoint.
// Field names follow the wire format expected by the messaging API; To holds
// one or more recipient ids joined with commas.
type Message struct {
	From           string `json:"From"`
	To             string `json:"To"`
	Body           string `json:"Body"`
	ContainsMarkup bool   `json:"ContainsMarkup"`
}

// NewMessage builds a plain-text Message from a sender id, one or more
// recipient ids and a body.
func NewMessage(from string, to []string, body string) *Message {
	return &Message{
		From: from,
		To:   strings.Join(to, ","),
		Body: body,
	}
}
