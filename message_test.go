package mxit

import (
	"encoding/json"
	"testing"
)

func TestNewMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		recipients []string
		expectedTo string
	}{
		{"single recipient", []string{"m40000001"}, "m40000001"},
		{"multiple recipients joined", []string{"m1", "m2", "m3"}, "m1,m2,m3"},
		{"no recipients", nil, ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			msg := NewMessage("my-app", tt.recipients, "hello")

			if msg.From != "my-app" {
				t.Errorf("expected From=my-app, got %s", msg.From)
			}

			if msg.To != tt.expectedTo {
				t.Errorf("expected To=%s, got %s", tt.expectedTo, msg.To)
			}

			if msg.Body != "hello" {
				t.Errorf("expected Body=hello, got %s", msg.Body)
			}

			if msg.ContainsMarkup {
				t.Error("expected ContainsMarkup=false for a plain-text message")
			}
		})
	}
}

func TestMessage_WireFormat(t *testing.T) {
	t.Parallel()

	msg := &Message{
		From:           "my-app",
		To:             "m1,m2",
		Body:           "hi $there$",
		ContainsMarkup: true,
	}

	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var wire map[string]any
	if err := json.Unmarshal(data, &wire); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	for _, field := range []string{"From", "To", "Body", "ContainsMarkup"} {
		if _, ok := wire[field]; !ok {
			t.Errorf("expected wire field %q to be present, got %s", field, data)
		}
	}

	if wire["To"] != "m1,m2" {
		t.Errorf("expected To=m1,m2 on the wire, got %v", wire["To"])
	}
}
