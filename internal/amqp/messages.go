package amqp

import (
	"encoding/json"
	"time"

	"financepro/internal/notify"
)

// AlertMessage is the wire form of a notification alert. The full alert
// travels in the message so the worker can deliver it without a database
// round trip.
type AlertMessage struct {
	Kind      notify.Kind `json:"kind"`
	Title     string      `json:"title"`
	Body      string      `json:"body"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewAlertMessage wraps an alert with the publish timestamp
func NewAlertMessage(a notify.Alert) *AlertMessage {
	return &AlertMessage{
		Kind:      a.Kind,
		Title:     a.Title,
		Body:      a.Body,
		Timestamp: time.Now(),
	}
}

// Alert strips the envelope back down to the domain alert
func (m *AlertMessage) Alert() notify.Alert {
	return notify.Alert{Kind: m.Kind, Title: m.Title, Body: m.Body}
}

// ToJSON converts the message to JSON bytes
func (m *AlertMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// AlertMessageFromJSON creates a message from JSON bytes
func AlertMessageFromJSON(data []byte) (*AlertMessage, error) {
	var msg AlertMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
