// Package relay implements the one-shot native-messaging hand-off to the
// external retrieval engine: the wire message, the length-framed codec, host
// manifest resolution, and the channel that ties them together.
package relay

import (
	"encoding/json"
	"fmt"
)

// Message is the single payload relayed to the external process. It is built
// fresh for every relay attempt and never mutated once constructed.
type Message struct {
	URL string `json:"url"`
}

// NewMessage builds a relay message for the given target URL. The URL is
// carried as-is; the core performs no validation, including empty strings.
func NewMessage(url string) Message {
	return Message{URL: url}
}

// Encode serializes the message to its JSON wire form.
func (m Message) Encode() ([]byte, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to encode relay message; %w", err)
	}
	return data, nil
}

// DecodeMessage parses the JSON wire form back into a Message. Used by the
// host bridge on the receiving side of the channel.
func DecodeMessage(data []byte) (Message, error) {
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return Message{}, fmt.Errorf("failed to decode relay message; %w", err)
	}
	return m, nil
}
