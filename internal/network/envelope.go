package network

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/leighmacdonald/board-tui/internal/bus"
	"github.com/leighmacdonald/board-tui/internal/network/encoding"
)

var (
	ErrUnknownType = errors.New("unknown message type")
	ErrDecode      = errors.New("failed to decode message")
)

// Envelope is the frame exchanged with the server in both directions. Type holds either the
// command name (outbound) or the bus topic (inbound).
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func NewEnvelope(command string, payload any) (Envelope, error) {
	body, err := encoding.MarshalJSON(payload)
	if err != nil {
		return Envelope{}, err
	}

	return Envelope{Type: command, Payload: body}, nil
}

// DecodeMessage turns a raw frame into the typed bus message for its topic.
func DecodeMessage(data []byte) (bus.Message, error) {
	envelope, errEnvelope := encoding.UnmarshalJSON[Envelope](bytes.NewReader(data))
	if errEnvelope != nil {
		return nil, errors.Join(errEnvelope, ErrDecode)
	}

	switch bus.Topic(envelope.Type) {
	case bus.TopicBoard:
		return decodePayload[bus.CellUpdate](envelope)
	case bus.TopicBoardSet:
		return decodePayload[bus.BoardSet](envelope)
	case bus.TopicScoreSheetCell:
		return decodePayload[bus.ScoreSheetCell](envelope)
	case bus.TopicScoreSheet:
		return decodePayload[bus.ScoreSheet](envelope)
	case bus.TopicFatalError:
		return decodePayload[bus.FatalError](envelope)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, envelope.Type)
	}
}

func decodePayload[T bus.Message](envelope Envelope) (bus.Message, error) {
	if len(envelope.Payload) == 0 {
		return nil, fmt.Errorf("%w: %s has no payload", ErrDecode, envelope.Type)
	}

	value, err := encoding.UnmarshalJSON[T](bytes.NewReader(envelope.Payload))
	if err != nil {
		return nil, errors.Join(err, ErrDecode)
	}

	return value, nil
}
