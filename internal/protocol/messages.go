package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
)

// MessageType identifies data-channel payload variants.
type MessageType string

const (
	TypeVoiceChange         MessageType = "voice_change"
	TypeVoiceChangeResponse MessageType = "voice_change_response"
	TypeVoicePreview        MessageType = "voice_preview"
	TypeTestMessage         MessageType = "test_message"
)

var ErrUnsupportedType = errors.New("unsupported message type")

type Envelope struct {
	Type MessageType `json:"type"`
}

// VoiceChange asks the agent to switch to a different catalog voice.
type VoiceChange struct {
	Type    MessageType `json:"type"`
	VoiceID string      `json:"voiceId"`
}

// VoiceChangeResponse confirms or rejects a voice change. CurrentVoice is the
// voice actually in effect after the agent processed the request.
type VoiceChangeResponse struct {
	Type         MessageType `json:"type"`
	Success      bool        `json:"success"`
	CurrentVoice string      `json:"currentVoice"`
	Message      string      `json:"message,omitempty"`
}

// VoicePreview asks the agent to speak a sample line in the given voice.
// Fire-and-forget: no response is defined for it.
type VoicePreview struct {
	Type        MessageType `json:"type"`
	VoiceID     string      `json:"voiceId"`
	PreviewText string      `json:"previewText"`
}

// TestMessage is an informal diagnostic the agent may emit. Observed on the
// wire but carries no contract beyond the message text.
type TestMessage struct {
	Type    MessageType `json:"type"`
	Message string      `json:"message"`
}

// NewVoiceChange builds a voice_change message for the given voice ID.
func NewVoiceChange(voiceID string) VoiceChange {
	return VoiceChange{Type: TypeVoiceChange, VoiceID: voiceID}
}

// NewVoicePreview builds a voice_preview message.
func NewVoicePreview(voiceID, previewText string) VoicePreview {
	return VoicePreview{Type: TypeVoicePreview, VoiceID: voiceID, PreviewText: previewText}
}

// ParseAgentMessage decodes an inbound data-channel payload from the agent.
func ParseAgentMessage(raw []byte) (any, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("invalid envelope: %w", err)
	}

	switch env.Type {
	case TypeVoiceChangeResponse:
		var msg VoiceChangeResponse
		if err := json.Unmarshal(raw, &msg); err != nil {
			return nil, err
		}
		if msg.Success && msg.CurrentVoice == "" {
			return nil, errors.New("invalid voice_change_response: success without currentVoice")
		}
		return msg, nil
	case TypeTestMessage:
		var msg TestMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			return nil, err
		}
		return msg, nil
	default:
		return nil, ErrUnsupportedType
	}
}

// ParseClientMessage decodes an inbound data-channel payload from a client.
// Used by test doubles standing in for the agent side.
func ParseClientMessage(raw []byte) (any, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("invalid envelope: %w", err)
	}

	switch env.Type {
	case TypeVoiceChange:
		var msg VoiceChange
		if err := json.Unmarshal(raw, &msg); err != nil {
			return nil, err
		}
		if msg.VoiceID == "" {
			return nil, errors.New("invalid voice_change: missing voiceId")
		}
		return msg, nil
	case TypeVoicePreview:
		var msg VoicePreview
		if err := json.Unmarshal(raw, &msg); err != nil {
			return nil, err
		}
		if msg.VoiceID == "" {
			return nil, errors.New("invalid voice_preview: missing voiceId")
		}
		return msg, nil
	default:
		return nil, ErrUnsupportedType
	}
}
