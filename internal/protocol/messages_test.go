package protocol

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseAgentMessageVoiceChangeResponse(t *testing.T) {
	raw := []byte(`{"type":"voice_change_response","success":true,"currentVoice":"stella"}`)
	parsed, err := ParseAgentMessage(raw)
	if err != nil {
		t.Fatalf("ParseAgentMessage() error = %v", err)
	}
	msg, ok := parsed.(VoiceChangeResponse)
	if !ok {
		t.Fatalf("parsed type = %T, want VoiceChangeResponse", parsed)
	}
	if !msg.Success || msg.CurrentVoice != "stella" {
		t.Fatalf("unexpected message: %+v", msg)
	}
}

func TestParseAgentMessageRejectsSuccessWithoutVoice(t *testing.T) {
	raw := []byte(`{"type":"voice_change_response","success":true}`)
	if _, err := ParseAgentMessage(raw); err == nil {
		t.Fatalf("expected error for success without currentVoice")
	}
}

func TestParseAgentMessageTestMessage(t *testing.T) {
	raw := []byte(`{"type":"test_message","message":"agent online"}`)
	parsed, err := ParseAgentMessage(raw)
	if err != nil {
		t.Fatalf("ParseAgentMessage() error = %v", err)
	}
	msg, ok := parsed.(TestMessage)
	if !ok {
		t.Fatalf("parsed type = %T, want TestMessage", parsed)
	}
	if msg.Message != "agent online" {
		t.Fatalf("message = %q", msg.Message)
	}
}

func TestParseAgentMessageUnsupportedType(t *testing.T) {
	raw := []byte(`{"type":"voice_change","voiceId":"luna"}`)
	if _, err := ParseAgentMessage(raw); !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("error = %v, want ErrUnsupportedType", err)
	}
}

func TestParseAgentMessageMalformed(t *testing.T) {
	if _, err := ParseAgentMessage([]byte(`{"type":"voice_change_resp`)); err == nil {
		t.Fatalf("expected error for truncated payload")
	}
}

func TestParseClientMessageVoiceChange(t *testing.T) {
	raw, _ := json.Marshal(NewVoiceChange("athena"))
	parsed, err := ParseClientMessage(raw)
	if err != nil {
		t.Fatalf("ParseClientMessage() error = %v", err)
	}
	msg, ok := parsed.(VoiceChange)
	if !ok {
		t.Fatalf("parsed type = %T, want VoiceChange", parsed)
	}
	if msg.VoiceID != "athena" {
		t.Fatalf("voiceId = %q", msg.VoiceID)
	}
}

func TestParseClientMessageVoicePreviewRequiresID(t *testing.T) {
	raw := []byte(`{"type":"voice_preview","previewText":"hello"}`)
	if _, err := ParseClientMessage(raw); err == nil {
		t.Fatalf("expected error for missing voiceId")
	}
}
