package queue

import (
	"reflect"
	"testing"
)

func TestMessageRoundTrip(t *testing.T) {
	msg := Message{
		DocumentID:   "doc-123",
		UserID:       "google:456",
		RequestID:    "request-789",
		NumQuestions: 5,
		Difficulty:   "medium",
		EnqueuedAt:   "2026-08-30T22:00:00Z",
		Version:      1,
	}

	payload, err := EncodeMessage(msg)
	if err != nil {
		t.Fatalf("encode message: %v", err)
	}

	got, err := DecodeMessage(payload)
	if err != nil {
		t.Fatalf("decode message: %v", err)
	}

	if !reflect.DeepEqual(got, msg) {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, msg)
	}
}

func TestDecodeMessageRejectsInvalidJSON(t *testing.T) {
	if _, err := DecodeMessage([]byte("not-json")); err == nil {
		t.Fatal("expected error for invalid payload")
	}
}
