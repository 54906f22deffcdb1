package recognizer

import (
	"context"
	"strings"
	"testing"

	"github.com/MalcolmSlaney/GoogleSIN/internal/config"
	"github.com/MalcolmSlaney/GoogleSIN/internal/transcript"
)

func TestModelFeatures(t *testing.T) {
	cases := []struct {
		model       string
		autoPunct   bool
		spokenPunct bool
	}{
		{"default_long", false, false},
		{"chirp", false, false},
		{"medical_conversation", true, false},
		{"medical_dictation", true, true},
	}
	for _, c := range cases {
		autoPunct, spokenPunct := modelFeatures(c.model)
		if autoPunct != c.autoPunct || spokenPunct != c.spokenPunct {
			t.Fatalf("modelFeatures(%q) = %v,%v want %v,%v",
				c.model, autoPunct, spokenPunct, c.autoPunct, c.spokenPunct)
		}
	}
}

func TestNewUnknownMode(t *testing.T) {
	if _, err := New(context.Background(), config.RecognizerConfig{Mode: "whisper"}); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestNewExecRecognizerEmptyCommand(t *testing.T) {
	if _, err := NewExecRecognizer(config.RecognizerConfig{Mode: "exec"}); err == nil {
		t.Fatal("expected error for empty command")
	}
}

func TestExecRecognizer(t *testing.T) {
	cfg := config.RecognizerConfig{
		Mode:    "exec",
		Command: `sh -c 'echo "{\"segments\":[{\"transcript\":\"White silk\",\"words\":[{\"word\":\"White\",\"start\":0.5,\"end\":1},{\"word\":\"silk\",\"start\":1,\"end\":1.5}]}]}"'`,
	}
	rec, err := NewExecRecognizer(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := rec.RecognizeFile(context.Background(), "a.wav")
	if err != nil {
		t.Fatalf("recognize: %v", err)
	}
	words := transcript.Flatten(resp)
	if len(words) != 3 {
		t.Fatalf("expected 2 words + sentinel, got %v", words)
	}
	if words[0].Text != "white" || words[0].Start != 0.5 || words[0].End != 1.0 {
		t.Fatalf("unexpected first word: %+v", words[0])
	}
	if words[2].Text != transcript.Sentinel || words[2].End != 1.5 {
		t.Fatalf("unexpected sentinel: %+v", words[2])
	}
}

func TestExecRecognizerFailure(t *testing.T) {
	rec, err := NewExecRecognizer(config.RecognizerConfig{Mode: "exec", Command: "false"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := rec.RecognizeFile(context.Background(), "a.wav"); err == nil {
		t.Fatal("expected error from failing command")
	}
}

func TestMockRecognizer(t *testing.T) {
	rec := NewMockRecognizer()
	resp, err := rec.RecognizeFile(context.Background(), "/tmp/Babble List 1.wav")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Results) != 1 || len(resp.Results[0].Alternatives) != 1 {
		t.Fatalf("unexpected shape: %+v", resp)
	}
	if !strings.Contains(resp.Results[0].Alternatives[0].Transcript, "Babble List 1.wav") {
		t.Fatalf("expected file name in mock transcript, got %q",
			resp.Results[0].Alternatives[0].Transcript)
	}
}
