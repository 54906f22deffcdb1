package recognizer

import (
	"context"
	"fmt"

	"github.com/MalcolmSlaney/GoogleSIN/internal/config"
	"github.com/MalcolmSlaney/GoogleSIN/internal/transcript"
)

// Recognizer turns an audio file into a word-timed transcript response.
type Recognizer interface {
	RecognizeFile(ctx context.Context, path string) (*transcript.Response, error)
}

// New builds the recognizer backend selected by the config.
func New(ctx context.Context, cfg config.RecognizerConfig) (Recognizer, error) {
	switch cfg.Mode {
	case "google":
		return NewGoogleRecognizer(ctx, cfg)
	case "exec":
		return NewExecRecognizer(cfg)
	case "mock":
		return NewMockRecognizer(), nil
	}
	return nil, fmt.Errorf("unknown recognizer mode %q", cfg.Mode)
}

// Punctuation features follow the selected model. The two medical models have
// documented punctuation behavior; everything else leaves both flags off.
// https://cloud.google.com/speech-to-text/v2/docs/medical-models
func modelFeatures(model string) (autoPunct, spokenPunct bool) {
	switch model {
	case "medical_conversation":
		return true, false
	case "medical_dictation":
		return true, true
	}
	return false, false
}
