package recognizer

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/MalcolmSlaney/GoogleSIN/internal/transcript"
)

type mockRecognizer struct{}

func NewMockRecognizer() Recognizer {
	return &mockRecognizer{}
}

func (m *mockRecognizer) RecognizeFile(_ context.Context, path string) (*transcript.Response, error) {
	return &transcript.Response{
		Model: "mock",
		Results: []transcript.Result{
			{
				Alternatives: []transcript.Alternative{
					{Transcript: fmt.Sprintf("[mock transcript for %s]", filepath.Base(path))},
				},
			},
		},
	}, nil
}
