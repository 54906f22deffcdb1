package batch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/MalcolmSlaney/GoogleSIN/internal/config"
	"github.com/MalcolmSlaney/GoogleSIN/internal/keyword"
	"github.com/MalcolmSlaney/GoogleSIN/internal/resultstore"
	"github.com/MalcolmSlaney/GoogleSIN/internal/transcript"
)

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// fakeRecognizer records which paths it was asked to recognize.
type fakeRecognizer struct {
	calls []string
	resp  *transcript.Response
	err   error
}

func (f *fakeRecognizer) RecognizeFile(_ context.Context, path string) (*transcript.Response, error) {
	f.calls = append(f.calls, path)
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func disabledStore(t *testing.T) *resultstore.Store {
	t.Helper()
	s, err := resultstore.Open(context.Background(), config.ResultsConfig{Enabled: false}, newLogger())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sentenceResponse(words ...string) *transcript.Response {
	var infos []transcript.WordInfo
	for i, w := range words {
		infos = append(infos, transcript.WordInfo{
			Word:        w,
			StartOffset: time.Duration(i) * time.Second,
			EndOffset:   time.Duration(i+1) * time.Second,
		})
	}
	return &transcript.Response{
		Results: []transcript.Result{
			{Alternatives: []transcript.Alternative{{Words: infos}}},
		},
	}
}

func TestRecognizeAllSkipsCalibration(t *testing.T) {
	fake := &fakeRecognizer{resp: sentenceResponse("white", "silk")}
	runner := NewRunner(fake, disabledStore(t), "default_long", newLogger())

	results, err := runner.RecognizeAll(context.Background(),
		[]string{"a.wav", "Calibration_1.wav", "b.wav"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(fake.calls, []string{"a.wav", "b.wav"}) {
		t.Fatalf("expected 2 recognizer calls, got %v", fake.calls)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, name := range []string{"a.wav", "b.wav"} {
		if _, ok := results[name]; !ok {
			t.Fatalf("missing result for %s, have %v", name, results)
		}
	}
}

func TestRecognizeAllKeysByBaseName(t *testing.T) {
	fake := &fakeRecognizer{resp: sentenceResponse("white")}
	runner := NewRunner(fake, disabledStore(t), "default_long", newLogger())

	results, err := runner.RecognizeAll(context.Background(),
		[]string{filepath.Join("some", "dir", "Babble List 1.wav")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := results["Babble List 1.wav"]; !ok {
		t.Fatalf("expected base-name key, have %v", results)
	}
}

func TestRecognizeAllPropagatesFailure(t *testing.T) {
	fake := &fakeRecognizer{err: errors.New("quota exceeded")}
	runner := NewRunner(fake, disabledStore(t), "default_long", newLogger())

	if _, err := runner.RecognizeAll(context.Background(), []string{"a.wav"}); err == nil {
		t.Fatal("expected recognizer failure to abort the batch")
	}
}

func TestRecognizeAllUsesCache(t *testing.T) {
	ctx := context.Background()
	cfg := config.ResultsConfig{Enabled: true, Path: filepath.Join(t.TempDir(), "results.db")}
	store, err := resultstore.Open(ctx, cfg, newLogger())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	cached := sentenceResponse("white", "silk")
	if err := store.Put(ctx, "a.wav", "default_long", cached); err != nil {
		t.Fatalf("prime cache: %v", err)
	}

	fake := &fakeRecognizer{resp: sentenceResponse("child")}
	runner := NewRunner(fake, store, "default_long", newLogger())

	results, err := runner.RecognizeAll(ctx, []string{"a.wav", "b.wav"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(fake.calls, []string{"b.wav"}) {
		t.Fatalf("cached file should not be re-submitted, calls: %v", fake.calls)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	// The fresh result should now be cached too.
	if _, ok, _ := store.Get(ctx, "b.wav", "default_long"); !ok {
		t.Fatal("expected b.wav response to be cached")
	}
}

func TestListFromFileName(t *testing.T) {
	cases := []struct {
		name string
		list int
		ok   bool
	}{
		{"Babble List 11.wav", 10, true},
		{"Clean List 1.wav", 0, true},
		{"list 3.wav", 2, true},
		{"List12.wav", 11, true},
		{"Calibration_1.wav", 0, false},
		{"notes.txt", 0, false},
	}
	for _, c := range cases {
		list, ok := ListFromFileName(c.name)
		if ok != c.ok || (ok && list != c.list) {
			t.Fatalf("ListFromFileName(%q) = %d,%v want %d,%v", c.name, list, ok, c.list, c.ok)
		}
	}
}

func TestScoreResponse(t *testing.T) {
	// Two utterances: L0 S0 "white silk jacket any shoes", L0 S1 keywords
	// partially heard.
	resp := &transcript.Response{
		Results: []transcript.Result{
			sentenceResponse("the", "White", "silk", "jacket", "and", "any", "shoes").Results[0],
			sentenceResponse("a", "child", "crawled", "over", "grass").Results[0],
		},
	}

	score := ScoreResponse(keyword.BuiltinTable(), "Babble List 1.wav", 0, resp)
	if len(score.Sentences) != 2 {
		t.Fatalf("expected 2 scored sentences, got %d", len(score.Sentences))
	}
	if score.Sentences[0].Correct != 5 {
		t.Fatalf("S0 correct = %d, want 5 (%v)", score.Sentences[0].Correct, score.Sentences[0].Hits)
	}
	// "child crawled ... grass" hits 3 of: child crawled into dense grass.
	if score.Sentences[1].Correct != 3 {
		t.Fatalf("S1 correct = %d, want 3 (%v)", score.Sentences[1].Correct, score.Sentences[1].Hits)
	}
	if score.TotalCorrect != 8 {
		t.Fatalf("total = %d, want 8", score.TotalCorrect)
	}
}

func TestSNRLoss(t *testing.T) {
	score := FileScore{TotalCorrect: 20}
	if got := score.SNRLoss(); got != 5.5 {
		t.Fatalf("SNRLoss = %v, want 5.5", got)
	}
}

func TestScoreAllSkipsUnnumberedFiles(t *testing.T) {
	fake := &fakeRecognizer{}
	runner := NewRunner(fake, disabledStore(t), "default_long", newLogger())

	transcripts := SpinFileTranscripts{
		"Babble List 1.wav": sentenceResponse("white", "silk"),
		"mystery.wav":       sentenceResponse("white"),
	}
	scores := runner.ScoreAll(keyword.BuiltinTable(), transcripts)
	if len(scores) != 1 {
		t.Fatalf("expected 1 scored file, got %d", len(scores))
	}
	if scores[0].File != "Babble List 1.wav" || scores[0].List != 0 {
		t.Fatalf("unexpected score: %+v", scores[0])
	}
}
