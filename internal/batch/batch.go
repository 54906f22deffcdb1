package batch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/MalcolmSlaney/GoogleSIN/internal/keyword"
	"github.com/MalcolmSlaney/GoogleSIN/internal/recognizer"
	"github.com/MalcolmSlaney/GoogleSIN/internal/resultstore"
	"github.com/MalcolmSlaney/GoogleSIN/internal/transcript"
)

// SpinFileTranscripts maps an audio file's base name to its recognition
// response.
type SpinFileTranscripts map[string]*transcript.Response

// Runner drives a batch of QuickSIN recordings through the recognizer,
// sequentially and at most once per file.
type Runner struct {
	rec   recognizer.Recognizer
	store *resultstore.Store
	model string
	log   *slog.Logger

	tracer     trace.Tracer
	filesCount metric.Int64Counter
	wordsCount metric.Int64Counter
}

func NewRunner(rec recognizer.Recognizer, store *resultstore.Store, model string, log *slog.Logger) *Runner {
	meter := otel.Meter("spinscore/batch")
	filesCount, _ := meter.Int64Counter("spin_files_recognized_total",
		metric.WithDescription("Audio files submitted to the recognizer"))
	wordsCount, _ := meter.Int64Counter("spin_words_recognized_total",
		metric.WithDescription("Words in recognized transcripts, sentinels excluded"))
	return &Runner{
		rec:        rec,
		store:      store,
		model:      model,
		log:        log,
		tracer:     otel.Tracer("spinscore/batch"),
		filesCount: filesCount,
		wordsCount: wordsCount,
	}
}

// RecognizeAll recognizes a list of SPiN recordings and returns the raw
// responses keyed by file base name. Calibration recordings are skipped.
// Files with a cached response are not re-submitted. A recognizer failure
// aborts the batch; there is no retry.
func (r *Runner) RecognizeAll(ctx context.Context, paths []string) (SpinFileTranscripts, error) {
	results := make(SpinFileTranscripts)
	for _, path := range paths {
		if strings.Contains(path, "Calibration") {
			continue
		}
		name := filepath.Base(path)

		if cached, ok, err := r.store.Get(ctx, name, r.model); err != nil {
			return nil, err
		} else if ok {
			r.log.Debug("using cached response", slog.String("file", name))
			results[name] = cached
			continue
		}

		r.log.Info("recognizing", slog.String("file", name))
		ctx, span := r.tracer.Start(ctx, "recognize.file",
			trace.WithAttributes(attribute.String("spin.file", name)))
		resp, err := r.rec.RecognizeFile(ctx, path)
		if err != nil {
			span.RecordError(err)
			span.End()
			return nil, fmt.Errorf("recognize %s: %w", name, err)
		}
		span.End()

		words := transcript.Flatten(resp)
		r.filesCount.Add(ctx, 1)
		r.wordsCount.Add(ctx, int64(countWords(words)))
		for _, text := range transcript.BestTranscripts(resp) {
			r.log.Debug("transcript", slog.String("file", name), slog.String("text", text))
		}

		if err := r.store.Put(ctx, name, r.model, resp); err != nil {
			r.log.Warn("failed to cache response",
				slog.String("file", name), slog.String("error", err.Error()))
		}
		results[name] = resp
	}
	return results, nil
}

func countWords(words []transcript.Word) int {
	n := 0
	for _, w := range words {
		if w.Text != transcript.Sentinel {
			n++
		}
	}
	return n
}

// SentenceScore is the outcome for one sentence: which of its keyword slots
// were heard.
type SentenceScore struct {
	Key     keyword.Key
	Hits    []bool
	Correct int
}

// FileScore aggregates one recording's sentence scores.
type FileScore struct {
	File         string
	List         int
	Sentences    []SentenceScore
	TotalCorrect int
}

// SNRLoss converts a full list's keyword count into the QuickSIN SNR loss in
// dB (25.5 minus total words correct).
func (f FileScore) SNRLoss() float64 {
	return 25.5 - float64(f.TotalCorrect)
}

// ScoreResponse scores one recording against the answer key for one list.
// The flattened word stream is split at sentinel boundaries and utterance i
// is scored against sentence i of the list.
func ScoreResponse(table keyword.Table, file string, list int, resp *transcript.Response) FileScore {
	score := FileScore{File: file, List: list}
	utterances := transcript.Utterances(transcript.Flatten(resp))
	for i, words := range utterances {
		key, ok := table.Get(list, i)
		if !ok {
			break
		}
		hits := key.Score(transcript.Texts(words))
		correct := 0
		for _, hit := range hits {
			if hit {
				correct++
			}
		}
		score.Sentences = append(score.Sentences, SentenceScore{
			Key:     keyword.Key{List: list, Sentence: i},
			Hits:    hits,
			Correct: correct,
		})
		score.TotalCorrect += correct
	}
	return score
}

var listPattern = regexp.MustCompile(`(?i)list\s*(\d+)`)

// ListFromFileName extracts the QuickSIN list index from a recording name
// such as "Babble List 11.wav". File names count lists from 1; the answer key
// counts from 0.
func ListFromFileName(name string) (int, bool) {
	m := listPattern.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 {
		return 0, false
	}
	return n - 1, true
}

// ScoreAll scores every transcript whose file name carries a list number.
// Files without one are logged and skipped.
func (r *Runner) ScoreAll(table keyword.Table, transcripts SpinFileTranscripts) []FileScore {
	names := make([]string, 0, len(transcripts))
	for name := range transcripts {
		names = append(names, name)
	}
	sort.Strings(names)

	var scores []FileScore
	for _, name := range names {
		list, ok := ListFromFileName(name)
		if !ok {
			r.log.Warn("no list number in file name, skipping score", slog.String("file", name))
			continue
		}
		scores = append(scores, ScoreResponse(table, name, list, transcripts[name]))
	}
	return scores
}
