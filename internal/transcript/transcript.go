package transcript

import (
	"strings"
	"time"
)

// Sentinel is the synthetic word appended after each result segment's words
// to mark an utterance boundary in the flattened stream.
const Sentinel = "."

// WordInfo is a single word hypothesis with offsets relative to the start of
// the audio.
type WordInfo struct {
	Word        string        `json:"word"`
	StartOffset time.Duration `json:"start_offset"`
	EndOffset   time.Duration `json:"end_offset"`
}

// Alternative is one ranked transcription of a result segment. The first
// alternative of a segment is the best one.
type Alternative struct {
	Transcript string     `json:"transcript"`
	Confidence float64    `json:"confidence,omitempty"`
	Words      []WordInfo `json:"words,omitempty"`
}

// Result is one recognition segment, roughly a detected utterance. The
// recognition service sometimes returns segments with no alternatives at all;
// consumers treat those as empty rather than malformed.
type Result struct {
	Alternatives []Alternative `json:"alternatives,omitempty"`
}

// Response is the recognition output for one audio file, decoupled from any
// particular cloud client's wire types so that scoring never depends on the
// collaborator's live object shape.
type Response struct {
	Model   string   `json:"model,omitempty"`
	Results []Result `json:"results"`
}

// Word is a recognized word in the flattened stream, lowercased, with start
// and end times in seconds.
type Word struct {
	Text  string
	Start float64
	End   float64
}

// Flatten turns a response into a single chronological word list. Segments
// without alternatives are skipped. After each segment's words a Sentinel
// entry is appended at the end time of the segment's last word. Segment order
// is preserved; the output is never re-sorted.
func Flatten(resp *Response) []Word {
	var words []Word
	for _, result := range resp.Results {
		if len(result.Alternatives) == 0 {
			continue
		}
		best := result.Alternatives[0]
		if len(best.Words) == 0 {
			continue
		}
		var end float64
		for _, w := range best.Words {
			end = w.EndOffset.Seconds()
			words = append(words, Word{
				Text:  strings.ToLower(w.Word),
				Start: w.StartOffset.Seconds(),
				End:   end,
			})
		}
		words = append(words, Word{Text: Sentinel, Start: end, End: end})
	}
	return words
}

// Utterances splits a flattened word stream at sentinel boundaries. Sentinels
// themselves are dropped; a trailing group with no closing sentinel is still
// returned.
func Utterances(words []Word) [][]Word {
	var groups [][]Word
	var current []Word
	for _, w := range words {
		if w.Text == Sentinel {
			groups = append(groups, current)
			current = nil
			continue
		}
		current = append(current, w)
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}
	return groups
}

// Texts extracts the word texts from a word list.
func Texts(words []Word) []string {
	texts := make([]string, 0, len(words))
	for _, w := range words {
		texts = append(texts, w.Text)
	}
	return texts
}

// BestTranscripts returns each segment's top-ranked transcript, with a
// placeholder for segments that came back without alternatives.
func BestTranscripts(resp *Response) []string {
	var out []string
	for _, result := range resp.Results {
		if len(result.Alternatives) == 0 {
			out = append(out, "** empty result **")
			continue
		}
		out = append(out, result.Alternatives[0].Transcript)
	}
	return out
}
