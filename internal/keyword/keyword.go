package keyword

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
)

// SlotsPerSentence is the number of scored keyword positions in a QuickSIN
// sentence.
const SlotsPerSentence = 5

// Entry is the ordered set of accepted spellings for one scored keyword slot.
// Spellings are stored lowercased.
type Entry []string

// Matches reports whether word is one of the entry's accepted spellings.
// Comparison is case-insensitive.
func (e Entry) Matches(word string) bool {
	word = strings.ToLower(word)
	for _, spelling := range e {
		if word == spelling {
			return true
		}
	}
	return false
}

// Sentence is the ordered sequence of keyword slots for one test sentence,
// normally SlotsPerSentence long.
type Sentence []Entry

// Score reports, slot by slot, whether any of the given words is an accepted
// spelling for that slot.
func (s Sentence) Score(words []string) []bool {
	hits := make([]bool, len(s))
	for i, entry := range s {
		for _, w := range words {
			if entry.Matches(w) {
				hits[i] = true
				break
			}
		}
	}
	return hits
}

// Key identifies one sentence in the QuickSIN corpus.
type Key struct {
	List     int
	Sentence int
}

// Table maps sentence keys to their expected keywords. Built once at startup
// and treated as read-only afterwards.
type Table map[Key]Sentence

// Get looks up the keywords for one sentence.
func (t Table) Get(list, sentence int) (Sentence, bool) {
	s, ok := t[Key{List: list, Sentence: sentence}]
	return s, ok
}

// Alternatives splits a keyword token on '/' into its accepted spellings. A
// token without a separator yields a single-element list.
func Alternatives(token string) []string {
	if strings.Contains(token, "/") {
		return strings.Split(token, "/")
	}
	return []string{token}
}

var linePattern = regexp.MustCompile(`^l\s*(\d+)\s+s\s*(\d+)\s+(.+)$`)

// Parse converts a line-oriented keyword table into a Table. Each line is
// "L<list> S<sentence>" followed by the five keyword tokens, tokens with
// slash-separated alternative spellings. Blank lines are skipped. Lines whose
// keyword count differs from SlotsPerSentence are logged and still inserted;
// a duplicate (list, sentence) key keeps the last line seen.
func Parse(text string, log *slog.Logger) Table {
	table := make(Table)
	for _, line := range strings.Split(text, "\n") {
		line = strings.ToLower(strings.TrimSpace(line))
		if line == "" {
			continue
		}
		m := linePattern.FindStringSubmatch(line)
		if m == nil {
			log.Warn("keyword line does not match L<n> S<n> prefix", slog.String("line", line))
			continue
		}
		list, err := strconv.Atoi(m[1])
		if err != nil {
			log.Warn("bad list index", slog.String("line", line))
			continue
		}
		sentence, err := strconv.Atoi(m[2])
		if err != nil {
			log.Warn("bad sentence index", slog.String("line", line))
			continue
		}
		var key Sentence
		for _, token := range strings.Fields(m[3]) {
			key = append(key, Entry(Alternatives(token)))
		}
		if len(key) != SlotsPerSentence {
			log.Warn("unexpected keyword count",
				slog.Int("list", list),
				slog.Int("sentence", sentence),
				slog.Int("count", len(key)))
		}
		table[Key{List: list, Sentence: sentence}] = key
	}
	return table
}
