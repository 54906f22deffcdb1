package keyword

import (
	"reflect"
	"strings"
	"testing"
)

func TestBuiltinTableComplete(t *testing.T) {
	table := BuiltinTable()

	if len(table) != ListCount*SentenceCount {
		t.Fatalf("expected %d entries, got %d", ListCount*SentenceCount, len(table))
	}
	for list := 0; list < ListCount; list++ {
		for sentence := 0; sentence < SentenceCount; sentence++ {
			key, ok := table.Get(list, sentence)
			if !ok {
				t.Fatalf("missing entry for L%d S%d", list, sentence)
			}
			if len(key) != SlotsPerSentence {
				t.Fatalf("L%d S%d has %d slots", list, sentence, len(key))
			}
			for _, entry := range key {
				if len(entry) == 0 {
					t.Fatalf("L%d S%d has an empty slot", list, sentence)
				}
				for _, spelling := range entry {
					if spelling != strings.ToLower(spelling) {
						t.Fatalf("L%d S%d spelling %q is not lowercased", list, sentence, spelling)
					}
				}
			}
		}
	}
}

func TestBuiltinTableSpotChecks(t *testing.T) {
	table := BuiltinTable()

	sentence, _ := table.Get(1, 0)
	if !reflect.DeepEqual(sentence[0], Entry{"tear", "tara"}) {
		t.Fatalf("L1 S0 slot 0 = %v", sentence[0])
	}

	sentence, _ = table.Get(0, 0)
	want := Sentence{{"white"}, {"silk"}, {"jacket"}, {"any"}, {"shoes"}}
	if !reflect.DeepEqual(sentence, want) {
		t.Fatalf("L0 S0 = %v, want %v", sentence, want)
	}

	sentence, _ = table.Get(11, 5)
	if !reflect.DeepEqual(sentence[4], Entry{"weather"}) {
		t.Fatalf("L11 S5 slot 4 = %v", sentence[4])
	}
}

func TestBuiltinTableBuiltOnce(t *testing.T) {
	first := reflect.ValueOf(BuiltinTable()).Pointer()
	second := reflect.ValueOf(BuiltinTable()).Pointer()
	if first != second {
		t.Fatal("expected the builtin table to be parsed once and shared")
	}
}
