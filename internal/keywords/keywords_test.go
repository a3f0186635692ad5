package keywords

import (
	"reflect"
	"strings"
	"testing"
)

func TestExtract_RanksByFrequency(t *testing.T) {
	text := "Sleep helps memory. Memory improves with sleep. Sleep matters."
	got := Extract(text, 3)
	want := []string{"sleep", "memory", "helps"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestExtract_DropsStopWordsAndShortWords(t *testing.T) {
	got := Extract("The cat and the dog were in an ox pen with those mice", 10)
	want := []string{"cat", "dog", "pen", "mice"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestExtract_IgnoresNonASCIIWords(t *testing.T) {
	got := Extract("café café naïve résumé abc123 snake_case plain", 10)
	want := []string{"plain"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestExtract_TiesKeepFirstOccurrence(t *testing.T) {
	got := Extract("zebra apple mango", 10)
	want := []string{"zebra", "apple", "mango"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestExtract_CapsCount(t *testing.T) {
	text := strings.Repeat("alpha bravo charlie delta echo foxtrot golf hotel india juliet kilo lima ", 2)
	if got := Extract(text, 0); len(got) != DefaultMax {
		t.Errorf("expected %d keywords, got %d", DefaultMax, len(got))
	}
	if got := Extract(text, 4); len(got) != 4 {
		t.Errorf("expected 4 keywords, got %d", len(got))
	}
}

func TestExtract_EmptyIsNonNil(t *testing.T) {
	got := Extract("", 10)
	if got == nil {
		t.Fatal("expected non-nil slice")
	}
	if len(got) != 0 {
		t.Errorf("expected no keywords, got %v", got)
	}
}

func TestExtract_IgnoresDigitsAndMixedTokens(t *testing.T) {
	got := Extract("covid19 2024 abc123 rna", 10)
	want := []string{"rna"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
