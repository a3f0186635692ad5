// Package keywords ranks the most frequent content words of a text.
package keywords

import (
	"regexp"
	"sort"
	"strings"
)

// DefaultMax is the number of keywords returned when the caller has no
// preference.
const DefaultMax = 10

// wordPattern matches runs of Unicode word characters. Only runs made of
// three or more ASCII letters count as words, so "café" and "abc123" yield
// nothing.
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

const minWordLen = 3

var stopWords = map[string]bool{
	"the": true, "and": true, "but": true, "for": true, "with": true,
	"from": true, "about": true, "into": true, "through": true, "during": true,
	"before": true, "after": true, "above": true, "below": true, "between": true,
	"among": true, "are": true, "was": true, "were": true, "been": true,
	"being": true, "have": true, "has": true, "had": true, "does": true,
	"did": true, "will": true, "would": true, "could": true, "should": true,
	"may": true, "might": true, "must": true, "can": true, "this": true,
	"that": true, "these": true, "those": true,
}

type wordCount struct {
	word  string
	count int
}

// Extract returns up to max words of three or more letters from text, most
// frequent first. Ties keep first-occurrence order. The result is never nil.
func Extract(text string, max int) []string {
	if max <= 0 {
		max = DefaultMax
	}

	counts := make(map[string]*wordCount)
	var order []*wordCount
	for _, w := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		if !isASCIIWord(w) || stopWords[w] {
			continue
		}
		if wc, ok := counts[w]; ok {
			wc.count++
			continue
		}
		wc := &wordCount{word: w, count: 1}
		counts[w] = wc
		order = append(order, wc)
	}

	sort.SliceStable(order, func(i, j int) bool {
		return order[i].count > order[j].count
	})

	out := make([]string, 0, min(max, len(order)))
	for _, wc := range order {
		if len(out) == max {
			break
		}
		out = append(out, wc.word)
	}
	return out
}

func isASCIIWord(w string) bool {
	if len(w) < minWordLen {
		return false
	}
	for i := 0; i < len(w); i++ {
		if w[i] < 'a' || w[i] > 'z' {
			return false
		}
	}
	return true
}
