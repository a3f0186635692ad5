// Package classify maps short lead text to a body-section category using
// ordered keyword tables.
package classify

import (
	"strings"

	"github.com/dgallion1/papersum/internal/document"
)

// Group is one row of a keyword table. Keywords are lower case and matched
// as substrings.
type Group struct {
	Category document.Category
	Keywords []string
}

// Sections is the table used to classify XML section titles and HTML block
// lead text. Row order is the tie-break.
var Sections = []Group{
	{Category: document.Introduction, Keywords: []string{"introduction", "background", "intro", "overview"}},
	{Category: document.MaterialsMethods, Keywords: []string{"material", "method", "procedure", "experimental", "methodology", "protocol"}},
	{Category: document.Results, Keywords: []string{"result", "finding", "outcome", "data show"}},
	{Category: document.Discussion, Keywords: []string{"discussion", "conclusion", "implication", "suggest"}},
}

// ParagraphCues gates the XML paragraph fallback. Introduction has no cue; it
// is chosen by length alone.
var ParagraphCues = []Group{
	{Category: document.MaterialsMethods, Keywords: []string{"material", "method", "procedure", "protocol"}},
	{Category: document.Results, Keywords: []string{"result", "finding", "observed", "measured"}},
	{Category: document.Discussion, Keywords: []string{"discussion", "conclusion", "suggest", "implication"}},
}

// Classify returns the category of the first group with a keyword contained
// in lead. The comparison is case-insensitive.
func Classify(lead string, groups []Group) (document.Category, bool) {
	lead = strings.ToLower(lead)
	for _, g := range groups {
		if g.matches(lead) {
			return g.Category, true
		}
	}
	return "", false
}

// Matches reports whether lead contains any keyword of the group.
func (g Group) Matches(lead string) bool {
	return g.matches(strings.ToLower(lead))
}

func (g Group) matches(lower string) bool {
	for _, kw := range g.Keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Lookup returns the group for a category from a table.
func Lookup(groups []Group, c document.Category) (Group, bool) {
	for _, g := range groups {
		if g.Category == c {
			return g, true
		}
	}
	return Group{}, false
}
