package document

// Category names one of the four body sections.
type Category string

const (
	Introduction     Category = "introduction"
	MaterialsMethods Category = "materials_methods"
	Results          Category = "results"
	Discussion       Category = "discussion"
)

// Categories lists the body sections in their fixed precedence order.
var Categories = []Category{Introduction, MaterialsMethods, Results, Discussion}

// Sections holds the four body sections. A field, once filled, is never
// overwritten.
type Sections struct {
	Introduction     string
	MaterialsMethods string
	Results          string
	Discussion       string
}

// Get returns the text stored for a category.
func (s *Sections) Get(c Category) string {
	switch c {
	case Introduction:
		return s.Introduction
	case MaterialsMethods:
		return s.MaterialsMethods
	case Results:
		return s.Results
	case Discussion:
		return s.Discussion
	}
	return ""
}

// Fill stores text for a category if it is still empty. It reports whether
// the value was stored.
func (s *Sections) Fill(c Category, text string) bool {
	if text == "" || s.Get(c) != "" {
		return false
	}
	switch c {
	case Introduction:
		s.Introduction = text
	case MaterialsMethods:
		s.MaterialsMethods = text
	case Results:
		s.Results = text
	case Discussion:
		s.Discussion = text
	default:
		return false
	}
	return true
}

// Missing returns the empty categories in precedence order.
func (s *Sections) Missing() []Category {
	var out []Category
	for _, c := range Categories {
		if s.Get(c) == "" {
			out = append(out, c)
		}
	}
	return out
}

// Complete reports whether all four sections are filled.
func (s *Sections) Complete() bool {
	return len(s.Missing()) == 0
}
