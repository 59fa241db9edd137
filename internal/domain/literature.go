package domain

import "strings"

// LiteratureItem is a tracked reference and its reading status. Authors,
// Year and Title are free text; at least one must be set.
type LiteratureItem struct {
	ID       string        `json:"id" yaml:"id"`
	Authors  string        `json:"authors,omitempty" yaml:"authors,omitempty"`
	Year     string        `json:"year,omitempty" yaml:"year,omitempty"`
	Title    string        `json:"title,omitempty" yaml:"title,omitempty"`
	Status   ReadingStatus `json:"status" yaml:"status"`
	Priority Priority      `json:"priority" yaml:"priority"`
}

// Citation renders "Authors (Year). Title" skipping empty parts.
func (l LiteratureItem) Citation() string {
	var b strings.Builder
	if l.Authors != "" {
		b.WriteString(l.Authors)
	}
	if l.Year != "" {
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString("(" + l.Year + ")")
	}
	if l.Title != "" {
		if b.Len() > 0 {
			b.WriteString(". ")
		}
		b.WriteString(l.Title)
	}
	return b.String()
}
