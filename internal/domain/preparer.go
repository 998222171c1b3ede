package domain

import "strings"

// MinDocuments is the smallest number of valid documents the pipeline
// will cluster. Below this, density grouping with a minimum group size
// of 2 is not meaningful and the call short-circuits.
const MinDocuments = 3

// Preparer normalizes raw article records into clustering-ready
// document units.
type Preparer interface {
	Prepare(articles []ArticleInput) []DocumentUnit
}

type textPreparer struct{}

// NewPreparer creates the default document preparer.
func NewPreparer() Preparer {
	return &textPreparer{}
}

// Prepare derives each document's text as the trimmed concatenation of
// title and excerpt. Articles whose derived text is empty are dropped:
// they appear nowhere in the result, not even as unclustered.
func (p *textPreparer) Prepare(articles []ArticleInput) []DocumentUnit {
	units := make([]DocumentUnit, 0, len(articles))
	for i, a := range articles {
		text := strings.TrimSpace(a.Title + " " + a.Excerpt)
		if text == "" {
			continue
		}
		units = append(units, DocumentUnit{
			ArticleID:  a.ID,
			Text:       text,
			InputIndex: i,
		})
	}
	return units
}
