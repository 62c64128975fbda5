package nlp

import "github.com/siherrmann/nercheck/model"

// Span is one labelled group of tokens as returned by the token classifier
type Span struct {
	Word  string
	Label string
	Start int
	End   int
	Score float64
}

// Analysis is the result of running a pipeline over a text.
// Spans are kept in the order the model produced them.
type Analysis struct {
	Text     string
	Language string
	Spans    []Span
}

// Document pairs a raw text with its analysis
type Document struct {
	Text     string
	Analysis *Analysis
}

// NamedEntities returns the named entities of the document
func (d *Document) NamedEntities(opts ...ExtractOption) model.EntitySequence {
	if d == nil {
		return model.EntitySequence{}
	}
	return ExtractNamedEntities(d.Analysis, opts...)
}
