// Package check verifies that named entity extraction gives the same result
// through every access path of an NLP capability.
package check

import (
	"context"
	"fmt"

	"github.com/siherrmann/nercheck/core/nlp"
	"github.com/siherrmann/nercheck/helper"
	"github.com/siherrmann/nercheck/model"
)

// Result holds the entity sequences of the three extraction paths
type Result struct {
	PathA model.EntitySequence // Document accessor
	PathB model.EntitySequence // Extraction function on the document's analysis
	PathC model.EntitySequence // Extraction function on an independent pipeline run
}

// Equal reports whether all three sequences are equal
func (r *Result) Equal() bool {
	return r.PathA.Equal(r.PathB) && r.PathA.Equal(r.PathC)
}

// MismatchError is returned when the extraction paths disagree
type MismatchError struct {
	PathA model.EntitySequence
	PathB model.EntitySequence
	PathC model.EntitySequence
}

func (e *MismatchError) Error() string {
	if i := e.PathA.FirstDifference(e.PathB); i >= 0 {
		return fmt.Sprintf("entity sequences differ: path A and path B at index %d: %s", i, describeDifference(e.PathA, e.PathB, i))
	}
	i := e.PathA.FirstDifference(e.PathC)
	if i < 0 {
		return "entity sequences differ"
	}
	return fmt.Sprintf("entity sequences differ: paths A/B and path C at index %d: %s", i, describeDifference(e.PathA, e.PathC, i))
}

func describeDifference(left, right model.EntitySequence, i int) string {
	return fmt.Sprintf("%s != %s (lengths %d and %d)", entityAt(left, i), entityAt(right, i), len(left), len(right))
}

func entityAt(seq model.EntitySequence, i int) string {
	if e, ok := seq.At(i); ok {
		return e.String()
	}
	return "<none>"
}

// CheckEquivalence extracts the named entities of text three ways and fails with a
// *MismatchError unless all three sequences are equal. Capability errors stop the check
// at the failing path. language must match the capability's document language so that
// every path runs the same model.
func CheckEquivalence(ctx context.Context, capability nlp.Capability, language string, text string, opts ...nlp.ExtractOption) (*Result, error) {
	if capability == nil {
		return nil, helper.NewError("capability validation", fmt.Errorf("capability is nil"))
	}
	if !nlp.SameLanguage(capability.Language(), language) {
		return nil, helper.NewError("language validation", fmt.Errorf("%w: %q vs %q", nlp.ErrLanguageMismatch, language, capability.Language()))
	}

	// Path A and B share one document
	doc, err := capability.NewDocument(ctx, text)
	if err != nil {
		return nil, helper.NewError("path A: build document", err)
	}
	result := &Result{
		PathA: doc.NamedEntities(opts...),
		PathB: nlp.ExtractNamedEntities(doc.Analysis, opts...),
	}

	// Path C runs a freshly loaded pipeline
	pipeline, err := capability.LoadModel(language)
	if err != nil {
		return nil, helper.NewError("path C: load model", err)
	}
	analysis, err := pipeline.Analyze(ctx, text)
	closeErr := pipeline.Close()
	if err != nil {
		return nil, helper.NewError("path C: analyze", err)
	}
	if closeErr != nil {
		return nil, helper.NewError("path C: close pipeline", closeErr)
	}
	result.PathC = nlp.ExtractNamedEntities(analysis, opts...)

	if !result.Equal() {
		return result, &MismatchError{
			PathA: result.PathA,
			PathB: result.PathB,
			PathC: result.PathC,
		}
	}

	return result, nil
}
