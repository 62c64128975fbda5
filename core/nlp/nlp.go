// Package nlp is the narrow interface the equivalence check uses to reach a named
// entity recognition library, and its implementation on top of hugot.
package nlp

import (
	"context"
	"errors"
)

var (
	// ErrUnknownLanguage is returned when no model is registered for a language code
	ErrUnknownLanguage = errors.New("no model registered for language")
	// ErrLanguageMismatch is returned when documents and pipelines would use different languages
	ErrLanguageMismatch = errors.New("language differs from the capability's document language")
	// ErrClosed is returned by a capability used after Close
	ErrClosed = errors.New("capability is closed")
)

// Capability is an NLP library able to build documents and load pipelines
type Capability interface {
	// Language is the language code NewDocument analyses text in
	Language() string
	// NewDocument analyses text with the capability's default pipeline and wraps the result
	NewDocument(ctx context.Context, text string) (*Document, error)
	// LoadModel loads a fresh pipeline for a language code, independent of the default one
	LoadModel(language string) (Pipeline, error)
}

// Pipeline is a loaded language processing model callable on raw text
type Pipeline interface {
	Analyze(ctx context.Context, text string) (*Analysis, error)
	Close() error
}

// SameLanguage reports whether two language codes name the same registry entry
func SameLanguage(a, b string) bool {
	return normalizeLanguage(a) == normalizeLanguage(b)
}
