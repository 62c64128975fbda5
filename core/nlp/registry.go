package nlp

import (
	"fmt"
	"strings"
	"sync"
)

// ModelSpec names the HuggingFace repository and onnx file of a NER model
type ModelSpec struct {
	Name         string
	OnnxFilePath string
}

var (
	registryMu sync.RWMutex
	registry   = map[string]ModelSpec{
		// KnightsAnalytics optimized distilbert-NER, labels PER, ORG, LOC, MISC
		"en": {Name: "KnightsAnalytics/distilbert-NER", OnnxFilePath: "model.onnx"},
	}
)

// RegisterModel makes a model available under a language code, replacing any previous entry
func RegisterModel(language string, spec ModelSpec) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[normalizeLanguage(language)] = spec
}

// LookupModel returns the model registered for a language code
func LookupModel(language string) (ModelSpec, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	spec, ok := registry[normalizeLanguage(language)]
	if !ok {
		return ModelSpec{}, fmt.Errorf("%w: %q", ErrUnknownLanguage, language)
	}
	return spec, nil
}

func normalizeLanguage(language string) string {
	return strings.ToLower(strings.TrimSpace(language))
}
