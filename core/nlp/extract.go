package nlp

import (
	"strings"
	"unicode"

	"github.com/siherrmann/nercheck/model"
)

var determiners = []string{"the", "an", "a"}

type extractOptions struct {
	includeTypes    map[string]bool
	excludeTypes    map[string]bool
	dropDeterminers bool
	minFreq         int
}

// ExtractOption configures ExtractNamedEntities
type ExtractOption func(*extractOptions)

// WithIncludeTypes keeps only entities with one of the given labels
func WithIncludeTypes(types ...string) ExtractOption {
	return func(o *extractOptions) {
		o.includeTypes = labelSet(types)
	}
}

// WithExcludeTypes drops entities with one of the given labels
func WithExcludeTypes(types ...string) ExtractOption {
	return func(o *extractOptions) {
		o.excludeTypes = labelSet(types)
	}
}

// WithDropDeterminers strips a leading "the", "a" or "an" from entity texts
func WithDropDeterminers(drop bool) ExtractOption {
	return func(o *extractOptions) {
		o.dropDeterminers = drop
	}
}

// WithMinFreq keeps only entities whose text occurs at least n times (case insensitive)
func WithMinFreq(n int) ExtractOption {
	return func(o *extractOptions) {
		o.minFreq = n
	}
}

// OptionsFromConfig translates the filter settings of a check configuration
func OptionsFromConfig(config model.CheckConfig) []ExtractOption {
	opts := []ExtractOption{
		WithDropDeterminers(config.DropDeterminers),
		WithMinFreq(config.MinFreq),
	}
	if len(config.IncludeTypes) > 0 {
		opts = append(opts, WithIncludeTypes(config.IncludeTypes...))
	}
	if len(config.ExcludeTypes) > 0 {
		opts = append(opts, WithExcludeTypes(config.ExcludeTypes...))
	}
	return opts
}

// ExtractNamedEntities reads the named entities of an analysis in the order the model produced them.
// Determiners are dropped by default.
func ExtractNamedEntities(analysis *Analysis, opts ...ExtractOption) model.EntitySequence {
	o := extractOptions{
		dropDeterminers: true,
		minFreq:         1,
	}
	for _, opt := range opts {
		opt(&o)
	}

	entities := model.EntitySequence{}
	if analysis == nil {
		return entities
	}

	for _, span := range analysis.Spans {
		label := normalizeEntityType(span.Label)
		if label == "" || label == "O" {
			continue
		}
		if o.includeTypes != nil && !o.includeTypes[label] {
			continue
		}
		if o.excludeTypes[label] {
			continue
		}

		text, start, end := spanText(analysis.Text, span)
		if o.dropDeterminers {
			text, start = dropDeterminer(text, start)
		}
		if text == "" {
			continue
		}

		entities = append(entities, model.Entity{
			Text:  text,
			Label: label,
			Start: start,
			End:   end,
			Metadata: model.Metadata{
				"confidence": span.Score,
			},
		})
	}

	if o.minFreq > 1 {
		entities = filterByFrequency(entities, o.minFreq)
	}

	return entities
}

// normalizeEntityType removes B- and I- prefixes from NER labels
func normalizeEntityType(label string) string {
	label = strings.ToUpper(strings.TrimSpace(label))
	if strings.HasPrefix(label, "B-") || strings.HasPrefix(label, "I-") {
		return label[2:]
	}
	return label
}

func labelSet(types []string) map[string]bool {
	set := make(map[string]bool, len(types))
	for _, t := range types {
		set[normalizeEntityType(t)] = true
	}
	return set
}

// spanText returns the trimmed text covered by a span and its adjusted offsets.
// Spans with offsets outside the text fall back to the word reported by the model.
func spanText(text string, span Span) (string, int, int) {
	start, end := span.Start, span.End
	if start < 0 || end > len(text) || start >= end {
		return strings.TrimSpace(span.Word), start, end
	}

	raw := text[start:end]
	trimmedLeft := strings.TrimLeftFunc(raw, unicode.IsSpace)
	start += len(raw) - len(trimmedLeft)
	trimmed := strings.TrimRightFunc(trimmedLeft, unicode.IsSpace)
	end -= len(trimmedLeft) - len(trimmed)

	return trimmed, start, end
}

func dropDeterminer(text string, start int) (string, int) {
	for _, det := range determiners {
		if len(text) <= len(det) || !strings.EqualFold(text[:len(det)], det) {
			continue
		}
		rest := text[len(det):]
		trimmed := strings.TrimLeftFunc(rest, unicode.IsSpace)
		if len(trimmed) == len(rest) {
			// "Andrew" starts with "an" but has no determiner
			continue
		}
		return trimmed, start + len(text) - len(trimmed)
	}
	return text, start
}

func filterByFrequency(entities model.EntitySequence, minFreq int) model.EntitySequence {
	counts := make(map[string]int, len(entities))
	for _, e := range entities {
		counts[strings.ToLower(e.Text)]++
	}

	filtered := model.EntitySequence{}
	for _, e := range entities {
		if counts[strings.ToLower(e.Text)] >= minFreq {
			filtered = append(filtered, e)
		}
	}
	return filtered
}
