package model

import (
	"errors"
	"strings"
)

// SampleText is the text the equivalence check runs on by default
const SampleText = "Donald Trump is running for president. Hillary Clinton is, too."

// DefaultLanguage is the language code of the default NER model
const DefaultLanguage = "en"

// ErrInvalidConfig is returned for a check configuration that cannot run
var ErrInvalidConfig = errors.New("invalid check configuration")

// CheckConfig represents the configuration of one equivalence check
type CheckConfig struct {
	Text     string `json:"text"`
	Language string `json:"language"`

	// Entity filtering, applied identically on all extraction paths
	IncludeTypes    []string `json:"include_types,omitempty"` // Keep only these labels, empty keeps all
	ExcludeTypes    []string `json:"exclude_types,omitempty"`
	DropDeterminers bool     `json:"drop_determiners"` // Strip a leading "the", "a" or "an"
	MinFreq         int      `json:"min_freq"`         // Minimum occurrences of an entity text in the document
}

// DefaultCheckConfig returns the configuration of the fixed sample check
func DefaultCheckConfig() CheckConfig {
	return CheckConfig{
		Text:            SampleText,
		Language:        DefaultLanguage,
		DropDeterminers: true,
		MinFreq:         1,
	}
}

// Validate checks that the configuration can run
func (c *CheckConfig) Validate() error {
	if strings.TrimSpace(c.Language) == "" {
		return errors.Join(ErrInvalidConfig, errors.New("language is empty"))
	}
	if c.MinFreq < 1 {
		return errors.Join(ErrInvalidConfig, errors.New("min freq must be at least 1"))
	}
	for _, include := range c.IncludeTypes {
		for _, exclude := range c.ExcludeTypes {
			if strings.EqualFold(include, exclude) {
				return errors.Join(ErrInvalidConfig, errors.New("type "+include+" is both included and excluded"))
			}
		}
	}
	return nil
}
