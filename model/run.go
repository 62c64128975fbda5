package model

import (
	"time"

	"github.com/google/uuid"
)

// CheckRun represents one recorded execution of the equivalence check
type CheckRun struct {
	ID        int64          `json:"id"`
	RID       uuid.UUID      `json:"rid"`
	Text      string         `json:"text"`
	Language  string         `json:"language"`
	Passed    bool           `json:"passed"`
	PathA     EntitySequence `json:"path_a"` // Document wrapper accessor
	PathB     EntitySequence `json:"path_b"` // Extraction function on the document's analysis
	PathC     EntitySequence `json:"path_c"` // Extraction function on an independent pipeline run
	Mismatch  string         `json:"mismatch,omitempty"`
	Metadata  Metadata       `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// NewCheckRun creates an unsaved run for the given configuration
func NewCheckRun(config CheckConfig) *CheckRun {
	return &CheckRun{
		RID:      uuid.New(),
		Text:     config.Text,
		Language: config.Language,
		Metadata: Metadata{
			"include_types":    config.IncludeTypes,
			"exclude_types":    config.ExcludeTypes,
			"drop_determiners": config.DropDeterminers,
			"min_freq":         config.MinFreq,
		},
	}
}
