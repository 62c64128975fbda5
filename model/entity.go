package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Entity represents a labelled span of text referring to a named object (person, place, organization, etc.)
type Entity struct {
	Text     string   `json:"text"`
	Label    string   `json:"label"`
	Start    int      `json:"start"` // Byte offset into the analysed text
	End      int      `json:"end"`
	Metadata Metadata `json:"metadata,omitempty"` // Model confidence and other extras, ignored by Equal
}

// Equal compares span, label and text. Metadata is not part of the comparison.
func (e Entity) Equal(other Entity) bool {
	return e.Text == other.Text &&
		e.Label == other.Label &&
		e.Start == other.Start &&
		e.End == other.End
}

func (e Entity) String() string {
	return fmt.Sprintf("%q/%s[%d:%d]", e.Text, e.Label, e.Start, e.End)
}

// EntitySequence is an ordered list of entities produced by one extraction call
type EntitySequence []Entity

// Equal reports whether both sequences hold equal entities in the same order.
// A nil and an empty sequence are equal.
func (s EntitySequence) Equal(other EntitySequence) bool {
	return s.FirstDifference(other) == -1
}

// FirstDifference returns the first index at which the sequences differ, or -1 if they are equal.
// When one sequence is a prefix of the other, the length of the shorter one is returned.
func (s EntitySequence) FirstDifference(other EntitySequence) int {
	n := min(len(s), len(other))
	for i := 0; i < n; i++ {
		if !s[i].Equal(other[i]) {
			return i
		}
	}
	if len(s) != len(other) {
		return n
	}
	return -1
}

// At returns the entity at index i, or false if i is out of range
func (s EntitySequence) At(i int) (Entity, bool) {
	if i < 0 || i >= len(s) {
		return Entity{}, false
	}
	return s[i], true
}

// Texts returns the entity texts in order
func (s EntitySequence) Texts() []string {
	texts := make([]string, 0, len(s))
	for _, e := range s {
		texts = append(texts, e.Text)
	}
	return texts
}

// Value implements the driver.Valuer interface for database storage
func (s EntitySequence) Value() (driver.Value, error) {
	if s == nil {
		return json.Marshal(EntitySequence{})
	}
	return json.Marshal(s)
}

// Scan implements the sql.Scanner interface for database retrieval
func (s *EntitySequence) Scan(value interface{}) error {
	*s = EntitySequence{}
	return scanJSON(value, s)
}
