package models

import (
	"errors"
	"time"

	"github.com/rewired-gh/nlgen/internal/nlg"
)

// Entry is one generated sentence in a report.
type Entry struct {
	ID          string       `json:"id" yaml:"id"`
	Title       string       `json:"title" yaml:"title"`
	DataType    string       `json:"data_type" yaml:"data_type"`
	Old         float64      `json:"old" yaml:"old"`
	New         float64      `json:"new" yaml:"new"`
	Growth      float64      `json:"growth" yaml:"growth"`
	Level       nlg.Level    `json:"level" yaml:"level"`
	Polarity    nlg.Polarity `json:"polarity" yaml:"polarity"`
	Sentence    string       `json:"sentence" yaml:"sentence"`
	GeneratedAt time.Time    `json:"generated_at" yaml:"generated_at"`
}

// Validate checks that all entry fields are consistent
func (e *Entry) Validate() error {
	if e.ID == "" {
		return errors.New("entry ID must not be empty")
	}
	if e.Title == "" {
		return errors.New("entry title must not be empty")
	}
	if e.Sentence == "" {
		return errors.New("sentence must not be empty")
	}
	if e.Level != nlg.LevelNA && (e.Level < nlg.MinLevel || e.Level > nlg.MaxLevel) {
		return errors.New("level must be na or between -3 and 3")
	}
	if nlg.PolarityOf(e.Level) != e.Polarity {
		return errors.New("polarity must match the sign of level")
	}
	if e.GeneratedAt.After(time.Now()) {
		return errors.New("generated at must not be in the future")
	}
	return nil
}
