// Package models defines the records that flow around the sentence generator:
// observations read from report files and the entries produced from them.
// Both carry a Validate method so bad input is rejected at the edges.
package models

import (
	"errors"
	"math"

	"github.com/rewired-gh/nlgen/internal/nlg"
)

// Observation is one old/new pair to be described, together with the
// settings and extra template variables that apply to it. Bank optionally
// names a template bank file other than the configured one.
type Observation struct {
	Title     string                 `json:"title" yaml:"title"`
	Bank      string                 `json:"bank,omitempty" yaml:"bank,omitempty"`
	Old       float64                `json:"old" yaml:"old"`
	New       float64                `json:"new" yaml:"new"`
	Settings  nlg.Settings           `json:"settings,omitempty" yaml:"settings,omitempty"`
	Variables map[string]interface{} `json:"variables,omitempty" yaml:"variables,omitempty"`
}

// Validate checks that the observation can be handed to the generator.
func (o *Observation) Validate() error {
	if o.Title == "" {
		return errors.New("observation title must not be empty")
	}
	if math.IsNaN(o.Old) || math.IsInf(o.Old, 0) {
		return errors.New("old value must be a finite number")
	}
	if math.IsNaN(o.New) || math.IsInf(o.New, 0) {
		return errors.New("new value must be a finite number")
	}
	if o.Settings.Precision < 0 {
		return errors.New("precision must not be negative")
	}
	if o.Settings.Sensitiveness < 0 {
		return errors.New("sensitiveness must not be negative")
	}
	if o.Settings.Threshold < 0 {
		return errors.New("threshold must not be negative")
	}
	return nil
}
