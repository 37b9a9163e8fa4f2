package nlg

import (
	"math"
	"strings"

	"github.com/spf13/cast"
)

// DefaultDataType disables classification.
const DefaultDataType = "default"

// Default settings applied to zero-valued fields.
const (
	DefaultSensitiveness = 0.2
	DefaultThreshold     = 0.1
	DefaultPrecision     = 0
)

// Settings controls how growth is rounded and classified.
// A zero field means "not set" and is replaced by its default.
type Settings struct {
	// Sensitiveness is the growth, in percentage points, that makes up one level.
	Sensitiveness float64 `json:"sensitiveness,omitempty" yaml:"sensitiveness,omitempty" mapstructure:"sensitiveness"`
	// Threshold is the largest |growth|, in percentage points, still classified as level 0.
	Threshold float64 `json:"threshold,omitempty" yaml:"threshold,omitempty" mapstructure:"threshold"`
	// Precision is the number of decimal places kept in growth.
	Precision int    `json:"precision,omitempty" yaml:"precision,omitempty" mapstructure:"precision"`
	DataType  string `json:"data_type,omitempty" yaml:"data_type,omitempty" mapstructure:"data_type"`
}

// WithDefaults returns a copy of s with every unset field filled in.
func (s Settings) WithDefaults() Settings {
	return s.Merge(Settings{
		Sensitiveness: DefaultSensitiveness,
		Threshold:     DefaultThreshold,
		Precision:     DefaultPrecision,
		DataType:      DefaultDataType,
	})
}

// Merge returns a copy of s whose unset fields are taken from fallback.
func (s Settings) Merge(fallback Settings) Settings {
	if s.Sensitiveness == 0 {
		s.Sensitiveness = fallback.Sensitiveness
	}
	if s.Threshold == 0 {
		s.Threshold = fallback.Threshold
	}
	if s.Precision == 0 {
		s.Precision = fallback.Precision
	}
	if s.DataType == "" {
		s.DataType = fallback.DataType
	}
	return s
}

// Validate checks a defaulted Settings value.
func (s Settings) Validate() error {
	if math.IsNaN(s.Sensitiveness) || math.IsInf(s.Sensitiveness, 0) || s.Sensitiveness <= 0 {
		return invalidInput("sensitiveness must be a positive number, got %v", s.Sensitiveness)
	}
	if math.IsNaN(s.Threshold) || math.IsInf(s.Threshold, 0) || s.Threshold < 0 {
		return invalidInput("threshold must be a non-negative number, got %v", s.Threshold)
	}
	if s.Precision < 0 {
		return invalidInput("precision must not be negative, got %d", s.Precision)
	}
	if s.DataType == "" {
		return invalidInput("data type must not be empty")
	}
	return nil
}

// ParseValue converts a raw observation (a number or a numeric string) into
// a float64. Anything that is not a finite number yields ErrInvalidInput.
func ParseValue(raw interface{}) (float64, error) {
	switch r := raw.(type) {
	case nil, bool:
		return 0, invalidInput("%v is not a number", raw)
	case string:
		raw = strings.TrimSpace(r)
	}
	v, err := cast.ToFloat64E(raw)
	if err != nil {
		return 0, invalidInput("%v is not a number", raw)
	}
	if err := checkFinite("value", v); err != nil {
		return 0, err
	}
	return v, nil
}

func checkFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return invalidInput("%s must be a finite number, got %v", name, v)
	}
	return nil
}
