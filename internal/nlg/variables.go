package nlg

import (
	"fmt"
	"maps"

	"github.com/spf13/cast"
)

// Built-in variable names.
const (
	VarTitle   = "title"
	VarOldData = "oldData"
	VarNewData = "newData"
	VarGrowth  = "growth"
)

// variableStore holds the values substituted into templates.
type variableStore struct {
	values map[string]interface{}
}

func newVariableStore(title string, oldValue, newValue float64) *variableStore {
	return &variableStore{
		values: map[string]interface{}{
			VarTitle:   title,
			VarOldData: oldValue,
			VarNewData: newValue,
		},
	}
}

// merge adds or overwrites entries. There is no delete.
func (s *variableStore) merge(entries map[string]interface{}) {
	for name, value := range entries {
		s.values[name] = value
	}
}

func (s *variableStore) snapshot() map[string]interface{} {
	return maps.Clone(s.values)
}

// stringify renders a variable value the way it appears in a sentence.
// Floats use their shortest form, so 10.0 prints as "10".
func stringify(value interface{}) string {
	if s, err := cast.ToStringE(value); err == nil {
		return s
	}
	return fmt.Sprint(value)
}
