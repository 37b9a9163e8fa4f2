package nlg

import "fmt"

// Generator renders one sentence for one observation pair.
type Generator struct {
	title    string
	oldValue float64
	newValue float64
	settings Settings
	bank     Bank
	picker   Picker
	vars     *variableStore

	last      Classification
	generated bool
}

// Option configures a Generator.
type Option func(*Generator)

// WithPicker replaces the default random template choice.
func WithPicker(p Picker) Option {
	return func(g *Generator) {
		if p != nil {
			g.picker = p
		}
	}
}

// New creates a Generator. settings may be partially filled; unset fields
// take their defaults. The caller's settings value is not modified.
func New(title string, oldValue, newValue float64, bank Bank, settings Settings, opts ...Option) (*Generator, error) {
	if err := checkFinite("old value", oldValue); err != nil {
		return nil, err
	}
	if err := checkFinite("new value", newValue); err != nil {
		return nil, err
	}
	settings = settings.WithDefaults()
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	g := &Generator{
		title:    title,
		oldValue: oldValue,
		newValue: newValue,
		settings: settings,
		bank:     bank,
		picker:   globalPicker{},
		vars:     newVariableStore(title, oldValue, newValue),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Settings returns the defaulted settings in use.
func (g *Generator) Settings() Settings {
	return g.settings
}

// AddVariables merges entries into the variable store. Later values win.
func (g *Generator) AddVariables(entries map[string]interface{}) {
	g.vars.merge(entries)
}

// Variables returns a copy of the current variables.
func (g *Generator) Variables() map[string]interface{} {
	return g.vars.snapshot()
}

// AddTemplate appends text to an existing bank bucket.
func (g *Generator) AddTemplate(dataType string, polarity Polarity, level Level, text string) error {
	return g.bank.Append(dataType, polarity, level, text)
}

// Generate computes growth, classifies it and renders a sentence from the
// matching bucket.
func (g *Generator) Generate() (string, error) {
	growth, err := Growth(g.oldValue, g.newValue, g.settings.Precision)
	if err != nil {
		return "", err
	}
	g.vars.merge(map[string]interface{}{VarGrowth: FormatGrowth(growth)})

	c := Classify(growth, g.settings, g.oldValue, g.newValue)
	g.last = c
	g.generated = true

	templates, err := g.bank.Lookup(g.settings.DataType, c.Polarity, c.Level)
	if err != nil {
		return "", err
	}
	i := g.picker.IntN(len(templates))
	if i < 0 || i >= len(templates) {
		return "", fmt.Errorf("picker returned index %d for %d templates", i, len(templates))
	}

	return Capitalize(Substitute(templates[i], g.vars.snapshot())), nil
}

// Intensity returns the level from the most recent Generate call.
func (g *Generator) Intensity() (Level, error) {
	if !g.generated {
		return 0, ErrNotGenerated
	}
	return g.last.Level, nil
}

// Classification returns the growth, level and polarity from the most recent
// Generate call.
func (g *Generator) Classification() (Classification, error) {
	if !g.generated {
		return Classification{}, ErrNotGenerated
	}
	return g.last, nil
}
