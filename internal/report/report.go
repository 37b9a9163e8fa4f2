// Package report generates sentences for many observations at once and ranks
// them so the largest moves come first.
//
// Each observation gets its own nlg.Generator; only the template bank and
// the picker are shared. Observation settings are layered over the report
// defaults, which are in turn layered over the nlg defaults.
//
// Use Rank to keep the top-K entries by absolute growth.
package report

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rewired-gh/nlgen/internal/logger"
	"github.com/rewired-gh/nlgen/internal/models"
	"github.com/rewired-gh/nlgen/internal/nlg"
)

// BankLoader resolves the bank file named by an observation
type BankLoader interface {
	LoadBank(path string) (nlg.Bank, error)
}

// Builder turns observations into report entries
type Builder struct {
	bank     nlg.Bank
	loader   BankLoader
	defaults nlg.Settings
	picker   nlg.Picker
	now      func() time.Time
}

// Option configures a Builder
type Option func(*Builder)

// WithPicker pins template selection, mainly for tests
func WithPicker(p nlg.Picker) Option {
	return func(b *Builder) { b.picker = p }
}

// WithBankLoader lets observations name their own bank file. Without it an
// observation carrying a bank path fails.
func WithBankLoader(l BankLoader) Option {
	return func(b *Builder) { b.loader = l }
}

// WithClock overrides the time source for GeneratedAt
func WithClock(now func() time.Time) Option {
	return func(b *Builder) { b.now = now }
}

// New creates a new Builder
func New(bank nlg.Bank, defaults nlg.Settings, opts ...Option) *Builder {
	b := &Builder{
		bank:     bank,
		defaults: defaults,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// GenerationError represents a per-observation failure
type GenerationError struct {
	Index int
	Title string
	Err   error
}

func (e GenerationError) Error() string {
	return fmt.Sprintf("generation error for observation %d (%s): %v", e.Index, e.Title, e.Err)
}

func (e GenerationError) Unwrap() error {
	return e.Err
}

// Generate renders one entry per observation. Failures are collected per
// observation and never abort the batch. Entries keep input order.
func (b *Builder) Generate(observations []models.Observation) ([]models.Entry, []GenerationError) {
	entries := make([]models.Entry, 0, len(observations))
	var genErrors []GenerationError
	now := b.now()

	for i, obs := range observations {
		entry, err := b.generateOne(obs, now)
		if err != nil {
			genErrors = append(genErrors, GenerationError{Index: i, Title: obs.Title, Err: err})
			continue
		}
		entries = append(entries, entry)
	}

	logger.Debug("Report: %d observations, %d entries, %d errors", len(observations), len(entries), len(genErrors))
	return entries, genErrors
}

func (b *Builder) generateOne(obs models.Observation, now time.Time) (models.Entry, error) {
	if err := obs.Validate(); err != nil {
		return models.Entry{}, fmt.Errorf("%w: %v", nlg.ErrInvalidInput, err)
	}

	bank, err := b.bankFor(obs)
	if err != nil {
		return models.Entry{}, err
	}

	var opts []nlg.Option
	if b.picker != nil {
		opts = append(opts, nlg.WithPicker(b.picker))
	}
	g, err := nlg.New(obs.Title, obs.Old, obs.New, bank, obs.Settings.Merge(b.defaults), opts...)
	if err != nil {
		return models.Entry{}, err
	}
	if len(obs.Variables) > 0 {
		g.AddVariables(obs.Variables)
	}

	sentence, err := g.Generate()
	if err != nil {
		return models.Entry{}, err
	}
	c, err := g.Classification()
	if err != nil {
		return models.Entry{}, err
	}

	return models.Entry{
		ID:          uuid.New().String(),
		Title:       obs.Title,
		DataType:    g.Settings().DataType,
		Old:         obs.Old,
		New:         obs.New,
		Growth:      c.Growth,
		Level:       c.Level,
		Polarity:    c.Polarity,
		Sentence:    sentence,
		GeneratedAt: now,
	}, nil
}

func (b *Builder) bankFor(obs models.Observation) (nlg.Bank, error) {
	if obs.Bank == "" {
		return b.bank, nil
	}
	if b.loader == nil {
		return nil, fmt.Errorf("observation names bank %s but no bank loader is configured", obs.Bank)
	}
	return b.loader.LoadBank(obs.Bank)
}

// Rank sorts entries by absolute growth descending and returns at most k of
// them. Ties are broken by title ascending for determinism. A k <= 0 keeps
// every entry. The input slice is not modified.
func Rank(entries []models.Entry, k int) []models.Entry {
	ranked := make([]models.Entry, len(entries))
	copy(ranked, entries)

	sort.SliceStable(ranked, func(i, j int) bool {
		gi, gj := math.Abs(ranked[i].Growth), math.Abs(ranked[j].Growth)
		if gi != gj {
			return gi > gj
		}
		return ranked[i].Title < ranked[j].Title
	})

	if k > 0 && k < len(ranked) {
		ranked = ranked[:k]
	}
	return ranked
}
