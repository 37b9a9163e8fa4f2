package report

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rewired-gh/nlgen/internal/models"
	"github.com/rewired-gh/nlgen/internal/nlg"
	"github.com/rewired-gh/nlgen/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBank() nlg.Bank {
	return nlg.Bank{
		"default": {
			nlg.PolarityNA: {"na": {"{title} moved from {oldData} to {newData}"}},
		},
		"peopleCount": {
			nlg.PolarityPositive: {"1": {"{title} rose"}, "2": {"{title} rose a lot"}, "3": {"{title} soared by {growth} {actualDim}"}},
			nlg.PolarityNegative: {"-1": {"{title} dipped"}, "-2": {"{title} fell"}, "-3": {"{title} plunged by {growth}"}},
			nlg.PolarityNeutral:  {"0": {"{title} held steady"}},
		},
	}
}

var fixedNow = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func newBuilder(defaults nlg.Settings) *Builder {
	return New(testBank(), defaults,
		WithPicker(nlg.PickerFunc(func(int) int { return 0 })),
		WithClock(func() time.Time { return fixedNow }),
	)
}

func TestGenerate(t *testing.T) {
	b := newBuilder(nlg.Settings{Sensitiveness: 25, Threshold: 20, DataType: "peopleCount"})

	entries, errs := b.Generate([]models.Observation{
		{Title: "people count", Old: 5, New: 10, Variables: map[string]interface{}{"actualDim": "today"}},
		{Title: "visitors", Old: 100, New: 60},
		{Title: "staff", Old: 5, New: 5},
	})
	require.Empty(t, errs)
	require.Len(t, entries, 3)

	assert.Equal(t, "People count soared by 100% today", entries[0].Sentence)
	assert.Equal(t, nlg.Level(3), entries[0].Level)
	assert.Equal(t, nlg.PolarityPositive, entries[0].Polarity)
	assert.Equal(t, "peopleCount", entries[0].DataType)
	assert.Equal(t, fixedNow, entries[0].GeneratedAt)

	assert.Equal(t, "Visitors fell", entries[1].Sentence)
	assert.Equal(t, -40.0, entries[1].Growth)

	assert.Equal(t, "Staff held steady", entries[2].Sentence)
	assert.Equal(t, nlg.PolarityNeutral, entries[2].Polarity)

	for _, e := range entries {
		_, err := uuid.Parse(e.ID)
		assert.NoError(t, err)
		assert.NoError(t, e.Validate())
	}
}

func TestGenerate_ObservationSettingsOverrideDefaults(t *testing.T) {
	b := newBuilder(nlg.Settings{Sensitiveness: 25, Threshold: 20, DataType: "peopleCount"})

	entries, errs := b.Generate([]models.Observation{
		{Title: "raw", Old: 1, New: 2, Settings: nlg.Settings{DataType: "default"}},
	})
	require.Empty(t, errs)
	require.Len(t, entries, 1)
	assert.Equal(t, "Raw moved from 1 to 2", entries[0].Sentence)
	assert.Equal(t, nlg.LevelNA, entries[0].Level)
}

func TestGenerate_CollectsErrors(t *testing.T) {
	b := newBuilder(nlg.Settings{})

	entries, errs := b.Generate([]models.Observation{
		{Title: "ok", Old: 1, New: 2},
		{Title: "", Old: 1, New: 2},
		{Title: "revenue", Old: 100, New: 300, Settings: nlg.Settings{DataType: "revenue"}},
	})

	require.Len(t, entries, 1)
	assert.Equal(t, "ok", entries[0].Title)

	require.Len(t, errs, 2)
	assert.Equal(t, 1, errs[0].Index)
	assert.True(t, errors.Is(errs[0], nlg.ErrInvalidInput))
	assert.Equal(t, "revenue", errs[1].Title)
	assert.True(t, errors.Is(errs[1], nlg.ErrNoTemplateBucket))
	assert.Contains(t, errs[1].Error(), "observation 2 (revenue)")
}

func TestGenerate_ObservationBankFromCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weather.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"weather": {"positive": {"2": ["{title} climbed"]}}}`), 0o644))

	store := storage.New(time.Minute, 0o644, 0o755)
	b := New(testBank(), nlg.Settings{Sensitiveness: 25, Threshold: 20},
		WithPicker(nlg.PickerFunc(func(int) int { return 0 })),
		WithBankLoader(store),
	)
	obs := models.Observation{Title: "rain", Old: 100, New: 150, Bank: path, Settings: nlg.Settings{DataType: "weather"}}

	entries, errs := b.Generate([]models.Observation{obs, {Title: "staff", Old: 5, New: 5, Settings: nlg.Settings{DataType: "peopleCount"}}})
	require.Empty(t, errs)
	require.Len(t, entries, 2)
	assert.Equal(t, "Rain climbed", entries[0].Sentence)
	assert.Equal(t, "Staff held steady", entries[1].Sentence)

	// the file is gone, so a second batch can only succeed from the cache
	require.NoError(t, os.Remove(path))
	entries, errs = b.Generate([]models.Observation{obs})
	require.Empty(t, errs)
	assert.Equal(t, "Rain climbed", entries[0].Sentence)
}

func TestGenerate_ObservationBankWithoutLoader(t *testing.T) {
	b := newBuilder(nlg.Settings{})

	_, errs := b.Generate([]models.Observation{{Title: "rain", Old: 1, New: 2, Bank: "weather.json"}})
	require.Len(t, errs, 1)
	assert.ErrorContains(t, errs[0], "no bank loader")
}

func TestRank(t *testing.T) {
	entries := []models.Entry{
		{Title: "b", Growth: 10},
		{Title: "a", Growth: -50},
		{Title: "c", Growth: 50},
		{Title: "d", Growth: 0},
	}

	ranked := Rank(entries, 3)
	require.Len(t, ranked, 3)
	assert.Equal(t, "a", ranked[0].Title, "ties broken by title")
	assert.Equal(t, "c", ranked[1].Title)
	assert.Equal(t, "b", ranked[2].Title)

	assert.Equal(t, "b", entries[0].Title, "input must not be reordered")

	assert.Len(t, Rank(entries, 0), 4)
	assert.Len(t, Rank(entries, 10), 4)
	assert.Empty(t, Rank(nil, 5))
}
