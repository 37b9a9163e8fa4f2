package nlg

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	people := Settings{Sensitiveness: 25, Threshold: 20, DataType: "peopleCount"}.WithDefaults()

	tests := []struct {
		name     string
		growth   float64
		settings Settings
		oldValue float64
		newValue float64
		level    Level
		polarity Polarity
	}{
		{"default data type disables classification", 100, Settings{}.WithDefaults(), 5, 10, LevelNA, PolarityNA},
		{"default data type ignores huge growth", -1e6, Settings{}.WithDefaults(), 500, 1, LevelNA, PolarityNA},
		{"doubling saturates at 3", 100, people, 5, 10, 3, PolarityPositive},
		{"unchanged is neutral", 0, people, 5, 5, 0, PolarityNeutral},
		{"within threshold", 20, people, 100, 120, 0, PolarityNeutral},
		{"small sample guard", 80, people, 5, 9, 0, PolarityNeutral},
		{"guard needs both values small", 80, people, 5, 10, 3, PolarityPositive},
		{"guard compares signed values", 400, people, -1000, -5000, 0, PolarityNeutral},
		{"one level up", 30, people, 100, 130, 1, PolarityPositive},
		{"half rounds away from zero", 37.5, people, 100, 137.5, 2, PolarityPositive},
		{"negative half rounds away from zero", -37.5, people, 100, 62.5, -2, PolarityNegative},
		{"drop saturates at -3", -100, people, 100, 0, -3, PolarityNegative},
		{"huge ratio saturates", 1e300, people, 100, 1e300, 3, PolarityPositive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Classify(tt.growth, tt.settings, tt.oldValue, tt.newValue)
			assert.Equal(t, tt.growth, c.Growth)
			assert.Equal(t, tt.level, c.Level)
			assert.Equal(t, tt.polarity, c.Polarity)
		})
	}
}

func TestClassify_LevelAlwaysInRange(t *testing.T) {
	s := Settings{DataType: "sales"}.WithDefaults()
	for growth := -1000.0; growth <= 1000; growth += 0.7 {
		c := Classify(growth, s, 100, 200)
		assert.GreaterOrEqual(t, int(c.Level), int(MinLevel))
		assert.LessOrEqual(t, int(c.Level), int(MaxLevel))
		assert.Equal(t, PolarityOf(c.Level), c.Polarity)
	}
}

func TestPolarityOf(t *testing.T) {
	assert.Equal(t, PolarityNA, PolarityOf(LevelNA))
	assert.Equal(t, PolarityPositive, PolarityOf(1))
	assert.Equal(t, PolarityPositive, PolarityOf(3))
	assert.Equal(t, PolarityNegative, PolarityOf(-1))
	assert.Equal(t, PolarityNeutral, PolarityOf(0))
}

func TestParseLevel(t *testing.T) {
	for _, key := range []string{"na", "-3", "-1", "0", "2", "3"} {
		level, err := ParseLevel(key)
		require.NoError(t, err, key)
		assert.Equal(t, key, level.String())
	}
	for _, key := range []string{"", "4", "-4", "NA", "one"} {
		_, err := ParseLevel(key)
		assert.Error(t, err, key)
	}
}

func TestLevel_JSON(t *testing.T) {
	data, err := json.Marshal(Classification{Growth: 12.5, Level: LevelNA, Polarity: PolarityNA})
	require.NoError(t, err)
	assert.JSONEq(t, `{"growth":12.5,"level":"na","polarity":"na"}`, string(data))

	var c Classification
	require.NoError(t, json.Unmarshal([]byte(`{"growth":-40,"level":"-2","polarity":"negative"}`), &c))
	assert.Equal(t, Level(-2), c.Level)
}

func TestSettings_WithDefaults(t *testing.T) {
	in := Settings{DataType: "peopleCount", Threshold: 20}
	out := in.WithDefaults()

	assert.Equal(t, Settings{Sensitiveness: 0.2, Threshold: 20, Precision: 0, DataType: "peopleCount"}, out)
	assert.Equal(t, Settings{DataType: "peopleCount", Threshold: 20}, in, "input must not be modified")
	assert.Equal(t, DefaultDataType, Settings{}.WithDefaults().DataType)
}

func TestSettings_Merge(t *testing.T) {
	fallback := Settings{Sensitiveness: 25, Threshold: 20, Precision: 1, DataType: "peopleCount"}
	got := Settings{Threshold: 5}.Merge(fallback)
	assert.Equal(t, Settings{Sensitiveness: 25, Threshold: 5, Precision: 1, DataType: "peopleCount"}, got)
}

func TestSettings_Validate(t *testing.T) {
	assert.NoError(t, Settings{}.WithDefaults().Validate())
	assert.ErrorIs(t, Settings{Sensitiveness: -1}.WithDefaults().Validate(), ErrInvalidInput)
	assert.ErrorIs(t, Settings{Threshold: -1}.WithDefaults().Validate(), ErrInvalidInput)
	assert.ErrorIs(t, Settings{Precision: -2}.WithDefaults().Validate(), ErrInvalidInput)
}
