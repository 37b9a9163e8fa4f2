package nlg

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBank() Bank {
	return Bank{
		"default": {
			PolarityNA: {"na": {"{title} changed from {oldData} to {newData}"}},
		},
		"peopleCount": {
			PolarityPositive: {
				"1": {"{title} rose slightly"},
				"2": {"{title} rose"},
				"3": {
					"{title} went from {oldData} to {newData}, up {growth}. {actualDim} was busy",
					"{title} exploded by {growth}",
				},
			},
			PolarityNegative: {
				"-1": {"{title} fell slightly"},
				"-2": {"{title} fell"},
				"-3": {"{title} collapsed by {growth}"},
			},
			PolarityNeutral: {
				"0": {"{title} held at {newData}"},
			},
		},
		"sparse": {
			PolarityPositive: {"3": {}},
		},
	}
}

func TestBank_Lookup(t *testing.T) {
	bank := testBank()

	templates, err := bank.Lookup("peopleCount", PolarityPositive, 3)
	require.NoError(t, err)
	assert.Len(t, templates, 2)

	templates, err = bank.Lookup("default", PolarityNA, LevelNA)
	require.NoError(t, err)
	assert.Len(t, templates, 1)
}

func TestBank_LookupErrors(t *testing.T) {
	bank := testBank()

	tests := []struct {
		name     string
		dataType string
		polarity Polarity
		level    Level
		wantErr  error
		missing  string
	}{
		{"unknown data type", "revenue", PolarityPositive, 1, ErrNoTemplateBucket, "dataType"},
		{"unknown polarity", "sparse", PolarityNegative, -1, ErrNoTemplateBucket, "polarity"},
		{"unknown level", "peopleCount", PolarityNeutral, 1, ErrNoTemplateBucket, "level"},
		{"empty bucket", "sparse", PolarityPositive, 3, ErrEmptyTemplateBucket, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := bank.Lookup(tt.dataType, tt.polarity, tt.level)
			require.ErrorIs(t, err, tt.wantErr)

			var bucketErr *BucketError
			require.True(t, errors.As(err, &bucketErr))
			assert.Equal(t, tt.missing, bucketErr.Missing)
			assert.Equal(t, tt.dataType, bucketErr.DataType)
		})
	}
}

func TestBank_Append(t *testing.T) {
	bank := testBank()

	require.NoError(t, bank.Append("peopleCount", PolarityPositive, 1, "{title} ticked up"))
	templates, err := bank.Lookup("peopleCount", PolarityPositive, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"{title} rose slightly", "{title} ticked up"}, templates)

	// empty buckets exist and can be filled
	require.NoError(t, bank.Append("sparse", PolarityPositive, 3, "{title} soared"))
	_, err = bank.Lookup("sparse", PolarityPositive, 3)
	assert.NoError(t, err)

	err = bank.Append("peopleCount", PolarityNeutral, 2, "nope")
	assert.ErrorIs(t, err, ErrNoTemplateBucket)
	err = bank.Append("revenue", PolarityNA, LevelNA, "nope")
	assert.ErrorIs(t, err, ErrNoTemplateBucket)
	_, exists := bank["revenue"]
	assert.False(t, exists, "append must not create buckets")
}

func TestBank_Clone(t *testing.T) {
	bank := testBank()
	clone := bank.Clone()

	require.NoError(t, clone.Append("peopleCount", PolarityNeutral, 0, "{title} stayed put"))
	original, _ := bank.Lookup("peopleCount", PolarityNeutral, 0)
	cloned, _ := clone.Lookup("peopleCount", PolarityNeutral, 0)
	assert.Len(t, original, 1)
	assert.Len(t, cloned, 2)

	assert.Nil(t, Bank(nil).Clone())
}

func TestBank_Validate(t *testing.T) {
	assert.NoError(t, testBank().Validate())

	tests := []struct {
		name string
		bank Bank
	}{
		{"unknown polarity", Bank{"x": {"sideways": {"0": {"a"}}}}},
		{"bad level key", Bank{"x": {PolarityPositive: {"high": {"a"}}}}},
		{"level out of range", Bank{"x": {PolarityPositive: {"4": {"a"}}}}},
		{"positive level under negative", Bank{"x": {PolarityNegative: {"2": {"a"}}}}},
		{"integer level under na", Bank{"x": {PolarityNA: {"0": {"a"}}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.bank.Validate())
		})
	}
}

func TestBank_DataTypes(t *testing.T) {
	assert.Equal(t, []string{"default", "peopleCount", "sparse"}, testBank().DataTypes())
}
