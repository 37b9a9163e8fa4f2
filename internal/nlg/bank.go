package nlg

import (
	"errors"
	"fmt"
	"sort"
)

// Bank is a catalog of sentence templates indexed by dataType, polarity and
// level key (Level.String()).
type Bank map[string]map[Polarity]map[string][]string

// Lookup returns the templates stored at dataType/polarity/level.
func (b Bank) Lookup(dataType string, polarity Polarity, level Level) ([]string, error) {
	bucket, err := b.bucket(dataType, polarity, level)
	if err != nil {
		return nil, err
	}
	if len(bucket) == 0 {
		return nil, &BucketError{DataType: dataType, Polarity: polarity, Level: level, Err: ErrEmptyTemplateBucket}
	}
	return bucket, nil
}

// Append adds text to an existing bucket. Buckets are never created here, so
// an append fails exactly where a lookup would.
func (b Bank) Append(dataType string, polarity Polarity, level Level, text string) error {
	if _, err := b.bucket(dataType, polarity, level); err != nil {
		return err
	}
	key := level.String()
	b[dataType][polarity][key] = append(b[dataType][polarity][key], text)
	return nil
}

func (b Bank) bucket(dataType string, polarity Polarity, level Level) ([]string, error) {
	missing := func(key string) error {
		return &BucketError{DataType: dataType, Polarity: polarity, Level: level, Missing: key, Err: ErrNoTemplateBucket}
	}

	polarities, ok := b[dataType]
	if !ok {
		return nil, missing("dataType")
	}
	levels, ok := polarities[polarity]
	if !ok {
		return nil, missing("polarity")
	}
	bucket, ok := levels[level.String()]
	if !ok {
		return nil, missing("level")
	}
	return bucket, nil
}

// Clone returns a deep copy of the bank.
func (b Bank) Clone() Bank {
	if b == nil {
		return nil
	}
	out := make(Bank, len(b))
	for dataType, polarities := range b {
		pc := make(map[Polarity]map[string][]string, len(polarities))
		for polarity, levels := range polarities {
			lc := make(map[string][]string, len(levels))
			for level, templates := range levels {
				lc[level] = append([]string(nil), templates...)
			}
			pc[polarity] = lc
		}
		out[dataType] = pc
	}
	return out
}

// DataTypes returns the bank's data types in sorted order.
func (b Bank) DataTypes() []string {
	out := make([]string, 0, len(b))
	for dataType := range b {
		out = append(out, dataType)
	}
	sort.Strings(out)
	return out
}

// Validate checks that every polarity is known, every level key parses, and
// each level agrees with its polarity (positive levels under "positive" and so on).
func (b Bank) Validate() error {
	var errs []error
	for _, dataType := range b.DataTypes() {
		for polarity, levels := range b[dataType] {
			if !polarity.Valid() {
				errs = append(errs, fmt.Errorf("%s: unknown polarity %q", dataType, polarity))
				continue
			}
			for key := range levels {
				level, err := ParseLevel(key)
				if err != nil {
					errs = append(errs, fmt.Errorf("%s/%s: %w", dataType, polarity, err))
					continue
				}
				if !levelMatchesPolarity(level, polarity) {
					errs = append(errs, fmt.Errorf("%s/%s: level %s does not belong to this polarity", dataType, polarity, key))
				}
			}
		}
	}
	return errors.Join(errs...)
}

// levelMatchesPolarity allows level 0 under positive and negative as well,
// since bank authors commonly keep a "barely moved" bucket on each side.
func levelMatchesPolarity(level Level, polarity Polarity) bool {
	switch polarity {
	case PolarityNA:
		return level == LevelNA
	case PolarityNeutral:
		return level == 0
	case PolarityPositive:
		return level != LevelNA && level >= 0
	case PolarityNegative:
		return level != LevelNA && level <= 0
	}
	return false
}
