package nlg

import (
	"fmt"
	"math"
	"strconv"
)

// Level is the intensity of a change, an integer in [MinLevel, MaxLevel] or LevelNA.
type Level int

const (
	MinLevel Level = -3
	MaxLevel Level = 3
	// LevelNA marks a disabled classification. It renders as "na".
	LevelNA Level = math.MinInt32
)

// smallSampleGuard: when both values are below it the change is treated as level 0.
// The comparison is signed, so two negative values always hit the guard.
const smallSampleGuard = 10

func (l Level) String() string {
	if l == LevelNA {
		return "na"
	}
	return strconv.Itoa(int(l))
}

// MarshalText encodes the level as its bank key.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText accepts the forms produced by MarshalText.
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseLevel parses a bank level key: "na" or an integer in [-3, 3].
func ParseLevel(s string) (Level, error) {
	if s == "na" {
		return LevelNA, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("level %q must be \"na\" or an integer: %w", s, err)
	}
	if Level(n) < MinLevel || Level(n) > MaxLevel {
		return 0, fmt.Errorf("level %d out of range [%d, %d]", n, MinLevel, MaxLevel)
	}
	return Level(n), nil
}

// Polarity is the direction of a change.
type Polarity string

const (
	PolarityPositive Polarity = "positive"
	PolarityNegative Polarity = "negative"
	PolarityNeutral  Polarity = "neutral"
	PolarityNA       Polarity = "na"
)

// Valid reports whether p is one of the four known polarities.
func (p Polarity) Valid() bool {
	switch p {
	case PolarityPositive, PolarityNegative, PolarityNeutral, PolarityNA:
		return true
	}
	return false
}

// Classification is the derived state of one generation.
type Classification struct {
	Growth   float64  `json:"growth"`
	Level    Level    `json:"level"`
	Polarity Polarity `json:"polarity"`
}

// Classify maps growth to a level and polarity. settings must already carry
// defaults.
func Classify(growth float64, settings Settings, oldValue, newValue float64) Classification {
	level := classifyLevel(growth, settings, oldValue, newValue)
	return Classification{
		Growth:   growth,
		Level:    level,
		Polarity: PolarityOf(level),
	}
}

func classifyLevel(growth float64, settings Settings, oldValue, newValue float64) Level {
	if settings.DataType == DefaultDataType {
		return LevelNA
	}
	if math.Abs(growth) <= settings.Threshold {
		return 0
	}
	if oldValue < smallSampleGuard && newValue < smallSampleGuard {
		return 0
	}

	// Clamp before converting so huge ratios saturate instead of overflowing.
	level := math.Round(growth / settings.Sensitiveness)
	if level > float64(MaxLevel) {
		return MaxLevel
	}
	if level < float64(MinLevel) {
		return MinLevel
	}
	return Level(level)
}

// PolarityOf derives the polarity from the sign of a level.
func PolarityOf(level Level) Polarity {
	switch {
	case level == LevelNA:
		return PolarityNA
	case level > 0:
		return PolarityPositive
	case level < 0:
		return PolarityNegative
	default:
		return PolarityNeutral
	}
}
