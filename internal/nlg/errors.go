package nlg

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned for observation values that are not finite
	// numbers and for settings outside their valid range.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNoTemplateBucket is returned when the bank has no bucket at the
	// requested dataType/polarity/level path.
	ErrNoTemplateBucket = errors.New("no template bucket")
	// ErrEmptyTemplateBucket is returned when the bucket exists but holds no templates.
	ErrEmptyTemplateBucket = errors.New("empty template bucket")
	// ErrNotGenerated is returned by Intensity before the first Generate call.
	ErrNotGenerated = errors.New("no sentence generated yet")
)

// BucketError describes a failed bank lookup or append.
type BucketError struct {
	DataType string
	Polarity Polarity
	Level    Level
	// Missing names the first path key that was absent ("dataType",
	// "polarity" or "level"). Empty when the path exists.
	Missing string
	Err     error
}

func (e *BucketError) Error() string {
	path := fmt.Sprintf("%s/%s/%s", e.DataType, e.Polarity, e.Level)
	if e.Missing != "" {
		return fmt.Sprintf("%v: %s (missing %s)", e.Err, path, e.Missing)
	}
	return fmt.Sprintf("%v: %s", e.Err, path)
}

func (e *BucketError) Unwrap() error {
	return e.Err
}

func invalidInput(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
