package nlg

import (
	"math/rand/v2"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Picker chooses an index in [0, n). It is the only source of randomness in
// generation; tests inject a fixed one.
type Picker interface {
	IntN(n int) int
}

// PickerFunc adapts a function to Picker.
type PickerFunc func(n int) int

func (f PickerFunc) IntN(n int) int { return f(n) }

// NewSeededPicker returns a reproducible Picker.
func NewSeededPicker(seed uint64) Picker {
	return rand.New(rand.NewPCG(seed, seed))
}

type globalPicker struct{}

func (globalPicker) IntN(n int) int { return rand.IntN(n) }

var placeholderPattern = regexp.MustCompile(`\{([A-Za-z0-9_]+)\}`)

// Substitute replaces every {name} in template with the string form of
// vars[name]. Placeholders without a matching variable are left as-is.
func Substitute(template string, vars map[string]interface{}) string {
	return placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		name := match[1 : len(match)-1]
		value, ok := vars[name]
		if !ok {
			return match
		}
		return stringify(value)
	})
}

// Capitalize upper-cases the first letter of every "."-separated segment.
// Segments whose first non-space rune is not a letter (the "5%" of "12.5%")
// are left alone.
func Capitalize(sentence string) string {
	segments := strings.Split(sentence, ".")
	for i, segment := range segments {
		segments[i] = upperFirstLetter(segment)
	}
	return strings.Join(segments, ".")
}

func upperFirstLetter(segment string) string {
	for i, r := range segment {
		if unicode.IsSpace(r) {
			continue
		}
		if !unicode.IsLetter(r) {
			return segment
		}
		return segment[:i] + string(unicode.ToUpper(r)) + segment[i+utf8.RuneLen(r):]
	}
	return segment
}
