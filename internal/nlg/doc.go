// Package nlg turns a pair of numeric observations into a sentence describing
// the change between them.
//
// Generation runs in three steps:
//
//	growth   = round((new - old) / (old + ε) × 100, precision)
//	level    = clamp(round(growth / sensitiveness), -3, 3)
//	sentence = capitalize(substitute(pick(bank[dataType][polarity][level])))
//
// Growth is a percentage, so Settings.Threshold and Settings.Sensitiveness are
// percentage points as well. A dataType of "default" disables classification:
// the level and polarity are both "na" and the sentence comes from the
// default/na/na bucket.
//
// Changes where both old and new are below 10 are always level 0. The check
// is on the signed values, so any pair of negative observations lands there
// too; banks for quantities that can go negative should plan for it.
//
// A Generator is not safe for concurrent use. Each instance must be confined
// to a single caller. The Bank handed to New is shared by reference, so
// AddTemplate is visible to every Generator built on the same Bank.
package nlg
