// Package plant groups reactor units under their plant.
package plant

import (
	"regexp"
	"strings"
)

// Resolver maps a raw unit label to a plant identifier.
type Resolver interface {
	PlantOf(unitLabel string) string
}

// SuffixResolver derives the plant by stripping a trailing unit-number
// suffix from the label: a trailing run of whitespace and digits, or a
// trailing "Unit <digits>" phrase (case-insensitive).
//
// This is a heuristic, not a plant registry. Two distinct plants whose
// labels share a normalized prefix would merge, and a plant whose base
// name itself ends in digits would lose them.
type SuffixResolver struct{}

var unitSuffixRE = regexp.MustCompile(`(?i)(?:\s*unit\s*\d+|\s+\d+)$`)

func (SuffixResolver) PlantOf(unitLabel string) string {
	// Trim before matching: the suffix pattern is anchored at the end
	// of the string, so untrimmed labels would never match it.
	unitLabel = strings.TrimSpace(unitLabel)
	return strings.TrimSpace(unitSuffixRE.ReplaceAllString(unitLabel, ""))
}

// Bucket holds one plant's units with their current zero streaks.
type Bucket struct {
	Plant       string
	Units       map[string]int // unit label -> zero-streak days
	MaxZeroDays int
}

// GroupByPlant partitions a unit -> zero-streak mapping into per-plant
// buckets and computes each plant's maximum unit streak.
func GroupByPlant(unitStreaks map[string]int, r Resolver) map[string]*Bucket {
	buckets := make(map[string]*Bucket)
	for unit, days := range unitStreaks {
		name := r.PlantOf(unit)
		b, ok := buckets[name]
		if !ok {
			b = &Bucket{Plant: name, Units: make(map[string]int)}
			buckets[name] = b
		}
		b.Units[unit] = days
		if days > b.MaxZeroDays {
			b.MaxZeroDays = days
		}
	}
	return buckets
}
