// Package report builds the flagged-plant report from per-unit streaks.
package report

import (
	"sort"
	"time"

	"github.com/reactorwatch/reactorwatch/pkg/plant"
)

// UnitEntry is one unit currently at zero power within a flagged plant.
type UnitEntry struct {
	Unit     string `json:"unit"`
	ZeroDays int    `json:"zero_days"`
}

// PlantEntry is one flagged plant with its zero-power units.
type PlantEntry struct {
	Plant       string      `json:"plant"`
	MaxZeroDays int         `json:"max_zero_days"`
	Units       []UnitEntry `json:"units"`
}

// Report is the final flagged-plant report for one day.
type Report struct {
	ReportDate    string       `json:"report_date"`
	ThresholdDays int          `json:"threshold_days"`
	FlaggedCount  int          `json:"flagged_count"`
	FlaggedPlants []PlantEntry `json:"flagged_plants"`
}

// Build rolls per-unit zero streaks up to plants and flags those whose
// longest unit streak strictly exceeds thresholdDays. A plant exactly
// at the threshold is not flagged.
//
// Ordering is deterministic: plants by max streak descending then name
// ascending, units within a plant by streak descending then label
// ascending. Units with a zero-length streak are omitted from a flagged
// plant's unit list. An empty report is a normal outcome.
func Build(reportDate time.Time, thresholdDays int, unitStreaks map[string]int, r plant.Resolver) *Report {
	rep := &Report{
		ReportDate:    reportDate.UTC().Format("2006-01-02"),
		ThresholdDays: thresholdDays,
		FlaggedPlants: []PlantEntry{},
	}

	for _, bucket := range plant.GroupByPlant(unitStreaks, r) {
		if bucket.MaxZeroDays <= thresholdDays {
			continue
		}

		units := []UnitEntry{}
		for unit, days := range bucket.Units {
			if days > 0 {
				units = append(units, UnitEntry{Unit: unit, ZeroDays: days})
			}
		}
		sort.Slice(units, func(i, j int) bool {
			if units[i].ZeroDays != units[j].ZeroDays {
				return units[i].ZeroDays > units[j].ZeroDays
			}
			return units[i].Unit < units[j].Unit
		})

		rep.FlaggedPlants = append(rep.FlaggedPlants, PlantEntry{
			Plant:       bucket.Plant,
			MaxZeroDays: bucket.MaxZeroDays,
			Units:       units,
		})
	}

	sort.Slice(rep.FlaggedPlants, func(i, j int) bool {
		a, b := rep.FlaggedPlants[i], rep.FlaggedPlants[j]
		if a.MaxZeroDays != b.MaxZeroDays {
			return a.MaxZeroDays > b.MaxZeroDays
		}
		return a.Plant < b.Plant
	})

	rep.FlaggedCount = len(rep.FlaggedPlants)
	return rep
}
