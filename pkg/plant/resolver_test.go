package plant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlantOf(t *testing.T) {
	cases := []struct {
		label string
		want  string
	}{
		{"Browns Ferry Unit 3", "Browns Ferry"},
		{"Diablo Canyon 2", "Diablo Canyon"},
		{"Palo Verde", "Palo Verde"},
		{"Peach Bottom unit 2", "Peach Bottom"}, // case-insensitive
		{"Watts Bar Unit2", "Watts Bar"},
		{"Arkansas Nuclear One  1", "Arkansas Nuclear One"},
		{"  Salem 1  ", "Salem"}, // untrimmed source labels
		{"Braidwood Unit 2\t", "Braidwood"},
		{"Palo Verde  ", "Palo Verde"},
		{"Columbia Generating Station", "Columbia Generating Station"},
	}

	r := SuffixResolver{}
	for _, tc := range cases {
		assert.Equal(t, tc.want, r.PlantOf(tc.label), "label %q", tc.label)
	}
}

func TestGroupByPlant(t *testing.T) {
	streaks := map[string]int{
		"Alpha Unit 1": 45,
		"Alpha Unit 2": 0,
		"Beta 1":       10,
		"Palo Verde":   3,
	}

	buckets := GroupByPlant(streaks, SuffixResolver{})
	assert.Len(t, buckets, 3)

	alpha := buckets["Alpha"]
	assert.Equal(t, 45, alpha.MaxZeroDays)
	assert.Equal(t, map[string]int{"Alpha Unit 1": 45, "Alpha Unit 2": 0}, alpha.Units)

	assert.Equal(t, 10, buckets["Beta"].MaxZeroDays)
	assert.Equal(t, 3, buckets["Palo Verde"].MaxZeroDays)
}
