package census

import (
	"sort"
)

// placeCodeLength is the number of trailing GEOID characters forming the
// place code. GEOIDs are structured as state FIPS + place code.
const placeCodeLength = 5

// Place is the joined record produced by merging a gazetteer entry with the
// population entry sharing its derived place code.
type Place struct {
	GeoID         string
	Name          string
	StateAbbrev   string
	Latitude      float64
	Longitude     float64
	Pop2010       *int
	Pop2020       *int
	LandAreaSqMi  float64
	WaterAreaSqMi float64
	ANSICode      string
}

// MergeStats reports the outcome of a merge pass.
type MergeStats struct {
	Inserted int // gazetteer entries with a matching population entry
	Skipped  int // gazetteer entries without one
}

// PlaceCode derives the population join key from a gazetteer GEOID by taking
// its final five characters. Shorter identifiers are used whole.
func PlaceCode(geoid string) string {
	if len(geoid) <= placeCodeLength {
		return geoid
	}
	return geoid[len(geoid)-placeCodeLength:]
}

// Merge joins gazetteer entries with population entries on the derived place
// code. Gazetteer entries without a population match are counted as skipped
// and excluded; a miss is never an error. Entries are processed in GEOID
// order so repeated runs on identical inputs produce identical output.
func Merge(gazetteer map[string]GazetteerEntry, population map[string]PopulationEntry) ([]Place, MergeStats) {
	geoids := make([]string, 0, len(gazetteer))
	for geoid := range gazetteer {
		geoids = append(geoids, geoid)
	}
	sort.Strings(geoids)

	var stats MergeStats
	places := make([]Place, 0, len(gazetteer))

	for _, geoid := range geoids {
		gaz := gazetteer[geoid]

		pop, ok := population[PlaceCode(geoid)]
		if !ok {
			stats.Skipped++
			continue
		}

		places = append(places, Place{
			GeoID:         geoid,
			Name:          gaz.Name,
			StateAbbrev:   pop.StateAbbrev,
			Latitude:      gaz.Latitude,
			Longitude:     gaz.Longitude,
			Pop2010:       pop.Pop2010,
			Pop2020:       pop.Pop2020,
			LandAreaSqMi:  gaz.LandAreaSqMi,
			WaterAreaSqMi: gaz.WaterAreaSqMi,
			ANSICode:      gaz.ANSICode,
		})
		stats.Inserted++
	}

	return places, stats
}
