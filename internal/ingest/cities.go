package ingest

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/cwhicks/siteingest/internal/census"
	"github.com/cwhicks/siteingest/internal/conf"
	"github.com/cwhicks/siteingest/internal/datastore"
	"github.com/cwhicks/siteingest/internal/logging"
)

// StateResult reports the outcome of importing a single state.
type StateResult struct {
	StateCode   string // code as given on the command line
	StateAbbrev string
	Inserted    int
	Skipped     int
}

// ImportSummary reports the outcome of a city import pass.
type ImportSummary struct {
	States      []StateResult
	Failed      []string // state codes that could not be imported
	TotalCities int64    // total rows in the cities table after the pass
}

// CityImporter joins gazetteer and population files per state and persists
// the merged records.
type CityImporter struct {
	settings *conf.Settings
	store    datastore.Interface
	log      *slog.Logger
}

// NewCityImporter creates a city importer with the given collaborators.
func NewCityImporter(settings *conf.Settings, store datastore.Interface) *CityImporter {
	return &CityImporter{
		settings: settings,
		store:    store,
		log:      logging.ForService("city-importer"),
	}
}

// ImportStates imports each of the given state codes in turn. A state that
// fails to import is recorded and the pass continues with the next one.
func (ci *CityImporter) ImportStates(stateCodes []string) (*ImportSummary, error) {
	summary := &ImportSummary{}

	for _, code := range stateCodes {
		result, err := ci.importState(code)
		if err != nil {
			ci.logWarn("failed to import state", "state", code, "error", err)
			summary.Failed = append(summary.Failed, code)
			continue
		}
		ci.logInfo("state imported",
			"state", result.StateAbbrev,
			"inserted", result.Inserted,
			"skipped", result.Skipped)
		summary.States = append(summary.States, result)
	}

	total, err := ci.store.CountCities()
	if err != nil {
		ci.logWarn("failed to count cities", "error", err)
	} else {
		summary.TotalCities = total
	}

	return summary, nil
}

// importState loads the gazetteer and population files for one state, merges
// them and upserts the joined records.
func (ci *CityImporter) importState(stateCode string) (StateResult, error) {
	fips, err := census.StateFIPS(stateCode)
	if err != nil {
		return StateResult{}, err
	}
	abbrev := census.StateAbbrev(fips)

	dataDir := ci.settings.Cities.DataDir
	gazetteerPath := filepath.Join(dataDir, fmt.Sprintf(ci.settings.Cities.GazetteerPattern, fips))
	populationPath := filepath.Join(dataDir, fmt.Sprintf(ci.settings.Cities.PopulationPattern, fips))

	gazetteer, err := census.LoadGazetteer(gazetteerPath)
	if err != nil {
		return StateResult{}, err
	}
	ci.logInfo("gazetteer loaded", "state", abbrev, "places", len(gazetteer))

	population, err := census.LoadPopulation(populationPath, abbrev)
	if err != nil {
		return StateResult{}, err
	}
	ci.logInfo("population data loaded", "state", abbrev, "places", len(population))

	places, stats := census.Merge(gazetteer, population)

	if err := ci.store.SaveCities(cityRows(places)); err != nil {
		return StateResult{}, err
	}

	return StateResult{
		StateCode:   stateCode,
		StateAbbrev: abbrev,
		Inserted:    stats.Inserted,
		Skipped:     stats.Skipped,
	}, nil
}

// cityRows converts joined places into datastore rows.
func cityRows(places []census.Place) []datastore.City {
	rows := make([]datastore.City, 0, len(places))
	for i := range places {
		p := &places[i]
		rows = append(rows, datastore.City{
			Name:          p.Name,
			StateAbbrev:   p.StateAbbrev,
			Latitude:      p.Latitude,
			Longitude:     p.Longitude,
			Pop2010:       p.Pop2010,
			Pop2020:       p.Pop2020,
			LandAreaSqMi:  p.LandAreaSqMi,
			WaterAreaSqMi: p.WaterAreaSqMi,
			AnsiCode:      p.ANSICode,
			GeoID:         p.GeoID,
		})
	}
	return rows
}

func (ci *CityImporter) logInfo(msg string, args ...any) {
	if ci.log != nil {
		ci.log.Info(msg, args...)
	}
}

func (ci *CityImporter) logWarn(msg string, args ...any) {
	if ci.log != nil {
		ci.log.Warn(msg, args...)
	}
}
