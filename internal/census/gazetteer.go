package census

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cwhicks/siteingest/internal/errors"
)

// GazetteerEntry holds the geographic attributes of a single place from a
// Census gazetteer file, keyed by its GEOID.
type GazetteerEntry struct {
	Name          string
	Latitude      float64
	Longitude     float64
	LandAreaSqMi  float64
	WaterAreaSqMi float64
	ANSICode      string
}

// Gazetteer column names. The files pad the last column name with trailing
// whitespace, so header names are trimmed on load.
const (
	colGeoID     = "GEOID"
	colName      = "NAME"
	colLatitude  = "INTPTLAT"
	colLongitude = "INTPTLONG"
	colLandArea  = "ALAND_SQMI"
	colWaterArea = "AWATER_SQMI"
	colANSICode  = "ANSICODE"
)

// LoadGazetteer reads a tab-delimited gazetteer file into a map keyed by
// GEOID. Rows with unparseable coordinates or areas are skipped with an
// error returned only if the file itself cannot be read or is missing
// required columns.
func LoadGazetteer(path string) (map[string]GazetteerEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.New(err).
			Category(errors.CategoryFileIO).
			Context("path", path).
			Build()
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1
	// Place names can carry stray quote characters.
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, errors.New(err).
			Category(errors.CategoryFileParsing).
			Context("path", path).
			Context("operation", "read-header").
			Build()
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	required := []string{colGeoID, colName, colLatitude, colLongitude, colLandArea, colWaterArea, colANSICode}
	for _, name := range required {
		if _, ok := columns[name]; !ok {
			return nil, errors.Newf("gazetteer file missing column %s", name).
				Category(errors.CategoryFileParsing).
				Context("path", path).
				Build()
		}
	}

	places := make(map[string]GazetteerEntry)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				// Malformed row affects only itself, keep going.
				continue
			}
			return nil, errors.New(err).
				Category(errors.CategoryFileParsing).
				Context("path", path).
				Build()
		}
		entry, geoid, err := parseGazetteerRow(row, columns)
		if err != nil {
			continue
		}
		places[geoid] = entry
	}

	return places, nil
}

func parseGazetteerRow(row []string, columns map[string]int) (GazetteerEntry, string, error) {
	field := func(name string) string {
		i := columns[name]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	geoid := field(colGeoID)
	if geoid == "" {
		return GazetteerEntry{}, "", fmt.Errorf("row has empty GEOID")
	}

	lat, err := strconv.ParseFloat(field(colLatitude), 64)
	if err != nil {
		return GazetteerEntry{}, "", fmt.Errorf("parsing latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(field(colLongitude), 64)
	if err != nil {
		return GazetteerEntry{}, "", fmt.Errorf("parsing longitude: %w", err)
	}
	landArea, err := strconv.ParseFloat(field(colLandArea), 64)
	if err != nil {
		return GazetteerEntry{}, "", fmt.Errorf("parsing land area: %w", err)
	}
	waterArea, err := strconv.ParseFloat(field(colWaterArea), 64)
	if err != nil {
		return GazetteerEntry{}, "", fmt.Errorf("parsing water area: %w", err)
	}

	return GazetteerEntry{
		Name:          field(colName),
		Latitude:      lat,
		Longitude:     lon,
		LandAreaSqMi:  landArea,
		WaterAreaSqMi: waterArea,
		ANSICode:      field(colANSICode),
	}, geoid, nil
}
