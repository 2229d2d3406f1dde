package census

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/cwhicks/siteingest/internal/errors"
)

// PopulationEntry holds the population figures of a single place from a
// Census population estimate file, keyed by its place code. Population
// values that could not be parsed stay nil.
type PopulationEntry struct {
	Name        string
	Pop2010     *int
	Pop2020     *int
	StateAbbrev string
}

// Population estimate column names.
const (
	colSumLev     = "SUMLEV"
	colPlace      = "PLACE"
	colPopName    = "NAME"
	colCensus10   = "CENSUS2010POP"
	colEstimate20 = "POPESTIMATE2020"
)

// sumLevPlace is the summary level of incorporated place rows. State and
// county level summary rows carry other codes and are skipped.
const sumLevPlace = "162"

// LoadPopulation reads a comma-delimited population estimate file into a map
// keyed by place code. Census distributes these files in latin-1 encoding,
// so the reader decodes ISO 8859-1 into UTF-8.
func LoadPopulation(path, stateAbbrev string) (map[string]PopulationEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.New(err).
			Category(errors.CategoryFileIO).
			Context("path", path).
			Build()
	}
	defer f.Close()

	return parsePopulation(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()), stateAbbrev, path)
}

func parsePopulation(r io.Reader, stateAbbrev, path string) (map[string]PopulationEntry, error) {
	reader := csv.NewReader(r)
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
		columns[name] = i
	}

	required := []string{colSumLev, colPlace, colPopName, colCensus10, colEstimate20}
	for _, name := range required {
		if _, ok := columns[name]; !ok {
			return nil, errors.Newf("population file missing column %s", name).
				Category(errors.CategoryFileParsing).
				Context("path", path).
				Build()
		}
	}

	places := make(map[string]PopulationEntry)
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

		field := func(name string) string {
			i := columns[name]
			if i >= len(row) {
				return ""
			}
			return row[i]
		}

		// Skip state and county level summary rows
		if field(colSumLev) != sumLevPlace {
			continue
		}

		placeCode := field(colPlace)
		if placeCode == "" {
			continue
		}

		places[placeCode] = PopulationEntry{
			Name:        field(colPopName),
			Pop2010:     parseOptionalInt(field(colCensus10)),
			Pop2020:     parseOptionalInt(field(colEstimate20)),
			StateAbbrev: stateAbbrev,
		}
	}

	return places, nil
}

// parseOptionalInt converts a population figure to an int, returning nil for
// values that are not plain integers (the files use markers like "A" or "X"
// for unavailable data).
func parseOptionalInt(s string) *int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}
