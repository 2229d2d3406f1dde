// Package census loads Census Bureau gazetteer and population estimate
// files and merges them into joined place records.
package census

import (
	"strings"
	"unicode"

	"github.com/cwhicks/siteingest/internal/errors"
)

func init() {
	errors.RegisterComponent("internal/census", "census")
}

// stateToFIPS maps two-letter state abbreviations to state FIPS codes.
var stateToFIPS = map[string]string{
	"AL": "01", "AK": "02", "AZ": "04", "AR": "05", "CA": "06",
	"CO": "08", "CT": "09", "DE": "10", "DC": "11", "FL": "12",
	"GA": "13", "HI": "15", "ID": "16", "IL": "17", "IN": "18",
	"IA": "19", "KS": "20", "KY": "21", "LA": "22", "ME": "23",
	"MD": "24", "MA": "25", "MI": "26", "MN": "27", "MS": "28",
	"MO": "29", "MT": "30", "NE": "31", "NV": "32", "NH": "33",
	"NJ": "34", "NM": "35", "NY": "36", "NC": "37", "ND": "38",
	"OH": "39", "OK": "40", "OR": "41", "PA": "42", "RI": "44",
	"SC": "45", "SD": "46", "TN": "47", "TX": "48", "UT": "49",
	"VT": "50", "VA": "51", "WA": "53", "WV": "54", "WI": "55",
	"WY": "56", "PR": "72",
}

// fipsToState is the inverse of stateToFIPS, built at init time.
var fipsToState = func() map[string]string {
	m := make(map[string]string, len(stateToFIPS))
	for abbrev, fips := range stateToFIPS {
		m[fips] = abbrev
	}
	return m
}()

// StateFIPS converts a state identifier to its two-digit FIPS code. The
// input may be a two-letter abbreviation (any case) or an already valid
// two-digit FIPS code.
func StateFIPS(state string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(state))

	if len(s) == 2 && isDigits(s) {
		if _, ok := fipsToState[s]; ok {
			return s, nil
		}
		return "", errors.Newf("unknown state FIPS code: %q", state).
			Category(errors.CategoryValidation).
			Context("state", state).
			Build()
	}

	if fips, ok := stateToFIPS[s]; ok {
		return fips, nil
	}

	return "", errors.Newf("unknown state code: %q", state).
		Category(errors.CategoryValidation).
		Context("state", state).
		Build()
}

// StateAbbrev converts a two-digit state FIPS code to its two-letter
// abbreviation. Returns "UNKNOWN" for unrecognized codes.
func StateAbbrev(fips string) string {
	if abbrev, ok := fipsToState[fips]; ok {
		return abbrev
	}
	return "UNKNOWN"
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}
