package census

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeGazetteerFile writes a tab-delimited gazetteer file in the Census
// layout, including the trailing whitespace the real files carry in the
// last header column.
func writeGazetteerFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "2020_gaz_place_06.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadGazetteer(t *testing.T) {
	t.Parallel()

	content := "USPS\tGEOID\tANSICODE\tNAME\tALAND_SQMI\tAWATER_SQMI\tINTPTLAT\tINTPTLONG    \n" +
		"CA\t0601234\t02409987\tExample City\t8.707\t0.037\t34.204\t-118.201\n" +
		"CA\t0644000\t02410877\tLos Angeles city\t469.488\t32.366\t34.019\t-118.411\n"

	places, err := LoadGazetteer(writeGazetteerFile(t, content))
	require.NoError(t, err)
	require.Len(t, places, 2)

	entry, ok := places["0601234"]
	require.True(t, ok)
	assert.Equal(t, "Example City", entry.Name)
	assert.InDelta(t, 34.204, entry.Latitude, 0.0001)
	assert.InDelta(t, -118.201, entry.Longitude, 0.0001)
	assert.InDelta(t, 8.707, entry.LandAreaSqMi, 0.0001)
	assert.InDelta(t, 0.037, entry.WaterAreaSqMi, 0.0001)
	assert.Equal(t, "02409987", entry.ANSICode)
}

func TestLoadGazetteerSkipsMalformedRows(t *testing.T) {
	t.Parallel()

	content := "USPS\tGEOID\tANSICODE\tNAME\tALAND_SQMI\tAWATER_SQMI\tINTPTLAT\tINTPTLONG\n" +
		"CA\t0601234\t02409987\tGood City\t8.707\t0.037\t34.204\t-118.201\n" +
		"CA\t0699999\t02409988\tBad City\tnot-a-number\t0.1\t34.0\t-118.0\n"

	places, err := LoadGazetteer(writeGazetteerFile(t, content))
	require.NoError(t, err)

	assert.Len(t, places, 1)
	assert.Contains(t, places, "0601234")
	assert.NotContains(t, places, "0699999")
}

// A stray quote in a place name must neither fail the load nor cut off the
// rows that follow it.
func TestLoadGazetteerToleratesStrayQuotes(t *testing.T) {
	t.Parallel()

	content := "USPS\tGEOID\tANSICODE\tNAME\tALAND_SQMI\tAWATER_SQMI\tINTPTLAT\tINTPTLONG\n" +
		"CA\t0601234\t02409987\tExample City\t8.707\t0.037\t34.204\t-118.201\n" +
		"MO\t2953876\t02395481\tO\"Fallon city\t29.918\t0.599\t38.784\t-90.718\n" +
		"CA\t0644000\t02410877\tLos Angeles city\t469.488\t32.366\t34.019\t-118.411\n"

	places, err := LoadGazetteer(writeGazetteerFile(t, content))
	require.NoError(t, err)

	require.Len(t, places, 3)
	assert.Equal(t, `O"Fallon city`, places["2953876"].Name)
	assert.Contains(t, places, "0644000", "rows after the quoted one are kept")
}

func TestLoadGazetteerMissingColumn(t *testing.T) {
	t.Parallel()

	content := "USPS\tGEOID\tNAME\n" +
		"CA\t0601234\tExample City\n"

	_, err := LoadGazetteer(writeGazetteerFile(t, content))
	assert.Error(t, err)
}

func TestLoadGazetteerMissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadGazetteer(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
