package datastore

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwhicks/siteingest/internal/conf"
	"github.com/cwhicks/siteingest/internal/errors"
)

// createDatabase initializes a temporary SQLite database for testing.
func createDatabase(t *testing.T) Interface {
	t.Helper()

	settings := &conf.Settings{}
	settings.Output.SQLite.Enabled = true
	settings.Output.SQLite.Path = filepath.Join(t.TempDir(), "test.db")

	store := New(settings)
	require.NotNil(t, store, "expected a store for SQLite settings")
	require.NoError(t, store.Open(), "failed to open database")

	t.Cleanup(func() {
		assert.NoError(t, store.Close(), "failed to close datastore")
	})

	return store
}

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }

func testVideo(videoID, title string) *Video {
	return &Video{
		VideoID:    videoID,
		Title:      title,
		UploadDate: "20250301",
		Duration:   intPtr(45),
		ViewCount:  int64Ptr(1200),
		VideoType:  "short",
		URL:        "https://www.youtube.com/shorts/" + videoID,
		Width:      intPtr(1080),
		Height:     intPtr(1920),
		FetchedAt:  time.Now().UTC(),
	}
}

func TestSaveVideoUpsert(t *testing.T) {
	store := createDatabase(t)

	require.NoError(t, store.SaveVideo(testVideo("abc", "Original title")))

	// Saving again with the same video ID replaces the row.
	require.NoError(t, store.SaveVideo(testVideo("abc", "Updated title")))

	count, err := store.CountVideos()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	got, err := store.GetVideo("abc")
	require.NoError(t, err)
	assert.Equal(t, "Updated title", got.Title)
	require.NotNil(t, got.Duration)
	assert.Equal(t, 45, *got.Duration)
}

func TestSaveVideosBatch(t *testing.T) {
	store := createDatabase(t)

	batch := []Video{
		*testVideo("abc", "First"),
		*testVideo("def", "Second"),
		*testVideo("ghi", "Third"),
	}
	require.NoError(t, store.SaveVideos(batch))

	count, err := store.CountVideos()
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	// An overlapping batch must not create duplicates.
	require.NoError(t, store.SaveVideos(batch[:2]))
	count, err = store.CountVideos()
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestGetVideoNotFound(t *testing.T) {
	store := createDatabase(t)

	_, err := store.GetVideo("missing")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestFetchRuns(t *testing.T) {
	store := createDatabase(t)

	last, err := store.LastFetchRun()
	require.NoError(t, err)
	assert.Nil(t, last, "no runs recorded yet")

	earlier := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, store.SaveFetchRun(&FetchRun{FetchedAt: earlier, VideoCount: 5, Success: true}))
	require.NoError(t, store.SaveFetchRun(&FetchRun{FetchedAt: earlier.Add(time.Hour), VideoCount: 7, Success: true}))

	last, err = store.LastFetchRun()
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, 7, last.VideoCount)
}

func testCity(name, state, geoid string, pop2020 int) City {
	return City{
		Name:        name,
		StateAbbrev: state,
		Latitude:    34.2,
		Longitude:   -118.2,
		Pop2010:     intPtr(pop2020 - 300),
		Pop2020:     intPtr(pop2020),
		GeoID:       geoid,
	}
}

func TestSaveCitiesUpsert(t *testing.T) {
	store := createDatabase(t)

	require.NoError(t, store.SaveCities([]City{
		testCity("Example City", "CA", "0601234", 20573),
		testCity("Other City", "CA", "0605678", 9000),
	}))

	// A later insert for the same natural key replaces the earlier row.
	require.NoError(t, store.SaveCities([]City{
		testCity("Example City", "CA", "0601234", 21000),
	}))

	count, err := store.CountCities()
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	got, err := store.GetCity("Example City", "CA")
	require.NoError(t, err)
	require.NotNil(t, got.Pop2020)
	assert.Equal(t, 21000, *got.Pop2020)

	// Same name in a different state is a distinct row.
	require.NoError(t, store.SaveCities([]City{
		testCity("Example City", "VA", "5101234", 5000),
	}))
	count, err = store.CountCities()
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestGetCityNotFound(t *testing.T) {
	store := createDatabase(t)

	_, err := store.GetCity("Nowhere", "ZZ")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

// Running an identical import twice must leave identical rows behind.
func TestSaveCitiesIdempotent(t *testing.T) {
	store := createDatabase(t)

	batch := []City{
		testCity("Example City", "CA", "0601234", 20573),
		testCity("Other City", "CA", "0605678", 9000),
	}

	require.NoError(t, store.SaveCities(batch))
	first, err := store.GetCity("Example City", "CA")
	require.NoError(t, err)

	require.NoError(t, store.SaveCities(batch))
	second, err := store.GetCity("Example City", "CA")
	require.NoError(t, err)

	count, err := store.CountCities()
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.Equal(t, first.Name, second.Name)
	assert.Equal(t, first.StateAbbrev, second.StateAbbrev)
	assert.Equal(t, *first.Pop2020, *second.Pop2020)
	assert.Equal(t, first.GeoID, second.GeoID)
}
