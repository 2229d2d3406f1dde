package ingest

import (
	"context"
	"fmt"

	"github.com/cwhicks/siteingest/internal/datastore"
	"github.com/cwhicks/siteingest/internal/errors"
	"github.com/cwhicks/siteingest/internal/video"
)

// memStore is an in-memory datastore.Interface used by the pipeline tests.
type memStore struct {
	videos       map[string]datastore.Video
	videoBatches [][]datastore.Video
	cities       map[string]datastore.City
	runs         []datastore.FetchRun
	failSaves    bool
}

func newMemStore() *memStore {
	return &memStore{
		videos: make(map[string]datastore.Video),
		cities: make(map[string]datastore.City),
	}
}

func (m *memStore) Open() error  { return nil }
func (m *memStore) Close() error { return nil }

func (m *memStore) SaveVideo(v *datastore.Video) error {
	return m.SaveVideos([]datastore.Video{*v})
}

func (m *memStore) SaveVideos(videos []datastore.Video) error {
	if m.failSaves {
		return errors.Newf("save failed").Category(errors.CategoryDatabase).Build()
	}
	m.videoBatches = append(m.videoBatches, videos)
	for _, v := range videos {
		m.videos[v.VideoID] = v
	}
	return nil
}

func (m *memStore) GetVideo(videoID string) (datastore.Video, error) {
	v, ok := m.videos[videoID]
	if !ok {
		return datastore.Video{}, errors.Newf("video %s not found", videoID).
			Category(errors.CategoryNotFound).Build()
	}
	return v, nil
}

func (m *memStore) CountVideos() (int64, error) {
	return int64(len(m.videos)), nil
}

func (m *memStore) SaveFetchRun(run *datastore.FetchRun) error {
	m.runs = append(m.runs, *run)
	return nil
}

func (m *memStore) LastFetchRun() (*datastore.FetchRun, error) {
	if len(m.runs) == 0 {
		return nil, nil
	}
	run := m.runs[len(m.runs)-1]
	return &run, nil
}

func (m *memStore) SaveCities(cities []datastore.City) error {
	if m.failSaves {
		return errors.Newf("save failed").Category(errors.CategoryDatabase).Build()
	}
	for _, c := range cities {
		m.cities[c.Name+"|"+c.StateAbbrev] = c
	}
	return nil
}

func (m *memStore) GetCity(name, stateAbbrev string) (datastore.City, error) {
	c, ok := m.cities[name+"|"+stateAbbrev]
	if !ok {
		return datastore.City{}, errors.Newf("city %s, %s not found", name, stateAbbrev).
			Category(errors.CategoryNotFound).Build()
	}
	return c, nil
}

func (m *memStore) CountCities() (int64, error) {
	return int64(len(m.cities)), nil
}

// stubFetcher is an in-memory MetadataFetcher.
type stubFetcher struct {
	listing    []video.Metadata
	details    map[string]video.Metadata
	failIDs    map[string]bool
	listingErr error
}

func (f *stubFetcher) FetchChannel(ctx context.Context, channelURL string) ([]video.Metadata, error) {
	if f.listingErr != nil {
		return nil, f.listingErr
	}
	return f.listing, nil
}

func (f *stubFetcher) FetchDetails(ctx context.Context, videoID string) (*video.Metadata, error) {
	if f.failIDs[videoID] {
		return nil, errors.Newf("fetch failed for %s", videoID).
			Category(errors.CategoryCommandExecution).Build()
	}
	m, ok := f.details[videoID]
	if !ok {
		return nil, fmt.Errorf("no details for %s", videoID)
	}
	return &m, nil
}
