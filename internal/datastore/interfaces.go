// interfaces.go: this code defines the interface for the database operations
package datastore

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cwhicks/siteingest/internal/conf"
	"github.com/cwhicks/siteingest/internal/errors"
)

func init() {
	errors.RegisterComponent("internal/datastore", "datastore")
}

// Interface abstracts the underlying database implementation and defines the
// operations the ingestion pipelines need.
type Interface interface {
	Open() error
	Close() error

	// video pipeline
	SaveVideo(video *Video) error
	SaveVideos(videos []Video) error
	GetVideo(videoID string) (Video, error)
	CountVideos() (int64, error)
	SaveFetchRun(run *FetchRun) error
	LastFetchRun() (*FetchRun, error)

	// city pipeline
	SaveCities(cities []City) error
	GetCity(name, stateAbbrev string) (City, error)
	CountCities() (int64, error)
}

// DataStore implements Interface using a GORM database.
type DataStore struct {
	DB *gorm.DB // GORM database instance
}

// New creates a new datastore instance based on the provided settings.
func New(settings *conf.Settings) Interface {
	switch {
	case settings.Output.SQLite.Enabled:
		return &SQLiteStore{
			Settings: settings,
		}
	case settings.Output.MySQL.Enabled:
		return &MySQLStore{
			Settings: settings,
		}
	default:
		return nil
	}
}

// videoConflict is the upsert clause for the videos natural key.
var videoConflict = clause.OnConflict{
	Columns:   []clause.Column{{Name: "video_id"}},
	UpdateAll: true,
}

// cityConflict is the upsert clause for the cities natural key.
var cityConflict = clause.OnConflict{
	Columns:   []clause.Column{{Name: "name"}, {Name: "state_abbrev"}},
	UpdateAll: true,
}

// SaveVideo upserts a single video keyed by its video ID.
func (ds *DataStore) SaveVideo(video *Video) error {
	if ds.DB == nil {
		return errors.Newf("database connection is not initialized").
			Category(errors.CategoryDatabase).
			Build()
	}

	if err := ds.DB.Clauses(videoConflict).Create(video).Error; err != nil {
		return errors.New(err).
			Category(errors.CategoryDatabase).
			Context("video_id", video.VideoID).
			Build()
	}
	return nil
}

// SaveVideos upserts a batch of videos in a single transaction so that an
// interrupted pass loses at most one uncommitted batch.
func (ds *DataStore) SaveVideos(videos []Video) error {
	if len(videos) == 0 {
		return nil
	}

	err := ds.DB.Transaction(func(tx *gorm.DB) error {
		for i := range videos {
			if err := tx.Clauses(videoConflict).Create(&videos[i]).Error; err != nil {
				return fmt.Errorf("saving video %s: %w", videos[i].VideoID, err)
			}
		}
		return nil
	})
	if err != nil {
		return errors.New(err).
			Category(errors.CategoryDatabase).
			Context("batch_size", len(videos)).
			Build()
	}
	return nil
}

// GetVideo retrieves a video by its video ID.
func (ds *DataStore) GetVideo(videoID string) (Video, error) {
	var video Video
	if err := ds.DB.Where("video_id = ?", videoID).First(&video).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Video{}, errors.Newf("video %s not found", videoID).
				Category(errors.CategoryNotFound).
				Build()
		}
		return Video{}, errors.New(err).
			Category(errors.CategoryDatabase).
			Context("video_id", videoID).
			Build()
	}
	return video, nil
}

// CountVideos returns the number of stored videos.
func (ds *DataStore) CountVideos() (int64, error) {
	var count int64
	if err := ds.DB.Model(&Video{}).Count(&count).Error; err != nil {
		return 0, errors.New(err).
			Category(errors.CategoryDatabase).
			Build()
	}
	return count, nil
}

// SaveFetchRun records a completed pass of the video pipeline.
func (ds *DataStore) SaveFetchRun(run *FetchRun) error {
	if err := ds.DB.Create(run).Error; err != nil {
		return errors.New(err).
			Category(errors.CategoryDatabase).
			Build()
	}
	return nil
}

// LastFetchRun retrieves the most recent fetch run, or nil when none exist.
func (ds *DataStore) LastFetchRun() (*FetchRun, error) {
	var run FetchRun
	err := ds.DB.Order("fetched_at DESC").First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.New(err).
			Category(errors.CategoryDatabase).
			Build()
	}
	return &run, nil
}

// SaveCities upserts a batch of joined city records in a single transaction,
// keyed by the (name, state_abbrev) natural key.
func (ds *DataStore) SaveCities(cities []City) error {
	if len(cities) == 0 {
		return nil
	}

	err := ds.DB.Transaction(func(tx *gorm.DB) error {
		for i := range cities {
			if err := tx.Clauses(cityConflict).Create(&cities[i]).Error; err != nil {
				return fmt.Errorf("saving city %s, %s: %w", cities[i].Name, cities[i].StateAbbrev, err)
			}
		}
		return nil
	})
	if err != nil {
		return errors.New(err).
			Category(errors.CategoryDatabase).
			Context("batch_size", len(cities)).
			Build()
	}
	return nil
}

// GetCity retrieves a city by its natural key.
func (ds *DataStore) GetCity(name, stateAbbrev string) (City, error) {
	var city City
	if err := ds.DB.Where("name = ? AND state_abbrev = ?", name, stateAbbrev).First(&city).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return City{}, errors.Newf("city %s, %s not found", name, stateAbbrev).
				Category(errors.CategoryNotFound).
				Build()
		}
		return City{}, errors.New(err).
			Category(errors.CategoryDatabase).
			Context("name", name).
			Context("state", stateAbbrev).
			Build()
	}
	return city, nil
}

// CountCities returns the number of stored cities.
func (ds *DataStore) CountCities() (int64, error) {
	var count int64
	if err := ds.DB.Model(&City{}).Count(&count).Error; err != nil {
		return 0, errors.New(err).
			Category(errors.CategoryDatabase).
			Build()
	}
	return count, nil
}
