// model.go this code defines the data model for the application
package datastore

import "time"

// Video represents the stored metadata of a single video. The natural key
// is VideoID; repeated fetches replace the existing row.
type Video struct {
	ID           uint   `gorm:"primaryKey"`
	VideoID      string `gorm:"uniqueIndex:idx_videos_video_id;not null"`
	Title        string
	Description  string
	UploadDate   string `gorm:"index:idx_videos_upload_date"`
	Duration     *int
	ViewCount    *int64 `gorm:"index:idx_videos_view_count"`
	LikeCount    *int64
	CommentCount *int64
	VideoType    string `gorm:"index:idx_videos_video_type;type:varchar(20)"` // "short" or "standard"
	URL          string
	ThumbnailURL string
	Tags         string // JSON-encoded list
	Categories   string // JSON-encoded list
	Width        *int
	Height       *int
	FPS          *float64
	FetchedAt    time.Time
}

// FetchRun records one completed pass of the video pipeline.
type FetchRun struct {
	ID         uint      `gorm:"primaryKey"`
	FetchedAt  time.Time `gorm:"index:idx_fetch_runs_fetched_at"`
	VideoCount int
	Success    bool
}

// City represents a joined gazetteer/population record. The natural key is
// (Name, StateAbbrev); duplicate place codes replace the existing row.
type City struct {
	ID            uint   `gorm:"primaryKey"`
	Name          string `gorm:"index:idx_cities_name;uniqueIndex:idx_cities_name_state;not null"`
	StateAbbrev   string `gorm:"index:idx_cities_state;uniqueIndex:idx_cities_name_state;not null;type:varchar(10)"`
	Latitude      float64
	Longitude     float64
	Pop2010       *int
	Pop2020       *int `gorm:"index:idx_cities_pop_2020"`
	LandAreaSqMi  float64
	WaterAreaSqMi float64
	AnsiCode      string
	GeoID         string `gorm:"column:geoid;index:idx_cities_geoid"`
}
