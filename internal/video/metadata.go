// Package video defines the video metadata record produced by the external
// extraction tool and the category classifier applied to it.
package video

// Metadata represents the metadata of a single video as reported by yt-dlp.
// JSON tags match the field names in yt-dlp --dump-json output. Fields that
// may be absent from the tool output are pointers so that missing values are
// distinguishable from zero values.
type Metadata struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	UploadDate   string   `json:"upload_date"`
	Duration     *int     `json:"duration"`
	ViewCount    *int64   `json:"view_count"`
	LikeCount    *int64   `json:"like_count"`
	CommentCount *int64   `json:"comment_count"`
	WebpageURL   string   `json:"webpage_url"`
	Thumbnail    string   `json:"thumbnail"`
	Tags         []string `json:"tags"`
	Categories   []string `json:"categories"`
	Width        *int     `json:"width"`
	Height       *int     `json:"height"`
	FPS          *float64 `json:"fps"`

	// FromShortsTab marks records enumerated from the channel's /shorts
	// listing. Set by the fetcher, never present in tool output.
	FromShortsTab bool `json:"-"`
}
