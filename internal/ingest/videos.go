// Package ingest orchestrates the two ingestion pipelines: video metadata
// fetching and city data import.
package ingest

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/cwhicks/siteingest/internal/conf"
	"github.com/cwhicks/siteingest/internal/datastore"
	"github.com/cwhicks/siteingest/internal/errors"
	"github.com/cwhicks/siteingest/internal/logging"
	"github.com/cwhicks/siteingest/internal/video"
)

func init() {
	errors.RegisterComponent("internal/ingest", "ingest")
}

// maxReportedFailures limits how many failed videos are listed in the log.
const maxReportedFailures = 5

// MetadataFetcher abstracts the external metadata extraction tool.
type MetadataFetcher interface {
	FetchChannel(ctx context.Context, channelURL string) ([]video.Metadata, error)
	FetchDetails(ctx context.Context, videoID string) (*video.Metadata, error)
}

// FailedVideo identifies a video whose detail fetch failed during a pass.
type FailedVideo struct {
	VideoID string
	Title   string
}

// VideoSummary reports the outcome of one video pipeline pass.
type VideoSummary struct {
	Found  int           // videos enumerated from the channel listings
	Stored int           // videos persisted
	Failed []FailedVideo // videos whose detail fetch failed
}

// VideoPipeline fetches channel metadata, classifies each video and
// persists the enriched records.
type VideoPipeline struct {
	settings *conf.Settings
	store    datastore.Interface
	fetcher  MetadataFetcher
	log      *slog.Logger
}

// NewVideoPipeline creates a video pipeline with the given collaborators.
func NewVideoPipeline(settings *conf.Settings, store datastore.Interface, fetcher MetadataFetcher) *VideoPipeline {
	return &VideoPipeline{
		settings: settings,
		store:    store,
		fetcher:  fetcher,
		log:      logging.ForService("video-pipeline"),
	}
}

// Run executes one pass: enumerate the channel, fetch details for each
// video, classify it and upsert the record. A failure on one video is
// recorded and the pass continues with the next. Records are flushed to the
// store in batches so that an interruption loses at most one batch.
func (p *VideoPipeline) Run(ctx context.Context) (*VideoSummary, error) {
	listing, err := p.fetcher.FetchChannel(ctx, p.settings.Videos.ChannelURL)
	if err != nil {
		return nil, err
	}

	summary := &VideoSummary{Found: len(listing)}
	if len(listing) == 0 {
		p.logInfo("no videos found", "channel", p.settings.Videos.ChannelURL)
		return summary, nil
	}

	fetchedAt := time.Now().UTC()
	commitInterval := p.settings.Videos.CommitInterval

	var batch []datastore.Video
	for i := range listing {
		item := &listing[i]
		if item.ID == "" {
			continue
		}

		detail, err := p.fetcher.FetchDetails(ctx, item.ID)
		if err != nil {
			p.logWarn("failed to fetch video details", "video_id", item.ID, "error", err)
			summary.Failed = append(summary.Failed, FailedVideo{VideoID: item.ID, Title: item.Title})
			continue
		}

		// The listing tag is authoritative for classification and is not
		// present in the detail output.
		detail.FromShortsTab = item.FromShortsTab

		category := video.Classify(detail)
		batch = append(batch, buildVideoRow(detail, category, fetchedAt))

		if len(batch) >= commitInterval {
			summary.Stored += p.flush(batch)
			batch = nil
		}
	}
	summary.Stored += p.flush(batch)

	run := &datastore.FetchRun{
		FetchedAt:  fetchedAt,
		VideoCount: summary.Stored,
		Success:    true,
	}
	if err := p.store.SaveFetchRun(run); err != nil {
		p.logWarn("failed to record fetch run", "error", err)
	}

	p.reportFailures(summary.Failed)
	return summary, nil
}

// flush writes one batch and returns the number of records persisted. A
// failed batch is logged and dropped; the pass continues.
func (p *VideoPipeline) flush(batch []datastore.Video) int {
	if len(batch) == 0 {
		return 0
	}
	if err := p.store.SaveVideos(batch); err != nil {
		p.logWarn("failed to save video batch", "batch_size", len(batch), "error", err)
		return 0
	}
	return len(batch)
}

func (p *VideoPipeline) reportFailures(failed []FailedVideo) {
	if len(failed) == 0 {
		return
	}
	p.logWarn("some videos could not be fetched", "count", len(failed))
	for i, f := range failed {
		if i >= maxReportedFailures {
			p.logWarn("additional fetch failures omitted", "count", len(failed)-maxReportedFailures)
			break
		}
		p.logWarn("fetch failed", "video_id", f.VideoID, "title", f.Title)
	}
}

// buildVideoRow converts classified metadata into a datastore row. The
// metadata record itself is left untouched.
func buildVideoRow(m *video.Metadata, category video.Category, fetchedAt time.Time) datastore.Video {
	return datastore.Video{
		VideoID:      m.ID,
		Title:        m.Title,
		Description:  m.Description,
		UploadDate:   m.UploadDate,
		Duration:     m.Duration,
		ViewCount:    m.ViewCount,
		LikeCount:    m.LikeCount,
		CommentCount: m.CommentCount,
		VideoType:    string(category),
		URL:          m.WebpageURL,
		ThumbnailURL: m.Thumbnail,
		Tags:         marshalList(m.Tags),
		Categories:   marshalList(m.Categories),
		Width:        m.Width,
		Height:       m.Height,
		FPS:          m.FPS,
		FetchedAt:    fetchedAt,
	}
}

// marshalList JSON-encodes a string list, mapping nil to an empty list.
func marshalList(items []string) string {
	if items == nil {
		items = []string{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func (p *VideoPipeline) logInfo(msg string, args ...any) {
	if p.log != nil {
		p.log.Info(msg, args...)
	}
}

func (p *VideoPipeline) logWarn(msg string, args ...any) {
	if p.log != nil {
		p.log.Warn(msg, args...)
	}
}
