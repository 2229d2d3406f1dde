// Package ytdlp invokes the yt-dlp tool as a subprocess and parses its
// JSON-lines metadata output.
package ytdlp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/cwhicks/siteingest/internal/conf"
	"github.com/cwhicks/siteingest/internal/errors"
	"github.com/cwhicks/siteingest/internal/logging"
	"github.com/cwhicks/siteingest/internal/video"
)

func init() {
	errors.RegisterComponent("internal/ytdlp", "ytdlp")
}

const watchURLPrefix = "https://www.youtube.com/watch?v="

// detailCacheTTL bounds how long fetched per-video details are reused.
// A pass enumerates both channel tabs, so videos that appear in both are
// served from cache instead of spawning a second subprocess.
const (
	detailCacheTTL     = 15 * time.Minute
	detailCacheCleanup = 30 * time.Minute
)

// Client runs yt-dlp with bounded timeouts.
type Client struct {
	binary         string
	listingTimeout time.Duration
	detailTimeout  time.Duration
	cache          *gocache.Cache
	log            *slog.Logger
}

// NewClient creates a yt-dlp client from the videos settings.
func NewClient(settings *conf.Settings) *Client {
	return &Client{
		binary:         settings.Videos.YtdlpPath,
		listingTimeout: time.Duration(settings.Videos.ListingTimeout) * time.Second,
		detailTimeout:  time.Duration(settings.Videos.DetailTimeout) * time.Second,
		cache:          gocache.New(detailCacheTTL, detailCacheCleanup),
		log:            logging.ForService("ytdlp"),
	}
}

// FetchChannel enumerates both the /videos and /shorts tabs of a channel.
// A single tab failing is logged and tolerated; an error is returned only
// when both tabs fail.
func (c *Client) FetchChannel(ctx context.Context, channelURL string) ([]video.Metadata, error) {
	var all []video.Metadata

	regular, regularErr := c.FetchPlaylist(ctx, channelURL+"/videos", false)
	if regularErr != nil {
		c.logWarn("failed to fetch videos tab", "url", channelURL, "error", regularErr)
	} else {
		all = append(all, regular...)
	}

	shorts, shortsErr := c.FetchPlaylist(ctx, channelURL+"/shorts", true)
	if shortsErr != nil {
		c.logWarn("failed to fetch shorts tab", "url", channelURL, "error", shortsErr)
	} else {
		all = append(all, shorts...)
	}

	if regularErr != nil && shortsErr != nil {
		return nil, errors.New(errors.Join(regularErr, shortsErr)).
			Category(errors.CategoryCommandExecution).
			Context("url", channelURL).
			Build()
	}

	return all, nil
}

// FetchPlaylist runs yt-dlp in flat playlist mode against a single listing
// URL and parses one metadata record per output line. Records are tagged
// with the listing they came from.
func (c *Client) FetchPlaylist(ctx context.Context, url string, fromShorts bool) ([]video.Metadata, error) {
	args := []string{
		"--dump-json",
		"--flat-playlist",
		"--extractor-args", "youtube:skip=dash,hls",
		url,
	}

	stdout, err := c.run(ctx, c.listingTimeout, args)
	if err != nil {
		return nil, err
	}

	records, err := parseMetadataLines(stdout, fromShorts)
	if err != nil {
		return nil, errors.New(err).
			Category(errors.CategoryFileParsing).
			Context("url", url).
			Build()
	}
	return records, nil
}

// FetchDetails fetches the full metadata of a single video. Results are
// cached for the duration of a pass.
func (c *Client) FetchDetails(ctx context.Context, videoID string) (*video.Metadata, error) {
	if cached, found := c.cache.Get(videoID); found {
		m := cached.(video.Metadata)
		return &m, nil
	}

	args := []string{
		"--dump-json",
		"--no-download",
		watchURLPrefix + videoID,
	}

	stdout, err := c.run(ctx, c.detailTimeout, args)
	if err != nil {
		return nil, err
	}

	var m video.Metadata
	if err := json.Unmarshal(bytes.TrimSpace(stdout), &m); err != nil {
		return nil, errors.New(fmt.Errorf("parsing video details: %w", err)).
			Category(errors.CategoryFileParsing).
			Context("video_id", videoID).
			Build()
	}

	c.cache.Set(videoID, m, gocache.DefaultExpiration)
	return &m, nil
}

// run executes the yt-dlp binary with the given arguments, bounded by the
// given timeout. The subprocess is killed when the deadline passes.
func (c *Client) run(ctx context.Context, timeout time.Duration, args []string) ([]byte, error) {
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()

	// Binary path comes from validated configuration, not user input.
	cmd := exec.CommandContext(runCtx, c.binary, args...) //nolint:gosec // G204: configuration-sourced command execution is intentional
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		category := errors.CategoryCommandExecution
		if runCtx.Err() == context.DeadlineExceeded {
			category = errors.CategoryTimeout
		}
		return nil, errors.New(fmt.Errorf("yt-dlp failed: %w: %s", err, firstLine(stderr.String()))).
			Category(category).
			Timing("yt-dlp", time.Since(start)).
			Context("args", strings.Join(args, " ")).
			Build()
	}

	return stdout.Bytes(), nil
}

// parseMetadataLines parses yt-dlp JSON-lines output, one object per line.
// Empty lines are skipped.
func parseMetadataLines(data []byte, fromShorts bool) ([]video.Metadata, error) {
	var records []video.Metadata

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var m video.Metadata
		if err := json.Unmarshal(line, &m); err != nil {
			return nil, fmt.Errorf("parsing metadata line: %w", err)
		}
		m.FromShortsTab = fromShorts
		records = append(records, m)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading metadata output: %w", err)
	}

	return records, nil
}

// firstLine trims stderr output down to its first non-empty line for error
// messages.
func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			return line
		}
	}
	return ""
}

func (c *Client) logWarn(msg string, args ...any) {
	if c.log != nil {
		c.log.Warn(msg, args...)
	}
}
