package video

import "strings"

// Category is the derived kind of a video.
type Category string

const (
	// CategoryShort marks short-form clips.
	CategoryShort Category = "short"
	// CategoryStandard marks regular videos.
	CategoryStandard Category = "standard"
)

// shortsPathSegment is the URL path segment YouTube uses for short-form clips.
const shortsPathSegment = "/shorts/"

// maxShortDuration is the longest duration in seconds a video can have and
// still qualify as a short via the aspect ratio heuristic.
const maxShortDuration = 60

// Classify determines the category of a video from its metadata. It is a
// pure function: the same metadata always yields the same category, and the
// record is never modified.
//
// Detection priority, first match wins:
//  1. Record came from the /shorts listing, which is authoritative.
//  2. URL contains the /shorts/ path segment.
//  3. Portrait aspect ratio (height > width) combined with a duration
//     between 1 and 60 seconds inclusive.
//
// Missing duration or dimensions are never an error, they simply fail
// rule 3 and the video is classified as standard.
func Classify(m *Metadata) Category {
	if m.FromShortsTab {
		return CategoryShort
	}

	if strings.Contains(m.WebpageURL, shortsPathSegment) {
		return CategoryShort
	}

	if isPortrait(m) && hasShortDuration(m) {
		return CategoryShort
	}

	return CategoryStandard
}

// isPortrait reports whether the video dimensions indicate a portrait
// orientation. False when either dimension is absent or width is zero.
func isPortrait(m *Metadata) bool {
	if m.Width == nil || m.Height == nil || *m.Width <= 0 {
		return false
	}
	aspectRatio := float64(*m.Height) / float64(*m.Width)
	return aspectRatio > 1.0
}

// hasShortDuration reports whether the duration is present and within
// (0, 60] seconds.
func hasShortDuration(m *Metadata) bool {
	if m.Duration == nil {
		return false
	}
	return *m.Duration > 0 && *m.Duration <= maxShortDuration
}
