package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		metadata Metadata
		want     Category
	}{
		{
			name: "shorts tab flag is authoritative",
			metadata: Metadata{
				FromShortsTab: true,
				WebpageURL:    "https://www.youtube.com/watch?v=abc",
				Width:         intPtr(1920),
				Height:        intPtr(1080),
				Duration:      intPtr(600),
			},
			want: CategoryShort,
		},
		{
			name: "shorts URL segment",
			metadata: Metadata{
				WebpageURL: "https://www.youtube.com/shorts/abc123",
				Width:      intPtr(1920),
				Height:     intPtr(1080),
				Duration:   intPtr(600),
			},
			want: CategoryShort,
		},
		{
			name: "portrait video within sixty seconds",
			metadata: Metadata{
				WebpageURL: "https://www.youtube.com/watch?v=abc",
				Width:      intPtr(1080),
				Height:     intPtr(1920),
				Duration:   intPtr(45),
			},
			want: CategoryShort,
		},
		{
			name: "landscape video with short duration",
			metadata: Metadata{
				WebpageURL: "https://www.youtube.com/watch?v=abc",
				Width:      intPtr(1920),
				Height:     intPtr(1080),
				Duration:   intPtr(30),
			},
			want: CategoryStandard,
		},
		{
			name: "portrait video at exactly sixty seconds",
			metadata: Metadata{
				WebpageURL: "https://www.youtube.com/watch?v=abc",
				Width:      intPtr(1080),
				Height:     intPtr(1920),
				Duration:   intPtr(60),
			},
			want: CategoryShort,
		},
		{
			name: "portrait video at sixty one seconds",
			metadata: Metadata{
				WebpageURL: "https://www.youtube.com/watch?v=abc",
				Width:      intPtr(1080),
				Height:     intPtr(1920),
				Duration:   intPtr(61),
			},
			want: CategoryStandard,
		},
		{
			name: "portrait video with zero duration",
			metadata: Metadata{
				WebpageURL: "https://www.youtube.com/watch?v=abc",
				Width:      intPtr(1080),
				Height:     intPtr(1920),
				Duration:   intPtr(0),
			},
			want: CategoryStandard,
		},
		{
			name: "portrait video with negative duration",
			metadata: Metadata{
				WebpageURL: "https://www.youtube.com/watch?v=abc",
				Width:      intPtr(1080),
				Height:     intPtr(1920),
				Duration:   intPtr(-5),
			},
			want: CategoryStandard,
		},
		{
			name: "missing dimensions fall through",
			metadata: Metadata{
				WebpageURL: "https://www.youtube.com/watch?v=abc",
				Duration:   intPtr(30),
			},
			want: CategoryStandard,
		},
		{
			name: "missing height falls through",
			metadata: Metadata{
				WebpageURL: "https://www.youtube.com/watch?v=abc",
				Width:      intPtr(1080),
				Duration:   intPtr(30),
			},
			want: CategoryStandard,
		},
		{
			name: "zero width does not divide",
			metadata: Metadata{
				WebpageURL: "https://www.youtube.com/watch?v=abc",
				Width:      intPtr(0),
				Height:     intPtr(1920),
				Duration:   intPtr(30),
			},
			want: CategoryStandard,
		},
		{
			name: "missing duration with portrait aspect",
			metadata: Metadata{
				WebpageURL: "https://www.youtube.com/watch?v=abc",
				Width:      intPtr(1080),
				Height:     intPtr(1920),
			},
			want: CategoryStandard,
		},
		{
			name:     "empty record",
			metadata: Metadata{},
			want:     CategoryStandard,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Classify(&tt.metadata)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Classification must be deterministic and must not modify the record.
func TestClassifyIsPure(t *testing.T) {
	t.Parallel()

	m := Metadata{
		ID:         "abc",
		WebpageURL: "https://www.youtube.com/watch?v=abc",
		Width:      intPtr(1080),
		Height:     intPtr(1920),
		Duration:   intPtr(45),
	}
	before := m

	first := Classify(&m)
	second := Classify(&m)

	assert.Equal(t, first, second)
	assert.Equal(t, before, m, "Classify must not modify the metadata record")
}
