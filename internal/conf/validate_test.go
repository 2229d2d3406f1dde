package conf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwhicks/siteingest/internal/errors"
)

func validSettings() *Settings {
	settings := &Settings{}
	settings.Videos.ChannelURL = "https://www.youtube.com/@example"
	settings.Videos.YtdlpPath = "yt-dlp"
	settings.Videos.ListingTimeout = 60
	settings.Videos.DetailTimeout = 30
	settings.Videos.CommitInterval = 10
	settings.Cities.DataDir = "data/"
	settings.Cities.GazetteerPattern = "2020_gaz_place_%s.txt"
	settings.Cities.PopulationPattern = "SUB-EST2020_%s.csv"
	settings.Output.SQLite.Enabled = true
	settings.Output.SQLite.Path = "siteingest.db"
	return settings
}

func TestValidateSettings(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateSettings(validSettings()))
}

func TestValidateSettingsProblems(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Settings)
		want   string
	}{
		{
			name:   "empty channel URL",
			mutate: func(s *Settings) { s.Videos.ChannelURL = "" },
			want:   "videos.channelurl",
		},
		{
			name:   "empty ytdlp path",
			mutate: func(s *Settings) { s.Videos.YtdlpPath = "" },
			want:   "videos.ytdlppath",
		},
		{
			name:   "non-positive listing timeout",
			mutate: func(s *Settings) { s.Videos.ListingTimeout = 0 },
			want:   "videos.listingtimeout",
		},
		{
			name:   "non-positive commit interval",
			mutate: func(s *Settings) { s.Videos.CommitInterval = -1 },
			want:   "videos.commitinterval",
		},
		{
			name:   "gazetteer pattern without placeholder",
			mutate: func(s *Settings) { s.Cities.GazetteerPattern = "gazetteer.txt" },
			want:   "cities.gazetteerpattern",
		},
		{
			name:   "no output backend",
			mutate: func(s *Settings) { s.Output.SQLite.Enabled = false },
			want:   "output.sqlite or output.mysql",
		},
		{
			name: "sqlite enabled without path",
			mutate: func(s *Settings) {
				s.Output.SQLite.Path = ""
			},
			want: "output.sqlite.path",
		},
		{
			name: "mysql enabled without database",
			mutate: func(s *Settings) {
				s.Output.MySQL.Enabled = true
				s.Output.MySQL.Host = "localhost"
				s.Output.MySQL.Port = "3306"
				s.Output.MySQL.Database = ""
			},
			want: "output.mysql.database",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			settings := validSettings()
			tt.mutate(settings)

			err := ValidateSettings(settings)
			require.Error(t, err)
			assert.True(t, errors.IsCategory(err, errors.CategoryValidation))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

// All problems are reported in one pass, not just the first.
func TestValidateSettingsCollectsAllProblems(t *testing.T) {
	t.Parallel()

	settings := validSettings()
	settings.Videos.ChannelURL = ""
	settings.Cities.DataDir = ""
	settings.Output.SQLite.Enabled = false

	err := ValidateSettings(settings)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "videos.channelurl")
	assert.Contains(t, err.Error(), "cities.datadir")
	assert.Contains(t, err.Error(), "output.sqlite or output.mysql")
}
