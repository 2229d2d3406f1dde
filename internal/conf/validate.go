// conf/validate.go settings validation
package conf

import (
	"fmt"
	"strings"

	"github.com/cwhicks/siteingest/internal/errors"
)

// ValidateSettings checks the loaded settings for obvious misconfiguration
// before any pipeline runs. It collects all problems instead of stopping at
// the first one.
func ValidateSettings(settings *Settings) error {
	var problems []string

	if err := validateVideosSettings(&settings.Videos); err != nil {
		problems = append(problems, err.Error())
	}

	if err := validateCitiesSettings(&settings.Cities); err != nil {
		problems = append(problems, err.Error())
	}

	if err := validateOutputSettings(&settings.Output); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		return errors.Newf("invalid configuration: %s", strings.Join(problems, "; ")).
			Category(errors.CategoryValidation).
			Build()
	}

	return nil
}

func validateVideosSettings(videos *VideosSettings) error {
	if videos.ChannelURL == "" {
		return fmt.Errorf("videos.channelurl must not be empty")
	}
	if videos.YtdlpPath == "" {
		return fmt.Errorf("videos.ytdlppath must not be empty")
	}
	if videos.ListingTimeout <= 0 {
		return fmt.Errorf("videos.listingtimeout must be positive, got %d", videos.ListingTimeout)
	}
	if videos.DetailTimeout <= 0 {
		return fmt.Errorf("videos.detailtimeout must be positive, got %d", videos.DetailTimeout)
	}
	if videos.CommitInterval <= 0 {
		return fmt.Errorf("videos.commitinterval must be positive, got %d", videos.CommitInterval)
	}
	return nil
}

func validateCitiesSettings(cities *CitiesSettings) error {
	if cities.DataDir == "" {
		return fmt.Errorf("cities.datadir must not be empty")
	}
	if !strings.Contains(cities.GazetteerPattern, "%s") {
		return fmt.Errorf("cities.gazetteerpattern must contain a %%s placeholder for the FIPS code")
	}
	if !strings.Contains(cities.PopulationPattern, "%s") {
		return fmt.Errorf("cities.populationpattern must contain a %%s placeholder for the FIPS code")
	}
	return nil
}

func validateOutputSettings(output *OutputSettings) error {
	if !output.SQLite.Enabled && !output.MySQL.Enabled {
		return fmt.Errorf("at least one of output.sqlite or output.mysql must be enabled")
	}
	if output.SQLite.Enabled && output.SQLite.Path == "" {
		return fmt.Errorf("output.sqlite.path must not be empty")
	}
	if output.MySQL.Enabled {
		if output.MySQL.Host == "" || output.MySQL.Port == "" {
			return fmt.Errorf("output.mysql.host and output.mysql.port must not be empty")
		}
		if output.MySQL.Database == "" {
			return fmt.Errorf("output.mysql.database must not be empty")
		}
	}
	return nil
}
