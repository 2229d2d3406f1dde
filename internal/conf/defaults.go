// conf/defaults.go default values for settings
package conf

import (
	"github.com/spf13/viper"
)

// Sets default values for the configuration.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	viper.SetDefault("main.name", "siteingest")
	viper.SetDefault("main.log.enabled", true)
	viper.SetDefault("main.log.path", "siteingest.log")
	viper.SetDefault("main.log.maxsize", 100)
	viper.SetDefault("main.log.maxbackups", 3)
	viper.SetDefault("main.log.maxage", 28)

	viper.SetDefault("videos.channelurl", "https://www.youtube.com/@ChristopherHicksFINI")
	viper.SetDefault("videos.ytdlppath", "yt-dlp")
	viper.SetDefault("videos.listingtimeout", 60)
	viper.SetDefault("videos.detailtimeout", 30)
	viper.SetDefault("videos.commitinterval", 10)

	viper.SetDefault("cities.datadir", "data/")
	viper.SetDefault("cities.gazetteerpattern", "2020_gaz_place_%s.txt")
	viper.SetDefault("cities.populationpattern", "SUB-EST2020_%s.csv")

	viper.SetDefault("output.sqlite.enabled", true)
	viper.SetDefault("output.sqlite.path", "siteingest.db")

	viper.SetDefault("output.mysql.enabled", false)
	viper.SetDefault("output.mysql.username", "siteingest")
	viper.SetDefault("output.mysql.password", "secret")
	viper.SetDefault("output.mysql.database", "siteingest")
	viper.SetDefault("output.mysql.host", "localhost")
	viper.SetDefault("output.mysql.port", "3306")
}
