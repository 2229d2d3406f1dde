// Package conf defines the application settings and functions to load and
// save them. Settings are read from a YAML config file via viper, with
// command line flags taking precedence.
package conf

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/cwhicks/siteingest/internal/errors"
)

// LogConfig contains settings for a rotated log file.
type LogConfig struct {
	Enabled    bool   // true to enable file logging
	Path       string // path to log file
	MaxSize    int    // maximum log file size in megabytes before rotation
	MaxBackups int    // maximum number of rotated files to keep
	MaxAge     int    // maximum age of rotated files in days
}

// MainSettings contains the application-wide settings.
type MainSettings struct {
	Name string    // name of this node, used in log output
	Log  LogConfig // log file settings
}

// VideosSettings contains settings for the video metadata pipeline.
type VideosSettings struct {
	ChannelURL     string // channel URL to fetch metadata from
	YtdlpPath      string // path to the yt-dlp binary
	ListingTimeout int    // timeout in seconds for playlist enumeration
	DetailTimeout  int    // timeout in seconds for a single video detail fetch
	CommitInterval int    // number of records per database flush
}

// CitiesSettings contains settings for the city import pipeline.
type CitiesSettings struct {
	DataDir           string // directory holding gazetteer and population files
	GazetteerPattern  string // gazetteer filename pattern, %s is the state FIPS code
	PopulationPattern string // population filename pattern, %s is the state FIPS code
}

// SQLiteSettings contains SQLite output settings.
type SQLiteSettings struct {
	Enabled bool   // true to enable SQLite output
	Path    string // path to the SQLite database file
}

// MySQLSettings contains MySQL output settings.
type MySQLSettings struct {
	Enabled  bool   // true to enable MySQL output
	Username string // MySQL username
	Password string // MySQL password
	Database string // MySQL database name
	Host     string // MySQL host
	Port     string // MySQL port
}

// OutputSettings selects and configures the persistence backend.
type OutputSettings struct {
	SQLite SQLiteSettings // SQLite output settings
	MySQL  MySQLSettings  // MySQL output settings
}

// Settings is the root configuration struct.
type Settings struct {
	Debug bool // true to enable debug output

	Main   MainSettings
	Videos VideosSettings
	Cities CitiesSettings
	Output OutputSettings
}

var (
	settingsInstance *Settings
	settingsMutex    sync.RWMutex
)

func init() {
	errors.RegisterComponent("internal/conf", "configuration")
}

// Load reads the configuration file and environment variables into a
// Settings struct and stores it as the active settings instance.
func Load() (*Settings, error) {
	settingsMutex.Lock()
	defer settingsMutex.Unlock()

	settings := &Settings{}

	if err := initViper(); err != nil {
		return nil, fmt.Errorf("error initializing viper: %w", err)
	}

	if err := viper.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config into struct: %w", err)
	}

	if err := ValidateSettings(settings); err != nil {
		return nil, fmt.Errorf("error validating settings: %w", err)
	}

	settingsInstance = settings
	return settingsInstance, nil
}

// initViper initializes viper with default values and reads the configuration file.
func initViper() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return fmt.Errorf("error getting default config paths: %w", err)
	}

	for _, path := range configPaths {
		viper.AddConfigPath(path)
	}

	// Set default values for each configuration parameter,
	// function defined in defaults.go
	setDefaultConfig()

	err = viper.ReadInConfig()
	if err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			// Config file not found, create one with defaults
			return createDefaultConfig()
		}
		return fmt.Errorf("fatal error reading config file: %w", err)
	}

	return nil
}

// createDefaultConfig writes a config file populated with the default
// settings to the first default config path, then reads it back in.
func createDefaultConfig() error {
	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return fmt.Errorf("error getting default config paths: %w", err)
	}
	configPath := filepath.Join(configPaths[0], "config.yaml")

	defaults := &Settings{}
	if err := viper.Unmarshal(defaults); err != nil {
		return fmt.Errorf("error unmarshaling defaults: %w", err)
	}

	yamlData, err := yaml.Marshal(defaults)
	if err != nil {
		return errors.New(err).
			Category(errors.CategoryConfiguration).
			Context("operation", "marshal-default-config").
			Build()
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return errors.New(err).
			Category(errors.CategoryFileIO).
			Context("path", filepath.Dir(configPath)).
			Build()
	}

	header := "# siteingest configuration, created with default values\n"
	if err := os.WriteFile(configPath, append([]byte(header), yamlData...), 0o644); err != nil {
		return errors.New(err).
			Category(errors.CategoryFileIO).
			Context("path", configPath).
			Build()
	}

	fmt.Println("Created default config file at:", configPath)
	return viper.ReadInConfig()
}

// Setting returns the current settings instance, loading it if needed.
func Setting() *Settings {
	settingsMutex.RLock()
	s := settingsInstance
	settingsMutex.RUnlock()

	if s == nil {
		var err error
		if s, err = Load(); err != nil {
			return nil
		}
	}
	return s
}
