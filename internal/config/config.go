package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Notion   Notion   `mapstructure:"notion"`
	CSV      CSV      `mapstructure:"csv"`
	Logger   Logger   `mapstructure:"logger"`
	Server   Server   `mapstructure:"server"`
	Database Database `mapstructure:"database"`
}

// Notion holds the configuration for the Notion API.
// APIKey and DatabaseID map to the NOTION_API_KEY and NOTION_DATABASE_ID
// environment variables and are required.
type Notion struct {
	APIKey         string  `mapstructure:"api_key"`
	DatabaseID     string  `mapstructure:"database_id"`
	RateLimit      float64 `mapstructure:"rate_limit"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`
}

// CSV holds the configuration for the TradingView export to import.
// FilePath maps to the CSV_FILE_PATH environment variable and is optional.
type CSV struct {
	FilePath string `mapstructure:"file_path"`
}

// Server holds the configuration for the journal web server.
type Server struct {
	Port int `mapstructure:"port"`
}

// Database holds the configuration for the sync journal database.
type Database struct {
	DSN string `mapstructure:"dsn"`
}

// Logger holds the configuration for the logger.
type Logger struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LoadConfig reads configuration from file or environment variables.
// The config file is optional; environment variables alone are enough to run.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config") // name of config file (without extension)
	viper.SetConfigType("yml")    // or yaml, json

	// Allow environment variables to override config file
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set default values. Registering the keys here also makes the
	// matching environment variables visible to Unmarshal.
	viper.SetDefault("notion.api_key", "")
	viper.SetDefault("notion.database_id", "")
	viper.SetDefault("notion.rate_limit", 3) // requests per second, Notion's documented limit
	viper.SetDefault("notion.rate_limit_burst", 1)
	viper.SetDefault("csv.file_path", "trades.csv")
	viper.SetDefault("database.dsn", "journal.db")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")

	err = viper.ReadInConfig()
	if err != nil {
		// A missing config file is fine; everything can come from the
		// environment.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return
		}
		err = nil
	}

	err = viper.Unmarshal(&config)
	return
}

// Validate checks that the required Notion credentials are present.
func (c *Config) Validate() error {
	var missing []string
	if c.Notion.APIKey == "" {
		missing = append(missing, "NOTION_API_KEY")
	}
	if c.Notion.DatabaseID == "" {
		missing = append(missing, "NOTION_DATABASE_ID")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}
