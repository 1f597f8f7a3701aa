package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/SscSPs/queue_mood_board/internal/core/domain"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store backends accepted by STORE_BACKEND.
const (
	BackendSheets   = "sheets"
	BackendXLSX     = "xlsx"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Config holds application configuration. All values are static for the
// lifetime of the process.
type Config struct {
	Port         string
	IsProduction bool

	// Persistence
	StoreBackend          string
	GoogleCredentialsFile string `mapstructure:"GOOGLE_CREDENTIALS_FILE"`
	SpreadsheetID         string `mapstructure:"SPREADSHEET_ID"`
	SheetName             string `mapstructure:"SHEET_NAME"`
	XLSXPath              string `mapstructure:"XLSX_PATH"`
	DatabaseURL           string

	// Board behaviour
	Moods           domain.MoodSet
	RefreshInterval time.Duration
	TimeZone        string
	Location        *time.Location

	// HTTP surface
	SubmitRateLimit    string
	CORSAllowedOrigins []string

	// Analytics
	PosthogAPIKey   string `mapstructure:"POSTHOG_API_KEY"`
	PosthogEndpoint string `mapstructure:"POSTHOG_ENDPOINT"`
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("STORE_BACKEND", BackendSheets)
	v.SetDefault("GOOGLE_CREDENTIALS_FILE", "credentials.json")
	v.SetDefault("SPREADSHEET_ID", "")
	v.SetDefault("SHEET_NAME", "Sheet1")
	v.SetDefault("XLSX_PATH", "mood_board.xlsx")
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("REFRESH_INTERVAL", "30s")
	v.SetDefault("TIMEZONE", "Local")
	v.SetDefault("MOOD_OPTIONS", "")
	v.SetDefault("SUBMIT_RATE_LIMIT", "30-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("POSTHOG_ENDPOINT", "")
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{}

	cfg.Port = v.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	cfg.IsProduction = v.GetBool("IS_PRODUCTION")

	cfg.StoreBackend = strings.ToLower(strings.TrimSpace(v.GetString("STORE_BACKEND")))
	cfg.GoogleCredentialsFile = v.GetString("GOOGLE_CREDENTIALS_FILE")
	cfg.SpreadsheetID = v.GetString("SPREADSHEET_ID")
	cfg.SheetName = v.GetString("SHEET_NAME")
	cfg.XLSXPath = v.GetString("XLSX_PATH")
	cfg.DatabaseURL = v.GetString("PGSQL_URL")

	switch cfg.StoreBackend {
	case BackendSheets:
		if cfg.SpreadsheetID == "" {
			return nil, fmt.Errorf("SPREADSHEET_ID is required for the %s backend", BackendSheets)
		}
		if cfg.GoogleCredentialsFile == "" {
			return nil, fmt.Errorf("GOOGLE_CREDENTIALS_FILE is required for the %s backend", BackendSheets)
		}
	case BackendXLSX:
		if cfg.XLSXPath == "" {
			return nil, fmt.Errorf("XLSX_PATH is required for the %s backend", BackendXLSX)
		}
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL is required for the %s backend", BackendPostgres)
		}
	case BackendMemory:
		log.Println("Warning: STORE_BACKEND=memory, mood readings are lost on restart.")
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
	if cfg.SheetName == "" {
		cfg.SheetName = "Sheet1"
	}

	options := domain.DefaultMoodOptions()
	if raw := v.GetString("MOOD_OPTIONS"); raw != "" {
		parsed, err := domain.ParseMoodOptions(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid MOOD_OPTIONS: %w", err)
		}
		options = parsed
	}
	moods, err := domain.NewMoodSet(options)
	if err != nil {
		return nil, fmt.Errorf("invalid MOOD_OPTIONS: %w", err)
	}
	cfg.Moods = moods

	refreshStr := v.GetString("REFRESH_INTERVAL")
	refresh, err := time.ParseDuration(refreshStr)
	if err != nil || refresh <= 0 {
		refresh = 30 * time.Second
		log.Printf("Warning: Invalid value for REFRESH_INTERVAL ('%s'). Defaulting to %s.\n", refreshStr, refresh)
	}
	cfg.RefreshInterval = refresh

	cfg.TimeZone = v.GetString("TIMEZONE")
	if cfg.TimeZone == "" {
		cfg.TimeZone = "Local"
	}
	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", cfg.TimeZone, err)
	}
	cfg.Location = loc

	cfg.SubmitRateLimit = v.GetString("SUBMIT_RATE_LIMIT")
	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	cfg.PosthogAPIKey = v.GetString("POSTHOG_API_KEY")
	cfg.PosthogEndpoint = v.GetString("POSTHOG_ENDPOINT")

	return cfg, nil
}
