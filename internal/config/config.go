package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultUserAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/114.0.0.0 Safari/537.36"
	mp3YouTubeUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/115.0.0.0 Safari/537.36"
)

type Config struct {
	Server ServerConfig
	Agent  AgentConfig
	Donors DonorsConfig
	Log    LogConfig
}

type ServerConfig struct {
	Port            string
	Host            string
	ShutdownTimeout time.Duration
}

type AgentConfig struct {
	SecretKey string
}

type LogConfig struct {
	Level string
}

// DonorsConfig holds upstream endpoints and client settings shared by all donors.
type DonorsConfig struct {
	HTTPTimeout time.Duration
	UserAgent   string
	GenYouTube  GenYouTubeConfig
	MP3YouTube  MP3YouTubeConfig
	SaveNow     SaveNowConfig
}

type GenYouTubeConfig struct {
	BaseURL string
}

// MP3YouTubeConfig has its own User-Agent, defaulting to a newer Chrome
// than DONOR_USER_AGENT.
type MP3YouTubeConfig struct {
	BaseURL   string
	UserAgent string
}

type SaveNowConfig struct {
	BaseURL      string
	APIToken     string
	PollAttempts int
	PollInterval time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found, using environment variables")
	}

	cfg := &Config{}

	// Server configuration
	cfg.Server.Port = getEnv("SERVER_PORT", "8000")
	cfg.Server.Host = getEnv("SERVER_HOST", "0.0.0.0")
	shutdownTimeout, err := getEnvDuration("SHUTDOWN_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}
	cfg.Server.ShutdownTimeout = shutdownTimeout

	// Agent configuration
	cfg.Agent.SecretKey = os.Getenv("AGENT_SECRET_KEY")
	if cfg.Agent.SecretKey == "" {
		return nil, fmt.Errorf("required environment variable AGENT_SECRET_KEY is not set")
	}

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")

	// Donor configuration
	httpTimeout, err := getEnvDuration("DONOR_HTTP_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}
	cfg.Donors.HTTPTimeout = httpTimeout
	cfg.Donors.UserAgent = getEnv("DONOR_USER_AGENT", defaultUserAgent)

	cfg.Donors.GenYouTube.BaseURL = getEnv("GENYOUTUBE_BASE_URL", "http://genyoutube.online")
	cfg.Donors.MP3YouTube.BaseURL = getEnv("MP3YOUTUBE_BASE_URL", "https://api.mp3youtube.cc")
	cfg.Donors.MP3YouTube.UserAgent = getEnv("MP3YOUTUBE_USER_AGENT", mp3YouTubeUserAgent)

	cfg.Donors.SaveNow.BaseURL = getEnv("SAVENOW_BASE_URL", "https://p.savenow.to")
	cfg.Donors.SaveNow.APIToken = getEnv("SAVENOW_API_TOKEN", "dfcb6d76f2f6a9894gjkege8a4ab232222")
	cfg.Donors.SaveNow.PollAttempts = getEnvInt("SAVENOW_POLL_ATTEMPTS", 40)
	if cfg.Donors.SaveNow.PollAttempts <= 0 {
		return nil, fmt.Errorf("invalid SAVENOW_POLL_ATTEMPTS: must be positive")
	}
	pollInterval, err := getEnvDuration("SAVENOW_POLL_INTERVAL", "2s")
	if err != nil {
		return nil, err
	}
	cfg.Donors.SaveNow.PollInterval = pollInterval

	return cfg, nil
}

// Address returns the listen address for the HTTP server.
func (s ServerConfig) Address() string {
	return s.Host + ":" + s.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key, defaultValue string) (time.Duration, error) {
	d, err := time.ParseDuration(getEnv(key, defaultValue))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
