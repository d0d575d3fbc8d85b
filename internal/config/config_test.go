package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("AGENT_SECRET_KEY", "s3cret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Address() != "0.0.0.0:8000" {
		t.Errorf("Server.Address() = %q", cfg.Server.Address())
	}
	if cfg.Agent.SecretKey != "s3cret" {
		t.Errorf("Agent.SecretKey = %q", cfg.Agent.SecretKey)
	}
	if cfg.Donors.SaveNow.PollAttempts != 40 {
		t.Errorf("PollAttempts = %d, want 40", cfg.Donors.SaveNow.PollAttempts)
	}
	if cfg.Donors.SaveNow.PollInterval != 2*time.Second {
		t.Errorf("PollInterval = %v, want 2s", cfg.Donors.SaveNow.PollInterval)
	}
	if cfg.Donors.GenYouTube.BaseURL != "http://genyoutube.online" {
		t.Errorf("GenYouTube.BaseURL = %q", cfg.Donors.GenYouTube.BaseURL)
	}
	if !strings.Contains(cfg.Donors.UserAgent, "Chrome/114") {
		t.Errorf("Donors.UserAgent = %q", cfg.Donors.UserAgent)
	}
	if !strings.Contains(cfg.Donors.MP3YouTube.UserAgent, "Chrome/115") {
		t.Errorf("MP3YouTube.UserAgent = %q", cfg.Donors.MP3YouTube.UserAgent)
	}
}

func TestLoadMP3YouTubeUserAgentOverride(t *testing.T) {
	t.Setenv("AGENT_SECRET_KEY", "s3cret")
	t.Setenv("MP3YOUTUBE_USER_AGENT", "custom/1.0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Donors.MP3YouTube.UserAgent != "custom/1.0" {
		t.Errorf("MP3YouTube.UserAgent = %q", cfg.Donors.MP3YouTube.UserAgent)
	}
}

func TestLoadErrors(t *testing.T) {
	testCases := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "missing agent key",
			env:  map[string]string{"AGENT_SECRET_KEY": ""},
		},
		{
			name: "bad poll interval",
			env:  map[string]string{"AGENT_SECRET_KEY": "k", "SAVENOW_POLL_INTERVAL": "soon"},
		},
		{
			name: "bad http timeout",
			env:  map[string]string{"AGENT_SECRET_KEY": "k", "DONOR_HTTP_TIMEOUT": "30"},
		},
		{
			name: "zero poll attempts",
			env:  map[string]string{"AGENT_SECRET_KEY": "k", "SAVENOW_POLL_ATTEMPTS": "0"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Error("Load() expected error, got nil")
			}
		})
	}
}
