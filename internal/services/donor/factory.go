package donor

import (
	"github.com/denisAlshanov/ytagent/internal/config"
)

// NewDonors builds the fixed donor set in dispatch order.
func NewDonors(cfg *config.DonorsConfig) []Donor {
	client := NewHTTPClient(cfg.HTTPTimeout)

	mp3UserAgent := cfg.MP3YouTube.UserAgent
	if mp3UserAgent == "" {
		mp3UserAgent = cfg.UserAgent
	}

	return []Donor{
		NewGenYouTube(client, cfg.GenYouTube.BaseURL, cfg.UserAgent),
		NewMP3YouTube(client, cfg.MP3YouTube.BaseURL, mp3UserAgent),
		NewSaveNow(client, &cfg.SaveNow, cfg.UserAgent),
	}
}
