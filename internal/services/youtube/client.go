package youtube

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/kkdai/youtube/v2"
)

var urlPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^https?://(www\.|m\.|music\.)?youtube\.com/watch\?v=[\w-]+`),
	regexp.MustCompile(`^https?://(www\.)?youtube\.com/embed/[\w-]+`),
	regexp.MustCompile(`^https?://(www\.)?youtube\.com/shorts/[\w-]+`),
	regexp.MustCompile(`^https?://youtu\.be/[\w-]+`),
	regexp.MustCompile(`^https?://(www\.)?youtube\.com/v/[\w-]+`),
}

// IsYouTubeURL checks if the provided value is a YouTube watch link
func IsYouTubeURL(raw string) bool {
	for _, pattern := range urlPatterns {
		if pattern.MatchString(raw) {
			return true
		}
	}
	return false
}

// ParseVideoID accepts a bare video id or a YouTube link and returns the
// 11 character id the donors expect. Links to other hosts are rejected.
func ParseVideoID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty video id")
	}
	if strings.Contains(raw, "://") && !IsYouTubeURL(raw) {
		return "", fmt.Errorf("not a YouTube link: %q", raw)
	}

	id, err := youtube.ExtractVideoID(raw)
	if err != nil {
		return "", fmt.Errorf("could not extract video ID from %q: %w", raw, err)
	}
	return id, nil
}
