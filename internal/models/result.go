package models

import "fmt"

// Format is the logical output format requested by a caller.
// Each donor maps it to its own upstream vocabulary.
type Format string

const (
	FormatMP3 Format = "mp3"
	Format720 Format = "720"
)

const watchURLPrefix = "https://www.youtube.com/watch?v="

// Request is a single conversion request. It is created per incoming call
// and never modified afterwards.
type Request struct {
	VideoID string `json:"id"`
	Format  Format `json:"format"`
}

func NewRequest(videoID, format string) Request {
	return Request{VideoID: videoID, Format: Format(format)}
}

// WatchURL returns the canonical YouTube watch URL for the request's video.
func (r Request) WatchURL() string {
	return watchURLPrefix + r.VideoID
}

// Result is the outcome of a conversion: either a download URL or a
// failure message. Use Success or Failure to build one.
type Result struct {
	OK          bool        `json:"success"`
	DownloadURL string      `json:"download_url,omitempty"`
	Message     string      `json:"message,omitempty"`
	Details     interface{} `json:"details,omitempty"`
}

func Success(downloadURL string) Result {
	return Result{OK: true, DownloadURL: downloadURL}
}

// Failure builds a failed result. details is optional diagnostic payload,
// typically the upstream response that could not be used.
func Failure(message string, details interface{}) Result {
	return Result{OK: false, Message: message, Details: details}
}

func (r Result) String() string {
	if r.OK {
		return fmt.Sprintf("success: %s", r.DownloadURL)
	}
	return fmt.Sprintf("failure: %s", r.Message)
}
