package donor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/denisAlshanov/ytagent/internal/config"
	"github.com/denisAlshanov/ytagent/internal/models"
	"github.com/denisAlshanov/ytagent/internal/utils"
)

const saveNowName = "savenow"

// SleepFunc pauses for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SaveNow submits a conversion job and polls its progress endpoint until
// the job finishes, fails, or the attempt budget runs out.
type SaveNow struct {
	client       *HTTPClient
	baseURL      string
	apiToken     string
	pollAttempts int
	pollInterval time.Duration
	headers      map[string]string
	sleep        SleepFunc
}

type saveNowSubmitResponse struct {
	ID          json.RawMessage `json:"id"`
	ProgressURL json.RawMessage `json:"progress_url"`
}

type saveNowProgressResponse struct {
	Text        json.RawMessage `json:"text"`
	DownloadURL json.RawMessage `json:"download_url"`
	Error       json.RawMessage `json:"error"`
}

func NewSaveNow(client *HTTPClient, cfg *config.SaveNowConfig, userAgent string) *SaveNow {
	return &SaveNow{
		client:       client,
		baseURL:      trimBaseURL(cfg.BaseURL),
		apiToken:     cfg.APIToken,
		pollAttempts: cfg.PollAttempts,
		pollInterval: cfg.PollInterval,
		headers: browserHeaders(userAgent, map[string]string{
			"Referer": "https://y2down.cc/",
		}),
		sleep: sleepContext,
	}
}

func (s *SaveNow) Name() string {
	return saveNowName
}

func (s *SaveNow) submitURL(req models.Request) string {
	return fmt.Sprintf("%s/ajax/download.php?url=%s&format=%s&api=%s",
		s.baseURL, url.QueryEscape(req.WatchURL()), url.QueryEscape(string(req.Format)), url.QueryEscape(s.apiToken))
}

func (s *SaveNow) Invoke(ctx context.Context, req models.Request) models.Result {
	resp, err := s.client.Get(ctx, s.submitURL(req), s.headers)
	if err != nil {
		return requestFailed(ctx, s.Name(), req, err)
	}
	var submitted saveNowSubmitResponse
	if err := resp.Envelope(&submitted); err != nil {
		return decodeFailed(ctx, s.Name(), req, resp, err)
	}

	taskID := scalar(submitted.ID)
	if taskID == "" {
		return rejected(ctx, s.Name(), req, donorError(s.Name(), "Failed to get task ID."), envelope(resp.Body))
	}
	progressURL := scalar(submitted.ProgressURL)
	if progressURL == "" {
		progressURL = s.baseURL + "/api/progress?id=" + url.QueryEscape(taskID)
	}

	return s.poll(ctx, req, taskID, progressURL)
}

func (s *SaveNow) poll(ctx context.Context, req models.Request, taskID, progressURL string) models.Result {
	for attempt := 1; attempt <= s.pollAttempts; attempt++ {
		if err := s.sleep(ctx, s.pollInterval); err != nil {
			return requestFailed(ctx, s.Name(), req, err)
		}

		resp, err := s.client.Get(ctx, progressURL, s.headers)
		if err != nil {
			return requestFailed(ctx, s.Name(), req, err)
		}
		var progress saveNowProgressResponse
		if err := resp.Envelope(&progress); err != nil {
			return decodeFailed(ctx, s.Name(), req, resp, err)
		}

		status := strings.ToLower(scalar(progress.Text))
		utils.LogDebug(ctx, "Polled task progress", utils.Fields{
			"donor":   s.Name(),
			"task_id": taskID,
			"attempt": attempt,
			"status":  status,
		})

		switch status {
		case "finished":
			// A finished task without a link is not final; keep polling.
			if link := scalar(progress.DownloadURL); link != "" {
				return models.Success(link)
			}
		case "error":
			message := scalar(progress.Error)
			if message == "" {
				message = "Unknown error"
			}
			return rejected(ctx, s.Name(), req, donorError(s.Name(), "%s", message), nil)
		}
	}

	return rejected(ctx, s.Name(), req, donorError(s.Name(), "Timed out waiting for link."), nil)
}
