package donor

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/denisAlshanov/ytagent/internal/models"
)

const mp3YouTubeName = "y2meta"

// MP3YouTube fetches a short-lived API key and posts a conversion request
// signed with it. The converter answers with a tunnel URL.
type MP3YouTube struct {
	client  *HTTPClient
	baseURL string
	headers map[string]string
}

type mp3YouTubeKeyResponse struct {
	Key json.RawMessage `json:"key"`
}

type mp3YouTubeConvertResponse struct {
	Status json.RawMessage `json:"status"`
	URL    json.RawMessage `json:"url"`
}

func NewMP3YouTube(client *HTTPClient, baseURL, userAgent string) *MP3YouTube {
	return &MP3YouTube{
		client:  client,
		baseURL: trimBaseURL(baseURL),
		headers: browserHeaders(userAgent, map[string]string{
			"Origin":  "https://iframe.y2meta-uk.com",
			"Referer": "https://iframe.y2meta-uk.com/",
		}),
	}
}

func (m *MP3YouTube) Name() string {
	return mp3YouTubeName
}

// converterPayload maps the requested format to the converter's vocabulary.
func converterPayload(req models.Request) (url.Values, bool) {
	switch req.Format {
	case models.FormatMP3:
		return url.Values{
			"link":          {req.WatchURL()},
			"format":        {"mp3"},
			"audioBitrate":  {"320"},
			"filenameStyle": {"pretty"},
		}, true
	case models.Format720:
		return url.Values{
			"link":          {req.WatchURL()},
			"format":        {"mp4"},
			"audioBitrate":  {"128"},
			"videoQuality":  {"720"},
			"filenameStyle": {"pretty"},
			"vCodec":        {"h264"},
		}, true
	default:
		return nil, false
	}
}

func (m *MP3YouTube) Invoke(ctx context.Context, req models.Request) models.Result {
	payload, ok := converterPayload(req)
	if !ok {
		return rejected(ctx, m.Name(), req, donorError(m.Name(), "Unsupported format requested."), nil)
	}

	resp, err := m.client.Get(ctx, m.baseURL+"/v2/sanity/key", m.headers)
	if err != nil {
		return requestFailed(ctx, m.Name(), req, err)
	}
	var keyed mp3YouTubeKeyResponse
	if err := resp.Envelope(&keyed); err != nil {
		return decodeFailed(ctx, m.Name(), req, resp, err)
	}
	key := scalar(keyed.Key)
	if key == "" {
		return rejected(ctx, m.Name(), req, donorError(m.Name(), "Could not extract API key."), nil)
	}

	resp, err = m.client.PostForm(ctx, m.baseURL+"/v2/converter", withHeader(m.headers, "Key", key), payload)
	if err != nil {
		return requestFailed(ctx, m.Name(), req, err)
	}
	var converted mp3YouTubeConvertResponse
	if err := resp.Envelope(&converted); err != nil {
		return decodeFailed(ctx, m.Name(), req, resp, err)
	}
	if link := scalar(converted.URL); scalar(converted.Status) == "tunnel" && link != "" {
		return models.Success(link)
	}

	return rejected(ctx, m.Name(), req, donorError(m.Name(), "Failed to get final link."), envelope(resp.Body))
}
