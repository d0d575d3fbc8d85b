package donor

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/denisAlshanov/ytagent/internal/models"
	"github.com/denisAlshanov/ytagent/internal/utils"
)

const genYouTubeName = "genyoutube"

// GenYouTube scrapes the analyze page for download buttons, then asks the
// converter for the final link of the matching variant.
type GenYouTube struct {
	client  *HTTPClient
	baseURL string
	headers map[string]string
}

// Envelope fields are read through scalar, whatever their JSON type.
type genYouTubeAnalyzeResponse struct {
	Status json.RawMessage `json:"status"`
	Result json.RawMessage `json:"result"`
}

type genYouTubeConvertResponse struct {
	Status       json.RawMessage `json:"status"`
	DownloadURLX json.RawMessage `json:"downloadUrlX"`
}

func NewGenYouTube(client *HTTPClient, baseURL, userAgent string) *GenYouTube {
	base := trimBaseURL(baseURL)
	return &GenYouTube{
		client:  client,
		baseURL: base,
		headers: browserHeaders(userAgent, map[string]string{
			"Origin":           base,
			"Referer":          base + "/en1/",
			"X-Requested-With": "XMLHttpRequest",
			"Content-Type":     "application/x-www-form-urlencoded; charset=UTF-8",
		}),
	}
}

func (g *GenYouTube) Name() string {
	return genYouTubeName
}

func (g *GenYouTube) Invoke(ctx context.Context, req models.Request) models.Result {
	// Step 1: analyze
	analyzeForm := url.Values{
		"url":      {req.WatchURL()},
		"ajax":     {"1"},
		"lang":     {"en"},
		"platform": {"youtube"},
	}
	resp, err := g.client.PostForm(ctx, g.baseURL+"/mates/en/analyze/ajax", g.headers, analyzeForm)
	if err != nil {
		return requestFailed(ctx, g.Name(), req, err)
	}
	var analyzed genYouTubeAnalyzeResponse
	if err := resp.Envelope(&analyzed); err != nil {
		return decodeFailed(ctx, g.Name(), req, resp, err)
	}
	fragment := scalar(analyzed.Result)
	if scalar(analyzed.Status) != "success" || fragment == "" {
		return rejected(ctx, g.Name(), req, donorError(g.Name(), "Failed at Step 1."), envelope(resp.Body))
	}

	// Step 2: pick the variant
	descriptor, found, err := FindDescriptor(fragment, req.Format)
	if err != nil {
		return rejected(ctx, g.Name(), req, donorError(g.Name(), "Failed to parse HTML"), nil)
	}
	if !found {
		return rejected(ctx, g.Name(), req, donorError(g.Name(), "Format (%s) not found.", req.Format), nil)
	}
	utils.LogDebug(ctx, "Descriptor selected", utils.Fields{
		"donor":   g.Name(),
		"id":      descriptor.ID,
		"ext":     descriptor.Ext,
		"quality": descriptor.Quality,
	})

	// Step 3: convert
	convertForm := url.Values{
		"id":       {descriptor.ID},
		"platform": {"youtube"},
		"url":      {descriptor.SourceURL},
		"title":    {descriptor.Title},
		"ext":      {descriptor.Ext},
		"note":     {descriptor.Quality},
		"format":   {descriptor.FormatCode},
	}
	convertHeaders := withHeader(g.headers, "X-Note", descriptor.Quality)

	convertURL := g.baseURL + "/mates/en/convert?id=" + url.QueryEscape(descriptor.ID)
	resp, err = g.client.PostForm(ctx, convertURL, convertHeaders, convertForm)
	if err != nil {
		return requestFailed(ctx, g.Name(), req, err)
	}
	var converted genYouTubeConvertResponse
	if err := resp.Envelope(&converted); err != nil {
		return decodeFailed(ctx, g.Name(), req, resp, err)
	}
	if link := scalar(converted.DownloadURLX); scalar(converted.Status) == "success" && link != "" {
		return models.Success(link)
	}

	return rejected(ctx, g.Name(), req, donorError(g.Name(), "Failed to get final link."), envelope(resp.Body))
}
