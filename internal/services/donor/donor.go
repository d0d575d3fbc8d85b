// Package donor implements the upstream conversion services ("donors").
//
// Every donor speaks its own multi-step protocol but exposes the same
// contract: Invoke always returns a models.Result and never a Go error.
// Transport, decode and shape faults are folded into a failure whose
// message is tagged with the donor name.
package donor

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/denisAlshanov/ytagent/internal/models"
	"github.com/denisAlshanov/ytagent/internal/utils"
)

const maxLoggedBody = 512

// Donor converts a single request through one upstream service.
type Donor interface {
	Name() string
	Invoke(ctx context.Context, req models.Request) models.Result
}

// donorError formats a donor-tagged failure message.
func donorError(name, format string, args ...interface{}) string {
	return fmt.Sprintf("Donor Error (%s): ", name) + fmt.Sprintf(format, args...)
}

// requestFailed converts a transport or decode fault into a failure.
func requestFailed(ctx context.Context, name string, req models.Request, err error) models.Result {
	utils.LogError(ctx, "Donor request failed", err, utils.Fields{
		"donor":    name,
		"video_id": req.VideoID,
		"format":   req.Format,
	})
	return models.Failure(donorError(name, "Request failed - %v", err), nil)
}

// decodeFailed reports a body that is not the JSON envelope the donor
// expected. A prefix of the raw text goes to the debug log.
func decodeFailed(ctx context.Context, name string, req models.Request, resp *Response, err error) models.Result {
	text := resp.Text()
	if len(text) > maxLoggedBody {
		text = text[:maxLoggedBody]
	}
	utils.LogDebug(ctx, "Undecodable donor response", utils.Fields{
		"donor":  name,
		"status": resp.StatusCode,
		"body":   text,
	})
	return requestFailed(ctx, name, req, err)
}

// rejected logs and returns a protocol-level failure.
func rejected(ctx context.Context, name string, req models.Request, message string, details interface{}) models.Result {
	utils.LogWarn(ctx, "Donor rejected request", utils.Fields{
		"donor":    name,
		"video_id": req.VideoID,
		"format":   req.Format,
		"reason":   message,
	})
	return models.Failure(message, details)
}

// envelope keeps an upstream JSON body around so it can be attached to a
// failure as-is. Bodies that are not valid JSON are dropped.
func envelope(body []byte) interface{} {
	if !json.Valid(body) {
		return nil
	}
	return json.RawMessage(body)
}

// scalar renders a JSON string or number as text. Missing values, null,
// false, zero and empty strings all render as "".
func scalar(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == 0 {
			return ""
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		if t {
			return "true"
		}
		return ""
	default:
		return ""
	}
}

func browserHeaders(userAgent string, extra map[string]string) map[string]string {
	h := map[string]string{"User-Agent": userAgent}
	for k, v := range extra {
		h[k] = v
	}
	return h
}

// withHeader returns a copy of headers with key set to value.
func withHeader(headers map[string]string, key, value string) map[string]string {
	h := make(map[string]string, len(headers)+1)
	for k, v := range headers {
		h[k] = v
	}
	h[key] = value
	return h
}

func trimBaseURL(base string) string {
	return strings.TrimRight(base, "/")
}
