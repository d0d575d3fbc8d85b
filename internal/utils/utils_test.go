package utils

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
)

func TestGenerateIDs(t *testing.T) {
	correlationID := GenerateCorrelationID()
	if correlationID == "" {
		t.Error("Expected non-empty correlation ID")
	}

	requestID := GenerateRequestID()
	if !strings.HasPrefix(requestID, "req_") {
		t.Errorf("Expected request ID with req_ prefix, got %q", requestID)
	}

	// Check that IDs are different
	if correlationID == requestID {
		t.Error("Correlation ID and request ID should be different")
	}
}

func TestContextIDs(t *testing.T) {
	ctx := WithCorrelationID(context.Background(), "corr-1")
	ctx = WithRequestID(ctx, "req_1")

	if got := GetCorrelationID(ctx); got != "corr-1" {
		t.Errorf("GetCorrelationID() = %q", got)
	}
	if got := GetRequestID(ctx); got != "req_1" {
		t.Errorf("GetRequestID() = %q", got)
	}
	if got := GetCorrelationID(context.Background()); got != "" {
		t.Errorf("GetCorrelationID() on empty context = %q", got)
	}
}

func TestLogFieldsFromContext(t *testing.T) {
	var buf bytes.Buffer
	SetLogOutput(&buf)
	t.Cleanup(func() { SetLogOutput(&bytes.Buffer{}) })

	ctx := WithCorrelationID(context.Background(), "corr-42")
	LogError(ctx, "donor failed", errors.New("boom"), Fields{"donor": "savenow"})

	out := buf.String()
	for _, want := range []string{`"correlation_id":"corr-42"`, `"donor":"savenow"`, `"error":"boom"`, `"message":"donor failed"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %s: %s", want, out)
		}
	}
}

func TestAppErrors(t *testing.T) {
	testCases := []struct {
		name       string
		err        *AppError
		wantCode   ErrorCode
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "forbidden",
			err:        NewForbiddenError(),
			wantCode:   ErrorCodeUnauthorized,
			wantStatus: http.StatusForbidden,
			wantMsg:    "Forbidden: Invalid Agent Key",
		},
		{
			name:       "agent error",
			err:        NewAgentError("savenow", "nil map"),
			wantCode:   ErrorCodeAgentError,
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Agent Error (savenow): nil map",
		},
		{
			name:       "invalid video id",
			err:        NewInvalidVideoIDError("abc", errors.New("too short")),
			wantCode:   ErrorCodeValidationError,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Invalid video id: too short",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Code != tc.wantCode {
				t.Errorf("Code = %s, want %s", tc.err.Code, tc.wantCode)
			}
			if tc.err.StatusCode != tc.wantStatus {
				t.Errorf("StatusCode = %d, want %d", tc.err.StatusCode, tc.wantStatus)
			}
			if tc.err.Message != tc.wantMsg {
				t.Errorf("Message = %q, want %q", tc.err.Message, tc.wantMsg)
			}
		})
	}
}
