package httpclient

import (
	"github.com/rs/zerolog"
)

const (
	tokenPreviewMaxLen = 20
	tokenPreviewNone   = "none"
	tokenPreviewSuffix = "..."
)

// DebugSink receives diagnostic events for every call. Implementations must
// not block; the client ignores anything they do.
type DebugSink interface {
	Request(event RequestEvent)
	Failure(event FailureEvent)
}

type RequestEvent struct {
	Method       string
	URL          string
	HasToken     bool
	TokenPreview string
	RequestID    string
}

type FailureEvent struct {
	Method     string
	URL        string
	StatusCode int
	Status     string
	RequestID  string
}

type NopDebugSink struct{}

func (NopDebugSink) Request(RequestEvent) {}

func (NopDebugSink) Failure(FailureEvent) {}

type zerologDebugSink struct {
	logger zerolog.Logger
}

// NewZerologDebugSink writes request events at debug level and failures at
// warn level. Response bodies are never logged.
func NewZerologDebugSink(logger zerolog.Logger) DebugSink { //nolint:ireturn
	return &zerologDebugSink{logger: logger}
}

func (s *zerologDebugSink) Request(event RequestEvent) {
	s.logger.Debug().
		Str("method", event.Method).
		Str("endpoint", event.URL).
		Bool("has_token", event.HasToken).
		Str("token_preview", event.TokenPreview).
		Str("request_id", event.RequestID).
		Msg("API request")
}

func (s *zerologDebugSink) Failure(event FailureEvent) {
	s.logger.Warn().
		Str("method", event.Method).
		Str("endpoint", event.URL).
		Int("status", event.StatusCode).
		Str("status_text", event.Status).
		Str("request_id", event.RequestID).
		Msg("API error response")
}

// TokenPreview returns a shortened form of token that is safe to log: at most
// 20 characters and never more than half of the token, followed by "...".
func TokenPreview(token string) string {
	if token == "" {
		return tokenPreviewNone
	}

	runes := []rune(token)

	n := min(len(runes)/2, tokenPreviewMaxLen)

	return string(runes[:n]) + tokenPreviewSuffix
}
