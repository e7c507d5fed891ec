// Package httpx provides HTTP transport decorators.
package httpx

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"time"
	"unicode/utf8"

	"github.com/Veraticus/simsieve/internal/common"
	"github.com/rs/xid"
)

// Masker redacts sensitive content from dumped HTTP traffic.
type Masker interface {
	Mask([]byte) []byte
}

// LoggingRoundTripper dumps every request and response at debug level, tagged
// with a shared request id.
type LoggingRoundTripper struct {
	next           http.RoundTripper
	masker         Masker
	logger         *slog.Logger
	logFieldMaxLen int
}

// NewLoggingRoundTripper wraps next. A nil next uses http.DefaultTransport.
func NewLoggingRoundTripper(next http.RoundTripper, opts ...Option) LoggingRoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}

	rt := LoggingRoundTripper{
		next:   next,
		masker: NopMasker{},
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(&rt)
	}

	return rt
}

// RoundTrip implements http.RoundTripper.
func (rt LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	requestID := xid.New().String()

	if rt.logger.Enabled(ctx, slog.LevelDebug) {
		reqBytes, err := httputil.DumpRequestOut(req, true)
		if err != nil {
			rt.logger.WarnContext(ctx, "httputil.DumpRequestOut",
				slog.String(common.FieldRequestID, requestID),
				common.ErrAttr(err))
		}

		rt.logger.DebugContext(ctx, common.FieldHTTPRequest,
			slog.String(common.FieldRequestID, requestID),
			slog.String(common.FieldRequestBody, rt.truncate(rt.masker.Mask(reqBytes))))
	}

	start := time.Now()

	resp, err := rt.next.RoundTrip(req)
	if err != nil {
		rt.logger.DebugContext(ctx, common.FieldHTTPResponse,
			slog.String(common.FieldRequestID, requestID),
			slog.Int64(common.FieldDurationMs, time.Since(start).Milliseconds()),
			common.ErrAttr(err))
		return nil, fmt.Errorf("next.RoundTrip: %w", err)
	}

	if rt.logger.Enabled(ctx, slog.LevelDebug) {
		respBytes, dumpErr := httputil.DumpResponse(resp, true)
		if dumpErr != nil {
			rt.logger.WarnContext(ctx, "httputil.DumpResponse",
				slog.String(common.FieldRequestID, requestID),
				common.ErrAttr(dumpErr))
		}

		rt.logger.DebugContext(ctx, common.FieldHTTPResponse,
			slog.String(common.FieldRequestID, requestID),
			slog.String(common.FieldResponseBody, rt.truncate(rt.masker.Mask(respBytes))),
			slog.Int64(common.FieldDurationMs, time.Since(start).Milliseconds()))
	}

	return resp, nil
}

func (rt LoggingRoundTripper) truncate(b []byte) string {
	if rt.logFieldMaxLen != 0 && len(b) > rt.logFieldMaxLen {
		// Back off to a rune start so multi-byte text is never split.
		cut := rt.logFieldMaxLen
		for cut > 0 && !utf8.RuneStart(b[cut]) {
			cut--
		}
		b = b[:cut]
	}
	return string(b)
}
