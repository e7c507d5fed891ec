package httpx

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func TestLoggingRoundTripper(t *testing.T) {
	const testResponseBody = `{"data":[{"sim_number":"0987654321"}]}`

	testCases := []struct {
		name           string
		handlerFunc    http.HandlerFunc
		masker         Masker
		check          func(rq *require.Assertions, req, resp string)
		statusCode     int
		logFieldMaxLen int
	}{
		{
			name: "Status 200",
			handlerFunc: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte(testResponseBody))
			},
			check: func(rq *require.Assertions, req, resp string) {
				rq.Contains(req, "POST / HTTP/1.1")
				rq.Contains(req, "0987654321")
				rq.Contains(resp, "HTTP/1.1 200 OK")
				rq.Contains(resp, testResponseBody)
			},
			statusCode: http.StatusOK,
		},
		{
			name: "Status 500",
			handlerFunc: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"message":"boom"}`))
			},
			check: func(rq *require.Assertions, _, resp string) {
				rq.Contains(resp, "HTTP/1.1 500 Internal Server Error")
				rq.Contains(resp, `{"message":"boom"}`)
			},
			statusCode: http.StatusInternalServerError,
		},
		{
			name: "Status 200 (masked)",
			handlerFunc: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte(testResponseBody))
			},
			masker: PhoneNumberMasker{},
			check: func(rq *require.Assertions, req, resp string) {
				rq.NotContains(req, "0987654321")
				rq.Contains(req, "0*****321")
				rq.Contains(resp, `"sim_number":"0*****321"`)
			},
			statusCode: http.StatusOK,
		},
		{
			name: "Status 200 (with log field size limit)",
			handlerFunc: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte(testResponseBody))
			},
			check: func(rq *require.Assertions, req, resp string) {
				rq.Equal("POST / HTT", req)
				rq.Equal("HTTP/1.1 2", resp)
			},
			statusCode:     http.StatusOK,
			logFieldMaxLen: 10,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			httpServer := httptest.NewServer(tc.handlerFunc)
			defer httpServer.Close()

			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

			opts := []Option{WithLogger(logger)}
			if tc.masker != nil {
				opts = append(opts, WithMasker(tc.masker))
			}
			if tc.logFieldMaxLen != 0 {
				opts = append(opts, WithLogFieldMaxLen(tc.logFieldMaxLen))
			}

			client := &http.Client{Transport: NewLoggingRoundTripper(http.DefaultTransport, opts...)}

			req, err := http.NewRequest(http.MethodPost, httpServer.URL, strings.NewReader(`{"sim_numbers":["0987654321"]}`))
			rq.NoError(err)

			resp, err := client.Do(req)
			rq.NoError(err)
			defer func() { _ = resp.Body.Close() }()

			body, err := io.ReadAll(resp.Body)
			rq.NoError(err)
			rq.Equal(tc.statusCode, resp.StatusCode)
			if tc.statusCode == http.StatusOK {
				rq.Equal(testResponseBody, string(body), "dumping must not consume the body")
			}

			logLines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
			rq.Len(logLines, 2)

			var request, response map[string]any
			rq.NoError(json.Unmarshal(logLines[0], &request))
			rq.NoError(json.Unmarshal(logLines[1], &response))

			rq.Equal(request["request_id"], response["request_id"])
			rq.NotEmpty(request["request_id"])

			tc.check(rq, request["request_body"].(string), response["response_body"].(string))
		})
	}
}

func TestLoggingRoundTripper_SkipsDumpAboveDebug(t *testing.T) {
	rq := require.New(t)

	httpServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer httpServer.Close()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	client := &http.Client{Transport: NewLoggingRoundTripper(nil, WithLogger(logger))}

	resp, err := client.Get(httpServer.URL)
	rq.NoError(err)
	_ = resp.Body.Close()

	rq.Empty(buf.String())
}

func TestLoggingRoundTripper_TruncateKeepsRunesWhole(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		want   string
		maxLen int
	}{
		{name: "no limit", input: "Sinh Khí", maxLen: 0, want: "Sinh Khí"},
		{name: "under limit", input: "Sinh Khí", maxLen: 64, want: "Sinh Khí"},
		{name: "ascii cut", input: "0987654321", maxLen: 4, want: "0987"},
		// "í" is two bytes starting at index 7.
		{name: "cut inside rune backs off", input: "Sinh Khí", maxLen: 8, want: "Sinh Kh"},
		{name: "cut after rune", input: "Sinh Khí tốt", maxLen: 9, want: "Sinh Khí"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rt := NewLoggingRoundTripper(http.DefaultTransport, WithLogFieldMaxLen(tc.maxLen))
			got := rt.truncate([]byte(tc.input))
			require.Equal(t, tc.want, got)
			require.True(t, utf8.ValidString(got))
		})
	}
}
