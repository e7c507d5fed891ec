package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/simsieve/internal/export"
	"github.com/Veraticus/simsieve/internal/model"
	"github.com/Veraticus/simsieve/internal/storage"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cmdResult struct {
	err    error
	stdout string
	stderr string
}

// execute runs the root command in isolation from the user's config.
func execute(t *testing.T, stdin string, args ...string) cmdResult {
	t.Helper()

	viper.Reset()
	cfgFile = ""
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SIM_API_ENDPOINT", "")
	t.Setenv("REACT_APP_API_ENDPOINT", "")

	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return cmdResult{err: err, stdout: stdout.String(), stderr: stderr.String()}
}

var apiResults = map[string]model.AnalysisResult{
	"0987654321": {SimNumber: "0987654321", BatCucScore: 8.5, FolkScore: 7, Interpretation: "Sinh Khí tốt", Conclusion: "Nên mua", IsValid: true},
	"0912345678": {SimNumber: "0912345678", BatCucScore: 4, Interpretation: "Tuyệt Mệnh", Conclusion: "Không nên"},
}

// newAPIServer answers /analyze-bulk from apiResults and /health with 200.
func newAPIServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/analyze-bulk", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			SimNumbers []string `json:"sim_numbers"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		data := make([]model.AnalysisResult, 0, len(req.SimNumbers))
		for _, n := range req.SimNumbers {
			if res, ok := apiResults[n]; ok {
				data = append(data, res)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"data": data})
	})
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestAnalyze_PrintsFilteredTable(t *testing.T) {
	server := newAPIServer(t)

	res := execute(t, "", "analyze", "--api", server.URL, "--carrier", "viettel", "0987654321", "0912345678")
	require.NoError(t, res.err)

	assert.Contains(t, res.stdout, "Hiển thị 1 / 2 sim (đã lọc)")
	assert.Contains(t, res.stdout, "0987654321")
	assert.Contains(t, res.stdout, "Sinh Khí tốt")
	assert.NotContains(t, res.stdout, "0912345678")
}

func TestAnalyze_ReadsStdin(t *testing.T) {
	server := newAPIServer(t)

	res := execute(t, "0987654321\n\n  0912345678  \n", "analyze", "--api", server.URL)
	require.NoError(t, res.err)

	assert.Contains(t, res.stdout, "Hiển thị 2 / 2 sim")
	assert.NotContains(t, res.stdout, "đã lọc")
}

func TestAnalyze_ReadsFile(t *testing.T) {
	server := newAPIServer(t)
	path := filepath.Join(t.TempDir(), "numbers.txt")
	require.NoError(t, os.WriteFile(path, []byte("0912345678\n"), 0600))

	res := execute(t, "", "analyze", "--api", server.URL, "--file", path, "--valid-only")
	require.NoError(t, res.err)

	assert.Contains(t, res.stdout, "Không tìm thấy kết quả phù hợp với bộ lọc (Tổng: 1 sim)")
}

func TestAnalyze_EmptyBatch(t *testing.T) {
	server := newAPIServer(t)

	res := execute(t, "\n  \n", "analyze", "--api", server.URL)
	require.Error(t, res.err)
	assert.Equal(t, "Vui lòng nhập ít nhất một số điện thoại", errorMessage(res.err))
}

func TestAnalyze_InvalidFilterFlags(t *testing.T) {
	tests := []struct {
		name    string
		wantMsg string
		args    []string
	}{
		{
			name:    "unknown carrier",
			args:    []string{"--carrier", "telstra"},
			wantMsg: "valid values: viettel, vinaphone, mobifone, vietnamobile, gmobile",
		},
		{
			name:    "unknown lucky star",
			args:    []string{"--lucky", "hoa_hai"},
			wantMsg: "valid values: sinh_khi, thien_y, dien_nien, phuc_vi",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"analyze", "--api", "http://127.0.0.1:1"}, tt.args...)
			res := execute(t, "", append(args, "0987654321")...)
			require.Error(t, res.err)
			assert.Contains(t, errorMessage(res.err), tt.wantMsg)
		})
	}
}

func TestAnalyze_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"Quá tải"}`))
	}))
	defer server.Close()

	res := execute(t, "", "analyze", "--api", server.URL, "0987654321")
	require.Error(t, res.err)
	assert.Equal(t, "Lỗi: Quá tải", errorMessage(res.err))
}

func TestAnalyze_TransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	res := execute(t, "", "analyze", "--api", url, "0987654321")
	require.Error(t, res.err)
	assert.Contains(t, errorMessage(res.err), "Không thể kết nối đến API")
}

func TestAnalyze_ExportDir(t *testing.T) {
	server := newAPIServer(t)
	dir := t.TempDir()

	fixed := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = time.Now })

	res := execute(t, "", "analyze", "--api", server.URL, "--export-dir", dir, "0987654321", "0912345678")
	require.NoError(t, res.err)

	path := filepath.Join(dir, export.FileName(fixed))
	_, err := os.Stat(path)
	require.NoError(t, err)
	assert.Contains(t, res.stderr, path)
}

func TestAnalyze_ExportEmptyView(t *testing.T) {
	server := newAPIServer(t)

	res := execute(t, "", "analyze", "--api", server.URL, "--export-dir", t.TempDir(), "--prefix", "086", "0987654321")
	require.Error(t, res.err)
	assert.Equal(t, "Không có dữ liệu để xuất", errorMessage(res.err))
}

func TestSessions_RoundTrip(t *testing.T) {
	server := newAPIServer(t)
	dbPath := filepath.Join(t.TempDir(), "sessions.db")

	res := execute(t, "", "analyze", "--api", server.URL, "--db", dbPath, "--save", "0987654321", "0912345678")
	require.NoError(t, res.err)

	store, err := storage.NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	summaries, err := store.ListSessions(context.Background(), 0)
	require.NoError(t, err)
	require.NoError(t, store.Close())
	require.Len(t, summaries, 1)
	id := summaries[0].ID
	assert.Equal(t, 2, summaries[0].NumberCount)
	assert.Equal(t, 1, summaries[0].ValidCount)
	assert.Equal(t, server.URL, summaries[0].Endpoint)

	res = execute(t, "", "sessions", "list", "--db", dbPath)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, id)

	res = execute(t, "", "sessions", "show", id, "--db", dbPath, "--lucky", "sinh_khi")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Hiển thị 1 / 2 sim (đã lọc)")

	exportDir := t.TempDir()
	res = execute(t, "", "export", id, "--db", dbPath, "--export-dir", exportDir)
	require.NoError(t, res.err)
	files, err := filepath.Glob(filepath.Join(exportDir, "Phan_Tich_Sim_*.xlsx"))
	require.NoError(t, err)
	assert.Len(t, files, 1)

	res = execute(t, "", "sessions", "delete", id, "--db", dbPath)
	require.NoError(t, res.err)

	res = execute(t, "", "sessions", "show", id, "--db", dbPath)
	require.Error(t, res.err)
	assert.Contains(t, errorMessage(res.err), "Không tìm thấy phiên")
}

func TestSessions_ListEmpty(t *testing.T) {
	res := execute(t, "", "sessions", "list", "--db", filepath.Join(t.TempDir(), "s.db"))
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Chưa có phiên phân tích nào được lưu")
}

func TestHealth(t *testing.T) {
	server := newAPIServer(t)

	res := execute(t, "", "health", "--api", server.URL)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "API hoạt động")

	server.Close()
	res = execute(t, "", "health", "--api", server.URL)
	require.Error(t, res.err)
	assert.Contains(t, errorMessage(res.err), "không phản hồi")
}

func TestMigrate(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "m.db")

	res := execute(t, "", "migrate", "--status", "--db", dbPath)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Current version: 0")

	res = execute(t, "", "migrate", "--db", dbPath)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "from version 0 to 2")

	res = execute(t, "", "migrate", "--db", dbPath)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "already at version 2")
}

func TestCarriersAndVersion(t *testing.T) {
	res := execute(t, "", "carriers")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "viettel")
	assert.Contains(t, res.stdout, "086")
	assert.Contains(t, res.stdout, "Sinh Khí")

	res = execute(t, "", "version")
	require.NoError(t, res.err)
	assert.Equal(t, "simsieve dev\n", res.stdout)
}

func TestInvalidLogLevel(t *testing.T) {
	res := execute(t, "", "--log-level", "loud", "version")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "invalid log level")
}
