package main

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/Veraticus/simsieve/internal/analyzer"
	"github.com/Veraticus/simsieve/internal/common"
	"github.com/Veraticus/simsieve/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeWithMock(t *testing.T) {
	mock := analyzer.NewMockAnalyzer()
	mock.SetResult(apiResults["0987654321"])

	cmd := analyzeCmd()
	cmd.SetErr(io.Discard)

	results, err := analyze(context.Background(), cmd, mock, []string{"0987654321", "0900000000"})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, apiResults["0987654321"], results[0])
	assert.Equal(t, model.AnalysisResult{SimNumber: "0900000000"}, results[1])
	assert.Equal(t, [][]string{{"0987654321", "0900000000"}}, mock.Calls())
}

func TestAnalyzeWithMock_Errors(t *testing.T) {
	tests := []struct {
		err     error
		name    string
		wantMsg string
	}{
		{
			name:    "api error",
			err:     &common.APIError{StatusCode: 422, Message: "Số không hợp lệ"},
			wantMsg: "Lỗi: Số không hợp lệ",
		},
		{
			name:    "transport error",
			err:     &common.TransportError{Op: "POST /analyze-bulk", Err: errors.New("connection refused")},
			wantMsg: "Không thể kết nối đến API",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := analyzer.NewMockAnalyzer()
			mock.SetError(tt.err)

			cmd := analyzeCmd()
			cmd.SetErr(io.Discard)

			_, err := analyze(context.Background(), cmd, mock, []string{"0987654321"})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.err)
			assert.Contains(t, errorMessage(err), tt.wantMsg)
		})
	}
}

func TestAnalyzeWithMock_Canceled(t *testing.T) {
	mock := analyzer.NewMockAnalyzer()
	mock.SetError(context.Canceled)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cmd := analyzeCmd()
	cmd.SetErr(io.Discard)

	_, err := analyze(ctx, cmd, mock, []string{"0987654321"})
	assert.ErrorIs(t, err, context.Canceled)

	var userErr *common.UserError
	assert.False(t, errors.As(err, &userErr))
}
