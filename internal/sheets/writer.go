package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/Veraticus/simsieve/internal/common"
	"github.com/Veraticus/simsieve/internal/export"
	"github.com/Veraticus/simsieve/internal/model"
	"github.com/samber/lo"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// ProgressFunc receives the number of rows written so far and the total.
type ProgressFunc func(written, total int)

// Writer uploads analysis results to a Google spreadsheet.
type Writer struct {
	service  *sheets.Service
	logger   *slog.Logger
	progress ProgressFunc
	config   Config
}

type target struct {
	spreadsheetID string
	url           string
	sheetID       int64
}

// NewWriter creates a new Google Sheets writer.
func NewWriter(ctx context.Context, config Config, logger *slog.Logger) (*Writer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	service, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return newWriterWithService(config, service, logger), nil
}

func newWriterWithService(config Config, service *sheets.Service, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{
		config:  config,
		service: service,
		logger:  logger,
	}
}

// OnProgress registers a callback invoked after every uploaded batch.
func (w *Writer) OnProgress(fn ProgressFunc) {
	w.progress = fn
}

// Write replaces the result sheet's contents with results and returns the
// spreadsheet URL.
func (w *Writer) Write(ctx context.Context, results []model.AnalysisResult) (string, error) {
	if len(results) == 0 {
		return "", common.ErrNoData
	}

	w.logger.Info("starting sheets export", "results", len(results))

	tgt, err := w.getOrCreateSpreadsheet(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	if clearErr := w.clearSheet(ctx, tgt.spreadsheetID); clearErr != nil {
		return "", fmt.Errorf("failed to clear sheet: %w", clearErr)
	}

	values := prepareValues(results)

	retryOpts := common.RetryOptions{
		MaxAttempts:  w.config.RetryAttempts,
		InitialDelay: w.config.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}

	err = common.WithRetry(ctx, func() error {
		return w.writeData(ctx, tgt.spreadsheetID, values)
	}, retryOpts)
	if err != nil {
		return "", fmt.Errorf("failed to write data: %w", err)
	}

	if w.config.EnableFormatting {
		err = common.WithRetry(ctx, func() error {
			return w.applyFormatting(ctx, tgt)
		}, retryOpts)
		if err != nil {
			// Formatting is cosmetic; the data is already written.
			w.logger.Warn("failed to apply formatting", common.ErrAttr(err))
		}
	}

	w.logger.Info("sheets export completed",
		"spreadsheet_id", tgt.spreadsheetID,
		"rows_written", len(values))

	return tgt.url, nil
}

func createSheetsService(ctx context.Context, config Config) (*sheets.Service, error) {
	var tokenSource oauth2.TokenSource

	if config.ServiceAccountPath != "" {
		jsonKey, err := os.ReadFile(config.ServiceAccountPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}

		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}

		tokenSource = jwtConfig.TokenSource(ctx)
	} else {
		client := &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{sheets.SpreadsheetsScope},
		}

		token := &oauth2.Token{
			RefreshToken: config.RefreshToken,
			TokenType:    "Bearer",
		}

		tokenSource = client.TokenSource(ctx, token)
	}

	httpClient := oauth2.NewClient(ctx, tokenSource)
	srv, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return srv, nil
}

func (w *Writer) getOrCreateSpreadsheet(ctx context.Context) (target, error) {
	if w.config.SpreadsheetID != "" {
		return w.openSpreadsheet(ctx, w.config.SpreadsheetID)
	}

	spreadsheet := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title:    w.config.SpreadsheetName,
			TimeZone: w.config.TimeZone,
		},
		Sheets: []*sheets.Sheet{
			{
				Properties: &sheets.SheetProperties{
					Title: export.SheetName,
				},
			},
		},
	}

	created, err := w.service.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
	if err != nil {
		return target{}, fmt.Errorf("unable to create spreadsheet: %w", err)
	}

	w.logger.Info("created new spreadsheet",
		"id", created.SpreadsheetId,
		"url", created.SpreadsheetUrl)

	tgt := target{spreadsheetID: created.SpreadsheetId, url: created.SpreadsheetUrl}
	if len(created.Sheets) > 0 && created.Sheets[0].Properties != nil {
		tgt.sheetID = created.Sheets[0].Properties.SheetId
	}
	return tgt, nil
}

// openSpreadsheet resolves the result sheet inside an existing spreadsheet,
// adding it when missing.
func (w *Writer) openSpreadsheet(ctx context.Context, id string) (target, error) {
	existing, err := w.service.Spreadsheets.Get(id).Context(ctx).Do()
	if err != nil {
		return target{}, fmt.Errorf("unable to access spreadsheet %s: %w", id, err)
	}

	tgt := target{spreadsheetID: id, url: existing.SpreadsheetUrl}

	sheet, found := lo.Find(existing.Sheets, func(s *sheets.Sheet) bool {
		return s.Properties != nil && s.Properties.Title == export.SheetName
	})
	if found {
		tgt.sheetID = sheet.Properties.SheetId
		return tgt, nil
	}

	resp, err := w.service.Spreadsheets.BatchUpdate(id, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			{AddSheet: &sheets.AddSheetRequest{Properties: &sheets.SheetProperties{Title: export.SheetName}}},
		},
	}).Context(ctx).Do()
	if err != nil {
		return target{}, fmt.Errorf("unable to add sheet %q: %w", export.SheetName, err)
	}

	if len(resp.Replies) > 0 && resp.Replies[0].AddSheet != nil && resp.Replies[0].AddSheet.Properties != nil {
		tgt.sheetID = resp.Replies[0].AddSheet.Properties.SheetId
	}

	w.logger.Info("added result sheet", "spreadsheet_id", id, "sheet_id", tgt.sheetID)

	return tgt, nil
}

func sheetRange(cells string) string {
	return fmt.Sprintf("'%s'!%s", export.SheetName, cells)
}

func (w *Writer) clearSheet(ctx context.Context, spreadsheetID string) error {
	_, err := w.service.Spreadsheets.Values.Clear(spreadsheetID, sheetRange("A:Z"), &sheets.ClearValuesRequest{}).Context(ctx).Do()
	return err
}

// valueInputOption stores cells as sent, keeping leading zeros on SIM numbers
// and never evaluating interpretation text as a formula.
const valueInputOption = "RAW"

// prepareValues lays out the header row followed by one row per result.
func prepareValues(results []model.AnalysisResult) [][]any {
	values := make([][]any, 0, len(results)+1)
	values = append(values, lo.ToAnySlice(export.Header))
	return append(values, export.Rows(results)...)
}

func (w *Writer) writeData(ctx context.Context, spreadsheetID string, values [][]any) error {
	for i := 0; i < len(values); i += w.config.BatchSize {
		end := min(i+w.config.BatchSize, len(values))

		batch := values[i:end]
		valueRange := &sheets.ValueRange{
			Values: batch,
		}

		_, err := w.service.Spreadsheets.Values.Update(spreadsheetID, sheetRange(fmt.Sprintf("A%d", i+1)), valueRange).
			ValueInputOption(valueInputOption).
			Context(ctx).
			Do()
		if err != nil {
			err = classifyAPIError(err)
			w.logger.Debug("batch write failed",
				"start_row", i+1,
				"retryable", common.IsRetryable(err),
				common.ErrAttr(err))
			return fmt.Errorf("failed to write batch starting at row %d: %w", i+1, err)
		}

		w.logger.Debug("wrote batch", "start_row", i+1, "rows", len(batch))

		if w.progress != nil {
			w.progress(end, len(values))
		}
	}

	return nil
}

// classifyAPIError marks Google API failures for WithRetry: 429 backs off to the
// maximum delay, other 4xx responses stop immediately.
func classifyAPIError(err error) error {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return err
	}

	switch {
	case apiErr.Code == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %w", common.ErrRateLimit, err)
	case apiErr.Code >= http.StatusInternalServerError:
		return &common.RetryableError{Err: err, Retryable: true}
	case apiErr.Code >= http.StatusBadRequest:
		return &common.RetryableError{Err: err, Retryable: false}
	default:
		return err
	}
}

func (w *Writer) applyFormatting(ctx context.Context, tgt target) error {
	requests := []*sheets.Request{
		{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:          tgt.sheetID,
					StartRowIndex:    0,
					EndRowIndex:      1,
					StartColumnIndex: 0,
					EndColumnIndex:   int64(len(export.Header)),
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						TextFormat: &sheets.TextFormat{
							Bold: true,
						},
						HorizontalAlignment: "CENTER",
					},
				},
				Fields: "userEnteredFormat(textFormat,horizontalAlignment)",
			},
		},
		{
			AutoResizeDimensions: &sheets.AutoResizeDimensionsRequest{
				Dimensions: &sheets.DimensionRange{
					SheetId:    tgt.sheetID,
					Dimension:  "COLUMNS",
					StartIndex: 0,
					EndIndex:   int64(len(export.Header)),
				},
			},
		},
		{
			UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
				Properties: &sheets.SheetProperties{
					SheetId: tgt.sheetID,
					GridProperties: &sheets.GridProperties{
						FrozenRowCount: 1,
					},
				},
				Fields: "gridProperties.frozenRowCount",
			},
		},
	}

	batchUpdate := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}

	_, err := w.service.Spreadsheets.BatchUpdate(tgt.spreadsheetID, batchUpdate).Context(ctx).Do()
	return err
}
