package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/Veraticus/simsieve/internal/analyzer"
	"github.com/Veraticus/simsieve/internal/cli"
	"github.com/Veraticus/simsieve/internal/common"
	"github.com/Veraticus/simsieve/internal/config"
	"github.com/Veraticus/simsieve/internal/export"
	"github.com/Veraticus/simsieve/internal/model"
	"github.com/Veraticus/simsieve/internal/phone"
	"github.com/Veraticus/simsieve/internal/service"
	"github.com/Veraticus/simsieve/internal/sheets"
	"github.com/Veraticus/simsieve/internal/storage"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// now is replaced in tests to pin export file names.
var now = time.Now

// initStorage opens the session database at the configured path and migrates it.
func initStorage(ctx context.Context) (service.SessionStore, error) {
	dbPath := config.DatabasePath()

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// newAnalyzer builds the analysis client from --api and the configuration chain.
func newAnalyzer(cmd *cobra.Command) (*analyzer.Client, error) {
	endpoint, _ := cmd.Flags().GetString("api")

	cfg, err := config.LoadAPIConfig(endpoint)
	if err != nil {
		return nil, err
	}

	client, err := analyzer.NewClient(cfg, analyzer.WithLogger(slog.Default()))
	if err != nil {
		return nil, common.NewUserError("Địa chỉ API không hợp lệ", err)
	}
	return client, nil
}

// addFilterFlags registers the criteria flags shared by analyze, sessions show and export.
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("carrier", "", "only numbers on this carrier ("+strings.Join(carrierNames(), ", ")+")")
	cmd.Flags().String("prefix", "", "only numbers starting with this three-digit prefix")
	cmd.Flags().String("lucky", "", "only results mentioning this lucky star ("+strings.Join(luckyNames(), ", ")+")")
	cmd.Flags().String("avoid", "", "drop numbers containing any of these characters")
	cmd.Flags().String("require", "", "keep numbers containing this digit sequence")
	cmd.Flags().Bool("valid-only", false, "only results recommended for purchase")
}

// criteriaFromFlags reads the filter flags. Unknown carriers and lucky stars
// are user errors that list the accepted values.
func criteriaFromFlags(cmd *cobra.Command) (model.FilterCriteria, error) {
	flags := cmd.Flags()
	carrier, _ := flags.GetString("carrier")
	prefix, _ := flags.GetString("prefix")
	lucky, _ := flags.GetString("lucky")
	avoid, _ := flags.GetString("avoid")
	require, _ := flags.GetString("require")
	validOnly, _ := flags.GetBool("valid-only")

	criteria := model.FilterCriteria{
		Carrier:       model.Carrier(strings.ToLower(strings.TrimSpace(carrier))),
		Prefix:        strings.TrimSpace(prefix),
		LuckyCategory: model.LuckyCategory(strings.ToLower(strings.TrimSpace(lucky))),
		Avoid:         avoid,
		Require:       require,
		ValidOnly:     validOnly,
	}

	if criteria.Carrier != model.CarrierNone && !phone.IsCarrier(criteria.Carrier) {
		return model.FilterCriteria{}, common.NewUserError(
			fmt.Sprintf("unknown carrier %q, valid values: %s", carrier, strings.Join(carrierNames(), ", ")),
			nil)
	}
	if criteria.LuckyCategory != "" && !lo.Contains(phone.LuckyCategories(), criteria.LuckyCategory) {
		return model.FilterCriteria{}, common.NewUserError(
			fmt.Sprintf("unknown lucky star %q, valid values: %s", lucky, strings.Join(luckyNames(), ", ")),
			nil)
	}

	return criteria, nil
}

func carrierNames() []string {
	return lo.Map(phone.Carriers(), func(c model.Carrier, _ int) string { return string(c) })
}

func luckyNames() []string {
	return lo.Map(phone.LuckyCategories(), func(c model.LuckyCategory, _ int) string { return string(c) })
}

// readNumbers collects numbers from positional args, --file, or piped stdin,
// in that order of preference.
func readNumbers(cmd *cobra.Command, args []string) ([]string, error) {
	if len(args) > 0 {
		return phone.ParseNumbers(strings.Join(args, "\n")), nil
	}

	if path, _ := cmd.Flags().GetString("file"); path != "" {
		data, err := os.ReadFile(config.ExpandPath(path)) // #nosec G304 -- user-supplied input file
		if err != nil {
			return nil, common.NewUserError("Không đọc được file số điện thoại", err)
		}
		return phone.ParseNumbers(string(data)), nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && isTerminal(f) {
		return nil, nil
	}

	text, err := cli.NewNonBlockingReader(in).ReadAll(cmd.Context())
	if err != nil {
		return nil, err
	}
	return phone.ParseNumbers(text), nil
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// exportOptions holds the destinations chosen on the command line.
type exportOptions struct {
	dir    string
	sheets bool
}

func addExportFlags(cmd *cobra.Command) {
	cmd.Flags().String("export-dir", "", "write the filtered results to an xlsx workbook in this directory")
	cmd.Flags().Bool("sheets", false, "write the filtered results to Google Sheets")
}

func exportOptionsFromFlags(cmd *cobra.Command) exportOptions {
	dir, _ := cmd.Flags().GetString("export-dir")
	toSheets, _ := cmd.Flags().GetBool("sheets")
	return exportOptions{dir: dir, sheets: toSheets}
}

// runExports writes results to every requested destination.
func runExports(ctx context.Context, w io.Writer, opts exportOptions, results []model.AnalysisResult) error {
	if opts.dir == "" && !opts.sheets {
		return nil
	}
	if len(results) == 0 {
		return common.NewUserError("Không có dữ liệu để xuất", export.ErrNoData)
	}

	if opts.dir != "" {
		path, err := export.SaveXLSX(config.ExpandPath(opts.dir), results, now())
		if err != nil {
			return fmt.Errorf("failed to export xlsx: %w", err)
		}
		fmt.Fprintln(w, cli.FormatSuccess("Đã xuất "+path))
	}

	if opts.sheets {
		writer, err := newSheetsWriter(ctx)
		if err != nil {
			return err
		}
		url, err := writeSheets(ctx, w, writer, results)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, cli.FormatSuccess("Đã ghi Google Sheets: "+url))
	}

	return nil
}

func newSheetsWriter(ctx context.Context) (*sheets.Writer, error) {
	cfg, err := config.LoadSheetsConfig()
	if err != nil {
		if errors.Is(err, common.ErrMissingConfig) || errors.Is(err, common.ErrInvalidConfig) {
			return nil, common.NewUserError("Google Sheets chưa được cấu hình, chạy 'simsieve auth sheets'", err)
		}
		return nil, err
	}
	return sheets.NewWriter(ctx, *cfg, slog.Default())
}

// writeSheets uploads results with a progress bar on w.
func writeSheets(ctx context.Context, w io.Writer, writer *sheets.Writer, results []model.AnalysisResult) (string, error) {
	// The header row is uploaded with the data.
	bar := cli.NewUploadBar(w, len(results)+1)
	writer.OnProgress(func(written, _ int) {
		_ = bar.Set(written)
	})

	url, err := writer.Write(ctx, results)
	if err != nil {
		_ = bar.Exit()
		return "", fmt.Errorf("failed to write Google Sheets: %w", err)
	}
	return url, nil
}

// withStore opens the session store, runs fn, and closes the store.
func withStore(ctx context.Context, fn func(service.SessionStore) error) error {
	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Warn("Failed to close database", common.ErrAttr(closeErr))
		}
	}()
	return fn(store)
}
