package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/Veraticus/simsieve/internal/cli"
	"github.com/Veraticus/simsieve/internal/common"
	"github.com/Veraticus/simsieve/internal/filter"
	"github.com/Veraticus/simsieve/internal/model"
	"github.com/Veraticus/simsieve/internal/service"
	"github.com/Veraticus/simsieve/internal/tui"
	"github.com/spf13/cobra"
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [numbers...]",
		Short: "Analyze a batch of phone numbers",
		Long: `Submit phone numbers to the analysis API and print the filtered results.

Numbers are taken from the arguments, from --file (one per line), or from
stdin when it is piped. Blank lines are ignored; order and duplicates are kept.

Examples:
  simsieve analyze 0987654321 0912345678
  simsieve analyze --file numbers.txt --carrier viettel --valid-only
  cat numbers.txt | simsieve analyze --lucky sinh_khi --export-dir ./out`,
		RunE: runAnalyze,
	}

	cmd.Flags().StringP("file", "f", "", "read numbers from this file, one per line")
	cmd.Flags().Bool("save", false, "store the session in the local database")
	cmd.Flags().BoolP("interactive", "i", false, "browse the results in the interactive viewer")
	addFilterFlags(cmd)
	addExportFlags(cmd)

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	criteria, err := criteriaFromFlags(cmd)
	if err != nil {
		return err
	}

	numbers, err := readNumbers(cmd, args)
	if err != nil {
		return err
	}

	client, err := newAnalyzer(cmd)
	if err != nil {
		return err
	}

	results, err := analyze(ctx, cmd, client, numbers)
	if err != nil {
		return err
	}

	save, _ := cmd.Flags().GetBool("save")
	if save {
		session := &model.Session{
			Endpoint: client.BaseURL(),
			Numbers:  numbers,
			Results:  results,
		}
		if err := withStore(ctx, func(store service.SessionStore) error {
			return store.SaveSession(ctx, session)
		}); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
		slog.Info("Session saved", common.FieldSessionID, session.ID)
		fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatSuccess("Đã lưu phiên "+session.ID))
	}

	return present(ctx, cmd, results, criteria)
}

// analyze submits numbers with a spinner on stderr and maps failures to
// user-facing messages.
func analyze(ctx context.Context, cmd *cobra.Command, client service.Analyzer, numbers []string) ([]model.AnalysisResult, error) {
	var results []model.AnalysisResult
	err := cli.Spin(cmd.ErrOrStderr(), fmt.Sprintf("Đang phân tích %d số...", len(numbers)), func() error {
		var analyzeErr error
		results, analyzeErr = client.AnalyzeBulk(ctx, numbers)
		return analyzeErr
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, common.NewUserError(common.Describe(err), err)
	}

	slog.Debug("Analysis complete", "numbers", len(numbers), "results", len(results))
	return results, nil
}

// present prints or browses the filtered view, then runs any requested exports.
func present(ctx context.Context, cmd *cobra.Command, results []model.AnalysisResult, criteria model.FilterCriteria) error {
	interactive, _ := cmd.Flags().GetBool("interactive")
	exports := exportOptionsFromFlags(cmd)

	browse := interactive && len(results) > 0
	if browse {
		exportDir := exports.dir
		if exportDir == "" {
			exportDir = "."
		}
		final, err := tui.Run(ctx, runConfig(cmd),
			tui.WithResults(results),
			tui.WithCriteria(criteria),
			tui.WithExportDir(exportDir),
		)
		if err != nil {
			return err
		}
		criteria = final
	}

	visible := filter.Apply(results, criteria)
	if !browse {
		if err := cli.RenderResults(cmd.OutOrStdout(), visible, len(results)); err != nil {
			return err
		}
	}

	return runExports(ctx, cmd.ErrOrStderr(), exports, visible)
}

// runConfig attaches the TUI to the controlling terminal when stdin carried
// the number list.
func runConfig(cmd *cobra.Command) tui.RunConfig {
	rc := tui.RunConfig{Output: cmd.OutOrStdout()}
	if f, ok := cmd.InOrStdin().(*os.File); ok && !isTerminal(f) {
		rc.InputTTY = true
	}
	return rc
}
