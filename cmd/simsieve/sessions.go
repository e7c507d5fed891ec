package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/simsieve/internal/cli"
	"github.com/Veraticus/simsieve/internal/common"
	"github.com/Veraticus/simsieve/internal/filter"
	"github.com/Veraticus/simsieve/internal/model"
	"github.com/Veraticus/simsieve/internal/service"
	"github.com/Veraticus/simsieve/internal/tui"
	"github.com/spf13/cobra"
)

func sessionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Manage stored analysis sessions",
		Long:  `List, show and delete analysis sessions saved with 'simsieve analyze --save'.`,
	}

	cmd.AddCommand(sessionsListCmd())
	cmd.AddCommand(sessionsShowCmd())
	cmd.AddCommand(sessionsDeleteCmd())

	return cmd
}

func sessionsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored sessions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			if limit < 0 {
				return common.NewUserError("--limit cannot be negative", nil)
			}

			ctx := cmd.Context()
			return withStore(ctx, func(store service.SessionStore) error {
				sessions, err := store.ListSessions(ctx, limit)
				if err != nil {
					return fmt.Errorf("failed to list sessions: %w", err)
				}
				return cli.RenderSessions(cmd.OutOrStdout(), sessions)
			})
		},
	}

	cmd.Flags().IntP("limit", "n", 20, "maximum number of sessions to show (0 for all)")

	return cmd
}

func sessionsShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <session-id>",
		Short: "Print a stored session's results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			criteria, err := criteriaFromFlags(cmd)
			if err != nil {
				return err
			}

			session, err := loadSession(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			visible := filter.Apply(session.Results, criteria)
			return cli.RenderResults(cmd.OutOrStdout(), visible, len(session.Results))
		},
	}

	addFilterFlags(cmd)

	return cmd
}

func sessionsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <session-id>",
		Short: "Delete a stored session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withStore(ctx, func(store service.SessionStore) error {
				if err := store.DeleteSession(ctx, args[0]); err != nil {
					return sessionError(args[0], err)
				}
				slog.Info("Session deleted", common.FieldSessionID, args[0])
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Đã xóa phiên "+args[0]))
				return nil
			})
		},
	}
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <session-id>",
		Short: "Export a stored session to xlsx or Google Sheets",
		Long: `Export a stored session's filtered results.

Without --sheets the workbook is written to --export-dir, which defaults
to the current directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			criteria, err := criteriaFromFlags(cmd)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			session, err := loadSession(ctx, args[0])
			if err != nil {
				return err
			}

			opts := exportOptionsFromFlags(cmd)
			if opts.dir == "" && !opts.sheets {
				opts.dir = "."
			}

			return runExports(ctx, cmd.OutOrStdout(), opts, filter.Apply(session.Results, criteria))
		},
	}

	addFilterFlags(cmd)
	addExportFlags(cmd)

	return cmd
}

func browseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse <session-id>",
		Short: "Browse a stored session interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			criteria, err := criteriaFromFlags(cmd)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			session, err := loadSession(ctx, args[0])
			if err != nil {
				return err
			}
			if len(session.Results) == 0 {
				return common.NewUserError("Phiên không có kết quả nào", nil)
			}

			exportDir, _ := cmd.Flags().GetString("export-dir")
			_, err = tui.Run(ctx, runConfig(cmd),
				tui.WithResults(session.Results),
				tui.WithCriteria(criteria),
				tui.WithExportDir(exportDir),
				tui.WithTitle("Phiên "+session.ID),
			)
			return err
		},
	}

	addFilterFlags(cmd)
	cmd.Flags().String("export-dir", ".", "directory for workbooks exported from the viewer")

	return cmd
}

// loadSession fetches one session, mapping a missing id to a user error.
func loadSession(ctx context.Context, id string) (*model.Session, error) {
	var session *model.Session
	err := withStore(ctx, func(store service.SessionStore) error {
		var getErr error
		session, getErr = store.GetSession(ctx, id)
		return getErr
	})
	if err != nil {
		return nil, sessionError(id, err)
	}
	return session, nil
}

func sessionError(id string, err error) error {
	if errors.Is(err, common.ErrNotFound) {
		return common.NewUserError(fmt.Sprintf("Không tìm thấy phiên %q", id), err)
	}
	return err
}
