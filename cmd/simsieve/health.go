package main

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/simsieve/internal/cli"
	"github.com/Veraticus/simsieve/internal/common"
	"github.com/spf13/cobra"
)

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the analysis API is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newAnalyzer(cmd)
			if err != nil {
				return err
			}

			slog.Debug("Checking API health", common.FieldEndpoint, client.BaseURL())

			if !client.Health(cmd.Context()) {
				return common.NewUserError(
					fmt.Sprintf("API tại %s không phản hồi", client.BaseURL()),
					common.ErrTransport)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("API hoạt động: "+client.BaseURL()))
			return nil
		},
	}
}

func carriersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "carriers",
		Short: "List carrier prefixes and lucky stars",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cli.RenderCarriers(cmd.OutOrStdout())
		},
	}
}
