package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"facilities/internal/app"
	"facilities/internal/collector"
	"facilities/internal/reload"
)

func newReloadCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "reload",
		Short: "Collect facilities from the collector and reconcile them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, a *app.App) error {
				report, err := a.Service.Reload(ctx)
				return emit(cmd, report, err)
			})
		},
	}
}

func newPushCmd(flags *rootFlags) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Reconcile the facility list read from a JSON file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			body, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read facilities file: %w", err)
			}
			facilities, err := collector.DecodeFacilities(body)
			if err != nil {
				return err
			}
			return withApp(cmd, flags, func(ctx context.Context, a *app.App) error {
				report, err := a.Service.ReloadFacilities(ctx, facilities)
				return emit(cmd, report, err)
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON file with the complete facility list")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newLastCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "last",
		Short: "Print the report of the most recent pass",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, a *app.App) error {
				report, err := a.Service.LastReport(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), report)
			})
		},
	}
}

// emit prints the report, partial or complete, and then returns the pass error
// so the process exits non-zero on failure.
func emit(cmd *cobra.Command, report *reload.Report, passErr error) error {
	if report != nil {
		if err := printJSON(cmd.OutOrStdout(), report); err != nil {
			return errors.Join(passErr, err)
		}
	}
	return passErr
}
