package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"darkmaster/internal/logging"
	"darkmaster/internal/pipeline"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var force bool
	var dryRun bool
	var validateOnly bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Scan for new frames and rebuild any master whose update policy calls for it",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			history, err := ctx.ensureHistory()
			if err != nil {
				return err
			}

			if force {
				cfg.UpdatePolicy.Force = true
			}
			if dryRun {
				cfg.Engine.DryRun = true
			}

			pl := pipeline.New(cfg, logger, history)
			pl.ValidateOnly = validateOnly
			rep, err := pl.Run(cmd.Context())
			if err != nil {
				return fmt.Errorf("run: %w", err)
			}

			out := cmd.OutOrStdout()
			rep.Render(out, logging.ShouldColorize(out))
			if rep.HasFailures() {
				return fmt.Errorf("run: one or more groups failed, see report above")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Rebuild every group's master regardless of the update policy")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Log the stacking engine command without invoking it")
	cmd.Flags().BoolVar(&validateOnly, "validate-only", false, "Run scan, grouping and validation only; report rejections without stacking or writing any master")
	return cmd
}
