package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okian/rota/internal/adapters/render"
	"github.com/okian/rota/internal/adapters/repository"
	service "github.com/okian/rota/internal/app"
	"github.com/okian/rota/internal/domain/dates"
)

func newAssignCommand(g *globals) *cobra.Command {
	var overflow bool
	cmd := &cobra.Command{
		Use:   "assign",
		Short: "Assign every meeting in the weekly program interactively",
		Long: `Walk every date column of the weekly program in order, offering ranked
candidates for each part. The history is saved after each date, and the
final table is written when the last date is done.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg := g.cfg
			if cmd.Flags().Changed("overflow") {
				cfg.Meeting.Overflow = overflow
			}

			weeks, err := repository.LoadProgram(ctx, cfg.ProgramPath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			sess, err := openSession(ctx, cfg, cmd.InOrStdin(), out,
				service.WithSink(repository.NewAssignmentFile(cfg.OutputPath)),
			)
			if err != nil {
				return err
			}
			defer sess.Close() //nolint:errcheck
			defer writeMetrics(ctx, cfg.MetricsPath)

			res, err := sess.svc.Run(ctx, weeks)
			if err != nil {
				return err
			}

			fmt.Fprintln(out) //nolint:errcheck
			if err := render.Table(out, res.Table.Rows(dates.Format)); err != nil {
				return err
			}
			fmt.Fprintf(out, "\nAll done! Assignments written to %s.\n", cfg.OutputPath) //nolint:errcheck
			return nil
		},
	}
	cmd.Flags().BoolVar(&overflow, "overflow", false, "Ask about an auxiliary room each date")
	return cmd
}
