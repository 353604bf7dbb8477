package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/rota/internal/adapters/render"
	"github.com/okian/rota/internal/domain/dates"
	"github.com/okian/rota/internal/domain/model"
)

func newRankCommand(g *globals) *cobra.Command {
	var (
		role    string
		day     string
		top     int
		gender  string
		exclude []string
	)
	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Show the ranked candidates for one part without assigning",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			date := dates.Day(time.Now())
			if day != "" {
				d, err := dates.Parse(day)
				if err != nil {
					return err
				}
				date = d
			}

			sess, err := openSession(ctx, g.cfg, cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer sess.Close() //nolint:errcheck

			candidates := sess.svc.Rank(role, date, top, model.ParseGender(gender), exclude...)
			out := cmd.OutOrStdout()
			if len(candidates) == 0 {
				fmt.Fprintf(out, "No eligible candidates for %s on %s.\n", role, dates.Format(date)) //nolint:errcheck
				return nil
			}
			rows := [][]string{{"#", "Name", "Score", "Last"}}
			for i, c := range candidates {
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					c.Person.Name,
					strconv.FormatFloat(c.Score, 'f', 2, 64),
					dates.Display(c.LastDate),
				})
			}
			return render.Table(out, rows)
		},
	}
	cmd.Flags().StringVarP(&role, "role", "r", "", "Raw role key, e.g. \"Haga Revisitas\"")
	cmd.Flags().StringVarP(&day, "date", "d", "", "Meeting date (default today)")
	cmd.Flags().IntVarP(&top, "top", "n", 0, "Show at most this many candidates (0 for all)")
	cmd.Flags().StringVarP(&gender, "gender", "g", "", "Required gender: V or M")
	cmd.Flags().StringSliceVarP(&exclude, "exclude", "x", nil, "People to leave out, e.g. already placed that day")
	_ = cmd.MarkFlagRequired("role")
	return cmd
}
