package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okian/rota/internal/adapters/render"
	"github.com/okian/rota/internal/domain/dates"
)

func newHistoryCommand(g *globals) *cobra.Command {
	var (
		person string
		role   string
		limit  int
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show a person's recent parts in a role's rotation group",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := openSession(cmd.Context(), g.cfg, cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer sess.Close() //nolint:errcheck

			group, entries := sess.svc.History(person, role, limit)
			out := cmd.OutOrStdout()
			if _, ok := sess.svc.Person(person); !ok {
				fmt.Fprintf(out, "Note: %s is not in the roster.\n", person) //nolint:errcheck
			}
			if len(entries) == 0 {
				fmt.Fprintf(out, "%s has no %s history.\n", person, group) //nolint:errcheck
				return nil
			}
			rows := [][]string{{"Date", "Part"}}
			for _, e := range entries {
				rows = append(rows, []string{dates.Format(e.Date), e.Part})
			}
			fmt.Fprintf(out, "%s, group %s:\n", person, group) //nolint:errcheck
			return render.Table(out, rows)
		},
	}
	cmd.Flags().StringVarP(&person, "person", "p", "", "Person name as in the roster")
	cmd.Flags().StringVarP(&role, "role", "r", "", "Any raw role key of the group")
	cmd.Flags().IntVarP(&limit, "limit", "l", 10, "Maximum records to show")
	_ = cmd.MarkFlagRequired("person")
	_ = cmd.MarkFlagRequired("role")
	return cmd
}
