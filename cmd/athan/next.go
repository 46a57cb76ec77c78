package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newNextCmd(root *rootOptions) *cobra.Command {
	var (
		path   string
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "next",
		Short: "Show the next prayer and the time left until it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now, err := root.now()
			if err != nil {
				return err
			}
			s, err := loadSchedule(path, strict)
			if err != nil {
				return err
			}

			st, err := s.Status(now)
			if err != nil {
				return err
			}

			when := "today"
			if st.Next.Tomorrow {
				when = "tomorrow"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: next prayer is %s at %s %s (in %s)\n",
				st.Location, st.Next.Name, st.Next.Time, when, st.Countdown)
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "schedule", "s", "", "path to the JSON schedule file")
	cmd.Flags().BoolVar(&strict, "strict", true, "reject tables whose times go backwards")
	_ = cmd.MarkFlagRequired("schedule")
	return cmd
}
