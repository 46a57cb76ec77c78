package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newTableCmd(root *rootOptions) *cobra.Command {
	var (
		path   string
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the day's prayer table, marking the next prayer",
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

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s, %s\n", st.Location, st.Date)

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			for _, e := range st.Entries {
				marker := ""
				if !st.Next.Tomorrow && e.Name == st.Next.Name {
					marker = "<- next in " + st.Countdown.String()
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", e.Name, e.Time, marker)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			if st.Next.Tomorrow {
				fmt.Fprintf(out, "Next: %s tomorrow at %s (in %s)\n", st.Next.Name, st.Next.Time, st.Countdown)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "schedule", "s", "", "path to the JSON schedule file")
	cmd.Flags().BoolVar(&strict, "strict", true, "reject tables whose times go backwards")
	_ = cmd.MarkFlagRequired("schedule")
	return cmd
}
