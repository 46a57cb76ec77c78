package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Nixie-Tech-LLC/athan/internal/prayer"
)

func newCountdownCmd(root *rootOptions) *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:   "countdown",
		Short: "Show the time left until a 12-hour clock time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now, err := root.now()
			if err != nil {
				return err
			}
			ct, err := prayer.ParseClockTime(target)
			if err != nil {
				return err
			}

			cd, err := prayer.ComputeCountdown(ct, now)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d minutes)\n", cd, cd.TotalMinutes)
			return nil
		},
	}
	cmd.Flags().StringVarP(&target, "target", "t", "", `target time, e.g. "5:30 AM"`)
	_ = cmd.MarkFlagRequired("target")
	return cmd
}
