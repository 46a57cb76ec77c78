package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Nixie-Tech-LLC/athan/internal/prayer"
)

type rootOptions struct {
	at       string
	timezone string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "athan",
		Short: "athan - next prayer and countdown from a daily prayer table",
		Long: `athan reads one day's prayer table from a JSON file and reports the
next prayer, the time left until it, or the whole table.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.at, "at", "", "evaluate at this RFC3339 instant instead of now")
	root.PersistentFlags().StringVar(&opts.timezone, "tz", "", "IANA zone for now (default: local)")

	root.AddCommand(newNextCmd(opts))
	root.AddCommand(newCountdownCmd(opts))
	root.AddCommand(newTableCmd(opts))
	return root
}

// now resolves --at and --tz into the instant to evaluate at.
func (o *rootOptions) now() (time.Time, error) {
	loc := time.Local
	if o.timezone != "" {
		l, err := time.LoadLocation(o.timezone)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid --tz %q: %w", o.timezone, err)
		}
		loc = l
	}
	if o.at == "" {
		return prayer.SystemClock{Location: loc}.Now(), nil
	}
	at, err := time.Parse(time.RFC3339, o.at)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --at %q: %w", o.at, err)
	}
	if o.timezone != "" {
		at = at.In(loc)
	}
	return at, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
