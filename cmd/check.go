package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"slot-sniper/model"
	"slot-sniper/poller"
)

var flagNoNotify bool

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run a single check and print the matching slots",
		Args:  cobra.NoArgs,
		RunE:  runCheck,
	}
	cmd.Flags().BoolVar(&flagNoNotify, "no-notify", false, "print matches without sending notifications")
	return cmd
}

func runCheck(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}

	var d poller.Dispatcher
	if !flagNoNotify {
		d = a.dispatcher()
	}

	c := a.poller(d).RunOnce(cmd.Context())
	if c.Err != nil {
		return fmt.Errorf("check failed: %w", c.Err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d slot(s) found, %d matching\n", len(c.Slots), len(c.Matches))
	printSlots(out, c.Matches)
	for _, r := range c.Notified {
		status := "sent"
		if !r.OK() {
			status = "failed: " + r.Err.Error()
		}
		fmt.Fprintf(out, "%s: %s\n", r.Channel, status)
	}

	return nil
}

func printSlots(w io.Writer, slots []model.Slot) {
	for _, s := range slots {
		fmt.Fprintf(w, "%s  %s–%s  %s\n", s.Date, s.TimeStart, s.TimeEnd, s.Location)
	}
}
