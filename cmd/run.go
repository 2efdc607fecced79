package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"slot-sniper/utils"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Poll the booking page until interrupted (default)",
		Args:  cobra.NoArgs,
		RunE:  runLoop,
	}
}

func runLoop(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}

	target := a.cfg.Target()
	a.log.Info(fmt.Sprintf("%v Slot Sniper started", utils.EmojiLoudspeaker),
		slog.String("date", target.Date),
		slog.String("time", target.TimeStart+"–"+target.TimeEnd),
		slog.String("location", target.Location),
		slog.String("url", a.cfg.BookingURL),
		slog.Duration("interval", a.cfg.Interval()))

	return a.poller(a.dispatcher()).Run(cmd.Context())
}
