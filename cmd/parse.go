package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"slot-sniper/extractor"
	"slot-sniper/matcher"
)

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file.html>",
		Short: "Extract slots from a saved page using the configured selectors",
		Long: `Runs the slot extractor over a local HTML file and prints every slot it
finds, marking the ones that match the target. Handy when tuning
SLOT_CONTAINER_SELECTOR and friends.`,
		Args: cobra.ExactArgs(1),
		RunE: runParse,
	}
}

func runParse(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	slots, err := extractor.Extract(string(data), a.cfg.Hints())
	if err != nil {
		return err
	}

	target := a.cfg.Target()
	out := cmd.OutOrStdout()
	for _, s := range slots {
		mark := " "
		if matcher.Matches(s, target) {
			mark = "*"
		}
		fmt.Fprintf(out, "%s %s  %s–%s  %s  (%s)\n", mark, s.Date, s.TimeStart, s.TimeEnd, s.Location, s.RawText)
	}
	fmt.Fprintf(out, "%d slot(s)\n", len(slots))

	return nil
}
