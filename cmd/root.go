package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"slot-sniper/config"
	"slot-sniper/fetcher"
	"slot-sniper/model"
	"slot-sniper/notifier"
	"slot-sniper/poller"
	"slot-sniper/utils"
)

var (
	flagConfig   string
	flagDemo     bool
	flagLogLevel string
)

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "slot-sniper",
		Short: "Watch a booking site and get alerted when your slot opens up",
		Long: `Polls a booking page on a fixed interval, looks for a slot on the
configured date, time range and location, and sends a Telegram, email or
ntfy alert when one shows up.`,
		SilenceUsage: true,
		RunE:         runLoop,
	}

	root.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default ./config.{yaml,json,toml,env})")
	root.PersistentFlags().BoolVar(&flagDemo, "demo", false, "serve a fake page holding the target slot instead of fetching")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "override log_level (debug, info, warn, error)")

	root.AddCommand(newRunCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newParseCmd())

	return root
}

func Execute(ctx context.Context) {
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type app struct {
	cfg *config.Config
	log *slog.Logger
}

func loadApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("demo") {
		cfg.DemoMode = flagDemo
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}

	return &app{
		cfg: cfg,
		log: utils.NewLogger(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogNoColor),
	}, nil
}

func (a *app) fetcher() fetcher.Fetcher {
	switch {
	case a.cfg.DemoMode:
		a.log.Info("demo mode: serving a fake page with the target slot")
		return &fetcher.Demo{Target: a.cfg.Target()}
	case a.cfg.FetchMode == config.FetchModeHTTP:
		return fetcher.NewHTTP(a.cfg.FetchTimeout)
	default:
		return fetcher.NewBrowser(a.cfg.Headless, a.cfg.FetchTimeout, a.cfg.RenderWait, a.log)
	}
}

func (a *app) dispatcher() *notifier.Dispatcher {
	var channels []notifier.Channel

	if tg := a.cfg.Telegram(); tg.Enabled {
		channels = append(channels, notifier.NewTelegram(tg.BotToken, tg.ChatID).WithAPIURL(tg.APIURL))
	}
	if em := a.cfg.Email(); em.Enabled {
		channels = append(channels, notifier.NewEmail(notifier.EmailConfig{
			Host:     em.Host,
			Port:     em.Port,
			User:     em.User,
			Password: em.Password,
			From:     em.From,
			To:       em.To,
			UseTLS:   em.UseTLS,
		}))
	}
	if nt := a.cfg.Ntfy(); nt.Enabled {
		channels = append(channels, notifier.NewNtfy(nt.Server, nt.Topic))
	}

	d := notifier.NewDispatcher(a.log, channels...)
	if len(channels) == 0 {
		a.log.Warn(fmt.Sprintf("%v No notifications configured. Set TELEGRAM_BOT_TOKEN + TELEGRAM_CHAT_ID, SMTP_* or NTFY_TOPIC.", utils.EmojiWarning))
	} else {
		a.log.Debug("notification channels", slog.Any("channels", d.Channels()))
	}

	return d
}

func (a *app) poller(d poller.Dispatcher) *poller.Poller {
	hints := a.cfg.Hints()
	if a.cfg.DemoMode {
		// the demo page is not shaped like the real site
		hints = model.Hints{}
	}

	return &poller.Poller{
		Fetcher:      a.fetcher(),
		Dispatcher:   d,
		Target:       a.cfg.Target(),
		Hints:        hints,
		BookingURL:   a.cfg.BookingURL,
		Interval:     a.cfg.Interval(),
		FetchTimeout: 2*a.cfg.FetchTimeout + a.cfg.RenderWait,
		Log:          a.log,
	}
}
