package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"slot-sniper/model"
)

const (
	FetchModeBrowser = "browser"
	FetchModeHTTP    = "http"
)

type Config struct {
	TargetDate      string `mapstructure:"target_date"`
	TargetTimeStart string `mapstructure:"target_time_start"`
	TargetTimeEnd   string `mapstructure:"target_time_end"`
	TargetLocation  string `mapstructure:"target_location"`

	BookingURL           string        `mapstructure:"booking_url"`
	CheckIntervalSeconds int           `mapstructure:"check_interval_seconds"`
	Headless             bool          `mapstructure:"headless"`
	FetchMode            string        `mapstructure:"fetch_mode"`
	FetchTimeout         time.Duration `mapstructure:"fetch_timeout"`
	RenderWait           time.Duration `mapstructure:"render_wait"`
	DemoMode             bool          `mapstructure:"demo_mode"`

	SlotContainerSelector string `mapstructure:"slot_container_selector"`
	DateSelector          string `mapstructure:"date_selector"`
	TimeSelector          string `mapstructure:"time_selector"`
	LocationSelector      string `mapstructure:"location_selector"`

	TelegramBotToken string `mapstructure:"telegram_bot_token"`
	TelegramChatID   string `mapstructure:"telegram_chat_id"`
	TelegramAPIURL   string `mapstructure:"telegram_api_url"`

	SMTPHost     string `mapstructure:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port"`
	SMTPUser     string `mapstructure:"smtp_user"`
	SMTPPassword string `mapstructure:"smtp_password"`
	FromEmail    string `mapstructure:"from_email"`
	ToEmail      string `mapstructure:"to_email"`
	SMTPUseTLS   bool   `mapstructure:"smtp_use_tls"`

	NtfyTopic  string `mapstructure:"ntfy_topic"`
	NtfyServer string `mapstructure:"ntfy_server"`

	LogLevel   string `mapstructure:"log_level"`
	LogNoColor bool   `mapstructure:"log_no_color"`
}

type TelegramConfig struct {
	Enabled  bool
	BotToken string
	ChatID   string
	APIURL   string
}

type EmailConfig struct {
	Enabled  bool
	Host     string
	Port     int
	User     string
	Password string
	From     string
	To       string
	UseTLS   bool
}

type NtfyConfig struct {
	Enabled bool
	Server  string
	Topic   string
}

var defaults = map[string]any{
	"target_date":             "2025-02-15",
	"target_time_start":       "19:00",
	"target_time_end":         "21:00",
	"target_location":         "Central Badminton Club",
	"booking_url":             "https://example-booking-site.com/courts",
	"check_interval_seconds":  60,
	"headless":                true,
	"fetch_mode":              FetchModeBrowser,
	"fetch_timeout":           30 * time.Second,
	"render_wait":             2 * time.Second,
	"demo_mode":               false,
	"slot_container_selector": "",
	"date_selector":           "",
	"time_selector":           "",
	"location_selector":       "",
	"telegram_bot_token":      "",
	"telegram_chat_id":        "",
	"telegram_api_url":        "https://api.telegram.org",
	"smtp_host":               "",
	"smtp_port":               587,
	"smtp_user":               "",
	"smtp_password":           "",
	"from_email":              "",
	"to_email":                "",
	"smtp_use_tls":            true,
	"ntfy_topic":              "",
	"ntfy_server":             "https://ntfy.sh",
	"log_level":               "info",
	"log_no_color":            false,
}

// Load reads configFile, or config.* in the working directory when
// configFile is empty, then applies environment overrides. A variable set
// to an empty string counts, so TARGET_LOCATION= matches any location.
// A missing default config file is not an error.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()
	v.AllowEmptyEnv(true)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.CheckIntervalSeconds <= 0 {
		return fmt.Errorf("check_interval_seconds must be positive, got %d", c.CheckIntervalSeconds)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch_timeout must be positive, got %s", c.FetchTimeout)
	}
	if c.RenderWait < 0 {
		return fmt.Errorf("render_wait must not be negative, got %s", c.RenderWait)
	}
	c.FetchMode = strings.ToLower(strings.TrimSpace(c.FetchMode))
	if c.FetchMode != FetchModeBrowser && c.FetchMode != FetchModeHTTP {
		return fmt.Errorf("fetch_mode must be %q or %q, got %q", FetchModeBrowser, FetchModeHTTP, c.FetchMode)
	}
	return nil
}

func (c *Config) Target() model.SlotTarget {
	return model.SlotTarget{
		Date:      c.TargetDate,
		TimeStart: c.TargetTimeStart,
		TimeEnd:   c.TargetTimeEnd,
		Location:  c.TargetLocation,
	}
}

func (c *Config) Hints() model.Hints {
	return model.Hints{
		Container: c.SlotContainerSelector,
		Date:      c.DateSelector,
		Time:      c.TimeSelector,
		Location:  c.LocationSelector,
	}
}

func (c *Config) Interval() time.Duration {
	return time.Duration(c.CheckIntervalSeconds) * time.Second
}

// Telegram is enabled only when both token and chat id are present.
func (c *Config) Telegram() TelegramConfig {
	return TelegramConfig{
		Enabled:  c.TelegramBotToken != "" && c.TelegramChatID != "",
		BotToken: c.TelegramBotToken,
		ChatID:   c.TelegramChatID,
		APIURL:   c.TelegramAPIURL,
	}
}

// Email is enabled only when host, user and destination are present.
// From falls back to the SMTP user.
func (c *Config) Email() EmailConfig {
	from := c.FromEmail
	if from == "" {
		from = c.SMTPUser
	}
	return EmailConfig{
		Enabled:  c.SMTPHost != "" && c.SMTPUser != "" && c.ToEmail != "",
		Host:     c.SMTPHost,
		Port:     c.SMTPPort,
		User:     c.SMTPUser,
		Password: c.SMTPPassword,
		From:     from,
		To:       c.ToEmail,
		UseTLS:   c.SMTPUseTLS,
	}
}

func (c *Config) Ntfy() NtfyConfig {
	return NtfyConfig{
		Enabled: c.NtfyTopic != "",
		Server:  c.NtfyServer,
		Topic:   c.NtfyTopic,
	}
}
