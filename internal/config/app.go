package config

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"
	"time"

	"cbrrates/internal/domain"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const DefaultBaseURL = "https://www.cbr.ru/scripts/"

type HTTPServer struct {
	Port string `mapstructure:"port"`
}

type HTTPClient struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

type CBR struct {
	BaseURL string `mapstructure:"base_url"`
}

type Logging struct {
	Level string `mapstructure:"level"`
}

type Report struct {
	OnError  string `mapstructure:"on_error"`
	Timezone string `mapstructure:"timezone"`
}

type Scheduler struct {
	IntervalSeconds int `mapstructure:"interval_seconds"`
}

type AppConfig struct {
	Currencies []string   `mapstructure:"currencies"`
	CBR        CBR        `mapstructure:"cbr"`
	HTTPClient HTTPClient `mapstructure:"http_client"`
	HTTPServer HTTPServer `mapstructure:"http_server"`
	Logging    Logging    `mapstructure:"logging"`
	Report     Report     `mapstructure:"report"`
	Scheduler  Scheduler  `mapstructure:"scheduler"`
}

func (c *AppConfig) Policy() domain.ErrorPolicy {
	p, _ := domain.ParseErrorPolicy(c.Report.OnError)
	return p
}

// Location resolves report.timezone; "Local" and empty mean the process zone.
func (c *AppConfig) Location() (*time.Location, error) {
	if c.Report.Timezone == "" || strings.EqualFold(c.Report.Timezone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Report.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid report timezone %q: %w", c.Report.Timezone, err)
	}
	return loc, nil
}

func (c *AppConfig) HTTPTimeout() time.Duration {
	timeout := time.Duration(c.HTTPClient.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		return 10 * time.Second
	}
	return timeout
}

func (c *AppConfig) ReportInterval() time.Duration {
	return time.Duration(c.Scheduler.IntervalSeconds) * time.Second
}

func (c *AppConfig) WantedCurrencies() domain.CurrencySet {
	return domain.NewCurrencySet(c.Currencies...)
}

// Init reads .env (if any), then configFile, or ./config.yaml when configFile is empty, and the environment.
func Init(configFile string) (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	bindEnv(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("currencies", []string{"USD", "EUR", "KGS"})
	v.SetDefault("cbr.base_url", DefaultBaseURL)
	v.SetDefault("http_client.timeout_seconds", 10)
	v.SetDefault("http_server.port", "8080")
	v.SetDefault("logging.level", "info")
	v.SetDefault("report.on_error", string(domain.PolicySkip))
	v.SetDefault("report.timezone", "Local")
	v.SetDefault("scheduler.interval_seconds", 3600)
}

func bindEnv(v *viper.Viper) {
	_ = v.BindEnv("currencies", "RATES_CURRENCIES")

	// cbr env vars
	_ = v.BindEnv("cbr.base_url", "CBR_BASE_URL")

	// http env vars
	_ = v.BindEnv("http_client.timeout_seconds", "HTTP_CLIENT_TIMEOUT_SECONDS")
	_ = v.BindEnv("http_server.port", "HTTP_PORT")

	_ = v.BindEnv("logging.level", "LOG_LEVEL")
	_ = v.BindEnv("report.on_error", "REPORT_ON_ERROR")
	_ = v.BindEnv("report.timezone", "REPORT_TIMEZONE")
	_ = v.BindEnv("scheduler.interval_seconds", "SCHEDULER_INTERVAL_SECONDS")
}

func (c *AppConfig) normalize() error {
	c.Currencies = normalizeCodes(c.Currencies)

	policy, err := domain.ParseErrorPolicy(c.Report.OnError)
	if err != nil {
		return fmt.Errorf("invalid report.on_error: %w", err)
	}
	c.Report.OnError = string(policy)

	if _, err = c.Location(); err != nil {
		return err
	}

	c.CBR.BaseURL = strings.TrimSpace(c.CBR.BaseURL)
	if c.CBR.BaseURL == "" {
		c.CBR.BaseURL = DefaultBaseURL
	}
	return nil
}

// normalizeCodes splits comma separated entries, upper-cases and drops repeats.
func normalizeCodes(raw []string) []string {
	codes := make([]string, 0, len(raw))
	for _, entry := range raw {
		for _, code := range strings.FieldsFunc(entry, func(r rune) bool { return r == ',' || r == ' ' }) {
			code = strings.ToUpper(strings.TrimSpace(code))
			if code != "" && !slices.Contains(codes, code) {
				codes = append(codes, code)
			}
		}
	}
	return codes
}
