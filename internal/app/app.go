package app

import (
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"cbrrates/internal/adapters/httpclient"
	"cbrrates/internal/api"
	"cbrrates/internal/config"
	"cbrrates/internal/domain"
	httpserver "cbrrates/internal/platform/http"
	"cbrrates/internal/rate"
	"cbrrates/internal/rate/handler"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type options struct {
	configFile string
	date       string
}

type components struct {
	cfg     *config.AppConfig
	service *rate.Service
}

// Execute runs the command line. Without a subcommand it prints one report.
func Execute() error {
	return NewRootCommand().Execute()
}

func NewRootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "cbrrates",
		Short:         "Central Bank of Russia exchange rates since last Monday",
		Version:       "v1.0.0",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReport(cmd, opts)
		},
	}
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "Path to config file (default ./config.yaml)")
	rootCmd.Flags().StringVar(&opts.date, "date", "", "Reference date, yyyy-mm-dd (default today)")

	rootCmd.AddCommand(watchCommand(opts), serveCommand(opts))
	return rootCmd
}

func watchCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print a fresh report every scheduler.interval_seconds until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := setup(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			scheduler := rate.NewScheduler(c.service, cmd.OutOrStdout(), c.cfg.ReportInterval(), nil)
			if err = scheduler.Start(ctx); err != nil {
				logrus.WithError(err).Error("Failed to start scheduler")
				return err
			}
			<-ctx.Done()
			return scheduler.Shutdown()
		},
	}
}

func serveCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the rates as JSON over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := setup(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			router := api.NewRouter(handler.NewRateHandler(c.service))
			if serverErr := httpserver.Start(ctx, c.cfg.HTTPServer, router); serverErr != nil {
				logrus.Errorf("HTTP server error: %v", serverErr)
				return serverErr
			}
			return nil
		},
	}
}

func runReport(cmd *cobra.Command, opts *options) error {
	c, err := setup(opts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	reference := c.service.Now()
	if opts.date != "" {
		key, parseErr := domain.ParseDateKey(opts.date)
		if parseErr != nil {
			return parseErr
		}
		reference = key.In(reference.Location())
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = rate.WithExecID(ctx, uuid.NewString())

	return c.service.ReportAt(ctx, reference, cmd.OutOrStdout())
}

// setup reads the config and wires the pipeline.
func setup(opts *options, logOut io.Writer) (*components, error) {
	cfg, err := config.Init(opts.configFile)
	if err != nil {
		return nil, err
	}
	setupLogger(cfg.Logging.Level, logOut)
	logrus.Debug("Config initialization successful")

	location, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	if len(cfg.Currencies) == 0 {
		logrus.Warn("No currencies configured, reports will be empty")
	}

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout()}
	rateClient := httpclient.NewCBRClient(httpClient, cfg.CBR.BaseURL)
	service := rate.NewService(rateClient, cfg.WantedCurrencies(), cfg.Policy(), clockwork.NewRealClock(), location)

	return &components{cfg: cfg, service: service}, nil
}

func setupLogger(level string, out io.Writer) {
	logrus.SetOutput(out)
	if parsedLvl, parseErr := logrus.ParseLevel(level); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
}
