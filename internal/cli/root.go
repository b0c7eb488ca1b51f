package cli

import (
	"os"
	"time"

	"github.com/andyle182810/storefront/config"
	"github.com/andyle182810/storefront/httpclient"
	"github.com/andyle182810/storefront/logutil"
	"github.com/andyle182810/storefront/shopapi"
	"github.com/andyle182810/storefront/validator"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type app struct {
	apiURL   string
	token    string
	logLevel string
	pretty   bool
	debug    bool
	validate bool
	timeout  time.Duration

	api *shopapi.API
}

func Execute(cfg *config.Client) {
	if err := NewRootCmd(cfg).Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd builds the storefront command tree. Flag defaults come from cfg.
func NewRootCmd(cfg *config.Client) *cobra.Command {
	a := &app{pretty: cfg.LogPretty}

	cmd := &cobra.Command{
		Use:          "storefront",
		Short:        "Command line client for the storefront API",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			a.connect(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.apiURL, "api-url", cfg.APIURL, "base URL of the storefront API")
	flags.StringVar(&a.token, "token", cfg.Token, "bearer token for authenticated calls (env STOREFRONT_TOKEN)")
	flags.StringVar(&a.logLevel, "log-level", cfg.LogLevel, "log level")
	flags.BoolVar(&a.debug, "debug", cfg.DebugRequests, "log every request and failed response to stderr")
	flags.BoolVar(&a.validate, "validate", false, "validate decoded responses before printing them")
	flags.DurationVar(&a.timeout, "timeout", cfg.RequestTimeout, "per request timeout, 0 disables it")

	cmd.AddCommand(
		registerCmd(a),
		loginCmd(a),
		productsCmd(a),
		categoriesCmd(a),
		ordersCmd(a),
		paymentsCmd(a),
	)

	return cmd
}

func (a *app) connect(cmd *cobra.Command) {
	logger := logutil.NewLogger(cmd.ErrOrStderr(), a.logLevel, a.pretty)

	opts := make([]httpclient.Option, 0, 3) //nolint:mnd
	if a.debug {
		opts = append(opts, httpclient.WithDebugSink(httpclient.NewZerologDebugSink(logger.Level(zerolog.DebugLevel))))
	}

	if a.timeout > 0 {
		opts = append(opts, httpclient.WithTimeout(a.timeout))
	}

	if a.validate {
		opts = append(opts, httpclient.WithResponseValidator(validator.New()))
	}

	a.api = shopapi.New(httpclient.New(a.apiURL, opts...))
}
