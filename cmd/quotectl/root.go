package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jsamuelsen/quote-store/internal/adapters/clients"
	"github.com/jsamuelsen/quote-store/internal/adapters/clients/acl"
	"github.com/jsamuelsen/quote-store/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quote-store/internal/domain"
	"github.com/jsamuelsen/quote-store/internal/platform/config"
	"github.com/jsamuelsen/quote-store/internal/platform/logging"
)

// Exit codes beyond the generic 1.
const (
	exitNotFound    = 2
	exitInvalid     = 3
	exitUnavailable = 4
)

// version is injected via ldflags.
var version = "dev"

type rootOptions struct {
	url     string
	profile string
	verbose bool
	json    bool

	out    io.Writer
	errOut io.Writer

	// set by PersistentPreRunE
	quotes *acl.QuoteClient
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	opts := &rootOptions{out: out, errOut: errOut}

	cmd := &cobra.Command{
		Use:           "quotectl",
		Short:         "quote store CLI",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.connect(cmd)
		},
	}

	cmd.SetOut(out)
	cmd.SetErr(errOut)

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.url, "url", "", "quote store base URL (default from services.quote.base_url)")
	flags.StringVar(&opts.profile, "profile", os.Getenv("APP_ENVIRONMENT"), "config profile to load")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")
	flags.BoolVar(&opts.json, "json", false, "print raw JSON")

	cmd.AddCommand(
		newListCmd(opts),
		newRandomCmd(opts),
		newGetCmd(opts),
		newAddCmd(opts),
		newDeleteCmd(opts),
		newPingCmd(opts),
	)

	return cmd
}

// connect loads configuration and builds the quote client. Every request
// made by this invocation shares one correlation id.
func (o *rootOptions) connect(cmd *cobra.Command) error {
	profile := o.profile
	if profile == "" {
		profile = "local"
	}

	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if o.url != "" {
		cfg.Services.Quote.BaseURL = o.url
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	level := "warn"
	if o.verbose {
		level = "debug"
	}

	logger := logging.NewWithWriter(&logging.Config{
		Level:   level,
		Format:  "pretty",
		Service: "quotectl",
		Version: version,
	}, o.errOut)

	client, err := clients.New(&clients.Config{
		BaseURL:     cfg.Services.Quote.BaseURL,
		ServiceName: cfg.Services.Quote.Name,
		Timeout:     cfg.Client.Timeout,
		Retry:       cfg.Client.Retry,
		Circuit:     cfg.Client.CircuitBreaker,
		Transport:   cfg.Client.Transport,
		UserAgent:   "quotectl/" + version,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("creating client: %w", err)
	}

	o.quotes = acl.NewQuoteClient(acl.QuoteClientConfig{Client: client, Logger: logger})

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	ctx = middleware.ContextWithCorrelationID(ctx, uuid.NewString())
	ctx = logging.WithContext(ctx, logger)
	cmd.SetContext(ctx)

	logger.Debug("using quote store", slog.String("url", cfg.Services.Quote.BaseURL))

	return nil
}

// exitCode distinguishes the domain error kinds for scripts.
func exitCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return exitNotFound
	case errors.Is(err, domain.ErrValidation):
		return exitInvalid
	case errors.Is(err, domain.ErrUnavailable):
		return exitUnavailable
	default:
		return 1
	}
}
