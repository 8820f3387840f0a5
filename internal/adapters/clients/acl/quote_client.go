package acl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/jsamuelsen/quote-store/internal/adapters/clients"
	"github.com/jsamuelsen/quote-store/internal/domain"
	"github.com/jsamuelsen/quote-store/internal/platform/logging"
)

// QuoteClientConfig contains configuration for the quote client.
type QuoteClientConfig struct {
	// Client is the HTTP client; its BaseURL points at the quote store.
	Client *clients.Client

	// Logger is the structured logger.
	Logger *slog.Logger
}

// QuoteClient talks to a running quote store over HTTP and returns domain
// types and domain errors. Ids are passed through as typed by the user so
// the server, not the client, decides what is a valid position.
type QuoteClient struct {
	client *clients.Client
	logger *slog.Logger
}

// NewQuoteClient creates a new quote client adapter.
// Panics if Client is nil. Defaults logger to slog.Default() if nil.
func NewQuoteClient(cfg QuoteClientConfig) *QuoteClient {
	if cfg.Client == nil {
		panic("QuoteClient: Client is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &QuoteClient{
		client: cfg.Client,
		logger: logger.With(slog.String("component", "acl.QuoteClient")),
	}
}

// List returns every quote in server order.
func (c *QuoteClient) List(ctx context.Context) ([]domain.Quote, error) {
	body, err := c.call(ctx, "list", "", func() (*http.Response, error) {
		return c.client.Get(ctx, "/")
	})
	if err != nil {
		return nil, err
	}

	wire, err := DecodeResponse[[]quoteWire](body)
	if err != nil {
		return nil, c.malformed(err)
	}

	return TranslateSlice(wire, quoteWire.toDomain), nil
}

// Random returns one quote chosen by the server.
func (c *QuoteClient) Random(ctx context.Context) (domain.Quote, error) {
	return c.getQuote(ctx, "random", "/quote/random", "random")
}

// Get returns the quote at position id.
func (c *QuoteClient) Get(ctx context.Context, id string) (domain.Quote, error) {
	return c.getQuote(ctx, "get", quotePath(id), id)
}

// Create appends q on the server.
func (c *QuoteClient) Create(ctx context.Context, q domain.Quote) error {
	payload, err := json.Marshal(wireFromDomain(q))
	if err != nil {
		return fmt.Errorf("encoding quote: %w", err)
	}

	body, err := c.call(ctx, "create", "", func() (*http.Response, error) {
		return c.client.Post(ctx, "/quote", payload)
	})
	if err != nil {
		return err
	}

	return c.acknowledged(body)
}

// Delete removes the quote at position id.
func (c *QuoteClient) Delete(ctx context.Context, id string) error {
	body, err := c.call(ctx, "delete", id, func() (*http.Response, error) {
		return c.client.Delete(ctx, quotePath(id))
	})
	if err != nil {
		return err
	}

	return c.acknowledged(body)
}

// Name implements ports.HealthChecker.
func (c *QuoteClient) Name() string {
	return c.client.ServiceName()
}

// Check implements ports.HealthChecker by asking the store's readiness probe.
func (c *QuoteClient) Check(ctx context.Context) error {
	body, err := c.call(ctx, "ready", "", func() (*http.Response, error) {
		return c.client.Get(ctx, "/-/ready")
	})
	if err != nil {
		return err
	}

	return body.Close()
}

func (c *QuoteClient) getQuote(ctx context.Context, op, path, entityID string) (domain.Quote, error) {
	body, err := c.call(ctx, op, entityID, func() (*http.Response, error) {
		return c.client.Get(ctx, path)
	})
	if err != nil {
		return domain.Quote{}, err
	}

	wire, err := DecodeResponse[quoteWire](body)
	if err != nil {
		return domain.Quote{}, c.malformed(err)
	}

	return wire.toDomain(), nil
}

// call runs send and maps any failure to a domain error. On success the
// caller owns the returned body.
func (c *QuoteClient) call(ctx context.Context, op, entityID string, send func() (*http.Response, error)) (io.ReadCloser, error) {
	c.logger.Log(ctx, logging.LevelTrace, "calling quote store", slog.String("operation", op))

	resp, err := send()
	if err != nil {
		return nil, MapHTTPError(nil, err, c.client.ServiceName(), entityID)
	}

	c.logger.Log(ctx, logging.LevelTrace, "quote store replied",
		slog.String("operation", op),
		slog.Int("status", resp.StatusCode),
	)

	if resp.StatusCode >= http.StatusBadRequest {
		defer func() { _ = resp.Body.Close() }()

		mapped := MapHTTPError(resp, nil, c.client.ServiceName(), entityID)
		c.logger.DebugContext(ctx, "quote store rejected request",
			slog.String("operation", op),
			slog.Int("status", resp.StatusCode),
			slog.Any("error", mapped),
		)

		return nil, mapped
	}

	return resp.Body, nil
}

// acknowledged expects the literal JSON true that create and delete return.
func (c *QuoteClient) acknowledged(body io.ReadCloser) error {
	ok, err := DecodeResponse[bool](body)
	if err != nil {
		return c.malformed(err)
	}

	if !ok {
		return domain.NewUnavailableError(c.client.ServiceName(), "request was not acknowledged")
	}

	return nil
}

func (c *QuoteClient) malformed(err error) error {
	return domain.NewUnavailableError(c.client.ServiceName(), fmt.Sprintf("malformed response: %v", err))
}

func quotePath(id string) string {
	return "/quote/" + url.PathEscape(id)
}
