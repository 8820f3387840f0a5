//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/cucumber/godog"

	"github.com/jsamuelsen/quote-store/internal/adapters/memory"
)

// testContext holds state shared across step definitions within a scenario.
// Without BASE_URL each scenario gets its own in-process server, so
// mutating scenarios never see each other's quotes.
type testContext struct {
	remoteURL string

	server       *httptest.Server
	baseURL      string
	client       *http.Client
	response     *http.Response
	responseBody []byte
}

func newTestContext() *testContext {
	return &testContext{
		remoteURL: os.Getenv("BASE_URL"),
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (tc *testContext) start(store *memory.QuoteStore) {
	tc.stop()

	if tc.remoteURL != "" {
		tc.baseURL = tc.remoteURL
		return
	}

	tc.server = startServer(store)
	tc.baseURL = tc.server.URL
}

func (tc *testContext) stop() {
	if tc.server != nil {
		tc.server.Close()
		tc.server = nil
	}
}

func (tc *testContext) reset() {
	tc.response = nil
	tc.responseBody = nil
}

// InitializeScenario registers step definitions for each scenario.
func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := newTestContext()

	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		tc.reset()
		tc.start(memory.NewSeededQuoteStore())
		return ctx, nil
	})

	ctx.After(func(ctx context.Context, _ *godog.Scenario, err error) (context.Context, error) {
		tc.stop()
		return ctx, err
	})

	ctx.Step(`^the service is running$`, tc.theServiceIsRunning)
	ctx.Step(`^the quote store is empty$`, tc.theQuoteStoreIsEmpty)
	ctx.Step(`^I request (GET|DELETE) "([^"]*)"$`, tc.iRequest)
	ctx.Step(`^I post to "([^"]*)" with body:$`, tc.iPostWithBody)
	ctx.Step(`^the response status should be (\d+)$`, tc.theResponseStatusShouldBe)
	ctx.Step(`^the response body should be "([^"]*)"$`, tc.theResponseBodyShouldBe)
	ctx.Step(`^the response should contain "([^"]*)"$`, tc.theResponseShouldContain)
	ctx.Step(`^the response should list (\d+) quotes$`, tc.theResponseShouldListQuotes)
	ctx.Step(`^quote (\d+) should be by "([^"]*)"$`, tc.quoteShouldBeBy)
}

func (tc *testContext) theServiceIsRunning() error {
	if err := tc.do(http.MethodGet, "/-/live", ""); err != nil {
		return fmt.Errorf("service is not running at %s: %w", tc.baseURL, err)
	}

	return tc.theResponseStatusShouldBe(http.StatusOK)
}

func (tc *testContext) theQuoteStoreIsEmpty() error {
	if tc.remoteURL != "" {
		return godog.ErrSkip
	}

	tc.start(memory.NewQuoteStore())

	return nil
}

func (tc *testContext) iRequest(method, path string) error {
	return tc.do(method, path, "")
}

func (tc *testContext) iPostWithBody(path string, body *godog.DocString) error {
	return tc.do(http.MethodPost, path, body.Content)
}

func (tc *testContext) do(method, path, body string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var r io.Reader = http.NoBody
	if body != "" {
		r = strings.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, tc.baseURL+path, r)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := tc.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	tc.response = resp
	tc.responseBody, err = io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	return nil
}

func (tc *testContext) theResponseStatusShouldBe(expectedCode int) error {
	if tc.response == nil {
		return fmt.Errorf("no response received")
	}

	if tc.response.StatusCode != expectedCode {
		return fmt.Errorf("expected status %d, got %d. Body: %s",
			expectedCode, tc.response.StatusCode, string(tc.responseBody))
	}

	return nil
}

func (tc *testContext) theResponseBodyShouldBe(expected string) error {
	if got := string(tc.responseBody); got != expected {
		return fmt.Errorf("expected body %q, got %q", expected, got)
	}

	return nil
}

func (tc *testContext) theResponseShouldContain(text string) error {
	if !strings.Contains(string(tc.responseBody), text) {
		return fmt.Errorf("response body does not contain %q.\nBody: %s", text, tc.responseBody)
	}

	return nil
}

func (tc *testContext) decodeList() ([]map[string]string, error) {
	var quotes []map[string]string
	if err := json.Unmarshal(tc.responseBody, &quotes); err != nil {
		return nil, fmt.Errorf("response is not a quote list: %w", err)
	}

	return quotes, nil
}

func (tc *testContext) theResponseShouldListQuotes(n int) error {
	quotes, err := tc.decodeList()
	if err != nil {
		return err
	}

	if len(quotes) != n {
		return fmt.Errorf("expected %d quotes, got %d", n, len(quotes))
	}

	return nil
}

func (tc *testContext) quoteShouldBeBy(pos int, author string) error {
	quotes, err := tc.decodeList()
	if err != nil {
		return err
	}

	if pos >= len(quotes) {
		return fmt.Errorf("no quote at position %d in %d quotes", pos, len(quotes))
	}

	if quotes[pos]["author"] != author {
		return fmt.Errorf("quote %d is by %q, want %q", pos, quotes[pos]["author"], author)
	}

	return nil
}

// TestFeatures runs the GoDog BDD test suite.
func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"../features"},
			TestingT: t,
			Tags:     os.Getenv("GODOG_TAGS"),
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
