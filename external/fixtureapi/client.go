package fixtureapi

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/grassrootshq/matchday/internal/platform/logging"
	"github.com/grassrootshq/matchday/internal/platform/resilience"
)

const defaultTimeout = 15 * time.Second

var errFixtureAPITransient = crerr.New("fixture api transient failure")

// ErrUnavailable is returned when the backend cannot be reached, keeps failing,
// or the circuit breaker is open. Callers treat it as a signal to fall back.
var ErrUnavailable = stderrors.New("fixture backend unavailable")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	SessionSecret  string
	ActorID        string
	ActorRoles     []string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the fixture backend. All responses arrive wrapped in a
// {"data": ...} envelope; non-2xx statuses surface as errors, transient ones
// marked for the circuit breaker.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	sessionSecret  string
	actorID        string
	actorRoles     string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		sessionSecret:  strings.TrimSpace(cfg.SessionSecret),
		actorID:        strings.TrimSpace(cfg.ActorID),
		actorRoles:     strings.Join(cfg.ActorRoles, ","),
		maxRetries:     cfg.MaxRetries,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// ListPlayers returns the team roster. Pass includeRemoved to also get
// soft-deleted players, which historical fixtures may still reference.
func (c *Client) ListPlayers(ctx context.Context, teamID string, includeRemoved bool) ([]PlayerSummary, error) {
	query := map[string]string{"teamId": teamID}
	if includeRemoved {
		query["includeRemoved"] = "true"
	}

	var players []PlayerSummary
	if err := c.doJSON(ctx, http.MethodGet, "/v1/players", query, nil, &players); err != nil {
		return nil, fmt.Errorf("list players team_id=%s: %w", teamID, err)
	}

	return players, nil
}

func (c *Client) CreateFixture(ctx context.Context, req CreateFixtureRequest) (FixtureSummary, error) {
	var summary FixtureSummary
	if err := c.doJSON(ctx, http.MethodPost, "/v1/fixtures", nil, req, &summary); err != nil {
		return FixtureSummary{}, fmt.Errorf("create fixture opponent=%s: %w", req.Opponent, err)
	}

	return summary, nil
}

func (c *Client) ListFixtures(ctx context.Context, teamID string) ([]FixtureSummary, error) {
	var fixtures []FixtureSummary
	if err := c.doJSON(ctx, http.MethodGet, "/v1/fixtures", map[string]string{"teamId": teamID}, nil, &fixtures); err != nil {
		return nil, fmt.Errorf("list fixtures team_id=%s: %w", teamID, err)
	}

	return fixtures, nil
}

func (c *Client) FixtureDetail(ctx context.Context, fixtureID string) (FixtureDetail, error) {
	var detail FixtureDetail
	if err := c.doJSON(ctx, http.MethodGet, "/v1/fixtures/"+url.PathEscape(fixtureID), nil, nil, &detail); err != nil {
		return FixtureDetail{}, fmt.Errorf("fetch fixture detail fixture_id=%s: %w", fixtureID, err)
	}

	return detail, nil
}

func (c *Client) PatchFixture(ctx context.Context, fixtureID string, req PatchFixtureRequest) error {
	if err := c.doJSON(ctx, http.MethodPatch, "/v1/fixtures/"+url.PathEscape(fixtureID), nil, req, nil); err != nil {
		return fmt.Errorf("patch fixture fixture_id=%s: %w", fixtureID, err)
	}

	return nil
}

func (c *Client) SaveLineup(ctx context.Context, fixtureID string, req SaveLineupRequest) error {
	if err := c.doJSON(ctx, http.MethodPut, "/v1/fixtures/"+url.PathEscape(fixtureID)+"/lineup", nil, req, nil); err != nil {
		return fmt.Errorf("save lineup fixture_id=%s: %w", fixtureID, err)
	}

	return nil
}

func (c *Client) LockFixture(ctx context.Context, fixtureID string) error {
	if err := c.doJSON(ctx, http.MethodPost, "/v1/fixtures/"+url.PathEscape(fixtureID)+"/lock", nil, nil, nil); err != nil {
		return fmt.Errorf("lock fixture fixture_id=%s: %w", fixtureID, err)
	}

	return nil
}

func (c *Client) SaveResult(ctx context.Context, fixtureID string, req SaveResultRequest) error {
	if err := c.doJSON(ctx, http.MethodPut, "/v1/fixtures/"+url.PathEscape(fixtureID)+"/result", nil, req, nil); err != nil {
		return fmt.Errorf("save result fixture_id=%s: %w", fixtureID, err)
	}

	return nil
}

type envelope struct {
	Data json.RawMessage `json:"data"`
}

func (c *Client) doJSON(ctx context.Context, method, path string, query map[string]string, body any, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "fixture api circuit breaker rejected request", "state", c.breaker.State(), "path", path)
			return fmt.Errorf("%w: circuit open", ErrUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	var payload []byte
	if body != nil {
		encoded, err := sonic.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		payload = encoded
	}

	var raw []byte
	var err error
	if method == http.MethodGet {
		// Identical concurrent reads collapse into one round trip. Mutations
		// must each hit the backend, so they bypass the flight group.
		out, flightErr, _ := c.flight.Do(method+" "+fullURL, func() (any, error) {
			return c.executeRequest(ctx, method, fullURL, payload)
		})
		if flightErr == nil {
			raw, _ = out.([]byte)
		}
		err = flightErr
	} else {
		raw, err = c.executeRequest(ctx, method, fullURL, payload)
	}

	if c.circuitEnabled {
		if err != nil && isTransientFailure(err) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}
	if err != nil {
		if isTransientFailure(err) {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return err
	}

	if target == nil {
		return nil
	}

	var wrapped envelope
	if err := sonic.Unmarshal(raw, &wrapped); err != nil {
		return fmt.Errorf("decode response envelope: %w", err)
	}
	if len(wrapped.Data) == 0 {
		return nil
	}
	if err := sonic.Unmarshal(wrapped.Data, target); err != nil {
		return fmt.Errorf("decode response payload: %w", err)
	}

	return nil
}

func (c *Client) executeRequest(ctx context.Context, method, fullURL string, payload []byte) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		var reqBody io.Reader
		if payload != nil {
			reqBody = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")
		if payload != nil {
			req.Header.Set("content-type", "application/json")
		}
		if c.sessionSecret != "" {
			req.Header.Set("authorization", "Bearer "+c.sessionSecret)
		}
		if c.actorID != "" {
			req.Header.Set("x-actor-id", c.actorID)
		}
		if c.actorRoles != "" {
			req.Header.Set("x-actor-roles", c.actorRoles)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errFixtureAPITransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errFixtureAPITransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: backend status=%d body=%s", errFixtureAPITransient, resp.StatusCode, abbreviateBody(raw))
			} else {
				return nil, fmt.Errorf("backend status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * 500 * time.Millisecond
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("backend request failed")
	}
	c.logger.WarnContext(ctx, "fixture api request failed", "request", requestPreview(method, fullURL, payload), "error", lastErr)
	return nil, lastErr
}

func isTransientFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errFixtureAPITransient) || stderrors.Is(err, ErrUnavailable)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

// requestPreview renders a compact method+url+body line for warn logs. Session
// credentials travel in headers, so the preview is safe to log.
func requestPreview(method, fullURL string, payload []byte) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(method)
	_ = buf.WriteByte(' ')
	_, _ = buf.WriteString(fullURL)
	if len(payload) > 0 {
		_, _ = buf.WriteString(" body=")
		_, _ = buf.WriteString(abbreviateBody(payload))
	}

	return buf.String()
}
