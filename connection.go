package mxit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

// Default endpoints and permission scope for the production messaging API.
const (
	DefaultAuthBaseURL = "https://auth.mxit.com"
	DefaultAPIBaseURL  = "https://api.mxit.com"
	DefaultScope       = "message/send"
)

const (
	grantTypeClientCredentials = "client_credentials"
	tokenPath                  = "/token"
	sendPath                   = "/message/send/"
)

// tokenPhase tags the lifecycle of the cached access token.
type tokenPhase int

const (
	tokenAbsent  tokenPhase = iota // no token cached
	tokenPending                   // an authentication run is in progress
	tokenPresent                   // a verified token is cached
)

// ConnectionManager coordinates the access-token lifecycle and the outbound
// send path for one set of client credentials. Construct one with [New] at
// startup and share it; all methods are safe for concurrent use.
type ConnectionManager struct {
	clientID     string
	clientSecret string
	options      *Options

	auth *resty.Client
	api  *resty.Client

	// mu guards phase and token together so a reader never observes a
	// half-updated pair.
	mu    sync.Mutex
	phase tokenPhase
	token string

	// authMu serializes whole authentication runs, backoff waits included.
	// It is never held together with mu, so state readers stay responsive
	// while an authentication backs off.
	authMu sync.Mutex
}

// New creates a ConnectionManager for the given client credentials. The zero
// options target the production endpoints; supply [Option] values to
// override endpoints, retry behaviour, timeouts and logging.
func New(clientID, clientSecret string, opts ...Option) *ConnectionManager {
	options := newConnectionOptions()
	for _, opt := range opts {
		opt(options)
	}

	c := &ConnectionManager{
		clientID:     clientID,
		clientSecret: clientSecret,
		options:      options,
	}

	c.auth = resty.New().
		SetTimeout(options.requestTimeout)

	c.api = resty.New().
		SetTimeout(options.requestTimeout).
		SetHeaders(options.requestHeaders)

	if options.authScheme != "" {
		c.api.SetAuthScheme(options.authScheme)
	}

	logResponses(c.auth, options.requestLogger)
	logResponses(c.api, options.requestLogger)

	return c
}

func logResponses(rc *resty.Client, logger RequestLogger) {
	rc.OnAfterResponse(func(_ *resty.Client, r *resty.Response) error {
		logger.Debugf("%s %s -> %d (%s)", r.Request.Method, r.Request.URL, r.StatusCode(), r.Time())
		return nil
	})
}

// Authenticate runs the OAuth2 client-credentials exchange and caches the
// returned access token. The cached token is cleared before the first
// attempt; the exchange is retried up to the configured attempt count with a
// fixed backoff between attempts, and the first non-empty token wins. Only
// one authentication run executes at a time; concurrent callers block until
// the active run finishes and then observe its outcome.
//
// It returns true once a token has been cached. Cancelling ctx abandons any
// remaining attempts and returns false.
func (c *ConnectionManager) Authenticate(ctx context.Context) bool {
	if c == nil {
		return false
	}

	c.authMu.Lock()
	defer c.authMu.Unlock()

	c.setToken(tokenPending, "")

	for attempt := 1; attempt <= c.options.maxAuthAttempts; attempt++ {
		if attempt > 1 && !sleepContext(ctx, c.options.authBackoff) {
			c.options.requestLogger.Warnf("authentication abandoned: %v", ctx.Err())
			break
		}

		token, err := c.exchangeToken(ctx)
		if err != nil {
			c.options.requestLogger.Warnf("token exchange attempt %d/%d failed: %v",
				attempt, c.options.maxAuthAttempts, err)
			continue
		}

		c.setToken(tokenPresent, token)
		return true
	}

	c.setToken(tokenAbsent, "")
	return false
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
	ExpiresIn   int    `json:"expires_in,omitempty"`
}

// exchangeToken performs one client-credentials exchange. The response body
// is parsed regardless of status code; any outcome without a non-empty
// access_token is an error.
func (c *ConnectionManager) exchangeToken(ctx context.Context) (string, error) {
	resp, err := c.auth.R().
		SetContext(ctx).
		SetBasicAuth(c.clientID, c.clientSecret).
		SetFormData(map[string]string{
			"grant_type": grantTypeClientCredentials,
			"scope":      c.options.scope,
		}).
		Post(c.options.authBaseURL + tokenPath)
	if err != nil {
		return "", fmt.Errorf("POST %s: %w", tokenPath, err)
	}

	var tr tokenResponse
	if err := json.Unmarshal(resp.Body(), &tr); err != nil {
		return "", fmt.Errorf("parse token response (%s): %w", resp.Status(), err)
	}

	if tr.AccessToken == "" {
		return "", fmt.Errorf("token response (%s) has no access_token", resp.Status())
	}

	return tr.AccessToken, nil
}

// SendMessage submits msg using the cached access token and reports success.
// A failed send is retried exactly once: after re-authenticating when the
// failure was HTTP 401, as-is otherwise. No fault escapes as an error or
// panic; callers only ever observe the boolean.
func (c *ConnectionManager) SendMessage(ctx context.Context, msg *Message) bool {
	ok, _ := c.SendMessageWithStatus(ctx, msg)
	return ok
}

// SendMessageWithStatus behaves like [ConnectionManager.SendMessage] and also
// returns the HTTP status code of the last attempt.
func (c *ConnectionManager) SendMessageWithStatus(ctx context.Context, msg *Message) (bool, int) {
	if c == nil || msg == nil {
		return false, http.StatusUnauthorized
	}

	ok, status := c.send(ctx, msg)
	if ok {
		return true, status
	}

	if !c.options.retryClassifier(status) {
		return false, status
	}

	if status == http.StatusUnauthorized {
		c.options.requestLogger.Warnf("send rejected with 401, re-authenticating")
		if !c.Authenticate(ctx) {
			return false, status
		}
	}

	return c.send(ctx, msg)
}

// send performs a single attempt against the send endpoint. Transport faults
// never escape: they collapse to a failure carrying the 401 placeholder
// status, which routes the caller into the re-authentication branch.
func (c *ConnectionManager) send(ctx context.Context, msg *Message) (bool, int) {
	resp, err := c.api.R().
		SetContext(ctx).
		SetAuthToken(c.currentToken()).
		SetBody(msg).
		Post(c.options.apiBaseURL + sendPath)
	if err != nil {
		c.options.requestLogger.Errorf("POST %s: %v", sendPath, err)
		return false, http.StatusUnauthorized
	}

	if resp.StatusCode() == http.StatusOK {
		return true, http.StatusOK
	}

	return false, resp.StatusCode()
}

// IsAccessTokenAvailable reports whether a verified access token is cached.
func (c *ConnectionManager) IsAccessTokenAvailable() bool {
	if c == nil {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.phase == tokenPresent && c.token != ""
}

// IsReAuthenticating reports whether an authentication run is in progress.
func (c *ConnectionManager) IsReAuthenticating() bool {
	if c == nil {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.phase == tokenPending
}

// Close releases idle connections held by the underlying transports. The
// manager remains usable afterwards; Close only trims pooled resources.
func (c *ConnectionManager) Close() {
	if c == nil {
		return
	}

	c.auth.GetClient().CloseIdleConnections()
	c.api.GetClient().CloseIdleConnections()
}

func (c *ConnectionManager) setToken(phase tokenPhase, token string) {
	c.mu.Lock()
	c.phase = phase
	c.token = token
	c.mu.Unlock()
}

func (c *ConnectionManager) currentToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.token
}

// sleepContext waits for d, returning false early if ctx is cancelled.
func sleepContext(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
