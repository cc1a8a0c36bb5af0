// Package apiclient is a minimal HTTP client for one fixed base URL of the service under test.
//
// It returns every response as-is, without looking at the status code, so that the tests can
// make assertions about error responses as easily as about successful ones. GET requests that
// time out are retried a bounded number of times; POST and DELETE requests are never retried,
// since repeating a mutating call that may already have taken effect could create or delete a
// second record.
package apiclient

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sendrequest/api-contract-tests/framework"

	"github.com/google/uuid"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const (
	DefaultGetTimeout    = 500 * time.Millisecond
	DefaultPostTimeout   = time.Second
	DefaultDeleteTimeout = 500 * time.Millisecond
	DefaultRetryWait     = 500 * time.Millisecond

	// MaxGetAttempts is the total number of times a GET is sent if it keeps timing out.
	MaxGetAttempts = 3

	RequestIDHeader = "X-Request-Id"
)

// Timeouts are the per-verb defaults used when a call does not specify WithTimeout.
type Timeouts struct {
	Get    time.Duration
	Post   time.Duration
	Delete time.Duration
}

// DefaultTimeouts returns the standard per-verb timeouts.
func DefaultTimeouts() Timeouts {
	return Timeouts{Get: DefaultGetTimeout, Post: DefaultPostTimeout, Delete: DefaultDeleteTimeout}
}

// Client performs calls against one base URL. It holds only configuration, so a single Client
// can be shared by any number of goroutines, and copying it with WithLogger is cheap.
type Client struct {
	baseURL   string
	timeouts  Timeouts
	retryWait time.Duration
	transport http.RoundTripper
	logger    framework.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

func WithTimeouts(timeouts Timeouts) ClientOption {
	return func(c *Client) {
		if timeouts.Get > 0 {
			c.timeouts.Get = timeouts.Get
		}
		if timeouts.Post > 0 {
			c.timeouts.Post = timeouts.Post
		}
		if timeouts.Delete > 0 {
			c.timeouts.Delete = timeouts.Delete
		}
	}
}

// WithRetryWait sets the fixed delay between attempts of a GET that timed out.
func WithRetryWait(wait time.Duration) ClientOption {
	return func(c *Client) { c.retryWait = wait }
}

func WithTransport(transport http.RoundTripper) ClientOption {
	return func(c *Client) { c.transport = transport }
}

// WithRootCAs makes the client trust only the given certificate pool for HTTPS.
func WithRootCAs(pool *x509.CertPool) ClientOption {
	return func(c *Client) {
		transport := newTransport()
		transport.TLSClientConfig = &tls.Config{RootCAs: pool, MinVersion: tls.VersionTLS12}
		c.transport = transport
	}
}

func WithLogger(logger framework.Logger) ClientOption {
	return func(c *Client) { c.logger = logger }
}

// New creates a Client for the given base URL, for instance "https://example.com/api/users".
// Request paths are appended to it verbatim.
func New(baseURL string, options ...ClientOption) *Client {
	c := &Client{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		timeouts:  DefaultTimeouts(),
		retryWait: DefaultRetryWait,
		logger:    framework.NullLogger(),
	}
	for _, o := range options {
		o(c)
	}
	if c.transport == nil {
		c.transport = newTransport()
	}
	if c.logger == nil {
		c.logger = framework.NullLogger()
	}
	return c
}

// newTransport returns a pooled transport that only speaks HTTP/1.1. The Connection header
// the tests check for does not exist in HTTP/2.
func newTransport() *http.Transport {
	transport := cleanhttp.DefaultPooledTransport()
	transport.ForceAttemptHTTP2 = false
	transport.TLSNextProto = map[string]func(string, *tls.Conn) http.RoundTripper{}
	return transport
}

// WithLogger returns a copy of the client that writes debug output to the given logger. The
// copy shares the connection pool of the original.
func (c *Client) WithLogger(logger framework.Logger) *Client {
	c1 := *c
	c1.logger = logger
	if c1.logger == nil {
		c1.logger = framework.NullLogger()
	}
	return &c1
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get sends a GET request. If the request times out, it is sent again after a fixed wait, up to
// MaxGetAttempts times in total; any other kind of failure is returned immediately. If every
// attempt times out, the returned error is a *TimeoutError.
func (c *Client) Get(path string, options ...RequestOption) (*Response, error) {
	return c.do(http.MethodGet, path, c.timeouts.Get, true, options)
}

// Post sends a POST request. It is never retried.
func (c *Client) Post(path string, options ...RequestOption) (*Response, error) {
	return c.do(http.MethodPost, path, c.timeouts.Post, false, options)
}

// Delete sends a DELETE request. It is never retried.
func (c *Client) Delete(path string, options ...RequestOption) (*Response, error) {
	return c.do(http.MethodDelete, path, c.timeouts.Delete, false, options)
}

func (c *Client) do(
	method string,
	path string,
	defaultTimeout time.Duration,
	retryOnTimeout bool,
	options []RequestOption,
) (*Response, error) {
	opts := requestOptions{timeout: defaultTimeout}
	for _, o := range options {
		o(&opts)
	}
	if opts.err != nil {
		return nil, errors.Wrapf(opts.err, "error creating request %s %s", method, path)
	}

	target, err := c.buildURL(path, opts.params)
	if err != nil {
		return nil, err
	}

	var body interface{}
	if opts.body != nil {
		body = opts.body
	}
	req, err := retryablehttp.NewRequest(method, target, body)
	if err != nil {
		return nil, errors.Wrapf(err, "error creating request %s %s", method, target)
	}
	for k, v := range opts.headers {
		req.Header.Set(k, v)
	}
	requestID := uuid.New().String()
	req.Header.Set(RequestIDHeader, requestID)

	var attempts int
	rc := &retryablehttp.Client{
		HTTPClient: &http.Client{
			Transport:     c.transport,
			Timeout:       opts.timeout,
			CheckRedirect: redirectPolicy(opts.followRedirects),
		},
		Logger:       c.logger,
		RetryWaitMin: c.retryWait,
		RetryWaitMax: c.retryWait,
		RetryMax:     0,
		CheckRetry:   neverRetry,
		Backoff:      fixedBackoff,
		ErrorHandler: func(resp *http.Response, err error, numTries int) (*http.Response, error) {
			attempts = numTries
			if resp != nil && resp.Body != nil {
				_ = resp.Body.Close()
			}
			return nil, err
		},
	}
	if retryOnTimeout {
		rc.RetryMax = MaxGetAttempts - 1
		rc.CheckRetry = retryOnlyOnTimeout
	}

	c.logger.Printf("%s %s (request %s)", method, target, requestID)
	resp, err := rc.Do(req)
	if err != nil {
		if IsTimeout(err) {
			return nil, &TimeoutError{Method: method, URL: target, Attempts: attempts, Err: err}
		}
		return nil, errors.Wrapf(err, "error invoking %s %s", method, target)
	}
	defer resp.Body.Close()

	respBody, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		if IsTimeout(err) {
			return nil, &TimeoutError{Method: method, URL: target, Attempts: 1, Err: err}
		}
		return nil, errors.Wrapf(err, "error reading response body of %s %s", method, target)
	}
	c.logger.Printf("%s %s -> %d: %s", method, target, resp.StatusCode, string(respBody))

	return &Response{
		Method:     method,
		URL:        resp.Request.URL.String(),
		RequestID:  requestID,
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
	}, nil
}

func (c *Client) buildURL(path string, params map[string]interface{}) (string, error) {
	if path == "" {
		path = "/"
	}
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return "", errors.Wrapf(err, "invalid request URL %q", c.baseURL+path)
	}
	if len(params) > 0 {
		q := u.Query()
		for k, v := range params {
			if s, ok := stringifyParam(v); ok {
				q.Set(k, s)
			}
		}
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// stringifyParam converts a query parameter value to its wire form. Unset optional values are
// left out of the query string.
func stringifyParam(v interface{}) (string, bool) {
	switch value := v.(type) {
	case nil:
		return "", false
	case string:
		return value, true
	case ldvalue.OptionalInt:
		if !value.IsDefined() {
			return "", false
		}
		return fmt.Sprint(value.IntValue()), true
	case ldvalue.Value:
		if value.IsNull() {
			return "", false
		}
		if value.IsString() {
			return value.StringValue(), true
		}
		return value.JSONString(), true
	case fmt.Stringer:
		return value.String(), true
	default:
		return fmt.Sprint(value), true
	}
}

func redirectPolicy(follow bool) func(*http.Request, []*http.Request) error {
	if follow {
		return nil
	}
	return func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
}

func neverRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	return false, nil
}

func retryOnlyOnTimeout(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	return IsTimeout(err), nil
}

func fixedBackoff(min, max time.Duration, attemptNum int, resp *http.Response) time.Duration {
	return min
}
