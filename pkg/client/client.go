package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"k8s.io/utils/clock"

	"github.com/smartdata/ssm-dashboard/internal/common/requestid"
	"github.com/smartdata/ssm-dashboard/internal/common/ssmerrors"
	"github.com/smartdata/ssm-dashboard/internal/dashboard/model"
	"github.com/smartdata/ssm-dashboard/internal/dashboard/query"
)

const (
	defaultRetryDelay = 200 * time.Millisecond
	transportFailure  = "transport_error"
)

// Client talks to the SSM web server's REST API.
type Client struct {
	baseUrl    *url.URL
	details    *ApiConnectionDetails
	httpClient *http.Client
	clock      clock.PassiveClock
}

type Option func(*Client)

// WithHttpClient replaces the default http.Client, e.g. to install custom transports.
func WithHttpClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithClock sets the clock used to resolve relative date ranges.
func WithClock(clock clock.PassiveClock) Option {
	return func(c *Client) {
		c.clock = clock
	}
}

func NewClient(details *ApiConnectionDetails, opts ...Option) (*Client, error) {
	baseUrl, err := url.Parse(strings.TrimSuffix(details.SsmUrl, "/"))
	if err != nil {
		return nil, errors.WithStack(&ssmerrors.ErrInvalidArgument{Name: "ssmUrl", Value: details.SsmUrl, Message: err.Error()})
	}
	if baseUrl.Scheme == "" || baseUrl.Host == "" {
		return nil, errors.WithStack(&ssmerrors.ErrInvalidArgument{Name: "ssmUrl", Value: details.SsmUrl, Message: "expected scheme://host[:port]"})
	}
	c := &Client{
		baseUrl:    baseUrl,
		details:    details,
		httpClient: &http.Client{Timeout: details.timeout()},
		clock:      clock.RealClock{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// request describes a single call. route is the path template used to label metrics.
type request struct {
	method       string
	route        string
	path         string
	query        url.Values
	body         interface{}
	resourceType string
	resourceId   string
}

// transportError marks failures that happened before any response was received.
type transportError struct {
	err error
}

func (e *transportError) Error() string { return e.err.Error() }
func (e *transportError) Unwrap() error { return e.err }

func isRetryable(err error) bool {
	var transport *transportError
	return errors.As(err, &transport) || ssmerrors.IsRetryable(err)
}

// get issues a read, retrying transport failures and retryable server errors.
// All attempts carry the same request Id.
func (c *Client) get(ctx context.Context, req request, out interface{}) error {
	ctx, _ = requestid.Ensure(ctx)
	delay := c.details.RetryDelay
	if delay <= 0 {
		delay = defaultRetryDelay
	}
	return retry.Do(
		func() error {
			return c.do(ctx, req, out)
		},
		retry.Context(ctx),
		retry.Attempts(c.details.Retries+1),
		retry.Delay(delay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isRetryable),
		retry.OnRetry(func(n uint, err error) {
			log.WithError(err).Warnf("%s %s failed (attempt %d of %d)", req.method, req.path, n+1, c.details.Retries+1)
		}),
	)
}

// do issues req once and decodes a JSON response into out, if out is non-nil.
func (c *Client) do(ctx context.Context, req request, out interface{}) error {
	target := *c.baseUrl
	target.Path = c.baseUrl.Path + req.path
	if len(req.query) > 0 {
		target.RawQuery = req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		data, err := json.Marshal(req.body)
		if err != nil {
			return errors.WithStack(err)
		}
		body = bytes.NewReader(data)
	}

	ctx, id := requestid.Ensure(ctx)
	httpReq, err := http.NewRequestWithContext(ctx, req.method, target.String(), body)
	if err != nil {
		return errors.WithStack(err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(requestid.HeaderKey, id)
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if c.details.Username != "" {
		httpReq.SetBasicAuth(c.details.Username, c.details.Password)
	}

	log.WithField("requestId", id).Debugf("%s %s", req.method, target.String())

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	requestDuration.WithLabelValues(req.method, req.route).Observe(time.Since(start).Seconds())
	if err != nil {
		requestsTotal.WithLabelValues(req.method, req.route, transportFailure).Inc()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return errors.WithStack(&transportError{err: err})
	}
	defer resp.Body.Close()
	requestsTotal.WithLabelValues(req.method, req.route, strconv.Itoa(resp.StatusCode)).Inc()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WithStack(&transportError{err: err})
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := ssmerrors.FromResponse(resp.StatusCode, data, req.resourceType, req.resourceId)
		if unauthorized := (*ssmerrors.ErrUnauthorized)(nil); errors.As(err, &unauthorized) {
			unauthorized.Username = c.details.Username
		}
		return err
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrapf(err, "decoding response of %s %s", req.method, req.path)
	}
	return nil
}

// list fetches one page of a collection endpoint.
func list[T any](
	ctx context.Context,
	c *Client,
	endpoint query.Endpoint,
	filter interface{},
	sort *model.SortParams,
	pagination *model.PaginationParams,
) (model.Collection[T], error) {
	params := endpoint.Params(filter, sort, pagination, c.clock.Now())
	collection := model.Collection[T]{}
	err := c.get(ctx, request{
		method: http.MethodGet,
		route:  endpoint.Path,
		path:   endpoint.Path,
		query:  params.Values(endpoint.ArrayFormat),
	}, &collection)
	if err != nil {
		return model.Collection[T]{}, err
	}
	if collection.Items == nil {
		collection.Items = []T{}
	}
	return collection, nil
}

func idPath(template string, id int64) string {
	return strings.Replace(template, "{id}", strconv.FormatInt(id, 10), 1)
}
