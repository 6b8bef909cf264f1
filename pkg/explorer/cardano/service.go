package cardano

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"github.com/tdex-network/byron-wallet/pkg/circuitbreaker"
	"github.com/tdex-network/byron-wallet/pkg/explorer"
	"go.uber.org/ratelimit"
)

const (
	// DefaultRequestTimeout ...
	DefaultRequestTimeout = 15 * time.Second
	// DefaultMaxAddressesPerRequest ...
	DefaultMaxAddressesPerRequest = 50
	// DefaultRequestsPerSecond ...
	DefaultRequestsPerSecond = 10
)

var (
	// ErrNullEndpoint ...
	ErrNullEndpoint = errors.New("explorer endpoint must not be null")
	// ErrInvalidEndpoint ...
	ErrInvalidEndpoint = errors.New("explorer endpoint must be an http(s) url")
	// ErrExplorerRejected is returned when the explorer answers with a Left
	// value.
	ErrExplorerRejected = errors.New("explorer rejected the request")
	// ErrUnexpectedStatus ...
	ErrUnexpectedStatus = errors.New("unexpected explorer response status")
)

// NewServiceOpts is the struct given to NewService.
type NewServiceOpts struct {
	Endpoint string
	// RequestTimeout defaults to DefaultRequestTimeout.
	RequestTimeout time.Duration
	// MaxAddressesPerRequest defaults to DefaultMaxAddressesPerRequest.
	MaxAddressesPerRequest int
	// RequestsPerSecond defaults to DefaultRequestsPerSecond, negative
	// values disable rate limiting.
	RequestsPerSecond int
	// HTTPClient overrides the default client, RequestTimeout is ignored.
	HTTPClient *http.Client
}

func (o NewServiceOpts) validate() error {
	if len(o.Endpoint) <= 0 {
		return ErrNullEndpoint
	}
	if !strings.HasPrefix(o.Endpoint, "http://") &&
		!strings.HasPrefix(o.Endpoint, "https://") {
		return ErrInvalidEndpoint
	}
	return nil
}

type service struct {
	endpoint               string
	client                 *http.Client
	limiter                ratelimit.Limiter
	cb                     *gobreaker.CircuitBreaker
	maxAddressesPerRequest int
}

// NewService returns a client of the Byron explorer bulk API as an
// explorer.Service.
func NewService(opts NewServiceOpts) (explorer.Service, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	client := opts.HTTPClient
	if client == nil {
		timeout := opts.RequestTimeout
		if timeout <= 0 {
			timeout = DefaultRequestTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	maxAddresses := opts.MaxAddressesPerRequest
	if maxAddresses <= 0 {
		maxAddresses = DefaultMaxAddressesPerRequest
	}

	var limiter ratelimit.Limiter
	switch {
	case opts.RequestsPerSecond < 0:
		limiter = ratelimit.NewUnlimited()
	case opts.RequestsPerSecond == 0:
		limiter = ratelimit.New(DefaultRequestsPerSecond)
	default:
		limiter = ratelimit.New(opts.RequestsPerSecond)
	}

	return &service{
		endpoint:               strings.TrimSuffix(opts.Endpoint, "/"),
		client:                 client,
		limiter:                limiter,
		cb:                     circuitbreaker.NewCircuitBreaker("explorer"),
		maxAddressesPerRequest: maxAddresses,
	}, nil
}

// post sends payload as json to the given path and returns the Right value
// of the response.
func (s *service) post(
	ctx context.Context, path string, payload interface{},
) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s%s", s.endpoint, path)

	s.limiter.Take()
	iResp, err := s.cb.Execute(func() (interface{}, error) {
		return s.do(ctx, url, body)
	})
	if err != nil {
		return nil, err
	}

	resp := iResp.(*response)
	if resp.Left != nil {
		return nil, fmt.Errorf("%w: %s", ErrExplorerRejected, *resp.Left)
	}
	return resp.Right, nil
}

func (s *service) do(ctx context.Context, url string, body []byte) (*response, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, url, bytes.NewReader(body),
	)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	log.WithField("url", url).Debug("explorer request")

	res, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	buf, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf(
			"%w %d: %s", ErrUnexpectedStatus, res.StatusCode, strings.TrimSpace(string(buf)),
		)
	}

	resp := &response{}
	if err := json.Unmarshal(buf, resp); err != nil {
		return nil, fmt.Errorf("failed to parse explorer response: %w", err)
	}
	if resp.Left == nil && resp.Right == nil {
		return nil, fmt.Errorf("failed to parse explorer response: missing result")
	}
	return resp, nil
}
