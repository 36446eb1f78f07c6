package interviewer

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/ai-interviewer/interviewer-cli/internal/metrics"
)

const (
	DefaultAPIURL    = "http://localhost:8000"
	DefaultOrigin    = "http://localhost:5173"
	DefaultUserAgent = "ai-interviewer-cli"

	apiPrefix = "/api/v1"
)

// DeviceIDSource resolves the identifier used to attribute anonymous usage.
type DeviceIDSource interface {
	ID(ctx context.Context) (string, error)
}

// Client talks to the interview platform backend.
type Client struct {
	devices DeviceIDSource
	logger  *zap.Logger

	HTTPClient *http.Client
	Metrics    *metrics.Recorder
	// APIURL is the backend base address without the /api/v1 prefix.
	APIURL string
	// Origin is the public address of the web application. Share links and
	// checkout return addresses are built on it.
	Origin    string
	UserAgent string
	// Language is sent as Accept-Language when set.
	Language string
}

func New(logger *zap.Logger, devices DeviceIDSource) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		devices: devices,
		logger:  logger,
		// No client-side deadline: requests run until they finish or the
		// caller's context is cancelled.
		HTTPClient: &http.Client{},
		APIURL:     DefaultAPIURL,
		Origin:     DefaultOrigin,
		UserAgent:  DefaultUserAgent,
	}
}

// DeviceID returns the cached device identifier, computing it on first use.
func (c *Client) DeviceID(ctx context.Context) (string, error) {
	if c.devices == nil {
		return "", errors.New("device id source is not configured")
	}

	return c.devices.ID(ctx)
}

func (c *Client) endpoint(path string) string {
	return strings.TrimRight(c.APIURL, "/") + apiPrefix + path
}

func (c *Client) originURL(path string) string {
	return strings.TrimRight(c.Origin, "/") + path
}
