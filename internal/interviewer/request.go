package interviewer

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/ai-interviewer/interviewer-cli/internal/logger"
)

const (
	contentType     = "application/json"
	contentEncoding = "gzip"
	deviceIDHeader  = "X-Device-Id"

	previewLength = 300
)

// call describes a single request to the backend.
type call struct {
	op         string
	method     string
	path       string
	query      url.Values
	withDevice bool
	body       any
}

// do sends the call and decodes a successful JSON response into target.
// Any non-2xx response is returned as *APIError.
func (c *Client) do(ctx context.Context, rc call, target any) error {
	var payload io.Reader
	if rc.body != nil {
		data, err := json.Marshal(rc.body)
		if err != nil {
			return fmt.Errorf("encoding %s request: %w", rc.op, err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, rc.method, c.endpoint(rc.path), payload)
	if err != nil {
		return err
	}

	c.setHeaders(req)
	if rc.body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	if rc.query != nil {
		req.URL.RawQuery = rc.query.Encode()
	}

	if rc.withDevice {
		id, err := c.DeviceID(ctx)
		if err != nil {
			return fmt.Errorf("resolving device id: %w", err)
		}
		req.Header.Set(deviceIDHeader, id)
	}

	log := logger.WithRequestFields(c.logger, rc.op, req.Method, req.URL.Path)

	start := time.Now()
	resp, err := c.request(req, log)
	if err != nil {
		c.Metrics.Observe(rc.op, "transport_error", time.Since(start))
		return fmt.Errorf("%s: %w", rc.op, err)
	}
	defer resp.Body.Close()

	data, readErr := readBody(resp)
	c.Metrics.Observe(rc.op, strconv.Itoa(resp.StatusCode), time.Since(start))

	if !isSuccess(resp.StatusCode) {
		apiErr := newAPIError(resp.StatusCode, data)
		log.Debug("request failed",
			zap.Int("status", resp.StatusCode),
			zap.String("message", apiErr.Message),
			zap.String("body_preview", logger.TruncateForLog(string(data), previewLength)),
		)
		return apiErr
	}

	if readErr != nil {
		return fmt.Errorf("reading %s response: %w", rc.op, readErr)
	}

	log.Debug("got response",
		zap.Int("status", resp.StatusCode),
		zap.Int("body_length", len(data)),
		zap.String("body_preview", logger.TruncateForLog(string(data), previewLength)),
	)

	if target == nil {
		return nil
	}

	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("decoding %s response: %w", rc.op, err)
	}

	return nil
}

func (c *Client) request(req *http.Request, log *zap.Logger) (*http.Response, error) {
	log.Debug("make request", zap.String("url", req.URL.Redacted()))

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", contentType)
	req.Header.Set("Accept-Encoding", contentEncoding)
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	if c.Language != "" {
		req.Header.Set("Accept-Language", c.Language)
	}
}

// readBody returns the whole response body, transparently un-gzipping it.
func readBody(resp *http.Response) ([]byte, error) {
	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == contentEncoding {
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gzipReader.Close()
		reader = gzipReader
	}

	return io.ReadAll(reader)
}

func isSuccess(status int) bool {
	return status >= http.StatusOK && status < http.StatusMultipleChoices
}
