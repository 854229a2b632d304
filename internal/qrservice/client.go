// Package qrservice provides the client for the external QR web service
// (api.qrserver.com): decoding QR codes from image URLs and building
// image-generation URLs. It also offers a local generator backend that
// renders PNGs in-process.
package qrservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/qrgram/qrbot-go/internal/config"
	"github.com/qrgram/qrbot-go/internal/errors"
	"github.com/qrgram/qrbot-go/internal/metrics"
)

const serviceDecode = "qr_decode"

// maxPayloadBytes is the binary capacity of the largest QR symbol (version
// 40, low error correction). Longer text cannot be encoded by any backend.
const maxPayloadBytes = 2953

// nullSentinel is returned by the decode service in place of data when the
// image contained no readable code. It must be treated as a failure, not as
// a valid payload.
const nullSentinel = "NULL"

// Image is the product of a generator backend: either a URL Telegram can
// fetch, or raw PNG bytes to upload.
type Image struct {
	URL      string
	Data     []byte
	Filename string
}

// Client calls the QR web service.
type Client struct {
	httpClient *http.Client
	baseURL    string
	render     config.RenderConfig
	metrics    *metrics.Metrics
}

// NewClient creates a QR service client.
// Each call is bounded by the given timeout; there are no retries.
func NewClient(baseURL string, render config.RenderConfig, timeout time.Duration, m *metrics.Metrics) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		baseURL: strings.TrimSuffix(baseURL, "/"),
		render:  render,
		metrics: m,
	}
}

// decodeResult mirrors the read-qr-code response:
// [{"type":"qrcode","symbol":[{"seq":0,"data":"...","error":null}]}]
type decodeResult []struct {
	Symbol []struct {
		Data  *string `json:"data"`
		Error *string `json:"error"`
	} `json:"symbol"`
}

// Decode submits an image URL to the decode endpoint and returns the decoded
// payload. Absent, empty, or sentinel payloads yield ErrNotDecodable.
func (c *Client) Decode(ctx context.Context, imageURL string) (string, error) {
	decodeURL := fmt.Sprintf("%s/read-qr-code/?fileurl=%s", c.baseURL, url.QueryEscape(imageURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, decodeURL, nil)
	if err != nil {
		return "", errors.NewServiceError("decode", 0, err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.record(start, "error")
		return "", errors.NewServiceError("decode", 0, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.record(start, "error")
		return "", errors.NewServiceError("decode", resp.StatusCode,
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.record(start, "error")
		return "", errors.NewServiceError("decode", resp.StatusCode, err)
	}

	var result decodeResult
	if err := json.Unmarshal(body, &result); err != nil {
		c.record(start, "error")
		return "", errors.NewServiceError("decode", resp.StatusCode, err)
	}

	if len(result) == 0 || len(result[0].Symbol) == 0 {
		c.record(start, "not_decodable")
		return "", errors.ErrNotDecodable
	}
	data := result[0].Symbol[0].Data
	if data == nil || *data == "" || *data == nullSentinel {
		c.record(start, "not_decodable")
		return "", errors.ErrNotDecodable
	}

	c.record(start, "success")
	return *data, nil
}

// Generate builds a create-qr-code URL embedding the percent-encoded text and
// the fixed rendering parameters. The service renders the image when Telegram
// fetches the URL; no synchronous verification is performed.
func (c *Client) Generate(ctx context.Context, text string) (Image, error) {
	if err := ctx.Err(); err != nil {
		return Image{}, err
	}
	if err := validatePayload(text); err != nil {
		return Image{}, err
	}

	params := url.Values{}
	params.Set("data", text)
	params.Set("size", c.render.Size)
	params.Set("color", c.render.Color)
	params.Set("bgcolor", c.render.BgColor)
	params.Set("margin", fmt.Sprintf("%d", c.render.Margin))
	params.Set("qzone", fmt.Sprintf("%d", c.render.QZone))
	params.Set("format", c.render.Format)

	return Image{URL: fmt.Sprintf("%s/create-qr-code/?%s", c.baseURL, params.Encode())}, nil
}

func (c *Client) record(start time.Time, status string) {
	if c.metrics == nil {
		return
	}
	c.metrics.RecordOutbound(serviceDecode, status, time.Since(start).Seconds())
}

// validatePayload rejects text no QR symbol can carry.
func validatePayload(text string) error {
	if text == "" {
		return errors.NewServiceError("generate", 0, fmt.Errorf("empty payload"))
	}
	if len(text) > maxPayloadBytes {
		return fmt.Errorf("%w: %d bytes", errors.ErrTextTooLong, len(text))
	}
	if !utf8.ValidString(text) {
		return errors.NewServiceError("generate", 0, fmt.Errorf("payload is not valid UTF-8"))
	}
	return nil
}
