package infra

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/morikuni/failure/v2"
	"github.com/takatori/gprofiler/internal/errors"
)

type HttpClient struct {
	Client *http.Client
}

type Request struct {
	Url     string
	Headers map[string]string
	Cookies []http.Cookie
}

type FormRequest struct {
	Request
	Form url.Values
}

func NewHttpClient(timeout time.Duration) *HttpClient {

	dt := http.DefaultTransport
	transport := dt.(*http.Transport).Clone()
	transport.MaxIdleConnsPerHost = 10
	transport.IdleConnTimeout = time.Duration(30) * time.Second
	transport.MaxIdleConns = transport.MaxIdleConnsPerHost * 2
	return &HttpClient{
		Client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
	}
}

// GetText issues a GET and returns the response body as text.
func (c *HttpClient) GetText(ctx context.Context, req Request) (string, error) {
	r, err := http.NewRequestWithContext(ctx, http.MethodGet, req.Url, nil)
	if err != nil {
		return "", failure.Translate(
			err,
			errors.ErrInternal,
			failure.Field(failure.Message("failed to create request")),
			failure.Context{
				"url": req.Url,
			},
		)
	}
	req.decorate(r)

	return c.do(r, failure.Context{"url": req.Url})
}

// PostForm issues a form-encoded POST and returns the response body as text.
func (c *HttpClient) PostForm(ctx context.Context, req FormRequest) (string, error) {
	encoded := req.Form.Encode()

	r, err := http.NewRequestWithContext(ctx, http.MethodPost, req.Url, strings.NewReader(encoded))
	if err != nil {
		return "", failure.Translate(
			err,
			errors.ErrInternal,
			failure.Field(failure.Message("failed to create request")),
			failure.Context{
				"url": req.Url,
				"req": encoded,
			},
		)
	}
	req.decorate(r)
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.do(r, failure.Context{"url": req.Url, "req": encoded})
}

func (req Request) decorate(r *http.Request) {
	for k, v := range req.Headers {
		if v != "" {
			r.Header.Set(k, v)
		}
	}
	for _, cookie := range req.Cookies {
		if len(cookie.Value) > 0 {
			r.AddCookie(&cookie)
		}
	}
}

func (c *HttpClient) do(r *http.Request, fctx failure.Context) (string, error) {
	res, err := c.Client.Do(r)
	if err != nil {
		return "", failure.Translate(
			err,
			errors.ErrTransport,
			failure.Field(failure.Message("failed to send request")),
			fctx,
		)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, res.Body)
		return "", failure.New(
			errors.ErrTransport,
			failure.Field(failure.Message("unexpected status code")),
			failure.Context{
				"url":  r.URL.String(),
				"code": fmt.Sprintf("%d", res.StatusCode),
			},
		)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", failure.Translate(
			err,
			errors.ErrTransport,
			failure.Field(failure.Message("failed to read response body")),
			fctx,
		)
	}

	return string(body), nil
}
