package session

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/appvocai/acquire/pkg/acqrequest"
	"github.com/appvocai/acquire/pkg/acqresponse"
)

func newHTTPClient(cfg Config) (*http.Client, error) {
	transport := &http.Transport{}
	switch {
	case cfg.ProxyURL != "":
		u, err := url.Parse(cfg.ProxyURL)
		if err != nil {
			return nil, fmt.Errorf("session: parse proxy url: %w", err)
		}
		transport.Proxy = http.ProxyURL(u)
	case cfg.TrustEnv:
		transport.Proxy = http.ProxyFromEnvironment
	}
	return &http.Client{Timeout: cfg.Timeout, Transport: transport}, nil
}

func buildURL(base string, params map[string]string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("session: parse base url: %w", err)
	}
	q := u.Query()
	for k, v := range params {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// sleepCtx sleeps for d or returns ctx.Err() if ctx is done first. A
// non-positive d returns immediately.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// doRequest issues one HTTP GET and parses the result into a Response.
// Returns (nil, status, err) on any failure so the caller can classify the
// error via pkg/taxonomy; status is 0 when the request never completed.
func (s *AsyncSession) doRequest(ctx context.Context, req acqrequest.Request, attempt int) (*acqresponse.Response, int, error) {
	// The request's page window overrides the paging keys of the shared
	// Params (offset for search, startIndex/endIndex for reviews).
	params := make(map[string]string, len(req.Params))
	for k, v := range req.Params {
		params[k] = v
	}
	if _, ok := params["offset"]; ok {
		params["offset"] = strconv.Itoa(req.StartIndex)
	}
	if _, ok := params["startIndex"]; ok {
		params["startIndex"] = strconv.Itoa(req.StartIndex)
		params["endIndex"] = strconv.Itoa(req.EndIndex)
	}
	u, err := buildURL(req.BaseURL, params)
	if err != nil {
		return nil, 0, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("session: new request: %w", err)
	}
	headers := req.Headers
	if headers == nil {
		headers = s.headers.Next()
	}
	httpReq.Header = headers

	dtSent := time.Now()
	httpResp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, 0, err
	}
	defer httpResp.Body.Close()

	status := httpResp.StatusCode
	if s.cfg.RaiseForStatus && (status < 200 || status >= 300) {
		return nil, status, fmt.Errorf("session: unexpected status %d", status)
	}

	var content any
	if err := json.NewDecoder(httpResp.Body).Decode(&content); err != nil {
		return nil, status, fmt.Errorf("session: decode body: %w", err)
	}
	dtRecv := time.Now()

	resp := &acqresponse.Response{
		Headers: acqresponse.Headers{
			Server:           httpResp.Header.Get("Server"),
			ServerDatetime:   httpResp.Header.Get("Date"),
			Connection:       httpResp.Header.Get("Connection"),
			Status:           status,
			Size:             httpResp.ContentLength,
			ResponseDatetime: dtRecv,
		},
		Content: content,
		DtSent:  dtSent,
		DtRecv:  dtRecv,
		Retries: attempt,
	}
	return resp, status, nil
}
