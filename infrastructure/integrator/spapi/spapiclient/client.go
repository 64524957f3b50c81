package spapiclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/time/rate"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// EndpointClass agrupa endpoints que compartilham o mesmo ritmo de chamadas.
type EndpointClass int

const (
	ClassStandard EndpointClass = iota
	ClassItemDetail
)

type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
	Class  EndpointClass
}

type Response struct {
	StatusCode int
	Body       []byte
}

// Decode interpreta o corpo JSON da resposta em v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("erro ao decodificar resposta: %w", err)
	}
	return nil
}

type Options struct {
	BaseURL    string
	HTTPClient *http.Client
	Signer     *Signer
	Tokens     TokenProvider
	Pacing     map[EndpointClass]time.Duration
	Retry      RetryPolicy
	Sleep      SleepFunc
}

// Client executa chamadas à SP-API com ritmo por classe de endpoint, retry em 429
// e uma renovação de token em 401/403.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	signer     *Signer
	tokens     TokenProvider
	limiters   map[EndpointClass]*rate.Limiter
	retry      RetryPolicy
	sleep      SleepFunc
}

// NewClient cria o cliente SP-API com um limitador por classe de endpoint e a política de retry das opções.
func NewClient(opts Options) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("endpoint SP-API inválido: %w", err)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	limiters := map[EndpointClass]*rate.Limiter{
		ClassStandard:   rate.NewLimiter(rate.Inf, 1),
		ClassItemDetail: rate.NewLimiter(rate.Inf, 1),
	}
	for class, interval := range opts.Pacing {
		if interval > 0 {
			limiters[class] = rate.NewLimiter(rate.Every(interval), 1)
		}
	}

	retry := opts.Retry
	if retry.Retryable == nil {
		retry.Retryable = IsRetryable
	}

	return &Client{
		baseURL:    base,
		httpClient: httpClient,
		signer:     opts.Signer,
		tokens:     opts.Tokens,
		limiters:   limiters,
		retry:      retry,
		sleep:      opts.Sleep,
	}, nil
}

// Do envia a requisição e devolve o corpo de uma resposta 2xx.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	resp, err := c.execute(ctx, req)
	if err == nil || !IsUnauthorized(err) {
		return resp, err
	}

	refresher, ok := c.tokens.(TokenRefresher)
	if !ok {
		return nil, err
	}

	if _, refreshErr := refresher.Refresh(ctx); refreshErr != nil {
		return nil, refreshErr
	}

	return c.execute(ctx, req)
}

// Download busca o conteúdo bruto de uma URL pré-assinada de documento, sem headers de autenticação.
func (c *Client) Download(ctx context.Context, rawURL string) ([]byte, error) {
	resp, err := ExecuteWithRetry(ctx, c.retry, c.sleep, func(ctx context.Context) (*Response, error) {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, fmt.Errorf("erro ao criar requisição de download: %w", err)
		}
		return c.send(httpReq, http.MethodGet, "document")
	})
	if err != nil {
		return nil, err
	}

	return resp.Body, nil
}

func (c *Client) execute(ctx context.Context, req Request) (*Response, error) {
	var body []byte
	if req.Body != nil {
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("erro ao codificar corpo da requisição: %w", err)
		}
		body = encoded
	}

	limiter := c.limiters[req.Class]
	if limiter == nil {
		limiter = c.limiters[ClassStandard]
	}

	return ExecuteWithRetry(ctx, c.retry, c.sleep, func(ctx context.Context) (*Response, error) {
		if err := limiter.Wait(ctx); err != nil {
			return nil, err
		}

		httpReq, err := c.newRequest(ctx, req, body)
		if err != nil {
			return nil, err
		}

		return c.send(httpReq, req.Method, req.Path)
	})
}

func (c *Client) newRequest(ctx context.Context, req Request, body []byte) (*http.Request, error) {
	u := *c.baseURL
	u.Path = c.baseURL.Path + req.Path
	if len(req.Query) > 0 {
		u.RawQuery = req.Query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar requisição: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	token := ""
	if c.tokens != nil {
		token, err = c.tokens.Token(ctx)
		if err != nil {
			return nil, err
		}
	}
	c.signer.Sign(httpReq, token, body)

	return httpReq, nil
}

func (c *Client) send(httpReq *http.Request, method, path string) (*Response, error) {
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctxErr := httpReq.Context().Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &TransientNetworkError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransientNetworkError{Method: method, Path: path, Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &ThrottleError{Method: method, Path: path, Attempts: 1}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &HTTPStatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       string(payload),
		}
	}

	return &Response{StatusCode: resp.StatusCode, Body: payload}, nil
}

// StatusCode devolve o status de um HTTPStatusError, ou zero para outros erros.
func StatusCode(err error) int {
	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode
	}
	return 0
}
