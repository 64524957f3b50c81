package spapiclient

import (
	"errors"
	"fmt"
	"net/http"
)

// AuthError indica falha na troca do refresh token. É fatal apenas para a conta afetada.
type AuthError struct {
	StatusCode int
	Err        error
}

func (e *AuthError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("spapi: credential exchange failed with status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("spapi: credential exchange failed: %v", e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// ThrottleError é devolvido quando o 429 persiste depois de todas as tentativas.
type ThrottleError struct {
	Method   string
	Path     string
	Attempts int
}

func (e *ThrottleError) Error() string {
	return fmt.Sprintf("spapi: %s %s throttled after %d attempts", e.Method, e.Path, e.Attempts)
}

// TransientNetworkError cobre falhas de transporte (conexão, timeout) que podem ser repetidas.
type TransientNetworkError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransientNetworkError) Error() string {
	return fmt.Sprintf("spapi: %s %s network failure: %v", e.Method, e.Path, e.Err)
}

func (e *TransientNetworkError) Unwrap() error {
	return e.Err
}

// HTTPStatusError representa qualquer status fora de 2xx que não é repetido.
type HTTPStatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *HTTPStatusError) Error() string {
	body := e.Body
	if len(body) > 300 {
		body = body[:300] + "..."
	}
	return fmt.Sprintf("spapi: %s %s returned %d: %s", e.Method, e.Path, e.StatusCode, body)
}

func (e *HTTPStatusError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsAuthError indica falha na troca do refresh token por um access token.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// IsUnauthorized indica um 401 ou 403 devolvido pela própria SP-API.
func IsUnauthorized(err error) bool {
	var statusErr *HTTPStatusError
	return errors.As(err, &statusErr) && statusErr.Unauthorized()
}

// IsRetryable é o predicado padrão do executor: 429 e falhas de rede.
func IsRetryable(err error) bool {
	var throttle *ThrottleError
	var network *TransientNetworkError
	return errors.As(err, &throttle) || errors.As(err, &network)
}
