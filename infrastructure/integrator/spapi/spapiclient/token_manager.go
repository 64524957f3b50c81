package spapiclient

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

const (
	tokenExpiryMargin = 5 * time.Minute
	tokenStaleAfter   = 45 * time.Minute
	defaultTokenTTL   = 3600 * time.Second
)

type Credentials struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
}

type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// TokenRefresher é implementado por provedores capazes de forçar a renovação após 401/403.
type TokenRefresher interface {
	Refresh(ctx context.Context) (string, error)
}

// TokenManager troca o refresh token da LWA por access tokens de curta duração e os mantém em cache.
type TokenManager struct {
	mu           sync.Mutex
	oauth        *oauth2.Config
	refreshToken string
	httpClient   *http.Client
	now          func() time.Time

	accessToken string
	expiresAt   time.Time
	obtainedAt  time.Time
}

// NewTokenManager cria o gerenciador de tokens LWA da conta. Sem httpClient usa um cliente com timeout de 30s.
func NewTokenManager(creds Credentials, tokenURL string, httpClient *http.Client) *TokenManager {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &TokenManager{
		oauth: &oauth2.Config{
			ClientID:     creds.ClientID,
			ClientSecret: creds.ClientSecret,
			Endpoint: oauth2.Endpoint{
				TokenURL:  tokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		refreshToken: creds.RefreshToken,
		httpClient:   httpClient,
		now:          time.Now,
	}
}

// Token devolve o token em cache enquanto faltar mais de 5 minutos para expirar
// e ele tiver menos de 45 minutos de uso; caso contrário faz uma nova troca.
func (tm *TokenManager) Token(ctx context.Context) (string, error) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if tm.validLocked() {
		return tm.accessToken, nil
	}

	return tm.exchangeLocked(ctx)
}

// Refresh força a troca do refresh token, ignorando o cache.
func (tm *TokenManager) Refresh(ctx context.Context) (string, error) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	return tm.exchangeLocked(ctx)
}

// Invalidate descarta o token em cache; a próxima chamada faz nova troca.
func (tm *TokenManager) Invalidate() {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	tm.accessToken = ""
	tm.expiresAt = time.Time{}
}

func (tm *TokenManager) ExpiresAt() time.Time {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	return tm.expiresAt
}

func (tm *TokenManager) validLocked() bool {
	if tm.accessToken == "" {
		return false
	}

	now := tm.now()
	if !now.Before(tm.expiresAt.Add(-tokenExpiryMargin)) {
		return false
	}

	return now.Sub(tm.obtainedAt) < tokenStaleAfter
}

func (tm *TokenManager) exchangeLocked(ctx context.Context) (string, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, tm.httpClient)

	source := tm.oauth.TokenSource(ctx, &oauth2.Token{RefreshToken: tm.refreshToken})
	tok, err := source.Token()
	if err != nil {
		authErr := &AuthError{Err: err}

		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
			authErr.StatusCode = retrieveErr.Response.StatusCode
		}

		return "", authErr
	}

	if tok.AccessToken == "" {
		return "", &AuthError{Err: errors.New("empty access token in exchange response")}
	}

	now := tm.now()
	tm.accessToken = tok.AccessToken
	tm.obtainedAt = now
	tm.expiresAt = now.Add(tokenTTL(tok))

	logrus.WithFields(logrus.Fields{
		"expires_at": tm.expiresAt.Format(time.RFC3339),
	}).Debug("spapi: access token refreshed")

	return tm.accessToken, nil
}

// tokenTTL lê o expires_in bruto da resposta; sem ele o token vale uma hora.
func tokenTTL(tok *oauth2.Token) time.Duration {
	switch v := tok.Extra("expires_in").(type) {
	case float64:
		if v > 0 {
			return time.Duration(v) * time.Second
		}
	case string:
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}

	return defaultTokenTTL
}
