package authenticating

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/seller-sync/internal/config"
	"github.com/vfg2006/seller-sync/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T, adminKey string) *Service {
	t.Helper()
	hash := ""
	if adminKey != "" {
		raw, err := bcrypt.GenerateFromPassword([]byte(adminKey), bcrypt.MinCost)
		require.NoError(t, err)
		hash = string(raw)
	}

	return NewService(&config.Config{Auth: config.Auth{
		Secret:       "segredo-de-teste",
		AdminKeyHash: hash,
	}}).(*Service)
}

func TestService_IssueToken(t *testing.T) {
	tests := []struct {
		name      string
		adminKey  string
		attempt   string
		wantErr   error
		wantToken bool
	}{
		{name: "Chave correta gera token", adminKey: "chave-admin", attempt: "chave-admin", wantToken: true},
		{name: "Chave incorreta", adminKey: "chave-admin", attempt: "outra", wantErr: ErrInvalidCredentials},
		{name: "Chave vazia", adminKey: "chave-admin", attempt: "", wantErr: ErrMissingRequiredData},
		{name: "Sem hash configurado", adminKey: "", attempt: "qualquer", wantErr: ErrAuthDisabled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newTestService(t, tt.adminKey)

			token, expiresAt, err := service.IssueToken(tt.attempt)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, token)
			assert.WithinDuration(t, time.Now().Add(tokenTTL), expiresAt, time.Minute)

			claims, err := service.ValidateToken(token)
			require.NoError(t, err)
			assert.Equal(t, domain.ScopeSyncAdmin, claims.Scope)
			assert.Equal(t, "admin", claims.Subject)
		})
	}
}

func TestService_ValidateToken(t *testing.T) {
	service := newTestService(t, "chave-admin")

	t.Run("Token expirado", func(t *testing.T) {
		issued := time.Now().Add(-48 * time.Hour)
		token, err := generateJWT("segredo-de-teste", issued, issued.Add(tokenTTL))
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("Assinado com outro segredo", func(t *testing.T) {
		token, err := generateJWT("outro-segredo", time.Now(), time.Now().Add(time.Hour))
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Token malformado", func(t *testing.T) {
		_, err := service.ValidateToken("nao.e.jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
