package authenticating

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/seller-sync/internal/config"
	"github.com/vfg2006/seller-sync/internal/domain"
	"github.com/vfg2006/seller-sync/pkg/apiErrors"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

// Authenticator troca a chave de administração por um JWT e valida os tokens do trigger HTTP.
type Authenticator interface {
	IssueToken(adminKey string) (string, time.Time, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
}

type Service struct {
	cfg config.Auth
	now func() time.Time
}

// NewService cria uma nova instância do serviço de autenticação do gatilho de sync.
func NewService(cfg *config.Config) Authenticator {
	if cfg.Auth.AdminKeyHash == "" {
		logrus.Warn("auth: ADMIN_KEY_HASH not set, token issuing disabled")
	}
	return &Service{
		cfg: cfg.Auth,
		now: time.Now,
	}
}

func (s *Service) IssueToken(adminKey string) (string, time.Time, error) {
	if s.cfg.AdminKeyHash == "" {
		return "", time.Time{}, NewAuthError(ErrAuthDisabled, apiErrors.ErrAuthDisabled, "ADMIN_KEY_HASH não configurado")
	}
	if adminKey == "" {
		return "", time.Time{}, NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Chave de administração é obrigatória")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminKeyHash), []byte(adminKey)); err != nil {
		return "", time.Time{}, NewAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, "Chave incorreta")
	}

	expiresAt := s.now().Add(tokenTTL)
	token, err := generateJWT(s.cfg.Secret, s.now(), expiresAt)
	if err != nil {
		return "", time.Time{}, NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao gerar token de autenticação")
	}

	return token, expiresAt, nil
}

func generateJWT(secretKey string, issuedAt, expiresAt time.Time) (string, error) {
	claims := domain.Claims{
		Scope: domain.ScopeSyncAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin",
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secretKey))
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	}, jwt.WithTimeFunc(s.now))
	if errors.Is(err, jwt.ErrTokenExpired) {
		return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, "")
	}
	if err != nil {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid || claims.Scope != domain.ScopeSyncAdmin {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "escopo inválido")
	}
	return claims, nil
}
