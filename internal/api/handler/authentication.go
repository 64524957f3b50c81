package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/seller-sync/internal/usecases/authenticating"
	"github.com/vfg2006/seller-sync/pkg/apiErrors"
	"github.com/vfg2006/seller-sync/pkg/utils"
)

type TokenRequest struct {
	AdminKey string `json:"admin_key"`
}

type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IssueToken troca a chave de administração por um token de acesso ao trigger.
func IssueToken(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TokenRequest
		if err := utils.DecodeJSON(r, &req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		token, expiresAt, err := service.IssueToken(req.AdminKey)
		if err != nil {
			handleAuthError(w, err)
			return
		}

		utils.WriteJSON(w, http.StatusOK, TokenResponse{Token: token, ExpiresAt: expiresAt})
	}
}

func handleAuthError(w http.ResponseWriter, err error) {
	var authErr *authenticating.AuthError
	if errors.As(err, &authErr) {
		if !authenticating.IsCredentialsError(err) {
			logrus.WithError(err).Warn("auth: token request failed")
		}
		apiErrors.WriteError(w, authErr.Code, authErr.Err.Error(), nil)
		return
	}

	logrus.WithError(err).Error("auth: unexpected error issuing token")
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno no servidor", nil)
}
