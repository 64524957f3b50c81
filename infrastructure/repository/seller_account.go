package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/seller-sync/infrastructure/database/documentstore"
	"github.com/vfg2006/seller-sync/internal/domain"
)

type SellerAccountRepository interface {
	ListAccounts(ctx context.Context) ([]*domain.Account, error)
	MarkSynced(ctx context.Context, accountID string, syncedAt time.Time) error
}

type sellerAccountRepository struct {
	store    documentstore.Store
	validate *validator.Validate
}

// NewSellerAccountRepository cria uma nova instância do repositório de contas de seller.
func NewSellerAccountRepository(store documentstore.Store) SellerAccountRepository {
	return &sellerAccountRepository{
		store:    store,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// ListAccounts devolve as contas salvas em seller_accounts. Contas sem credenciais completas são ignoradas.
func (r *sellerAccountRepository) ListAccounts(ctx context.Context) ([]*domain.Account, error) {
	docs, err := r.store.Find(ctx, documentstore.CollectionSellerAccounts)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar contas: %w", err)
	}

	accounts := make([]*domain.Account, 0, len(docs))
	for _, doc := range docs {
		logger := logrus.WithField("account_id", doc.ID)

		acc := &domain.Account{}
		if err := decodeDocument(doc.Fields, acc); err != nil {
			logger.WithError(err).Warn("sync: skipping undecodable seller account")
			continue
		}
		acc.ID = doc.ID

		for i, code := range acc.Marketplaces {
			acc.Marketplaces[i] = strings.ToUpper(strings.TrimSpace(code))
		}
		if len(acc.Marketplaces) == 0 {
			acc.Marketplaces = []string{domain.DefaultAccountMarketplace}
		}

		if err := r.validate.Struct(acc); err != nil {
			logger.WithError(err).Warn("sync: skipping seller account with incomplete credentials")
			continue
		}

		accounts = append(accounts, acc)
	}

	return accounts, nil
}

func (r *sellerAccountRepository) MarkSynced(ctx context.Context, accountID string, syncedAt time.Time) error {
	err := r.store.CommitBatch(ctx, documentstore.CollectionSellerAccounts, []documentstore.Document{{
		ID:     accountID,
		Fields: map[string]any{"last_synced_at": syncedAt.UTC()},
	}})
	if err != nil {
		return fmt.Errorf("erro ao marcar conta %s como sincronizada: %w", accountID, err)
	}

	return nil
}
