package repository

import (
	"context"
	"fmt"

	"github.com/vfg2006/seller-sync/infrastructure/database/documentstore"
	"github.com/vfg2006/seller-sync/internal/domain"
)

// SyncStateRepository persiste o progresso do backfill de pedidos por conta e marketplace.
type SyncStateRepository interface {
	BackfillState(ctx context.Context, accountID, marketplace string) (*domain.BackfillState, error)
	SaveBackfillState(ctx context.Context, state *domain.BackfillState) error
}

type syncStateRepository struct {
	store documentstore.Store
}

// NewSyncStateRepository cria o repositório de estado do sync sobre a coleção sync_state.
func NewSyncStateRepository(store documentstore.Store) SyncStateRepository {
	return &syncStateRepository{store: store}
}

// BackfillState devolve nil quando o backfill da conta/marketplace nunca foi iniciado.
func (r *syncStateRepository) BackfillState(ctx context.Context, accountID, marketplace string) (*domain.BackfillState, error) {
	docs, err := r.store.Find(ctx, documentstore.CollectionSyncState,
		documentstore.Eq("account_id", accountID),
		documentstore.Eq("marketplace", marketplace),
	)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar estado do backfill: %w", err)
	}
	if len(docs) == 0 {
		return nil, nil
	}

	state := &domain.BackfillState{}
	if err := decodeDocument(docs[0].Fields, state); err != nil {
		return nil, fmt.Errorf("erro ao decodificar estado do backfill: %w", err)
	}
	return state, nil
}

func (r *syncStateRepository) SaveBackfillState(ctx context.Context, state *domain.BackfillState) error {
	err := r.store.CommitBatch(ctx, documentstore.CollectionSyncState, []documentstore.Document{{
		ID:     state.DocumentID(),
		Fields: state.Fields(),
	}})
	if err != nil {
		return fmt.Errorf("erro ao salvar estado do backfill de %s: %w", state.DocumentID(), err)
	}
	return nil
}
