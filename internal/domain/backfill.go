package domain

import (
	"fmt"
	"time"
)

// BackfillState guarda até onde o histórico de pedidos de uma conta/marketplace já foi buscado.
// CompletedThrough cobre apenas janelas contíguas com sucesso desde a epoch; Complete indica
// que nenhuma janela ficou pendente.
type BackfillState struct {
	AccountID        string    `firestore:"account_id" json:"account_id"`
	Marketplace      string    `firestore:"marketplace" json:"marketplace"`
	CompletedThrough time.Time `firestore:"backfill_completed_through" json:"backfill_completed_through"`
	Complete         bool      `firestore:"backfill_complete" json:"backfill_complete"`
}

func (b *BackfillState) DocumentID() string {
	return fmt.Sprintf("%s_%s", b.AccountID, b.Marketplace)
}

func (b *BackfillState) Fields() map[string]any {
	return map[string]any{
		"account_id":                 b.AccountID,
		"marketplace":                b.Marketplace,
		"backfill_completed_through": b.CompletedThrough.UTC(),
		"backfill_complete":          b.Complete,
	}
}

// ResumeFrom devolve o início da próxima janela a buscar, nunca antes da epoch.
func (b *BackfillState) ResumeFrom(epoch time.Time) time.Time {
	if b == nil || b.CompletedThrough.Before(epoch) {
		return epoch
	}
	return b.CompletedThrough
}
