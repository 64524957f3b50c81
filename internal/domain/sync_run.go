package domain

import "time"

type SyncRunStatus string

const (
	SyncRunSuccess SyncRunStatus = "success"
	SyncRunPartial SyncRunStatus = "partial"
	SyncRunFailed  SyncRunStatus = "failed"
)

// SyncFailure registra uma falha isolada (conta, marketplace e recurso) que não interrompeu a execução.
type SyncFailure struct {
	AccountID   string `json:"account_id"`
	Marketplace string `json:"marketplace,omitempty"`
	Resource    string `json:"resource"`
	Error       string `json:"error"`
}

type SyncRun struct {
	ID                string        `json:"id"`
	StartedAt         time.Time     `json:"started_at"`
	FinishedAt        time.Time     `json:"finished_at"`
	AccountsProcessed int           `json:"accounts_processed"`
	AccountsSkipped   int           `json:"accounts_skipped"`
	InventoryWritten  int           `json:"inventory_written"`
	OrdersWritten     int           `json:"orders_written"`
	ShipmentsWritten  int           `json:"shipments_written"`
	Failures          []SyncFailure `json:"failures"`
}

func (r *SyncRun) AddFailure(accountID, marketplace, resource string, err error) {
	r.Failures = append(r.Failures, SyncFailure{
		AccountID:   accountID,
		Marketplace: marketplace,
		Resource:    resource,
		Error:       err.Error(),
	})
}

func (r *SyncRun) Status() SyncRunStatus {
	switch {
	case len(r.Failures) == 0:
		return SyncRunSuccess
	case r.AccountsProcessed > 0:
		return SyncRunPartial
	default:
		return SyncRunFailed
	}
}

func (r *SyncRun) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
