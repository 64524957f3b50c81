package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/seller-sync/infrastructure/database/postgres"
	"github.com/vfg2006/seller-sync/internal/domain"
)

const (
	syncRunsTable = "sync_runs"

	createSyncRunsTable = `CREATE TABLE IF NOT EXISTS sync_runs (
	id                 TEXT PRIMARY KEY,
	status             TEXT NOT NULL,
	started_at         TIMESTAMPTZ NOT NULL,
	finished_at        TIMESTAMPTZ,
	accounts_processed INTEGER NOT NULL DEFAULT 0,
	accounts_skipped   INTEGER NOT NULL DEFAULT 0,
	inventory_written  INTEGER NOT NULL DEFAULT 0,
	orders_written     INTEGER NOT NULL DEFAULT 0,
	shipments_written  INTEGER NOT NULL DEFAULT 0,
	failed_accounts    TEXT[] NOT NULL DEFAULT '{}',
	failures           JSONB NOT NULL DEFAULT '[]'
)`
)

// SyncRunRepository guarda o histórico das execuções no Postgres.
type SyncRunRepository interface {
	EnsureSchema(ctx context.Context) error
	Save(ctx context.Context, run *domain.SyncRun) error
	Latest(ctx context.Context) (*domain.SyncRun, error)
}

type syncRunRepository struct {
	conn postgres.Conn
}

// NewSyncRunRepository cria o repositório do histórico de execuções no Postgres.
func NewSyncRunRepository(conn postgres.Conn) SyncRunRepository {
	return &syncRunRepository{
		conn: conn,
	}
}

func (r *syncRunRepository) EnsureSchema(ctx context.Context) error {
	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, createSyncRunsTable); err != nil {
			return fmt.Errorf("erro ao criar tabela %s: %w", syncRunsTable, err)
		}
		return nil
	})
}

func (r *syncRunRepository) Save(ctx context.Context, run *domain.SyncRun) error {
	failures, err := json.Marshal(run.Failures)
	if err != nil {
		return fmt.Errorf("erro ao serializar falhas: %w", err)
	}

	var finishedAt *time.Time
	if !run.FinishedAt.IsZero() {
		finishedAt = &run.FinishedAt
	}

	query, args, err := squirrel.
		Insert(syncRunsTable).
		Columns(
			"id", "status", "started_at", "finished_at",
			"accounts_processed", "accounts_skipped",
			"inventory_written", "orders_written", "shipments_written",
			"failed_accounts", "failures",
		).
		Values(
			run.ID, string(run.Status()), run.StartedAt, finishedAt,
			run.AccountsProcessed, run.AccountsSkipped,
			run.InventoryWritten, run.OrdersWritten, run.ShipmentsWritten,
			pq.Array(failedAccounts(run)), string(failures),
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			finished_at = EXCLUDED.finished_at,
			accounts_processed = EXCLUDED.accounts_processed,
			accounts_skipped = EXCLUDED.accounts_skipped,
			inventory_written = EXCLUDED.inventory_written,
			orders_written = EXCLUDED.orders_written,
			shipments_written = EXCLUDED.shipments_written,
			failed_accounts = EXCLUDED.failed_accounts,
			failures = EXCLUDED.failures`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao salvar execução %s: %w", run.ID, err)
	}

	return nil
}

func (r *syncRunRepository) Latest(ctx context.Context) (*domain.SyncRun, error) {
	query, args, err := squirrel.
		Select(
			"id", "started_at", "finished_at",
			"accounts_processed", "accounts_skipped",
			"inventory_written", "orders_written", "shipments_written",
			"failures",
		).
		From(syncRunsTable).
		OrderBy("started_at DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var (
		run        domain.SyncRun
		finishedAt sql.NullTime
		failures   []byte
	)

	err = r.conn.QueryRowContext(ctx, query, args...).Scan(
		&run.ID, &run.StartedAt, &finishedAt,
		&run.AccountsProcessed, &run.AccountsSkipped,
		&run.InventoryWritten, &run.OrdersWritten, &run.ShipmentsWritten,
		&failures,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar última execução: %w", err)
	}

	if finishedAt.Valid {
		run.FinishedAt = finishedAt.Time
	}
	if err := json.Unmarshal(failures, &run.Failures); err != nil {
		return nil, fmt.Errorf("erro ao ler falhas da execução %s: %w", run.ID, err)
	}

	return &run, nil
}

func failedAccounts(run *domain.SyncRun) []string {
	seen := map[string]struct{}{}
	var ids []string
	for _, f := range run.Failures {
		if _, ok := seen[f.AccountID]; ok {
			continue
		}
		seen[f.AccountID] = struct{}{}
		ids = append(ids, f.AccountID)
	}
	return ids
}
