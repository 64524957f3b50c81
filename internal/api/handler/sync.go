package handler

import (
	"context"
	"errors"
	"net/http"

	pkgerrors "github.com/pkg/errors"
	"github.com/vfg2006/seller-sync/internal/domain"
	"github.com/vfg2006/seller-sync/internal/scheduler"
	"github.com/vfg2006/seller-sync/pkg/apiErrors"
	"github.com/vfg2006/seller-sync/pkg/log"
	"github.com/vfg2006/seller-sync/pkg/utils"
)

// SyncTrigger é a parte do agendador exposta por HTTP.
type SyncTrigger interface {
	RunOnce(ctx context.Context) (*domain.SyncRun, error)
	TriggerManualSync() bool
	GetStatus() map[string]any
	LatestRun(ctx context.Context) (*domain.SyncRun, error)
}

type SyncRunResponse struct {
	Status string          `json:"status"`
	Run    *domain.SyncRun `json:"run,omitempty"`
}

// RunSync dispara o sync. Com ?wait=true executa na própria requisição e devolve o resumo;
// sem ele responde 202 e o sync segue em background.
func RunSync(trigger SyncTrigger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("wait") != "true" {
			if !trigger.TriggerManualSync() {
				apiErrors.WriteError(w, apiErrors.ErrSyncRunning, scheduler.ErrSyncRunning.Error(), nil)
				return
			}
			utils.WriteJSON(w, http.StatusAccepted, SyncRunResponse{Status: "started"})
			return
		}

		run, err := trigger.RunOnce(r.Context())
		switch {
		case errors.Is(err, scheduler.ErrSyncRunning):
			apiErrors.WriteError(w, apiErrors.ErrSyncRunning, err.Error(), nil)
		case err != nil:
			log.ForContext(r.Context()).WithError(pkgerrors.Wrap(err, "sync trigger")).Error("http: sync run failed")
			apiErrors.WriteError(w, apiErrors.ErrSyncFailed, err.Error(), run)
		default:
			utils.WriteJSON(w, http.StatusOK, SyncRunResponse{Status: string(run.Status()), Run: run})
		}
	}
}

// SyncStatus devolve o estado do agendador e a última execução conhecida.
func SyncStatus(trigger SyncTrigger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := trigger.GetStatus()

		latest, err := trigger.LatestRun(r.Context())
		if err != nil {
			log.ForContext(r.Context()).WithError(pkgerrors.Wrap(err, "sync history")).Warn("http: failed to load latest sync run")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar histórico do sync", nil)
			return
		}
		if latest != nil {
			status["latest_run"] = latest
		}

		utils.WriteJSON(w, http.StatusOK, status)
	}
}
