package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/seller-sync/infrastructure/lock"
	"github.com/vfg2006/seller-sync/infrastructure/repository"
	"github.com/vfg2006/seller-sync/internal/config"
	"github.com/vfg2006/seller-sync/internal/domain"
	"github.com/vfg2006/seller-sync/internal/usecases/syncing"
)

// ErrSyncRunning indica que já existe uma execução em andamento, local ou em outra réplica.
var ErrSyncRunning = errors.New("sincronização já em andamento")

const historyTimeout = 10 * time.Second

// MarketplaceSyncConfig representa a configuração do agendador do sync de marketplace
type MarketplaceSyncConfig struct {
	CronSchedule string
	SyncEnabled  bool
	RunTimeout   time.Duration
}

// MarketplaceSyncService agenda e executa o sync completo das contas de seller.
// locker e runRepo são opcionais (nil desativa).
type MarketplaceSyncService struct {
	scheduler           *gocron.Scheduler
	config              MarketplaceSyncConfig
	syncer              syncing.Syncer
	locker              lock.Locker
	runRepo             repository.SyncRunRepository
	baseCtx             context.Context
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastRun             *domain.SyncRun
	lastError           string
}

// NewMarketplaceSyncService cria uma nova instância do agendador a partir da configuração do sync.
func NewMarketplaceSyncService(
	syncer syncing.Syncer,
	locker lock.Locker,
	runRepo repository.SyncRunRepository,
	appConfig *config.Config,
) *MarketplaceSyncService {
	syncConfig := MarketplaceSyncConfig{
		CronSchedule: appConfig.Sync.CronSchedule,
		SyncEnabled:  appConfig.Sync.Enabled,
		RunTimeout:   appConfig.Sync.RunTimeout,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"sync_enabled":  syncConfig.SyncEnabled,
		"run_timeout":   syncConfig.RunTimeout.String(),
		"distributed":   locker != nil,
		"history":       runRepo != nil,
	}).Info("scheduler: marketplace sync configuration loaded")

	return &MarketplaceSyncService{
		scheduler: gocron.NewScheduler(time.UTC),
		config:    syncConfig,
		syncer:    syncer,
		locker:    locker,
		runRepo:   runRepo,
		baseCtx:   context.Background(),
	}
}

// Start agenda o sync no cron configurado. Com o sync desabilitado só o gatilho manual funciona.
func (s *MarketplaceSyncService) Start(ctx context.Context) error {
	s.syncMutex.Lock()
	s.baseCtx = ctx
	s.syncMutex.Unlock()

	if !s.config.SyncEnabled {
		logrus.Info("scheduler: marketplace sync disabled by configuration")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("scheduler: starting marketplace sync scheduler")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if _, err := s.RunOnce(ctx); err != nil && !errors.Is(err, ErrSyncRunning) {
			logrus.WithError(err).Error("scheduler: scheduled sync failed")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de marketplace: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("scheduler: stopping marketplace sync scheduler")
		s.scheduler.Stop()
	}()

	return nil
}

// RunOnce executa um sync completo e bloqueia até o fim.
func (s *MarketplaceSyncService) RunOnce(ctx context.Context) (*domain.SyncRun, error) {
	if !s.begin() {
		logrus.Info("scheduler: sync already running, skipping")
		return nil, ErrSyncRunning
	}
	defer s.finish()

	if s.config.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.RunTimeout)
		defer cancel()
	}

	if s.locker != nil {
		release, err := s.locker.Acquire(ctx)
		if errors.Is(err, lock.ErrHeld) {
			logrus.Info("scheduler: sync lock held by another instance, skipping")
			return nil, ErrSyncRunning
		}
		if err != nil {
			s.record(nil, err)
			return nil, err
		}
		defer func() {
			if err := release(context.WithoutCancel(ctx)); err != nil {
				logrus.WithError(err).Warn("scheduler: failed to release sync lock")
			}
		}()
	}

	run, err := s.syncer.RunSync(ctx)
	s.record(run, err)
	s.saveHistory(ctx, run)

	if err != nil {
		return run, fmt.Errorf("erro ao executar sincronização: %w", err)
	}
	return run, nil
}

// TriggerManualSync dispara um sync em background. Devolve false quando já existe um em andamento.
func (s *MarketplaceSyncService) TriggerManualSync() bool {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("scheduler: sync already running, ignoring manual request")
		return false
	}
	ctx := s.baseCtx
	s.syncMutex.Unlock()

	logrus.Info("scheduler: starting manual marketplace sync")
	go func() {
		if _, err := s.RunOnce(ctx); err != nil && !errors.Is(err, ErrSyncRunning) {
			logrus.WithError(err).Error("scheduler: manual sync failed")
		}
	}()
	return true
}

// GetStatus retorna o status atual do agendador
func (s *MarketplaceSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	status := map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
	if s.lastError != "" {
		status["last_error"] = s.lastError
	}
	if s.lastRun != nil {
		status["last_run"] = map[string]any{
			"id":                 s.lastRun.ID,
			"status":             string(s.lastRun.Status()),
			"duration":           s.lastRun.Duration().String(),
			"accounts_processed": s.lastRun.AccountsProcessed,
			"accounts_skipped":   s.lastRun.AccountsSkipped,
			"inventory_written":  s.lastRun.InventoryWritten,
			"orders_written":     s.lastRun.OrdersWritten,
			"shipments_written":  s.lastRun.ShipmentsWritten,
			"failures":           len(s.lastRun.Failures),
		}
	}
	return status
}

// LatestRun devolve a última execução: a da memória ou, após um restart, a do histórico.
func (s *MarketplaceSyncService) LatestRun(ctx context.Context) (*domain.SyncRun, error) {
	s.syncMutex.Lock()
	run := s.lastRun
	s.syncMutex.Unlock()

	if run != nil || s.runRepo == nil {
		return run, nil
	}
	return s.runRepo.Latest(ctx)
}

func (s *MarketplaceSyncService) begin() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		return false
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	return true
}

func (s *MarketplaceSyncService) finish() {
	s.syncMutex.Lock()
	s.syncRunning = false
	s.syncMutex.Unlock()
}

func (s *MarketplaceSyncService) record(run *domain.SyncRun, err error) {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	s.lastError = ""
	if err != nil {
		s.lastError = err.Error()
	}
	if run != nil {
		s.lastRun = run
		s.lastSyncCompletedAt = run.FinishedAt
	}
}

// saveHistory grava a execução no Postgres; falhas aqui não afetam o resultado do sync.
func (s *MarketplaceSyncService) saveHistory(ctx context.Context, run *domain.SyncRun) {
	if s.runRepo == nil || run == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), historyTimeout)
	defer cancel()

	if err := s.runRepo.Save(ctx, run); err != nil {
		logrus.WithFields(logrus.Fields{
			"run_id": run.ID,
			"error":  err.Error(),
		}).Warn("scheduler: failed to save sync run history")
	}
}
