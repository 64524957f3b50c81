package syncing

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/seller-sync/infrastructure/integrator/spapi"
	"github.com/vfg2006/seller-sync/infrastructure/repository"
	"github.com/vfg2006/seller-sync/internal/config"
	"github.com/vfg2006/seller-sync/internal/domain"
	"github.com/vfg2006/seller-sync/internal/usecases/reconciling"
	"github.com/vfg2006/seller-sync/pkg/log"
	"github.com/vfg2006/seller-sync/pkg/utils"
)

type Syncer interface {
	RunSync(ctx context.Context) (*domain.SyncRun, error)
}

type Service struct {
	cfg           config.Sync
	defaultAcc    config.DefaultAccount
	integrator    spapi.SPAPIIntegrator
	accountRepo   repository.SellerAccountRepository
	inventoryRepo repository.InventoryRepository
	orderRepo     repository.OrderRepository
	shipmentRepo  repository.ShipmentRepository
	stateRepo     repository.SyncStateRepository
	merger        reconciling.Merger
	now           func() time.Time
}

// NewService cria uma nova instância do serviço de sincronização de marketplace.
func NewService(
	cfg *config.Config,
	integrator spapi.SPAPIIntegrator,
	accountRepo repository.SellerAccountRepository,
	inventoryRepo repository.InventoryRepository,
	orderRepo repository.OrderRepository,
	shipmentRepo repository.ShipmentRepository,
	stateRepo repository.SyncStateRepository,
	merger reconciling.Merger,
) *Service {
	return &Service{
		cfg:           cfg.Sync,
		defaultAcc:    cfg.DefaultAccount,
		integrator:    integrator,
		accountRepo:   accountRepo,
		inventoryRepo: inventoryRepo,
		orderRepo:     orderRepo,
		shipmentRepo:  shipmentRepo,
		stateRepo:     stateRepo,
		merger:        merger,
		now:           time.Now,
	}
}

// WithClock troca o relógio usado para janelas de busca e carimbos da execução.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// RunSync processa a conta padrão (quando configurada) e depois as contas salvas.
// Falhas de uma conta ou recurso ficam registradas no SyncRun e não interrompem a execução;
// só retorna erro quando nenhuma conta pôde ser carregada.
func (s *Service) RunSync(ctx context.Context) (*domain.SyncRun, error) {
	runID, err := utils.GenerateID(12)
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar id da execução: %w", err)
	}

	ctx = log.WithRunID(ctx, runID)
	logger := log.ForContext(ctx)

	run := &domain.SyncRun{ID: runID, StartedAt: s.now().UTC()}
	logger.Info("sync: run started")

	accounts, err := s.loadAccounts(ctx, run)
	if err != nil {
		run.FinishedAt = s.now().UTC()
		logger.WithError(err).Error("sync: run aborted")
		return run, err
	}

	for _, acc := range accounts {
		if ctx.Err() != nil {
			run.AddFailure(acc.ID, "", ResourceAccounts, ctx.Err())
			run.AccountsSkipped++
			continue
		}
		s.syncAccount(ctx, run, acc)
	}

	run.FinishedAt = s.now().UTC()
	logger.WithFields(logrus.Fields{
		"status":             run.Status(),
		"duration":           run.Duration().String(),
		"accounts_processed": run.AccountsProcessed,
		"accounts_skipped":   run.AccountsSkipped,
		"inventory_written":  run.InventoryWritten,
		"orders_written":     run.OrdersWritten,
		"shipments_written":  run.ShipmentsWritten,
		"failures":           len(run.Failures),
	}).Info("sync: run finished")

	for _, f := range run.Failures {
		logger.WithFields(logrus.Fields{
			"account_id":  f.AccountID,
			"marketplace": f.Marketplace,
			"resource":    f.Resource,
			"error":       f.Error,
		}).Warn("sync: failure summary")
	}

	return run, nil
}

func (s *Service) loadAccounts(ctx context.Context, run *domain.SyncRun) ([]*domain.Account, error) {
	var accounts []*domain.Account
	if s.defaultAcc.Configured() {
		accounts = append(accounts, s.defaultAccount())
	}

	stored, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		run.AddFailure("", "", ResourceAccounts, err)
		if len(accounts) == 0 {
			return nil, fmt.Errorf("%w: %v", ErrNoAccounts, err)
		}
		log.ForContext(ctx).WithError(err).Warn("sync: stored accounts unavailable, continuing with default account")
		return accounts, nil
	}

	for _, acc := range stored {
		if acc.ID == domain.DefaultAccountID {
			continue
		}
		accounts = append(accounts, acc)
	}

	if len(accounts) == 0 {
		log.ForContext(ctx).Warn("sync: no accounts to process")
	}
	return accounts, nil
}

func (s *Service) defaultAccount() *domain.Account {
	marketplaces := s.defaultAcc.Marketplaces
	if len(marketplaces) == 0 {
		marketplaces = []string{domain.DefaultAccountMarketplace}
	}

	return &domain.Account{
		ID:           domain.DefaultAccountID,
		Name:         "Default Account",
		ClientID:     s.defaultAcc.ClientID,
		ClientSecret: s.defaultAcc.ClientSecret,
		RefreshToken: s.defaultAcc.RefreshToken,
		Marketplaces: marketplaces,
	}
}

func (s *Service) syncAccount(ctx context.Context, run *domain.SyncRun, acc *domain.Account) {
	logger := log.ForContext(ctx).WithFields(logrus.Fields{
		"account_id":   acc.ID,
		"account_name": acc.DisplayName(),
	})

	conn, err := s.integrator.Connect(ctx, acc)
	if err != nil {
		logger.WithError(err).Error("sync: account authentication failed, skipping")
		run.AddFailure(acc.ID, "", ResourceAuth, err)
		run.AccountsSkipped++
		return
	}

	failuresBefore := len(run.Failures)
	for _, code := range acc.Marketplaces {
		mp, ok := domain.LookupMarketplace(code)
		if !ok {
			logger.WithField("marketplace", code).Warn("sync: unknown marketplace code, skipping")
			continue
		}
		if ctx.Err() != nil {
			run.AddFailure(acc.ID, mp.Code, ResourceAccounts, ctx.Err())
			break
		}
		s.syncMarketplace(ctx, run, acc, conn, mp)
	}
	run.AccountsProcessed++

	if len(run.Failures) > failuresBefore || acc.ID == domain.DefaultAccountID {
		return
	}

	if err := s.accountRepo.MarkSynced(ctx, acc.ID, s.now()); err != nil {
		logger.WithError(err).Warn("sync: failed to record last sync time")
		run.AddFailure(acc.ID, "", ResourceMarkSynced, err)
	}
}

func (s *Service) syncMarketplace(ctx context.Context, run *domain.SyncRun, acc *domain.Account, conn spapi.Connector, mp domain.Marketplace) {
	logger := log.ForContext(ctx).WithFields(logrus.Fields{
		"account_id":  acc.ID,
		"marketplace": mp.Code,
	})
	logger.Info("sync: marketplace started")

	fail := func(resource string, err error) {
		logger.WithFields(logrus.Fields{"resource": resource, "error": err.Error()}).Error("sync: resource failed")
		run.AddFailure(acc.ID, mp.Code, resource, err)
	}

	existingInventory, err := s.inventoryRepo.ListByMarketplace(ctx, acc.ID, mp.Code)
	if err != nil {
		fail(ResourceStore, err)
		return
	}
	existingOrders, err := s.orderRepo.ListByMarketplace(ctx, acc.ID, mp.Code)
	if err != nil {
		fail(ResourceStore, err)
		return
	}
	existingShipments, err := s.shipmentRepo.ListByMarketplace(ctx, acc.ID, mp.Code)
	if err != nil {
		fail(ResourceStore, err)
		return
	}

	since := s.now().Add(-s.cfg.OrdersLookback)

	inventory, err := conn.FetchInventory(ctx, mp)
	if err != nil {
		fail(ResourceInventory, err)
	}

	orders, backfill, err := s.fetchOrders(ctx, acc, conn, mp, since)
	if err != nil {
		if isReportTimeout(err) {
			logger.WithError(err).Warn("sync: orders report timed out, treating as empty")
		} else {
			fail(ResourceOrders, err)
		}
	}

	shipments, err := conn.FetchShipments(ctx, mp, since)
	if err != nil {
		fail(ResourceShipments, err)
	}

	listingPrices, err := conn.FetchListingPrices(ctx, mp)
	if err != nil {
		if isReportTimeout(err) {
			logger.WithError(err).Warn("sync: listings report timed out, treating as empty")
		} else {
			fail(ResourceListingPrices, err)
		}
	}

	livePrices, err := conn.FetchLivePrices(ctx, mp, asins(existingInventory, inventory))
	if err != nil {
		fail(ResourceLivePrices, err)
	}

	result := s.merger.Merge(reconciling.Input{
		ExistingInventory: existingInventory,
		FetchedInventory:  inventory,
		ListingPrices:     listingPrices,
		LivePrices:        livePrices,
		ExistingOrders:    existingOrders,
		FetchedOrders:     orders,
		ExistingShipments: existingShipments,
		FetchedShipments:  shipments,
	})

	// Cada coleção é gravada de forma independente; falha em uma não impede as outras.
	written, err := s.inventoryRepo.UpsertAll(ctx, result.Inventory)
	run.InventoryWritten += written
	if err != nil {
		fail(ResourceInventory, err)
	}

	written, err = s.orderRepo.UpsertAll(ctx, result.Orders)
	run.OrdersWritten += written
	if err != nil {
		fail(ResourceOrders, err)
	} else if backfill != nil {
		// o progresso só avança depois que os pedidos das janelas estão gravados
		if err := s.stateRepo.SaveBackfillState(ctx, backfill); err != nil {
			fail(ResourceStore, err)
		}
	}

	written, err = s.shipmentRepo.UpsertAll(ctx, result.Shipments)
	run.ShipmentsWritten += written
	if err != nil {
		fail(ResourceShipments, err)
	}

	logger.WithFields(logrus.Fields{
		"inventory": len(result.Inventory),
		"orders":    len(result.Orders),
		"shipments": len(result.Shipments),
	}).Info("sync: marketplace finished")
}

// fetchOrders usa a API de pedidos ou o relatório, conforme SYNC_ORDERS_SOURCE.
// No modo relatório o histórico é buscado desde a epoch até o backfill ficar completo, retomando da
// primeira janela que falhou; o estado devolvido deve ser salvo depois que os pedidos forem gravados.
func (s *Service) fetchOrders(ctx context.Context, acc *domain.Account, conn spapi.Connector, mp domain.Marketplace, since time.Time) ([]domain.OrderRecord, *domain.BackfillState, error) {
	if s.cfg.OrdersSource != config.OrdersSourceReport {
		orders, err := conn.FetchOrders(ctx, mp, since)
		return orders, nil, err
	}

	state, err := s.stateRepo.BackfillState(ctx, acc.ID, mp.Code)
	if err != nil {
		return nil, nil, err
	}

	if state != nil && state.Complete {
		orders, err := conn.FetchOrderReport(ctx, mp, since, s.now().Add(-s.cfg.BackfillMargin))
		return orders, nil, err
	}

	result, err := conn.BackfillOrders(ctx, mp, state.ResumeFrom(s.cfg.BackfillEpoch))
	return result.Orders, &domain.BackfillState{
		AccountID:        acc.ID,
		Marketplace:      mp.Code,
		CompletedThrough: result.CompletedThrough,
		Complete:         result.Complete,
	}, err
}

func isReportTimeout(err error) bool {
	var timeout *spapi.ReportTimeoutError
	return errors.As(err, &timeout)
}

func asins(groups ...[]domain.InventoryRecord) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, group := range groups {
		for _, rec := range group {
			if rec.ASIN == "" {
				continue
			}
			if _, ok := seen[rec.ASIN]; ok {
				continue
			}
			seen[rec.ASIN] = struct{}{}
			out = append(out, rec.ASIN)
		}
	}
	sort.Strings(out)
	return out
}
