package main

import (
	"context"
	"flag"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/seller-sync/infrastructure/archive"
	"github.com/vfg2006/seller-sync/infrastructure/database/documentstore"
	"github.com/vfg2006/seller-sync/infrastructure/database/postgres"
	"github.com/vfg2006/seller-sync/infrastructure/integrator/spapi"
	"github.com/vfg2006/seller-sync/infrastructure/lock"
	"github.com/vfg2006/seller-sync/infrastructure/repository"
	"github.com/vfg2006/seller-sync/internal/api"
	"github.com/vfg2006/seller-sync/internal/config"
	"github.com/vfg2006/seller-sync/internal/scheduler"
	"github.com/vfg2006/seller-sync/internal/usecases/authenticating"
	"github.com/vfg2006/seller-sync/internal/usecases/reconciling"
	"github.com/vfg2006/seller-sync/internal/usecases/syncing"
	"github.com/vfg2006/seller-sync/pkg/log"
)

func main() {
	once := flag.Bool("once", false, "executa um único sync e encerra (uso em jobs agendados externamente)")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Setup(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := documentStore(ctx, cfg)
	defer store.Close()

	writer := repository.NewBatchWriter(store, cfg.Sync.BatchSize)
	accountRepo := repository.NewSellerAccountRepository(store)
	inventoryRepo := repository.NewInventoryRepository(store, writer)
	orderRepo := repository.NewOrderRepository(store, writer)
	shipmentRepo := repository.NewShipmentRepository(store, writer)
	stateRepo := repository.NewSyncStateRepository(store)

	var archiver spapi.ReportArchiver
	if cfg.ReportArchive.Bucket != "" {
		gcs, err := archive.NewGCSArchiver(ctx, cfg.ReportArchive.Bucket, cfg.DocumentStore.CredentialsFile)
		if err != nil {
			logrus.WithError(err).Fatal("Erro ao conectar no bucket de relatórios")
		}
		defer gcs.Close()
		archiver = gcs
	}

	integrator := spapi.New(cfg, archiver)

	syncService := syncing.NewService(
		cfg,
		integrator,
		accountRepo,
		inventoryRepo,
		orderRepo,
		shipmentRepo,
		stateRepo,
		reconciling.NewService(),
	)

	var locker lock.Locker
	if cfg.Redis.Enabled() {
		redisLocker, err := lock.NewRedisLocker(ctx, cfg.Redis)
		if err != nil {
			logrus.WithError(err).Fatal("Erro ao conectar no Redis")
		}
		defer redisLocker.Close()
		locker = redisLocker
	}

	var runRepo repository.SyncRunRepository
	if cfg.Database.Enabled() {
		conn := pgconn(ctx, cfg.Database)
		defer conn.Close()

		runRepo = repository.NewSyncRunRepository(conn)
		if err := runRepo.EnsureSchema(ctx); err != nil {
			logrus.WithError(err).Fatal("Erro ao criar tabela de histórico do sync")
		}
	}

	syncScheduler := scheduler.NewMarketplaceSyncService(syncService, locker, runRepo, cfg)

	if *once {
		run, err := syncScheduler.RunOnce(ctx)
		if err != nil {
			logrus.WithError(err).Error("Sync finalizado com erro")
			os.Exit(1)
		}
		logrus.WithField("status", run.Status()).Info("Sync finalizado")
		return
	}

	if err := syncScheduler.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sync de marketplace")
	} else {
		logrus.Info("Agendador de sync de marketplace iniciado com sucesso")
	}

	authenticator := authenticating.NewService(cfg)

	server, err := api.New(cfg, authenticator, syncScheduler)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// documentStore abre o backend configurado em DOCUMENT_STORE.
func documentStore(ctx context.Context, cfg *config.Config) documentstore.Store {
	switch cfg.DocumentStore.Backend {
	case config.StoreMongoDB:
		store, err := documentstore.NewMongoStore(ctx, cfg.DocumentStore.MongoURI, cfg.DocumentStore.MongoDatabase)
		if err != nil {
			logrus.WithError(err).Fatal("Erro ao conectar ao MongoDB")
		}
		logrus.Info("Conexão com MongoDB estabelecida com sucesso")
		return store
	case config.StoreMemory:
		logrus.Warn("Usando document store em memória, nada será persistido")
		return documentstore.NewMemoryStore()
	default:
		store, err := documentstore.NewFirestoreStore(ctx, cfg.DocumentStore.FirestoreProject, cfg.DocumentStore.CredentialsFile)
		if err != nil {
			logrus.WithError(err).Fatal("Erro ao conectar ao Firestore")
		}
		logrus.Info("Conexão com Firestore estabelecida com sucesso")
		return store
	}
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
