package spapi

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/seller-sync/infrastructure/integrator/spapi/spapiclient"
	"github.com/vfg2006/seller-sync/internal/config"
	"github.com/vfg2006/seller-sync/internal/domain"
)

// SPAPIIntegrator autentica uma conta e devolve um Connector com os fetchers daquela conta.
type SPAPIIntegrator interface {
	Connect(ctx context.Context, account *domain.Account) (Connector, error)
}

type Connector interface {
	FetchInventory(ctx context.Context, mp domain.Marketplace) ([]domain.InventoryRecord, error)
	FetchOrders(ctx context.Context, mp domain.Marketplace, createdAfter time.Time) ([]domain.OrderRecord, error)
	FetchOrderReport(ctx context.Context, mp domain.Marketplace, start, end time.Time) ([]domain.OrderRecord, error)
	BackfillOrders(ctx context.Context, mp domain.Marketplace, from time.Time) (BackfillResult, error)
	FetchShipments(ctx context.Context, mp domain.Marketplace, updatedAfter time.Time) ([]domain.ShipmentRecord, error)
	FetchLivePrices(ctx context.Context, mp domain.Marketplace, asins []string) (map[string]float64, error)
	FetchListingPrices(ctx context.Context, mp domain.Marketplace) (map[string]float64, error)
}

// ReportArchiver guarda o conteúdo bruto dos relatórios baixados.
type ReportArchiver interface {
	Archive(ctx context.Context, name string, content []byte) error
}

type Option func(*SPAPIService)

func WithSleep(sleep spapiclient.SleepFunc) Option {
	return func(s *SPAPIService) { s.sleep = sleep }
}

func WithClock(now func() time.Time) Option {
	return func(s *SPAPIService) { s.now = now }
}

func WithHTTPClient(client *http.Client) Option {
	return func(s *SPAPIService) { s.httpClient = client }
}

type SPAPIService struct {
	cfg        *config.Config
	archiver   ReportArchiver
	httpClient *http.Client
	sleep      spapiclient.SleepFunc
	now        func() time.Time
}

// New cria o integrador SP-API. archiver é opcional e recebe os relatórios brutos baixados.
func New(cfg *config.Config, archiver ReportArchiver, opts ...Option) *SPAPIService {
	s := &SPAPIService{
		cfg:        cfg,
		archiver:   archiver,
		httpClient: &http.Client{Timeout: cfg.SPAPI.HTTPTimeout},
		sleep:      spapiclient.SleepContext,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Connect troca as credenciais da conta por um access token. Falha aqui é AuthError e a conta deve ser pulada.
func (s *SPAPIService) Connect(ctx context.Context, account *domain.Account) (Connector, error) {
	tokens := spapiclient.NewTokenManager(spapiclient.Credentials{
		ClientID:     account.ClientID,
		ClientSecret: account.ClientSecret,
		RefreshToken: account.RefreshToken,
	}, s.cfg.SPAPI.LWAEndpoint, s.httpClient)

	if _, err := tokens.Token(ctx); err != nil {
		return nil, err
	}

	signer := spapiclient.NewSigner(s.cfg.SPAPI.AccessKey, s.cfg.SPAPI.SecretKey, s.cfg.SPAPI.Region)
	if !signer.Enabled() {
		logrus.WithField("account_id", account.ID).Debug("spapi: signing keys not configured, sending bearer token only")
	}

	retry := spapiclient.DefaultRetryPolicy()
	if s.cfg.SPAPI.RetryBaseDelay > 0 {
		retry.BaseDelay = s.cfg.SPAPI.RetryBaseDelay
	}

	client, err := spapiclient.NewClient(spapiclient.Options{
		BaseURL:    s.cfg.SPAPI.Endpoint,
		HTTPClient: s.httpClient,
		Signer:     signer,
		Tokens:     tokens,
		Pacing: map[spapiclient.EndpointClass]time.Duration{
			spapiclient.ClassStandard:   s.cfg.SPAPI.StandardInterval,
			spapiclient.ClassItemDetail: s.cfg.SPAPI.ItemInterval,
		},
		Retry: retry,
		Sleep: s.sleep,
	})
	if err != nil {
		return nil, err
	}

	return &AccountConnector{
		accountID: account.ID,
		client:    client,
		pipeline: &ReportPipeline{
			client:       client,
			archiver:     s.archiver,
			accountID:    account.ID,
			pollInterval: s.cfg.Sync.ReportPollInterval,
			sleep:        s.sleep,
			now:          s.now,
		},
		sleep:          s.sleep,
		now:            s.now,
		orderTimeout:   s.cfg.Sync.OrderReportTimeout,
		listingTimeout: s.cfg.Sync.ListingReportTimeout,
		backfillPause:  s.cfg.Sync.BackfillPause,
		backfillMargin: s.cfg.Sync.BackfillMargin,
	}, nil
}

// caller é o subconjunto do spapiclient.Client usado pelos fetchers.
type caller interface {
	Do(ctx context.Context, req spapiclient.Request) (*spapiclient.Response, error)
	Download(ctx context.Context, rawURL string) ([]byte, error)
}

type AccountConnector struct {
	accountID string
	client    caller
	pipeline  *ReportPipeline
	sleep     spapiclient.SleepFunc
	now       func() time.Time

	orderTimeout   time.Duration
	listingTimeout time.Duration
	backfillPause  time.Duration
	backfillMargin time.Duration
}
