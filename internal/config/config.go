package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	OrdersSourceAPI    = "api"
	OrdersSourceReport = "report"

	StoreFirestore = "firestore"
	StoreMongoDB   = "mongodb"
	StoreMemory    = "memory"
)

type Config struct {
	App            App            `mapstructure:",squash"`
	Server         Server         `mapstructure:",squash"`
	Database       Database       `mapstructure:",squash"`
	DocumentStore  DocumentStore  `mapstructure:",squash"`
	Redis          Redis          `mapstructure:",squash"`
	SPAPI          SPAPI          `mapstructure:",squash"`
	DefaultAccount DefaultAccount `mapstructure:",squash"`
	Sync           Sync           `mapstructure:",squash"`
	ReportArchive  ReportArchive  `mapstructure:",squash"`
	Auth           Auth           `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

// Database é o Postgres opcional usado como histórico das execuções de sync.
type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

func (d Database) Enabled() bool {
	return d.URL != ""
}

type DocumentStore struct {
	Backend          string `mapstructure:"document_store"`
	FirestoreProject string `mapstructure:"firestore_project_id"`
	MongoURI         string `mapstructure:"mongo_uri"`
	MongoDatabase    string `mapstructure:"mongo_database"`
	CredentialsFile  string `mapstructure:"google_application_credentials"`
}

type Redis struct {
	Addr     string        `mapstructure:"redis_addr"`
	Password string        `mapstructure:"redis_password"`
	LockTTL  time.Duration `mapstructure:"redis_lock_ttl"`
}

func (r Redis) Enabled() bool {
	return r.Addr != ""
}

type SPAPI struct {
	Endpoint         string        `mapstructure:"spapi_endpoint"`
	LWAEndpoint      string        `mapstructure:"spapi_lwa_endpoint"`
	Region           string        `mapstructure:"spapi_region"`
	AccessKey        string        `mapstructure:"spapi_access_key"`
	SecretKey        string        `mapstructure:"spapi_secret_key"`
	StandardInterval time.Duration `mapstructure:"spapi_standard_interval"`
	ItemInterval     time.Duration `mapstructure:"spapi_item_interval"`
	HTTPTimeout      time.Duration `mapstructure:"spapi_http_timeout"`
	RetryBaseDelay   time.Duration `mapstructure:"spapi_retry_base_delay"`
}

// DefaultAccount é a conta configurada por variáveis de ambiente, processada antes das contas salvas.
type DefaultAccount struct {
	ClientID     string   `mapstructure:"lwa_client_id"`
	ClientSecret string   `mapstructure:"lwa_client_secret"`
	RefreshToken string   `mapstructure:"sp_api_refresh_token"`
	Marketplaces []string `mapstructure:"default_marketplaces"`
}

func (d DefaultAccount) Configured() bool {
	return d.ClientID != "" && d.ClientSecret != "" && d.RefreshToken != ""
}

type Sync struct {
	CronSchedule         string        `mapstructure:"sync_cron"`
	Enabled              bool          `mapstructure:"sync_enabled"`
	OrdersSource         string        `mapstructure:"sync_orders_source"`
	OrdersLookback       time.Duration `mapstructure:"sync_orders_lookback"`
	BackfillEpochRaw     string        `mapstructure:"sync_backfill_epoch"`
	BackfillEpoch        time.Time     `mapstructure:"-"`
	BackfillMargin       time.Duration `mapstructure:"sync_backfill_margin"`
	BackfillPause        time.Duration `mapstructure:"sync_backfill_pause"`
	BatchSize            int           `mapstructure:"sync_batch_size"`
	RunTimeout           time.Duration `mapstructure:"sync_run_timeout"`
	ReportPollInterval   time.Duration `mapstructure:"report_poll_interval"`
	OrderReportTimeout   time.Duration `mapstructure:"report_orders_timeout"`
	ListingReportTimeout time.Duration `mapstructure:"report_listings_timeout"`
}

type ReportArchive struct {
	Bucket string `mapstructure:"report_archive_bucket"`
}

type Auth struct {
	Secret       string `mapstructure:"jwt_secret"`
	AdminKeyHash string `mapstructure:"admin_key_hash"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"})

	// Postgres só é usado quando DATABASE_URL estiver definido
	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("DOCUMENT_STORE", StoreFirestore)
	viper.SetDefault("FIRESTORE_PROJECT_ID", "")
	viper.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DATABASE", "seller_hub")
	viper.SetDefault("GOOGLE_APPLICATION_CREDENTIALS", "")

	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_LOCK_TTL", 2*time.Hour)

	viper.SetDefault("SPAPI_ENDPOINT", "https://sellingpartnerapi-na.amazon.com")
	viper.SetDefault("SPAPI_LWA_ENDPOINT", "https://api.amazon.com/auth/o2/token")
	viper.SetDefault("SPAPI_REGION", "us-east-1")
	viper.SetDefault("SPAPI_ACCESS_KEY", "")
	viper.SetDefault("SPAPI_SECRET_KEY", "")
	viper.SetDefault("SPAPI_STANDARD_INTERVAL", 200*time.Millisecond) // endpoints baratos
	viper.SetDefault("SPAPI_ITEM_INTERVAL", 500*time.Millisecond)     // endpoints de detalhe (itens, preços)
	viper.SetDefault("SPAPI_HTTP_TIMEOUT", 30*time.Second)
	viper.SetDefault("SPAPI_RETRY_BASE_DELAY", 2*time.Second)

	viper.SetDefault("LWA_CLIENT_ID", "")
	viper.SetDefault("LWA_CLIENT_SECRET", "")
	viper.SetDefault("SP_API_REFRESH_TOKEN", "")
	viper.SetDefault("DEFAULT_MARKETPLACES", []string{"US", "UK"})

	viper.SetDefault("SYNC_CRON", "0 */6 * * *") // A cada 6 horas
	viper.SetDefault("SYNC_ENABLED", false)
	viper.SetDefault("SYNC_ORDERS_SOURCE", OrdersSourceAPI)
	viper.SetDefault("SYNC_ORDERS_LOOKBACK", 30*24*time.Hour)
	viper.SetDefault("SYNC_BACKFILL_EPOCH", "2024-01-01")
	viper.SetDefault("SYNC_BACKFILL_MARGIN", 3*time.Minute)
	viper.SetDefault("SYNC_BACKFILL_PAUSE", 10*time.Second)
	viper.SetDefault("SYNC_BATCH_SIZE", 400)
	viper.SetDefault("SYNC_RUN_TIMEOUT", 2*time.Hour)
	viper.SetDefault("REPORT_POLL_INTERVAL", 10*time.Second)
	viper.SetDefault("REPORT_ORDERS_TIMEOUT", 5*time.Minute)
	viper.SetDefault("REPORT_LISTINGS_TIMEOUT", 3*time.Minute)

	viper.SetDefault("REPORT_ARCHIVE_BUCKET", "")

	viper.SetDefault("JWT_SECRET", "your_secret_key")
	viper.SetDefault("ADMIN_KEY_HASH", "")

	viper.SetDefault("LOG_LEVEL", "info")
}

// NewConfig carrega a configuração do .env e das variáveis de ambiente.
func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	}

	return load()
}

func load() (*Config, error) {
	config := &Config{}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) normalize() error {
	epoch, err := time.Parse("2006-01-02", c.Sync.BackfillEpochRaw)
	if err != nil {
		return fmt.Errorf("SYNC_BACKFILL_EPOCH inválido %q: %w", c.Sync.BackfillEpochRaw, err)
	}
	c.Sync.BackfillEpoch = epoch.UTC()

	switch c.Sync.OrdersSource {
	case OrdersSourceAPI, OrdersSourceReport:
	default:
		return fmt.Errorf("SYNC_ORDERS_SOURCE inválido: %q", c.Sync.OrdersSource)
	}

	switch c.DocumentStore.Backend {
	case StoreFirestore, StoreMongoDB, StoreMemory:
	default:
		return fmt.Errorf("DOCUMENT_STORE inválido: %q", c.DocumentStore.Backend)
	}

	// O limite de escrita atômica do Firestore é 500 operações
	if c.Sync.BatchSize <= 0 || c.Sync.BatchSize > 500 {
		c.Sync.BatchSize = 400
	}

	for i, code := range c.DefaultAccount.Marketplaces {
		c.DefaultAccount.Marketplaces[i] = strings.ToUpper(strings.TrimSpace(code))
	}

	if c.Database.Enabled() {
		c.Database.DSN = fmt.Sprintf(
			"%s://%s:%s@%s",
			c.Database.Driver,
			c.Database.User,
			c.Database.Password,
			c.Database.URL,
		)
	}

	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}
