// Carga de contas de seller na coleção seller_accounts a partir de um arquivo JSON.
//
//	go run ./infrastructure/migration/script -file contas.json
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/seller-sync/infrastructure/database/documentstore"
	"github.com/vfg2006/seller-sync/infrastructure/repository"
	"github.com/vfg2006/seller-sync/internal/config"
	"github.com/vfg2006/seller-sync/internal/domain"
	"github.com/vfg2006/seller-sync/pkg/log"
	"github.com/vfg2006/seller-sync/pkg/utils"
)

const idLength = 6

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type AccountInput struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	ClientID     string   `json:"client_id" validate:"required"`
	ClientSecret string   `json:"client_secret" validate:"required"`
	RefreshToken string   `json:"refresh_token" validate:"required"`
	Marketplaces []string `json:"marketplaces" validate:"dive,alpha,len=2"`
}

// parseAccounts valida as contas do arquivo; entradas inválidas são devolvidas como erro e ficam de fora.
func parseAccounts(r io.Reader) ([]documentstore.Document, []error) {
	var inputs []AccountInput
	if err := json.NewDecoder(r).Decode(&inputs); err != nil {
		return nil, []error{fmt.Errorf("erro ao ler arquivo de contas: %w", err)}
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	seen := make(map[string]bool, len(inputs))

	var (
		docs []documentstore.Document
		errs []error
	)
	for i, in := range inputs {
		in.ID = strings.TrimSpace(in.ID)
		for j, code := range in.Marketplaces {
			in.Marketplaces[j] = strings.ToUpper(strings.TrimSpace(code))
		}
		if len(in.Marketplaces) == 0 {
			in.Marketplaces = []string{domain.DefaultAccountMarketplace}
		}

		if err := validate.Struct(in); err != nil {
			errs = append(errs, fmt.Errorf("conta %d (%s): %w", i+1, in.Name, err))
			continue
		}
		if in.ID == domain.DefaultAccountID {
			errs = append(errs, fmt.Errorf("conta %d: id %q é reservado", i+1, in.ID))
			continue
		}
		if in.ID == "" {
			id, err := utils.GenerateID(idLength)
			if err != nil {
				errs = append(errs, fmt.Errorf("conta %d: erro ao gerar id: %w", i+1, err))
				continue
			}
			in.ID = id
		}
		if seen[in.ID] {
			errs = append(errs, fmt.Errorf("conta %d: id %q duplicado", i+1, in.ID))
			continue
		}
		seen[in.ID] = true

		docs = append(docs, documentstore.Document{
			ID: in.ID,
			Fields: map[string]any{
				"name":          in.Name,
				"client_id":     in.ClientID,
				"client_secret": in.ClientSecret,
				"refresh_token": in.RefreshToken,
				"marketplaces":  in.Marketplaces,
			},
		})
	}

	return docs, errs
}

func openStore(ctx context.Context, cfg *config.Config) (documentstore.Store, error) {
	switch cfg.DocumentStore.Backend {
	case config.StoreMongoDB:
		return documentstore.NewMongoStore(ctx, cfg.DocumentStore.MongoURI, cfg.DocumentStore.MongoDatabase)
	case config.StoreFirestore:
		return documentstore.NewFirestoreStore(ctx, cfg.DocumentStore.FirestoreProject, cfg.DocumentStore.CredentialsFile)
	default:
		return nil, fmt.Errorf("DOCUMENT_STORE %q não suportado pela carga", cfg.DocumentStore.Backend)
	}
}

func main() {
	file := flag.String("file", "", "arquivo JSON com a lista de contas")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}
	log.Setup(cfg.App.LogLevel)

	if *file == "" {
		logrus.Fatal("informe o arquivo de contas com -file")
	}

	logrus.Info("Iniciando carga de contas de seller...")
	startTime := time.Now()

	f, err := os.Open(*file)
	if err != nil {
		logrus.WithError(err).Fatal("ERRO ao abrir arquivo de contas")
	}
	defer f.Close()

	docs, errs := parseAccounts(f)
	for _, err := range errs {
		logrus.WithError(err).Warn("AVISO: conta ignorada")
	}
	if len(docs) == 0 {
		logrus.Fatal("nenhuma conta válida para carregar")
	}

	ctx := context.Background()
	store, err := openStore(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("ERRO ao conectar ao document store")
	}
	defer store.Close()

	written, err := repository.NewBatchWriter(store, cfg.Sync.BatchSize).UpsertAll(ctx, documentstore.CollectionSellerAccounts, docs)
	if err != nil {
		logrus.WithError(err).WithField("written", written).Fatal("ERRO ao gravar contas")
	}

	logrus.WithFields(logrus.Fields{
		"duration": time.Since(startTime).String(),
		"written":  written,
		"ignored":  len(errs),
	}).Info("Carga de contas concluída")
}
