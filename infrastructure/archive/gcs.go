package archive

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSArchiver guarda o conteúdo bruto dos relatórios num bucket do Cloud Storage.
type GCSArchiver struct {
	client *storage.Client
	bucket string
}

// NewGCSArchiver cria o cliente do Cloud Storage para o bucket de relatórios.
func NewGCSArchiver(ctx context.Context, bucket, credentialsFile string) (*GCSArchiver, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar cliente do storage: %w", err)
	}

	if _, err := client.Bucket(bucket).Attrs(ctx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("bucket %q não encontrado ou sem acesso: %w", bucket, err)
	}

	return &GCSArchiver{client: client, bucket: bucket}, nil
}

func (a *GCSArchiver) Archive(ctx context.Context, name string, content []byte) error {
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	wc := a.client.Bucket(a.bucket).Object(name).NewWriter(ctx)
	wc.ContentType = "text/tab-separated-values"

	if _, err := wc.Write(content); err != nil {
		_ = wc.Close()
		return fmt.Errorf("erro ao escrever %s: %w", name, err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("erro ao finalizar %s: %w", name, err)
	}

	return nil
}

func (a *GCSArchiver) Close() error {
	return a.client.Close()
}
