package spapi

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	spapidomain "github.com/vfg2006/seller-sync/infrastructure/integrator/spapi/domain"
	"github.com/vfg2006/seller-sync/infrastructure/integrator/spapi/spapiclient"
	"github.com/vfg2006/seller-sync/internal/domain"
	"golang.org/x/text/encoding/charmap"
)

const (
	reportsPath   = "/reports/2021-06-30/reports"
	documentsPath = "/reports/2021-06-30/documents"
)

type ReportRequest struct {
	ReportType  string
	Marketplace domain.Marketplace
	Start       time.Time
	End         time.Time
	Timeout     time.Duration
}

// ReportPipeline conduz um ReportJob por REQUESTED -> IN_PROGRESS -> DONE|CANCELLED|FATAL
// e devolve o conteúdo do documento já descompactado e decodificado.
type ReportPipeline struct {
	client       caller
	archiver     ReportArchiver
	accountID    string
	pollInterval time.Duration
	sleep        spapiclient.SleepFunc
	now          func() time.Time
}

// Run devolve conteúdo vazio e erro nil quando o relatório termina CANCELLED ou FATAL.
// Estourar o timeout devolve ReportTimeoutError.
func (p *ReportPipeline) Run(ctx context.Context, req ReportRequest) (string, *domain.ReportJob, error) {
	job, err := p.create(ctx, req)
	if err != nil {
		return "", nil, err
	}

	log := logrus.WithFields(logrus.Fields{
		"account_id":  p.accountID,
		"marketplace": req.Marketplace.Code,
		"report_id":   job.ID,
		"report_type": req.ReportType,
	})

	if err := p.waitTerminal(ctx, job, req.Timeout); err != nil {
		log.WithField("error", err.Error()).Warn("report: polling stopped before a terminal state")
		return "", job, err
	}

	if job.Status != domain.ReportStatusDone {
		log.WithField("status", job.Status).Warn("report: finished without a document")
		return "", job, nil
	}

	raw, err := p.download(ctx, job.DocumentID)
	if err != nil {
		return "", job, err
	}

	p.archive(ctx, req, job, raw)

	log.WithField("bytes", len(raw)).Debug("report: document downloaded")
	return decodeReportText(raw), job, nil
}

func (p *ReportPipeline) create(ctx context.Context, req ReportRequest) (*domain.ReportJob, error) {
	body := spapidomain.CreateReportRequest{
		ReportType:     req.ReportType,
		MarketplaceIDs: []string{req.Marketplace.ID},
	}
	if !req.Start.IsZero() {
		body.DataStartTime = req.Start.UTC().Format(time.RFC3339)
	}
	if !req.End.IsZero() {
		body.DataEndTime = req.End.UTC().Format(time.RFC3339)
	}

	resp, err := p.client.Do(ctx, spapiclient.Request{
		Method: http.MethodPost,
		Path:   reportsPath,
		Body:   body,
		Class:  spapiclient.ClassStandard,
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao criar relatório %s: %w", req.ReportType, err)
	}

	var created spapidomain.CreateReportResponse
	if err := resp.Decode(&created); err != nil {
		return nil, err
	}
	if created.ReportID == "" {
		return nil, fmt.Errorf("relatório %s criado sem reportId", req.ReportType)
	}

	return &domain.ReportJob{
		ID:          created.ReportID,
		ReportType:  req.ReportType,
		Marketplace: req.Marketplace.Code,
		Status:      domain.ReportStatusRequested,
		RequestedAt: p.now(),
	}, nil
}

func (p *ReportPipeline) waitTerminal(ctx context.Context, job *domain.ReportJob, timeout time.Duration) error {
	deadline := job.RequestedAt.Add(timeout)

	for {
		if err := p.poll(ctx, job); err != nil {
			return err
		}
		if job.Status.Terminal() {
			return nil
		}

		if !p.now().Add(p.pollInterval).Before(deadline) {
			return &ReportTimeoutError{
				ReportID:   job.ID,
				ReportType: job.ReportType,
				Waited:     p.now().Sub(job.RequestedAt),
				LastStatus: job.Status,
			}
		}

		if err := p.sleep(ctx, p.pollInterval); err != nil {
			return err
		}
	}
}

func (p *ReportPipeline) poll(ctx context.Context, job *domain.ReportJob) error {
	resp, err := p.client.Do(ctx, spapiclient.Request{
		Method: http.MethodGet,
		Path:   reportsPath + "/" + job.ID,
		Class:  spapiclient.ClassStandard,
	})
	if err != nil {
		return err
	}

	var report spapidomain.Report
	if err := resp.Decode(&report); err != nil {
		return err
	}

	job.Polls++
	job.Status = domain.ParseReportStatus(report.ProcessingStatus)
	job.DocumentID = report.ReportDocumentID

	if job.Status == domain.ReportStatusDone && job.DocumentID == "" {
		job.Status = domain.ReportStatusFatal
	}

	return nil
}

func (p *ReportPipeline) download(ctx context.Context, documentID string) ([]byte, error) {
	resp, err := p.client.Do(ctx, spapiclient.Request{
		Method: http.MethodGet,
		Path:   documentsPath + "/" + documentID,
		Class:  spapiclient.ClassStandard,
	})
	if err != nil {
		return nil, err
	}

	var document spapidomain.ReportDocument
	if err := resp.Decode(&document); err != nil {
		return nil, err
	}

	raw, err := p.client.Download(ctx, document.URL)
	if err != nil {
		return nil, fmt.Errorf("erro ao baixar documento %s: %w", documentID, err)
	}

	if !document.Gzipped() {
		return raw, nil
	}

	reader, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("erro ao descompactar documento %s: %w", documentID, err)
	}
	defer reader.Close()

	return io.ReadAll(reader)
}

func (p *ReportPipeline) archive(ctx context.Context, req ReportRequest, job *domain.ReportJob, raw []byte) {
	if p.archiver == nil {
		return
	}

	name := fmt.Sprintf("reports/%s/%s/%s/%s.tsv", p.accountID, req.Marketplace.Code, req.ReportType, job.ID)
	if err := p.archiver.Archive(ctx, name, raw); err != nil {
		logrus.WithFields(logrus.Fields{
			"report_id": job.ID,
			"error":     err.Error(),
		}).Warn("report: failed to archive document")
	}
}

// decodeReportText usa UTF-8 quando válido e cai para Latin-1 caso contrário.
func decodeReportText(raw []byte) string {
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	if utf8.Valid(raw) {
		return string(raw)
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return string(bytes.ToValidUTF8(raw, []byte("\uFFFD")))
	}
	return string(decoded)
}
