package spapi

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/seller-sync/internal/domain"
)

// backfillWindow é o maior intervalo aceito por requisição de relatório de pedidos.
const backfillWindow = 30 * 24 * time.Hour

type Window struct {
	Start time.Time
	End   time.Time
}

// ReportWindows divide [start, end) em janelas consecutivas de no máximo size.
func ReportWindows(start, end time.Time, size time.Duration) []Window {
	var windows []Window
	for cursor := start; cursor.Before(end); cursor = cursor.Add(size) {
		windowEnd := cursor.Add(size)
		if windowEnd.After(end) {
			windowEnd = end
		}
		windows = append(windows, Window{Start: cursor, End: windowEnd})
	}
	return windows
}

func (c *AccountConnector) FetchOrderReport(ctx context.Context, mp domain.Marketplace, start, end time.Time) ([]domain.OrderRecord, error) {
	content, _, err := c.pipeline.Run(ctx, ReportRequest{
		ReportType:  domain.ReportTypeOrders,
		Marketplace: mp,
		Start:       start,
		End:         end,
		Timeout:     c.orderTimeout,
	})
	if err != nil {
		return nil, err
	}
	if content == "" {
		return nil, nil
	}

	orders, parseErrs := ParseOrderReport(content, c.accountID, mp)
	logParseErrors(c.accountID, mp, domain.ReportTypeOrders, parseErrs)

	return orders, nil
}

// BackfillResult é o resultado de um backfill. CompletedThrough avança só enquanto as janelas
// desde o início tiveram sucesso, para que a próxima execução retome da primeira janela que falhou.
type BackfillResult struct {
	Orders           []domain.OrderRecord
	CompletedThrough time.Time
	Complete         bool
}

// BackfillOrders percorre janelas de 30 dias desde from até agora menos a margem de segurança,
// com pausa fixa entre janelas. Janelas com falha são registradas e as demais continuam.
func (c *AccountConnector) BackfillOrders(ctx context.Context, mp domain.Marketplace, from time.Time) (BackfillResult, error) {
	end := c.now().Add(-c.backfillMargin)
	windows := ReportWindows(from, end, backfillWindow)

	log := logrus.WithFields(logrus.Fields{
		"account_id":  c.accountID,
		"marketplace": mp.Code,
		"from":        from.Format(time.DateOnly),
		"windows":     len(windows),
	})
	log.Info("report: starting order history backfill")

	var (
		result     = BackfillResult{CompletedThrough: from}
		seen       = make(map[string]struct{})
		errs       []error
		contiguous = true
	)

	for i, window := range windows {
		if i > 0 {
			if err := c.sleep(ctx, c.backfillPause); err != nil {
				errs = append(errs, err)
				break
			}
		}

		batch, err := c.FetchOrderReport(ctx, mp, window.Start, window.End)
		if err != nil {
			log.WithFields(logrus.Fields{
				"window_start": window.Start.Format(time.DateOnly),
				"window_end":   window.End.Format(time.DateOnly),
				"error":        err.Error(),
			}).Warn("report: backfill window failed")
			errs = append(errs, err)
			contiguous = false
			if ctx.Err() != nil {
				break
			}
			continue
		}

		if contiguous {
			result.CompletedThrough = window.End
		}
		for _, order := range batch {
			if _, dup := seen[order.AmazonOrderID]; dup {
				continue
			}
			seen[order.AmazonOrderID] = struct{}{}
			result.Orders = append(result.Orders, order)
		}
	}

	result.Complete = len(errs) == 0
	log.WithFields(logrus.Fields{
		"orders":            len(result.Orders),
		"completed_through": result.CompletedThrough.Format(time.RFC3339),
		"complete":          result.Complete,
	}).Info("report: order history backfill finished")

	return result, errors.Join(errs...)
}

func (c *AccountConnector) FetchListingPrices(ctx context.Context, mp domain.Marketplace) (map[string]float64, error) {
	content, _, err := c.pipeline.Run(ctx, ReportRequest{
		ReportType:  domain.ReportTypeListings,
		Marketplace: mp,
		Timeout:     c.listingTimeout,
	})
	if err != nil {
		return nil, err
	}

	prices, parseErrs := ParseListingPrices(content)
	logParseErrors(c.accountID, mp, domain.ReportTypeListings, parseErrs)

	return prices, nil
}

func logParseErrors(accountID string, mp domain.Marketplace, reportType string, errs []error) {
	if len(errs) == 0 {
		return
	}

	entry := logrus.WithFields(logrus.Fields{
		"account_id":  accountID,
		"marketplace": mp.Code,
		"report_type": reportType,
		"skipped":     len(errs),
	})
	for _, err := range errs {
		entry.Debug(err.Error())
	}
	entry.Warn("report: skipped malformed rows")
}
