package domain

import "time"

type ReportStatus string

const (
	ReportStatusRequested  ReportStatus = "REQUESTED"
	ReportStatusInProgress ReportStatus = "IN_PROGRESS"
	ReportStatusDone       ReportStatus = "DONE"
	ReportStatusCancelled  ReportStatus = "CANCELLED"
	ReportStatusFatal      ReportStatus = "FATAL"
)

const (
	ReportTypeOrders   = "GET_FLAT_FILE_ALL_ORDERS_DATA_BY_ORDER_DATE_GENERAL"
	ReportTypeListings = "GET_MERCHANT_LISTINGS_ALL_DATA"
)

// ParseReportStatus converte o processingStatus da API. IN_QUEUE equivale a REQUESTED.
func ParseReportStatus(s string) ReportStatus {
	switch s {
	case "IN_QUEUE", string(ReportStatusRequested):
		return ReportStatusRequested
	case string(ReportStatusInProgress):
		return ReportStatusInProgress
	case string(ReportStatusDone):
		return ReportStatusDone
	case string(ReportStatusCancelled):
		return ReportStatusCancelled
	default:
		return ReportStatusFatal
	}
}

func (s ReportStatus) Terminal() bool {
	return s == ReportStatusDone || s == ReportStatusCancelled || s == ReportStatusFatal
}

// ReportJob existe apenas durante a execução de um relatório, nunca é persistido.
type ReportJob struct {
	ID          string
	ReportType  string
	Marketplace string
	Status      ReportStatus
	DocumentID  string
	RequestedAt time.Time
	Polls       int
}
