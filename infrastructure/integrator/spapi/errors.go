package spapi

import (
	"fmt"
	"time"

	"github.com/vfg2006/seller-sync/internal/domain"
)

// ReportTimeoutError indica que o relatório não chegou a um estado final dentro da janela de polling.
type ReportTimeoutError struct {
	ReportID   string
	ReportType string
	Waited     time.Duration
	LastStatus domain.ReportStatus
}

func (e *ReportTimeoutError) Error() string {
	return fmt.Sprintf("report: %s (%s) not ready after %s, last status %s", e.ReportID, e.ReportType, e.Waited, e.LastStatus)
}

// ParseError descreve uma linha de relatório descartada.
type ParseError struct {
	Line   int
	Column string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("report: line %d column %q: %s", e.Line, e.Column, e.Reason)
	}
	return fmt.Sprintf("report: line %d: %s", e.Line, e.Reason)
}
