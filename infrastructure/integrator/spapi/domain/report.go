package spapidomain

type CreateReportRequest struct {
	ReportType     string   `json:"reportType"`
	MarketplaceIDs []string `json:"marketplaceIds"`
	DataStartTime  string   `json:"dataStartTime,omitempty"`
	DataEndTime    string   `json:"dataEndTime,omitempty"`
}

type CreateReportResponse struct {
	ReportID string `json:"reportId"`
}

type Report struct {
	ReportID         string `json:"reportId"`
	ReportType       string `json:"reportType"`
	ProcessingStatus string `json:"processingStatus"`
	ReportDocumentID string `json:"reportDocumentId"`
}

type ReportDocument struct {
	ReportDocumentID     string `json:"reportDocumentId"`
	URL                  string `json:"url"`
	CompressionAlgorithm string `json:"compressionAlgorithm"`
}

func (d *ReportDocument) Gzipped() bool {
	return d.CompressionAlgorithm == "GZIP"
}
