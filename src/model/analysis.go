package model

// Payload shapes of the analysis routes. Field names match the backend
// contract exactly, the UI consumes them verbatim.

type FinancialSnapshot struct {
	Revenue         string `json:"revenue"`
	NetIncome       string `json:"netIncome"`
	TotalAssets     string `json:"totalAssets"`
	TotalDebt       string `json:"totalDebt"`
	PeRatio         string `json:"peRatio"`
	Roe             string `json:"roe"`
	DebtToEquity    string `json:"debtToEquity"`
	CurrentRatio    string `json:"currentRatio"`
	OperatingMargin string `json:"operatingMargin"`
	GrossMargin     string `json:"grossMargin"`
	FreeCashFlow    string `json:"freeCashFlow"`
}

type SecFiling struct {
	FormType            string `json:"formType"`
	FiledAt             string `json:"filedAt"`
	AccessionNo         string `json:"accessionNo"`
	Cik                 string `json:"cik"`
	LinkToFilingDetails string `json:"linkToFilingDetails"`
}

type CompanyData struct {
	Symbol            string            `json:"symbol"`
	Name              string            `json:"name"`
	Sector            string            `json:"sector"`
	Industry          string            `json:"industry"`
	MarketCap         string            `json:"marketCap"`
	ExecutiveSummary  string            `json:"executiveSummary"`
	FinancialSnapshot FinancialSnapshot `json:"financialSnapshot"`
	BullCase          []string          `json:"bullCase"`
	BearCase          []string          `json:"bearCase"`
	KeyRisks          []string          `json:"keyRisks"`
	SourceLinks       []string          `json:"sourceLinks"`
	FilingDate        string            `json:"filingDate"`
	Quarter           string            `json:"quarter"`
	SecFilings        []SecFiling       `json:"secFilings"`
}

type SecAnalysisRequest struct {
	Ticker string `json:"ticker"`
}

type SecChatRequest struct {
	Query          string                 `json:"query"`
	CompanySymbol  string                 `json:"company_symbol"`
	CompanyContext map[string]interface{} `json:"company_context,omitempty"`
}

type ChatQueryRequest struct {
	Query   string                 `json:"query"`
	Context map[string]interface{} `json:"context,omitempty"`
}

type ChatQueryResponse struct {
	Response string `json:"response"`
}

type DocumentMetadata struct {
	Filename        string `json:"filename"`
	FileSize        string `json:"file_size"`
	ContentType     string `json:"content_type"`
	OcrEnabled      bool   `json:"ocr_enabled"`
	LayoutAnalysis  bool   `json:"layout_analysis"`
	TableExtraction bool   `json:"table_extraction"`
	ProcessingMode  string `json:"processing_mode"`
}

type DocumentAnalysis struct {
	Success          bool             `json:"success"`
	AnalysisType     string           `json:"analysis_type"`
	DocumentType     string           `json:"document_type"`
	ConfidenceScore  float64          `json:"confidence_score"`
	ProcessingMethod string           `json:"processing_method"`
	Timestamp        string           `json:"timestamp"`
	KeyInsights      []string         `json:"key_insights"`
	Recommendations  []string         `json:"recommendations"`
	Metadata         DocumentMetadata `json:"metadata"`
	FallbackReason   string           `json:"fallback_reason,omitempty"`
}
