package pos

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/byildiz78/kd-cdc-sub000/internal/apperrors"
	"github.com/byildiz78/kd-cdc-sub000/internal/core/domain"
	portssvc "github.com/byildiz78/kd-cdc-sub000/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

const (
	transactionsPath = "/api/v1/accounting-transactions"
	apiKeyHeader     = "X-API-Key"
	requestTimeout   = 60 * time.Second
	dateParamLayout  = "2006-01-02 15:04:05"
)

// Client fetches raw transaction lines from each company's POS API. The base
// URL and API key come from the company row, not from static configuration.
type Client struct {
	http *http.Client
}

// NewClient creates a new POS API client.
func NewClient() *Client {
	return &Client{
		http: &http.Client{Timeout: requestTimeout},
	}
}

// Ensure Client implements the portssvc.POSFetcher interface
var _ portssvc.POSFetcher = (*Client)(nil)

// transactionLineDTO mirrors the POS API wire shape. Numeric fields arrive as
// JSON numbers; json.Number keeps full precision for decimal conversion.
type transactionLineDTO struct {
	TransactionID      string      `json:"transactionId"`
	OrderKey           string      `json:"orderKey"`
	SheetDate          string      `json:"sheetDate"`
	BranchID           int64       `json:"branchId"`
	BranchCode         string      `json:"branchCode"`
	AccountingCode     string      `json:"accountingCode"`
	MainAccountingCode string      `json:"mainAccountingCode"`
	IsMainCombo        bool        `json:"isMainCombo"`
	IsExternal         bool        `json:"isExternal"`
	TaxPercent         json.Number `json:"taxPercent"`
	Quantity           json.Number `json:"quantity"`
	SubTotal           json.Number `json:"subTotal"`
	TaxTotal           json.Number `json:"taxTotal"`
	Total              json.Number `json:"total"`
	ImportDate         string      `json:"importDate"`
}

func (c *Client) FetchTransactions(ctx context.Context, company domain.Company, startDate, endDate time.Time) ([]domain.TransactionLine, error) {
	params := url.Values{}
	params.Set("startDate", startDate.Format(dateParamLayout))
	params.Set("endDate", endDate.Format(dateParamLayout))

	endpoint := strings.TrimRight(company.POSAPIBaseURL, "/") + transactionsPath + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build pos request: %w", err)
	}
	req.Header.Set(apiKeyHeader, company.POSAPIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pos api unreachable: %w: %w", apperrors.ErrTransientFetch, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read pos response: %w: %w", apperrors.ErrTransientFetch, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("pos api error %d: %s: %w", resp.StatusCode, strings.TrimSpace(string(body)), apperrors.ErrTransientFetch)
	}

	dec := json.NewDecoder(strings.NewReader(string(body)))
	dec.UseNumber()
	var dtos []transactionLineDTO
	if err := dec.Decode(&dtos); err != nil {
		return nil, fmt.Errorf("pos response is not a transaction array: %w: %w", apperrors.ErrDataShape, err)
	}

	lines := make([]domain.TransactionLine, 0, len(dtos))
	for i, dto := range dtos {
		line, err := toDomainLine(dto)
		if err != nil {
			return nil, fmt.Errorf("pos line %d malformed: %w: %w", i, apperrors.ErrDataShape, err)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func toDomainLine(dto transactionLineDTO) (domain.TransactionLine, error) {
	sheetDate, err := parsePOSDate(dto.SheetDate)
	if err != nil {
		return domain.TransactionLine{}, fmt.Errorf("sheetDate: %w", err)
	}
	importDate, err := parsePOSDate(dto.ImportDate)
	if err != nil {
		return domain.TransactionLine{}, fmt.Errorf("importDate: %w", err)
	}

	taxPercent, err := parseDecimal(dto.TaxPercent)
	if err != nil {
		return domain.TransactionLine{}, fmt.Errorf("taxPercent: %w", err)
	}
	quantity, err := parseDecimal(dto.Quantity)
	if err != nil {
		return domain.TransactionLine{}, fmt.Errorf("quantity: %w", err)
	}
	subTotal, err := parseDecimal(dto.SubTotal)
	if err != nil {
		return domain.TransactionLine{}, fmt.Errorf("subTotal: %w", err)
	}
	taxTotal, err := parseDecimal(dto.TaxTotal)
	if err != nil {
		return domain.TransactionLine{}, fmt.Errorf("taxTotal: %w", err)
	}
	total, err := parseDecimal(dto.Total)
	if err != nil {
		return domain.TransactionLine{}, fmt.Errorf("total: %w", err)
	}

	return domain.TransactionLine{
		TransactionID:      dto.TransactionID,
		OrderKey:           dto.OrderKey,
		SheetDate:          sheetDate,
		BranchID:           dto.BranchID,
		BranchCode:         dto.BranchCode,
		AccountingCode:     dto.AccountingCode,
		MainAccountingCode: dto.MainAccountingCode,
		IsMainCombo:        dto.IsMainCombo,
		IsExternal:         dto.IsExternal,
		TaxPercent:         taxPercent,
		Quantity:           quantity,
		SubTotal:           subTotal,
		TaxTotal:           taxTotal,
		Total:              total,
		ImportDate:         importDate,
	}, nil
}

// parsePOSDate accepts the timestamp shapes the POS API is known to emit.
func parsePOSDate(v string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, dateParamLayout, "2006-01-02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", v)
}

func parseDecimal(n json.Number) (decimal.Decimal, error) {
	if n == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(n.String())
}
