package pos_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/byildiz78/kd-cdc-sub000/internal/adapters/pos"
	"github.com/byildiz78/kd-cdc-sub000/internal/apperrors"
	"github.com/byildiz78/kd-cdc-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCompany(baseURL string) domain.Company {
	return domain.Company{
		CompanyID:     "company-1",
		POSAPIBaseURL: baseURL,
		POSAPIKey:     "secret-key",
	}
}

func TestFetchTransactionsParsesLines(t *testing.T) {
	var gotPath, gotKey, gotStart string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-API-Key")
		gotStart = r.URL.Query().Get("startDate")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{
			"transactionId": "TX-1",
			"orderKey": "ORD-1",
			"sheetDate": "2026-07-01",
			"branchId": 12,
			"branchCode": "BR012",
			"accountingCode": "600.01",
			"mainAccountingCode": "600",
			"isMainCombo": false,
			"isExternal": true,
			"taxPercent": 10,
			"quantity": 2,
			"subTotal": 90.50,
			"taxTotal": 9.05,
			"total": 99.55,
			"importDate": "2026-07-01 08:15:00"
		}]`))
	}))
	defer server.Close()

	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 7, 2, 0, 0, 0, 0, time.UTC)
	lines, err := pos.NewClient().FetchTransactions(context.Background(), testCompany(server.URL), start, end)

	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "/api/v1/accounting-transactions", gotPath)
	assert.Equal(t, "secret-key", gotKey)
	assert.Equal(t, "2026-07-01 00:00:00", gotStart)

	l := lines[0]
	assert.Equal(t, "ORD-1", l.OrderKey)
	assert.Equal(t, int64(12), l.BranchID)
	assert.True(t, l.IsExternal)
	assert.True(t, l.SubTotal.Equal(decimal.RequireFromString("90.50")))
	assert.True(t, l.Total.Equal(decimal.RequireFromString("99.55")))
	assert.Equal(t, time.Date(2026, 7, 1, 8, 15, 0, 0, time.UTC), l.ImportDate)
}

func TestFetchTransactionsServerErrorIsTransient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := pos.NewClient().FetchTransactions(context.Background(), testCompany(server.URL), time.Now(), time.Now())

	assert.ErrorIs(t, err, apperrors.ErrTransientFetch)
}

func TestFetchTransactionsUnreachableIsTransient(t *testing.T) {
	_, err := pos.NewClient().FetchTransactions(context.Background(), testCompany("http://127.0.0.1:1"), time.Now(), time.Now())

	assert.ErrorIs(t, err, apperrors.ErrTransientFetch)
}

func TestFetchTransactionsMalformedBodyIsDataShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not": "an array"}`))
	}))
	defer server.Close()

	_, err := pos.NewClient().FetchTransactions(context.Background(), testCompany(server.URL), time.Now(), time.Now())

	assert.ErrorIs(t, err, apperrors.ErrDataShape)
}

func TestFetchTransactionsBadDateIsDataShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"transactionId": "TX-1", "orderKey": "ORD-1", "sheetDate": "01/07/2026", "importDate": "2026-07-01"}]`))
	}))
	defer server.Close()

	_, err := pos.NewClient().FetchTransactions(context.Background(), testCompany(server.URL), time.Now(), time.Now())

	assert.ErrorIs(t, err, apperrors.ErrDataShape)
}
