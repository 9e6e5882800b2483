package networks

import (
	"errors"
	"strings"
	"testing"

	"github.com/jalexspringer/netimpact/src/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reportHeader = "Consumer Country,Gross Commissions,Gross Sales,Order ID,Publisher ID,Transaction Date,Transaction Time,Process Date,Customer Status,Currency"

func reportRow(overrides map[string]string) []string {
	values := map[string]string{
		"Consumer Country":  "United Kingdom",
		"Gross Commissions": "10.00",
		"Gross Sales":       "100.00",
		"Order ID":          "X1",
		"Publisher ID":      "42",
		"Transaction Date":  "1/5/24",
		"Transaction Time":  "10:00:00",
		"Process Date":      "1/5/24",
		"Customer Status":   "Existing",
		"Currency":          "GBP",
	}
	for k, v := range overrides {
		values[k] = v
	}
	cols := strings.Split(reportHeader, ",")
	row := make([]string, len(cols))
	for i, col := range cols {
		row[i] = values[col]
	}
	return row
}

func TestParseReportCSVStripsBOM(t *testing.T) {
	rows, err := parseReportCSV(strings.NewReader("\uFEFF" + reportHeader + "\n"))
	require.NoError(t, err)
	assert.Equal(t, "Consumer Country", rows[0][0])
}

func TestClassifyReportMissingColumnAbortsWindow(t *testing.T) {
	header := strings.Split(reportHeader, ",")
	truncated := header[:len(header)-1]
	_, err := classifyReport([][]string{truncated})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSchemaMismatch))
	assert.Contains(t, err.Error(), "Currency")
}

func TestClassifyReportLifecycleInference(t *testing.T) {
	header := strings.Split(reportHeader, ",")
	rows := [][]string{
		header,
		// Same-day with a positive sale: still pending.
		reportRow(map[string]string{"Order ID": "P1"}),
		// Processed later with zero commission: declined.
		reportRow(map[string]string{"Order ID": "D1", "Gross Commissions": "0.00", "Process Date": "1/6/24"}),
		// Processed later with commission: approved.
		reportRow(map[string]string{"Order ID": "A1", "Process Date": "1/6/24"}),
		// Same-day return (negative sale) with zero commission: declined.
		reportRow(map[string]string{"Order ID": "D2", "Gross Sales": "-50.00", "Gross Commissions": "0.00"}),
	}
	buckets, err := classifyReport(rows)
	require.NoError(t, err)

	require.Len(t, buckets.Pending, 1)
	require.Len(t, buckets.Declined, 2)
	require.Len(t, buckets.Approved, 1)
	assert.Equal(t, "P1", buckets.Pending[0].TransactionID)
	assert.Equal(t, "A1", buckets.Approved[0].TransactionID)
	assert.Equal(t, models.LifecyclePending, buckets.Pending[0].Lifecycle)
	assert.Equal(t, models.LifecycleDeclined, buckets.Declined[0].Lifecycle)
	assert.Equal(t, models.LifecycleApproved, buckets.Approved[0].Lifecycle)
}

func TestClassifyReportSkipsMalformedRows(t *testing.T) {
	header := strings.Split(reportHeader, ",")
	rows := [][]string{
		header,
		reportRow(map[string]string{"Order ID": ""}),
		reportRow(map[string]string{"Gross Sales": "abc"}),
		{"short"},
		reportRow(map[string]string{"Order ID": "OK1"}),
	}
	buckets, err := classifyReport(rows)
	require.NoError(t, err)
	assert.Equal(t, 1, buckets.Total())
	assert.Equal(t, "OK1", buckets.Pending[0].TransactionID)
}

func TestNormalizeReportRowMapping(t *testing.T) {
	header := strings.Split(reportHeader, ",")
	idx := make(map[string]int, len(header))
	for i, col := range header {
		idx[col] = i
	}

	tx, err := normalizeReportRow(reportRow(map[string]string{
		"Gross Sales":       "1,200.00",
		"Gross Commissions": "120.00",
		"Customer Status":   "New",
	}), idx)
	require.NoError(t, err)

	assert.Equal(t, "X1", tx.TransactionID)
	assert.Equal(t, "2024-01-05T10:00:00", tx.TransactionDate)
	assert.Equal(t, models.Money{Amount: 1200.00, Currency: "GBP"}, tx.SaleAmount)
	assert.Equal(t, models.Money{Amount: 120.00, Currency: "GBP"}, tx.CommissionAmount)
	assert.Equal(t, "42", tx.NetworkPartnerID)
	assert.Equal(t, models.CustomerNew, tx.CustomerStatus)
	// The country table deliberately carries the legacy "UK" code.
	assert.Equal(t, "UK", tx.CustomerCountry)
	assert.Equal(t, "UK", tx.AdvertiserCountry)
	assert.Equal(t, models.DeviceDesktop, tx.Device)
	assert.Empty(t, tx.VoucherCode)
}

func TestBuildReportDate(t *testing.T) {
	got, err := buildReportDate("1/5/24", "10:00:00")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-05T10:00:00", got)

	got, err = buildReportDate("12/25/24", "23:59:59")
	require.NoError(t, err)
	assert.Equal(t, "2024-12-25T23:59:59", got)

	_, err = buildReportDate("2024-01-05", "10:00:00")
	assert.Error(t, err)
}
