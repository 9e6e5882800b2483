package networks

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jalexspringer/netimpact/src/logger"
	"github.com/jalexspringer/netimpact/src/models"
	"github.com/jalexspringer/netimpact/src/utils"
)

// Linkshare (Rakuten) reports with a one-day lag and delivers one unified
// CSV report per window instead of per-status listings. Lifecycle is
// inferred per row: a same-day transaction with a positive sale is
// pending, a zero-commission transaction is declined, everything else is
// approved. A declined bucket never arrives from a status query here.
type Linkshare struct {
	baseURL           string
	client            *Client
	transactionReport string
	publisherReport   string
}

func NewLinkshare(transactionReport, publisherReport string, client *Client) *Linkshare {
	return &Linkshare{
		baseURL:           "https://ran-reporting.rakutenmarketing.com",
		client:            client,
		transactionReport: transactionReport,
		publisherReport:   publisherReport,
	}
}

func (l *Linkshare) Name() string { return "Linkshare" }

// The declined bucket here is inferred from the unified report, never
// queried, so it must not turn into RETURNED modifications.
func (l *Linkshare) ReportsDeclined() bool { return false }

func (l *Linkshare) DateWindow(target time.Time) DateWindow {
	return laggedWindow(target, "2006-01-02")
}

// reportColumns are the columns the transaction report must carry. The
// first one arrives with a UTF-8 BOM glued to it, which fetchReport strips.
var reportColumns = []string{
	"Consumer Country",
	"Gross Commissions",
	"Gross Sales",
	"Order ID",
	"Publisher ID",
	"Transaction Date",
	"Transaction Time",
	"Process Date",
	"Customer Status",
	"Currency",
}

func (l *Linkshare) Publishers(ctx context.Context, account string) ([]models.PublisherRecord, error) {
	q := url.Values{}
	q.Set("date_range", "yesterday")
	q.Set("include_summary", "N")
	q.Set("tz", "GMT")
	q.Set("date_type", "transaction")
	q.Set("token", account)
	rows, err := l.fetchReport(ctx, l.publisherReport, q)
	if err != nil {
		return nil, fmt.Errorf("linkshare publisher report: %w", err)
	}

	var pubs []models.PublisherRecord
	for _, row := range rows[1:] {
		if len(row) < 6 {
			continue
		}
		pubs = append(pubs, models.PublisherRecord{
			Name:             row[4],
			NetworkPartnerID: row[3],
			SiteURL:          row[5],
		})
	}
	return pubs, nil
}

func (l *Linkshare) Transactions(ctx context.Context, account string, window DateWindow) (models.Buckets, error) {
	q := url.Values{}
	q.Set("start_date", window.Start)
	q.Set("end_date", window.End)
	q.Set("include_summary", "N")
	q.Set("tz", "GMT")
	q.Set("date_type", "transaction")
	q.Set("token", account)
	rows, err := l.fetchReport(ctx, l.transactionReport, q)
	if err != nil {
		return models.Buckets{}, fmt.Errorf("linkshare transaction report: %w", err)
	}
	return classifyReport(rows)
}

func (l *Linkshare) fetchReport(ctx context.Context, report string, q url.Values) ([][]string, error) {
	u := fmt.Sprintf("%s/en/reports/%s/filters?%s", l.baseURL, report, q.Encode())
	resp, err := l.client.Do(ctx, func() (*http.Request, error) {
		return http.NewRequest(http.MethodGet, u, nil)
	})
	if err != nil {
		return nil, fmt.Errorf("report request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("report request returned status %d", resp.StatusCode)
	}
	return parseReportCSV(resp.Body)
}

func parseReportCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read report CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("report CSV is empty")
	}
	rows[0][0] = strings.TrimPrefix(rows[0][0], "\uFEFF")
	return rows, nil
}

// classifyReport turns the unified report into lifecycle buckets. The
// header row is validated against reportColumns first; a missing column
// aborts the whole window rather than guessing positions.
func classifyReport(rows [][]string) (models.Buckets, error) {
	header := rows[0]
	idx := make(map[string]int, len(header))
	for i, col := range header {
		idx[col] = i
	}
	for _, col := range reportColumns {
		if _, ok := idx[col]; !ok {
			return models.Buckets{}, fmt.Errorf("%w: report is missing column %q", ErrSchemaMismatch, col)
		}
	}

	var buckets models.Buckets
	for _, row := range rows[1:] {
		if len(row) < len(header) {
			logger.L.Warn("Skipping short Linkshare report row", "columns", len(row))
			continue
		}
		tx, err := normalizeReportRow(row, idx)
		if err != nil {
			logger.L.Warn("Skipping malformed Linkshare report row", "orderID", row[idx["Order ID"]], "error", err)
			continue
		}

		txDate := row[idx["Transaction Date"]]
		processDate := row[idx["Process Date"]]
		switch {
		case txDate == processDate && tx.SaleAmount.Amount > 0:
			tx.Lifecycle = models.LifecyclePending
			buckets.Pending = append(buckets.Pending, tx)
		case tx.CommissionAmount.Amount == 0:
			tx.Lifecycle = models.LifecycleDeclined
			buckets.Declined = append(buckets.Declined, tx)
		default:
			tx.Lifecycle = models.LifecycleApproved
			buckets.Approved = append(buckets.Approved, tx)
		}
	}
	return buckets, nil
}

func normalizeReportRow(row []string, idx map[string]int) (models.CanonicalTransaction, error) {
	orderID := row[idx["Order ID"]]
	if orderID == "" {
		return models.CanonicalTransaction{}, fmt.Errorf("missing order id")
	}
	publisherID := row[idx["Publisher ID"]]
	if publisherID == "" {
		return models.CanonicalTransaction{}, fmt.Errorf("missing publisher id")
	}
	sale, err := utils.ParseAmount(row[idx["Gross Sales"]])
	if err != nil {
		return models.CanonicalTransaction{}, fmt.Errorf("unparseable gross sales %q: %w", row[idx["Gross Sales"]], err)
	}
	commission, err := utils.ParseAmount(row[idx["Gross Commissions"]])
	if err != nil {
		return models.CanonicalTransaction{}, fmt.Errorf("unparseable gross commissions %q: %w", row[idx["Gross Commissions"]], err)
	}
	date, err := buildReportDate(row[idx["Transaction Date"]], row[idx["Transaction Time"]])
	if err != nil {
		return models.CanonicalTransaction{}, err
	}

	status := models.CustomerReturning
	if row[idx["Customer Status"]] == "New" {
		status = models.CustomerNew
	}
	country := utils.CountryCodeFromName(row[idx["Consumer Country"]])
	currency := row[idx["Currency"]]

	return models.CanonicalTransaction{
		TransactionID:     orderID,
		TransactionDate:   date,
		SaleAmount:        models.Money{Amount: sale, Currency: currency},
		CommissionAmount:  models.Money{Amount: commission, Currency: currency},
		NetworkPartnerID:  publisherID,
		CustomerStatus:    status,
		VoucherCode:       "",
		CustomerCountry:   country,
		AdvertiserCountry: country,
		// The report carries no device signal.
		Device: models.DeviceDesktop,
	}, nil
}

// buildReportDate rebuilds an ISO-8601 datetime from the report's M/D/YY
// date and separate time column, zero-padding single-digit components.
func buildReportDate(dateStr, timeStr string) (string, error) {
	parts := strings.Split(dateStr, "/")
	if len(parts) != 3 {
		return "", fmt.Errorf("unexpected transaction date %q", dateStr)
	}
	for i, p := range parts {
		if len(p) < 2 {
			parts[i] = "0" + p
		}
	}
	return fmt.Sprintf("20%s-%s-%sT%s", parts[2], parts[0], parts[1], timeStr), nil
}
