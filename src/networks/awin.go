package networks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jalexspringer/netimpact/src/logger"
	"github.com/jalexspringer/netimpact/src/models"
)

// Awin reports same-day and exposes one transaction listing per lifecycle
// status, so the buckets are trusted as queried (no inference).
type Awin struct {
	token        string
	baseURL      string
	client       *Client
	mobileMarker string
}

func NewAwin(token string, client *Client) *Awin {
	return &Awin{
		token:        token,
		baseURL:      "https://api.awin.com",
		client:       client,
		mobileMarker: "mobile",
	}
}

func (a *Awin) Name() string { return "Awin" }

func (a *Awin) ReportsDeclined() bool { return true }

func (a *Awin) DateWindow(target time.Time) DateWindow {
	return sameDayWindow(target, "2006-01-02")
}

type awinPublisher struct {
	ID   json.Number `json:"id"`
	Name string      `json:"name"`
}

// Publishers lists the websites connected to the Awin program. The
// publishers endpoint does not return site URLs, so a placeholder is used.
func (a *Awin) Publishers(ctx context.Context, account string) ([]models.PublisherRecord, error) {
	u := fmt.Sprintf("%s/advertisers/%s/publishers?accessToken=%s", a.baseURL, account, url.QueryEscape(a.token))
	resp, err := a.client.Do(ctx, func() (*http.Request, error) {
		return http.NewRequest(http.MethodGet, u, nil)
	})
	if err != nil {
		return nil, fmt.Errorf("awin publisher request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("awin publisher request returned status %d", resp.StatusCode)
	}

	var raw []awinPublisher
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode awin publisher list: %w", err)
	}

	pubs := make([]models.PublisherRecord, 0, len(raw))
	for _, p := range raw {
		pubs = append(pubs, models.PublisherRecord{
			Name:             p.Name,
			NetworkPartnerID: p.ID.String(),
			SiteURL:          "https://www.awinpub.com",
		})
	}
	return pubs, nil
}

type awinMoney struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type awinTransactionPart struct {
	CommissionGroupName string `json:"commissionGroupName"`
}

type awinTransaction struct {
	ID                json.Number           `json:"id"`
	TransactionDate   string                `json:"transactionDate"`
	SaleAmount        *awinMoney            `json:"saleAmount"`
	CommissionAmount  *awinMoney            `json:"commissionAmount"`
	PublisherID       json.Number           `json:"publisherId"`
	VoucherCode       string                `json:"voucherCode"`
	CustomerCountry   string                `json:"customerCountry"`
	AdvertiserCountry string                `json:"advertiserCountry"`
	Type              string                `json:"type"`
	TransactionParts  []awinTransactionPart `json:"transactionParts"`
}

// Transactions queries the Awin transaction listing once per status and
// normalizes each payload into the canonical model.
func (a *Awin) Transactions(ctx context.Context, account string, window DateWindow) (models.Buckets, error) {
	var buckets models.Buckets
	statuses := []struct {
		query     string
		lifecycle models.Lifecycle
	}{
		{"pending", models.LifecyclePending},
		{"approved", models.LifecycleApproved},
		{"declined", models.LifecycleDeclined},
	}
	for _, s := range statuses {
		raw, err := a.transactionRequest(ctx, account, window, s.query)
		if err != nil {
			return models.Buckets{}, err
		}
		txs := make([]models.CanonicalTransaction, 0, len(raw))
		for _, t := range raw {
			tx, err := a.normalize(t, s.lifecycle)
			if err != nil {
				logger.L.Warn("Skipping malformed Awin transaction", "account", account, "id", t.ID.String(), "error", err)
				continue
			}
			txs = append(txs, tx)
		}
		switch s.lifecycle {
		case models.LifecyclePending:
			buckets.Pending = txs
		case models.LifecycleApproved:
			buckets.Approved = txs
		case models.LifecycleDeclined:
			buckets.Declined = txs
		}
	}
	return buckets, nil
}

func (a *Awin) transactionRequest(ctx context.Context, account string, window DateWindow, status string) ([]awinTransaction, error) {
	q := url.Values{}
	q.Set("startDate", window.Start+"T00:00:00")
	q.Set("endDate", window.End+"T23:59:59")
	q.Set("timezone", "GMT")
	q.Set("accessToken", a.token)
	q.Set("status", status)
	// Approved and declined listings are keyed by validation date, not
	// transaction date.
	if status == "approved" || status == "declined" {
		q.Set("dateType", "validation")
	}
	u := fmt.Sprintf("%s/advertisers/%s/transactions/?%s", a.baseURL, account, q.Encode())

	resp, err := a.client.Do(ctx, func() (*http.Request, error) {
		return http.NewRequest(http.MethodGet, u, nil)
	})
	if err != nil {
		return nil, fmt.Errorf("awin %s transaction request failed: %w", status, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("awin %s transaction request returned status %d", status, resp.StatusCode)
	}

	var raw []awinTransaction
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode awin %s transaction list: %w", status, err)
	}
	return raw, nil
}

func (a *Awin) normalize(t awinTransaction, lifecycle models.Lifecycle) (models.CanonicalTransaction, error) {
	if t.ID.String() == "" {
		return models.CanonicalTransaction{}, fmt.Errorf("missing transaction id")
	}
	if t.PublisherID.String() == "" {
		return models.CanonicalTransaction{}, fmt.Errorf("missing publisher id")
	}
	if t.TransactionDate == "" {
		return models.CanonicalTransaction{}, fmt.Errorf("missing transaction date")
	}
	if t.SaleAmount == nil || t.CommissionAmount == nil {
		return models.CanonicalTransaction{}, fmt.Errorf("missing sale or commission amount")
	}

	status := models.CustomerReturning
	if len(t.TransactionParts) == 0 {
		if lifecycle == models.LifecyclePending {
			logger.L.Warn("No commission group on Awin transaction, assuming returning customer", "id", t.ID.String())
		}
	} else {
		// The last commission group part decides the customer status.
		for _, part := range t.TransactionParts {
			if strings.Contains(part.CommissionGroupName, "New Customer") {
				status = models.CustomerNew
			} else {
				status = models.CustomerReturning
			}
		}
	}

	device := models.DeviceDesktop
	if strings.Contains(strings.ToLower(t.Type), a.mobileMarker) {
		device = models.DeviceMobile
	}

	return models.CanonicalTransaction{
		TransactionID:     t.ID.String(),
		TransactionDate:   t.TransactionDate,
		SaleAmount:        models.Money{Amount: t.SaleAmount.Amount, Currency: t.SaleAmount.Currency},
		CommissionAmount:  models.Money{Amount: t.CommissionAmount.Amount, Currency: t.CommissionAmount.Currency},
		NetworkPartnerID:  t.PublisherID.String(),
		CustomerStatus:    status,
		VoucherCode:       t.VoucherCode,
		CustomerCountry:   t.CustomerCountry,
		AdvertiserCountry: t.AdvertiserCountry,
		Device:            device,
		Lifecycle:         lifecycle,
	}, nil
}
