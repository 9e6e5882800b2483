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
	"github.com/jalexspringer/netimpact/src/utils"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"
)

// Admitad reports with a one-day lag and formats window dates as
// DD.MM.YYYY. Lifecycle buckets come from separate per-status queries,
// keyed by a numeric status code.
type Admitad struct {
	baseURL string
	client  *Client

	// Commission line items with this product id are new-customer sales.
	// Program-specific magic number, carried in configuration.
	newCustomerProductID int64
	// Product names are in the network's locale.
	mobileMarker string
}

func NewAdmitad(clientID, clientSecret string, newCustomerProductID int64, httpTimeout time.Duration) *Admitad {
	conf := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     "https://api.admitad.com/token/",
		Scopes:       []string{"advertiser_websites", "advertiser_statistics", "advertiser_info"},
	}
	authed := conf.Client(context.Background())
	authed.Timeout = httpTimeout
	return &Admitad{
		baseURL:              "https://api.admitad.com",
		client:               NewClient(authed, rate.NewLimiter(rate.Every(time.Second), 2), 30*time.Second),
		newCustomerProductID: newCustomerProductID,
		mobileMarker:         "мобильный",
	}
}

func (a *Admitad) Name() string { return "Admitad" }

func (a *Admitad) ReportsDeclined() bool { return true }

func (a *Admitad) DateWindow(target time.Time) DateWindow {
	return laggedWindow(target, "02.01.2006")
}

type admitadWebsite struct {
	Website struct {
		ID      json.Number `json:"id"`
		Name    string      `json:"name"`
		SiteURL string      `json:"site_url"`
	} `json:"website"`
	User struct {
		Name string `json:"name"`
	} `json:"user"`
}

func (a *Admitad) Publishers(ctx context.Context, account string) ([]models.PublisherRecord, error) {
	u := fmt.Sprintf("%s/advertiser/%s/websites/?limit=1000", a.baseURL, account)
	resp, err := a.client.Do(ctx, func() (*http.Request, error) {
		return http.NewRequest(http.MethodGet, u, nil)
	})
	if err != nil {
		return nil, fmt.Errorf("admitad website request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("admitad website request returned status %d", resp.StatusCode)
	}

	var payload struct {
		Results []admitadWebsite `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode admitad website list: %w", err)
	}

	pubs := make([]models.PublisherRecord, 0, len(payload.Results))
	for _, w := range payload.Results {
		pubs = append(pubs, models.PublisherRecord{
			Name:             fmt.Sprintf("%s - %s", w.Website.Name, w.User.Name),
			NetworkPartnerID: w.Website.ID.String(),
			SiteURL:          w.Website.SiteURL,
		})
	}
	return pubs, nil
}

type admitadAction struct {
	ID               json.Number `json:"id"`
	ActionTime       string      `json:"action_time"`
	OrderSum         json.Number `json:"order_sum"`
	PaymentWebmaster json.Number `json:"payment_webmaster"`
	Currency         string      `json:"currency"`
	WebsiteID        json.Number `json:"website_id"`
	Promocode        string      `json:"promocode"`
	ActionCountry    string      `json:"action_country"`
	ProductID        *int64      `json:"product_id"`
	ProductName      *string     `json:"product_name"`
}

// admitadStatusCode maps a lifecycle bucket onto the numeric status code
// the statistics endpoint expects. Unknown input falls back to pending.
func admitadStatusCode(lifecycle models.Lifecycle) int {
	switch lifecycle {
	case models.LifecyclePending:
		return 0
	case models.LifecycleApproved:
		return 1
	case models.LifecycleDeclined:
		return 2
	default:
		return 0
	}
}

func (a *Admitad) Transactions(ctx context.Context, account string, window DateWindow) (models.Buckets, error) {
	var buckets models.Buckets
	for _, lifecycle := range []models.Lifecycle{models.LifecyclePending, models.LifecycleApproved, models.LifecycleDeclined} {
		raw, err := a.actionsRequest(ctx, account, window, admitadStatusCode(lifecycle))
		if err != nil {
			return models.Buckets{}, err
		}
		txs := make([]models.CanonicalTransaction, 0, len(raw))
		for _, t := range raw {
			tx, err := a.normalize(t, lifecycle)
			if err != nil {
				logger.L.Warn("Skipping malformed Admitad action", "account", account, "id", t.ID.String(), "error", err)
				continue
			}
			txs = append(txs, tx)
		}
		switch lifecycle {
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

func (a *Admitad) actionsRequest(ctx context.Context, account string, window DateWindow, statusCode int) ([]admitadAction, error) {
	q := url.Values{}
	q.Set("start_date", window.Start)
	q.Set("end_date", window.End)
	q.Set("status", fmt.Sprintf("%d", statusCode))
	q.Set("limit", "5000")
	u := fmt.Sprintf("%s/advertiser/%s/statistics/actions/?%s", a.baseURL, account, q.Encode())

	resp, err := a.client.Do(ctx, func() (*http.Request, error) {
		return http.NewRequest(http.MethodGet, u, nil)
	})
	if err != nil {
		return nil, fmt.Errorf("admitad actions request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("admitad actions request returned status %d", resp.StatusCode)
	}

	var payload struct {
		Results []admitadAction `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode admitad action list: %w", err)
	}
	return payload.Results, nil
}

func (a *Admitad) normalize(t admitadAction, lifecycle models.Lifecycle) (models.CanonicalTransaction, error) {
	if t.ID.String() == "" {
		return models.CanonicalTransaction{}, fmt.Errorf("missing action id")
	}
	if t.WebsiteID.String() == "" {
		return models.CanonicalTransaction{}, fmt.Errorf("missing website id")
	}
	if t.ActionTime == "" {
		return models.CanonicalTransaction{}, fmt.Errorf("missing action time")
	}
	sale, err := utils.ParseAmount(t.OrderSum.String())
	if err != nil {
		return models.CanonicalTransaction{}, fmt.Errorf("unparseable order sum %q: %w", t.OrderSum.String(), err)
	}
	commission, err := utils.ParseAmount(t.PaymentWebmaster.String())
	if err != nil {
		return models.CanonicalTransaction{}, fmt.Errorf("unparseable webmaster payment %q: %w", t.PaymentWebmaster.String(), err)
	}

	status := models.CustomerReturning
	if t.ProductID != nil && *t.ProductID == a.newCustomerProductID {
		status = models.CustomerNew
	}

	device := models.DeviceDesktop
	if t.ProductName != nil && strings.Contains(strings.ToLower(*t.ProductName), a.mobileMarker) {
		device = models.DeviceMobile
	}

	return models.CanonicalTransaction{
		TransactionID:     t.ID.String(),
		TransactionDate:   t.ActionTime,
		SaleAmount:        models.Money{Amount: sale, Currency: t.Currency},
		CommissionAmount:  models.Money{Amount: commission, Currency: t.Currency},
		NetworkPartnerID:  t.WebsiteID.String(),
		CustomerStatus:    status,
		VoucherCode:       t.Promocode,
		CustomerCountry:   t.ActionCountry,
		AdvertiserCountry: t.ActionCountry,
		Device:            device,
		Lifecycle:         lifecycle,
	}, nil
}
