package models

// PublisherRecord is the network's view of a partner website. Identity is
// NetworkPartnerID, which is only unique within one network+account.
type PublisherRecord struct {
	Name             string `json:"name"`
	NetworkPartnerID string `json:"network_partner_id"`
	SiteURL          string `json:"site_url"`
}

// Money is an amount in a single ISO-4217 currency.
type Money struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type CustomerStatus string

const (
	CustomerNew       CustomerStatus = "New"
	CustomerReturning CustomerStatus = "Returning"
)

type Device string

const (
	DeviceDesktop Device = "Desktop"
	DeviceMobile  Device = "Mobile"
)

type Lifecycle string

const (
	LifecyclePending  Lifecycle = "Pending"
	LifecycleApproved Lifecycle = "Approved"
	LifecycleDeclined Lifecycle = "Declined"
)

// CanonicalTransaction is the unified representation every network's raw
// transaction payload is normalized into. Each network adapter is
// responsible for populating all fields, including the lifecycle bucket;
// nothing downstream re-derives them.
//
// TransactionDate stays in the network's local timezone as an ISO-8601
// string with no offset; the batch files echo it verbatim.
type CanonicalTransaction struct {
	TransactionID     string         `json:"transaction_id"`
	TransactionDate   string         `json:"transaction_date"`
	SaleAmount        Money          `json:"sale_amount"`
	CommissionAmount  Money          `json:"commission_amount"`
	NetworkPartnerID  string         `json:"network_partner_id"`
	CustomerStatus    CustomerStatus `json:"customer_status"`
	VoucherCode       string         `json:"voucher_code"`
	CustomerCountry   string         `json:"customer_country"`
	AdvertiserCountry string         `json:"advertiser_country"`
	Device            Device         `json:"device"`
	Lifecycle         Lifecycle      `json:"lifecycle"`
}

// ResolvedTransaction is a CanonicalTransaction joined to its Impact media
// partner identity, with the effective commission rate computed.
type ResolvedTransaction struct {
	CanonicalTransaction
	PlatformPartnerID     string `json:"platform_partner_id"`
	CommissionRatePercent int    `json:"commission_rate_percent"`
}

// Buckets holds one reporting window's transactions split by lifecycle.
// For status-driven networks each slice is the result of a separate query;
// for report-driven networks the split is inferred from the unified report.
type Buckets struct {
	Pending  []CanonicalTransaction
	Approved []CanonicalTransaction
	Declined []CanonicalTransaction
}

// Total returns the number of transactions across all three buckets.
func (b Buckets) Total() int {
	return len(b.Pending) + len(b.Approved) + len(b.Declined)
}
