package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Accounts holds the per-network credentials and program/account maps that
// the original config.toml carries. Ambient settings (log level, paths,
// timeouts) stay in AppConfig; everything here is data an operator edits
// when a new network program is onboarded.
type Accounts struct {
	Impact    ImpactConfig    `toml:"impact"`
	Awin      AwinConfig      `toml:"awin"`
	Admitad   AdmitadConfig   `toml:"admitad"`
	Linkshare LinkshareConfig `toml:"linkshare"`
}

type ImpactConfig struct {
	SID                    string `toml:"sid"`
	Token                  string `toml:"token"`
	ProgramID              string `toml:"program_id"`
	DesktopActionTrackerID string `toml:"desktop_action_tracker_id"`
	MobileActionTrackerID  string `toml:"mobile_action_tracker_id"`
	FTPUsername            string `toml:"ftp_username"`
	FTPPassword            string `toml:"ftp_password"`
}

type AwinConfig struct {
	OAuthToken string            `toml:"oauth_token"`
	Accounts   map[string]string `toml:"accounts"` // account name -> Awin advertiser id
}

type AdmitadConfig struct {
	ClientID     string            `toml:"client_id"`
	ClientSecret string            `toml:"client_secret"`
	// Commission line items carrying this product id are new-customer
	// sales. The value has no documented meaning upstream; it is
	// program-specific and must stay configurable.
	NewCustomerProductID int64             `toml:"new_customer_product_id"`
	Accounts             map[string]string `toml:"accounts"` // account name -> Admitad campaign id
}

type LinkshareConfig struct {
	TransactionReport string            `toml:"transaction_report"`
	PublisherReport   string            `toml:"publisher_report"`
	Accounts          map[string]string `toml:"accounts"` // account name -> report API token
}

// LoadAccounts reads and validates the TOML accounts file.
func LoadAccounts(path string) (*Accounts, error) {
	var a Accounts
	if _, err := toml.DecodeFile(path, &a); err != nil {
		return nil, fmt.Errorf("failed to decode accounts file '%s': %w", path, err)
	}
	if a.Impact.SID == "" || a.Impact.Token == "" {
		return nil, fmt.Errorf("accounts file '%s' is missing impact.sid / impact.token", path)
	}
	if a.Impact.ProgramID == "" {
		return nil, fmt.Errorf("accounts file '%s' is missing impact.program_id", path)
	}
	if a.Impact.DesktopActionTrackerID == "" || a.Impact.MobileActionTrackerID == "" {
		return nil, fmt.Errorf("accounts file '%s' must set both impact action tracker ids", path)
	}
	if a.Admitad.NewCustomerProductID == 0 {
		a.Admitad.NewCustomerProductID = 1636
	}
	return &a, nil
}
