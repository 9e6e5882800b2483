package networks

import (
	"fmt"
	"net/http"
	"time"

	"github.com/jalexspringer/netimpact/src/config"
	"golang.org/x/time/rate"
)

// Get builds the adapter for a configured network source. This is the one
// place network names are matched on; everything downstream works against
// the Network interface.
func Get(source string, accounts *config.Accounts, httpTimeout time.Duration) (Network, error) {
	switch source {
	case "awin":
		client := NewClient(&http.Client{Timeout: httpTimeout}, rate.NewLimiter(rate.Every(time.Second), 2), 60*time.Second)
		return NewAwin(accounts.Awin.OAuthToken, client), nil
	case "admitad":
		return NewAdmitad(accounts.Admitad.ClientID, accounts.Admitad.ClientSecret, accounts.Admitad.NewCustomerProductID, httpTimeout), nil
	case "linkshare":
		client := NewClient(&http.Client{Timeout: httpTimeout}, rate.NewLimiter(rate.Every(time.Second), 2), 60*time.Second)
		return NewLinkshare(accounts.Linkshare.TransactionReport, accounts.Linkshare.PublisherReport, client), nil
	default:
		return nil, fmt.Errorf("no adapter available for source: %s", source)
	}
}

// AccountsFor returns the account name -> account id map for a source.
func AccountsFor(source string, accounts *config.Accounts) map[string]string {
	switch source {
	case "awin":
		return accounts.Awin.Accounts
	case "admitad":
		return accounts.Admitad.Accounts
	case "linkshare":
		return accounts.Linkshare.Accounts
	default:
		return nil
	}
}
