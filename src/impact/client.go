package impact

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
	"github.com/jalexspringer/netimpact/src/networks"
	"golang.org/x/time/rate"
)

// Client talks to the Impact advertiser API for one program.
type Client struct {
	sid       string
	token     string
	programID string
	baseURL   string
	client    *networks.Client
}

func NewClient(sid, token, programID string, httpTimeout time.Duration) *Client {
	return &Client{
		sid:       sid,
		token:     token,
		programID: programID,
		baseURL:   "https://api.impact.com",
		client:    networks.NewClient(&http.Client{Timeout: httpTimeout}, rate.NewLimiter(rate.Every(2*time.Second), 1), 30*time.Second),
	}
}

func (c *Client) get(ctx context.Context, u string) (*http.Response, error) {
	return c.client.Do(ctx, func() (*http.Request, error) {
		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.SetBasicAuth(c.sid, c.token)
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
}

type mediaPartnerPage struct {
	Page        string `json:"@page"`
	NumPages    string `json:"@numpages"`
	NextPageURI string `json:"@nextpageuri"`
	Partners    []struct {
		ID       string `json:"Id"`
		MPValue1 string `json:"MPValue1"`
	} `json:"MediaPartners"`
}

// ListPartners walks the paginated MediaPartners listing and returns the
// network partner id -> Impact media partner id map. MPValue1 carries the
// network partner id on partners this tool created; partners without it
// are skipped.
func (c *Client) ListPartners(ctx context.Context) (map[string]string, error) {
	logger.L.Debug("Refreshing full Impact partner list", "programID", c.programID)
	u := fmt.Sprintf("%s/Advertisers/%s/MediaPartners?CampaignId=%s&PageSize=1000", c.baseURL, c.sid, url.QueryEscape(c.programID))
	partners := make(map[string]string)

	for {
		resp, err := c.get(ctx, u)
		if err != nil {
			return nil, fmt.Errorf("impact partner listing failed: %w", err)
		}
		var page mediaPartnerPage
		err = json.NewDecoder(resp.Body).Decode(&page)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to decode impact partner page: %w", err)
		}

		for _, p := range page.Partners {
			if p.MPValue1 != "" {
				partners[p.MPValue1] = p.ID
			}
		}
		if page.Page == page.NumPages || page.NextPageURI == "" {
			break
		}
		u = c.baseURL + page.NextPageURI
	}
	logger.L.Info("Impact partner list refreshed", "programID", c.programID, "partnerCount", len(partners))
	return partners, nil
}

// CreatePartner creates a media partner on the program, tagged with the
// network partner id in MPValue1 so future listings can resolve it. Group
// assignment and duplicate-name recovery are handled by the separate
// onboarding workflow, not here.
func (c *Client) CreatePartner(ctx context.Context, pub models.PublisherRecord, networkName string) error {
	site := pub.SiteURL
	if site != "" && !strings.HasPrefix(site, "http") {
		site = "http://" + site
	}
	params := url.Values{}
	params.Set("AccountName", fmt.Sprintf("%s - %s - AS", pub.Name, networkName))
	params.Set("Website", site)
	params.Set("MPValue1", pub.NetworkPartnerID)
	params.Set("MPValue2", pub.Name)

	u := fmt.Sprintf("%s/Advertisers/%s/MediaPartners", c.baseURL, c.sid)
	resp, err := c.client.Do(ctx, func() (*http.Request, error) {
		req, err := http.NewRequest(http.MethodPost, u, strings.NewReader(params.Encode()))
		if err != nil {
			return nil, err
		}
		req.SetBasicAuth(c.sid, c.token)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
	if err != nil {
		return fmt.Errorf("impact partner creation failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("impact partner creation returned status %d for %q", resp.StatusCode, pub.Name)
	}
	return nil
}
