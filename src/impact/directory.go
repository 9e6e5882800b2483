package impact

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jalexspringer/netimpact/src/logger"
	"github.com/jalexspringer/netimpact/src/models"
	"github.com/patrickmn/go-cache"
)

// PartnerLister is the slice of the Impact API the directory needs.
type PartnerLister interface {
	ListPartners(ctx context.Context) (map[string]string, error)
	CreatePartner(ctx context.Context, pub models.PublisherRecord, networkName string) error
}

// Directory resolves network partner ids to Impact media partner ids.
//
// The resolved map lives in an in-memory cache backed by an optional
// sqlite snapshot. Refresh is caller-driven: a resolution miss never
// triggers an API walk by itself, because misses are expected (partners
// the onboarding workflow has not created yet) and the listing is
// expensive. The directory is not safe for concurrent use across runs;
// the pipeline processes accounts sequentially against one instance.
type Directory struct {
	api    PartnerLister
	cache  *cache.Cache
	store  *SnapshotStore
	maxAge time.Duration
}

func NewDirectory(api PartnerLister, store *SnapshotStore, maxAge time.Duration) *Directory {
	return &Directory{
		api:    api,
		cache:  cache.New(cache.NoExpiration, 0),
		store:  store,
		maxAge: maxAge,
	}
}

// Prime fills the cache, preferring a fresh persisted snapshot over a
// full API listing.
func (d *Directory) Prime(ctx context.Context) error {
	if d.store != nil {
		partners, refreshedAt, err := d.store.Load()
		if err != nil {
			logger.L.Warn("Failed to load partner snapshot, falling back to API listing", "error", err)
		} else if len(partners) > 0 && time.Since(refreshedAt) < d.maxAge {
			d.fill(partners)
			logger.L.Info("Partner directory primed from snapshot", "partnerCount", len(partners), "refreshedAt", refreshedAt)
			return nil
		}
	}
	return d.Refresh(ctx)
}

// Refresh re-lists partners from the API, replaces the cache, and updates
// the snapshot.
func (d *Directory) Refresh(ctx context.Context) error {
	partners, err := d.api.ListPartners(ctx)
	if err != nil {
		return fmt.Errorf("partner directory refresh failed: %w", err)
	}
	d.fill(partners)
	if d.store != nil {
		if err := d.store.Save(partners); err != nil {
			logger.L.Warn("Failed to persist partner snapshot", "error", err)
		}
	}
	return nil
}

// Invalidate empties the cache. The next Prime or Refresh repopulates it.
func (d *Directory) Invalidate() {
	d.cache.Flush()
}

func (d *Directory) fill(partners map[string]string) {
	d.cache.Flush()
	for networkID, mediaPartnerID := range partners {
		d.cache.Set(networkID, mediaPartnerID, cache.NoExpiration)
	}
}

// Resolve looks up the Impact media partner id for a network partner id.
// Source systems disagree about whether partner ids are numbers or
// strings, so a miss on the raw form is retried with the canonical
// integer form ("42.0" and "42" resolve to the same partner).
func (d *Directory) Resolve(networkPartnerID string) (string, bool) {
	id := strings.TrimSpace(networkPartnerID)
	if id == "" {
		return "", false
	}
	if v, found := d.cache.Get(id); found {
		return v.(string), true
	}
	if f, err := strconv.ParseFloat(id, 64); err == nil {
		coerced := strconv.FormatFloat(f, 'f', -1, 64)
		if coerced != id {
			if v, found := d.cache.Get(coerced); found {
				return v.(string), true
			}
		}
	}
	return "", false
}

// Create registers a new publisher as a media partner. The cache is left
// untouched; the onboarding workflow decides when to refresh.
func (d *Directory) Create(ctx context.Context, pub models.PublisherRecord, networkName string) error {
	return d.api.CreatePartner(ctx, pub, networkName)
}

// Size returns the number of resolvable partners currently cached.
func (d *Directory) Size() int {
	return d.cache.ItemCount()
}
