package processor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jalexspringer/netimpact/src/emitter"
	"github.com/jalexspringer/netimpact/src/logger"
	"github.com/jalexspringer/netimpact/src/models"
	"github.com/jalexspringer/netimpact/src/networks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.InitLogger("error")
	os.Exit(m.Run())
}

type fakeNetwork struct {
	buckets          models.Buckets
	err              error
	inferredDeclines bool
}

func (f *fakeNetwork) Name() string { return "Fake" }

func (f *fakeNetwork) ReportsDeclined() bool { return !f.inferredDeclines }

func (f *fakeNetwork) DateWindow(target time.Time) networks.DateWindow {
	d := target.Format("2006-01-02")
	return networks.DateWindow{Start: d, End: d}
}

func (f *fakeNetwork) Publishers(ctx context.Context, account string) ([]models.PublisherRecord, error) {
	return nil, nil
}

func (f *fakeNetwork) Transactions(ctx context.Context, account string, window networks.DateWindow) (models.Buckets, error) {
	return f.buckets, f.err
}

type mapResolver map[string]string

func (m mapResolver) Resolve(id string) (string, bool) {
	v, ok := m[id]
	return v, ok
}

func canonicalTx(id, partnerID string) models.CanonicalTransaction {
	return models.CanonicalTransaction{
		TransactionID:    id,
		TransactionDate:  "2024-01-05T10:00:00",
		SaleAmount:       models.Money{Amount: 100, Currency: "GBP"},
		CommissionAmount: models.Money{Amount: 10, Currency: "GBP"},
		NetworkPartnerID: partnerID,
		CustomerStatus:   models.CustomerReturning,
		Device:           models.DeviceDesktop,
	}
}

func newTestProcessor(t *testing.T, resolver PartnerResolver) (*Processor, string) {
	t.Helper()
	dir := t.TempDir()
	em := emitter.New(dir, emitter.Config{
		CampaignID:             "1234",
		DesktopActionTrackerID: "500",
		MobileActionTrackerID:  "501",
	})
	return New(resolver, em), dir
}

func TestProcessWritesBatchFiles(t *testing.T) {
	net := &fakeNetwork{buckets: models.Buckets{
		Pending:  []models.CanonicalTransaction{canonicalTx("P1", "42")},
		Approved: []models.CanonicalTransaction{canonicalTx("A1", "42")},
		Declined: []models.CanonicalTransaction{canonicalTx("D1", "42")},
	}}
	p, dir := newTestProcessor(t, mapResolver{"42": "P-99"})

	target := time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)
	modsPath, pendingPath, err := p.Process(context.Background(), net, "9999", "shop_uk", target)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "2024", "01", "05", "shop_uk_mods.csv"), modsPath)
	assert.Equal(t, filepath.Join(dir, "2024", "01", "05", "shop_uk_pending.csv"), pendingPath)

	pending, err := os.ReadFile(pendingPath)
	require.NoError(t, err)
	assert.Contains(t, string(pending), "P1")
	assert.Contains(t, string(pending), "P-99")

	mods, err := os.ReadFile(modsPath)
	require.NoError(t, err)
	assert.Contains(t, string(mods), "A1")
	assert.Contains(t, string(mods), emitter.ReasonValidated)
	assert.Contains(t, string(mods), "D1")
	assert.Contains(t, string(mods), emitter.ReasonReturned)
}

func TestProcessNeverReturnsInferredDeclines(t *testing.T) {
	declined := canonicalTx("D1", "42")
	declined.CommissionAmount.Amount = 0
	net := &fakeNetwork{
		inferredDeclines: true,
		buckets: models.Buckets{
			Approved: []models.CanonicalTransaction{canonicalTx("A1", "42")},
			Declined: []models.CanonicalTransaction{declined},
		},
	}
	p, _ := newTestProcessor(t, mapResolver{"42": "P-99"})

	target := time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)
	modsPath, _, err := p.Process(context.Background(), net, "9999", "shop_uk", target)
	require.NoError(t, err)

	mods, err := os.ReadFile(modsPath)
	require.NoError(t, err)
	assert.Contains(t, string(mods), "A1")
	assert.NotContains(t, string(mods), "D1")
	assert.NotContains(t, string(mods), emitter.ReasonReturned)
}

func TestProcessPropagatesFetchError(t *testing.T) {
	net := &fakeNetwork{err: fmt.Errorf("report: %w", networks.ErrSchemaMismatch)}
	p, _ := newTestProcessor(t, mapResolver{})

	_, _, err := p.Process(context.Background(), net, "9999", "shop_uk", time.Now())
	require.Error(t, err)
	assert.True(t, errors.Is(err, networks.ErrSchemaMismatch))
}

func TestResolveAllDropsUnresolvedPartners(t *testing.T) {
	txs := make([]models.CanonicalTransaction, 0, 10)
	for i := 0; i < 10; i++ {
		partnerID := "42"
		if i == 7 {
			partnerID = "unknown"
		}
		txs = append(txs, canonicalTx(fmt.Sprintf("T%d", i), partnerID))
	}
	p, _ := newTestProcessor(t, mapResolver{"42": "P-99"})

	resolved := p.resolveAll("Fake", txs)
	require.Len(t, resolved, 9)
	for _, tx := range resolved {
		assert.Equal(t, "P-99", tx.PlatformPartnerID)
		assert.NotEqual(t, "T7", tx.TransactionID)
	}
}

func TestResolveAllComputesCommissionRate(t *testing.T) {
	zeroSale := canonicalTx("Z1", "42")
	zeroSale.SaleAmount.Amount = 0
	steep := canonicalTx("S1", "42")
	steep.SaleAmount.Amount = 10
	steep.CommissionAmount.Amount = 15

	p, _ := newTestProcessor(t, mapResolver{"42": "P-99"})
	resolved := p.resolveAll("Fake", []models.CanonicalTransaction{zeroSale, steep})
	require.Len(t, resolved, 2)
	assert.Equal(t, 0, resolved[0].CommissionRatePercent)
	assert.Equal(t, 150, resolved[1].CommissionRatePercent)
}
