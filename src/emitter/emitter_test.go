package emitter

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jalexspringer/netimpact/src/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEmitter(outputDir string) *Emitter {
	return New(outputDir, Config{
		CampaignID:             "1234",
		DesktopActionTrackerID: "500",
		MobileActionTrackerID:  "501",
	})
}

func resolvedTx() models.ResolvedTransaction {
	return models.ResolvedTransaction{
		CanonicalTransaction: models.CanonicalTransaction{
			TransactionID:    "X1",
			TransactionDate:  "2024-01-05T10:00:00",
			SaleAmount:       models.Money{Amount: 100, Currency: "GBP"},
			CommissionAmount: models.Money{Amount: 10, Currency: "GBP"},
			NetworkPartnerID: "42",
			CustomerStatus:   models.CustomerReturning,
			Device:           models.DeviceDesktop,
			Lifecycle:        models.LifecyclePending,
		},
		PlatformPartnerID:     "P-99",
		CommissionRatePercent: 10,
	}
}

func TestNewConversionRowLayout(t *testing.T) {
	e := testEmitter(t.TempDir())
	rows := e.NewConversionRows("shop_uk", []models.ResolvedTransaction{resolvedTx()})
	require.Len(t, rows, 1)
	assert.Equal(t, []string{
		"1234", "500", "2024-01-05T10:00:00", "X1", "P-99",
		"Returning", "GBP", "100.00", "cat", "sku", "1",
		"shop_uk", "shop_uk", "", "", "", "2024-01-05T10:00:00", "shop_uk",
		"10", "pending", "",
	}, rows[0])
	assert.Len(t, rows[0], len(NewConversionHeader))
}

func TestNewConversionRowUsesMobileTracker(t *testing.T) {
	e := testEmitter(t.TempDir())
	tx := resolvedTx()
	tx.Device = models.DeviceMobile
	rows := e.NewConversionRows("shop_uk", []models.ResolvedTransaction{tx})
	require.Len(t, rows, 1)
	assert.Equal(t, "501", rows[0][1])
}

func TestModificationRows(t *testing.T) {
	e := testEmitter(t.TempDir())
	approved := resolvedTx()
	approved.SaleAmount.Amount = 250.5
	declined := resolvedTx()
	declined.TransactionID = "X2"
	declined.SaleAmount.Amount = 80

	rows := e.ModificationRows([]models.ResolvedTransaction{approved}, []models.ResolvedTransaction{declined})
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"500", "X1", "250.50", ReasonValidated}, rows[0])
	// Declined orders are returned at zero regardless of their sale amount.
	assert.Equal(t, []string{"500", "X2", "0.00", ReasonReturned}, rows[1])
}

func TestWriteLaysOutDateDirectories(t *testing.T) {
	dir := t.TempDir()
	e := testEmitter(dir)
	target := time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)

	modsPath, pendingPath, err := e.Write("shop_uk", target,
		[]models.ResolvedTransaction{resolvedTx()}, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "2024", "01", "05", "shop_uk_mods.csv"), modsPath)
	assert.Equal(t, filepath.Join(dir, "2024", "01", "05", "shop_uk_pending.csv"), pendingPath)

	pending, err := os.ReadFile(pendingPath)
	require.NoError(t, err)
	assert.Contains(t, string(pending), "CampaignId,ActionTrackerId,EventDate")
	assert.Contains(t, string(pending), "X1")

	mods, err := os.ReadFile(modsPath)
	require.NoError(t, err)
	assert.Equal(t, "ActionTrackerID,Oid,Amount,Reason\n", string(mods))
}

func TestWriteIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	e := testEmitter(dir)
	target := time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)
	txs := []models.ResolvedTransaction{resolvedTx()}

	_, pendingPath, err := e.Write("shop_uk", target, txs, txs, txs)
	require.NoError(t, err)
	first, err := os.ReadFile(pendingPath)
	require.NoError(t, err)

	modsPath, pendingPath, err := e.Write("shop_uk", target, txs, txs, txs)
	require.NoError(t, err)
	second, err := os.ReadFile(pendingPath)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	mods, err := os.ReadFile(modsPath)
	require.NoError(t, err)
	assert.Equal(t, []byte("ActionTrackerID,Oid,Amount,Reason\n500,X1,100.00,VALIDATED_ORDER\n500,X1,0.00,RETURNED\n"), mods)
}
