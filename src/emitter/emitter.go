package emitter

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jalexspringer/netimpact/src/models"
)

// Modification reasons understood by the Impact batch ingestion.
const (
	ReasonValidated = "VALIDATED_ORDER"
	ReasonReturned  = "RETURNED"
)

// NewConversionHeader is the column order of the new-conversions batch.
// The ingestion endpoint is position-sensitive; do not reorder.
var NewConversionHeader = []string{
	"CampaignId", "ActionTrackerId", "EventDate", "OrderId", "MediaPartnerId",
	"CustomerStatus", "CurrencyCode", "Amount", "Category", "Sku", "Quantity",
	"Text1", "PromoCode", "Country", "OrderLocation", "Text2", "Date1", "Note",
	"Numeric1", "OrderStatus", "VoucherCode",
}

// ModificationHeader is the column order of the modifications batch.
var ModificationHeader = []string{"ActionTrackerID", "Oid", "Amount", "Reason"}

// Config carries the program-level identifiers stamped onto every row.
type Config struct {
	CampaignID             string
	DesktopActionTrackerID string
	MobileActionTrackerID  string
}

// Emitter renders the two batch tables for one network+account+window and
// writes them under outputDir/YYYY/MM/DD/.
type Emitter struct {
	outputDir string
	cfg       Config
}

func New(outputDir string, cfg Config) *Emitter {
	return &Emitter{outputDir: outputDir, cfg: cfg}
}

// trackerFor selects the action tracker id for a device. The mapping is
// 1:1 static configuration; Desktop is the fallback for anything the
// normalizers did not flag as mobile.
func (e *Emitter) trackerFor(device models.Device) string {
	if device == models.DeviceMobile {
		return e.cfg.MobileActionTrackerID
	}
	return e.cfg.DesktopActionTrackerID
}

func formatAmount(a float64) string {
	return strconv.FormatFloat(a, 'f', 2, 64)
}

// NewConversionRows renders one row per pending transaction.
func (e *Emitter) NewConversionRows(accountName string, pending []models.ResolvedTransaction) [][]string {
	rows := make([][]string, 0, len(pending))
	for _, tx := range pending {
		rows = append(rows, []string{
			e.cfg.CampaignID,
			e.trackerFor(tx.Device),
			tx.TransactionDate,
			tx.TransactionID,
			tx.PlatformPartnerID,
			string(tx.CustomerStatus),
			tx.SaleAmount.Currency,
			formatAmount(tx.SaleAmount.Amount),
			"cat",
			"sku",
			"1",
			accountName,
			accountName,
			tx.CustomerCountry,
			tx.AdvertiserCountry,
			"",
			tx.TransactionDate,
			accountName,
			strconv.Itoa(tx.CommissionRatePercent),
			"pending",
			tx.VoucherCode,
		})
	}
	return rows
}

// ModificationRows renders one row per approved transaction (validated at
// the sale amount) and one per declined transaction (returned at zero).
func (e *Emitter) ModificationRows(approved, declined []models.ResolvedTransaction) [][]string {
	rows := make([][]string, 0, len(approved)+len(declined))
	for _, tx := range approved {
		rows = append(rows, []string{
			e.trackerFor(tx.Device),
			tx.TransactionID,
			formatAmount(tx.SaleAmount.Amount),
			ReasonValidated,
		})
	}
	for _, tx := range declined {
		rows = append(rows, []string{
			e.trackerFor(tx.Device),
			tx.TransactionID,
			formatAmount(0),
			ReasonReturned,
		})
	}
	return rows
}

// Write renders and writes both batch files, returning their paths
// (modifications first, new conversions second).
func (e *Emitter) Write(accountName string, target time.Time, pending, approved, declined []models.ResolvedTransaction) (string, string, error) {
	dir := filepath.Join(e.outputDir, target.Format("2006"), target.Format("01"), target.Format("02"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("failed to create batch directory %s: %w", dir, err)
	}

	pendingPath := filepath.Join(dir, accountName+"_pending.csv")
	if err := writeTable(pendingPath, NewConversionHeader, e.NewConversionRows(accountName, pending)); err != nil {
		return "", "", err
	}

	modsPath := filepath.Join(dir, accountName+"_mods.csv")
	if err := writeTable(modsPath, ModificationHeader, e.ModificationRows(approved, declined)); err != nil {
		return "", "", err
	}
	return modsPath, pendingPath, nil
}

func writeTable(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create batch file %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header to %s: %w", path, err)
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write rows to %s: %w", path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return nil
}
