package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/jalexspringer/netimpact/src/emitter"
	"github.com/jalexspringer/netimpact/src/logger"
	"github.com/jalexspringer/netimpact/src/models"
	"github.com/jalexspringer/netimpact/src/networks"
	"github.com/jalexspringer/netimpact/src/utils"
)

// PartnerResolver is the slice of the partner directory the pipeline
// needs. Resolution misses are expected and non-fatal.
type PartnerResolver interface {
	Resolve(networkPartnerID string) (string, bool)
}

// Processor runs the normalize → classify → resolve → emit pipeline for
// one network+account+window at a time. It is synchronous on purpose: the
// partner directory is shared mutable state and the batches for one
// account must be complete before the next account starts.
type Processor struct {
	directory PartnerResolver
	emitter   *emitter.Emitter
}

func New(directory PartnerResolver, em *emitter.Emitter) *Processor {
	return &Processor{directory: directory, emitter: em}
}

// Process fetches and classifies one account's transactions for the
// target date and writes the two batch files. Returns the modifications
// path and the new-conversions path. Re-running with unchanged upstream
// data and directory state produces byte-identical files.
func (p *Processor) Process(ctx context.Context, network networks.Network, accountID, accountName string, target time.Time) (string, string, error) {
	window := network.DateWindow(target)
	logger.L.Info("Getting transactions and modifications",
		"network", network.Name(),
		"account", accountName,
		"start", window.Start,
		"end", window.End)

	buckets, err := network.Transactions(ctx, accountID, window)
	if err != nil {
		return "", "", fmt.Errorf("fetching %s transactions for account %s: %w", network.Name(), accountName, err)
	}
	logger.L.Info("Transactions fetched",
		"network", network.Name(),
		"account", accountName,
		"approved", len(buckets.Approved),
		"pending", len(buckets.Pending),
		"declined", len(buckets.Declined))

	// Report-driven networks infer declines as a byproduct of the
	// pending/approved split; only queried declines may become returns.
	declinedTxs := buckets.Declined
	if !network.ReportsDeclined() {
		declinedTxs = nil
	}

	pending := p.resolveAll(network.Name(), buckets.Pending)
	approved := p.resolveAll(network.Name(), buckets.Approved)
	declined := p.resolveAll(network.Name(), declinedTxs)

	return p.emitter.Write(accountName, target, pending, approved, declined)
}

// resolveAll joins each transaction to its Impact media partner and
// computes the effective commission rate. Transactions whose partner
// cannot be resolved are dropped: without a media partner identity the
// conversion cannot be attributed, so it must not enter the batch.
func (p *Processor) resolveAll(networkName string, txs []models.CanonicalTransaction) []models.ResolvedTransaction {
	resolved := make([]models.ResolvedTransaction, 0, len(txs))
	for _, tx := range txs {
		mediaPartnerID, found := p.directory.Resolve(tx.NetworkPartnerID)
		if !found {
			logger.L.Warn("Dropping transaction with unresolved partner",
				"network", networkName,
				"transactionID", tx.TransactionID,
				"networkPartnerID", tx.NetworkPartnerID)
			continue
		}
		resolved = append(resolved, models.ResolvedTransaction{
			CanonicalTransaction:  tx,
			PlatformPartnerID:     mediaPartnerID,
			CommissionRatePercent: utils.CommissionRatePercent(tx.CommissionAmount.Amount, tx.SaleAmount.Amount),
		})
	}
	return resolved
}
