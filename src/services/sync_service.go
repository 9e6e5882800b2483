package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jalexspringer/netimpact/src/config"
	"github.com/jalexspringer/netimpact/src/impact"
	"github.com/jalexspringer/netimpact/src/logger"
	"github.com/jalexspringer/netimpact/src/networks"
	"github.com/jalexspringer/netimpact/src/processor"
)

// RunOptions selects what a run does.
type RunOptions struct {
	Sources      []string // network source names, e.g. ["awin", "linkshare"]
	TargetDate   time.Time
	Transactions bool // fetch and emit transaction batches
	Partners     bool // register publishers the directory cannot resolve
	Upload       bool // deliver batch files over FTP
}

// SyncService orchestrates one run: networks × accounts, processed
// sequentially end to end. The partner directory is shared mutable state,
// so accounts are never processed concurrently.
type SyncService struct {
	accounts  *config.Accounts
	directory *impact.Directory
	processor *processor.Processor
	uploader  *impact.Uploader
	notifier  Notifier
}

func NewSyncService(accounts *config.Accounts, directory *impact.Directory, proc *processor.Processor, uploader *impact.Uploader, notifier Notifier) *SyncService {
	return &SyncService{
		accounts:  accounts,
		directory: directory,
		processor: proc,
		uploader:  uploader,
		notifier:  notifier,
	}
}

// Run executes the selected operations for every configured account of
// every requested network. Account-level failures are recorded in the
// summary and do not stop the remaining accounts.
func (s *SyncService) Run(ctx context.Context, opts RunOptions) error {
	if err := s.directory.Prime(ctx); err != nil {
		return fmt.Errorf("priming partner directory: %w", err)
	}

	summary := RunSummary{TargetDate: opts.TargetDate.Format("2006-01-02")}
	for _, source := range opts.Sources {
		network, err := networks.Get(source, s.accounts, config.Cfg.HTTPTimeout)
		if err != nil {
			return err
		}
		accountIDs := networks.AccountsFor(source, s.accounts)
		if len(accountIDs) == 0 {
			logger.L.Warn("No accounts configured for network", "network", network.Name())
			continue
		}
		logger.L.Info("Running data import", "network", network.Name(), "accounts", len(accountIDs))

		// Account order is fixed so repeated runs behave identically.
		names := make([]string, 0, len(accountIDs))
		for name := range accountIDs {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, accountName := range names {
			summary.Accounts = append(summary.Accounts, s.runAccount(ctx, network, accountIDs[accountName], accountName, opts))
		}
	}

	if err := s.notifier.SendRunSummary(ctx, summary); err != nil {
		logger.L.Error("Failed to send run summary", "error", err)
	}
	return nil
}

func (s *SyncService) runAccount(ctx context.Context, network networks.Network, accountID, accountName string, opts RunOptions) AccountSummary {
	acct := AccountSummary{Network: network.Name(), Account: accountName}

	if opts.Partners {
		created, err := s.registerNewPublishers(ctx, network, accountID, accountName)
		if err != nil {
			acct.Error = err.Error()
			logger.L.Error("Partner registration failed", "network", network.Name(), "account", accountName, "error", err)
			return acct
		}
		acct.PartnersCreated = created
	}

	if opts.Transactions {
		modsPath, pendingPath, err := s.processor.Process(ctx, network, accountID, accountName, opts.TargetDate)
		if err != nil {
			acct.Error = err.Error()
			logger.L.Error("Transaction processing failed", "network", network.Name(), "account", accountName, "error", err)
			return acct
		}
		acct.ModsPath = modsPath
		acct.PendingPath = pendingPath
		if opts.Upload {
			s.uploader.Upload(pendingPath, modsPath)
		}
	}
	return acct
}

// registerNewPublishers lists the account's publishers and creates a media
// partner for each one the directory cannot resolve. The directory is
// refreshed once afterwards so the new partners resolve in the same run.
// Group assignment stays with the separate onboarding workflow.
func (s *SyncService) registerNewPublishers(ctx context.Context, network networks.Network, accountID, accountName string) (int, error) {
	pubs, err := network.Publishers(ctx, accountID)
	if err != nil {
		return 0, fmt.Errorf("listing %s publishers for account %s: %w", network.Name(), accountName, err)
	}
	logger.L.Info("Updating partner list", "network", network.Name(), "account", accountName, "publishers", len(pubs))

	created := 0
	for _, pub := range pubs {
		if _, found := s.directory.Resolve(pub.NetworkPartnerID); found {
			continue
		}
		logger.L.Info("Creating new partner", "network", network.Name(), "name", pub.Name, "networkPartnerID", pub.NetworkPartnerID)
		if err := s.directory.Create(ctx, pub, network.Name()); err != nil {
			logger.L.Warn("Partner creation failed", "network", network.Name(), "name", pub.Name, "error", err)
			continue
		}
		created++
	}
	if created > 0 {
		if err := s.directory.Refresh(ctx); err != nil {
			return created, fmt.Errorf("refreshing directory after creating %d partners: %w", created, err)
		}
	}
	logger.L.Info("Partner list updated", "network", network.Name(), "account", accountName, "created", created, "total", len(pubs))
	return created, nil
}
