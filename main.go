package main

import (
	"context"
	"flag"
	"os"
	"strings"
	"time"

	"github.com/jalexspringer/netimpact/src/config"
	"github.com/jalexspringer/netimpact/src/emitter"
	"github.com/jalexspringer/netimpact/src/impact"
	"github.com/jalexspringer/netimpact/src/logger"
	"github.com/jalexspringer/netimpact/src/processor"
	"github.com/jalexspringer/netimpact/src/services"
)

// parseSources maps the comma separated -networks argument onto adapter
// source names, accepting the aliases operators actually type.
func parseSources(arg string) []string {
	arg = strings.ToLower(arg)
	var sources []string
	if strings.Contains(arg, "awin") {
		sources = append(sources, "awin")
	}
	if strings.Contains(arg, "admitad") {
		sources = append(sources, "admitad")
	}
	if strings.Contains(arg, "ls") || strings.Contains(arg, "linkshare") || strings.Contains(arg, "rakuten") {
		sources = append(sources, "linkshare")
	}
	return sources
}

func main() {
	networksArg := flag.String("networks", "", "comma separated list of networks to operate on (awin, admitad, linkshare)")
	configPath := flag.String("config", "", "path to the TOML accounts file (defaults to ACCOUNTS_PATH)")
	transactions := flag.Bool("transactions", false, "get and upload transactions")
	partners := flag.Bool("partners", false, "get and register new partners")
	noUpload := flag.Bool("no-upload", false, "write batch files locally instead of uploading to Impact")
	targetDateArg := flag.String("target-date", "", "transactions from what day (YYYY-MM-DD, defaults to yesterday)")
	flag.Parse()

	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)
	logger.L.Info("netimpact starting...")

	sources := parseSources(*networksArg)
	if len(sources) == 0 {
		logger.L.Error("No recognized networks requested", "networks", *networksArg)
		os.Exit(1)
	}

	targetDate := time.Now().AddDate(0, 0, -1)
	if *targetDateArg != "" {
		parsed, err := time.Parse("2006-01-02", *targetDateArg)
		if err != nil {
			logger.L.Error("Invalid -target-date, expected YYYY-MM-DD", "value", *targetDateArg, "error", err)
			os.Exit(1)
		}
		targetDate = parsed
	}

	accountsPath := config.Cfg.AccountsPath
	if *configPath != "" {
		accountsPath = *configPath
	}
	accounts, err := config.LoadAccounts(accountsPath)
	if err != nil {
		logger.L.Error("Failed to load accounts file", "path", accountsPath, "error", err)
		os.Exit(1)
	}

	logger.L.Info("Initializing partner directory...")
	client := impact.NewClient(accounts.Impact.SID, accounts.Impact.Token, accounts.Impact.ProgramID, config.Cfg.HTTPTimeout)
	store, err := impact.OpenSnapshotStore(config.Cfg.SnapshotDBPath)
	if err != nil {
		logger.L.Error("Failed to open partner snapshot store", "path", config.Cfg.SnapshotDBPath, "error", err)
		os.Exit(1)
	}
	defer store.Close()
	directory := impact.NewDirectory(client, store, config.Cfg.SnapshotMaxAge)

	em := emitter.New(config.Cfg.OutputDir, emitter.Config{
		CampaignID:             accounts.Impact.ProgramID,
		DesktopActionTrackerID: accounts.Impact.DesktopActionTrackerID,
		MobileActionTrackerID:  accounts.Impact.MobileActionTrackerID,
	})
	proc := processor.New(directory, em)
	uploader := impact.NewUploader(config.Cfg.FTPHost, accounts.Impact.FTPUsername, accounts.Impact.FTPPassword)
	notifier := services.NewNotifier()

	sync := services.NewSyncService(accounts, directory, proc, uploader, notifier)
	opts := services.RunOptions{
		Sources:      sources,
		TargetDate:   targetDate,
		Transactions: *transactions,
		Partners:     *partners,
		Upload:       !*noUpload,
	}

	logger.L.Info("Starting import process",
		"networks", strings.Join(sources, ","),
		"targetDate", targetDate.Format("2006-01-02"),
		"transactions", *transactions,
		"partners", *partners)
	if err := sync.Run(context.Background(), opts); err != nil {
		logger.L.Error("Run failed", "error", err)
		os.Exit(1)
	}
	logger.L.Info("Run complete.")
}
