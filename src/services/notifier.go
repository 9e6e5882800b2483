package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jalexspringer/netimpact/src/config"
	"github.com/jalexspringer/netimpact/src/logger"
	"github.com/mailgun/mailgun-go/v4"
)

// AccountSummary is one network+account's outcome within a run.
type AccountSummary struct {
	Network         string
	Account         string
	ModsPath        string
	PendingPath     string
	PartnersCreated int
	Error           string
}

// RunSummary aggregates a whole run for the summary notification.
type RunSummary struct {
	TargetDate string
	Accounts   []AccountSummary
}

func (s RunSummary) body() string {
	var b strings.Builder
	fmt.Fprintf(&b, "netimpact run for %s\n\n", s.TargetDate)
	for _, a := range s.Accounts {
		if a.Error != "" {
			fmt.Fprintf(&b, "%s / %s: FAILED: %s\n", a.Network, a.Account, a.Error)
			continue
		}
		fmt.Fprintf(&b, "%s / %s: ok", a.Network, a.Account)
		if a.PartnersCreated > 0 {
			fmt.Fprintf(&b, ", %d new partners", a.PartnersCreated)
		}
		if a.PendingPath != "" {
			fmt.Fprintf(&b, ", batches %s %s", a.PendingPath, a.ModsPath)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Notifier delivers the run summary.
type Notifier interface {
	SendRunSummary(ctx context.Context, summary RunSummary) error
}

// NewNotifier picks the notifier from configuration, defaulting to a
// log-only mock when Mailgun is not configured.
func NewNotifier() Notifier {
	if config.Cfg == nil {
		logger.L.Warn("Configuration (config.Cfg) is nil. Notifier will default to mock.")
		return &MockNotifier{}
	}
	provider := strings.ToLower(config.Cfg.NotifyProvider)
	logger.L.Info("Initializing notifier", "provider", provider)

	switch provider {
	case "mailgun":
		if config.Cfg.MailgunDomain == "" || config.Cfg.MailgunPrivateAPIKey == "" || config.Cfg.SummaryRecipient == "" {
			logger.L.Warn("Mailgun configuration incomplete (Domain, API Key, or SummaryRecipient missing). Falling back to MockNotifier.")
			return &MockNotifier{}
		}
		mg := mailgun.NewMailgun(config.Cfg.MailgunDomain, config.Cfg.MailgunPrivateAPIKey)
		logger.L.Info("Mailgun client initialized", "domain", config.Cfg.MailgunDomain)
		return &MailgunNotifier{
			mg:          mg,
			senderEmail: config.Cfg.SenderEmail,
			senderName:  config.Cfg.SenderName,
			recipient:   config.Cfg.SummaryRecipient,
		}
	default:
		logger.L.Info("Defaulting to MockNotifier.")
		return &MockNotifier{}
	}
}

type MailgunNotifier struct {
	mg          *mailgun.MailgunImpl
	senderEmail string
	senderName  string
	recipient   string
}

func (n *MailgunNotifier) SendRunSummary(ctx context.Context, summary RunSummary) error {
	sender := fmt.Sprintf("%s <%s>", n.senderName, n.senderEmail)
	subject := fmt.Sprintf("netimpact run summary %s", summary.TargetDate)
	message := n.mg.NewMessage(sender, subject, summary.body(), n.recipient)

	sendCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	_, _, err := n.mg.Send(sendCtx, message)
	if err != nil {
		return fmt.Errorf("failed to send run summary via mailgun: %w", err)
	}
	logger.L.Info("Run summary sent", "recipient", n.recipient)
	return nil
}

// MockNotifier logs the summary instead of sending it.
type MockNotifier struct{}

func (n *MockNotifier) SendRunSummary(ctx context.Context, summary RunSummary) error {
	logger.L.Info("MOCK NOTIFIER: run summary", "targetDate", summary.TargetDate, "body", summary.body())
	return nil
}
