package networks

import (
	"context"
	"time"

	"github.com/jalexspringer/netimpact/src/models"
)

// DateWindow is one network's reporting window, already serialized in the
// date format that network's API expects.
type DateWindow struct {
	Start string
	End   string
}

// Network is the capability interface every advertising network adapter
// implements. The pipeline only ever talks to this interface; it never
// branches on a network name.
//
// Transactions returns the window's transactions already normalized into
// the canonical model and split into lifecycle buckets. Status-driven
// networks fill the buckets from separate per-status queries; the
// report-driven network infers them from a single unified report.
//
// ReportsDeclined is false for report-driven networks: their declined
// bucket is an inference byproduct of the pending/approved split, not a
// validated status, so callers must treat it as empty.
type Network interface {
	Name() string
	DateWindow(target time.Time) DateWindow
	ReportsDeclined() bool
	Publishers(ctx context.Context, account string) ([]models.PublisherRecord, error)
	Transactions(ctx context.Context, account string, window DateWindow) (models.Buckets, error)
}

// Window conventions. Same-day networks report transactions for the
// target date itself; lagged networks report a [target-1, target] range.
func sameDayWindow(target time.Time, layout string) DateWindow {
	d := target.Format(layout)
	return DateWindow{Start: d, End: d}
}

func laggedWindow(target time.Time, layout string) DateWindow {
	return DateWindow{
		Start: target.AddDate(0, 0, -1).Format(layout),
		End:   target.Format(layout),
	}
}
