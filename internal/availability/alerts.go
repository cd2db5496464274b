package availability

import (
	"fmt"

	"github.com/healthfirst/provider-portal/pkg/interfaces"
	"github.com/healthfirst/provider-portal/pkg/logger"
	"github.com/healthfirst/provider-portal/pkg/types"
)

// LogNotifier is a log-backed conflict notifier. A production deployment
// would swap in an email/SMS sender behind the same interface.
type LogNotifier struct {
	logger *logger.Logger
}

// NewLogNotifier creates a notifier that writes alerts to the service log
func NewLogNotifier(log *logger.Logger) interfaces.ConflictNotifier {
	return &LogNotifier{logger: log}
}

// SendConflictAlert delivers a single conflict alert
func (n *LogNotifier) SendConflictAlert(providerID string, conflict *types.Conflict) error {
	n.logger.WithProviderID(providerID).Warnf("Scheduling conflict (%s, %s severity): %s",
		conflict.Type, conflict.Severity, conflict.Description)
	return nil
}

// ConflictAlertManager decides which detected conflicts warrant an alert
// and pushes them through the configured notifier.
type ConflictAlertManager struct {
	notifier interfaces.ConflictNotifier
	logger   *logger.Logger
}

// NewConflictAlertManager creates a new conflict alert manager
func NewConflictAlertManager(notifier interfaces.ConflictNotifier, log *logger.Logger) *ConflictAlertManager {
	return &ConflictAlertManager{
		notifier: notifier,
		logger:   log,
	}
}

// NotifyConflicts sends an alert for every high-severity conflict in the
// freshly computed set. Alert failures are logged and do not fail the
// mutation that triggered the scan.
func (cam *ConflictAlertManager) NotifyConflicts(providerID string, conflicts []*types.Conflict) {
	for _, conflict := range conflicts {
		if conflict.Severity != types.SeverityHigh {
			continue
		}
		if err := cam.notifier.SendConflictAlert(providerID, conflict); err != nil {
			cam.logger.Errorf("Failed to send conflict alert for provider %s: %v", providerID, err)
		}
	}
}

// FormatConflictSummary renders a short human-readable summary of a
// conflict set for alert and log payloads.
func FormatConflictSummary(conflicts []*types.Conflict) string {
	counts := map[types.ConflictType]int{}
	for _, conflict := range conflicts {
		counts[conflict.Type]++
	}
	if len(counts) == 0 {
		return "no conflicts"
	}
	summary := ""
	for _, t := range []types.ConflictType{types.ConflictOverlapping, types.ConflictDoubleBooking, types.ConflictBufferViolation, types.ConflictLocation} {
		if counts[t] == 0 {
			continue
		}
		if summary != "" {
			summary += ", "
		}
		summary += fmt.Sprintf("%d %s", counts[t], t)
	}
	return summary
}
