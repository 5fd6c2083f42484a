package conversation

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/fuelforge/internal/domain"
	"github.com/hammamikhairi/fuelforge/internal/logger"
)

// Compile-time interface check.
var _ domain.Notifier = (*CLINotifier)(nil)

var (
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	urgentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

// PrintFunc is a function used to print formatted output.
// Matches the signature of display.UI.Printf.
type PrintFunc func(format string, a ...any)

// CLINotifier writes notices through a print function.
type CLINotifier struct {
	log     *logger.Logger
	printFn PrintFunc
}

// NewCLINotifier creates a terminal notifier.
// If printFn is nil, output goes to stdout.
func NewCLINotifier(log *logger.Logger, printFn PrintFunc) *CLINotifier {
	if printFn == nil {
		printFn = func(format string, a ...any) {
			fmt.Printf(format+"\n", a...)
		}
	}
	return &CLINotifier{log: log, printFn: printFn}
}

// Notify prints a normal notice.
func (n *CLINotifier) Notify(ctx context.Context, message string) error {
	n.log.Debug("notify: %s", message)
	n.printFn("%s", noticeStyle.Render(message))
	return nil
}

// NotifyUrgent prints a notice in bold red.
func (n *CLINotifier) NotifyUrgent(ctx context.Context, message string) error {
	n.log.Debug("notify-urgent: %s", message)
	n.printFn("%s", urgentStyle.Render(message))
	return nil
}
