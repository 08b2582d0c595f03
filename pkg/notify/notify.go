// Package notify surfaces workflow results to the user through desktop
// notifications, with the log as a fallback channel.
package notify

import (
	"github.com/gen2brain/beeep"

	"github.com/fumiya-kume/ghflow/pkg/logger"
)

const appTitle = "ghflow"

// Notifier sends user-facing notifications
type Notifier struct {
	quiet bool
	log   logger.Interface
}

// New creates a notifier. With quiet set, desktop notifications are
// suppressed and only the log is written.
func New(quiet bool, log logger.Interface) *Notifier {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Notifier{quiet: quiet, log: log}
}

// Info reports a successful operation
func (n *Notifier) Info(title, message string) {
	n.log.Info("%s: %s", title, message)
	if n.quiet {
		return
	}
	if err := beeep.Notify(appTitle+": "+title, message, ""); err != nil {
		n.log.Debug("desktop notification failed: %v", err)
	}
}

// InfoURL reports a successful operation that produced a URL
func (n *Notifier) InfoURL(title, url string) {
	n.Info(title, url)
}

// Error reports a failed operation
func (n *Notifier) Error(title, message string) {
	n.log.Error("%s: %s", title, message)
	if n.quiet {
		return
	}
	if err := beeep.Alert(appTitle+": "+title, message, ""); err != nil {
		n.log.Debug("desktop notification failed: %v", err)
	}
}
