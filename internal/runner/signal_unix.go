//go:build !windows

package runner

import (
	"os"
	"os/signal"
	"syscall"
)

// notifySignals subscribes ch to SIGINT and SIGTERM.
func notifySignals(ch chan<- os.Signal) {
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
}
