package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-memory/internal/ledger"
	"github.com/vovakirdan/tui-memory/internal/storage"
)

// newLogger builds the command logger. Interactive commands log nowhere
// unless --log-file is set, so output does not tear the alt screen.
func newLogger(prefix string, interactive bool) (*log.Logger, func(), error) {
	var (
		w       io.Writer = os.Stderr
		cleanup           = func() {}
	)

	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		cleanup = func() { f.Close() }
	case interactive:
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, cleanup, nil
}

// storageDSN returns --db or the configured default.
func storageDSN() string {
	if flagDBPath != "" {
		return flagDBPath
	}
	return appConfig.Storage.DSN
}

// openLedger opens the configured store and wraps it in a ledger.
func openLedger(logger *log.Logger) (*ledger.Ledger, storage.KV, error) {
	kv, err := storage.Open(storageDSN())
	if err != nil {
		return nil, nil, err
	}
	l := ledger.New(kv, ledger.Options{
		Capacity: appConfig.Ledger.Capacity,
		Display:  appConfig.Ledger.Display,
		Logger:   logger,
	})
	return l, kv, nil
}
