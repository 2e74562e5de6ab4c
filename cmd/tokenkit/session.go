package main

import (
	"fmt"

	"github.com/yacobolo/tokenkit/internal/app"
	"github.com/yacobolo/tokenkit/internal/logging"
	"github.com/yacobolo/tokenkit/internal/persist"
	"github.com/yacobolo/tokenkit/internal/projection"
)

// session is a long-lived App built from the loaded configuration.
type session struct {
	app        *app.App
	designFile string
}

// openSession opens storage, builds the App and applies the configured
// design. The caller closes the App.
func openSession(log *logging.Logger, onProjection func(projection.Category, int)) (*session, error) {
	design, path, err := buildDesign()
	if err != nil {
		return nil, err
	}

	storage := buildStorageConfig()
	adapter, err := persist.Open(storage.Driver, storage.Path)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	a, err := app.New(app.Options{
		Adapter:      adapter,
		SyncDelay:    syncDelay(),
		Log:          log,
		OnProjection: onProjection,
	})
	if err != nil {
		_ = persist.Close(adapter)
		return nil, err
	}
	if err := a.ApplyDesign(design); err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("apply design: %w", err)
	}
	a.Flush()
	return &session{app: a, designFile: path}, nil
}
