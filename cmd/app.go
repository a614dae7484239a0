package cmd

import (
	"context"
	"fmt"

	"github.com/beacheats/beachsync/internal/cache"
	"github.com/beacheats/beachsync/internal/catalog"
	"github.com/beacheats/beachsync/internal/logging"
	"github.com/beacheats/beachsync/internal/menuconfig"
	"github.com/beacheats/beachsync/internal/models"
	"github.com/beacheats/beachsync/internal/notify"
	"github.com/beacheats/beachsync/internal/orders"
	"github.com/beacheats/beachsync/internal/remote"
	"github.com/beacheats/beachsync/internal/syncer"
)

// app wires one resort's stores from the loaded configuration. Everything
// is constructed explicitly and torn down in Close; there are no
// package-level singletons to leak between commands or tests.
type app struct {
	cfg      *models.Config
	resort   catalog.Resort
	log      *logging.Logger
	cache    *cache.Store
	notifier *notify.Notifier
	remote   remote.Store
	orders   *orders.Store
	menu     *menuconfig.Store
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := models.LoadConfig(cfgFile)
	if err != nil {
		return nil, err
	}

	id := resortID
	if id == "" {
		id = cfg.DefaultResort
	}
	if !catalog.IsValid(id) {
		return nil, fmt.Errorf("unknown resort %q (known: %v)", id, catalog.IDs())
	}
	resort := catalog.Get(id)

	log := logging.New("beachsync", nil)

	store, err := cache.New(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	notifier, err := notify.New(store.Root(), log.Named("notify"))
	if err != nil {
		return nil, err
	}
	rs := remote.Connect(ctx, cfg.Remote, log.Named("remote"))

	orderCh := syncer.New(resort.ID, "orders", syncer.Deps{
		Cache: store, Notifier: notifier, Remote: rs,
		Log: log.Named("orders"), Poll: cfg.PollInterval,
	})
	menuCh := syncer.New(resort.ID, "menu-config", syncer.Deps{
		Cache: store, Notifier: notifier, Remote: rs,
		Log: log.Named("menu"), Poll: cfg.PollInterval,
	})

	return &app{
		cfg:      cfg,
		resort:   resort,
		log:      log,
		cache:    store,
		notifier: notifier,
		remote:   rs,
		orders:   orders.New(orderCh, resort.OrderPrefix, log.Named("orders")),
		menu:     menuconfig.New(menuCh, catalog.Defaults(resort.ID), log.Named("menu")),
	}, nil
}

func (a *app) Close() {
	a.notifier.Close()
	if a.remote != nil {
		a.remote.Close()
	}
}
