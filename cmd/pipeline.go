package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/alexjj/sota-us-counties/internal/config"
	"github.com/alexjj/sota-us-counties/internal/dataset"
)

// newPipeline builds the join pipeline from config. The returned cleanup
// closes the snapshot store if one was opened; call it when done.
func newPipeline(ctx context.Context, cfg *config.Config, useCache bool) (*dataset.Pipeline, func(), error) {
	p := &dataset.Pipeline{
		SummitsPath:    cfg.Data.SummitsPath,
		CountiesPath:   cfg.Data.CountiesPath,
		CountiesFormat: cfg.Data.CountiesFormat,
	}
	cleanup := func() {}

	if useCache && cfg.Cache.Enabled {
		store, err := dataset.NewStore(cfg.Cache.Path)
		if err != nil {
			// Cache is an optimization; a broken cache never blocks the join.
			zap.L().Warn("snapshot cache unavailable", zap.Error(err))
			return p, cleanup, nil
		}
		if err := store.Migrate(ctx); err != nil {
			zap.L().Warn("snapshot cache migrate failed", zap.Error(err))
			_ = store.Close()
			return p, cleanup, nil
		}
		p.Store = store
		cleanup = func() { _ = store.Close() }
	}

	return p, cleanup, nil
}
