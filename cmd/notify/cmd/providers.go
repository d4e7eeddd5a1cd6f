// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package cmd

import (
	"errors"

	"github.com/notifyio/notify"
	"github.com/samber/do/v2"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// runner hands events over to the handlers on a bounded pool of goroutines.
// Without handlers events are only logged.
type runner struct {
	handlers []*Handler
	pool     *pool.Pool
	log      *zap.SugaredLogger
}

// dispatch queues e for every handler, blocking while the pool is full.
func (r *runner) dispatch(e notify.Event, path string) {
	ev := NewEvent(e, path)
	r.log.Infow("Event received.", "event", ev.Event, "path", ev.Path)
	for _, h := range r.handlers {
		h := h
		r.pool.Go(func() {
			if err := h.Run(ev); err != nil {
				r.log.Warnw("Handler failed.", "path", ev.Path, "error", err)
			}
		})
	}
}

// Shutdown waits for the running handlers.
func (r *runner) Shutdown() error {
	r.pool.Wait()
	return nil
}

// watchers are the started watchers of every configured path. Fatal errors
// of any of them are sent on failed.
type watchers struct {
	list   []*notify.Watcher
	failed chan error
	log    *zap.SugaredLogger
}

// Shutdown stops every watcher.
func (ws *watchers) Shutdown() (err error) {
	for _, w := range ws.list {
		if e := w.Stop(); e != nil {
			err = errors.Join(err, e)
		}
	}
	ws.log.Debugw("Watchers stopped.", "count", len(ws.list))
	return
}

func provideRunner(i do.Injector) (*runner, error) {
	cfg := do.MustInvoke[*Config](i)
	log := do.MustInvoke[*zap.SugaredLogger](i)

	hs, err := loadHandlers(cfg, log)
	if err != nil {
		return nil, err
	}
	return &runner{
		handlers: hs,
		pool:     pool.New().WithMaxGoroutines(cfg.Jobs),
		log:      log,
	}, nil
}

func provideWatchers(i do.Injector) (ret *watchers, err error) {
	cfg := do.MustInvoke[*Config](i)
	log := do.MustInvoke[*zap.SugaredLogger](i)
	r, err := do.Invoke[*runner](i)
	if err != nil {
		return nil, err
	}

	ws := &watchers{
		failed: make(chan error, len(cfg.Watches)),
		log:    log,
	}
	defer func() {
		if err != nil {
			ws.Shutdown()
		}
	}()

	for _, wc := range cfg.Watches {
		opts := []notify.Opt{
			notify.WithRecursive(wc.Recursive),
			notify.WithEvents(wc.Mask()),
			notify.WithLogger(log.With("root", wc.Path)),
			notify.WithErrorHandler(func(err error) {
				ws.failed <- err
			}),
		}
		if cfg.Portable {
			opts = append(opts, notify.WithPortableBackend())
		}

		var w *notify.Watcher
		if w, err = notify.New(wc.Path, r.dispatch, opts...); err != nil {
			return nil, err
		}
		if err = w.Start(); err != nil {
			return nil, err
		}
		ws.list = append(ws.list, w)

		log.Infow("Watching.",
			"path", wc.Path,
			"recursive", wc.Recursive,
			"events", wc.Mask(),
		)
	}
	return ws, nil
}

func newInjector(cfg *Config, log *zap.SugaredLogger) *do.RootScope {
	injector := do.New()
	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, log)
	do.Provide(injector, provideRunner)
	do.Provide(injector, provideWatchers)
	return injector
}
